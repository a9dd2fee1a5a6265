package model

// Registry is the persisted address registry produced by deployment (contracts.json)
type Registry struct {
	SimpleToken      string `json:"SimpleToken"`
	SimpleVoting     string `json:"SimpleVoting"`
	ReputationSystem string `json:"ReputationSystem,omitempty"`
}
