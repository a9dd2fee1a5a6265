package model

// Reputation is an account's standing in the reputation ledger
type Reputation struct {
	Score            string   `json:"score"`
	TotalVotes       string   `json:"totalVotes"`
	ConsecutiveVotes string   `json:"consecutiveVotes"`
	AchievementLevel string   `json:"achievementLevel"`
	VotingWeight     string   `json:"votingWeight"`
	IsActive         bool     `json:"isActive"`
	Badges           []uint64 `json:"badges"`
}
