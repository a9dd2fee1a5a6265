package model

// Proposal is the client's read-only copy of a proposal held by the voting ledger
type Proposal struct {
	ID                  uint64 `json:"id"`
	Description         string `json:"description"`
	VoteCount           string `json:"voteCount"`
	WeightedVoteCount   string `json:"weightedVoteCount,omitempty"` // reputation-weighted variant only
	HasCurrentUserVoted bool   `json:"hasVoted"`
}
