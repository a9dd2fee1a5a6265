package model

// CreateProposalRequest represents request for POST /proposals
type CreateProposalRequest struct {
	Description string `json:"description"`
}

// VoteRequest represents request for POST /proposals/vote
type VoteRequest struct {
	ProposalID *uint64 `json:"proposalId"` // required
}

// MintRequest represents request for POST /tokens/mint
type MintRequest struct {
	Address string `json:"address"`
	Amount  string `json:"amount"`
}

// ActionResponse is the result banner of a confirmed action
type ActionResponse struct {
	Success    bool    `json:"success"`
	Message    string  `json:"message"`
	TxHash     string  `json:"txHash"`
	Block      uint64  `json:"blockNumber"`
	ProposalID *uint64 `json:"proposalId,omitempty"`
}
