package model

// Banner is a dismissible result message
type Banner struct {
	Type    string `json:"type"` // "success" or "error"
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// Dashboard is the rendered page state returned by GET /dashboard
type Dashboard struct {
	Wallet         WalletIndicator `json:"wallet"`
	Proposals      []Proposal      `json:"proposals"`
	EmptyMessage   string          `json:"emptyMessage,omitempty"`
	Balance        *TokenBalance   `json:"balance,omitempty"`
	TotalProposals string          `json:"totalProposals"`
	TotalVotes     string          `json:"totalVotes"`
	Reputation     *Reputation     `json:"reputation,omitempty"`
	Busy           bool            `json:"busy"`
	Banner         *Banner         `json:"banner,omitempty"`
}
