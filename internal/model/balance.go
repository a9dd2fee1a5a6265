package model

// TokenBalance is the derived display value of an account's token balance
type TokenBalance struct {
	Owner     string `json:"owner"`
	RawAmount string `json:"rawAmount"`
	Amount    string `json:"amount"` // full precision, e.g. "100.5"
	Decimals  uint8  `json:"decimals"`
	Display   string `json:"display"` // e.g. "100.00 STK"
}
