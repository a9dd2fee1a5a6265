package model

// CWTFile represents .cwt key file structure
type CWTFile struct {
	Network    string `json:"network"`
	Address    string `json:"address"`
	QR         string `json:"QR"`
	Salt       string `json:"salt"`
	Nonce      string `json:"nonce"`
	CipherText string `json:"cipherText"`
}

// WalletData represents decrypted key material
type WalletData struct {
	PrivateKey []byte `json:"privateKey"` // 32-byte secp256k1 scalar (stored as base64 in JSON)
	CreatedAt  string `json:"createdAt"`
}

// WalletIndicator is the visible connection indicator
type WalletIndicator struct {
	Connected    bool   `json:"connected"`
	Address      string `json:"address,omitempty"`
	ShortAddress string `json:"shortAddress,omitempty"`
	ChainID      string `json:"chainId,omitempty"`
	QR           string `json:"QR,omitempty"` // base64 PNG of the address
}
