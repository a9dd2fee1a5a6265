package wallet

import (
	"encoding/base64"
	"fmt"
	"time"

	"github.com/AlexZinkM/votechain/internal/crypto"
	"github.com/AlexZinkM/votechain/internal/model"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/skip2/go-qrcode"
)

const networkEthereum = "ethereum"

// Generate creates a new secp256k1 account and saves it to a .cwt file.
// Returns the checksummed address on success.
// password must be []byte for security (caller should zero it after use)
func Generate(filePath string, password []byte) (address string, err error) {
	key, err := ethcrypto.GenerateKey()
	if err != nil {
		return "", fmt.Errorf("failed to generate key: %w", err)
	}
	defer key.D.SetInt64(0)

	return save(filePath, ethcrypto.FromECDSA(key), password)
}

// Import saves an existing hex-encoded private key to a .cwt file
func Import(filePath, hexKey string, password []byte) (address string, err error) {
	key, err := ethcrypto.HexToECDSA(hexKey)
	if err != nil {
		return "", fmt.Errorf("invalid private key: %w", err)
	}
	defer key.D.SetInt64(0)

	return save(filePath, ethcrypto.FromECDSA(key), password)
}

func save(filePath string, privateKey []byte, password []byte) (string, error) {
	defer clear(privateKey)

	key, err := ethcrypto.ToECDSA(privateKey)
	if err != nil {
		return "", fmt.Errorf("invalid private key: %w", err)
	}
	defer key.D.SetInt64(0)
	address := ethcrypto.PubkeyToAddress(key.PublicKey).Hex()

	qrCode, err := QRCode(address)
	if err != nil {
		return "", fmt.Errorf("failed to generate QR code: %w", err)
	}

	walletData := &model.WalletData{
		PrivateKey: privateKey,
		CreatedAt:  time.Now().Format(time.RFC3339),
	}

	if err := crypto.EncryptWallet(filePath, networkEthereum, address, qrCode, walletData, password); err != nil {
		return "", fmt.Errorf("failed to encrypt wallet: %w", err)
	}

	return address, nil
}

// QRCode renders address as a base64 PNG
func QRCode(address string) (string, error) {
	qr, err := qrcode.New(address, qrcode.Medium)
	if err != nil {
		return "", fmt.Errorf("failed to create QR code: %w", err)
	}

	png, err := qr.PNG(256)
	if err != nil {
		return "", fmt.Errorf("failed to generate PNG: %w", err)
	}

	return base64.StdEncoding.EncodeToString(png), nil
}
