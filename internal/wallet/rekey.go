package wallet

import (
	"fmt"
	"os"
	"strings"

	"github.com/AlexZinkM/votechain/internal/crypto"
)

// ChangePassword re-encrypts the key file under newPassword with a fresh salt
// and nonce. The key material and its creation time are kept.
// Both passwords must be []byte for security (caller should zero them after use)
func ChangePassword(filePath string, oldPassword, newPassword []byte) (address string, err error) {
	if len(newPassword) == 0 {
		return "", fmt.Errorf("new password cannot be empty")
	}

	cwtFile, walletData, err := crypto.DecryptWallet(filePath, oldPassword)
	if err != nil {
		return "", err
	}
	defer clear(walletData.PrivateKey)

	// Write next to the original, then swap it in
	tmpPath := strings.TrimSuffix(filePath, ".cwt") + ".rekey.cwt"
	os.Remove(tmpPath)
	if err := crypto.EncryptWallet(tmpPath, cwtFile.Network, cwtFile.Address, cwtFile.QR, walletData, newPassword); err != nil {
		return "", fmt.Errorf("failed to re-encrypt wallet: %w", err)
	}
	if err := os.Rename(tmpPath, filePath); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("failed to replace key file: %w", err)
	}

	return cwtFile.Address, nil
}
