package crypto

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/AlexZinkM/votechain/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	// Keep scrypt cheap in tests
	scryptN = 1 << 10
	os.Exit(m.Run())
}

func writeTestWallet(t *testing.T, password string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wallet.cwt")
	err := EncryptWallet(path, "ethereum", "0x5FbDB2315678afecb367f032d93F642f64180aa3", "qr", &model.WalletData{
		PrivateKey: []byte{1, 2, 3, 4},
		CreatedAt:  "2026-01-01T00:00:00Z",
	}, []byte(password))
	require.NoError(t, err)
	return path
}

func TestDecryptWallet(t *testing.T) {
	path := writeTestWallet(t, "secret")

	cwt, data, err := DecryptWallet(path, []byte("secret"))
	require.NoError(t, err)
	assert.Equal(t, "ethereum", cwt.Network)
	assert.Equal(t, []byte{1, 2, 3, 4}, data.PrivateKey)

	_, _, err = DecryptWallet(path, []byte("wrong"))
	assert.ErrorIs(t, err, ErrInvalidPassword)
}

func TestReadWalletAddressWithoutPassword(t *testing.T) {
	path := writeTestWallet(t, "secret")

	address, err := ReadWalletAddress(path)
	require.NoError(t, err)
	assert.Equal(t, "0x5FbDB2315678afecb367f032d93F642f64180aa3", address)
}

func TestMissingAndEmptyKeyFile(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "missing.cwt")
	empty := filepath.Join(dir, "empty.cwt")
	require.NoError(t, os.WriteFile(empty, nil, 0600))

	assert.False(t, KeyFileExists(missing))
	assert.False(t, KeyFileExists(empty))

	_, err := ReadWalletAddress(missing)
	assert.ErrorIs(t, err, ErrNoKeyFile)
	_, _, err = DecryptWallet(empty, []byte("x"))
	assert.ErrorIs(t, err, ErrNoKeyFile)
}

func TestEncryptWalletRefusesOverwrite(t *testing.T) {
	path := writeTestWallet(t, "secret")
	assert.True(t, KeyFileExists(path))

	err := EncryptWallet(path, "ethereum", "0x0", "", &model.WalletData{}, []byte("secret"))
	assert.ErrorIs(t, err, os.ErrExist)

	err = EncryptWallet(filepath.Join(t.TempDir(), "wallet.txt"), "ethereum", "0x0", "", &model.WalletData{}, []byte("secret"))
	assert.Error(t, err)
}
