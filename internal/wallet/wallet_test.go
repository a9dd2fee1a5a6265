package wallet

import (
	"context"
	"errors"
	"math/big"
	"os"
	"path/filepath"
	"testing"

	"github.com/AlexZinkM/votechain/internal/crypto"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Hardhat's first default account
const (
	testKey     = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	testAddress = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
)

func TestMain(m *testing.M) {
	restore := crypto.SetCostForTesting(1 << 10)
	code := m.Run()
	restore()
	os.Exit(code)
}

func answer(password string) Prompter {
	return PrompterFunc(func(string) ([]byte, error) {
		return []byte(password), nil
	})
}

func importTestWallet(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wallet.cwt")
	address, err := Import(path, testKey, []byte("secret"))
	require.NoError(t, err)
	require.Equal(t, testAddress, address)
	return path
}

func TestGenerate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wallet.cwt")

	address, err := Generate(path, []byte("secret"))
	require.NoError(t, err)
	assert.True(t, common.IsHexAddress(address))

	stored, err := crypto.ReadWalletAddress(path)
	require.NoError(t, err)
	assert.Equal(t, address, stored)

	// A second key never overwrites the first
	_, err = Generate(path, []byte("secret"))
	assert.ErrorIs(t, err, os.ErrExist)
}

func TestGenerateRequiresCWTExtension(t *testing.T) {
	_, err := Generate(filepath.Join(t.TempDir(), "wallet.txt"), []byte("secret"))
	assert.Error(t, err)
}

func TestFileAgentUnavailable(t *testing.T) {
	agent := NewFileAgent(filepath.Join(t.TempDir(), "missing.cwt"), answer("secret"))

	assert.False(t, agent.Available())
	assert.Empty(t, agent.Accounts())

	_, err := agent.RequestAccounts(context.Background())
	assert.ErrorIs(t, err, ErrNoWallet)
}

func TestFileAgentRequestAccounts(t *testing.T) {
	path := importTestWallet(t)
	prompts := 0
	agent := NewFileAgent(path, PrompterFunc(func(string) ([]byte, error) {
		prompts++
		return []byte("secret"), nil
	}))

	require.True(t, agent.Available())
	assert.Empty(t, agent.Accounts(), "nothing is authorized before approval")

	accounts, err := agent.RequestAccounts(context.Background())
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, common.HexToAddress(testAddress), accounts[0])

	// Already authorized: no second prompt
	_, err = agent.RequestAccounts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, prompts)
	assert.Equal(t, accounts, agent.Accounts())
}

func TestFileAgentRejections(t *testing.T) {
	tests := []struct {
		name     string
		prompter Prompter
	}{
		{name: "empty password", prompter: answer("")},
		{name: "wrong password", prompter: answer("nope")},
		{name: "prompt failed", prompter: PrompterFunc(func(string) ([]byte, error) {
			return nil, errors.New("stdin is not a terminal")
		})},
	}

	path := importTestWallet(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agent := NewFileAgent(path, tt.prompter)
			_, err := agent.RequestAccounts(context.Background())
			assert.ErrorIs(t, err, ErrRejected)
			assert.Empty(t, agent.Accounts())
		})
	}
}

func TestFileAgentTransactor(t *testing.T) {
	agent := NewFileAgent(importTestWallet(t), answer("secret"))
	account := common.HexToAddress(testAddress)
	chainID := big.NewInt(31337)

	_, err := agent.Transactor(account, chainID)
	assert.ErrorIs(t, err, ErrLocked)

	_, err = agent.RequestAccounts(context.Background())
	require.NoError(t, err)

	opts, err := agent.Transactor(account, chainID)
	require.NoError(t, err)
	assert.Equal(t, account, opts.From)

	_, err = agent.Transactor(common.HexToAddress("0x0000000000000000000000000000000000000001"), chainID)
	assert.ErrorIs(t, err, ErrLocked)

	agent.Lock()
	assert.Empty(t, agent.Accounts())
}

func TestFileAgentDropsAuthorizationWhenFileRemoved(t *testing.T) {
	path := importTestWallet(t)
	agent := NewFileAgent(path, answer("secret"))

	_, err := agent.RequestAccounts(context.Background())
	require.NoError(t, err)
	require.Len(t, agent.Accounts(), 1)

	require.NoError(t, os.Remove(path))
	assert.Empty(t, agent.Accounts())
	assert.False(t, agent.Available())
}

func TestQRCode(t *testing.T) {
	qr, err := QRCode(testAddress)
	require.NoError(t, err)
	assert.NotEmpty(t, qr)
}

func TestChangePassword(t *testing.T) {
	path := importTestWallet(t)

	_, err := ChangePassword(path, []byte("wrong"), []byte("new"))
	assert.ErrorIs(t, err, crypto.ErrInvalidPassword)

	_, err = ChangePassword(path, []byte("secret"), nil)
	assert.Error(t, err)

	address, err := ChangePassword(path, []byte("secret"), []byte("new"))
	require.NoError(t, err)
	assert.Equal(t, testAddress, address)

	_, err = os.Stat(filepath.Join(filepath.Dir(path), "wallet.rekey.cwt"))
	assert.True(t, errors.Is(err, os.ErrNotExist))

	_, _, err = crypto.DecryptWallet(path, []byte("secret"))
	assert.ErrorIs(t, err, crypto.ErrInvalidPassword)

	_, data, err := crypto.DecryptWallet(path, []byte("new"))
	require.NoError(t, err)
	assert.Equal(t, common.FromHex(testKey), data.PrivateKey)
}
