package wallet

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"

	"github.com/AlexZinkM/votechain/internal/crypto"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
)

var (
	// ErrNoWallet is returned when there is no key file to unlock
	ErrNoWallet = errors.New("no wallet key file found")
	// ErrRejected is returned when the user declines the access request
	ErrRejected = errors.New("user rejected the request")
	// ErrLocked is returned when signing is requested for an account that is not unlocked
	ErrLocked = errors.New("account is locked")
)

const passwordPrompt = "Approve wallet connection, enter password: "

// FileAgent is a signing agent holding one account in an encrypted .cwt key file.
// The key stays in memory only after the user approved access.
type FileAgent struct {
	path     string
	prompter Prompter

	mu      sync.Mutex
	key     *ecdsa.PrivateKey
	account common.Address
}

// NewFileAgent creates an agent for the key file at path
func NewFileAgent(path string, prompter Prompter) *FileAgent {
	return &FileAgent{path: path, prompter: prompter}
}

// Available reports whether a non-empty key file is present
func (a *FileAgent) Available() bool {
	return crypto.KeyFileExists(a.path)
}

// Accounts returns the accounts already authorized, without prompting.
// A key file replaced or removed since approval drops the authorization.
func (a *FileAgent) Accounts() []common.Address {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.key == nil {
		return nil
	}
	address, err := crypto.ReadWalletAddress(a.path)
	if err != nil || !strings.EqualFold(address, a.account.Hex()) {
		a.lockLocked()
		return nil
	}
	return []common.Address{a.account}
}

// RequestAccounts asks the user for access and unlocks the key.
// Returns the authorized accounts, the first one being the active account.
func (a *FileAgent) RequestAccounts(ctx context.Context) ([]common.Address, error) {
	if accounts := a.Accounts(); len(accounts) > 0 {
		return accounts, nil
	}
	if !a.Available() {
		return nil, ErrNoWallet
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	password, err := a.prompter.Prompt(passwordPrompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRejected, err)
	}
	defer clear(password) // Always clear password from memory
	if len(password) == 0 {
		return nil, ErrRejected
	}

	cwtFile, walletData, err := crypto.DecryptWallet(a.path, password)
	if err != nil {
		if errors.Is(err, crypto.ErrInvalidPassword) {
			return nil, fmt.Errorf("%w: %w", ErrRejected, err)
		}
		if errors.Is(err, crypto.ErrNoKeyFile) {
			return nil, ErrNoWallet
		}
		return nil, fmt.Errorf("failed to decrypt wallet: %w", err)
	}
	// Always clear private key from memory
	defer clear(walletData.PrivateKey)

	key, err := ethcrypto.ToECDSA(walletData.PrivateKey)
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}

	// Verify key matches the address stored in the file
	account := ethcrypto.PubkeyToAddress(key.PublicKey)
	if !strings.EqualFold(account.Hex(), cwtFile.Address) {
		return nil, errors.New("private key does not match address")
	}

	a.mu.Lock()
	a.key = key
	a.account = account
	a.mu.Unlock()

	return []common.Address{account}, nil
}

// Transactor returns signing options for account on the given chain
func (a *FileAgent) Transactor(account common.Address, chainID *big.Int) (*bind.TransactOpts, error) {
	a.mu.Lock()
	key, unlocked := a.key, a.account
	a.mu.Unlock()

	if key == nil || unlocked != account {
		return nil, fmt.Errorf("%w: %s", ErrLocked, account.Hex())
	}

	opts, err := bind.NewKeyedTransactorWithChainID(key, chainID)
	if err != nil {
		return nil, fmt.Errorf("failed to create transactor: %w", err)
	}
	return opts, nil
}

// Lock forgets the unlocked key
func (a *FileAgent) Lock() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.lockLocked()
}

func (a *FileAgent) lockLocked() {
	if a.key != nil && a.key.D != nil {
		a.key.D.SetInt64(0)
	}
	a.key = nil
	a.account = common.Address{}
}
