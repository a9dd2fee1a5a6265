package ledgertest

import (
	"context"
	"errors"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
)

// ErrRejected is returned by an Agent set to reject access requests
var ErrRejected = errors.New("user rejected the request")

// Agent is a signing agent holding fixed accounts
type Agent struct {
	mu         sync.Mutex
	available  bool
	reject     bool
	accounts   []common.Address
	authorized bool
	requests   int
}

// NewAgent returns an available agent holding accounts
func NewAgent(accounts ...common.Address) *Agent {
	return &Agent{available: len(accounts) > 0, accounts: accounts}
}

// Authorize marks the accounts as already approved, as after an earlier session
func (a *Agent) Authorize() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.authorized = true
}

// Reject makes access requests fail
func (a *Agent) Reject(reject bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.reject = reject
}

// SetAccounts switches the held accounts. An empty list revokes access.
func (a *Agent) SetAccounts(accounts ...common.Address) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.accounts = accounts
	if len(accounts) == 0 {
		a.authorized = false
	}
}

// Requests returns how many access requests were made
func (a *Agent) Requests() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.requests
}

// Available reports whether the agent holds any account
func (a *Agent) Available() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.available
}

// Accounts returns the approved accounts
func (a *Agent) Accounts() []common.Address {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.authorized {
		return nil
	}
	return append([]common.Address(nil), a.accounts...)
}

// RequestAccounts approves access unless the agent is set to reject
func (a *Agent) RequestAccounts(ctx context.Context) ([]common.Address, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.requests++
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if a.reject {
		return nil, ErrRejected
	}
	a.authorized = true
	return append([]common.Address(nil), a.accounts...), nil
}

// Transactor returns options signing as account. The in-memory ledgers never verify signatures.
func (a *Agent) Transactor(account common.Address, _ *big.Int) (*bind.TransactOpts, error) {
	return &bind.TransactOpts{From: account}, nil
}
