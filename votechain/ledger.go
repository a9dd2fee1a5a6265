package votechain

import (
	"context"
	"fmt"
	"math/big"

	"github.com/AlexZinkM/votechain/internal/client"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// TokenLedger is the part of the token ledger the dashboard uses
type TokenLedger interface {
	Decimals(ctx context.Context) (uint8, error)
	BalanceOf(ctx context.Context, owner common.Address) (*big.Int, error)
	Mint(ctx context.Context, to common.Address, amount *big.Int) (*types.Transaction, error)
}

// VotingLedger is the part of the voting ledger the dashboard uses
type VotingLedger interface {
	ProposalCount(ctx context.Context) (*big.Int, error)
	GetProposal(ctx context.Context, id *big.Int) (client.ProposalData, error)
	HasVoted(ctx context.Context, account common.Address, id *big.Int) (bool, error)
	CreateProposal(ctx context.Context, description string) (*types.Transaction, error)
	Vote(ctx context.Context, id *big.Int) (*types.Transaction, error)
	ParseProposalCreated(receipt *types.Receipt) ([]client.ProposalCreated, error)
}

// ReputationLedger is the read side of the optional reputation ledger
type ReputationLedger interface {
	GetUserReputation(ctx context.Context, account common.Address) (client.ReputationData, error)
	GetUserBadges(ctx context.Context, account common.Address) ([]*big.Int, error)
}

// Confirmer waits until a submitted transaction is included
type Confirmer interface {
	WaitMined(ctx context.Context, tx *types.Transaction) (*types.Receipt, error)
}

// Agent holds the user's keys and authorizes account access
type Agent interface {
	Available() bool
	Accounts() []common.Address
	RequestAccounts(ctx context.Context) ([]common.Address, error)
	Transactor(account common.Address, chainID *big.Int) (*bind.TransactOpts, error)
}

// Ledgers are the contract handles bound to one account
type Ledgers struct {
	Token      TokenLedger
	Voting     VotingLedger
	Reputation ReputationLedger // nil when no reputation ledger is configured
}

// Binder binds contract handles for a session
type Binder interface {
	ChainID(ctx context.Context) (*big.Int, error)
	Bind(account common.Address, opts *bind.TransactOpts) (Ledgers, error)
}

// Addresses of the deployed ledgers
type Addresses struct {
	Token      common.Address
	Voting     common.Address
	Reputation *common.Address
}

// ParseAddresses validates configured hex addresses. reputation may be empty.
func ParseAddresses(token, voting, reputation string) (Addresses, error) {
	var addrs Addresses
	for _, a := range []struct {
		name  string
		value string
		out   *common.Address
	}{
		{name: "token", value: token, out: &addrs.Token},
		{name: "voting", value: voting, out: &addrs.Voting},
	} {
		if !common.IsHexAddress(a.value) {
			return Addresses{}, fmt.Errorf("invalid %s ledger address %q", a.name, a.value)
		}
		*a.out = common.HexToAddress(a.value)
	}
	if reputation != "" {
		if !common.IsHexAddress(reputation) {
			return Addresses{}, fmt.Errorf("invalid reputation ledger address %q", reputation)
		}
		r := common.HexToAddress(reputation)
		addrs.Reputation = &r
	}
	return addrs, nil
}

// ChainBinder binds go-ethereum contract handles over a node connection
type ChainBinder struct {
	client    *client.EthereumClient
	addresses Addresses
}

// NewChainBinder creates a binder for the ledgers at addresses
func NewChainBinder(c *client.EthereumClient, addresses Addresses) *ChainBinder {
	return &ChainBinder{client: c, addresses: addresses}
}

// ChainID reads the chain id the node reports now
func (b *ChainBinder) ChainID(ctx context.Context) (*big.Int, error) {
	return b.client.CurrentChainID(ctx)
}

// Bind creates the handles for account. The voting handle uses the weighted
// descriptor when a reputation ledger is configured.
func (b *ChainBinder) Bind(account common.Address, opts *bind.TransactOpts) (Ledgers, error) {
	backend := b.client.Backend()
	weighted := b.addresses.Reputation != nil

	ledgers := Ledgers{
		Token:  client.NewTokenContract(b.addresses.Token, backend, account, opts),
		Voting: client.NewVotingContract(b.addresses.Voting, backend, account, opts, weighted),
	}
	if weighted {
		ledgers.Reputation = client.NewReputationContract(*b.addresses.Reputation, backend, account, opts)
	}
	return ledgers, nil
}
