package client

import (
	"context"
	"fmt"
	"math/big"

	"github.com/AlexZinkM/votechain/internal/contracts"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// TokenContract is a handle to the fungible-token ledger
type TokenContract struct {
	bound *boundContract
}

// NewTokenContract binds the token ledger at address for the given account.
// opts may be nil for a read-only handle.
func NewTokenContract(address common.Address, backend bind.ContractBackend, from common.Address, opts *bind.TransactOpts) *TokenContract {
	return &TokenContract{
		bound: newBoundContract(contracts.TokenContractName, address, contracts.TokenABI(), backend, from, opts),
	}
}

// Address returns the ledger address
func (t *TokenContract) Address() common.Address {
	return t.bound.address
}

// Name reads name()
func (t *TokenContract) Name(ctx context.Context) (string, error) {
	return t.stringCall(ctx, "name")
}

// Symbol reads symbol()
func (t *TokenContract) Symbol(ctx context.Context) (string, error) {
	return t.stringCall(ctx, "symbol")
}

// Decimals reads decimals()
func (t *TokenContract) Decimals(ctx context.Context) (uint8, error) {
	out, err := t.bound.call(ctx, "decimals")
	if err != nil {
		return 0, err
	}
	decimals, ok := out[0].(uint8)
	if !ok {
		return 0, fmt.Errorf("%s.decimals: unexpected type %T", t.bound.name, out[0])
	}
	return decimals, nil
}

// TotalSupply reads totalSupply() in raw units
func (t *TokenContract) TotalSupply(ctx context.Context) (*big.Int, error) {
	out, err := t.bound.call(ctx, "totalSupply")
	if err != nil {
		return nil, err
	}
	return toBigInt(out[0]), nil
}

// BalanceOf reads balanceOf(owner) in raw units
func (t *TokenContract) BalanceOf(ctx context.Context, owner common.Address) (*big.Int, error) {
	out, err := t.bound.call(ctx, "balanceOf", owner)
	if err != nil {
		return nil, err
	}
	return toBigInt(out[0]), nil
}

// Owner reads owner()
func (t *TokenContract) Owner(ctx context.Context) (common.Address, error) {
	out, err := t.bound.call(ctx, "owner")
	if err != nil {
		return common.Address{}, err
	}
	return out[0].(common.Address), nil
}

// Mint submits mint(to, amount). The ledger only accepts it from the owner.
func (t *TokenContract) Mint(ctx context.Context, to common.Address, amount *big.Int) (*types.Transaction, error) {
	return t.bound.transact(ctx, "mint", to, amount)
}

func (t *TokenContract) stringCall(ctx context.Context, method string) (string, error) {
	out, err := t.bound.call(ctx, method)
	if err != nil {
		return "", err
	}
	s, ok := out[0].(string)
	if !ok {
		return "", fmt.Errorf("%s.%s: unexpected type %T", t.bound.name, method, out[0])
	}
	return s, nil
}
