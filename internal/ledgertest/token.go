package ledgertest

import (
	"context"
	"math/big"

	"github.com/AlexZinkM/votechain/internal/common"
	"github.com/AlexZinkM/votechain/internal/contracts"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

type tokenState struct {
	address  ethcommon.Address
	owner    ethcommon.Address
	decimals uint8
	supply   *big.Int
	balances map[ethcommon.Address]*big.Int
}

func (t *tokenState) balance(a ethcommon.Address) *big.Int {
	if b, ok := t.balances[a]; ok {
		return b
	}
	return new(big.Int)
}

// DeployToken creates the token ledger, minting initialSupply whole tokens to the deployer
func (c *Chain) DeployToken(_ context.Context, initialSupply *big.Int) (ethcommon.Address, *types.Transaction, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(common.DefaultTokenDecimals), nil)
	supply := new(big.Int).Mul(initialSupply, scale)

	address := c.nextAddress()
	c.token = &tokenState{
		address:  address,
		owner:    c.deployer,
		decimals: common.DefaultTokenDecimals,
		supply:   new(big.Int).Set(supply),
		balances: map[ethcommon.Address]*big.Int{c.deployer: supply},
	}
	tx := c.commit(nil, "deploy "+contracts.TokenContractName, nil, address)
	return address, tx, nil
}

// Token is a handle to the in-memory token ledger acting as from
type Token struct {
	chain *Chain
	from  ethcommon.Address
}

// Token returns a token ledger handle for from
func (c *Chain) Token(from ethcommon.Address) *Token {
	return &Token{chain: c, from: from}
}

func (t *Token) state(method string) (*tokenState, error) {
	if err := t.chain.readFailure(method); err != nil {
		return nil, err
	}
	if t.chain.token == nil {
		return nil, ErrNoCode
	}
	return t.chain.token, nil
}

// Decimals reads decimals()
func (t *Token) Decimals(context.Context) (uint8, error) {
	t.chain.mu.Lock()
	defer t.chain.mu.Unlock()
	s, err := t.state("decimals")
	if err != nil {
		return 0, err
	}
	return s.decimals, nil
}

// TotalSupply reads totalSupply()
func (t *Token) TotalSupply(context.Context) (*big.Int, error) {
	t.chain.mu.Lock()
	defer t.chain.mu.Unlock()
	s, err := t.state("totalSupply")
	if err != nil {
		return nil, err
	}
	return new(big.Int).Set(s.supply), nil
}

// BalanceOf reads balanceOf(owner)
func (t *Token) BalanceOf(_ context.Context, owner ethcommon.Address) (*big.Int, error) {
	t.chain.mu.Lock()
	defer t.chain.mu.Unlock()
	s, err := t.state("balanceOf")
	if err != nil {
		return nil, err
	}
	return new(big.Int).Set(s.balance(owner)), nil
}

// Mint submits mint(to, amount), rejected unless from owns the ledger
func (t *Token) Mint(_ context.Context, to ethcommon.Address, amount *big.Int) (*types.Transaction, error) {
	t.chain.mu.Lock()
	defer t.chain.mu.Unlock()
	s, err := t.state("mint")
	if err != nil {
		return nil, err
	}
	if t.from != s.owner {
		return nil, t.chain.reject("OwnableUnauthorizedAccount", "Ownable: caller is not the owner", t.from)
	}

	s.balances[to] = new(big.Int).Add(s.balance(to), amount)
	s.supply.Add(s.supply, amount)

	data, err := contracts.TokenABI().Events["Transfer"].Inputs.NonIndexed().Pack(amount)
	if err != nil {
		return nil, err
	}
	log := &types.Log{
		Address: s.address,
		Topics: []ethcommon.Hash{
			contracts.TokenABI().Events["Transfer"].ID,
			addressTopic(ethcommon.Address{}),
			addressTopic(to),
		},
		Data: data,
	}
	address := s.address
	return t.chain.commit(&address, "mint", []*types.Log{log}, ethcommon.Address{}), nil
}
