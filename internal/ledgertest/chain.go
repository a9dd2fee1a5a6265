// Package ledgertest provides an in-memory node with the token, voting and
// reputation ledgers, for tests that must not depend on a running chain.
package ledgertest

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"

	"github.com/AlexZinkM/votechain/internal/client"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
)

// DefaultChainID is the chain id of a local Hardhat node
var DefaultChainID = big.NewInt(31337)

// ErrNoCode is returned when reading a ledger that was never deployed
var ErrNoCode = errors.New("no contract code at given address")

// Chain is an in-memory node. Transactions are applied when submitted and
// confirmed in their own block, like an automining development node.
type Chain struct {
	mu       sync.Mutex
	chainID  *big.Int
	deployer common.Address
	nonce    uint64
	block    uint64
	receipts map[common.Hash]*types.Receipt

	hold       chan struct{}
	readErrs   map[string]error
	reasons    bool
	submitted  int
	token      *tokenState
	voting     *votingState
	reputation *reputationState
}

// NewChain returns an empty chain whose ledgers will be owned by deployer
func NewChain(deployer common.Address) *Chain {
	return &Chain{
		chainID:  new(big.Int).Set(DefaultChainID),
		deployer: deployer,
		receipts: make(map[common.Hash]*types.Receipt),
		readErrs: make(map[string]error),
	}
}

// NewDeployedChain returns a chain with the token (1,000,000 supply) and voting
// ledgers deployed by owner, plus the reputation ledger when withReputation is set
func NewDeployedChain(owner common.Address, withReputation bool) *Chain {
	c := NewChain(owner)
	ctx := context.Background()

	if _, _, err := c.DeployToken(ctx, big.NewInt(1_000_000)); err != nil {
		panic(err)
	}
	var reputation *common.Address
	if withReputation {
		addr, _, err := c.DeployReputation(ctx)
		if err != nil {
			panic(err)
		}
		reputation = &addr
	}
	voting, _, err := c.DeployVoting(ctx, reputation)
	if err != nil {
		panic(err)
	}
	if reputation != nil {
		if _, err := c.AuthorizeContract(ctx, *reputation, voting, true); err != nil {
			panic(err)
		}
	}
	return c
}

// ChainID returns the chain id the node reports
func (c *Chain) ChainID(context.Context) (*big.Int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return new(big.Int).Set(c.chainID), nil
}

// SwitchChain makes the node report a different chain id
func (c *Chain) SwitchChain(id *big.Int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.chainID = new(big.Int).Set(id)
}

// UseReasonStrings makes the ledgers reject with Error(string) reasons instead
// of custom errors, as older ledger builds do
func (c *Chain) UseReasonStrings(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reasons = enabled
}

// FailReads makes every read of method fail with err. A nil err clears it.
func (c *Chain) FailReads(method string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err == nil {
		delete(c.readErrs, method)
		return
	}
	c.readErrs[method] = err
}

// HoldConfirmations blocks WaitMined until the returned function is called
func (c *Chain) HoldConfirmations() (release func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	hold := make(chan struct{})
	c.hold = hold
	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			if c.hold == hold {
				c.hold = nil
			}
			c.mu.Unlock()
			close(hold)
		})
	}
}

// Submitted returns the number of transactions accepted so far
func (c *Chain) Submitted() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.submitted
}

// TokenAddress returns the token ledger address, zero if not deployed
func (c *Chain) TokenAddress() common.Address {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.token == nil {
		return common.Address{}
	}
	return c.token.address
}

// VotingAddress returns the voting ledger address, zero if not deployed
func (c *Chain) VotingAddress() common.Address {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.voting == nil {
		return common.Address{}
	}
	return c.voting.address
}

// ReputationAddress returns the reputation ledger address, nil if not deployed
func (c *Chain) ReputationAddress() *common.Address {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.reputation == nil {
		return nil
	}
	addr := c.reputation.address
	return &addr
}

// WaitMined returns the receipt of tx, blocking while confirmations are held
func (c *Chain) WaitMined(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
	c.mu.Lock()
	hold := c.hold
	c.mu.Unlock()

	if hold != nil {
		select {
		case <-hold:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	receipt, ok := c.receipts[tx.Hash()]
	if !ok {
		return nil, fmt.Errorf("unknown transaction %s", tx.Hash().Hex())
	}
	return receipt, nil
}

// WaitDeployed returns the address created by tx once it is confirmed
func (c *Chain) WaitDeployed(ctx context.Context, tx *types.Transaction) (common.Address, error) {
	if tx.To() != nil {
		return common.Address{}, errors.New("tx is not contract creation")
	}
	receipt, err := c.WaitMined(ctx, tx)
	if err != nil {
		return common.Address{}, err
	}
	if receipt.ContractAddress == (common.Address{}) {
		return common.Address{}, ErrNoCode
	}
	return receipt.ContractAddress, nil
}

// readFailure returns the injected error for method. Callers hold c.mu.
func (c *Chain) readFailure(method string) error {
	if err, ok := c.readErrs[method]; ok {
		return err
	}
	return nil
}

// commit records a successful transaction in a new block. Callers hold c.mu.
func (c *Chain) commit(to *common.Address, method string, logs []*types.Log, created common.Address) *types.Transaction {
	tx := types.NewTx(&types.LegacyTx{
		Nonce: c.nonce,
		To:    to,
		Gas:   100_000,
		Data:  []byte(method),
	})
	c.nonce++
	c.block++
	c.submitted++

	block := new(big.Int).SetUint64(c.block)
	for i, log := range logs {
		log.TxHash = tx.Hash()
		log.BlockNumber = c.block
		log.Index = uint(i)
	}
	c.receipts[tx.Hash()] = &types.Receipt{
		Status:          types.ReceiptStatusSuccessful,
		TxHash:          tx.Hash(),
		ContractAddress: created,
		BlockNumber:     block,
		Logs:            logs,
	}
	return tx
}

// nextAddress is the address of the next contract created by the deployer. Callers hold c.mu.
func (c *Chain) nextAddress() common.Address {
	return crypto.CreateAddress(c.deployer, c.nonce)
}

// reject builds the revert for a failed call: the custom error, or its reason
// string when the chain is set to use reason strings. Callers hold c.mu.
func (c *Chain) reject(name, reason string, args ...any) error {
	if c.reasons {
		return &client.RevertError{Reason: reason}
	}
	return &client.RevertError{Name: name, Args: args}
}

func addressTopic(a common.Address) common.Hash {
	return common.BytesToHash(a.Bytes())
}
