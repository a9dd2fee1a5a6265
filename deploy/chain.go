package deploy

import (
	"context"
	"fmt"
	"math/big"

	"github.com/AlexZinkM/votechain/internal/client"
	"github.com/AlexZinkM/votechain/internal/contracts"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// ChainBackend deploys compiled artifacts to a node
type ChainBackend struct {
	client       *client.EthereumClient
	opts         *bind.TransactOpts
	artifactsDir string
}

// NewChainBackend creates a backend signing with opts
func NewChainBackend(c *client.EthereumClient, opts *bind.TransactOpts, artifactsDir string) *ChainBackend {
	return &ChainBackend{client: c, opts: opts, artifactsDir: artifactsDir}
}

func (b *ChainBackend) transactOpts(ctx context.Context) *bind.TransactOpts {
	opts := *b.opts
	opts.Context = ctx
	return &opts
}

func (b *ChainBackend) deploy(ctx context.Context, name string, args ...any) (common.Address, *types.Transaction, error) {
	artifact, err := LoadArtifact(b.artifactsDir, name)
	if err != nil {
		return common.Address{}, nil, err
	}
	parsed, bytecode, err := artifact.Parse()
	if err != nil {
		return common.Address{}, nil, err
	}

	address, tx, _, err := bind.DeployContract(b.transactOpts(ctx), parsed, bytecode, b.client.Backend(), args...)
	if err != nil {
		return common.Address{}, nil, fmt.Errorf("failed to deploy %s: %w", name, client.DecodeRevert(err, parsed))
	}
	return address, tx, nil
}

// DeployToken deploys the token ledger with initialSupply whole tokens
func (b *ChainBackend) DeployToken(ctx context.Context, initialSupply *big.Int) (common.Address, *types.Transaction, error) {
	return b.deploy(ctx, contracts.TokenContractName, initialSupply)
}

// DeployReputation deploys the reputation ledger
func (b *ChainBackend) DeployReputation(ctx context.Context) (common.Address, *types.Transaction, error) {
	return b.deploy(ctx, contracts.ReputationContractName)
}

// DeployVoting deploys the voting ledger, passing the reputation ledger to the weighted variant
func (b *ChainBackend) DeployVoting(ctx context.Context, reputation *common.Address) (common.Address, *types.Transaction, error) {
	if reputation != nil {
		return b.deploy(ctx, contracts.VotingContractName, *reputation)
	}
	return b.deploy(ctx, contracts.VotingContractName)
}

// AuthorizeContract allows caller to record votes on the reputation ledger
func (b *ChainBackend) AuthorizeContract(ctx context.Context, reputation, caller common.Address, allowed bool) (*types.Transaction, error) {
	ledger := client.NewReputationContract(reputation, b.client.Backend(), b.opts.From, b.opts)
	return ledger.AuthorizeContract(ctx, caller, allowed)
}

// CreateProposal seeds a proposal on the voting ledger
func (b *ChainBackend) CreateProposal(ctx context.Context, voting common.Address, description string) (*types.Transaction, error) {
	ledger := client.NewVotingContract(voting, b.client.Backend(), b.opts.From, b.opts, false)
	return ledger.CreateProposal(ctx, description)
}

// WaitMined waits for tx to be included
func (b *ChainBackend) WaitMined(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
	return b.client.WaitMined(ctx, tx)
}

// WaitDeployed waits for a contract creation and returns the address holding its code
func (b *ChainBackend) WaitDeployed(ctx context.Context, tx *types.Transaction) (common.Address, error) {
	return b.client.WaitDeployed(ctx, tx)
}
