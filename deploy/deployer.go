package deploy

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/AlexZinkM/votechain/internal/model"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// DefaultSampleProposal is seeded into a fresh voting ledger
const DefaultSampleProposal = "Should we increase the token supply?"

// Backend deploys the ledgers and submits the setup transactions
type Backend interface {
	DeployToken(ctx context.Context, initialSupply *big.Int) (common.Address, *types.Transaction, error)
	DeployReputation(ctx context.Context) (common.Address, *types.Transaction, error)
	DeployVoting(ctx context.Context, reputation *common.Address) (common.Address, *types.Transaction, error)
	AuthorizeContract(ctx context.Context, reputation, caller common.Address, allowed bool) (*types.Transaction, error)
	CreateProposal(ctx context.Context, voting common.Address, description string) (*types.Transaction, error)
	WaitMined(ctx context.Context, tx *types.Transaction) (*types.Receipt, error)
	WaitDeployed(ctx context.Context, tx *types.Transaction) (common.Address, error)
}

// Options control a deployment run
type Options struct {
	InitialSupply   *big.Int // whole tokens
	WithReputation  bool
	SampleProposals []string
	RegistryPath    string
	SourcePath      string // address descriptor source to patch, empty to skip
}

// Deployer provisions the ledgers once and records their addresses
type Deployer struct {
	backend Backend
	opts    Options
	logger  *slog.Logger
}

// NewDeployer creates a deployer
func NewDeployer(backend Backend, opts Options, logger *slog.Logger) *Deployer {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.InitialSupply == nil {
		opts.InitialSupply = big.NewInt(1_000_000)
	}
	return &Deployer{
		backend: backend,
		opts:    opts,
		logger:  logger.With("component", "deploy"),
	}
}

// Run deploys token, optional reputation and voting ledgers, authorizes the
// voting ledger on the reputation ledger, seeds the sample proposals, then
// writes the registry and patches the descriptor source
func (d *Deployer) Run(ctx context.Context) (model.Registry, error) {
	if d.opts.InitialSupply.Sign() <= 0 {
		return model.Registry{}, errors.New("initial supply must be positive")
	}

	var registry model.Registry

	token, tx, err := d.backend.DeployToken(ctx, d.opts.InitialSupply)
	if err := d.confirmDeploy(ctx, "deploy token", token, tx, err); err != nil {
		return model.Registry{}, err
	}
	registry.SimpleToken = token.Hex()
	d.logger.Info("SimpleToken deployed", "address", registry.SimpleToken, "initial_supply", d.opts.InitialSupply.String())

	var reputation *common.Address
	if d.opts.WithReputation {
		addr, tx, err := d.backend.DeployReputation(ctx)
		if err := d.confirmDeploy(ctx, "deploy reputation", addr, tx, err); err != nil {
			return model.Registry{}, err
		}
		reputation = &addr
		registry.ReputationSystem = addr.Hex()
		d.logger.Info("ReputationSystem deployed", "address", registry.ReputationSystem)
	}

	voting, tx, err := d.backend.DeployVoting(ctx, reputation)
	if err := d.confirmDeploy(ctx, "deploy voting", voting, tx, err); err != nil {
		return model.Registry{}, err
	}
	registry.SimpleVoting = voting.Hex()
	d.logger.Info("SimpleVoting deployed", "address", registry.SimpleVoting, "weighted", reputation != nil)

	if reputation != nil {
		tx, err := d.backend.AuthorizeContract(ctx, *reputation, voting, true)
		if err := d.confirm(ctx, "authorize voting ledger", tx, err); err != nil {
			return model.Registry{}, err
		}
		d.logger.Info("voting ledger authorized on reputation ledger")
	}

	for _, description := range d.opts.SampleProposals {
		tx, err := d.backend.CreateProposal(ctx, voting, description)
		if err := d.confirm(ctx, "create sample proposal", tx, err); err != nil {
			return model.Registry{}, err
		}
		d.logger.Info("sample proposal created", "description", description)
	}

	if d.opts.RegistryPath != "" {
		if err := WriteRegistry(d.opts.RegistryPath, registry); err != nil {
			return model.Registry{}, err
		}
		d.logger.Info("registry written", "path", d.opts.RegistryPath)

		if d.opts.SourcePath != "" {
			if _, err := UpdateAddresses(d.opts.RegistryPath, d.opts.SourcePath); err != nil {
				return model.Registry{}, err
			}
			d.logger.Info("contract addresses updated", "path", d.opts.SourcePath)
		}
	}

	return registry, nil
}

// confirm waits for a submitted setup transaction
func (d *Deployer) confirm(ctx context.Context, step string, tx *types.Transaction, err error) error {
	if err != nil {
		return fmt.Errorf("%s: %w", step, err)
	}
	receipt, err := d.backend.WaitMined(ctx, tx)
	if err != nil {
		return fmt.Errorf("%s: %w", step, err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return fmt.Errorf("%s: transaction %s failed", step, tx.Hash().Hex())
	}
	d.logger.Debug("transaction confirmed", "step", step, "tx", tx.Hash().Hex(), "block", receipt.BlockNumber)
	return nil
}

// confirmDeploy waits for a contract creation and checks the code landed at the
// address the backend predicted
func (d *Deployer) confirmDeploy(ctx context.Context, step string, expected common.Address, tx *types.Transaction, err error) error {
	if err != nil {
		return fmt.Errorf("%s: %w", step, err)
	}
	deployed, err := d.backend.WaitDeployed(ctx, tx)
	if err != nil {
		return fmt.Errorf("%s: %w", step, err)
	}
	if deployed != expected {
		return fmt.Errorf("%s: contract deployed at %s, expected %s", step, deployed.Hex(), expected.Hex())
	}
	d.logger.Debug("contract deployed", "step", step, "tx", tx.Hash().Hex(), "address", deployed.Hex())
	return nil
}
