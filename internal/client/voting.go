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

// ProposalData is the ledger's view of one proposal
type ProposalData struct {
	Description       string
	VoteCount         *big.Int
	WeightedVoteCount *big.Int // nil unless the reputation-weighted ledger is deployed
}

// ProposalCreated represents a ProposalCreated event raised by the voting ledger
type ProposalCreated struct {
	ProposalID  *big.Int `abi:"proposalId"`
	Description string   `abi:"description"`
}

// VoteCast represents a VoteCast event raised by the voting ledger
type VoteCast struct {
	Voter      common.Address `abi:"voter"`
	ProposalID *big.Int       `abi:"proposalId"`
}

// VotingContract is a handle to the proposal/voting ledger
type VotingContract struct {
	bound    *boundContract
	weighted bool
}

// NewVotingContract binds the voting ledger at address for the given account.
// weighted selects the reputation-weighted descriptor.
func NewVotingContract(address common.Address, backend bind.ContractBackend, from common.Address, opts *bind.TransactOpts, weighted bool) *VotingContract {
	parsed := contracts.VotingABI()
	if weighted {
		parsed = contracts.WeightedVotingABI()
	}
	return &VotingContract{
		bound:    newBoundContract(contracts.VotingContractName, address, parsed, backend, from, opts),
		weighted: weighted,
	}
}

// Address returns the ledger address
func (v *VotingContract) Address() common.Address {
	return v.bound.address
}

// ProposalCount reads proposalCount()
func (v *VotingContract) ProposalCount(ctx context.Context) (*big.Int, error) {
	out, err := v.bound.call(ctx, "proposalCount")
	if err != nil {
		return nil, err
	}
	return toBigInt(out[0]), nil
}

// GetProposal reads getProposal(id)
func (v *VotingContract) GetProposal(ctx context.Context, id *big.Int) (ProposalData, error) {
	out, err := v.bound.call(ctx, "getProposal", id)
	if err != nil {
		return ProposalData{}, err
	}
	if len(out) < 2 {
		return ProposalData{}, fmt.Errorf("%s.getProposal: expected at least 2 outputs, got %d", v.bound.name, len(out))
	}

	description, ok := out[0].(string)
	if !ok {
		return ProposalData{}, fmt.Errorf("%s.getProposal: unexpected description type %T", v.bound.name, out[0])
	}
	data := ProposalData{
		Description: description,
		VoteCount:   toBigInt(out[1]),
	}
	if v.weighted && len(out) > 2 {
		data.WeightedVoteCount = toBigInt(out[2])
	}
	return data, nil
}

// HasVoted reads hasVoted(account, id)
func (v *VotingContract) HasVoted(ctx context.Context, account common.Address, id *big.Int) (bool, error) {
	out, err := v.bound.call(ctx, "hasVoted", account, id)
	if err != nil {
		return false, err
	}
	voted, ok := out[0].(bool)
	if !ok {
		return false, fmt.Errorf("%s.hasVoted: unexpected type %T", v.bound.name, out[0])
	}
	return voted, nil
}

// Owner reads owner()
func (v *VotingContract) Owner(ctx context.Context) (common.Address, error) {
	out, err := v.bound.call(ctx, "owner")
	if err != nil {
		return common.Address{}, err
	}
	return out[0].(common.Address), nil
}

// CreateProposal submits createProposal(description). Owner only.
func (v *VotingContract) CreateProposal(ctx context.Context, description string) (*types.Transaction, error) {
	return v.bound.transact(ctx, "createProposal", description)
}

// Vote submits vote(id). One vote per account per proposal.
func (v *VotingContract) Vote(ctx context.Context, id *big.Int) (*types.Transaction, error) {
	return v.bound.transact(ctx, "vote", id)
}

// ParseProposalCreated returns the ProposalCreated events in a receipt
func (v *VotingContract) ParseProposalCreated(receipt *types.Receipt) ([]ProposalCreated, error) {
	var events []ProposalCreated
	err := v.bound.unpackEvents(receipt, "ProposalCreated",
		func() any { return new(ProposalCreated) },
		func(out any) { events = append(events, *out.(*ProposalCreated)) },
	)
	return events, err
}

// ParseVoteCast returns the VoteCast events in a receipt
func (v *VotingContract) ParseVoteCast(receipt *types.Receipt) ([]VoteCast, error) {
	var events []VoteCast
	err := v.bound.unpackEvents(receipt, "VoteCast",
		func() any { return new(VoteCast) },
		func(out any) { events = append(events, *out.(*VoteCast)) },
	)
	return events, err
}
