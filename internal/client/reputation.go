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

// ReputationData is an account's standing in the reputation ledger
type ReputationData struct {
	Score            *big.Int
	TotalVotes       *big.Int
	ConsecutiveVotes *big.Int
	AchievementLevel *big.Int
	VotingWeight     *big.Int
	IsActive         bool
}

// ReputationContract is a handle to the optional reputation ledger
type ReputationContract struct {
	bound *boundContract
}

// NewReputationContract binds the reputation ledger at address for the given account
func NewReputationContract(address common.Address, backend bind.ContractBackend, from common.Address, opts *bind.TransactOpts) *ReputationContract {
	return &ReputationContract{
		bound: newBoundContract(contracts.ReputationContractName, address, contracts.ReputationABI(), backend, from, opts),
	}
}

// Address returns the ledger address
func (r *ReputationContract) Address() common.Address {
	return r.bound.address
}

// GetUserReputation reads getUserReputation(account)
func (r *ReputationContract) GetUserReputation(ctx context.Context, account common.Address) (ReputationData, error) {
	out, err := r.bound.call(ctx, "getUserReputation", account)
	if err != nil {
		return ReputationData{}, err
	}
	if len(out) != 6 {
		return ReputationData{}, fmt.Errorf("%s.getUserReputation: expected 6 outputs, got %d", r.bound.name, len(out))
	}
	active, _ := out[5].(bool)
	return ReputationData{
		Score:            toBigInt(out[0]),
		TotalVotes:       toBigInt(out[1]),
		ConsecutiveVotes: toBigInt(out[2]),
		AchievementLevel: toBigInt(out[3]),
		VotingWeight:     toBigInt(out[4]),
		IsActive:         active,
	}, nil
}

// GetVotingWeight reads getVotingWeight(account)
func (r *ReputationContract) GetVotingWeight(ctx context.Context, account common.Address) (*big.Int, error) {
	out, err := r.bound.call(ctx, "getVotingWeight", account)
	if err != nil {
		return nil, err
	}
	return toBigInt(out[0]), nil
}

// HasBadge reads hasBadge(account, badgeID)
func (r *ReputationContract) HasBadge(ctx context.Context, account common.Address, badgeID *big.Int) (bool, error) {
	out, err := r.bound.call(ctx, "hasBadge", account, badgeID)
	if err != nil {
		return false, err
	}
	has, _ := out[0].(bool)
	return has, nil
}

// GetUserBadges reads getUserBadges(account) in issue order
func (r *ReputationContract) GetUserBadges(ctx context.Context, account common.Address) ([]*big.Int, error) {
	out, err := r.bound.call(ctx, "getUserBadges", account)
	if err != nil {
		return nil, err
	}
	badges, ok := out[0].([]*big.Int)
	if !ok {
		return nil, fmt.Errorf("%s.getUserBadges: unexpected type %T", r.bound.name, out[0])
	}
	return badges, nil
}

// RecordVote submits recordVote(account). Only authorized ledgers may call it.
func (r *ReputationContract) RecordVote(ctx context.Context, account common.Address) (*types.Transaction, error) {
	return r.bound.transact(ctx, "recordVote", account)
}

// AuthorizeContract submits authorizeContract(caller, allowed). Owner only.
func (r *ReputationContract) AuthorizeContract(ctx context.Context, caller common.Address, allowed bool) (*types.Transaction, error) {
	return r.bound.transact(ctx, "authorizeContract", caller, allowed)
}
