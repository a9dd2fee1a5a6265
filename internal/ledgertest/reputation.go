package ledgertest

import (
	"context"
	"math/big"

	"github.com/AlexZinkM/votechain/internal/client"
	"github.com/AlexZinkM/votechain/internal/contracts"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Points added to the score per recorded vote
const pointsPerVote = 10

type userReputation struct {
	score       uint64
	total       uint64
	consecutive uint64
	badges      []uint64
}

func (u *userReputation) level() uint64 {
	return u.total / 10
}

func (u *userReputation) weight() *big.Int {
	return new(big.Int).SetUint64(1 + u.level())
}

type reputationState struct {
	address    common.Address
	owner      common.Address
	authorized map[common.Address]bool
	users      map[common.Address]*userReputation
}

func (r *reputationState) user(a common.Address) *userReputation {
	u, ok := r.users[a]
	if !ok {
		u = &userReputation{}
		r.users[a] = u
	}
	return u
}

// record counts a vote by account and issues the badges it earns
func (r *reputationState) record(account common.Address) []*types.Log {
	u := r.user(account)
	u.total++
	u.consecutive++
	u.score += pointsPerVote

	parsed := contracts.ReputationABI()
	var logs []*types.Log
	updated, _ := parsed.Events["ReputationUpdated"].Inputs.NonIndexed().Pack(
		new(big.Int).SetUint64(u.score), new(big.Int).SetUint64(u.total))
	logs = append(logs, &types.Log{
		Address: r.address,
		Topics:  []common.Hash{parsed.Events["ReputationUpdated"].ID, addressTopic(account)},
		Data:    updated,
	})

	earn := func(badge uint64) {
		for _, b := range u.badges {
			if b == badge {
				return
			}
		}
		u.badges = append(u.badges, badge)
		data, _ := parsed.Events["BadgeEarned"].Inputs.NonIndexed().Pack(new(big.Int).SetUint64(badge))
		logs = append(logs, &types.Log{
			Address: r.address,
			Topics:  []common.Hash{parsed.Events["BadgeEarned"].ID, addressTopic(account)},
			Data:    data,
		})
	}
	if u.total == 1 {
		earn(contracts.BadgeFirstVote)
	}
	if u.total == 10 {
		earn(contracts.BadgeTenVotes)
	}
	if u.consecutive == 5 {
		earn(contracts.BadgeStreakFive)
	}
	if u.total == 50 {
		earn(contracts.BadgeFiftyVotes)
	}
	if u.total == 100 {
		earn(contracts.BadgeHundredVotes)
	}
	return logs
}

// DeployReputation creates the reputation ledger
func (c *Chain) DeployReputation(context.Context) (common.Address, *types.Transaction, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	address := c.nextAddress()
	c.reputation = &reputationState{
		address:    address,
		owner:      c.deployer,
		authorized: make(map[common.Address]bool),
		users:      make(map[common.Address]*userReputation),
	}
	tx := c.commit(nil, "deploy "+contracts.ReputationContractName, nil, address)
	return address, tx, nil
}

// AuthorizeContract submits authorizeContract(caller, allowed) on the
// reputation ledger at address as the deployer
func (c *Chain) AuthorizeContract(ctx context.Context, reputation, caller common.Address, allowed bool) (*types.Transaction, error) {
	if got := c.ReputationAddress(); got == nil || *got != reputation {
		return nil, ErrNoCode
	}
	return c.Reputation(c.deployer).AuthorizeContract(ctx, caller, allowed)
}

// Reputation is a handle to the in-memory reputation ledger acting as from
type Reputation struct {
	chain *Chain
	from  common.Address
}

// Reputation returns a reputation ledger handle for from
func (c *Chain) Reputation(from common.Address) *Reputation {
	return &Reputation{chain: c, from: from}
}

func (r *Reputation) state(method string) (*reputationState, error) {
	if err := r.chain.readFailure(method); err != nil {
		return nil, err
	}
	if r.chain.reputation == nil {
		return nil, ErrNoCode
	}
	return r.chain.reputation, nil
}

// GetUserReputation reads getUserReputation(account)
func (r *Reputation) GetUserReputation(_ context.Context, account common.Address) (client.ReputationData, error) {
	r.chain.mu.Lock()
	defer r.chain.mu.Unlock()
	s, err := r.state("getUserReputation")
	if err != nil {
		return client.ReputationData{}, err
	}

	u, ok := s.users[account]
	if !ok {
		u = &userReputation{}
	}
	return client.ReputationData{
		Score:            new(big.Int).SetUint64(u.score),
		TotalVotes:       new(big.Int).SetUint64(u.total),
		ConsecutiveVotes: new(big.Int).SetUint64(u.consecutive),
		AchievementLevel: new(big.Int).SetUint64(u.level()),
		VotingWeight:     u.weight(),
		IsActive:         u.total > 0,
	}, nil
}

// GetUserBadges reads getUserBadges(account) in issue order
func (r *Reputation) GetUserBadges(_ context.Context, account common.Address) ([]*big.Int, error) {
	r.chain.mu.Lock()
	defer r.chain.mu.Unlock()
	s, err := r.state("getUserBadges")
	if err != nil {
		return nil, err
	}

	var badges []*big.Int
	if u, ok := s.users[account]; ok {
		for _, b := range u.badges {
			badges = append(badges, new(big.Int).SetUint64(b))
		}
	}
	return badges, nil
}

// RecordVote submits recordVote(account), rejected unless from is an authorized ledger
func (r *Reputation) RecordVote(_ context.Context, account common.Address) (*types.Transaction, error) {
	r.chain.mu.Lock()
	defer r.chain.mu.Unlock()
	s, err := r.state("recordVote")
	if err != nil {
		return nil, err
	}
	if !s.authorized[r.from] {
		return nil, r.chain.reject("UnauthorizedCaller", "Not authorized", r.from)
	}

	logs := s.record(account)
	address := s.address
	return r.chain.commit(&address, "recordVote", logs, common.Address{}), nil
}

// AuthorizeContract submits authorizeContract(caller, allowed), rejected unless from owns the ledger
func (r *Reputation) AuthorizeContract(_ context.Context, caller common.Address, allowed bool) (*types.Transaction, error) {
	r.chain.mu.Lock()
	defer r.chain.mu.Unlock()
	s, err := r.state("authorizeContract")
	if err != nil {
		return nil, err
	}
	if r.from != s.owner {
		return nil, r.chain.reject("OwnableUnauthorizedAccount", "Ownable: caller is not the owner", r.from)
	}

	s.authorized[caller] = allowed
	address := s.address
	return r.chain.commit(&address, "authorizeContract", nil, common.Address{}), nil
}
