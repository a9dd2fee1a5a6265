package ledgertest

import (
	"context"
	"math/big"

	"github.com/AlexZinkM/votechain/internal/client"
	"github.com/AlexZinkM/votechain/internal/contracts"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

type proposal struct {
	description string
	votes       *big.Int
	weighted    *big.Int
}

type votingState struct {
	address    common.Address
	owner      common.Address
	reputation *common.Address
	proposals  []*proposal
	voted      map[common.Address]map[uint64]bool
}

// DeployVoting creates the voting ledger. With a reputation address it is the
// weighted variant that records every vote in the reputation ledger.
func (c *Chain) DeployVoting(_ context.Context, reputation *common.Address) (common.Address, *types.Transaction, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	address := c.nextAddress()
	c.voting = &votingState{
		address:    address,
		owner:      c.deployer,
		reputation: reputation,
		voted:      make(map[common.Address]map[uint64]bool),
	}
	tx := c.commit(nil, "deploy "+contracts.VotingContractName, nil, address)
	return address, tx, nil
}

// CreateProposal submits createProposal(description) on the voting ledger at
// address as the deployer
func (c *Chain) CreateProposal(ctx context.Context, voting common.Address, description string) (*types.Transaction, error) {
	if got := c.VotingAddress(); got != voting {
		return nil, ErrNoCode
	}
	return c.Voting(c.deployer).CreateProposal(ctx, description)
}

// Voting is a handle to the in-memory voting ledger acting as from
type Voting struct {
	chain *Chain
	from  common.Address
}

// Voting returns a voting ledger handle for from
func (c *Chain) Voting(from common.Address) *Voting {
	return &Voting{chain: c, from: from}
}

func (v *Voting) state(method string) (*votingState, error) {
	if err := v.chain.readFailure(method); err != nil {
		return nil, err
	}
	if v.chain.voting == nil {
		return nil, ErrNoCode
	}
	return v.chain.voting, nil
}

// ProposalCount reads proposalCount()
func (v *Voting) ProposalCount(context.Context) (*big.Int, error) {
	v.chain.mu.Lock()
	defer v.chain.mu.Unlock()
	s, err := v.state("proposalCount")
	if err != nil {
		return nil, err
	}
	return big.NewInt(int64(len(s.proposals))), nil
}

// GetProposal reads getProposal(id)
func (v *Voting) GetProposal(_ context.Context, id *big.Int) (client.ProposalData, error) {
	v.chain.mu.Lock()
	defer v.chain.mu.Unlock()
	s, err := v.state("getProposal")
	if err != nil {
		return client.ProposalData{}, err
	}
	if !id.IsUint64() || id.Uint64() >= uint64(len(s.proposals)) {
		return client.ProposalData{}, v.chain.reject("ProposalNotFound", "Proposal does not exist", id)
	}

	p := s.proposals[id.Uint64()]
	data := client.ProposalData{
		Description: p.description,
		VoteCount:   new(big.Int).Set(p.votes),
	}
	if s.reputation != nil {
		data.WeightedVoteCount = new(big.Int).Set(p.weighted)
	}
	return data, nil
}

// HasVoted reads hasVoted(account, id)
func (v *Voting) HasVoted(_ context.Context, account common.Address, id *big.Int) (bool, error) {
	v.chain.mu.Lock()
	defer v.chain.mu.Unlock()
	s, err := v.state("hasVoted")
	if err != nil {
		return false, err
	}
	return id.IsUint64() && s.voted[account][id.Uint64()], nil
}

// CreateProposal submits createProposal(description), rejected unless from owns the ledger
func (v *Voting) CreateProposal(_ context.Context, description string) (*types.Transaction, error) {
	v.chain.mu.Lock()
	defer v.chain.mu.Unlock()
	s, err := v.state("createProposal")
	if err != nil {
		return nil, err
	}
	if v.from != s.owner {
		return nil, v.chain.reject("NotOwner", "Only owner can create proposals", v.from)
	}

	id := big.NewInt(int64(len(s.proposals)))
	s.proposals = append(s.proposals, &proposal{
		description: description,
		votes:       new(big.Int),
		weighted:    new(big.Int),
	})

	event := contracts.VotingABI().Events["ProposalCreated"]
	data, err := event.Inputs.Pack(id, description)
	if err != nil {
		return nil, err
	}
	log := &types.Log{Address: s.address, Topics: []common.Hash{event.ID}, Data: data}
	address := s.address
	return v.chain.commit(&address, "createProposal", []*types.Log{log}, common.Address{}), nil
}

// Vote submits vote(id). Each account votes once per proposal.
func (v *Voting) Vote(_ context.Context, id *big.Int) (*types.Transaction, error) {
	v.chain.mu.Lock()
	defer v.chain.mu.Unlock()
	s, err := v.state("vote")
	if err != nil {
		return nil, err
	}
	if !id.IsUint64() || id.Uint64() >= uint64(len(s.proposals)) {
		return nil, v.chain.reject("ProposalNotFound", "Proposal does not exist", id)
	}
	i := id.Uint64()
	if s.voted[v.from][i] {
		return nil, v.chain.reject("AlreadyVoted", "You have already voted", v.from, id)
	}

	weight := big.NewInt(1)
	var logs []*types.Log
	if s.reputation != nil {
		r := v.chain.reputation
		if r == nil || r.address != *s.reputation {
			return nil, ErrNoCode
		}
		if !r.authorized[s.address] {
			return nil, v.chain.reject("UnauthorizedCaller", "Not authorized", s.address)
		}
		weight = r.user(v.from).weight()
		logs = r.record(v.from)
	}

	if s.voted[v.from] == nil {
		s.voted[v.from] = make(map[uint64]bool)
	}
	s.voted[v.from][i] = true
	p := s.proposals[i]
	p.votes.Add(p.votes, big.NewInt(1))
	p.weighted.Add(p.weighted, weight)

	event := contracts.VotingABI().Events["VoteCast"]
	data, err := event.Inputs.Pack(v.from, id)
	if err != nil {
		return nil, err
	}
	logs = append([]*types.Log{{Address: s.address, Topics: []common.Hash{event.ID}, Data: data}}, logs...)

	address := s.address
	return v.chain.commit(&address, "vote", logs, common.Address{}), nil
}

// ParseProposalCreated decodes the ProposalCreated events in receipt
func (v *Voting) ParseProposalCreated(receipt *types.Receipt) ([]client.ProposalCreated, error) {
	address := v.chain.VotingAddress()
	event := contracts.VotingABI().Events["ProposalCreated"]

	var events []client.ProposalCreated
	for _, log := range receipt.Logs {
		if log.Address != address || len(log.Topics) == 0 || log.Topics[0] != event.ID {
			continue
		}
		values, err := event.Inputs.Unpack(log.Data)
		if err != nil {
			return nil, err
		}
		events = append(events, client.ProposalCreated{
			ProposalID:  values[0].(*big.Int),
			Description: values[1].(string),
		})
	}
	return events, nil
}
