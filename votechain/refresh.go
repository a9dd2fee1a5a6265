package votechain

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"
	"strconv"

	"github.com/AlexZinkM/votechain/internal/common"
	"github.com/AlexZinkM/votechain/internal/metrics"
	"github.com/AlexZinkM/votechain/internal/model"

	"golang.org/x/sync/errgroup"
)

// Refresh categories, also used as metric labels
const (
	CategoryProposals  = "proposals"
	CategoryBalance    = "balance"
	CategoryStats      = "stats"
	CategoryReputation = "reputation"
)

// Controller re-reads the ledgers and renders them into the View.
// Nothing is cached between refreshes.
type Controller struct {
	view    *View
	symbol  string
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewController creates a refresh controller rendering balances with symbol
func NewController(view *View, symbol string, logger *slog.Logger, m *metrics.Metrics) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		view:    view,
		symbol:  symbol,
		logger:  logger.With("component", "refresh"),
		metrics: m,
	}
}

// RefreshAll reloads every category concurrently. A failing category is
// logged and skipped, the others still render.
func (c *Controller) RefreshAll(ctx context.Context, s *Session) {
	if s == nil {
		return
	}

	var g errgroup.Group
	c.spawn(ctx, &g, s, CategoryProposals, c.LoadProposals)
	c.spawn(ctx, &g, s, CategoryBalance, c.LoadTokenBalance)
	c.spawn(ctx, &g, s, CategoryStats, c.LoadStats)
	if s.Reputation != nil {
		c.spawn(ctx, &g, s, CategoryReputation, c.LoadReputation)
	}
	_ = g.Wait() // loaders never fail the group
}

func (c *Controller) spawn(ctx context.Context, g *errgroup.Group, s *Session, category string, load func(context.Context, *Session) error) {
	g.Go(func() error {
		if err := load(ctx, s); err != nil {
			c.logger.Error("error loading data", "category", category, "error", err)
			if c.metrics != nil {
				c.metrics.RefreshFailures.WithLabelValues(category).Inc()
			}
		}
		return nil
	})
}

// LoadProposals reads every proposal and whether the session account voted on it.
// Reads are sequential, the vote status read depends on the proposal index.
func (c *Controller) LoadProposals(ctx context.Context, s *Session) error {
	count, err := proposalCount(ctx, s)
	if err != nil {
		return err
	}

	var proposals []model.Proposal
	for i := uint64(0); i < count; i++ {
		id := new(big.Int).SetUint64(i)

		data, err := s.Voting.GetProposal(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to read proposal %d: %w", i, err)
		}
		voted, err := s.Voting.HasVoted(ctx, s.Account, id)
		if err != nil {
			return fmt.Errorf("failed to read vote status of proposal %d: %w", i, err)
		}

		proposal := model.Proposal{
			ID:                  i,
			Description:         data.Description,
			VoteCount:           data.VoteCount.String(),
			HasCurrentUserVoted: voted,
		}
		if data.WeightedVoteCount != nil {
			proposal.WeightedVoteCount = data.WeightedVoteCount.String()
		}
		proposals = append(proposals, proposal)
	}

	c.view.SetProposals(proposals)
	return nil
}

// proposalCount reads the number of proposals, which must fit in a uint64
func proposalCount(ctx context.Context, s *Session) (uint64, error) {
	count, err := s.Voting.ProposalCount(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to read proposal count: %w", err)
	}
	if count.Sign() < 0 || !count.IsUint64() {
		return 0, fmt.Errorf("proposal count %s out of range", count)
	}
	return count.Uint64(), nil
}

// LoadTokenBalance reads the session account's balance
func (c *Controller) LoadTokenBalance(ctx context.Context, s *Session) error {
	raw, err := s.Token.BalanceOf(ctx, s.Account)
	if err != nil {
		return fmt.Errorf("failed to read balance: %w", err)
	}
	decimals, err := s.Token.Decimals(ctx)
	if err != nil {
		return fmt.Errorf("failed to read decimals: %w", err)
	}

	c.view.SetBalance(model.TokenBalance{
		Owner:     s.Account.Hex(),
		RawAmount: raw.String(),
		Amount:    common.FormatUnits(raw, decimals),
		Decimals:  decimals,
		Display:   common.FormatBalance(raw, decimals, c.symbol),
	})
	return nil
}

// LoadStats counts proposals and sums their votes, one read per proposal
func (c *Controller) LoadStats(ctx context.Context, s *Session) error {
	count, err := proposalCount(ctx, s)
	if err != nil {
		return err
	}

	total := new(big.Int)
	for i := uint64(0); i < count; i++ {
		data, err := s.Voting.GetProposal(ctx, new(big.Int).SetUint64(i))
		if err != nil {
			return fmt.Errorf("failed to read proposal %d: %w", i, err)
		}
		total.Add(total, data.VoteCount)
	}

	c.view.SetStats(strconv.FormatUint(count, 10), total.String())
	return nil
}

// LoadReputation reads the session account's reputation and badges
func (c *Controller) LoadReputation(ctx context.Context, s *Session) error {
	if s.Reputation == nil {
		return nil
	}

	data, err := s.Reputation.GetUserReputation(ctx, s.Account)
	if err != nil {
		return fmt.Errorf("failed to read reputation: %w", err)
	}
	badges, err := s.Reputation.GetUserBadges(ctx, s.Account)
	if err != nil {
		return fmt.Errorf("failed to read badges: %w", err)
	}

	ids := make([]uint64, 0, len(badges))
	for _, b := range badges {
		ids = append(ids, b.Uint64())
	}

	c.view.SetReputation(model.Reputation{
		Score:            data.Score.String(),
		TotalVotes:       data.TotalVotes.String(),
		ConsecutiveVotes: data.ConsecutiveVotes.String(),
		AchievementLevel: data.AchievementLevel.String(),
		VotingWeight:     data.VotingWeight.String(),
		IsActive:         data.IsActive,
		Badges:           ids,
	})
	return nil
}
