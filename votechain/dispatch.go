package votechain

import (
	"context"
	"log/slog"
	"math/big"
	"strings"
	"time"

	"github.com/AlexZinkM/votechain/internal/common"
	"github.com/AlexZinkM/votechain/internal/metrics"
	"github.com/AlexZinkM/votechain/internal/model"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// SessionSource provides the active session
type SessionSource interface {
	Current() *Session
}

// Result is a confirmed action
type Result struct {
	Message    string
	TxHash     ethcommon.Hash
	Block      uint64
	ProposalID *uint64
}

// Dispatcher validates and submits the mutating actions, waits for their
// confirmation and refreshes the view. The busy indicator is shown from
// submission until the refresh after confirmation.
type Dispatcher struct {
	sessions   SessionSource
	confirmer  Confirmer
	controller *Controller
	view       *View
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

// NewDispatcher creates an action dispatcher
func NewDispatcher(sessions SessionSource, confirmer Confirmer, controller *Controller, view *View, logger *slog.Logger, m *metrics.Metrics) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		sessions:   sessions,
		confirmer:  confirmer,
		controller: controller,
		view:       view,
		logger:     logger.With("component", "dispatcher"),
		metrics:    m,
	}
}

// CreateProposal submits a new proposal. Only the voting ledger owner may do this.
func (d *Dispatcher) CreateProposal(ctx context.Context, description string) (*Result, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, d.fail(ActionCreateProposal, newError(KindEmptyInput, msgEmptyDescription, nil))
	}
	session, err := d.requireSession(ActionCreateProposal)
	if err != nil {
		return nil, err
	}

	end := d.view.BeginBusy()
	defer end()

	result, err := d.submit(ctx, ActionCreateProposal, session, func(ctx context.Context) (*types.Transaction, error) {
		return session.Voting.CreateProposal(ctx, description)
	})
	if err != nil {
		return nil, err
	}

	if events, perr := session.Voting.ParseProposalCreated(result.receipt); perr != nil {
		d.logger.Warn("failed to decode ProposalCreated", "tx", result.TxHash.Hex(), "error", perr)
	} else if len(events) > 0 {
		id := events[0].ProposalID.Uint64()
		result.ProposalID = &id
	}

	return d.succeed(ctx, ActionCreateProposal, session, result, msgProposalCreated), nil
}

// VoteSelected casts a vote on the selected proposal. A request without a
// selection is rejected before anything reaches the ledger.
func (d *Dispatcher) VoteSelected(ctx context.Context, proposalID *uint64) (*Result, error) {
	if proposalID == nil {
		return nil, d.fail(ActionVote, newError(KindEmptyInput, msgNoProposal, nil))
	}
	return d.Vote(ctx, *proposalID)
}

// Vote casts the session account's vote on a proposal
func (d *Dispatcher) Vote(ctx context.Context, proposalID uint64) (*Result, error) {
	session, err := d.requireSession(ActionVote)
	if err != nil {
		return nil, err
	}

	end := d.view.BeginBusy()
	defer end()

	id := new(big.Int).SetUint64(proposalID)
	result, err := d.submit(ctx, ActionVote, session, func(ctx context.Context) (*types.Transaction, error) {
		return session.Voting.Vote(ctx, id)
	})
	if err != nil {
		return nil, err
	}

	return d.succeed(ctx, ActionVote, session, result, msgVoteCast), nil
}

// MintTokens mints amount (in whole tokens) to address. Only the token ledger owner may do this.
// Malformed input is rejected before anything reaches the ledger.
func (d *Dispatcher) MintTokens(ctx context.Context, address, amount string) (*Result, error) {
	address = strings.TrimSpace(address)
	amount = strings.TrimSpace(amount)
	if address == "" || amount == "" {
		return nil, d.fail(ActionMint, newError(KindEmptyInput, msgEmptyMint, nil))
	}
	if !common.IsValidAddress(address) {
		return nil, d.fail(ActionMint, newError(KindInvalidAddress, msgInvalidAddress, nil))
	}
	session, err := d.requireSession(ActionMint)
	if err != nil {
		return nil, err
	}

	end := d.view.BeginBusy()
	defer end()

	decimals, err := session.Token.Decimals(ctx)
	if err != nil {
		return nil, d.fail(ActionMint, classify(ActionMint, err))
	}
	raw, err := common.ParseUnits(amount, decimals)
	if err != nil {
		return nil, d.fail(ActionMint, newError(KindInvalidAmount, msgInvalidAmount, err))
	}

	to := ethcommon.HexToAddress(address)
	result, err := d.submit(ctx, ActionMint, session, func(ctx context.Context) (*types.Transaction, error) {
		return session.Token.Mint(ctx, to, raw)
	})
	if err != nil {
		return nil, err
	}

	return d.succeed(ctx, ActionMint, session, result, msgTokensMinted), nil
}

type submission struct {
	Result
	receipt *types.Receipt
}

// submit sends the transaction and blocks until it is included. The wait has
// no deadline and outlives the caller's cancellation.
func (d *Dispatcher) submit(ctx context.Context, action string, session *Session, send func(context.Context) (*types.Transaction, error)) (*submission, error) {
	tx, err := send(ctx)
	if err != nil {
		return nil, d.fail(action, classify(action, err))
	}
	d.logger.Info("transaction submitted", "action", action, "account", session.Account.Hex(), "tx", tx.Hash().Hex())

	start := time.Now()
	receipt, err := d.confirmer.WaitMined(context.WithoutCancel(ctx), tx)
	if d.metrics != nil {
		d.metrics.ConfirmationTime.Observe(time.Since(start).Seconds())
	}
	if err != nil {
		return nil, d.fail(action, classify(action, err))
	}

	s := &submission{receipt: receipt}
	s.TxHash = tx.Hash()
	if receipt != nil && receipt.BlockNumber != nil {
		s.Block = receipt.BlockNumber.Uint64()
	}
	return s, nil
}

func (d *Dispatcher) requireSession(action string) (*Session, error) {
	session := d.sessions.Current()
	if session == nil {
		return nil, d.fail(action, newError(KindNotConnected, msgNotConnected, nil))
	}
	return session, nil
}

func (d *Dispatcher) succeed(ctx context.Context, action string, session *Session, s *submission, message string) *Result {
	// The session may have been reset while waiting; its data must not reach the new view
	if d.sessions.Current() == session {
		d.controller.RefreshAll(context.WithoutCancel(ctx), session)
	} else {
		d.logger.Info("session changed before confirmation, skipping refresh", "action", action)
	}

	d.logger.Info("action confirmed", "action", action, "tx", s.TxHash.Hex(), "block", s.Block)
	d.view.ShowBanner(model.Banner{Type: BannerSuccess, Message: message})
	if d.metrics != nil {
		d.metrics.ActionDone(action, nil)
	}

	result := s.Result
	result.Message = message
	return &result
}

func (d *Dispatcher) fail(action string, err *Error) *Error {
	d.logger.Warn("action failed", "action", action, "kind", err.Kind, "error", err)
	d.view.ShowBanner(model.Banner{Type: BannerError, Message: err.Message, Code: string(err.Kind)})
	if d.metrics != nil {
		d.metrics.ActionDone(action, err)
	}
	return err
}
