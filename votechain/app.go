package votechain

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/AlexZinkM/votechain/internal/metrics"
	"github.com/AlexZinkM/votechain/internal/model"
)

// App is the dashboard: one wallet session, the page it renders, and the
// actions that change it. Everything is reached through it rather than
// through package state.
type App struct {
	Sessions *Manager
	View     *View
	Refresh  *Controller
	Actions  *Dispatcher

	logger *slog.Logger
}

// New wires a dashboard over agent and the ledgers reachable through binder
func New(agent Agent, binder Binder, confirmer Confirmer, symbol string, logger *slog.Logger, m *metrics.Metrics) *App {
	if logger == nil {
		logger = slog.Default()
	}
	if m == nil {
		m = metrics.New(nil)
	}

	view := NewView()
	sessions := NewManager(agent, binder, logger, m)
	controller := NewController(view, symbol, logger, m)
	dispatcher := NewDispatcher(sessions, confirmer, controller, view, logger, m)

	sessions.OnChange(func(ctx context.Context, s *Session) {
		if s == nil {
			view.Clear()
			return
		}
		view.SetWallet(sessions.Indicator())
		controller.RefreshAll(ctx, s)
	})

	return &App{
		Sessions: sessions,
		View:     view,
		Refresh:  controller,
		Actions:  dispatcher,
		logger:   logger,
	}
}

// Run resumes a previously authorized session and watches for account or
// chain changes until ctx is done
func (a *App) Run(ctx context.Context, interval time.Duration) error {
	a.Sessions.Resume(ctx)
	return a.Sessions.Watch(ctx, interval)
}

// Connect connects the wallet and reports the outcome in the banner
func (a *App) Connect(ctx context.Context) (*Session, error) {
	end := a.View.BeginBusy()
	defer end()

	session, err := a.Sessions.Connect(ctx)
	if err != nil {
		a.View.ShowBanner(model.Banner{Type: BannerError, Message: Message(err), Code: string(KindOf(err))})
		return nil, err
	}

	a.View.ShowBanner(model.Banner{Type: BannerSuccess, Message: msgConnected})
	return session, nil
}

// Dashboard returns the current page
func (a *App) Dashboard() model.Dashboard {
	return a.View.Snapshot()
}

// Reload re-reads every category for the active session
func (a *App) Reload(ctx context.Context) model.Dashboard {
	if s := a.Sessions.Current(); s != nil {
		a.Refresh.RefreshAll(ctx, s)
	}
	return a.View.Snapshot()
}

// ErrNoReputation is returned when no reputation ledger is configured
var ErrNoReputation = errors.New("reputation ledger not configured")

// Reputation re-reads the connected account's reputation
func (a *App) Reputation(ctx context.Context) (*model.Reputation, error) {
	s := a.Sessions.Current()
	if s == nil {
		return nil, newError(KindNotConnected, msgNotConnected, nil)
	}
	if s.Reputation == nil {
		return nil, ErrNoReputation
	}
	if err := a.Refresh.LoadReputation(ctx, s); err != nil {
		return nil, newError(KindRemoteCallFailed, err.Error(), err)
	}
	return a.View.Snapshot().Reputation, nil
}
