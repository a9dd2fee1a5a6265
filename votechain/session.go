package votechain

import (
	"context"
	"errors"
	"log/slog"
	"math/big"
	"sync"
	"time"

	"github.com/AlexZinkM/votechain/internal/common"
	"github.com/AlexZinkM/votechain/internal/metrics"
	"github.com/AlexZinkM/votechain/internal/model"
	"github.com/AlexZinkM/votechain/internal/wallet"

	ethcommon "github.com/ethereum/go-ethereum/common"
)

// Session is an active wallet connection with its bound ledgers
type Session struct {
	Account ethcommon.Address
	ChainID *big.Int
	Ledgers
}

// Manager establishes and tears down the wallet session.
// It is the only writer of the session, everyone else reads it through Current.
type Manager struct {
	agent   Agent
	binder  Binder
	logger  *slog.Logger
	metrics *metrics.Metrics

	connectMu sync.Mutex // one access request at a time
	mu        sync.RWMutex
	session   *Session
	indicator model.WalletIndicator
	listeners []func(context.Context, *Session)
}

// NewManager creates a session manager
func NewManager(agent Agent, binder Binder, logger *slog.Logger, m *metrics.Metrics) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		agent:   agent,
		binder:  binder,
		logger:  logger.With("component", "session"),
		metrics: m,
	}
}

// OnChange registers fn to run after the session is connected (non-nil) or reset (nil)
func (m *Manager) OnChange(fn func(context.Context, *Session)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, fn)
}

// Current returns the active session or nil
func (m *Manager) Current() *Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.session
}

// Indicator returns the visible connection indicator
func (m *Manager) Indicator() model.WalletIndicator {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.indicator
}

// Connect requests account access and binds a session to the first account
func (m *Manager) Connect(ctx context.Context) (*Session, error) {
	m.connectMu.Lock()
	defer m.connectMu.Unlock()

	session, err := m.connect(ctx)
	if m.metrics != nil {
		m.metrics.ActionDone(ActionConnect, err)
	}
	if err != nil {
		return nil, err
	}

	m.logger.Info("wallet connected", "account", session.Account.Hex(), "chain_id", session.ChainID.String())
	m.set(ctx, session)
	return session, nil
}

func (m *Manager) connect(ctx context.Context) (*Session, error) {
	if !m.agent.Available() {
		return nil, newError(KindNoWalletDetected, msgNoWallet, nil)
	}

	accounts, err := m.agent.RequestAccounts(ctx)
	if err != nil {
		if errors.Is(err, wallet.ErrNoWallet) {
			return nil, newError(KindNoWalletDetected, msgNoWallet, err)
		}
		return nil, newError(KindUserRejected, msgConnectionDenied, err)
	}
	if len(accounts) == 0 {
		return nil, newError(KindUserRejected, msgConnectionDenied, nil)
	}
	account := accounts[0]

	chainID, err := m.binder.ChainID(ctx)
	if err != nil {
		return nil, classify(ActionConnect, err)
	}

	opts, err := m.agent.Transactor(account, chainID)
	if err != nil {
		return nil, classify(ActionConnect, err)
	}

	ledgers, err := m.binder.Bind(account, opts)
	if err != nil {
		return nil, classify(ActionConnect, err)
	}

	return &Session{Account: account, ChainID: chainID, Ledgers: ledgers}, nil
}

// Resume connects silently when the agent already authorized an account.
// Failures are logged, never returned.
func (m *Manager) Resume(ctx context.Context) {
	if !m.agent.Available() || len(m.agent.Accounts()) == 0 {
		return
	}
	if _, err := m.Connect(ctx); err != nil {
		m.logger.Warn("error checking wallet connection", "error", err)
	}
}

// AccountsChanged reacts to the agent switching or revoking accounts
func (m *Manager) AccountsChanged(ctx context.Context, accounts []ethcommon.Address) {
	if len(accounts) == 0 {
		m.logger.Info("accounts revoked")
		m.Reset(ctx)
		return
	}
	m.logger.Info("accounts changed", "account", accounts[0].Hex())
	if _, err := m.Connect(ctx); err != nil {
		m.logger.Warn("failed to reconnect", "error", err)
	}
}

// ChainChanged reacts to the node switching networks
func (m *Manager) ChainChanged(ctx context.Context) {
	m.logger.Info("chain changed")
	m.Reset(ctx)
}

// Reset drops the session and starts over as on a fresh load
func (m *Manager) Reset(ctx context.Context) {
	m.set(ctx, nil)
	m.Resume(ctx)
}

// Watch polls the agent and the node and reports account or chain changes
// until ctx is done
func (m *Manager) Watch(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			m.poll(ctx)
		}
	}
}

func (m *Manager) poll(ctx context.Context) {
	session := m.Current()
	if session == nil {
		return
	}

	accounts := m.agent.Accounts()
	if len(accounts) == 0 || accounts[0] != session.Account {
		m.AccountsChanged(ctx, accounts)
		return
	}

	chainID, err := m.binder.ChainID(ctx)
	if err != nil {
		m.logger.Debug("failed to read chain id", "error", err)
		return
	}
	if chainID.Cmp(session.ChainID) != 0 {
		m.ChainChanged(ctx)
	}
}

func (m *Manager) set(ctx context.Context, session *Session) {
	m.mu.Lock()
	m.session = session
	m.indicator = m.buildIndicator(session)
	listeners := append([]func(context.Context, *Session){}, m.listeners...)
	m.mu.Unlock()

	if m.metrics != nil {
		if session != nil {
			m.metrics.SessionConnected.Set(1)
		} else {
			m.metrics.SessionConnected.Set(0)
		}
	}
	for _, fn := range listeners {
		fn(ctx, session)
	}
}

func (m *Manager) buildIndicator(session *Session) model.WalletIndicator {
	if session == nil {
		return model.WalletIndicator{}
	}
	address := session.Account.Hex()
	indicator := model.WalletIndicator{
		Connected:    true,
		Address:      address,
		ShortAddress: common.ShortAddress(address),
		ChainID:      session.ChainID.String(),
	}
	if qr, err := wallet.QRCode(address); err == nil {
		indicator.QR = qr
	} else {
		m.logger.Debug("failed to render address QR code", "error", err)
	}
	return indicator
}
