package votechain

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/AlexZinkM/votechain/internal/ledgertest"

	"github.com/ethereum/go-ethereum/common"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectNoWallet(t *testing.T) {
	f := newFixture(t, false)

	_, err := f.app.Connect(context.Background())
	assert.Equal(t, KindNoWalletDetected, KindOf(err))
	assert.Nil(t, f.app.Sessions.Current())

	d := f.app.Dashboard()
	require.NotNil(t, d.Banner)
	assert.Equal(t, BannerError, d.Banner.Type)
	assert.Equal(t, string(KindNoWalletDetected), d.Banner.Code)
	assert.False(t, d.Busy)
}

func TestConnectRejected(t *testing.T) {
	f := newFixture(t, false, alice)
	f.agent.Reject(true)

	_, err := f.app.Connect(context.Background())
	assert.Equal(t, KindUserRejected, KindOf(err))
	assert.ErrorIs(t, err, ledgertest.ErrRejected)
	assert.Nil(t, f.app.Sessions.Current())
}

func TestConnectBindsFirstAccount(t *testing.T) {
	f := newFixture(t, false, alice, bob)

	session, err := f.app.Connect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, alice, session.Account)
	assert.Equal(t, ledgertest.DefaultChainID, session.ChainID)
	assert.Nil(t, session.Reputation)

	d := f.app.Dashboard()
	assert.True(t, d.Wallet.Connected)
	assert.Equal(t, "0x7099...79C8", d.Wallet.ShortAddress)
	assert.NotEmpty(t, d.Wallet.QR)
	assert.Equal(t, "Wallet connected successfully!", d.Banner.Message)
	assert.Equal(t, "0", d.TotalProposals, "connecting loads the page")
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.SessionConnected))
}

func TestConnectWithReputationBindsReputationLedger(t *testing.T) {
	f := connected(t, true, alice)
	assert.NotNil(t, f.app.Sessions.Current().Reputation)
	assert.NotNil(t, f.app.Dashboard().Reputation)
}

func TestResume(t *testing.T) {
	t.Run("previously authorized", func(t *testing.T) {
		f := newFixture(t, false, alice)
		f.agent.Authorize()

		f.app.Sessions.Resume(context.Background())
		require.NotNil(t, f.app.Sessions.Current())
		assert.Equal(t, alice, f.app.Sessions.Current().Account)
	})

	t.Run("never authorized", func(t *testing.T) {
		f := newFixture(t, false, alice)

		f.app.Sessions.Resume(context.Background())
		assert.Nil(t, f.app.Sessions.Current())
		assert.Zero(t, f.agent.Requests(), "resume never prompts")
	})

	t.Run("no wallet", func(t *testing.T) {
		f := newFixture(t, false)
		f.app.Sessions.Resume(context.Background())
		assert.Nil(t, f.app.Sessions.Current())
	})
}

func TestAccountsChanged(t *testing.T) {
	f := connected(t, false, alice)
	ctx := context.Background()

	f.agent.SetAccounts(bob)
	f.app.Sessions.AccountsChanged(ctx, []common.Address{bob})
	require.NotNil(t, f.app.Sessions.Current())
	assert.Equal(t, bob, f.app.Sessions.Current().Account)

	f.agent.SetAccounts()
	f.app.Sessions.AccountsChanged(ctx, nil)
	assert.Nil(t, f.app.Sessions.Current())

	d := f.app.Dashboard()
	assert.False(t, d.Wallet.Connected)
	assert.Nil(t, d.Balance)
	assert.Empty(t, d.Proposals)
}

func TestChainChangedReconnects(t *testing.T) {
	f := connected(t, false, alice)

	f.chain.SwitchChain(big.NewInt(11155111))
	f.app.Sessions.ChainChanged(context.Background())

	session := f.app.Sessions.Current()
	require.NotNil(t, session, "still authorized, so the reload reconnects")
	assert.Equal(t, big.NewInt(11155111), session.ChainID)
}

func TestWatchDetectsChanges(t *testing.T) {
	f := connected(t, false, alice)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- f.app.Sessions.Watch(ctx, 5*time.Millisecond) }()

	f.chain.SwitchChain(big.NewInt(5))
	require.Eventually(t, func() bool {
		s := f.app.Sessions.Current()
		return s != nil && s.ChainID.Cmp(big.NewInt(5)) == 0
	}, time.Second, 5*time.Millisecond)

	f.agent.SetAccounts()
	require.Eventually(t, func() bool {
		return f.app.Sessions.Current() == nil
	}, time.Second, 5*time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}
