package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"math/big"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/AlexZinkM/votechain/internal/crypto"
	"github.com/AlexZinkM/votechain/internal/ledgertest"
	"github.com/AlexZinkM/votechain/internal/metrics"
	"github.com/AlexZinkM/votechain/internal/model"
	"github.com/AlexZinkM/votechain/internal/wallet"
	"github.com/AlexZinkM/votechain/votechain"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	owner = common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
	alice = common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8")
)

func TestMain(m *testing.M) {
	restore := crypto.SetCostForTesting(1 << 10)
	code := m.Run()
	restore()
	os.Exit(code)
}

type chainBinder struct {
	chain *ledgertest.Chain
}

func (b chainBinder) ChainID(ctx context.Context) (*big.Int, error) {
	return b.chain.ChainID(ctx)
}

func (b chainBinder) Bind(_ common.Address, opts *bind.TransactOpts) (votechain.Ledgers, error) {
	ledgers := votechain.Ledgers{
		Token:  b.chain.Token(opts.From),
		Voting: b.chain.Voting(opts.From),
	}
	if b.chain.ReputationAddress() != nil {
		ledgers.Reputation = b.chain.Reputation(opts.From)
	}
	return ledgers, nil
}

type server struct {
	*httptest.Server
	app   *votechain.App
	chain *ledgertest.Chain
}

func newServer(t *testing.T, withReputation bool, accounts ...common.Address) *server {
	t.Helper()
	chain := ledgertest.NewDeployedChain(owner, withReputation)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	app := votechain.New(ledgertest.NewAgent(accounts...), chainBinder{chain: chain}, chain, "STK", logger, metrics.New(nil))

	walletHandler, err := NewWalletHandler(app, filepath.Join(t.TempDir(), "wallet.cwt"), wallet.PrompterFunc(func(string) ([]byte, error) {
		return []byte("secret"), nil
	}))
	require.NoError(t, err)
	dashboardHandler := NewDashboardHandler(app)
	actionHandler := NewActionHandler(app)

	mux := http.NewServeMux()
	mux.HandleFunc("/wallet", walletHandler.Status)
	mux.HandleFunc("/wallet/generate", walletHandler.Generate)
	mux.HandleFunc("/wallet/connect", walletHandler.Connect)
	mux.HandleFunc("/dashboard", dashboardHandler.Get)
	mux.HandleFunc("/dashboard/banner/dismiss", dashboardHandler.DismissBanner)
	mux.HandleFunc("/reputation", dashboardHandler.Reputation)
	mux.HandleFunc("/proposals", actionHandler.CreateProposal)
	mux.HandleFunc("/proposals/vote", actionHandler.Vote)
	mux.HandleFunc("/tokens/mint", actionHandler.Mint)

	s := &server{Server: httptest.NewServer(mux), app: app, chain: chain}
	t.Cleanup(s.Close)
	return s
}

func (s *server) post(t *testing.T, path string, body any, out any) int {
	t.Helper()
	var payload bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&payload).Encode(body))
	}
	resp, err := http.Post(s.URL+path, "application/json", &payload)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func (s *server) get(t *testing.T, path string, out any) int {
	t.Helper()
	resp, err := http.Get(s.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func proposal(id uint64) *uint64 {
	return &id
}

func TestNewWalletHandlerRequiresPath(t *testing.T) {
	_, err := NewWalletHandler(nil, "", nil)
	assert.Error(t, err)
}

func TestGenerateWallet(t *testing.T) {
	s := newServer(t, false)

	var generated model.GenerateResponse
	require.Equal(t, http.StatusOK, s.post(t, "/wallet/generate", nil, &generated))
	assert.True(t, generated.Success)
	assert.True(t, common.IsHexAddress(generated.Address))

	var conflict model.ErrorResponse
	assert.Equal(t, http.StatusConflict, s.post(t, "/wallet/generate", nil, &conflict))
	assert.NotEmpty(t, conflict.Error)
}

func TestMethodNotAllowed(t *testing.T) {
	s := newServer(t, false, owner)

	assert.Equal(t, http.StatusMethodNotAllowed, s.get(t, "/wallet/connect", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, s.get(t, "/proposals", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, s.post(t, "/dashboard", nil, nil))
}

func TestConnectWithoutWallet(t *testing.T) {
	s := newServer(t, false)

	var failure model.ErrorResponse
	assert.Equal(t, http.StatusNotFound, s.post(t, "/wallet/connect", nil, &failure))
	assert.Equal(t, string(votechain.KindNoWalletDetected), failure.Code)

	var indicator model.WalletIndicator
	require.Equal(t, http.StatusOK, s.get(t, "/wallet", &indicator))
	assert.False(t, indicator.Connected)
}

func TestConnectAndDashboard(t *testing.T) {
	s := newServer(t, false, owner)

	var indicator model.WalletIndicator
	require.Equal(t, http.StatusOK, s.post(t, "/wallet/connect", nil, &indicator))
	assert.True(t, indicator.Connected)
	assert.Equal(t, "0xf39F...2266", indicator.ShortAddress)

	var d model.Dashboard
	require.Equal(t, http.StatusOK, s.get(t, "/dashboard?refresh=true", &d))
	assert.Equal(t, "1000000.00 STK", d.Balance.Display)
	assert.Equal(t, "0", d.TotalProposals)
	assert.Empty(t, d.Proposals)
	require.NotNil(t, d.Banner)
	assert.Equal(t, "Wallet connected successfully!", d.Banner.Message)

	require.Equal(t, http.StatusNoContent, s.post(t, "/dashboard/banner/dismiss", nil, nil))
	d = model.Dashboard{}
	require.Equal(t, http.StatusOK, s.get(t, "/dashboard", &d))
	assert.Nil(t, d.Banner)
}

func TestProposalLifecycle(t *testing.T) {
	s := newServer(t, false, owner)
	require.Equal(t, http.StatusOK, s.post(t, "/wallet/connect", nil, nil))

	var created model.ActionResponse
	require.Equal(t, http.StatusOK, s.post(t, "/proposals", model.CreateProposalRequest{Description: "Test proposal"}, &created))
	assert.Equal(t, "Proposal created successfully!", created.Message)
	require.NotNil(t, created.ProposalID)
	assert.Equal(t, uint64(0), *created.ProposalID)
	assert.NotEmpty(t, created.TxHash)

	var voted model.ActionResponse
	require.Equal(t, http.StatusOK, s.post(t, "/proposals/vote", model.VoteRequest{ProposalID: proposal(0)}, &voted))
	assert.Equal(t, "Vote cast successfully!", voted.Message)

	var again model.ErrorResponse
	assert.Equal(t, http.StatusConflict, s.post(t, "/proposals/vote", model.VoteRequest{ProposalID: proposal(0)}, &again))
	assert.Equal(t, "You have already voted on this proposal!", again.Error)
	assert.Equal(t, string(votechain.KindAlreadyVoted), again.Code)

	var missing model.ErrorResponse
	assert.Equal(t, http.StatusNotFound, s.post(t, "/proposals/vote", model.VoteRequest{ProposalID: proposal(7)}, &missing))
	assert.Equal(t, "This proposal does not exist!", missing.Error)

	var d model.Dashboard
	require.Equal(t, http.StatusOK, s.get(t, "/dashboard", &d))
	require.Len(t, d.Proposals, 1)
	assert.Equal(t, "Test proposal", d.Proposals[0].Description)
	assert.Equal(t, "1", d.Proposals[0].VoteCount)
	assert.True(t, d.Proposals[0].HasCurrentUserVoted)
	assert.Equal(t, "1", d.TotalVotes)
}

func TestActionErrors(t *testing.T) {
	tests := []struct {
		name    string
		connect bool
		account common.Address
		path    string
		body    any
		status  int
		code    votechain.Kind
		message string
	}{
		{
			name:    "not connected",
			path:    "/proposals",
			account: owner,
			body:    model.CreateProposalRequest{Description: "Hello"},
			status:  http.StatusUnauthorized,
			code:    votechain.KindNotConnected,
			message: "Please connect your wallet first!",
		},
		{
			name:    "empty description",
			connect: true,
			account: owner,
			path:    "/proposals",
			body:    model.CreateProposalRequest{Description: "  "},
			status:  http.StatusBadRequest,
			code:    votechain.KindEmptyInput,
			message: "Please enter a proposal description!",
		},
		{
			name:    "proposal by non-owner",
			connect: true,
			account: alice,
			path:    "/proposals",
			body:    model.CreateProposalRequest{Description: "Hello"},
			status:  http.StatusForbidden,
			code:    votechain.KindUnauthorized,
			message: "Only the contract owner can create proposals!",
		},
		{
			name:    "mint with bad address",
			connect: true,
			account: owner,
			path:    "/tokens/mint",
			body:    model.MintRequest{Address: "0x123", Amount: "1"},
			status:  http.StatusBadRequest,
			code:    votechain.KindInvalidAddress,
			message: "Please enter a valid Ethereum address!",
		},
		{
			name:    "mint by non-owner",
			connect: true,
			account: alice,
			path:    "/tokens/mint",
			body:    model.MintRequest{Address: alice.Hex(), Amount: "1"},
			status:  http.StatusForbidden,
			code:    votechain.KindUnauthorized,
			message: "Only the contract owner can mint tokens!",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newServer(t, false, tt.account)
			if tt.connect {
				require.Equal(t, http.StatusOK, s.post(t, "/wallet/connect", nil, nil))
			}

			var failure model.ErrorResponse
			assert.Equal(t, tt.status, s.post(t, tt.path, tt.body, &failure))
			assert.Equal(t, string(tt.code), failure.Code)
			assert.Equal(t, tt.message, failure.Error)
		})
	}
}

func TestMalformedBody(t *testing.T) {
	s := newServer(t, false, owner)
	require.Equal(t, http.StatusOK, s.post(t, "/wallet/connect", nil, nil))
	before := s.chain.Submitted()

	resp, err := http.Post(s.URL+"/tokens/mint", "application/json", bytes.NewBufferString("{"))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, before, s.chain.Submitted())
}

func TestVoteRejectsMissingProposal(t *testing.T) {
	s := newServer(t, false, owner)
	require.Equal(t, http.StatusOK, s.post(t, "/wallet/connect", nil, nil))
	require.Equal(t, http.StatusOK, s.post(t, "/proposals", model.CreateProposalRequest{Description: "Only on purpose"}, nil))
	before := s.chain.Submitted()

	tests := []struct {
		name string
		body any
		code votechain.Kind
	}{
		{name: "misspelled key", body: map[string]any{"proposal_id": 5}},
		{name: "missing key", body: map[string]any{}, code: votechain.KindEmptyInput},
		{name: "null id", body: map[string]any{"proposalId": nil}, code: votechain.KindEmptyInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var failure model.ErrorResponse
			assert.Equal(t, http.StatusBadRequest, s.post(t, "/proposals/vote", tt.body, &failure))
			assert.Equal(t, string(tt.code), failure.Code)
		})
	}

	assert.Equal(t, before, s.chain.Submitted())
	var d model.Dashboard
	require.Equal(t, http.StatusOK, s.get(t, "/dashboard", &d))
	require.Len(t, d.Proposals, 1)
	assert.Equal(t, "0", d.Proposals[0].VoteCount)
}

func TestMint(t *testing.T) {
	s := newServer(t, false, owner)
	require.Equal(t, http.StatusOK, s.post(t, "/wallet/connect", nil, nil))

	var minted model.ActionResponse
	require.Equal(t, http.StatusOK, s.post(t, "/tokens/mint", model.MintRequest{Address: owner.Hex(), Amount: "100"}, &minted))
	assert.Equal(t, "Tokens minted successfully!", minted.Message)

	var d model.Dashboard
	require.Equal(t, http.StatusOK, s.get(t, "/dashboard", &d))
	assert.Equal(t, "1000100.00 STK", d.Balance.Display)
	assert.Equal(t, "1000100", d.Balance.Amount)
}

func TestReputation(t *testing.T) {
	t.Run("not configured", func(t *testing.T) {
		s := newServer(t, false, owner)
		require.Equal(t, http.StatusOK, s.post(t, "/wallet/connect", nil, nil))

		var failure model.ErrorResponse
		assert.Equal(t, http.StatusNotFound, s.get(t, "/reputation", &failure))
	})

	t.Run("not connected", func(t *testing.T) {
		s := newServer(t, true, owner)

		var failure model.ErrorResponse
		assert.Equal(t, http.StatusUnauthorized, s.get(t, "/reputation", &failure))
	})

	t.Run("after voting", func(t *testing.T) {
		s := newServer(t, true, owner)
		require.Equal(t, http.StatusOK, s.post(t, "/wallet/connect", nil, nil))
		require.Equal(t, http.StatusOK, s.post(t, "/proposals", model.CreateProposalRequest{Description: "Weighted"}, nil))
		require.Equal(t, http.StatusOK, s.post(t, "/proposals/vote", model.VoteRequest{ProposalID: proposal(0)}, nil))

		var reputation model.Reputation
		require.Equal(t, http.StatusOK, s.get(t, "/reputation", &reputation))
		assert.Equal(t, "10", reputation.Score)
		assert.Equal(t, "1", reputation.TotalVotes)
		assert.Contains(t, reputation.Badges, uint64(0))
	})
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, statusFor(votechain.KindInvalidAmount))
	assert.Equal(t, http.StatusForbidden, statusFor(votechain.KindUserRejected))
	assert.Equal(t, http.StatusBadGateway, statusFor(votechain.KindRemoteCallFailed))
}
