package votechain

import (
	"slices"
	"sync"

	"github.com/AlexZinkM/votechain/internal/model"
)

// Banner types
const (
	BannerSuccess = "success"
	BannerError   = "error"
)

const emptyProposalsMessage = "No proposals yet. Create the first one!"

// View is the dashboard page state. Refreshes and actions write it concurrently,
// readers take a Snapshot.
type View struct {
	mu             sync.Mutex
	wallet         model.WalletIndicator
	proposals      []model.Proposal
	empty          bool
	balance        *model.TokenBalance
	totalProposals string
	totalVotes     string
	reputation     *model.Reputation
	busy           int
	banner         *model.Banner
}

// NewView returns an empty page
func NewView() *View {
	return &View{}
}

// Snapshot returns a copy of the page for rendering
func (v *View) Snapshot() model.Dashboard {
	v.mu.Lock()
	defer v.mu.Unlock()

	d := model.Dashboard{
		Wallet:         v.wallet,
		Proposals:      slices.Clone(v.proposals),
		TotalProposals: v.totalProposals,
		TotalVotes:     v.totalVotes,
		Busy:           v.busy > 0,
	}
	if d.Proposals == nil {
		d.Proposals = []model.Proposal{}
	}
	if v.empty {
		d.EmptyMessage = emptyProposalsMessage
	}
	if v.balance != nil {
		b := *v.balance
		d.Balance = &b
	}
	if v.reputation != nil {
		r := *v.reputation
		r.Badges = slices.Clone(r.Badges)
		d.Reputation = &r
	}
	if v.banner != nil {
		b := *v.banner
		d.Banner = &b
	}
	return d
}

// SetWallet updates the connection indicator
func (v *View) SetWallet(indicator model.WalletIndicator) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.wallet = indicator
}

// SetProposals replaces the proposal list. An empty list renders the empty state.
func (v *View) SetProposals(proposals []model.Proposal) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.proposals = proposals
	v.empty = len(proposals) == 0
}

// SetBalance replaces the token balance
func (v *View) SetBalance(balance model.TokenBalance) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.balance = &balance
}

// SetStats replaces the aggregate counters
func (v *View) SetStats(totalProposals, totalVotes string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.totalProposals = totalProposals
	v.totalVotes = totalVotes
}

// SetReputation replaces the reputation panel
func (v *View) SetReputation(reputation model.Reputation) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.reputation = &reputation
}

// BeginBusy shows the busy indicator and returns the function hiding it.
// Overlapping actions keep it shown until the last one ends.
func (v *View) BeginBusy() (end func()) {
	v.mu.Lock()
	v.busy++
	v.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			v.mu.Lock()
			v.busy--
			v.mu.Unlock()
		})
	}
}

// ShowBanner replaces the banner
func (v *View) ShowBanner(banner model.Banner) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.banner = &banner
}

// DismissBanner hides the banner
func (v *View) DismissBanner() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.banner = nil
}

// Clear resets the page to its disconnected state. The banner survives.
func (v *View) Clear() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.wallet = model.WalletIndicator{}
	v.proposals = nil
	v.empty = false
	v.balance = nil
	v.totalProposals = ""
	v.totalVotes = ""
	v.reputation = nil
}
