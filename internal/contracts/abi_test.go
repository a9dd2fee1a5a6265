package contracts

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescriptorsExposeOperations(t *testing.T) {
	tests := []struct {
		name       string
		definition string
		methods    []string
		events     []string
		errors     []string
	}{
		{
			name:       "token",
			definition: TokenABIJSON,
			methods:    []string{"name", "symbol", "decimals", "totalSupply", "balanceOf", "mint", "owner"},
			events:     []string{"Transfer"},
			errors:     []string{"OwnableUnauthorizedAccount"},
		},
		{
			name:       "voting",
			definition: VotingABIJSON,
			methods:    []string{"createProposal", "vote", "getProposal", "proposalCount", "hasVoted", "owner"},
			events:     []string{"ProposalCreated", "VoteCast"},
			errors:     []string{"NotOwner", "AlreadyVoted", "ProposalNotFound"},
		},
		{
			name:       "weighted voting",
			definition: WeightedVotingABIJSON,
			methods:    []string{"createProposal", "vote", "getProposal", "proposalCount", "hasVoted", "owner"},
			events:     []string{"ProposalCreated", "VoteCast"},
			errors:     []string{"NotOwner", "AlreadyVoted", "ProposalNotFound"},
		},
		{
			name:       "reputation",
			definition: ReputationABIJSON,
			methods:    []string{"recordVote", "getUserReputation", "getVotingWeight", "hasBadge", "getUserBadges", "authorizeContract", "owner"},
			events:     []string{"ReputationUpdated", "BadgeEarned"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			contract, err := ParseABI(tt.definition)
			require.NoError(t, err)

			for _, m := range tt.methods {
				assert.Contains(t, contract.Methods, m)
			}
			for _, e := range tt.events {
				assert.Contains(t, contract.Events, e)
			}
			for _, e := range tt.errors {
				assert.Contains(t, contract.Errors, e)
			}
		})
	}
}

func TestParseABIRejectsGarbage(t *testing.T) {
	_, err := ParseABI(`{"not":"an abi"`)
	assert.Error(t, err)
}

func TestWeightedGetProposalReturnsWeightedCount(t *testing.T) {
	assert.Len(t, VotingABI().Methods["getProposal"].Outputs, 2)
	assert.Len(t, WeightedVotingABI().Methods["getProposal"].Outputs, 3)
	assert.Len(t, WeightedVotingABI().Constructor.Inputs, 1)
}

func TestKnownSelectors(t *testing.T) {
	// ERC-20 selectors are fixed by the standard
	assert.Equal(t, "70a08231", common.Bytes2Hex(TokenABI().Methods["balanceOf"].ID))
	assert.Equal(t, "40c10f19", common.Bytes2Hex(TokenABI().Methods["mint"].ID))
	assert.Equal(t, "313ce567", common.Bytes2Hex(TokenABI().Methods["decimals"].ID))
}

func TestDefaultAddressesAreValid(t *testing.T) {
	assert.True(t, common.IsHexAddress(VotingContractAddress))
	assert.True(t, common.IsHexAddress(TokenContractAddress))
}
