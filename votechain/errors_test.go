package votechain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/AlexZinkM/votechain/internal/client"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		action  string
		err     error
		kind    Kind
		message string
	}{
		{
			name:    "custom error wins over reason",
			action:  ActionVote,
			err:     fmt.Errorf("SimpleVoting.vote: %w", &client.RevertError{Name: "AlreadyVoted", Reason: "does not exist"}),
			kind:    KindAlreadyVoted,
			message: msgAlreadyVoted,
		},
		{
			name:    "owner custom error on mint",
			action:  ActionMint,
			err:     &client.RevertError{Name: "OwnableUnauthorizedAccount"},
			kind:    KindUnauthorized,
			message: msgOwnerMint,
		},
		{
			name:    "reason phrase",
			action:  ActionCreateProposal,
			err:     &client.RevertError{Reason: "Only owner can create proposals"},
			kind:    KindUnauthorized,
			message: msgOwnerProposals,
		},
		{
			name:    "reason phrase of another action is ignored",
			action:  ActionCreateProposal,
			err:     &client.RevertError{Reason: "You have already voted"},
			kind:    KindRemoteCallFailed,
			message: msgCreateFailed + "execution reverted: You have already voted",
		},
		{
			name:    "kind without an action banner keeps the kind",
			action:  ActionVote,
			err:     &client.RevertError{Name: "NotOwner"},
			kind:    KindUnauthorized,
			message: msgVoteFailed + "execution reverted: NotOwner",
		},
		{
			name:    "transport failure",
			action:  ActionMint,
			err:     errors.New("dial tcp 127.0.0.1:8545: connect: connection refused"),
			kind:    KindRemoteCallFailed,
			message: msgMintFailed + "dial tcp 127.0.0.1:8545: connect: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classify(tt.action, tt.err)
			assert.Equal(t, tt.kind, got.Kind)
			assert.Equal(t, tt.message, got.Message)
			assert.ErrorIs(t, got, tt.err)
		})
	}
}

func TestClassifyKeepsClassifiedErrors(t *testing.T) {
	original := newError(KindNotConnected, msgNotConnected, nil)
	assert.Same(t, original, classify(ActionVote, fmt.Errorf("wrapped: %w", original)))
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindRemoteCallFailed, KindOf(errors.New("boom")))
	assert.Equal(t, KindEmptyInput, KindOf(fmt.Errorf("x: %w", newError(KindEmptyInput, msgEmptyMint, nil))))
	assert.Equal(t, "boom", Message(errors.New("boom")))
}
