package votechain

import (
	"errors"
	"strings"

	"github.com/AlexZinkM/votechain/internal/client"
)

// Kind classifies a failure shown to the user
type Kind string

const (
	KindNoWalletDetected Kind = "NoWalletDetected"
	KindUserRejected     Kind = "UserRejected"
	KindEmptyInput       Kind = "EmptyInput"
	KindInvalidAddress   Kind = "InvalidAddress"
	KindInvalidAmount    Kind = "InvalidAmount"
	KindNotConnected     Kind = "NotConnected"
	KindUnauthorized     Kind = "Unauthorized"
	KindAlreadyVoted     Kind = "AlreadyVoted"
	KindProposalNotFound Kind = "ProposalNotFound"
	KindRemoteCallFailed Kind = "RemoteCallFailed"
)

// Error is a classified failure carrying the banner message
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return string(e.Kind) + ": " + e.Message + ": " + e.Err.Error()
	}
	return string(e.Kind) + ": " + e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches errors of the same kind, so errors.Is(err, &Error{Kind: KindAlreadyVoted}) works
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

func newError(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Err: cause}
}

// KindOf returns the kind of err, RemoteCallFailed for unclassified errors
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindRemoteCallFailed
}

// Message returns the banner text for err
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// Banner messages
const (
	msgNoWallet         = "No wallet detected. Generate a key file to use this application!"
	msgNotConnected     = "Please connect your wallet first!"
	msgEmptyDescription = "Please enter a proposal description!"
	msgEmptyMint        = "Please enter both address and amount!"
	msgNoProposal       = "Please select a proposal to vote on!"
	msgInvalidAddress   = "Please enter a valid Ethereum address!"
	msgInvalidAmount    = "Please enter a valid token amount!"
	msgOwnerProposals   = "Only the contract owner can create proposals!"
	msgOwnerMint        = "Only the contract owner can mint tokens!"
	msgAlreadyVoted     = "You have already voted on this proposal!"
	msgProposalNotFound = "This proposal does not exist!"
	msgConnected        = "Wallet connected successfully!"
	msgProposalCreated  = "Proposal created successfully!"
	msgVoteCast         = "Vote cast successfully!"
	msgTokensMinted     = "Tokens minted successfully!"
	msgConnectFailed    = "Failed to connect wallet: "
	msgCreateFailed     = "Failed to create proposal: "
	msgVoteFailed       = "Failed to vote: "
	msgMintFailed       = "Failed to mint tokens: "
	msgConnectionDenied = "Wallet connection was rejected"
)

// Action names, also used as metric labels
const (
	ActionConnect        = "connect"
	ActionCreateProposal = "create_proposal"
	ActionVote           = "vote"
	ActionMint           = "mint"
)

// Custom ledger errors mapped to kinds
var revertKinds = map[string]Kind{
	"NotOwner":                   KindUnauthorized,
	"OwnableUnauthorizedAccount": KindUnauthorized,
	"UnauthorizedCaller":         KindUnauthorized,
	"AlreadyVoted":               KindAlreadyVoted,
	"ProposalNotFound":           KindProposalNotFound,
}

// Reason phrases recognized when the ledger reverts with a plain string.
// The wording is whatever the deployed ledgers use and may change with them.
var reasonPhrases = map[string][]struct {
	phrase string
	kind   Kind
}{
	ActionCreateProposal: {
		{phrase: "only owner", kind: KindUnauthorized},
	},
	ActionVote: {
		{phrase: "already voted", kind: KindAlreadyVoted},
		{phrase: "does not exist", kind: KindProposalNotFound},
	},
	ActionMint: {
		{phrase: "ownable", kind: KindUnauthorized},
		{phrase: "only owner", kind: KindUnauthorized},
	},
}

// kindMessages are the banners for ledger rejections per action
var kindMessages = map[string]map[Kind]string{
	ActionCreateProposal: {KindUnauthorized: msgOwnerProposals},
	ActionVote: {
		KindAlreadyVoted:     msgAlreadyVoted,
		KindProposalNotFound: msgProposalNotFound,
	},
	ActionMint: {KindUnauthorized: msgOwnerMint},
}

var failurePrefixes = map[string]string{
	ActionConnect:        msgConnectFailed,
	ActionCreateProposal: msgCreateFailed,
	ActionVote:           msgVoteFailed,
	ActionMint:           msgMintFailed,
}

// classify turns a submission or confirmation failure of action into an *Error.
// Structured revert names win over reason phrases; anything else is RemoteCallFailed.
func classify(action string, err error) *Error {
	var classified *Error
	if errors.As(err, &classified) {
		return classified
	}

	kind := KindRemoteCallFailed
	var revert *client.RevertError
	if errors.As(err, &revert) {
		if k, ok := revertKinds[revert.Name]; ok {
			kind = k
		} else if revert.Reason != "" {
			reason := strings.ToLower(revert.Reason)
			for _, p := range reasonPhrases[action] {
				if strings.Contains(reason, p.phrase) {
					kind = p.kind
					break
				}
			}
		}
	}

	if msg, ok := kindMessages[action][kind]; ok {
		return newError(kind, msg, err)
	}
	return newError(kind, failurePrefixes[action]+err.Error(), err)
}
