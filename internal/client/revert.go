package client

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
)

// RevertError is a ledger rejection decoded from revert data.
// Name is set for custom errors (e.g. "AlreadyVoted"), Reason for Error(string) reverts.
type RevertError struct {
	Name   string
	Reason string
	Args   []any
	Data   []byte
	Err    error
}

func (e *RevertError) Error() string {
	switch {
	case e.Name != "" && len(e.Args) > 0:
		return fmt.Sprintf("execution reverted: %s%v", e.Name, e.Args)
	case e.Name != "":
		return "execution reverted: " + e.Name
	case e.Reason != "":
		return "execution reverted: " + e.Reason
	default:
		return "execution reverted"
	}
}

func (e *RevertError) Unwrap() error {
	return e.Err
}

// Message text emitted by nodes that do not return revert data
const (
	revertedPrefix      = "execution reverted"
	hardhatReasonPrefix = "reverted with reason string '"
	hardhatCustomPrefix = "reverted with custom error '"
)

// DecodeRevert converts a node error into a *RevertError when it carries a revert.
// Custom errors are resolved against the given ABIs. Errors that are not reverts
// are returned unchanged.
func DecodeRevert(err error, abis ...abi.ABI) error {
	if err == nil {
		return nil
	}

	var decoded *RevertError
	if errors.As(err, &decoded) {
		return err
	}

	data, ok := revertData(err)
	if !ok || len(data) < 4 {
		return revertFromMessage(err)
	}

	if reason, uerr := abi.UnpackRevert(data); uerr == nil {
		return &RevertError{Reason: reason, Data: data, Err: err}
	}

	for _, contract := range abis {
		for name, abiErr := range contract.Errors {
			if !bytes.Equal(abiErr.ID[:4], data[:4]) {
				continue
			}
			revert := &RevertError{Name: name, Data: data, Err: err}
			if unpacked, uerr := abiErr.Unpack(data); uerr == nil {
				if args, ok := unpacked.([]any); ok {
					revert.Args = args
				}
			}
			return revert
		}
	}

	return &RevertError{Data: data, Err: err}
}

// revertData extracts the hex revert payload attached to a JSON-RPC error
func revertData(err error) ([]byte, bool) {
	var dataErr rpc.DataError
	if !errors.As(err, &dataErr) {
		return nil, false
	}

	switch v := dataErr.ErrorData().(type) {
	case string:
		data, derr := hexutil.Decode(v)
		if derr != nil {
			return nil, false
		}
		return data, true
	case []byte:
		return v, true
	default:
		return nil, false
	}
}

// revertFromMessage recognizes reverts reported only as text
func revertFromMessage(err error) error {
	msg := err.Error()

	if i := strings.Index(msg, hardhatCustomPrefix); i >= 0 {
		rest := msg[i+len(hardhatCustomPrefix):]
		if j := strings.IndexAny(rest, "('"); j >= 0 {
			rest = rest[:j]
		}
		return &RevertError{Name: rest, Err: err}
	}

	if i := strings.Index(msg, hardhatReasonPrefix); i >= 0 {
		rest := msg[i+len(hardhatReasonPrefix):]
		if j := strings.LastIndex(rest, "'"); j >= 0 {
			rest = rest[:j]
		}
		return &RevertError{Reason: rest, Err: err}
	}

	if i := strings.Index(msg, revertedPrefix); i >= 0 {
		reason := strings.TrimSpace(strings.TrimPrefix(msg[i+len(revertedPrefix):], ":"))
		return &RevertError{Reason: reason, Err: err}
	}

	return err
}
