package client

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// ErrReadOnly is returned when a transaction is attempted through a handle without a signer
var ErrReadOnly = errors.New("contract handle has no signer")

// boundContract is a contract handle bound to a session account
type boundContract struct {
	name     string
	address  common.Address
	abi      abi.ABI
	contract *bind.BoundContract
	from     common.Address
	opts     *bind.TransactOpts // nil for read-only handles
}

func newBoundContract(name string, address common.Address, parsed abi.ABI, backend bind.ContractBackend, from common.Address, opts *bind.TransactOpts) *boundContract {
	return &boundContract{
		name:     name,
		address:  address,
		abi:      parsed,
		contract: bind.NewBoundContract(address, parsed, backend, backend, backend),
		from:     from,
		opts:     opts,
	}
}

// call executes a view method
func (b *boundContract) call(ctx context.Context, method string, args ...any) ([]any, error) {
	var out []any
	opts := &bind.CallOpts{Context: ctx, From: b.from}
	if err := b.contract.Call(opts, &out, method, args...); err != nil {
		return nil, fmt.Errorf("%s.%s: %w", b.name, method, DecodeRevert(err, b.abi))
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%s.%s: empty result", b.name, method)
	}
	return out, nil
}

// transact submits a state-changing method. It returns once the node accepted
// the transaction, not when it is mined.
func (b *boundContract) transact(ctx context.Context, method string, args ...any) (*types.Transaction, error) {
	if b.opts == nil {
		return nil, fmt.Errorf("%s.%s: %w", b.name, method, ErrReadOnly)
	}
	opts := *b.opts
	opts.Context = ctx

	tx, err := b.contract.Transact(&opts, method, args...)
	if err != nil {
		return nil, fmt.Errorf("%s.%s: %w", b.name, method, DecodeRevert(err, b.abi))
	}
	return tx, nil
}

// unpackEvents decodes every log of the receipt emitted by this contract as the given event
func (b *boundContract) unpackEvents(receipt *types.Receipt, event string, newOut func() any, collect func(any)) error {
	if receipt == nil {
		return nil
	}
	id := b.abi.Events[event].ID
	for _, log := range receipt.Logs {
		if log == nil || log.Address != b.address || len(log.Topics) == 0 || log.Topics[0] != id {
			continue
		}
		out := newOut()
		if err := b.contract.UnpackLog(out, event, *log); err != nil {
			return fmt.Errorf("%s: failed to unpack %s: %w", b.name, event, err)
		}
		collect(out)
	}
	return nil
}

func toBigInt(v any) *big.Int {
	return abi.ConvertType(v, new(big.Int)).(*big.Int)
}
