package client

import (
	"context"
	"fmt"
	"math/big"

	"github.com/AlexZinkM/votechain/internal/contracts"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
)

// Backend is what contract handles and confirmation waits need from a node
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
}

// EthereumClient is a client for working with an EVM JSON-RPC endpoint
type EthereumClient struct {
	rpcClient *ethclient.Client
	rpcURL    string
	chainID   *big.Int
}

// NewEthereumClient dials the endpoint and reads its chain id
func NewEthereumClient(ctx context.Context, rpcURL string) (*EthereumClient, error) {
	rpcClient, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("failed to dial %s: %w", rpcURL, err)
	}

	chainID, err := rpcClient.ChainID(ctx)
	if err != nil {
		rpcClient.Close()
		return nil, fmt.Errorf("failed to get chain id: %w", err)
	}

	return &EthereumClient{
		rpcClient: rpcClient,
		rpcURL:    rpcURL,
		chainID:   chainID,
	}, nil
}

// Backend returns the node connection for binding contracts
func (c *EthereumClient) Backend() Backend {
	return c.rpcClient
}

// ChainID returns the chain id read at dial time
func (c *EthereumClient) ChainID() *big.Int {
	return new(big.Int).Set(c.chainID)
}

// CurrentChainID reads the chain id the node reports now
func (c *EthereumClient) CurrentChainID(ctx context.Context) (*big.Int, error) {
	id, err := c.rpcClient.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get chain id: %w", err)
	}
	return id, nil
}

// WaitMined blocks until tx is included. A reverted transaction is replayed
// at its block to recover the revert reason.
func (c *EthereumClient) WaitMined(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
	receipt, err := bind.WaitMined(ctx, c.rpcClient, tx)
	if err != nil {
		return nil, fmt.Errorf("failed to wait for transaction %s: %w", tx.Hash().Hex(), err)
	}
	if receipt.Status == types.ReceiptStatusSuccessful {
		return receipt, nil
	}
	return receipt, c.replayFailure(ctx, tx, receipt)
}

// WaitDeployed blocks until a contract creation is mined and returns the contract address
func (c *EthereumClient) WaitDeployed(ctx context.Context, tx *types.Transaction) (common.Address, error) {
	address, err := bind.WaitDeployed(ctx, c.rpcClient, tx)
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to wait for deployment %s: %w", tx.Hash().Hex(), err)
	}
	return address, nil
}

func (c *EthereumClient) replayFailure(ctx context.Context, tx *types.Transaction, receipt *types.Receipt) error {
	reverted := &RevertError{Reason: "transaction reverted in block " + receipt.BlockNumber.String()}

	from, err := types.Sender(types.LatestSignerForChainID(c.chainID), tx)
	if err != nil {
		return reverted
	}

	msg := ethereum.CallMsg{
		From:  from,
		To:    tx.To(),
		Gas:   tx.Gas(),
		Value: tx.Value(),
		Data:  tx.Data(),
	}
	if _, callErr := c.rpcClient.CallContract(ctx, msg, receipt.BlockNumber); callErr != nil {
		return DecodeRevert(callErr, contracts.TokenABI(), contracts.VotingABI(), contracts.ReputationABI())
	}
	return reverted
}

// Close closes the node connection
func (c *EthereumClient) Close() {
	c.rpcClient.Close()
}
