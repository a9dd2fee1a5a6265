package deploy

import (
	"context"
	"errors"
	"math/big"
	"os"
	"path/filepath"
	"testing"

	"github.com/AlexZinkM/votechain/internal/contracts"
	"github.com/AlexZinkM/votechain/internal/ledgertest"
	"github.com/AlexZinkM/votechain/internal/model"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var deployer = common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")

const addressesSource = `package contracts

// Deployed contract addresses
const (
	VotingContractAddress = "0xe7f1725E7734CE288F8367e1Bb143E90bb3F0512"
	TokenContractAddress  = "0x5FbDB2315678afecb367f032d93F642f64180aa3"
)
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRunDeploysAndSeeds(t *testing.T) {
	dir := t.TempDir()
	chain := ledgertest.NewChain(deployer)
	registryPath := filepath.Join(dir, "contracts.json")
	sourcePath := writeFile(t, dir, "addresses.go", addressesSource)

	registry, err := NewDeployer(chain, Options{
		SampleProposals: []string{DefaultSampleProposal},
		RegistryPath:    registryPath,
		SourcePath:      sourcePath,
	}, nil).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, chain.TokenAddress().Hex(), registry.SimpleToken)
	assert.Equal(t, chain.VotingAddress().Hex(), registry.SimpleVoting)
	assert.Empty(t, registry.ReputationSystem)

	ctx := context.Background()
	supply, err := chain.Token(deployer).TotalSupply(ctx)
	require.NoError(t, err)
	expected := new(big.Int).Mul(big.NewInt(1_000_000), new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil))
	assert.Equal(t, expected.String(), supply.String())

	proposal, err := chain.Voting(deployer).GetProposal(ctx, big.NewInt(0))
	require.NoError(t, err)
	assert.Equal(t, DefaultSampleProposal, proposal.Description)

	stored, err := ReadRegistry(registryPath)
	require.NoError(t, err)
	assert.Equal(t, registry, stored)

	source, err := os.ReadFile(sourcePath)
	require.NoError(t, err)
	assert.Contains(t, string(source), `VotingContractAddress = "`+registry.SimpleVoting+`"`)
	assert.Contains(t, string(source), `TokenContractAddress  = "`+registry.SimpleToken+`"`)
}

func TestRunWithReputation(t *testing.T) {
	chain := ledgertest.NewChain(deployer)

	registry, err := NewDeployer(chain, Options{WithReputation: true}, nil).Run(context.Background())
	require.NoError(t, err)
	require.NotNil(t, chain.ReputationAddress())
	assert.Equal(t, chain.ReputationAddress().Hex(), registry.ReputationSystem)

	// The voting ledger was authorized, so a vote is recorded in the reputation ledger
	ctx := context.Background()
	_, err = chain.Voting(deployer).CreateProposal(ctx, "Weighted")
	require.NoError(t, err)
	voter := common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8")
	_, err = chain.Voting(voter).Vote(ctx, big.NewInt(0))
	require.NoError(t, err)

	reputation, err := chain.Reputation(voter).GetUserReputation(ctx, voter)
	require.NoError(t, err)
	assert.Equal(t, int64(1), reputation.TotalVotes.Int64())
	assert.True(t, reputation.IsActive)

	badges, err := chain.Reputation(voter).GetUserBadges(ctx, voter)
	require.NoError(t, err)
	require.NotEmpty(t, badges)
	assert.Equal(t, int64(contracts.BadgeFirstVote), badges[0].Int64())
}

func TestRunRejectsNonPositiveSupply(t *testing.T) {
	_, err := NewDeployer(ledgertest.NewChain(deployer), Options{InitialSupply: big.NewInt(0)}, nil).Run(context.Background())
	assert.Error(t, err)
}

// failingBackend fails the voting deployment
type failingBackend struct {
	*ledgertest.Chain
}

func (failingBackend) DeployVoting(context.Context, *common.Address) (common.Address, *types.Transaction, error) {
	return common.Address{}, nil, errors.New("insufficient funds for gas")
}

func TestRunStopsAtFirstFailure(t *testing.T) {
	dir := t.TempDir()
	registryPath := filepath.Join(dir, "contracts.json")

	_, err := NewDeployer(failingBackend{ledgertest.NewChain(deployer)}, Options{RegistryPath: registryPath}, nil).Run(context.Background())
	require.ErrorContains(t, err, "deploy voting")

	_, statErr := os.Stat(registryPath)
	assert.ErrorIs(t, statErr, os.ErrNotExist, "no registry for a partial deployment")
}

// relocatingBackend reports every contract at an unexpected address
type relocatingBackend struct {
	*ledgertest.Chain
}

func (relocatingBackend) WaitDeployed(context.Context, *types.Transaction) (common.Address, error) {
	return common.HexToAddress("0x00000000000000000000000000000000000000ff"), nil
}

func TestRunChecksDeployedAddress(t *testing.T) {
	registryPath := filepath.Join(t.TempDir(), "contracts.json")

	_, err := NewDeployer(relocatingBackend{ledgertest.NewChain(deployer)}, Options{RegistryPath: registryPath}, nil).Run(context.Background())
	require.ErrorContains(t, err, "deploy token")
	assert.ErrorContains(t, err, "expected")

	_, statErr := os.Stat(registryPath)
	assert.ErrorIs(t, statErr, os.ErrNotExist)
}

func TestChainWaitDeployedRejectsCalls(t *testing.T) {
	chain := ledgertest.NewDeployedChain(deployer, false)
	tx, err := chain.CreateProposal(context.Background(), chain.VotingAddress(), "Not a deployment")
	require.NoError(t, err)

	_, err = chain.WaitDeployed(context.Background(), tx)
	assert.Error(t, err)
}

func TestPatchAddresses(t *testing.T) {
	registry := model.Registry{
		SimpleToken:  "0x0000000000000000000000000000000000000001",
		SimpleVoting: "0x0000000000000000000000000000000000000002",
	}

	patched, err := PatchAddresses([]byte(addressesSource), registry)
	require.NoError(t, err)
	assert.Contains(t, string(patched), `VotingContractAddress = "0x0000000000000000000000000000000000000002"`)
	assert.Contains(t, string(patched), `TokenContractAddress  = "0x0000000000000000000000000000000000000001"`)

	_, err = PatchAddresses([]byte("package contracts\n"), registry)
	assert.ErrorContains(t, err, "VotingContractAddress")
}

func TestPatchAddressesMatchesShippedDescriptor(t *testing.T) {
	source, err := os.ReadFile(filepath.Join("..", "internal", "contracts", "addresses.go"))
	require.NoError(t, err)

	_, err = PatchAddresses(source, model.Registry{
		SimpleToken:  contracts.TokenContractAddress,
		SimpleVoting: contracts.VotingContractAddress,
	})
	assert.NoError(t, err)
}

func TestUpdateAddressesRequiresRegistry(t *testing.T) {
	dir := t.TempDir()
	sourcePath := writeFile(t, dir, "addresses.go", addressesSource)

	_, err := UpdateAddresses(filepath.Join(dir, "contracts.json"), sourcePath)
	assert.ErrorIs(t, err, ErrNoRegistry)

	source, err := os.ReadFile(sourcePath)
	require.NoError(t, err)
	assert.Equal(t, addressesSource, string(source), "source untouched")
}

func TestReadRegistryRejectsBadAddresses(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "contracts.json", `{"SimpleToken":"0x01","SimpleVoting":"0x0000000000000000000000000000000000000002"}`)

	_, err := ReadRegistry(path)
	assert.ErrorContains(t, err, "SimpleToken")
}

func TestLoadArtifact(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, filepath.Join("SimpleToken.sol", "SimpleToken.json"), `{
		"contractName": "SimpleToken",
		"abi": `+contracts.TokenABIJSON+`,
		"bytecode": "0x6080604052"
	}`)
	writeFile(t, dir, "SimpleVoting.json", `{"abi": `+contracts.VotingABIJSON+`, "bytecode": "0x"}`)

	token, err := LoadArtifact(dir, contracts.TokenContractName)
	require.NoError(t, err)
	parsed, bytecode, err := token.Parse()
	require.NoError(t, err)
	assert.Contains(t, parsed.Methods, "mint")
	assert.Equal(t, []byte{0x60, 0x80, 0x60, 0x40, 0x52}, bytecode)
	assert.Len(t, parsed.Constructor.Inputs, 1)

	voting, err := LoadArtifact(dir, contracts.VotingContractName)
	require.NoError(t, err)
	assert.Equal(t, contracts.VotingContractName, voting.ContractName)
	_, _, err = voting.Parse()
	assert.ErrorContains(t, err, "no bytecode")

	_, err = LoadArtifact(dir, contracts.ReputationContractName)
	assert.ErrorContains(t, err, "compile the contracts first")
}
