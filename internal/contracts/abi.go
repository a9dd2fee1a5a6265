package contracts

import (
	"fmt"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// Contract names as used in compiled artifacts and in the address registry
const (
	TokenContractName      = "SimpleToken"
	VotingContractName     = "SimpleVoting"
	ReputationContractName = "ReputationSystem"
)

var (
	tokenABI          = lazyABI(TokenABIJSON)
	votingABI         = lazyABI(VotingABIJSON)
	weightedVotingABI = lazyABI(WeightedVotingABIJSON)
	reputationABI     = lazyABI(ReputationABIJSON)
)

// TokenABI returns the parsed token ledger ABI
func TokenABI() abi.ABI { return tokenABI() }

// VotingABI returns the parsed voting ledger ABI
func VotingABI() abi.ABI { return votingABI() }

// WeightedVotingABI returns the parsed reputation-weighted voting ledger ABI
func WeightedVotingABI() abi.ABI { return weightedVotingABI() }

// ReputationABI returns the parsed reputation ledger ABI
func ReputationABI() abi.ABI { return reputationABI() }

// ParseABI parses a JSON ABI definition
func ParseABI(definition string) (abi.ABI, error) {
	parsed, err := abi.JSON(strings.NewReader(definition))
	if err != nil {
		return abi.ABI{}, fmt.Errorf("failed to parse ABI: %w", err)
	}
	return parsed, nil
}

// lazyABI parses the descriptor on first use. The descriptors are constants,
// so a parse failure is a programming error.
func lazyABI(definition string) func() abi.ABI {
	return sync.OnceValue(func() abi.ABI {
		parsed, err := ParseABI(definition)
		if err != nil {
			panic(err)
		}
		return parsed
	})
}
