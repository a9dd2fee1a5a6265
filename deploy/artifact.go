package deploy

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/AlexZinkM/votechain/internal/contracts"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Artifact is a compiled contract in the Hardhat artifact layout
type Artifact struct {
	ContractName string          `json:"contractName"`
	ABI          json.RawMessage `json:"abi"`
	Bytecode     string          `json:"bytecode"`
}

// LoadArtifact reads the artifact of contract name from dir. Both
// <dir>/<name>.sol/<name>.json (Hardhat) and <dir>/<name>.json are accepted.
func LoadArtifact(dir, name string) (*Artifact, error) {
	candidates := []string{
		filepath.Join(dir, name+".sol", name+".json"),
		filepath.Join(dir, name+".json"),
	}

	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read artifact %s: %w", path, err)
		}

		var artifact Artifact
		if err := json.Unmarshal(data, &artifact); err != nil {
			return nil, fmt.Errorf("failed to unmarshal artifact %s: %w", path, err)
		}
		if artifact.ContractName == "" {
			artifact.ContractName = name
		}
		return &artifact, nil
	}

	return nil, fmt.Errorf("artifact for %s not found in %s: compile the contracts first", name, dir)
}

// Parse returns the contract ABI and creation bytecode
func (a *Artifact) Parse() (abi.ABI, []byte, error) {
	parsed, err := contracts.ParseABI(string(a.ABI))
	if err != nil {
		return abi.ABI{}, nil, fmt.Errorf("%s: %w", a.ContractName, err)
	}

	code := strings.TrimSpace(a.Bytecode)
	if code == "" || code == "0x" {
		return abi.ABI{}, nil, fmt.Errorf("%s: artifact has no bytecode (abstract contract or interface?)", a.ContractName)
	}
	if !strings.HasPrefix(code, "0x") {
		code = "0x" + code
	}
	bytecode, err := hexutil.Decode(code)
	if err != nil {
		return abi.ABI{}, nil, fmt.Errorf("%s: invalid bytecode: %w", a.ContractName, err)
	}
	return parsed, bytecode, nil
}
