package deploy

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/AlexZinkM/votechain/internal/model"

	"github.com/ethereum/go-ethereum/common"
)

// ErrNoRegistry is returned when the address registry has not been written yet
var ErrNoRegistry = errors.New("contracts registry not found: deploy contracts first")

// WriteRegistry persists the deployed addresses
func WriteRegistry(path string, registry model.Registry) error {
	data, err := json.MarshalIndent(registry, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal registry: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write registry: %w", err)
	}
	return nil
}

// ReadRegistry loads and validates the deployed addresses
func ReadRegistry(path string) (model.Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return model.Registry{}, ErrNoRegistry
		}
		return model.Registry{}, fmt.Errorf("failed to read registry: %w", err)
	}

	var registry model.Registry
	if err := json.Unmarshal(data, &registry); err != nil {
		return model.Registry{}, fmt.Errorf("failed to unmarshal registry: %w", err)
	}

	if !common.IsHexAddress(registry.SimpleToken) {
		return model.Registry{}, fmt.Errorf("registry: invalid SimpleToken address %q", registry.SimpleToken)
	}
	if !common.IsHexAddress(registry.SimpleVoting) {
		return model.Registry{}, fmt.Errorf("registry: invalid SimpleVoting address %q", registry.SimpleVoting)
	}
	if registry.ReputationSystem != "" && !common.IsHexAddress(registry.ReputationSystem) {
		return model.Registry{}, fmt.Errorf("registry: invalid ReputationSystem address %q", registry.ReputationSystem)
	}
	return registry, nil
}
