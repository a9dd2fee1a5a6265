package deploy

import (
	"fmt"
	"os"
	"regexp"

	"github.com/AlexZinkM/votechain/internal/model"
)

// Address constants rewritten in the descriptor source
const (
	votingConstant = "VotingContractAddress"
	tokenConstant  = "TokenContractAddress"
)

func constantPattern(name string) *regexp.Regexp {
	return regexp.MustCompile(`(\b` + name + `\s*=\s*)"[^"]*"`)
}

var (
	votingPattern = constantPattern(votingConstant)
	tokenPattern  = constantPattern(tokenConstant)
)

// PatchAddresses rewrites the two address constants in source
func PatchAddresses(source []byte, registry model.Registry) ([]byte, error) {
	for _, p := range []struct {
		name    string
		pattern *regexp.Regexp
		address string
	}{
		{name: votingConstant, pattern: votingPattern, address: registry.SimpleVoting},
		{name: tokenConstant, pattern: tokenPattern, address: registry.SimpleToken},
	} {
		if !p.pattern.Match(source) {
			return nil, fmt.Errorf("constant %s not found", p.name)
		}
		source = p.pattern.ReplaceAll(source, []byte(`${1}"`+p.address+`"`))
	}
	return source, nil
}

// UpdateAddresses patches the source file at sourcePath with the registry at registryPath
func UpdateAddresses(registryPath, sourcePath string) (model.Registry, error) {
	registry, err := ReadRegistry(registryPath)
	if err != nil {
		return model.Registry{}, err
	}

	info, err := os.Stat(sourcePath)
	if err != nil {
		return model.Registry{}, fmt.Errorf("failed to stat %s: %w", sourcePath, err)
	}
	source, err := os.ReadFile(sourcePath)
	if err != nil {
		return model.Registry{}, fmt.Errorf("failed to read %s: %w", sourcePath, err)
	}

	patched, err := PatchAddresses(source, registry)
	if err != nil {
		return model.Registry{}, fmt.Errorf("%s: %w", sourcePath, err)
	}
	if err := os.WriteFile(sourcePath, patched, info.Mode().Perm()); err != nil {
		return model.Registry{}, fmt.Errorf("failed to write %s: %w", sourcePath, err)
	}
	return registry, nil
}
