package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/AlexZinkM/votechain/internal/contracts"

	"github.com/kelseyhightower/envconfig"
)

// Config contains all configuration parameters for the application.
// Note: the wallet password is never configured here, it is prompted by the signing agent.
type Config struct {
	Port          string        `envconfig:"PORT" default:"8080"`
	RPCURL        string        `envconfig:"RPC_URL" default:"http://127.0.0.1:8545"`
	KeyFilePath   string        `envconfig:"KEY_FILE_PATH" default:"wallet.cwt"`
	VotingAddress string        `envconfig:"VOTING_ADDRESS"`
	TokenAddress  string        `envconfig:"TOKEN_ADDRESS"`
	Reputation    string        `envconfig:"REPUTATION_ADDRESS"`
	TokenSymbol   string        `envconfig:"TOKEN_SYMBOL" default:"STK"`
	WatchInterval time.Duration `envconfig:"WATCH_INTERVAL" default:"5s"`
	Debug         bool          `envconfig:"LOG_DEBUG" default:"false"`

	// Deployment
	ArtifactsDir     string       `envconfig:"ARTIFACTS_DIR" default:"artifacts/contracts"`
	RegistryPath     string       `envconfig:"REGISTRY_PATH" default:"contracts.json"`
	AddressesSource  string       `envconfig:"ADDRESSES_SOURCE" default:"internal/contracts/addresses.go"`
	InitialSupply    int64        `envconfig:"INITIAL_SUPPLY" default:"1000000"`
	DeployReputation bool         `envconfig:"DEPLOY_REPUTATION" default:"false"`
	SampleProposals  ProposalList `envconfig:"SAMPLE_PROPOSALS" default:"Should we increase the token supply?"`
}

// ProposalList is a list of proposal descriptions separated by "|".
// Descriptions may contain commas.
type ProposalList []string

// Decode implements envconfig.Decoder
func (p *ProposalList) Decode(value string) error {
	var list ProposalList
	for _, description := range strings.Split(value, "|") {
		if description = strings.TrimSpace(description); description != "" {
			list = append(list, description)
		}
	}
	*p = list
	return nil
}

// cfg is the global configuration instance
var cfg *Config

// Init loads configuration from environment variables.
func Init() error {
	c, err := Load()
	if err != nil {
		return err
	}
	cfg = c
	return nil
}

// Load reads configuration from environment variables without touching the global instance.
func Load() (*Config, error) {
	c := &Config{}
	if err := envconfig.Process("", c); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	if c.VotingAddress == "" {
		c.VotingAddress = contracts.VotingContractAddress
	}
	if c.TokenAddress == "" {
		c.TokenAddress = contracts.TokenContractAddress
	}
	if c.WatchInterval <= 0 {
		return nil, fmt.Errorf("WATCH_INTERVAL must be positive")
	}
	if c.InitialSupply <= 0 {
		return nil, fmt.Errorf("INITIAL_SUPPLY must be positive")
	}
	return c, nil
}

// Get returns the global configuration instance.
// Panics if Init() was not called.
func Get() *Config {
	if cfg == nil {
		panic("config not initialized, call Init() first")
	}
	return cfg
}

// GetPort returns port from configuration
func GetPort() string {
	return Get().Port
}

// GetRPCURL returns the JSON-RPC endpoint from configuration
func GetRPCURL() string {
	return Get().RPCURL
}

// GetKeyFilePath returns path to .cwt key file from configuration
func GetKeyFilePath() string {
	return Get().KeyFilePath
}

// HasReputation reports whether the reputation-weighted variant is configured
func (c *Config) HasReputation() bool {
	return c.Reputation != ""
}
