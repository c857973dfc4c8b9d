package config

import (
	"errors"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/ethereum/go-ethereum/common"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/trebuchet-org/eventcreator-deploy/internal/domain/config"
	"gopkg.in/yaml.v3"
)

// Config file names, in lookup order
var ConfigFileNames = []string{"ecdeploy.toml", "ecdeploy.yaml", "ecdeploy.yml"}

// FileConfig is the on-disk project configuration
type FileConfig struct {
	Artifacts    string `toml:"artifacts" yaml:"artifacts"`
	Deployments  string `toml:"deployments" yaml:"deployments"`
	Timeout      string `toml:"timeout" yaml:"timeout"`
	PollInterval string `toml:"poll_interval" yaml:"poll_interval"`

	Accounts AccountsConfig               `toml:"accounts" yaml:"accounts"`
	Registry RegistryConfig               `toml:"registry" yaml:"registry"`
	Networks map[string]NetworkFileConfig `toml:"networks" yaml:"networks" validate:"dive"`
	Deploy   DeployFileConfig             `toml:"deploy" yaml:"deploy"`
}

// AccountsConfig names the accounts used in deployments
type AccountsConfig struct {
	DeployerKey string `toml:"deployer_key" yaml:"deployer_key"`
	Service     string `toml:"service" yaml:"service" validate:"omitempty,eth_addr"`
}

// RegistryConfig selects the deployment registry backend
type RegistryConfig struct {
	Driver string `toml:"driver" yaml:"driver" validate:"omitempty,oneof=file sqlite postgres"`
	DSN    string `toml:"dsn" yaml:"dsn"`
}

// NetworkFileConfig is one [networks.<name>] table
type NetworkFileConfig struct {
	ChainID     uint64 `toml:"chain_id" yaml:"chain_id" validate:"required"`
	RPCURL      string `toml:"rpc_url" yaml:"rpc_url" validate:"omitempty,url"`
	PrivateKey  string `toml:"private_key" yaml:"private_key"`
	ExplorerURL string `toml:"explorer_url" yaml:"explorer_url" validate:"omitempty,url"`
}

// DeployFileConfig overrides the built-in deploy defaults
type DeployFileConfig struct {
	DevelopmentChains              []string                   `toml:"development_chains" yaml:"development_chains"`
	VerificationBlockConfirmations uint64                     `toml:"verification_block_confirmations" yaml:"verification_block_confirmations"`
	Chains                         map[string]ChainFileConfig `toml:"chains" yaml:"chains" validate:"dive"`
	Mocks                          MockFileConfig             `toml:"mocks" yaml:"mocks"`
}

// ChainFileConfig is one [deploy.chains.<chainId>] table
type ChainFileConfig struct {
	Name      string `toml:"name" yaml:"name"`
	PriceFeed string `toml:"price_feed" yaml:"price_feed" validate:"required,eth_addr"`
}

// MockFileConfig holds development mock constructor values
type MockFileConfig struct {
	Decimals      *uint8 `toml:"decimals" yaml:"decimals"`
	InitialAnswer string `toml:"initial_answer" yaml:"initial_answer" validate:"omitempty,numeric"`
}

// DefaultNetworks are available without any configuration
func DefaultNetworks() map[string]NetworkFileConfig {
	return map[string]NetworkFileConfig{
		"localhost": {ChainID: 31337, RPCURL: "http://127.0.0.1:8545"},
		"hardhat":   {ChainID: 31337, RPCURL: "http://127.0.0.1:8545"},
		"anvil":     {ChainID: 31337, RPCURL: "http://127.0.0.1:8545"},
	}
}

// loadEnvFiles loads .env and .env.local into the process environment
func loadEnvFiles(projectRoot string) {
	for _, name := range []string{".env", ".env.local"} {
		envFile := filepath.Join(projectRoot, name)
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: Failed to load %s: %v\n", envFile, err)
			}
		}
	}
}

// findConfigFile returns the first config file present in projectRoot
func findConfigFile(projectRoot string) string {
	for _, name := range ConfigFileNames {
		path := filepath.Join(projectRoot, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// LoadFileConfig reads, expands and validates a config file. An empty path
// yields the defaults.
func LoadFileConfig(path string) (*FileConfig, error) {
	cfg := &FileConfig{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
		}

		switch filepath.Ext(path) {
		case ".toml":
			if _, err := toml.Decode(string(data), cfg); err != nil {
				return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
			}
		case ".yaml", ".yml":
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
			}
		default:
			return nil, fmt.Errorf("unsupported config format: %s", filepath.Base(path))
		}
	}

	cfg.expandEnv()

	// Built-in development networks unless redefined
	if cfg.Networks == nil {
		cfg.Networks = make(map[string]NetworkFileConfig)
	}
	for name, nc := range DefaultNetworks() {
		if _, ok := cfg.Networks[name]; !ok {
			cfg.Networks[name] = nc
		}
	}

	if err := validateFileConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// expandEnv expands ${VAR} references in every string field that may hold one
func (c *FileConfig) expandEnv() {
	c.Artifacts = os.ExpandEnv(c.Artifacts)
	c.Deployments = os.ExpandEnv(c.Deployments)
	c.Accounts.DeployerKey = os.ExpandEnv(c.Accounts.DeployerKey)
	c.Accounts.Service = os.ExpandEnv(c.Accounts.Service)
	c.Registry.DSN = os.ExpandEnv(c.Registry.DSN)

	for name, nc := range c.Networks {
		nc.RPCURL = os.ExpandEnv(nc.RPCURL)
		nc.PrivateKey = os.ExpandEnv(nc.PrivateKey)
		nc.ExplorerURL = os.ExpandEnv(nc.ExplorerURL)
		c.Networks[name] = nc
	}

	for id, chain := range c.Deploy.Chains {
		chain.PriceFeed = os.ExpandEnv(chain.PriceFeed)
		c.Deploy.Chains[id] = chain
	}
}

func validateFileConfig(cfg *FileConfig) error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s: failed %q", strings.TrimPrefix(fe.Namespace(), "FileConfig."), fe.Tag()))
			}
			return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}

	for id := range cfg.Deploy.Chains {
		if _, err := strconv.ParseUint(id, 10, 64); err != nil {
			return fmt.Errorf("invalid configuration: deploy.chains key %q is not a chain id", id)
		}
	}
	return nil
}

// DeployConfig merges the file's [deploy] section over the built-in defaults
func (c *FileConfig) DeployConfig() *config.DeployConfig {
	deploy := config.DefaultDeployConfig()

	if len(c.Deploy.DevelopmentChains) > 0 {
		deploy.DevelopmentChains = append([]string(nil), c.Deploy.DevelopmentChains...)
	}
	if c.Deploy.VerificationBlockConfirmations > 0 {
		deploy.VerificationBlockConfirmations = c.Deploy.VerificationBlockConfirmations
	}

	for id, chain := range c.Deploy.Chains {
		chainID, _ := strconv.ParseUint(id, 10, 64)
		deploy.Chains[chainID] = config.ChainEntry{
			Name:      chain.Name,
			PriceFeed: common.HexToAddress(chain.PriceFeed),
		}
	}

	if c.Deploy.Mocks.Decimals != nil {
		deploy.Mocks.Decimals = *c.Deploy.Mocks.Decimals
	}
	if c.Deploy.Mocks.InitialAnswer != "" {
		if answer, ok := new(big.Int).SetString(c.Deploy.Mocks.InitialAnswer, 10); ok {
			deploy.Mocks.InitialAnswer = answer
		}
	}

	return deploy
}

// RuntimeNetworks converts the [networks] tables
func (c *FileConfig) RuntimeNetworks() map[string]config.NetworkConfig {
	networks := make(map[string]config.NetworkConfig, len(c.Networks))
	for name, nc := range c.Networks {
		networks[name] = config.NetworkConfig{
			Name:        name,
			ChainID:     nc.ChainID,
			RPCURL:      nc.RPCURL,
			PrivateKey:  nc.PrivateKey,
			ExplorerURL: nc.ExplorerURL,
		}
	}
	return networks
}
