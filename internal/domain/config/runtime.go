package config

import (
	"time"
)

// RuntimeConfig represents the complete runtime configuration
// This is injected into use cases and contains all resolved settings
type RuntimeConfig struct {
	// Core settings
	ProjectRoot    string
	DataDir        string
	ConfigFile     string // ecdeploy.toml or ecdeploy.yaml, empty when using defaults
	ArtifactsDir   string
	DeploymentsDir string

	// Context settings
	NetworkName string
	Networks    map[string]NetworkConfig

	// Execution settings
	Debug          bool
	NonInteractive bool
	AssumeYes      bool // skip the production deployment prompt
	JSON           bool
	Timeout        time.Duration
	PollInterval   time.Duration

	// Registry backend: "file" or "sqlite"
	RegistryDriver string
	RegistryDSN    string

	// Named accounts
	DeployerKey string // hex private key, resolved from env
	Service     string // optional service account address, defaults to deployer

	// Resolved configurations
	Deploy *DeployConfig
}

// NetworkConfig represents a configured network endpoint
type NetworkConfig struct {
	Name        string
	ChainID     uint64
	RPCURL      string
	PrivateKey  string
	ExplorerURL string
}
