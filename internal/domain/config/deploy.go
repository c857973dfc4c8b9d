package config

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/samber/lo"
)

// Defaults carried over from the project's original helper configuration
const (
	DefaultVerificationBlockConfirmations uint64 = 6
	DefaultMockDecimals                   uint8  = 8
	DefaultMockInitialAnswer                     = "200000000000"
)

// ChainEntry holds the dependency addresses known for a production chain
type ChainEntry struct {
	Name      string
	PriceFeed common.Address
}

// MockConfig holds constructor values for the development price-feed mock
type MockConfig struct {
	Decimals      uint8
	InitialAnswer *big.Int
}

// DeployConfig is the network classification and dependency table used by
// the deployment resolver. It is loaded once and passed in explicitly.
type DeployConfig struct {
	DevelopmentChains              []string
	Chains                         map[uint64]ChainEntry
	VerificationBlockConfirmations uint64
	Mocks                          MockConfig
}

// DefaultDeployConfig returns the built-in development chains and price feeds
func DefaultDeployConfig() *DeployConfig {
	answer, _ := new(big.Int).SetString(DefaultMockInitialAnswer, 10)
	return &DeployConfig{
		DevelopmentChains: []string{"hardhat", "localhost", "anvil"},
		Chains: map[uint64]ChainEntry{
			4: {
				Name:      "rinkeby",
				PriceFeed: common.HexToAddress("0x8A753747A1Fa494EC906cE90E9f37563A8AF630e"),
			},
			80001: {
				Name:      "mumbai",
				PriceFeed: common.HexToAddress("0x0715A7794a1dc8e42615F059dD6e406A6594651A"),
			},
		},
		VerificationBlockConfirmations: DefaultVerificationBlockConfirmations,
		Mocks: MockConfig{
			Decimals:      DefaultMockDecimals,
			InitialAnswer: answer,
		},
	}
}

// IsDevelopmentChain reports whether the named network gets fresh mocks
func (c *DeployConfig) IsDevelopmentChain(name string) bool {
	return lo.Contains(c.DevelopmentChains, name)
}

// PriceFeed returns the configured price feed for a chain
func (c *DeployConfig) PriceFeed(chainID uint64) (common.Address, bool) {
	entry, ok := c.Chains[chainID]
	if !ok || entry.PriceFeed == (common.Address{}) {
		return common.Address{}, false
	}
	return entry.PriceFeed, true
}

// ConfirmationsFor returns the confirmations to await for a network class
func (c *DeployConfig) ConfirmationsFor(development bool) uint64 {
	if development {
		return 1
	}
	if c.VerificationBlockConfirmations == 0 {
		return DefaultVerificationBlockConfirmations
	}
	return c.VerificationBlockConfirmations
}
