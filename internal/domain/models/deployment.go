package models

import (
	"fmt"
	"time"
)

// Deployment is the persisted result of a single contract deployment
type Deployment struct {
	// Core identification
	ID           string `json:"id"`      // e.g., "mumbai/80001/EventCreator"
	Network      string `json:"network"` // e.g., "localhost", "mumbai"
	ChainID      uint64 `json:"chainId"`
	ContractName string `json:"contractName"`
	Address      string `json:"address"`

	// Transaction details
	TxHash        string `json:"txHash"`
	BlockNumber   uint64 `json:"blockNumber"`
	Confirmations uint64 `json:"confirmations"`
	Deployer      string `json:"deployer"`

	// Constructor arguments in declaration order, rendered as strings
	Args []string `json:"args"`

	// Fingerprint is keccak256(bytecode || abi-encoded args), hex encoded
	Fingerprint string `json:"fingerprint"`

	// Metadata
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DeploymentID builds the registry key for a contract on a network
func DeploymentID(network string, chainID uint64, contractName string) string {
	return fmt.Sprintf("%s/%d/%s", network, chainID, contractName)
}

// GetDisplayName returns a human-friendly name for the deployment
func (d *Deployment) GetDisplayName() string {
	return fmt.Sprintf("%s@%s", d.ContractName, d.Network)
}
