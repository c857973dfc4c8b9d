package usecase

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/eventcreator-deploy/internal/domain"
	"github.com/trebuchet-org/eventcreator-deploy/internal/domain/config"
)

// DeployMocksParams contains parameters for deploying development mocks
type DeployMocksParams struct {
	Network  *domain.NetworkProfile
	Deployer common.Address
	Tags     []string
	Reset    bool
	DryRun   bool
}

// DeployMocks deploys the price-feed mock on development networks so that
// EventCreator has a dependency to point at.
type DeployMocks struct {
	config   *config.DeployConfig
	deploy   *DeployContract
	progress ProgressSink
}

// NewDeployMocks creates a new DeployMocks use case
func NewDeployMocks(cfg *config.DeployConfig, deploy *DeployContract, progress ProgressSink) *DeployMocks {
	return &DeployMocks{
		config:   cfg,
		deploy:   deploy,
		progress: progress,
	}
}

// MockAggregatorArgs builds MockV3Aggregator(uint8 decimals, int256 initialAnswer)
func MockAggregatorArgs(mocks config.MockConfig) []any {
	answer := mocks.InitialAnswer
	if answer == nil {
		answer = new(big.Int)
	}
	return []any{mocks.Decimals, new(big.Int).Set(answer)}
}

// Run executes the use case. Production networks return a nil result.
func (uc *DeployMocks) Run(ctx context.Context, params DeployMocksParams) (*DeployContractResult, error) {
	if params.Network == nil {
		return nil, fmt.Errorf("network not specified")
	}

	if !params.Network.IsDevelopment() {
		uc.progress.Info(fmt.Sprintf("Skipping mocks on %s: price feed is configured per chain", params.Network.Name))
		return nil, nil
	}

	return uc.deploy.Run(ctx, DeployContractParams{
		Network:      params.Network,
		ContractName: domain.MockAggregatorContract,
		From:         params.Deployer,
		Args:         MockAggregatorArgs(uc.config.Mocks),
		Tags:         params.Tags,
		Reset:        params.Reset,
		DryRun:       params.DryRun,
	})
}
