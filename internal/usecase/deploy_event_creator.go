package usecase

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/eventcreator-deploy/internal/domain"
)

// DeployEventCreatorParams contains parameters for deploying EventCreator
type DeployEventCreatorParams struct {
	Network  *domain.NetworkProfile
	Deployer common.Address
	// Service is the contract's privileged account. Zero defaults to Deployer.
	Service common.Address
	Tags    []string
	Reset   bool
	DryRun  bool
}

// DeployEventCreator resolves the price feed for the target network and
// deploys EventCreator(priceFeed, service).
type DeployEventCreator struct {
	resolver *ResolveDependency
	deploy   *DeployContract
}

// NewDeployEventCreator creates a new DeployEventCreator use case
func NewDeployEventCreator(resolver *ResolveDependency, deploy *DeployContract) *DeployEventCreator {
	return &DeployEventCreator{
		resolver: resolver,
		deploy:   deploy,
	}
}

// EventCreatorArgs builds the constructor argument list. The order matches
// the constructor's parameter order.
func EventCreatorArgs(priceFeed, service common.Address) []any {
	return []any{priceFeed, service}
}

// Run executes the use case
func (uc *DeployEventCreator) Run(ctx context.Context, params DeployEventCreatorParams) (*DeployContractResult, error) {
	if params.Network == nil {
		return nil, fmt.Errorf("network not specified")
	}

	priceFeed, err := uc.resolver.ResolveDependencyAddress(ctx, params.Network)
	if err != nil {
		return nil, err
	}

	service := params.Service
	if service == (common.Address{}) {
		service = params.Deployer
	}

	return uc.deploy.Run(ctx, DeployContractParams{
		Network:      params.Network,
		ContractName: domain.EventCreatorContract,
		From:         params.Deployer,
		Args:         EventCreatorArgs(priceFeed, service),
		Tags:         params.Tags,
		Reset:        params.Reset,
		DryRun:       params.DryRun,
	})
}
