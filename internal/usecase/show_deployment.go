package usecase

import (
	"context"
	"fmt"

	"github.com/trebuchet-org/eventcreator-deploy/internal/domain/models"
)

// ShowDeploymentParams contains parameters for showing a deployment
type ShowDeploymentParams struct {
	NetworkName  string
	ContractName string
}

// ShowDeployment is the use case for showing deployment details
type ShowDeployment struct {
	networks NetworkResolver
	repo     DeploymentRepository
}

// NewShowDeployment creates a new ShowDeployment use case
func NewShowDeployment(networks NetworkResolver, repo DeploymentRepository) *ShowDeployment {
	return &ShowDeployment{
		networks: networks,
		repo:     repo,
	}
}

// Run executes the show deployment use case
func (uc *ShowDeployment) Run(ctx context.Context, params ShowDeploymentParams) (*models.Deployment, error) {
	if params.ContractName == "" {
		return nil, fmt.Errorf("contract name is required")
	}

	network, err := uc.networks.ResolveNetwork(ctx, params.NetworkName)
	if err != nil {
		return nil, err
	}

	deployment, err := uc.repo.GetDeployment(ctx, network.Name, network.ChainID, params.ContractName)
	if err != nil {
		return nil, fmt.Errorf("%s on %s: %w", params.ContractName, network.Name, err)
	}

	return deployment, nil
}
