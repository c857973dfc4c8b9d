package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/eventcreator-deploy/internal/domain"
	"github.com/trebuchet-org/eventcreator-deploy/internal/domain/models"
	"github.com/trebuchet-org/eventcreator-deploy/internal/usecase"
)

func TestListDeployments(t *testing.T) {
	ctx := context.Background()

	t.Run("sorts and summarizes", func(t *testing.T) {
		repo := new(MockDeploymentRepository)
		sink := &recordingSink{}
		repo.On("ListDeployments", mock.Anything, domain.DeploymentFilter{Network: ""}).Return([]*models.Deployment{
			{Network: "mumbai", ChainID: 80001, ContractName: domain.EventCreatorContract},
			{Network: "localhost", ChainID: 31337, ContractName: domain.MockAggregatorContract},
			{Network: "localhost", ChainID: 31337, ContractName: domain.EventCreatorContract},
		}, nil)

		result, err := usecase.NewListDeployments(repo, sink).Run(ctx, usecase.ListDeploymentsParams{})
		require.NoError(t, err)
		require.Len(t, result.Deployments, 3)

		assert.Equal(t, "localhost", result.Deployments[0].Network)
		assert.Equal(t, domain.EventCreatorContract, result.Deployments[0].ContractName)
		assert.Equal(t, domain.MockAggregatorContract, result.Deployments[1].ContractName)
		assert.Equal(t, "mumbai", result.Deployments[2].Network)

		assert.Equal(t, 3, result.Summary.Total)
		assert.Equal(t, 2, result.Summary.ByNetwork["localhost"])
		assert.Equal(t, 2, result.Summary.ByContract[domain.EventCreatorContract])

		require.Len(t, sink.events, 2)
		assert.Equal(t, "complete", sink.events[1].Stage)
	})

	t.Run("passes the filter through", func(t *testing.T) {
		repo := new(MockDeploymentRepository)
		filter := domain.DeploymentFilter{Network: "mumbai", ContractName: domain.EventCreatorContract}
		repo.On("ListDeployments", mock.Anything, filter).Return([]*models.Deployment{}, nil)

		result, err := usecase.NewListDeployments(repo, usecase.NopProgress{}).Run(ctx, usecase.ListDeploymentsParams{
			Network:      "mumbai",
			ContractName: domain.EventCreatorContract,
		})
		require.NoError(t, err)
		assert.Empty(t, result.Deployments)
		repo.AssertExpectations(t)
	})
}

func TestShowDeployment(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the recorded deployment", func(t *testing.T) {
		repo := new(MockDeploymentRepository)
		networks := new(MockNetworkResolver)
		networks.On("ResolveNetwork", mock.Anything, "localhost").Return(devNetwork(), nil)
		dep := &models.Deployment{Network: "localhost", ContractName: domain.EventCreatorContract}
		repo.On("GetDeployment", mock.Anything, "localhost", uint64(31337), domain.EventCreatorContract).Return(dep, nil)

		got, err := usecase.NewShowDeployment(networks, repo).Run(ctx, usecase.ShowDeploymentParams{
			NetworkName:  "localhost",
			ContractName: domain.EventCreatorContract,
		})
		require.NoError(t, err)
		assert.Same(t, dep, got)
	})

	t.Run("not found keeps the sentinel", func(t *testing.T) {
		repo := new(MockDeploymentRepository)
		networks := new(MockNetworkResolver)
		networks.On("ResolveNetwork", mock.Anything, "localhost").Return(devNetwork(), nil)
		repo.On("GetDeployment", mock.Anything, "localhost", uint64(31337), domain.EventCreatorContract).Return(nil, domain.ErrNotFound)

		_, err := usecase.NewShowDeployment(networks, repo).Run(ctx, usecase.ShowDeploymentParams{
			NetworkName:  "localhost",
			ContractName: domain.EventCreatorContract,
		})
		assert.True(t, errors.Is(err, domain.ErrNotFound))
	})

	t.Run("requires a contract name", func(t *testing.T) {
		_, err := usecase.NewShowDeployment(new(MockNetworkResolver), new(MockDeploymentRepository)).Run(ctx, usecase.ShowDeploymentParams{})
		assert.Error(t, err)
	})
}
