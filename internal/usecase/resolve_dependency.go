package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/eventcreator-deploy/internal/domain"
	"github.com/trebuchet-org/eventcreator-deploy/internal/domain/config"
)

// ResolveDependency picks the price-feed address an EventCreator deployment
// is constructed with.
type ResolveDependency struct {
	config *config.DeployConfig
	repo   DeploymentRepository
	code   CodeReader
	log    *slog.Logger
}

// NewResolveDependency creates a new ResolveDependency use case
func NewResolveDependency(cfg *config.DeployConfig, repo DeploymentRepository, code CodeReader, log *slog.Logger) *ResolveDependency {
	return &ResolveDependency{
		config: cfg,
		repo:   repo,
		code:   code,
		log:    log.With("component", "ResolveDependency"),
	}
}

// ResolveDependencyAddress returns the mock aggregator recorded for a
// development network, or the configured price feed for a production chain.
func (uc *ResolveDependency) ResolveDependencyAddress(ctx context.Context, network *domain.NetworkProfile) (common.Address, error) {
	if network.IsDevelopment() {
		return uc.resolveMock(ctx, network)
	}

	feed, ok := uc.config.PriceFeed(network.ChainID)
	if !ok {
		return common.Address{}, domain.UnconfiguredNetworkErr{
			Network: network.Name,
			ChainID: network.ChainID,
		}
	}

	uc.log.Debug("resolved configured price feed", "network", network.Name, "chainId", network.ChainID, "address", feed.Hex())
	return feed, nil
}

func (uc *ResolveDependency) resolveMock(ctx context.Context, network *domain.NetworkProfile) (common.Address, error) {
	missing := domain.MissingDependencyErr{
		ContractName: domain.MockAggregatorContract,
		Network:      network.Name,
		ChainID:      network.ChainID,
	}

	dep, err := uc.repo.GetDeployment(ctx, network.Name, network.ChainID, domain.MockAggregatorContract)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return common.Address{}, missing
		}
		return common.Address{}, fmt.Errorf("failed to look up %s: %w", domain.MockAggregatorContract, err)
	}

	if !common.IsHexAddress(dep.Address) {
		return common.Address{}, fmt.Errorf("%w: recorded %s address %q", domain.ErrInvalidAddress, dep.ContractName, dep.Address)
	}

	addr := common.HexToAddress(dep.Address)
	if addr == (common.Address{}) {
		return common.Address{}, missing
	}

	// The record outlives a restarted dev node
	ok, err := uc.code.HasCode(ctx, network, addr)
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to verify %s at %s: %w", domain.MockAggregatorContract, addr.Hex(), err)
	}
	if !ok {
		uc.log.Warn("recorded mock has no code on chain", "network", network.Name, "address", addr.Hex())
		return common.Address{}, missing
	}

	uc.log.Debug("resolved mock price feed", "network", network.Name, "address", addr.Hex())
	return addr, nil
}
