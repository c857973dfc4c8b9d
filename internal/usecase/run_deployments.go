package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/trebuchet-org/eventcreator-deploy/internal/domain"
)

// Deployment tags
const (
	TagAll          = "all"
	TagMocks        = "mocks"
	TagEventCreator = "eventCreator"
)

// RunDeploymentsParams contains parameters for a tagged deployment run
type RunDeploymentsParams struct {
	NetworkName string
	Tags        []string // defaults to "all"
	Service     common.Address
	Reset       bool
	DryRun      bool
}

// UnitResult is the outcome of one deployment unit
type UnitResult struct {
	Unit    string
	Tags    []string
	Result  *DeployContractResult // nil when the unit had nothing to do
	Skipped bool
}

// RunDeploymentsResult contains the outcome of a deployment run
type RunDeploymentsResult struct {
	RunID    string
	Network  *domain.NetworkProfile
	Accounts *NamedAccounts
	Units    []UnitResult
}

type unitContext struct {
	network  *domain.NetworkProfile
	accounts *NamedAccounts
	params   RunDeploymentsParams
}

type deploymentUnit struct {
	name string
	tags []string
	run  func(ctx context.Context, uctx unitContext) (*DeployContractResult, error)
}

// RunDeployments selects deployment units by tag and runs them in order
type RunDeployments struct {
	networks NetworkResolver
	accounts AccountProvider
	units    []deploymentUnit
	log      *slog.Logger
}

// NewRunDeployments creates a new RunDeployments use case
func NewRunDeployments(
	networks NetworkResolver,
	accounts AccountProvider,
	mocks *DeployMocks,
	eventCreator *DeployEventCreator,
	log *slog.Logger,
) *RunDeployments {
	// Order matters: EventCreator on a development network looks up the mock.
	units := []deploymentUnit{
		{
			name: TagMocks,
			tags: []string{TagAll, TagMocks},
			run: func(ctx context.Context, uctx unitContext) (*DeployContractResult, error) {
				return mocks.Run(ctx, DeployMocksParams{
					Network:  uctx.network,
					Deployer: uctx.accounts.Deployer,
					Tags:     []string{TagAll, TagMocks},
					Reset:    uctx.params.Reset,
					DryRun:   uctx.params.DryRun,
				})
			},
		},
		{
			name: TagEventCreator,
			tags: []string{TagAll, TagEventCreator},
			run: func(ctx context.Context, uctx unitContext) (*DeployContractResult, error) {
				return eventCreator.Run(ctx, DeployEventCreatorParams{
					Network:  uctx.network,
					Deployer: uctx.accounts.Deployer,
					Service:  uctx.accounts.Service,
					Tags:     []string{TagAll, TagEventCreator},
					Reset:    uctx.params.Reset,
					DryRun:   uctx.params.DryRun,
				})
			},
		},
	}

	return &RunDeployments{
		networks: networks,
		accounts: accounts,
		units:    units,
		log:      log.With("component", "RunDeployments"),
	}
}

// KnownTags returns every tag carried by a deployment unit
func (uc *RunDeployments) KnownTags() []string {
	return lo.Uniq(lo.FlatMap(uc.units, func(u deploymentUnit, _ int) []string {
		return u.tags
	}))
}

// Run executes the use case
func (uc *RunDeployments) Run(ctx context.Context, params RunDeploymentsParams) (*RunDeploymentsResult, error) {
	tags := params.Tags
	if len(tags) == 0 {
		tags = []string{TagAll}
	}

	known := uc.KnownTags()
	if unknown := lo.Without(tags, known...); len(unknown) > 0 {
		return nil, domain.UnknownTagErr{Tags: unknown, Known: known}
	}

	network, err := uc.networks.ResolveNetwork(ctx, params.NetworkName)
	if err != nil {
		return nil, err
	}

	accounts, err := uc.accounts.NamedAccounts(ctx, network)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve named accounts: %w", err)
	}
	if params.Service != (common.Address{}) {
		accounts.Service = params.Service
	}
	if accounts.Service == (common.Address{}) {
		accounts.Service = accounts.Deployer
	}

	result := &RunDeploymentsResult{
		RunID:    uuid.NewString(),
		Network:  network,
		Accounts: accounts,
	}
	log := uc.log.With("run", result.RunID, "network", network.Name, "chainId", network.ChainID)
	log.Debug("starting deployment run", "tags", tags, "deployer", accounts.Deployer.Hex())

	uctx := unitContext{network: network, accounts: accounts, params: params}
	for _, unit := range uc.units {
		if !lo.Some(unit.tags, tags) {
			continue
		}

		log.Debug("running deployment unit", "unit", unit.name)
		res, err := unit.run(ctx, uctx)
		if err != nil {
			return result, err
		}

		result.Units = append(result.Units, UnitResult{
			Unit:    unit.name,
			Tags:    unit.tags,
			Result:  res,
			Skipped: res == nil,
		})
	}

	return result, nil
}
