package adapters

import (
	"fmt"
	"log/slog"

	"github.com/google/wire"
	"github.com/trebuchet-org/eventcreator-deploy/internal/adapters/accounts"
	"github.com/trebuchet-org/eventcreator-deploy/internal/adapters/artifacts"
	"github.com/trebuchet-org/eventcreator-deploy/internal/adapters/chain"
	"github.com/trebuchet-org/eventcreator-deploy/internal/adapters/fs"
	"github.com/trebuchet-org/eventcreator-deploy/internal/adapters/interactive"
	"github.com/trebuchet-org/eventcreator-deploy/internal/adapters/network"
	"github.com/trebuchet-org/eventcreator-deploy/internal/adapters/progress"
	"github.com/trebuchet-org/eventcreator-deploy/internal/adapters/sqlstore"
	"github.com/trebuchet-org/eventcreator-deploy/internal/domain/config"
	"github.com/trebuchet-org/eventcreator-deploy/internal/usecase"
)

// Registry drivers
const (
	RegistryDriverFile     = "file"
	RegistryDriverSQLite   = "sqlite"
	RegistryDriverPostgres = sqlstore.DriverPostgres
)

// ProvideDeploymentRepository opens the registry selected by registry.driver
func ProvideDeploymentRepository(cfg *config.RuntimeConfig, log *slog.Logger) (usecase.DeploymentRepository, error) {
	switch cfg.RegistryDriver {
	case "", RegistryDriverFile:
		return fs.NewDeploymentStoreAdapter(cfg), nil
	case RegistryDriverSQLite, RegistryDriverPostgres:
		return sqlstore.NewStore(cfg, log)
	default:
		return nil, fmt.Errorf("unknown registry driver %q", cfg.RegistryDriver)
	}
}

// ProvideDeployConfig exposes the deploy config held by the runtime config
func ProvideDeployConfig(cfg *config.RuntimeConfig) *config.DeployConfig {
	if cfg.Deploy == nil {
		cfg.Deploy = config.DefaultDeployConfig()
	}
	return cfg.Deploy
}

// RegistrySet provides the deployment registry
var RegistrySet = wire.NewSet(
	ProvideDeploymentRepository,
)

// ArtifactSet provides compiled contract artifacts
var ArtifactSet = wire.NewSet(
	artifacts.NewRepository,
	wire.Bind(new(usecase.ArtifactRepository), new(*artifacts.Repository)),
)

// ChainSet provides the account and chain implementations
var ChainSet = wire.NewSet(
	accounts.NewProvider,
	wire.Bind(new(usecase.AccountProvider), new(*accounts.Provider)),
	wire.Bind(new(chain.KeySource), new(*accounts.Provider)),

	chain.NewDeployerAdapter,
	wire.Bind(new(usecase.ContractDeployer), new(*chain.DeployerAdapter)),
	wire.Bind(new(usecase.CodeReader), new(*chain.DeployerAdapter)),
)

// NetworkSet provides network resolution
var NetworkSet = wire.NewSet(
	ProvideDeployConfig,
	network.NewResolver,
	wire.Bind(new(usecase.NetworkResolver), new(*network.Resolver)),
)

// InteractiveSet provides interactive implementations
var InteractiveSet = wire.NewSet(
	interactive.NewConfirmerAdapter,
	wire.Bind(new(usecase.DeploymentConfirmer), new(*interactive.ConfirmerAdapter)),
)

// ProgressSet provides the progress sink
var ProgressSet = wire.NewSet(
	progress.NewProgressSink,
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	RegistrySet,
	ArtifactSet,
	ChainSet,
	NetworkSet,
	InteractiveSet,
	ProgressSet,
)
