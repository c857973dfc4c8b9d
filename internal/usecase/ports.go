package usecase

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/eventcreator-deploy/internal/domain"
	"github.com/trebuchet-org/eventcreator-deploy/internal/domain/models"
)

// DeploymentRepository handles persistence of deployments
type DeploymentRepository interface {
	GetDeployment(ctx context.Context, network string, chainID uint64, contractName string) (*models.Deployment, error)
	ListDeployments(ctx context.Context, filter domain.DeploymentFilter) ([]*models.Deployment, error)
	SaveDeployment(ctx context.Context, deployment *models.Deployment) error
}

// ArtifactRepository provides access to compiled contracts
type ArtifactRepository interface {
	GetArtifact(ctx context.Context, contractName string) (*models.Artifact, error)
}

// DeployRequest describes a single contract creation
type DeployRequest struct {
	Network       *domain.NetworkProfile
	Artifact      *models.Artifact
	From          common.Address
	Args          []any
	Confirmations uint64
	Progress      ProgressSink
}

// DeployResult is what the chain reports back for a contract creation
type DeployResult struct {
	Address     common.Address
	TxHash      common.Hash
	BlockNumber uint64
}

// CodeReader reports whether a network has contract code at an address
type CodeReader interface {
	HasCode(ctx context.Context, network *domain.NetworkProfile, address common.Address) (bool, error)
}

// ContractDeployer submits contract creation transactions and waits for
// the requested number of confirmations
type ContractDeployer interface {
	CodeReader
	Deploy(ctx context.Context, req DeployRequest) (*DeployResult, error)
}

// NamedAccounts are the accounts filling deployment roles
type NamedAccounts struct {
	Deployer common.Address
	// Service is the privileged account passed to the EventCreator
	// constructor. Zero means "same as deployer".
	Service common.Address
}

// AccountProvider resolves the named accounts for a network
type AccountProvider interface {
	NamedAccounts(ctx context.Context, network *domain.NetworkProfile) (*NamedAccounts, error)
}

// NetworkResolver handles network configuration resolution
type NetworkResolver interface {
	GetNetworks(ctx context.Context) []string
	ResolveNetwork(ctx context.Context, networkName string) (*domain.NetworkProfile, error)
}

// DeploymentConfirmer asks the operator before irreversible deployments
type DeploymentConfirmer interface {
	ConfirmDeployment(ctx context.Context, network *domain.NetworkProfile, contractName string, args []string) (bool, error)
}

// Progress tracking interfaces

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage    string
	Current  int
	Total    int
	Message  string
	Spinner  bool
	Metadata interface{}
}

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
	Error(message string)
}

// NopProgress is a no-op implementation of ProgressSink
type NopProgress struct{}

func (NopProgress) OnProgress(context.Context, ProgressEvent) {}
func (NopProgress) Info(string)                               {}
func (NopProgress) Error(string)                              {}

// ExecutionStage represents a stage in the deployment process
type ExecutionStage string

const (
	StageResolving    ExecutionStage = "Resolving"
	StageBroadcasting ExecutionStage = "Broadcasting"
	StageConfirming   ExecutionStage = "Confirming"
	StageCompleted    ExecutionStage = "Completed"
)

