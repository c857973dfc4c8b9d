package usecase_test

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/eventcreator-deploy/internal/domain"
	"github.com/trebuchet-org/eventcreator-deploy/internal/domain/models"
	"github.com/trebuchet-org/eventcreator-deploy/internal/usecase"
)

const (
	eventCreatorABI = `[{"type":"constructor","stateMutability":"nonpayable","inputs":[` +
		`{"name":"priceFeed","type":"address","internalType":"address"},` +
		`{"name":"service","type":"address","internalType":"address"}]}]`
	mockAggregatorABI = `[{"type":"constructor","stateMutability":"nonpayable","inputs":[` +
		`{"name":"_decimals","type":"uint8","internalType":"uint8"},` +
		`{"name":"_initialAnswer","type":"int256","internalType":"int256"}]}]`
)

// MockDeploymentRepository is a mock implementation of DeploymentRepository
type MockDeploymentRepository struct {
	mock.Mock
}

func (m *MockDeploymentRepository) GetDeployment(ctx context.Context, network string, chainID uint64, contractName string) (*models.Deployment, error) {
	args := m.Called(ctx, network, chainID, contractName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Deployment), args.Error(1)
}

func (m *MockDeploymentRepository) ListDeployments(ctx context.Context, filter domain.DeploymentFilter) ([]*models.Deployment, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Deployment), args.Error(1)
}

func (m *MockDeploymentRepository) SaveDeployment(ctx context.Context, deployment *models.Deployment) error {
	args := m.Called(ctx, deployment)
	return args.Error(0)
}

// MockContractDeployer is a mock implementation of ContractDeployer
type MockContractDeployer struct {
	mock.Mock
}

func (m *MockContractDeployer) Deploy(ctx context.Context, req usecase.DeployRequest) (*usecase.DeployResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.DeployResult), args.Error(1)
}

func (m *MockContractDeployer) HasCode(ctx context.Context, network *domain.NetworkProfile, address common.Address) (bool, error) {
	args := m.Called(ctx, network, address)
	return args.Bool(0), args.Error(1)
}

// MockConfirmer is a mock implementation of DeploymentConfirmer
type MockConfirmer struct {
	mock.Mock
}

func (m *MockConfirmer) ConfirmDeployment(ctx context.Context, network *domain.NetworkProfile, contractName string, args []string) (bool, error) {
	ret := m.Called(ctx, network, contractName, args)
	return ret.Bool(0), ret.Error(1)
}

// MockNetworkResolver is a mock implementation of NetworkResolver
type MockNetworkResolver struct {
	mock.Mock
}

func (m *MockNetworkResolver) GetNetworks(ctx context.Context) []string {
	args := m.Called(ctx)
	return args.Get(0).([]string)
}

func (m *MockNetworkResolver) ResolveNetwork(ctx context.Context, name string) (*domain.NetworkProfile, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.NetworkProfile), args.Error(1)
}

// MockAccountProvider is a mock implementation of AccountProvider
type MockAccountProvider struct {
	mock.Mock
}

func (m *MockAccountProvider) NamedAccounts(ctx context.Context, network *domain.NetworkProfile) (*usecase.NamedAccounts, error) {
	args := m.Called(ctx, network)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.NamedAccounts), args.Error(1)
}

// stubArtifacts serves artifacts from memory
type stubArtifacts map[string]*models.Artifact

func (s stubArtifacts) GetArtifact(_ context.Context, name string) (*models.Artifact, error) {
	if a, ok := s[name]; ok {
		return a, nil
	}
	return nil, domain.ErrArtifactNotFound
}

// recordingSink is a ProgressSink that keeps every event
type recordingSink struct {
	events []usecase.ProgressEvent
	infos  []string
}

func (s *recordingSink) OnProgress(_ context.Context, event usecase.ProgressEvent) {
	s.events = append(s.events, event)
}
func (s *recordingSink) Info(message string)  { s.infos = append(s.infos, message) }
func (s *recordingSink) Error(message string) {}

func newTestArtifacts(t *testing.T) stubArtifacts {
	t.Helper()
	return stubArtifacts{
		domain.EventCreatorContract:   newArtifact(t, domain.EventCreatorContract, eventCreatorABI, []byte{0x60, 0x80, 0x60, 0x40}),
		domain.MockAggregatorContract: newArtifact(t, domain.MockAggregatorContract, mockAggregatorABI, []byte{0x60, 0x80, 0x60, 0x41}),
	}
}

func newArtifact(t *testing.T, name, abiJSON string, bytecode []byte) *models.Artifact {
	t.Helper()
	parsed, err := abi.JSON(strings.NewReader(abiJSON))
	require.NoError(t, err)
	return &models.Artifact{Name: name, ABI: parsed, Bytecode: bytecode}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
