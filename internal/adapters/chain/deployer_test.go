package chain

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"io"
	"log/slog"
	"math/big"
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient/simulated"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/eventcreator-deploy/internal/adapters/fs"
	"github.com/trebuchet-org/eventcreator-deploy/internal/domain"
	"github.com/trebuchet-org/eventcreator-deploy/internal/domain/config"
	"github.com/trebuchet-org/eventcreator-deploy/internal/domain/models"
	"github.com/trebuchet-org/eventcreator-deploy/internal/usecase"
)

// simulatedChainID is the chain id of go-ethereum's simulated backend
const simulatedChainID = 1337

type staticKey struct {
	key *ecdsa.PrivateKey
}

func (s staticKey) KeyFor(_ context.Context, _ *domain.NetworkProfile, from common.Address) (*ecdsa.PrivateKey, error) {
	if crypto.PubkeyToAddress(s.key.PublicKey) != from {
		return nil, errors.New("unknown account")
	}
	return s.key, nil
}

// simulatedClient adds the Close method ethclient has
type simulatedClient struct {
	simulated.Client
}

func (simulatedClient) Close() {}

func startChain(t *testing.T, funded common.Address) *simulated.Backend {
	t.Helper()
	backend := simulated.NewBackend(types.GenesisAlloc{
		funded: {Balance: new(big.Int).Mul(big.NewInt(100), big.NewInt(1e18))},
	})

	// Mine continuously so WaitMined and the confirmation waiter make progress
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(20 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				backend.Commit()
			}
		}
	}()
	t.Cleanup(func() {
		close(done)
		_ = backend.Close()
	})
	return backend
}

func testArtifact(t *testing.T) *models.Artifact {
	t.Helper()
	parsed, err := abi.JSON(strings.NewReader(`[]`))
	require.NoError(t, err)
	// STOP: creates an account with empty code
	return &models.Artifact{Name: "Empty", ABI: parsed, Bytecode: []byte{0x00}}
}

// codeArtifact leaves a single 0x01 byte of runtime code behind
func codeArtifact(t *testing.T) *models.Artifact {
	t.Helper()
	parsed, err := abi.JSON(strings.NewReader(`[]`))
	require.NoError(t, err)
	// PUSH1 1 PUSH1 0 MSTORE8 PUSH1 1 PUSH1 0 RETURN
	initCode := common.FromHex("0x600160005360016000f3")
	return &models.Artifact{Name: "Code", ABI: parsed, Bytecode: initCode}
}

type singleArtifact struct {
	artifact *models.Artifact
}

func (s singleArtifact) GetArtifact(context.Context, string) (*models.Artifact, error) {
	return s.artifact, nil
}

func newTestDeployer(keys KeySource, dial Dialer) *DeployerAdapter {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewDeployerAdapter(&config.RuntimeConfig{PollInterval: 10 * time.Millisecond}, keys, log).WithDialer(dial)
}

func TestDeployerAdapter(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	from := crypto.PubkeyToAddress(key.PublicKey)

	t.Run("deploys and waits for confirmations", func(t *testing.T) {
		backend := startChain(t, from)
		deployer := newTestDeployer(staticKey{key}, func(context.Context, string) (Client, error) {
			return simulatedClient{backend.Client()}, nil
		})

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		result, err := deployer.Deploy(ctx, usecase.DeployRequest{
			Network:       &domain.NetworkProfile{Name: "sim", ChainID: simulatedChainID, RPCURL: "sim://"},
			Artifact:      testArtifact(t),
			From:          from,
			Confirmations: 3,
		})
		require.NoError(t, err)
		assert.NotEqual(t, common.Address{}, result.Address)
		assert.Equal(t, crypto.CreateAddress(from, 0), result.Address)

		head, err := backend.Client().BlockNumber(ctx)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, head, result.BlockNumber+2)
	})

	t.Run("chain id mismatch", func(t *testing.T) {
		backend := startChain(t, from)
		deployer := newTestDeployer(staticKey{key}, func(context.Context, string) (Client, error) {
			return simulatedClient{backend.Client()}, nil
		})

		_, err := deployer.Deploy(context.Background(), usecase.DeployRequest{
			Network:  &domain.NetworkProfile{Name: "mumbai", ChainID: 80001, RPCURL: "sim://"},
			Artifact: testArtifact(t),
			From:     from,
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "chain ID mismatch")
	})

	t.Run("missing rpc url", func(t *testing.T) {
		deployer := newTestDeployer(staticKey{key}, nil)
		_, err := deployer.Deploy(context.Background(), usecase.DeployRequest{
			Network: &domain.NetworkProfile{Name: "mumbai"},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no rpc_url configured for mumbai")
	})

	t.Run("dial failure", func(t *testing.T) {
		deployer := newTestDeployer(staticKey{key}, func(context.Context, string) (Client, error) {
			return nil, errors.New("dial tcp: connection refused")
		})
		_, err := deployer.Deploy(context.Background(), usecase.DeployRequest{
			Network: &domain.NetworkProfile{Name: "localhost", RPCURL: "http://127.0.0.1:1"},
			From:    from,
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to connect to RPC")
	})

	t.Run("unknown sender", func(t *testing.T) {
		deployer := newTestDeployer(staticKey{key}, nil)
		_, err := deployer.Deploy(context.Background(), usecase.DeployRequest{
			Network: &domain.NetworkProfile{Name: "localhost", RPCURL: "http://127.0.0.1:1"},
			From:    common.HexToAddress("0x01"),
		})
		assert.EqualError(t, err, "unknown account")
	})
}

func TestDeployerAdapterHasCode(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	from := crypto.PubkeyToAddress(key.PublicKey)
	network := &domain.NetworkProfile{Name: "sim", ChainID: simulatedChainID, RPCURL: "sim://"}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	first := startChain(t, from)
	deployer := newTestDeployer(staticKey{key}, func(context.Context, string) (Client, error) {
		return simulatedClient{first.Client()}, nil
	})

	result, err := deployer.Deploy(ctx, usecase.DeployRequest{Network: network, Artifact: codeArtifact(t), From: from, Confirmations: 1})
	require.NoError(t, err)

	ok, err := deployer.HasCode(ctx, network, result.Address)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = deployer.HasCode(ctx, network, common.HexToAddress("0x01"))
	require.NoError(t, err)
	assert.False(t, ok)

	// A fresh chain with the same id does not have the contract
	restarted := startChain(t, from)
	deployer.WithDialer(func(context.Context, string) (Client, error) {
		return simulatedClient{restarted.Client()}, nil
	})
	ok, err = deployer.HasCode(ctx, network, result.Address)
	require.NoError(t, err)
	assert.False(t, ok)

	t.Run("chain id mismatch", func(t *testing.T) {
		_, err := deployer.HasCode(ctx, &domain.NetworkProfile{Name: "mumbai", ChainID: 80001, RPCURL: "sim://"}, result.Address)
		assert.ErrorContains(t, err, "chain ID mismatch")
	})

	t.Run("missing rpc url", func(t *testing.T) {
		_, err := deployer.HasCode(ctx, &domain.NetworkProfile{Name: "mumbai"}, result.Address)
		assert.ErrorContains(t, err, "no rpc_url configured for mumbai")
	})
}

func TestDeployContractAfterDevChainRestart(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	from := crypto.PubkeyToAddress(key.PublicKey)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	current := startChain(t, from)
	deployer := newTestDeployer(staticKey{key}, func(context.Context, string) (Client, error) {
		return simulatedClient{current.Client()}, nil
	})
	store := fs.NewDeploymentStoreAdapter(&config.RuntimeConfig{DeploymentsDir: t.TempDir()})
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	uc := usecase.NewDeployContract(singleArtifact{codeArtifact(t)}, deployer, store, nil, usecase.NopProgress{}, log)

	network := &domain.NetworkProfile{
		Name:                  "localhost",
		ChainID:               simulatedChainID,
		Class:                 domain.DevelopmentNetwork,
		RPCURL:                "sim://",
		RequiredConfirmations: 1,
	}
	params := usecase.DeployContractParams{Network: network, ContractName: "Code", From: from}

	first, err := uc.Run(ctx, params)
	require.NoError(t, err)
	assert.False(t, first.Reused)

	again, err := uc.Run(ctx, params)
	require.NoError(t, err)
	assert.True(t, again.Reused)
	assert.Equal(t, first.Deployment.Address, again.Deployment.Address)

	// Same chain id, empty state
	current = startChain(t, from)

	afterRestart, err := uc.Run(ctx, params)
	require.NoError(t, err)
	assert.False(t, afterRestart.Reused)

	code, err := current.Client().CodeAt(ctx, common.HexToAddress(afterRestart.Deployment.Address), nil)
	require.NoError(t, err)
	assert.NotEmpty(t, code)
}
