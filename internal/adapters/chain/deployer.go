package chain

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/trebuchet-org/eventcreator-deploy/internal/domain"
	"github.com/trebuchet-org/eventcreator-deploy/internal/domain/config"
	"github.com/trebuchet-org/eventcreator-deploy/internal/usecase"
)

// Client is the part of an Ethereum JSON-RPC client the deployer needs
type Client interface {
	bind.ContractBackend
	bind.DeployBackend
	HeadReader
	ChainID(ctx context.Context) (*big.Int, error)
	Close()
}

// Dialer opens a client for an RPC endpoint
type Dialer func(ctx context.Context, rpcURL string) (Client, error)

// DialEthClient dials rpcURL with go-ethereum's ethclient
func DialEthClient(ctx context.Context, rpcURL string) (Client, error) {
	return ethclient.DialContext(ctx, rpcURL)
}

// KeySource returns the signing key for an account
type KeySource interface {
	KeyFor(ctx context.Context, network *domain.NetworkProfile, from common.Address) (*ecdsa.PrivateKey, error)
}

// DeployerAdapter creates contracts with a locally held key
type DeployerAdapter struct {
	keys   KeySource
	dial   Dialer
	waiter *ConfirmationWaiter
	log    *slog.Logger
}

// NewDeployerAdapter creates a new deployer using ethclient
func NewDeployerAdapter(cfg *config.RuntimeConfig, keys KeySource, log *slog.Logger) *DeployerAdapter {
	return &DeployerAdapter{
		keys:   keys,
		dial:   DialEthClient,
		waiter: NewConfirmationWaiter(cfg.PollInterval),
		log:    log.With("component", "ChainDeployer"),
	}
}

// WithDialer replaces how RPC connections are opened
func (d *DeployerAdapter) WithDialer(dial Dialer) *DeployerAdapter {
	d.dial = dial
	return d
}

// Deploy sends one contract creation transaction and waits for the
// requested confirmations
func (d *DeployerAdapter) Deploy(ctx context.Context, req usecase.DeployRequest) (*usecase.DeployResult, error) {
	network := req.Network
	if network.RPCURL == "" {
		return nil, fmt.Errorf("no rpc_url configured for %s", network.Name)
	}

	progress := req.Progress
	if progress == nil {
		progress = usecase.NopProgress{}
	}

	key, err := d.keys.KeyFor(ctx, network, req.From)
	if err != nil {
		return nil, err
	}

	client, chainID, err := d.connect(ctx, network)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	auth, err := bind.NewKeyedTransactorWithChainID(key, chainID)
	if err != nil {
		return nil, fmt.Errorf("failed to create transactor: %w", err)
	}
	auth.Context = ctx

	address, tx, _, err := bind.DeployContract(auth, req.Artifact.ABI, req.Artifact.Bytecode, client, req.Args...)
	if err != nil {
		return nil, fmt.Errorf("failed to send transaction: %w", err)
	}

	log := d.log.With("contract", req.Artifact.Name, "network", network.Name, "tx", tx.Hash().Hex())
	log.Debug("deployment transaction sent", "nonce", tx.Nonce(), "gas", tx.Gas())

	progress.OnProgress(ctx, usecase.ProgressEvent{
		Stage:   string(usecase.StageBroadcasting),
		Message: fmt.Sprintf("Waiting for %s to be mined", shortHash(tx.Hash())),
		Spinner: true,
	})

	receipt, err := bind.WaitMined(ctx, client, tx)
	if err != nil {
		return nil, fmt.Errorf("failed to wait for transaction: %w", err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, fmt.Errorf("transaction %s reverted", tx.Hash().Hex())
	}

	minedAt := receipt.BlockNumber.Uint64()
	if err := d.waiter.Wait(ctx, client, minedAt, req.Confirmations, progress); err != nil {
		return nil, err
	}

	if receipt.ContractAddress != (common.Address{}) {
		address = receipt.ContractAddress
	}

	log.Debug("deployment confirmed", "address", address.Hex(), "block", minedAt, "gasUsed", receipt.GasUsed)

	return &usecase.DeployResult{
		Address:     address,
		TxHash:      tx.Hash(),
		BlockNumber: minedAt,
	}, nil
}

// HasCode reports whether the network has contract code at address. A dev
// node restarted with the same chain id answers false for every address
// recorded before the restart.
func (d *DeployerAdapter) HasCode(ctx context.Context, network *domain.NetworkProfile, address common.Address) (bool, error) {
	if network.RPCURL == "" {
		return false, fmt.Errorf("no rpc_url configured for %s", network.Name)
	}

	client, _, err := d.connect(ctx, network)
	if err != nil {
		return false, err
	}
	defer client.Close()

	code, err := client.CodeAt(ctx, address, nil)
	if err != nil {
		return false, fmt.Errorf("failed to read code at %s: %w", address.Hex(), err)
	}
	return len(code) > 0, nil
}

// connect dials the network and checks it serves the expected chain
func (d *DeployerAdapter) connect(ctx context.Context, network *domain.NetworkProfile) (Client, *big.Int, error) {
	client, err := d.dial(ctx, network.RPCURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to RPC: %w", err)
	}

	chainID, err := client.ChainID(ctx)
	if err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("failed to get chain ID: %w", err)
	}
	if network.ChainID != 0 && chainID.Uint64() != network.ChainID {
		client.Close()
		return nil, nil, fmt.Errorf("chain ID mismatch: expected %d, got %d", network.ChainID, chainID.Uint64())
	}
	return client, chainID, nil
}

func shortHash(h common.Hash) string {
	s := h.Hex()
	return s[:10] + "..." + s[len(s)-4:]
}

// Ensure DeployerAdapter implements ContractDeployer
var _ usecase.ContractDeployer = (*DeployerAdapter)(nil)
