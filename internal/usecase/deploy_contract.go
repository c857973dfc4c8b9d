package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/eventcreator-deploy/internal/domain"
	"github.com/trebuchet-org/eventcreator-deploy/internal/domain/models"
)

// DeployContractParams contains parameters for a single contract deployment
type DeployContractParams struct {
	Network      *domain.NetworkProfile
	ContractName string
	From         common.Address
	Args         []any
	Tags         []string
	Reset        bool // redeploy even when the fingerprint matches the last record
	DryRun       bool
}

// DeployContractResult contains the outcome of a contract deployment
type DeployContractResult struct {
	ContractName  string
	Network       *domain.NetworkProfile
	Deployment    *models.Deployment // nil for dry runs
	Args          []string
	Fingerprint   string
	Confirmations uint64
	Reused        bool
	DryRun        bool
}

// DeployContract deploys one artifact, skipping the transaction when an
// identical deployment is already recorded for the network.
type DeployContract struct {
	artifacts ArtifactRepository
	deployer  ContractDeployer
	repo      DeploymentRepository
	confirmer DeploymentConfirmer
	progress  ProgressSink
	log       *slog.Logger
	now       func() time.Time
}

// NewDeployContract creates a new DeployContract use case
func NewDeployContract(
	artifacts ArtifactRepository,
	deployer ContractDeployer,
	repo DeploymentRepository,
	confirmer DeploymentConfirmer,
	progress ProgressSink,
	log *slog.Logger,
) *DeployContract {
	return &DeployContract{
		artifacts: artifacts,
		deployer:  deployer,
		repo:      repo,
		confirmer: confirmer,
		progress:  progress,
		log:       log.With("component", "DeployContract"),
		now:       time.Now,
	}
}

// Run executes the use case
func (uc *DeployContract) Run(ctx context.Context, params DeployContractParams) (*DeployContractResult, error) {
	network := params.Network
	if network == nil {
		return nil, fmt.Errorf("network not specified")
	}

	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:   string(StageResolving),
		Message: fmt.Sprintf("Loading %s artifact", params.ContractName),
	})

	artifact, err := uc.artifacts.GetArtifact(ctx, params.ContractName)
	if err != nil {
		return nil, err
	}

	fingerprint, err := Fingerprint(artifact, params.Args)
	if err != nil {
		return nil, err
	}

	result := &DeployContractResult{
		ContractName:  params.ContractName,
		Network:       network,
		Args:          FormatArgs(params.Args),
		Fingerprint:   fingerprint.Hex(),
		Confirmations: network.RequiredConfirmations,
	}

	if !params.Reset {
		existing, err := uc.repo.GetDeployment(ctx, network.Name, network.ChainID, params.ContractName)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("failed to read existing deployment: %w", err)
		}
		if err == nil && existing.Fingerprint == result.Fingerprint {
			live, err := uc.isLive(ctx, network, existing)
			if err != nil {
				return nil, err
			}
			if live {
				uc.log.Info("reusing deployment", "contract", params.ContractName, "network", network.Name, "address", existing.Address)
				result.Deployment = existing
				result.Reused = true
				return result, nil
			}
			uc.log.Warn("recorded deployment has no code on chain, redeploying",
				"contract", params.ContractName, "network", network.Name, "address", existing.Address)
		}
	}

	if params.DryRun {
		result.DryRun = true
		return result, nil
	}

	if !network.IsDevelopment() && uc.confirmer != nil {
		ok, err := uc.confirmer.ConfirmDeployment(ctx, network, params.ContractName, result.Args)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, domain.ErrDeploymentAborted
		}
	}

	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:   string(StageBroadcasting),
		Message: fmt.Sprintf("Deploying %s to %s", params.ContractName, network.Name),
		Spinner: true,
	})

	deployed, err := uc.deployer.Deploy(ctx, DeployRequest{
		Network:       network,
		Artifact:      artifact,
		From:          params.From,
		Args:          params.Args,
		Confirmations: network.RequiredConfirmations,
		Progress:      uc.progress,
	})
	if err != nil {
		uc.progress.OnProgress(ctx, ProgressEvent{Stage: string(StageCompleted)})
		return nil, domain.DeploymentFailedErr{
			ContractName: params.ContractName,
			Network:      network.Name,
			Cause:        err,
		}
	}

	uc.progress.OnProgress(ctx, ProgressEvent{Stage: string(StageCompleted)})

	now := uc.now()
	record := &models.Deployment{
		ID:            models.DeploymentID(network.Name, network.ChainID, params.ContractName),
		Network:       network.Name,
		ChainID:       network.ChainID,
		ContractName:  params.ContractName,
		Address:       deployed.Address.Hex(),
		TxHash:        deployed.TxHash.Hex(),
		BlockNumber:   deployed.BlockNumber,
		Confirmations: network.RequiredConfirmations,
		Deployer:      params.From.Hex(),
		Args:          result.Args,
		Fingerprint:   result.Fingerprint,
		Tags:          params.Tags,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	uc.log.Info("contract deployed", "contract", params.ContractName, "network", network.Name, "address", record.Address)

	if err := uc.repo.SaveDeployment(ctx, record); err != nil {
		return nil, fmt.Errorf("deployed %s at %s but failed to record it: %w", params.ContractName, record.Address, err)
	}

	result.Deployment = record
	return result, nil
}

// isLive reports whether a recorded deployment still exists. Development
// chains are checked on every reuse since a restarted node keeps its chain
// id but loses its state.
func (uc *DeployContract) isLive(ctx context.Context, network *domain.NetworkProfile, dep *models.Deployment) (bool, error) {
	if !network.IsDevelopment() {
		return true, nil
	}
	if !common.IsHexAddress(dep.Address) {
		return false, nil
	}
	ok, err := uc.deployer.HasCode(ctx, network, common.HexToAddress(dep.Address))
	if err != nil {
		return false, fmt.Errorf("failed to verify %s at %s: %w", dep.ContractName, dep.Address, err)
	}
	return ok, nil
}
