package fs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/trebuchet-org/eventcreator-deploy/internal/domain"
	"github.com/trebuchet-org/eventcreator-deploy/internal/domain/config"
	"github.com/trebuchet-org/eventcreator-deploy/internal/domain/models"
	"github.com/trebuchet-org/eventcreator-deploy/internal/usecase"
)

const (
	// ChainIDFile marks the chain a network directory belongs to
	ChainIDFile = ".chainId"
	recordExt   = ".json"
)

// DeploymentStoreAdapter keeps one JSON file per contract and network:
//
//	<deployments>/<network>/<Contract>.json
type DeploymentStoreAdapter struct {
	rootDir string
	mu      sync.RWMutex
}

// NewDeploymentStoreAdapter creates a new file-backed deployment registry
func NewDeploymentStoreAdapter(cfg *config.RuntimeConfig) *DeploymentStoreAdapter {
	rootDir := cfg.DeploymentsDir
	if rootDir == "" {
		rootDir = filepath.Join(cfg.ProjectRoot, "deployments")
	}
	return &DeploymentStoreAdapter{rootDir: rootDir}
}

// GetDeployment returns the last deployment of a contract on a network
func (s *DeploymentStoreAdapter) GetDeployment(_ context.Context, network string, chainID uint64, contractName string) (*models.Deployment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// The directory marker names the chain its records were written for
	marker, ok, err := readChainID(filepath.Join(s.rootDir, network))
	if err != nil {
		return nil, err
	}
	if ok && marker != chainID {
		return nil, domain.ErrNotFound
	}

	dep, err := s.readRecord(s.recordPath(network, contractName))
	if err != nil {
		return nil, err
	}

	// Only the chain id is compared here; a restarted dev node keeps its id,
	// so whether the contract still exists is checked against the chain.
	if dep.ChainID != chainID {
		return nil, domain.ErrNotFound
	}
	return dep, nil
}

// ListDeployments walks the deployments directory and returns matching records
func (s *DeploymentStoreAdapter) ListDeployments(_ context.Context, filter domain.DeploymentFilter) ([]*models.Deployment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*models.Deployment
	err := filepath.WalkDir(s.rootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && path == s.rootDir {
				return filepath.SkipDir
			}
			return err
		}
		if d.IsDir() || filepath.Ext(path) != recordExt {
			return nil
		}

		dep, err := s.readRecord(path)
		if err != nil {
			return err
		}
		if filter.Matches(dep.Network, dep.ChainID, dep.ContractName) {
			result = append(result, dep)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list deployments: %w", err)
	}

	return result, nil
}

// SaveDeployment writes the record, replacing any previous one for the same contract
func (s *DeploymentStoreAdapter) SaveDeployment(_ context.Context, deployment *models.Deployment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Join(s.rootDir, deployment.Network)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create deployments directory: %w", err)
	}

	chainFile := filepath.Join(dir, ChainIDFile)
	if err := os.WriteFile(chainFile, []byte(fmt.Sprintf("%d", deployment.ChainID)), 0644); err != nil {
		return fmt.Errorf("failed to write chain id file: %w", err)
	}

	data, err := json.MarshalIndent(deployment, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal deployment: %w", err)
	}

	// Write to a temp file first so a crash never leaves a truncated record
	path := s.recordPath(deployment.Network, deployment.ContractName)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write deployment file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to write deployment file: %w", err)
	}

	return nil
}

func (s *DeploymentStoreAdapter) recordPath(network, contractName string) string {
	return filepath.Join(s.rootDir, network, contractName+recordExt)
}

func (s *DeploymentStoreAdapter) readRecord(path string) (*models.Deployment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to read deployment file: %w", err)
	}

	var dep models.Deployment
	if err := json.Unmarshal(data, &dep); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}

	// Hand-edited files may omit the derived fields
	if dep.ChainID == 0 {
		marker, ok, err := readChainID(filepath.Dir(path))
		if err != nil {
			return nil, err
		}
		if ok {
			dep.ChainID = marker
		}
	}
	if dep.Network == "" {
		dep.Network = filepath.Base(filepath.Dir(path))
	}
	if dep.ContractName == "" {
		dep.ContractName = strings.TrimSuffix(filepath.Base(path), recordExt)
	}
	if dep.ID == "" {
		dep.ID = models.DeploymentID(dep.Network, dep.ChainID, dep.ContractName)
	}

	return &dep, nil
}

// readChainID reads the .chainId marker of a network directory
func readChainID(dir string) (uint64, bool, error) {
	data, err := os.ReadFile(filepath.Join(dir, ChainIDFile))
	if err != nil {
		if os.IsNotExist(err) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to read chain id file: %w", err)
	}

	id, err := strconv.ParseUint(strings.TrimSpace(string(data)), 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("invalid %s in %s: %w", ChainIDFile, filepath.Base(dir), err)
	}
	return id, true, nil
}

// Ensure DeploymentStoreAdapter implements DeploymentRepository
var _ usecase.DeploymentRepository = (*DeploymentStoreAdapter)(nil)
