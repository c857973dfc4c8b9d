package artifacts

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/eventcreator-deploy/internal/domain"
	"github.com/trebuchet-org/eventcreator-deploy/internal/domain/config"
	"github.com/trebuchet-org/eventcreator-deploy/internal/domain/models"
	"github.com/trebuchet-org/eventcreator-deploy/internal/usecase"
)

// DefaultDirs are searched when no artifacts directory is configured:
// Foundry writes to out/, Hardhat to artifacts/.
var DefaultDirs = []string{"out", "artifacts"}

// Repository loads compiled contract artifacts from disk
type Repository struct {
	projectRoot string
	dirs        []string
	mu          sync.Mutex
	cache       map[string]*models.Artifact
}

// NewRepository creates a new artifact repository
func NewRepository(cfg *config.RuntimeConfig) *Repository {
	dirs := DefaultDirs
	if cfg.ArtifactsDir != "" {
		dirs = []string{cfg.ArtifactsDir}
	}
	return &Repository{
		projectRoot: cfg.ProjectRoot,
		dirs:        dirs,
		cache:       make(map[string]*models.Artifact),
	}
}

// artifactFile covers both the Foundry and the Hardhat layout
type artifactFile struct {
	ContractName string          `json:"contractName"`
	ABI          json.RawMessage `json:"abi"`
	Bytecode     json.RawMessage `json:"bytecode"`
}

// GetArtifact finds and parses the artifact for a contract name
func (r *Repository) GetArtifact(_ context.Context, contractName string) (*models.Artifact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if artifact, ok := r.cache[contractName]; ok {
		return artifact, nil
	}

	path, err := r.find(contractName)
	if err != nil {
		return nil, err
	}

	artifact, err := ParseArtifact(path, contractName)
	if err != nil {
		return nil, err
	}

	r.cache[contractName] = artifact
	return artifact, nil
}

// find looks for <dir>/<Name>.sol/<Name>.json first, then walks the directory
func (r *Repository) find(contractName string) (string, error) {
	fileName := contractName + ".json"

	for _, dir := range r.dirs {
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(r.projectRoot, dir)
		}

		direct := filepath.Join(dir, contractName+".sol", fileName)
		if _, err := os.Stat(direct); err == nil {
			return direct, nil
		}

		var found string
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if path == dir {
					return filepath.SkipDir
				}
				return err
			}
			if d.IsDir() {
				if d.Name() == "build-info" {
					return filepath.SkipDir
				}
				return nil
			}
			if d.Name() == fileName {
				found = path
				return filepath.SkipAll
			}
			return nil
		})
		if err != nil {
			return "", fmt.Errorf("failed to search %s: %w", dir, err)
		}
		if found != "" {
			return found, nil
		}
	}

	return "", fmt.Errorf("%w: %s (searched %s)", domain.ErrArtifactNotFound, contractName, strings.Join(r.dirs, ", "))
}

// ParseArtifact reads an artifact file. Bytecode may be a hex string
// (Hardhat) or an object with an "object" field (Foundry).
func ParseArtifact(path, contractName string) (*models.Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read artifact: %w", err)
	}

	var file artifactFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse artifact %s: %w", path, err)
	}

	if len(file.ABI) == 0 {
		return nil, fmt.Errorf("artifact %s has no abi", path)
	}
	parsedABI, err := abi.JSON(bytes.NewReader(file.ABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse abi in %s: %w", path, err)
	}

	hexCode, err := bytecodeHex(file.Bytecode)
	if err != nil {
		return nil, fmt.Errorf("artifact %s: %w", path, err)
	}
	if strings.Contains(hexCode, "__") {
		return nil, fmt.Errorf("artifact %s has unlinked library references", path)
	}
	code := common.FromHex(hexCode)
	if len(code) == 0 {
		return nil, fmt.Errorf("artifact %s has no creation bytecode (abstract contract or interface?)", path)
	}

	name := file.ContractName
	if name == "" {
		name = contractName
	}

	return &models.Artifact{
		Name:     name,
		Path:     path,
		ABI:      parsedABI,
		Bytecode: code,
	}, nil
}

func bytecodeHex(raw json.RawMessage) (string, error) {
	if len(raw) == 0 {
		return "", errors.New("missing bytecode")
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}

	var obj struct {
		Object string `json:"object"`
	}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return "", fmt.Errorf("unrecognised bytecode format: %w", err)
	}
	return obj.Object, nil
}

// Ensure Repository implements ArtifactRepository
var _ usecase.ArtifactRepository = (*Repository)(nil)
