package sqlstore

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/trebuchet-org/eventcreator-deploy/internal/domain"
	"github.com/trebuchet-org/eventcreator-deploy/internal/domain/config"
	"github.com/trebuchet-org/eventcreator-deploy/internal/domain/models"
	"github.com/trebuchet-org/eventcreator-deploy/internal/usecase"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// DefaultDSN is relative to the data directory
const DefaultDSN = "registry.db"

// DriverPostgres selects PostgreSQL in NewStore; anything else is SQLite
const DriverPostgres = "postgres"

// StringList stores a string slice as a JSON text column
type StringList []string

// Value implements driver.Valuer
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	data, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner
func (l *StringList) Scan(value interface{}) error {
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	case nil:
		*l = nil
		return nil
	default:
		return errors.New("type assertion to []byte failed")
	}

	if len(bytes) == 0 {
		*l = nil
		return nil
	}
	return json.Unmarshal(bytes, l)
}

// deploymentRow is the table layout of a deployment record
type deploymentRow struct {
	ID            string     `gorm:"primaryKey;type:varchar(255)"`
	Network       string     `gorm:"not null;index:idx_network_chain_contract,unique"`
	ChainID       uint64     `gorm:"not null;index:idx_network_chain_contract,unique"`
	ContractName  string     `gorm:"not null;index:idx_network_chain_contract,unique"`
	Address       string     `gorm:"not null"`
	TxHash        string
	BlockNumber   uint64
	Confirmations uint64
	Deployer      string
	Args          StringList `gorm:"type:text"`
	Fingerprint   string
	Tags          StringList `gorm:"type:text"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (deploymentRow) TableName() string {
	return "deployments"
}

func toRow(d *models.Deployment) *deploymentRow {
	return &deploymentRow{
		ID:            d.ID,
		Network:       d.Network,
		ChainID:       d.ChainID,
		ContractName:  d.ContractName,
		Address:       d.Address,
		TxHash:        d.TxHash,
		BlockNumber:   d.BlockNumber,
		Confirmations: d.Confirmations,
		Deployer:      d.Deployer,
		Args:          StringList(d.Args),
		Fingerprint:   d.Fingerprint,
		Tags:          StringList(d.Tags),
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

func (r *deploymentRow) toModel() *models.Deployment {
	return &models.Deployment{
		ID:            r.ID,
		Network:       r.Network,
		ChainID:       r.ChainID,
		ContractName:  r.ContractName,
		Address:       r.Address,
		TxHash:        r.TxHash,
		BlockNumber:   r.BlockNumber,
		Confirmations: r.Confirmations,
		Deployer:      r.Deployer,
		Args:          []string(r.Args),
		Fingerprint:   r.Fingerprint,
		Tags:          []string(r.Tags),
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

// Store is a SQL-backed deployment registry
type Store struct {
	db  *gorm.DB
	log *slog.Logger
}

// Open opens (and migrates) the SQLite registry at dsn
func Open(dsn string, log *slog.Logger) (*Store, error) {
	if dsn != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dsn), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	return open(sqlite.Open(dsn), log)
}

// OpenPostgres opens (and migrates) a registry shared through PostgreSQL
func OpenPostgres(dsn string, log *slog.Logger) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("registry.dsn is required for the postgres driver")
	}
	return open(postgres.Open(dsn), log)
}

func open(dialector gorm.Dialector, log *slog.Logger) (*Store, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&deploymentRow{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Store{db: db, log: log.With("component", "sqlstore", "dialect", dialector.Name())}, nil
}

// NewStore opens the registry configured in the runtime config
func NewStore(cfg *config.RuntimeConfig, log *slog.Logger) (*Store, error) {
	if cfg.RegistryDriver == DriverPostgres {
		return OpenPostgres(cfg.RegistryDSN, log)
	}

	dsn := cfg.RegistryDSN
	if dsn == "" {
		dsn = DefaultDSN
	}
	if dsn != ":memory:" && !filepath.IsAbs(dsn) {
		dsn = filepath.Join(cfg.DataDir, dsn)
	}
	return Open(dsn, log)
}

// GetDeployment returns the last deployment of a contract on a network
func (s *Store) GetDeployment(ctx context.Context, network string, chainID uint64, contractName string) (*models.Deployment, error) {
	var row deploymentRow
	err := s.db.WithContext(ctx).
		Where("network = ? AND chain_id = ? AND contract_name = ?", network, chainID, contractName).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to query deployment: %w", err)
	}
	return row.toModel(), nil
}

// ListDeployments returns records matching the filter
func (s *Store) ListDeployments(ctx context.Context, filter domain.DeploymentFilter) ([]*models.Deployment, error) {
	query := s.db.WithContext(ctx).Model(&deploymentRow{})
	if filter.Network != "" {
		query = query.Where("network = ?", filter.Network)
	}
	if filter.ChainID != 0 {
		query = query.Where("chain_id = ?", filter.ChainID)
	}
	if filter.ContractName != "" {
		query = query.Where("contract_name = ?", filter.ContractName)
	}

	var rows []deploymentRow
	if err := query.Order("network, chain_id, contract_name").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list deployments: %w", err)
	}

	result := make([]*models.Deployment, 0, len(rows))
	for i := range rows {
		result = append(result, rows[i].toModel())
	}
	return result, nil
}

// SaveDeployment upserts the record for (network, chain, contract)
func (s *Store) SaveDeployment(ctx context.Context, deployment *models.Deployment) error {
	row := toRow(deployment)
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(row).Error
	if err != nil {
		return fmt.Errorf("failed to save deployment: %w", err)
	}

	s.log.Debug("saved deployment", "id", row.ID, "address", row.Address)
	return nil
}

// Close releases the underlying connection
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ensure Store implements DeploymentRepository
var _ usecase.DeploymentRepository = (*Store)(nil)
