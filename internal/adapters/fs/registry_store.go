package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/pullpay/vault-deployer/internal/config"
	"github.com/pullpay/vault-deployer/internal/domain/models"
	"github.com/pullpay/vault-deployer/internal/usecase"
	"github.com/samber/lo"
)

// DeploymentsFile is the registry file inside the data directory
const DeploymentsFile = "deployments.json"

// RegistryStore keeps confirmed deployments in a JSON file keyed by deployment ID
type RegistryStore struct {
	dataDir string

	mu          sync.Mutex
	loaded      bool
	deployments map[string]*models.Deployment
}

// NewRegistryStore creates a store under the configured data directory
func NewRegistryStore(cfg *config.RuntimeConfig) *RegistryStore {
	return NewRegistryStoreAt(cfg.DataDir)
}

// NewRegistryStoreAt creates a store under dataDir
func NewRegistryStoreAt(dataDir string) *RegistryStore {
	return &RegistryStore{dataDir: dataDir}
}

// Path returns the registry file location
func (s *RegistryStore) Path() string {
	return filepath.Join(s.dataDir, DeploymentsFile)
}

// SaveDeployment records a deployment, replacing any earlier one with the same ID
func (s *RegistryStore) SaveDeployment(ctx context.Context, deployment *models.Deployment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(); err != nil {
		return err
	}

	next := lo.Assign(s.deployments, map[string]*models.Deployment{deployment.ID: deployment})
	if err := s.save(next); err != nil {
		return err
	}
	s.deployments = next
	return nil
}

// ListDeployments returns every recorded deployment in no particular order
func (s *RegistryStore) ListDeployments(ctx context.Context) ([]*models.Deployment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(); err != nil {
		return nil, err
	}
	return lo.Values(s.deployments), nil
}

// load reads the registry file once; a missing file is an empty registry
func (s *RegistryStore) load() error {
	if s.loaded {
		return nil
	}

	s.deployments = make(map[string]*models.Deployment)

	data, err := os.ReadFile(s.Path())
	if os.IsNotExist(err) {
		s.loaded = true
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", s.Path(), err)
	}

	if len(data) > 0 {
		if err := json.Unmarshal(data, &s.deployments); err != nil {
			return fmt.Errorf("failed to parse %s: %w", s.Path(), err)
		}
	}

	s.loaded = true
	return nil
}

// save writes deployments atomically through a temp file
func (s *RegistryStore) save(deployments map[string]*models.Deployment) error {
	if err := os.MkdirAll(s.dataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	data, err := json.MarshalIndent(deployments, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal deployments: %w", err)
	}

	tmpPath := s.Path() + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmpPath, err)
	}
	return os.Rename(tmpPath, s.Path())
}

// Ensure the adapter implements the interface
var _ usecase.DeploymentStore = (*RegistryStore)(nil)
