package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pullpay/vault-deployer/internal/adapters/fs"
	"github.com/pullpay/vault-deployer/internal/domain/models"
)

func newDeployment(chainID uint64, name, address string) *models.Deployment {
	return &models.Deployment{
		ID:           models.DeploymentID(chainID, name),
		ChainID:      chainID,
		Network:      "localhost",
		ContractName: name,
		Address:      address,
		Method:       models.DeploymentMethodCreate,
		TxHash:       "0x01",
		BlockNumber:  1,
		Artifact: models.ArtifactInfo{
			Path:         "contracts/" + name + ".sol",
			ArtifactPath: "artifacts/contracts/" + name + ".sol/" + name + ".json",
		},
		CreatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestRegistryStore(t *testing.T) {
	ctx := context.Background()

	t.Run("empty registry lists nothing and creates no files", func(t *testing.T) {
		dataDir := filepath.Join(t.TempDir(), ".deployer")
		store := fs.NewRegistryStoreAt(dataDir)

		deployments, err := store.ListDeployments(ctx)
		require.NoError(t, err)
		assert.Empty(t, deployments)

		_, err = os.Stat(dataDir)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("save and reload", func(t *testing.T) {
		dataDir := filepath.Join(t.TempDir(), ".deployer")
		store := fs.NewRegistryStoreAt(dataDir)

		vault := newDeployment(31337, "PullPaymentVault", "0x5FbDB2315678afecb367f032d93F642f64180aa3")
		require.NoError(t, store.SaveDeployment(ctx, vault))

		reopened := fs.NewRegistryStoreAt(dataDir)
		deployments, err := reopened.ListDeployments(ctx)
		require.NoError(t, err)
		require.Len(t, deployments, 1)
		assert.Equal(t, vault.Address, deployments[0].Address)
		assert.Equal(t, vault.Artifact, deployments[0].Artifact)
		assert.True(t, vault.CreatedAt.Equal(deployments[0].CreatedAt))

		assert.FileExists(t, store.Path())
		assert.NoFileExists(t, store.Path()+".tmp")
	})

	t.Run("redeploy replaces the record for the same chain", func(t *testing.T) {
		store := fs.NewRegistryStoreAt(t.TempDir())

		require.NoError(t, store.SaveDeployment(ctx, newDeployment(31337, "PullPaymentVault", "0x01")))
		require.NoError(t, store.SaveDeployment(ctx, newDeployment(31337, "PullPaymentVault", "0x02")))
		require.NoError(t, store.SaveDeployment(ctx, newDeployment(1, "PullPaymentVault", "0x03")))

		deployments, err := store.ListDeployments(ctx)
		require.NoError(t, err)
		require.Len(t, deployments, 2)

		byID := map[string]string{}
		for _, d := range deployments {
			byID[d.ID] = d.Address
		}
		assert.Equal(t, "0x02", byID["31337/PullPaymentVault"])
		assert.Equal(t, "0x03", byID["1/PullPaymentVault"])
	})

	t.Run("failed write leaves the registry unchanged", func(t *testing.T) {
		store := fs.NewRegistryStoreAt(t.TempDir())
		require.NoError(t, store.SaveDeployment(ctx, newDeployment(31337, "PullPaymentVault", "0x01")))

		// A directory where the temp file goes makes the next write fail
		require.NoError(t, os.Mkdir(store.Path()+".tmp", 0755))
		err := store.SaveDeployment(ctx, newDeployment(31337, "PullPaymentVault", "0x02"))
		require.Error(t, err)

		deployments, err := store.ListDeployments(ctx)
		require.NoError(t, err)
		require.Len(t, deployments, 1)
		assert.Equal(t, "0x01", deployments[0].Address)
	})

	t.Run("corrupt registry is reported", func(t *testing.T) {
		dataDir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dataDir, fs.DeploymentsFile), []byte("{not json"), 0644))

		_, err := fs.NewRegistryStoreAt(dataDir).ListDeployments(ctx)
		assert.ErrorContains(t, err, "failed to parse")
	})
}
