package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/de-tools/foundry-forge/pkg/models/api"
	"github.com/de-tools/foundry-forge/pkg/models/domain"
	"github.com/de-tools/foundry-forge/pkg/services/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAzureInfo() api.AzureInfo {
	return api.AzureInfo{
		SubscriptionID:   "sub-1",
		SubscriptionName: "dev",
		TenantID:         "tenant-1",
		User:             "dev@example.com",
	}
}

func TestBuildValidation(t *testing.T) {
	result := validate.NewResult()
	require.NoError(t, result.AddCheck("Resource Group", "Existence", domain.StatusPass, "exists", nil))
	require.NoError(t, result.AddCheck("Key Vault", "Secret Access", domain.StatusWarn, "partial", nil))
	require.NoError(t, result.AddCheck("AI Services", "Existence", domain.StatusFail, "missing", nil))

	artifact := BuildValidation(result, map[string]string{"LOCATION": "westeurope"}, testAzureInfo())

	assert.Equal(t, Version, artifact.ValidationInfo.Version)
	assert.False(t, artifact.ValidationInfo.Timestamp.IsZero())
	assert.Equal(t, "westeurope", artifact.ValidationInfo.Environment["LOCATION"])

	assert.Equal(t, 3, artifact.Summary.TotalChecks)
	assert.Equal(t, 1, artifact.Summary.Passed)
	assert.Equal(t, 1, artifact.Summary.Failed)
	assert.Equal(t, 1, artifact.Summary.Warnings)

	assert.Len(t, artifact.Checks, 3)
	assert.Len(t, artifact.Successes, 1)
	assert.Len(t, artifact.Warnings, 1)
	assert.Len(t, artifact.Issues, 1)
	assert.Equal(t, "AI Services", artifact.Issues[0].Category)
}

func TestBuildDeployment(t *testing.T) {
	outcomes := []domain.ProvisionOutcome{
		{Spec: domain.ResourceSpec{Kind: domain.KindKeyVault, Name: "kv-foundry"}, State: domain.StateCreated},
		{Spec: domain.ResourceSpec{Kind: domain.KindSearch, Name: "srch-foundry"}, State: domain.StateFailed, Error: "sku unavailable"},
	}

	summary := BuildDeployment(outcomes, "rg-foundry", "westeurope", testAzureInfo())

	assert.Equal(t, "rg-foundry", summary.ResourceGroup)
	assert.Equal(t, "westeurope", summary.Location)
	require.Len(t, summary.Resources, 2)

	kv := summary.Resources[string(domain.KindKeyVault)]
	assert.Equal(t, "kv-foundry", kv.Name)
	assert.Equal(t, "Microsoft.KeyVault/vaults", kv.Type)
	assert.NotEmpty(t, kv.Purpose)
	assert.Equal(t, string(domain.StateCreated), kv.State)

	search := summary.Resources[string(domain.KindSearch)]
	assert.Equal(t, string(domain.StateFailed), search.State)
	assert.Equal(t, "sku unavailable", search.Error)
}

func TestWriteAndLoad(t *testing.T) {
	dir := t.TempDir()

	t.Run("validation report round trip", func(t *testing.T) {
		result := validate.NewResult()
		require.NoError(t, result.AddCheck("Resource Group", "Existence", domain.StatusPass, "exists", nil))
		artifact := BuildValidation(result, map[string]string{}, testAzureInfo())

		path := filepath.Join(dir, DefaultValidationFile)
		require.NoError(t, Write(path, artifact))

		loaded, err := LoadValidation(path)
		require.NoError(t, err)
		assert.Equal(t, artifact.Summary, loaded.Summary)
		assert.Equal(t, "sub-1", loaded.ValidationInfo.AzureInfo.SubscriptionID)
	})

	t.Run("artifact uses snake_case keys", func(t *testing.T) {
		artifact := BuildDeployment(nil, "rg", "westeurope", testAzureInfo())
		path := filepath.Join(dir, DefaultDeploymentFile)
		require.NoError(t, Write(path, artifact))

		raw, err := os.ReadFile(path)
		require.NoError(t, err)

		var decoded map[string]interface{}
		require.NoError(t, json.Unmarshal(raw, &decoded))
		assert.Contains(t, decoded, "deployment_info")
		assert.Contains(t, decoded, "azure_info")
		assert.Contains(t, decoded, "resource_group")
	})

	t.Run("loading a missing artifact fails", func(t *testing.T) {
		_, err := LoadValidation(filepath.Join(dir, "nope.json"))
		assert.Error(t, err)

		_, err = LoadDeployment(filepath.Join(dir, "nope.json"))
		assert.Error(t, err)
	})
}
