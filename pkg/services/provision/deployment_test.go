package provision

import (
	"context"
	"fmt"
	"testing"

	"github.com/de-tools/foundry-forge/pkg/models/domain"
	"github.com/de-tools/foundry-forge/pkg/services/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockGroupClient struct {
	mock.Mock
}

func (m *mockGroupClient) Exists(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

func (m *mockGroupClient) Create(ctx context.Context, name, location string, tags map[string]string) error {
	args := m.Called(ctx, name, location, tags)
	return args.Error(0)
}

func testConfig() *config.Foundry {
	return &config.Foundry{
		Location:              "westeurope",
		ResourceGroup:         "rg-foundry",
		KeyVaultName:          "kv-foundry",
		AIServicesName:        "ai-foundry",
		ContainerRegistryName: "crfoundry",
		StorageAccountName:    "stfoundry",
		LogWorkspaceName:      "log-foundry",
		AppInsightsName:       "appi-foundry",
		SearchName:            "srch-foundry",
	}
}

func allClients(client ResourceClient) map[domain.ResourceKind]ResourceClient {
	return map[domain.ResourceKind]ResourceClient{
		domain.KindKeyVault:          client,
		domain.KindAIServices:        client,
		domain.KindContainerRegistry: client,
		domain.KindStorageAccount:    client,
		domain.KindLogWorkspace:      client,
		domain.KindAppInsights:       client,
		domain.KindSearch:            client,
	}
}

func TestDeployment_Run(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig()

	t.Run("fresh subscription creates all seven resources in order", func(t *testing.T) {
		group := new(mockGroupClient)
		group.On("Exists", mock.Anything, "rg-foundry").Return(false, nil)
		group.On("Create", mock.Anything, "rg-foundry", "westeurope", cfg.Tags()).Return(nil)

		client := new(mockResourceClient)
		client.On("Exists", mock.Anything, "rg-foundry", mock.Anything).Return(false, nil)
		client.On("Create", mock.Anything, "rg-foundry", mock.Anything).Return(nil)

		outcomes, err := NewDeployment(NewProvisioner(), group, allClients(client)).Run(ctx, cfg)

		require.NoError(t, err)
		require.Len(t, outcomes, 7)
		wantOrder := []domain.ResourceKind{
			domain.KindKeyVault,
			domain.KindAIServices,
			domain.KindContainerRegistry,
			domain.KindStorageAccount,
			domain.KindLogWorkspace,
			domain.KindAppInsights,
			domain.KindSearch,
		}
		for i, o := range outcomes {
			assert.Equal(t, wantOrder[i], o.Spec.Kind)
			assert.Equal(t, domain.StateCreated, o.State)
		}
		group.AssertExpectations(t)
	})

	t.Run("existing group is not recreated", func(t *testing.T) {
		group := new(mockGroupClient)
		group.On("Exists", mock.Anything, "rg-foundry").Return(true, nil)

		client := new(mockResourceClient)
		client.On("Exists", mock.Anything, "rg-foundry", mock.Anything).Return(true, nil)

		outcomes, err := NewDeployment(NewProvisioner(), group, allClients(client)).Run(ctx, cfg)

		require.NoError(t, err)
		group.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		for _, o := range outcomes {
			assert.Equal(t, domain.StateAlreadyExists, o.State)
		}
	})

	t.Run("group create failure aborts the run", func(t *testing.T) {
		group := new(mockGroupClient)
		group.On("Exists", mock.Anything, "rg-foundry").Return(false, nil)
		group.On("Create", mock.Anything, "rg-foundry", "westeurope", cfg.Tags()).
			Return(fmt.Errorf("location not allowed"))

		outcomes, err := NewDeployment(NewProvisioner(), group, allClients(new(mockResourceClient))).Run(ctx, cfg)

		assert.Error(t, err)
		assert.Empty(t, outcomes)
	})

	t.Run("a failed resource does not stop later phases", func(t *testing.T) {
		group := new(mockGroupClient)
		group.On("Exists", mock.Anything, "rg-foundry").Return(true, nil)

		client := new(mockResourceClient)
		client.On("Exists", mock.Anything, "rg-foundry", mock.Anything).Return(false, nil)
		client.On("Create", mock.Anything, "rg-foundry", mock.MatchedBy(func(spec domain.ResourceSpec) bool {
			return spec.Kind == domain.KindAIServices
		})).Return(fmt.Errorf("sku unavailable"))
		client.On("Create", mock.Anything, "rg-foundry", mock.Anything).Return(nil)

		outcomes, err := NewDeployment(NewProvisioner(), group, allClients(client)).Run(ctx, cfg)

		require.NoError(t, err)
		require.Len(t, outcomes, 7)

		failed := 0
		for _, o := range outcomes {
			if o.Failed() {
				failed++
				assert.Equal(t, domain.KindAIServices, o.Spec.Kind)
			}
		}
		assert.Equal(t, 1, failed)
	})

	t.Run("missing client registration is an error", func(t *testing.T) {
		group := new(mockGroupClient)
		group.On("Exists", mock.Anything, "rg-foundry").Return(true, nil)

		_, err := NewDeployment(NewProvisioner(), group, map[domain.ResourceKind]ResourceClient{}).Run(ctx, cfg)

		assert.Error(t, err)
	})
}
