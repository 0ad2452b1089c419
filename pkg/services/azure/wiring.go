package azure

import (
	"context"

	"github.com/de-tools/foundry-forge/pkg/models/domain"
	"github.com/de-tools/foundry-forge/pkg/services/config"
	"github.com/de-tools/foundry-forge/pkg/services/provision"
	"github.com/de-tools/foundry-forge/pkg/services/secrets"
	"github.com/de-tools/foundry-forge/pkg/services/validate"
)

// ProvisionClients exposes the per-kind clients in the shape the
// provisioner consumes.
func (c *Clients) ProvisionClients() map[domain.ResourceKind]provision.ResourceClient {
	return map[domain.ResourceKind]provision.ResourceClient{
		domain.KindKeyVault:          c.Vault,
		domain.KindAIServices:        c.AIServices,
		domain.KindContainerRegistry: c.Registry,
		domain.KindStorageAccount:    c.Storage,
		domain.KindLogWorkspace:      c.Workspace,
		domain.KindAppInsights:       c.Insights,
		domain.KindSearch:            c.Search,
	}
}

// ValidationProviders exposes the clients in the shape the validation
// runner consumes. reader may be nil when the vault is unreachable; the
// key vault validator then records the secret checks as warnings.
func (c *Clients) ValidationProviders(reader validate.SecretReader) validate.Providers {
	return validate.Providers{
		Group:         c.Group,
		Vault:         c.Vault,
		Secrets:       reader,
		AIServices:    c.AIServices,
		Registry:      c.Registry,
		Storage:       c.Storage,
		Workspace:     c.Workspace,
		Insights:      c.Insights,
		Search:        c.Search,
		Authorization: c.Roles,
	}
}

// SecretSources binds the canonical secret table to the deployed
// resources. The order matches the table; every entry of the table has
// exactly one source here.
func SecretSources(c *Clients, cfg *config.Foundry) []secrets.Source {
	group := cfg.ResourceGroup
	return []secrets.Source{
		{
			Name:           secrets.NameAIServicesKey,
			Description:    "AI Services API key",
			SourceResource: cfg.AIServicesName,
			Fetch: func(ctx context.Context) (string, error) {
				_, key, err := c.AIServices.EndpointAndKey(ctx, group, cfg.AIServicesName)
				return key, err
			},
		},
		{
			Name:           secrets.NameAIServicesEndpoint,
			Description:    "AI Services endpoint URL",
			SourceResource: cfg.AIServicesName,
			Fetch: func(ctx context.Context) (string, error) {
				endpoint, _, err := c.AIServices.EndpointAndKey(ctx, group, cfg.AIServicesName)
				return endpoint, err
			},
		},
		{
			Name:           secrets.NameSearchAdminKey,
			Description:    "Cognitive Search admin key",
			SourceResource: cfg.SearchName,
			Fetch: func(ctx context.Context) (string, error) {
				return c.Search.AdminKey(ctx, group, cfg.SearchName)
			},
		},
		{
			Name:           secrets.NameSearchQueryKey,
			Description:    "Cognitive Search query key",
			SourceResource: cfg.SearchName,
			Fetch: func(ctx context.Context) (string, error) {
				return c.Search.QueryKey(ctx, group, cfg.SearchName)
			},
		},
		{
			Name:           secrets.NameSearchEndpoint,
			Description:    "Cognitive Search endpoint URL",
			SourceResource: cfg.SearchName,
			Fetch: func(ctx context.Context) (string, error) {
				return c.Search.Endpoint(cfg.SearchName), nil
			},
		},
		{
			Name:           secrets.NameStorageConnection,
			Description:    "Storage account connection string",
			SourceResource: cfg.StorageAccountName,
			Fetch: func(ctx context.Context) (string, error) {
				return c.Storage.ConnectionString(ctx, group, cfg.StorageAccountName)
			},
		},
		{
			Name:           secrets.NameAppInsightsConnection,
			Description:    "Application Insights connection string",
			SourceResource: cfg.AppInsightsName,
			Fetch: func(ctx context.Context) (string, error) {
				return c.Insights.ConnectionString(ctx, group, cfg.AppInsightsName)
			},
		},
	}
}
