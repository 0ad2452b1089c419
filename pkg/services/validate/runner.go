package validate

import (
	"context"

	"github.com/de-tools/foundry-forge/pkg/services/config"
	"github.com/de-tools/foundry-forge/pkg/services/rbac"
)

// Providers bundles the per-resource handles one validation run needs.
// Authorization and PrincipalID are optional; the RBAC checks are
// skipped when either is absent.
type Providers struct {
	Group         GroupAPI
	Vault         VaultAPI
	Secrets       SecretReader
	AIServices    AIServicesAPI
	Registry      RegistryAPI
	Storage       StorageAPI
	Workspace     WorkspaceAPI
	Insights      ComponentAPI
	Search        SearchAPI
	Authorization rbac.AssignmentAPI
}

// Run executes every resource validator in the fixed deployment order
// and returns the aggregated result. Validators record their own
// failures; Run itself never fails.
func Run(ctx context.Context, p Providers, cfg *config.Foundry, scope, principalID string) *Result {
	result := NewResult()

	ValidateResourceGroup(ctx, result, p.Group, cfg.ResourceGroup)
	ValidateKeyVault(ctx, result, p.Vault, p.Secrets, cfg.ResourceGroup, cfg.KeyVaultName)
	ValidateAIServices(ctx, result, p.AIServices, cfg.ResourceGroup, cfg.AIServicesName)
	ValidateContainerRegistry(ctx, result, p.Registry, cfg.ResourceGroup, cfg.ContainerRegistryName)
	ValidateStorageAccount(ctx, result, p.Storage, cfg.ResourceGroup, cfg.StorageAccountName)
	ValidateLogWorkspace(ctx, result, p.Workspace, cfg.ResourceGroup, cfg.LogWorkspaceName)
	ValidateAppInsights(ctx, result, p.Insights, cfg.ResourceGroup, cfg.AppInsightsName)
	ValidateSearchService(ctx, result, p.Search, cfg.ResourceGroup, cfg.SearchName)

	if p.Authorization != nil && principalID != "" {
		ValidateRBAC(ctx, result, p.Authorization, scope, principalID)
	}
	return result
}
