package validate

import (
	"context"
	"fmt"

	"github.com/de-tools/foundry-forge/pkg/models/domain"
	"github.com/de-tools/foundry-forge/pkg/services/rbac"
	"github.com/de-tools/foundry-forge/pkg/services/secrets"
	"github.com/rs/zerolog"
)

// The validators below each assert one deployed resource. They record at
// least an "Existence" check and whatever sub-checks apply, and they
// never let a provider error escape: every failure path degrades to a
// FAIL or WARN entry on the result. The boolean return reports whether
// the primary existence check passed.

// GroupInfo describes a resource group for validation purposes.
type GroupInfo struct {
	Name              string
	Location          string
	ProvisioningState string
	Tags              map[string]string
}

type GroupAPI interface {
	Get(ctx context.Context, name string) (GroupInfo, error)
}

// VaultInfo describes a key vault.
type VaultInfo struct {
	Name     string
	Location string
	VaultURI string
	SKU      string
}

type VaultAPI interface {
	Get(ctx context.Context, group, name string) (VaultInfo, error)
}

// SecretReader is the read-only slice of the secret store validators use.
type SecretReader interface {
	Get(ctx context.Context, name string) (string, error)
}

// AccountInfo describes an AI Services account.
type AccountInfo struct {
	Name              string
	Location          string
	Endpoint          string
	Kind              string
	SKU               string
	ProvisioningState string
}

type AIServicesAPI interface {
	Get(ctx context.Context, group, name string) (AccountInfo, error)
	PrimaryKey(ctx context.Context, group, name string) (string, error)
}

// RegistryInfo describes a container registry.
type RegistryInfo struct {
	Name         string
	Location     string
	LoginServer  string
	SKU          string
	AdminEnabled bool
}

type RegistryAPI interface {
	Get(ctx context.Context, group, name string) (RegistryInfo, error)
	AdminUsername(ctx context.Context, group, name string) (string, error)
}

// StorageInfo describes a storage account.
type StorageInfo struct {
	Name       string
	Location   string
	Kind       string
	SKU        string
	HTTPSOnly  bool
	HNSEnabled bool
}

type StorageAPI interface {
	Get(ctx context.Context, group, name string) (StorageInfo, error)
	KeyCount(ctx context.Context, group, name string) (int, error)
}

// WorkspaceInfo describes a log analytics workspace.
type WorkspaceInfo struct {
	Name          string
	Location      string
	SKU           string
	RetentionDays int
}

type WorkspaceAPI interface {
	Get(ctx context.Context, group, name string) (WorkspaceInfo, error)
}

// ComponentInfo describes an application insights component.
type ComponentInfo struct {
	Name               string
	Location           string
	Kind               string
	ApplicationType    string
	InstrumentationKey string
}

type ComponentAPI interface {
	Get(ctx context.Context, group, name string) (ComponentInfo, error)
}

// SearchInfo describes a cognitive search service.
type SearchInfo struct {
	Name     string
	Location string
	SKU      string
}

type SearchAPI interface {
	Get(ctx context.Context, group, name string) (SearchInfo, error)
}

func ValidateResourceGroup(ctx context.Context, r *Result, api GroupAPI, name string) bool {
	zerolog.Ctx(ctx).Info().Str("group", name).Msg("validating resource group")

	info, err := api.Get(ctx, name)
	if err != nil {
		_ = r.AddCheck("Resource Group", "Existence", domain.StatusFail,
			fmt.Sprintf("Resource group '%s' not found: %v", name, err), nil)
		return false
	}

	_ = r.AddCheck("Resource Group", "Existence", domain.StatusPass,
		fmt.Sprintf("Resource group '%s' exists in %s", name, info.Location),
		map[string]interface{}{
			"name":               info.Name,
			"location":           info.Location,
			"tags":               info.Tags,
			"provisioning_state": info.ProvisioningState,
		})
	return true
}

func ValidateKeyVault(ctx context.Context, r *Result, api VaultAPI, store SecretReader, group, name string) bool {
	zerolog.Ctx(ctx).Info().Str("vault", name).Msg("validating key vault")

	info, err := api.Get(ctx, group, name)
	if err != nil {
		_ = r.AddCheck("Key Vault", "Existence", domain.StatusFail,
			fmt.Sprintf("Key Vault '%s' validation failed: %v", name, err), nil)
		return false
	}

	_ = r.AddCheck("Key Vault", "Existence", domain.StatusPass,
		fmt.Sprintf("Key Vault '%s' exists", name),
		map[string]interface{}{
			"name":      info.Name,
			"location":  info.Location,
			"vault_uri": info.VaultURI,
			"sku":       info.SKU,
		})

	validateSecretAccess(ctx, r, store)
	return true
}

// validateSecretAccess checks every entry of the canonical secret table
// against the store. A partially populated vault is a warning, not a
// failure; an entirely empty one fails.
func validateSecretAccess(ctx context.Context, r *Result, store SecretReader) {
	logger := zerolog.Ctx(ctx)

	if store == nil {
		_ = r.AddCheck("Key Vault", "Secret Access", domain.StatusWarn,
			"Secret store is not reachable, skipping secret checks", nil)
		return
	}

	var found, missing []string
	formatProblems := map[string]string{}
	for _, want := range secrets.Expected() {
		value, err := store.Get(ctx, want.Name)
		if err != nil {
			logger.Warn().Err(err).Str("secret", want.Name).Msg("secret not accessible")
			missing = append(missing, want.Name)
			continue
		}
		found = append(found, want.Name)
		if problem := want.Check(value); problem != "" {
			formatProblems[want.Name] = problem
		}
	}

	switch {
	case len(found) == 0:
		_ = r.AddCheck("Key Vault", "Secret Access", domain.StatusFail,
			"No expected secrets found in Key Vault",
			map[string]interface{}{"missing_secrets": missing})
	case len(missing) > 0:
		_ = r.AddCheck("Key Vault", "Secret Access", domain.StatusWarn,
			fmt.Sprintf("Accessible secrets: %d of %d", len(found), len(found)+len(missing)),
			map[string]interface{}{
				"found_secrets":   found,
				"missing_secrets": missing,
			})
	default:
		_ = r.AddCheck("Key Vault", "Secret Access", domain.StatusPass,
			"All expected secrets are accessible",
			map[string]interface{}{"found_secrets": found})
	}

	if len(formatProblems) > 0 {
		_ = r.AddCheck("Key Vault", "Secret Format", domain.StatusWarn,
			"Some secrets have unexpected formats",
			map[string]interface{}{"problems": formatProblems})
	}
}

func ValidateAIServices(ctx context.Context, r *Result, api AIServicesAPI, group, name string) bool {
	zerolog.Ctx(ctx).Info().Str("account", name).Msg("validating AI services account")

	info, err := api.Get(ctx, group, name)
	if err != nil {
		_ = r.AddCheck("AI Services", "Existence", domain.StatusFail,
			fmt.Sprintf("AI Services account '%s' validation failed: %v", name, err), nil)
		return false
	}

	_ = r.AddCheck("AI Services", "Existence", domain.StatusPass,
		fmt.Sprintf("AI Services account '%s' exists", name),
		map[string]interface{}{
			"name":               info.Name,
			"location":           info.Location,
			"endpoint":           info.Endpoint,
			"kind":               info.Kind,
			"sku":                info.SKU,
			"provisioning_state": info.ProvisioningState,
		})

	key, err := api.PrimaryKey(ctx, group, name)
	switch {
	case err != nil:
		_ = r.AddCheck("AI Services", "API Key Access", domain.StatusFail,
			fmt.Sprintf("Failed to retrieve API keys: %v", err), nil)
	case key == "":
		_ = r.AddCheck("AI Services", "API Key Access", domain.StatusFail,
			"AI Services API keys not found", nil)
	default:
		_ = r.AddCheck("AI Services", "API Key Access", domain.StatusPass,
			"AI Services API keys are accessible", nil)
	}
	return true
}

func ValidateContainerRegistry(ctx context.Context, r *Result, api RegistryAPI, group, name string) bool {
	zerolog.Ctx(ctx).Info().Str("registry", name).Msg("validating container registry")

	info, err := api.Get(ctx, group, name)
	if err != nil {
		_ = r.AddCheck("Container Registry", "Existence", domain.StatusFail,
			fmt.Sprintf("Container Registry '%s' validation failed: %v", name, err), nil)
		return false
	}

	_ = r.AddCheck("Container Registry", "Existence", domain.StatusPass,
		fmt.Sprintf("Container Registry '%s' exists", name),
		map[string]interface{}{
			"name":               info.Name,
			"location":           info.Location,
			"login_server":       info.LoginServer,
			"sku":                info.SKU,
			"admin_user_enabled": info.AdminEnabled,
		})

	if info.AdminEnabled {
		if user, err := api.AdminUsername(ctx, group, name); err != nil {
			_ = r.AddCheck("Container Registry", "Admin Credentials", domain.StatusWarn,
				fmt.Sprintf("Could not retrieve admin credentials: %v", err), nil)
		} else if user != "" {
			_ = r.AddCheck("Container Registry", "Admin Credentials", domain.StatusPass,
				"Admin credentials are accessible", nil)
		}
	}
	return true
}

func ValidateStorageAccount(ctx context.Context, r *Result, api StorageAPI, group, name string) bool {
	zerolog.Ctx(ctx).Info().Str("storage", name).Msg("validating storage account")

	info, err := api.Get(ctx, group, name)
	if err != nil {
		_ = r.AddCheck("Storage Account", "Existence", domain.StatusFail,
			fmt.Sprintf("Storage Account '%s' validation failed: %v", name, err), nil)
		return false
	}

	_ = r.AddCheck("Storage Account", "Existence", domain.StatusPass,
		fmt.Sprintf("Storage Account '%s' exists", name),
		map[string]interface{}{
			"name":                   info.Name,
			"location":               info.Location,
			"kind":                   info.Kind,
			"sku":                    info.SKU,
			"https_only":             info.HTTPSOnly,
			"hierarchical_namespace": info.HNSEnabled,
		})

	if count, err := api.KeyCount(ctx, group, name); err != nil {
		_ = r.AddCheck("Storage Account", "Access Keys", domain.StatusFail,
			fmt.Sprintf("Failed to retrieve access keys: %v", err), nil)
	} else if count == 0 {
		_ = r.AddCheck("Storage Account", "Access Keys", domain.StatusFail,
			"Storage Account access keys not found", nil)
	} else {
		_ = r.AddCheck("Storage Account", "Access Keys", domain.StatusPass,
			"Storage Account access keys are available", nil)
	}
	return true
}

func ValidateLogWorkspace(ctx context.Context, r *Result, api WorkspaceAPI, group, name string) bool {
	zerolog.Ctx(ctx).Info().Str("workspace", name).Msg("validating log analytics workspace")

	info, err := api.Get(ctx, group, name)
	if err != nil {
		_ = r.AddCheck("Log Analytics", "Existence", domain.StatusFail,
			fmt.Sprintf("Log Analytics Workspace '%s' validation failed: %v", name, err), nil)
		return false
	}

	_ = r.AddCheck("Log Analytics", "Existence", domain.StatusPass,
		fmt.Sprintf("Log Analytics Workspace '%s' exists", name),
		map[string]interface{}{
			"name":           info.Name,
			"location":       info.Location,
			"sku":            info.SKU,
			"retention_days": info.RetentionDays,
		})
	return true
}

func ValidateAppInsights(ctx context.Context, r *Result, api ComponentAPI, group, name string) bool {
	zerolog.Ctx(ctx).Info().Str("component", name).Msg("validating application insights")

	info, err := api.Get(ctx, group, name)
	if err != nil {
		_ = r.AddCheck("Application Insights", "Existence", domain.StatusFail,
			fmt.Sprintf("Application Insights '%s' validation failed: %v", name, err), nil)
		return false
	}

	_ = r.AddCheck("Application Insights", "Existence", domain.StatusPass,
		fmt.Sprintf("Application Insights '%s' exists", name),
		map[string]interface{}{
			"name":                info.Name,
			"location":            info.Location,
			"kind":                info.Kind,
			"application_type":    info.ApplicationType,
			"instrumentation_key": secrets.Mask(info.InstrumentationKey),
		})
	return true
}

func ValidateSearchService(ctx context.Context, r *Result, api SearchAPI, group, name string) bool {
	zerolog.Ctx(ctx).Info().Str("search", name).Msg("validating cognitive search service")

	info, err := api.Get(ctx, group, name)
	if err != nil {
		_ = r.AddCheck("Cognitive Search", "Existence", domain.StatusFail,
			fmt.Sprintf("Cognitive Search service '%s' validation failed: %v", name, err), nil)
		return false
	}

	_ = r.AddCheck("Cognitive Search", "Existence", domain.StatusPass,
		fmt.Sprintf("Cognitive Search service '%s' exists", name),
		map[string]interface{}{
			"name":     info.Name,
			"location": info.Location,
			"sku":      info.SKU,
		})
	return true
}

func ValidateRBAC(ctx context.Context, r *Result, api rbac.AssignmentAPI, scope, principalID string) bool {
	zerolog.Ctx(ctx).Info().Str("scope", scope).Msg("validating role assignments")

	assignments, err := api.ListForScope(ctx, scope)
	if err != nil {
		_ = r.AddCheck("RBAC", "Permissions Check", domain.StatusFail,
			fmt.Sprintf("RBAC validation failed: %v", err), nil)
		return false
	}

	var mine []rbac.Assignment
	for _, a := range assignments {
		if a.PrincipalID == principalID {
			mine = append(mine, a)
		}
	}

	aiDeveloper := false
	for _, a := range mine {
		if rbac.RoleDefinitionGUID(a.RoleDefinitionID) == rbac.AIDeveloperRoleID {
			aiDeveloper = true
			break
		}
	}

	if aiDeveloper {
		_ = r.AddCheck("RBAC", "AI Developer Role", domain.StatusPass,
			"AI Developer role is assigned to current user", nil)
	} else {
		_ = r.AddCheck("RBAC", "AI Developer Role", domain.StatusWarn,
			"AI Developer role not found for current user", nil)
	}

	_ = r.AddCheck("RBAC", "Role Assignments", domain.StatusPass,
		fmt.Sprintf("Found %d role assignments for current user", len(mine)),
		map[string]interface{}{"assignment_count": len(mine)})
	return true
}
