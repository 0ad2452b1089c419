package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/de-tools/foundry-forge/pkg/models/domain"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// requiredVars is the closed list of environment variables a run needs.
// Absence of any of them is a fatal configuration error raised before
// any Azure API call is attempted.
var requiredVars = []string{
	"LOCATION",
	"RESOURCE_GROUP",
	"KEYVAULT_NAME",
	"AI_SERVICES_NAME",
	"CONTAINER_REGISTRY_NAME",
	"STORAGE_ACCOUNT_NAME",
	"LOG_WORKSPACE_NAME",
	"APPLICATION_INSIGHTS_NAME",
	"COGNITIVE_SEARCH_NAME",
}

// ConfigurationError reports missing required variables. It is one of the
// two error classes that abort the process.
type ConfigurationError struct {
	Missing []string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("missing required environment variables: %s", strings.Join(e.Missing, ", "))
}

// Foundry holds the validated deployment configuration for one run.
type Foundry struct {
	Location              string
	ResourceGroup         string
	KeyVaultName          string
	AIServicesName        string
	ContainerRegistryName string
	StorageAccountName    string
	LogWorkspaceName      string
	AppInsightsName       string
	SearchName            string
}

// Load reads the .env file at envFile (when present), binds the required
// variables through viper and validates that none are missing.
func Load(envFile string) (*Foundry, error) {
	if envFile != "" {
		// Missing .env is fine, the variables may come from the shell.
		_ = godotenv.Overload(envFile)
	}

	v := viper.New()
	v.AutomaticEnv()
	for _, name := range requiredVars {
		if err := v.BindEnv(name); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", name, err)
		}
	}

	var missing []string
	for _, name := range requiredVars {
		if v.GetString(name) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, &ConfigurationError{Missing: missing}
	}

	return &Foundry{
		Location:              v.GetString("LOCATION"),
		ResourceGroup:         v.GetString("RESOURCE_GROUP"),
		KeyVaultName:          v.GetString("KEYVAULT_NAME"),
		AIServicesName:        v.GetString("AI_SERVICES_NAME"),
		ContainerRegistryName: v.GetString("CONTAINER_REGISTRY_NAME"),
		StorageAccountName:    v.GetString("STORAGE_ACCOUNT_NAME"),
		LogWorkspaceName:      v.GetString("LOG_WORKSPACE_NAME"),
		AppInsightsName:       v.GetString("APPLICATION_INSIGHTS_NAME"),
		SearchName:            v.GetString("COGNITIVE_SEARCH_NAME"),
	}, nil
}

// Tags returns the tagging strategy applied to every resource in the run.
func (f *Foundry) Tags() map[string]string {
	return map[string]string{
		"Environment": "AI-Development",
		"Project":     f.AIServicesName,
		"Purpose":     "AI-Foundry",
		"CreatedBy":   "foundry-forge",
	}
}

// ResourceSpecs returns the declared resource set in provisioning order.
// Later entries may depend on identifiers produced by earlier ones, so
// the order is fixed.
func (f *Foundry) ResourceSpecs() []domain.ResourceSpec {
	tags := f.Tags()
	names := []struct {
		kind domain.ResourceKind
		name string
	}{
		{domain.KindKeyVault, f.KeyVaultName},
		{domain.KindAIServices, f.AIServicesName},
		{domain.KindContainerRegistry, f.ContainerRegistryName},
		{domain.KindStorageAccount, f.StorageAccountName},
		{domain.KindLogWorkspace, f.LogWorkspaceName},
		{domain.KindAppInsights, f.AppInsightsName},
		{domain.KindSearch, f.SearchName},
	}

	specs := make([]domain.ResourceSpec, 0, len(names))
	for _, n := range names {
		specs = append(specs, domain.ResourceSpec{
			Kind:     n.kind,
			Name:     n.name,
			Location: f.Location,
			Tags:     tags,
		})
	}
	return specs
}

// Environment returns the configuration as a flat map for run metadata.
func (f *Foundry) Environment() map[string]string {
	return map[string]string{
		"LOCATION":                  f.Location,
		"RESOURCE_GROUP":            f.ResourceGroup,
		"KEYVAULT_NAME":             f.KeyVaultName,
		"AI_SERVICES_NAME":          f.AIServicesName,
		"CONTAINER_REGISTRY_NAME":   f.ContainerRegistryName,
		"STORAGE_ACCOUNT_NAME":      f.StorageAccountName,
		"LOG_WORKSPACE_NAME":        f.LogWorkspaceName,
		"APPLICATION_INSIGHTS_NAME": f.AppInsightsName,
		"COGNITIVE_SEARCH_NAME":     f.SearchName,
	}
}
