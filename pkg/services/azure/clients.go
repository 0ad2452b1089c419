package azure

import (
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/applicationinsights/armapplicationinsights"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/authorization/armauthorization/v2"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/cognitiveservices/armcognitiveservices"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/containerregistry/armcontainerregistry"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/keyvault/armkeyvault"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/operationalinsights/armoperationalinsights"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armresources"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/search/armsearch"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/storage/armstorage"
	"github.com/Azure/azure-sdk-for-go/sdk/security/keyvault/azsecrets"
)

// Clients bundles the per-kind resource clients for one subscription.
type Clients struct {
	Group      *GroupClient
	Vault      *VaultClient
	AIServices *AIServicesClient
	Registry   *RegistryClient
	Storage    *StorageClient
	Workspace  *WorkspaceClient
	Insights   *InsightsClient
	Search     *SearchClient
	Roles      *RoleAssignmentClient
}

// NewClients creates the full management client set from a profile.
// objectID is the signed-in user's object ID, used for vault access
// policies; it may be empty when the directory lookup failed.
func NewClients(profile *Profile, objectID string) (*Clients, error) {
	cred := profile.Credentials
	sub := profile.SubscriptionID

	groups, err := armresources.NewResourceGroupsClient(sub, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource groups client: %w", err)
	}
	resources, err := armresources.NewClient(sub, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create resources client: %w", err)
	}
	vaults, err := armkeyvault.NewVaultsClient(sub, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create key vault client: %w", err)
	}
	accounts, err := armcognitiveservices.NewAccountsClient(sub, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cognitive services client: %w", err)
	}
	registries, err := armcontainerregistry.NewRegistriesClient(sub, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create container registry client: %w", err)
	}
	storage, err := armstorage.NewAccountsClient(sub, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	workspaces, err := armoperationalinsights.NewWorkspacesClient(sub, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create log analytics client: %w", err)
	}
	components, err := armapplicationinsights.NewComponentsClient(sub, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create application insights client: %w", err)
	}
	services, err := armsearch.NewServicesClient(sub, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create search services client: %w", err)
	}
	adminKeys, err := armsearch.NewAdminKeysClient(sub, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create search admin keys client: %w", err)
	}
	queryKeys, err := armsearch.NewQueryKeysClient(sub, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create search query keys client: %w", err)
	}
	roleAssignments, err := armauthorization.NewRoleAssignmentsClient(sub, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create role assignments client: %w", err)
	}

	workspaceClient := &WorkspaceClient{workspaces: workspaces}
	return &Clients{
		Group:      &GroupClient{groups: groups, resources: resources},
		Vault:      &VaultClient{vaults: vaults, tenantID: profile.TenantID, objectID: objectID},
		AIServices: &AIServicesClient{accounts: accounts},
		Registry:   &RegistryClient{registries: registries},
		Storage:    &StorageClient{accounts: storage},
		Workspace:  workspaceClient,
		Insights:   &InsightsClient{components: components, workspaces: workspaceClient},
		Search:     &SearchClient{services: services, adminKeys: adminKeys, queryKeys: queryKeys},
		Roles:      &RoleAssignmentClient{assignments: roleAssignments},
	}, nil
}

// NewSecretStore builds the data-plane secret client for a vault.
func NewSecretStore(profile *Profile, vaultName string) (*SecretStore, error) {
	vaultURL := fmt.Sprintf("https://%s.vault.azure.net/", vaultName)
	client, err := azsecrets.NewClient(vaultURL, profile.Credentials, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create secret client for %s: %w", vaultURL, err)
	}
	return &SecretStore{client: client}, nil
}

// toTags converts the spec tag map into the pointer map ARM expects.
func toTags(tags map[string]string) map[string]*string {
	out := make(map[string]*string, len(tags))
	for k, v := range tags {
		out[k] = to.Ptr(v)
	}
	return out
}

func fromTags(tags map[string]*string) map[string]string {
	out := make(map[string]string, len(tags))
	for k, v := range tags {
		if v != nil {
			out[k] = *v
		}
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
