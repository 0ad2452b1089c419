package azure

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/containerregistry/armcontainerregistry"
	"github.com/de-tools/foundry-forge/pkg/models/domain"
	"github.com/de-tools/foundry-forge/pkg/services/validate"
)

// RegistryClient provisions and inspects container registries (Basic
// tier, admin user enabled for development authentication).
type RegistryClient struct {
	registries *armcontainerregistry.RegistriesClient
}

func (c *RegistryClient) Exists(ctx context.Context, group, name string) (bool, error) {
	_, err := c.registries.Get(ctx, group, name, nil)
	if err != nil {
		if IsNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check container registry %q: %w", name, err)
	}
	return true, nil
}

func (c *RegistryClient) Create(ctx context.Context, group string, spec domain.ResourceSpec) error {
	registry := armcontainerregistry.Registry{
		Location: to.Ptr(spec.Location),
		Tags:     toTags(spec.Tags),
		SKU:      &armcontainerregistry.SKU{Name: to.Ptr(armcontainerregistry.SKUNameBasic)},
		Properties: &armcontainerregistry.RegistryProperties{
			AdminUserEnabled:    to.Ptr(true),
			PublicNetworkAccess: to.Ptr(armcontainerregistry.PublicNetworkAccessEnabled),
		},
	}

	poller, err := c.registries.BeginCreate(ctx, group, spec.Name, registry, nil)
	if err != nil {
		return fmt.Errorf("failed to start container registry create: %w", err)
	}
	if _, err := poller.PollUntilDone(ctx, nil); err != nil {
		return fmt.Errorf("container registry create did not complete: %w", err)
	}
	return nil
}

func (c *RegistryClient) Get(ctx context.Context, group, name string) (validate.RegistryInfo, error) {
	resp, err := c.registries.Get(ctx, group, name, nil)
	if err != nil {
		return validate.RegistryInfo{}, err
	}

	info := validate.RegistryInfo{
		Name:     deref(resp.Name),
		Location: deref(resp.Location),
	}
	if resp.SKU != nil && resp.SKU.Name != nil {
		info.SKU = string(*resp.SKU.Name)
	}
	if resp.Properties != nil {
		info.LoginServer = deref(resp.Properties.LoginServer)
		if resp.Properties.AdminUserEnabled != nil {
			info.AdminEnabled = *resp.Properties.AdminUserEnabled
		}
	}
	return info, nil
}

func (c *RegistryClient) AdminUsername(ctx context.Context, group, name string) (string, error) {
	resp, err := c.registries.ListCredentials(ctx, group, name, nil)
	if err != nil {
		return "", fmt.Errorf("failed to list registry credentials: %w", err)
	}
	return deref(resp.Username), nil
}
