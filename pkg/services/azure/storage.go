package azure

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/storage/armstorage"
	"github.com/de-tools/foundry-forge/pkg/models/domain"
	"github.com/de-tools/foundry-forge/pkg/services/validate"
)

// StorageClient provisions and inspects storage accounts (StorageV2,
// HTTPS only, TLS 1.2 minimum, hierarchical namespace for data lake
// workloads).
type StorageClient struct {
	accounts *armstorage.AccountsClient
}

func (c *StorageClient) Exists(ctx context.Context, group, name string) (bool, error) {
	_, err := c.accounts.GetProperties(ctx, group, name, nil)
	if err != nil {
		if IsNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check storage account %q: %w", name, err)
	}
	return true, nil
}

func (c *StorageClient) Create(ctx context.Context, group string, spec domain.ResourceSpec) error {
	params := armstorage.AccountCreateParameters{
		Location: to.Ptr(spec.Location),
		Tags:     toTags(spec.Tags),
		Kind:     to.Ptr(armstorage.KindStorageV2),
		SKU:      &armstorage.SKU{Name: to.Ptr(armstorage.SKUNameStandardLRS)},
		Properties: &armstorage.AccountPropertiesCreateParameters{
			EnableHTTPSTrafficOnly: to.Ptr(true),
			MinimumTLSVersion:      to.Ptr(armstorage.MinimumTLSVersionTLS12),
			IsHnsEnabled:           to.Ptr(true),
		},
	}

	poller, err := c.accounts.BeginCreate(ctx, group, spec.Name, params, nil)
	if err != nil {
		return fmt.Errorf("failed to start storage account create: %w", err)
	}
	if _, err := poller.PollUntilDone(ctx, nil); err != nil {
		return fmt.Errorf("storage account create did not complete: %w", err)
	}
	return nil
}

func (c *StorageClient) Get(ctx context.Context, group, name string) (validate.StorageInfo, error) {
	resp, err := c.accounts.GetProperties(ctx, group, name, nil)
	if err != nil {
		return validate.StorageInfo{}, err
	}

	info := validate.StorageInfo{
		Name:     deref(resp.Name),
		Location: deref(resp.Location),
	}
	if resp.Kind != nil {
		info.Kind = string(*resp.Kind)
	}
	if resp.SKU != nil && resp.SKU.Name != nil {
		info.SKU = string(*resp.SKU.Name)
	}
	if resp.Properties != nil {
		if resp.Properties.EnableHTTPSTrafficOnly != nil {
			info.HTTPSOnly = *resp.Properties.EnableHTTPSTrafficOnly
		}
		if resp.Properties.IsHnsEnabled != nil {
			info.HNSEnabled = *resp.Properties.IsHnsEnabled
		}
	}
	return info, nil
}

func (c *StorageClient) KeyCount(ctx context.Context, group, name string) (int, error) {
	resp, err := c.accounts.ListKeys(ctx, group, name, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to list storage keys: %w", err)
	}
	return len(resp.Keys), nil
}

// ConnectionString builds the standard account connection string from
// the first access key.
func (c *StorageClient) ConnectionString(ctx context.Context, group, name string) (string, error) {
	resp, err := c.accounts.ListKeys(ctx, group, name, nil)
	if err != nil {
		return "", fmt.Errorf("failed to list storage keys: %w", err)
	}
	if len(resp.Keys) == 0 || resp.Keys[0] == nil || resp.Keys[0].Value == nil {
		return "", fmt.Errorf("storage account %q has no access keys", name)
	}
	return fmt.Sprintf(
		"DefaultEndpointsProtocol=https;AccountName=%s;AccountKey=%s;EndpointSuffix=core.windows.net",
		name, *resp.Keys[0].Value,
	), nil
}
