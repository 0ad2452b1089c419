package azure

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/keyvault/armkeyvault"
	"github.com/de-tools/foundry-forge/pkg/models/domain"
	"github.com/de-tools/foundry-forge/pkg/services/validate"
)

// VaultClient provisions and inspects key vaults. The vault is created
// with an access policy granting the signed-in user key, secret and
// certificate management so the credential propagation phase can write
// into it.
type VaultClient struct {
	vaults   *armkeyvault.VaultsClient
	tenantID string
	objectID string
}

func (c *VaultClient) Exists(ctx context.Context, group, name string) (bool, error) {
	_, err := c.vaults.Get(ctx, group, name, nil)
	if err != nil {
		if IsNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check key vault %q: %w", name, err)
	}
	return true, nil
}

func (c *VaultClient) Create(ctx context.Context, group string, spec domain.ResourceSpec) error {
	params := armkeyvault.VaultCreateOrUpdateParameters{
		Location: to.Ptr(spec.Location),
		Tags:     toTags(spec.Tags),
		Properties: &armkeyvault.VaultProperties{
			TenantID: to.Ptr(c.tenantID),
			SKU: &armkeyvault.SKU{
				Family: to.Ptr(armkeyvault.SKUFamilyA),
				Name:   to.Ptr(armkeyvault.SKUNameStandard),
			},
			AccessPolicies: []*armkeyvault.AccessPolicyEntry{{
				TenantID: to.Ptr(c.tenantID),
				ObjectID: to.Ptr(c.objectID),
				Permissions: &armkeyvault.Permissions{
					Keys: to.SliceOfPtrs(
						armkeyvault.KeyPermissionsGet,
						armkeyvault.KeyPermissionsList,
						armkeyvault.KeyPermissionsCreate,
						armkeyvault.KeyPermissionsUpdate,
						armkeyvault.KeyPermissionsDelete,
					),
					Secrets: to.SliceOfPtrs(
						armkeyvault.SecretPermissionsGet,
						armkeyvault.SecretPermissionsList,
						armkeyvault.SecretPermissionsSet,
						armkeyvault.SecretPermissionsDelete,
					),
					Certificates: to.SliceOfPtrs(
						armkeyvault.CertificatePermissionsGet,
						armkeyvault.CertificatePermissionsList,
						armkeyvault.CertificatePermissionsCreate,
						armkeyvault.CertificatePermissionsUpdate,
						armkeyvault.CertificatePermissionsDelete,
					),
				},
			}},
			EnabledForDeployment:         to.Ptr(true),
			EnabledForDiskEncryption:     to.Ptr(true),
			EnabledForTemplateDeployment: to.Ptr(true),
			EnableRbacAuthorization:      to.Ptr(false),
			EnableSoftDelete:             to.Ptr(true),
			SoftDeleteRetentionInDays:    to.Ptr(int32(90)),
			EnablePurgeProtection:        to.Ptr(true),
		},
	}

	poller, err := c.vaults.BeginCreateOrUpdate(ctx, group, spec.Name, params, nil)
	if err != nil {
		return fmt.Errorf("failed to start key vault create: %w", err)
	}
	if _, err := poller.PollUntilDone(ctx, nil); err != nil {
		return fmt.Errorf("key vault create did not complete: %w", err)
	}
	return nil
}

func (c *VaultClient) Get(ctx context.Context, group, name string) (validate.VaultInfo, error) {
	resp, err := c.vaults.Get(ctx, group, name, nil)
	if err != nil {
		return validate.VaultInfo{}, err
	}

	info := validate.VaultInfo{
		Name:     deref(resp.Name),
		Location: deref(resp.Location),
	}
	if resp.Properties != nil {
		info.VaultURI = deref(resp.Properties.VaultURI)
		if resp.Properties.SKU != nil && resp.Properties.SKU.Name != nil {
			info.SKU = string(*resp.Properties.SKU.Name)
		}
	}
	return info, nil
}
