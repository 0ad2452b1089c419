package azure

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/cognitiveservices/armcognitiveservices"
	"github.com/de-tools/foundry-forge/pkg/models/domain"
	"github.com/de-tools/foundry-forge/pkg/services/validate"
)

// AIServicesClient provisions and inspects the unified AI Services
// account (kind AIServices, S0 tier, custom subdomain for API access).
type AIServicesClient struct {
	accounts *armcognitiveservices.AccountsClient
}

func (c *AIServicesClient) Exists(ctx context.Context, group, name string) (bool, error) {
	_, err := c.accounts.Get(ctx, group, name, nil)
	if err != nil {
		if IsNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check AI services account %q: %w", name, err)
	}
	return true, nil
}

func (c *AIServicesClient) Create(ctx context.Context, group string, spec domain.ResourceSpec) error {
	account := armcognitiveservices.Account{
		Location: to.Ptr(spec.Location),
		Kind:     to.Ptr("AIServices"),
		SKU:      &armcognitiveservices.SKU{Name: to.Ptr("S0")},
		Tags:     toTags(spec.Tags),
		Properties: &armcognitiveservices.AccountProperties{
			CustomSubDomainName: to.Ptr(spec.Name),
			PublicNetworkAccess: to.Ptr(armcognitiveservices.PublicNetworkAccessEnabled),
		},
	}

	poller, err := c.accounts.BeginCreate(ctx, group, spec.Name, account, nil)
	if err != nil {
		return fmt.Errorf("failed to start AI services create: %w", err)
	}
	if _, err := poller.PollUntilDone(ctx, nil); err != nil {
		return fmt.Errorf("AI services create did not complete: %w", err)
	}
	return nil
}

func (c *AIServicesClient) Get(ctx context.Context, group, name string) (validate.AccountInfo, error) {
	resp, err := c.accounts.Get(ctx, group, name, nil)
	if err != nil {
		return validate.AccountInfo{}, err
	}

	info := validate.AccountInfo{
		Name:     deref(resp.Name),
		Location: deref(resp.Location),
		Kind:     deref(resp.Kind),
	}
	if resp.SKU != nil {
		info.SKU = deref(resp.SKU.Name)
	}
	if resp.Properties != nil {
		info.Endpoint = deref(resp.Properties.Endpoint)
		if resp.Properties.ProvisioningState != nil {
			info.ProvisioningState = string(*resp.Properties.ProvisioningState)
		}
	}
	return info, nil
}

// PrimaryKey returns the account's key1.
func (c *AIServicesClient) PrimaryKey(ctx context.Context, group, name string) (string, error) {
	resp, err := c.accounts.ListKeys(ctx, group, name, nil)
	if err != nil {
		return "", fmt.Errorf("failed to list AI services keys: %w", err)
	}
	return deref(resp.Key1), nil
}

// EndpointAndKey fetches the pieces the credential propagation phase
// deposits into the vault.
func (c *AIServicesClient) EndpointAndKey(ctx context.Context, group, name string) (string, string, error) {
	info, err := c.Get(ctx, group, name)
	if err != nil {
		return "", "", fmt.Errorf("failed to get AI services account: %w", err)
	}
	if info.Endpoint == "" {
		return "", "", fmt.Errorf("AI services account %q has no endpoint", name)
	}
	key, err := c.PrimaryKey(ctx, group, name)
	if err != nil {
		return "", "", err
	}
	if key == "" {
		return "", "", fmt.Errorf("AI services account %q has no primary key", name)
	}
	return info.Endpoint, key, nil
}
