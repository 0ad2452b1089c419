package azure

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/search/armsearch"
	"github.com/de-tools/foundry-forge/pkg/models/domain"
	"github.com/de-tools/foundry-forge/pkg/services/validate"
)

// SearchClient provisions and inspects cognitive search services (free
// tier, single replica and partition).
type SearchClient struct {
	services  *armsearch.ServicesClient
	adminKeys *armsearch.AdminKeysClient
	queryKeys *armsearch.QueryKeysClient
}

func (c *SearchClient) Exists(ctx context.Context, group, name string) (bool, error) {
	_, err := c.services.Get(ctx, group, name, nil, nil)
	if err != nil {
		if IsNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check search service %q: %w", name, err)
	}
	return true, nil
}

func (c *SearchClient) Create(ctx context.Context, group string, spec domain.ResourceSpec) error {
	service := armsearch.Service{
		Location: to.Ptr(spec.Location),
		Tags:     toTags(spec.Tags),
		SKU:      &armsearch.SKU{Name: to.Ptr(armsearch.SKUNameFree)},
		Properties: &armsearch.ServiceProperties{
			ReplicaCount:        to.Ptr(int32(1)),
			PartitionCount:      to.Ptr(int32(1)),
			HostingMode:         to.Ptr(armsearch.HostingModeDefault),
			PublicNetworkAccess: to.Ptr(armsearch.PublicNetworkAccessEnabled),
		},
	}

	poller, err := c.services.BeginCreateOrUpdate(ctx, group, spec.Name, service, nil, nil)
	if err != nil {
		return fmt.Errorf("failed to start search service create: %w", err)
	}
	if _, err := poller.PollUntilDone(ctx, nil); err != nil {
		return fmt.Errorf("search service create did not complete: %w", err)
	}
	return nil
}

func (c *SearchClient) Get(ctx context.Context, group, name string) (validate.SearchInfo, error) {
	resp, err := c.services.Get(ctx, group, name, nil, nil)
	if err != nil {
		return validate.SearchInfo{}, err
	}

	info := validate.SearchInfo{
		Name:     deref(resp.Name),
		Location: deref(resp.Location),
	}
	if resp.SKU != nil && resp.SKU.Name != nil {
		info.SKU = string(*resp.SKU.Name)
	}
	return info, nil
}

// Endpoint builds the public query endpoint for the service.
func (c *SearchClient) Endpoint(name string) string {
	return fmt.Sprintf("https://%s.search.windows.net/", name)
}

// AdminKey returns the primary admin key.
func (c *SearchClient) AdminKey(ctx context.Context, group, name string) (string, error) {
	resp, err := c.adminKeys.Get(ctx, group, name, nil, nil)
	if err != nil {
		return "", fmt.Errorf("failed to get search admin keys: %w", err)
	}
	if resp.PrimaryKey == nil || *resp.PrimaryKey == "" {
		return "", fmt.Errorf("search service %q has no primary admin key", name)
	}
	return *resp.PrimaryKey, nil
}

// QueryKey returns the first query key.
func (c *SearchClient) QueryKey(ctx context.Context, group, name string) (string, error) {
	pager := c.queryKeys.NewListBySearchServicePager(group, name, nil, nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return "", fmt.Errorf("failed to list search query keys: %w", err)
		}
		for _, key := range page.Value {
			if key != nil && key.Key != nil && *key.Key != "" {
				return *key.Key, nil
			}
		}
	}
	return "", fmt.Errorf("search service %q has no query keys", name)
}
