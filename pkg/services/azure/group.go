package azure

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armresources"
	"github.com/de-tools/foundry-forge/pkg/services/validate"
)

// GroupClient manages resource groups and enumerates their contents.
type GroupClient struct {
	groups    *armresources.ResourceGroupsClient
	resources *armresources.Client
}

func (c *GroupClient) Exists(ctx context.Context, name string) (bool, error) {
	resp, err := c.groups.CheckExistence(ctx, name, nil)
	if err != nil {
		return false, fmt.Errorf("failed to check resource group %q: %w", name, err)
	}
	return resp.Success, nil
}

func (c *GroupClient) Create(ctx context.Context, name, location string, tags map[string]string) error {
	_, err := c.groups.CreateOrUpdate(ctx, name, armresources.ResourceGroup{
		Location: to.Ptr(location),
		Tags:     toTags(tags),
	}, nil)
	if err != nil {
		return fmt.Errorf("failed to create resource group %q: %w", name, err)
	}
	return nil
}

func (c *GroupClient) Get(ctx context.Context, name string) (validate.GroupInfo, error) {
	resp, err := c.groups.Get(ctx, name, nil)
	if err != nil {
		return validate.GroupInfo{}, err
	}

	info := validate.GroupInfo{
		Name:     deref(resp.Name),
		Location: deref(resp.Location),
		Tags:     fromTags(resp.Tags),
	}
	if resp.Properties != nil {
		info.ProvisioningState = deref(resp.Properties.ProvisioningState)
	}
	return info, nil
}

// ListResources enumerates every resource in the group as name → ARM
// type pairs, in API order.
func (c *GroupClient) ListResources(ctx context.Context, group string) (map[string]string, error) {
	found := map[string]string{}
	pager := c.resources.NewListByResourceGroupPager(group, nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list resources in %q: %w", group, err)
		}
		for _, res := range page.Value {
			if res == nil {
				continue
			}
			found[deref(res.Name)] = deref(res.Type)
		}
	}
	return found, nil
}
