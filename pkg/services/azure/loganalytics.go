package azure

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/operationalinsights/armoperationalinsights"
	"github.com/de-tools/foundry-forge/pkg/models/domain"
	"github.com/de-tools/foundry-forge/pkg/services/validate"
)

// WorkspaceClient provisions and inspects log analytics workspaces
// (PerGB2018, 30 day retention).
type WorkspaceClient struct {
	workspaces *armoperationalinsights.WorkspacesClient
}

func (c *WorkspaceClient) Exists(ctx context.Context, group, name string) (bool, error) {
	_, err := c.workspaces.Get(ctx, group, name, nil)
	if err != nil {
		if IsNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check log analytics workspace %q: %w", name, err)
	}
	return true, nil
}

func (c *WorkspaceClient) Create(ctx context.Context, group string, spec domain.ResourceSpec) error {
	workspace := armoperationalinsights.Workspace{
		Location: to.Ptr(spec.Location),
		Tags:     toTags(spec.Tags),
		Properties: &armoperationalinsights.WorkspaceProperties{
			SKU: &armoperationalinsights.WorkspaceSKU{
				Name: to.Ptr(armoperationalinsights.WorkspaceSKUNameEnumPerGB2018),
			},
			RetentionInDays: to.Ptr(int32(30)),
		},
	}

	poller, err := c.workspaces.BeginCreateOrUpdate(ctx, group, spec.Name, workspace, nil)
	if err != nil {
		return fmt.Errorf("failed to start workspace create: %w", err)
	}
	if _, err := poller.PollUntilDone(ctx, nil); err != nil {
		return fmt.Errorf("workspace create did not complete: %w", err)
	}
	return nil
}

func (c *WorkspaceClient) Get(ctx context.Context, group, name string) (validate.WorkspaceInfo, error) {
	resp, err := c.workspaces.Get(ctx, group, name, nil)
	if err != nil {
		return validate.WorkspaceInfo{}, err
	}

	info := validate.WorkspaceInfo{
		Name:     deref(resp.Name),
		Location: deref(resp.Location),
	}
	if resp.Properties != nil {
		if resp.Properties.SKU != nil && resp.Properties.SKU.Name != nil {
			info.SKU = string(*resp.Properties.SKU.Name)
		}
		if resp.Properties.RetentionInDays != nil {
			info.RetentionDays = int(*resp.Properties.RetentionInDays)
		}
	}
	return info, nil
}

// ResourceID returns the workspace's full ARM resource ID. The
// application insights phase depends on it.
func (c *WorkspaceClient) ResourceID(ctx context.Context, group, name string) (string, error) {
	resp, err := c.workspaces.Get(ctx, group, name, nil)
	if err != nil {
		return "", fmt.Errorf("failed to get workspace %q: %w", name, err)
	}
	if resp.ID == nil || *resp.ID == "" {
		return "", fmt.Errorf("workspace %q has no resource id", name)
	}
	return *resp.ID, nil
}
