package azure

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/applicationinsights/armapplicationinsights"
	"github.com/de-tools/foundry-forge/pkg/models/domain"
	"github.com/de-tools/foundry-forge/pkg/services/validate"
)

// InsightsClient provisions and inspects application insights
// components. A component is always linked to a log analytics
// workspace; creation fails when the workspace identifier cannot be
// resolved, which makes the workspace a hard dependency of this phase.
type InsightsClient struct {
	components    *armapplicationinsights.ComponentsClient
	workspaces    *WorkspaceClient
	workspaceName string
}

// UseWorkspace sets the workspace the component links against.
func (c *InsightsClient) UseWorkspace(name string) {
	c.workspaceName = name
}

func (c *InsightsClient) Exists(ctx context.Context, group, name string) (bool, error) {
	_, err := c.components.Get(ctx, group, name, nil)
	if err != nil {
		if IsNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check application insights %q: %w", name, err)
	}
	return true, nil
}

func (c *InsightsClient) Create(ctx context.Context, group string, spec domain.ResourceSpec) error {
	if c.workspaceName == "" {
		return fmt.Errorf("no log analytics workspace configured for application insights %q", spec.Name)
	}
	workspaceID, err := c.workspaces.ResourceID(ctx, group, c.workspaceName)
	if err != nil {
		return fmt.Errorf("cannot link application insights to workspace: %w", err)
	}

	component := armapplicationinsights.Component{
		Location: to.Ptr(spec.Location),
		Kind:     to.Ptr("web"),
		Tags:     toTags(spec.Tags),
		Properties: &armapplicationinsights.ComponentProperties{
			ApplicationType:     to.Ptr(armapplicationinsights.ApplicationTypeWeb),
			WorkspaceResourceID: to.Ptr(workspaceID),
			SamplingPercentage:  to.Ptr(float64(100)),
		},
	}

	if _, err := c.components.CreateOrUpdate(ctx, group, spec.Name, component, nil); err != nil {
		return fmt.Errorf("failed to create application insights: %w", err)
	}
	return nil
}

func (c *InsightsClient) Get(ctx context.Context, group, name string) (validate.ComponentInfo, error) {
	resp, err := c.components.Get(ctx, group, name, nil)
	if err != nil {
		return validate.ComponentInfo{}, err
	}

	info := validate.ComponentInfo{
		Name:     deref(resp.Name),
		Location: deref(resp.Location),
		Kind:     deref(resp.Kind),
	}
	if resp.Properties != nil {
		if resp.Properties.ApplicationType != nil {
			info.ApplicationType = string(*resp.Properties.ApplicationType)
		}
		info.InstrumentationKey = deref(resp.Properties.InstrumentationKey)
	}
	return info, nil
}

// ConnectionString returns the component's telemetry connection string.
func (c *InsightsClient) ConnectionString(ctx context.Context, group, name string) (string, error) {
	resp, err := c.components.Get(ctx, group, name, nil)
	if err != nil {
		return "", fmt.Errorf("failed to get application insights %q: %w", name, err)
	}
	if resp.Properties == nil || resp.Properties.ConnectionString == nil || *resp.Properties.ConnectionString == "" {
		return "", fmt.Errorf("application insights %q has no connection string", name)
	}
	return *resp.Properties.ConnectionString, nil
}
