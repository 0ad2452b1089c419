package azure

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/authorization/armauthorization/v2"
	"github.com/de-tools/foundry-forge/pkg/models/domain"
	"github.com/de-tools/foundry-forge/pkg/services/rbac"
)

// RoleAssignmentClient adapts the ARM authorization API to the role
// assigner.
type RoleAssignmentClient struct {
	assignments *armauthorization.RoleAssignmentsClient
}

func (c *RoleAssignmentClient) ListForScope(ctx context.Context, scope string) ([]rbac.Assignment, error) {
	var out []rbac.Assignment
	pager := c.assignments.NewListForScopePager(scope, nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list role assignments at %q: %w", scope, err)
		}
		for _, a := range page.Value {
			if a == nil || a.Properties == nil {
				continue
			}
			out = append(out, rbac.Assignment{
				PrincipalID:      deref(a.Properties.PrincipalID),
				RoleDefinitionID: deref(a.Properties.RoleDefinitionID),
			})
		}
	}
	return out, nil
}

func (c *RoleAssignmentClient) Create(ctx context.Context, scope, name string, req domain.RoleAssignmentRequest) error {
	params := armauthorization.RoleAssignmentCreateParameters{
		Properties: &armauthorization.RoleAssignmentProperties{
			PrincipalID:      to.Ptr(req.PrincipalID),
			RoleDefinitionID: to.Ptr(req.RoleDefinitionID),
			PrincipalType:    to.Ptr(armauthorization.PrincipalType(req.PrincipalType)),
		},
	}
	if _, err := c.assignments.Create(ctx, scope, name, params, nil); err != nil {
		return fmt.Errorf("failed to create role assignment: %w", err)
	}
	return nil
}
