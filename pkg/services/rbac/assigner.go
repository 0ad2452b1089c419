package rbac

import (
	"context"
	"fmt"
	"strings"

	"github.com/de-tools/foundry-forge/pkg/models/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// AIDeveloperRoleID is the GUID of the Azure built-in AI Developer role.
const AIDeveloperRoleID = "64702f94-c441-49e6-a78b-ef80e0188fee"

// Assignment is an existing role binding at some scope, as returned by
// the authorization API. RoleDefinitionID is the full resource path.
type Assignment struct {
	PrincipalID      string
	RoleDefinitionID string
}

// AssignmentAPI is the slice of the authorization service the assigner
// needs.
type AssignmentAPI interface {
	ListForScope(ctx context.Context, scope string) ([]Assignment, error)
	Create(ctx context.Context, scope, name string, req domain.RoleAssignmentRequest) error
}

// Assigner idempotently ensures role bindings. A failed assignment is a
// recorded, non-fatal outcome; it never aborts the calling workflow.
type Assigner struct {
	api AssignmentAPI
}

func NewAssigner(api AssignmentAPI) *Assigner {
	return &Assigner{api: api}
}

// EnsureRole makes sure principalID holds roleID at scope. roleID is the
// bare role-definition GUID; matching against existing assignments
// compares that GUID exactly (the final path segment of the assignment's
// role definition), not a loose suffix.
func (a *Assigner) EnsureRole(ctx context.Context, scope, principalID, roleID string) domain.RoleAssignmentState {
	logger := zerolog.Ctx(ctx).With().
		Str("scope", scope).
		Str("role", roleID).
		Logger()

	existing, err := a.api.ListForScope(ctx, scope)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to list role assignments")
		return domain.RoleAssignFailed
	}

	for _, assignment := range existing {
		if assignment.PrincipalID == principalID && RoleDefinitionGUID(assignment.RoleDefinitionID) == roleID {
			logger.Info().Msg("role already assigned")
			return domain.RoleAlreadyAssigned
		}
	}

	req := domain.RoleAssignmentRequest{
		Scope:            scope,
		PrincipalID:      principalID,
		RoleDefinitionID: RoleDefinitionPath(scopeSubscriptionID(scope), roleID),
		PrincipalType:    "User",
	}
	if err := a.api.Create(ctx, scope, uuid.NewString(), req); err != nil {
		logger.Warn().Err(err).Msg("failed to create role assignment")
		return domain.RoleAssignFailed
	}

	logger.Info().Msg("role assigned")
	return domain.RoleAssigned
}

// RoleDefinitionPath builds the full role definition resource path for a
// bare role GUID.
func RoleDefinitionPath(subscriptionID, roleID string) string {
	return fmt.Sprintf(
		"/subscriptions/%s/providers/Microsoft.Authorization/roleDefinitions/%s",
		subscriptionID, roleID,
	)
}

// GroupScope builds the resource group scope string.
func GroupScope(subscriptionID, group string) string {
	return fmt.Sprintf("/subscriptions/%s/resourceGroups/%s", subscriptionID, group)
}

// RoleDefinitionGUID extracts the trailing GUID from a role definition
// resource path. Scopes may embed full provider paths, so only the last
// segment is compared. Assignment and validation both match on it so
// the policy cannot drift.
func RoleDefinitionGUID(path string) string {
	idx := strings.LastIndex(path, "/")
	if idx < 0 {
		return path
	}
	return path[idx+1:]
}

func scopeSubscriptionID(scope string) string {
	parts := strings.Split(strings.TrimPrefix(scope, "/"), "/")
	for i := 0; i+1 < len(parts); i++ {
		if parts[i] == "subscriptions" {
			return parts[i+1]
		}
	}
	return ""
}
