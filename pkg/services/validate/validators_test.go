package validate

import (
	"context"
	"fmt"
	"testing"

	"github.com/de-tools/foundry-forge/pkg/models/domain"
	"github.com/de-tools/foundry-forge/pkg/services/rbac"
	"github.com/de-tools/foundry-forge/pkg/services/secrets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockVaultAPI struct {
	mock.Mock
}

func (m *mockVaultAPI) Get(ctx context.Context, group, name string) (VaultInfo, error) {
	args := m.Called(ctx, group, name)
	return args.Get(0).(VaultInfo), args.Error(1)
}

type mockSecretReader struct {
	mock.Mock
}

func (m *mockSecretReader) Get(ctx context.Context, name string) (string, error) {
	args := m.Called(ctx, name)
	return args.String(0), args.Error(1)
}

type mockAssignmentAPI struct {
	mock.Mock
}

func (m *mockAssignmentAPI) ListForScope(ctx context.Context, scope string) ([]rbac.Assignment, error) {
	args := m.Called(ctx, scope)
	return args.Get(0).([]rbac.Assignment), args.Error(1)
}

func (m *mockAssignmentAPI) Create(ctx context.Context, scope, name string, req domain.RoleAssignmentRequest) error {
	args := m.Called(ctx, scope, name, req)
	return args.Error(0)
}

func findCheck(t *testing.T, r *Result, category, name string) domain.ValidationCheck {
	t.Helper()
	for _, c := range r.Checks() {
		if c.Category == category && c.Name == name {
			return c
		}
	}
	t.Fatalf("check %s/%s not recorded", category, name)
	return domain.ValidationCheck{}
}

func TestValidateKeyVault_SecretAccess(t *testing.T) {
	ctx := context.Background()
	goodKey := "0123456789abcdef0123456789abcdef"

	vault := VaultInfo{Name: "kv", Location: "westeurope", VaultURI: "https://kv.vault.azure.net/", SKU: "standard"}

	t.Run("missing secret degrades to warning with its name in details", func(t *testing.T) {
		api := new(mockVaultAPI)
		api.On("Get", ctx, "rg", "kv").Return(vault, nil)

		store := new(mockSecretReader)
		for _, want := range secrets.Expected() {
			if want.Name == secrets.NameSearchQueryKey {
				store.On("Get", ctx, want.Name).Return("", fmt.Errorf("secret not found"))
				continue
			}
			switch want.Name {
			case secrets.NameAIServicesEndpoint, secrets.NameSearchEndpoint:
				store.On("Get", ctx, want.Name).Return("https://example.net/", nil)
			case secrets.NameStorageConnection:
				store.On("Get", ctx, want.Name).Return("AccountName=st;AccountKey=x", nil)
			case secrets.NameAppInsightsConnection:
				store.On("Get", ctx, want.Name).Return("InstrumentationKey=abc", nil)
			default:
				store.On("Get", ctx, want.Name).Return(goodKey, nil)
			}
		}

		r := NewResult()
		ok := ValidateKeyVault(ctx, r, api, store, "rg", "kv")

		assert.True(t, ok)
		check := findCheck(t, r, "Key Vault", "Secret Access")
		assert.Equal(t, domain.StatusWarn, check.Status)
		assert.Contains(t, check.Details["missing_secrets"], secrets.NameSearchQueryKey)
		assert.False(t, r.HasCriticalIssues())
	})

	t.Run("empty vault fails the secret access check", func(t *testing.T) {
		api := new(mockVaultAPI)
		api.On("Get", ctx, "rg", "kv").Return(vault, nil)

		store := new(mockSecretReader)
		store.On("Get", ctx, mock.Anything).Return("", fmt.Errorf("secret not found"))

		r := NewResult()
		ValidateKeyVault(ctx, r, api, store, "rg", "kv")

		check := findCheck(t, r, "Key Vault", "Secret Access")
		assert.Equal(t, domain.StatusFail, check.Status)
		assert.True(t, r.HasCriticalIssues())
	})

	t.Run("malformed value yields a format warning", func(t *testing.T) {
		api := new(mockVaultAPI)
		api.On("Get", ctx, "rg", "kv").Return(vault, nil)

		store := new(mockSecretReader)
		// Short key and a non-https endpoint are format problems, not
		// access problems.
		store.On("Get", ctx, secrets.NameAIServicesKey).Return("short", nil)
		store.On("Get", ctx, secrets.NameAIServicesEndpoint).Return("http://insecure", nil)
		store.On("Get", ctx, secrets.NameSearchAdminKey).Return(goodKey, nil)
		store.On("Get", ctx, secrets.NameSearchQueryKey).Return(goodKey, nil)
		store.On("Get", ctx, secrets.NameSearchEndpoint).Return("https://s.search.windows.net/", nil)
		store.On("Get", ctx, secrets.NameStorageConnection).Return("AccountName=st", nil)
		store.On("Get", ctx, secrets.NameAppInsightsConnection).Return("InstrumentationKey=abc", nil)

		r := NewResult()
		ValidateKeyVault(ctx, r, api, store, "rg", "kv")

		access := findCheck(t, r, "Key Vault", "Secret Access")
		assert.Equal(t, domain.StatusPass, access.Status)

		format := findCheck(t, r, "Key Vault", "Secret Format")
		assert.Equal(t, domain.StatusWarn, format.Status)
		problems := format.Details["problems"].(map[string]string)
		assert.Contains(t, problems, secrets.NameAIServicesKey)
		assert.Contains(t, problems, secrets.NameAIServicesEndpoint)
	})

	t.Run("unreachable store degrades to a warning", func(t *testing.T) {
		api := new(mockVaultAPI)
		api.On("Get", ctx, "rg", "kv").Return(vault, nil)

		r := NewResult()
		ok := ValidateKeyVault(ctx, r, api, nil, "rg", "kv")

		assert.True(t, ok)
		check := findCheck(t, r, "Key Vault", "Secret Access")
		assert.Equal(t, domain.StatusWarn, check.Status)
	})

	t.Run("missing vault fails existence and skips secret checks", func(t *testing.T) {
		api := new(mockVaultAPI)
		api.On("Get", ctx, "rg", "kv").Return(VaultInfo{}, fmt.Errorf("404"))

		r := NewResult()
		ok := ValidateKeyVault(ctx, r, api, new(mockSecretReader), "rg", "kv")

		assert.False(t, ok)
		require.Len(t, r.Checks(), 1)
		assert.Equal(t, domain.StatusFail, r.Checks()[0].Status)
	})
}

func TestValidateRBAC(t *testing.T) {
	ctx := context.Background()
	scope := "/subscriptions/sub-1/resourceGroups/rg"
	principal := "user-object-id"
	rolePath := "/subscriptions/sub-1/providers/Microsoft.Authorization/roleDefinitions/" + rbac.AIDeveloperRoleID

	t.Run("role present passes", func(t *testing.T) {
		api := new(mockAssignmentAPI)
		api.On("ListForScope", ctx, scope).Return([]rbac.Assignment{
			{PrincipalID: principal, RoleDefinitionID: rolePath},
			{PrincipalID: "someone-else", RoleDefinitionID: rolePath},
		}, nil)

		r := NewResult()
		ok := ValidateRBAC(ctx, r, api, scope, principal)

		assert.True(t, ok)
		assert.Equal(t, domain.StatusPass, findCheck(t, r, "RBAC", "AI Developer Role").Status)

		count := findCheck(t, r, "RBAC", "Role Assignments")
		assert.Equal(t, 1, count.Details["assignment_count"])
	})

	t.Run("role GUID must match exactly, not by suffix", func(t *testing.T) {
		api := new(mockAssignmentAPI)
		// A different role whose GUID merely ends with the same
		// characters must not count.
		api.On("ListForScope", ctx, scope).Return([]rbac.Assignment{
			{PrincipalID: principal, RoleDefinitionID: "/subscriptions/sub-1/providers/Microsoft.Authorization/roleDefinitions/ffffffff-" + rbac.AIDeveloperRoleID},
		}, nil)

		r := NewResult()
		ValidateRBAC(ctx, r, api, scope, principal)

		assert.Equal(t, domain.StatusWarn, findCheck(t, r, "RBAC", "AI Developer Role").Status)
	})

	t.Run("list failure records a FAIL and returns false", func(t *testing.T) {
		api := new(mockAssignmentAPI)
		api.On("ListForScope", ctx, scope).Return([]rbac.Assignment(nil), fmt.Errorf("forbidden"))

		r := NewResult()
		ok := ValidateRBAC(ctx, r, api, scope, principal)

		assert.False(t, ok)
		assert.True(t, r.HasCriticalIssues())
	})
}
