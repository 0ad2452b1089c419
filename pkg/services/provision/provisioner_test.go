package provision

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/de-tools/foundry-forge/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockResourceClient struct {
	mock.Mock
}

func (m *mockResourceClient) Exists(ctx context.Context, group, name string) (bool, error) {
	args := m.Called(ctx, group, name)
	return args.Bool(0), args.Error(1)
}

func (m *mockResourceClient) Create(ctx context.Context, group string, spec domain.ResourceSpec) error {
	args := m.Called(ctx, group, spec)
	return args.Error(0)
}

func vaultSpec() domain.ResourceSpec {
	return domain.ResourceSpec{
		Kind:     domain.KindKeyVault,
		Name:     "kv-foundry",
		Location: "westeurope",
	}
}

func TestProvisioner_Provision(t *testing.T) {
	ctx := context.Background()

	t.Run("absent resource is created", func(t *testing.T) {
		client := new(mockResourceClient)
		client.On("Exists", mock.Anything, "rg", "kv-foundry").Return(false, nil)
		client.On("Create", mock.Anything, "rg", vaultSpec()).Return(nil)

		outcome := NewProvisioner().Provision(ctx, client, "rg", vaultSpec())

		assert.Equal(t, domain.StateCreated, outcome.State)
		assert.False(t, outcome.Failed())
		client.AssertExpectations(t)
	})

	t.Run("existing resource is left untouched", func(t *testing.T) {
		client := new(mockResourceClient)
		client.On("Exists", mock.Anything, "rg", "kv-foundry").Return(true, nil)

		outcome := NewProvisioner().Provision(ctx, client, "rg", vaultSpec())

		assert.Equal(t, domain.StateAlreadyExists, outcome.State)
		client.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("second run after create reports already exists", func(t *testing.T) {
		client := new(mockResourceClient)
		client.On("Exists", mock.Anything, "rg", "kv-foundry").Return(false, nil).Once()
		client.On("Create", mock.Anything, "rg", vaultSpec()).Return(nil).Once()
		client.On("Exists", mock.Anything, "rg", "kv-foundry").Return(true, nil).Once()

		p := NewProvisioner()
		first := p.Provision(ctx, client, "rg", vaultSpec())
		second := p.Provision(ctx, client, "rg", vaultSpec())

		assert.Equal(t, domain.StateCreated, first.State)
		assert.Equal(t, domain.StateAlreadyExists, second.State)
		client.AssertExpectations(t)
	})

	t.Run("existence check error fails open toward creation", func(t *testing.T) {
		client := new(mockResourceClient)
		client.On("Exists", mock.Anything, "rg", "kv-foundry").Return(false, fmt.Errorf("transient lookup failure"))
		client.On("Create", mock.Anything, "rg", vaultSpec()).Return(nil)

		outcome := NewProvisioner().Provision(ctx, client, "rg", vaultSpec())

		assert.Equal(t, domain.StateCreated, outcome.State)
		client.AssertExpectations(t)
	})

	t.Run("create failure is recorded, not raised", func(t *testing.T) {
		client := new(mockResourceClient)
		client.On("Exists", mock.Anything, "rg", "kv-foundry").Return(false, nil)
		client.On("Create", mock.Anything, "rg", vaultSpec()).Return(fmt.Errorf("quota exceeded"))

		outcome := NewProvisioner().Provision(ctx, client, "rg", vaultSpec())

		assert.Equal(t, domain.StateFailed, outcome.State)
		assert.Contains(t, outcome.Error, "quota exceeded")
	})

	t.Run("create is bounded by the operation timeout", func(t *testing.T) {
		client := new(mockResourceClient)
		client.On("Exists", mock.Anything, "rg", "kv-foundry").Return(false, nil)
		client.On("Create", mock.Anything, "rg", vaultSpec()).
			Return(context.DeadlineExceeded).
			Run(func(args mock.Arguments) {
				opCtx := args.Get(0).(context.Context)
				deadline, ok := opCtx.Deadline()
				assert.True(t, ok)
				assert.WithinDuration(t, time.Now().Add(50*time.Millisecond), deadline, time.Second)
			})

		outcome := NewProvisioner().WithTimeout(50 * time.Millisecond).Provision(ctx, client, "rg", vaultSpec())

		assert.Equal(t, domain.StateFailed, outcome.State)
	})
}
