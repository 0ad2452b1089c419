package secrets

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) Set(ctx context.Context, name, value string) error {
	args := m.Called(ctx, name, value)
	return args.Error(0)
}

func (m *mockStore) Get(ctx context.Context, name string) (string, error) {
	args := m.Called(ctx, name)
	return args.String(0), args.Error(1)
}

func staticSource(name, value string) Source {
	return Source{
		Name:           name,
		SourceResource: "test-resource",
		Fetch: func(ctx context.Context) (string, error) {
			return value, nil
		},
	}
}

func failingSource(name string) Source {
	return Source{
		Name:           name,
		SourceResource: "test-resource",
		Fetch: func(ctx context.Context) (string, error) {
			return "", fmt.Errorf("keys not ready")
		},
	}
}

func TestPropagator_Propagate(t *testing.T) {
	ctx := context.Background()

	t.Run("stores every source", func(t *testing.T) {
		store := new(mockStore)
		store.On("Set", ctx, NameAIServicesKey, "key-value").Return(nil)
		store.On("Set", ctx, NameAIServicesEndpoint, "https://ai.example.net/").Return(nil)

		outcomes := NewPropagator(store).Propagate(ctx, []Source{
			staticSource(NameAIServicesKey, "key-value"),
			staticSource(NameAIServicesEndpoint, "https://ai.example.net/"),
		})

		require.Len(t, outcomes, 2)
		for _, o := range outcomes {
			assert.True(t, o.Stored)
			assert.Empty(t, o.Error)
		}
		store.AssertExpectations(t)
	})

	t.Run("one failed fetch does not stop the rest", func(t *testing.T) {
		store := new(mockStore)
		store.On("Set", ctx, NameSearchAdminKey, "admin-key").Return(nil)

		outcomes := NewPropagator(store).Propagate(ctx, []Source{
			failingSource(NameAIServicesKey),
			staticSource(NameSearchAdminKey, "admin-key"),
		})

		require.Len(t, outcomes, 2)
		assert.False(t, outcomes[0].Stored)
		assert.Contains(t, outcomes[0].Error, "keys not ready")
		assert.True(t, outcomes[1].Stored)
		store.AssertExpectations(t)
	})

	t.Run("a store failure is recorded per secret", func(t *testing.T) {
		store := new(mockStore)
		store.On("Set", ctx, NameStorageConnection, mock.Anything).Return(fmt.Errorf("forbidden"))
		store.On("Set", ctx, NameSearchEndpoint, mock.Anything).Return(nil)

		outcomes := NewPropagator(store).Propagate(ctx, []Source{
			staticSource(NameStorageConnection, "AccountName=st"),
			staticSource(NameSearchEndpoint, "https://s.search.windows.net/"),
		})

		require.Len(t, outcomes, 2)
		assert.False(t, outcomes[0].Stored)
		assert.True(t, outcomes[1].Stored)
	})
}
