package azure

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/security/keyvault/azsecrets"
)

// SecretStore is the data-plane key vault client used for credential
// propagation and validation. Set overwrites: an existing name gets a
// new secret version.
type SecretStore struct {
	client *azsecrets.Client
}

func (s *SecretStore) Set(ctx context.Context, name, value string) error {
	params := azsecrets.SetSecretParameters{Value: to.Ptr(value)}
	if _, err := s.client.SetSecret(ctx, name, params, nil); err != nil {
		return fmt.Errorf("failed to set secret %q: %w", name, err)
	}
	return nil
}

// List enumerates the names of every secret in the vault.
func (s *SecretStore) List(ctx context.Context) ([]string, error) {
	var names []string
	pager := s.client.NewListSecretPropertiesPager(nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list secrets: %w", err)
		}
		for _, props := range page.Value {
			if props != nil && props.ID != nil {
				names = append(names, props.ID.Name())
			}
		}
	}
	return names, nil
}

func (s *SecretStore) Get(ctx context.Context, name string) (string, error) {
	resp, err := s.client.GetSecret(ctx, name, "", nil)
	if err != nil {
		return "", fmt.Errorf("failed to get secret %q: %w", name, err)
	}
	if resp.Value == nil {
		return "", fmt.Errorf("secret %q has no value", name)
	}
	return *resp.Value, nil
}
