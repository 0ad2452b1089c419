package commands

import (
	"context"

	"github.com/de-tools/foundry-forge/pkg/models/api"
	"github.com/de-tools/foundry-forge/pkg/services/azure"
	"github.com/de-tools/foundry-forge/pkg/services/config"
	"github.com/rs/zerolog"
)

// session bundles everything a command needs to talk to one
// subscription: the validated configuration, the resolved profile, the
// signed-in user and the management clients.
type session struct {
	cfg      *config.Foundry
	profile  *azure.Profile
	objectID string
	clients  *azure.Clients
}

// newSession loads the configuration and establishes the Azure context.
// A failed directory lookup of the signed-in user is non-fatal: the
// object ID stays empty and the RBAC phases are skipped.
func newSession(ctx context.Context, envFile string) (*session, error) {
	logger := zerolog.Ctx(ctx)

	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, err
	}

	profile, err := azure.LoadProfile(ctx)
	if err != nil {
		return nil, err
	}
	logger.Info().
		Str("subscription", profile.SubscriptionName).
		Str("user", profile.User).
		Msg("azure profile resolved")

	objectID, err := azure.SignedInUserObjectID(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("signed-in user lookup failed, RBAC phases will be skipped")
	}

	clients, err := azure.NewClients(profile, objectID)
	if err != nil {
		return nil, err
	}

	return &session{
		cfg:      cfg,
		profile:  profile,
		objectID: objectID,
		clients:  clients,
	}, nil
}

func (s *session) azureInfo() api.AzureInfo {
	return api.AzureInfo{
		SubscriptionID:   s.profile.SubscriptionID,
		SubscriptionName: s.profile.SubscriptionName,
		TenantID:         s.profile.TenantID,
		User:             s.profile.User,
	}
}
