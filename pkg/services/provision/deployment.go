package provision

import (
	"context"
	"fmt"

	"github.com/de-tools/foundry-forge/pkg/models/domain"
	"github.com/de-tools/foundry-forge/pkg/services/config"
	"github.com/rs/zerolog"
)

// GroupClient manages the resource group that contains the whole
// deployment.
type GroupClient interface {
	Exists(ctx context.Context, name string) (bool, error)
	Create(ctx context.Context, name, location string, tags map[string]string) error
}

// Deployment runs the fixed-order provisioning phases for one
// configuration. Phases are strictly sequential; later phases rely on
// identifiers produced by earlier ones.
type Deployment struct {
	prov    *Provisioner
	group   GroupClient
	clients map[domain.ResourceKind]ResourceClient
}

func NewDeployment(prov *Provisioner, group GroupClient, clients map[domain.ResourceKind]ResourceClient) *Deployment {
	return &Deployment{prov: prov, group: group, clients: clients}
}

// Run converges the resource group and every declared resource, in
// order. A failed resource phase is recorded and does not stop later
// independent phases; only a missing resource group (the container for
// everything else) aborts the run.
func (d *Deployment) Run(ctx context.Context, cfg *config.Foundry) ([]domain.ProvisionOutcome, error) {
	logger := zerolog.Ctx(ctx)

	exists, err := d.group.Exists(ctx, cfg.ResourceGroup)
	if err != nil {
		logger.Warn().Err(err).Msg("resource group existence check failed, assuming absent")
	}
	if !exists {
		logger.Info().Str("group", cfg.ResourceGroup).Msg("creating resource group")
		if err := d.group.Create(ctx, cfg.ResourceGroup, cfg.Location, cfg.Tags()); err != nil {
			return nil, fmt.Errorf("failed to create resource group %q: %w", cfg.ResourceGroup, err)
		}
	} else {
		logger.Info().Str("group", cfg.ResourceGroup).Msg("resource group already exists")
	}

	specs := cfg.ResourceSpecs()
	outcomes := make([]domain.ProvisionOutcome, 0, len(specs))
	for _, spec := range specs {
		client, ok := d.clients[spec.Kind]
		if !ok {
			return outcomes, fmt.Errorf("no resource client registered for kind %s", spec.Kind)
		}
		outcomes = append(outcomes, d.prov.Provision(ctx, client, cfg.ResourceGroup, spec))
	}
	return outcomes, nil
}
