package provision

import (
	"context"
	"time"

	"github.com/de-tools/foundry-forge/pkg/models/domain"
	"github.com/rs/zerolog"
)

// DefaultOperationTimeout bounds the wait on a single long-running
// create operation.
const DefaultOperationTimeout = 15 * time.Minute

// ResourceClient is the per-kind capability the provisioner consumes.
// Create blocks until the underlying long-running operation completes or
// its context expires.
type ResourceClient interface {
	Exists(ctx context.Context, group, name string) (bool, error)
	Create(ctx context.Context, group string, spec domain.ResourceSpec) error
}

// Provisioner creates a resource only when it does not already exist.
// An existing resource is accepted as-is; there is no diffing of the
// deployed configuration against the spec.
type Provisioner struct {
	timeout time.Duration
}

func NewProvisioner() *Provisioner {
	return &Provisioner{timeout: DefaultOperationTimeout}
}

// WithTimeout overrides the long-running operation timeout.
func (p *Provisioner) WithTimeout(d time.Duration) *Provisioner {
	p.timeout = d
	return p
}

// Provision converges one spec. An error from the existence check is
// treated as "does not exist" so a failed lookup still converges toward
// creation; under concurrent invocations this can race into a
// double-create, which the caller accepts as ARM create calls are
// themselves idempotent per name.
func (p *Provisioner) Provision(ctx context.Context, client ResourceClient, group string, spec domain.ResourceSpec) domain.ProvisionOutcome {
	logger := zerolog.Ctx(ctx).With().
		Str("kind", string(spec.Kind)).
		Str("name", spec.Name).
		Logger()

	exists, err := client.Exists(ctx, group, spec.Name)
	if err != nil {
		logger.Warn().Err(err).Msg("existence check failed, assuming resource is absent")
	}
	if exists {
		logger.Info().Msg("resource already exists")
		return domain.ProvisionOutcome{Spec: spec, State: domain.StateAlreadyExists}
	}

	logger.Info().Msg("creating resource")
	opCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	if err := client.Create(opCtx, group, spec); err != nil {
		logger.Error().Err(err).Msg("create failed")
		return domain.ProvisionOutcome{Spec: spec, State: domain.StateFailed, Error: err.Error()}
	}

	logger.Info().Msg("resource created")
	return domain.ProvisionOutcome{Spec: spec, State: domain.StateCreated}
}
