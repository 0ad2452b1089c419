package secrets

import (
	"context"

	"github.com/rs/zerolog"
)

// Store is the secret vault the propagator writes into. Set has
// overwrite semantics: writing an existing name produces a new version.
type Store interface {
	Set(ctx context.Context, name, value string) error
	Get(ctx context.Context, name string) (string, error)
}

// Source pairs a secret name with the retrieval that produces its value.
type Source struct {
	Name           string
	Description    string
	SourceResource string
	Fetch          func(ctx context.Context) (string, error)
}

// Outcome records what happened to one secret during propagation.
type Outcome struct {
	Name   string
	Stored bool
	Error  string
}

// Propagator deposits retrieved credentials into the secret store. A
// failure on one secret is logged and skipped so the remaining sources
// still propagate.
type Propagator struct {
	store Store
}

func NewPropagator(store Store) *Propagator {
	return &Propagator{store: store}
}

// Propagate fetches and stores each source in order. It never returns an
// error: per-secret failures are recorded in the outcomes and logged as
// warnings.
func (p *Propagator) Propagate(ctx context.Context, sources []Source) []Outcome {
	logger := zerolog.Ctx(ctx)

	outcomes := make([]Outcome, 0, len(sources))
	for _, src := range sources {
		value, err := src.Fetch(ctx)
		if err != nil {
			logger.Warn().Err(err).
				Str("secret", src.Name).
				Str("source", src.SourceResource).
				Msg("credential retrieval failed, skipping")
			outcomes = append(outcomes, Outcome{Name: src.Name, Error: err.Error()})
			continue
		}

		if err := p.store.Set(ctx, src.Name, value); err != nil {
			logger.Warn().Err(err).
				Str("secret", src.Name).
				Msg("failed to store secret")
			outcomes = append(outcomes, Outcome{Name: src.Name, Error: err.Error()})
			continue
		}

		logger.Info().
			Str("secret", src.Name).
			Str("value", Mask(value)).
			Msg("secret stored")
		outcomes = append(outcomes, Outcome{Name: src.Name, Stored: true})
	}
	return outcomes
}
