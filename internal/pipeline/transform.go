package pipeline

import (
	"context"
	"log/slog"

	"github.com/couchcryptid/my-code-base/internal/domain"
)

// CO2Transformer implements Transformer using the domain parse and enrich steps.
type CO2Transformer struct {
	logger *slog.Logger
}

// NewTransformer creates a CO2Transformer.
func NewTransformer(logger *slog.Logger) *CO2Transformer {
	return &CO2Transformer{logger: logger}
}

func (t *CO2Transformer) Transform(_ context.Context, raw domain.RawEvent) (domain.Observation, error) {
	obs, err := domain.ParseRawEvent(raw)
	if err != nil {
		return domain.Observation{}, err
	}

	obs, err = domain.EnrichObservation(obs)
	if err != nil {
		return domain.Observation{}, err
	}

	if obs.Quality != domain.QualityGood {
		t.logger.Debug("observation flagged",
			"id", obs.ID, "quality", obs.Quality, "flags", obs.Flags,
			"topic", raw.Topic, "partition", raw.Partition, "offset", raw.Offset)
	}
	return obs, nil
}
