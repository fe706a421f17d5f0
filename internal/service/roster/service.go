package roster

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/teamdex/internal/domain"
	"github.com/heartmarshall/teamdex/internal/provider"
)

type aliasResolver interface {
	Resolve(ctx context.Context, raw string) (string, error)
}

type metadataProvider interface {
	FetchMetadata(ctx context.Context, id string) (*provider.SpeciesMetadata, error)
}

// AssembleResult holds assembly statistics.
type AssembleResult struct {
	Total   int
	Written int
	Skipped int
}

// Service assembles roster rows into team records.
type Service struct {
	log      *slog.Logger
	resolver aliasResolver
	metadata metadataProvider
}

// NewService creates a new roster Service.
func NewService(logger *slog.Logger, resolver aliasResolver, metadata metadataProvider) *Service {
	return &Service{
		log:      logger.With("service", "roster"),
		resolver: resolver,
		metadata: metadata,
	}
}

// Assemble processes rows one at a time, in order. A row whose resolution or
// metadata fetch fails is logged and left out of the dataset. Cancelling ctx
// stops the run and returns the context error.
func (s *Service) Assemble(ctx context.Context, rows []domain.Row) (domain.Dataset, AssembleResult, error) {
	result := AssembleResult{Total: len(rows)}
	dataset := make(domain.Dataset, 0, len(rows))

	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return dataset, result, err
		}

		record, err := s.assembleRow(ctx, row)
		if err != nil {
			if ctx.Err() != nil {
				return dataset, result, ctx.Err()
			}
			s.log.ErrorContext(ctx, "skipping row",
				slog.Int("line", row.Line),
				slog.String("person", row.Person),
				slog.String("species", row.Species),
				slog.String("error", err.Error()),
			)
			result.Skipped++
			continue
		}

		dataset = append(dataset, record)
		result.Written++
	}

	s.log.InfoContext(ctx, "roster assembled",
		slog.Int("total", result.Total),
		slog.Int("written", result.Written),
		slog.Int("skipped", result.Skipped),
	)
	return dataset, result, nil
}

func (s *Service) assembleRow(ctx context.Context, row domain.Row) (domain.TeamRecord, error) {
	id, err := s.resolver.Resolve(ctx, row.Species)
	if err != nil {
		return domain.TeamRecord{}, fmt.Errorf("resolve %q: %w", row.Species, err)
	}

	meta, err := s.metadata.FetchMetadata(ctx, id)
	if err != nil {
		return domain.TeamRecord{}, fmt.Errorf("fetch metadata for %q: %w", row.Species, err)
	}

	if meta.Image == nil {
		s.log.WarnContext(ctx, "no artwork found",
			slog.String("species", row.Species),
			slog.String("id", id),
		)
	}

	return domain.TeamRecord{
		Name:        row.Person,
		Pokemon:     domain.Capitalize(row.Species),
		Image:       meta.Image,
		Description: meta.Description,
	}, nil
}
