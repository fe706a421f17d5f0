package alias

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/heartmarshall/teamdex/internal/domain"
	"github.com/heartmarshall/teamdex/internal/provider"
)

type aliasProvider interface {
	FetchAliases(ctx context.Context) ([]provider.AliasRecord, error)
}

const tableKey = "aliases"

// Service resolves free-text species names to canonical identifiers.
// The alias table is loaded lazily, once per Service.
type Service struct {
	log      *slog.Logger
	provider aliasProvider

	group singleflight.Group

	mu     sync.Mutex
	table  map[string]string
	loaded bool
}

// NewService creates a new alias Service.
func NewService(logger *slog.Logger, p aliasProvider) *Service {
	return &Service{
		log:      logger.With("service", "alias"),
		provider: p,
	}
}

// Resolve maps raw to a canonical identifier. Names missing from the alias
// table resolve to their normalized slug, or to raw itself when the slug is empty.
func (s *Service) Resolve(ctx context.Context, raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", domain.ErrEmptyName
	}

	table, err := s.aliasTable(ctx)
	if err != nil {
		return "", err
	}

	key := domain.Normalize(raw)
	if id, ok := table[key]; ok {
		return id, nil
	}
	if key == "" {
		return raw, nil
	}
	return key, nil
}

// aliasTable returns the cached table, loading it on first use. Concurrent
// first callers share a single fetch. A failed fetch degrades to an empty
// table that is cached like a successful one.
func (s *Service) aliasTable(ctx context.Context) (map[string]string, error) {
	if table, ok := s.cached(); ok {
		return table, nil
	}

	ch := s.group.DoChan(tableKey, func() (any, error) {
		if table, ok := s.cached(); ok {
			return table, nil
		}
		table := s.load(context.WithoutCancel(ctx))

		s.mu.Lock()
		s.table = table
		s.loaded = true
		s.mu.Unlock()
		return table, nil
	})

	select {
	case res := <-ch:
		return res.Val.(map[string]string), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *Service) cached() (map[string]string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.table, s.loaded
}

func (s *Service) load(ctx context.Context) map[string]string {
	records, err := s.provider.FetchAliases(ctx)
	if err != nil {
		s.log.WarnContext(ctx, "alias dataset unavailable, continuing with empty alias table",
			slog.String("error", err.Error()),
		)
		return map[string]string{}
	}

	table := BuildTable(records)
	s.log.InfoContext(ctx, "alias table built",
		slog.Int("records", len(records)),
		slog.Int("keys", len(table)),
	)
	return table
}

// BuildTable indexes each record by its id, normalized English name,
// normalized French name and English slug. Earlier records win on key collisions.
func BuildTable(records []provider.AliasRecord) map[string]string {
	table := make(map[string]string, len(records)*3)
	for _, r := range records {
		if r.ID == "" {
			continue
		}
		for _, key := range []string{
			r.ID,
			domain.Normalize(r.English),
			domain.Normalize(r.French),
			slugify(r.English),
		} {
			if key == "" {
				continue
			}
			if _, exists := table[key]; !exists {
				table[key] = r.ID
			}
		}
	}
	return table
}

// slugify drops apostrophes and periods before normalizing, which is how the
// reference API spells names like "farfetchd" and "mr-mime".
func slugify(name string) string {
	name = strings.NewReplacer("'", "", "’", "", ".", "").Replace(name)
	return domain.Normalize(name)
}
