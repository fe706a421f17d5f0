package pokedex

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/heartmarshall/teamdex/internal/adapter/provider/httpclient"
	"github.com/heartmarshall/teamdex/internal/provider"
)

// DefaultURL is the public multilingual pokedex dataset.
const DefaultURL = "https://raw.githubusercontent.com/fanzeyi/pokemon.json/master/pokedex.json"

// Provider loads the species alias reference dataset, from a local file when
// one is configured and over HTTP otherwise.
type Provider struct {
	url    string
	path   string
	client *httpclient.Client
	log    *slog.Logger
}

// NewProvider creates a Provider reading from url (DefaultURL when empty).
func NewProvider(url string, client *httpclient.Client, logger *slog.Logger) *Provider {
	if url == "" {
		url = DefaultURL
	}
	return &Provider{
		url:    url,
		client: client,
		log:    logger.With("adapter", "pokedex"),
	}
}

// NewFileProvider creates a Provider reading the dataset from a local JSON file.
func NewFileProvider(path string, logger *slog.Logger) *Provider {
	return &Provider{
		path: path,
		log:  logger.With("adapter", "pokedex"),
	}
}

// FetchAliases returns every record of the dataset. Records without an id are dropped.
func (p *Provider) FetchAliases(ctx context.Context) ([]provider.AliasRecord, error) {
	var (
		entries []apiEntry
		source  string
	)

	if p.path != "" {
		source = p.path
		data, err := os.ReadFile(p.path)
		if err != nil {
			return nil, fmt.Errorf("pokedex: read %s: %w", p.path, err)
		}
		if err := json.Unmarshal(data, &entries); err != nil {
			return nil, fmt.Errorf("pokedex: decode %s: %w", p.path, err)
		}
	} else {
		source = p.url
		p.log.DebugContext(ctx, "pokedex request", slog.String("url", p.url))
		if err := p.client.GetJSON(ctx, p.url, &entries); err != nil {
			return nil, fmt.Errorf("pokedex: %w", err)
		}
	}

	records := mapEntries(entries)

	p.log.InfoContext(ctx, "alias dataset loaded",
		slog.String("source", source),
		slog.Int("records", len(records)),
	)
	return records, nil
}

func mapEntries(entries []apiEntry) []provider.AliasRecord {
	records := make([]provider.AliasRecord, 0, len(entries))
	for _, e := range entries {
		if e.ID == "" {
			continue
		}
		records = append(records, provider.AliasRecord{
			ID:      e.ID.String(),
			English: e.Name.English,
			French:  e.Name.French,
		})
	}
	return records
}
