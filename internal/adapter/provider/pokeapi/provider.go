package pokeapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/teamdex/internal/adapter/provider/httpclient"
	"github.com/heartmarshall/teamdex/internal/domain"
	"github.com/heartmarshall/teamdex/internal/provider"
)

const (
	// DefaultBaseURL is the public PokeAPI v2 root.
	DefaultBaseURL = "https://pokeapi.co/api/v2"

	defaultPreferredLang = "fr"
	defaultFallbackLang  = "en"
)

// Config configures a Provider.
type Config struct {
	BaseURL       string
	PreferredLang string
	FallbackLang  string
}

// Provider fetches artwork and flavor text from PokeAPI.
type Provider struct {
	baseURL       string
	preferredLang string
	fallbackLang  string
	client        *httpclient.Client
	log           *slog.Logger
}

// NewProvider creates a Provider. Empty Config fields fall back to the PokeAPI defaults.
func NewProvider(cfg Config, client *httpclient.Client, logger *slog.Logger) *Provider {
	p := &Provider{
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		preferredLang: cfg.PreferredLang,
		fallbackLang:  cfg.FallbackLang,
		client:        client,
		log:           logger.With("adapter", "pokeapi"),
	}
	if p.baseURL == "" {
		p.baseURL = DefaultBaseURL
	}
	if p.preferredLang == "" {
		p.preferredLang = defaultPreferredLang
	}
	if p.fallbackLang == "" {
		p.fallbackLang = defaultFallbackLang
	}
	return p
}

// FetchMetadata requests the pokemon and species records for id concurrently.
// Both requests must succeed. A missing artwork yields a nil Image, not an error.
func (p *Provider) FetchMetadata(ctx context.Context, id string) (*provider.SpeciesMetadata, error) {
	escaped := url.PathEscape(id)

	var (
		pokemon pokemonResponse
		species speciesResponse
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := p.client.GetJSON(gctx, p.baseURL+"/pokemon/"+escaped, &pokemon); err != nil {
			return fmt.Errorf("pokemon %s: %w", id, err)
		}
		return nil
	})
	g.Go(func() error {
		if err := p.client.GetJSON(gctx, p.baseURL+"/pokemon-species/"+escaped, &species); err != nil {
			return fmt.Errorf("species %s: %w", id, err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("pokeapi: %w", err)
	}

	meta := &provider.SpeciesMetadata{
		Image:       pickImage(pokemon.Sprites),
		Description: domain.SanitizeFlavorText(p.pickFlavorText(species.FlavorTextEntries)),
	}

	p.log.DebugContext(ctx, "pokeapi response",
		slog.String("id", id),
		slog.Bool("has_image", meta.Image != nil),
		slog.Int("flavor_entries", len(species.FlavorTextEntries)),
	)

	return meta, nil
}

// pickImage prefers the official artwork, then the basic sprite.
func pickImage(s apiSprites) *string {
	if a := s.Other.OfficialArtwork.FrontDefault; a != nil && *a != "" {
		return a
	}
	if s.FrontDefault != nil && *s.FrontDefault != "" {
		return s.FrontDefault
	}
	return nil
}

// pickFlavorText returns the first entry in the preferred language, then the
// fallback language, then the first entry of any language.
func (p *Provider) pickFlavorText(entries []apiFlavorText) string {
	if len(entries) == 0 {
		return ""
	}
	for _, lang := range []string{p.preferredLang, p.fallbackLang} {
		for _, e := range entries {
			if e.Language.Name == lang {
				return e.FlavorText
			}
		}
	}
	return entries[0].FlavorText
}
