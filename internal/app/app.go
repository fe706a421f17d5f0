package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/heartmarshall/teamdex/internal/adapter/export"
	"github.com/heartmarshall/teamdex/internal/adapter/provider/httpclient"
	"github.com/heartmarshall/teamdex/internal/adapter/provider/pokeapi"
	"github.com/heartmarshall/teamdex/internal/adapter/provider/pokedex"
	"github.com/heartmarshall/teamdex/internal/config"
	"github.com/heartmarshall/teamdex/internal/render"
	"github.com/heartmarshall/teamdex/internal/rosterfile"
	"github.com/heartmarshall/teamdex/internal/service/alias"
	"github.com/heartmarshall/teamdex/internal/service/roster"
	"github.com/heartmarshall/teamdex/pkg/ctxutil"
)

// BuildDataset reads the roster at inputPath, enriches every row and writes
// the dataset to outputPath (plus its sidecar), or to stdout when outputPath is empty.
func BuildDataset(ctx context.Context, cfg *config.Config, logger *slog.Logger, inputPath, outputPath string, stdout io.Writer) error {
	ctx, runID := ctxutil.NewRun(ctx)
	log := logger.With("run_id", runID.String())

	log.InfoContext(ctx, "building team dataset",
		slog.String("version", BuildVersion()),
		slog.String("input", inputPath),
	)

	f, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	rows, err := rosterfile.ParseRows(f, log)
	if err != nil {
		return fmt.Errorf("parse %s: %w", inputPath, err)
	}
	log.InfoContext(ctx, "roster loaded", slog.Int("rows", len(rows)))

	client := newHTTPClient(cfg.HTTP)

	var aliasSource *pokedex.Provider
	if cfg.Source.AliasPath != "" {
		aliasSource = pokedex.NewFileProvider(cfg.Source.AliasPath, log)
	} else {
		aliasSource = pokedex.NewProvider(cfg.Source.AliasURL, client, log)
	}
	metadata := pokeapi.NewProvider(pokeapi.Config{
		BaseURL:       cfg.Source.APIBaseURL,
		PreferredLang: cfg.Language.Preferred,
		FallbackLang:  cfg.Language.Fallback,
	}, client, log)

	svc := roster.NewService(log, alias.NewService(log, aliasSource), metadata)

	dataset, _, err := svc.Assemble(ctx, rows)
	if err != nil {
		return fmt.Errorf("assemble roster: %w", err)
	}

	if outputPath == "" {
		encoded, err := export.Encode(dataset)
		if err != nil {
			return err
		}
		if _, err := stdout.Write(encoded); err != nil {
			return fmt.Errorf("write stdout: %w", err)
		}
		return nil
	}

	sidecarPath, err := export.Write(dataset, outputPath, cfg.Output.SidecarVariable)
	if err != nil {
		return err
	}
	log.InfoContext(ctx, "dataset written",
		slog.String("json", outputPath),
		slog.String("sidecar", sidecarPath),
		slog.Int("records", len(dataset)),
	)
	return nil
}

// RenderPage loads the dataset from location using the configured source mode
// and writes the HTML page to outputPath.
func RenderPage(ctx context.Context, cfg *config.Config, logger *slog.Logger, location, outputPath string) error {
	ctx, runID := ctxutil.NewRun(ctx)
	log := logger.With("run_id", runID.String())

	src, err := render.NewSource(cfg.Render.SourceMode, location, newHTTPClient(cfg.HTTP))
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", outputPath, err)
	}

	cards, err := render.Page(ctx, out, src, render.Options{Title: cfg.Render.Title}, log)
	if closeErr := out.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("close %s: %w", outputPath, closeErr)
	}
	if err != nil {
		return err
	}

	log.InfoContext(ctx, "page rendered",
		slog.String("source", src.String()),
		slog.String("output", outputPath),
		slog.Int("cards", cards),
	)
	return nil
}

func newHTTPClient(cfg config.HTTPConfig) *httpclient.Client {
	return httpclient.New(httpclient.Options{
		Timeout:      cfg.Timeout,
		MaxRedirects: cfg.MaxRedirects,
		UserAgent:    userAgent(cfg.UserAgent),
	})
}
