// Command teamrender renders the static team directory page from a dataset.
//
// Usage:
//
//	teamrender [--source-mode file|http] <data-location> <output.html>
//
// In file mode the location is data.json or its data.js sidecar on disk.
// In http mode it is the page URL (data.json is fetched next to it) or the
// data.json URL itself. Unreachable data renders an empty page.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/teamdex/internal/app"
	"github.com/heartmarshall/teamdex/internal/config"
)

var (
	configPath string
	sourceMode string
	title      string
)

var rootCmd = &cobra.Command{
	Use:           "teamrender <data-location> <output.html>",
	Short:         "Render the team directory page",
	Args:          cobra.ExactArgs(2),
	RunE:          run,
	Version:       app.BuildVersion(),
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.Flags().StringVar(&configPath, "config", "", "path to YAML config (default: CONFIG_PATH or environment)")
	rootCmd.Flags().StringVar(&sourceMode, "source-mode", "", "where the page reads data from: file or http (default from config)")
	rootCmd.Flags().StringVar(&title, "title", "", "page title (default from config)")
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if sourceMode != "" {
		cfg.Render.SourceMode = sourceMode
	}
	if title != "" {
		cfg.Render.Title = title
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: validate: %w", err)
	}

	logger := app.NewLogger(cfg.Log)
	return app.RenderPage(cmd.Context(), cfg, logger, args[0], args[1])
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "teamrender:", err)
		stop()
		os.Exit(1)
	}
}
