// Command teamgen builds the team directory dataset.
// It reads a "person,species" roster, enriches every row with artwork and
// flavor text from the reference API and writes the result as JSON.
//
// Usage:
//
//	teamgen <input-file> [output-file]
//
// With an output file, data.json and its data.js sidecar are written;
// otherwise the JSON goes to stdout. Logs go to stderr.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/teamdex/internal/app"
	"github.com/heartmarshall/teamdex/internal/config"
	"github.com/heartmarshall/teamdex/internal/domain"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "teamgen <input-file> [output-file]",
	Short:         "Enrich a team roster with species artwork and descriptions",
	Args:          usageArgs,
	RunE:          run,
	Version:       app.BuildVersion(),
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.Flags().StringVar(&configPath, "config", "", "path to YAML config (default: CONFIG_PATH or environment)")
}

func usageArgs(cmd *cobra.Command, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("usage: %s", cmd.UseLine())
	}
	return nil
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	logger := app.NewLogger(cfg.Log)

	var output string
	if len(args) == 2 {
		output = args[1]
	}

	err = app.BuildDataset(cmd.Context(), cfg, logger, args[0], output, cmd.OutOrStdout())
	if errors.Is(err, domain.ErrNoRows) {
		return fmt.Errorf("no roster rows found in %s", args[0])
	}
	return err
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "teamgen:", err)
		stop()
		os.Exit(1)
	}
}
