package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/seam-lang/seam/diff"
	"github.com/seam-lang/seam/internal/cli/config"
	"github.com/seam-lang/seam/internal/cli/report"
	"github.com/seam-lang/seam/model/loader"
)

var (
	diffJSON    bool
	diffNoColor bool
	diffVerbose bool
)

func init() {
	diffCmd.Flags().BoolVar(&diffJSON, "json", false, "Output the report in JSON format")
	diffCmd.Flags().BoolVar(&diffNoColor, "no-color", false, "Disable colored output")
	diffCmd.Flags().BoolVar(&diffVerbose, "verbose", false, "Show detailed progress output")
}

var diffCmd = &cobra.Command{
	Use:   "diff <old-model> <new-model>",
	Short: "Compare two model documents",
	Long: `Load two model documents and report the structural differences between
them: added, removed, and changed shapes and metadata. Exits with status 1
when differences are found.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger(diffVerbose)
		defer logger.Sync()

		cfg, err := config.Load()
		if err != nil {
			return err
		}

		start := time.Now()
		oldModel, err := loader.Load(args[0])
		if err != nil {
			return fmt.Errorf("failed to load %s: %w", args[0], err)
		}
		newModel, err := loader.Load(args[1])
		if err != nil {
			return fmt.Errorf("failed to load %s: %w", args[1], err)
		}
		logger.Debug("models loaded",
			zap.String("old", args[0]),
			zap.String("new", args[1]),
			zap.Duration("elapsed", time.Since(start)))

		r := report.NewDiffReport(diff.Detect(oldModel, newModel))

		if diffJSON || cfg.Output.Format == config.FormatJSON {
			if err := r.RenderJSON(os.Stdout); err != nil {
				return err
			}
		} else {
			r.Render(os.Stdout, cfg.Output.Color && !diffNoColor)
		}

		if !r.Empty() {
			os.Exit(1)
		}
		return nil
	},
}

// newLogger returns a development logger when verbose output is requested
// and a no-op logger otherwise.
func newLogger(verbose bool) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
