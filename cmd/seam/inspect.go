package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/seam-lang/seam/internal/cli/config"
	"github.com/seam-lang/seam/internal/cli/report"
	"github.com/seam-lang/seam/knowledge"
	"github.com/seam-lang/seam/model/loader"
)

var (
	inspectJSON    bool
	inspectNoColor bool
	inspectVerbose bool
)

func init() {
	inspectCmd.Flags().BoolVar(&inspectJSON, "json", false, "Output the report in JSON format")
	inspectCmd.Flags().BoolVar(&inspectNoColor, "no-color", false, "Disable colored output")
	inspectCmd.Flags().BoolVar(&inspectVerbose, "verbose", false, "Show detailed progress output")
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <model>",
	Short: "Summarize a model document",
	Long: `Load a model document and report its topology: services, their
resources and operations, identifier bindings, pagination, HTTP dispatch,
and ARN templates.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger(inspectVerbose)
		defer logger.Sync()

		cfg, err := config.Load()
		if err != nil {
			return err
		}

		start := time.Now()
		m, err := loader.Load(args[0])
		if err != nil {
			return fmt.Errorf("failed to load %s: %w", args[0], err)
		}
		logger.Debug("model loaded",
			zap.String("path", args[0]),
			zap.Int("shapes", m.Graph().Len()),
			zap.Duration("elapsed", time.Since(start)))

		cache := knowledge.NewCacheWithSize(cfg.Cache.Size)
		r := report.NewInspectReport(m, cache)

		if inspectJSON || cfg.Output.Format == config.FormatJSON {
			return r.RenderJSON(os.Stdout)
		}
		r.Render(os.Stdout, cfg.Output.Color && !inspectNoColor)
		return nil
	},
}
