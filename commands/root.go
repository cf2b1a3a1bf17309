package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/pborman/uuid"
	"github.com/spf13/cobra"

	"github.com/BerlinP/chutes-helper/internal/analyzer"
	"github.com/BerlinP/chutes-helper/internal/core/pricing"
	"github.com/BerlinP/chutes-helper/internal/data/fetcher"
	"github.com/BerlinP/chutes-helper/internal/presentation/formatter"
	"github.com/BerlinP/chutes-helper/internal/util"
)

var (
	// Logging related
	debug     bool
	logFormat string

	// Data sources
	baseURL   string
	priceFile string
	timeout   time.Duration

	// Output related
	outputFormat string
	limit        int
	noColor      bool

	rootCmd = &cobra.Command{
		Use:   "chutes-helper [flags]",
		Short: "Rank Chutes.ai chutes by compute units per dollar",
		Long: `chutes-helper ranks the chutes running on Chutes.ai by how much compute they produce
for the GPUs they occupy.

It reads the detailed node listing and the per-chute mining statistics from the Chutes API,
prices every provisioned GPU from a local price table (hourly USD per GPU model) and sorts
chutes by past day compute units per dollar of daily GPU rental cost.

Examples:
  chutes-helper                                  # Rank with gpu-price.json from the working directory
  chutes-helper --prices ~/prices.yaml           # Use a YAML price table
  chutes-helper -o table --limit 20              # Top 20 as a table
  chutes-helper -o prometheus > chutes.prom      # Export for a node_exporter textfile collector`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         runAnalyze,
	}
)

const defaultLogFile = "~/.chutes-helper/logs/app.log"

func init() {
	// Data sources
	rootCmd.Flags().StringVar(&baseURL, "base-url", fetcher.DefaultBaseURL,
		"Chutes API base URL")
	rootCmd.Flags().StringVarP(&priceFile, "prices", "p", pricing.DefaultPriceFile,
		"GPU price table (JSON or YAML) mapping lower-cased GPU model to hourly USD price")
	rootCmd.Flags().DurationVar(&timeout, "timeout", 0,
		"HTTP timeout per request (0 = no timeout)")

	// Output configuration
	rootCmd.Flags().StringVarP(&outputFormat, "output", "o", "text",
		"Output format ("+strings.Join(formatter.Formats, ", ")+")")
	rootCmd.Flags().IntVar(&limit, "limit", 0,
		"Limit result count (0 = unlimited)")
	rootCmd.Flags().BoolVar(&noColor, "no-color", false,
		"Disable colored output")

	// System and debugging
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"Enable debug mode")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"Log file format (text, json)")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	logLevel := "info"
	if debug {
		logLevel = "debug"
	}

	format, err := util.ParseLogFormat(logFormat)
	if err != nil {
		return err
	}

	runID := util.F("run_id", uuid.New())
	logFile := expandPath(defaultLogFile)
	if err := util.InitLogger(logLevel, logFile, format, debug, runID); err != nil {
		// The report does not need the log file
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: logging to file disabled: %v\n", err)
		if err := util.InitLogger(logLevel, "", format, debug, runID); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
	}
	defer util.CloseLogger()

	config := &analyzer.Config{
		BaseURL:      baseURL,
		PriceFile:    expandPath(priceFile),
		OutputFormat: outputFormat,
		Limit:        limit,
		Timeout:      timeout,
		NoColor:      noColor,
		Output:       cmd.OutOrStdout(),
	}

	a, err := analyzer.New(config)
	if err != nil {
		return err
	}
	return a.Run(cmd.Context())
}

// Execute runs the root command, canceling in-flight requests on interrupt.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

// Helper functions

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return absPath
}
