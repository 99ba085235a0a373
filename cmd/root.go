package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	cfgpkg "github.com/insight-hub/newsintel-cli/internal/config"
	"github.com/insight-hub/newsintel-cli/internal/registry"
)

var (
	// Global flags
	cfgFile       string
	debug         bool
	flagOutputDir string
	flagWorkers   int

	// Loaded configuration
	cfg *cfgpkg.Global

	// Stage tracing; raised to debug level by --debug.
	log = logrus.New()
)

var rootCmd = &cobra.Command{
	Use:   "newsintel",
	Short: "NewsIntel CLI: turn annotated news coverage into KPI metrics, alerts, and insights",
	Long: `NewsIntel is a batch analytics CLI. It consumes news articles already
annotated with sentiment and per-KPI relevance scores and derives KPI
time-series metrics with trend classification, anomaly alerts, and
narrative insights, written as four JSON documents.`,
}

// Execute is the entry point called by main.main()
func Execute() {
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.newsintel/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
	rootCmd.PersistentFlags().StringVarP(&flagOutputDir, "output", "o", "", "output directory for the generated documents (overrides config)")
	rootCmd.PersistentFlags().IntVar(&flagWorkers, "workers", 0, "per-KPI aggregation workers (overrides config)")
}

func loadConfig() {
	log.SetOutput(os.Stderr)
	if debug {
		log.SetLevel(logrus.DebugLevel)
	}

	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: allow running commands that don't need config
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		return
	}
	cfg = c
	applyFlagOverrides()
}

// ensureConfig loads configuration on demand for commands invoked without
// the cobra initializer having run (e.g. in tests).
func ensureConfig() error {
	if cfg != nil {
		return nil
	}
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		return err
	}
	cfg = c
	applyFlagOverrides()
	return nil
}

func applyFlagOverrides() {
	f := rootCmd.PersistentFlags()
	if f.Changed("output") && flagOutputDir != "" {
		cfg.OutputDir = flagOutputDir
	}
	if f.Changed("workers") && flagWorkers > 0 {
		cfg.Workers = flagWorkers
	}
}

// loadRegistry resolves the KPI catalog: the configured YAML file if set,
// otherwise the built-in catalog.
func loadRegistry() (*registry.Registry, error) {
	if cfg != nil && cfg.RegistryFile != "" {
		return registry.LoadFile(cfg.RegistryFile)
	}
	return registry.Default(), nil
}
