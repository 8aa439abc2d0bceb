package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ormasoftchile/figmatest/pkg/config"
	"github.com/ormasoftchile/figmatest/pkg/logging"
	"github.com/ormasoftchile/figmatest/pkg/service"
)

var (
	version = "dev"
	commit  = "unknown"
)

var (
	configPath string
	envFile    string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "figmatest",
	Short: "Generate UI test steps from Figma design files",
	Long: `figmatest fetches a Figma design file, extracts its interactive elements and
turns them into comma-separated UI test steps for a mobile test runner.

Steps are produced in one of three modes: fixed (a known-good script),
adaptive (built from the extracted elements) or ai (generated by Mistral,
format-enforced, falling back to adaptive).`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// setup loads configuration and builds the process logger before any
// subcommand runs.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(config.Options{Path: configPath, EnvFile: envFile})
	if err != nil {
		return err
	}

	level := cfg.Log.Level
	if verbose {
		level = "debug"
	}
	logger, err = logging.New(logging.Options{Level: level, Development: cfg.Log.Development})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	return nil
}

func newService() *service.Service {
	return service.FromConfig(cfg, logger)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("figmatest %s (build: %s)\n", version, commit)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Dotenv file to load (missing file is ignored)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(shellCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}
