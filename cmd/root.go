// Package cmd implements the CLI commands using Cobra.
package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"kwaigrab/internal/config"
	"kwaigrab/internal/httputil"
	"kwaigrab/internal/provider"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Global flags
var (
	flagConfig    string
	flagDebug     bool
	flagLogFormat string
)

// cfg holds the loaded configuration (merged: defaults < config file < env < flags).
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "kwaigrab",
	Short: "Extract and download Kwai videos",
	Long: `kwaigrab finds the direct video URL behind a Kwai link.
Run without a subcommand to start the HTTP API, or use extract/download from the terminal.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
	RunE:              serveRun,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "Path to config file (default: $XDG_CONFIG_HOME/kwaigrab/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&flagDebug, "debug", "x", false, "Debug logging to stderr")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "", "Log format: auto | console | json")

	addServeFlags(rootCmd)

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(downloadCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("kwaigrab", Version)
	},
}

// loadConfig loads and merges configuration, then configures logging.
func loadConfig(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// CLI flags override config file values
	if flagDebug {
		cfg.Debug = true
	}
	if flagLogFormat != "" {
		cfg.LogFormat = flagLogFormat
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = flagPort
	}
	if cmd.Flags().Changed("addr") {
		cfg.Addr = flagAddr
	}

	// Re-validate after flag overrides
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	setupLogging(cfg.LogFormat, cfg.Debug)
	return nil
}

// setupLogging points the global zerolog logger at stderr, human-readable
// on a terminal and JSON otherwise.
func setupLogging(format string, debug bool) {
	zerolog.TimeFieldFormat = time.RFC3339
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	console := false
	switch strings.ToLower(format) {
	case "console":
		console = true
	case "json":
	default:
		console = term.IsTerminal(int(os.Stderr.Fd()))
	}

	if console {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
		return
	}
	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
}

// newClient builds the upstream HTTP client from cfg.
func newClient() *httputil.Client {
	c := httputil.NewClient(cfg.Timeout, cfg.UserAgent)
	c.MaxPageBytes = cfg.MaxPageBytes
	return c
}

func newProvider(client *httputil.Client) *provider.Kwai {
	return provider.NewKwai(client, nil, cfg.AllowedHosts)
}

// debugf logs a message if debug mode is enabled.
func debugf(format string, args ...interface{}) {
	if cfg != nil && cfg.Debug {
		log.Debug().Msgf(format, args...)
	}
}
