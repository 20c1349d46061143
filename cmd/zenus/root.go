package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/zenus"
	"github.com/aretw0/zenus/internal/config"
	"github.com/aretw0/zenus/pkg/core"
)

var (
	configFile string
	remoteURL  string
	authToken  string
	dataPath   string
	verbose    bool

	// cfg is resolved in PersistentPreRun from defaults, file, env and flags.
	cfg *config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "zenus",
	Short: "Ordered text notes on local disk or a remote zenus server",
	Long: `zenus stores small ordered notes as Markdown files with a metadata header.
The same commands work against the local data directory or, with --remote,
against another machine running 'zenus serve'.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		loaded, err := config.Load(configFile)
		if err != nil {
			fatal("Failed to load config", err)
		}

		flags := cmd.Flags()
		if flags.Changed("remote") {
			loaded.Remote = remoteURL
		}
		if flags.Changed("auth") {
			loaded.Auth = authToken
		}
		if flags.Changed("path") {
			loaded.Path = dataPath
		}
		if flags.Changed("verbose") {
			loaded.Verbose = verbose
		}
		cfg = loaded

		level := slog.LevelInfo
		if cfg.Verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default <user config dir>/zenus/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&remoteURL, "remote", "", "Base URL of a zenus server (e.g. http://host:8888)")
	rootCmd.PersistentFlags().StringVar(&authToken, "auth", "", "Authorization token, sent to or required by the server")
	rootCmd.PersistentFlags().StringVar(&dataPath, "path", "", "Local storage root (default <user data dir>/zenus)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
}

// openService builds the service for client commands from the resolved config.
func openService() *core.Service {
	if err := cfg.Validate(false); err != nil {
		fatal("Invalid configuration", err)
	}

	service, err := zenus.New(
		zenus.WithPath(cfg.Path),
		zenus.WithRemote(cfg.Remote),
		zenus.WithAuth(cfg.Auth),
		zenus.WithReadOnly(cfg.ReadOnly),
		zenus.WithLogger(slog.Default()),
	)
	if err != nil {
		fatal("Failed to initialize zenus", err)
	}
	return service
}
