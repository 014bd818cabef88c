// Package cmd contains the command line interface of mediatrack.
package cmd

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/altbier/mediatrack/api"
	"github.com/altbier/mediatrack/catalog"
	"github.com/altbier/mediatrack/config"
	"github.com/altbier/mediatrack/database"
)

var rootCmdPersistentFlags struct {
	ConfigFile string
	LogLevel   string
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&rootCmdPersistentFlags.ConfigFile, "config", "c", "", "Path to config file (default: search for config.yml in current dir, ~/.mediatrack, /etc/mediatrack)")
	rootCmd.PersistentFlags().StringVar(&rootCmdPersistentFlags.LogLevel, "log-level", "", "Log level (debug, info, warn, error) - overrides config file setting")
}

var rootCmd = &cobra.Command{
	Use:   "mediatrack",
	Short: "MediaTrack is a personal media-tracking backend",
	Long:  `MediaTrack lets users search for anime, games, movies and series via third-party metadata APIs, keeps a normalized content catalog and manages per-user queues.`,
	Example: `mediatrack --config config.yml
  mediatrack -c /path/to/config.yml --log-level debug`,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	RunE: root,
}

func root(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(rootCmdPersistentFlags.ConfigFile)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	setLogLevel(cfg, rootCmdPersistentFlags.LogLevel)

	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer db.Close() //nolint: errcheck

	engine := catalog.New(cfg, db)

	server, err := api.New(cfg, db, engine)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return server.Run(ctx)
}

func openDatabase(cfg *config.Config) (*database.Client, error) {
	if err := os.MkdirAll(cfg.DatabasePath, 0o755); err != nil {
		return nil, err
	}
	return database.New(filepath.Join(cfg.DatabasePath, "mediatrack.db"))
}

func setLogLevel(cfg *config.Config, override string) {
	level := cfg.LogLevel
	if override != "" {
		level = override
	}
	parsed, err := log.ParseLevel(level)
	if err != nil {
		log.Warn("unknown log level, using info", "level", level)
		parsed = log.InfoLevel
	}
	log.SetLevel(parsed)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}
