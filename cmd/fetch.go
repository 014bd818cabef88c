package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/altbier/mediatrack/api/models"
	"github.com/altbier/mediatrack/catalog"
	"github.com/altbier/mediatrack/config"
	"github.com/altbier/mediatrack/media"
)

var fetchCmdFlags struct {
	Year int
}

var fetchCmd = &cobra.Command{
	Use:   "fetch <kind> <title>",
	Short: "Fetch a title from its metadata provider and add it to the catalog",
	Long:  `Fetch runs the full pipeline once: searches the provider for the given kind, normalizes the best match and reconciles it against the catalog.`,
	Example: `mediatrack fetch movie "Terminator"
  mediatrack fetch anime "Cowboy Bebop" --year 1998`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(rootCmdPersistentFlags.ConfigFile)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
		setLogLevel(cfg, rootCmdPersistentFlags.LogLevel)

		kind, err := media.ParseKind(args[0])
		if err != nil {
			return err
		}

		var year *int
		if fetchCmdFlags.Year != 0 {
			year = &fetchCmdFlags.Year
		}

		db, err := openDatabase(cfg)
		if err != nil {
			return err
		}
		defer db.Close() //nolint: errcheck

		engine := catalog.New(cfg, db)
		content, created, err := engine.Add(cmd.Context(), kind, args[1], year)
		if err != nil {
			return err
		}
		if !created {
			log.Info("already in catalog", "kind", kind, "title", content.Title, "id", content.ID)
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(models.FromContent(content)); err != nil {
			return fmt.Errorf("failed to encode content: %w", err)
		}
		return nil
	},
}

func init() {
	fetchCmd.Flags().IntVar(&fetchCmdFlags.Year, "year", 0, "Restrict the provider search to a release year")
	rootCmd.AddCommand(fetchCmd)
}
