package cmd

import (
	"fmt"

	"scrapper/core/config"
	"scrapper/core/database"
	"scrapper/core/logger"
	"scrapper/feature/scrapping/integrate"
	"scrapper/feature/scrapping/models"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the pipeline tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		defer logg.Sync()

		db, err := database.Connect(cfg.Database)
		if err != nil {
			return fmt.Errorf("database connection required: %w", err)
		}

		if err := integrate.Migrate(db); err != nil {
			return err
		}
		logg.Info("Pipeline tables migrated", zap.Int("tables", len(models.AllModels())))
		pterm.Success.Printf("Migrated %d tables\n", len(models.AllModels()))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(migrateCmd)
}
