package main

import (
	"fmt"

	migrate "github.com/rubenv/sql-migrate"
	"github.com/spf13/cobra"

	"github.com/johnquangdev/meeting-minutes/internal/infrastructure/database"
	"github.com/johnquangdev/meeting-minutes/pkg/config"
)

var (
	migrationsDir string
	migrateMax    int
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply or roll back database migrations",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply pending migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runMigrate(cmd, migrate.Up, migrateMax)
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back migrations (one by default)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		limit := migrateMax
		if limit == 0 {
			limit = 1
		}
		return runMigrate(cmd, migrate.Down, limit)
	},
}

func init() {
	migrateCmd.PersistentFlags().StringVar(&migrationsDir, "dir", database.MigrationsDir, "directory holding sql-migrate files")
	migrateCmd.PersistentFlags().IntVar(&migrateMax, "max", 0, "maximum number of migrations to run (0 = all for up, 1 for down)")
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd)
}

func runMigrate(cmd *cobra.Command, direction migrate.MigrationDirection, limit int) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.CloseDB(db)

	n, err := database.Migrate(db, migrationsDir, direction, limit)
	if err != nil {
		return err
	}

	verb := "Applied"
	if direction == migrate.Down {
		verb = "Rolled back"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✅ %s %d migration(s)\n", verb, n)
	return nil
}
