package migrate

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"fieldpulse/internal/infrastructure/config"
	"fieldpulse/internal/infrastructure/database"
	"fieldpulse/internal/infrastructure/migration"
	"fieldpulse/internal/shared/logger"
)

var env string

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply database schema migrations",
		Long:  `Synchronize the database schema with the current model definitions and exit.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger, cfg.Server.Mode); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	log := logger.NewLogger()

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	if err := migration.Run(database.Get(), log); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	log.Infow("migrations applied", "environment", env)
	return nil
}
