package migrate

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"demopilot/internal/infrastructure/config"
	"demopilot/internal/infrastructure/database"
	"demopilot/internal/infrastructure/migration"
	"demopilot/internal/shared/logger"
)

var (
	env          string
	strategyName string
	steps        int
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
		Long:  `Manage database migrations including running migrations, rolling back, and checking status.`,
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.PersistentFlags().StringVarP(&strategyName, "strategy", "s", "golang-migrate", "Migration strategy (golang-migrate, goose)")

	cmd.AddCommand(
		newUpCommand(),
		newDownCommand(),
		newStatusCommand(),
	)

	return cmd
}

func newUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Run all pending migrations",
		RunE:  runUp,
	}
}

func newDownCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Rollback migrations",
		RunE:  runDown,
	}

	cmd.Flags().IntVarP(&steps, "steps", "n", 1, "Number of migrations to rollback")

	return cmd
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE:  runStatus,
	}
}

func initEnv() (string, logger.Interface, error) {
	cfg, err := config.Load(env)
	if err != nil {
		return "", nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger, cfg.Server.Mode); err != nil {
		return "", nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	log := logger.NewLogger()

	if err := database.Init(&cfg.Database); err != nil {
		return "", nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	scriptsPath, err := filepath.Abs(migration.DefaultScriptsPath)
	if err != nil {
		return "", nil, fmt.Errorf("failed to get scripts path: %w", err)
	}

	return scriptsPath, log, nil
}

func newStrategy(scriptsPath string) (migration.Strategy, error) {
	switch strategyName {
	case "golang-migrate":
		return migration.NewGolangMigrateStrategy(scriptsPath), nil
	case "goose":
		return migration.NewGooseStrategy(scriptsPath), nil
	default:
		return nil, fmt.Errorf("unknown migration strategy %q (use golang-migrate or goose)", strategyName)
	}
}

func runUp(cmd *cobra.Command, args []string) error {
	scriptsPath, log, err := initEnv()
	if err != nil {
		return err
	}
	defer database.Close()

	strategy, err := newStrategy(scriptsPath)
	if err != nil {
		return err
	}

	log.Infow("running up migrations", "environment", env, "strategy", strategy.GetName())

	if err := strategy.Migrate(database.Get()); err != nil {
		log.Errorw("migration failed", "error", err)
		return fmt.Errorf("migration failed: %w", err)
	}

	log.Infow("migrations completed successfully")
	return nil
}

func runDown(cmd *cobra.Command, args []string) error {
	scriptsPath, log, err := initEnv()
	if err != nil {
		return err
	}
	defer database.Close()

	strategy, err := newStrategy(scriptsPath)
	if err != nil {
		return err
	}

	log.Infow("running down migrations",
		"environment", env,
		"strategy", strategy.GetName(),
		"steps", steps)

	switch s := strategy.(type) {
	case *migration.GolangMigrateStrategy:
		err = s.MigrateDown(database.Get(), steps)
	case *migration.GooseStrategy:
		err = s.Down(database.Get(), steps)
	default:
		return fmt.Errorf("strategy %s does not support down migrations", strategy.GetName())
	}
	if err != nil {
		log.Errorw("down migration failed", "error", err)
		return fmt.Errorf("down migration failed: %w", err)
	}

	log.Infow("down migration completed successfully")
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	scriptsPath, log, err := initEnv()
	if err != nil {
		return err
	}
	defer database.Close()

	strategy, err := newStrategy(scriptsPath)
	if err != nil {
		return err
	}

	switch s := strategy.(type) {
	case *migration.GolangMigrateStrategy:
		version, dirty, err := s.GetVersion(database.Get())
		if err != nil {
			log.Errorw("failed to get migration version", "error", err)
			return fmt.Errorf("failed to get migration version: %w", err)
		}

		fmt.Printf("\nMigration Status:\n")
		fmt.Printf("  Environment:     %s\n", env)
		fmt.Printf("  Current Version: %d\n", version)
		fmt.Printf("  Dirty:           %t\n", dirty)
	case *migration.GooseStrategy:
		if err := s.Status(database.Get()); err != nil {
			log.Errorw("failed to get migration status", "error", err)
			return fmt.Errorf("failed to get migration status: %w", err)
		}
	default:
		return fmt.Errorf("strategy %s does not support status", strategy.GetName())
	}

	return nil
}
