package migration

import (
	"fmt"
	"path/filepath"
	"strings"

	"gorm.io/gorm"

	"demopilot/internal/shared/logger"
)

// DefaultScriptsPath is where the versioned SQL migration scripts live.
const DefaultScriptsPath = "./internal/infrastructure/migration/scripts"

// Manager handles database migrations with different strategies
type Manager struct {
	strategy Strategy
	logger   logger.Interface
}

// NewManager creates a migration manager. An explicit strategy name from
// config ("goose", "golang-migrate", "gorm") wins; otherwise the server mode
// decides: auto-migrate in debug, versioned SQL scripts in release.
func NewManager(mode, strategyName string) *Manager {
	return &Manager{
		strategy: selectStrategy(mode, strategyName),
		logger:   logger.NewLogger().With("component", "migration.manager"),
	}
}

func selectStrategy(mode, strategyName string) Strategy {
	scriptsPath, _ := filepath.Abs(DefaultScriptsPath)

	switch strings.ToLower(strategyName) {
	case "goose":
		return NewGooseStrategy(scriptsPath)
	case "golang-migrate":
		return NewGolangMigrateStrategy(scriptsPath)
	case "gorm":
		return NewGormAutoMigrateStrategy()
	}

	switch strings.ToLower(mode) {
	case "release", "production":
		return NewGolangMigrateStrategy(scriptsPath)
	default:
		return NewGormAutoMigrateStrategy()
	}
}

// NewManagerWithStrategy creates a new migration manager with a specific strategy
func NewManagerWithStrategy(strategy Strategy) *Manager {
	return &Manager{
		strategy: strategy,
		logger:   logger.NewLogger().With("component", "migration.manager"),
	}
}

// Migrate executes the configured migration strategy
func (m *Manager) Migrate(db *gorm.DB, models ...interface{}) error {
	m.logger.Infow("starting database migration",
		"strategy", m.strategy.GetName(),
		"models_count", len(models))

	if err := m.strategy.Migrate(db, models...); err != nil {
		m.logger.Errorw("migration failed",
			"strategy", m.strategy.GetName(),
			"error", err)
		return fmt.Errorf("migration failed with strategy %s: %w", m.strategy.GetName(), err)
	}

	m.logger.Infow("database migration completed successfully",
		"strategy", m.strategy.GetName())

	return nil
}

// GetStrategy returns the current migration strategy
func (m *Manager) GetStrategy() Strategy {
	return m.strategy
}

// SetStrategy sets a new migration strategy
func (m *Manager) SetStrategy(strategy Strategy) {
	m.logger.Infow("changing migration strategy",
		"from", m.strategy.GetName(),
		"to", strategy.GetName())
	m.strategy = strategy
}
