package migration

import (
	"demopilot/internal/infrastructure/persistence/models"
)

func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.SubscriptionModel{},
	}
}
