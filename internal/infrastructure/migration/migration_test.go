package migration

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewManager_StrategySelection(t *testing.T) {
	tests := []struct {
		name         string
		mode         string
		strategyName string
		want         string
	}{
		{"explicit goose", "debug", "goose", "goose"},
		{"explicit golang-migrate", "debug", "golang-migrate", "golang_migrate"},
		{"explicit gorm in release", "release", "gorm", "gorm_auto_migrate"},
		{"release defaults to versioned scripts", "release", "", "golang_migrate"},
		{"production defaults to versioned scripts", "production", "", "golang_migrate"},
		{"debug defaults to auto-migrate", "debug", "", "gorm_auto_migrate"},
		{"unknown name falls back to mode", "debug", "flyway", "gorm_auto_migrate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewManager(tt.mode, tt.strategyName)
			assert.Equal(t, tt.want, m.GetStrategy().GetName())
		})
	}
}
