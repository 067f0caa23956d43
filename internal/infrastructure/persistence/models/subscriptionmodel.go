package models

import (
	"time"

	"gorm.io/datatypes"
)

// SubscriptionModel represents the database persistence model for subscriptions
// This is the anti-corruption layer between domain and database
type SubscriptionModel struct {
	ID                     uint       `gorm:"primarykey"`
	UserID                 string     `gorm:"uniqueIndex;not null;size:64;comment:identity provider user ID"`
	PlanType               string     `gorm:"not null;size:20;default:free"`
	Status                 string     `gorm:"not null;size:20;index:idx_status"`
	CurrentPeriodStart     *time.Time
	CurrentPeriodEnd       *time.Time `gorm:"index:idx_period_end"`
	CancelAtPeriodEnd      bool       `gorm:"not null;default:false"`
	BillingCustomerRef     *string    `gorm:"index:idx_customer_ref;size:255"`
	BillingSubscriptionRef *string    `gorm:"size:255"`
	BillingPriceRef        *string    `gorm:"size:255"`
	Metadata               datatypes.JSON
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// TableName specifies the table name for GORM
func (SubscriptionModel) TableName() string {
	return "subscriptions"
}
