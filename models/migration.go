package models

import (
	"gorm.io/gorm"
)

// AutoMigrate creates/updates the schema for every entity in dependency order.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Tenant{},
		&BuildProject{},
		&MaterialLineItem{},
		&ScheduleMilestone{},
		&AuditLog{},
	)
}
