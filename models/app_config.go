// models/app_config.go
package models

import "time"

const AppConfigTable = "erb_app_config"

// AppConfig is a singleton row (ID is always 1). ActiveYear only moves
// forward: the year rollover is the sole mutation after initialization.
type AppConfig struct {
	ID         int       `gorm:"primaryKey" json:"-"`
	ActiveYear int       `gorm:"not null" json:"activeYear"`
	SetupDone  bool      `gorm:"not null;default:false" json:"setupDone"`
	UpdatedAt  time.Time `json:"-"`
}

func (AppConfig) TableName() string { return AppConfigTable }

const AppConfigID = 1

// DefaultAppConfig is what first access creates when no row exists yet.
func DefaultAppConfig(now time.Time) *AppConfig {
	return &AppConfig{ID: AppConfigID, ActiveYear: now.Year(), SetupDone: false}
}
