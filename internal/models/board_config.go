package models

import "time"

// BoardConfig is the singleton settings row (always id = 1). AllowedRoleID is nil
// until the first /setrole.
type BoardConfig struct {
	ID            int       `gorm:"primaryKey"`
	AllowedRoleID *string   `gorm:"type:text"`
	UpdatedAt     time.Time `gorm:"not null"`
}

func (BoardConfig) TableName() string { return "config" }

const ConfigRowID = 1
