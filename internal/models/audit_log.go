package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	ActionTopicCreate   = "TOPIC_CREATE"
	ActionTopicRemove   = "TOPIC_REMOVE"
	ActionConfigSetRole = "CONFIG_SET_ROLE"
)

// AuditLog is append-only; rows are never updated or deleted.
type AuditLog struct {
	ID          uint           `gorm:"primaryKey"`
	Action      string         `gorm:"type:text;not null"`
	TopicID     *uint          `gorm:""`
	ActorUserID string         `gorm:"type:text;not null"`
	ActorTag    string         `gorm:"type:text;not null"`
	Detail      datatypes.JSON `gorm:"not null;default:'{}'"`
	CreatedAt   time.Time
}

func (AuditLog) TableName() string { return "logs" }
