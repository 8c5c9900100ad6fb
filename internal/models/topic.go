package models

import "time"

// Topic is a shared link entry. Soft-deleted rows stay in the table but never
// appear on the public board again.
type Topic struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Title           string    `gorm:"type:text;not null" json:"title"`
	URL             string    `gorm:"type:text;not null" json:"url"`
	Description     string    `gorm:"type:text;not null;default:''" json:"description"`
	ImageURL        string    `gorm:"type:text;not null;default:'-'" json:"image_url"`
	CreatedByUserID string    `gorm:"type:text;not null" json:"-"`
	CreatedByTag    string    `gorm:"type:text;not null" json:"-"`
	CreatedAt       time.Time `json:"-"`
	IsDeleted       bool      `gorm:"not null;default:false" json:"-"`
}
