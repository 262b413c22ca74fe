package models

import (
	"time"

	"gorm.io/gorm"
)

// Photo is an uploaded image owned by a user, optionally filed under an album.
type Photo struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"not null;index" json:"user_id"`
	AlbumID   *uint          `gorm:"index" json:"album"`
	Album     *Album         `gorm:"foreignKey:AlbumID" json:"-"`
	ImageURL  string         `gorm:"not null" json:"image_url"`
	ThumbURL  string         `json:"thumb_url,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
