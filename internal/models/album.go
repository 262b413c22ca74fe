package models

import (
	"time"

	"gorm.io/gorm"
)

// Album groups a user's photos. Deleting an album keeps its photos and nulls
// their album reference.
type Album struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"not null;index" json:"user_id"`
	User      User           `gorm:"foreignKey:UserID" json:"-"`
	Name      string         `gorm:"not null" json:"name"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	Photos    []Photo        `gorm:"foreignKey:AlbumID" json:"photos,omitempty"`
}
