package models

import (
	"time"
)

// Profile is the one-to-one extension of a User. It is provisioned lazily on
// first login or registration and never deleted by the application.
type Profile struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	User       User      `gorm:"foreignKey:UserID" json:"-"`
	FullName   string    `json:"full_name"`
	Age        *int      `json:"age"`
	Birthday   string    `json:"birthday"`
	Gender     string    `json:"gender"`
	Location   string    `json:"location"`
	Favorites  string    `gorm:"type:text" json:"favorites"`
	LifeStatus string    `json:"life_status"`
	Bio        string    `gorm:"type:text" json:"bio"`
	ImageURL   string    `json:"image_url"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Username mirrors the owning user's name for API responses; not persisted.
	Username string `gorm:"-" json:"username,omitempty"`
}
