package database

import "kyutaku/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Profile{},
		&models.Album{},
		&models.Photo{},
		&models.Post{},
		&models.Like{},
		&models.Comment{},
	}
}
