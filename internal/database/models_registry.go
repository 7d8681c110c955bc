package database

import "bayaaz/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Poem{},
		&models.Bookmark{},
		&models.Follow{},
	}
}
