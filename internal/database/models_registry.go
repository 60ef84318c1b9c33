package database

import "comunidad/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models,
// parents before children.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Post{},
		&models.Reply{},
		&models.Favorite{},
		&models.Task{},
		&models.Medication{},
	}
}
