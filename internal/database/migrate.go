package database

import (
	"gorm.io/gorm"

	"github.com/plateful/recipe-api/internal/models"
)

// Migrate applies the schema for all application models, including the
// many-to-many join tables GORM derives from the Recipe associations.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.AuthToken{},
		&models.Tag{},
		&models.Ingredient{},
		&models.Recipe{},
	)
}
