package database

import (
	"gorm.io/gorm"

	"github.com/foodgram/backend/internal/models"
)

// Migrate brings the schema up to date. Order matters: referenced tables
// first, join tables last.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Tag{},
		&models.Ingredient{},
		&models.Recipe{},
		&models.IngredientRecipe{},
		&models.Follow{},
		&models.Favorite{},
		&models.ShoppingCart{},
	)
}
