package testhelpers

import (
	"fmt"
	"hash/crc32"
	"testing"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/foodgram/backend/internal/models"
)

// TestPassword is the plaintext behind every fixture user's hash.
const TestPassword = "password123"

// CreateUser inserts a user whose email and username derive from name.
func CreateUser(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := models.User{
		Email:        fmt.Sprintf("%s@example.com", name),
		Username:     name,
		FirstName:    "Test",
		LastName:     "User",
		PasswordHash: string(hash),
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user %q: %v", name, err)
	}
	return &user
}

// CreateTag inserts a tag whose name, color and slug derive from slug.
// The color is hashed from the slug because it is unique too.
func CreateTag(t *testing.T, db *gorm.DB, slug string) *models.Tag {
	t.Helper()

	tag := models.Tag{
		Name:  slug,
		Color: fmt.Sprintf("#%06X", crc32.ChecksumIEEE([]byte(slug))&0xFFFFFF),
		Slug:  slug,
	}
	if err := db.Create(&tag).Error; err != nil {
		t.Fatalf("failed to create tag %q: %v", slug, err)
	}
	return &tag
}

// CreateIngredient inserts an ingredient.
func CreateIngredient(t *testing.T, db *gorm.DB, name, unit string) *models.Ingredient {
	t.Helper()

	ingredient := models.Ingredient{
		Name:            name,
		MeasurementUnit: unit,
	}
	if err := db.Create(&ingredient).Error; err != nil {
		t.Fatalf("failed to create ingredient %q: %v", name, err)
	}
	return &ingredient
}
