package testhelpers_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodgram/backend/internal/service"
	"github.com/foodgram/backend/internal/testhelpers"
	"github.com/foodgram/backend/internal/types"
)

func TestNewTestDB(t *testing.T) {
	db := testhelpers.NewTestDB(t)

	user := testhelpers.CreateUser(t, db, "smoke")
	assert.NotEqual(t, uuid.Nil, user.ID)
}

// TestPostgresRoundTrip runs a full recipe flow against a real postgres, so
// the dialect-specific pieces (uuid columns, the aggregation query) get
// covered somewhere.
func TestPostgresRoundTrip(t *testing.T) {
	pg := testhelpers.NewPostgresDB(t)
	defer func() {
		if err := pg.Close(); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}()
	db := pg.DB
	ctx := context.Background()

	recipes := service.NewRecipeService(db, service.NewImageService(&service.LocalImageStore{
		Dir:     t.TempDir(),
		BaseURL: "http://localhost:8080/media",
	}))

	author := testhelpers.CreateUser(t, db, "pgchef")
	tag := testhelpers.CreateTag(t, db, "dinner")
	flour := testhelpers.CreateIngredient(t, db, "flour", "g")

	recipe, err := recipes.CreateRecipe(ctx, author.ID, &types.RecipeInput{
		Name:        "Bread",
		Text:        "Bake.",
		CookingTime: 60,
		Tags:        []uuid.UUID{tag.ID},
		Ingredients: []types.IngredientAmount{{ID: flour.ID, Amount: 500}},
	})
	require.NoError(t, err)

	require.NoError(t, recipes.AddToCart(ctx, author.ID, recipe.ID))

	items, err := recipes.ShoppingList(ctx, author.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 500, items[0].TotalAmount)
}
