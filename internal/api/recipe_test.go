package api_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodgram/backend/internal/testhelpers"
	"github.com/foodgram/backend/internal/types"
)

func recipeBody(name string, tagID, ingredientID uuid.UUID, amount int) string {
	return fmt.Sprintf(`{
		"name": "%s",
		"text": "Mix and cook.",
		"cooking_time": 30,
		"tags": ["%s"],
		"ingredients": [{"id": "%s", "amount": %d}]
	}`, name, tagID, ingredientID, amount)
}

func TestCreateRecipeEndpoint(t *testing.T) {
	env := setupAPITest(t)
	token := env.register(t, "chef")
	tag := testhelpers.CreateTag(t, env.db, "dinner")
	flour := testhelpers.CreateIngredient(t, env.db, "flour", "g")

	w := env.do(t, "POST", "/api/v1/recipes", recipeBody("Pancakes", tag.ID, flour.ID, 200), token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp types.RecipeResponse
	decodeBody(t, w, &resp)
	assert.Equal(t, "Pancakes", resp.Name)
	assert.Equal(t, "chef", resp.Author.Username)
	require.Len(t, resp.Ingredients, 1)
	assert.Equal(t, 200, resp.Ingredients[0].Amount)
	assert.False(t, resp.IsFavorited)
}

func TestCreateRecipeRequiresAuth(t *testing.T) {
	env := setupAPITest(t)
	tag := testhelpers.CreateTag(t, env.db, "dinner")
	flour := testhelpers.CreateIngredient(t, env.db, "flour", "g")

	w := env.do(t, "POST", "/api/v1/recipes", recipeBody("Pancakes", tag.ID, flour.ID, 200), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateRecipeRejectsUnknownReferences(t *testing.T) {
	env := setupAPITest(t)
	token := env.register(t, "chef")
	tag := testhelpers.CreateTag(t, env.db, "dinner")
	flour := testhelpers.CreateIngredient(t, env.db, "flour", "g")

	// A dangling tag or ingredient id makes the submission invalid, so the
	// response is a 400 rather than a 404.
	w := env.do(t, "POST", "/api/v1/recipes", recipeBody("Pancakes", uuid.New(), flour.ID, 200), token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, "POST", "/api/v1/recipes", recipeBody("Pancakes", tag.ID, uuid.New(), 200), token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateRecipeForbiddenForOthers(t *testing.T) {
	env := setupAPITest(t)
	chefToken := env.register(t, "chef")
	otherToken := env.register(t, "other")
	tag := testhelpers.CreateTag(t, env.db, "dinner")
	flour := testhelpers.CreateIngredient(t, env.db, "flour", "g")

	w := env.do(t, "POST", "/api/v1/recipes", recipeBody("Pancakes", tag.ID, flour.ID, 200), chefToken)
	require.Equal(t, http.StatusCreated, w.Code)
	var created types.RecipeResponse
	decodeBody(t, w, &created)

	w = env.do(t, "PUT", "/api/v1/recipes/"+created.ID.String(),
		recipeBody("Hijacked", tag.ID, flour.ID, 1), otherToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.do(t, "DELETE", "/api/v1/recipes/"+created.ID.String(), "", otherToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.do(t, "DELETE", "/api/v1/recipes/"+created.ID.String(), "", chefToken)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestGetRecipeAnonymous(t *testing.T) {
	env := setupAPITest(t)
	token := env.register(t, "chef")
	tag := testhelpers.CreateTag(t, env.db, "dinner")
	flour := testhelpers.CreateIngredient(t, env.db, "flour", "g")

	w := env.do(t, "POST", "/api/v1/recipes", recipeBody("Pancakes", tag.ID, flour.ID, 200), token)
	require.Equal(t, http.StatusCreated, w.Code)
	var created types.RecipeResponse
	decodeBody(t, w, &created)

	w = env.do(t, "POST", "/api/v1/recipes/"+created.ID.String()+"/favorite", "", token)
	require.Equal(t, http.StatusCreated, w.Code)

	// Anonymous read still works and carries no presence flags.
	w = env.do(t, "GET", "/api/v1/recipes/"+created.ID.String(), "", "")
	require.Equal(t, http.StatusOK, w.Code)
	var got types.RecipeResponse
	decodeBody(t, w, &got)
	assert.False(t, got.IsFavorited)

	// The favoriting user sees the flag.
	w = env.do(t, "GET", "/api/v1/recipes/"+created.ID.String(), "", token)
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &got)
	assert.True(t, got.IsFavorited)
}

func TestListRecipesByTag(t *testing.T) {
	env := setupAPITest(t)
	token := env.register(t, "chef")
	breakfast := testhelpers.CreateTag(t, env.db, "breakfast")
	dinner := testhelpers.CreateTag(t, env.db, "dinner")
	flour := testhelpers.CreateIngredient(t, env.db, "flour", "g")

	w := env.do(t, "POST", "/api/v1/recipes", recipeBody("Pancakes", breakfast.ID, flour.ID, 200), token)
	require.Equal(t, http.StatusCreated, w.Code)
	w = env.do(t, "POST", "/api/v1/recipes", recipeBody("Stew", dinner.ID, flour.ID, 30), token)
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.do(t, "GET", "/api/v1/recipes?tags=breakfast", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Recipes []types.RecipeResponse `json:"recipes"`
	}
	decodeBody(t, w, &resp)
	require.Len(t, resp.Recipes, 1)
	assert.Equal(t, "Pancakes", resp.Recipes[0].Name)
}

func TestFavoriteEndpoints(t *testing.T) {
	env := setupAPITest(t)
	token := env.register(t, "chef")
	tag := testhelpers.CreateTag(t, env.db, "dinner")
	flour := testhelpers.CreateIngredient(t, env.db, "flour", "g")

	w := env.do(t, "POST", "/api/v1/recipes", recipeBody("Pancakes", tag.ID, flour.ID, 200), token)
	require.Equal(t, http.StatusCreated, w.Code)
	var created types.RecipeResponse
	decodeBody(t, w, &created)
	path := "/api/v1/recipes/" + created.ID.String() + "/favorite"

	w = env.do(t, "POST", path, "", token)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = env.do(t, "POST", path, "", token)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = env.do(t, "DELETE", path, "", token)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = env.do(t, "DELETE", path, "", token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDownloadShoppingCart(t *testing.T) {
	env := setupAPITest(t)
	token := env.register(t, "chef")
	tag := testhelpers.CreateTag(t, env.db, "dinner")
	flour := testhelpers.CreateIngredient(t, env.db, "flour", "g")
	sugar := testhelpers.CreateIngredient(t, env.db, "sugar", "g")

	w := env.do(t, "POST", "/api/v1/recipes", fmt.Sprintf(`{
		"name": "Pancakes",
		"text": "Cook.",
		"cooking_time": 10,
		"tags": ["%s"],
		"ingredients": [
			{"id": "%s", "amount": 200},
			{"id": "%s", "amount": 50}
		]
	}`, tag.ID, flour.ID, sugar.ID), token)
	require.Equal(t, http.StatusCreated, w.Code)
	var pancakes types.RecipeResponse
	decodeBody(t, w, &pancakes)

	w = env.do(t, "POST", "/api/v1/recipes", recipeBody("Bread", tag.ID, flour.ID, 300), token)
	require.Equal(t, http.StatusCreated, w.Code)
	var bread types.RecipeResponse
	decodeBody(t, w, &bread)

	for _, id := range []uuid.UUID{pancakes.ID, bread.ID} {
		w = env.do(t, "POST", "/api/v1/recipes/"+id.String()+"/shopping_cart", "", token)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w = env.do(t, "GET", "/api/v1/recipes/download_shopping_cart", "", token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "shopping_list.txt")
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
	assert.Equal(t, "flour - 500 g\nsugar - 50 g\n", w.Body.String())
}

func TestDownloadShoppingCartRequiresAuth(t *testing.T) {
	env := setupAPITest(t)

	w := env.do(t, "GET", "/api/v1/recipes/download_shopping_cart", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
