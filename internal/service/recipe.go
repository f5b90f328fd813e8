package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/foodgram/backend/internal/models"
	"github.com/foodgram/backend/internal/types"
)

// RecipeService handles recipe operations: CRUD, favorites, the shopping
// cart and its aggregated report.
type RecipeService struct {
	db     *gorm.DB
	images *ImageService
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(db *gorm.DB, images *ImageService) *RecipeService {
	return &RecipeService{
		db:     db,
		images: images,
	}
}

// validateInput checks a recipe submission and resolves its tag and
// ingredient references. An unresolvable reference is a validation failure
// of the submission, not a failed lookup. Returns the tags to associate and
// the normalized ingredient lines (without recipe id).
func validateInput(tx *gorm.DB, input *types.RecipeInput) ([]models.Tag, []models.IngredientRecipe, error) {
	if len(input.Tags) == 0 {
		return nil, nil, ErrTagsRequired
	}
	if len(input.Ingredients) == 0 {
		return nil, nil, ErrIngredientsRequired
	}

	seen := make(map[uuid.UUID]bool, len(input.Ingredients))
	lines := make([]models.IngredientRecipe, 0, len(input.Ingredients))
	ingredientIDs := make([]uuid.UUID, 0, len(input.Ingredients))
	for _, item := range input.Ingredients {
		if item.Amount < 1 {
			return nil, nil, ErrAmountTooSmall
		}
		if seen[item.ID] {
			return nil, nil, ErrDuplicateIngredient
		}
		seen[item.ID] = true
		ingredientIDs = append(ingredientIDs, item.ID)
		lines = append(lines, models.IngredientRecipe{
			IngredientID: item.ID,
			Amount:       item.Amount,
		})
	}

	var ingredientCount int64
	if err := tx.Model(&models.Ingredient{}).Where("id IN ?", ingredientIDs).Count(&ingredientCount).Error; err != nil {
		return nil, nil, err
	}
	if int(ingredientCount) != len(input.Ingredients) {
		return nil, nil, ErrUnknownIngredient
	}

	var tags []models.Tag
	if err := tx.Where("id IN ?", input.Tags).Find(&tags).Error; err != nil {
		return nil, nil, err
	}
	if len(tags) != len(uniqueIDs(input.Tags)) {
		return nil, nil, ErrUnknownTag
	}

	return tags, lines, nil
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

// CreateRecipe validates the submission and persists the recipe, its tag
// associations and its ingredient lines in one transaction.
func (s *RecipeService) CreateRecipe(ctx context.Context, authorID uuid.UUID, input *types.RecipeInput) (*models.Recipe, error) {
	imageURL := ""
	if input.Image != "" {
		url, err := s.images.SaveBase64(ctx, input.Image)
		if err != nil {
			return nil, err
		}
		imageURL = url
	}

	var recipe models.Recipe
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tags, lines, err := validateInput(tx, input)
		if err != nil {
			return err
		}

		recipe = models.Recipe{
			AuthorID:    authorID,
			Name:        input.Name,
			Text:        input.Text,
			CookingTime: input.CookingTime,
			ImageURL:    imageURL,
			Tags:        tags,
		}
		if err := tx.Create(&recipe).Error; err != nil {
			return err
		}

		for i := range lines {
			lines[i].RecipeID = recipe.ID
		}
		return tx.Create(&lines).Error
	})
	if err != nil {
		return nil, err
	}

	return s.GetRecipe(ctx, recipe.ID)
}

// UpdateRecipe replaces the recipe's fields, tag set and ingredient lines
// with the submitted ones. The ingredient/tag replacement is
// clear-then-recreate, not a merge.
func (s *RecipeService) UpdateRecipe(ctx context.Context, requesterID, recipeID uuid.UUID, input *types.RecipeInput) (*models.Recipe, error) {
	imageURL := ""
	if input.Image != "" {
		url, err := s.images.SaveBase64(ctx, input.Image)
		if err != nil {
			return nil, err
		}
		imageURL = url
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recipe models.Recipe
		if err := tx.First(&recipe, "id = ?", recipeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRecipeNotFound
			}
			return err
		}
		if recipe.AuthorID != requesterID {
			return ErrNotRecipeAuthor
		}

		tags, lines, err := validateInput(tx, input)
		if err != nil {
			return err
		}

		recipe.Name = input.Name
		recipe.Text = input.Text
		recipe.CookingTime = input.CookingTime
		if imageURL != "" {
			recipe.ImageURL = imageURL
		}
		if err := tx.Save(&recipe).Error; err != nil {
			return err
		}

		if err := tx.Model(&recipe).Association("Tags").Replace(tags); err != nil {
			return err
		}

		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.IngredientRecipe{}).Error; err != nil {
			return err
		}
		for i := range lines {
			lines[i].RecipeID = recipe.ID
		}
		return tx.Create(&lines).Error
	})
	if err != nil {
		return nil, err
	}

	return s.GetRecipe(ctx, recipeID)
}

// DeleteRecipe removes the recipe and every dependent row: ingredient
// lines, tag associations, favorites and cart entries.
func (s *RecipeService) DeleteRecipe(ctx context.Context, requesterID, recipeID uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recipe models.Recipe
		if err := tx.First(&recipe, "id = ?", recipeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRecipeNotFound
			}
			return err
		}
		if recipe.AuthorID != requesterID {
			return ErrNotRecipeAuthor
		}

		return deleteRecipeRows(tx, recipeID)
	})
}

// deleteRecipeRows removes a recipe and its dependents inside tx.
func deleteRecipeRows(tx *gorm.DB, recipeID uuid.UUID) error {
	steps := []error{
		tx.Where("recipe_id = ?", recipeID).Delete(&models.IngredientRecipe{}).Error,
		tx.Where("recipe_id = ?", recipeID).Delete(&models.Favorite{}).Error,
		tx.Where("recipe_id = ?", recipeID).Delete(&models.ShoppingCart{}).Error,
		tx.Exec("DELETE FROM recipe_tags WHERE recipe_id = ?", recipeID).Error,
		tx.Delete(&models.Recipe{}, "id = ?", recipeID).Error,
	}
	for _, err := range steps {
		if err != nil {
			return err
		}
	}
	return nil
}

// GetRecipe retrieves a recipe with its author, tags and ingredient lines.
func (s *RecipeService) GetRecipe(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	err := s.db.WithContext(ctx).
		Preload("Author").
		Preload("Tags").
		Preload("IngredientLines.Ingredient").
		First(&recipe, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}
	return &recipe, nil
}

// ListRecipes lists recipes matching the filter, newest first. The
// favorited / in-cart filters apply only for an authenticated requester.
func (s *RecipeService) ListRecipes(ctx context.Context, filter *types.RecipeFilter, requesterID *uuid.UUID) ([]*models.Recipe, error) {
	query := s.db.WithContext(ctx).Model(&models.Recipe{}).
		Preload("Author").
		Preload("Tags").
		Preload("IngredientLines.Ingredient")

	if filter.AuthorID != nil {
		query = query.Where("recipes.author_id = ?", *filter.AuthorID)
	}
	if len(filter.TagSlugs) > 0 {
		query = query.
			Joins("JOIN recipe_tags ON recipe_tags.recipe_id = recipes.id").
			Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
			Where("tags.slug IN ?", filter.TagSlugs).
			Distinct("recipes.*")
	}
	if filter.Favorited && requesterID != nil {
		query = query.
			Joins("JOIN favorites ON favorites.recipe_id = recipes.id").
			Where("favorites.user_id = ?", *requesterID)
	}
	if filter.InShoppingCart && requesterID != nil {
		query = query.
			Joins("JOIN shopping_carts ON shopping_carts.recipe_id = recipes.id").
			Where("shopping_carts.user_id = ?", *requesterID)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var recipes []models.Recipe
	if err := query.Order("recipes.created_at DESC").Find(&recipes).Error; err != nil {
		return nil, err
	}

	result := make([]*models.Recipe, len(recipes))
	for i := range recipes {
		result[i] = &recipes[i]
	}
	return result, nil
}

// FavoriteRecipe bookmarks a recipe for the user. Adding an existing
// favorite is a conflict, not a no-op.
func (s *RecipeService) FavoriteRecipe(ctx context.Context, userID, recipeID uuid.UUID) error {
	if err := s.ensureRecipeExists(ctx, recipeID); err != nil {
		return err
	}

	fav := models.Favorite{UserID: userID, RecipeID: recipeID}
	if err := s.db.WithContext(ctx).Create(&fav).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrAlreadyFavorited
		}
		return err
	}
	return nil
}

// UnfavoriteRecipe removes the bookmark; removing one that was never added
// is a not-found.
func (s *RecipeService) UnfavoriteRecipe(ctx context.Context, userID, recipeID uuid.UUID) error {
	res := s.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&models.Favorite{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrFavoriteNotFound
	}
	return nil
}

// AddToCart puts a recipe in the user's shopping cart.
func (s *RecipeService) AddToCart(ctx context.Context, userID, recipeID uuid.UUID) error {
	if err := s.ensureRecipeExists(ctx, recipeID); err != nil {
		return err
	}

	entry := models.ShoppingCart{UserID: userID, RecipeID: recipeID}
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrAlreadyInCart
		}
		return err
	}
	return nil
}

// RemoveFromCart takes a recipe out of the user's shopping cart.
func (s *RecipeService) RemoveFromCart(ctx context.Context, userID, recipeID uuid.UUID) error {
	res := s.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&models.ShoppingCart{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrCartEntryNotFound
	}
	return nil
}

// ShoppingList aggregates ingredient requirements across every recipe in
// the user's cart: grouped by (name, unit), amounts summed, ordered by
// name. An empty cart yields an empty list.
func (s *RecipeService) ShoppingList(ctx context.Context, userID uuid.UUID) ([]types.ShoppingItem, error) {
	var items []types.ShoppingItem
	err := s.db.WithContext(ctx).
		Table("ingredient_recipes").
		Select("ingredients.name AS name, ingredients.measurement_unit AS measurement_unit, SUM(ingredient_recipes.amount) AS total_amount").
		Joins("JOIN ingredients ON ingredients.id = ingredient_recipes.ingredient_id").
		Joins("JOIN shopping_carts ON shopping_carts.recipe_id = ingredient_recipes.recipe_id").
		Where("shopping_carts.user_id = ?", userID).
		Group("ingredients.name, ingredients.measurement_unit").
		Order("ingredients.name").
		Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// IsFavorited reports whether the requester has favorited the recipe.
// Anonymous requesters never hit the store.
func (s *RecipeService) IsFavorited(ctx context.Context, requesterID *uuid.UUID, recipeID uuid.UUID) (bool, error) {
	if requesterID == nil {
		return false, nil
	}
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Favorite{}).
		Where("user_id = ? AND recipe_id = ?", *requesterID, recipeID).
		Count(&count).Error
	return count > 0, err
}

// IsInShoppingCart reports whether the recipe is in the requester's cart.
func (s *RecipeService) IsInShoppingCart(ctx context.Context, requesterID *uuid.UUID, recipeID uuid.UUID) (bool, error) {
	if requesterID == nil {
		return false, nil
	}
	var count int64
	err := s.db.WithContext(ctx).Model(&models.ShoppingCart{}).
		Where("user_id = ? AND recipe_id = ?", *requesterID, recipeID).
		Count(&count).Error
	return count > 0, err
}

func (s *RecipeService) ensureRecipeExists(ctx context.Context, recipeID uuid.UUID) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Recipe{}).Where("id = ?", recipeID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrRecipeNotFound
	}
	return nil
}
