package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/foodgram/backend/internal/models"
	"github.com/foodgram/backend/internal/types"
)

// Projector converts persisted entities into response shapes conditioned on
// the requesting user. The requester is always passed explicitly; nil means
// anonymous and every presence flag comes back false without touching the
// store.
type Projector struct {
	recipes *RecipeService
	users   *UserService
}

func NewProjector(recipes *RecipeService, users *UserService) *Projector {
	return &Projector{recipes: recipes, users: users}
}

func (p *Projector) User(ctx context.Context, user *models.User, requesterID *uuid.UUID) (*types.UserResponse, error) {
	subscribed, err := p.users.IsSubscribed(ctx, requesterID, user.ID)
	if err != nil {
		return nil, err
	}
	return &types.UserResponse{
		ID:           user.ID,
		Email:        user.Email,
		Username:     user.Username,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		IsSubscribed: subscribed,
	}, nil
}

// Recipe projects a recipe loaded with its author, tags and ingredient
// lines.
func (p *Projector) Recipe(ctx context.Context, recipe *models.Recipe, requesterID *uuid.UUID) (*types.RecipeResponse, error) {
	favorited, err := p.recipes.IsFavorited(ctx, requesterID, recipe.ID)
	if err != nil {
		return nil, err
	}
	inCart, err := p.recipes.IsInShoppingCart(ctx, requesterID, recipe.ID)
	if err != nil {
		return nil, err
	}

	resp := &types.RecipeResponse{
		ID:               recipe.ID,
		Name:             recipe.Name,
		Text:             recipe.Text,
		CookingTime:      recipe.CookingTime,
		Image:            recipe.ImageURL,
		Tags:             make([]types.TagResponse, 0, len(recipe.Tags)),
		Ingredients:      make([]types.IngredientLineResponse, 0, len(recipe.IngredientLines)),
		IsFavorited:      favorited,
		IsInShoppingCart: inCart,
	}

	if recipe.Author != nil {
		author, err := p.User(ctx, recipe.Author, requesterID)
		if err != nil {
			return nil, err
		}
		resp.Author = *author
	}

	for _, tag := range recipe.Tags {
		resp.Tags = append(resp.Tags, types.TagResponse{
			ID:    tag.ID,
			Name:  tag.Name,
			Color: tag.Color,
			Slug:  tag.Slug,
		})
	}
	for _, line := range recipe.IngredientLines {
		item := types.IngredientLineResponse{
			ID:     line.IngredientID,
			Amount: line.Amount,
		}
		if line.Ingredient != nil {
			item.Name = line.Ingredient.Name
			item.MeasurementUnit = line.Ingredient.MeasurementUnit
		}
		resp.Ingredients = append(resp.Ingredients, item)
	}

	return resp, nil
}

func (p *Projector) Recipes(ctx context.Context, recipes []*models.Recipe, requesterID *uuid.UUID) ([]*types.RecipeResponse, error) {
	out := make([]*types.RecipeResponse, 0, len(recipes))
	for _, recipe := range recipes {
		projected, err := p.Recipe(ctx, recipe, requesterID)
		if err != nil {
			return nil, err
		}
		out = append(out, projected)
	}
	return out, nil
}

// Subscription projects an author the requester follows, with a recipe
// preview capped at recipesLimit (0 means no cap).
func (p *Projector) Subscription(ctx context.Context, author *models.User, requesterID *uuid.UUID, recipesLimit int) (*types.SubscriptionResponse, error) {
	subscribed, err := p.users.IsSubscribed(ctx, requesterID, author.ID)
	if err != nil {
		return nil, err
	}
	recipes, total, err := p.users.AuthorRecipes(ctx, author.ID, recipesLimit)
	if err != nil {
		return nil, err
	}

	resp := &types.SubscriptionResponse{
		ID:           author.ID,
		Email:        author.Email,
		Username:     author.Username,
		FirstName:    author.FirstName,
		LastName:     author.LastName,
		IsSubscribed: subscribed,
		Recipes:      make([]types.RecipePreview, 0, len(recipes)),
		RecipesCount: total,
	}
	for _, r := range recipes {
		resp.Recipes = append(resp.Recipes, types.RecipePreview{
			ID:          r.ID,
			Name:        r.Name,
			Image:       r.ImageURL,
			CookingTime: r.CookingTime,
		})
	}
	return resp, nil
}
