package types

import "github.com/google/uuid"

type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Username  string `json:"username" binding:"required"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Password  string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type SetPasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=6"`
}

// IngredientAmount is one (ingredient, amount) pair in a recipe submission.
type IngredientAmount struct {
	ID     uuid.UUID `json:"id" binding:"required"`
	Amount int       `json:"amount" binding:"required"`
}

// RecipeInput is the write shape for recipe create and update. Update uses
// full-replacement semantics: the submitted tag and ingredient sets replace
// whatever the recipe had before.
type RecipeInput struct {
	Name        string             `json:"name" binding:"required"`
	Text        string             `json:"text" binding:"required"`
	CookingTime int                `json:"cooking_time" binding:"required,min=1"`
	Image       string             `json:"image"`
	Tags        []uuid.UUID        `json:"tags"`
	Ingredients []IngredientAmount `json:"ingredients"`
}

// RecipeFilter narrows recipe listings.
type RecipeFilter struct {
	AuthorID       *uuid.UUID
	TagSlugs       []string
	Favorited      bool
	InShoppingCart bool
	Limit          int
	Offset         int
}
