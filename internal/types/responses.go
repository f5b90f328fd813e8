package types

import "github.com/google/uuid"

type TokenResponse struct {
	Token string `json:"token"`
}

// UserResponse is the read shape for a user, including the per-requester
// subscription flag.
type UserResponse struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	IsSubscribed bool      `json:"is_subscribed"`
}

type TagResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Color string    `json:"color"`
	Slug  string    `json:"slug"`
}

type IngredientResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	MeasurementUnit string    `json:"measurement_unit"`
}

// IngredientLineResponse is one ingredient of a recipe with its amount.
type IngredientLineResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	MeasurementUnit string    `json:"measurement_unit"`
	Amount          int       `json:"amount"`
}

// RecipeResponse is the read shape for a recipe, conditioned on the
// requesting user for the two presence flags.
type RecipeResponse struct {
	ID               uuid.UUID                `json:"id"`
	Author           UserResponse             `json:"author"`
	Name             string                   `json:"name"`
	Text             string                   `json:"text"`
	CookingTime      int                      `json:"cooking_time"`
	Image            string                   `json:"image"`
	Tags             []TagResponse            `json:"tags"`
	Ingredients      []IngredientLineResponse `json:"ingredients"`
	IsFavorited      bool                     `json:"is_favorited"`
	IsInShoppingCart bool                     `json:"is_in_shopping_cart"`
}

// RecipePreview is the short recipe shape used inside subscription listings.
type RecipePreview struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Image       string    `json:"image"`
	CookingTime int       `json:"cooking_time"`
}

// SubscriptionResponse is an author the requester follows, with a preview of
// the author's recipes.
type SubscriptionResponse struct {
	ID           uuid.UUID       `json:"id"`
	Email        string          `json:"email"`
	Username     string          `json:"username"`
	FirstName    string          `json:"first_name"`
	LastName     string          `json:"last_name"`
	IsSubscribed bool            `json:"is_subscribed"`
	Recipes      []RecipePreview `json:"recipes"`
	RecipesCount int64           `json:"recipes_count"`
}

// ShoppingItem is one aggregated line of the shopping-list report.
type ShoppingItem struct {
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	TotalAmount     int    `json:"total_amount"`
}
