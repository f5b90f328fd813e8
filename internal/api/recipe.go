package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/foodgram/backend/internal/middleware"
	"github.com/foodgram/backend/internal/service"
	"github.com/foodgram/backend/internal/types"
)

type RecipeHandler struct {
	recipes   *service.RecipeService
	auth      *service.AuthService
	projector *service.Projector
	limiter   *middleware.RateLimiter
}

func NewRecipeHandler(recipes *service.RecipeService, auth *service.AuthService, projector *service.Projector, limiter *middleware.RateLimiter) *RecipeHandler {
	return &RecipeHandler{
		recipes:   recipes,
		auth:      auth,
		projector: projector,
		limiter:   limiter,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", middleware.OptionalAuthMiddleware(h.auth), h.ListRecipes)
		recipes.GET("/download_shopping_cart", middleware.AuthMiddleware(h.auth), h.DownloadShoppingCart)
		recipes.GET("/:id", middleware.OptionalAuthMiddleware(h.auth), h.GetRecipe)
		recipes.POST("", middleware.AuthMiddleware(h.auth), h.limiter.RateLimitMiddleware(), h.CreateRecipe)
		recipes.PUT("/:id", middleware.AuthMiddleware(h.auth), h.limiter.RateLimitMiddleware(), h.UpdateRecipe)
		recipes.DELETE("/:id", middleware.AuthMiddleware(h.auth), h.DeleteRecipe)
		recipes.POST("/:id/favorite", middleware.AuthMiddleware(h.auth), h.Favorite)
		recipes.DELETE("/:id/favorite", middleware.AuthMiddleware(h.auth), h.Unfavorite)
		recipes.POST("/:id/shopping_cart", middleware.AuthMiddleware(h.auth), h.AddToCart)
		recipes.DELETE("/:id/shopping_cart", middleware.AuthMiddleware(h.auth), h.RemoveFromCart)
	}
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	filter := &types.RecipeFilter{
		TagSlugs:       c.QueryArray("tags"),
		Favorited:      c.Query("is_favorited") == "1",
		InShoppingCart: c.Query("is_in_shopping_cart") == "1",
	}
	filter.Limit, _ = strconv.Atoi(c.Query("limit"))
	filter.Offset, _ = strconv.Atoi(c.Query("offset"))

	if author := c.Query("author"); author != "" {
		authorID, err := uuid.Parse(author)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid author id"})
			return
		}
		filter.AuthorID = &authorID
	}

	requesterID := middleware.CurrentUserID(c)
	recipes, err := h.recipes.ListRecipes(c.Request.Context(), filter, requesterID)
	if err != nil {
		respondError(c, err)
		return
	}

	out, err := h.projector.Recipes(c.Request.Context(), recipes, requesterID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipes": out})
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	recipe, err := h.recipes.GetRecipe(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	projected, err := h.projector.Recipe(c.Request.Context(), recipe, middleware.CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, projected)
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var input types.RecipeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	userID := middleware.MustUserID(c)
	recipe, err := h.recipes.CreateRecipe(c.Request.Context(), userID, &input)
	if err != nil {
		respondError(c, err)
		return
	}

	projected, err := h.projector.Recipe(c.Request.Context(), recipe, &userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, projected)
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	var input types.RecipeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	userID := middleware.MustUserID(c)
	recipe, err := h.recipes.UpdateRecipe(c.Request.Context(), userID, id, &input)
	if err != nil {
		respondError(c, err)
		return
	}

	projected, err := h.projector.Recipe(c.Request.Context(), recipe, &userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, projected)
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	if err := h.recipes.DeleteRecipe(c.Request.Context(), middleware.MustUserID(c), id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *RecipeHandler) Favorite(c *gin.Context) {
	h.toggle(c, h.recipes.FavoriteRecipe, http.StatusCreated)
}

func (h *RecipeHandler) Unfavorite(c *gin.Context) {
	h.toggle(c, h.recipes.UnfavoriteRecipe, http.StatusNoContent)
}

func (h *RecipeHandler) AddToCart(c *gin.Context) {
	h.toggle(c, h.recipes.AddToCart, http.StatusCreated)
}

func (h *RecipeHandler) RemoveFromCart(c *gin.Context) {
	h.toggle(c, h.recipes.RemoveFromCart, http.StatusNoContent)
}

func (h *RecipeHandler) toggle(c *gin.Context, op func(ctx context.Context, userID, recipeID uuid.UUID) error, okStatus int) {
	recipeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	if err := op(c.Request.Context(), middleware.MustUserID(c), recipeID); err != nil {
		respondError(c, err)
		return
	}

	if okStatus == http.StatusNoContent {
		c.Status(okStatus)
		return
	}
	c.JSON(okStatus, gin.H{"id": recipeID})
}

// DownloadShoppingCart renders the aggregated shopping list as a plain-text
// attachment, one line per (ingredient, unit) group.
func (h *RecipeHandler) DownloadShoppingCart(c *gin.Context) {
	userID := middleware.MustUserID(c)
	items, err := h.recipes.ShoppingList(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	var sb strings.Builder
	for _, item := range items {
		fmt.Fprintf(&sb, "%s - %d %s\n", item.Name, item.TotalAmount, item.MeasurementUnit)
	}

	c.Header("Content-Disposition", `attachment; filename="shopping_list.txt"`)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(sb.String()))
}
