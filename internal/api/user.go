package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/foodgram/backend/internal/middleware"
	"github.com/foodgram/backend/internal/service"
	"github.com/foodgram/backend/internal/types"
)

type UserHandler struct {
	users     *service.UserService
	auth      *service.AuthService
	projector *service.Projector
}

func NewUserHandler(users *service.UserService, auth *service.AuthService, projector *service.Projector) *UserHandler {
	return &UserHandler{
		users:     users,
		auth:      auth,
		projector: projector,
	}
}

func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup, authHandler *AuthHandler) {
	users := router.Group("/users")
	{
		users.GET("", middleware.OptionalAuthMiddleware(h.auth), h.ListUsers)
		users.GET("/subscriptions", middleware.AuthMiddleware(h.auth), h.Subscriptions)
		users.GET("/me", middleware.AuthMiddleware(h.auth), h.Me)
		users.DELETE("/me", middleware.AuthMiddleware(h.auth), h.DeleteMe)
		users.POST("/set_password", middleware.AuthMiddleware(h.auth), authHandler.SetPassword)
		users.GET("/:id", middleware.OptionalAuthMiddleware(h.auth), h.GetUser)
		users.POST("/:id/subscribe", middleware.AuthMiddleware(h.auth), h.Subscribe)
		users.DELETE("/:id/subscribe", middleware.AuthMiddleware(h.auth), h.Unsubscribe)
	}
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))

	users, err := h.users.ListUsers(c.Request.Context(), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	requesterID := middleware.CurrentUserID(c)
	out := make([]*types.UserResponse, 0, len(users))
	for _, user := range users {
		projected, err := h.projector.User(c.Request.Context(), user, requesterID)
		if err != nil {
			respondError(c, err)
			return
		}
		out = append(out, projected)
	}

	c.JSON(http.StatusOK, gin.H{"users": out})
}

func (h *UserHandler) GetUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	user, err := h.users.GetUser(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	projected, err := h.projector.User(c.Request.Context(), user, middleware.CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, projected)
}

func (h *UserHandler) Me(c *gin.Context) {
	userID := middleware.MustUserID(c)
	user, err := h.users.GetUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	projected, err := h.projector.User(c.Request.Context(), user, &userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, projected)
}

func (h *UserHandler) DeleteMe(c *gin.Context) {
	userID := middleware.MustUserID(c)
	if err := h.users.DeleteUser(c.Request.Context(), userID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *UserHandler) Subscribe(c *gin.Context) {
	authorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	userID := middleware.MustUserID(c)
	if err := h.users.Follow(c.Request.Context(), userID, authorID); err != nil {
		respondError(c, err)
		return
	}

	author, err := h.users.GetUser(c.Request.Context(), authorID)
	if err != nil {
		respondError(c, err)
		return
	}
	projected, err := h.projector.Subscription(c.Request.Context(), author, &userID, 0)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, projected)
}

func (h *UserHandler) Unsubscribe(c *gin.Context) {
	authorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	userID := middleware.MustUserID(c)
	if err := h.users.Unfollow(c.Request.Context(), userID, authorID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *UserHandler) Subscriptions(c *gin.Context) {
	userID := middleware.MustUserID(c)
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))
	recipesLimit, _ := strconv.Atoi(c.Query("recipes_limit"))

	authors, err := h.users.Subscriptions(c.Request.Context(), userID, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]*types.SubscriptionResponse, 0, len(authors))
	for _, author := range authors {
		projected, err := h.projector.Subscription(c.Request.Context(), author, &userID, recipesLimit)
		if err != nil {
			respondError(c, err)
			return
		}
		out = append(out, projected)
	}

	c.JSON(http.StatusOK, gin.H{"subscriptions": out})
}
