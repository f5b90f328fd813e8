package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/foodgram/backend/internal/types"
)

// TokenValidator is an interface for validating JWT tokens
type TokenValidator interface {
	ValidateToken(token string) (*types.TokenClaims, error)
}

const userIDKey = "user_id"

// AuthMiddleware creates a middleware that validates JWT tokens and rejects
// unauthenticated requests.
func AuthMiddleware(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := claimsFromHeader(c, validator)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid authorization header"})
			c.Abort()
			return
		}

		c.Set(userIDKey, claims.UserID)
		c.Next()
	}
}

// OptionalAuthMiddleware resolves the requester identity when a valid token
// is present but never rejects the request. Read endpoints use it so that
// presence projections can be computed for authenticated users while
// anonymous users still get a response.
func OptionalAuthMiddleware(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, ok := claimsFromHeader(c, validator); ok {
			c.Set(userIDKey, claims.UserID)
		}
		c.Next()
	}
}

func claimsFromHeader(c *gin.Context, validator TokenValidator) (*types.TokenClaims, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, false
	}

	claims, err := validator.ValidateToken(parts[1])
	if err != nil {
		return nil, false
	}
	return claims, true
}

// CurrentUserID returns the authenticated requester's id, or nil for an
// anonymous request.
func CurrentUserID(c *gin.Context) *uuid.UUID {
	v, exists := c.Get(userIDKey)
	if !exists {
		return nil
	}
	id, ok := v.(uuid.UUID)
	if !ok {
		return nil
	}
	return &id
}

// MustUserID returns the authenticated requester's id. Only call behind
// AuthMiddleware.
func MustUserID(c *gin.Context) uuid.UUID {
	id := CurrentUserID(c)
	if id == nil {
		return uuid.Nil
	}
	return *id
}
