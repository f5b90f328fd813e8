package api_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/foodgram/backend/internal/api"
	"github.com/foodgram/backend/internal/router"
	"github.com/foodgram/backend/internal/service"
	"github.com/foodgram/backend/internal/testhelpers"
)

// testEnv wires the full route tree against an in-memory database, without
// Redis so the write rate limiter is a no-op.
type testEnv struct {
	router  *gin.Engine
	db      *gorm.DB
	recipes *service.RecipeService
	users   *service.UserService
	auth    *service.AuthService
}

func setupAPITest(t *testing.T) *testEnv {
	gin.SetMode(gin.TestMode)
	db := testhelpers.NewTestDB(t)

	authSvc := service.NewAuthService(db, "test-secret-at-least-16")
	userSvc := service.NewUserService(db)
	catalogSvc := service.NewCatalogService(db)
	images := service.NewImageService(&service.LocalImageStore{
		Dir:     t.TempDir(),
		BaseURL: "http://localhost:8080/media",
	})
	recipeSvc := service.NewRecipeService(db, images)
	projector := service.NewProjector(recipeSvc, userSvc)

	engine := router.SetupRouter(
		api.NewAuthHandler(authSvc),
		api.NewUserHandler(userSvc, authSvc, projector),
		api.NewRecipeHandler(recipeSvc, authSvc, projector, nil),
		api.NewCatalogHandler(catalogSvc),
		nil,
	)

	return &testEnv{
		router:  engine,
		db:      db,
		recipes: recipeSvc,
		users:   userSvc,
		auth:    authSvc,
	}
}

// register creates an account through the API and returns its token.
func (e *testEnv) register(t *testing.T, username string) string {
	t.Helper()

	body := fmt.Sprintf(`{
		"email": "%s@example.com",
		"username": "%s",
		"first_name": "Test",
		"last_name": "User",
		"password": "password123"
	}`, username, username)

	w := e.do(t, "POST", "/api/v1/auth/register", body, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func (e *testEnv) do(t *testing.T, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(w.Body).Decode(out), w.Body.String())
}
