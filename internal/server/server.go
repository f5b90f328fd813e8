package server

import (
	"context"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/foodgram/backend/config"
	"github.com/foodgram/backend/internal/api"
	"github.com/foodgram/backend/internal/database"
	"github.com/foodgram/backend/internal/middleware"
	"github.com/foodgram/backend/internal/router"
	"github.com/foodgram/backend/internal/service"
)

// Server wires the services together and owns the HTTP listener.
type Server struct {
	engine *gin.Engine
	http   *http.Server
	db     *gorm.DB
	redis  *redis.Client
}

// New builds a fully wired server from configuration and an open database
// connection.
func New(cfg *config.Config, db *gorm.DB) (*Server, error) {
	images, err := newImageService(cfg)
	if err != nil {
		return nil, err
	}

	authService := service.NewAuthService(db, cfg.JWTSecret)
	userService := service.NewUserService(db)
	recipeService := service.NewRecipeService(db, images)
	catalogService := service.NewCatalogService(db)
	projector := service.NewProjector(recipeService, userService)

	// Rate limiting is best-effort: without Redis the limiter stays nil and
	// writes go through unthrottled.
	var redisClient *redis.Client
	var limiter *middleware.RateLimiter
	if cfg.RedisHost != "" || cfg.RedisURL != "" {
		redisClient, err = database.NewRedisClient(cfg)
		if err != nil {
			logrus.WithError(err).Warn("redis unavailable, rate limiting disabled")
		} else {
			limiter = middleware.NewRecipeWriteRateLimiter(redisClient)
		}
	}

	authHandler := api.NewAuthHandler(authService)
	userHandler := api.NewUserHandler(userService, authService, projector)
	recipeHandler := api.NewRecipeHandler(recipeService, authService, projector, limiter)
	catalogHandler := api.NewCatalogHandler(catalogService)

	engine := router.SetupRouter(authHandler, userHandler, recipeHandler, catalogHandler, nil)

	return &Server{
		engine: engine,
		db:     db,
		redis:  redisClient,
		http: &http.Server{
			Addr:    cfg.ServerHost + ":" + cfg.ServerPort,
			Handler: engine,
		},
	}, nil
}

func newImageService(cfg *config.Config) (*service.ImageService, error) {
	if cfg.S3Bucket != "" {
		s3Cfg, err := config.NewS3Config(context.Background(), cfg)
		if err != nil {
			return nil, err
		}
		return service.NewImageService(service.NewS3ImageStore(s3Cfg)), nil
	}

	dir := os.Getenv("MEDIA_DIR")
	if dir == "" {
		dir = "media"
	}
	logrus.WithField("dir", dir).Info("no S3 bucket configured, storing images locally")
	return service.NewImageService(&service.LocalImageStore{
		Dir:     dir,
		BaseURL: "/media",
	}), nil
}

// Start begins serving requests and blocks until the listener stops.
func (s *Server) Start() error {
	logrus.WithField("addr", s.http.Addr).Info("starting server")
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.redis != nil {
		defer func() { _ = s.redis.Close() }()
	}
	return s.http.Shutdown(ctx)
}
