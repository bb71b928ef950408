package routes

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/rumonkh0/quizbackend/internal/infra/config"
	"github.com/rumonkh0/quizbackend/internal/infra/security"
	"github.com/rumonkh0/quizbackend/internal/transport/http/handlers"
	"github.com/rumonkh0/quizbackend/internal/transport/http/middleware"
	"github.com/rumonkh0/quizbackend/internal/usecase"
)

// ServiceSet groups the services the HTTP layer depends on.
type ServiceSet struct {
	Auth    *usecase.AuthService
	Topics  *usecase.TopicService
	Modules *usecase.ModuleService
	Quizzes *usecase.QuizService
}

// DatabaseChecker exposes readiness behaviour for database connections.
type DatabaseChecker interface {
	Ping(ctx context.Context) error
}

// Dependencies encapsulates the objects required to register routes.
type Dependencies struct {
	Config   *config.AppConfig
	Logger   *zap.Logger
	Services ServiceSet
	Issuer   *security.TokenIssuer
	Metrics  *middleware.HTTPMetrics
	Database DatabaseChecker
}

// Register configures the Gin engine with routes and middleware.
func Register(deps Dependencies) *gin.Engine {
	if deps.Config != nil && deps.Config.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(deps.Logger))
	r.Use(middleware.CORS([]string{"*"}))
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Handler())
	}

	healthHandler := handlers.NewHealthHandler(deps.Database)
	r.GET("/healthz", healthHandler.Status)
	r.GET("/readyz", healthHandler.Ready)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authHandler := handlers.NewAuthHandler(deps.Services.Auth, deps.Logger)
	authHandler.RegisterRoutes(r)

	authed := r.Group("", middleware.RequireAuth(deps.Issuer))
	admin := authed.Group("", middleware.RequireAdmin())

	topicHandler := handlers.NewTopicHandler(deps.Services.Topics, deps.Logger)
	topicHandler.RegisterRoutes(authed, admin)

	moduleHandler := handlers.NewModuleHandler(deps.Services.Modules, deps.Logger)
	moduleHandler.RegisterRoutes(authed, admin)

	quizHandler := handlers.NewQuizHandler(deps.Services.Quizzes, deps.Logger)
	quizHandler.RegisterRoutes(authed, admin)

	return r
}
