package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/rumonkh0/quizbackend/internal/core/port"
	"github.com/rumonkh0/quizbackend/internal/infra/config"
	"github.com/rumonkh0/quizbackend/internal/infra/database"
	kafkainfra "github.com/rumonkh0/quizbackend/internal/infra/kafka"
	"github.com/rumonkh0/quizbackend/internal/infra/logger"
	"github.com/rumonkh0/quizbackend/internal/infra/security"
	"github.com/rumonkh0/quizbackend/internal/infra/telemetry"
	postgresrepo "github.com/rumonkh0/quizbackend/internal/repository/postgres"
	"github.com/rumonkh0/quizbackend/internal/transport/http/middleware"
	"github.com/rumonkh0/quizbackend/internal/transport/http/routes"
	"github.com/rumonkh0/quizbackend/internal/usecase"
)

type Application struct {
	cfg      *config.AppConfig
	engine   *gin.Engine
	logger   *zap.Logger
	pool     *pgxpool.Pool
	producer *kafkainfra.Producer
}

func New(ctx context.Context, cfg *config.AppConfig) (*Application, error) {
	log, err := logger.New(cfg.App.Env)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	if err := database.RunMigrations(cfg.Postgres, log); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	pool, err := database.NewPostgresPool(ctx, cfg.Postgres, log)
	if err != nil {
		return nil, fmt.Errorf("init postgres: %w", err)
	}

	issuer, err := security.NewTokenIssuer(cfg.JWT.Secret, cfg.App.Name)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("init token issuer: %w", err)
	}

	repos := postgresrepo.NewRepositories(pool)

	var producer *kafkainfra.Producer
	var eventPublisher port.EventPublisher
	if len(cfg.Kafka.Brokers) > 0 {
		producer, err = kafkainfra.NewProducer(cfg.Kafka, log)
		if err != nil {
			log.Warn("failed to init kafka producer, using stub publisher", zap.Error(err))
			eventPublisher = kafkainfra.NewStubPublisher(log)
		} else {
			eventPublisher = kafkainfra.NewEventPublisher(producer, cfg.App, log)
			log.Info("kafka event publisher initialized", zap.Strings("brokers", cfg.Kafka.Brokers))
		}
	} else {
		log.Info("kafka brokers not configured, using stub publisher")
		eventPublisher = kafkainfra.NewStubPublisher(log)
	}

	authMetrics, err := telemetry.NewAuthMetrics(nil)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("init auth metrics: %w", err)
	}

	httpMetrics, err := middleware.NewHTTPMetrics(nil)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("init http metrics: %w", err)
	}

	authService := usecase.NewAuthService(repos.Accounts, repos.Quizzes, issuer, eventPublisher, authMetrics, log)
	topicService := usecase.NewTopicService(repos.Topics)
	moduleService := usecase.NewModuleService(repos.Modules, repos.Topics, repos.Quizzes)
	quizService := usecase.NewQuizService(repos.Quizzes)

	engine := routes.Register(routes.Dependencies{
		Config:   cfg,
		Logger:   log,
		Issuer:   issuer,
		Metrics:  httpMetrics,
		Database: pool,
		Services: routes.ServiceSet{
			Auth:    authService,
			Topics:  topicService,
			Modules: moduleService,
			Quizzes: quizService,
		},
	})

	return &Application{
		cfg:      cfg,
		engine:   engine,
		logger:   log,
		pool:     pool,
		producer: producer,
	}, nil
}

func (a *Application) Run(ctx context.Context) error {
	defer func() {
		_ = a.logger.Sync()
	}()
	defer func() {
		if a.pool != nil {
			a.pool.Close()
		}
	}()
	defer func() {
		if a.producer != nil {
			if err := a.producer.Close(); err != nil {
				a.logger.Warn("close kafka producer", zap.Error(err))
			}
		}
	}()

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", a.cfg.App.Host, a.cfg.App.Port),
		Handler:           a.engine,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	a.logger.Info("starting quiz backend API",
		zap.String("env", a.cfg.App.Env),
		zap.String("address", srv.Addr),
	)

	serverErrCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrCh <- fmt.Errorf("run server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown server: %w", err)
		}
		return nil
	case err := <-serverErrCh:
		return err
	}
}
