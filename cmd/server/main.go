package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dannynguyen3011/draft-ztp/internal/application/usecase"
	"github.com/dannynguyen3011/draft-ztp/internal/domain/port"
	"github.com/dannynguyen3011/draft-ztp/internal/domain/service"
	"github.com/dannynguyen3011/draft-ztp/internal/infrastructure/config"
	"github.com/dannynguyen3011/draft-ztp/internal/infrastructure/messaging"
	"github.com/dannynguyen3011/draft-ztp/internal/infrastructure/metrics"
	"github.com/dannynguyen3011/draft-ztp/internal/infrastructure/ml"
	persistence "github.com/dannynguyen3011/draft-ztp/internal/infrastructure/persistence/postgres"
	grpcpresentation "github.com/dannynguyen3011/draft-ztp/internal/presentation/grpc"
	"github.com/dannynguyen3011/draft-ztp/internal/presentation/rest"
	"github.com/dannynguyen3011/draft-ztp/pkg/auth"
	"github.com/dannynguyen3011/draft-ztp/pkg/kafka"
	"github.com/dannynguyen3011/draft-ztp/pkg/observability"
	"github.com/dannynguyen3011/draft-ztp/pkg/postgres"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg := config.Load()

	logger := observability.InitLogger(observability.LogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	slog.SetDefault(logger)

	logger.Info("starting risk-service",
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
	)

	if cfg.EnableTracing {
		shutdown, err := observability.InitTracer(ctx, observability.TracingConfig{
			ServiceName: "risk-service",
			Endpoint:    cfg.OTLPEndpoint,
			Insecure:    true,
		})
		if err != nil {
			logger.Warn("failed to initialize tracer, continuing without tracing", "error", err)
		} else {
			defer shutdown(ctx)
		}
	}

	_, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{
		ServiceName: "risk-service",
	})
	if err != nil {
		logger.Error("failed to initialize metrics", "error", err)
		os.Exit(1)
	}

	// Vocabulary artifact is the contract with the trained model: refusing
	// to start beats silently encoding everything to fallback codes.
	vocabs, err := ml.LoadVocabularies(cfg.VocabularyPath)
	if err != nil {
		logger.Error("failed to load vocabulary artifact", "error", err)
		os.Exit(1)
	}

	var scoringModel port.Model
	if linear, err := ml.LoadLinearModel(cfg.ModelPath); err != nil {
		logger.Warn("no usable model artifact, running with the synthetic stand-in",
			"path", cfg.ModelPath,
			"error", err,
		)
		scoringModel = ml.NewSyntheticModel(logger)
	} else {
		logger.Info("loaded model artifact", "path", cfg.ModelPath)
		scoringModel = linear
	}

	recorder := metrics.NewRecorder(prometheus.DefaultRegisterer)

	encoders, err := service.NewEncoderRegistry(vocabs, recorder, logger)
	if err != nil {
		logger.Error("failed to build encoder registry", "error", err)
		os.Exit(1)
	}
	builder := service.NewVectorBuilder(encoders)
	scorer := service.NewScoringEngine(scoringModel, recorder, logger)
	mapper := service.NewAuditLogMapper(logger)

	// Database connection.
	dbCtx, dbCancel := context.WithTimeout(ctx, 10*time.Second)
	defer dbCancel()

	pool, err := postgres.NewPool(dbCtx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("connected to database")

	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsDir); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Wire infrastructure adapters.
	predictionRepo := persistence.NewPredictionRepository(pool)

	producer := kafka.NewProducer(kafka.Config{Brokers: []string{cfg.KafkaBroker}})
	defer producer.Close() //nolint:errcheck
	eventPublisher := messaging.NewKafkaPublisher(producer, cfg.EventTopic, logger)

	// Wire use cases.
	predictUC := usecase.NewPredict(predictionRepo, eventPublisher, builder, scorer, logger)
	predictBatchUC := usecase.NewPredictBatch(predictUC, logger)
	predictAuditLogsUC := usecase.NewPredictAuditLogs(predictionRepo, eventPublisher, mapper, builder, scorer, recorder, logger)
	serviceStatusUC := usecase.NewServiceStatus(encoders, scorer)
	getPredictionUC := usecase.NewGetPrediction(predictionRepo)

	var jwtService *auth.JWTService
	if cfg.AuthEnabled() {
		jwtService, err = auth.NewJWTService(auth.JWTConfig{
			Secret:     cfg.JWTSecret,
			Issuer:     cfg.JWTIssuer,
			Expiration: cfg.JWTExpiration,
		})
		if err != nil {
			logger.Error("failed to initialize JWT service", "error", err)
			os.Exit(1)
		}
	}

	// gRPC server.
	grpcHandler := grpcpresentation.NewRiskServiceHandler(
		predictUC, predictBatchUC, predictAuditLogsUC, serviceStatusUC,
		cfg.AuthEnabled(), logger,
	)
	grpcServer := grpcpresentation.NewServer(
		grpcHandler, cfg.GRPCAddress(), logger, jwtService,
		cfg.TLSCertFile, cfg.TLSKeyFile,
	)

	// HTTP sidecar: probes, introspection, query surface, metrics.
	healthHandler := rest.NewHealthHandler(logger, serviceStatusUC, getPredictionUC, func(ctx context.Context) error {
		return postgres.HealthCheck(ctx, pool)
	})
	httpMux := http.NewServeMux()
	healthHandler.RegisterRoutes(httpMux)
	httpMux.Handle("GET /metrics", metricsHandler)

	httpServer := &http.Server{
		Addr:         cfg.HTTPAddress(),
		Handler:      httpMux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start servers.
	errCh := make(chan error, 2)

	go func() {
		if err := grpcServer.Start(); err != nil {
			errCh <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	go func() {
		logger.Info("HTTP server starting", "address", cfg.HTTPAddress())
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	logger.Info("risk-service started",
		"grpc_address", cfg.GRPCAddress(),
		"http_address", cfg.HTTPAddress(),
		"model_source", scorer.ModelDescription(),
		"environment", cfg.Environment,
	)

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("server error", "error", err)
	}

	logger.Info("shutting down risk-service")

	grpcServer.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("risk-service stopped")
}
