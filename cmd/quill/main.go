package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/totegamma/quill/internal/config"
	"github.com/totegamma/quill/internal/infra/database"
	"github.com/totegamma/quill/internal/infra/repository"
	"github.com/totegamma/quill/internal/present/rest"
	"github.com/totegamma/quill/internal/present/rest/middleware"
	"github.com/totegamma/quill/internal/service"
	"github.com/totegamma/quill/internal/usecase"
)

func main() {
	configPath := os.Getenv("QUILL_CONFIG")
	if configPath == "" {
		configPath = "config.yaml"
	}

	conf, err := config.Load(configPath)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	if conf.Server.EnableTrace {
		cleanup, err := setupTrace(conf.Server.TraceEndpoint)
		if err != nil {
			panic("failed to setup trace: " + err.Error())
		}
		defer cleanup()
	}

	db, err := database.NewPostgres(conf.Server.PostgresDsn)
	if err != nil {
		panic("failed to connect database")
	}

	err = database.MigratePostgres(db)
	if err != nil {
		panic("failed to migrate database")
	}

	rdb := database.NewRedis(conf.Server.RedisAddr, "", conf.Server.RedisDB)

	postRepo := repository.NewPostRepository(db)
	ownershipRepo := repository.NewOwnershipRepository(db)
	sessionRepo := repository.NewSessionRepository(rdb)
	userRepo := repository.NewUserRepository(db)

	postUsecase := usecase.NewPostUsecase(postRepo)
	authService := service.NewAuthService(sessionRepo, userRepo, ownershipRepo)

	registry := rest.NewRegistry(postUsecase, authService)
	handler := rest.NewHandler(registry)

	e := echo.New()
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	if conf.Server.EnableTrace {
		e.Use(otelecho.Middleware("quill"))
	}

	handler.RegisterRoutes(e, middleware.NewAuthMiddleware())

	e.Logger.Fatal(e.Start(conf.Server.ListenAddr))
}

func setupTrace(endpoint string) (func(), error) {
	ctx := context.Background()

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(endpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
	)
	otel.SetTracerProvider(provider)

	return func() {
		if err := provider.Shutdown(context.Background()); err != nil {
			slog.Error(
				"failed to shutdown tracer provider",
				slog.String("error", err.Error()),
				slog.String("module", "main"),
			)
		}
	}, nil
}
