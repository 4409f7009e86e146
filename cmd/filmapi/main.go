package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/totegamma/filmapi/internal/config"
	"github.com/totegamma/filmapi/internal/infra/database"
	"github.com/totegamma/filmapi/internal/infra/repository"
	"github.com/totegamma/filmapi/internal/logger"
	"github.com/totegamma/filmapi/internal/present/rest"
	restmiddleware "github.com/totegamma/filmapi/internal/present/rest/middleware"
	"github.com/totegamma/filmapi/internal/service"
	"github.com/totegamma/filmapi/internal/usecase"
)

var version = "dev"

func main() {
	configPath := flag.String("config", "config.yaml", "path to the config file")
	flag.Parse()

	// a missing .env is fine
	_ = godotenv.Load()

	conf, err := config.Load(*configPath)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log, err := logger.New(conf.Server.LogLevel, conf.Server.Development)
	if err != nil {
		panic("failed to build logger: " + err.Error())
	}
	defer logger.Sync(log)
	zap.ReplaceGlobals(log)

	log.Info("starting filmapi",
		zap.String("version", version),
		zap.String("driver", conf.Server.Driver),
		zap.String("listen", conf.Server.Listen),
	)

	if conf.Server.EnableTrace {
		shutdown, err := setupTraceProvider(context.Background(), conf.Server.TraceEndpoint, version)
		if err != nil {
			log.Fatal("failed to set up tracing", zap.Error(err))
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(ctx); err != nil {
				log.Warn("failed to flush traces", zap.Error(err))
			}
		}()
	}

	var db *gorm.DB
	switch conf.Server.Driver {
	case "sqlite":
		db, err = database.NewSQLite(conf.Server.SqlitePath, log)
	default:
		db, err = database.NewPostgres(conf.Server.PostgresDsn, log)
	}
	if err != nil {
		log.Fatal("failed to connect database", zap.Error(err))
	}

	err = database.Migrate(db)
	if err != nil {
		log.Fatal("failed to migrate database", zap.Error(err))
	}

	if conf.Server.Seed {
		err = database.Seed(context.Background(), db, log)
		if err != nil {
			log.Fatal("failed to seed database", zap.Error(err))
		}
	}

	rdb := database.NewRedis(conf.Server.RedisAddr, conf.Server.RedisPassword, conf.Server.RedisDB)
	if rdb != nil {
		defer rdb.Close()
	} else {
		log.Info("redis is not configured, change events are disabled")
	}
	signalService := service.NewSignalService(rdb, log)

	store := repository.NewStore(db)
	characterRepo := repository.NewCharacterRepository(db)
	movieRepo := repository.NewMovieRepository(db)
	franchiseRepo := repository.NewFranchiseRepository(db)
	associationRepo := repository.NewAssociationRepository(db)

	catalog := usecase.NewCatalog(store, store, associationRepo, signalService)
	characterUsecase := usecase.NewCharacterUsecase(catalog, characterRepo, conf.Catalog.CharacterMovieLimit)
	movieUsecase := usecase.NewMovieUsecase(catalog, movieRepo, characterRepo)
	franchiseUsecase := usecase.NewFranchiseUsecase(catalog, franchiseRepo, movieRepo, characterRepo)

	handler := rest.NewHandler(
		characterUsecase,
		movieUsecase,
		franchiseUsecase,
		signalService,
		store,
		log,
	)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string {
			return uuid.NewString()
		},
	}))
	if conf.Server.EnableTrace {
		e.Use(otelecho.Middleware(serviceName, otelecho.WithSkipper(func(c echo.Context) bool {
			return c.Path() == "/metrics" || c.Path() == "/health"
		})))
	}
	e.Use(restmiddleware.TagRequest)
	e.Use(restmiddleware.RequestLogger(log.Named("http")))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	handler.RegisterRoutes(e)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	go func() {
		err := e.Start(conf.Server.Listen)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Error("failed to shut down server", zap.Error(err))
	}
}
