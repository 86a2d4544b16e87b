package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alimikegami/point-of-sales/product-catalog-service/config"
	"github.com/alimikegami/point-of-sales/product-catalog-service/internal/controller"
	"github.com/alimikegami/point-of-sales/product-catalog-service/internal/infrastructure/blobstore"
	"github.com/alimikegami/point-of-sales/product-catalog-service/internal/infrastructure/message-queue/kafka"
	"github.com/alimikegami/point-of-sales/product-catalog-service/internal/infrastructure/tracing"
	appmiddleware "github.com/alimikegami/point-of-sales/product-catalog-service/internal/middleware"
	"github.com/alimikegami/point-of-sales/product-catalog-service/internal/repository"
	"github.com/alimikegami/point-of-sales/product-catalog-service/internal/service"
	"github.com/alimikegami/point-of-sales/product-catalog-service/pkg/response"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

const bodyLimit = "32M"

type App struct {
	DB     *mongo.Database
	Config *config.Config
	Server *echo.Echo
}

func SetupLogger(conf *config.Config) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if conf.IsProduction() {
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	// log.Ctx falls back to the global logger for requests without a scoped one
	zerolog.DefaultContextLogger = &log.Logger
}

// Build assembles the echo server with every dependency wired in. The
// returned cleanup releases the resources Build acquired.
func (app *App) Build(ctx context.Context) (cleanup func(), err error) {
	e := echo.New()
	e.HideBanner = true

	var cleanups []func()
	cleanup = func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}

	if app.Config.TracingConfig.CollectorHost != "" {
		traceProvider, err := tracing.InitTracing(app.Config.TracingConfig, app.Config.Environment)
		if err != nil {
			log.Error().Err(err).Str("component", "App.Build").Msg("Failed to initialize tracing")
		} else {
			cleanups = append(cleanups, func() {
				if err := traceProvider.Shutdown(context.Background()); err != nil {
					log.Error().Err(err).Str("component", "App.Build").Msg("Failed to shutdown tracing")
				}
			})

			tracer := traceProvider.Tracer(tracing.ServiceName)
			e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
				return func(c echo.Context) error {
					ctx := otel.GetTextMapPropagator().Extract(c.Request().Context(), propagation.HeaderCarrier(c.Request().Header))
					ctx, span := tracer.Start(ctx, fmt.Sprintf("[%s] %s", c.Request().Method, c.Path()))
					defer span.End()

					c.SetRequest(c.Request().WithContext(ctx))

					return next(c)
				}
			})
		}
	}

	e.Use(echoprometheus.NewMiddleware(""))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: app.Config.CORSConfig.AllowedOrigins,
	}))
	e.Use(middleware.BodyLimit(bodyLimit))
	e.Use(appmiddleware.Logger)

	images, err := blobstore.CreateGateway(ctx, app.Config.StorageConfig)
	if err != nil {
		cleanup()
		return nil, err
	}

	var publisher service.EventPublisher
	if p := kafka.CreateProductEventPublisher(app.Config); p != nil {
		publisher = p
		cleanups = append(cleanups, func() {
			if err := p.Close(); err != nil {
				log.Error().Err(err).Str("component", "App.Build").Msg("Failed to close kafka writer")
			}
		})
	}

	repo := repository.CreateNewMongoDBRepository(app.DB, app.Config.MongoDBConfig.CollectionName)
	svc := service.CreateProductService(repo, images, publisher)

	g := e.Group("")
	controller.CreateProductController(g, svc)

	g.GET("/ping", func(c echo.Context) error {
		return response.WriteMessageResponse(c, "pong")
	})

	app.Server = e

	return cleanup, nil
}

func (app *App) Start() {
	cleanup, err := app.Build(context.Background())
	if err != nil {
		log.Fatal().Err(err).Str("component", "App.Start").Msg("Failed to build server")
	}
	defer cleanup()

	go func() {
		metrics := echo.New()
		metrics.HideBanner = true
		metrics.GET("/metrics", echoprometheus.NewHandler())
		if err := metrics.Start(fmt.Sprintf(":%s", app.Config.MetricsPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start metrics server")
		}
	}()

	go func() {
		if err := app.Server.Start(fmt.Sprintf(":%s", app.Config.ServicePort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server")
	if err := app.StopServer(); err != nil {
		log.Error().Err(err).Msg("Failed to shutdown server gracefully")
	}
}

func (app *App) StopServer() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return app.Server.Shutdown(ctx)
}
