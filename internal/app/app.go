package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mmahmood233/buy-01/config"
	"github.com/mmahmood233/buy-01/internal/console"
	"github.com/mmahmood233/buy-01/internal/controller"
	"github.com/mmahmood233/buy-01/internal/gateway"
	"github.com/mmahmood233/buy-01/internal/identity"
	"github.com/mmahmood233/buy-01/internal/infrastructure/tracing"
	appmiddleware "github.com/mmahmood233/buy-01/internal/middleware"
	"github.com/mmahmood233/buy-01/pkg/response"
)

type App struct {
	Config    *config.Config
	Server    *echo.Echo
	scheduler gocron.Scheduler
}

func (app *App) Start() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = logger

	e := echo.New()
	traceProvider, err := tracing.InitTracing(app.Config.TracingConfig.CollectorHost)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize tracing")
	}

	defer func() {
		if err := traceProvider.Shutdown(context.Background()); err != nil {
			logger.Error().Err(err).Msg("Failed to shutdown tracing")
		}
	}()

	tracer := traceProvider.Tracer("seller-console")

	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// span creation and naming
			ctx, span := tracer.Start(c.Request().Context(), fmt.Sprintf("[%s] %s", c.Request().Method, c.Path()))
			defer span.End()

			req := c.Request()
			c.SetRequest(req.WithContext(ctx))

			return next(c)
		}
	})

	// Used empty string so that metrics are not prefixed with the service name making it easier to aggregate across services
	e.Use(echoprometheus.NewMiddleware(""))

	go func() {
		metrics := echo.New()
		metrics.GET("/metrics", echoprometheus.NewHandler())
		if err := metrics.Start(fmt.Sprintf(":%s", app.Config.MetricsPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start metrics server")
		}
	}()

	g := e.Group("/api/v1")
	g.Use(appmiddleware.Logger)

	registry := console.CreateRegistry(app.Config)
	authGateway := gateway.CreateAuthGateway(app.Config.UserServiceHost)
	publicCatalog := gateway.CreateProductGateway(app.Config.ProductServiceHost, identity.NewStaticCredential(""))
	controller.CreateController(g, registry, authGateway, publicCatalog, app.Config.JWTSecret)

	g.GET("/ping", func(c echo.Context) error {
		return response.WriteSuccessResponse(c, "Hello, World!", nil)
	})

	app.startSessionJanitor(registry)

	app.Server = e
	e.Logger.Fatal(e.Start(fmt.Sprintf(":%s", app.Config.ServicePort)))
}

func (app *App) startSessionJanitor(registry *console.Registry) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		log.Error().Err(err).Msg("Failed to create session janitor scheduler")
		return
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(5*time.Minute),
		gocron.NewTask(registry.EvictIdle),
	)
	if err != nil {
		log.Error().Err(err).Msg("Failed to schedule session eviction job")
		return
	}

	scheduler.Start()
	app.scheduler = scheduler
}

func (app *App) StopServer() error {
	if app.scheduler != nil {
		if err := app.scheduler.Shutdown(); err != nil {
			log.Error().Err(err).Msg("Failed to shutdown session janitor")
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return app.Server.Shutdown(ctx)
}
