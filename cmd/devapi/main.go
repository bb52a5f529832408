// Command devapi serves the development lesson and query-execution API
// backed by an in-memory sqlite sandbox.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"slices"

	"github.com/Depado/ginprom"
	"github.com/database-playground/sqlquest/internal/config"
	"github.com/database-playground/sqlquest/internal/deps"
	"github.com/database-playground/sqlquest/internal/devapi"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	sloggin "github.com/samber/slog-gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/fx"

	_ "github.com/database-playground/sqlquest/internal/deps/logger"
)

const serviceName = "sqlquest-devapi"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	app := fx.New(
		fx.Provide(
			deps.DevAPIConfig,
			Catalogue,
			devapi.NewSandbox,
			Service,
			GinEngine,
		),
		fx.Invoke(func(lifecycle fx.Lifecycle, cfg config.DevAPIConfig) error {
			return deps.OTelLifecycle(lifecycle, cfg.OTel, serviceName)
		}),
		fx.Invoke(GinLifecycle),
	)

	if err := app.Start(ctx); err != nil {
		slog.Error("failed to start server", "error", err)
		os.Exit(1)
	}

	<-ctx.Done()
	slog.Info("Gracefully shutting down server (Ctrl+C again to force stop)...")
	cancel()

	if err := app.Stop(context.Background()); err != nil {
		slog.Error("failed to stop server", "error", err)
	}

	slog.Info("Server stopped")
}

// Catalogue loads the lessons from LESSONS_FILE, or the built-in ones.
func Catalogue(cfg config.DevAPIConfig) (*devapi.Catalogue, error) {
	catalogue, err := devapi.LoadCatalogue(cfg.LessonsFile)
	if err != nil {
		slog.Error("error loading lessons", "error", err, "path", cfg.LessonsFile)
		return nil, err
	}

	return catalogue, nil
}

// Service creates the development API service.
func Service(catalogue *devapi.Catalogue, sandbox *devapi.Sandbox, cfg config.DevAPIConfig) *devapi.Service {
	return devapi.NewService(catalogue, sandbox, cfg.MaxStatements)
}

// GinEngine creates a gin engine serving the API under /api.
func GinEngine(service *devapi.Service, cfg config.DevAPIConfig) *gin.Engine {
	engine := gin.New()

	p := ginprom.New(
		ginprom.Engine(engine),
		ginprom.Subsystem("gin"),
		ginprom.Path("/metrics"),
	)

	corsConfig := cors.Config{
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Content-Type"},
	}
	if slices.Contains(cfg.AllowedOrigins, "*") {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	}

	engine.Use(
		sloggin.New(slog.Default()),
		otelgin.Middleware(serviceName),
		p.Instrument(),
		cors.New(corsConfig),
		gin.Recovery(),
	)

	service.Register(engine.Group("/api"))

	return engine
}

// GinLifecycle starts the gin engine.
func GinLifecycle(lifecycle fx.Lifecycle, engine *gin.Engine, cfg config.DevAPIConfig) {
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: engine,
	}

	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				slog.Info("development API starting", "address", srv.Addr)

				if err := srv.ListenAndServe(); err != nil {
					if errors.Is(err, http.ErrServerClosed) {
						return
					}

					slog.Error("error running gin engine", "error", err)
				}
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}
