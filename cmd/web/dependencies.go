package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/Depado/ginprom"
	"github.com/database-playground/sqlquest/httpapi"
	"github.com/database-playground/sqlquest/httpapi/playground"
	"github.com/database-playground/sqlquest/internal/apiclient"
	"github.com/database-playground/sqlquest/internal/config"
	"github.com/database-playground/sqlquest/internal/devapi"
	"github.com/database-playground/sqlquest/internal/events"
	"github.com/database-playground/sqlquest/internal/httputils"
	"github.com/database-playground/sqlquest/internal/render"
	"github.com/database-playground/sqlquest/internal/session"
	"github.com/database-playground/sqlquest/internal/workers"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	sloggin "github.com/samber/slog-gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/fx"
)

const serviceName = "sqlquest-web"

// LoggerMiddleware creates a request logging middleware that can be injected into gin.
func LoggerMiddleware() Middleware {
	return Middleware{
		Handler: sloggin.New(slog.Default()),
	}
}

// TracingMiddleware creates a tracing middleware that can be injected into gin.
func TracingMiddleware() Middleware {
	return Middleware{
		Handler: otelgin.Middleware(serviceName),
	}
}

// SessionMiddleware creates a session middleware that can be injected into gin.
func SessionMiddleware(cfg config.WebConfig) Middleware {
	return Middleware{
		Handler: httputils.SessionMiddleware(httputils.SessionOptions{
			MaxAge: int(cfg.Session.TTL.Seconds()),
			Secure: cfg.Session.CookieSecure,
		}),
	}
}

// CorsMiddleware creates a cors middleware that can be injected into gin.
func CorsMiddleware(cfg config.WebConfig) Middleware {
	allowedOrigins := cfg.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{cfg.ServerURI}
	}

	return Middleware{
		Handler: cors.New(cors.Config{
			AllowOrigins:     allowedOrigins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Content-Type", "User-Agent", "Referer", "HX-Request", "HX-Target", "HX-Current-URL"},
			AllowCredentials: true,
		}),
	}
}

// PlaygroundService creates the playground service.
func PlaygroundService(api *apiclient.Client, storage session.Storage, eventService *events.EventService) *playground.Service {
	return playground.NewService(api, storage, eventService)
}

// EmbeddedDevAPI creates the development API served under /api, or nil
// when EMBED_DEVAPI is not set.
func EmbeddedDevAPI(cfg config.WebConfig) (*devapi.Service, error) {
	if !cfg.EmbedDevAPI {
		return nil, nil
	}

	catalogue, err := devapi.LoadCatalogue(cfg.DevAPI.LessonsFile)
	if err != nil {
		slog.Error("error loading lessons", "error", err)
		return nil, err
	}

	slog.Warn("development API is embedded, do not use it in production")

	return devapi.NewService(catalogue, devapi.NewSandbox(), cfg.DevAPI.MaxStatements), nil
}

// GinEngine creates a gin engine.
func GinEngine(services []httpapi.Service, middlewares []Middleware, devAPI *devapi.Service, cfg config.WebConfig) *gin.Engine {
	if cfg.Environment == config.EnvironmentProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	if err := engine.SetTrustedProxies(cfg.TrustProxies); err != nil {
		slog.Error("error setting trusted proxies", "error", err)
	}

	p := ginprom.New(
		ginprom.Engine(engine),
		ginprom.Subsystem("gin"),
		ginprom.Path("/metrics"),
	)
	engine.Use(p.Instrument())

	for _, middleware := range middlewares {
		engine.Use(middleware.Handler)
	}

	engine.Use(gin.Recovery())

	engine.SetHTMLTemplate(render.Templates())
	engine.StaticFS("/static", render.StaticFS())

	httpapi.Register(engine, services...)

	if devAPI != nil {
		devAPI.Register(engine.Group("/api"))
	}

	return engine
}

// GinLifecycle starts the gin engine.
func GinLifecycle(lifecycle fx.Lifecycle, engine *gin.Engine, cfg config.WebConfig) {
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: engine,
	}

	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				slog.Info("gin engine starting", "address", srv.Addr, "server_uri", cfg.ServerURI)

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
			if err := srv.Shutdown(ctx); err != nil {
				slog.Error("error shutting down gin engine", "error", err)
				return err
			}

			// flush the analytics events still in flight
			workers.Global.Wait()

			return nil
		},
	})
}

// Middleware is a middleware that can be injected into gin.
type Middleware struct {
	Handler gin.HandlerFunc
}

// AnnotateMiddleware annotates a middleware function to be injected into gin.
func AnnotateMiddleware(f any) any {
	return fx.Annotate(
		f,
		fx.ResultTags(`group:"middlewares"`),
	)
}

// AnnotateService annotates a service function to be injected into gin.
func AnnotateService(f any) any {
	return fx.Annotate(
		f,
		fx.As(new(httpapi.Service)),
		fx.ResultTags(`group:"services"`),
	)
}
