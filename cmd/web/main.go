// Command web serves the SQL Quest playground.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/database-playground/sqlquest/internal/config"
	"github.com/database-playground/sqlquest/internal/deps"
	"go.uber.org/fx"

	_ "github.com/database-playground/sqlquest/internal/deps/logger"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	app := fx.New(
		deps.FxCommonModule,
		fx.Provide(
			AnnotateMiddleware(LoggerMiddleware),
			AnnotateMiddleware(TracingMiddleware),
			AnnotateMiddleware(CorsMiddleware),
			AnnotateMiddleware(SessionMiddleware),
			AnnotateService(PlaygroundService),
			EmbeddedDevAPI,
			fx.Annotate(
				GinEngine,
				fx.ParamTags(`group:"services"`, `group:"middlewares"`),
			),
		),
		fx.Invoke(func(lifecycle fx.Lifecycle, cfg config.WebConfig) error {
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
