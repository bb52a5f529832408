package deps

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/database-playground/sqlquest/internal/config"
	"github.com/database-playground/sqlquest/internal/deps/logger"
	"github.com/hashicorp/go-multierror"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploggrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploghttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutlog"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/log/global"
	"go.opentelemetry.io/otel/propagation"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/fx"
)

// OTelSDK installs the global tracer provider, and the logger provider
// when OTEL_LOGS is set. The returned function flushes and shuts them down.
func OTelSDK(ctx context.Context, cfg config.OTelConfig, fallbackServiceName string) (func(context.Context) error, error) {
	if cfg.Exporter == config.OTelExporterNone {
		return func(context.Context) error { return nil }, nil
	}

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = fallbackServiceName
	}

	res, err := resource.New(ctx,
		resource.WithFromEnv(),
		resource.WithTelemetrySDK(),
		resource.WithAttributes(attribute.String("service.name", serviceName)),
	)
	if err != nil {
		return nil, fmt.Errorf("create resource: %w", err)
	}

	traceExporter, err := newTraceExporter(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create trace exporter: %w", err)
	}

	tracerProvider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(traceExporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tracerProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	shutdowns := []func(context.Context) error{tracerProvider.Shutdown}

	if cfg.Logs {
		logExporter, err := newLogExporter(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("create log exporter: %w", err)
		}

		loggerProvider := sdklog.NewLoggerProvider(
			sdklog.WithProcessor(sdklog.NewBatchProcessor(logExporter)),
			sdklog.WithResource(res),
		)
		global.SetLoggerProvider(loggerProvider)
		logger.UseOTel(serviceName)

		shutdowns = append(shutdowns, loggerProvider.Shutdown)
	}

	slog.Info("OpenTelemetry enabled", "exporter", cfg.Exporter, "protocol", cfg.Protocol, "logs", cfg.Logs)

	return func(ctx context.Context) error {
		var result *multierror.Error
		for _, shutdown := range shutdowns {
			if err := shutdown(ctx); err != nil {
				result = multierror.Append(result, err)
			}
		}

		return result.ErrorOrNil()
	}, nil
}

func newTraceExporter(ctx context.Context, cfg config.OTelConfig) (sdktrace.SpanExporter, error) {
	if cfg.Exporter == config.OTelExporterStdout {
		return stdouttrace.New()
	}

	if cfg.Protocol == config.OTelProtocolGRPC {
		return otlptracegrpc.New(ctx)
	}

	return otlptracehttp.New(ctx)
}

func newLogExporter(ctx context.Context, cfg config.OTelConfig) (sdklog.Exporter, error) {
	if cfg.Exporter == config.OTelExporterStdout {
		return stdoutlog.New()
	}

	if cfg.Protocol == config.OTelProtocolGRPC {
		return otlploggrpc.New(ctx)
	}

	return otlploghttp.New(ctx)
}

// OTelLifecycle sets up OpenTelemetry right away, so that everything
// constructed afterwards picks up the global providers, and shuts it down
// when the application stops.
func OTelLifecycle(lifecycle fx.Lifecycle, cfg config.OTelConfig, serviceName string) error {
	shutdown, err := OTelSDK(context.Background(), cfg, serviceName)
	if err != nil {
		slog.Error("error setting up OpenTelemetry", "error", err)
		return err
	}

	lifecycle.Append(fx.StopHook(shutdown))
	return nil
}
