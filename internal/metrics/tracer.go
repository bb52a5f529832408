package metrics

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// Tracer returns the tracer of a component, named after the service.
func Tracer(component string) trace.Tracer {
	return otel.Tracer("sqlquest." + component)
}
