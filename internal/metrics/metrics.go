package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Execution outcomes.
const (
	OutcomeSuccess        = "success"
	OutcomeStopped        = "stopped"
	OutcomeRejected       = "rejected"
	OutcomeTransportError = "transport_error"
)

var (
	// QueryExecutionTotal tracks query submissions by outcome (success, stopped, rejected or transport_error)
	QueryExecutionTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sqlquest_query_execution_total",
			Help: "Total number of query submissions by outcome",
		},
		[]string{"outcome"},
	)

	// StatementTotal tracks the executed statements by status (success or error)
	StatementTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sqlquest_statement_total",
			Help: "Total number of executed statements by status",
		},
		[]string{"status"},
	)

	// LessonViewTotal tracks the lessons loaded by lesson ID
	LessonViewTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sqlquest_lesson_view_total",
			Help: "Total number of lesson views by lesson",
		},
		[]string{"lesson_id"},
	)

	// ExampleLoadTotal tracks the examples loaded into the editor
	ExampleLoadTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sqlquest_example_load_total",
			Help: "Total number of examples loaded into the editor",
		},
	)

	// APIRequestDuration tracks the latency of the lesson and execution API by endpoint
	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sqlquest_api_request_duration_seconds",
			Help:    "Latency of requests to the lesson and execution API",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)
)

// RecordExecution records a query submission with the given outcome
func RecordExecution(outcome string) {
	QueryExecutionTotal.WithLabelValues(outcome).Inc()
}

// RecordStatement records an executed statement
func RecordStatement(success bool) {
	status := "success"
	if !success {
		status = "error"
	}

	StatementTotal.WithLabelValues(status).Inc()
}

// RecordLessonView records a lesson view
func RecordLessonView(lessonID int) {
	LessonViewTotal.WithLabelValues(strconv.Itoa(lessonID)).Inc()
}

// RecordExampleLoad records an example loaded into the editor
func RecordExampleLoad() {
	ExampleLoadTotal.Inc()
}

// ObserveAPIRequest records the latency of an API request started at start
func ObserveAPIRequest(endpoint string, start time.Time) {
	APIRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
}
