// Package playground serves the SQL learning playground: the lesson
// pages, the example loader and the query runner.
package playground

import (
	"context"

	"github.com/database-playground/sqlquest/httpapi"
	"github.com/database-playground/sqlquest/internal/events"
	"github.com/database-playground/sqlquest/internal/session"
	"github.com/database-playground/sqlquest/models"
	"github.com/gin-gonic/gin"
)

// Messages shown in the results panel.
const (
	MessageLessonsFailed = "Failed to load lessons. Please refresh the page."
	MessageLessonFailed  = "Failed to load lesson content."
	MessageEmptyQuery    = "Please enter a SQL query."
	MessageRunFailed     = "Failed to execute query. Please try again."
	MessageRunBusy       = "A query is already running."
)

// API is the lesson and query-execution API the playground is built on.
type API interface {
	ListLessons(ctx context.Context) ([]models.LessonSummary, error)
	GetLesson(ctx context.Context, id int) (models.Lesson, error)
	Execute(ctx context.Context, query string) (models.ExecutionResult, error)
	IsHealthy(ctx context.Context) bool
}

type Service struct {
	api     API
	storage session.Storage
	events  *events.EventService
}

func NewService(api API, storage session.Storage, eventService *events.EventService) *Service {
	return &Service{
		api:     api,
		storage: storage,
		events:  eventService,
	}
}

func (s *Service) Register(router gin.IRouter) {
	router.GET("/", s.Index)
	router.GET("/lessons/:id", s.ShowLesson)
	router.GET("/lessons/:id/examples/:index", s.LoadExample)
	router.POST("/run", s.Run)
	router.GET("/healthz", s.Healthz)
}

var _ httpapi.Service = (*Service)(nil)
