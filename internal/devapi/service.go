// Package devapi is a development implementation of the lesson and
// query-execution API, backed by an in-memory sqlite sandbox.
package devapi

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/database-playground/sqlquest/httpapi"
	"github.com/gin-gonic/gin"
)

// DefaultMaxStatements is the maximum number of statements in one submission.
const DefaultMaxStatements = 15

type Service struct {
	catalogue     *Catalogue
	sandbox       *Sandbox
	maxStatements int
}

func NewService(catalogue *Catalogue, sandbox *Sandbox, maxStatements int) *Service {
	if maxStatements <= 0 {
		maxStatements = DefaultMaxStatements
	}

	return &Service{
		catalogue:     catalogue,
		sandbox:       sandbox,
		maxStatements: maxStatements,
	}
}

func (s *Service) Register(router gin.IRouter) {
	router.GET("/lessons", s.ListLessons)
	router.GET("/lessons/:id", s.GetLesson)
	router.POST("/execute", s.Execute)
	router.GET("/health", s.Health)
}

var _ httpapi.Service = (*Service)(nil)

func (s *Service) ListLessons(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"lessons": s.catalogue.List(),
	})
}

func (s *Service) GetLesson(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lesson not found"})
		return
	}

	lesson, ok := s.catalogue.Get(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lesson not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"lesson":  lesson,
	})
}

type executeRequest struct {
	Query string `json:"query"`
}

func (s *Service) Execute(c *gin.Context) {
	var req executeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body."})
		return
	}

	query := strings.TrimSpace(req.Query)
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No query provided"})
		return
	}

	statements := SplitStatements(query)
	if len(statements) > s.maxStatements {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("Too many statements. Max %d.", s.maxStatements),
		})
		return
	}

	for i, statement := range statements {
		if err := CheckStatement(statement); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": fmt.Sprintf("Statement %d is not safe: %s", i+1, RejectionMessage(err)),
			})
			return
		}
	}

	resp, err := s.sandbox.Run(c.Request.Context(), statements)
	if err != nil {
		slog.Error("failed to run statements", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Service) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
