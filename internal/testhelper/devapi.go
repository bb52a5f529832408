package testhelper

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/database-playground/sqlquest/internal/apiclient"
	"github.com/database-playground/sqlquest/internal/config"
	"github.com/database-playground/sqlquest/internal/devapi"
	"github.com/database-playground/sqlquest/internal/workers"
	"github.com/gin-gonic/gin"
)

// NewDevAPIServer starts the development API with the built-in lessons
// and returns the server and its API base URL.
func NewDevAPIServer(t *testing.T) (*httptest.Server, string) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	catalogue, err := devapi.LoadCatalogue("")
	if err != nil {
		t.Fatalf("failed to load lessons: %v", err)
	}

	engine := gin.New()
	devapi.NewService(catalogue, devapi.NewSandbox(), devapi.DefaultMaxStatements).Register(engine.Group("/api"))

	server := httptest.NewServer(engine)
	t.Cleanup(func() {
		// must wait the workers to finish
		workers.Global.Wait()
		server.Close()
	})

	return server, server.URL + "/api"
}

// NewDevAPIClient starts the development API and returns a client of it.
func NewDevAPIClient(t *testing.T) *apiclient.Client {
	t.Helper()

	_, baseURL := NewDevAPIServer(t)

	return apiclient.New(config.APIConfig{
		BaseURL: baseURL,
		Timeout: 10 * time.Second,
	})
}
