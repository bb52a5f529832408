package playground

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Healthz reports whether the API behind the playground is reachable.
func (s *Service) Healthz(c *gin.Context) {
	if !s.api.IsHealthy(c.Request.Context()) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
