package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// registerHealthRoutes registers the root and health endpoints.
func (s *Server) registerHealthRoutes(r *gin.Engine) {
	r.GET("/", s.handleRoot)
	r.GET("/health", s.handleHealth)
}

func (s *Server) handleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":    "newsdesk",
		"version": Version,
		"status":  "running",
	})
}

// handleHealth reports service and store health. The store check failing
// degrades the status but still returns 200 so probes can read details.
func (s *Server) handleHealth(c *gin.Context) {
	status := "healthy"
	storeConnected := true
	if err := s.store.Ping(c.Request.Context()); err != nil {
		status = "degraded"
		storeConnected = false
	}

	sync := s.orch.SyncStatus()
	c.JSON(http.StatusOK, gin.H{
		"status":          status,
		"version":         Version,
		"store_connected": storeConnected,
		"last_sync":       sync.LastRun,
	})
}
