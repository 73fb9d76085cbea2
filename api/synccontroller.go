package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"newsdesk/orchestrator"
)

// registerSyncRoutes registers sync control routes.
func (s *Server) registerSyncRoutes(r *gin.Engine) {
	r.POST("/sync", s.handleTriggerSync)
	r.GET("/sync/status", s.handleSyncStatus)
}

// handleTriggerSync runs one sync cycle and returns its summary. A 409 is
// returned when a run is already in flight.
func (s *Server) handleTriggerSync(c *gin.Context) {
	result, err := s.orch.RunSync(c.Request.Context())
	if err == orchestrator.ErrSyncInProgress {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Sync complete",
		"details": result,
	})
}

// handleSyncStatus returns the state of the last sync run.
func (s *Server) handleSyncStatus(c *gin.Context) {
	c.JSON(http.StatusOK, s.orch.SyncStatus())
}
