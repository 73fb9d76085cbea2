package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// registerNewsletterRoutes registers newsletter assembly routes.
func (s *Server) registerNewsletterRoutes(r *gin.Engine) {
	r.GET("/newsletter", s.handleNewsletter)
	r.GET("/newsletter/preview", s.handleNewsletterPreview)
	r.GET("/newsletter/history", s.handleSelectionHistory)
}

// handleNewsletter returns the manually selected articles. This is the
// source endpoint for newsletter generation; it never auto-fills.
func (s *Server) handleNewsletter(c *gin.Context) {
	articles, err := s.selector.SelectedArticles(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"selected_count":  len(articles),
		"newsletter_date": time.Now().UTC().Format("2006-01-02"),
		"data":            articles,
	})
}

// handleNewsletterPreview returns the formatted preview together with the
// readiness validation.
func (s *Server) handleNewsletterPreview(c *gin.Context) {
	preview, err := s.selector.Preview(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	validation, err := s.selector.Validate(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"preview":    preview,
		"validation": validation,
	})
}

// handleSelectionHistory returns the selection log, newest first. Query
// params: date (YYYY-MM-DD), limit.
func (s *Server) handleSelectionHistory(c *gin.Context) {
	entries, err := s.selector.History(c.Request.Context(), c.Query("date"), queryInt(c, "limit", 0))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"total":   len(entries),
		"data":    entries,
	})
}
