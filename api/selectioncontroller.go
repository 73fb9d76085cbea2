package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"newsdesk/events"
	"newsdesk/selector"
	"newsdesk/storage"
	"newsdesk/types"
)

// SelectionRequest is the batch selection payload.
type SelectionRequest struct {
	NewsIDs []string `json:"news_ids" binding:"required"`
}

// SelectionResponse is returned by all selection endpoints.
type SelectionResponse struct {
	Success       bool     `json:"success"`
	SelectedCount int      `json:"selected_count"`
	Message       string   `json:"message"`
	Errors        []string `json:"errors,omitempty"`
}

// registerSelectionRoutes registers selection management routes.
func (s *Server) registerSelectionRoutes(r *gin.Engine) {
	r.POST("/news/select/:id", s.handleSelectNews)
	r.POST("/news/select", s.handleSelectBatch)
	r.DELETE("/news/select/:id", s.handleDeselectNews)
	r.DELETE("/news/select", s.handleClearSelections)
}

// handleSelectNews marks one article for the current newsletter edition.
func (s *Server) handleSelectNews(c *gin.Context) {
	id := c.Param("id")
	article, err := s.selector.Select(c.Request.Context(), id, "")
	if err == storage.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	s.publishSelection("selected", article)
	c.JSON(http.StatusOK, SelectionResponse{
		Success:       true,
		SelectedCount: 1,
		Message:       fmt.Sprintf("Article '%s...' selected for newsletter", truncateTitle(article.Title, 50)),
	})
}

// handleSelectBatch selects a list of article IDs, continuing past errors.
func (s *Server) handleSelectBatch(c *gin.Context) {
	var req SelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := s.selector.SelectMany(c.Request.Context(), req.NewsIDs, "")
	for _, id := range result.SelectedIDs {
		s.publishSelection("selected", types.Article{ID: id})
	}

	c.JSON(http.StatusOK, SelectionResponse{
		Success:       result.SelectedCount > 0,
		SelectedCount: result.SelectedCount,
		Message:       fmt.Sprintf("Selected %d articles. Errors: %d", result.SelectedCount, len(result.Errors)),
		Errors:        result.Errors,
	})
}

// handleDeselectNews removes one article from the newsletter selection.
func (s *Server) handleDeselectNews(c *gin.Context) {
	id := c.Param("id")
	article, err := s.selector.Deselect(c.Request.Context(), id)
	if err == storage.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	s.publishSelection("deselected", article)
	c.JSON(http.StatusOK, SelectionResponse{
		Success:       true,
		SelectedCount: 0,
		Message:       "Article deselected from newsletter",
	})
}

// handleClearSelections clears every selection for a new edition.
func (s *Server) handleClearSelections(c *gin.Context) {
	count, err := s.selector.ClearAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, SelectionResponse{
		Success:       true,
		SelectedCount: 0,
		Message:       fmt.Sprintf("Cleared %d selections", count),
	})
}

func (s *Server) publishSelection(action string, article types.Article) {
	now := time.Now().UTC()
	err := s.producer.PublishSelection(events.SelectionEvent{
		Action:         action,
		ArticleID:      article.ID,
		NewsletterDate: now.Format("2006-01-02"),
		Actor:          selector.DefaultActor,
		At:             now,
	})
	if err != nil {
		slog.Warn("selection event publish failed", "article_id", article.ID, "error", err)
	}
}

func truncateTitle(title string, limit int) string {
	runes := []rune(title)
	if len(runes) <= limit {
		return title
	}
	return string(runes[:limit])
}
