package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"newsdesk/ranker"
	"newsdesk/storage"
	"newsdesk/types"
)

// registerAnalyticsRoutes registers distribution reporting routes.
func (s *Server) registerAnalyticsRoutes(r *gin.Engine) {
	r.GET("/analytics/sectors", s.handleSectorAnalytics)
	r.GET("/analytics/scores", s.handleScoreAnalytics)
	r.GET("/analytics/tags", s.handleTagAnalytics)
}

func (s *Server) loadAll(c *gin.Context) ([]types.Article, bool) {
	articles, err := s.store.List(c.Request.Context(), storage.ListFilter{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return nil, false
	}
	return articles, true
}

// handleSectorAnalytics returns the article count per primary sector.
func (s *Server) handleSectorAnalytics(c *gin.Context) {
	articles, ok := s.loadAll(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"total_articles":      len(articles),
		"sector_distribution": ranker.SectorDistribution(articles),
	})
}

// handleScoreAnalytics returns the article count per impact score.
func (s *Server) handleScoreAnalytics(c *gin.Context) {
	articles, ok := s.loadAll(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"total_articles":     len(articles),
		"score_distribution": ranker.ScoreDistribution(articles),
	})
}

// handleTagAnalytics returns the article count per strategic tag.
func (s *Server) handleTagAnalytics(c *gin.Context) {
	articles, ok := s.loadAll(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"total_articles":   len(articles),
		"tag_distribution": ranker.TagDistribution(articles),
	})
}
