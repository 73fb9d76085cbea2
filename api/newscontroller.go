package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"newsdesk/config"
	"newsdesk/ranker"
	"newsdesk/storage"
	"newsdesk/types"
)

// datasetLimit caps the BI dataset export.
const datasetLimit = 1000

// registerNewsRoutes registers article query routes.
func (s *Server) registerNewsRoutes(r *gin.Engine) {
	r.GET("/news", s.handleListNews)
	r.GET("/news/recommended", s.handleRecommendedNews)
	r.GET("/news/:id", s.handleGetNews)
	r.GET("/news/:id/explain", s.handleExplainNews)
	r.GET("/dataset", s.handleDataset)
}

// handleListNews returns stored articles with optional filters:
// min_score, sector, tag, date, limit, offset.
func (s *Server) handleListNews(c *gin.Context) {
	filter := storage.ListFilter{
		Sector:   c.Query("sector"),
		Tag:      types.StrategicTag(c.Query("tag")),
		MinScore: queryInt(c, "min_score", 0),
		Date:     c.Query("date"),
	}

	articles, err := s.store.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// Stable order for pagination: highest impact first.
	articles = s.ranker.Rank(articles, rankAllOptions(len(articles)))

	limit := queryInt(c, "limit", 50)
	offset := queryInt(c, "offset", 0)
	articles = paginate(articles, limit, offset)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"total":   len(articles),
		"data":    articles,
	})
}

// handleRecommendedNews returns the top-N unselected picks, diversity applied.
func (s *Server) handleRecommendedNews(c *gin.Context) {
	topN := queryInt(c, "top_n", s.cfg.TopN)
	if topN < 1 || topN > 10 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "top_n must be between 1 and 10"})
		return
	}

	articles, err := s.store.List(c.Request.Context(), storage.ListFilter{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// Already-selected articles are excluded from recommendations.
	candidates := make([]types.Article, 0, len(articles))
	for _, a := range articles {
		if !a.Selected {
			candidates = append(candidates, a)
		}
	}

	recommended := s.ranker.Recommendations(candidates, topN)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"total":   len(recommended),
		"data":    recommended,
	})
}

// handleGetNews returns one article by ID.
func (s *Server) handleGetNews(c *gin.Context) {
	article, err := s.store.Get(c.Request.Context(), c.Param("id"))
	if err == storage.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": article})
}

// handleExplainNews returns the per-component score breakdown for one article.
func (s *Server) handleExplainNews(c *gin.Context) {
	article, err := s.store.Get(c.Request.Context(), c.Param("id"))
	if err == storage.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    s.scorer.Explain(article),
	})
}

// handleDataset exports the full scored dataset for BI tooling.
func (s *Server) handleDataset(c *gin.Context) {
	articles, err := s.store.List(c.Request.Context(), storage.ListFilter{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	articles = s.ranker.Rank(articles, rankAllOptions(len(articles)))
	limit := queryInt(c, "limit", 500)
	if limit > datasetLimit {
		limit = datasetLimit
	}
	articles = paginate(articles, limit, 0)

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"total_records": len(articles),
		"data":          articles,
	})
}

// rankAllOptions sorts a full result set without truncation or diversity,
// for stable listing and export order.
func rankAllOptions(n int) ranker.Options {
	return ranker.Options{
		TopN:     max(n, 1),
		MinScore: config.DefaultMinImpactScore,
	}
}

func queryInt(c *gin.Context, key string, defaultVal int) int {
	if raw := c.Query(key); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			return n
		}
	}
	return defaultVal
}

func paginate(articles []types.Article, limit, offset int) []types.Article {
	if offset >= len(articles) {
		return []types.Article{}
	}
	articles = articles[offset:]
	if limit > 0 && len(articles) > limit {
		articles = articles[:limit]
	}
	return articles
}
