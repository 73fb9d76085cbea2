// Package api exposes the curation workflow over HTTP: news queries,
// selection management, newsletter assembly, sync control and analytics.
package api

import (
	"github.com/gin-gonic/gin"

	"newsdesk/config"
	"newsdesk/events"
	"newsdesk/orchestrator"
	"newsdesk/ranker"
	"newsdesk/scorer"
	"newsdesk/selector"
	"newsdesk/storage"
)

// Version is reported by the root and health endpoints.
const Version = "1.0.0"

// Server holds the handler dependencies.
type Server struct {
	cfg      config.Config
	store    storage.ArticleStore
	selector *selector.Selector
	ranker   *ranker.Ranker
	scorer   *scorer.Scorer
	orch     *orchestrator.Orchestrator
	producer *events.Producer
}

// NewServer creates a Server. producer may be nil; selection events are then
// not published.
func NewServer(cfg config.Config, store storage.ArticleStore, orch *orchestrator.Orchestrator, producer *events.Producer) *Server {
	return &Server{
		cfg:      cfg,
		store:    store,
		selector: selector.New(store),
		ranker:   ranker.New(),
		scorer:   scorer.New(),
		orch:     orch,
		producer: producer,
	}
}

// NewRouter constructs a Gin engine with all routes registered.
func (s *Server) NewRouter() *gin.Engine {
	r := gin.New()
	// Minimal middleware: recovery; logger optional to reduce verbosity
	r.Use(gin.Recovery())

	s.registerNewsRoutes(r)
	s.registerSelectionRoutes(r)
	s.registerNewsletterRoutes(r)
	s.registerSyncRoutes(r)
	s.registerAnalyticsRoutes(r)
	s.registerHealthRoutes(r)
	return r
}
