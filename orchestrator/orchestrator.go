// Package orchestrator runs the end-to-end sync cycle: fetch raw articles,
// transform and score them, persist the results, and archive and publish the
// run outcome.
package orchestrator

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"newsdesk/archive"
	"newsdesk/config"
	"newsdesk/events"
	"newsdesk/ingest"
	"newsdesk/scorer"
	"newsdesk/storage"
	"newsdesk/transformer"
	"newsdesk/types"
)

// SyncResult summarizes one completed sync run.
type SyncResult struct {
	Fetched    int           `json:"fetched"`
	Created    int           `json:"created"`
	Updated    int           `json:"updated"`
	FeedErrors int           `json:"feed_errors"`
	Duration   time.Duration `json:"-"`
	DurationMS int64         `json:"duration_ms"`
	FinishedAt time.Time     `json:"finished_at"`
}

// Status reports whether a sync is in flight and the outcome of the last run.
type Status struct {
	Running    bool        `json:"running"`
	LastRun    *time.Time  `json:"last_run,omitempty"`
	LastResult *SyncResult `json:"last_result,omitempty"`
	LastError  string      `json:"last_error,omitempty"`
}

// Orchestrator wires the pipeline stages together. Producer and Archive may
// be nil; those steps are skipped.
type Orchestrator struct {
	cfg         config.Config
	store       storage.ArticleStore
	transformer *transformer.Transformer
	scorer      *scorer.Scorer
	producer    *events.Producer
	archive     *archive.Archive

	mu     sync.Mutex
	status Status
}

// New creates an Orchestrator.
func New(cfg config.Config, store storage.ArticleStore, producer *events.Producer, arch *archive.Archive) *Orchestrator {
	return &Orchestrator{
		cfg:         cfg,
		store:       store,
		transformer: transformer.New(),
		scorer:      scorer.New(),
		producer:    producer,
		archive:     arch,
	}
}

// ErrSyncInProgress is returned when a run is requested while one is active.
var ErrSyncInProgress = fmt.Errorf("sync already in progress")

// RunSync executes one sync cycle. Only one run may be active at a time.
func (o *Orchestrator) RunSync(ctx context.Context) (SyncResult, error) {
	o.mu.Lock()
	if o.status.Running {
		o.mu.Unlock()
		return SyncResult{}, ErrSyncInProgress
	}
	o.status.Running = true
	o.mu.Unlock()

	result, err := o.runOnce(ctx)

	o.mu.Lock()
	o.status.Running = false
	now := result.FinishedAt
	if now.IsZero() {
		now = time.Now().UTC()
	}
	o.status.LastRun = &now
	if err != nil {
		o.status.LastError = err.Error()
	} else {
		o.status.LastError = ""
		r := result
		o.status.LastResult = &r
	}
	o.mu.Unlock()

	return result, err
}

func (o *Orchestrator) runOnce(ctx context.Context) (SyncResult, error) {
	start := time.Now()
	slog.Info("sync started", "feeds", len(o.cfg.Feeds()))

	raws, feedErrs := ingest.FetchAll(o.cfg.Feeds(), o.cfg.SyncLimit)
	for _, err := range feedErrs {
		slog.Warn("feed fetch failed", "error", err)
	}
	if len(raws) > o.cfg.SyncLimit {
		raws = raws[:o.cfg.SyncLimit]
	}

	if o.cfg.ExtractContent {
		ingest.FillMissingSummaries(raws)
	}

	articles := o.scorer.ScoreBatch(o.transformer.TransformBatch(raws))

	created, updated := 0, 0
	for _, article := range articles {
		isNew, err := o.store.Upsert(ctx, article)
		if err != nil {
			return SyncResult{}, fmt.Errorf("persist article %s: %w", article.ID, err)
		}
		if isNew {
			created++
		} else {
			updated++
		}
	}

	finished := time.Now().UTC()
	result := SyncResult{
		Fetched:    len(raws),
		Created:    created,
		Updated:    updated,
		FeedErrors: len(feedErrs),
		Duration:   time.Since(start),
		DurationMS: time.Since(start).Milliseconds(),
		FinishedAt: finished,
	}

	if err := o.archive.StoreSnapshot(ctx, articles, finished); err != nil {
		slog.Warn("snapshot archive failed", "error", err)
	}

	if err := o.producer.PublishSync(events.SyncEvent{
		Fetched:    result.Fetched,
		Created:    result.Created,
		Updated:    result.Updated,
		FeedErrors: result.FeedErrors,
		FinishedAt: finished,
	}); err != nil {
		slog.Warn("sync event publish failed", "error", err)
	}

	slog.Info("sync complete",
		"fetched", result.Fetched,
		"created", result.Created,
		"updated", result.Updated,
		"feed_errors", result.FeedErrors,
		"duration", result.Duration)
	return result, nil
}

// IngestRaw transforms, scores and persists a single raw article. Used by
// the Kafka consumer path.
func (o *Orchestrator) IngestRaw(ctx context.Context, raw types.RawArticle) error {
	if raw.ID == "" {
		raw.ID = types.GenerateID(raw.Link, raw.Title)
	}
	article := o.scorer.Score(o.transformer.Transform(raw))
	_, err := o.store.Upsert(ctx, article)
	return err
}

// ArticleHandler returns the Kafka handler that feeds consumed raw articles
// into the pipeline. Messages without a title or link are skipped.
func (o *Orchestrator) ArticleHandler() events.MessageHandler {
	return &events.TypedMessageHandler[types.RawArticle]{
		Validate: func(raw *types.RawArticle) bool {
			return raw.Title != "" && raw.Link != ""
		},
		Process: func(ctx context.Context, raw *types.RawArticle) error {
			return o.IngestRaw(ctx, *raw)
		},
		AlwaysMark: true,
	}
}

// SyncStatus returns a snapshot of the current sync state.
func (o *Orchestrator) SyncStatus() Status {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.status
}
