// Package storage persists curated articles and newsletter selection state.
// The Redis implementation is the production store; consumers depend on the
// ArticleStore interface so tests can substitute in-memory fakes.
package storage

import (
	"context"
	"errors"
	"time"

	"newsdesk/types"
)

// ErrNotFound is returned when no article exists for the requested ID.
var ErrNotFound = errors.New("article not found")

// ListFilter narrows List results. Zero values mean no filtering.
type ListFilter struct {
	Sector   string
	Tag      types.StrategicTag
	MinScore int
	Date     string // YYYY-MM-DD
}

// ArticleStore is the persistence contract for curated articles and their
// selection state.
type ArticleStore interface {
	// Upsert writes an article keyed by ID. When a record with the same ID
	// already exists its selection state is preserved; everything else is
	// replaced. Returns true when the article was newly created.
	Upsert(ctx context.Context, article types.Article) (bool, error)

	// Get returns the article with the given ID, or ErrNotFound.
	Get(ctx context.Context, id string) (types.Article, error)

	// List returns all stored articles matching the filter, in no
	// particular order.
	List(ctx context.Context, filter ListFilter) ([]types.Article, error)

	// Select marks an article as selected at the given time. Selecting an
	// already-selected article succeeds and re-stamps the selection time.
	// Returns ErrNotFound for unknown IDs.
	Select(ctx context.Context, id string, at time.Time) (types.Article, error)

	// Deselect clears the selection of an article. Deselecting an
	// unselected article is a no-op that reports success. Returns
	// ErrNotFound for unknown IDs.
	Deselect(ctx context.Context, id string) (types.Article, error)

	// Selected returns all currently selected articles.
	Selected(ctx context.Context) ([]types.Article, error)

	// ClearSelections deselects every article and returns how many were
	// cleared. Not atomic across articles: a Select racing the clear can
	// leave that article selected.
	ClearSelections(ctx context.Context) (int, error)

	// AppendHistory appends an immutable selection log entry.
	AppendHistory(ctx context.Context, entry types.SelectionHistoryEntry) error

	// History returns logged entries, newest first, optionally filtered by
	// newsletter date. limit <= 0 means no limit.
	History(ctx context.Context, date string, limit int) ([]types.SelectionHistoryEntry, error)

	// Count returns the number of stored articles.
	Count(ctx context.Context) (int, error)

	// Ping verifies connectivity to the backing store.
	Ping(ctx context.Context) error
}
