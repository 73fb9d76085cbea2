// Package selector manages the manual newsletter selection workflow.
//
// Newsletter content is never auto-generated: the system recommends, a human
// selects. The selector records every selection in an append-only history
// and validates the working set before publication.
package selector

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"newsdesk/storage"
	"newsdesk/types"
)

// DefaultActor is recorded in history when no selecting user is given.
const DefaultActor = "admin"

// defaultHistoryLimit caps history queries that pass no explicit limit.
const defaultHistoryLimit = 100

// Selector drives article selection against a backing store.
type Selector struct {
	store storage.ArticleStore
	now   func() time.Time
}

// New creates a Selector on the given store.
func New(store storage.ArticleStore) *Selector {
	return &Selector{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Select marks an article for newsletter inclusion and logs the selection.
// Re-selecting an already-selected article re-stamps the selection time and
// logs a new history entry; the log records every select action, not just
// state transitions.
func (s *Selector) Select(ctx context.Context, id, actor string) (types.Article, error) {
	if actor == "" {
		actor = DefaultActor
	}

	now := s.now()
	article, err := s.store.Select(ctx, id, now)
	if err != nil {
		return types.Article{}, err
	}

	entry := types.SelectionHistoryEntry{
		NewsletterDate: now.Format("2006-01-02"),
		ArticleID:      id,
		SelectedAt:     now,
		SelectedBy:     actor,
	}
	if err := s.store.AppendHistory(ctx, entry); err != nil {
		return article, fmt.Errorf("record selection history: %w", err)
	}

	return article, nil
}

// Deselect removes an article from the newsletter selection. The history
// entry from its selection is kept.
func (s *Selector) Deselect(ctx context.Context, id string) (types.Article, error) {
	return s.store.Deselect(ctx, id)
}

// SelectResult reports the outcome of a batch selection. A batch is partial
// success: failures land in Errors while the rest proceed.
type SelectResult struct {
	SelectedCount int      `json:"selected_count"`
	SelectedIDs   []string `json:"selected_ids"`
	Errors        []string `json:"errors"`
}

// SelectMany selects a batch of articles, continuing past per-article errors.
func (s *Selector) SelectMany(ctx context.Context, ids []string, actor string) SelectResult {
	result := SelectResult{
		SelectedIDs: []string{},
		Errors:      []string{},
	}

	for _, id := range ids {
		_, err := s.Select(ctx, id, actor)
		switch {
		case err == storage.ErrNotFound:
			result.Errors = append(result.Errors, fmt.Sprintf("Article not found: %s", id))
		case err != nil:
			result.Errors = append(result.Errors, fmt.Sprintf("Error selecting %s: %v", id, err))
		default:
			result.SelectedCount++
			result.SelectedIDs = append(result.SelectedIDs, id)
		}
	}
	return result
}

// DeselectResult reports the outcome of a batch deselection.
type DeselectResult struct {
	DeselectedCount int      `json:"deselected_count"`
	Errors          []string `json:"errors"`
}

// DeselectMany deselects a batch of articles, continuing past errors.
func (s *Selector) DeselectMany(ctx context.Context, ids []string) DeselectResult {
	result := DeselectResult{Errors: []string{}}

	for _, id := range ids {
		_, err := s.Deselect(ctx, id)
		switch {
		case err == storage.ErrNotFound:
			result.Errors = append(result.Errors, fmt.Sprintf("Article not found: %s", id))
		case err != nil:
			result.Errors = append(result.Errors, fmt.Sprintf("Error deselecting %s: %v", id, err))
		default:
			result.DeselectedCount++
		}
	}
	return result
}

// ClearAll deselects every article, for starting a new newsletter edition.
// Returns the count of cleared selections.
func (s *Selector) ClearAll(ctx context.Context) (int, error) {
	return s.store.ClearSelections(ctx)
}

// SelectedArticles returns the current selection, highest impact first.
func (s *Selector) SelectedArticles(ctx context.Context) ([]types.Article, error) {
	selected, err := s.store.Selected(ctx)
	if err != nil {
		return nil, err
	}
	sortSelected(selected)
	return selected, nil
}

// SelectionCount returns how many articles are currently selected.
func (s *Selector) SelectionCount(ctx context.Context) (int, error) {
	selected, err := s.store.Selected(ctx)
	if err != nil {
		return 0, err
	}
	return len(selected), nil
}

// History returns selection log entries newest first, optionally filtered by
// newsletter date (YYYY-MM-DD). limit <= 0 applies the default limit.
func (s *Selector) History(ctx context.Context, date string, limit int) ([]types.SelectionHistoryEntry, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	return s.store.History(ctx, date, limit)
}

// sortSelected orders by impact score descending, ID ascending on ties, so
// set-backed storage still yields a stable order.
func sortSelected(articles []types.Article) {
	sort.SliceStable(articles, func(i, j int) bool {
		if articles[i].ImpactScore != articles[j].ImpactScore {
			return articles[i].ImpactScore > articles[j].ImpactScore
		}
		return articles[i].ID < articles[j].ID
	})
}

// roundScore rounds to one decimal place.
func roundScore(v float64) float64 {
	return math.Round(v*10) / 10
}
