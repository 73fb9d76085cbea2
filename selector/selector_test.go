package selector

import (
	"context"
	"strings"
	"testing"
	"time"

	"newsdesk/storage"
	"newsdesk/types"
)

var testNow = time.Date(2026, 8, 25, 9, 0, 0, 0, time.UTC)

// fakeArticleStore is an in-memory ArticleStore for tests.
type fakeArticleStore struct {
	articles map[string]types.Article
	history  []types.SelectionHistoryEntry
}

func newFakeArticleStore(articles ...types.Article) *fakeArticleStore {
	f := &fakeArticleStore{articles: make(map[string]types.Article)}
	for _, a := range articles {
		f.articles[a.ID] = a
	}
	return f
}

func (f *fakeArticleStore) Upsert(_ context.Context, article types.Article) (bool, error) {
	_, exists := f.articles[article.ID]
	if exists {
		existing := f.articles[article.ID]
		article.Selected = existing.Selected
		article.SelectedAt = existing.SelectedAt
	}
	f.articles[article.ID] = article
	return !exists, nil
}

func (f *fakeArticleStore) Get(_ context.Context, id string) (types.Article, error) {
	a, ok := f.articles[id]
	if !ok {
		return types.Article{}, storage.ErrNotFound
	}
	return a, nil
}

func (f *fakeArticleStore) List(_ context.Context, _ storage.ListFilter) ([]types.Article, error) {
	out := make([]types.Article, 0, len(f.articles))
	for _, a := range f.articles {
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeArticleStore) Select(_ context.Context, id string, at time.Time) (types.Article, error) {
	a, ok := f.articles[id]
	if !ok {
		return types.Article{}, storage.ErrNotFound
	}
	a.Selected = true
	ts := at
	a.SelectedAt = &ts
	f.articles[id] = a
	return a, nil
}

func (f *fakeArticleStore) Deselect(_ context.Context, id string) (types.Article, error) {
	a, ok := f.articles[id]
	if !ok {
		return types.Article{}, storage.ErrNotFound
	}
	a.Selected = false
	a.SelectedAt = nil
	f.articles[id] = a
	return a, nil
}

func (f *fakeArticleStore) Selected(_ context.Context) ([]types.Article, error) {
	out := make([]types.Article, 0)
	for _, a := range f.articles {
		if a.Selected {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeArticleStore) ClearSelections(ctx context.Context) (int, error) {
	count := 0
	for id, a := range f.articles {
		if a.Selected {
			a.Selected = false
			a.SelectedAt = nil
			f.articles[id] = a
			count++
		}
	}
	return count, nil
}

func (f *fakeArticleStore) AppendHistory(_ context.Context, entry types.SelectionHistoryEntry) error {
	f.history = append(f.history, entry)
	return nil
}

func (f *fakeArticleStore) History(_ context.Context, date string, limit int) ([]types.SelectionHistoryEntry, error) {
	out := make([]types.SelectionHistoryEntry, 0)
	for i := len(f.history) - 1; i >= 0; i-- {
		e := f.history[i]
		if date != "" && e.NewsletterDate != date {
			continue
		}
		out = append(out, e)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (f *fakeArticleStore) Count(_ context.Context) (int, error) {
	return len(f.articles), nil
}

func (f *fakeArticleStore) Ping(_ context.Context) error { return nil }

func newTestSelector(store storage.ArticleStore) *Selector {
	s := New(store)
	s.now = func() time.Time { return testNow }
	return s
}

func testArticle(id string, impact int, sector string, tag types.StrategicTag) types.Article {
	return types.Article{
		ID:            id,
		Title:         "title " + id,
		ImpactScore:   impact,
		PrimarySector: sector,
		StrategicTag:  tag,
	}
}

func TestSelectRecordsHistory(t *testing.T) {
	store := newFakeArticleStore(testArticle("a1", 8, "finance", types.TagBreaking))
	s := newTestSelector(store)
	ctx := context.Background()

	article, err := s.Select(ctx, "a1", "editor")
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if !article.Selected || article.SelectedAt == nil {
		t.Fatal("article not marked selected")
	}

	if len(store.history) != 1 {
		t.Fatalf("history entries = %d; want 1", len(store.history))
	}
	entry := store.history[0]
	if entry.ArticleID != "a1" || entry.SelectedBy != "editor" {
		t.Fatalf("unexpected entry: %+v", entry)
	}
	if entry.NewsletterDate != "2026-08-25" {
		t.Fatalf("newsletter date = %q", entry.NewsletterDate)
	}
}

func TestSelectDefaultsActor(t *testing.T) {
	store := newFakeArticleStore(testArticle("a1", 8, "finance", types.TagNeutral))
	s := newTestSelector(store)

	if _, err := s.Select(context.Background(), "a1", ""); err != nil {
		t.Fatalf("Select: %v", err)
	}
	if store.history[0].SelectedBy != DefaultActor {
		t.Fatalf("selected_by = %q; want %q", store.history[0].SelectedBy, DefaultActor)
	}
}

func TestReselectRestampsAndLogsAgain(t *testing.T) {
	store := newFakeArticleStore(testArticle("a1", 8, "finance", types.TagNeutral))
	s := newTestSelector(store)
	ctx := context.Background()

	if _, err := s.Select(ctx, "a1", ""); err != nil {
		t.Fatalf("first Select: %v", err)
	}

	later := testNow.Add(2 * time.Hour)
	s.now = func() time.Time { return later }
	article, err := s.Select(ctx, "a1", "")
	if err != nil {
		t.Fatalf("second Select: %v", err)
	}

	// Every select action is logged and re-stamps the selection time.
	if len(store.history) != 2 {
		t.Fatalf("history entries = %d; want 2", len(store.history))
	}
	if article.SelectedAt == nil || !article.SelectedAt.Equal(later) {
		t.Fatalf("selected_at = %v; want %v", article.SelectedAt, later)
	}
	if !store.history[1].SelectedAt.Equal(later) {
		t.Fatalf("second entry time = %v; want %v", store.history[1].SelectedAt, later)
	}
}

func TestSelectNotFound(t *testing.T) {
	s := newTestSelector(newFakeArticleStore())
	if _, err := s.Select(context.Background(), "missing", ""); err != storage.ErrNotFound {
		t.Fatalf("err = %v; want ErrNotFound", err)
	}
}

func TestSelectManyPartialSuccess(t *testing.T) {
	store := newFakeArticleStore(
		testArticle("a1", 8, "finance", types.TagNeutral),
		testArticle("a2", 7, "industry_tech", types.TagNeutral),
	)
	s := newTestSelector(store)

	result := s.SelectMany(context.Background(), []string{"a1", "missing", "a2"}, "")
	if result.SelectedCount != 2 {
		t.Fatalf("selected = %d; want 2", result.SelectedCount)
	}
	if len(result.Errors) != 1 || result.Errors[0] != "Article not found: missing" {
		t.Fatalf("errors = %v", result.Errors)
	}
	if len(result.SelectedIDs) != 2 {
		t.Fatalf("selected ids = %v", result.SelectedIDs)
	}
}

func TestDeselectMany(t *testing.T) {
	store := newFakeArticleStore(
		testArticle("a1", 8, "finance", types.TagNeutral),
	)
	s := newTestSelector(store)
	ctx := context.Background()
	if _, err := s.Select(ctx, "a1", ""); err != nil {
		t.Fatalf("Select: %v", err)
	}

	result := s.DeselectMany(ctx, []string{"a1", "missing"})
	if result.DeselectedCount != 1 {
		t.Fatalf("deselected = %d; want 1", result.DeselectedCount)
	}
	if len(result.Errors) != 1 {
		t.Fatalf("errors = %v", result.Errors)
	}
	// History survives deselection.
	if len(store.history) != 1 {
		t.Fatalf("history entries = %d; want 1", len(store.history))
	}
}

func TestClearAll(t *testing.T) {
	store := newFakeArticleStore(
		testArticle("a1", 8, "finance", types.TagNeutral),
		testArticle("a2", 7, "industry_tech", types.TagNeutral),
	)
	s := newTestSelector(store)
	ctx := context.Background()
	s.SelectMany(ctx, []string{"a1", "a2"}, "")

	count, err := s.ClearAll(ctx)
	if err != nil {
		t.Fatalf("ClearAll: %v", err)
	}
	if count != 2 {
		t.Fatalf("cleared = %d; want 2", count)
	}

	remaining, _ := s.SelectedArticles(ctx)
	if len(remaining) != 0 {
		t.Fatalf("still selected: %v", remaining)
	}
}

func TestValidateEmptySelection(t *testing.T) {
	s := newTestSelector(newFakeArticleStore())

	v, err := s.Validate(context.Background())
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if v.IsValid {
		t.Fatal("empty selection should be invalid")
	}
	if len(v.Warnings) != 1 || !strings.Contains(v.Warnings[0], "at least 3") {
		t.Fatalf("warnings = %v", v.Warnings)
	}
	// No breaking coverage either.
	if len(v.Recommendations) != 1 {
		t.Fatalf("recommendations = %v", v.Recommendations)
	}
}

func TestValidateTooManySelected(t *testing.T) {
	articles := []types.Article{
		testArticle("a1", 8, "finance", types.TagBreaking),
		testArticle("a2", 8, "industry_tech", types.TagNeutral),
		testArticle("a3", 8, "macro_economy", types.TagNeutral),
		testArticle("a4", 8, "social_policy", types.TagNeutral),
		testArticle("a5", 8, "finance", types.TagNeutral),
		testArticle("a6", 8, "industry_tech", types.TagNeutral),
	}
	store := newFakeArticleStore(articles...)
	s := newTestSelector(store)
	ctx := context.Background()
	s.SelectMany(ctx, []string{"a1", "a2", "a3", "a4", "a5", "a6"}, "")

	v, err := s.Validate(ctx)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if v.IsValid {
		t.Fatal("6 selections should be invalid")
	}
	if len(v.Warnings) != 1 || !strings.Contains(v.Warnings[0], "limiting to 4-5") {
		t.Fatalf("warnings = %v", v.Warnings)
	}
	// Has breaking and avg 8: no recommendations.
	if len(v.Recommendations) != 0 {
		t.Fatalf("recommendations = %v", v.Recommendations)
	}
}

func TestValidateSingleSectorWarning(t *testing.T) {
	store := newFakeArticleStore(
		testArticle("a1", 8, "finance", types.TagBreaking),
		testArticle("a2", 7, "finance", types.TagNeutral),
		testArticle("a3", 6, "finance", types.TagNeutral),
	)
	s := newTestSelector(store)
	ctx := context.Background()
	s.SelectMany(ctx, []string{"a1", "a2", "a3"}, "")

	v, _ := s.Validate(ctx)
	if v.IsValid {
		t.Fatal("single-sector selection should be invalid")
	}
	if len(v.Warnings) != 1 || !strings.Contains(v.Warnings[0], "same sector") {
		t.Fatalf("warnings = %v", v.Warnings)
	}
}

func TestValidateLowScoreRecommendation(t *testing.T) {
	store := newFakeArticleStore(
		testArticle("a1", 4, "finance", types.TagBreaking),
		testArticle("a2", 5, "industry_tech", types.TagNeutral),
		testArticle("a3", 5, "macro_economy", types.TagNeutral),
	)
	s := newTestSelector(store)
	ctx := context.Background()
	s.SelectMany(ctx, []string{"a1", "a2", "a3"}, "")

	v, _ := s.Validate(ctx)
	if !v.IsValid {
		t.Fatalf("warnings = %v; selection of 3 diverse articles should be valid", v.Warnings)
	}
	if len(v.Recommendations) != 1 || !strings.Contains(v.Recommendations[0], "4.7") {
		t.Fatalf("recommendations = %v", v.Recommendations)
	}
}

func TestPreview(t *testing.T) {
	store := newFakeArticleStore(
		testArticle("a1", 9, "finance", types.TagBreaking),
		testArticle("a2", 8, "industry_tech", types.TagOpportunity),
	)
	s := newTestSelector(store)
	ctx := context.Background()
	s.SelectMany(ctx, []string{"a1", "a2"}, "")

	preview, err := s.Preview(ctx)
	if err != nil {
		t.Fatalf("Preview: %v", err)
	}

	if preview.Date != "2026-08-25" {
		t.Fatalf("date = %q", preview.Date)
	}
	if preview.ArticleCount != 2 || len(preview.Articles) != 2 {
		t.Fatalf("article count = %d", preview.ArticleCount)
	}
	// Highest impact first.
	if preview.Articles[0].ID != "a1" {
		t.Fatalf("order = %v", preview.Articles)
	}
	if preview.AvgImpactScore != 8.5 {
		t.Fatalf("avg = %v; want 8.5", preview.AvgImpactScore)
	}
	if len(preview.SectorsCovered) != 2 {
		t.Fatalf("sectors = %v", preview.SectorsCovered)
	}
}

func TestPreviewEmpty(t *testing.T) {
	s := newTestSelector(newFakeArticleStore())

	preview, err := s.Preview(context.Background())
	if err != nil {
		t.Fatalf("Preview: %v", err)
	}
	if preview.ArticleCount != 0 || preview.AvgImpactScore != 0 {
		t.Fatalf("preview = %+v", preview)
	}
	if preview.Articles == nil || preview.SectorsCovered == nil {
		t.Fatal("slices must be empty, not nil")
	}
}

func TestHistoryFilterAndLimit(t *testing.T) {
	store := newFakeArticleStore(
		testArticle("a1", 8, "finance", types.TagNeutral),
		testArticle("a2", 7, "finance", types.TagNeutral),
	)
	s := newTestSelector(store)
	ctx := context.Background()
	s.SelectMany(ctx, []string{"a1", "a2"}, "")

	entries, err := s.History(ctx, "2026-08-25", 0)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d; want 2", len(entries))
	}
	// Newest first.
	if entries[0].ArticleID != "a2" {
		t.Fatalf("order = %v", entries)
	}

	none, _ := s.History(ctx, "1999-01-01", 0)
	if len(none) != 0 {
		t.Fatalf("entries for wrong date = %d", len(none))
	}

	limited, _ := s.History(ctx, "", 1)
	if len(limited) != 1 {
		t.Fatalf("limited entries = %d; want 1", len(limited))
	}
}
