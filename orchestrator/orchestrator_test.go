package orchestrator

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"newsdesk/config"
	"newsdesk/storage"
	"newsdesk/types"
)

// fakeArticleStore is an in-memory ArticleStore for tests.
type fakeArticleStore struct {
	articles map[string]types.Article
	history  []types.SelectionHistoryEntry
}

func newFakeArticleStore() *fakeArticleStore {
	return &fakeArticleStore{articles: make(map[string]types.Article)}
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

func (f *fakeArticleStore) ClearSelections(_ context.Context) (int, error) {
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

func (f *fakeArticleStore) History(_ context.Context, _ string, _ int) ([]types.SelectionHistoryEntry, error) {
	return f.history, nil
}

func (f *fakeArticleStore) Count(_ context.Context) (int, error) {
	return len(f.articles), nil
}

func (f *fakeArticleStore) Ping(_ context.Context) error { return nil }

func TestIngestRawGeneratesID(t *testing.T) {
	store := newFakeArticleStore()
	o := New(config.Config{}, store, nil, nil)

	raw := types.RawArticle{
		Title: "금리 인상 발표",
		Link:  "https://example.com/rates",
	}
	if err := o.IngestRaw(context.Background(), raw); err != nil {
		t.Fatalf("IngestRaw: %v", err)
	}

	id := types.GenerateID(raw.Link, raw.Title)
	article, ok := store.articles[id]
	if !ok {
		t.Fatalf("article %s not stored; have %v", id, store.articles)
	}
	if article.ImpactScore < 4 || article.ImpactScore > 10 {
		t.Fatalf("impact score = %d; want 4..10", article.ImpactScore)
	}
	if article.Selected {
		t.Fatal("fresh ingest must not be selected")
	}
}

func TestArticleHandlerIngestsMessage(t *testing.T) {
	store := newFakeArticleStore()
	o := New(config.Config{}, store, nil, nil)
	handler := o.ArticleHandler()

	payload, err := json.Marshal(types.RawArticle{
		ID:    "k1",
		Title: "[속보] 코스피 급락",
		Link:  "https://example.com/kospi",
	})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	mark, err := handler.HandleMessage(context.Background(), payload)
	if err != nil {
		t.Fatalf("HandleMessage: %v", err)
	}
	if !mark {
		t.Fatal("processed message should be marked")
	}
	if _, ok := store.articles["k1"]; !ok {
		t.Fatalf("article k1 not stored; have %v", store.articles)
	}
}

func TestArticleHandlerSkipsInvalid(t *testing.T) {
	store := newFakeArticleStore()
	o := New(config.Config{}, store, nil, nil)
	handler := o.ArticleHandler()

	// Missing link fails validation but is still marked past.
	payload, _ := json.Marshal(types.RawArticle{Title: "no link"})
	mark, err := handler.HandleMessage(context.Background(), payload)
	if err != nil {
		t.Fatalf("HandleMessage: %v", err)
	}
	if !mark {
		t.Fatal("invalid message should be marked")
	}

	// Undecodable payloads are marked past too.
	mark, err = handler.HandleMessage(context.Background(), []byte("not json"))
	if err != nil || !mark {
		t.Fatalf("mark = %v, err = %v; want marked, no error", mark, err)
	}

	if len(store.articles) != 0 {
		t.Fatalf("nothing should be stored; have %v", store.articles)
	}
}
