package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"newsdesk/types"
)

// Redis key layout:
//
//	article:<id>       JSON-encoded types.Article
//	articles:ids       SET of all known article IDs
//	articles:selected  SET of currently selected article IDs
//	selection:history  LIST of JSON selection log entries, append-only
const (
	articleKeyPrefix = "article:"
	idsKey           = "articles:ids"
	selectedKey      = "articles:selected"
	historyKey       = "selection:history"
)

// RedisStore is the Redis-backed ArticleStore.
type RedisStore struct {
	client *redis.Client
}

var _ ArticleStore = (*RedisStore)(nil)

// NewRedisStore connects to Redis and verifies connectivity before returning.
func NewRedisStore(addr, password string, db int) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}

	return &RedisStore{client: client}, nil
}

// Close closes the underlying Redis client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func articleKey(id string) string {
	return articleKeyPrefix + id
}

// Upsert writes an article, preserving the existing record's selection state
// on re-ingest. The read-modify-write runs under WATCH so a concurrent
// Select is not lost.
func (s *RedisStore) Upsert(ctx context.Context, article types.Article) (bool, error) {
	key := articleKey(article.ID)
	created := false

	txn := func(tx *redis.Tx) error {
		raw, err := tx.Get(ctx, key).Result()
		switch {
		case err == redis.Nil:
			created = true
		case err != nil:
			return err
		default:
			var existing types.Article
			if err := json.Unmarshal([]byte(raw), &existing); err != nil {
				return fmt.Errorf("decode existing article %s: %w", article.ID, err)
			}
			article.Selected = existing.Selected
			article.SelectedAt = existing.SelectedAt
		}

		payload, err := json.Marshal(article)
		if err != nil {
			return fmt.Errorf("encode article %s: %w", article.ID, err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, payload, 0)
			pipe.SAdd(ctx, idsKey, article.ID)
			return nil
		})
		return err
	}

	if err := s.client.Watch(ctx, txn, key); err != nil {
		return false, fmt.Errorf("upsert article %s: %w", article.ID, err)
	}
	return created, nil
}

// Get returns the article with the given ID, or ErrNotFound.
func (s *RedisStore) Get(ctx context.Context, id string) (types.Article, error) {
	raw, err := s.client.Get(ctx, articleKey(id)).Result()
	if err == redis.Nil {
		return types.Article{}, ErrNotFound
	}
	if err != nil {
		return types.Article{}, fmt.Errorf("get article %s: %w", id, err)
	}

	var article types.Article
	if err := json.Unmarshal([]byte(raw), &article); err != nil {
		return types.Article{}, fmt.Errorf("decode article %s: %w", id, err)
	}
	return article, nil
}

// List returns all stored articles matching the filter.
func (s *RedisStore) List(ctx context.Context, filter ListFilter) ([]types.Article, error) {
	ids, err := s.client.SMembers(ctx, idsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("list article ids: %w", err)
	}
	articles, err := s.fetchAll(ctx, ids)
	if err != nil {
		return nil, err
	}

	filtered := make([]types.Article, 0, len(articles))
	for _, a := range articles {
		if !matchesFilter(a, filter) {
			continue
		}
		filtered = append(filtered, a)
	}
	return filtered, nil
}

func matchesFilter(a types.Article, f ListFilter) bool {
	if f.MinScore > 0 && a.ImpactScore < f.MinScore {
		return false
	}
	if f.Sector != "" && a.PrimarySector != f.Sector && a.SecondarySector != f.Sector {
		return false
	}
	if f.Tag != "" && a.StrategicTag != f.Tag {
		return false
	}
	if f.Date != "" && a.Date != f.Date {
		return false
	}
	return true
}

// fetchAll bulk-loads articles by ID with one MGET. IDs whose record
// disappeared between the set read and the fetch are skipped.
func (s *RedisStore) fetchAll(ctx context.Context, ids []string) ([]types.Article, error) {
	if len(ids) == 0 {
		return []types.Article{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = articleKey(id)
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("fetch articles: %w", err)
	}

	articles := make([]types.Article, 0, len(values))
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue
		}
		var article types.Article
		if err := json.Unmarshal([]byte(raw), &article); err != nil {
			return nil, fmt.Errorf("decode article %s: %w", ids[i], err)
		}
		articles = append(articles, article)
	}
	return articles, nil
}

// Select marks an article as selected. Re-selecting an already-selected
// article re-stamps its selection time.
func (s *RedisStore) Select(ctx context.Context, id string, at time.Time) (types.Article, error) {
	return s.setSelected(ctx, id, true, at)
}

// Deselect clears an article's selection. Deselecting an unselected article
// is a no-op.
func (s *RedisStore) Deselect(ctx context.Context, id string) (types.Article, error) {
	return s.setSelected(ctx, id, false, time.Time{})
}

func (s *RedisStore) setSelected(ctx context.Context, id string, selected bool, at time.Time) (types.Article, error) {
	key := articleKey(id)
	var result types.Article

	txn := func(tx *redis.Tx) error {
		raw, err := tx.Get(ctx, key).Result()
		if err == redis.Nil {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		var article types.Article
		if err := json.Unmarshal([]byte(raw), &article); err != nil {
			return fmt.Errorf("decode article %s: %w", id, err)
		}

		if !selected && !article.Selected {
			result = article
			return nil
		}

		article.Selected = selected
		if selected {
			ts := at
			article.SelectedAt = &ts
		} else {
			article.SelectedAt = nil
		}

		payload, err := json.Marshal(article)
		if err != nil {
			return fmt.Errorf("encode article %s: %w", id, err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, payload, 0)
			if selected {
				pipe.SAdd(ctx, selectedKey, id)
			} else {
				pipe.SRem(ctx, selectedKey, id)
			}
			return nil
		})
		if err != nil {
			return err
		}
		result = article
		return nil
	}

	if err := s.client.Watch(ctx, txn, key); err != nil {
		if err == ErrNotFound {
			return types.Article{}, ErrNotFound
		}
		return types.Article{}, fmt.Errorf("update selection for %s: %w", id, err)
	}
	return result, nil
}

// Selected returns all currently selected articles.
func (s *RedisStore) Selected(ctx context.Context) ([]types.Article, error) {
	ids, err := s.client.SMembers(ctx, selectedKey).Result()
	if err != nil {
		return nil, fmt.Errorf("list selected ids: %w", err)
	}
	return s.fetchAll(ctx, ids)
}

// ClearSelections deselects every article and returns the count cleared.
func (s *RedisStore) ClearSelections(ctx context.Context) (int, error) {
	ids, err := s.client.SMembers(ctx, selectedKey).Result()
	if err != nil {
		return 0, fmt.Errorf("list selected ids: %w", err)
	}

	cleared := 0
	for _, id := range ids {
		if _, err := s.Deselect(ctx, id); err != nil {
			if err == ErrNotFound {
				// Stale set entry; drop it.
				s.client.SRem(ctx, selectedKey, id)
				continue
			}
			return cleared, err
		}
		cleared++
	}
	return cleared, nil
}

// AppendHistory appends a selection log entry.
func (s *RedisStore) AppendHistory(ctx context.Context, entry types.SelectionHistoryEntry) error {
	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode history entry: %w", err)
	}
	if err := s.client.RPush(ctx, historyKey, payload).Err(); err != nil {
		return fmt.Errorf("append history: %w", err)
	}
	return nil
}

// History returns logged entries newest first, optionally filtered by
// newsletter date.
func (s *RedisStore) History(ctx context.Context, date string, limit int) ([]types.SelectionHistoryEntry, error) {
	raws, err := s.client.LRange(ctx, historyKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}

	entries := make([]types.SelectionHistoryEntry, 0, len(raws))
	// LRange returns oldest first; walk backwards for newest-first output.
	for i := len(raws) - 1; i >= 0; i-- {
		var entry types.SelectionHistoryEntry
		if err := json.Unmarshal([]byte(raws[i]), &entry); err != nil {
			return nil, fmt.Errorf("decode history entry: %w", err)
		}
		if date != "" && entry.NewsletterDate != date {
			continue
		}
		entries = append(entries, entry)
		if limit > 0 && len(entries) >= limit {
			break
		}
	}
	return entries, nil
}

// Count returns the number of stored articles.
func (s *RedisStore) Count(ctx context.Context) (int, error) {
	n, err := s.client.SCard(ctx, idsKey).Result()
	if err != nil {
		return 0, fmt.Errorf("count articles: %w", err)
	}
	return int(n), nil
}

// Ping verifies connectivity.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
