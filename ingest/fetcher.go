// Package ingest pulls raw articles from upstream sources: RSS/Atom feeds
// are the primary adapter, with an optional readability fallback for items
// that ship without a usable summary.
package ingest

import (
	"fmt"
	"time"

	"github.com/mmcdole/gofeed"

	"newsdesk/config"
	"newsdesk/types"
)

// FetchFeed retrieves and parses one feed, returning at most maxCount raw
// articles stamped with the feed's sector labels.
func FetchFeed(feed config.Feed, maxCount int) ([]types.RawArticle, error) {
	parser := gofeed.NewParser()
	parsed, err := parser.ParseURL(feed.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed %s: %w", feed.Name, err)
	}

	count := min(len(parsed.Items), maxCount)
	raws := make([]types.RawArticle, 0, count)

	for i := 0; i < count; i++ {
		item := parsed.Items[i]
		if item.Title == "" || item.Link == "" {
			continue
		}

		id := item.GUID
		if id == "" {
			id = types.GenerateID(item.Link, item.Title)
		}

		var publishedAt *time.Time
		if item.PublishedParsed != nil {
			publishedAt = item.PublishedParsed
		} else if item.UpdatedParsed != nil {
			publishedAt = item.UpdatedParsed
		}

		summary := item.Description
		if summary == "" {
			summary = item.Content
		}

		raw := types.RawArticle{
			ID:              id,
			Title:           item.Title,
			Link:            item.Link,
			Summary:         summary,
			SourceName:      feed.Name,
			PublishedAt:     publishedAt,
			PrimarySector:   feed.PrimarySector,
			SecondarySector: feed.SecondarySector,
		}
		if item.Image != nil {
			raw.ImageURL = item.Image.URL
		}

		raws = append(raws, raw)
	}

	return raws, nil
}

// FetchAll pulls every configured feed, skipping feeds that fail so one
// broken source does not sink a sync run. The per-feed errors are returned
// alongside the collected articles.
func FetchAll(feeds []config.Feed, maxPerFeed int) ([]types.RawArticle, []error) {
	var all []types.RawArticle
	var errs []error

	for _, feed := range feeds {
		raws, err := FetchFeed(feed, maxPerFeed)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		all = append(all, raws...)
	}
	return all, errs
}
