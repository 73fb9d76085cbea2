package ingest

import (
	"log/slog"
	"sync"
	"time"

	readability "github.com/go-shiori/go-readability"

	"newsdesk/types"
)

const (
	workerCount      = 5
	extractorTimeout = 30 * time.Second
)

// FillMissingSummaries runs readability extraction for raw articles whose
// feed entry carried no summary, using a small worker pool. Articles are
// updated in place; extraction failures leave the summary empty and are
// logged, never fatal.
func FillMissingSummaries(raws []types.RawArticle) {
	var wg sync.WaitGroup
	jobs := make(chan *types.RawArticle, len(raws))

	for i := 0; i < workerCount; i++ {
		go func() {
			for raw := range jobs {
				if err := extractSummary(raw); err != nil {
					slog.Warn("content extraction failed", "link", raw.Link, "error", err)
				}
				wg.Done()
			}
		}()
	}

	for i := range raws {
		if raws[i].Summary != "" || raws[i].Link == "" {
			continue
		}
		wg.Add(1)
		jobs <- &raws[i]
	}

	wg.Wait()
	close(jobs)
}

func extractSummary(raw *types.RawArticle) error {
	extracted, err := readability.FromURL(raw.Link, extractorTimeout)
	if err != nil {
		return err
	}

	if extracted.Excerpt != "" {
		raw.Summary = extracted.Excerpt
	} else {
		raw.Summary = extracted.TextContent
	}
	if raw.ImageURL == "" {
		raw.ImageURL = extracted.Image
	}
	return nil
}
