// Package ranker filters, sorts and diversifies scored articles into a
// top-N recommendation list and produces distribution summaries for
// reporting.
package ranker

import (
	"sort"
	"time"

	"newsdesk/config"
	"newsdesk/types"
)

// recencyWindow is how far back an article still earns the recency bonus.
const recencyWindow = 24 * time.Hour

// Options controls one ranking pass. Zero values fall back to the
// configured defaults; Diversify defaults to true via Rank's option
// constructor below.
type Options struct {
	TopN      int
	MinScore  int
	Sector    string
	Tag       types.StrategicTag
	Diversify bool
	// Now anchors the recency bonus; tests pin it for determinism.
	// Zero means time.Now().UTC().
	Now time.Time
}

// DefaultOptions returns the options used for newsletter recommendations.
func DefaultOptions() Options {
	return Options{
		TopN:      config.DefaultTopN,
		MinScore:  config.DefaultMinImpactScore,
		Diversify: true,
	}
}

// Ranker ranks articles for newsletter recommendation. Criteria in priority
// order: impact score, urgency, recency, then sector diversity across the
// selected set. It is stateless and safe for concurrent use.
type Ranker struct{}

// New creates a Ranker.
func New() *Ranker {
	return &Ranker{}
}

// Rank filters, sorts and (optionally) diversifies articles, returning at
// most opts.TopN records. An empty input yields an empty result.
func (r *Ranker) Rank(articles []types.Article, opts Options) []types.Article {
	if opts.TopN <= 0 {
		opts.TopN = config.DefaultTopN
	}
	if opts.MinScore <= 0 {
		opts.MinScore = config.DefaultMinImpactScore
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now().UTC()
	}

	filtered := applyFilters(articles, opts)
	sorted := sortArticles(filtered, opts.Now)

	if opts.Diversify && len(sorted) > opts.TopN {
		return ensureDiversity(sorted, opts.TopN)
	}
	if len(sorted) > opts.TopN {
		sorted = sorted[:opts.TopN]
	}
	return sorted
}

// Recommendations returns the diversified top-N picks with default filters.
func (r *Ranker) Recommendations(articles []types.Article, topN int) []types.Article {
	opts := DefaultOptions()
	if topN > 0 {
		opts.TopN = topN
	}
	return r.Rank(articles, opts)
}

func applyFilters(articles []types.Article, opts Options) []types.Article {
	filtered := make([]types.Article, 0, len(articles))
	for _, a := range articles {
		if a.ImpactScore < opts.MinScore {
			continue
		}
		if opts.Sector != "" && a.PrimarySector != opts.Sector && a.SecondarySector != opts.Sector {
			continue
		}
		if opts.Tag != "" && a.StrategicTag != opts.Tag {
			continue
		}
		filtered = append(filtered, a)
	}
	return filtered
}

// combinedScore folds impact score, urgency and the 24-hour recency bonus
// into one sortable value. Missing publish times never earn the bonus.
func combinedScore(a types.Article, now time.Time) int {
	bonus := 0
	if !a.PublishedAt.IsZero() && a.PublishedAt.After(now.Add(-recencyWindow)) {
		bonus = 1
	}
	return a.ImpactScore*100 + a.Urgency*10 + bonus
}

// sortArticles orders by combined score descending. Ties fall back to the
// publish timestamp ascending, i.e. the OLDEST article wins the tie. That
// contradicts the documented newer-first intent but is kept on purpose as
// known behavior; see the regression test before changing it.
func sortArticles(articles []types.Article, now time.Time) []types.Article {
	sorted := make([]types.Article, len(articles))
	copy(sorted, articles)

	sort.SliceStable(sorted, func(i, j int) bool {
		ci, cj := combinedScore(sorted[i], now), combinedScore(sorted[j], now)
		if ci != cj {
			return ci > cj
		}
		return sorted[i].PublishedAt.Before(sorted[j].PublishedAt)
	})
	return sorted
}

// ensureDiversity walks the sorted list greedily, capping each sector at
// max(2, topN/2) picks. A capped candidate is still taken when the pool is
// about to run dry (remaining candidates <= slots still needed) so the
// result never under-fills. This is a streaming greedy pass, not an optimal
// packing.
func ensureDiversity(articles []types.Article, topN int) []types.Article {
	if len(articles) <= topN {
		return articles
	}

	maxPerSector := topN / 2
	if maxPerSector < 2 {
		maxPerSector = 2
	}

	selected := make([]types.Article, 0, topN)
	sectorCounts := make(map[string]int)

	for idx, a := range articles {
		if len(selected) >= topN {
			break
		}

		sector := a.PrimarySector
		if sector == "" {
			sector = "unknown"
		}

		if sectorCounts[sector] >= maxPerSector {
			remainingNeeded := topN - len(selected)
			remainingArticles := len(articles) - idx
			if remainingArticles > remainingNeeded {
				continue
			}
		}

		selected = append(selected, a)
		sectorCounts[sector]++
	}

	return selected
}
