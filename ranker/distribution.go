package ranker

import (
	"sort"

	"newsdesk/types"
)

// ScoreBucket is one row of the impact score distribution.
type ScoreBucket struct {
	Score int `json:"score"`
	Count int `json:"count"`
}

// SectorDistribution counts articles per primary sector. Articles without
// a sector land under "unknown".
func SectorDistribution(articles []types.Article) map[string]int {
	dist := make(map[string]int)
	for _, a := range articles {
		sector := a.PrimarySector
		if sector == "" {
			sector = "unknown"
		}
		dist[sector]++
	}
	return dist
}

// ScoreDistribution counts articles per observed impact score, ordered from
// the highest score down. Scores no article carries are omitted.
func ScoreDistribution(articles []types.Article) []ScoreBucket {
	counts := make(map[int]int)
	for _, a := range articles {
		counts[a.ImpactScore]++
	}

	scores := make([]int, 0, len(counts))
	for score := range counts {
		scores = append(scores, score)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(scores)))

	buckets := make([]ScoreBucket, 0, len(scores))
	for _, score := range scores {
		buckets = append(buckets, ScoreBucket{Score: score, Count: counts[score]})
	}
	return buckets
}

// TagDistribution counts articles per strategic tag. Untagged articles are
// counted as neutral.
func TagDistribution(articles []types.Article) map[types.StrategicTag]int {
	dist := make(map[types.StrategicTag]int)
	for _, a := range articles {
		tag := a.StrategicTag
		if tag == "" {
			tag = types.TagNeutral
		}
		dist[tag]++
	}
	return dist
}
