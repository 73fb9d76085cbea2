package ranker

import (
	"testing"
	"time"

	"newsdesk/types"
)

var testNow = time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)

func article(id string, impact, urgency int, sector string, age time.Duration) types.Article {
	return types.Article{
		ID:            id,
		ImpactScore:   impact,
		Urgency:       urgency,
		PrimarySector: sector,
		PublishedAt:   testNow.Add(-age),
	}
}

func ids(articles []types.Article) []string {
	out := make([]string, len(articles))
	for i, a := range articles {
		out[i] = a.ID
	}
	return out
}

func assertOrder(t *testing.T, got []types.Article, want ...string) {
	t.Helper()
	gotIDs := ids(got)
	if len(gotIDs) != len(want) {
		t.Fatalf("got %v; want %v", gotIDs, want)
	}
	for i := range want {
		if gotIDs[i] != want[i] {
			t.Fatalf("got %v; want %v", gotIDs, want)
		}
	}
}

func TestRankFiltersByMinScore(t *testing.T) {
	r := New()
	articles := []types.Article{
		article("low", 4, 1, "finance", time.Hour),
		article("high", 9, 1, "finance", time.Hour),
	}

	got := r.Rank(articles, Options{TopN: 10, MinScore: 5, Now: testNow})
	assertOrder(t, got, "high")
}

func TestRankSectorFilterIncludesSecondary(t *testing.T) {
	r := New()
	articles := []types.Article{
		{ID: "primary", ImpactScore: 8, PrimarySector: "finance", PublishedAt: testNow},
		{ID: "secondary", ImpactScore: 7, PrimarySector: "macro_economy", SecondarySector: "finance", PublishedAt: testNow},
		{ID: "other", ImpactScore: 9, PrimarySector: "industry_tech", PublishedAt: testNow},
	}

	got := r.Rank(articles, Options{TopN: 10, Sector: "finance", Now: testNow})
	assertOrder(t, got, "primary", "secondary")
}

func TestRankTagFilter(t *testing.T) {
	r := New()
	articles := []types.Article{
		{ID: "b", ImpactScore: 8, StrategicTag: types.TagBreaking, PublishedAt: testNow},
		{ID: "n", ImpactScore: 9, StrategicTag: types.TagNeutral, PublishedAt: testNow},
	}

	got := r.Rank(articles, Options{TopN: 10, Tag: types.TagBreaking, Now: testNow})
	assertOrder(t, got, "b")
}

func TestRankOrdering(t *testing.T) {
	r := New()
	articles := []types.Article{
		article("mid", 7, 2, "a", time.Hour),
		article("top", 9, 1, "b", 48*time.Hour),
		article("urgent", 7, 1, "c", time.Hour),
	}

	// Impact dominates urgency; urgency dominates recency.
	got := r.Rank(articles, Options{TopN: 10, Now: testNow})
	assertOrder(t, got, "top", "mid", "urgent")
}

func TestRankRecencyBonus(t *testing.T) {
	r := New()
	articles := []types.Article{
		article("stale", 7, 1, "a", 30*time.Hour),
		article("fresh", 7, 1, "b", 2*time.Hour),
	}

	got := r.Rank(articles, Options{TopN: 10, Now: testNow})
	assertOrder(t, got, "fresh", "stale")
}

// Full ties order by publish time ascending: the oldest article wins. This is
// long-standing behavior that downstream consumers rely on; keep it until a
// coordinated change.
func TestRankTieBreakOldestFirst(t *testing.T) {
	r := New()
	articles := []types.Article{
		article("newer", 7, 1, "a", 1*time.Hour),
		article("older", 7, 1, "b", 5*time.Hour),
	}

	got := r.Rank(articles, Options{TopN: 10, Now: testNow})
	assertOrder(t, got, "older", "newer")
}

func TestRankMissingPublishTimeGetsNoBonus(t *testing.T) {
	r := New()
	articles := []types.Article{
		{ID: "undated", ImpactScore: 7, Urgency: 1},
		article("dated", 7, 1, "a", time.Hour),
	}

	got := r.Rank(articles, Options{TopN: 10, Now: testNow})
	assertOrder(t, got, "dated", "undated")
}

func TestRankEmptyInput(t *testing.T) {
	r := New()
	got := r.Rank(nil, Options{Now: testNow})
	if len(got) != 0 {
		t.Fatalf("len = %d; want 0", len(got))
	}
}

func TestEnsureDiversitySectorCap(t *testing.T) {
	r := New()
	// Four finance articles outscore everything; with topN=4 the sector cap
	// is 2, so two other sectors must appear.
	articles := []types.Article{
		article("f1", 10, 2, "finance", time.Hour),
		article("f2", 10, 1, "finance", 2*time.Hour),
		article("f3", 9, 2, "finance", 3*time.Hour),
		article("f4", 9, 1, "finance", 4*time.Hour),
		article("t1", 8, 1, "industry_tech", time.Hour),
		article("m1", 7, 1, "macro_economy", time.Hour),
	}

	got := r.Rank(articles, Options{TopN: 4, Diversify: true, Now: testNow})
	assertOrder(t, got, "f1", "f2", "t1", "m1")
}

func TestEnsureDiversityBackfillsWhenPoolRunsDry(t *testing.T) {
	// Five candidates for four slots, four of them finance: the cap would
	// leave the list underfilled, so capped candidates are taken once the
	// remaining pool is no larger than the remaining slots.
	articles := []types.Article{
		article("f1", 10, 2, "finance", time.Hour),
		article("f2", 10, 1, "finance", 2*time.Hour),
		article("f3", 9, 2, "finance", 3*time.Hour),
		article("t1", 8, 1, "industry_tech", time.Hour),
		article("f4", 8, 1, "finance", 4*time.Hour),
	}

	got := ensureDiversity(articles, 4)
	assertOrder(t, got, "f1", "f2", "t1", "f4")
}

func TestEnsureDiversityMinimumCapIsTwo(t *testing.T) {
	// topN=2 gives topN/2 = 1, raised to the floor of 2.
	articles := []types.Article{
		article("f1", 10, 2, "finance", time.Hour),
		article("f2", 9, 1, "finance", time.Hour),
		article("t1", 8, 1, "industry_tech", time.Hour),
	}

	got := ensureDiversity(articles, 2)
	assertOrder(t, got, "f1", "f2")
}

func TestRecommendationsUsesDefaults(t *testing.T) {
	r := New()
	articles := []types.Article{
		article("a", 9, 1, "finance", time.Hour),
		article("b", 8, 1, "industry_tech", time.Hour),
		article("c", 7, 1, "macro_economy", time.Hour),
		article("d", 6, 1, "social_policy", time.Hour),
		article("e", 5, 1, "finance", time.Hour),
	}

	got := r.Recommendations(articles, 0)
	if len(got) != 4 {
		t.Fatalf("len = %d; want default top 4", len(got))
	}
}

func TestSectorDistribution(t *testing.T) {
	articles := []types.Article{
		{PrimarySector: "finance"},
		{PrimarySector: "finance"},
		{PrimarySector: "industry_tech"},
		{},
	}

	dist := SectorDistribution(articles)
	if dist["finance"] != 2 || dist["industry_tech"] != 1 || dist["unknown"] != 1 {
		t.Fatalf("distribution = %v", dist)
	}
}

func TestScoreDistributionObservedScoresOnly(t *testing.T) {
	dist := ScoreDistribution([]types.Article{
		{ImpactScore: 8},
		{ImpactScore: 8},
		{ImpactScore: 4},
	})

	// Only scores that actually occur, highest first.
	want := []ScoreBucket{{Score: 8, Count: 2}, {Score: 4, Count: 1}}
	if len(dist) != len(want) {
		t.Fatalf("len = %d; want %d: %v", len(dist), len(want), dist)
	}
	for i := range want {
		if dist[i] != want[i] {
			t.Fatalf("bucket %d = %+v; want %+v", i, dist[i], want[i])
		}
	}

	if empty := ScoreDistribution(nil); len(empty) != 0 {
		t.Fatalf("empty input produced buckets: %v", empty)
	}
}

func TestTagDistribution(t *testing.T) {
	dist := TagDistribution([]types.Article{
		{StrategicTag: types.TagBreaking},
		{StrategicTag: types.TagBreaking},
		{},
	})

	if dist[types.TagBreaking] != 2 || dist[types.TagNeutral] != 1 {
		t.Fatalf("distribution = %v", dist)
	}
}
