package scorer

import (
	"strings"

	"newsdesk/types"
)

// ComponentBreakdown explains one score component: its value, the maximum it
// can reach and a bounded list of the keywords that matched.
type ComponentBreakdown struct {
	Score           int      `json:"score"`
	Max             int      `json:"max"`
	MatchedKeywords []string `json:"matched_keywords"`
}

// Breakdown is the full per-component explanation of an impact score.
// It exists for transparency and debugging; scoring never consumes it.
type Breakdown struct {
	MarketRelevance   ComponentBreakdown `json:"market_relevance"`
	BusinessRelevance ComponentBreakdown `json:"business_relevance"`
	TechShift         ComponentBreakdown `json:"tech_shift"`
	Urgency           ComponentBreakdown `json:"urgency"`
	TotalImpactScore  int                `json:"total_impact_score"`
	MaxPossible       int                `json:"max_possible"`
}

// Explain returns the detailed score breakdown for an already-scored article.
func (s *Scorer) Explain(article types.Article) Breakdown {
	text := strings.ToLower(article.Title + " " + article.Summary)

	return Breakdown{
		MarketRelevance: ComponentBreakdown{
			Score:           article.MarketRelevance,
			Max:             MaxMarketRelevance,
			MatchedKeywords: matchedIn(text, maxExplainKeywords, marketHighKeywords, marketMediumKeywords),
		},
		BusinessRelevance: ComponentBreakdown{
			Score:           article.BusinessRelevance,
			Max:             MaxBusinessRelevance,
			MatchedKeywords: matchedIn(text, maxExplainKeywords, businessHighKeywords, businessMediumKeywords),
		},
		TechShift: ComponentBreakdown{
			Score:           article.TechShift,
			Max:             MaxTechShift,
			MatchedKeywords: matchedIn(text, maxExplainKeywords, techHighKeywords, techMediumKeywords),
		},
		Urgency: ComponentBreakdown{
			Score:           article.Urgency,
			Max:             MaxUrgency,
			MatchedKeywords: matchedInTitle(article.Title, maxExplainUrgencyKeywords, urgencyHighKeywords),
		},
		TotalImpactScore: article.ImpactScore,
		MaxPossible:      MaxImpactScore,
	}
}

// matchedIn collects keywords occurring in the lower-cased text, in table
// order, capped at limit.
func matchedIn(text string, limit int, tables ...[]string) []string {
	matched := make([]string, 0, limit)
	for _, table := range tables {
		for _, kw := range table {
			if len(matched) >= limit {
				return matched
			}
			if strings.Contains(text, strings.ToLower(kw)) {
				matched = append(matched, kw)
			}
		}
	}
	return matched
}

// matchedInTitle collects case-sensitive marker hits from the original title.
func matchedInTitle(title string, limit int, keywords []string) []string {
	matched := make([]string, 0, limit)
	for _, kw := range keywords {
		if len(matched) >= limit {
			break
		}
		if strings.Contains(title, kw) {
			matched = append(matched, kw)
		}
	}
	return matched
}
