package transformer

import (
	"strings"

	"newsdesk/types"
)

// BreakingMarker is one entry of the ordered breaking-news marker table.
// Weight is the marker's priority; it is carried on the article for future
// ranking use but not consumed downstream yet.
type BreakingMarker struct {
	Marker string
	Weight int
}

// BreakingMarkers is scanned in order against the original-case title;
// the first match wins.
var BreakingMarkers = []BreakingMarker{
	{"[속보]", 15},
	{"[긴급]", 15},
	{"[특보]", 15},
	{"긴급속보", 15},
	{"[단독]", 12},
	{"단독입수", 12},
	{"[전격]", 10},
	{"[독점]", 10},
	{"BREAKING", 12},
	{"Breaking", 12},
}

// KeywordTable is a static ordered list of patterns mapped to one strategic
// tag. Matching is a case-insensitive substring scan today; the Matcher
// interface leaves room to swap in a trie or automaton without touching
// call sites.
type KeywordTable struct {
	Tag      types.StrategicTag
	Patterns []string
}

// Matcher reports whether any pattern of a table occurs in the given text.
type Matcher interface {
	Match(text string) bool
	StrategicTag() types.StrategicTag
}

// Match implements Matcher with a plain substring scan over lower-cased text.
func (t KeywordTable) Match(text string) bool {
	for _, p := range t.Patterns {
		if strings.Contains(text, strings.ToLower(p)) {
			return true
		}
	}
	return false
}

// StrategicTag returns the tag this table classifies into.
func (t KeywordTable) StrategicTag() types.StrategicTag { return t.Tag }

// Strategic tag keyword tables, evaluated in priority order after the
// breaking check: opportunity, risk, policy, trend.
var (
	opportunityKeywords = KeywordTable{Tag: types.TagOpportunity, Patterns: []string{
		"성장", "투자", "확대", "기회", "상승", "호재", "증가", "수혜", "전망 밝",
		"growth", "opportunity",
	}}

	riskKeywords = KeywordTable{Tag: types.TagRisk, Patterns: []string{
		"리스크", "위험", "하락", "악재", "우려", "감소", "축소", "위기", "불안",
		"risk", "warning",
	}}

	policyKeywords = KeywordTable{Tag: types.TagPolicy, Patterns: []string{
		"정책", "규제", "법안", "발표", "정부", "금융위", "한국은행",
		"policy", "regulation",
	}}

	trendKeywords = KeywordTable{Tag: types.TagTrend, Patterns: []string{
		"트렌드", "동향", "전환", "변화", "흐름", "추세", "시장 동향",
		"trend", "shift",
	}}
)

// tagTables is the priority-ordered matcher chain for non-breaking articles.
var tagTables = []Matcher{
	opportunityKeywords,
	riskKeywords,
	policyKeywords,
	trendKeywords,
}

// exclusiveMarkers distinguish exclusive scoops from plain breaking news;
// checked against the original-case title.
var exclusiveMarkers = []string{"[단독]", "단독"}
