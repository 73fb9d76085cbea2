// Package transformer normalizes raw scanner articles into curated records:
// it cleans summaries, detects breaking news, assigns a strategic tag and
// attaches fixed-template analysis strings.
package transformer

import (
	"regexp"
	"strings"
	"time"

	"newsdesk/types"
)

var (
	htmlTagRe    = regexp.MustCompile(`<[^>]+>`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// whyItMatters templates keyed by primary sector.
var whyItMatters = map[string]string{
	types.SectorMacroEconomy:     "거시경제 관점에서 주목할 필요가 있는 뉴스입니다.",
	types.SectorFinance:          "금융시장 관점에서 주목할 필요가 있는 뉴스입니다.",
	types.SectorIndustryTech:     "산업/기술 측면에서 주목할 필요가 있는 뉴스입니다.",
	types.SectorSocialPolicy:     "사회정책 측면에서 주목할 필요가 있는 뉴스입니다.",
	types.SectorCultureLifestyle: "문화/생활 트렌드 측면에서 주목할 필요가 있는 뉴스입니다.",
}

const whyItMattersDefault = "시장에 영향을 미칠 수 있는 뉴스입니다."

// implications templates keyed by strategic tag.
var implications = map[types.StrategicTag]string{
	types.TagOpportunity: "투자 또는 사업 기회로 검토해볼 만합니다.",
	types.TagRisk:        "리스크 관리 및 대응 방안 검토가 필요합니다.",
	types.TagTrend:       "시장 트렌드 변화에 주목하여 전략 조정을 고려하세요.",
	types.TagPolicy:      "규제 및 정책 변화에 따른 영향을 분석하세요.",
	types.TagBreaking:    "긴급 상황으로 즉시 모니터링이 필요합니다.",
	types.TagExclusive:   "단독 정보로 선제적 대응을 고려하세요.",
	types.TagNeutral:     "지속적인 모니터링을 권장합니다.",
}

const implicationDefault = "추가 분석이 필요합니다."

// Transformer converts RawArticle values into curated Article records.
// It is stateless and safe for concurrent use.
type Transformer struct{}

// New creates a Transformer.
func New() *Transformer {
	return &Transformer{}
}

/// Transform converts a single raw article. It is total over any RawArticle:
// missing optional fields degrade to empty or neutral defaults and no input
// causes an error.
func (t *Transformer) Transform(raw types.RawArticle) types.Article {
	title := strings.TrimSpace(raw.Title)
	summary := CleanSummary(raw.Summary)

	breaking, weight := DetectBreaking(title)
	tag := determineStrategicTag(title, summary, breaking)

	now := time.Now().UTC()
	publishedAt := now
	if raw.PublishedAt != nil {
		publishedAt = *raw.PublishedAt
	}

	urgency := 1
	if breaking {
		urgency = 2
	}

	subcategories := raw.Subcategories
	if subcategories == nil {
		subcategories = []string{}
	}
	matched := raw.MatchedKeywords
	if matched == nil {
		matched = []string{}
	}

	return types.Article{
		ID:              raw.ID,
		Title:           title,
		Link:            raw.Link,
		Summary:         summary,
		Source:          raw.SourceName,
		PublishedAt:     publishedAt,
		FetchedAt:       now,
		Date:            publishedAt.Format("2006-01-02"),
		ImageURL:        raw.ImageURL,
		PrimarySector:   raw.PrimarySector,
		SecondarySector: raw.SecondarySector,
		Subcategories:   subcategories,
		StrategicTag:    tag,
		Breaking:        breaking,
		BreakingWeight:  weight,
		WhyItMatters:    generateWhyItMatters(raw.PrimarySector),
		Implication:     generateImplication(tag),
		OriginalScore:   raw.OriginalScore,
		MatchedKeywords: matched,

		// Placeholders; the scorer recalculates all components.
		MarketRelevance:   1,
		BusinessRelevance: 1,
		TechShift:         1,
		Urgency:           urgency,
		ImpactScore:       4,
	}
}

// TransformBatch transforms a batch of articles, preserving input order.
func (t *Transformer) TransformBatch(raws []types.RawArticle) []types.Article {
	articles := make([]types.Article, 0, len(raws))
	for _, raw := range raws {
		articles = append(articles, t.Transform(raw))
	}
	return articles
}

// CleanSummary strips HTML tags, collapses whitespace runs, decodes the
// common entities and trims the result.
func CleanSummary(summary string) string {
	if summary == "" {
		return ""
	}

	summary = htmlTagRe.ReplaceAllString(summary, "")
	summary = whitespaceRe.ReplaceAllString(summary, " ")

	summary = strings.ReplaceAll(summary, "&nbsp;", " ")
	summary = strings.ReplaceAll(summary, "&amp;", "&")
	summary = strings.ReplaceAll(summary, "&lt;", "<")
	summary = strings.ReplaceAll(summary, "&gt;", ">")

	return strings.TrimSpace(summary)
}

// DetectBreaking scans the original-case title against the ordered marker
// table. The first match wins and its priority weight is returned; no match
// means not breaking with weight 0.
func DetectBreaking(title string) (bool, int) {
	for _, m := range BreakingMarkers {
		if strings.Contains(title, m.Marker) {
			return true, m.Weight
		}
	}
	return false, 0
}

// determineStrategicTag assigns exactly one tag by fixed priority order.
// The breaking/exclusive split checks the original-case title; the keyword
// tables scan the lower-cased title+summary text.
func determineStrategicTag(title, summary string, breaking bool) types.StrategicTag {
	if breaking {
		for _, marker := range exclusiveMarkers {
			if strings.Contains(title, marker) {
				return types.TagExclusive
			}
		}
		return types.TagBreaking
	}

	text := strings.ToLower(title + " " + summary)
	for _, table := range tagTables {
		if table.Match(text) {
			return table.StrategicTag()
		}
	}
	return types.TagNeutral
}

func generateWhyItMatters(sector string) string {
	if msg, ok := whyItMatters[sector]; ok {
		return msg
	}
	return whyItMattersDefault
}

func generateImplication(tag types.StrategicTag) string {
	if msg, ok := implications[tag]; ok {
		return msg
	}
	return implicationDefault
}
