// Package scorer computes the bounded impact score of a curated article from
// four components: market relevance (1-3), business relevance (1-3), tech
// shift (1-2) and urgency (1-2). The impact score is always their sum (4-10).
package scorer

import (
	"regexp"
	"strings"

	"newsdesk/types"
)

// Market relevance keywords (Korean + English).
var (
	marketHighKeywords = []string{
		"증시", "코스피", "코스닥", "주가", "시장", "투자", "금리", "환율",
		"달러", "원화", "채권", "국채", "금융시장", "거래소", "상장",
		"KOSPI", "KOSDAQ", "stock", "market", "interest rate", "forex",
	}
	marketMediumKeywords = []string{
		"경제", "성장률", "GDP", "인플레이션", "물가", "수출", "수입",
		"무역", "경기", "산업", "economy", "growth", "inflation", "trade",
	}
)

// Business relevance keywords.
var (
	businessHighKeywords = []string{
		"실적", "매출", "영업이익", "순이익", "M&A", "인수", "합병",
		"투자유치", "사업확장", "신사업", "계약", "수주", "partnership",
		"revenue", "profit", "acquisition", "expansion",
	}
	businessMediumKeywords = []string{
		"기업", "회사", "사업", "경영", "전략", "시장점유율", "경쟁",
		"company", "business", "strategy", "competition", "market share",
	}
)

// Tech shift keywords.
var (
	techHighKeywords = []string{
		"AI", "인공지능", "반도체", "배터리", "전기차", "자율주행",
		"양자", "블록체인", "메타버스", "로봇", "우주", "바이오",
		"신기술", "혁신", "특허", "R&D", "연구개발",
		"semiconductor", "battery", "EV", "autonomous", "quantum", "biotech",
	}
	techMediumKeywords = []string{
		"디지털", "플랫폼", "클라우드", "데이터", "5G", "6G",
		"소프트웨어", "하드웨어", "IT", "테크",
		"digital", "platform", "cloud", "data", "software",
	}
)

// Urgency markers, matched case-sensitively against the original title.
var urgencyHighKeywords = []string{
	"[속보]", "[긴급]", "[특보]", "[단독]", "[전격]",
	"긴급", "속보", "돌발", "급변", "충격", "폭락", "폭등",
	"BREAKING", "URGENT", "ALERT",
}

// urgencyPatterns are secondary urgency phrases matched against the
// lower-cased combined text.
var urgencyPatterns = []*regexp.Regexp{
	regexp.MustCompile(`긴급\s*발표`),
	regexp.MustCompile(`속보\s*:`),
	regexp.MustCompile(`급(락|등|변)`),
	regexp.MustCompile(`충격.*발표`),
	regexp.MustCompile(`돌발.*상황`),
}

// Component maximums.
const (
	MaxMarketRelevance   = 3
	MaxBusinessRelevance = 3
	MaxTechShift         = 2
	MaxUrgency           = 2
	MaxImpactScore       = 10
)

// maxExplainKeywords bounds the matched-keyword lists in a breakdown.
const (
	maxExplainKeywords        = 5
	maxExplainUrgencyKeywords = 3
)

// Scorer calculates impact scores. It is stateless and deterministic: the
// same article always produces the same scores.
type Scorer struct{}

// New creates a Scorer.
func New() *Scorer {
	return &Scorer{}
}

// Score fills in the four components and the impact score of an article and
// returns the updated value. It is a pure function of the article's title,
// summary and primary sector.
func (s *Scorer) Score(article types.Article) types.Article {
	text := strings.ToLower(article.Title + " " + article.Summary)
	sector := article.PrimarySector

	article.MarketRelevance = marketRelevance(text, sector)
	article.BusinessRelevance = businessRelevance(text, sector)
	article.TechShift = techShift(text, sector)
	article.Urgency = urgency(article.Title, text)

	article.ImpactScore = article.MarketRelevance +
		article.BusinessRelevance +
		article.TechShift +
		article.Urgency

	return article
}

// ScoreBatch scores a batch of articles, preserving input order.
func (s *Scorer) ScoreBatch(articles []types.Article) []types.Article {
	scored := make([]types.Article, 0, len(articles))
	for _, article := range articles {
		scored = append(scored, s.Score(article))
	}
	return scored
}

// marketRelevance: 3 directly about financial markets, 2 indirect effects
// (economy, trade), 1 otherwise. First matching rule wins.
func marketRelevance(text, sector string) int {
	if containsAny(text, marketHighKeywords) {
		return 3
	}
	if sector == types.SectorFinance {
		return 3
	}
	if containsAny(text, marketMediumKeywords) {
		return 2
	}
	if sector == types.SectorMacroEconomy {
		return 2
	}
	return 1
}

// businessRelevance: 3 direct business impact (earnings, M&A, contracts),
// 2 indirect (strategy, competition), 1 otherwise.
func businessRelevance(text, sector string) int {
	if containsAny(text, businessHighKeywords) {
		return 3
	}
	if sector == types.SectorIndustryTech {
		return 3
	}
	if containsAny(text, businessMediumKeywords) {
		return 2
	}
	if sector == types.SectorFinance || sector == types.SectorMacroEconomy {
		return 2
	}
	return 1
}

// techShift: 2 technology or innovation related, 1 otherwise.
func techShift(text, sector string) int {
	if containsAny(text, techHighKeywords) {
		return 2
	}
	if sector == types.SectorIndustryTech {
		return 2
	}
	if containsAny(text, techMediumKeywords) {
		return 2
	}
	return 1
}

// urgency: 2 for breaking or urgent updates, 1 for regular news. The marker
// table is checked against the original-case title first, then the phrase
// patterns against the lower-cased text.
func urgency(originalTitle, text string) int {
	for _, kw := range urgencyHighKeywords {
		if strings.Contains(originalTitle, kw) {
			return 2
		}
	}
	for _, pattern := range urgencyPatterns {
		if pattern.MatchString(text) {
			return 2
		}
	}
	return 1
}

// containsAny reports whether any keyword occurs in the lower-cased text.
func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
