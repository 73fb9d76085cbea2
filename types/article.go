package types

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// StrategicTag classifies the business implication of an article.
type StrategicTag string

const (
	TagOpportunity StrategicTag = "opportunity"
	TagRisk        StrategicTag = "risk"
	TagTrend       StrategicTag = "trend"
	TagPolicy      StrategicTag = "policy"
	TagBreaking    StrategicTag = "breaking"
	TagExclusive   StrategicTag = "exclusive"
	TagNeutral     StrategicTag = "neutral"
)

// Sector identifiers assigned by the upstream scanner.
const (
	SectorMacroEconomy     = "macro_economy"
	SectorSocialPolicy     = "social_policy"
	SectorFinance          = "finance"
	SectorIndustryTech     = "industry_tech"
	SectorCultureLifestyle = "culture_lifestyle"
)

// RawArticle is an article row as delivered by the upstream source.
// All fields except ID, Title and Link are optional; adapters must fill
// ID via GenerateID when the source omits one.
type RawArticle struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Link            string     `json:"link"`
	Summary         string     `json:"summary"`
	SourceName      string     `json:"source_name"`
	PublishedAt     *time.Time `json:"published_at,omitempty"`
	ImageURL        string     `json:"image_url,omitempty"`
	PrimarySector   string     `json:"primary_sector,omitempty"`
	SecondarySector string     `json:"secondary_sector,omitempty"`
	Subcategories   []string   `json:"subcategories,omitempty"`
	OriginalScore   int        `json:"original_score,omitempty"`
	MatchedKeywords []string   `json:"matched_keywords,omitempty"`
}

// Article is the curated record: a transformed and scored article plus its
// newsletter selection state. Transformer and scorer produce it as a value;
// only the selection store mutates Selected/SelectedAt.
type Article struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Link            string    `json:"link"`
	Summary         string    `json:"summary"`
	Source          string    `json:"source"`
	PublishedAt     time.Time `json:"published_at"`
	FetchedAt       time.Time `json:"fetched_at"`
	Date            string    `json:"date"` // YYYY-MM-DD
	ImageURL        string    `json:"image_url,omitempty"`
	PrimarySector   string    `json:"primary_sector,omitempty"`
	SecondarySector string    `json:"secondary_sector,omitempty"`
	Subcategories   []string  `json:"subcategories"`

	// Classification
	StrategicTag   StrategicTag `json:"strategic_tag"`
	Breaking       bool         `json:"breaking"`
	BreakingWeight int          `json:"breaking_weight"` // marker priority, reserved for future ranking use

	// Fixed-template analysis
	WhyItMatters string `json:"why_it_matters,omitempty"`
	Implication  string `json:"implication,omitempty"`

	// Impact score components. ImpactScore is always the sum of the four.
	MarketRelevance   int `json:"market_relevance"`   // 1-3
	BusinessRelevance int `json:"business_relevance"` // 1-3
	TechShift         int `json:"tech_shift"`         // 1-2
	Urgency           int `json:"urgency"`            // 1-2
	ImpactScore       int `json:"impact_score"`       // 4-10

	// Carried over from the upstream source
	OriginalScore   int      `json:"original_score,omitempty"`
	MatchedKeywords []string `json:"matched_keywords"`

	// Selection state
	Selected   bool       `json:"selected"`
	SelectedAt *time.Time `json:"selected_at,omitempty"`
}

// SelectionHistoryEntry is an append-only log record written on every
// successful selection. Entries are never mutated or deleted.
type SelectionHistoryEntry struct {
	NewsletterDate string    `json:"newsletter_date"` // YYYY-MM-DD
	ArticleID      string    `json:"article_id"`
	SelectedAt     time.Time `json:"selected_at"`
	SelectedBy     string    `json:"selected_by"`
}

// GenerateID creates a short, stable ID by hashing link and title.
// Used when the upstream source does not supply an identifier.
func GenerateID(link, title string) string {
	hash := sha256.Sum256([]byte(link + ":" + title))
	return hex.EncodeToString(hash[:])[:16]
}
