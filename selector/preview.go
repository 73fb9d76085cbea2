package selector

import (
	"context"
	"sort"
)

// PreviewArticle is the condensed article form shown in a newsletter preview.
type PreviewArticle struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Source        string `json:"source"`
	ImpactScore   int    `json:"impact_score"`
	StrategicTag  string `json:"strategic_tag"`
	PrimarySector string `json:"primary_sector"`
}

// Preview summarizes the newsletter that the current selection would produce.
type Preview struct {
	Date           string           `json:"date"` // YYYY-MM-DD, today
	ArticleCount   int              `json:"article_count"`
	Articles       []PreviewArticle `json:"articles"`
	SectorsCovered []string         `json:"sectors_covered"`
	AvgImpactScore float64          `json:"avg_impact_score"`
}

// Preview builds the newsletter preview from the current selection. An empty
// selection yields an empty preview with today's date, not an error.
func (s *Selector) Preview(ctx context.Context) (Preview, error) {
	selected, err := s.SelectedArticles(ctx)
	if err != nil {
		return Preview{}, err
	}

	preview := Preview{
		Date:           s.now().Format("2006-01-02"),
		ArticleCount:   len(selected),
		Articles:       make([]PreviewArticle, 0, len(selected)),
		SectorsCovered: []string{},
	}

	seen := make(map[string]bool)
	total := 0
	for _, a := range selected {
		preview.Articles = append(preview.Articles, PreviewArticle{
			ID:            a.ID,
			Title:         a.Title,
			Source:        a.Source,
			ImpactScore:   a.ImpactScore,
			StrategicTag:  string(a.StrategicTag),
			PrimarySector: a.PrimarySector,
		})
		total += a.ImpactScore

		sector := a.PrimarySector
		if sector == "" {
			sector = "unknown"
		}
		if !seen[sector] {
			seen[sector] = true
			preview.SectorsCovered = append(preview.SectorsCovered, sector)
		}
	}
	sort.Strings(preview.SectorsCovered)

	if len(selected) > 0 {
		preview.AvgImpactScore = roundScore(float64(total) / float64(len(selected)))
	}
	return preview, nil
}
