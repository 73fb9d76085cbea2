package selector

import (
	"context"
	"fmt"

	"newsdesk/types"
)

// Validation is the newsletter-readiness report for the current selection.
// Warnings make the selection invalid; recommendations are advisory only.
type Validation struct {
	IsValid         bool     `json:"is_valid"`
	SelectedCount   int      `json:"selected_count"`
	Warnings        []string `json:"warnings"`
	Recommendations []string `json:"recommendations"`
}

// Validate checks the current selection against the editorial guidelines:
// 3-5 articles, more than one sector, ideally some breaking coverage and an
// average impact score of 6 or better.
func (s *Selector) Validate(ctx context.Context) (Validation, error) {
	selected, err := s.store.Selected(ctx)
	if err != nil {
		return Validation{}, err
	}
	count := len(selected)

	v := Validation{
		IsValid:         true,
		SelectedCount:   count,
		Warnings:        []string{},
		Recommendations: []string{},
	}

	if count < 3 {
		v.Warnings = append(v.Warnings,
			fmt.Sprintf("Only %d articles selected. Recommend at least 3 for a balanced newsletter.", count))
	}
	if count > 5 {
		v.Warnings = append(v.Warnings,
			fmt.Sprintf("%d articles selected. Consider limiting to 4-5 for reader engagement.", count))
	}

	sectors := make(map[string]int)
	for _, a := range selected {
		sector := a.PrimarySector
		if sector == "" {
			sector = "unknown"
		}
		sectors[sector]++
	}
	if len(sectors) == 1 && count > 2 {
		v.Warnings = append(v.Warnings,
			"All selected articles are from the same sector. Consider adding diversity.")
	}

	hasBreaking := false
	for _, a := range selected {
		if a.StrategicTag == types.TagBreaking || a.StrategicTag == types.TagExclusive {
			hasBreaking = true
			break
		}
	}
	if !hasBreaking {
		v.Recommendations = append(v.Recommendations,
			"No breaking/exclusive news in selection. Check if any important updates were missed.")
	}

	if count > 0 {
		total := 0
		for _, a := range selected {
			total += a.ImpactScore
		}
		avg := float64(total) / float64(count)
		if avg < 6 {
			v.Recommendations = append(v.Recommendations,
				fmt.Sprintf("Average ImpactScore is %.1f. Consider selecting higher-impact articles.", avg))
		}
	}

	if len(v.Warnings) > 0 {
		v.IsValid = false
	}
	return v, nil
}
