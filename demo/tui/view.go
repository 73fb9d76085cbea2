package tui

import (
	"fmt"
	"strings"
)

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("📰 Newsdesk Curation Console"))
	b.WriteString("\n\n")

	switch m.State {
	case StateLoading:
		b.WriteString(InfoStyle.Render("⏳ Loading recommendations..."))
		b.WriteString("\n")
	case StateSyncing:
		b.WriteString(InfoStyle.Render("🔄 Syncing feeds..."))
		b.WriteString("\n")
	case StateError:
		errMsg := "Unknown error"
		if m.Err != nil {
			errMsg = m.Err.Error()
		}
		b.WriteString(ErrorStyle.Render("❌ " + errMsg))
		b.WriteString("\n\n")
		b.WriteString(InfoStyle.Render("Press 'r' to retry | 'q' to quit"))
		return b.String()
	}

	b.WriteString(m.renderRecommendations())
	b.WriteString("\n")

	if m.HasPreview {
		b.WriteString(BoxStyle.Render(m.renderPreview()))
		b.WriteString("\n\n")
	}

	b.WriteString(InfoStyle.Render("↑/↓ move | space toggle | c clear | r refresh | s sync | q quit"))
	return b.String()
}

func (m Model) renderRecommendations() string {
	if len(m.Articles) == 0 {
		return InfoStyle.Render("No recommendations. Press 's' to sync feeds.") + "\n"
	}

	var b strings.Builder
	b.WriteString(InfoStyle.Render(fmt.Sprintf("Top %d recommendations:", len(m.Articles))))
	b.WriteString("\n")

	selected := m.selectedIDs()
	for i, a := range m.Articles {
		marker := "[ ]"
		if selected[a.ID] {
			marker = SelectedStyle.Render("[x]")
		}

		line := fmt.Sprintf("%s %d · %s · %s (%s)", marker, a.ImpactScore, a.StrategicTag, a.Title, a.Source)
		if i == m.Cursor {
			line = CursorStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderPreview() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Newsletter %s · %d article(s) · avg %.1f\n",
		m.Preview.Date, m.Preview.ArticleCount, m.Preview.AvgImpactScore))

	if len(m.Preview.SectorsCovered) > 0 {
		b.WriteString("Sectors: " + strings.Join(m.Preview.SectorsCovered, ", ") + "\n")
	}

	for _, a := range m.Preview.Articles {
		b.WriteString(fmt.Sprintf("  %d · %s\n", a.ImpactScore, a.Title))
	}

	for _, w := range m.Validation.Warnings {
		b.WriteString(WarningStyle.Render("⚠ "+w) + "\n")
	}
	for _, r := range m.Validation.Recommendations {
		b.WriteString(InfoStyle.Render("ℹ "+r) + "\n")
	}

	if m.Validation.IsValid && m.Preview.ArticleCount > 0 {
		b.WriteString(SelectedStyle.Render("✓ Ready to publish"))
	}
	return strings.TrimRight(b.String(), "\n")
}
