package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// fetchRecommendations loads the top-N recommendation list.
func fetchRecommendations(client *CurationClient, topN int) tea.Cmd {
	return func() tea.Msg {
		articles, err := client.Recommended(topN)
		return RecommendationsMsg{Articles: articles, Err: err}
	}
}

// fetchPreview loads the newsletter preview and validation.
func fetchPreview(client *CurationClient) tea.Cmd {
	return func() tea.Msg {
		preview, validation, err := client.NewsletterPreview()
		return PreviewMsg{Preview: preview, Validation: validation, Err: err}
	}
}

// toggleSelection selects or deselects one article.
func toggleSelection(client *CurationClient, id string, selected bool) tea.Cmd {
	return func() tea.Msg {
		var err error
		if selected {
			err = client.Deselect(id)
		} else {
			err = client.Select(id)
		}
		return SelectionChangedMsg{Err: err}
	}
}

// clearSelections clears the whole selection.
func clearSelections(client *CurationClient) tea.Cmd {
	return func() tea.Msg {
		return SelectionChangedMsg{Err: client.ClearSelections()}
	}
}

// triggerSync runs a sync cycle on the server.
func triggerSync(client *CurationClient) tea.Cmd {
	return func() tea.Msg {
		return SyncDoneMsg{Err: client.TriggerSync()}
	}
}
