package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case RecommendationsMsg:
		return m.handleRecommendations(msg)
	case PreviewMsg:
		return m.handlePreview(msg)
	case SelectionChangedMsg:
		return m.handleSelectionChanged(msg)
	case SyncDoneMsg:
		return m.handleSyncDone(msg)
	}
	return m, nil
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}

	case "down", "j":
		if m.Cursor < len(m.Articles)-1 {
			m.Cursor++
		}

	case " ", "enter":
		if m.State == StateBrowse && m.Cursor < len(m.Articles) {
			article := m.Articles[m.Cursor]
			selected := m.selectedIDs()[article.ID]
			return m, toggleSelection(m.Client, article.ID, selected)
		}

	case "c", "C":
		if m.State == StateBrowse {
			return m, clearSelections(m.Client)
		}

	case "r", "R":
		if m.State == StateBrowse {
			m.State = StateLoading
			return m, tea.Batch(
				fetchRecommendations(m.Client, m.TopN),
				fetchPreview(m.Client),
			)
		}

	case "s", "S":
		if m.State == StateBrowse {
			m.State = StateSyncing
			return m, triggerSync(m.Client)
		}
	}
	return m, nil
}

func (m Model) handleRecommendations(msg RecommendationsMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.State = StateError
		m.Err = msg.Err
		return m, nil
	}
	m.Articles = msg.Articles
	if m.Cursor >= len(m.Articles) {
		m.Cursor = 0
	}
	m.State = StateBrowse
	m.Err = nil
	return m, nil
}

func (m Model) handlePreview(msg PreviewMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.State = StateError
		m.Err = msg.Err
		return m, nil
	}
	m.Preview = msg.Preview
	m.Validation = msg.Validation
	m.HasPreview = true
	return m, nil
}

func (m Model) handleSelectionChanged(msg SelectionChangedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.State = StateError
		m.Err = msg.Err
		return m, nil
	}
	// Selection changed on the server; refresh both panes.
	return m, tea.Batch(
		fetchRecommendations(m.Client, m.TopN),
		fetchPreview(m.Client),
	)
}

func (m Model) handleSyncDone(msg SyncDoneMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.State = StateError
		m.Err = msg.Err
		return m, nil
	}
	m.State = StateLoading
	return m, tea.Batch(
		fetchRecommendations(m.Client, m.TopN),
		fetchPreview(m.Client),
	)
}
