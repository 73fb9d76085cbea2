package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"newsdesk/config"
	"newsdesk/selector"
	"newsdesk/types"
)

// State represents the console state machine
type State string

const (
	StateLoading State = "loading"
	StateBrowse  State = "browse"
	StateSyncing State = "syncing"
	StateError   State = "error"
)

// Model is the curation console state, a thin client over the API.
type Model struct {
	Client *CurationClient

	State    State
	Articles []types.Article
	Cursor   int
	TopN     int

	Preview    selector.Preview
	Validation selector.Validation
	HasPreview bool

	Err error
}

// NewModel creates a curation console model.
func NewModel(apiURL string) Model {
	return Model{
		Client: NewCurationClient(apiURL),
		State:  StateLoading,
		TopN:   config.DefaultTopN,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		fetchRecommendations(m.Client, m.TopN),
		fetchPreview(m.Client),
	)
}

// selectedIDs returns the IDs the preview currently contains.
func (m Model) selectedIDs() map[string]bool {
	ids := make(map[string]bool, len(m.Preview.Articles))
	for _, a := range m.Preview.Articles {
		ids[a.ID] = true
	}
	return ids
}
