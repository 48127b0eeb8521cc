package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/cantoapp/canto/internal/api"
	"github.com/cantoapp/canto/internal/format"
	"github.com/cantoapp/canto/internal/player"
)

// searchState is the inline query editor on the search view.
type searchState struct {
	input   textinput.Model
	editing bool
	ran     bool
}

func newSearchState() searchState {
	input := textinput.New()
	input.Placeholder = "搜索歌曲或用户"
	input.CharLimit = 128
	return searchState{input: input}
}

func (s *searchState) start() {
	if s.input.Placeholder == "" {
		*s = newSearchState()
	}
	s.editing = true
	s.input.Focus()
}

func (s *searchState) stop() {
	s.editing = false
	s.input.Blur()
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.searchInput.stop()
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		query := strings.TrimSpace(m.searchInput.input.Value())
		if query == "" {
			return m, nil
		}
		m.searchInput.stop()
		m.searchInput.ran = true
		ctx, client := m.ctx, m.client
		return m, func() tea.Msg {
			result, err := client.Search(ctx, query, 20)
			return searchDoneMsg{result: result, err: err}
		}
	}
	var cmd tea.Cmd
	m.searchInput.input, cmd = m.searchInput.input.Update(msg)
	return m, cmd
}

func songTrack(song api.SongResult, origin string) player.Track {
	return player.Track{
		ID:     song.ID,
		Title:  song.Title,
		Artist: song.AuthorName,
		Cover:  format.AbsoluteURL(origin, song.CoverURL),
		URL:    format.AbsoluteURL(origin, song.AudioURL),
		// Search only returns published public works.
		Status:     api.WorkStatusPublished,
		Visibility: api.VisibilityPublic,
	}
}
