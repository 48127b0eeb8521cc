// Package ui provides the Bubble Tea terminal interface: a home feed, the
// user's works, generation history, search, a login overlay, and a
// persistent player bar.
package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/cantoapp/canto/internal/api"
	"github.com/cantoapp/canto/internal/nav"
	"github.com/cantoapp/canto/internal/player"
	"github.com/cantoapp/canto/internal/session"
	"github.com/cantoapp/canto/internal/state"
)

// View represents the current active view.
type View int

const (
	ViewHome View = iota
	ViewWorks
	ViewHistory
	ViewSearch
)

func (v View) path() string {
	switch v {
	case ViewWorks:
		return "/works"
	case ViewHistory:
		return "/history"
	case ViewSearch:
		return "/search"
	default:
		return nav.Home
	}
}

// Options configures the UI.
type Options struct {
	Context   context.Context
	Client    *api.Client
	Session   *session.Session
	Works     *state.Works
	History   *state.History
	Player    *player.Player
	ThemeName string
	PollTick  time.Duration
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx      context.Context
	client   *api.Client
	session  *session.Session
	works    *state.Works
	history  *state.History
	player   *player.Player
	pollTick time.Duration

	theme       Theme
	styles      Styles
	keys        keyMap
	currentView View
	width       int
	height      int
	ready       bool

	// Home feed
	hotSongs []api.Work
	creators []api.PublicUser
	homeErr  string

	// Search
	searchInput searchState
	results     *api.SearchResponse

	// List cursor per view
	cursor map[View]int

	// Overlays
	showHelp bool
	login    loginState

	notice string
}

type tickMsg time.Time

type homeLoadedMsg struct {
	hot      []api.Work
	creators []api.PublicUser
	err      error
}

type worksLoadedMsg struct{ err error }

type historyLoadedMsg struct{ err error }

type searchDoneMsg struct {
	result *api.SearchResponse
	err    error
}

type authDoneMsg struct{ err error }

// New creates the root model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	pollTick := opts.PollTick
	if pollTick == 0 {
		pollTick = time.Second
	}
	theme := GetTheme(opts.ThemeName)

	return Model{
		ctx:         ctx,
		client:      opts.Client,
		session:     opts.Session,
		works:       opts.Works,
		history:     opts.History,
		player:      opts.Player,
		pollTick:    pollTick,
		theme:       theme,
		styles:      theme.Styles(),
		keys:        DefaultKeyMap(),
		currentView: ViewHome,
		cursor:      make(map[View]int),
		login:       newLoginState(),
		searchInput: newSearchState(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tickCmd(m.pollTick),
		m.loadHomeCmd(),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case tickMsg:
		return m, tickCmd(m.pollTick)

	case homeLoadedMsg:
		m.hotSongs = msg.hot
		m.creators = msg.creators
		m.homeErr = ""
		if msg.err != nil {
			m.homeErr = msg.err.Error()
		}
		return m, nil

	case worksLoadedMsg, historyLoadedMsg:
		// Containers hold the data; the next render reads their snapshots.
		return m, nil

	case searchDoneMsg:
		if msg.err != nil {
			m.notice = msg.err.Error()
			return m, nil
		}
		m.results = msg.result
		m.cursor[ViewSearch] = 0
		return m, nil

	case authDoneMsg:
		return m.finishAuth(msg.err)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}
	if m.login.visible {
		return m.handleLoginKey(msg)
	}
	if m.currentView == ViewSearch && m.searchInput.editing {
		return m.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = NextTheme(m.theme.Name)
		m.styles = m.theme.Styles()
		return m, nil
	case key.Matches(msg, m.keys.Login):
		if m.session.IsLoggedIn() {
			m.session.Logout()
			m.works.Reset()
			m.history.Reset()
			m.notice = "已退出登录"
			return m, nil
		}
		m.login.open()
		return m, nil

	case key.Matches(msg, m.keys.ViewHome):
		return m.navigate(ViewHome)
	case key.Matches(msg, m.keys.ViewWorks):
		return m.navigate(ViewWorks)
	case key.Matches(msg, m.keys.ViewHistory):
		return m.navigate(ViewHistory)
	case key.Matches(msg, m.keys.ViewSearch):
		model, cmd := m.navigate(ViewSearch)
		if mm, ok := model.(Model); ok && mm.currentView == ViewSearch {
			mm.searchInput.start()
			return mm, cmd
		}
		return model, cmd

	case key.Matches(msg, m.keys.Refresh):
		return m, m.refreshCurrentCmd()

	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
		return m, nil
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
		return m, nil
	case key.Matches(msg, m.keys.Top):
		m.cursor[m.currentView] = 0
		return m, nil
	case key.Matches(msg, m.keys.Bottom):
		m.cursor[m.currentView] = m.listLen() - 1
		if m.cursor[m.currentView] < 0 {
			m.cursor[m.currentView] = 0
		}
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		m.playSelection()
		return m, nil

	case key.Matches(msg, m.keys.PlayPause):
		m.player.TogglePlay()
		return m, nil
	case key.Matches(msg, m.keys.NextTrack):
		m.player.Next()
		return m, nil
	case key.Matches(msg, m.keys.PrevTrack):
		m.player.Prev()
		return m, nil
	case key.Matches(msg, m.keys.VolumeUp):
		m.player.SetVolume(m.player.Snapshot().Volume + 0.1)
		return m, nil
	case key.Matches(msg, m.keys.VolumeDown):
		m.player.SetVolume(m.player.Snapshot().Volume - 0.1)
		return m, nil
	case key.Matches(msg, m.keys.Mute):
		m.player.ToggleMute()
		return m, nil
	case key.Matches(msg, m.keys.Shuffle):
		m.player.ToggleShuffle()
		return m, nil
	case key.Matches(msg, m.keys.Repeat):
		m.player.CycleRepeat()
		return m, nil
	}
	return m, nil
}

// navigate runs the auth guard before switching views. A blocked switch
// keeps the current view and opens the login overlay.
func (m Model) navigate(target View) (tea.Model, tea.Cmd) {
	result := nav.Guard(m.currentView.path(), target.path(), m.session.IsLoggedIn())
	switch result.Decision {
	case nav.Allow:
		m.currentView = target
		m.notice = ""
		return m, m.refreshCurrentCmd()
	case nav.Redirect:
		m.currentView = ViewHome
	}
	m.notice = result.Message
	if result.OpenLogin {
		m.login.open()
	}
	return m, nil
}

func (m Model) refreshCurrentCmd() tea.Cmd {
	switch m.currentView {
	case ViewHome:
		return m.loadHomeCmd()
	case ViewWorks:
		return m.loadWorksCmd()
	case ViewHistory:
		return m.loadHistoryCmd()
	}
	return nil
}

func (m Model) loadHomeCmd() tea.Cmd {
	ctx, client := m.ctx, m.client
	return func() tea.Msg {
		hot, err := client.FetchHotSongs(ctx, 10)
		if err != nil {
			return homeLoadedMsg{err: err}
		}
		origin := client.Origin()
		for i := range hot {
			hot[i] = state.NormalizeWork(origin, hot[i])
		}
		creators, err := client.FetchRecommendedCreators(ctx, 5)
		return homeLoadedMsg{hot: hot, creators: creators, err: err}
	}
}

func (m Model) loadWorksCmd() tea.Cmd {
	ctx, works := m.ctx, m.works
	return func() tea.Msg {
		_, err := works.Load(ctx)
		return worksLoadedMsg{err: err}
	}
}

func (m Model) loadHistoryCmd() tea.Cmd {
	ctx, history := m.ctx, m.history
	return func() tea.Msg {
		_, err := history.Load(ctx, api.HistoryQuery{})
		return historyLoadedMsg{err: err}
	}
}

func (m *Model) moveCursor(delta int) {
	n := m.listLen()
	if n == 0 {
		m.cursor[m.currentView] = 0
		return
	}
	next := m.cursor[m.currentView] + delta
	if next < 0 {
		next = 0
	}
	if next > n-1 {
		next = n - 1
	}
	m.cursor[m.currentView] = next
}

func (m Model) listLen() int {
	switch m.currentView {
	case ViewHome:
		return len(m.hotSongs)
	case ViewWorks:
		return len(m.works.Snapshot().List)
	case ViewHistory:
		return len(m.history.Snapshot().Items)
	case ViewSearch:
		if m.results == nil {
			return 0
		}
		return len(m.results.Songs)
	}
	return 0
}

// playSelection loads the current view's list into the player and starts
// the highlighted entry.
func (m *Model) playSelection() {
	origin := m.client.Origin()
	idx := m.cursor[m.currentView]

	var tracks []player.Track
	switch m.currentView {
	case ViewHome:
		for _, w := range m.hotSongs {
			tracks = append(tracks, player.TrackFromWork(w, origin))
		}
	case ViewWorks:
		for _, w := range m.works.Snapshot().List {
			tracks = append(tracks, player.TrackFromWork(w, origin))
		}
	case ViewSearch:
		if m.results != nil {
			for _, s := range m.results.Songs {
				tracks = append(tracks, songTrack(s, origin))
			}
		}
	default:
		return
	}
	if len(tracks) == 0 {
		return
	}
	m.player.SetPlaylist(tracks, idx)
	m.player.PlayTrack(idx)
}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
