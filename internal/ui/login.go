package ui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/cantoapp/canto/internal/api"
)

// authMode selects between the login and register forms of the overlay.
type authMode int

const (
	modeLogin authMode = iota
	modeRegister
)

// loginState is the login/register overlay: a small form the guard (or
// the user) opens without leaving the current view.
type loginState struct {
	visible  bool
	mode     authMode
	inputs   []textinput.Model
	focusIdx int
	busy     bool
	errMsg   string
}

const (
	fieldUsername = iota
	fieldPassword
	fieldEmail
)

func newLoginState() loginState {
	username := textinput.New()
	username.Placeholder = "用户名"
	username.CharLimit = 64

	password := textinput.New()
	password.Placeholder = "密码"
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	password.CharLimit = 64

	email := textinput.New()
	email.Placeholder = "邮箱"
	email.CharLimit = 128

	return loginState{
		mode:   modeLogin,
		inputs: []textinput.Model{username, password, email},
	}
}

func (l *loginState) open() {
	l.visible = true
	l.busy = false
	l.errMsg = ""
	l.focusIdx = 0
	for i := range l.inputs {
		l.inputs[i].Blur()
		l.inputs[i].SetValue("")
	}
	l.inputs[0].Focus()
}

func (l *loginState) close() {
	l.visible = false
	for i := range l.inputs {
		l.inputs[i].Blur()
	}
}

// fieldCount is how many inputs the active mode shows.
func (l loginState) fieldCount() int {
	if l.mode == modeRegister {
		return 3
	}
	return 2
}

func (l *loginState) focusNext(delta int) {
	n := l.fieldCount()
	l.inputs[l.focusIdx].Blur()
	l.focusIdx = ((l.focusIdx+delta)%n + n) % n
	l.inputs[l.focusIdx].Focus()
}

func (m Model) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.login.busy {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Escape):
		m.login.close()
		return m, nil

	case msg.String() == "tab", msg.String() == "down":
		m.login.focusNext(1)
		return m, nil
	case msg.String() == "shift+tab", msg.String() == "up":
		m.login.focusNext(-1)
		return m, nil

	case msg.String() == "ctrl+r":
		if m.login.mode == modeLogin {
			m.login.mode = modeRegister
		} else {
			m.login.mode = modeLogin
		}
		m.login.errMsg = ""
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		return m.submitAuth()
	}

	var cmd tea.Cmd
	m.login.inputs[m.login.focusIdx], cmd = m.login.inputs[m.login.focusIdx].Update(msg)
	return m, cmd
}

func (m Model) submitAuth() (tea.Model, tea.Cmd) {
	username := m.login.inputs[fieldUsername].Value()
	password := m.login.inputs[fieldPassword].Value()
	email := m.login.inputs[fieldEmail].Value()

	if username == "" || password == "" {
		m.login.errMsg = "请填写用户名和密码"
		return m, nil
	}

	m.login.busy = true
	m.login.errMsg = ""

	ctx, sess, mode := m.ctx, m.session, m.login.mode
	return m, func() tea.Msg {
		if mode == modeRegister {
			if _, err := sess.Register(ctx, api.RegisterRequest{
				Username: username,
				Password: password,
				Email:    email,
			}); err != nil {
				return authDoneMsg{err: err}
			}
		}
		return authDoneMsg{err: sess.Login(ctx, api.Credentials{
			Username: username,
			Password: password,
		})}
	}
}

// finishAuth closes the overlay on success and reloads the view whose
// guard opened it.
func (m Model) finishAuth(err error) (tea.Model, tea.Cmd) {
	m.login.busy = false
	if err != nil {
		m.login.errMsg = err.Error()
		return m, nil
	}
	m.login.close()
	m.notice = ""
	return m, m.refreshCurrentCmd()
}
