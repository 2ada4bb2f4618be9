package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/ekwiwalent/internal/auth"
)

type loginMode int

const (
	modeLogin loginMode = iota
	modeRegister
)

var loginModeNames = []string{"Logowanie", "Rejestracja"}

// loginModel is the screen shown before any tab: pick login or register,
// then fill in the form.
type loginModel struct {
	users  *auth.Store
	width  int
	height int

	mode   loginMode
	form   *huh.Form
	errMsg string

	// Form field pointers (survive value copies)
	username *string
	fullName *string
	password *string
	confirm  *string
}

func newLoginModel(users *auth.Store) loginModel {
	u, f, p, c := "", "", "", ""
	return loginModel{
		users:    users,
		username: &u,
		fullName: &f,
		password: &p,
		confirm:  &c,
	}
}

func (l *loginModel) setSize(w, h int) {
	l.width = w
	l.height = h
}

func (l loginModel) formActive() bool { return l.form != nil }

type authFailedMsg struct {
	err error
}

func (l loginModel) update(msg tea.Msg) (loginModel, tea.Cmd) {
	if msg, ok := msg.(authFailedMsg); ok {
		l.errMsg = errorText(msg.err)
		return l.showForm()
	}

	if l.form != nil {
		return l.updateForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.Up), key.Matches(msg, keys.Left):
			l.mode = modeLogin
		case key.Matches(msg, keys.Down), key.Matches(msg, keys.Right), key.Matches(msg, keys.Tab):
			l.mode = modeRegister
		case key.Matches(msg, keys.Enter):
			l.errMsg = ""
			*l.username, *l.fullName, *l.password, *l.confirm = "", "", "", ""
			return l.showForm()
		}
	}
	return l, nil
}

func (l loginModel) showForm() (loginModel, tea.Cmd) {
	*l.password, *l.confirm = "", ""

	username := huh.NewInput().Title("Nazwa użytkownika").Value(l.username)
	password := huh.NewInput().Title("Hasło").EchoMode(huh.EchoModePassword).Value(l.password)

	var group *huh.Group
	if l.mode == modeRegister {
		group = huh.NewGroup(
			huh.NewInput().Title("Imię i nazwisko").Value(l.fullName),
			username,
			password,
			huh.NewInput().Title("Powtórz hasło").EchoMode(huh.EchoModePassword).Value(l.confirm),
		)
	} else {
		group = huh.NewGroup(username, password)
	}

	l.form = huh.NewForm(group).WithShowHelp(true).WithShowErrors(true)
	return l, l.form.Init()
}

func (l loginModel) updateForm(msg tea.Msg) (loginModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			l.form = nil
			return l, nil
		}
	}

	form, cmd := l.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		l.form = f
	}

	if l.form.State == huh.StateCompleted {
		l.form = nil
		return l, l.submit()
	}
	return l, cmd
}

func (l loginModel) submit() tea.Cmd {
	mode := l.mode
	reg := auth.Registration{
		Username:        *l.username,
		FullName:        *l.fullName,
		Password:        *l.password,
		ConfirmPassword: *l.confirm,
	}
	return func() tea.Msg {
		var sess *auth.Session
		var err error
		if mode == modeRegister {
			sess, err = l.users.Register(reg)
		} else {
			sess, err = l.users.Login(reg.Username, reg.Password)
		}
		if err != nil {
			return authFailedMsg{err: err}
		}
		return sessionMsg{session: sess}
	}
}

func (l loginModel) view() string {
	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("🔥 Ekwiwalent OSP")
	subtitle := mutedStyle.Render("Ewidencja zdarzeń i ekwiwalentu strażaków ochotników")

	var body string
	if l.form != nil {
		body = lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render(loginModeNames[l.mode]), "", l.form.View())
	} else {
		var rows []string
		for i, name := range loginModeNames {
			if loginMode(i) == l.mode {
				rows = append(rows, selectedItemStyle.Render("> "+name))
			} else {
				rows = append(rows, normalItemStyle.Render("  "+name))
			}
		}
		rows = append(rows, "", mutedStyle.Render("  ↑/↓: wybierz  enter: dalej  q: wyjście"))
		body = lipgloss.JoinVertical(lipgloss.Left, rows...)
	}

	parts := []string{title, subtitle, "", body}
	if l.errMsg != "" {
		parts = append(parts, "", errorStyle.Render(l.errMsg))
	}

	w := min(l.width-4, 70)
	box := activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
	return lipgloss.Place(l.width, l.height, lipgloss.Center, lipgloss.Center, box)
}
