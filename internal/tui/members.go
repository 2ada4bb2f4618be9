package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/ekwiwalent/internal/brigade"
	"github.com/sadopc/ekwiwalent/internal/store"
)

type membersModel struct {
	store  *store.Store
	width  int
	height int

	roster  *brigade.Roster
	members []brigade.Member
	counts  map[string]int // operations per member id
	cursor  int

	formActive bool
	form       *huh.Form

	// Form field pointers (survive value copies)
	formName *string
	formRank *string
}

func newMembersModel(s *store.Store) membersModel {
	name, rank := "", ""
	return membersModel{
		store:    s,
		counts:   map[string]int{},
		formName: &name,
		formRank: &rank,
	}
}

func (m *membersModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

type membersDataMsg rosterMsg

func (m membersModel) refresh() tea.Cmd {
	return func() tea.Msg {
		return membersDataMsg(loadRoster(m.store))
	}
}

func (m *membersModel) sync() {
	m.members = m.roster.Members
	m.counts = make(map[string]int, len(m.members))
	for _, op := range m.roster.Operations {
		m.counts[op.MemberID]++
	}
	if m.cursor >= len(m.members) {
		m.cursor = max(0, len(m.members)-1)
	}
}

func (m *membersModel) applyMemberAdded(member brigade.Member) {
	if m.roster != nil {
		m.roster.AddMember(member)
		m.sync()
	}
}

// applyMemberDeleted drops the member and their operations from the loaded
// roster after the store has deleted them.
func (m *membersModel) applyMemberDeleted(id string) {
	if m.roster != nil {
		m.roster.DeleteMember(id)
		m.sync()
	}
}

func (m *membersModel) applyOperationAdded(op brigade.Operation) {
	if m.roster != nil && m.roster.AddOperation(op) == nil {
		m.sync()
	}
}

func (m *membersModel) applyOperationDeleted(id string) {
	if m.roster != nil && m.roster.DeleteOperation(id) {
		m.sync()
	}
}

func (m membersModel) update(msg tea.Msg) (membersModel, tea.Cmd) {
	if msg, ok := msg.(membersDataMsg); ok {
		if msg.err != nil {
			return m, func() tea.Msg { return errStatus("Błąd odczytu", msg.err) }
		}
		m.roster = msg.roster
		m.sync()
		return m, nil
	}

	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.members)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.New):
			return m.showForm()
		case key.Matches(msg, keys.Delete):
			if len(m.members) > 0 {
				return m, m.deleteSelected()
			}
		}
	}
	return m, nil
}

func (m membersModel) showForm() (membersModel, tea.Cmd) {
	*m.formName = ""
	*m.formRank = ""

	required := func(err error) func(string) error {
		return func(s string) error {
			if strings.TrimSpace(s) == "" {
				return formError(err)
			}
			return nil
		}
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Imię i nazwisko").Placeholder("Jan Kowalski").Value(m.formName).
				Validate(required(brigade.ErrNameRequired)),
			huh.NewInput().Title("Stanowisko").Placeholder("np. Dowódca, Naczelnik, Strażak ratownik").Value(m.formRank).
				Validate(required(brigade.ErrRankRequired)),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m membersModel) updateForm(msg tea.Msg) (membersModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			m.formActive = false
			m.form = nil
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.formActive = false
		return m, m.addMember(*m.formName, *m.formRank)
	}

	return m, cmd
}

func (m membersModel) addMember(name, rank string) tea.Cmd {
	return func() tea.Msg {
		member, err := brigade.NewMember(name, rank)
		if err != nil {
			return errStatus("Nie dodano strażaka", err)
		}
		if err := m.store.CreateMember(member); err != nil {
			return errStatus("Nie dodano strażaka", err)
		}
		return memberAddedMsg{member: member}
	}
}

func (m membersModel) deleteSelected() tea.Cmd {
	member := m.members[m.cursor]
	return func() tea.Msg {
		removed, err := m.store.DeleteMember(member.ID)
		if err != nil {
			return errStatus("Nie usunięto strażaka", err)
		}
		return memberDeletedMsg{id: member.ID, name: member.Name, removed: removed}
	}
}

func (m membersModel) view() string {
	w := m.width - 4

	if m.formActive && m.form != nil {
		title := titleStyle.Render("Dodaj strażaka")
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, title, "", m.form.View()))
	}

	title := titleStyle.Render("Strażacy")
	if len(m.members) == 0 {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("Brak strażaków. Naciśnij n, aby dodać."),
		))
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-28s %-24s %9s", "Imię i nazwisko", "Stanowisko", "Zdarzenia")))

	for i, member := range m.members {
		cursor := "  "
		style := normalItemStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(fmt.Sprintf("%s%-28s %-24s %9d",
			cursor, truncate(member.Name, 28), truncate(member.Rank, 24), m.counts[member.ID])))
	}

	rows = append(rows, "")
	rows = append(rows, warningStyle.Render("  Usunięcie strażaka usuwa też wszystkie jego zdarzenia."))
	rows = append(rows, mutedStyle.Render("  n: dodaj  d: usuń  ↑/↓: wybierz"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
