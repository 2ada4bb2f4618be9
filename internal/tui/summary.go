package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/ekwiwalent/internal/report"
	"github.com/sadopc/ekwiwalent/internal/store"
)

type summaryModel struct {
	store  *store.Store
	width  int
	height int

	summary report.Summary
	members int
}

func newSummaryModel(s *store.Store) summaryModel {
	return summaryModel{store: s}
}

func (m *summaryModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

type summaryDataMsg rosterMsg

func (m summaryModel) refresh() tea.Cmd {
	return func() tea.Msg {
		return summaryDataMsg(loadRoster(m.store))
	}
}

func (m summaryModel) update(msg tea.Msg) (summaryModel, tea.Cmd) {
	if msg, ok := msg.(summaryDataMsg); ok {
		if msg.err != nil {
			return m, func() tea.Msg { return errStatus("Błąd odczytu", msg.err) }
		}
		m.summary = report.Summarize(msg.roster.Operations, msg.roster.Members)
		m.members = len(msg.roster.Members)
	}
	return m, nil
}

func (m summaryModel) view() string {
	w := m.width - 4
	s := m.summary

	cards := renderCards(
		card{"Łączna kwota", report.Money(s.Compensation)},
		card{"Liczba godzin", report.Hours(s.Hours) + " godz."},
		card{"Zdarzenia", fmt.Sprintf("%d", s.Operations)},
		card{"Aktywni strażacy", fmt.Sprintf("%d / %d", s.ActiveMembers(), m.members)},
	)

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Podsumowanie"),
		"",
		cards,
		"",
		subtitleStyle.Render("Ekwiwalent wg strażaka"),
		renderMemberTable(s.Members, s.Totals),
		"",
		subtitleStyle.Render("Wg typu zdarzenia"),
		renderTypeTable(s.Types),
	))
}
