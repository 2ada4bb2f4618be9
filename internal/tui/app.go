package tui

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/sadopc/ekwiwalent/internal/auth"
	"github.com/sadopc/ekwiwalent/internal/brigade"
	"github.com/sadopc/ekwiwalent/internal/export"
	"github.com/sadopc/ekwiwalent/internal/store"
)

// App is the root Bubble Tea model.
type App struct {
	store *store.Store
	users *auth.Store
	log   *zap.Logger

	width  int
	height int

	session *auth.Session
	login   loginModel

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int

	operations operationsModel
	summary    summaryModel
	reports    reportsModel
	members    membersModel
	catalog    catalogModel

	help      help.Model
	status    string
	statusErr bool
}

func NewApp(s *store.Store, users *auth.Store, cat brigade.Catalog, log *zap.Logger) App {
	if log == nil {
		log = zap.NewNop()
	}
	h := help.New()
	h.ShowAll = false

	return App{
		store:      s,
		users:      users,
		log:        log,
		login:      newLoginModel(users),
		activeView: viewOperations,
		operations: newOperationsModel(s, cat),
		summary:    newSummaryModel(s),
		reports:    newReportsModel(s),
		members:    newMembersModel(s),
		catalog:    newCatalogModel(cat),
		help:       h,
	}
}

func (a App) Init() tea.Cmd {
	return a.loadSession()
}

func (a App) loadSession() tea.Cmd {
	return func() tea.Msg {
		sess, err := a.users.Current()
		if err != nil {
			return statusMsg{text: "Błąd sesji: " + err.Error(), isError: true}
		}
		return sessionMsg{session: sess}
	}
}

func (a App) logout() tea.Cmd {
	return func() tea.Msg {
		if err := a.users.Logout(); err != nil {
			return errStatus("Nie wylogowano", err)
		}
		return loggedOutMsg{}
	}
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.login.setSize(a.width, a.height)
		a.operations.setSize(a.width, contentHeight)
		a.summary.setSize(a.width, contentHeight)
		a.reports.setSize(a.width, contentHeight)
		a.members.setSize(a.width, contentHeight)
		a.catalog.setSize(a.width, contentHeight)
		return a, nil

	case sessionMsg:
		a.session = msg.session
		if a.session == nil {
			return a, nil
		}
		a.setStatus("Zalogowano jako "+a.session.FullName, false)
		a.activeView = viewOperations
		return a, a.refreshCurrentView()

	case loggedOutMsg:
		a.session = nil
		a.login = newLoginModel(a.users)
		a.login.setSize(a.width, a.height)
		a.exportPicking = false
		a.setStatus("Wylogowano", false)
		return a, nil

	case authFailedMsg:
		var cmd tea.Cmd
		a.login, cmd = a.login.update(msg)
		return a, cmd

	case tea.KeyMsg:
		if a.session == nil {
			if !a.login.formActive() && key.Matches(msg, keys.Quit) {
				return a, tea.Quit
			}
			var cmd tea.Cmd
			a.login, cmd = a.login.update(msg)
			return a, cmd
		}

		// Export picker
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// If a child view is capturing input (e.g. form), delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Export):
			if a.activeView != viewReports || a.reports.current() == nil {
				a.setStatus("Eksport: wybierz kwartał w zakładce Raporty", true)
				return a, nil
			}
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Logout):
			return a, a.logout()
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1):
			a.activeView = viewOperations
			return a, a.refreshCurrentView()
		case key.Matches(msg, keys.Tab2):
			a.activeView = viewSummary
			return a, a.refreshCurrentView()
		case key.Matches(msg, keys.Tab3):
			a.activeView = viewReports
			return a, a.refreshCurrentView()
		case key.Matches(msg, keys.Tab4):
			a.activeView = viewMembers
			return a, a.refreshCurrentView()
		case key.Matches(msg, keys.Tab5):
			a.activeView = viewCatalog
			return a, nil
		case key.Matches(msg, keys.Tab):
			a.activeView = (a.activeView + 1) % viewState(len(viewNames))
			return a, a.refreshCurrentView()
		}

	case operationsDataMsg:
		var cmd tea.Cmd
		a.operations, cmd = a.operations.update(msg)
		return a, cmd

	case summaryDataMsg:
		var cmd tea.Cmd
		a.summary, cmd = a.summary.update(msg)
		return a, cmd

	case reportsDataMsg:
		var cmd tea.Cmd
		a.reports, cmd = a.reports.update(msg)
		return a, cmd

	case membersDataMsg:
		var cmd tea.Cmd
		a.members, cmd = a.members.update(msg)
		return a, cmd

	case statusMsg:
		a.setStatus(msg.text, msg.isError)
		return a, nil

	case operationAddedMsg:
		a.operations.applyOperationAdded(msg.op)
		a.members.applyOperationAdded(msg.op)
		a.setStatus(fmt.Sprintf("Dodano zdarzenie: %s, %s", msg.op.MemberName, msg.op.Type), false)
		return a, a.refreshCurrentView()

	case operationDeletedMsg:
		a.operations.applyOperationDeleted(msg.id)
		a.members.applyOperationDeleted(msg.id)
		a.setStatus("Usunięto zdarzenie", false)
		return a, a.refreshCurrentView()

	case memberAddedMsg:
		a.members.applyMemberAdded(msg.member)
		a.operations.applyMemberAdded(msg.member)
		a.setStatus("Dodano strażaka: "+msg.member.Name, false)
		return a, a.refreshCurrentView()

	case memberDeletedMsg:
		a.members.applyMemberDeleted(msg.id)
		a.operations.applyMemberDeleted(msg.id)
		a.setStatus(fmt.Sprintf("Usunięto strażaka %s (zdarzenia: %d)", msg.name, msg.removed), false)
		return a, a.refreshCurrentView()

	case exportDoneMsg:
		a.setStatus("Wyeksportowano do "+msg.path, false)
		a.exportPicking = false
		return a, nil
	}

	if a.session == nil {
		var cmd tea.Cmd
		a.login, cmd = a.login.update(msg)
		return a, cmd
	}
	return a.updateActiveView(msg)
}

func (a *App) setStatus(text string, isError bool) {
	a.status = text
	a.statusErr = isError
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewOperations:
		a.operations, cmd = a.operations.update(msg)
	case viewSummary:
		a.summary, cmd = a.summary.update(msg)
	case viewReports:
		a.reports, cmd = a.reports.update(msg)
	case viewMembers:
		a.members, cmd = a.members.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	if a.session == nil {
		return a.login.formActive()
	}
	switch a.activeView {
	case viewOperations:
		return a.operations.formActive
	case viewMembers:
		return a.members.formActive
	}
	return false
}

func (a App) refreshCurrentView() tea.Cmd {
	switch a.activeView {
	case viewOperations:
		return a.operations.refresh()
	case viewSummary:
		return a.summary.refresh()
	case viewReports:
		return a.reports.refresh()
	case viewMembers:
		return a.members.refresh()
	}
	return nil
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	if a.session == nil {
		return a.login.view()
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewOperations:
		content = a.operations.view()
	case viewSummary:
		content = a.summary.view()
	case viewReports:
		content = a.reports.view()
	case viewMembers:
		content = a.members.view()
	case viewCatalog:
		content = a.catalog.view()
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := max(1, a.height-headerHeight-footerHeight)

	if a.exportPicking {
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		MaxHeight(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		label := fmt.Sprintf("%d %s", i+1, name)
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(label))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("🔥 ekwiwalent")
	if a.session != nil {
		title += mutedStyle.Render("  " + a.session.FullName)
	}
	gap := max(1, a.width-lipgloss.Width(title)-lipgloss.Width(tabRow)-4)
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		if a.statusErr {
			status = errorStyle.Render(" " + a.status)
		} else {
			status = successStyle.Render(" " + a.status)
		}
	}

	left := footerStyle.Render(helpView)
	gap := max(1, a.width-lipgloss.Width(left)-lipgloss.Width(status)-2)
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, status)
}

func (a App) renderExportPicker() string {
	rep := a.reports.current()
	title := titleStyle.Render(fmt.Sprintf("Eksport raportu %s %d", rep.Range.Quarter, rep.Range.Year))

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, f := range export.Formats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+export.Filename(rep, f)))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: eksportuj  esc: anuluj"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < len(export.Formats)-1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(export.Formats[a.exportCursor])
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) doExport(f export.Format) tea.Cmd {
	rep := a.reports.current()
	return func() tea.Msg {
		if rep == nil {
			return statusMsg{text: "Brak raportu do eksportu", isError: true}
		}
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		path := filepath.Join(home, export.Filename(rep, f))
		if err := export.Report(rep, f, path); err != nil {
			a.log.Error("export failed", zap.String("format", string(f)), zap.Error(err))
			return errStatus("Błąd eksportu", err)
		}
		a.log.Info("report exported",
			zap.String("format", string(f)),
			zap.String("quarter", rep.Range.Quarter.String()),
			zap.Int("year", rep.Range.Year),
			zap.String("path", path),
		)
		return exportDoneMsg{path: path}
	}
}
