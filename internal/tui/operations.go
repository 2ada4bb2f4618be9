package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/ekwiwalent/internal/brigade"
	"github.com/sadopc/ekwiwalent/internal/report"
	"github.com/sadopc/ekwiwalent/internal/store"
)

// operationsModel is the operation log: the add form and the full history,
// newest first.
type operationsModel struct {
	store   *store.Store
	catalog brigade.Catalog
	width   int
	height  int

	roster  *brigade.Roster
	members []brigade.Member
	ops     []brigade.Operation // newest first
	cursor  int

	formActive bool
	form       *huh.Form

	// Form field pointers (survive value copies)
	formMember *string
	formType   *string
	formDate   *string
	formHours  *string
}

func newOperationsModel(s *store.Store, cat brigade.Catalog) operationsModel {
	member, typ, date, hours := "", "", "", ""
	return operationsModel{
		store:      s,
		catalog:    cat,
		formMember: &member,
		formType:   &typ,
		formDate:   &date,
		formHours:  &hours,
	}
}

func (o *operationsModel) setSize(w, h int) {
	o.width = w
	o.height = h
}

type operationsDataMsg rosterMsg

func (o operationsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		return operationsDataMsg(loadRoster(o.store))
	}
}

// sync derives the member list and the history from the loaded roster.
func (o *operationsModel) sync() {
	o.members = o.roster.Members
	o.ops = report.Recent(o.roster.Operations)
	if o.cursor >= len(o.ops) {
		o.cursor = max(0, len(o.ops)-1)
	}
}

// The apply methods mirror a change the store has already accepted, so the
// view is current before the reload arrives.

func (o *operationsModel) applyOperationAdded(op brigade.Operation) {
	if o.roster != nil && o.roster.AddOperation(op) == nil {
		o.sync()
	}
}

func (o *operationsModel) applyOperationDeleted(id string) {
	if o.roster != nil && o.roster.DeleteOperation(id) {
		o.sync()
	}
}

func (o *operationsModel) applyMemberAdded(m brigade.Member) {
	if o.roster != nil {
		o.roster.AddMember(m)
		o.sync()
	}
}

func (o *operationsModel) applyMemberDeleted(id string) {
	if o.roster != nil {
		o.roster.DeleteMember(id)
		o.sync()
	}
}

func (o operationsModel) update(msg tea.Msg) (operationsModel, tea.Cmd) {
	// Reloads land even while the form is open.
	if msg, ok := msg.(operationsDataMsg); ok {
		if msg.err != nil {
			return o, func() tea.Msg { return errStatus("Błąd odczytu", msg.err) }
		}
		o.roster = msg.roster
		o.sync()
		return o, nil
	}

	if o.formActive && o.form != nil {
		return o.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if o.cursor > 0 {
				o.cursor--
			}
		case key.Matches(msg, keys.Down):
			if o.cursor < len(o.ops)-1 {
				o.cursor++
			}
		case key.Matches(msg, keys.New):
			if len(o.members) == 0 {
				return o, func() tea.Msg {
					return statusMsg{text: "Brak strażaków. Dodaj strażaka w zakładce 4.", isError: true}
				}
			}
			return o.showForm()
		case key.Matches(msg, keys.Delete):
			if len(o.ops) > 0 {
				return o, o.deleteSelected()
			}
		}
	}
	return o, nil
}

func (o operationsModel) showForm() (operationsModel, tea.Cmd) {
	*o.formMember = ""
	*o.formType = ""
	*o.formDate = time.Now().Format(brigade.DateLayout)
	*o.formHours = ""

	memberOptions := make([]huh.Option[string], len(o.members))
	for i, m := range o.members {
		memberOptions[i] = huh.NewOption(fmt.Sprintf("%s (%s)", m.Name, m.Rank), m.ID)
	}
	typeOptions := make([]huh.Option[string], len(o.catalog))
	for i, t := range o.catalog {
		typeOptions[i] = huh.NewOption(fmt.Sprintf("%s (%s)", t.Label, report.Rate(t.Rate)), t.Key)
	}

	o.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Strażak").Options(memberOptions...).Value(o.formMember),
			huh.NewInput().Title("Data").Placeholder(brigade.DateLayout).Value(o.formDate).
				Validate(func(s string) error {
					_, err := brigade.ParseDate(s)
					return formError(err)
				}),
			huh.NewSelect[string]().Title("Typ zdarzenia").Options(typeOptions...).Value(o.formType),
			huh.NewInput().Title("Czas (godziny)").Placeholder("0.0").Value(o.formHours).
				Validate(func(s string) error {
					_, err := brigade.ParseHours(s)
					return formError(err)
				}),
			huh.NewNote().Title("Ekwiwalent").DescriptionFunc(o.preview, []*string{o.formType, o.formHours}),
		),
	).WithShowHelp(true).WithShowErrors(true)

	o.formActive = true
	return o, o.form.Init()
}

// preview is the amount the form would record, or "-" until the type and
// hours are valid.
func (o operationsModel) preview() string {
	t, ok := o.catalog.Lookup(*o.formType)
	hours, err := brigade.ParseHours(*o.formHours)
	if !ok || err != nil {
		return "-"
	}
	return fmt.Sprintf("%s godz. × %s = %s", report.Hours(hours), report.Rate(t.Rate), report.Money(hours.Mul(t.Rate)))
}

func (o operationsModel) updateForm(msg tea.Msg) (operationsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			o.formActive = false
			o.form = nil
			return o, nil
		}
	}

	form, cmd := o.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		o.form = f
	}

	if o.form.State == huh.StateCompleted {
		o.formActive = false
		draft := brigade.Draft{
			MemberID: *o.formMember,
			TypeKey:  *o.formType,
			Date:     *o.formDate,
			Hours:    *o.formHours,
		}
		return o, o.addOperation(draft)
	}

	return o, cmd
}

func (o operationsModel) addOperation(d brigade.Draft) tea.Cmd {
	members, cat := o.members, o.catalog
	return func() tea.Msg {
		op, err := d.Operation(members, cat)
		if err != nil {
			return errStatus("Nie dodano zdarzenia", err)
		}
		if err := o.store.AddOperation(op); err != nil {
			return errStatus("Nie dodano zdarzenia", err)
		}
		return operationAddedMsg{op: op}
	}
}

func (o operationsModel) deleteSelected() tea.Cmd {
	op := o.ops[o.cursor]
	return func() tea.Msg {
		if err := o.store.DeleteOperation(op.ID); err != nil {
			return errStatus("Nie usunięto zdarzenia", err)
		}
		return operationDeletedMsg{id: op.ID}
	}
}

func (o operationsModel) view() string {
	w := o.width - 4

	if o.formActive && o.form != nil {
		title := titleStyle.Render("Dodaj zdarzenie")
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", o.form.View())
		return panelStyle.Width(w).Render(content)
	}

	title := titleStyle.Render("Historia zdarzeń")
	if len(o.ops) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("Brak zarejestrowanych zdarzeń. Naciśnij n, aby dodać pierwsze."),
		)
		return panelStyle.Width(w).Render(content)
	}

	totals := report.TotalsOf(o.ops)
	subtitle := subtitleStyle.Render(fmt.Sprintf("%d zdarzeń · %s godz. · %s",
		totals.Operations, report.Hours(totals.Hours), report.Money(totals.Compensation)))

	limit := o.height - 12
	table := renderOperationTable(o.ops, o.cursor, max(3, limit))
	nav := mutedStyle.Render("  n: dodaj  d: usuń  ↑/↓: wybierz")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "", table, "", nav),
	)
}
