package tui

import (
	"fmt"
	"strconv"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/ekwiwalent/internal/brigade"
	"github.com/sadopc/ekwiwalent/internal/report"
	"github.com/sadopc/ekwiwalent/internal/store"
)

// reportsModel selects a quarter of a year and shows its report. The
// selection is remembered in the store settings.
type reportsModel struct {
	store  *store.Store
	width  int
	height int

	roster  *brigade.Roster
	years   []int
	year    int
	quarter report.Quarter
	loaded  bool

	report *report.QuarterlyReport
	chart  barchart.Model
}

func newReportsModel(s *store.Store) reportsModel {
	return reportsModel{
		store: s,
		year:  time.Now().Year(),
		chart: barchart.New(60, 10),
	}
}

func (r *reportsModel) setSize(w, h int) {
	r.width = w
	r.height = h
}

type reportsDataMsg struct {
	roster  *brigade.Roster
	quarter report.Quarter
	year    int
	err     error
}

func (r reportsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		rm := loadRoster(r.store)
		msg := reportsDataMsg{roster: rm.roster, err: rm.err}
		if q, err := r.store.GetSetting(store.SettingReportQuarter); err == nil && q != "" {
			msg.quarter, _ = report.ParseQuarter(q)
		}
		if y, err := r.store.GetSetting(store.SettingReportYear); err == nil && y != "" {
			msg.year, _ = strconv.Atoi(y)
		}
		return msg
	}
}

func (r reportsModel) saveSelection() tea.Cmd {
	q, y := r.quarter, r.year
	return func() tea.Msg {
		if err := r.store.SetSetting(store.SettingReportQuarter, q.String()); err != nil {
			return errStatus("Nie zapisano wyboru", err)
		}
		if err := r.store.SetSetting(store.SettingReportYear, strconv.Itoa(y)); err != nil {
			return errStatus("Nie zapisano wyboru", err)
		}
		return nil
	}
}

func (r reportsModel) update(msg tea.Msg) (reportsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case reportsDataMsg:
		if msg.err != nil {
			return r, func() tea.Msg { return errStatus("Błąd odczytu", msg.err) }
		}
		r.roster = msg.roster
		r.years = report.ListAvailableYears(r.roster.Operations)
		if !r.loaded {
			r.loaded = true
			if msg.quarter.Valid() {
				r.quarter = msg.quarter
			}
			if msg.year != 0 {
				r.year = msg.year
			}
		}
		r.rebuild()
		return r, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			if r.quarter > report.Q1 {
				r.quarter--
			}
		case key.Matches(msg, keys.Right):
			if r.quarter < report.Q4 {
				r.quarter++
			}
		case key.Matches(msg, keys.Up):
			r.year = r.stepYear(1)
		case key.Matches(msg, keys.Down):
			r.year = r.stepYear(-1)
		default:
			return r, nil
		}
		r.rebuild()
		return r, r.saveSelection()
	}
	return r, nil
}

// stepYear moves to the next newer (dir > 0) or older year among those
// available. A selected year with no data stays reachable as a fallback.
func (r reportsModel) stepYear(dir int) int {
	best := r.year
	for _, y := range r.years {
		if dir > 0 && y > r.year && (best == r.year || y < best) {
			best = y
		}
		if dir < 0 && y < r.year && (best == r.year || y > best) {
			best = y
		}
	}
	return best
}

// current returns the report for the selection, or nil when no quarter has
// been chosen yet.
func (r reportsModel) current() *report.QuarterlyReport {
	return r.report
}

func (r *reportsModel) rebuild() {
	r.report = nil
	if r.roster == nil {
		return
	}
	rep, ok := report.Quarterly(r.roster.Operations, r.roster.Members, r.quarter, r.year)
	if !ok {
		return
	}
	r.report = rep
	r.buildChart()
}

func (r *reportsModel) buildChart() {
	chartWidth := r.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 10
	if r.height > 40 {
		chartHeight = 14
	}

	r.chart = barchart.New(chartWidth, chartHeight)

	var bars []barchart.BarData
	for i, m := range r.report.Members {
		style := lipgloss.NewStyle().Foreground(barColors[i%len(barColors)])
		bars = append(bars, barchart.BarData{
			Label: truncate(m.Name, 12),
			Values: []barchart.BarValue{{
				Name:  m.Name,
				Value: m.Total.InexactFloat64(),
				Style: style,
			}},
		})
	}
	if len(bars) == 0 {
		bars = []barchart.BarData{{
			Label:  "",
			Values: []barchart.BarValue{{Name: "", Value: 0, Style: lipgloss.NewStyle().Foreground(colorSubtle)}},
		}}
	}

	r.chart.PushAll(bars)
	r.chart.Draw()
}

func (r reportsModel) view() string {
	w := r.width - 4

	yearLabel := highlightStyle.Render(fmt.Sprintf("Rok: %d", r.year))
	var quarterTabs []string
	for _, q := range report.Quarters {
		if q == r.quarter {
			quarterTabs = append(quarterTabs, activeTabStyle.Render(q.String()))
		} else {
			quarterTabs = append(quarterTabs, inactiveTabStyle.Render(q.String()))
		}
	}
	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Raporty kwartalne"), "  ", yearLabel, "  ",
		lipgloss.JoinHorizontal(lipgloss.Bottom, quarterTabs...),
	)
	nav := mutedStyle.Render("  ←/→: kwartał  ↑/↓: rok  e: eksport")

	rep := r.report
	if rep == nil {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			header, "",
			mutedStyle.Render("  Wybierz kwartał, aby wygenerować raport."),
			"", nav,
		))
	}

	period := subtitleStyle.Render(fmt.Sprintf("%s %d · %s - %s", rep.Range.Quarter.Label(), rep.Range.Year,
		rep.Range.Start.Format(brigade.DateLayout), rep.Range.End.Format(brigade.DateLayout)))

	if rep.Totals.Operations == 0 {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			header, period, "",
			warningStyle.Render("  Brak zdarzeń w wybranym okresie."),
			"", nav,
		))
	}

	cards := renderCards(
		card{"Łączna kwota", report.Money(rep.Compensation)},
		card{"Łączne godziny", report.Hours(rep.Hours) + " godz."},
		card{"Zdarzenia", fmt.Sprintf("%d", rep.Totals.Operations)},
		card{"Aktywni strażacy", fmt.Sprintf("%d", len(rep.Members))},
	)

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
		header, period, "",
		cards, "",
		r.chart.View(), "",
		subtitleStyle.Render("Ekwiwalent wg strażaka"),
		renderMemberTable(rep.Members, rep.Totals), "",
		subtitleStyle.Render("Wg typu zdarzenia"),
		renderTypeTable(rep.Types), "",
		subtitleStyle.Render("Szczegóły zdarzeń"),
		renderOperationTable(rep.Operations, -1, 0), "",
		nav,
	))
}
