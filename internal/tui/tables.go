package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/ekwiwalent/internal/brigade"
	"github.com/sadopc/ekwiwalent/internal/report"
)

type card struct {
	label string
	value string
}

func renderCards(cards ...card) string {
	var rendered []string
	for _, c := range cards {
		rendered = append(rendered, cardStyle.Render(
			lipgloss.JoinVertical(lipgloss.Left, mutedStyle.Render(c.label), cardValueStyle.Render(c.value)),
		))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func rule(w int) string {
	return mutedStyle.Render("  " + strings.Repeat("─", max(10, w)))
}

// renderMemberTable lists member rows followed by a totals line.
func renderMemberTable(rows []report.MemberRow, totals report.Totals) string {
	if len(rows) == 0 {
		return mutedStyle.Render("  Brak strażaków")
	}
	var out []string
	out = append(out, mutedStyle.Render(fmt.Sprintf("  %-24s %-16s %9s %8s %14s", "Strażak", "Stanowisko", "Zdarzenia", "Godziny", "Kwota")))
	out = append(out, rule(75))
	for _, r := range rows {
		style := normalItemStyle
		if r.Operations == 0 {
			style = mutedStyle
		}
		out = append(out, style.Render(fmt.Sprintf("  %-24s %-16s %9d %8s %14s",
			truncate(r.Name, 24), truncate(r.Rank, 16), r.Operations, report.Hours(r.Hours), report.Money(r.Total))))
	}
	out = append(out, rule(75))
	out = append(out, titleStyle.Render(fmt.Sprintf("  %-41s %9d %8s %14s",
		"Razem", totals.Operations, report.Hours(totals.Hours), report.Money(totals.Compensation))))
	return strings.Join(out, "\n")
}

func renderTypeTable(rows []report.TypeRow) string {
	if len(rows) == 0 {
		return mutedStyle.Render("  Brak zdarzeń")
	}
	var out []string
	out = append(out, mutedStyle.Render(fmt.Sprintf("  %-24s %7s %8s %14s", "Typ zdarzenia", "Liczba", "Godziny", "Kwota")))
	out = append(out, rule(56))
	for _, r := range rows {
		out = append(out, fmt.Sprintf("  %-24s %7d %8s %14s",
			truncate(r.Type, 24), r.Count, report.Hours(r.Hours), highlightStyle.Render(fmt.Sprintf("%14s", report.Money(r.Total)))))
	}
	return strings.Join(out, "\n")
}

// renderOperationTable lists operations; cursor < 0 disables selection.
func renderOperationTable(ops []brigade.Operation, cursor, limit int) string {
	if len(ops) == 0 {
		return mutedStyle.Render("  Brak zdarzeń")
	}
	var out []string
	out = append(out, mutedStyle.Render(fmt.Sprintf("  %-10s  %-22s %-22s %7s %15s %12s", "Data", "Strażak", "Typ", "Godziny", "Stawka", "Kwota")))
	out = append(out, rule(94))

	start := 0
	if limit > 0 && cursor >= limit {
		start = cursor - limit + 1
	}
	end := len(ops)
	if limit > 0 && end-start > limit {
		end = start + limit
	}

	for i := start; i < end; i++ {
		op := ops[i]
		prefix := "  "
		style := normalItemStyle
		if i == cursor {
			prefix = "> "
			style = selectedItemStyle
		}
		out = append(out, style.Render(fmt.Sprintf("%s%-10s  %-22s %-22s %7s %15s %12s",
			prefix, op.Date.Format(brigade.DateLayout), truncate(op.MemberName, 22), truncate(op.Type, 22),
			report.Hours(op.Hours), report.Rate(op.Rate), report.Money(op.Total))))
	}
	if end-start < len(ops) {
		out = append(out, mutedStyle.Render(fmt.Sprintf("  … %d z %d", end-start, len(ops))))
	}
	return strings.Join(out, "\n")
}
