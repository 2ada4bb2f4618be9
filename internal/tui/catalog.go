package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/ekwiwalent/internal/brigade"
	"github.com/sadopc/ekwiwalent/internal/report"
)

// catalogModel shows the hourly rates in effect. Rates come from the
// configuration and cannot be edited here.
type catalogModel struct {
	catalog brigade.Catalog
	width   int
	height  int
}

func newCatalogModel(cat brigade.Catalog) catalogModel {
	return catalogModel{catalog: cat}
}

func (c *catalogModel) setSize(w, h int) {
	c.width = w
	c.height = h
}

func (c catalogModel) view() string {
	w := c.width - 4

	rows := []string{
		titleStyle.Render("Stawki ekwiwalentu"),
		"",
		mutedStyle.Render(fmt.Sprintf("  %-12s %-28s %16s", "Klucz", "Typ zdarzenia", "Stawka")),
		rule(58),
	}
	for _, t := range c.catalog {
		rows = append(rows, fmt.Sprintf("  %-12s %-28s %s",
			t.Key, t.Label, highlightStyle.Render(fmt.Sprintf("%16s", report.Rate(t.Rate)))))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  Stawki zmienia się w pliku konfiguracyjnym (sekcja [[rates]])."))
	rows = append(rows, mutedStyle.Render("  Zmiana stawki nie wpływa na już zarejestrowane zdarzenia."))

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
