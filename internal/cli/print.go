package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/sadopc/ekwiwalent/internal/brigade"
	"github.com/sadopc/ekwiwalent/internal/report"
)

var (
	headingColor = color.New(color.FgRed, color.Bold)
	totalColor   = color.New(color.FgYellow, color.Bold)
	mutedColor   = color.New(color.Faint)
	successColor = color.New(color.FgGreen)
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func printTotals(w io.Writer, t report.Totals) {
	totalColor.Fprintf(w, "Łączna kwota:   %s\n", report.Money(t.Compensation))
	fmt.Fprintf(w, "Łączne godziny: %s\n", report.Hours(t.Hours))
	fmt.Fprintf(w, "Zdarzenia:      %d\n", t.Operations)
}

func printMembers(w io.Writer, rows []report.MemberRow, totals report.Totals) {
	headingColor.Fprintln(w, "Ekwiwalent wg strażaka")
	if len(rows) == 0 {
		mutedColor.Fprintln(w, "  brak strażaków")
		return
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "STRAŻAK\tSTANOWISKO\tZDARZENIA\tGODZINY\tKWOTA")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n", r.Name, r.Rank, r.Operations, report.Hours(r.Hours), report.Money(r.Total))
	}
	fmt.Fprintf(tw, "RAZEM\t\t%d\t%s\t%s\n", totals.Operations, report.Hours(totals.Hours), report.Money(totals.Compensation))
	tw.Flush()
}

func printTypes(w io.Writer, rows []report.TypeRow) {
	headingColor.Fprintln(w, "Wg typu zdarzenia")
	if len(rows) == 0 {
		mutedColor.Fprintln(w, "  brak zdarzeń")
		return
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "TYP\tZDARZENIA\tGODZINY\tKWOTA")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", r.Type, r.Count, report.Hours(r.Hours), report.Money(r.Total))
	}
	tw.Flush()
}

func printOperations(w io.Writer, ops []brigade.Operation) {
	if len(ops) == 0 {
		mutedColor.Fprintln(w, "  brak zdarzeń")
		return
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tDATA\tSTRAŻAK\tTYP\tGODZINY\tSTAWKA\tKWOTA")
	for _, op := range ops {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			shortID(op.ID), op.Date.Format(brigade.DateLayout), op.MemberName, op.Type,
			report.Hours(op.Hours), report.Rate(op.Rate), report.Money(op.Total))
	}
	tw.Flush()
}

// shortID returns first 8 characters of an ID
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
