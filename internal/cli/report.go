package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/sadopc/ekwiwalent/internal/brigade"
	"github.com/sadopc/ekwiwalent/internal/report"
)

func summaryCmd(c *cmdContext) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show all-time compensation per member and per operation type",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			roster, err := loadRoster(c)
			if err != nil {
				return err
			}
			s := report.Summarize(roster.Operations, roster.Members)

			out := cmd.OutOrStdout()
			headingColor.Fprintln(out, "Podsumowanie")
			printTotals(out, s.Totals)
			fmt.Fprintf(out, "Aktywni strażacy: %d / %d\n\n", s.ActiveMembers(), len(roster.Members))
			printMembers(out, s.Members, s.Totals)
			fmt.Fprintln(out)
			printTypes(out, s.Types)
			return nil
		},
	}
}

// quarterFlags are shared by the report and export commands.
type quarterFlags struct {
	quarter string
	year    int
}

func (f *quarterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.quarter, "quarter", "q", "", "quarter: Q1, Q2, Q3 or Q4")
	cmd.Flags().IntVarP(&f.year, "year", "y", time.Now().Year(), "year")
	_ = cmd.MarkFlagRequired("quarter")
}

// build loads the roster and produces the quarterly report.
func (f *quarterFlags) build(c *cmdContext) (*report.QuarterlyReport, error) {
	q, err := report.ParseQuarter(f.quarter)
	if err != nil {
		return nil, err
	}
	roster, err := loadRoster(c)
	if err != nil {
		return nil, err
	}
	r, _ := report.Quarterly(roster.Operations, roster.Members, q, f.year)
	return r, nil
}

func reportCmd(c *cmdContext) *cobra.Command {
	var flags quarterFlags
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show the quarterly compensation report",
		Example: `  ekwiwalent report --quarter Q1 --year 2024
  ekwiwalent report -q 3`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := flags.build(c)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			headingColor.Fprintf(out, "Raport %s %d\n", r.Range.Quarter.Label(), r.Range.Year)
			mutedColor.Fprintf(out, "%s - %s\n\n",
				r.Range.Start.Format(brigade.DateLayout), r.Range.End.Format(brigade.DateLayout))

			if r.Totals.Operations == 0 {
				mutedColor.Fprintln(out, "Brak zdarzeń w wybranym okresie.")
				return nil
			}

			printTotals(out, r.Totals)
			fmt.Fprintln(out)
			printMembers(out, r.Members, r.Totals)
			fmt.Fprintln(out)
			printTypes(out, r.Types)
			fmt.Fprintln(out)
			headingColor.Fprintln(out, "Szczegóły zdarzeń")
			printOperations(out, r.Operations)
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func yearsCmd(c *cmdContext) *cobra.Command {
	return &cobra.Command{
		Use:   "years",
		Short: "List years that can be reported on",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			roster, err := loadRoster(c)
			if err != nil {
				return err
			}
			for _, y := range report.ListAvailableYears(roster.Operations) {
				fmt.Fprintln(cmd.OutOrStdout(), y)
			}
			return nil
		},
	}
}

func loadRoster(c *cmdContext) (*brigade.Roster, error) {
	s, err := c.openStore()
	if err != nil {
		return nil, err
	}
	defer s.Close()
	return s.LoadRoster()
}
