package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sadopc/ekwiwalent/internal/export"
)

func exportCmd(c *cmdContext) *cobra.Command {
	var (
		flags  quarterFlags
		format string
		out    string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the quarterly report to a CSV, JSON or XLSX file",
		Example: `  ekwiwalent export --quarter Q1 --year 2024
  ekwiwalent export -q 2 --format csv --out raport.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			r, err := flags.build(c)
			if err != nil {
				return err
			}
			path := out
			if path == "" {
				path = export.Filename(r, f)
			}
			if err := export.Report(r, f, path); err != nil {
				return err
			}
			c.Log.Info("report exported",
				zap.String("format", string(f)),
				zap.String("quarter", r.Range.Quarter.String()),
				zap.Int("year", r.Range.Year),
				zap.String("path", path),
			)
			successColor.Fprintf(cmd.OutOrStdout(), "✓ Wyeksportowano do %s\n", path)
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", string(export.FormatXLSX), "csv, json or xlsx")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default ekwiwalent-<quarter>-<year>.<format>)")
	return cmd
}
