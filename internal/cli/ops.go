package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/sadopc/ekwiwalent/internal/brigade"
	"github.com/sadopc/ekwiwalent/internal/report"
	"github.com/sadopc/ekwiwalent/internal/store"
)

func opsCmd(c *cmdContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "ops",
		Aliases: []string{"op", "operations"},
		Short:   "Log, list and delete operations",
	}
	cmd.AddCommand(opsListCmd(c), opsAddCmd(c), opsDeleteCmd(c))
	return cmd
}

func opsListCmd(c *cmdContext) *cobra.Command {
	var member, from, to string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List operations, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			var f store.OperationFilter
			if member != "" {
				members, err := s.ListMembers()
				if err != nil {
					return err
				}
				if f.MemberID, err = resolveMember(members, member); err != nil {
					return err
				}
			}
			if from != "" {
				if f.From, err = brigade.ParseDate(from); err != nil {
					return fmt.Errorf("--from: %w", err)
				}
			}
			if to != "" {
				if f.To, err = brigade.ParseDate(to); err != nil {
					return fmt.Errorf("--to: %w", err)
				}
			}

			ops, err := s.ListOperations(f)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			ops = report.Recent(ops)
			printOperations(out, ops)
			if len(ops) > 0 {
				fmt.Fprintln(out)
				printTotals(out, report.TotalsOf(ops))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&member, "member", "m", "", "only this member (id or id prefix)")
	cmd.Flags().StringVar(&from, "from", "", "first date, YYYY-MM-DD")
	cmd.Flags().StringVar(&to, "to", "", "last date, YYYY-MM-DD")
	return cmd
}

func opsAddCmd(c *cmdContext) *cobra.Command {
	var d brigade.Draft
	cmd := &cobra.Command{
		Use:     "add",
		Short:   "Log an operation",
		Example: `  ekwiwalent ops add --member 3f2a9c1d --type fire --hours 2.5 --date 2024-02-10`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			members, err := s.ListMembers()
			if err != nil {
				return err
			}
			if d.MemberID, err = resolveMember(members, d.MemberID); err != nil {
				return err
			}
			op, err := d.Operation(members, c.catalog())
			if err != nil {
				return err
			}
			if err := s.AddOperation(op); err != nil {
				return err
			}
			successColor.Fprintf(cmd.OutOrStdout(), "✓ Zapisano zdarzenie %s: %s, %s, %s godz. × %s = %s\n",
				shortID(op.ID), op.MemberName, op.Type, report.Hours(op.Hours), report.Rate(op.Rate), report.Money(op.Total))
			return nil
		},
	}
	cmd.Flags().StringVarP(&d.MemberID, "member", "m", "", "member id or id prefix")
	cmd.Flags().StringVarP(&d.TypeKey, "type", "t", "", "operation type key, see 'config show'")
	cmd.Flags().StringVarP(&d.Date, "date", "d", time.Now().Format(brigade.DateLayout), "date, YYYY-MM-DD")
	cmd.Flags().StringVar(&d.Hours, "hours", "", "duration in hours, e.g. 2.5")
	_ = cmd.MarkFlagRequired("member")
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("hours")
	return cmd
}

func opsDeleteCmd(c *cmdContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete an operation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			ops, err := s.ListOperations(store.OperationFilter{})
			if err != nil {
				return err
			}
			ids := make([]string, len(ops))
			for i, op := range ops {
				ids[i] = op.ID
			}
			id, err := resolveID("operation", ids, args[0])
			if err != nil {
				return err
			}
			if err := s.DeleteOperation(id); err != nil {
				return err
			}
			successColor.Fprintf(cmd.OutOrStdout(), "✓ Usunięto zdarzenie %s\n", shortID(id))
			return nil
		},
	}
}

func resolveMember(members []brigade.Member, prefix string) (string, error) {
	ids := make([]string, len(members))
	for i, m := range members {
		ids[i] = m.ID
	}
	return resolveID("member", ids, prefix)
}
