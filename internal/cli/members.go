package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sadopc/ekwiwalent/internal/brigade"
)

func membersCmd(c *cmdContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "members",
		Aliases: []string{"member"},
		Short:   "Manage brigade members",
	}
	cmd.AddCommand(membersListCmd(c), membersAddCmd(c), membersDeleteCmd(c))
	return cmd
}

func membersListCmd(c *cmdContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List members with their operation counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			roster, err := loadRoster(c)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(roster.Members) == 0 {
				fmt.Fprintln(out, "Brak strażaków")
				return nil
			}
			counts := make(map[string]int)
			for _, op := range roster.Operations {
				counts[op.MemberID]++
			}
			tw := newTable(out)
			fmt.Fprintln(tw, "ID\tIMIĘ I NAZWISKO\tSTANOWISKO\tZDARZENIA")
			for _, m := range roster.Members {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", m.ID, m.Name, m.Rank, counts[m.ID])
			}
			return tw.Flush()
		},
	}
}

func membersAddCmd(c *cmdContext) *cobra.Command {
	var rank string
	cmd := &cobra.Command{
		Use:     "add [name]",
		Short:   "Add a member",
		Example: `  ekwiwalent members add "Jan Kowalski" --rank Naczelnik`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := brigade.NewMember(strings.Join(args, " "), rank)
			if err != nil {
				return err
			}
			s, err := c.openStore()
			if err != nil {
				return err
			}
			defer s.Close()
			if err := s.CreateMember(m); err != nil {
				return err
			}
			successColor.Fprintf(cmd.OutOrStdout(), "✓ Dodano strażaka %s: %s (%s)\n", m.ID, m.Name, m.Rank)
			return nil
		},
	}
	cmd.Flags().StringVarP(&rank, "rank", "r", "", "rank or role, e.g. Dowódca")
	_ = cmd.MarkFlagRequired("rank")
	return cmd
}

func membersDeleteCmd(c *cmdContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a member together with all of their operations",
		Args:  cobra.ExactArgs(1),
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
			ids := make([]string, len(members))
			for i, m := range members {
				ids[i] = m.ID
			}
			id, err := resolveID("member", ids, args[0])
			if err != nil {
				return err
			}
			m, _ := brigade.FindMember(members, id)

			removed, err := s.DeleteMember(id)
			if err != nil {
				return err
			}
			successColor.Fprintf(cmd.OutOrStdout(), "✓ Usunięto strażaka %s (usunięte zdarzenia: %d)\n", m.Name, removed)
			return nil
		},
	}
}

// resolveID expands a full id or a unique prefix of one.
func resolveID(kind string, ids []string, prefix string) (string, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return "", fmt.Errorf("%s id is required", kind)
	}
	var match string
	for _, id := range ids {
		if id == prefix {
			return id, nil
		}
		if strings.HasPrefix(id, prefix) {
			if match != "" {
				return "", fmt.Errorf("%s id %q is ambiguous", kind, prefix)
			}
			match = id
		}
	}
	if match == "" {
		return "", fmt.Errorf("%s %q not found", kind, prefix)
	}
	return match, nil
}
