package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
)

func configCmd(c *cmdContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the configuration file",
	}
	cmd.AddCommand(configShowCmd(c), configInitCmd(c))
	return cmd
}

func configShowCmd(c *cmdContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			mutedColor.Fprintf(out, "# %s\n", c.configPath)
			return toml.NewEncoder(out).Encode(c.Config)
		},
	}
}

func configInitCmd(c *cmdContext) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the effective configuration to the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := os.Stat(c.configPath)
			switch {
			case err == nil && !force:
				return fmt.Errorf("%s already exists (use --force to overwrite)", c.configPath)
			case err != nil && !errors.Is(err, fs.ErrNotExist):
				return err
			}
			if err := c.Config.Save(c.configPath); err != nil {
				return err
			}
			successColor.Fprintf(cmd.OutOrStdout(), "✓ Zapisano %s\n", c.configPath)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}
