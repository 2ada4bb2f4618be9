// Package cli implements the ekwiwalent command line. Run without a
// subcommand it starts the terminal UI.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sadopc/ekwiwalent/internal/auth"
	"github.com/sadopc/ekwiwalent/internal/brigade"
	"github.com/sadopc/ekwiwalent/internal/config"
	"github.com/sadopc/ekwiwalent/internal/logging"
	"github.com/sadopc/ekwiwalent/internal/store"
	"github.com/sadopc/ekwiwalent/internal/tui"
)

// cmdContext holds the resources shared by all commands. Config and Log are
// set before any command runs; the store is opened on demand.
type cmdContext struct {
	configPath string
	dbPath     string

	Config *config.Config
	Log    *zap.Logger
}

// load resolves configuration: defaults, config file, .env and environment,
// then flags.
func (c *cmdContext) load() error {
	_ = godotenv.Load()

	dir, err := config.DefaultDir()
	if err != nil {
		return fmt.Errorf("resolve config directory: %w", err)
	}
	path := c.configPath
	if path == "" {
		path = filepath.Join(dir, config.ConfigFile)
	}
	c.configPath = path

	cfg, err := config.Load(path, dir)
	if err != nil {
		return err
	}
	cfg.ApplyEnv()
	if c.dbPath != "" {
		cfg.Database.Path = c.dbPath
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration:\n%w", err)
	}

	log, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	c.Config = cfg
	c.Log = log
	return nil
}

func (c *cmdContext) openStore() (*store.Store, error) {
	s, err := store.New(c.Config.Database.Path, store.WithLogger(c.Log))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

func (c *cmdContext) catalog() brigade.Catalog {
	return c.Config.Catalog()
}

func (c *cmdContext) close() {
	if c.Log != nil {
		_ = c.Log.Sync()
	}
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	c := &cmdContext{}

	root := &cobra.Command{
		Use:   "ekwiwalent",
		Short: "Ekwiwalent OSP",
		Long: `Ewidencja zdarzeń i kalkulator ekwiwalentu pieniężnego dla strażaków
ochotniczej straży pożarnej. Bez podkomendy uruchamia interfejs terminalowy.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.load()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			c.close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(c)
		},
	}

	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default ~/.config/ekwiwalent/config.toml)")
	root.PersistentFlags().StringVar(&c.dbPath, "db", "", "database file")

	root.AddCommand(
		summaryCmd(c),
		reportCmd(c),
		yearsCmd(c),
		exportCmd(c),
		membersCmd(c),
		opsCmd(c),
		configCmd(c),
	)
	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		exitError("%v", err)
	}
}

func runTUI(c *cmdContext) error {
	s, err := c.openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	users, err := auth.Open(c.Config.Database.AuthPath, c.Log)
	if err != nil {
		return err
	}
	defer users.Close()

	c.Log.Info("starting terminal ui", zap.String("database", c.Config.Database.Path))
	app := tui.NewApp(s, users, c.catalog(), c.Log)
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}

// exitError prints an error and exits
func exitError(format string, args ...any) {
	color.New(color.FgRed).Fprintf(os.Stderr, "error: "+format+"\n", args...)
	os.Exit(1)
}
