package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/VoxDroid/smenu/internal/config"
	"github.com/VoxDroid/smenu/internal/logging"
)

var (
	flagDB      string
	flagConfig  string
	flagVerbose bool

	// settings and logger are populated by the root command before any
	// subcommand runs.
	settings config.Settings
	logger   = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "smenu",
	Short: "smenu is a SQLite-backed menu launcher for local scripts",
	Long: "smenu lists the scripts registered in a SQLite menu_items table, runs the\n" +
		"one you pick and returns to the menu when it exits.\n\n" +
		"Run without a subcommand to open the interactive menu.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		path := flagConfig
		if path == "" {
			p, err := config.ConfigPath()
			if err != nil {
				return err
			}
			path = p
		}
		s, err := config.LoadWith(path, config.Settings{DBPath: flagDB})
		if err != nil {
			return err
		}
		settings = s
		logger = logging.New(flagVerbose, cmd.ErrOrStderr())
		logger.Debug("settings loaded", zap.String("config", path), zap.String("db", s.DBPath))
		return nil
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		_ = logger.Sync()
	},
	RunE: runMenu,
}

// Execute executes the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "Path to the menu database (default $SMENU_DB or ~/.smenu/script_menu.db)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to the settings file (default $SMENU_CONFIG or ~/.smenu/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Verbose diagnostics on stderr")
}
