package cmd

import (
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/VoxDroid/smenu/internal/dispatcher"
	"github.com/VoxDroid/smenu/internal/executor"
	"github.com/VoxDroid/smenu/internal/utils"
)

var (
	menuDryRun bool
	menuTitle  string
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Open the interactive menu (the default command)",
	Long: "Open the interactive menu. Type an option number to run it, C to copy an\n" +
		"option, E to edit an option's args or 0 to exit.",
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(cmd *cobra.Command, _ []string) error {
	repo, err := openStore()
	if err != nil {
		return err
	}
	status := openStatus()
	defer func() { _ = status.Close() }()

	out := cmd.OutOrStdout()
	in := lineReader(cmd)
	defer func() { _ = in.Close() }()

	// Ctrl-C belongs to the running child; the menu keeps going.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt)
	defer signal.Stop(sigs)

	d := dispatcher.New(dispatcher.Config{
		Store:    repo,
		Resolver: newResolver(),
		Launcher: executor.New(menuDryRun, flagVerbose),
		Input:    in,
		Out:      out,
		Child:    executor.Stdio{In: cmd.InOrStdin(), Out: out, Err: cmd.ErrOrStderr()},
		Status:   status,
		Logger:   logger,
		Title:    menuTitle,
	})
	return d.Run(cmd.Context())
}

// lineReader uses the line editor on a terminal and a plain reader
// otherwise.
func lineReader(cmd *cobra.Command) utils.LineReader {
	if f, ok := cmd.InOrStdin().(*os.File); ok {
		return utils.NewLineReader(f, cmd.OutOrStdout(), settings.HistoryFile)
	}
	return utils.NewPlainReader(cmd.InOrStdin(), cmd.OutOrStdout())
}

func init() {
	menuCmd.Flags().BoolVar(&menuDryRun, "dry-run", false, "Print the command line instead of running it")
	menuCmd.Flags().StringVar(&menuTitle, "title", dispatcher.DefaultTitle, "Menu heading")
	rootCmd.AddCommand(menuCmd)
}
