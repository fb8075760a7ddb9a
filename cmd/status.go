package cmd

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/VoxDroid/smenu/internal/statuslog"
	"github.com/VoxDroid/smenu/internal/tui/sanitize"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the status log of launches and edits",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		n, _ := cmd.Flags().GetInt("lines")
		follow, _ := cmd.Flags().GetBool("follow")
		out := cmd.OutOrStdout()

		// Start watching before printing the tail so no line is lost between
		// the two.
		var w *statuslog.Watcher
		if follow {
			var err error
			if w, err = statuslog.NewWatcher(settings.StatusFile); err != nil {
				return err
			}
		}

		lines, err := statuslog.Tail(settings.StatusFile, n)
		if err != nil {
			return err
		}
		if len(lines) == 0 && !follow {
			fmt.Fprintf(out, "no status entries in %s\n", settings.StatusFile)
			return nil
		}
		for _, l := range lines {
			fmt.Fprintln(out, sanitize.Line(l))
		}
		if w == nil {
			return nil
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		errc := make(chan error, 1)
		go func() { errc <- w.Run(ctx) }()
		for l := range w.Lines() {
			fmt.Fprintln(out, sanitize.Line(l))
		}
		if err := <-errc; err != nil {
			return err
		}
		return nil
	},
}

func init() {
	statusCmd.Flags().IntP("lines", "n", 20, "Number of lines to show")
	statusCmd.Flags().BoolP("follow", "f", false, "Keep printing new lines until interrupted")
	rootCmd.AddCommand(statusCmd)
}
