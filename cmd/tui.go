package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/VoxDroid/smenu/cmd/tui/ui"
	"github.com/VoxDroid/smenu/internal/executor"
	"github.com/VoxDroid/smenu/internal/statuslog"
	modelpkg "github.com/VoxDroid/smenu/internal/tui/model"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Start the full-screen menu with a live status log",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		repo, err := openStore()
		if err != nil {
			return err
		}
		status := openStatus()
		defer func() { _ = status.Close() }()

		uiModel := modelpkg.New(repo, newResolver(), &executor.Executor{Verbose: flagVerbose}, status)
		p := ui.NewProgram(uiModel)

		w, err := statuslog.NewWatcher(settings.StatusFile)
		if err != nil {
			logger.Warn("status pane disabled", zap.Error(err))
			_, err = p.Run()
			return err
		}

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error { return w.Run(gctx) })
		g.Go(func() error {
			defer cancel()
			return ui.Run(gctx, p, w.Lines())
		})
		return g.Wait()
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
