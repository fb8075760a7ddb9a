package cmd

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/VoxDroid/smenu/internal/executor"
	"github.com/VoxDroid/smenu/internal/security"
	"github.com/VoxDroid/smenu/internal/utils"
)

var runCmd = &cobra.Command{
	Use:   "run <key>",
	Short: "Run one menu record without the menu",
	Long: "Resolve and run one record by option number or id. The child inherits\n" +
		"the terminal; a non-zero exit status makes smenu exit 1.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dry, _ := cmd.Flags().GetBool("dry-run")
		confirmFlag, _ := cmd.Flags().GetBool("confirm")
		force, _ := cmd.Flags().GetBool("force")

		repo, err := openStore()
		if err != nil {
			return err
		}
		rec, err := repo.FindByKey(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		title := fmt.Sprintf("%s. %s", rec.Key, rec.Label)
		inv, err := newResolver().Resolve(rec)
		if err != nil {
			return fmt.Errorf("could not build command for %s: %w", title, err)
		}

		// Security: check if the invocation is allowed
		if err := security.CheckInvocation(inv); err != nil && !force {
			return fmt.Errorf("refusing to run potentially dangerous command '%s': %v (use --force to override)", inv, err)
		}

		out := cmd.OutOrStdout()
		if confirmFlag {
			if !utils.ConfirmReader(fmt.Sprintf("Run '%s' now?", title), cmd.InOrStdin(), out) {
				fmt.Fprintln(out, "aborted")
				return nil
			}
		}

		status := openStatus()
		defer func() { _ = status.Close() }()

		runID := uuid.NewString()
		if !dry {
			status.Event("started "+title, zap.String("run_id", runID), zap.String("cmd", inv.String()))
		}
		start := time.Now()
		res, err := executor.New(dry, flagVerbose).Launch(cmd.Context(), inv, executor.Stdio{
			In:  cmd.InOrStdin(),
			Out: out,
			Err: cmd.ErrOrStderr(),
		})
		if err != nil {
			status.Event("failed "+title, zap.String("run_id", runID), zap.Error(err))
			return err
		}
		if dry {
			return nil
		}
		status.Event("finished "+title,
			zap.String("run_id", runID),
			zap.Int("exit_code", res.ExitCode),
			zap.Duration("elapsed", time.Since(start).Round(time.Millisecond)))
		if res.ExitCode != 0 {
			return fmt.Errorf("%s exited with status %d", title, res.ExitCode)
		}
		return nil
	},
}

func init() {
	runCmd.Flags().Bool("dry-run", false, "Print the command line instead of running it")
	runCmd.Flags().Bool("confirm", false, "Ask for confirmation before running")
	runCmd.Flags().Bool("force", false, "Override safety checks and force execution")
	rootCmd.AddCommand(runCmd)
}
