package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/VoxDroid/smenu/internal/executor"
	"github.com/VoxDroid/smenu/internal/recorder"
	"github.com/VoxDroid/smenu/internal/utils"
)

// editText opens the operator's editor; swapped in tests.
var editText = utils.EditText

var editArgsCmd = &cobra.Command{
	Use:   "edit-args <key> [text]",
	Short: "Replace the args text of a record",
	Long: "Replace the args text of a record. Without text, the current args are\n" +
		"opened in $EDITOR, or read from stdin with --stdin (one group of words per\n" +
		"line, # comments skipped). Use --clear to remove them.",
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		clearFlag, _ := cmd.Flags().GetBool("clear")
		fromStdin, _ := cmd.Flags().GetBool("stdin")

		repo, err := openStore()
		if err != nil {
			return err
		}
		rec, err := repo.FindByKey(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		var text string
		switch {
		case clearFlag:
		case len(args) == 2:
			text = args[1]
		case fromStdin:
			text, err = recorder.ReadArgs(cmd.InOrStdin())
			if err != nil {
				return err
			}
		default:
			header := fmt.Sprintf("Args for %s. %s\nLines starting with # are ignored.", rec.Key, rec.Label)
			text, err = editText(rec.Args, header)
			if err != nil {
				return err
			}
		}
		text = strings.TrimSpace(executor.Sanitize(text))

		out := cmd.OutOrStdout()
		if text == rec.Args {
			fmt.Fprintln(out, "Args unchanged.")
			return nil
		}
		if err := repo.UpdateArguments(cmd.Context(), rec.ID, text); err != nil {
			return err
		}
		status := openStatus()
		defer func() { _ = status.Close() }()
		status.Event(fmt.Sprintf("edited args for %s. %s", rec.Key, rec.Label), zap.String("args", text))

		fmt.Fprintln(out, "Args updated.")
		return nil
	},
}

func init() {
	editArgsCmd.Flags().Bool("clear", false, "Clear the args text")
	editArgsCmd.Flags().Bool("stdin", false, "Read the args text from stdin")
	rootCmd.AddCommand(editArgsCmd)
}
