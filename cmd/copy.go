package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/VoxDroid/smenu/internal/executor"
	"github.com/VoxDroid/smenu/internal/registry"
)

var copyCmd = &cobra.Command{
	Use:   "copy <key>",
	Short: "Copy a record to a new option number",
	Long: "Copy every field of a record into a new row. Unset flags keep the\n" +
		"source's label and args; the new option number defaults to the next free one.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := openStore()
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		src, err := repo.FindByKey(ctx, args[0])
		if err != nil {
			return err
		}

		var o registry.Overrides
		if cmd.Flags().Changed("key") {
			v, _ := cmd.Flags().GetString("key")
			o.Key = &v
		} else {
			next, err := repo.NextFreeKey(ctx)
			if err != nil {
				return err
			}
			o.Key = &next
		}
		if cmd.Flags().Changed("label") {
			v, _ := cmd.Flags().GetString("label")
			o.Label = &v
		}
		if cmd.Flags().Changed("args") {
			v, _ := cmd.Flags().GetString("args")
			v = executor.Sanitize(v)
			o.Args = &v
		}

		id, err := repo.InsertDerived(ctx, src, o)
		if err != nil {
			return fmt.Errorf("copy %s: %w", src.Key, err)
		}
		status := openStatus()
		defer func() { _ = status.Close() }()
		status.Event(fmt.Sprintf("copied %s to %s", src.Key, *o.Key), zap.Int64("id", id))

		fmt.Fprintf(cmd.OutOrStdout(), "Option %s copied to %s (id %d).\n", src.Key, *o.Key, id)
		return nil
	},
}

func init() {
	copyCmd.Flags().String("key", "", "Option number for the copy (default next free)")
	copyCmd.Flags().String("label", "", "Label for the copy (default the source's)")
	copyCmd.Flags().String("args", "", "Args text for the copy (default the source's)")
	rootCmd.AddCommand(copyCmd)
}
