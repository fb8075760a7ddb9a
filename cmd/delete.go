package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/VoxDroid/smenu/internal/utils"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <key>",
	Short: "Delete a record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := openStore()
		if err != nil {
			return err
		}
		rec, err := repo.FindByKey(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes && !utils.ConfirmReader(fmt.Sprintf("Delete option %s. %s?", rec.Key, rec.Label), cmd.InOrStdin(), out) {
			fmt.Fprintln(out, "aborted")
			return nil
		}
		if err := repo.Delete(cmd.Context(), rec.ID); err != nil {
			return err
		}
		fmt.Fprintf(out, "Deleted option %s (id %d).\n", rec.Key, rec.ID)
		return nil
	},
}

func init() {
	deleteCmd.Flags().BoolP("yes", "y", false, "Do not prompt for confirmation")
	rootCmd.AddCommand(deleteCmd)
}
