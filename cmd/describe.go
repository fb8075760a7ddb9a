package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	modelpkg "github.com/VoxDroid/smenu/internal/tui/model"
)

var describeCmd = &cobra.Command{
	Use:   "describe <key>",
	Short: "Show every field of a record and the command it runs",
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
		ui := modelpkg.New(repo, newResolver(), nil, nil)
		fmt.Fprintf(cmd.OutOrStdout(), "id:           %d\n%s", rec.ID, ui.Describe(rec))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)
}
