package cmd

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/VoxDroid/smenu/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List menu records in menu order",
	Long:  "List menu records in menu order. Example:\n  smenu list --filter backup",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		repo, err := openStore()
		if err != nil {
			return err
		}
		recs, err := repo.ListCommands(cmd.Context())
		if err != nil {
			return err
		}
		filter, _ := cmd.Flags().GetString("filter")
		recs = registry.Filter(recs, filter)
		if len(recs) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no records")
			return nil
		}
		writeTable(cmd, recs)
		return nil
	},
}

// writeTable prints key, label, type and program in aligned columns.
// Widths are measured in terminal cells.
func writeTable(cmd *cobra.Command, recs []registry.Record) {
	rows := [][]string{{"KEY", "LABEL", "TYPE", "PROGRAM"}}
	for _, r := range recs {
		prog := r.ProgramPath
		if prog == "" {
			prog = r.Command
		}
		rows = append(rows, []string{r.Key, r.Label, r.Kind, prog})
	}
	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, c := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(c))
		}
	}
	out := cmd.OutOrStdout()
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, c := range row {
			if i == len(row)-1 {
				cells[i] = c
				continue
			}
			cells[i] = runewidth.FillRight(c, widths[i])
		}
		fmt.Fprintln(out, strings.TrimRight(strings.Join(cells, "  "), " "))
	}
}

func init() {
	listCmd.Flags().String("filter", "", "Fuzzy filter on key, label, command and program")
	rootCmd.AddCommand(listCmd)
}
