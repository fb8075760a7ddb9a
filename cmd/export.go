package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/VoxDroid/smenu/internal/exporter"
)

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export the menu as JSON, or back up the database file",
	Long: "Export every record as a JSON array:\n" +
		"  smenu export menu.json\n" +
		"Back up the database file (default name script_menu-YYYY-MM-DD.db):\n" +
		"  smenu export --db-copy [file]",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		dbCopy, _ := cmd.Flags().GetBool("db-copy")
		if dbCopy {
			dst := exporter.BackupPath(filepath.Dir(settings.DBPath), time.Now())
			if len(args) == 1 {
				dst = args[0]
			}
			if err := exporter.ExportDatabase(settings.DBPath, dst); err != nil {
				return err
			}
			fmt.Fprintf(out, "exported database to %s\n", dst)
			return nil
		}
		if len(args) == 0 {
			return fmt.Errorf("export needs a destination file (or --db-copy)")
		}
		repo, err := openStore()
		if err != nil {
			return err
		}
		n, err := exporter.ExportJSON(cmd.Context(), repo, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "exported %d records to %s\n", n, args[0])
		return nil
	},
}

func init() {
	exportCmd.Flags().Bool("db-copy", false, "Copy the whole database file instead of writing JSON")
	rootCmd.AddCommand(exportCmd)
}
