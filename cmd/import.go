package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/VoxDroid/smenu/internal/importer"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import records from JSON, or restore a database file",
	Long: "Insert the records of a JSON or JSONC export:\n" +
		"  smenu import menu.json [--skip-existing]\n" +
		"Replace the database with a backup:\n" +
		"  smenu import --db-copy backup.db --overwrite",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		src := args[0]
		dbCopy, _ := cmd.Flags().GetBool("db-copy")
		if dbCopy {
			overwrite, _ := cmd.Flags().GetBool("overwrite")
			if err := importer.ImportDatabase(src, settings.DBPath, overwrite); err != nil {
				return err
			}
			fmt.Fprintf(out, "restored database from %s\n", src)
			return nil
		}

		skip, _ := cmd.Flags().GetBool("skip-existing")
		repo, err := openStore()
		if err != nil {
			return err
		}
		rep, err := importer.ImportFile(cmd.Context(), repo, src, importer.Options{SkipExisting: skip})
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "imported %d records from %s\n", rep.Imported, src)
		if len(rep.Skipped) > 0 {
			fmt.Fprintf(out, "skipped existing options: %s\n", strings.Join(rep.Skipped, ", "))
		}
		if len(rep.Cleaned) > 0 {
			fmt.Fprintf(out, "cleaned labels of options: %s\n", strings.Join(rep.Cleaned, ", "))
		}
		return nil
	},
}

func init() {
	importCmd.Flags().Bool("skip-existing", false, "Skip entries whose option number is already in use")
	importCmd.Flags().Bool("db-copy", false, "Treat the file as a database backup and replace the current database")
	importCmd.Flags().Bool("overwrite", false, "Allow --db-copy to replace an existing database")
	rootCmd.AddCommand(importCmd)
}
