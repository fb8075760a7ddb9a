package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/VoxDroid/smenu/internal/db"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the menu database with the full schema",
	Long:  "Create the menu database. Running it on an existing database is a no-op.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := db.Create(settings.DBPath); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Database ready at %s\n", settings.DBPath)
		return nil
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Add missing optional columns to an existing database",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		conn, err := db.Open(settings.DBPath)
		if err != nil {
			return err
		}
		defer func() { _ = conn.Close() }()
		added, err := db.EnsureOptionalColumns(conn)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(added) == 0 {
			fmt.Fprintln(out, "Schema is up to date.")
			return nil
		}
		for _, c := range added {
			fmt.Fprintf(out, "Added column %s\n", c)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(migrateCmd)
}
