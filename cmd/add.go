package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/VoxDroid/smenu/internal/executor"
	"github.com/VoxDroid/smenu/internal/registry"
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a record to the menu",
	Long: "Add a record to the menu. Example:\n" +
		"  smenu add --label Backup --type shell --program backup.sh --args '--full'",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		f := cmd.Flags()
		key, _ := f.GetString("key")
		label, _ := f.GetString("label")
		kind, _ := f.GetString("type")
		command, _ := f.GetString("command")
		program, _ := f.GetString("program")
		argText, _ := f.GetString("args")
		wd, _ := f.GetString("working-dir")
		base, _ := f.GetString("base-path")
		desc, _ := f.GetString("description")
		keepOpen, _ := f.GetString("keep-open")

		k, ok := registry.NormalizeKind(kind)
		if !ok {
			return fmt.Errorf("unsupported type %q (want one of %v)", kind, registry.SupportedKinds)
		}
		if program == "" && command == "" {
			return fmt.Errorf("one of --program or --command is required")
		}

		repo, err := openStore()
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		if key == "" {
			if key, err = repo.NextFreeKey(ctx); err != nil {
				return err
			}
		}
		id, err := repo.Insert(ctx, registry.Record{
			Key:         key,
			Label:       label,
			Kind:        string(k),
			Command:     command,
			ProgramPath: program,
			Args:        executor.Sanitize(argText),
			WorkingDir:  wd,
			BasePath:    base,
			Description: desc,
			KeepOpen:    keepOpen,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added option %s (id %d).\n", key, id)
		return nil
	},
}

func init() {
	f := addCmd.Flags()
	f.String("key", "", "Option number (default next free)")
	f.String("label", "", "Menu label")
	f.String("type", string(registry.KindPython), "Record type: python or shell")
	f.String("command", "", "Legacy program-plus-arguments text")
	f.String("program", "", "Script path, absolute or relative to the working directory")
	f.String("args", "", "Argument text, shell quoting rules")
	f.String("working-dir", "", "Working directory")
	f.String("base-path", "", "Base directory used when --working-dir is empty")
	f.String("description", "", "Free-form description")
	f.String("keep-open", "", "Pause after the run: auto (on failure), yes or no")
	_ = addCmd.MarkFlagRequired("label")
	rootCmd.AddCommand(addCmd)
}
