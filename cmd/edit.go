package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/VoxDroid/smenu/internal/executor"
	"github.com/VoxDroid/smenu/internal/registry"
)

// recordForm is the document opened in $EDITOR by `smenu edit`.
type recordForm struct {
	Key         string `yaml:"option_number"`
	Label       string `yaml:"label"`
	Type        string `yaml:"type"`
	Command     string `yaml:"command"`
	ProgramPath string `yaml:"program_path"`
	Args        string `yaml:"args"`
	WorkingDir  string `yaml:"working_dir"`
	BasePath    string `yaml:"base_path"`
	Description string `yaml:"description"`
	KeepOpen    string `yaml:"keep_open"`
}

func formFor(rec registry.Record) recordForm {
	return recordForm{
		Key:         rec.Key,
		Label:       rec.Label,
		Type:        rec.Kind,
		Command:     rec.Command,
		ProgramPath: rec.ProgramPath,
		Args:        rec.Args,
		WorkingDir:  rec.WorkingDir,
		BasePath:    rec.BasePath,
		Description: rec.Description,
		KeepOpen:    rec.KeepOpen,
	}
}

func (f recordForm) apply(rec *registry.Record) {
	rec.Key = f.Key
	rec.Label = f.Label
	rec.Kind = f.Type
	rec.Command = f.Command
	rec.ProgramPath = f.ProgramPath
	rec.Args = f.Args
	rec.WorkingDir = f.WorkingDir
	rec.BasePath = f.BasePath
	rec.Description = f.Description
	rec.KeepOpen = f.KeepOpen
}

// editFlags maps each field flag to the form field it sets.
func editFlags(f *recordForm) map[string]*string {
	return map[string]*string{
		"key":         &f.Key,
		"label":       &f.Label,
		"type":        &f.Type,
		"command":     &f.Command,
		"program":     &f.ProgramPath,
		"args":        &f.Args,
		"working-dir": &f.WorkingDir,
		"base-path":   &f.BasePath,
		"description": &f.Description,
		"keep-open":   &f.KeepOpen,
	}
}

var editCmd = &cobra.Command{
	Use:   "edit <key>",
	Short: "Edit every field of a record",
	Long: "Edit a record in place. Field flags change only the fields given;\n" +
		"without any, the record is opened in $EDITOR as YAML. Example:\n" +
		"  smenu edit 3 --label 'Nightly backup' --keep-open yes",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := openStore()
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		rec, err := repo.FindByKey(ctx, args[0])
		if err != nil {
			return err
		}

		form := formFor(rec)
		changed := false
		for name, dst := range editFlags(&form) {
			if cmd.Flags().Changed(name) {
				*dst, _ = cmd.Flags().GetString(name)
				changed = true
			}
		}
		if !changed {
			header := fmt.Sprintf("Record %s. %s (id %d)\nLines starting with # are ignored.", rec.Key, rec.Label, rec.ID)
			if form, err = editForm(form, header); err != nil {
				return err
			}
		}

		// untouched fields keep their stored spelling
		if form.Type != rec.Kind {
			k, ok := registry.NormalizeKind(form.Type)
			if !ok {
				return fmt.Errorf("unsupported type %q (want one of %v)", form.Type, registry.SupportedKinds)
			}
			form.Type = string(k)
		}
		if form.ProgramPath != rec.ProgramPath || form.Command != rec.Command {
			if strings.TrimSpace(form.ProgramPath) == "" && strings.TrimSpace(form.Command) == "" {
				return fmt.Errorf("one of program_path or command is required")
			}
		}
		if form.Args != rec.Args {
			form.Args = strings.TrimSpace(executor.Sanitize(form.Args))
		}

		updated := rec
		form.apply(&updated)
		out := cmd.OutOrStdout()
		if cmp.Equal(rec, updated) {
			fmt.Fprintln(out, "No changes.")
			return nil
		}
		if err := repo.Update(ctx, updated); err != nil {
			return fmt.Errorf("edit %s: %w", rec.Key, err)
		}
		status := openStatus()
		defer func() { _ = status.Close() }()
		status.Event(fmt.Sprintf("edited %s. %s", rec.Key, rec.Label), zap.Int64("id", rec.ID), zap.String("key", strings.TrimSpace(updated.Key)))

		fmt.Fprintf(out, "Updated option %s (id %d).\n", strings.TrimSpace(updated.Key), rec.ID)
		return nil
	},
}

// editForm round-trips form through the operator's editor.
func editForm(form recordForm, header string) (recordForm, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(form); err != nil {
		return form, err
	}
	text, err := editText(buf.String(), header)
	if err != nil {
		return form, err
	}
	if strings.TrimSpace(text) == "" {
		return form, errors.New("edit aborted: empty document")
	}
	var edited recordForm
	dec := yaml.NewDecoder(strings.NewReader(text))
	dec.KnownFields(true)
	if err := dec.Decode(&edited); err != nil && !errors.Is(err, io.EOF) {
		return form, fmt.Errorf("parse edited record: %w", err)
	}
	return edited, nil
}

func init() {
	f := editCmd.Flags()
	f.String("key", "", "New option number")
	f.String("label", "", "Menu label")
	f.String("type", "", "Record type: python or shell")
	f.String("command", "", "Legacy program-plus-arguments text")
	f.String("program", "", "Script path, absolute or relative to the working directory")
	f.String("args", "", "Argument text, shell quoting rules")
	f.String("working-dir", "", "Working directory")
	f.String("base-path", "", "Base directory used when --working-dir is empty")
	f.String("description", "", "Free-form description")
	f.String("keep-open", "", "Pause after the run: auto (on failure), yes or no")
	rootCmd.AddCommand(editCmd)
}
