package ui

import (
	"strings"

	"github.com/VoxDroid/smenu/internal/registry"
)

// recordItem adapts a record to list.DefaultItem. The list filters on
// FilterValue with its built-in fuzzy matcher.
type recordItem struct{ rec registry.Record }

func (i recordItem) Title() string { return i.rec.Key + ". " + i.rec.Label }

func (i recordItem) Description() string {
	if d := strings.TrimSpace(i.rec.Description); d != "" {
		return d
	}
	if a := strings.Join(strings.Fields(i.rec.Args), " "); a != "" {
		return "args: " + a
	}
	return i.rec.Kind
}

func (i recordItem) FilterValue() string {
	return strings.Join([]string{i.rec.Key, i.rec.Label, i.rec.Command, i.rec.ProgramPath}, " ")
}
