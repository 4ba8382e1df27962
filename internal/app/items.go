package app

import (
	"strings"

	"github.com/atomicstack/termcompose/internal/ui"
)

// CommandData is the external format context for command items: a
// namespace prefix stripped from qualified names when rendering.
type CommandData struct {
	Prefix string
}

// CommandItem is the demo menu entry: a qualified command name plus its
// key binding.
type CommandItem struct {
	Name    string
	Binding string
}

// Format renders the item as a two-column row, the name with the
// namespace prefix stripped.
func (c CommandItem) Format(data CommandData) ui.Row {
	name := strings.TrimPrefix(c.Name, data.Prefix)
	return ui.Row{name, c.Binding}
}

// FilterText filters on the full qualified name so namespaced lookups
// still match.
func (c CommandItem) FilterText(data CommandData) string {
	return c.Name
}

// DefaultCommands lists the entries shown by the demo menu.
func DefaultCommands() []CommandItem {
	return []CommandItem{
		{Name: "editor.open", Binding: "space f"},
		{Name: "editor.save", Binding: ": w"},
		{Name: "editor.save-all", Binding: ": wa"},
		{Name: "editor.close", Binding: ": q"},
		{Name: "editor.search", Binding: "/"},
		{Name: "editor.replace", Binding: ": s"},
		{Name: "editor.goto-line", Binding: "g g"},
		{Name: "editor.undo", Binding: "u"},
		{Name: "editor.redo", Binding: "U"},
		{Name: "editor.toggle-comment", Binding: "ctrl-c"},
		{Name: "editor.format", Binding: "= ="},
		{Name: "editor.select-all", Binding: "%"},
	}
}
