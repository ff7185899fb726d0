package triage

import (
	"strings"

	"charm.land/bubbles/v2/key"

	"github.com/colonyops/redline/internal/tui/components"
)

// KeyMap holds the bindings handled by the triage view.
type KeyMap struct {
	Next         key.Binding
	Previous     key.Binding
	Down         key.Binding
	Up           key.Binding
	NextCategory key.Binding
	PrevCategory key.Binding
	AllCategory  key.Binding
	Select       key.Binding
	ScrollDown   key.Binding
	ScrollUp     key.Binding
	Help         key.Binding
}

// NewKeyMap builds the key map. next and previous replace the default
// alt+down/alt+up navigation keys when non-empty.
func NewKeyMap(next, previous []string) KeyMap {
	if len(next) == 0 {
		next = []string{"alt+down"}
	}
	if len(previous) == 0 {
		previous = []string{"alt+up"}
	}

	return KeyMap{
		Next:         key.NewBinding(key.WithKeys(next...), key.WithHelp(strings.Join(next, "/"), "next")),
		Previous:     key.NewBinding(key.WithKeys(previous...), key.WithHelp(strings.Join(previous, "/"), "previous")),
		Down:         key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next")),
		Up:           key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "previous")),
		NextCategory: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "category")),
		PrevCategory: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "category")),
		AllCategory:  key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "all")),
		Select:       key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("1-9", "jump")),
		ScrollDown:   key.NewBinding(key.WithKeys("pgdown", "ctrl+d"), key.WithHelp("pgdn", "scroll")),
		ScrollUp:     key.NewBinding(key.WithKeys("pgup", "ctrl+u"), key.WithHelp("pgup", "scroll")),
		Help:         key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	}
}

// ShortHelp returns the bindings shown in the help line.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Previous, k.NextCategory, k.AllCategory, k.Help}
}

// HelpSections groups every binding for the help dialog.
func (k KeyMap) HelpSections() []components.HelpSection {
	return []components.HelpSection{
		{Title: "Navigation", Bindings: []key.Binding{
			withDesc(k.Next, "next difference"),
			withDesc(k.Previous, "previous difference"),
			withDesc(k.Down, "next difference"),
			withDesc(k.Up, "previous difference"),
			withDesc(k.Select, "jump to difference"),
		}},
		{Title: "Filter", Bindings: []key.Binding{
			withDesc(k.NextCategory, "next category"),
			withDesc(k.PrevCategory, "previous category"),
			withDesc(k.AllCategory, "all categories"),
		}},
		{Title: "Detail", Bindings: []key.Binding{
			withDesc(k.ScrollDown, "scroll down"),
			withDesc(k.ScrollUp, "scroll up"),
		}},
	}
}

func withDesc(b key.Binding, desc string) key.Binding {
	b.SetHelp(b.Help().Key, desc)
	return b
}
