package styles

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// StripKeyMap defines keybindings for the interactive strip browser.
type StripKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Select     key.Binding
	MoveUp     key.Binding
	MoveDown   key.Binding
	MergeUp    key.Binding
	MergeDown  key.Binding
	Ungroup    key.Binding
	Single     key.Binding
	Undo       key.Binding
	Rename     key.Binding
	Recolor    key.Binding
	NewTab     key.Binding
	CloseTab   key.Binding
	Check      key.Binding
	Save       key.Binding
	Help       key.Binding
	Quit       key.Binding
	Cancel     key.Binding
	ConfirmKey key.Binding
}

// ShortHelp returns keybindings to show in compact help.
func (k StripKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.MergeDown, k.Ungroup, k.Undo, k.Help, k.Quit}
}

// FullHelp returns keybindings for expanded help.
func (k StripKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select},
		{k.MoveUp, k.MoveDown},
		{k.MergeUp, k.MergeDown, k.Ungroup, k.Single, k.Undo},
		{k.Rename, k.Recolor},
		{k.NewTab, k.CloseTab, k.Check},
		{k.Save, k.Help, k.Quit},
	}
}

// DefaultStripKeyMap returns the default strip browser keybindings.
func DefaultStripKeyMap() StripKeyMap {
	return StripKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "select tab"),
		),
		MoveUp: key.NewBinding(
			key.WithKeys("K", "shift+up"),
			key.WithHelp("K", "move up"),
		),
		MoveDown: key.NewBinding(
			key.WithKeys("J", "shift+down"),
			key.WithHelp("J", "move down"),
		),
		MergeUp: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "merge into previous"),
		),
		MergeDown: key.NewBinding(
			key.WithKeys("M"),
			key.WithHelp("M", "merge into next"),
		),
		Ungroup: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "ungroup"),
		),
		Single: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "single-tab group"),
		),
		Undo: key.NewBinding(
			key.WithKeys("z", "ctrl+z"),
			key.WithHelp("z", "undo grouping"),
		),
		Rename: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rename group"),
		),
		Recolor: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "cycle colour"),
		),
		NewTab: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new tab in group"),
		),
		CloseTab: key.NewBinding(
			key.WithKeys("x", "d"),
			key.WithHelp("x", "close tab"),
		),
		Check: key.NewBinding(
			key.WithKeys("!"),
			key.WithHelp("!", "check order"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "save & quit"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		ConfirmKey: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
	}
}

// NewStyledHelp creates a themed help model.
func NewStyledHelp(theme *Theme) help.Model {
	h := help.New()
	h.Styles.ShortKey = lipgloss.NewStyle().Foreground(theme.Accent)
	h.Styles.ShortDesc = lipgloss.NewStyle().Foreground(theme.Muted)
	h.Styles.ShortSeparator = lipgloss.NewStyle().Foreground(theme.Border)
	h.Styles.FullKey = lipgloss.NewStyle().Foreground(theme.Accent)
	h.Styles.FullDesc = lipgloss.NewStyle().Foreground(theme.Text)
	h.Styles.FullSeparator = lipgloss.NewStyle().Foreground(theme.Border)
	return h
}
