package cli

import "github.com/charmbracelet/bubbles/key"

// keyMap lists every chart binding. It implements help.KeyMap.
type keyMap struct {
	ZoomIn     key.Binding
	ZoomOut    key.Binding
	Years      key.Binding
	Months     key.Binding
	Weeks      key.Binding
	Days       key.Binding
	Left       key.Binding
	Right      key.Binding
	NextRow    key.Binding
	PrevRow    key.Binding
	Up         key.Binding
	Down       key.Binding
	ToggleWBS  key.Binding
	ToggleNode key.Binding
	Generate   key.Binding
	Edit       key.Binding
	Delete     key.Binding
	Import     key.Binding
	Cancel     key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		ZoomIn:     key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+/-", "zoom")),
		ZoomOut:    key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "zoom out")),
		Years:      key.NewBinding(key.WithKeys("y"), key.WithHelp("y/m/w/d", "bands")),
		Months:     key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "months")),
		Weeks:      key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "weeks")),
		Days:       key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "days")),
		Left:       key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/→", "scroll")),
		Right:      key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "scroll right")),
		NextRow:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next row")),
		PrevRow:    key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous row")),
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/↓", "move")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓", "down")),
		ToggleWBS:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "breakdown")),
		ToggleNode: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "fold task")),
		Generate:   key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "AI breakdown")),
		Edit:       key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit task")),
		Delete:     key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete task")),
		Import:     key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "import image")),
		Cancel:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.ZoomIn, k.Years, k.Left, k.NextRow, k.ToggleWBS, k.Generate, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.ZoomIn, k.ZoomOut, k.Left, k.Right},
		{k.Years, k.Months, k.Weeks, k.Days},
		{k.NextRow, k.PrevRow, k.ToggleWBS, k.Up, k.Down, k.ToggleNode},
		{k.Generate, k.Edit, k.Delete, k.Import},
		{k.Cancel, k.Help, k.Quit},
	}
}
