package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the dashboard bindings; it feeds both Update and the help
// overlay.
type keyMap struct {
	PrevTab     key.Binding
	NextTab     key.Binding
	Up          key.Binding
	Down        key.Binding
	Variant     key.Binding
	StartEarly  key.Binding
	StartLate   key.Binding
	EndEarly    key.Binding
	EndLate     key.Binding
	Raise       key.Binding
	Lower       key.Binding
	Reset       key.Binding
	ExportCSV   key.Binding
	ExportPDF   key.Binding
	ExportDB    key.Binding
	Theme       key.Binding
	Layout      key.Binding
	Annotate    key.Binding
	ToggleInput key.Binding
	Help        key.Binding
	Quit        key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		PrevTab:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "previous tab")),
		NextTab:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "next tab")),
		Up:          key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k", "previous chart")),
		Down:        key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j", "next chart")),
		Variant:     key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "cycle variant")),
		StartEarly:  key.NewBinding(key.WithKeys("["), key.WithHelp("[", "range start earlier")),
		StartLate:   key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "range start later")),
		EndEarly:    key.NewBinding(key.WithKeys("{"), key.WithHelp("{", "range end earlier")),
		EndLate:     key.NewBinding(key.WithKeys("}"), key.WithHelp("}", "range end later")),
		Raise:       key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "raise latest value")),
		Lower:       key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "lower latest value")),
		Reset:       key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset chart")),
		ExportCSV:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export CSV")),
		ExportPDF:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "PDF snapshot")),
		ExportDB:    key.NewBinding(key.WithKeys("S"), key.WithHelp("S", "SQLite snapshot")),
		Theme:       key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "light / dark")),
		Layout:      key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "grid / single")),
		Annotate:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "annotate")),
		ToggleInput: key.NewBinding(key.WithKeys("tab", " "), key.WithHelp("tab", "spreadsheet / canvas")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PrevTab, k.NextTab, k.Up, k.Down, k.Variant, k.Layout, k.Theme},
		{k.StartEarly, k.StartLate, k.EndEarly, k.EndLate, k.ToggleInput},
		{k.Raise, k.Lower, k.Reset, k.Annotate},
		{k.ExportCSV, k.ExportPDF, k.ExportDB, k.Help, k.Quit},
	}
}
