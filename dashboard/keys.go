package dashboard

import "github.com/charmbracelet/bubbles/key"

type keymap struct {
	work   key.Binding
	coffee key.Binding
	lunch  key.Binding
	stop   key.Binding
	reset  key.Binding
	yes    key.Binding
	no     key.Binding
	help   key.Binding
	quit   key.Binding
}

var defaultKeymap = keymap{
	work: key.NewBinding(
		key.WithKeys("w"),
		key.WithHelp("w", "work"),
	),
	coffee: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "coffee"),
	),
	lunch: key.NewBinding(
		key.WithKeys("l"),
		key.WithHelp("l", "lunch"),
	),
	stop: key.NewBinding(
		key.WithKeys("s", " "),
		key.WithHelp("s", "stop"),
	),
	reset: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reset totals"),
	),
	yes: key.NewBinding(
		key.WithKeys("y", "enter"),
		key.WithHelp("y", "yes"),
	),
	no: key.NewBinding(
		key.WithKeys("n", "esc"),
		key.WithHelp("n", "no"),
	),
	help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "more"),
	),
	quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

func (k keymap) ShortHelp() []key.Binding {
	return []key.Binding{k.work, k.coffee, k.lunch, k.stop, k.help, k.quit}
}

func (k keymap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.work, k.coffee, k.lunch},
		{k.stop, k.reset},
		{k.help, k.quit},
	}
}

func (k keymap) confirmHelp() []key.Binding {
	return []key.Binding{k.yes, k.no}
}
