package tui

import "github.com/charmbracelet/bubbles/key"

type walletKeys struct {
	Home     key.Binding
	Explore  key.Binding
	Activity key.Binding
	Next     key.Binding
	Prev     key.Binding
	Send     key.Binding
	Receive  key.Binding
	Faucet   key.Binding
	Refresh  key.Binding
	Close    key.Binding
	Confirm  key.Binding
	Field    key.Binding
	Quit     key.Binding
}

func newWalletKeys() walletKeys {
	return walletKeys{
		Home:     key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "home")),
		Explore:  key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "explore")),
		Activity: key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "activity")),
		Next:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "next")),
		Prev:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "prev")),
		Send:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "send")),
		Receive:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "receive")),
		Faucet:   key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "test tokens")),
		Refresh:  key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "refresh")),
		Close:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Confirm:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm send")),
		Field:    key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "next field")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// screenHelp is shown when no sheet is open.
type screenHelp walletKeys

func (k screenHelp) ShortHelp() []key.Binding {
	return []key.Binding{k.Home, k.Explore, k.Activity, k.Send, k.Receive, k.Faucet, k.Refresh, k.Quit}
}

func (k screenHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp(), {k.Next, k.Prev}}
}

// sheetHelp is shown while a sheet is open.
type sheetHelp walletKeys

func (k sheetHelp) ShortHelp() []key.Binding {
	return []key.Binding{k.Field, k.Confirm, k.Close}
}

func (k sheetHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

type setupKeys struct {
	Create  key.Binding
	Import  key.Binding
	Back    key.Binding
	Submit  key.Binding
	Reveal  key.Binding
	Confirm key.Binding
	Quit    key.Binding
}

func newSetupKeys() setupKeys {
	return setupKeys{
		Create:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "create new wallet")),
		Import:  key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "import wallet")),
		Back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Submit:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "import")),
		Reveal:  key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "show/hide phrase")),
		Confirm: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "I've saved my recovery phrase")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}
