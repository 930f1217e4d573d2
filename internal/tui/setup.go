package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mrz1836/suiwallet/internal/service/account"
	"github.com/mrz1836/suiwallet/internal/wallet"
)

type createdMsg struct {
	err error
}

// SetupModel drives an account.Flow: create a new account or import one.
// It quits once the flow is ready, or when creation fails.
type SetupModel struct {
	ctx   context.Context
	flow  *account.Flow
	keys  setupKeys
	help  help.Model
	words textinput.Model

	revealed bool
	err      error
}

// NewSetupModel creates the setup screens over flow.
func NewSetupModel(ctx context.Context, flow *account.Flow) SetupModel {
	words := textinput.New()
	words.Placeholder = "enter your 12 or 24 word recovery phrase"
	words.Width = 80
	words.EchoMode = textinput.EchoPassword

	return SetupModel{
		ctx:   ctx,
		flow:  flow,
		keys:  newSetupKeys(),
		help:  help.New(),
		words: words,
	}
}

// Account returns the ready account, nil if setup was abandoned.
func (m SetupModel) Account() *wallet.Account {
	if m.flow.State() != account.StateReady {
		return nil
	}
	return m.flow.Account()
}

// Err returns the account creation failure that ended setup, if any.
func (m SetupModel) Err() error {
	return m.err
}

// Init implements tea.Model.
func (m SetupModel) Init() tea.Cmd {
	return nil
}

func (m SetupModel) createCmd() tea.Cmd {
	return func() tea.Msg {
		_, err := m.flow.Create(m.ctx)
		return createdMsg{err: err}
	}
}

// Update implements tea.Model.
func (m SetupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case createdMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		switch m.flow.State() {
		case account.StateOptions:
			return m.updateOptions(msg)
		case account.StateImportEntry:
			return m.updateImport(msg)
		case account.StateCreated:
			return m.updateCreated(msg)
		case account.StateReady:
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m SetupModel) updateOptions(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Create):
		return m, m.createCmd()
	case key.Matches(msg, m.keys.Import):
		m.flow.ChooseImport()
		return m, m.words.Focus()
	case msg.String() == "q":
		return m, tea.Quit
	}
	return m, nil
}

func (m SetupModel) updateImport(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.flow.Back()
		m.words.Blur()
		m.words.SetValue("")
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		phrase := wallet.NormalizeMnemonicInput(m.words.Value())
		if m.flow.Import(m.ctx, strings.Fields(phrase)) {
			m.words.SetValue("")
			return m, tea.Quit
		}
		// A rejected phrase leaves the screen as it was.
		return m, nil
	}

	var cmd tea.Cmd
	m.words, cmd = m.words.Update(msg)
	return m, cmd
}

func (m SetupModel) updateCreated(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Reveal):
		m.revealed = !m.revealed
	case key.Matches(msg, m.keys.Confirm):
		if m.flow.Done() {
			return m, tea.Quit
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m SetupModel) View() string {
	title := titleStyle.Render("Sui Wallet")

	var body string
	var bindings []key.Binding
	switch m.flow.State() {
	case account.StateOptions:
		body = "Create a new wallet or import an existing one."
		bindings = []key.Binding{m.keys.Create, m.keys.Import, m.keys.Quit}
	case account.StateImportEntry:
		body = lipgloss.JoinVertical(lipgloss.Left, "Recovery phrase", m.words.View())
		bindings = []key.Binding{m.keys.Submit, m.keys.Back, m.keys.Quit}
	case account.StateCreated:
		body = m.createdView()
		bindings = []key.Binding{m.keys.Reveal, m.keys.Confirm, m.keys.Quit}
	case account.StateReady:
		body = successStyle.Render("Wallet ready")
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, "", body, "", m.help.ShortHelpView(bindings))
}

func (m SetupModel) createdView() string {
	acct := m.flow.Account()
	phrase := strings.Repeat("•", 24)
	if m.revealed {
		phrase = numberedWords(acct.Mnemonic)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		successStyle.Render("Wallet created"),
		mutedStyle.Render(acct.Address),
		"",
		"Recovery phrase",
		phraseStyle.Render(phrase),
		mutedStyle.Render("Write these words down. Anyone with them controls your funds."),
	)
}

func numberedWords(mnemonic string) string {
	words := strings.Fields(mnemonic)
	lines := make([]string, 0, (len(words)+3)/4)
	for i := 0; i < len(words); i += 4 {
		var row []string
		for j := i; j < i+4 && j < len(words); j++ {
			row = append(row, fmt.Sprintf("%2d. %-12s", j+1, words[j]))
		}
		lines = append(lines, strings.Join(row, " "))
	}
	return strings.Join(lines, "\n")
}
