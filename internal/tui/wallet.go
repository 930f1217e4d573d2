// Package tui is the terminal front end: a setup flow for creating or
// importing an account, and the wallet screens with send and receive sheets.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mrz1836/suiwallet/internal/app"
	"github.com/mrz1836/suiwallet/internal/navigation"
	"github.com/mrz1836/suiwallet/internal/service/balance"
	"github.com/mrz1836/suiwallet/internal/service/transaction"
)

type balanceMsg balance.Update

type sendDoneMsg struct {
	outcome transaction.Outcome
	err     error
}

type faucetDoneMsg struct {
	ok bool
}

const (
	fieldRecipient = iota
	fieldAmount
)

// WalletModel renders an app.Session.
type WalletModel struct {
	ctx     context.Context
	session *app.Session
	updates <-chan balance.Update
	keys    walletKeys
	help    help.Model

	recipient textinput.Model
	amount    textinput.Model
	field     int

	status string
	width  int
	height int
}

// NewWalletModel creates the wallet screens for session. The caller starts
// and closes the session.
func NewWalletModel(ctx context.Context, session *app.Session) WalletModel {
	recipient := textinput.New()
	recipient.Placeholder = "0x… recipient address"
	recipient.CharLimit = 66
	recipient.Width = 68

	amount := textinput.New()
	amount.Placeholder = "amount in MIST"
	amount.CharLimit = 20
	amount.Width = 24

	return WalletModel{
		ctx:       ctx,
		session:   session,
		updates:   session.BalanceUpdates(),
		keys:      newWalletKeys(),
		help:      help.New(),
		recipient: recipient,
		amount:    amount,
	}
}

// Init waits for the first balance update.
func (m WalletModel) Init() tea.Cmd {
	return waitForBalance(m.updates)
}

func waitForBalance(ch <-chan balance.Update) tea.Cmd {
	return func() tea.Msg {
		u, ok := <-ch
		if !ok {
			return nil
		}
		return balanceMsg(u)
	}
}

func (m WalletModel) sendCmd(req transaction.Request) tea.Cmd {
	return func() tea.Msg {
		outcome, err := m.session.Send(m.ctx, req)
		return sendDoneMsg{outcome: outcome, err: err}
	}
}

func (m WalletModel) faucetCmd() tea.Cmd {
	done := m.session.RequestFaucet(m.ctx)
	return func() tea.Msg {
		return faucetDoneMsg{ok: <-done}
	}
}

// Update handles keys and background results.
func (m WalletModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case balanceMsg:
		return m, waitForBalance(m.updates)

	case sendDoneMsg:
		if msg.err != nil && !msg.outcome.Succeeded() && m.session.SendState().Phase == app.SendInput {
			m.status = msg.err.Error()
		}
		return m, nil

	case faucetDoneMsg:
		if msg.ok {
			m.status = "Test tokens requested"
		} else {
			m.status = "Faucet request failed"
		}
		return m, nil

	case tea.KeyMsg:
		if m.session.Navigation().Overlay() == navigation.SendSheet {
			return m.updateSendSheet(msg)
		}
		return m.updateScreen(msg)
	}
	return m, nil
}

func (m WalletModel) updateScreen(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	nav := m.session.Navigation()
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Close):
		m.session.CloseSheet()
	case key.Matches(msg, m.keys.Home):
		nav.SetScreen(navigation.Home)
	case key.Matches(msg, m.keys.Explore):
		nav.SetScreen(navigation.Explore)
	case key.Matches(msg, m.keys.Activity):
		nav.SetScreen(navigation.Activity)
	case key.Matches(msg, m.keys.Next):
		nav.SetScreen(stepScreen(nav.Screen(), 1))
	case key.Matches(msg, m.keys.Prev):
		nav.SetScreen(stepScreen(nav.Screen(), -1))
	case key.Matches(msg, m.keys.Send):
		return m.openSend()
	case key.Matches(msg, m.keys.Receive):
		m.session.OpenReceive()
	case key.Matches(msg, m.keys.Refresh):
		m.session.Refresh()
	case key.Matches(msg, m.keys.Faucet):
		m.status = "Requesting test tokens…"
		return m, m.faucetCmd()
	}
	return m, nil
}

func (m WalletModel) openSend() (tea.Model, tea.Cmd) {
	m.session.OpenSend()
	if m.session.SendState().Phase == app.SendInput {
		m.recipient.SetValue("")
		m.amount.SetValue("")
		m.status = ""
	}
	m.field = fieldRecipient
	m.amount.Blur()
	return m, m.recipient.Focus()
}

func (m WalletModel) updateSendSheet(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if key.Matches(msg, m.keys.Close) {
		m.session.CloseSheet()
		m.recipient.Blur()
		m.amount.Blur()
		return m, nil
	}
	if m.session.SendState().Phase != app.SendInput {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Field):
		return m.switchField()
	case key.Matches(msg, m.keys.Confirm):
		req := m.request()
		if !req.Submittable() {
			return m, nil
		}
		m.status = ""
		return m, m.sendCmd(req)
	}

	var cmd tea.Cmd
	if m.field == fieldRecipient {
		m.recipient, cmd = m.recipient.Update(msg)
		return m, cmd
	}
	if msg.Type == tea.KeyRunes && !allDigits(msg.Runes) {
		return m, nil
	}
	m.amount, cmd = m.amount.Update(msg)
	return m, cmd
}

func (m WalletModel) switchField() (tea.Model, tea.Cmd) {
	if m.field == fieldRecipient {
		m.field = fieldAmount
		m.recipient.Blur()
		return m, m.amount.Focus()
	}
	m.field = fieldRecipient
	m.amount.Blur()
	return m, m.recipient.Focus()
}

// request reads the send form. An amount that does not parse counts as zero.
func (m WalletModel) request() transaction.Request {
	amount, err := transaction.ParseAmount(m.amount.Value(), false)
	if err != nil {
		amount = 0
	}
	return transaction.Request{Recipient: m.recipient.Value(), Amount: amount}
}

func stepScreen(s navigation.Screen, step int) navigation.Screen {
	screens := navigation.Screens()
	n := len(screens)
	return screens[((int(s)+step)%n+n)%n]
}

func allDigits(rs []rune) bool {
	for _, r := range rs {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
