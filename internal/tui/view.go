package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mrz1836/suiwallet/internal/app"
	"github.com/mrz1836/suiwallet/internal/chain"
	"github.com/mrz1836/suiwallet/internal/navigation"
	"github.com/mrz1836/suiwallet/internal/output"
)

// View renders the active screen, or the open sheet over it.
func (m WalletModel) View() string {
	nav := m.session.Navigation().Snapshot()

	var body string
	switch nav.Overlay {
	case navigation.SendSheet:
		body = m.sendView()
	case navigation.ReceiveSheet:
		body = m.receiveView()
	default:
		body = m.screenView(nav.Screen)
	}

	var helpView string
	if nav.Overlay == navigation.None {
		helpView = m.help.View(screenHelp(m.keys))
	} else {
		helpView = m.help.View(sheetHelp(m.keys))
	}

	parts := []string{m.headerView(), m.tabsView(nav.Screen), "", body}
	if m.status != "" {
		parts = append(parts, "", mutedStyle.Render(m.status))
	}
	parts = append(parts, "", helpView)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m WalletModel) headerView() string {
	return titleStyle.Render("Sui Wallet") + "  " + mutedStyle.Render(m.session.ShortAddress())
}

func (m WalletModel) tabsView(active navigation.Screen) string {
	tabs := make([]string, 0, len(navigation.Screens()))
	for _, s := range navigation.Screens() {
		label := strings.ToUpper(s.String()[:1]) + s.String()[1:]
		if s == active {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, tabStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m WalletModel) screenView(s navigation.Screen) string {
	switch s {
	case navigation.Explore:
		return m.exploreView()
	case navigation.Activity:
		return m.activityView()
	default:
		return m.homeView()
	}
}

func (m WalletModel) homeView() string {
	u := m.session.Balance()
	amount := fmt.Sprintf("%d %s", u.Balance, chain.Symbol)
	if u.Trigger == 0 {
		amount = "… " + chain.Symbol
	}
	card := cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		mutedStyle.Render("Total Balance"),
		balanceStyle.Render(amount),
		mutedStyle.Render(m.session.ShortAddress()),
	))
	actions := mutedStyle.Render("[s] Send   [r] Receive   [f] Request Test Tokens")
	return lipgloss.JoinVertical(lipgloss.Left, card, "", actions)
}

func (m WalletModel) exploreView() string {
	info := m.session.Receive()
	lines := []string{titleStyle.Render("Explore")}
	if info.ExplorerURL != "" {
		lines = append(lines, "View this account on the explorer:", info.ExplorerURL)
	} else {
		lines = append(lines, mutedStyle.Render("No explorer configured for this network."))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m WalletModel) activityView() string {
	activity := m.session.Activity()
	if len(activity) == 0 {
		return mutedStyle.Render("No transfers yet this session.")
	}

	table := output.NewTable("TIME", "TO", "AMOUNT (MIST)", "STATUS", "DIGEST")
	for i := len(activity) - 1; i >= 0; i-- {
		a := activity[i]
		table.AddRow(
			a.At.Format("15:04:05"),
			output.ShortAddress(a.Request.Recipient),
			fmt.Sprintf("%d", a.Request.Amount),
			a.Outcome.Status.String(),
			output.ShortAddress(a.Outcome.Digest),
		)
	}
	var sb strings.Builder
	if err := table.Render(&sb); err != nil {
		return errorStyle.Render(err.Error())
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (m WalletModel) sendView() string {
	sheet := m.session.SendState()

	var content string
	switch sheet.Phase {
	case app.SendSending:
		content = mutedStyle.Render("Sending…")
	case app.SendSucceeded:
		content = lipgloss.JoinVertical(lipgloss.Left,
			successStyle.Render("Transaction Successful!"),
			sheet.ExplorerURL,
		)
	case app.SendFailed:
		content = errorStyle.Render("Transaction Failed")
	default:
		confirm := mutedStyle.Render("[enter] Confirm Send")
		if m.request().Submittable() {
			confirm = titleStyle.Render("[enter] Confirm Send")
		}
		content = lipgloss.JoinVertical(lipgloss.Left,
			"Recipient Address",
			m.recipient.View(),
			"",
			"Amount",
			m.amount.View(),
			"",
			confirm,
		)
	}
	return sheetStyle.Render(lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render("Send SUI"), "", content))
}

func (m WalletModel) receiveView() string {
	info := m.session.Receive()
	return sheetStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Receive SUI"),
		"",
		output.QRString(info.Address, output.DefaultQRConfig()),
		"",
		info.Short,
		mutedStyle.Render(info.Address),
	))
}
