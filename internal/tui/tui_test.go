package tui

import (
	"bytes"
	"context"
	"math/big"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/suiwallet/internal/app"
	"github.com/mrz1836/suiwallet/internal/chain/sui"
	"github.com/mrz1836/suiwallet/internal/metrics"
	"github.com/mrz1836/suiwallet/internal/navigation"
	"github.com/mrz1836/suiwallet/internal/service/account"
	"github.com/mrz1836/suiwallet/internal/wallet"
)

const (
	testRecipient = "0x00000000000000000000000000000000000000000000000000000000000000b2"
	testMnemonic  = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"
)

type stubLedger struct {
	mu      sync.Mutex
	sent    int
	faucets int
}

func (s *stubLedger) GetBalance(context.Context, string) (*big.Int, error) {
	return big.NewInt(2_000_000_000), nil
}

func (s *stubLedger) SignAndExecute(context.Context, sui.Signer, sui.ProgrammableTransaction) (*sui.ExecuteResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent++
	return &sui.ExecuteResponse{Digest: "Dg1", Status: sui.StatusSuccess}, nil
}

func (s *stubLedger) RequestFaucet(context.Context, string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faucets++
	return nil
}

func keyPress(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func press[M tea.Model](t *testing.T, m M, k string) (M, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(keyPress(k))
	got, ok := next.(M)
	require.True(t, ok, "Update returned %T", next)
	return got, cmd
}

func typeText[M tea.Model](t *testing.T, m M, text string) M {
	t.Helper()
	for _, r := range text {
		m, _ = press(t, m, string(r))
	}
	return m
}

func apply[M tea.Model](t *testing.T, m M, msg tea.Msg) M {
	t.Helper()
	next, _ := m.Update(msg)
	got, ok := next.(M)
	require.True(t, ok)
	return got
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func newWalletModel(t *testing.T) (WalletModel, *app.Session, *stubLedger) {
	t.Helper()
	acct, err := wallet.NewAccountFromSeed(bytes.Repeat([]byte{9}, 64), wallet.SchemeEd25519, 0)
	require.NoError(t, err)
	t.Cleanup(acct.Forget)

	ledger := &stubLedger{}
	s, err := app.New(context.Background(), &app.Config{
		Account:      acct,
		Ledger:       ledger,
		ExplorerURL:  "https://devnet.suivision.xyz",
		PollInterval: time.Hour,
		Metrics:      &metrics.Metrics{},
	})
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return NewWalletModel(context.Background(), s), s, ledger
}

func TestWalletScreens(t *testing.T) {
	t.Parallel()
	m, s, _ := newWalletModel(t)
	nav := s.Navigation()

	m, _ = press(t, m, "2")
	assert.Equal(t, navigation.Explore, nav.Screen())
	assert.Contains(t, m.View(), "/account/"+s.Address())

	m, _ = press(t, m, "3")
	assert.Equal(t, navigation.Activity, nav.Screen())
	assert.Contains(t, m.View(), "No transfers yet")

	m, _ = press(t, m, "l")
	assert.Equal(t, navigation.Home, nav.Screen())
	m, _ = press(t, m, "h")
	assert.Equal(t, navigation.Activity, nav.Screen())
	_, _ = press(t, m, "1")
	assert.Equal(t, navigation.Home, nav.Screen())
}

func TestWalletBalanceOnHome(t *testing.T) {
	t.Parallel()
	m, s, _ := newWalletModel(t)
	assert.Contains(t, m.View(), "… SUI")

	m, _ = press(t, m, "g")
	require.Eventually(t, func() bool { return s.Balance().Trigger == 1 }, 5*time.Second, time.Millisecond)
	assert.Contains(t, m.View(), "2 SUI")
}

func TestWalletReceiveSheet(t *testing.T) {
	t.Parallel()
	m, s, _ := newWalletModel(t)

	m, _ = press(t, m, "r")
	assert.Equal(t, navigation.ReceiveSheet, s.Navigation().Overlay())
	view := m.View()
	assert.Contains(t, view, "Receive SUI")
	assert.Contains(t, view, s.Address())
	assert.Contains(t, view, s.ShortAddress())

	m, _ = press(t, m, "3")
	assert.Equal(t, navigation.ReceiveSheet, s.Navigation().Overlay())

	_, _ = press(t, m, "esc")
	assert.Equal(t, navigation.None, s.Navigation().Overlay())
}

func TestWalletSendFlow(t *testing.T) {
	t.Parallel()
	m, s, ledger := newWalletModel(t)

	m, _ = press(t, m, "s")
	require.Equal(t, navigation.SendSheet, s.Navigation().Overlay())

	m, cmd := press(t, m, "enter")
	assert.Nil(t, cmd, "empty form must not submit")

	m = typeText(t, m, testRecipient)
	m, _ = press(t, m, "tab")
	m = typeText(t, m, "12x5")
	assert.Equal(t, "125", m.amount.Value())
	assert.Equal(t, uint64(125), m.request().Amount)

	m, cmd = press(t, m, "enter")
	require.NotNil(t, cmd)
	m = apply(t, m, cmd())

	assert.Equal(t, 1, ledger.sent)
	assert.Equal(t, app.SendSucceeded, s.SendState().Phase)
	assert.Contains(t, m.View(), "Transaction Successful!")
	assert.Contains(t, m.View(), "/txblock/Dg1")

	m, _ = press(t, m, "esc")
	m, _ = press(t, m, "3")
	assert.Contains(t, m.View(), "success")
}

func TestWalletSendRejectsBadRecipient(t *testing.T) {
	t.Parallel()
	m, s, ledger := newWalletModel(t)

	m, _ = press(t, m, "s")
	m = typeText(t, m, "0xzz")
	m, _ = press(t, m, "tab")
	m = typeText(t, m, "5")
	m, cmd := press(t, m, "enter")
	require.NotNil(t, cmd)
	m = apply(t, m, cmd())

	assert.Zero(t, ledger.sent)
	assert.Equal(t, app.SendInput, s.SendState().Phase)
	assert.Contains(t, strings.ToLower(m.View()), "invalid address")
}

func TestWalletFaucet(t *testing.T) {
	t.Parallel()
	m, _, ledger := newWalletModel(t)

	m, cmd := press(t, m, "f")
	require.NotNil(t, cmd)
	m = apply(t, m, cmd())
	assert.Equal(t, 1, ledger.faucets)
	assert.Contains(t, m.View(), "Test tokens requested")
}

func TestWalletQuit(t *testing.T) {
	t.Parallel()
	m, _, _ := newWalletModel(t)

	m, _ = press(t, m, "s")
	m, cmd := press(t, m, "q")
	assert.False(t, isQuit(cmd), "q is typed into the form while sending")
	assert.Equal(t, "q", m.recipient.Value())

	_, cmd = press(t, m, "ctrl+c")
	assert.True(t, isQuit(cmd))
}

func newSetup(t *testing.T) SetupModel {
	t.Helper()
	flow := account.NewFlow(account.NewProvisioner(&account.Config{Metrics: &metrics.Metrics{}}))
	return NewSetupModel(context.Background(), flow)
}

func TestSetupCreate(t *testing.T) {
	t.Parallel()
	m := newSetup(t)

	m, cmd := press(t, m, "c")
	require.NotNil(t, cmd)
	m = apply(t, m, cmd())
	require.Equal(t, account.StateCreated, m.flow.State())
	assert.Nil(t, m.Account())

	mnemonic := m.flow.Account().Mnemonic
	first := strings.Fields(mnemonic)[0]
	assert.NotContains(t, m.View(), mnemonic)

	m, _ = press(t, m, "m")
	assert.Contains(t, m.View(), " 1. "+first)

	m, cmd = press(t, m, "enter")
	assert.True(t, isQuit(cmd))
	require.NotNil(t, m.Account())
	assert.NoError(t, m.Err())
}

func TestSetupImport(t *testing.T) {
	t.Parallel()
	m := newSetup(t)

	m, _ = press(t, m, "i")
	require.Equal(t, account.StateImportEntry, m.flow.State())

	m = typeText(t, m, "abandon abandonn")
	before := m.View()
	m, cmd := press(t, m, "enter")
	assert.Nil(t, cmd)
	assert.Equal(t, account.StateImportEntry, m.flow.State())
	assert.Equal(t, before, m.View(), "a rejected phrase changes nothing on screen")
	assert.Nil(t, m.Account())

	m, _ = press(t, m, "esc")
	assert.Equal(t, account.StateOptions, m.flow.State())

	m, _ = press(t, m, "i")
	m = typeText(t, m, testMnemonic)
	m, cmd = press(t, m, "enter")
	assert.True(t, isQuit(cmd))
	require.NotNil(t, m.Account())
	assert.Empty(t, m.Account().Mnemonic)
}

func TestSetupQuitWithoutAccount(t *testing.T) {
	t.Parallel()
	m := newSetup(t)

	m, cmd := press(t, m, "q")
	assert.True(t, isQuit(cmd))
	assert.Nil(t, m.Account())
}
