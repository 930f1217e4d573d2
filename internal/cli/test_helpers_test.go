package cli

import (
	"bytes"
	"context"
	"errors"
	"math/big"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/suiwallet/internal/app"
	"github.com/mrz1836/suiwallet/internal/chain/sui"
	"github.com/mrz1836/suiwallet/internal/config"
	"github.com/mrz1836/suiwallet/internal/crypto"
	"github.com/mrz1836/suiwallet/internal/metrics"
	"github.com/mrz1836/suiwallet/internal/output"
	walletservice "github.com/mrz1836/suiwallet/internal/service/wallet"
	"github.com/mrz1836/suiwallet/internal/session"
	"github.com/mrz1836/suiwallet/internal/wallet"
	walleterr "github.com/mrz1836/suiwallet/pkg/errors"
)

const (
	testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"
	testPassword = "correct-horse"
	testAddress  = "0x0000000000000000000000000000000000000000000000000000000000000b0b"
)

// withMockPrompts replaces prompt functions for testing and restores on cleanup.
func withMockPrompts(t *testing.T, password string, confirm bool) {
	t.Helper()
	origPW := promptPasswordFn
	origNewPW := promptNewPasswordFn
	origMnemonic := promptMnemonicFn
	origConfirm := promptConfirmFn
	t.Cleanup(func() {
		promptPasswordFn = origPW
		promptNewPasswordFn = origNewPW
		promptMnemonicFn = origMnemonic
		promptConfirmFn = origConfirm
	})
	promptPasswordFn = func(_ string) (string, error) { return password, nil }
	promptNewPasswordFn = func() (string, error) { return password, nil }
	promptMnemonicFn = func() (string, error) { return testMnemonic, nil }
	promptConfirmFn = func(_ string) bool { return confirm }
}

// fakeLedger is an in-memory app.Ledger.
type fakeLedger struct {
	mu        sync.Mutex
	balance   *big.Int
	balErr    error
	execResp  *sui.ExecuteResponse
	execErr   error
	faucetErr error
	executed  int
	fauceted  []string
}

func (f *fakeLedger) GetBalance(_ context.Context, _ string) (*big.Int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.balErr != nil {
		return nil, f.balErr
	}
	if f.balance == nil {
		return nil, nil
	}
	return new(big.Int).Set(f.balance), nil
}

func (f *fakeLedger) SignAndExecute(_ context.Context, _ sui.Signer, _ sui.ProgrammableTransaction) (*sui.ExecuteResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.executed++
	if f.execErr != nil {
		return nil, f.execErr
	}
	if f.execResp == nil {
		return &sui.ExecuteResponse{Digest: "9mDigest", Status: "success"}, nil
	}
	return f.execResp, nil
}

func (f *fakeLedger) RequestFaucet(_ context.Context, address string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fauceted = append(f.fauceted, address)
	return f.faucetErr
}

// testSessionManager is a session.Manager with canned answers.
type testSessionManager struct {
	available bool
	sessions  []*session.Session
	listErr   error
	endCount  int
	ended     []string
}

func (m *testSessionManager) Available() bool                                        { return m.available }
func (m *testSessionManager) StartSession(_ string, _ []byte, _ time.Duration) error { return nil }
func (m *testSessionManager) GetSession(_ string) (*crypto.SecureBytes, *session.Session, error) {
	return nil, nil, session.ErrSessionNotFound
}

func (m *testSessionManager) HasValidSession(name string) bool {
	for _, s := range m.sessions {
		if s.WalletName == name {
			return true
		}
	}
	return false
}

func (m *testSessionManager) EndSession(name string) error {
	m.ended = append(m.ended, name)
	return nil
}
func (m *testSessionManager) EndAllSessions() int { return m.endCount }
func (m *testSessionManager) ListSessions() ([]*session.Session, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.sessions, nil
}

// testEnv wires a CommandContext to a temp home and a fake ledger.
type testEnv struct {
	cfg    *config.Config
	cc     *CommandContext
	ledger *fakeLedger
	store  *wallet.FileStorage
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

func newTestEnv(t *testing.T, format output.Format) *testEnv {
	t.Helper()

	c := config.Defaults()
	c.Home = t.TempDir()
	c.Security.SessionEnabled = false

	store := wallet.NewFileStorage(filepath.Join(c.Home, "wallets")).
		WithSealer(crypto.Sealer{WorkFactor: 10})
	ledger := &fakeLedger{}
	stdout := new(bytes.Buffer)

	cc := NewCommandContext(c, config.NullLogger(), output.NewFormatter(format, stdout)).
		WithStorage(store).
		WithSessionManager(&testSessionManager{}).
		WithFactory(func(ConfigProvider, *metrics.Metrics) (app.Ledger, error) { return ledger, nil })
	cc.Metrics = &metrics.Metrics{}

	return &testEnv{
		cfg:    c,
		cc:     cc,
		ledger: ledger,
		store:  store,
		stdout: stdout,
		stderr: new(bytes.Buffer),
	}
}

// cmd returns a bare command carrying the env's context and buffers.
func (e *testEnv) cmd() *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	cmd.SetOut(e.stdout)
	cmd.SetErr(e.stderr)
	cmd.SetContext(context.Background())
	SetCmdContext(cmd, e.cc)
	return cmd
}

// saveWallet stores testMnemonic under name with testPassword.
func (e *testEnv) saveWallet(t *testing.T, name string) *wallet.Wallet {
	t.Helper()
	w, acct, err := e.cc.Wallets().Save(&walletservice.SaveRequest{
		Name:     name,
		Mnemonic: testMnemonic,
		Scheme:   wallet.SchemeEd25519,
		Password: testPassword,
	})
	require.NoError(t, err)
	acct.Forget()
	return w
}

// resetFlags restores package-level flag variables after a test.
func resetFlags(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		createWords = wallet.DefaultWordCount
		walletScheme = ""
		importInput = ""
		balanceWalletName = ""
		balanceAddress = ""
		balanceWatch = false
		balanceInterval = 10 * time.Second
		balanceCount = 0
		balanceRaw = false
		sendWalletName = ""
		sendTo = ""
		sendAmount = ""
		sendSui = ""
		sendYes = false
		receiveWallet = ""
		receiveShort = false
		receiveNoQR = false
		faucetWallet = ""
		appWallet = ""
		lockWallet = ""
		configForce = false
		versionCheck = false
	})
}

// suggestionOf returns the suggestion attached to err, if any.
func suggestionOf(err error) string {
	var we *walleterr.WalletError
	if errors.As(err, &we) {
		return we.Suggestion
	}
	return ""
}
