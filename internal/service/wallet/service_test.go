package wallet

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/suiwallet/internal/config"
	"github.com/mrz1836/suiwallet/internal/crypto"
	"github.com/mrz1836/suiwallet/internal/session"
	"github.com/mrz1836/suiwallet/internal/wallet"
	walleterr "github.com/mrz1836/suiwallet/pkg/errors"
)

const (
	testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"
	testPassword = "correct horse"
)

var errPromptClosed = errors.New("prompt closed")

type mockConfig struct {
	security config.SecurityConfig
}

func (c *mockConfig) GetSecurity() config.SecurityConfig { return c.security }

type cachedSeed struct {
	seed []byte
	sess *session.Session
}

type mockSessions struct {
	mu        sync.Mutex
	available bool
	sessions  map[string]cachedSeed
	startErr  error
	started   []time.Duration
}

func newMockSessions() *mockSessions {
	return &mockSessions{available: true, sessions: make(map[string]cachedSeed)}
}

func (m *mockSessions) Available() bool { return m.available }

func (m *mockSessions) HasValidSession(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.sessions[name]
	return ok && c.sess.IsValid()
}

func (m *mockSessions) GetSession(name string) (*crypto.SecureBytes, *session.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.sessions[name]
	if !ok {
		return nil, nil, session.ErrSessionNotFound
	}
	if !c.sess.IsValid() {
		return nil, nil, session.ErrSessionExpired
	}
	return crypto.SecureBytesFromSlice(c.seed), c.sess, nil
}

func (m *mockSessions) StartSession(name string, seed []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.startErr != nil {
		return m.startErr
	}
	m.started = append(m.started, ttl)
	m.sessions[name] = cachedSeed{
		seed: append([]byte(nil), seed...),
		sess: &session.Session{WalletName: name, ExpiresAt: time.Now().Add(ttl)},
	}
	return nil
}

func (m *mockSessions) EndSession(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, name)
	return nil
}

type fixture struct {
	svc      *Service
	storage  *wallet.FileStorage
	sessions *mockSessions
	cfg      *mockConfig
}

func newFixture(t *testing.T, sessionsEnabled bool) *fixture {
	t.Helper()
	storage := wallet.NewFileStorage(t.TempDir()).WithSealer(crypto.Sealer{WorkFactor: 10})
	sessions := newMockSessions()
	cfg := &mockConfig{security: config.SecurityConfig{SessionEnabled: sessionsEnabled, SessionTTLMinutes: 20}}
	return &fixture{
		svc: NewService(&Config{
			Storage:    storage,
			SessionMgr: sessions,
			Config:     cfg,
		}),
		storage:  storage,
		sessions: sessions,
		cfg:      cfg,
	}
}

func passwordFunc(pw string) func(string) (string, error) {
	return func(string) (string, error) { return pw, nil }
}

func TestSave(t *testing.T) {
	t.Parallel()
	f := newFixture(t, false)

	w, acct, err := f.svc.Save(&SaveRequest{Name: "main", Mnemonic: testMnemonic, Password: testPassword})
	require.NoError(t, err)
	defer acct.Forget()

	assert.Equal(t, wallet.DefaultScheme, w.Scheme)
	assert.Equal(t, acct.Address, w.Address)
	assert.False(t, w.Imported)

	names, err := f.svc.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"main"}, names)

	_, _, err = f.svc.Save(&SaveRequest{Name: "main", Mnemonic: testMnemonic, Password: testPassword})
	require.ErrorIs(t, err, walleterr.ErrWalletExists)
}

func TestSaveRejectsBadInput(t *testing.T) {
	t.Parallel()
	f := newFixture(t, false)

	_, _, err := f.svc.Save(&SaveRequest{Name: "main", Mnemonic: "not a phrase", Password: testPassword})
	require.Error(t, err)

	_, _, err = f.svc.Save(&SaveRequest{Name: "../x", Mnemonic: testMnemonic, Password: testPassword})
	require.ErrorIs(t, err, walleterr.ErrInvalidInput)
}

func TestLoadWithPassword(t *testing.T) {
	t.Parallel()
	f := newFixture(t, false)
	saved, acct, err := f.svc.Save(&SaveRequest{
		Name: "main", Mnemonic: testMnemonic, Password: testPassword, Scheme: wallet.SchemeSecp256k1,
	})
	require.NoError(t, err)
	acct.Forget()

	result, err := f.svc.Load(&LoadRequest{Name: "main", PasswordFunc: passwordFunc(testPassword)})
	require.NoError(t, err)
	defer result.Account.Forget()

	assert.Equal(t, AuthPassword, result.Auth.Mode)
	assert.Zero(t, result.Auth.ExpiresIn)
	assert.Equal(t, saved.Address, result.Account.Address)
	assert.Equal(t, wallet.SchemeSecp256k1, result.Account.Scheme)
	assert.True(t, result.Account.CanSign())
	assert.Empty(t, f.sessions.started)
}

func TestLoadWrongPassword(t *testing.T) {
	t.Parallel()
	f := newFixture(t, false)
	_, acct, err := f.svc.Save(&SaveRequest{Name: "main", Mnemonic: testMnemonic, Password: testPassword})
	require.NoError(t, err)
	acct.Forget()

	_, err = f.svc.Load(&LoadRequest{Name: "main", PasswordFunc: passwordFunc("wrong")})
	require.ErrorIs(t, err, walleterr.ErrDecryptionFailed)
}

func TestLoadMissingWallet(t *testing.T) {
	t.Parallel()
	f := newFixture(t, false)

	_, err := f.svc.Load(&LoadRequest{Name: "ghost", PasswordFunc: passwordFunc(testPassword)})
	require.ErrorIs(t, err, walleterr.ErrWalletNotFound)

	var we *walleterr.WalletError
	require.ErrorAs(t, err, &we)
	assert.Contains(t, we.Suggestion, "suiwallet wallet list")
}

func TestLoadWithoutPrompt(t *testing.T) {
	t.Parallel()
	f := newFixture(t, false)
	_, acct, err := f.svc.Save(&SaveRequest{Name: "main", Mnemonic: testMnemonic, Password: testPassword})
	require.NoError(t, err)
	acct.Forget()

	_, err = f.svc.Load(&LoadRequest{Name: "main"})
	require.ErrorIs(t, err, walleterr.ErrInvalidInput)

	_, err = f.svc.Load(&LoadRequest{Name: "main", PasswordFunc: func(string) (string, error) {
		return "", errPromptClosed
	}})
	require.ErrorIs(t, err, errPromptClosed)
}

func TestLoadStartsAndReusesSession(t *testing.T) {
	t.Parallel()
	f := newFixture(t, true)
	_, acct, err := f.svc.Save(&SaveRequest{Name: "main", Mnemonic: testMnemonic, Password: testPassword})
	require.NoError(t, err)
	acct.Forget()

	var messages []string
	first, err := f.svc.Load(&LoadRequest{
		Name:          "main",
		PasswordFunc:  passwordFunc(testPassword),
		OnAuthMessage: func(m string) { messages = append(messages, m) },
	})
	require.NoError(t, err)
	defer first.Account.Forget()
	assert.Equal(t, AuthPassword, first.Auth.Mode)
	assert.Equal(t, 20*time.Minute, first.Auth.ExpiresIn)
	require.Len(t, f.sessions.started, 1)
	assert.Equal(t, []string{"[Session started, expires in 20 minutes]"}, messages)

	second, err := f.svc.Load(&LoadRequest{
		Name: "main",
		PasswordFunc: func(string) (string, error) {
			t.Fatal("password prompted despite a cached session")
			return "", nil
		},
	})
	require.NoError(t, err)
	defer second.Account.Forget()
	assert.Equal(t, AuthSession, second.Auth.Mode)
	assert.Equal(t, first.Account.Address, second.Account.Address)
}

func TestLoadFallsBackWhenSessionExpired(t *testing.T) {
	t.Parallel()
	f := newFixture(t, true)
	_, acct, err := f.svc.Save(&SaveRequest{Name: "main", Mnemonic: testMnemonic, Password: testPassword})
	require.NoError(t, err)
	acct.Forget()

	f.sessions.sessions["main"] = cachedSeed{
		seed: []byte("stale"),
		sess: &session.Session{WalletName: "main", ExpiresAt: time.Now().Add(-time.Minute)},
	}

	result, err := f.svc.Load(&LoadRequest{Name: "main", PasswordFunc: passwordFunc(testPassword)})
	require.NoError(t, err)
	defer result.Account.Forget()
	assert.Equal(t, AuthPassword, result.Auth.Mode)
}

func TestLoadRejectsSessionForAnotherAccount(t *testing.T) {
	t.Parallel()
	f := newFixture(t, true)
	_, acct, err := f.svc.Save(&SaveRequest{Name: "main", Mnemonic: testMnemonic, Password: testPassword})
	require.NoError(t, err)
	acct.Forget()

	other, err := wallet.MnemonicToSeed("legal winner thank year wave sausage worth useful legal winner thank yellow", "")
	require.NoError(t, err)
	require.NoError(t, f.sessions.StartSession("main", other, time.Hour))

	result, err := f.svc.Load(&LoadRequest{Name: "main", PasswordFunc: passwordFunc(testPassword)})
	require.NoError(t, err)
	defer result.Account.Forget()
	assert.Equal(t, AuthPassword, result.Auth.Mode)
}

func TestLoadSessionStartFailureIsNotFatal(t *testing.T) {
	t.Parallel()
	f := newFixture(t, true)
	f.sessions.startErr = session.ErrKeyringUnavailable
	_, acct, err := f.svc.Save(&SaveRequest{Name: "main", Mnemonic: testMnemonic, Password: testPassword})
	require.NoError(t, err)
	acct.Forget()

	result, err := f.svc.Load(&LoadRequest{Name: "main", PasswordFunc: passwordFunc(testPassword)})
	require.NoError(t, err)
	defer result.Account.Forget()
	assert.Zero(t, result.Auth.ExpiresIn)
}

func TestLock(t *testing.T) {
	t.Parallel()
	f := newFixture(t, true)
	require.NoError(t, f.sessions.StartSession("main", []byte("seed"), time.Hour))

	require.NoError(t, f.svc.Lock("main"))
	assert.False(t, f.sessions.HasValidSession("main"))

	assert.NoError(t, NewService(&Config{Storage: f.storage}).Lock("main"))
}

func TestAuthModeString(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "session", AuthSession.String())
	assert.Equal(t, "password", AuthPassword.String())
	assert.Equal(t, "unknown", AuthMode(9).String())
}

func TestFormatDuration(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "30 seconds", formatDuration(30*time.Second))
	assert.Equal(t, "15 minutes", formatDuration(15*time.Minute))
	assert.Equal(t, "2 hours", formatDuration(2*time.Hour))
}
