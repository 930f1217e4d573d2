package cli

import (
	"context"
	"errors"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/mrz1836/suiwallet/internal/app"
	"github.com/mrz1836/suiwallet/internal/chain"
	"github.com/mrz1836/suiwallet/internal/chain/sui"
	"github.com/mrz1836/suiwallet/internal/config"
	"github.com/mrz1836/suiwallet/internal/metrics"
	"github.com/mrz1836/suiwallet/internal/output"
	walletservice "github.com/mrz1836/suiwallet/internal/service/wallet"
	"github.com/mrz1836/suiwallet/internal/session"
	"github.com/mrz1836/suiwallet/internal/wallet"
)

type cmdContextKey struct{}

// errNoCommandContext is returned when a command runs without PersistentPreRunE.
var errNoCommandContext = errors.New("command context not initialized")

// LedgerFactory builds the network client commands talk to.
type LedgerFactory func(cfg ConfigProvider, m *metrics.Metrics) (app.Ledger, error)

// CommandContext holds dependencies for CLI commands.
type CommandContext struct {
	Cfg        ConfigProvider
	Log        *config.Logger
	Fmt        *output.Formatter
	Metrics    *metrics.Metrics
	Storage    walletservice.StorageProvider
	SessionMgr session.Manager
	Factory    LedgerFactory
}

// NewCommandContext creates a context with the given dependencies. Storage
// lives under the configured home directory; the session manager is built on
// first use because probing the OS keyring can block.
func NewCommandContext(c *config.Config, log *config.Logger, fmtr *output.Formatter) *CommandContext {
	cc := &CommandContext{
		Log:     log,
		Fmt:     fmtr,
		Metrics: metrics.Global,
		Factory: NewSuiLedger,
	}
	if c != nil {
		cc.Cfg = c
		cc.Storage = wallet.NewFileStorage(filepath.Join(c.GetHome(), "wallets"))
	}
	return cc
}

// WithStorage sets the wallet storage.
func (c *CommandContext) WithStorage(s walletservice.StorageProvider) *CommandContext {
	c.Storage = s
	return c
}

// WithSessionManager sets the session manager.
func (c *CommandContext) WithSessionManager(m session.Manager) *CommandContext {
	c.SessionMgr = m
	return c
}

// WithFactory sets the ledger factory.
func (c *CommandContext) WithFactory(f LedgerFactory) *CommandContext {
	c.Factory = f
	return c
}

// Logger returns the context logger, never nil.
func (c *CommandContext) Logger() *config.Logger {
	if c.Log == nil {
		return config.NullLogger()
	}
	return c.Log
}

// metrics returns the context's recorder, defaulting to metrics.Global.
func (c *CommandContext) metrics() *metrics.Metrics {
	if c.Metrics == nil {
		return metrics.Global
	}
	return c.Metrics
}

// Sessions returns the session manager, creating the keyring-backed one on
// first call. It is nil when no configuration is set.
func (c *CommandContext) Sessions() session.Manager {
	if c.SessionMgr == nil && c.Cfg != nil {
		c.SessionMgr = session.NewManager(filepath.Join(c.Cfg.GetHome(), "sessions"), session.NewOSKeyring())
	}
	return c.SessionMgr
}

// Wallets returns a wallet service over the context's storage and sessions.
func (c *CommandContext) Wallets() *walletservice.Service {
	svc := &walletservice.Config{
		Storage: c.Storage,
		Config:  c.Cfg,
		Logger:  c.Logger().Named("wallet"),
	}
	if c.Cfg != nil && c.Cfg.GetSecurity().SessionEnabled {
		if mgr := c.Sessions(); mgr != nil {
			svc.SessionMgr = mgr
		}
	}
	return walletservice.NewService(svc)
}

// Ledger builds the network client.
func (c *CommandContext) Ledger() (app.Ledger, error) {
	if c.Cfg == nil {
		return nil, errNoCommandContext
	}
	factory := c.Factory
	if factory == nil {
		factory = NewSuiLedger
	}
	return factory(c.Cfg, c.metrics())
}

// NewSuiLedger connects to the configured Sui node.
func NewSuiLedger(c ConfigProvider, m *metrics.Metrics) (app.Ledger, error) {
	return sui.NewClient(c.GetRPC(), &sui.ClientOptions{
		FaucetURL: c.GetFaucet(),
		GasBudget: c.GetGasBudget(),
		Limiter:   chain.NewRateLimiter(c.GetRateLimit()),
		Metrics:   m,
	})
}

// SetCmdContext attaches cc to the command's context.
func SetCmdContext(cmd *cobra.Command, cc *CommandContext) {
	cmd.SetContext(context.WithValue(baseContext(cmd), cmdContextKey{}, cc))
}

// baseContext returns the command's context, or Background before Execute.
func baseContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// contextWithTimeout bounds one network call made on behalf of cmd.
func contextWithTimeout(cmd *cobra.Command, d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(baseContext(cmd), d)
}

// GetCmdContext returns the CommandContext attached to cmd, or nil.
func GetCmdContext(cmd *cobra.Command) *CommandContext {
	ctx := cmd.Context()
	if ctx == nil {
		return nil
	}
	cc, _ := ctx.Value(cmdContextKey{}).(*CommandContext)
	return cc
}

// requireCmdContext returns the command's context or errNoCommandContext.
func requireCmdContext(cmd *cobra.Command) (*CommandContext, error) {
	cc := GetCmdContext(cmd)
	if cc == nil {
		return nil, errNoCommandContext
	}
	return cc, nil
}

// formatFor returns the formatter for cmd, falling back to text on its output.
func formatFor(cmd *cobra.Command) *output.Formatter {
	if cc := GetCmdContext(cmd); cc != nil && cc.Fmt != nil {
		return cc.Fmt
	}
	if formatter != nil {
		return formatter
	}
	return output.NewFormatter(output.FormatText, cmd.OutOrStdout())
}
