package cli

import (
	"time"

	"github.com/mrz1836/suiwallet/internal/config"
	"github.com/mrz1836/suiwallet/internal/output"
)

// Compile-time interface checks.
var (
	_ ConfigProvider = (*config.Config)(nil)
	_ LogWriter      = (*config.Logger)(nil)
	_ FormatProvider = (*output.Formatter)(nil)
)

// ConfigProvider provides read access to configuration values.
// This interface enables mocking configuration in tests.
type ConfigProvider interface {
	// GetHome returns the suiwallet home directory path.
	GetHome() string

	// GetNetwork returns the resolved network endpoints.
	GetNetwork() config.Network

	// GetRPC returns the Sui JSON-RPC URL.
	GetRPC() string

	// GetFaucet returns the faucet URL, empty when the network has none.
	GetFaucet() string

	// GetExplorer returns the block explorer base URL.
	GetExplorer() string

	// GetGasBudget returns the gas budget in MIST for transfers.
	GetGasBudget() uint64

	// GetRateLimit returns the per-endpoint request rate and burst.
	GetRateLimit() (float64, int)

	// GetPollInterval returns the balance refresh interval of the app.
	GetPollInterval() time.Duration

	// GetDefaultScheme returns the key scheme for new accounts.
	GetDefaultScheme() string

	// GetLoggingLevel returns the configured logging level.
	GetLoggingLevel() string

	// GetLoggingFile returns the configured log file path.
	GetLoggingFile() string

	// GetOutputFormat returns the default output format.
	GetOutputFormat() string

	// IsVerbose returns true if verbose output is enabled.
	IsVerbose() bool

	// GetSecurity returns the security configuration.
	GetSecurity() config.SecurityConfig
}

// LogWriter provides logging capabilities.
// This interface enables mocking logging in tests.
type LogWriter interface {
	// Debug logs a debug-level message.
	Debug(format string, args ...any)

	// Error logs an error-level message.
	Error(format string, args ...any)

	// Close closes the logger and releases resources.
	Close() error
}

// FormatProvider provides output format information.
// This interface enables mocking output formatting in tests.
type FormatProvider interface {
	// Format returns the current output format.
	Format() output.Format
}
