// Package config provides configuration management for suiwallet.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Version    int              `yaml:"version" json:"version"`
	Home       string           `yaml:"home" json:"home"`
	Encryption EncryptionConfig `yaml:"encryption" json:"encryption"`
	Sui        SuiConfig        `yaml:"sui" json:"sui"`
	Derivation DerivationConfig `yaml:"derivation" json:"derivation"`
	Security   SecurityConfig   `yaml:"security" json:"security"`
	Output     OutputConfig     `yaml:"output" json:"output"`
	Logging    LoggingConfig    `yaml:"logging" json:"logging"`
}

// EncryptionConfig defines encryption settings.
type EncryptionConfig struct {
	Method string `yaml:"method" json:"method"`
}

// SuiConfig defines the Sui network the wallet talks to.
// Empty RPC, Faucet or Explorer values fall back to the selected network's defaults.
type SuiConfig struct {
	Network      string  `yaml:"network" json:"network"`
	RPC          string  `yaml:"rpc,omitempty" json:"rpc,omitempty"`
	Faucet       string  `yaml:"faucet,omitempty" json:"faucet,omitempty"`
	Explorer     string  `yaml:"explorer,omitempty" json:"explorer,omitempty"`
	GasBudget    uint64  `yaml:"gas_budget" json:"gas_budget"`
	RateLimitRPS float64 `yaml:"rate_limit_rps" json:"rate_limit_rps"`
	RateBurst    int     `yaml:"rate_burst" json:"rate_burst"`
	PollSeconds  int     `yaml:"poll_seconds" json:"poll_seconds"`
}

// DerivationConfig defines key derivation settings.
type DerivationConfig struct {
	DefaultScheme string `yaml:"default_scheme" json:"default_scheme"`
}

// SecurityConfig defines security settings.
type SecurityConfig struct {
	MemoryLock        bool `yaml:"memory_lock" json:"memory_lock"`
	SessionEnabled    bool `yaml:"session_enabled" json:"session_enabled"`
	SessionTTLMinutes int  `yaml:"session_ttl_minutes" json:"session_ttl_minutes"`
}

// OutputConfig defines output formatting settings.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format" json:"default_format"`
	Color         string `yaml:"color" json:"color"`
	Verbose       bool   `yaml:"verbose" json:"verbose"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
	File  string `yaml:"file" json:"file"`
}

// Load reads configuration from the specified file.
func Load(path string) (*Config, error) {
	// #nosec G304 -- config file path is from validated user input
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes configuration to the specified file.
func Save(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o600)
}

// Path returns the default config file path.
func Path(home string) string {
	return filepath.Join(home, "config.yaml")
}

// Validate checks that the configuration refers to a known network.
func (c *Config) Validate() error {
	if _, ok := LookupNetwork(c.Sui.Network); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownNetwork, c.Sui.Network)
	}
	if c.Sui.GasBudget == 0 {
		return ErrZeroGasBudget
	}
	return nil
}

// GetHome returns the suiwallet home directory path.
func (c *Config) GetHome() string {
	return c.Home
}

// GetNetwork returns the resolved network settings with any overrides applied.
func (c *Config) GetNetwork() Network {
	n, ok := LookupNetwork(c.Sui.Network)
	if !ok {
		n = Networks[DefaultNetwork]
	}
	if c.Sui.RPC != "" {
		n.RPC = c.Sui.RPC
	}
	if c.Sui.Faucet != "" {
		n.Faucet = c.Sui.Faucet
	}
	if c.Sui.Explorer != "" {
		n.Explorer = c.Sui.Explorer
	}
	return n
}

// GetRPC returns the Sui JSON-RPC URL.
func (c *Config) GetRPC() string {
	return c.GetNetwork().RPC
}

// GetFaucet returns the faucet URL, empty when the network has none.
func (c *Config) GetFaucet() string {
	return c.GetNetwork().Faucet
}

// GetExplorer returns the block explorer base URL.
func (c *Config) GetExplorer() string {
	return c.GetNetwork().Explorer
}

// GetGasBudget returns the gas budget in MIST for transfers.
func (c *Config) GetGasBudget() uint64 {
	return c.Sui.GasBudget
}

// GetRateLimit returns the per-endpoint request rate and burst for node calls.
func (c *Config) GetRateLimit() (float64, int) {
	return c.Sui.RateLimitRPS, c.Sui.RateBurst
}

// GetPollInterval returns how often open wallet screens refresh the balance.
func (c *Config) GetPollInterval() time.Duration {
	if c.Sui.PollSeconds <= 0 {
		return 0
	}
	return time.Duration(c.Sui.PollSeconds) * time.Second
}

// GetDefaultScheme returns the key scheme new accounts are created with.
func (c *Config) GetDefaultScheme() string {
	return strings.ToLower(c.Derivation.DefaultScheme)
}

// GetLoggingLevel returns the configured logging level.
func (c *Config) GetLoggingLevel() string {
	return c.Logging.Level
}

// GetLoggingFile returns the configured log file path.
func (c *Config) GetLoggingFile() string {
	return c.Logging.File
}

// GetOutputFormat returns the default output format.
func (c *Config) GetOutputFormat() string {
	return c.Output.DefaultFormat
}

// IsVerbose returns true if verbose output is enabled.
func (c *Config) IsVerbose() bool {
	return c.Output.Verbose
}

// GetSecurity returns the security configuration.
func (c *Config) GetSecurity() SecurityConfig {
	return c.Security
}

// DefaultHome returns the default suiwallet home directory.
func DefaultHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".suiwallet"
	}
	return filepath.Join(home, ".suiwallet")
}

// ExpandHome replaces a leading "~/" with the user's home directory.
func ExpandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
