package cli

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mrz1836/suiwallet/internal/config"
	"github.com/mrz1836/suiwallet/internal/output"
	"github.com/mrz1836/suiwallet/internal/wallet"
	walleterr "github.com/mrz1836/suiwallet/pkg/errors"
)

// configCmd is the parent command for configuration operations.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `View and modify suiwallet configuration settings.`,
}

// configInitCmd initializes the configuration.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	Long: `Create a default configuration file at ~/.suiwallet/config.yaml.

If a configuration file already exists, this command will not overwrite it
unless --force is specified.`,
	Example: `  suiwallet config init
  suiwallet config init --force`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

// configShowCmd shows the current configuration.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long: `Display the effective configuration, including environment overrides
and the endpoints of the selected network.`,
	Example: `  suiwallet config show
  suiwallet config show -o json`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

// configGetCmd gets a specific configuration value.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var configGetCmd = &cobra.Command{
	Use:   "get <path>",
	Short: "Get a configuration value",
	Long: `Get a specific configuration value by its dotted path.

Known paths:
  ` + strings.Join(configKeyNames(), "\n  "),
	Example: `  suiwallet config get sui.network
  suiwallet config get security.session_ttl_minutes`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigGet,
}

// configSetCmd sets a configuration value.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var configSetCmd = &cobra.Command{
	Use:   "set <path> <value>",
	Short: "Set a configuration value",
	Long: `Set a specific configuration value by its dotted path.
The configuration file is updated immediately.`,
	Example: `  suiwallet config set sui.network testnet
  suiwallet config set sui.rpc http://127.0.0.1:9000
  suiwallet config set logging.level debug`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var configForce bool

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	configCmd.GroupID = "config"
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)

	configInitCmd.Flags().BoolVar(&configForce, "force", false, "overwrite existing configuration")
}

// configKey reads and writes one dotted configuration path.
type configKey struct {
	get func(c *config.Config) string
	set func(c *config.Config, value string) error
}

//nolint:gochecknoglobals // Static key table
var configKeys = map[string]configKey{
	"home": {
		get: func(c *config.Config) string { return c.Home },
		set: func(c *config.Config, v string) error { c.Home = v; return nil },
	},
	"sui.network": {
		get: func(c *config.Config) string { return c.Sui.Network },
		set: func(c *config.Config, v string) error {
			if _, ok := config.LookupNetwork(v); !ok {
				return invalidValue(v, strings.Join(config.NetworkNames(), ", "))
			}
			c.Sui.Network = strings.ToLower(v)
			return nil
		},
	},
	"sui.rpc": {
		get: func(c *config.Config) string { return c.Sui.RPC },
		set: func(c *config.Config, v string) error { c.Sui.RPC = config.SanitizeURL(v); return nil },
	},
	"sui.faucet": {
		get: func(c *config.Config) string { return c.Sui.Faucet },
		set: func(c *config.Config, v string) error { c.Sui.Faucet = config.SanitizeURL(v); return nil },
	},
	"sui.explorer": {
		get: func(c *config.Config) string { return c.Sui.Explorer },
		set: func(c *config.Config, v string) error { c.Sui.Explorer = config.SanitizeURL(v); return nil },
	},
	"sui.gas_budget": {
		get: func(c *config.Config) string { return strconv.FormatUint(c.Sui.GasBudget, 10) },
		set: func(c *config.Config, v string) error {
			n, err := strconv.ParseUint(v, 10, 64)
			if err != nil || n == 0 {
				return invalidValue(v, "a positive amount in MIST")
			}
			c.Sui.GasBudget = n
			return nil
		},
	},
	"sui.poll_seconds": {
		get: func(c *config.Config) string { return strconv.Itoa(c.Sui.PollSeconds) },
		set: func(c *config.Config, v string) error { return setPositiveInt(&c.Sui.PollSeconds, v) },
	},
	"sui.rate_limit_rps": {
		get: func(c *config.Config) string { return strconv.FormatFloat(c.Sui.RateLimitRPS, 'f', -1, 64) },
		set: func(c *config.Config, v string) error {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil || f < 0 {
				return invalidValue(v, "a non-negative number (0 disables limiting)")
			}
			c.Sui.RateLimitRPS = f
			return nil
		},
	},
	"derivation.default_scheme": {
		get: func(c *config.Config) string { return c.Derivation.DefaultScheme },
		set: func(c *config.Config, v string) error {
			scheme, err := wallet.ParseScheme(v)
			if err != nil {
				return err
			}
			c.Derivation.DefaultScheme = scheme.String()
			return nil
		},
	},
	"security.session_enabled": {
		get: func(c *config.Config) string { return strconv.FormatBool(c.Security.SessionEnabled) },
		set: func(c *config.Config, v string) error { return setBool(&c.Security.SessionEnabled, v) },
	},
	"security.session_ttl_minutes": {
		get: func(c *config.Config) string { return strconv.Itoa(c.Security.SessionTTLMinutes) },
		set: func(c *config.Config, v string) error { return setPositiveInt(&c.Security.SessionTTLMinutes, v) },
	},
	"security.memory_lock": {
		get: func(c *config.Config) string { return strconv.FormatBool(c.Security.MemoryLock) },
		set: func(c *config.Config, v string) error { return setBool(&c.Security.MemoryLock, v) },
	},
	"output.default_format": {
		get: func(c *config.Config) string { return c.Output.DefaultFormat },
		set: func(c *config.Config, v string) error {
			return setOneOf(&c.Output.DefaultFormat, v, "text", "json", "auto")
		},
	},
	"output.color": {
		get: func(c *config.Config) string { return c.Output.Color },
		set: func(c *config.Config, v string) error {
			return setOneOf(&c.Output.Color, v, "auto", "always", "never")
		},
	},
	"output.verbose": {
		get: func(c *config.Config) string { return strconv.FormatBool(c.Output.Verbose) },
		set: func(c *config.Config, v string) error { return setBool(&c.Output.Verbose, v) },
	},
	"logging.level": {
		get: func(c *config.Config) string { return c.Logging.Level },
		set: func(c *config.Config, v string) error {
			return setOneOf(&c.Logging.Level, v, "off", "error", "debug")
		},
	},
	"logging.file": {
		get: func(c *config.Config) string { return c.Logging.File },
		set: func(c *config.Config, v string) error { c.Logging.File = v; return nil },
	},
}

func configKeyNames() []string {
	names := make([]string, 0, len(configKeys))
	for name := range configKeys {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func invalidValue(value, valid string) error {
	return walleterr.WithDetails(walleterr.ErrConfigInvalid, map[string]string{"value": value, "valid": valid})
}

func setBool(dst *bool, v string) error {
	b, err := strconv.ParseBool(v)
	if err != nil {
		return invalidValue(v, "true or false")
	}
	*dst = b
	return nil
}

func setPositiveInt(dst *int, v string) error {
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return invalidValue(v, "a positive integer")
	}
	*dst = n
	return nil
}

func setOneOf(dst *string, v string, valid ...string) error {
	for _, option := range valid {
		if v == option {
			*dst = v
			return nil
		}
	}
	return invalidValue(v, strings.Join(valid, ", "))
}

// lookupConfigKey resolves path or returns ErrUnknownConfigKey with a hint.
func lookupConfigKey(path string) (configKey, error) {
	key, ok := configKeys[strings.ToLower(path)]
	if !ok {
		return configKey{}, walleterr.WithSuggestion(
			walleterr.WithDetails(walleterr.ErrUnknownConfigKey, map[string]string{"path": path}),
			"known paths: "+strings.Join(configKeyNames(), ", "),
		)
	}
	return key, nil
}

// getConfigValue retrieves a value from the config using dot notation.
func getConfigValue(c *config.Config, path string) (string, error) {
	key, err := lookupConfigKey(path)
	if err != nil {
		return "", err
	}
	return key.get(c), nil
}

// setConfigValue sets a value in the config using dot notation.
func setConfigValue(c *config.Config, path, value string) error {
	key, err := lookupConfigKey(path)
	if err != nil {
		return err
	}
	return key.set(c, strings.TrimSpace(value))
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	configPath := config.Path(cfg.Home)

	if _, err := os.Stat(configPath); err == nil && !configForce {
		return walleterr.WithSuggestion(
			walleterr.ErrGeneral,
			fmt.Sprintf("configuration already exists at %s. Use --force to overwrite.", configPath),
		)
	}

	defaultCfg := config.Defaults()
	defaultCfg.Home = cfg.Home
	defaultCfg.Logging.File = config.ExpandHome(defaultCfg.Logging.File)

	if err := config.Save(defaultCfg, configPath); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	w := cmd.OutOrStdout()
	out(w, "Configuration initialized at %s\n", configPath)
	outln(w)
	outln(w, "Edit this file to configure:")
	outln(w, "  - sui.network: devnet, testnet, mainnet or localnet")
	outln(w, "  - sui.rpc / sui.faucet: custom node and faucet endpoints")
	outln(w, "  - security.session_ttl_minutes: how long unlocked wallets stay cached")
	outln(w, "  - logging.level: Log level (off/error/debug)")

	return nil
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	w := cmd.OutOrStdout()
	if formatFor(cmd).IsJSON() {
		return displayConfigJSON(w, cfg)
	}
	return displayConfigText(w, cfg)
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	value, err := getConfigValue(cfg, args[0])
	if err != nil {
		return err
	}
	outln(cmd.OutOrStdout(), value)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	path, value := args[0], args[1]

	configPath := config.Path(cfg.Home)
	currentCfg, err := config.Load(configPath)
	if err != nil {
		currentCfg = config.Defaults()
		currentCfg.Home = cfg.Home
	}

	if err := setConfigValue(currentCfg, path, value); err != nil {
		return err
	}
	if err := config.Save(currentCfg, configPath); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	out(cmd.OutOrStdout(), "Set %s = %s\n", path, value)
	return nil
}

// displayConfigText shows the config in text format.
func displayConfigText(w io.Writer, c *config.Config) error {
	network := c.GetNetwork()
	faucet := network.Faucet
	if faucet == "" {
		faucet = "(none)"
	}

	outln(w, "Configuration:")
	outln(w)
	out(w, "  Home: %s\n", c.Home)
	outln(w)
	outln(w, "  Sui:")
	out(w, "    network: %s\n", network.Name)
	out(w, "    rpc: %s\n", network.RPC)
	out(w, "    faucet: %s\n", faucet)
	out(w, "    explorer: %s\n", network.Explorer)
	out(w, "    gas_budget: %d\n", c.Sui.GasBudget)
	out(w, "    poll_seconds: %d\n", c.Sui.PollSeconds)
	outln(w)
	outln(w, "  Security:")
	out(w, "    session_enabled: %t\n", c.Security.SessionEnabled)
	out(w, "    session_ttl_minutes: %d\n", c.Security.SessionTTLMinutes)
	outln(w)
	outln(w, "  Output:")
	out(w, "    default_format: %s\n", c.Output.DefaultFormat)
	out(w, "    color: %s\n", c.Output.Color)
	outln(w)
	outln(w, "  Logging:")
	out(w, "    level: %s\n", c.Logging.Level)
	out(w, "    file: %s\n", c.Logging.File)
	return nil
}

// displayConfigJSON shows the config in JSON format.
func displayConfigJSON(w io.Writer, c *config.Config) error {
	type configJSON struct {
		*config.Config
		Network config.Network `json:"network"`
	}
	return output.WriteJSON(w, configJSON{Config: c, Network: c.GetNetwork()})
}
