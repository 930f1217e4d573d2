package config

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrUnknownNetwork is returned when the configured network is not recognized.
	ErrUnknownNetwork = errors.New("unknown network")

	// ErrZeroGasBudget is returned when the gas budget is zero.
	ErrZeroGasBudget = errors.New("gas budget must be greater than zero")
)

// DefaultNetwork is the network used when none is configured.
const DefaultNetwork = "devnet"

// DefaultGasBudget is the gas budget in MIST attached to transfers (0.01 SUI).
const DefaultGasBudget uint64 = 10_000_000

// Network describes the public endpoints of a Sui network.
type Network struct {
	Name     string `json:"name"`
	RPC      string `json:"rpc"`
	Faucet   string `json:"faucet,omitempty"`
	Explorer string `json:"explorer"`
}

// Networks lists the known Sui networks.
//
//nolint:gochecknoglobals // Static network table
var Networks = map[string]Network{
	"devnet": {
		Name:     "devnet",
		RPC:      "https://fullnode.devnet.sui.io:443",
		Faucet:   "https://faucet.devnet.sui.io/gas",
		Explorer: "https://devnet.suivision.xyz",
	},
	"testnet": {
		Name:     "testnet",
		RPC:      "https://fullnode.testnet.sui.io:443",
		Faucet:   "https://faucet.testnet.sui.io/gas",
		Explorer: "https://testnet.suivision.xyz",
	},
	"mainnet": {
		Name:     "mainnet",
		RPC:      "https://fullnode.mainnet.sui.io:443",
		Explorer: "https://suivision.xyz",
	},
	"localnet": {
		Name:     "localnet",
		RPC:      "http://127.0.0.1:9000",
		Faucet:   "http://127.0.0.1:9123/gas",
		Explorer: "https://custom.suivision.xyz",
	},
}

// LookupNetwork returns the named network, case-insensitively.
func LookupNetwork(name string) (Network, bool) {
	n, ok := Networks[strings.ToLower(strings.TrimSpace(name))]
	return n, ok
}

// NetworkNames returns the known network names in sorted order.
func NetworkNames() []string {
	names := make([]string, 0, len(Networks))
	for name := range Networks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Defaults returns the default configuration.
func Defaults() *Config {
	return &Config{
		Version: 1,
		Home:    "~/.suiwallet",
		Encryption: EncryptionConfig{
			Method: "age",
		},
		Sui: SuiConfig{
			Network:      DefaultNetwork,
			GasBudget:    DefaultGasBudget,
			RateLimitRPS: 10,
			RateBurst:    5,
			PollSeconds:  10,
		},
		Derivation: DerivationConfig{
			DefaultScheme: "ed25519",
		},
		Security: SecurityConfig{
			MemoryLock:        true,
			SessionEnabled:    true,
			SessionTTLMinutes: 15,
		},
		Output: OutputConfig{
			DefaultFormat: "auto",
			Color:         "auto",
			Verbose:       false,
		},
		Logging: LoggingConfig{
			Level: "error",
			File:  "~/.suiwallet/suiwallet.log",
		},
	}
}
