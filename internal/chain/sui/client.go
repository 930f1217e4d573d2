// Package sui provides the Sui ledger client: balance queries, gas coin
// lookup, programmable transaction building, signing, execution and
// faucet requests.
package sui

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"net/http"

	"github.com/mrz1836/suiwallet/internal/chain"
	"github.com/mrz1836/suiwallet/internal/chain/sui/rpc"
	"github.com/mrz1836/suiwallet/internal/metrics"
	walleterr "github.com/mrz1836/suiwallet/pkg/errors"
)

// DefaultGasBudget is the gas budget in MIST used when none is configured.
const DefaultGasBudget uint64 = 10_000_000

// maxGasCoins caps how many coins are fetched to pay for gas.
const maxGasCoins = 50

var (
	// ErrRPCURLRequired indicates the RPC URL was not provided.
	ErrRPCURLRequired = &walleterr.WalletError{
		Code:     "SUI_RPC_URL_REQUIRED",
		Message:  "RPC URL is required",
		ExitCode: walleterr.ExitInput,
	}

	// ErrInvalidResponse indicates the node returned data that could not be interpreted.
	ErrInvalidResponse = &walleterr.WalletError{
		Code:     "SUI_INVALID_RESPONSE",
		Message:  "unexpected response from Sui node",
		ExitCode: walleterr.ExitGeneral,
	}
)

// Compile-time interface checks
var _ chain.Reader = (*Client)(nil)

// ClientOptions contains optional configuration for the Sui client.
type ClientOptions struct {
	// FaucetURL enables RequestFaucet. Empty on networks without a faucet.
	FaucetURL string
	// GasBudget in MIST attached to every transaction.
	GasBudget uint64
	// HTTPClient overrides the default HTTP client for node and faucet calls.
	HTTPClient *http.Client
	// Limiter throttles node and faucet requests per endpoint.
	Limiter *chain.RateLimiter
	// Retry overrides the read retry policy.
	Retry *chain.RetryConfig
	// Metrics receives call counters. Defaults to metrics.Global.
	Metrics *metrics.Metrics
}

// Client provides Sui ledger operations over JSON-RPC.
type Client struct {
	rpc        *rpc.Client
	faucetURL  string
	gasBudget  uint64
	httpClient *http.Client
	limiter    *chain.RateLimiter
	metrics    *metrics.Metrics
}

// NewClient creates a Sui client for the node at rpcURL.
func NewClient(rpcURL string, opts *ClientOptions) (*Client, error) {
	if rpcURL == "" {
		return nil, ErrRPCURLRequired
	}
	if opts == nil {
		opts = &ClientOptions{}
	}

	c := &Client{
		faucetURL:  opts.FaucetURL,
		gasBudget:  opts.GasBudget,
		httpClient: opts.HTTPClient,
		limiter:    opts.Limiter,
		metrics:    opts.Metrics,
	}
	if c.gasBudget == 0 {
		c.gasBudget = DefaultGasBudget
	}
	if c.httpClient == nil {
		c.httpClient = http.DefaultClient
	}
	if c.metrics == nil {
		c.metrics = metrics.Global
	}

	c.rpc = rpc.NewClient(rpcURL, &rpc.Options{
		HTTPClient: opts.HTTPClient,
		Limiter:    opts.Limiter,
		Retry:      opts.Retry,
		Metrics:    c.metrics,
	})
	return c, nil
}

// RPCURL returns the node URL.
func (c *Client) RPCURL() string {
	return c.rpc.URL()
}

// GasBudget returns the gas budget in MIST attached to transactions.
func (c *Client) GasBudget() uint64 {
	return c.gasBudget
}

// ValidateAddress checks that address parses as a Sui address.
func (c *Client) ValidateAddress(address string) error {
	_, err := ParseAddress(address)
	return err
}

type balanceResponse struct {
	CoinType        string `json:"coinType"`
	CoinObjectCount int    `json:"coinObjectCount"`
	TotalBalance    string `json:"totalBalance"`
}

// GetBalance returns the total SUI balance of address in MIST. A null
// result from the node is reported as a nil balance with no error.
func (c *Client) GetBalance(ctx context.Context, address string) (*big.Int, error) {
	addr, err := ParseAddress(address)
	if err != nil {
		return nil, err
	}

	var resp balanceResponse
	err = c.rpc.Call(ctx, "suix_getBalance", &resp, addr.String(), chain.CoinTypeSUI)
	if errors.Is(err, rpc.ErrNilResponse) {
		return nil, nil //nolint:nilnil // absent balance record
	}
	if err != nil {
		return nil, fmt.Errorf("getting balance: %w", err)
	}

	balance, ok := new(big.Int).SetString(resp.TotalBalance, 10)
	if !ok {
		return nil, fmt.Errorf("%w: totalBalance %q", ErrInvalidResponse, resp.TotalBalance)
	}
	return balance, nil
}

// Coin is a SUI coin object owned by an address.
type Coin struct {
	Ref     ObjectRef
	Balance uint64
}

type coinPage struct {
	Data []struct {
		CoinType     string `json:"coinType"`
		CoinObjectID string `json:"coinObjectId"`
		Version      string `json:"version"`
		Digest       string `json:"digest"`
		Balance      string `json:"balance"`
	} `json:"data"`
	NextCursor  *string `json:"nextCursor"`
	HasNextPage bool    `json:"hasNextPage"`
}

// GetCoins returns up to limit SUI coins owned by owner.
func (c *Client) GetCoins(ctx context.Context, owner string, limit int) ([]Coin, error) {
	addr, err := ParseAddress(owner)
	if err != nil {
		return nil, err
	}

	var page coinPage
	if err := c.rpc.Call(ctx, "suix_getCoins", &page, addr.String(), chain.CoinTypeSUI, nil, limit); err != nil {
		return nil, fmt.Errorf("getting coins: %w", err)
	}

	coins := make([]Coin, 0, len(page.Data))
	for _, d := range page.Data {
		id, err := ParseAddress(d.CoinObjectID)
		if err != nil {
			return nil, fmt.Errorf("%w: coinObjectId %q", ErrInvalidResponse, d.CoinObjectID)
		}
		version, err := parseU64("version", d.Version)
		if err != nil {
			return nil, err
		}
		digest, err := DecodeDigest(d.Digest)
		if err != nil {
			return nil, err
		}
		balance, err := parseU64("balance", d.Balance)
		if err != nil {
			return nil, err
		}
		coins = append(coins, Coin{
			Ref:     ObjectRef{ObjectID: id, Version: version, Digest: digest},
			Balance: balance,
		})
	}
	return coins, nil
}

// ReferenceGasPrice returns the current reference gas price in MIST.
func (c *Client) ReferenceGasPrice(ctx context.Context) (uint64, error) {
	var price string
	if err := c.rpc.Call(ctx, "suix_getReferenceGasPrice", &price); err != nil {
		return 0, fmt.Errorf("getting reference gas price: %w", err)
	}
	return parseU64("reference gas price", price)
}
