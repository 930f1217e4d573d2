// Package rpc provides a minimal JSON-RPC 2.0 client for Sui full nodes.
package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/mrz1836/suiwallet/internal/chain"
	"github.com/mrz1836/suiwallet/internal/metrics"
	walleterr "github.com/mrz1836/suiwallet/pkg/errors"
)

// maxResponseBytes caps how much of a node response is read.
const maxResponseBytes = 8 << 20

var (
	// ErrRPCRequest indicates an RPC request failed.
	ErrRPCRequest = &walleterr.WalletError{
		Code:     "RPC_REQUEST_FAILED",
		Message:  "RPC request failed",
		ExitCode: walleterr.ExitGeneral,
	}

	// ErrRPCResponse indicates an invalid RPC response.
	ErrRPCResponse = &walleterr.WalletError{
		Code:     "RPC_INVALID_RESPONSE",
		Message:  "invalid RPC response",
		ExitCode: walleterr.ExitGeneral,
	}

	// ErrNilResponse indicates a null result from the RPC.
	ErrNilResponse = &walleterr.WalletError{
		Code:     "RPC_NIL_RESPONSE",
		Message:  "nil RPC response",
		ExitCode: walleterr.ExitGeneral,
	}
)

// Options configures a Client. Zero values select the defaults.
type Options struct {
	HTTPClient *http.Client
	Limiter    *chain.RateLimiter
	Retry      *chain.RetryConfig
	Metrics    *metrics.Metrics
}

// Client is a minimal Sui JSON-RPC client.
type Client struct {
	url        string
	httpClient *http.Client
	limiter    *chain.RateLimiter
	retry      chain.RetryConfig
	metrics    *metrics.Metrics
	idCounter  atomic.Uint64
}

// NewClient creates a new RPC client for url.
func NewClient(url string, opts *Options) *Client {
	c := &Client{
		url:        url,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		retry:      chain.DefaultRetryConfig(),
		metrics:    metrics.Global,
	}
	if opts != nil {
		if opts.HTTPClient != nil {
			c.httpClient = opts.HTTPClient
		}
		c.limiter = opts.Limiter
		if opts.Retry != nil {
			c.retry = *opts.Retry
		}
		if opts.Metrics != nil {
			c.metrics = opts.Metrics
		}
	}
	return c
}

// URL returns the node URL.
func (c *Client) URL() string {
	return c.url
}

// request represents a JSON-RPC 2.0 request.
type request struct {
	JSONRPC string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
	ID      uint64 `json:"id"`
}

// response represents a JSON-RPC 2.0 response.
type response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      uint64          `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *Error          `json:"error,omitempty"`
}

// Error is a JSON-RPC error object returned by the node.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("RPC error %d: %s", e.Code, e.Message)
}

// Call performs a JSON-RPC call with retries and decodes the result into
// result. A nil result discards the payload.
func (c *Client) Call(ctx context.Context, method string, result any, params ...any) error {
	raw, err := chain.RetryWithConfig(ctx, c.retry, func() (json.RawMessage, error) {
		return c.do(ctx, method, params)
	})
	if err != nil {
		return err
	}
	return decodeResult(method, raw, result)
}

// CallOnce performs a JSON-RPC call without retrying. Used for writes.
func (c *Client) CallOnce(ctx context.Context, method string, result any, params ...any) error {
	raw, err := c.do(ctx, method, params)
	if err != nil {
		return err
	}
	return decodeResult(method, raw, result)
}

func decodeResult(method string, raw json.RawMessage, result any) error {
	if result == nil {
		return nil
	}
	if len(raw) == 0 || string(raw) == "null" {
		return fmt.Errorf("%w: %s", ErrNilResponse, method)
	}
	if err := json.Unmarshal(raw, result); err != nil {
		return fmt.Errorf("%w: parsing %s result: %w", ErrRPCResponse, method, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method string, params []any) (raw json.RawMessage, err error) {
	if params == nil {
		params = []any{}
	}

	if c.limiter != nil {
		if err = c.limiter.Wait(ctx, metrics.EndpointNode); err != nil {
			return nil, err
		}
	}

	start := time.Now()
	defer func() { c.metrics.RecordRPCCall(metrics.EndpointNode, time.Since(start), err) }()

	req := request{
		JSONRPC: "2.0",
		Method:  method,
		Params:  params,
		ID:      c.idCounter.Add(1),
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating HTTP request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, chain.WrapRetryable(fmt.Errorf("%w: %w", walleterr.ErrNetworkError, err))
	}
	// Body.Close error is intentionally ignored as it only fails if the
	// connection is already broken, and there's no recovery action.
	defer func() { _ = httpResp.Body.Close() }()

	if err = checkStatus(httpResp); err != nil {
		return nil, err
	}

	respBody, err := io.ReadAll(io.LimitReader(httpResp.Body, maxResponseBytes))
	if err != nil {
		return nil, chain.WrapRetryable(fmt.Errorf("reading response body: %w", err))
	}

	var resp response
	if err = json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRPCResponse, err)
	}

	if resp.Error != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrRPCRequest, method, resp.Error)
	}

	return resp.Result, nil
}

func checkStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return fmt.Errorf("%w: retry after %s", chain.ErrRateLimited, chain.ParseRetryAfter(resp.Header.Get("Retry-After")))
	case resp.StatusCode >= http.StatusInternalServerError:
		return chain.WrapRetryable(fmt.Errorf("%w: HTTP %d", ErrRPCRequest, resp.StatusCode))
	case resp.StatusCode >= http.StatusBadRequest:
		return fmt.Errorf("%w: HTTP %d", ErrRPCRequest, resp.StatusCode)
	}
	return nil
}

// AsError extracts a node error from err, if any.
func AsError(err error) (*Error, bool) {
	var rpcErr *Error
	ok := errors.As(err, &rpcErr)
	return rpcErr, ok
}
