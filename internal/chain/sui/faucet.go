package sui

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mrz1836/suiwallet/internal/chain"
	"github.com/mrz1836/suiwallet/internal/metrics"
	walleterr "github.com/mrz1836/suiwallet/pkg/errors"
)

var (
	// ErrNoFaucet indicates the network has no faucet configured.
	ErrNoFaucet = &walleterr.WalletError{
		Code:     "SUI_NO_FAUCET",
		Message:  "no faucet available on this network",
		ExitCode: walleterr.ExitInput,
	}

	// ErrFaucetRejected indicates the faucet refused the request.
	ErrFaucetRejected = &walleterr.WalletError{
		Code:     "SUI_FAUCET_REJECTED",
		Message:  "faucet rejected the request",
		ExitCode: walleterr.ExitGeneral,
	}
)

type faucetRequest struct {
	FixedAmountRequest struct {
		Recipient string `json:"recipient"`
	} `json:"FixedAmountRequest"`
}

type faucetResponse struct {
	Error *string `json:"error"`
}

// RequestFaucet asks the network faucet to fund address.
func (c *Client) RequestFaucet(ctx context.Context, address string) (err error) {
	if c.faucetURL == "" {
		return ErrNoFaucet
	}
	addr, err := ParseAddress(address)
	if err != nil {
		return err
	}

	if c.limiter != nil {
		if err = c.limiter.Wait(ctx, metrics.EndpointFaucet); err != nil {
			return err
		}
	}

	start := time.Now()
	defer func() { c.metrics.RecordRPCCall(metrics.EndpointFaucet, time.Since(start), err) }()

	var req faucetRequest
	req.FixedAmountRequest.Recipient = addr.String()
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshaling faucet request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.faucetURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating faucet request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("%w: faucet: %w", walleterr.ErrNetworkError, err)
	}
	defer func() { _ = httpResp.Body.Close() }()

	if httpResp.StatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("%w: faucet", chain.ErrRateLimited)
	}

	respBody, err := io.ReadAll(io.LimitReader(httpResp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("reading faucet response: %w", err)
	}
	if httpResp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("%w: faucet HTTP %d", walleterr.ErrNetworkError, httpResp.StatusCode)
	}

	var resp faucetResponse
	if len(respBody) > 0 {
		if err = json.Unmarshal(respBody, &resp); err != nil {
			return fmt.Errorf("%w: faucet: %w", ErrInvalidResponse, err)
		}
	}
	if resp.Error != nil && *resp.Error != "" {
		return fmt.Errorf("%w: faucet: %s", ErrFaucetRejected, *resp.Error)
	}
	return nil
}

func encodeBase64(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}
