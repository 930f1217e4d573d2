package sui

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/suiwallet/internal/chain"
	"github.com/mrz1836/suiwallet/internal/metrics"
	walleterr "github.com/mrz1836/suiwallet/pkg/errors"
)

func faucetClient(t *testing.T, handler http.HandlerFunc) (*Client, *metrics.Metrics) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	m := &metrics.Metrics{}
	c, err := NewClient("http://node.invalid", &ClientOptions{FaucetURL: server.URL, Metrics: m})
	require.NoError(t, err)
	return c, m
}

func TestRequestFaucet(t *testing.T) {
	t.Parallel()
	c, m := faucetClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		var body map[string]map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, MustParseAddress("0x2").String(), body["FixedAmountRequest"]["recipient"])
		_, _ = w.Write([]byte(`{"transferredGasObjects":[],"error":null}`))
	})

	require.NoError(t, c.RequestFaucet(context.Background(), "0x2"))
	assert.Equal(t, int64(1), m.Snapshot().FaucetCalls)
}

func TestRequestFaucet_Rejected(t *testing.T) {
	t.Parallel()
	c, m := faucetClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"error":"too many requests for this address"}`))
	})

	err := c.RequestFaucet(context.Background(), "0x2")
	require.ErrorIs(t, err, ErrFaucetRejected)
	assert.Equal(t, int64(1), m.RPCErrorsTotal())
}

func TestRequestFaucet_HTTPErrors(t *testing.T) {
	t.Parallel()
	c, _ := faucetClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})
	require.ErrorIs(t, c.RequestFaucet(context.Background(), "0x2"), chain.ErrRateLimited)

	c, _ = faucetClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	require.ErrorIs(t, c.RequestFaucet(context.Background(), "0x2"), walleterr.ErrNetworkError)
}

func TestRequestFaucet_NoFaucet(t *testing.T) {
	t.Parallel()
	c, err := NewClient("http://node.invalid", nil)
	require.NoError(t, err)
	require.ErrorIs(t, c.RequestFaucet(context.Background(), "0x2"), ErrNoFaucet)
}

func TestRequestFaucet_BadAddress(t *testing.T) {
	t.Parallel()
	c, _ := faucetClient(t, func(http.ResponseWriter, *http.Request) {
		t.Error("faucet must not be called")
	})
	require.ErrorIs(t, c.RequestFaucet(context.Background(), "nope"), walleterr.ErrInvalidAddress)
}
