package sui

import (
	"context"
	"crypto/ed25519"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/suiwallet/internal/chain"
	"github.com/mrz1836/suiwallet/internal/metrics"
	"github.com/mrz1836/suiwallet/internal/wallet"
	walleterr "github.com/mrz1836/suiwallet/pkg/errors"
)

// fakeNode answers Sui JSON-RPC methods from a table of results.
type fakeNode struct {
	t       *testing.T
	mu      sync.Mutex
	results map[string]any
	errors  map[string]map[string]any
	calls   map[string][]any
}

func newFakeNode(t *testing.T) (*fakeNode, *httptest.Server) {
	t.Helper()
	n := &fakeNode{
		t:       t,
		results: make(map[string]any),
		errors:  make(map[string]map[string]any),
		calls:   make(map[string][]any),
	}
	server := httptest.NewServer(http.HandlerFunc(n.serve))
	t.Cleanup(server.Close)
	return n, server
}

func (n *fakeNode) serve(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID     uint64 `json:"id"`
		Method string `json:"method"`
		Params []any  `json:"params"`
	}
	assert.NoError(n.t, json.NewDecoder(r.Body).Decode(&req))

	n.mu.Lock()
	n.calls[req.Method] = req.Params
	resp := map[string]any{"jsonrpc": "2.0", "id": req.ID}
	if e, ok := n.errors[req.Method]; ok {
		resp["error"] = e
	} else {
		resp["result"] = n.results[req.Method]
	}
	n.mu.Unlock()

	assert.NoError(n.t, json.NewEncoder(w).Encode(resp))
}

func (n *fakeNode) set(method string, result any) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.results[method] = result
}

func (n *fakeNode) params(method string) []any {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.calls[method]
}

func newTestClient(t *testing.T, url string) (*Client, *metrics.Metrics) {
	t.Helper()
	m := &metrics.Metrics{}
	retry := chain.NoRetry()
	c, err := NewClient(url, &ClientOptions{Retry: &retry, Metrics: m, GasBudget: 5_000_000})
	require.NoError(t, err)
	return c, m
}

func coinJSON(id string, version string, digest [DigestLength]byte, balance string) map[string]any {
	return map[string]any{
		"coinType":     chain.CoinTypeSUI,
		"coinObjectId": id,
		"version":      version,
		"digest":       EncodeDigest(digest),
		"balance":      balance,
	}
}

func TestNewClient_RequiresURL(t *testing.T) {
	t.Parallel()
	_, err := NewClient("", nil)
	require.ErrorIs(t, err, ErrRPCURLRequired)

	c, err := NewClient("http://node", nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultGasBudget, c.GasBudget())
	assert.Equal(t, "http://node", c.RPCURL())
}

func TestGetBalance(t *testing.T) {
	t.Parallel()
	node, server := newFakeNode(t)
	node.set("suix_getBalance", map[string]any{
		"coinType":        chain.CoinTypeSUI,
		"coinObjectCount": 2,
		"totalBalance":    "2500000000",
	})
	c, m := newTestClient(t, server.URL)

	balance, err := c.GetBalance(context.Background(), "0x2")
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(2_500_000_000), balance)
	assert.Equal(t, []any{MustParseAddress("0x2").String(), chain.CoinTypeSUI}, node.params("suix_getBalance"))
	assert.Equal(t, int64(1), m.Snapshot().NodeCalls)
}

func TestGetBalance_AbsentRecord(t *testing.T) {
	t.Parallel()
	_, server := newFakeNode(t)
	c, _ := newTestClient(t, server.URL)

	balance, err := c.GetBalance(context.Background(), "0x2")
	require.NoError(t, err)
	assert.Nil(t, balance)
}

func TestGetBalance_Errors(t *testing.T) {
	t.Parallel()
	node, server := newFakeNode(t)
	c, _ := newTestClient(t, server.URL)

	_, err := c.GetBalance(context.Background(), "not-an-address")
	require.ErrorIs(t, err, walleterr.ErrInvalidAddress)

	node.set("suix_getBalance", map[string]any{"totalBalance": "lots"})
	_, err = c.GetBalance(context.Background(), "0x2")
	require.ErrorIs(t, err, ErrInvalidResponse)

	node.mu.Lock()
	node.errors["suix_getBalance"] = map[string]any{"code": -32000, "message": "boom"}
	node.mu.Unlock()
	_, err = c.GetBalance(context.Background(), "0x2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestValidateAddress(t *testing.T) {
	t.Parallel()
	c, err := NewClient("http://node", nil)
	require.NoError(t, err)
	require.NoError(t, c.ValidateAddress("0xabc"))
	require.ErrorIs(t, c.ValidateAddress("xyz"), walleterr.ErrInvalidAddress)
}

func TestGetCoinsAndGasPrice(t *testing.T) {
	t.Parallel()
	node, server := newFakeNode(t)
	node.set("suix_getCoins", map[string]any{
		"data":        []any{coinJSON("0x5", "12", testDigest(3), "700")},
		"nextCursor":  nil,
		"hasNextPage": false,
	})
	node.set("suix_getReferenceGasPrice", "750")
	c, _ := newTestClient(t, server.URL)

	coins, err := c.GetCoins(context.Background(), "0x1", 10)
	require.NoError(t, err)
	require.Len(t, coins, 1)
	assert.Equal(t, MustParseAddress("0x5"), coins[0].Ref.ObjectID)
	assert.Equal(t, uint64(12), coins[0].Ref.Version)
	assert.Equal(t, testDigest(3), coins[0].Ref.Digest)
	assert.Equal(t, uint64(700), coins[0].Balance)

	price, err := c.ReferenceGasPrice(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(750), price)
}

func TestGetCoins_BadDigest(t *testing.T) {
	t.Parallel()
	node, server := newFakeNode(t)
	node.set("suix_getCoins", map[string]any{
		"data": []any{map[string]any{"coinObjectId": "0x5", "version": "1", "digest": "xyz", "balance": "1"}},
	})
	c, _ := newTestClient(t, server.URL)

	_, err := c.GetCoins(context.Background(), "0x1", 10)
	require.ErrorIs(t, err, ErrInvalidResponse)
}

func executeNode(t *testing.T, result map[string]any) (*fakeNode, *Client) {
	t.Helper()
	node, server := newFakeNode(t)
	node.set("suix_getReferenceGasPrice", "1000")
	node.set("suix_getCoins", map[string]any{
		"data": []any{
			coinJSON("0x5", "3", testDigest(1), "6000000000"),
			coinJSON("0x6", "4", testDigest(2), "1000000000"),
		},
	})
	node.set("sui_executeTransactionBlock", result)
	c, _ := newTestClient(t, server.URL)
	return node, c
}

func TestSignAndExecute_Success(t *testing.T) {
	t.Parallel()
	node, c := executeNode(t, map[string]any{
		"digest":  "abc123",
		"effects": map[string]any{"status": map[string]any{"status": "success"}},
	})
	acct := testAccount(t, wallet.SchemeEd25519)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	resp, err := c.SignAndExecute(ctx, acct, NewTransfer(MustParseAddress("0x2"), 5_000_000_000))
	require.NoError(t, err)
	assert.Equal(t, "abc123", resp.Digest)
	assert.Equal(t, StatusSuccess, resp.Status)
	assert.Empty(t, resp.Errors)

	params := node.params("sui_executeTransactionBlock")
	require.Len(t, params, 4)
	assert.Equal(t, map[string]any{"showEffects": true}, params[2])
	assert.Equal(t, "WaitForLocalExecution", params[3])

	txBytes, err := base64.StdEncoding.DecodeString(params[0].(string))
	require.NoError(t, err)
	sigs := params[1].([]any)
	require.Len(t, sigs, 1)
	sig, err := base64.StdEncoding.DecodeString(sigs[0].(string))
	require.NoError(t, err)

	digest := SigningDigest(txBytes)
	assert.True(t, ed25519.Verify(acct.PublicKey, digest[:], sig[1:65]))

	// the signed bytes carry both coins as gas payment
	sender := MustParseAddress(acct.Address)
	expected, err := c.BuildTransaction(ctx, sender, NewTransfer(MustParseAddress("0x2"), 5_000_000_000))
	require.NoError(t, err)
	assert.Equal(t, expected, txBytes)
}

func TestSignAndExecute_ErrorsField(t *testing.T) {
	t.Parallel()
	_, c := executeNode(t, map[string]any{
		"digest": "abc123",
		"errors": []any{"InsufficientGas"},
	})

	resp, err := c.SignAndExecute(context.Background(), testAccount(t, wallet.SchemeEd25519),
		NewTransfer(MustParseAddress("0x2"), 1))
	require.NoError(t, err)
	assert.Equal(t, []string{"InsufficientGas"}, resp.Errors)
}

func TestSignAndExecute_FailedEffects(t *testing.T) {
	t.Parallel()
	_, c := executeNode(t, map[string]any{
		"digest":  "abc123",
		"effects": map[string]any{"status": map[string]any{"status": "failure", "error": "InsufficientCoinBalance"}},
	})

	resp, err := c.SignAndExecute(context.Background(), testAccount(t, wallet.SchemeEd25519),
		NewTransfer(MustParseAddress("0x2"), 1))
	require.NoError(t, err)
	assert.Equal(t, StatusFailure, resp.Status)
	assert.Equal(t, []string{"InsufficientCoinBalance"}, resp.Errors)
}

func TestSignAndExecute_NoGasCoins(t *testing.T) {
	t.Parallel()
	node, server := newFakeNode(t)
	node.set("suix_getReferenceGasPrice", "1000")
	node.set("suix_getCoins", map[string]any{"data": []any{}})
	c, _ := newTestClient(t, server.URL)

	_, err := c.SignAndExecute(context.Background(), testAccount(t, wallet.SchemeEd25519),
		NewTransfer(MustParseAddress("0x2"), 1))
	require.ErrorIs(t, err, walleterr.ErrNoGasCoin)
	assert.Nil(t, node.params("sui_executeTransactionBlock"))
}
