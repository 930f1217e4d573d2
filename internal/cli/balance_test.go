package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"math/big"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/suiwallet/internal/output"
	walleterr "github.com/mrz1836/suiwallet/pkg/errors"
)

func mist(sui int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(sui), big.NewInt(1_000_000_000))
}

func TestBalance_WalletText(t *testing.T) {
	resetFlags(t)
	env := newTestEnv(t, output.FormatText)
	w := env.saveWallet(t, "main")
	env.ledger.balance = new(big.Int).Add(mist(3), big.NewInt(999_999_999))
	balanceWalletName = "main"

	require.NoError(t, runBalance(env.cmd(), nil))

	assert.Equal(t, "main ("+w.Address+"): 3 SUI\n", env.stdout.String())
}

func TestBalance_AddressRawJSON(t *testing.T) {
	resetFlags(t)
	env := newTestEnv(t, output.FormatJSON)
	env.ledger.balance = big.NewInt(2_500_000_000)
	balanceAddress = testAddress
	balanceRaw = true

	require.NoError(t, runBalance(env.cmd(), nil))

	var got BalanceResponse
	require.NoError(t, json.Unmarshal(env.stdout.Bytes(), &got))
	assert.Empty(t, got.Wallet)
	assert.Equal(t, testAddress, got.Address)
	assert.Equal(t, uint64(2), got.Balance)
	assert.Equal(t, "2500000000", got.Mist)
	assert.Equal(t, "SUI", got.Symbol)
	assert.Equal(t, "devnet", got.Network)
	assert.NotEmpty(t, got.Timestamp)
}

func TestBalance_NoRecordIsZero(t *testing.T) {
	resetFlags(t)
	env := newTestEnv(t, output.FormatJSON)
	balanceAddress = testAddress

	require.NoError(t, runBalance(env.cmd(), nil))

	var got BalanceResponse
	require.NoError(t, json.Unmarshal(env.stdout.Bytes(), &got))
	assert.Equal(t, uint64(0), got.Balance)
}

func TestBalance_NetworkError(t *testing.T) {
	resetFlags(t)
	env := newTestEnv(t, output.FormatText)
	env.ledger.balErr = errors.New("connection refused") //nolint:err113 // test error
	balanceAddress = testAddress

	err := runBalance(env.cmd(), nil)
	require.ErrorIs(t, err, walleterr.ErrNetworkError)
	assert.Contains(t, err.Error(), "connection refused")
	assert.Empty(t, env.stdout.String())
}

func TestBalance_OwnerFlags(t *testing.T) {
	tests := []struct {
		name    string
		wallet  string
		address string
		wantErr error
	}{
		{name: "neither", wantErr: walleterr.ErrInvalidInput},
		{name: "both", wallet: "main", address: testAddress, wantErr: walleterr.ErrInvalidInput},
		{name: "bad address", address: "0xnothex", wantErr: walleterr.ErrInvalidAddress},
		{name: "unknown wallet", wallet: "ghost", wantErr: walleterr.ErrWalletNotFound},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resetFlags(t)
			env := newTestEnv(t, output.FormatText)
			balanceWalletName = tc.wallet
			balanceAddress = tc.address

			err := runBalance(env.cmd(), nil)
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestBalance_WatchStopsAfterCount(t *testing.T) {
	resetFlags(t)
	env := newTestEnv(t, output.FormatText)
	env.ledger.balance = mist(7)
	balanceAddress = testAddress
	balanceWatch = true
	balanceInterval = 10 * time.Millisecond
	balanceCount = 2

	done := make(chan error, 1)
	go func() { done <- runBalance(env.cmd(), nil) }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after --count updates")
	}

	lines := strings.Split(strings.TrimSpace(env.stdout.String()), "\n")
	require.Len(t, lines, 2)
	for _, line := range lines {
		assert.Equal(t, testAddress+": 7 SUI", line)
	}
}

func TestBalance_WatchRejectsBadInterval(t *testing.T) {
	resetFlags(t)
	env := newTestEnv(t, output.FormatText)
	balanceAddress = testAddress
	balanceWatch = true
	balanceInterval = 0

	err := runBalance(env.cmd(), nil)
	require.ErrorIs(t, err, walleterr.ErrInvalidInput)
}

func TestDisplayBalanceText(t *testing.T) {
	var buf bytes.Buffer
	displayBalanceText(&buf, BalanceResponse{
		Wallet:  "main",
		Address: "0xabc",
		Balance: 12,
		Mist:    "12000000001",
		Symbol:  "SUI",
	})
	assert.Equal(t, "main (0xabc): 12 SUI (12000000001 MIST)\n", buf.String())
}
