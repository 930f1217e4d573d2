package balance

import (
	"context"
	"errors"
	"math/big"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/suiwallet/internal/metrics"
)

var errNodeDown = errors.New("node unavailable")

type owner string

func (o owner) SuiAddress() string { return string(o) }

type mockReader struct {
	mu      sync.Mutex
	balance *big.Int
	err     error
	calls   []string
}

func (m *mockReader) GetBalance(_ context.Context, address string) (*big.Int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, address)
	return m.balance, m.err
}

type countingLogger struct {
	mu     sync.Mutex
	errors int
}

func (l *countingLogger) Debug(string, ...any) {}

func (l *countingLogger) Error(string, ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errors++
}

func TestFetchBalance_Truncates(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		mist     int64
		expected uint64
	}{
		{"two and a half", 2_500_000_000, 2},
		{"just under one", 999_999_999, 0},
		{"zero", 0, 0},
		{"exact", 3_000_000_000, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			f := NewFetcher(&Config{Client: &mockReader{balance: big.NewInt(tt.mist)}, Metrics: &metrics.Metrics{}})
			assert.Equal(t, tt.expected, f.FetchBalance(context.Background(), owner("0x1")))
		})
	}
}

func TestFetchBalance_FailsToZero(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		reader *mockReader
	}{
		{"ledger error", &mockReader{err: errNodeDown}},
		{"absent record", &mockReader{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			logger := &countingLogger{}
			f := NewFetcher(&Config{Client: tt.reader, Logger: logger, Metrics: &metrics.Metrics{}})

			assert.Equal(t, uint64(0), f.FetchBalance(context.Background(), owner("0x1")))
			assert.Equal(t, 1, logger.errors)
		})
	}
}

func TestFetchBalanceMist(t *testing.T) {
	t.Parallel()
	m := &metrics.Metrics{}
	reader := &mockReader{balance: big.NewInt(42)}
	f := NewFetcher(&Config{Client: reader, Metrics: m})

	got, err := f.FetchBalanceMist(context.Background(), owner("0xabc"))
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(42), got)
	assert.Equal(t, []string{"0xabc"}, reader.calls)

	reader.balance = nil
	_, err = f.FetchBalanceMist(context.Background(), owner("0xabc"))
	require.ErrorIs(t, err, ErrNoBalanceRecord)

	reader.err = errNodeDown
	_, err = f.FetchBalanceMist(context.Background(), owner("0xabc"))
	require.ErrorIs(t, err, errNodeDown)

	snap := m.Snapshot()
	assert.Equal(t, int64(3), snap.BalanceFetches)
	assert.Equal(t, int64(1), snap.BalanceAbsent)
}

func TestFetchBalance_NoCache(t *testing.T) {
	t.Parallel()
	reader := &mockReader{balance: big.NewInt(1_000_000_000)}
	f := NewFetcher(&Config{Client: reader, Metrics: &metrics.Metrics{}})

	assert.Equal(t, uint64(1), f.FetchBalance(context.Background(), owner("0x1")))
	reader.mu.Lock()
	reader.balance = big.NewInt(4_000_000_000)
	reader.mu.Unlock()
	assert.Equal(t, uint64(4), f.FetchBalance(context.Background(), owner("0x1")))
	assert.Len(t, reader.calls, 2)
}
