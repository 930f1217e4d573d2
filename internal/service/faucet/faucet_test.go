package faucet

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/suiwallet/internal/config"
)

const testAddr = "0x00000000000000000000000000000000000000000000000000000000000000a1"

var errFaucetDown = errors.New("faucet down")

type addr string

func (a addr) SuiAddress() string { return string(a) }

type fakeRequester struct {
	mu    sync.Mutex
	err   error
	calls []string
	block chan struct{}
}

func (f *fakeRequester) RequestFaucet(ctx context.Context, address string) error {
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, address)
	return f.err
}

func TestRequestSuccess(t *testing.T) {
	t.Parallel()
	req := &fakeRequester{}
	s := NewService(&Config{Requester: req})

	assert.True(t, s.Request(context.Background(), addr(testAddr)))
	assert.Equal(t, []string{testAddr}, req.calls)
}

func TestRequestFailureIsLogged(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	req := &fakeRequester{err: errFaucetDown}
	s := NewService(&Config{
		Requester: req,
		Logger:    config.NewWriterLogger(config.LogLevelDebug, &buf),
	})

	assert.False(t, s.Request(context.Background(), addr(testAddr)))
	assert.Contains(t, buf.String(), "faucet down")
	assert.Contains(t, buf.String(), "[ERROR]")
}

func TestRequestTimesOut(t *testing.T) {
	t.Parallel()
	req := &fakeRequester{block: make(chan struct{})}
	s := NewService(&Config{Requester: req, Timeout: 20 * time.Millisecond})

	start := time.Now()
	assert.False(t, s.Request(context.Background(), addr(testAddr)))
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestGoRunsInBackground(t *testing.T) {
	t.Parallel()
	req := &fakeRequester{block: make(chan struct{})}
	s := NewService(&Config{Requester: req})

	var got atomic.Value
	done := s.Go(context.Background(), addr(testAddr), func(ok bool) { got.Store(ok) })
	select {
	case <-done:
		t.Fatal("Go blocked on the faucet")
	default:
	}
	assert.Nil(t, got.Load())

	close(req.block)
	s.Wait()
	assert.Equal(t, true, got.Load(), "Wait covers the callback")
	require.True(t, <-done)
}

func TestGoWithoutCallback(t *testing.T) {
	t.Parallel()
	s := NewService(&Config{Requester: &fakeRequester{err: errFaucetDown}})

	assert.False(t, <-s.Go(context.Background(), addr(testAddr), nil))
	s.Wait()
}

func TestDefaults(t *testing.T) {
	t.Parallel()
	s := NewService(&Config{Requester: &fakeRequester{}})
	assert.Equal(t, DefaultTimeout, s.timeout)
	assert.NotNil(t, s.logger)
}
