package metrics

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var errRPC = errors.New("rpc failure")

func TestRecordRPCCall(t *testing.T) {
	t.Parallel()
	m := &Metrics{}

	m.RecordRPCCall(EndpointNode, 10*time.Millisecond, nil)
	m.RecordRPCCall(EndpointNode, 30*time.Millisecond, errRPC)
	m.RecordRPCCall(EndpointFaucet, 20*time.Millisecond, nil)

	snap := m.Snapshot()
	assert.Equal(t, int64(3), snap.RPCCallsTotal)
	assert.Equal(t, int64(1), snap.RPCErrorsTotal)
	assert.Equal(t, int64(2), snap.NodeCalls)
	assert.Equal(t, int64(1), snap.FaucetCalls)
	assert.InDelta(t, 20.0, m.RPCLatencyAvgMs(), 0.001)
}

func TestRPCLatencyAvgMs_NoCalls(t *testing.T) {
	t.Parallel()
	assert.Zero(t, (&Metrics{}).RPCLatencyAvgMs())
}

func TestRecordBalanceFetch(t *testing.T) {
	t.Parallel()
	m := &Metrics{}
	m.RecordBalanceFetch(false)
	m.RecordBalanceFetch(true)

	snap := m.Snapshot()
	assert.Equal(t, int64(2), snap.BalanceFetches)
	assert.Equal(t, int64(1), snap.BalanceAbsent)
}

func TestTransferSuccessRate(t *testing.T) {
	t.Parallel()
	m := &Metrics{}
	assert.Zero(t, m.TransferSuccessRate())

	m.RecordTransfer(true)
	m.RecordTransfer(true)
	m.RecordTransfer(true)
	m.RecordTransfer(false)

	assert.InDelta(t, 75.0, m.TransferSuccessRate(), 0.001)
	assert.Equal(t, int64(1), m.Snapshot().TransfersFailed)
}

func TestRecordWalletOp(t *testing.T) {
	t.Parallel()
	m := &Metrics{}
	m.RecordWalletOp(nil)
	m.RecordWalletOp(errRPC)
	assert.Equal(t, int64(2), m.Snapshot().WalletOpsTotal)
	assert.Equal(t, int64(1), m.Snapshot().WalletOpsErrors)
}

func TestReset(t *testing.T) {
	t.Parallel()
	m := &Metrics{}
	m.RecordRPCCall(EndpointNode, time.Millisecond, errRPC)
	m.RecordTransfer(false)
	m.RecordBalanceFetch(true)

	m.Reset()
	assert.Equal(t, Snapshot{}, m.Snapshot())
}

func TestConcurrentRecording(t *testing.T) {
	t.Parallel()
	m := &Metrics{}

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.RecordRPCCall(EndpointNode, time.Microsecond, nil)
			m.RecordTransfer(true)
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(100), m.RPCCallsTotal())
	assert.Equal(t, int64(100), m.Snapshot().TransfersSucceeded)
}
