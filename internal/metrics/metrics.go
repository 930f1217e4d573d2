// Package metrics provides application-level metrics collection.
// This is a lightweight metrics foundation using atomic counters.
package metrics

import (
	"sync/atomic"
	"time"
)

// Endpoint names recorded by RecordRPCCall.
const (
	EndpointNode   = "node"
	EndpointFaucet = "faucet"
)

// Metrics holds application metrics using atomic counters for thread safety.
type Metrics struct {
	// RPC metrics
	rpcCallsTotal   atomic.Int64
	rpcErrorsTotal  atomic.Int64
	rpcLatencyNanos atomic.Int64

	nodeCalls   atomic.Int64
	faucetCalls atomic.Int64

	// Wallet operation metrics
	walletOpsTotal  atomic.Int64
	walletOpsErrors atomic.Int64

	// Balance polling
	balanceFetches atomic.Int64
	balanceAbsent  atomic.Int64

	// Transfers by outcome
	transfersSubmitted atomic.Int64
	transfersSucceeded atomic.Int64
	transfersFailed    atomic.Int64
}

// Global is the global metrics instance.
// Use this for recording metrics throughout the application.
//
//nolint:gochecknoglobals // Intentional global for metrics access
var Global = &Metrics{}

// RecordRPCCall records an RPC call with its duration and success status.
func (m *Metrics) RecordRPCCall(endpoint string, duration time.Duration, err error) {
	m.rpcCallsTotal.Add(1)
	m.rpcLatencyNanos.Add(duration.Nanoseconds())

	if err != nil {
		m.rpcErrorsTotal.Add(1)
	}

	switch endpoint {
	case EndpointNode:
		m.nodeCalls.Add(1)
	case EndpointFaucet:
		m.faucetCalls.Add(1)
	}
}

// RecordWalletOp records a wallet operation.
func (m *Metrics) RecordWalletOp(err error) {
	m.walletOpsTotal.Add(1)
	if err != nil {
		m.walletOpsErrors.Add(1)
	}
}

// RecordBalanceFetch records a balance lookup. absent is true when the
// ledger had no record for the address.
func (m *Metrics) RecordBalanceFetch(absent bool) {
	m.balanceFetches.Add(1)
	if absent {
		m.balanceAbsent.Add(1)
	}
}

// RecordTransfer records a submitted transfer and whether it succeeded.
func (m *Metrics) RecordTransfer(success bool) {
	m.transfersSubmitted.Add(1)
	if success {
		m.transfersSucceeded.Add(1)
		return
	}
	m.transfersFailed.Add(1)
}

// Snapshot is a point-in-time copy of all metrics.
type Snapshot struct {
	RPCCallsTotal      int64 `json:"rpc_calls_total"`
	RPCErrorsTotal     int64 `json:"rpc_errors_total"`
	RPCLatencyNanos    int64 `json:"rpc_latency_nanos"`
	NodeCalls          int64 `json:"node_calls"`
	FaucetCalls        int64 `json:"faucet_calls"`
	WalletOpsTotal     int64 `json:"wallet_ops_total"`
	WalletOpsErrors    int64 `json:"wallet_ops_errors"`
	BalanceFetches     int64 `json:"balance_fetches"`
	BalanceAbsent      int64 `json:"balance_absent"`
	TransfersSubmitted int64 `json:"transfers_submitted"`
	TransfersSucceeded int64 `json:"transfers_succeeded"`
	TransfersFailed    int64 `json:"transfers_failed"`
}

// Snapshot returns a point-in-time copy of all metrics.
func (m *Metrics) Snapshot() Snapshot {
	return Snapshot{
		RPCCallsTotal:      m.rpcCallsTotal.Load(),
		RPCErrorsTotal:     m.rpcErrorsTotal.Load(),
		RPCLatencyNanos:    m.rpcLatencyNanos.Load(),
		NodeCalls:          m.nodeCalls.Load(),
		FaucetCalls:        m.faucetCalls.Load(),
		WalletOpsTotal:     m.walletOpsTotal.Load(),
		WalletOpsErrors:    m.walletOpsErrors.Load(),
		BalanceFetches:     m.balanceFetches.Load(),
		BalanceAbsent:      m.balanceAbsent.Load(),
		TransfersSubmitted: m.transfersSubmitted.Load(),
		TransfersSucceeded: m.transfersSucceeded.Load(),
		TransfersFailed:    m.transfersFailed.Load(),
	}
}

// RPCCallsTotal returns the total number of RPC calls made.
func (m *Metrics) RPCCallsTotal() int64 {
	return m.rpcCallsTotal.Load()
}

// RPCErrorsTotal returns the total number of RPC errors.
func (m *Metrics) RPCErrorsTotal() int64 {
	return m.rpcErrorsTotal.Load()
}

// RPCLatencyAvgMs returns the average RPC latency in milliseconds.
// Returns 0 if no calls have been made.
func (m *Metrics) RPCLatencyAvgMs() float64 {
	calls := m.rpcCallsTotal.Load()
	if calls == 0 {
		return 0
	}
	nanos := m.rpcLatencyNanos.Load()
	return float64(nanos) / float64(calls) / 1e6
}

// TransferSuccessRate returns the share of submitted transfers that
// succeeded as a percentage (0-100). Returns 0 if none were submitted.
func (m *Metrics) TransferSuccessRate() float64 {
	total := m.transfersSubmitted.Load()
	if total == 0 {
		return 0
	}
	return float64(m.transfersSucceeded.Load()) / float64(total) * 100
}

// Reset resets all metrics to zero.
// Useful for testing.
func (m *Metrics) Reset() {
	for _, c := range []*atomic.Int64{
		&m.rpcCallsTotal, &m.rpcErrorsTotal, &m.rpcLatencyNanos,
		&m.nodeCalls, &m.faucetCalls,
		&m.walletOpsTotal, &m.walletOpsErrors,
		&m.balanceFetches, &m.balanceAbsent,
		&m.transfersSubmitted, &m.transfersSucceeded, &m.transfersFailed,
	} {
		c.Store(0)
	}
}
