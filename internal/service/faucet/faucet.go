// Package faucet requests test SUI for an account. Requests are best effort:
// failures are logged and never reach the caller as errors.
package faucet

import (
	"context"
	"sync"
	"time"
)

// DefaultTimeout bounds a single faucet request.
const DefaultTimeout = 30 * time.Second

// Requester asks a faucet to fund an address.
type Requester interface {
	RequestFaucet(ctx context.Context, address string) error
}

// Owner is anything with a Sui address.
type Owner interface {
	SuiAddress() string
}

// LogWriter provides logging capabilities.
type LogWriter interface {
	Debug(format string, args ...any)
	Error(format string, args ...any)
}

// Config holds dependencies for the faucet service.
type Config struct {
	Requester Requester
	Logger    LogWriter
	// Timeout per request. Defaults to DefaultTimeout.
	Timeout time.Duration
}

// Service issues faucet requests.
type Service struct {
	requester Requester
	logger    LogWriter
	timeout   time.Duration
	wg        sync.WaitGroup
}

// NewService creates a faucet service.
func NewService(cfg *Config) *Service {
	s := &Service{
		requester: cfg.Requester,
		logger:    cfg.Logger,
		timeout:   cfg.Timeout,
	}
	if s.logger == nil {
		s.logger = nopLogger{}
	}
	if s.timeout <= 0 {
		s.timeout = DefaultTimeout
	}
	return s
}

// Request funds owner and blocks until the faucet answers. It reports
// whether the faucet accepted the request.
func (s *Service) Request(ctx context.Context, owner Owner) bool {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	addr := owner.SuiAddress()
	if err := s.requester.RequestFaucet(ctx, addr); err != nil {
		s.logger.Error("faucet request for %s failed: %v", addr, err)
		return false
	}
	s.logger.Debug("faucet funded %s", addr)
	return true
}

// Go issues Request in the background. then, when non-nil, runs with the
// result before the returned channel yields it.
func (s *Service) Go(ctx context.Context, owner Owner, then func(ok bool)) <-chan bool {
	done := make(chan bool, 1)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ok := s.Request(ctx, owner)
		if then != nil {
			then(ok)
		}
		done <- ok
	}()
	return done
}

// Wait blocks until background requests and their callbacks have finished.
func (s *Service) Wait() {
	s.wg.Wait()
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Error(string, ...any) {}
