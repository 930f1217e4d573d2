package app

import (
	"context"
	"errors"
	"time"

	"github.com/mrz1836/suiwallet/internal/navigation"
	"github.com/mrz1836/suiwallet/internal/service/transaction"
	walleterr "github.com/mrz1836/suiwallet/pkg/errors"
)

// ErrSendInProgress is returned when a transfer is submitted while another is pending.
var ErrSendInProgress = errors.New("a transfer is already in progress")

// SendPhase is the step the send sheet is on.
type SendPhase int

// Send sheet phases.
const (
	SendInput SendPhase = iota
	SendSending
	SendSucceeded
	SendFailed
)

// String returns the phase name.
func (p SendPhase) String() string {
	switch p {
	case SendInput:
		return "input"
	case SendSending:
		return "sending"
	case SendSucceeded:
		return "succeeded"
	case SendFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// SendSheet is the state of the send sheet.
type SendSheet struct {
	Phase       SendPhase
	Request     transaction.Request
	Outcome     transaction.Outcome
	ExplorerURL string
}

// Activity is one transfer submitted during the session.
type Activity struct {
	At          time.Time
	Request     transaction.Request
	Outcome     transaction.Outcome
	ExplorerURL string
}

// ReceiveInfo is what the receive sheet shows.
type ReceiveInfo struct {
	Address     string
	Short       string
	ExplorerURL string
}

// OpenSend opens the send sheet on its input step.
func (s *Session) OpenSend() {
	s.mu.Lock()
	if s.send.Phase != SendSending {
		s.send = SendSheet{}
	}
	s.mu.Unlock()
	s.nav.OpenOverlay(navigation.SendSheet)
}

// OpenReceive opens the receive sheet.
func (s *Session) OpenReceive() {
	s.nav.OpenOverlay(navigation.ReceiveSheet)
}

// CloseSheet closes whichever sheet is open.
func (s *Session) CloseSheet() {
	s.nav.CloseOverlay()
}

// SendState returns the send sheet state.
func (s *Session) SendState() SendSheet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.send
}

// Send submits req and blocks until the ledger answers. Input the executor
// rejects leaves the sheet on its input step and returns the error. A
// submitted transfer always ends in SendSucceeded or SendFailed, is recorded
// in Activity, and a success triggers a balance refresh.
func (s *Session) Send(ctx context.Context, req transaction.Request) (transaction.Outcome, error) {
	s.mu.Lock()
	if s.send.Phase == SendSending {
		s.mu.Unlock()
		return transaction.Outcome{}, ErrSendInProgress
	}
	s.send = SendSheet{Phase: SendSending, Request: req}
	s.mu.Unlock()

	outcome, err := s.executor.Execute(ctx, s.ledger, s.account, req.Recipient, req.Amount)
	if err != nil && !errors.Is(err, walleterr.ErrTransactionFailed) {
		s.mu.Lock()
		s.send = SendSheet{Phase: SendInput, Request: req}
		s.mu.Unlock()
		return outcome, err
	}

	sheet := SendSheet{Phase: SendFailed, Request: req, Outcome: outcome}
	if outcome.Succeeded() {
		sheet.Phase = SendSucceeded
		sheet.ExplorerURL = outcome.ExplorerURL(s.explorer)
	}

	s.mu.Lock()
	s.send = sheet
	s.activity = append(s.activity, Activity{
		At:          time.Now(),
		Request:     req,
		Outcome:     outcome,
		ExplorerURL: sheet.ExplorerURL,
	})
	s.mu.Unlock()

	if outcome.Succeeded() {
		s.poller.Trigger()
	}
	s.logger.Debug("send finished: %s", outcome.Status)
	return outcome, err
}

// Activity returns the transfers submitted this session, oldest first.
func (s *Session) Activity() []Activity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Activity(nil), s.activity...)
}
