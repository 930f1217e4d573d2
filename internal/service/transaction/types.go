package transaction

import (
	"github.com/mrz1836/suiwallet/internal/chain"
)

// Request is a pending transfer as entered by the user.
type Request struct {
	Recipient string
	Amount    uint64 // MIST
}

// Submittable reports whether the request may be sent: a recipient is
// present and the amount is non-zero.
func (r Request) Submittable() bool {
	return r.Recipient != "" && r.Amount > 0
}

// Status tags an Outcome.
type Status int

// Outcome statuses. The zero value is Failure.
const (
	StatusFailure Status = iota
	StatusSuccess
)

// String returns the status name.
func (s Status) String() string {
	if s == StatusSuccess {
		return "success"
	}
	return "failure"
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Outcome is the result of a submitted transfer. Digest is only set on
// success and may be empty when the ledger omitted it.
type Outcome struct {
	Status Status `json:"status"`
	Digest string `json:"digest,omitempty"`
}

// Succeeded reports whether the transfer succeeded.
func (o Outcome) Succeeded() bool {
	return o.Status == StatusSuccess
}

// ExplorerURL links the transaction on the explorer at base. Empty when
// there is no digest.
func (o Outcome) ExplorerURL(base string) string {
	if !o.Succeeded() {
		return ""
	}
	return chain.TxURL(base, o.Digest)
}
