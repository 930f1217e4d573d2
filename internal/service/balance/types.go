package balance

import "time"

// Update is one completed balance fetch.
type Update struct {
	// Trigger is the trigger count that launched the fetch.
	Trigger uint64 `json:"trigger"`
	// Balance is in whole SUI.
	Balance   uint64    `json:"balance"`
	UpdatedAt time.Time `json:"updated_at"`
}
