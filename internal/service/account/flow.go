package account

import (
	"context"
	"slices"
	"sync"

	"github.com/mrz1836/suiwallet/internal/wallet"
)

// State is a step of the wallet-setup flow.
type State int

// Setup flow states.
const (
	StateOptions State = iota
	StateImportEntry
	StateCreated
	StateReady
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateOptions:
		return "options"
	case StateImportEntry:
		return "import"
	case StateCreated:
		return "created"
	case StateReady:
		return "ready"
	default:
		return "unknown"
	}
}

// Flow is the wallet-setup state machine:
//
//	Options --import--> ImportEntry --back--> Options
//	Options --create--> Created --done--> Ready
//	ImportEntry --import ok--> Ready
//
// Intents that do not apply to the current state are ignored. Ready is terminal.
type Flow struct {
	provisioner *Provisioner

	mu      sync.Mutex
	state   State
	account *wallet.Account
	onReady []func(*wallet.Account)
}

// NewFlow starts a setup flow at Options.
func NewFlow(p *Provisioner) *Flow {
	return &Flow{provisioner: p}
}

// State returns the current state.
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Account returns the created or imported account, nil before one exists.
func (f *Flow) Account() *wallet.Account {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.account
}

// OnReady registers fn to run with the account when the flow reaches Ready.
func (f *Flow) OnReady(fn func(*wallet.Account)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.onReady = append(f.onReady, fn)
}

// ChooseImport moves Options to ImportEntry.
func (f *Flow) ChooseImport() bool {
	return f.move(StateOptions, StateImportEntry)
}

// Back moves ImportEntry to Options.
func (f *Flow) Back() bool {
	return f.move(StateImportEntry, StateOptions)
}

// Create generates an account from Options and moves to Created. A
// creation error is returned as is and the flow stays at Options.
func (f *Flow) Create(ctx context.Context) (bool, error) {
	if f.State() != StateOptions {
		return false, nil
	}

	acct, err := f.provisioner.CreateAccount(ctx)
	if err != nil {
		return false, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateOptions {
		acct.Forget()
		return false, nil
	}
	f.account = acct
	f.state = StateCreated
	return true, nil
}

// Import imports words from ImportEntry and, on success, goes straight to
// Ready. A failed import leaves the flow at ImportEntry.
func (f *Flow) Import(ctx context.Context, words []string) bool {
	if f.State() != StateImportEntry {
		return false
	}

	acct, ok := f.provisioner.ImportAccount(ctx, words)
	if !ok {
		return false
	}

	f.mu.Lock()
	if f.state != StateImportEntry {
		f.mu.Unlock()
		acct.Forget()
		return false
	}
	f.account = acct
	return f.ready()
}

// Done confirms the recovery phrase was saved and moves Created to Ready.
func (f *Flow) Done() bool {
	f.mu.Lock()
	if f.state != StateCreated {
		f.mu.Unlock()
		return false
	}
	return f.ready()
}

// ready moves to Ready and fires the callbacks. Called with f.mu held;
// it unlocks before running callbacks.
func (f *Flow) ready() bool {
	f.state = StateReady
	acct := f.account
	callbacks := slices.Clone(f.onReady)
	f.mu.Unlock()

	for _, fn := range callbacks {
		fn(acct)
	}
	return true
}

func (f *Flow) move(from, to State) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != from {
		return false
	}
	f.state = to
	return true
}
