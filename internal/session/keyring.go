package session

import (
	"time"

	"github.com/zalando/go-keyring"
)

// probeTimeout bounds the availability probe so a hung keyring daemon cannot stall startup.
const probeTimeout = 3 * time.Second

// OSKeyring is the Keyring backed by the operating system keychain.
type OSKeyring struct{}

// NewOSKeyring returns the OS keychain wrapper.
func NewOSKeyring() *OSKeyring {
	return &OSKeyring{}
}

// Set stores a secret.
func (k *OSKeyring) Set(service, user, secret string) error {
	return keyring.Set(service, user, secret)
}

// Get retrieves a secret.
func (k *OSKeyring) Get(service, user string) (string, error) {
	return keyring.Get(service, user)
}

// Delete removes a secret.
func (k *OSKeyring) Delete(service, user string) error {
	return keyring.Delete(service, user)
}

// Probe reports whether k can round-trip a value within probeTimeout.
func Probe(k Keyring) bool {
	ch := make(chan bool, 1)
	go func() { ch <- probeSync(k) }()

	select {
	case ok := <-ch:
		return ok
	case <-time.After(probeTimeout):
		return false
	}
}

func probeSync(k Keyring) bool {
	const (
		user  = "probe"
		value = "ok"
	)

	if err := k.Set(probeService, user, value); err != nil {
		return false
	}
	got, err := k.Get(probeService, user)
	if err != nil || got != value {
		_ = k.Delete(probeService, user)
		return false
	}
	return k.Delete(probeService, user) == nil
}
