package wallet

import (
	"fmt"
	"time"

	"github.com/mrz1836/suiwallet/internal/crypto"
	"github.com/mrz1836/suiwallet/internal/session"
	"github.com/mrz1836/suiwallet/internal/wallet"
	walleterr "github.com/mrz1836/suiwallet/pkg/errors"
)

// Load unlocks a wallet, trying a cached session before prompting for the
// password. A password unlock starts a new session when sessions are enabled.
// The returned account must be Forgotten by the caller.
func (s *Service) Load(req *LoadRequest) (*LoadResult, error) {
	if err := s.ValidateExists(req.Name); err != nil {
		return nil, err
	}

	if s.sessionsEnabled() && s.sessionMgr.HasValidSession(req.Name) {
		result, err := s.loadFromSession(req)
		if err == nil {
			return result, nil
		}
		s.logger.Debug("cached session for %s unusable: %v", req.Name, err)
	}

	return s.loadWithPassword(req)
}

func (s *Service) loadFromSession(req *LoadRequest) (*LoadResult, error) {
	seed, sess, err := s.sessionMgr.GetSession(req.Name)
	if err != nil {
		return nil, err
	}
	defer seed.Destroy()

	w, err := s.storage.LoadMetadata(req.Name)
	if err != nil {
		return nil, err
	}
	acct, err := deriveAccount(w, seed)
	if err != nil {
		return nil, err
	}

	notify(req, fmt.Sprintf("[Using cached session, expires in %s]", formatDuration(sess.TTL())))
	return &LoadResult{
		Wallet:  w,
		Account: acct,
		Auth:    AuthInfo{Mode: AuthSession, ExpiresIn: sess.TTL()},
	}, nil
}

func (s *Service) loadWithPassword(req *LoadRequest) (*LoadResult, error) {
	if req.PasswordFunc == nil {
		return nil, walleterr.WithSuggestion(walleterr.ErrInvalidInput,
			"wallet is locked and no password prompt is available")
	}

	password, err := req.PasswordFunc("Enter wallet password: ")
	if err != nil {
		return nil, err
	}

	w, seed, err := s.storage.Load(req.Name, password)
	if err != nil {
		return nil, err
	}
	defer seed.Destroy()

	acct, err := deriveAccount(w, seed)
	if err != nil {
		return nil, err
	}

	auth := AuthInfo{Mode: AuthPassword}
	if s.sessionsEnabled() {
		ttl := time.Duration(s.config.GetSecurity().SessionTTLMinutes) * time.Minute
		if ttl < session.MinTTL {
			ttl = session.DefaultTTL
		}
		ttl = session.ClampTTL(ttl)
		if startErr := s.sessionMgr.StartSession(req.Name, seed.Bytes(), ttl); startErr != nil {
			s.logger.Debug("failed to start session for %s: %v", req.Name, startErr)
		} else {
			auth.ExpiresIn = ttl
			notify(req, fmt.Sprintf("[Session started, expires in %s]", formatDuration(ttl)))
		}
	}

	return &LoadResult{Wallet: w, Account: acct, Auth: auth}, nil
}

// deriveAccount rebuilds the signing account and checks it against the stored address.
func deriveAccount(w *wallet.Wallet, seed *crypto.SecureBytes) (*wallet.Account, error) {
	acct, err := wallet.NewAccountFromSeed(seed.Bytes(), w.Scheme, 0)
	if err != nil {
		return nil, err
	}
	if acct.Address != w.Address {
		acct.Forget()
		return nil, walleterr.WithDetails(wallet.ErrCorruptWallet, map[string]string{
			"wallet":   w.Name,
			"expected": w.Address,
			"derived":  acct.Address,
		})
	}
	return acct, nil
}

func notify(req *LoadRequest, msg string) {
	if req.OnAuthMessage != nil {
		req.OnAuthMessage(msg)
	}
}

// formatDuration formats a duration as a human-readable string.
func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%d seconds", int(d.Seconds()))
	}
	if d < time.Hour {
		return fmt.Sprintf("%d minutes", int(d.Minutes()))
	}
	return fmt.Sprintf("%d hours", int(d.Hours()))
}
