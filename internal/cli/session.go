package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/mrz1836/suiwallet/internal/session"
)

// sessionCmd is the parent command for session operations.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage authentication sessions",
	Long: `Manage authentication sessions for wallet operations.

When enabled, suiwallet caches an unlocked wallet for a configurable time
(default: 15 minutes, at most 60) so you don't need to enter your password for
every send. The cached seed is sealed on disk under a random key that is kept
in the system keychain.

Sessions use your operating system's secure keychain:
- macOS: Keychain
- Linux: Secret Service (GNOME Keyring, KWallet)
- Windows: Credential Manager

If the system keychain is unavailable, sessions are disabled and you'll be
prompted for your password each time.`,
}

// sessionStatusCmd shows active sessions.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var sessionStatusCmd = &cobra.Command{
	Use:     "status",
	Short:   "Show active sessions and remaining time",
	Long:    `Show all active authentication sessions and their remaining time until expiry.`,
	Example: `  suiwallet session status`,
	RunE:    runSessionStatus,
}

// sessionLockCmd ends all sessions.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var sessionLockCmd = &cobra.Command{
	Use:   "lock",
	Short: "End active sessions immediately",
	Long: `End all active authentication sessions immediately, or only the
session of --wallet.

Use this when stepping away from your computer to ensure wallet
credentials are not cached.`,
	Example: `  suiwallet session lock
  suiwallet session lock --wallet main`,
	RunE: runSessionLock,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var lockWallet string

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	sessionCmd.GroupID = "security"
	rootCmd.AddCommand(sessionCmd)
	sessionCmd.AddCommand(sessionStatusCmd)
	sessionCmd.AddCommand(sessionLockCmd)

	sessionLockCmd.Flags().StringVarP(&lockWallet, "wallet", "w", "", "end only this wallet's session")
}

// sessionInfo is one cached session in status output.
type sessionInfo struct {
	Wallet    string `json:"wallet"`
	ExpiresIn string `json:"expires_in"`
	CreatedAt string `json:"created_at"`
}

type sessionStatusResponse struct {
	Available bool          `json:"available"`
	Message   string        `json:"message,omitempty"`
	Sessions  []sessionInfo `json:"sessions"`
}

type sessionLockResponse struct {
	Available bool   `json:"available"`
	Ended     int    `json:"ended"`
	Message   string `json:"message,omitempty"`
}

const keyringUnavailable = "Session caching is not available (keyring unavailable)"

// availableSessions returns the session manager, or nil when the keyring
// cannot be used.
func availableSessions(cmd *cobra.Command) (session.Manager, error) {
	cc, err := requireCmdContext(cmd)
	if err != nil {
		return nil, err
	}
	if mgr := cc.Sessions(); mgr != nil && mgr.Available() {
		return mgr, nil
	}
	return nil, nil //nolint:nilnil // a nil manager means sessions are off
}

func runSessionStatus(cmd *cobra.Command, _ []string) error {
	mgr, err := availableSessions(cmd)
	if err != nil {
		return err
	}

	resp := sessionStatusResponse{Sessions: []sessionInfo{}}
	if mgr == nil {
		resp.Message = keyringUnavailable
	} else {
		sessions, err := mgr.ListSessions()
		if err != nil {
			return fmt.Errorf("listing sessions: %w", err)
		}
		resp.Available = true
		for _, s := range sessions {
			resp.Sessions = append(resp.Sessions, sessionInfo{
				Wallet:    s.WalletName,
				ExpiresIn: session.FormatRemaining(s.TTL()),
				CreatedAt: s.CreatedAt.Format(time.RFC3339),
			})
		}
	}

	return formatFor(cmd).Emit(resp, func(w io.Writer) error {
		displaySessionStatus(w, resp)
		return nil
	})
}

func displaySessionStatus(w io.Writer, resp sessionStatusResponse) {
	switch {
	case !resp.Available:
		outln(w, resp.Message)
	case len(resp.Sessions) == 0:
		outln(w, "No active sessions")
	default:
		outln(w, "Active Sessions:")
		for _, s := range resp.Sessions {
			out(w, "  %s: expires in %s\n", s.Wallet, s.ExpiresIn)
		}
	}
}

func runSessionLock(cmd *cobra.Command, _ []string) error {
	mgr, err := availableSessions(cmd)
	if err != nil {
		return err
	}

	resp := sessionLockResponse{Message: keyringUnavailable}
	if mgr != nil {
		resp = sessionLockResponse{Available: true}
		if lockWallet == "" {
			resp.Ended = mgr.EndAllSessions()
		} else {
			if mgr.HasValidSession(lockWallet) {
				resp.Ended = 1
			}
			if err := mgr.EndSession(lockWallet); err != nil {
				return fmt.Errorf("ending session for %s: %w", lockWallet, err)
			}
		}
	}

	return formatFor(cmd).Emit(resp, func(w io.Writer) error {
		if !resp.Available {
			outln(w, resp.Message)
			return nil
		}
		out(w, "Ended %d session(s)\n", resp.Ended)
		return nil
	})
}
