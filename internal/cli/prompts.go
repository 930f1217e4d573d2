package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/mrz1836/suiwallet/internal/crypto"
	walleterr "github.com/mrz1836/suiwallet/pkg/errors"
)

// minPasswordLength is the shortest accepted wallet password.
const minPasswordLength = 8

// Prompt functions are variables so tests can replace terminal input.
//
//nolint:gochecknoglobals // Swappable for tests
var (
	promptPasswordFn    = promptPassword
	promptNewPasswordFn = promptNewPassword
	promptMnemonicFn    = promptMnemonic
	promptConfirmFn     = promptConfirm
)

// promptPassword prompts for a password with hidden input.
func promptPassword(prompt string) (string, error) {
	out(os.Stderr, "%s", prompt)

	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	outln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	defer crypto.Zero(raw)

	return string(raw), nil
}

// promptNewPassword prompts for a new password with confirmation.
func promptNewPassword() (string, error) {
	password, err := promptPasswordFn("Enter encryption password: ")
	if err != nil {
		return "", err
	}
	if len(password) < minPasswordLength {
		return "", walleterr.WithSuggestion(
			walleterr.ErrInvalidInput,
			fmt.Sprintf("password must be at least %d characters", minPasswordLength),
		)
	}

	confirm, err := promptPasswordFn("Confirm password: ")
	if err != nil {
		return "", err
	}
	if password != confirm {
		return "", walleterr.WithSuggestion(walleterr.ErrInvalidInput, "passwords do not match")
	}
	return password, nil
}

// promptMnemonic reads a recovery phrase from one line of stdin.
func promptMnemonic() (string, error) {
	outln(os.Stderr, "Enter your recovery phrase (all words on one line):")

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", walleterr.WithSuggestion(walleterr.ErrInvalidInput, "no input provided")
	}
	return strings.TrimSpace(line), nil
}

// promptConfirm asks a yes/no question, defaulting to no.
func promptConfirm(question string) bool {
	out(os.Stderr, "%s [y/N]: ", question)

	var response string
	if _, err := fmt.Scanln(&response); err != nil {
		return false
	}
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}
