// Package wallet holds Sui key material: BIP39 recovery phrases, per-scheme
// key derivation, accounts, and encrypted wallet files.
package wallet

import (
	"errors"
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/cosmos/go-bip39"

	"github.com/mrz1836/suiwallet/internal/crypto"
)

// DefaultWordCount is the length of newly generated recovery phrases.
const DefaultWordCount = 12

var (
	// ErrInvalidWordCount indicates the phrase length is not a BIP39 length.
	ErrInvalidWordCount = errors.New("word count must be 12 or 24")

	// ErrInvalidMnemonic indicates the mnemonic is not valid.
	ErrInvalidMnemonic = errors.New("invalid mnemonic phrase")

	whitespaceRegex   = regexp.MustCompile(`\s+`)
	numberedListRegex = regexp.MustCompile(`(?m)^\s*\d+[\.\)\:]\s*`)
	bulletListRegex   = regexp.MustCompile(`(?m)^\s*[-*•]\s*`)
)

// entropyBits maps a phrase length to its entropy size.
func entropyBits(wordCount int) (int, bool) {
	switch wordCount {
	case 12:
		return 128, true
	case 24:
		return 256, true
	default:
		return 0, false
	}
}

// GenerateMnemonic creates a new BIP39 recovery phrase with entropy from crypto.Reader.
func GenerateMnemonic(wordCount int) (string, error) {
	bits, ok := entropyBits(wordCount)
	if !ok {
		return "", ErrInvalidWordCount
	}

	entropy := make([]byte, bits/8)
	defer crypto.Zero(entropy)
	if _, err := io.ReadFull(crypto.Reader, entropy); err != nil {
		return "", fmt.Errorf("reading entropy: %w", err)
	}

	return bip39.NewMnemonic(entropy)
}

// ValidateMnemonic checks word count, word membership, and checksum.
func ValidateMnemonic(mnemonic string) error {
	normalized := NormalizeMnemonicInput(mnemonic)
	if normalized == "" {
		return ErrInvalidMnemonic
	}

	if _, ok := entropyBits(len(strings.Fields(normalized))); !ok {
		return fmt.Errorf("%w: %w", ErrInvalidMnemonic, ErrInvalidWordCount)
	}

	if _, err := bip39.MnemonicToByteArray(normalized); err != nil {
		return ErrInvalidMnemonic
	}
	return nil
}

// JoinWords rebuilds a phrase from pre-split words.
func JoinWords(words []string) string {
	return NormalizeMnemonicInput(strings.Join(words, " "))
}

// NormalizeMnemonicInput lowercases the input, strips list numbering and bullets,
// turns commas into spaces, and collapses whitespace.
func NormalizeMnemonicInput(input string) string {
	input = strings.ToLower(input)
	input = numberedListRegex.ReplaceAllString(input, " ")
	input = bulletListRegex.ReplaceAllString(input, " ")
	input = strings.ReplaceAll(input, ",", " ")
	input = whitespaceRegex.ReplaceAllString(input, " ")
	return strings.TrimSpace(input)
}

// MnemonicToSeed validates the phrase and returns its 64-byte BIP39 seed.
// The caller should zero the seed after use.
func MnemonicToSeed(mnemonic, passphrase string) ([]byte, error) {
	if err := ValidateMnemonic(mnemonic); err != nil {
		return nil, err
	}
	return bip39.NewSeed(NormalizeMnemonicInput(mnemonic), passphrase), nil
}

// IsValidWord checks if a word is in the BIP39 English word list.
func IsValidWord(word string) bool {
	_, ok := bip39.ReverseWordMap[strings.ToLower(word)]
	return ok
}

// MaxTypoDistance is the largest Levenshtein distance still offered as a suggestion.
const MaxTypoDistance = 2

// TypoInfo describes a word that is not in the word list.
type TypoInfo struct {
	Index      int
	Word       string
	Suggestion string
	Distance   int
}

// SuggestWord returns the closest BIP39 word within MaxTypoDistance, or "".
func SuggestWord(input string) string {
	input = strings.ToLower(input)

	best := math.MaxInt
	var suggestion string
	for _, word := range bip39.WordList {
		dist := levenshtein.ComputeDistance(input, word)
		if dist == 0 {
			return word
		}
		if dist < best {
			best = dist
			suggestion = word
		}
	}

	if best <= MaxTypoDistance {
		return suggestion
	}
	return ""
}

// DetectTypos returns every word of the phrase that is not in the word list.
func DetectTypos(mnemonic string) []TypoInfo {
	var typos []TypoInfo
	for i, word := range strings.Fields(NormalizeMnemonicInput(mnemonic)) {
		if IsValidWord(word) {
			continue
		}
		info := TypoInfo{Index: i, Word: word, Suggestion: SuggestWord(word)}
		if info.Suggestion != "" {
			info.Distance = levenshtein.ComputeDistance(word, info.Suggestion)
		}
		typos = append(typos, info)
	}
	return typos
}

// FormatTypoSuggestions renders typos one per line with 1-based positions.
func FormatTypoSuggestions(typos []TypoInfo) string {
	lines := make([]string, 0, len(typos))
	for _, typo := range typos {
		line := "Word " + strconv.Itoa(typo.Index+1) + ": '" + typo.Word + "'"
		if typo.Suggestion != "" {
			line += " - did you mean '" + typo.Suggestion + "'?"
		} else {
			line += " is not a valid BIP39 word"
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
