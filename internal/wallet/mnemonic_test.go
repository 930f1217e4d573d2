package wallet

import (
	"encoding/hex"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/suiwallet/internal/crypto"
)

const (
	abandonPhrase = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"
	// BIP39 reference seed for abandonPhrase with passphrase "TREZOR"
	abandonTrezorSeed = "c55257c360c07c72029aebc1b53c05ed0362ada38ead3e3e9efa3708e53495531f09a6987599d18264c1e1c92f2cf141630c7a3c4ab7c81b2f001698e7463b04"
)

func TestGenerateMnemonic(t *testing.T) {
	t.Parallel()
	for _, count := range []int{12, 24} {
		mnemonic, err := GenerateMnemonic(count)
		require.NoError(t, err)
		assert.Len(t, strings.Fields(mnemonic), count)
		require.NoError(t, ValidateMnemonic(mnemonic))
	}

	_, err := GenerateMnemonic(15)
	require.ErrorIs(t, err, ErrInvalidWordCount)
}

type errReader struct{}

var errEntropy = errors.New("entropy source closed")

func (errReader) Read([]byte) (int, error) { return 0, errEntropy }

//nolint:paralleltest // swaps crypto.Reader
func TestGenerateMnemonic_EntropyFailure(t *testing.T) {
	orig := crypto.Reader
	crypto.Reader = errReader{}
	defer func() { crypto.Reader = orig }()

	_, err := GenerateMnemonic(DefaultWordCount)
	require.ErrorIs(t, err, errEntropy)
}

func TestValidateMnemonic(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid", abandonPhrase, false},
		{"valid with numbering", "1. abandon\n2. abandon\n3. abandon\n4. abandon\n5. abandon\n6. abandon\n7. abandon\n8. abandon\n9. abandon\n10. abandon\n11. abandon\n12. about", false},
		{"upper case", strings.ToUpper(abandonPhrase), false},
		{"bad checksum", strings.Replace(abandonPhrase, "about", "abandon", 1), true},
		{"unknown word", strings.Replace(abandonPhrase, "about", "abuot", 1), true},
		{"eleven words", strings.TrimSuffix(abandonPhrase, " about"), true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateMnemonic(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidMnemonic)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestMnemonicToSeed(t *testing.T) {
	t.Parallel()
	seed, err := MnemonicToSeed(abandonPhrase, "TREZOR")
	require.NoError(t, err)
	assert.Equal(t, abandonTrezorSeed, hex.EncodeToString(seed))

	_, err = MnemonicToSeed("not a phrase", "")
	require.ErrorIs(t, err, ErrInvalidMnemonic)
}

func TestJoinWords(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "abandon about", JoinWords([]string{" Abandon", "ABOUT "}))
}

func TestNormalizeMnemonicInput(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "one two three", NormalizeMnemonicInput("  - One,\n* two\n3) three "))
}

func TestTypoDetection(t *testing.T) {
	t.Parallel()
	typos := DetectTypos("abandon abandn zzzzzzzz")
	require.Len(t, typos, 2)

	assert.Equal(t, 1, typos[0].Index)
	assert.Equal(t, "abandon", typos[0].Suggestion)
	assert.Equal(t, 1, typos[0].Distance)
	assert.Empty(t, typos[1].Suggestion)

	assert.Equal(t,
		"Word 2: 'abandn' - did you mean 'abandon'?\nWord 3: 'zzzzzzzz' is not a valid BIP39 word",
		FormatTypoSuggestions(typos))
	assert.Empty(t, FormatTypoSuggestions(nil))
}

func TestIsValidWord(t *testing.T) {
	t.Parallel()
	assert.True(t, IsValidWord("Zoo"))
	assert.False(t, IsValidWord("sui"))
}
