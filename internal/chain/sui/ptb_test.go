package sui

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/suiwallet/internal/chain/sui/bcs"
)

func TestNewTransfer_Shape(t *testing.T) {
	t.Parallel()
	recipient := MustParseAddress("0x2")
	pt := NewTransfer(recipient, 5_000_000_000)

	require.Len(t, pt.Inputs, 2)
	require.Len(t, pt.Commands, 2)

	split := pt.Commands[0]
	assert.Equal(t, CmdSplitCoins, split.Kind)
	assert.Equal(t, GasCoin(), split.Coin)
	assert.Equal(t, []Argument{Input(0)}, split.Args)
	assert.Equal(t, bcs.U64Bytes(5_000_000_000), pt.Inputs[0].Pure)

	transfer := pt.Commands[1]
	assert.Equal(t, CmdTransferObjects, transfer.Kind)
	assert.Equal(t, []Argument{NestedResult(0, 0)}, transfer.Args)
	assert.Equal(t, Input(1), transfer.Target)
	assert.Equal(t, recipient[:], pt.Inputs[1].Pure)
}

func TestNewTransfer_BCS(t *testing.T) {
	t.Parallel()
	pt := NewTransfer(MustParseAddress("0x2"), 5_000_000_000)

	expected := "02" + // inputs
		"0008" + "00f2052a01000000" + // Pure(u64)
		"0020" + strings.Repeat("00", 31) + "02" + // Pure(address)
		"02" + // commands
		"02" + "00" + "01" + "010000" + // SplitCoins(GasCoin, [Input(0)])
		"01" + "01" + "0300000000" + "010100" // TransferObjects([NestedResult(0,0)], Input(1))

	assert.Equal(t, expected, hex.EncodeToString(bcs.Marshal(pt)))
}

func TestBuilder_MergeAndResult(t *testing.T) {
	t.Parallel()
	b := NewBuilder()
	amt := b.PureU64(1)
	first := b.SplitCoins(GasCoin(), amt, amt)
	merged := b.MergeCoins(GasCoin(), NestedResult(first.Index, 1))
	pt := b.Build()

	assert.Equal(t, Result(0), first)
	assert.Equal(t, Result(1), merged)
	assert.Len(t, pt.Inputs, 1)

	// MergeCoins(GasCoin, [NestedResult(0,1)])
	assert.Equal(t, "03"+"00"+"01"+"0300000100", hex.EncodeToString(bcs.Marshal(pt.Commands[1])))
}

func TestCommandKindString(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "SplitCoins", CmdSplitCoins.String())
	assert.Equal(t, "TransferObjects", CmdTransferObjects.String())
	assert.Equal(t, "MergeCoins", CmdMergeCoins.String())
	assert.Equal(t, "Unknown", CommandKind(9).String())
}

func TestArgumentBCS(t *testing.T) {
	t.Parallel()
	tests := []struct {
		arg      Argument
		expected string
	}{
		{GasCoin(), "00"},
		{Input(258), "010201"},
		{Result(1), "020100"},
		{NestedResult(1, 2), "0301000200"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, hex.EncodeToString(bcs.Marshal(tt.arg)))
	}
}
