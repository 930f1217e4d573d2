package sui

import (
	"github.com/mrz1836/suiwallet/internal/chain/sui/bcs"
)

// ArgumentKind tags an Argument.
type ArgumentKind uint8

// Argument variants, in wire order.
const (
	ArgGasCoin ArgumentKind = iota
	ArgInput
	ArgResult
	ArgNestedResult
)

// Argument refers to a value available to a command: the gas coin, a
// transaction input, or the result of an earlier command.
type Argument struct {
	Kind   ArgumentKind
	Index  uint16
	Nested uint16
}

// GasCoin is the coin paying for gas.
func GasCoin() Argument { return Argument{Kind: ArgGasCoin} }

// Input refers to the i-th transaction input.
func Input(i uint16) Argument { return Argument{Kind: ArgInput, Index: i} }

// Result refers to the whole result of command i.
func Result(i uint16) Argument { return Argument{Kind: ArgResult, Index: i} }

// NestedResult refers to value j of command i's result.
func NestedResult(i, j uint16) Argument {
	return Argument{Kind: ArgNestedResult, Index: i, Nested: j}
}

// MarshalBCS implements bcs.Marshaler.
func (a Argument) MarshalBCS(e *bcs.Encoder) {
	e.Variant(int(a.Kind))
	switch a.Kind {
	case ArgInput, ArgResult:
		e.U16(a.Index)
	case ArgNestedResult:
		e.U16(a.Index)
		e.U16(a.Nested)
	case ArgGasCoin:
	}
}

// CallArg is a transaction input. Only pure (BCS-encoded value) inputs are built here.
type CallArg struct {
	Pure []byte
}

// MarshalBCS implements bcs.Marshaler.
func (c CallArg) MarshalBCS(e *bcs.Encoder) {
	e.Variant(0)
	e.ByteVector(c.Pure)
}

// CommandKind tags a Command. Values match the wire variant index.
type CommandKind uint8

// Supported commands.
const (
	CmdTransferObjects CommandKind = 1
	CmdSplitCoins      CommandKind = 2
	CmdMergeCoins      CommandKind = 3
)

// String returns the command name.
func (k CommandKind) String() string {
	switch k {
	case CmdTransferObjects:
		return "TransferObjects"
	case CmdSplitCoins:
		return "SplitCoins"
	case CmdMergeCoins:
		return "MergeCoins"
	default:
		return "Unknown"
	}
}

// Command is one step of a programmable transaction.
//
// SplitCoins uses Coin and Args (amounts). TransferObjects uses Args
// (objects) and Target (recipient). MergeCoins uses Target (destination)
// and Args (sources).
type Command struct {
	Kind   CommandKind
	Coin   Argument
	Args   []Argument
	Target Argument
}

// MarshalBCS implements bcs.Marshaler.
func (c Command) MarshalBCS(e *bcs.Encoder) {
	e.Variant(int(c.Kind))
	switch c.Kind {
	case CmdTransferObjects:
		bcs.Sequence(e, c.Args)
		c.Target.MarshalBCS(e)
	case CmdSplitCoins:
		c.Coin.MarshalBCS(e)
		bcs.Sequence(e, c.Args)
	case CmdMergeCoins:
		c.Target.MarshalBCS(e)
		bcs.Sequence(e, c.Args)
	}
}

// ProgrammableTransaction is an ordered list of commands over a shared
// input list, executed atomically.
type ProgrammableTransaction struct {
	Inputs   []CallArg
	Commands []Command
}

// MarshalBCS implements bcs.Marshaler.
func (p ProgrammableTransaction) MarshalBCS(e *bcs.Encoder) {
	bcs.Sequence(e, p.Inputs)
	bcs.Sequence(e, p.Commands)
}

// Builder assembles a ProgrammableTransaction.
type Builder struct {
	pt ProgrammableTransaction
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) input(pure []byte) Argument {
	b.pt.Inputs = append(b.pt.Inputs, CallArg{Pure: pure})
	return Input(uint16(len(b.pt.Inputs) - 1)) //nolint:gosec // G115: input count is small
}

func (b *Builder) command(c Command) Argument {
	b.pt.Commands = append(b.pt.Commands, c)
	return Result(uint16(len(b.pt.Commands) - 1)) //nolint:gosec // G115: command count is small
}

// PureU64 adds a u64 input.
func (b *Builder) PureU64(v uint64) Argument {
	return b.input(bcs.U64Bytes(v))
}

// PureAddress adds an address input.
func (b *Builder) PureAddress(a Address) Argument {
	return b.input(bcs.Marshal(a))
}

// SplitCoins splits the given amounts off coin and returns the command result.
func (b *Builder) SplitCoins(coin Argument, amounts ...Argument) Argument {
	return b.command(Command{Kind: CmdSplitCoins, Coin: coin, Args: amounts})
}

// MergeCoins merges sources into dest.
func (b *Builder) MergeCoins(dest Argument, sources ...Argument) Argument {
	return b.command(Command{Kind: CmdMergeCoins, Target: dest, Args: sources})
}

// TransferObjects sends objects to recipient.
func (b *Builder) TransferObjects(objects []Argument, recipient Argument) Argument {
	return b.command(Command{Kind: CmdTransferObjects, Args: objects, Target: recipient})
}

// Build returns the assembled transaction.
func (b *Builder) Build() ProgrammableTransaction {
	return b.pt
}

// NewTransfer builds the two-step SUI transfer: split amount off the gas
// coin, then send the new coin to recipient.
func NewTransfer(recipient Address, amount uint64) ProgrammableTransaction {
	b := NewBuilder()
	split := b.SplitCoins(GasCoin(), b.PureU64(amount))
	b.TransferObjects([]Argument{NestedResult(split.Index, 0)}, b.PureAddress(recipient))
	return b.Build()
}
