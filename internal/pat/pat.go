// Package pat provides the pattern representation the match usefulness
// analysis works on: an append-only store of immutable pattern nodes
// addressed by index. Lowering from surface syntax happens upstream;
// this package only models the lowered shape.
package pat

import (
	"strconv"

	"github.com/malphas-lang/matchck/internal/diag"
	"github.com/malphas-lang/matchck/internal/types"
)

// ID addresses a pattern node inside a Store.
type ID int32

// NoPat marks an absent optional subpattern.
const NoPat ID = -1

// Pat is one pattern node. Nodes are immutable once stored; subpatterns
// are referenced by ID so subtrees can be shared or deliberately
// duplicated without aliased mutable graphs.
type Pat struct {
	Ty   types.Type
	Span diag.Span
	Kind Kind
}

// Kind discriminates the pattern node forms.
type Kind interface {
	patKind()
}

// Wild is the `_` wildcard.
type Wild struct{}

func (Wild) patKind() {}

// Binding is a name binding, optionally constraining a subpattern
// (`x` or `x @ p`). Sub is NoPat for a plain binding.
type Binding struct {
	Name string
	Sub  ID
}

func (Binding) patKind() {}

// Lit is a literal pattern.
type Lit struct {
	Value Value
}

func (Lit) patKind() {}

// Ctor is a constructor application: an enum variant, a tuple, or a
// struct, with one subpattern per field in declaration order.
type Ctor struct {
	// Variant indexes the enum's variants; -1 for tuple and struct
	// patterns, which have a single anonymous constructor.
	Variant int
	Args    []ID
}

func (Ctor) patKind() {}

// Or is an alternation `p1 | p2 | ...`.
type Or struct {
	Alts []ID
}

func (Or) patKind() {}

// Value is a literal pattern value.
type Value interface {
	String() string
	literalValue()
}

// BoolValue is a bool literal.
type BoolValue bool

func (v BoolValue) String() string {
	if v {
		return "true"
	}
	return "false"
}
func (BoolValue) literalValue() {}

// IntValue is an integer literal.
type IntValue int64

func (v IntValue) String() string { return strconv.FormatInt(int64(v), 10) }
func (IntValue) literalValue()    {}

// CharValue is a character literal.
type CharValue rune

func (v CharValue) String() string { return "'" + string(rune(v)) + "'" }
func (CharValue) literalValue()    {}

// StringValue is a string literal.
type StringValue string

func (v StringValue) String() string { return strconv.Quote(string(v)) }
func (StringValue) literalValue()    {}
