// Package types holds the semantic type model consumed by the match
// usefulness analysis. The checker hands the analysis fully resolved,
// monomorphic types; generics, traits and inference never reach it.
package types

import "strings"

// Type represents a resolved type of a match scrutinee or subpattern.
type Type interface {
	String() string
	// IsType is a marker method to ensure type safety.
	IsType()
}

// PrimitiveKind represents the kind of a primitive type.
type PrimitiveKind string

const (
	Bool   PrimitiveKind = "bool"
	Int    PrimitiveKind = "int"
	Char   PrimitiveKind = "char"
	String PrimitiveKind = "string"
)

// Primitive represents a primitive type.
type Primitive struct {
	Kind PrimitiveKind
}

func (p *Primitive) String() string { return string(p.Kind) }
func (p *Primitive) IsType()        {}

// Common primitive instances
var (
	TypeBool   = &Primitive{Kind: Bool}
	TypeInt    = &Primitive{Kind: Int}
	TypeChar   = &Primitive{Kind: Char}
	TypeString = &Primitive{Kind: String}
)

// Tuple represents a tuple type.
type Tuple struct {
	Elems []Type
}

func (t *Tuple) String() string {
	var elems []string
	for _, e := range t.Elems {
		elems = append(elems, e.String())
	}
	return "(" + strings.Join(elems, ", ") + ")"
}
func (t *Tuple) IsType() {}

// Struct represents a struct type.
type Struct struct {
	Name   string
	Fields []Field
}

type Field struct {
	Name string
	Type Type
}

func (s *Struct) String() string { return s.Name }
func (s *Struct) IsType()        {}

// Enum represents an enum type.
type Enum struct {
	Name     string
	Variants []Variant
	// Foreign marks an enum defined outside the crate under analysis.
	Foreign bool
	// NonExhaustive marks an enum closed to exhaustive matching by
	// outside code; combined with Foreign it forces matches to account
	// for unlisted future variants.
	NonExhaustive bool
}

type Variant struct {
	Name    string
	Payload []Type // Can be empty for unit variants
}

func (e *Enum) String() string { return e.Name }
func (e *Enum) IsType()        {}
