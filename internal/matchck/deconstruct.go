package matchck

import (
	"fmt"

	"github.com/malphas-lang/matchck/internal/pat"
	"github.com/malphas-lang/matchck/internal/types"
)

// ctorKind discriminates the abstract constructors a value can be built
// with, plus the pseudo-constructors the algorithm synthesizes.
type ctorKind int

const (
	// ctorSingle is the only constructor of tuple and struct types.
	ctorSingle ctorKind = iota
	// ctorVariant is an enum variant, identified by index.
	ctorVariant
	// ctorLit is an exact literal value (bool, int, char, string).
	ctorLit
	// ctorNonExhaustive stands for the cases a column can hold that no
	// pattern can name: unlisted variants of a foreign non-exhaustive
	// enum, or the unwritten remainder of an open literal domain.
	ctorNonExhaustive
	// ctorMissing stands for all constructors absent from the matrix
	// under inspection. Matched only by wildcard rows.
	ctorMissing
	// ctorWildcard matches anything and names no constructor at all.
	ctorWildcard
)

// constructor is the head tag of a pattern: how the matched value must
// have been built for the pattern to apply.
type constructor struct {
	kind    ctorKind
	variant int       // for ctorVariant
	lit     pat.Value // for ctorLit
}

// ctorForPat derives the head constructor of a stored pattern.
func ctorForPat(cx *Ctx, id pat.ID) constructor {
	p := cx.Store.Get(id)
	switch k := p.Kind.(type) {
	case pat.Wild:
		return constructor{kind: ctorWildcard}
	case pat.Binding:
		// Bindings with subpatterns are folded away before analysis;
		// a plain binding matches like a wildcard.
		return constructor{kind: ctorWildcard}
	case pat.Lit:
		return constructor{kind: ctorLit, lit: k.Value}
	case pat.Ctor:
		if k.Variant >= 0 {
			return constructor{kind: ctorVariant, variant: k.Variant}
		}
		return constructor{kind: ctorSingle}
	case pat.Or:
		panic("internal error: or-pattern has no head constructor")
	default:
		panic(fmt.Sprintf("internal error: unknown pattern kind %T", p.Kind))
	}
}

// coveredBy reports whether every value matched by c is also matched by
// other. Used during specialization: a matrix row survives
// specialization by c exactly when c is covered by the row's head.
func (c constructor) coveredBy(other constructor) bool {
	if other.kind == ctorWildcard {
		return true
	}
	switch c.kind {
	case ctorWildcard, ctorMissing:
		// Only a wildcard covers everything.
		return false
	case ctorSingle:
		return other.kind == ctorSingle
	case ctorVariant:
		return other.kind == ctorVariant && c.variant == other.variant
	case ctorLit:
		return other.kind == ctorLit && c.lit == other.lit
	case ctorNonExhaustive:
		return false
	default:
		panic(fmt.Sprintf("internal error: unknown constructor kind %d", c.kind))
	}
}

// split refines c against the constructors present in the matrix column
// into the minimal set of constructors worth specializing by. Concrete
// constructors split to themselves; a wildcard splits through
// splitWildcard.
func (c constructor) split(pcx patCtxt, matrixCtors []constructor) []constructor {
	if c.kind != ctorWildcard {
		return []constructor{c}
	}
	sw := newSplitWildcard(pcx)
	sw.split(matrixCtors)
	return sw.intoCtors(pcx)
}

// splitWildcard tracks, for one column type, the statically possible
// constructors and those the matrix actually uses.
type splitWildcard struct {
	allCtors    []constructor
	matrixCtors []constructor
}

func newSplitWildcard(pcx patCtxt) *splitWildcard {
	var all []constructor
	switch ty := pcx.ty.(type) {
	case *types.Primitive:
		if ty.Kind == types.Bool {
			all = []constructor{
				{kind: ctorLit, lit: pat.BoolValue(false)},
				{kind: ctorLit, lit: pat.BoolValue(true)},
			}
		} else {
			// int/char/string: exact literals can never exhaust the
			// domain, so the full set always keeps an unnameable member.
			all = []constructor{{kind: ctorNonExhaustive}}
		}
	case *types.Tuple, *types.Struct:
		all = []constructor{{kind: ctorSingle}}
	case *types.Enum:
		for i, v := range ty.Variants {
			if variantUninhabited(pcx.cx, v) {
				continue
			}
			all = append(all, constructor{kind: ctorVariant, variant: i})
		}
		if ty.Foreign && ty.NonExhaustive {
			all = append(all, constructor{kind: ctorNonExhaustive})
		}
	default:
		all = []constructor{{kind: ctorNonExhaustive}}
	}
	return &splitWildcard{allCtors: all}
}

func variantUninhabited(cx *Ctx, v types.Variant) bool {
	for _, ty := range v.Payload {
		if cx.isUninhabited(ty) {
			return true
		}
	}
	return false
}

// split records which constructors the matrix column uses.
func (sw *splitWildcard) split(ctors []constructor) {
	sw.matrixCtors = sw.matrixCtors[:0]
	for _, c := range ctors {
		if c.kind != ctorWildcard && c.kind != ctorMissing {
			sw.matrixCtors = append(sw.matrixCtors, c)
		}
	}
}

// missing returns the statically possible constructors the matrix does
// not cover.
func (sw *splitWildcard) missing() []constructor {
	var out []constructor
	for _, c := range sw.allCtors {
		covered := false
		for _, m := range sw.matrixCtors {
			if c.coveredBy(m) {
				covered = true
				break
			}
		}
		if !covered {
			out = append(out, c)
		}
	}
	return out
}

// intoCtors yields the constructors to specialize a wildcard head by.
// When anything is uncovered, the single Missing pseudo-constructor
// stands for all of it and matches exactly the wildcard rows; this is
// what keeps reported witnesses minimal. A column whose matrix names no
// constructor collapses further, to a plain wildcard, except at the top
// level of a match over a closed domain: there the missing constructors
// are worth spelling out one by one.
func (sw *splitWildcard) intoCtors(pcx patCtxt) []constructor {
	if len(sw.missing()) > 0 {
		if len(sw.matrixCtors) > 0 || (pcx.isTopLevel && !sw.openDomain()) {
			return []constructor{{kind: ctorMissing}}
		}
		return []constructor{{kind: ctorWildcard}}
	}
	return append([]constructor(nil), sw.allCtors...)
}

// openDomain reports whether no pattern can name any constructor of the
// column type (int, char and string literals never close their domain).
func (sw *splitWildcard) openDomain() bool {
	return len(sw.allCtors) == 1 && sw.allCtors[0].kind == ctorNonExhaustive
}

// fields is the wildcard-filled argument list of one constructor
// application. It decomposes a row's head into sub-columns and, in
// reverse, folds sub-columns back into one value pattern.
type fields struct {
	pats []pat.ID
}

// wildcards builds the fields template for c at the column type,
// allocating one fresh wildcard per field.
func wildcards(pcx patCtxt, c constructor) fields {
	var tys []types.Type
	switch c.kind {
	case ctorSingle:
		switch ty := pcx.ty.(type) {
		case *types.Tuple:
			tys = ty.Elems
		case *types.Struct:
			for _, f := range ty.Fields {
				tys = append(tys, f.Type)
			}
		default:
			panic(fmt.Sprintf("internal error: single constructor over %s", pcx.ty))
		}
	case ctorVariant:
		e, ok := pcx.ty.(*types.Enum)
		if !ok {
			panic(fmt.Sprintf("internal error: variant constructor over %s", pcx.ty))
		}
		tys = e.Variants[c.variant].Payload
	default:
		// Literals and pseudo-constructors carry no fields.
	}
	f := fields{pats: make([]pat.ID, len(tys))}
	for i, ty := range tys {
		f.pats[i] = pcx.cx.Store.Wildcard(ty)
	}
	return f
}

func (f fields) arity() int {
	return len(f.pats)
}

// withPatternArgs returns the fields of head, using the wildcard
// template for heads that carry no arguments of their own.
func (f fields) withPatternArgs(cx *Ctx, head pat.ID) fields {
	p := cx.Store.Get(head)
	switch k := p.Kind.(type) {
	case pat.Ctor:
		if len(k.Args) != len(f.pats) {
			panic(fmt.Sprintf("internal error: constructor pattern has %d arguments, expected %d", len(k.Args), len(f.pats)))
		}
		return fields{pats: append([]pat.ID(nil), k.Args...)}
	case pat.Wild, pat.Binding, pat.Lit:
		return f
	default:
		panic(fmt.Sprintf("internal error: cannot decompose pattern kind %T", p.Kind))
	}
}

// replace allocates the given patterns as this constructor's fields.
func (f fields) replace(cx *Ctx, newPats []pat.Pat) fields {
	out := fields{pats: make([]pat.ID, len(newPats))}
	for i, p := range newPats {
		out.pats[i] = cx.Store.Alloc(p)
	}
	return out
}

// apply reconstructs the value pattern built by c from these fields.
// This is the inverse of specialization's head decomposition.
func (f fields) apply(pcx patCtxt, c constructor) pat.Pat {
	switch c.kind {
	case ctorSingle:
		return pat.Pat{Ty: pcx.ty, Kind: pat.Ctor{Variant: -1, Args: append([]pat.ID(nil), f.pats...)}}
	case ctorVariant:
		return pat.Pat{Ty: pcx.ty, Kind: pat.Ctor{Variant: c.variant, Args: append([]pat.ID(nil), f.pats...)}}
	case ctorLit:
		return pat.Pat{Ty: pcx.ty, Kind: pat.Lit{Value: c.lit}}
	case ctorWildcard, ctorMissing, ctorNonExhaustive:
		return pat.Pat{Ty: pcx.ty, Kind: pat.Wild{}}
	default:
		panic(fmt.Sprintf("internal error: cannot apply constructor kind %d", c.kind))
	}
}
