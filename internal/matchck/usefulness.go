// Package matchck decides whether a match construct is exhaustive and
// which of its arms are reachable, down to individual or-pattern
// alternatives. It implements the classical usefulness decision
// procedure (Maranget, "Warnings for pattern matching"), with the
// corrections needed for possibly-empty types: a query row is useful
// against a matrix when some value matches the row but none of the
// matrix rows, computed by specializing both along the constructors of
// the head column and recursing.
package matchck

import (
	"fmt"

	"github.com/malphas-lang/matchck/internal/pat"
	"github.com/malphas-lang/matchck/internal/types"
)

// Ctx carries the shared state for one match analysis.
type Ctx struct {
	// Store holds the lowered patterns of the match, plus the nodes the
	// analysis itself synthesizes: or-pattern leaves and the final
	// exhaustiveness probe. The caller owns it for the duration.
	Store *pat.Store
	// IsUninhabited reports whether a type provably has no values. Nil
	// selects the conservative default: nothing is provably empty.
	IsUninhabited func(types.Type) bool
}

// SupportsEmptyTypes reports whether a real inhabitedness oracle is
// wired in. Without one, matches over provably-empty types are
// analyzed as if those types were inhabited.
func (cx *Ctx) SupportsEmptyTypes() bool {
	return cx.IsUninhabited != nil
}

func (cx *Ctx) isUninhabited(ty types.Type) bool {
	return cx.IsUninhabited != nil && cx.IsUninhabited(ty)
}

// patCtxt describes the column currently under investigation.
type patCtxt struct {
	cx *Ctx
	// ty is the type of the column.
	ty types.Type
	// isTopLevel is set only for the whole pattern of a match arm, not
	// for subpatterns.
	isTopLevel bool
}

// witnessPreference selects which result shape a usefulness query
// produces. It is fixed once per top-level query and never mixed
// mid-recursion.
type witnessPreference int

const (
	constructWitness witnessPreference = iota
	leaveOutWitness
)

// usefulness carries the result of one usefulness computation: either a
// reachability set (reachability queries) or a witness list
// (exhaustiveness queries). Combining results of different shapes is an
// internal fault, never a silent coercion.
type usefulness interface {
	usefulnessResult()
}

// noWitnesses carries the set of subpatterns found reachable. Empty
// means the whole pattern is unreachable; anything between empty and
// full means some or-pattern alternatives are dead.
type noWitnesses struct {
	set subPatSet
}

func (noWitnesses) usefulnessResult() {}

// withWitnesses carries witnesses of non-exhaustiveness. An empty list
// means the query row is not useful.
type withWitnesses struct {
	witnesses []witness
}

func (withWitnesses) usefulnessResult() {}

func newUseful(pref witnessPreference) usefulness {
	if pref == constructWitness {
		return withWitnesses{witnesses: []witness{{}}}
	}
	return noWitnesses{set: spFull{}}
}

func newNotUseful(pref witnessPreference) usefulness {
	if pref == constructWitness {
		return withWitnesses{}
	}
	return noWitnesses{set: spEmpty{}}
}

// extendUsefulness combines the results of two branches: union for
// reachability sets, concatenation for witness lists. Associative.
func extendUsefulness(a, b usefulness) usefulness {
	switch as := a.(type) {
	case withWitnesses:
		bs, ok := b.(withWitnesses)
		if !ok {
			panic("internal error: merging witness and reachability results")
		}
		if len(bs.witnesses) == 0 {
			return a
		}
		if len(as.witnesses) == 0 {
			return b
		}
		merged := make([]witness, 0, len(as.witnesses)+len(bs.witnesses))
		merged = append(merged, as.witnesses...)
		merged = append(merged, bs.witnesses...)
		return withWitnesses{witnesses: merged}
	case noWitnesses:
		bs, ok := b.(noWitnesses)
		if !ok {
			panic("internal error: merging reachability and witness results")
		}
		return noWitnesses{set: union(as.set, bs.set)}
	default:
		panic(fmt.Sprintf("internal error: unknown usefulness %T", a))
	}
}

// fullReachability reports whether a reachability accumulator has
// saturated; further unions cannot change it.
func fullReachability(u usefulness) bool {
	n, ok := u.(noWitnesses)
	return ok && n.set.isFull()
}

// unsplitOrPatUsefulness folds a per-leaf result back under
// "alternative altID of altCount belonging to source". Only meaningful
// for reachability results; the exhaustiveness probe is never an
// or-pattern.
func unsplitOrPatUsefulness(u usefulness, altID, altCount int, source pat.ID) usefulness {
	n, ok := u.(noWitnesses)
	if !ok {
		panic("internal error: or-pattern reconciliation in witness mode")
	}
	return noWitnesses{set: unsplitOrPat(n.set, altID, altCount, source)}
}

// applyConstructorUsefulness undoes one specialization step so the
// result can be merged with the other constructors' results. m is the
// matrix before specialization.
func applyConstructorUsefulness(u usefulness, pcx patCtxt, m *matrix, c constructor, f fields) usefulness {
	switch res := u.(type) {
	case withWitnesses:
		if len(res.witnesses) == 0 {
			return res
		}
		if c.kind == ctorMissing {
			// Any constructor absent from the matrix independently
			// proves non-exhaustiveness: multiply each witness by an
			// all-wildcard value of each missing constructor.
			sw := newSplitWildcard(pcx)
			sw.split(m.headCtors(pcx.cx))
			var newPats []pat.Pat
			for _, missing := range sw.missing() {
				newPats = append(newPats, wildcards(pcx, missing).apply(pcx, missing))
			}
			var out []witness
			for _, w := range res.witnesses {
				for _, p := range newPats {
					pats := make([]pat.Pat, 0, len(w.pats)+1)
					pats = append(pats, w.pats...)
					pats = append(pats, p)
					out = append(out, witness{pats: pats})
				}
			}
			return withWitnesses{witnesses: out}
		}
		out := make([]witness, 0, len(res.witnesses))
		for _, w := range res.witnesses {
			out = append(out, w.applyConstructor(pcx, c, f))
		}
		return withWitnesses{witnesses: out}
	case noWitnesses:
		return noWitnesses{set: unspecialize(res.set, f.arity())}
	default:
		panic(fmt.Sprintf("internal error: unknown usefulness %T", u))
	}
}

// witness is one counter-example under construction: a list of
// reconstructed pattern trees, built innermost-first as the recursion
// unwinds, collapsed to a single pattern at the top level.
type witness struct {
	pats []pat.Pat
}

// singlePattern returns the witness's only pattern; the driver calls it
// once reconstruction has folded everything back to the scrutinee.
func (w witness) singlePattern() pat.Pat {
	if len(w.pats) != 1 {
		panic(fmt.Sprintf("internal error: witness has %d patterns, expected 1", len(w.pats)))
	}
	return w.pats[0]
}

// applyConstructor pops this constructor's arity worth of trailing
// sub-witnesses (innermost first) and folds them into one reconstructed
// value pattern, pushed back in their place.
func (w witness) applyConstructor(pcx patCtxt, c constructor, f fields) witness {
	arity := f.arity()
	n := len(w.pats)
	if n < arity {
		panic(fmt.Sprintf("internal error: witness has %d patterns, constructor needs %d", n, arity))
	}
	args := make([]pat.Pat, arity)
	for i := 0; i < arity; i++ {
		args[i] = w.pats[n-1-i]
	}
	rebuilt := f.replace(pcx.cx, args).apply(pcx, c)

	pats := make([]pat.Pat, 0, n-arity+1)
	pats = append(pats, w.pats[:n-arity]...)
	pats = append(pats, rebuilt)
	return witness{pats: pats}
}

// isUseful reports whether some value matches v but no row of m.
// isUnderGuard marks arms with a guard; their alternatives are tested
// but never inserted into the growing matrix.
func isUseful(cx *Ctx, m *matrix, v *patStack, pref witnessPreference, isUnderGuard, isTopLevel bool) usefulness {
	// Base case: zero columns left. An empty matrix covers nothing;
	// any non-empty matrix of empty rows already covers the empty
	// tuple.
	if v.isEmpty() {
		if len(m.rows) == 0 {
			return newUseful(pref)
		}
		return newNotUseful(pref)
	}

	for _, row := range m.rows {
		if row.len() != v.len() {
			panic(fmt.Sprintf("internal error: matrix row has %d columns, query has %d", row.len(), v.len()))
		}
	}

	// Prefer a matrix row's type for the column; the query may carry a
	// less precise one.
	ty := cx.Store.Get(v.head()).Ty
	if len(m.rows) > 0 {
		ty = cx.Store.Get(m.rows[0].head()).Ty
	}
	pcx := patCtxt{cx: cx, ty: ty, isTopLevel: isTopLevel}

	if isOrPat(cx, v.head()) {
		source := v.head()
		alts := v.expandOrPat(cx)
		altCount := len(alts)
		// Try each alternative in turn. Tested alternatives are
		// inserted so later ones see earlier siblings as already
		// matched; this is what marks the second branch of
		// `Some(_) | Some(0)` unreachable.
		grown := m.clone()
		ret := newNotUseful(pref)
		for i, alt := range alts {
			u := isUseful(cx, grown, alt, pref, isUnderGuard, false)
			if !isUnderGuard {
				grown.push(cx, alt)
			}
			ret = extendUsefulness(ret, unsplitOrPatUsefulness(u, i, altCount, source))
			if fullReachability(ret) {
				break
			}
		}
		return ret
	}

	vCtor := v.headConstructor(cx)
	splitCtors := vCtor.split(pcx, m.headCtors(cx))
	ret := newNotUseful(pref)
	for _, c := range splitCtors {
		ctorFields := wildcards(pcx, c)
		specMatrix := m.specialize(pcx, c, ctorFields)
		specV := v.popHeadConstructor(cx, ctorFields)
		u := isUseful(cx, specMatrix, specV, pref, isUnderGuard, false)
		ret = extendUsefulness(ret, applyConstructorUsefulness(u, pcx, m, c, ctorFields))
		if fullReachability(ret) {
			break
		}
	}
	return ret
}

// MatchArm is one alternative of a match construct.
type MatchArm struct {
	Pat      pat.ID
	HasGuard bool
}

// Reachability says whether an arm can match values not already matched
// by the arms above it.
type Reachability interface {
	reachability()
}

// Reachable marks an arm that can match. UnreachableLeaves lists the
// or-pattern alternatives inside it that can never match on their own;
// empty for arms without dead alternatives.
type Reachable struct {
	UnreachableLeaves []pat.ID
}

func (Reachable) reachability() {}

// Unreachable marks an arm no value can reach.
type Unreachable struct{}

func (Unreachable) reachability() {}

// ArmUsefulness pairs an input arm with its reachability verdict.
type ArmUsefulness struct {
	Arm          MatchArm
	Reachability Reachability
}

// UsefulnessReport is the output of checking one match construct.
type UsefulnessReport struct {
	// ArmUsefulness holds one verdict per input arm, in input order.
	ArmUsefulness []ArmUsefulness
	// NonExhaustivenessWitnesses is empty exactly when the match is
	// exhaustive; otherwise each entry is a minimal counter-example.
	NonExhaustivenessWitnesses []pat.Pat
}

// ComputeMatchUsefulness checks one match construct: per-arm
// reachability in input order, then exhaustiveness of the whole match
// via one synthetic wildcard probe.
func ComputeMatchUsefulness(cx *Ctx, scrutineeTy types.Type, arms []MatchArm) UsefulnessReport {
	m := &matrix{}
	report := UsefulnessReport{ArmUsefulness: make([]ArmUsefulness, 0, len(arms))}

	for _, arm := range arms {
		v := stackFromPattern(cx.Store.ExpandBindings(arm.Pat))
		u := isUseful(cx, m, v, leaveOutWitness, arm.HasGuard, true)
		// Guarded arms are tested but never inserted: the guard may
		// reject values at runtime, so a later arm can still see them.
		// This deliberately trades completeness of "unreachable" for
		// zero false positives on guarded code.
		if !arm.HasGuard {
			m.push(cx, v)
		}

		res, ok := u.(noWitnesses)
		if !ok {
			panic("internal error: reachability query produced witnesses")
		}
		var r Reachability
		if res.set.isEmpty() {
			r = Unreachable{}
		} else {
			r = Reachable{UnreachableLeaves: listUnreachableLeaves(cx, res.set)}
		}
		report.ArmUsefulness = append(report.ArmUsefulness, ArmUsefulness{Arm: arm, Reachability: r})
	}

	probe := stackFromPattern(cx.Store.Wildcard(scrutineeTy))
	u := isUseful(cx, m, probe, constructWitness, false, true)
	res, ok := u.(withWitnesses)
	if !ok {
		panic("internal error: exhaustiveness probe produced a reachability set")
	}
	for _, w := range res.witnesses {
		report.NonExhaustivenessWitnesses = append(report.NonExhaustivenessWitnesses, w.singlePattern())
	}
	return report
}
