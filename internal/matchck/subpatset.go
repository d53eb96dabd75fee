package matchck

import (
	"fmt"
	"sort"

	"github.com/malphas-lang/matchck/internal/pat"
)

// subPatSet is a compact, union-composable approximation of which
// leaves of a (possibly or-nested) pattern are reachable. Without
// or-patterns it is always Empty (the whole pattern is unreachable) or
// Full (the whole pattern is reachable); or-patterns introduce the
// partial cases. We keep the smallest representation we can: a set
// that is full is represented as spFull, and same for empty.
type subPatSet interface {
	isEmpty() bool
	isFull() bool
	subPatSet()
}

// spEmpty is the empty set: the pattern is unreachable.
type spEmpty struct{}

func (spEmpty) isEmpty() bool { return true }
func (spEmpty) isFull() bool  { return false }
func (spEmpty) subPatSet()    {}

// spFull is the set containing the whole pattern.
type spFull struct{}

func (spFull) isEmpty() bool { return false }
func (spFull) isFull() bool  { return true }
func (spFull) subPatSet()    {}

// spSeq tracks one set per subpattern of a constructor application or
// pattern stack. Missing entries are implicitly full, because that is
// the common case.
type spSeq struct {
	subs map[int]subPatSet
}

// A sequence is unreachable as soon as any of its parts is.
func (s spSeq) isEmpty() bool {
	for _, sub := range s.subs {
		if sub.isEmpty() {
			return true
		}
	}
	return false
}

func (s spSeq) isFull() bool {
	for _, sub := range s.subs {
		if !sub.isFull() {
			return false
		}
	}
	return true
}

func (spSeq) subPatSet() {}

// spAlt tracks one set per alternative of an or-pattern. Missing
// entries are implicitly empty. Nested or-patterns are always
// flattened, so altCount counts the flat leaves of source.
type spAlt struct {
	subs     map[int]subPatSet
	altCount int
	// source is kept around so unreachable leaves can be rederived.
	source pat.ID
}

// An or-pattern is reachable if any of its alternatives is.
func (s spAlt) isEmpty() bool {
	for _, sub := range s.subs {
		if !sub.isEmpty() {
			return false
		}
	}
	return true
}

func (s spAlt) isFull() bool {
	if len(s.subs) != s.altCount {
		return false
	}
	for _, sub := range s.subs {
		if !sub.isFull() {
			return false
		}
	}
	return true
}

func (spAlt) subPatSet() {}

// union combines the reachable-leaf sets of two branches. Full absorbs
// and Empty is the identity; the result is normalized back to spFull
// when the childwise union saturates.
func union(a, b subPatSet) subPatSet {
	if a.isFull() || b.isEmpty() {
		return a
	}
	if a.isEmpty() {
		return b
	}
	if b.isFull() {
		return spFull{}
	}

	var out subPatSet
	switch as := a.(type) {
	case spSeq:
		bs, ok := b.(spSeq)
		if !ok {
			panic("internal error: cannot union sequence and alternative sets")
		}
		subs := make(map[int]subPatSet)
		for i, av := range as.subs {
			bv, present := bs.subs[i]
			if !present {
				bv = spFull{} // missing entries count as full
			}
			if u := union(av, bv); !u.isFull() {
				subs[i] = u // full entries are dropped
			}
		}
		// Entries only in b union with an implicit full, so they drop too.
		out = spSeq{subs: subs}
	case spAlt:
		bs, ok := b.(spAlt)
		if !ok {
			panic("internal error: cannot union alternative and sequence sets")
		}
		subs := make(map[int]subPatSet)
		for i, av := range as.subs {
			bv, present := bs.subs[i]
			if !present {
				bv = spEmpty{} // missing entries count as empty
			}
			if u := union(av, bv); !u.isEmpty() {
				subs[i] = u // empty entries are dropped
			}
		}
		// Entries only in b union with an implicit empty: keep as is.
		for i, bv := range bs.subs {
			if _, present := as.subs[i]; !present && !bv.isEmpty() {
				subs[i] = bv
			}
		}
		out = spAlt{subs: subs, altCount: as.altCount, source: as.source}
	default:
		panic(fmt.Sprintf("internal error: cannot union set %T", a))
	}

	if out.isFull() {
		return spFull{}
	}
	return out
}

// unspecialize undoes one specialization step: the first arity indices
// of a row set are regrouped under a single index 0 (the original head
// column) and the remaining indices shift down by arity-1.
func unspecialize(s subPatSet, arity int) subPatSet {
	switch set := s.(type) {
	case spEmpty, spFull:
		return s
	case spSeq:
		subs := make(map[int]subPatSet)
		firstCol := make(map[int]subPatSet)
		for i, sub := range set.subs {
			if i < arity {
				firstCol[i] = sub
			} else {
				subs[i-arity+1] = sub
			}
		}
		// An empty child map counts as full, so it can be omitted.
		if len(firstCol) > 0 {
			subs[0] = spSeq{subs: firstCol}
		}
		return spSeq{subs: subs}
	default:
		panic("internal error: cannot unspecialize an alternative set")
	}
}

// unsplitOrPat wraps the result for one or-pattern leaf as "leaf altID
// of altCount belonging to source", nested at column 0 beneath whatever
// already describes the rest of the row.
func unsplitOrPat(s subPatSet, altID, altCount int, source pat.ID) subPatSet {
	if s.isEmpty() {
		return spEmpty{}
	}

	var inAlt subPatSet
	rest := make(map[int]subPatSet)
	switch set := s.(type) {
	case spFull:
		inAlt = spFull{}
	case spSeq:
		inAlt = subPatSet(spFull{})
		if sub, present := set.subs[0]; present {
			inAlt = sub
		}
		for i, sub := range set.subs {
			if i != 0 {
				rest[i] = sub
			}
		}
	default:
		panic(fmt.Sprintf("internal error: cannot fold set %T under an or-pattern", s))
	}

	rest[0] = spAlt{
		subs:     map[int]subPatSet{altID: inAlt},
		altCount: altCount,
		source:   source,
	}
	return spSeq{subs: rest}
}

// listUnreachableLeaves walks a non-empty set and collects the
// or-pattern leaves whose set is empty: reachable arms whose listed
// alternatives can never match. The alternative list of each spAlt is
// rederived from its source pattern, which expands to the same count
// and order every time.
func listUnreachableLeaves(cx *Ctx, s subPatSet) []pat.ID {
	if s.isEmpty() {
		panic("internal error: whole pattern is unreachable, not a leaf listing")
	}
	if s.isFull() {
		return nil
	}

	var leaves []pat.ID
	var fill func(s subPatSet)
	fill = func(s subPatSet) {
		switch set := s.(type) {
		case spEmpty:
			panic("internal error: empty set below a reachable pattern")
		case spFull:
		case spSeq:
			for _, i := range sortedKeys(set.subs) {
				fill(set.subs[i])
			}
		case spAlt:
			expanded := expandOrPat(cx.Store, set.source)
			if len(expanded) != set.altCount {
				panic(fmt.Sprintf("internal error: or-pattern re-expanded to %d leaves, recorded %d", len(expanded), set.altCount))
			}
			for i := 0; i < set.altCount; i++ {
				sub, present := set.subs[i]
				if !present {
					sub = spEmpty{}
				}
				if sub.isEmpty() {
					leaves = append(leaves, expanded[i])
				} else {
					fill(sub)
				}
			}
		}
	}
	fill(s)
	return leaves
}

func sortedKeys(m map[int]subPatSet) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
