package matchck

import (
	"github.com/malphas-lang/matchck/internal/pat"
)

// patStack is one row of the matrix: the columns still to examine for
// one already-handled value (or for the query). Rows are immutable
// once built.
type patStack struct {
	pats []pat.ID
	// headCtor caches the decomposed head constructor; computed at
	// most once, which is safe since rows never change.
	headCtor *constructor
}

func stackFromPattern(p pat.ID) *patStack {
	return &patStack{pats: []pat.ID{p}}
}

func (v *patStack) isEmpty() bool {
	return len(v.pats) == 0
}

func (v *patStack) len() int {
	return len(v.pats)
}

func (v *patStack) head() pat.ID {
	return v.pats[0]
}

func (v *patStack) headConstructor(cx *Ctx) constructor {
	if v.headCtor == nil {
		c := ctorForPat(cx, v.head())
		v.headCtor = &c
	}
	return *v.headCtor
}

// expandOrPat splits a row whose head is an or-pattern into one sibling
// row per alternative leaf, all sharing the tail columns.
func (v *patStack) expandOrPat(cx *Ctx) []*patStack {
	leaves := expandOrPat(cx.Store, v.head())
	out := make([]*patStack, len(leaves))
	for i, leaf := range leaves {
		pats := make([]pat.ID, 0, len(v.pats))
		pats = append(pats, leaf)
		pats = append(pats, v.pats[1:]...)
		out[i] = &patStack{pats: pats}
	}
	return out
}

// popHeadConstructor replaces the head column with the head's arguments
// decomposed against the fields template, leaving trailing columns
// untouched. Inverse of fields.apply.
func (v *patStack) popHeadConstructor(cx *Ctx, f fields) *patStack {
	args := f.withPatternArgs(cx, v.head())
	pats := make([]pat.ID, 0, args.arity()+len(v.pats)-1)
	pats = append(pats, args.pats...)
	pats = append(pats, v.pats[1:]...)
	return &patStack{pats: pats}
}

// isOrPat reports whether the stored pattern is an alternation.
func isOrPat(cx *Ctx, id pat.ID) bool {
	_, ok := cx.Store.Get(id).Kind.(pat.Or)
	return ok
}

// expandOrPat recursively flattens an or-pattern into its leaves, left
// to right, materializing a fresh store entry per alternative so rows
// never alias each other's nodes. Re-expanding the same pattern always
// yields the same count and order; the unreachable-leaf listing relies
// on that to rederive this list independently.
func expandOrPat(s *pat.Store, id pat.ID) []pat.ID {
	var leaves []pat.ID
	var expand func(id pat.ID)
	expand = func(id pat.ID) {
		p := s.Get(id)
		if or, ok := p.Kind.(pat.Or); ok {
			for _, alt := range or.Alts {
				expand(s.Alloc(s.Get(alt)))
			}
			return
		}
		leaves = append(leaves, id)
	}
	expand(id)
	return leaves
}

// matrix holds the rows for the values already handled by earlier
// alternatives. All rows of a non-empty matrix have the same width.
type matrix struct {
	rows []*patStack
}

func (m *matrix) clone() *matrix {
	return &matrix{rows: append([]*patStack(nil), m.rows...)}
}

// push appends a row, flattening an or-pattern head into one row per
// leaf; the matrix never stores or-pattern heads.
func (m *matrix) push(cx *Ctx, row *patStack) {
	if !row.isEmpty() && isOrPat(cx, row.head()) {
		m.rows = append(m.rows, row.expandOrPat(cx)...)
		return
	}
	m.rows = append(m.rows, row)
}

// headCtors returns the head constructor of every row.
func (m *matrix) headCtors(cx *Ctx) []constructor {
	out := make([]constructor, 0, len(m.rows))
	for _, r := range m.rows {
		out = append(out, r.headConstructor(cx))
	}
	return out
}

// specialize keeps the rows whose head covers c and decomposes their
// heads into c's fields. Rejected rows are dropped.
func (m *matrix) specialize(pcx patCtxt, c constructor, f fields) *matrix {
	spec := &matrix{}
	for _, row := range m.rows {
		if c.coveredBy(row.headConstructor(pcx.cx)) {
			spec.push(pcx.cx, row.popHeadConstructor(pcx.cx, f))
		}
	}
	return spec
}
