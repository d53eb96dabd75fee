package pat

import (
	"fmt"

	"github.com/malphas-lang/matchck/internal/types"
)

// Store is an append-only arena of pattern nodes. One Store is shared
// between the caller that lowers the match arms and the analysis, which
// appends synthesized nodes (or-pattern leaves, the exhaustiveness
// probe) to it.
type Store struct {
	pats []Pat
}

// NewStore creates an empty pattern store.
func NewStore() *Store {
	return &Store{}
}

// Alloc appends a pattern node and returns its ID.
func (s *Store) Alloc(p Pat) ID {
	s.pats = append(s.pats, p)
	return ID(len(s.pats) - 1)
}

// Get returns the pattern node for id. Nodes are immutable; a copy is
// returned.
func (s *Store) Get(id ID) Pat {
	if id < 0 || int(id) >= len(s.pats) {
		panic(fmt.Sprintf("internal error: pattern id %d out of range (store has %d)", id, len(s.pats)))
	}
	return s.pats[id]
}

// Len returns the number of stored nodes.
func (s *Store) Len() int {
	return len(s.pats)
}

// Wildcard allocates a fresh wildcard of the given type.
func (s *Store) Wildcard(ty types.Type) ID {
	return s.Alloc(Pat{Ty: ty, Kind: Wild{}})
}

// ExpandBindings returns a pattern equivalent to id for matching
// purposes, with every `name @ sub` binding replaced by sub. Plain
// bindings stay as they are (they match like wildcards). The input is
// returned unchanged when it contains no such bindings; otherwise the
// rewritten spine is freshly allocated and shares untouched subtrees.
func (s *Store) ExpandBindings(id ID) ID {
	p := s.Get(id)
	switch k := p.Kind.(type) {
	case Binding:
		if k.Sub != NoPat {
			return s.ExpandBindings(k.Sub)
		}
		return id
	case Ctor:
		args, changed := s.expandBindingsAll(k.Args)
		if !changed {
			return id
		}
		return s.Alloc(Pat{Ty: p.Ty, Span: p.Span, Kind: Ctor{Variant: k.Variant, Args: args}})
	case Or:
		alts, changed := s.expandBindingsAll(k.Alts)
		if !changed {
			return id
		}
		return s.Alloc(Pat{Ty: p.Ty, Span: p.Span, Kind: Or{Alts: alts}})
	default:
		return id
	}
}

func (s *Store) expandBindingsAll(ids []ID) ([]ID, bool) {
	changed := false
	out := make([]ID, len(ids))
	for i, id := range ids {
		out[i] = s.ExpandBindings(id)
		if out[i] != id {
			changed = true
		}
	}
	return out, changed
}
