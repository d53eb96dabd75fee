package matchck

import (
	"reflect"
	"testing"

	"github.com/malphas-lang/matchck/internal/types"
)

// altMarker builds a partial alternative set that is neither empty nor
// full, handy as an opaque non-trivial child in shape tests.
func altMarker(altCount int) spAlt {
	return spAlt{subs: map[int]subPatSet{0: spFull{}}, altCount: altCount}
}

func TestSubPatSetDefaults(t *testing.T) {
	if !(spSeq{subs: map[int]subPatSet{}}).isFull() {
		t.Fatal("a sequence with no recorded children must be full")
	}
	if !(spAlt{subs: map[int]subPatSet{}, altCount: 2}).isEmpty() {
		t.Fatal("an alternative set with no recorded children must be empty")
	}
	if (spSeq{subs: map[int]subPatSet{0: spEmpty{}}}).isFull() {
		t.Fatal("a sequence with an empty child is not full")
	}
	if !(spSeq{subs: map[int]subPatSet{0: spEmpty{}}}).isEmpty() {
		t.Fatal("a sequence with an empty child is empty")
	}
}

func TestUnionIdentityAndAbsorption(t *testing.T) {
	partial := subPatSet(spSeq{subs: map[int]subPatSet{0: altMarker(2)}})

	if got := union(spEmpty{}, partial); !reflect.DeepEqual(got, partial) {
		t.Fatalf("empty ∪ s = s, got %#v", got)
	}
	if got := union(partial, spEmpty{}); !reflect.DeepEqual(got, partial) {
		t.Fatalf("s ∪ empty = s, got %#v", got)
	}
	if got := union(spFull{}, partial); !got.isFull() {
		t.Fatalf("full ∪ s = full, got %#v", got)
	}
	if got := union(partial, spFull{}); !got.isFull() {
		t.Fatalf("s ∪ full = full, got %#v", got)
	}
}

func TestUnionSeqSaturates(t *testing.T) {
	a := spSeq{subs: map[int]subPatSet{0: altMarker(2)}}
	b := spSeq{subs: map[int]subPatSet{0: spAlt{subs: map[int]subPatSet{1: spFull{}}, altCount: 2}}}

	// The two halves cover both alternatives of the child, so the
	// union collapses to full.
	if got := union(a, b); !got.isFull() {
		t.Fatalf("expected saturated union to normalize to full, got %#v", got)
	}
}

func TestUnionAltMergesChildren(t *testing.T) {
	mk := func(i int) spAlt {
		return spAlt{subs: map[int]subPatSet{i: spFull{}}, altCount: 3}
	}
	got := union(mk(0), mk(1))
	alt, ok := got.(spAlt)
	if !ok {
		t.Fatalf("expected an alternative set, got %#v", got)
	}
	if len(alt.subs) != 2 || !alt.subs[0].isFull() || !alt.subs[1].isFull() {
		t.Fatalf("expected alternatives 0 and 1 full, got %#v", alt.subs)
	}
	if got := union(alt, mk(2)); !got.isFull() {
		t.Fatalf("expected all three alternatives to saturate to full, got %#v", got)
	}
}

func TestUnionOrderIndependentLeaves(t *testing.T) {
	cx := testCtx()
	or := allocOr(cx, types.TypeInt,
		allocInt(cx, 1), allocInt(cx, 2), allocInt(cx, 3))

	mk := func(i int) subPatSet {
		return spSeq{subs: map[int]subPatSet{
			0: spAlt{subs: map[int]subPatSet{i: spFull{}}, altCount: 3, source: or},
		}}
	}

	ab := union(mk(0), mk(1))
	ba := union(mk(1), mk(0))
	want := []string{"3"}
	if got := leafStrings(cx, listUnreachableLeaves(cx, ab)); !reflect.DeepEqual(got, want) {
		t.Fatalf("a∪b: expected leaves %v, got %v", want, got)
	}
	if got := leafStrings(cx, listUnreachableLeaves(cx, ba)); !reflect.DeepEqual(got, want) {
		t.Fatalf("b∪a: expected leaves %v, got %v", want, got)
	}
}

func TestUnspecializeRegroupsColumns(t *testing.T) {
	s := spSeq{subs: map[int]subPatSet{
		0: altMarker(2),
		1: altMarker(3),
		2: altMarker(4),
	}}
	want := spSeq{subs: map[int]subPatSet{
		0: spSeq{subs: map[int]subPatSet{0: altMarker(2), 1: altMarker(3)}},
		1: altMarker(4),
	}}
	if got := unspecialize(s, 2); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %#v, got %#v", want, got)
	}

	if got := unspecialize(subPatSet(spFull{}), 2); !got.isFull() {
		t.Fatalf("unspecializing full must stay full, got %#v", got)
	}
}

func TestUnspecializeNullaryHead(t *testing.T) {
	// With arity 0 every column shifts up by one and no head group is
	// recorded; the implicit entry at index 0 counts as full.
	s := spSeq{subs: map[int]subPatSet{0: altMarker(2)}}
	want := spSeq{subs: map[int]subPatSet{1: altMarker(2)}}
	if got := unspecialize(s, 0); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %#v, got %#v", want, got)
	}
}

func TestUnsplitOrPatShapes(t *testing.T) {
	cx := testCtx()
	src := allocOr(cx, types.TypeBool, allocBool(cx, true), allocBool(cx, false))

	got := unsplitOrPat(spFull{}, 1, 2, src)
	want := subPatSet(spSeq{subs: map[int]subPatSet{
		0: spAlt{subs: map[int]subPatSet{1: spFull{}}, altCount: 2, source: src},
	}})
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("full: expected %#v, got %#v", want, got)
	}

	in := spSeq{subs: map[int]subPatSet{0: altMarker(2), 1: altMarker(3)}}
	got = unsplitOrPat(in, 0, 2, src)
	want = spSeq{subs: map[int]subPatSet{
		0: spAlt{subs: map[int]subPatSet{0: altMarker(2)}, altCount: 2, source: src},
		1: altMarker(3),
	}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("seq: expected %#v, got %#v", want, got)
	}

	if got := unsplitOrPat(spEmpty{}, 0, 2, src); !got.isEmpty() {
		t.Fatalf("empty stays empty, got %#v", got)
	}
}

func TestListUnreachableLeavesFull(t *testing.T) {
	cx := testCtx()
	if leaves := listUnreachableLeaves(cx, spFull{}); leaves != nil {
		t.Fatalf("full set has no unreachable leaves, got %v", leafStrings(cx, leaves))
	}
}
