package matchck

import (
	"reflect"
	"testing"

	"github.com/malphas-lang/matchck/internal/pat"
	"github.com/malphas-lang/matchck/internal/types"
)

func TestMatrixPushFlattensOrHead(t *testing.T) {
	cx := testCtx()
	or := allocOr(cx, types.TypeBool, allocBool(cx, true), allocBool(cx, false))

	m := &matrix{}
	m.push(cx, stackFromPattern(or))
	if len(m.rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(m.rows))
	}
	for i, row := range m.rows {
		if isOrPat(cx, row.head()) {
			t.Fatalf("row %d still has an or-pattern head", i)
		}
	}
	want := []string{"true", "false"}
	for i, row := range m.rows {
		if got := cx.Store.Pretty(row.head()); got != want[i] {
			t.Fatalf("row %d: expected %s, got %s", i, want[i], got)
		}
	}
}

func TestExpandOrPatDeterministic(t *testing.T) {
	cx := testCtx()
	inner := allocOr(cx, types.TypeInt, allocInt(cx, 1), allocInt(cx, 2))
	outer := allocOr(cx, types.TypeInt, inner, allocInt(cx, 3))

	first := expandOrPat(cx.Store, outer)
	second := expandOrPat(cx.Store, outer)

	want := []string{"1", "2", "3"}
	if got := leafStrings(cx, first); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected leaves %v, got %v", want, got)
	}
	if got := leafStrings(cx, second); !reflect.DeepEqual(got, want) {
		t.Fatalf("re-expansion: expected leaves %v, got %v", want, got)
	}
	// Each expansion materializes fresh store entries.
	for i := range first {
		if first[i] == second[i] {
			t.Fatalf("leaf %d: expected distinct allocations, both are %d", i, first[i])
		}
	}
}

func TestSpecializeFiltersAndDecomposes(t *testing.T) {
	cx := testCtx()
	opt := optionEnum(types.TypeInt)
	pcx := patCtxt{cx: cx, ty: opt}

	m := &matrix{}
	m.push(cx, stackFromPattern(allocVariant(cx, opt, 1, allocInt(cx, 0))))
	m.push(cx, stackFromPattern(allocVariant(cx, opt, 0)))
	m.push(cx, stackFromPattern(allocWild(cx, opt)))

	some := constructor{kind: ctorVariant, variant: 1}
	spec := m.specialize(pcx, some, wildcards(pcx, some))

	// Some(0) and the wildcard survive; None is dropped.
	if len(spec.rows) != 2 {
		t.Fatalf("expected 2 specialized rows, got %d", len(spec.rows))
	}
	want := []string{"0", "_"}
	for i, row := range spec.rows {
		if row.len() != 1 {
			t.Fatalf("row %d: expected width 1, got %d", i, row.len())
		}
		if got := cx.Store.Pretty(row.head()); got != want[i] {
			t.Fatalf("row %d: expected %s, got %s", i, want[i], got)
		}
	}
}

func TestPopHeadConstructorKeepsTail(t *testing.T) {
	cx := testCtx()
	opt := optionEnum(types.TypeInt)
	pcx := patCtxt{cx: cx, ty: opt}

	tail := allocBool(cx, true)
	row := &patStack{pats: []pat.ID{allocVariant(cx, opt, 1, allocInt(cx, 7)), tail}}

	some := constructor{kind: ctorVariant, variant: 1}
	popped := row.popHeadConstructor(cx, wildcards(pcx, some))
	if popped.len() != 2 {
		t.Fatalf("expected width 2, got %d", popped.len())
	}
	if got := cx.Store.Pretty(popped.head()); got != "7" {
		t.Fatalf("expected decomposed head 7, got %s", got)
	}
	if popped.pats[1] != tail {
		t.Fatalf("expected the tail column to be preserved")
	}
}

func TestHeadConstructorMemoized(t *testing.T) {
	cx := testCtx()
	row := stackFromPattern(allocBool(cx, true))
	first := row.headConstructor(cx)
	second := row.headConstructor(cx)
	if first != second {
		t.Fatalf("memoized head constructor changed: %v then %v", first, second)
	}
	if first.kind != ctorLit || first.lit != pat.BoolValue(true) {
		t.Fatalf("unexpected head constructor %v", first)
	}
}
