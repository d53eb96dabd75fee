// Command matchck runs the match usefulness analysis over a handful of
// built-in example matches and prints the resulting diagnostics. It
// exists to exercise the library end to end; real consumers call
// matchck.ComputeMatchUsefulness from the type checker.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/malphas-lang/matchck/internal/diag"
	"github.com/malphas-lang/matchck/internal/matchck"
	"github.com/malphas-lang/matchck/internal/pat"
	"github.com/malphas-lang/matchck/internal/types"
)

type example struct {
	name  string
	check func() (*matchck.Ctx, matchck.UsefulnessReport)
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: matchck [example]\n")
		fmt.Fprintf(os.Stderr, "\nRuns the built-in example matches (all of them by default):\n")
		for _, ex := range examples {
			fmt.Fprintf(os.Stderr, "  %s\n", ex.name)
		}
	}
	flag.Parse()

	only := ""
	if flag.NArg() > 0 {
		only = flag.Arg(0)
	}

	formatter := diag.NewFormatter()
	ran := false
	for _, ex := range examples {
		if only != "" && ex.name != only {
			continue
		}
		ran = true
		fmt.Printf("== %s ==\n", ex.name)
		cx, report := ex.check()
		diags := report.Diagnostics(cx, diag.Span{Filename: ex.name, Line: 1, Column: 1})
		if len(diags) == 0 {
			fmt.Println("exhaustive, all arms reachable")
		}
		for _, d := range diags {
			formatter.Format(d)
		}
		fmt.Println()
	}
	if !ran {
		fmt.Fprintf(os.Stderr, "Unknown example: %s\n", only)
		flag.Usage()
		os.Exit(1)
	}
}

var examples = []example{
	{name: "shape-missing-variant", check: shapeMissingVariant},
	{name: "bool-pair-redundant-or", check: boolPairRedundantOr},
	{name: "option-exhaustive", check: optionExhaustive},
}

// match s { Circle(_) => ..., Square(_) => ... } over a three-variant
// Shape enum: non-exhaustive, Triangle is the witness.
func shapeMissingVariant() (*matchck.Ctx, matchck.UsefulnessReport) {
	cx := &matchck.Ctx{Store: pat.NewStore()}
	shape := &types.Enum{
		Name: "Shape",
		Variants: []types.Variant{
			{Name: "Circle", Payload: []types.Type{types.TypeInt}},
			{Name: "Square", Payload: []types.Type{types.TypeInt}},
			{Name: "Triangle", Payload: []types.Type{types.TypeInt, types.TypeInt}},
		},
	}
	arms := []matchck.MatchArm{
		{Pat: variantPat(cx, shape, 0, cx.Store.Wildcard(types.TypeInt))},
		{Pat: variantPat(cx, shape, 1, cx.Store.Wildcard(types.TypeInt))},
	}
	return cx, matchck.ComputeMatchUsefulness(cx, shape, arms)
}

// match p { (true, _) => ..., (_, true) => ..., (true, true) | (false, false) => ... }
// over (bool, bool): exhaustive, but the (true, true) alternative of
// the last arm can never match.
func boolPairRedundantOr() (*matchck.Ctx, matchck.UsefulnessReport) {
	cx := &matchck.Ctx{Store: pat.NewStore()}
	pair := &types.Tuple{Elems: []types.Type{types.TypeBool, types.TypeBool}}
	tuple := func(a, b pat.ID) pat.ID {
		return cx.Store.Alloc(pat.Pat{Ty: pair, Kind: pat.Ctor{Variant: -1, Args: []pat.ID{a, b}}})
	}
	lit := func(b bool) pat.ID {
		return cx.Store.Alloc(pat.Pat{Ty: types.TypeBool, Kind: pat.Lit{Value: pat.BoolValue(b)}})
	}
	or := cx.Store.Alloc(pat.Pat{Ty: pair, Kind: pat.Or{
		Alts: []pat.ID{tuple(lit(true), lit(true)), tuple(lit(false), lit(false))},
	}})
	arms := []matchck.MatchArm{
		{Pat: tuple(lit(true), cx.Store.Wildcard(types.TypeBool))},
		{Pat: tuple(cx.Store.Wildcard(types.TypeBool), lit(true))},
		{Pat: or},
	}
	return cx, matchck.ComputeMatchUsefulness(cx, pair, arms)
}

// match o { None => ..., Some(x) => ... } over Option<int>: clean.
func optionExhaustive() (*matchck.Ctx, matchck.UsefulnessReport) {
	cx := &matchck.Ctx{Store: pat.NewStore()}
	opt := &types.Enum{
		Name: "Option",
		Variants: []types.Variant{
			{Name: "None"},
			{Name: "Some", Payload: []types.Type{types.TypeInt}},
		},
	}
	bound := cx.Store.Alloc(pat.Pat{Ty: types.TypeInt, Kind: pat.Binding{Name: "x", Sub: pat.NoPat}})
	arms := []matchck.MatchArm{
		{Pat: variantPat(cx, opt, 0)},
		{Pat: variantPat(cx, opt, 1, bound)},
	}
	return cx, matchck.ComputeMatchUsefulness(cx, opt, arms)
}

func variantPat(cx *matchck.Ctx, e *types.Enum, variant int, args ...pat.ID) pat.ID {
	return cx.Store.Alloc(pat.Pat{Ty: e, Kind: pat.Ctor{Variant: variant, Args: args}})
}
