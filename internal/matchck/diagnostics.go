package matchck

import (
	"fmt"
	"strings"

	"github.com/malphas-lang/matchck/internal/diag"
)

// Diagnostics renders the report into user-facing diagnostics:
// unreachable-pattern warnings per arm (narrowed to or-pattern
// alternatives where possible) and one non-exhaustive-match error
// listing the witnesses. matchSpan locates the match expression itself.
func (r UsefulnessReport) Diagnostics(cx *Ctx, matchSpan diag.Span) []diag.Diagnostic {
	var out []diag.Diagnostic

	for _, au := range r.ArmUsefulness {
		switch reach := au.Reachability.(type) {
		case Unreachable:
			span := cx.Store.Get(au.Arm.Pat).Span
			out = append(out, diag.Diagnostic{
				Stage:    diag.StageTypeCheck,
				Severity: diag.SeverityWarning,
				Code:     diag.CodeUnreachablePattern,
				Message:  "unreachable pattern",
				Span:     span,
			}.WithPrimarySpan(span, "no value can reach this pattern"))
		case Reachable:
			for _, leaf := range reach.UnreachableLeaves {
				lp := cx.Store.Get(leaf)
				out = append(out, diag.Diagnostic{
					Stage:    diag.StageTypeCheck,
					Severity: diag.SeverityWarning,
					Code:     diag.CodeUnreachablePattern,
					Message:  fmt.Sprintf("unreachable pattern `%s`", cx.Store.Pretty(leaf)),
					Span:     lp.Span,
				}.WithPrimarySpan(lp.Span, "this alternative can never match"))
			}
		}
	}

	if len(r.NonExhaustivenessWitnesses) > 0 {
		rendered := make([]string, 0, len(r.NonExhaustivenessWitnesses))
		for _, w := range r.NonExhaustivenessWitnesses {
			rendered = append(rendered, "`"+cx.Store.PrettyPat(w)+"`")
		}
		d := diag.Diagnostic{
			Stage:    diag.StageTypeCheck,
			Severity: diag.SeverityError,
			Code:     diag.CodeNonExhaustiveMatch,
			Message:  fmt.Sprintf("non-exhaustive match: %s not covered", strings.Join(rendered, ", ")),
			Span:     matchSpan,
		}
		d = d.WithPrimarySpan(matchSpan, "match does not cover all possible values")
		d = d.WithHelp("add arms for the missing cases, or a wildcard arm `_ => ...`")
		out = append(out, d)
	}

	return out
}
