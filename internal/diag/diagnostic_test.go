package diag_test

import (
	"strings"
	"testing"

	"github.com/malphas-lang/matchck/internal/diag"
)

func TestWithHelpers(t *testing.T) {
	d := diag.Diagnostic{
		Stage:    diag.StageTypeCheck,
		Severity: diag.SeverityError,
		Code:     diag.CodeNonExhaustiveMatch,
		Message:  "non-exhaustive match",
	}

	d = d.WithPrimarySpan(diag.Span{Line: 3, Column: 5, Start: 10, End: 15}, "match expression")
	d = d.WithSecondarySpan(diag.Span{Line: 4, Column: 9}, "arm")
	d = d.WithNote("pattern `None` not covered")
	d = d.WithHelp("add a wildcard arm")

	if len(d.LabeledSpans) != 2 {
		t.Fatalf("expected 2 labeled spans, got %d", len(d.LabeledSpans))
	}
	if d.LabeledSpans[0].Style != "primary" {
		t.Fatalf("expected first span primary, got %q", d.LabeledSpans[0].Style)
	}
	if d.LabeledSpans[1].Style != "secondary" {
		t.Fatalf("expected second span secondary, got %q", d.LabeledSpans[1].Style)
	}
	if len(d.Notes) != 1 || d.Notes[0] != "pattern `None` not covered" {
		t.Fatalf("unexpected notes: %v", d.Notes)
	}
	if d.Help != "add a wildcard arm" {
		t.Fatalf("unexpected help: %q", d.Help)
	}
}

func TestSpanString(t *testing.T) {
	s := diag.Span{Filename: "main.mlp", Line: 2, Column: 7}
	if got := s.String(); got != "main.mlp:2:7" {
		t.Fatalf("expected %q, got %q", "main.mlp:2:7", got)
	}
	s = diag.Span{Line: 2, Column: 7}
	if got := s.String(); got != "2:7" {
		t.Fatalf("expected %q, got %q", "2:7", got)
	}
	if (diag.Span{}).IsValid() {
		t.Fatal("zero span should not be valid")
	}
}

func TestFormatterSimpleFallback(t *testing.T) {
	var buf strings.Builder
	f := diag.NewFormatterTo(&buf)

	f.Format(diag.Diagnostic{
		Severity: diag.SeverityWarning,
		Code:     diag.CodeUnreachablePattern,
		Message:  "unreachable pattern",
	})

	out := buf.String()
	if !strings.Contains(out, "warning[UNREACHABLE_PATTERN]: unreachable pattern") {
		t.Fatalf("unexpected formatter output:\n%s", out)
	}
}
