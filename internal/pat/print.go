package pat

import (
	"fmt"
	"strings"

	"github.com/malphas-lang/matchck/internal/types"
)

// Pretty returns a source-like rendering of a stored pattern.
func (s *Store) Pretty(id ID) string {
	return s.PrettyPat(s.Get(id))
}

// PrettyPat renders a pattern node that is not necessarily stored
// itself (witnesses are reconstructed as values); its subpatterns are
// resolved through the store.
func (s *Store) PrettyPat(p Pat) string {
	var b strings.Builder
	s.writePat(&b, p)
	return b.String()
}

func (s *Store) writePat(b *strings.Builder, p Pat) {
	switch k := p.Kind.(type) {
	case Wild:
		b.WriteString("_")
	case Binding:
		b.WriteString(k.Name)
		if k.Sub != NoPat {
			b.WriteString(" @ ")
			s.writePat(b, s.Get(k.Sub))
		}
	case Lit:
		b.WriteString(k.Value.String())
	case Or:
		for i, alt := range k.Alts {
			if i > 0 {
				b.WriteString(" | ")
			}
			s.writePat(b, s.Get(alt))
		}
	case Ctor:
		s.writeCtorPat(b, p, k)
	default:
		b.WriteString(fmt.Sprintf("<pat %T>", p.Kind))
	}
}

func (s *Store) writeCtorPat(b *strings.Builder, p Pat, k Ctor) {
	switch ty := p.Ty.(type) {
	case *types.Tuple:
		b.WriteString("(")
		for i, arg := range k.Args {
			if i > 0 {
				b.WriteString(", ")
			}
			s.writePat(b, s.Get(arg))
		}
		b.WriteString(")")
	case *types.Struct:
		b.WriteString(ty.Name)
		b.WriteString(" { ")
		for i, arg := range k.Args {
			if i > 0 {
				b.WriteString(", ")
			}
			if i < len(ty.Fields) {
				b.WriteString(ty.Fields[i].Name)
				b.WriteString(": ")
			}
			s.writePat(b, s.Get(arg))
		}
		b.WriteString(" }")
	case *types.Enum:
		if k.Variant >= 0 && k.Variant < len(ty.Variants) {
			b.WriteString(ty.Variants[k.Variant].Name)
		} else {
			b.WriteString("_")
			return
		}
		if len(k.Args) > 0 {
			b.WriteString("(")
			for i, arg := range k.Args {
				if i > 0 {
					b.WriteString(", ")
				}
				s.writePat(b, s.Get(arg))
			}
			b.WriteString(")")
		}
	default:
		b.WriteString("_")
	}
}
