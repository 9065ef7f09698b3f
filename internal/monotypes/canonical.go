package monotypes

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ailang-tools/monomorph/internal/air"
)

// CanonicalKey produces a deterministic string form of a type for use
// in registry memo keys and unification-target comparisons. Callers
// are expected to pass an already-erased type (ground, no free
// variables of value kind).
func CanonicalKey(t air.Type) string {
	switch tt := t.(type) {
	case *air.TVar:
		return "_" + tt.Name
	case *air.TConst:
		return tt.Name
	case *air.TApp:
		return fmt.Sprintf("(%s %s)", CanonicalKey(tt.Fun), CanonicalKey(tt.Arg))
	case *air.TAlias:
		args := make([]string, len(tt.Args))
		for i, a := range tt.Args {
			args[i] = CanonicalKey(a)
		}
		return fmt.Sprintf("%s[%s]", tt.Sym, strings.Join(args, ","))
	case *air.TAssoc:
		return fmt.Sprintf("%s[%s]", tt.Assoc, CanonicalKey(tt.Arg))
	case *air.EffComplement:
		return fmt.Sprintf("!(%s)", CanonicalKey(tt.X))
	case *air.EffUnion:
		return fmt.Sprintf("(%s|%s)", CanonicalKey(tt.A), CanonicalKey(tt.B))
	case *air.EffIntersection:
		return fmt.Sprintf("(%s&%s)", CanonicalKey(tt.A), CanonicalKey(tt.B))
	case *air.CaseComplement:
		return fmt.Sprintf("!%s(%s)", tt.Enum, CanonicalKey(tt.X))
	case *air.CaseUnion:
		return fmt.Sprintf("%s(%s|%s)", tt.Enum, CanonicalKey(tt.A), CanonicalKey(tt.B))
	case *air.CaseIntersection:
		return fmt.Sprintf("%s(%s&%s)", tt.Enum, CanonicalKey(tt.A), CanonicalKey(tt.B))
	case *air.CaseTagSet:
		tags := append([]string(nil), tt.Tags...)
		sort.Strings(tags)
		return fmt.Sprintf("%s{%s}", tt.Enum, strings.Join(tags, ","))
	default:
		return fmt.Sprintf("<unknown:%T>", t)
	}
}
