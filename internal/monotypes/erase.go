// Package monotypes provides the type-level machinery of the
// monomorphization pass: erasure of unconstrained variables to their
// kind defaults, strict (defaulting) substitution with Boolean-effect
// and case-set simplification, and the unification adapter that turns
// a declared scheme plus a demanded concrete type into a
// substitution.
package monotypes

import (
	"fmt"

	"github.com/ailang-tools/monomorph/internal/air"
)

// Erase normalizes a fully-substituted type into its erased form.
// eqEnv is consulted to reduce associated-type applications; a
// reduction that is required but missing is an invariant violation
// upstream and panics (internal/mono wraps the panic into an ICE with
// a source location before it escapes the pass).
func Erase(t air.Type, eqEnv air.EqEnv) air.Type {
	switch tt := t.(type) {
	case *air.TVar:
		return air.Default(tt.K)

	case *air.TConst:
		if air.IsNamedEffectConst(tt) {
			return air.TImpure
		}
		return tt

	case *air.TApp:
		return &air.TApp{Fun: Erase(tt.Fun, eqEnv), Arg: Erase(tt.Arg, eqEnv)}

	case *air.TAlias:
		args := make([]air.Type, len(tt.Args))
		for i, a := range tt.Args {
			args[i] = Erase(a, eqEnv)
		}
		return &air.TAlias{Sym: tt.Sym, Args: args, Expansion: Erase(tt.Expansion, eqEnv)}

	case *air.TAssoc:
		reduced, ok := eqEnv.Lookup(tt.Assoc, CanonicalKey(Erase(tt.Arg, eqEnv)))
		if !ok {
			panic(fmt.Sprintf("monotypes: associated type %s[%s] has no reduction in eqEnv", tt.Assoc, tt.Arg))
		}
		return Erase(reduced, eqEnv)

	case *air.EffComplement:
		return mkEffComplement(Erase(tt.X, eqEnv))
	case *air.EffUnion:
		return mkEffUnion(Erase(tt.A, eqEnv), Erase(tt.B, eqEnv))
	case *air.EffIntersection:
		return mkEffIntersection(Erase(tt.A, eqEnv), Erase(tt.B, eqEnv))
	case *air.CaseComplement:
		return mkCaseComplement(tt.Enum, Erase(tt.X, eqEnv))
	case *air.CaseUnion:
		return mkCaseUnion(tt.Enum, Erase(tt.A, eqEnv), Erase(tt.B, eqEnv))
	case *air.CaseIntersection:
		return mkCaseIntersection(tt.Enum, Erase(tt.A, eqEnv), Erase(tt.B, eqEnv))
	case *air.CaseTagSet:
		return tt

	default:
		panic(fmt.Sprintf("monotypes: Erase: unhandled type %T", t))
	}
}
