package mono

import (
	"github.com/ailang-tools/monomorph/internal/air"
	aerrors "github.com/ailang-tools/monomorph/internal/errors"
	"github.com/ailang-tools/monomorph/internal/monotypes"
)

// Resolver maps a (trait signature, concrete type) pair to the method
// body that implements it: the matching instance's member definition,
// or the signature's default body when no instance overrides it.
type Resolver struct {
	root *air.Root
}

// NewResolver returns a Resolver over root's trait and instance tables.
func NewResolver(root *air.Root) *Resolver {
	return &Resolver{root: root}
}

// Resolve finds the method that sig.Name should run at concrete: its
// declaration header, its body, and the substitution unifying the
// winning scheme with concrete (needed to specialize the body itself).
// Returns an ICE (MONO005) if no instance matches and the signature
// declares no default, or (MONO006) if more than one instance matches
// — both conditions are impossible once type checking and coherence
// checking have accepted the program.
func (r *Resolver) Resolve(sig *air.Sig, concrete air.Type) (spec *air.Spec, body air.Expr, usedSubst *monotypes.Subst, err error) {
	instances := r.root.Traits[sig.Trait]

	type candidate struct {
		def   *air.Def
		subst *monotypes.Subst
	}
	var matches []candidate
	for _, inst := range instances {
		def, ok := inst.Defs[sig.Name]
		if !ok {
			continue
		}
		// A candidate matches when its own declared scheme base unifies
		// with the demanded concrete type. The member def's scheme is
		// already specialized to the instance's head type by
		// construction, so unifying it directly is both necessary and
		// sufficient; no separate head-type check is needed.
		s, uerr := monotypes.Unify(def.Spec.Scheme.Base, concrete, nil, r.root.EqEnv)
		if uerr == nil {
			matches = append(matches, candidate{def: def, subst: s})
		}
	}

	switch len(matches) {
	case 0:
		if sig.Default != nil {
			// The default body is declared against the signature's own
			// polymorphic scheme, so the substitution comes from
			// unifying that scheme with the demanded type. Without it
			// the default's type parameters would erase to Unit instead
			// of the type the call site asked for.
			s, uerr := monotypes.Unify(sig.Spec.Scheme.Base, concrete, nil, r.root.EqEnv)
			if uerr != nil {
				return nil, nil, nil, newICE(aerrors.MONO001, sig.Spec.Pos, uerr.Error(),
					opStr(sig.Trait), opStr(sig.Name), opType(concrete))
			}
			return sig.Spec, sig.Default, s, nil
		}
		return nil, nil, nil, newICE(aerrors.MONO005, sig.Spec.Pos,
			"no instance and no default body", opStr(sig.Trait), opStr(sig.Name), opType(concrete))

	case 1:
		return matches[0].def.Spec, matches[0].def.Body, matches[0].subst, nil

	default:
		return nil, nil, nil, newICE(aerrors.MONO006, sig.Spec.Pos,
			"multiple instances match", opStr(sig.Trait), opStr(sig.Name), opType(concrete))
	}
}
