package monotypes

import (
	"fmt"

	"github.com/ailang-tools/monomorph/internal/air"
)

// Subst is a strict substitution: an ordinary type-var-to-type
// mapping plus the equality environment, where application both
// substitutes and defaults any variable not in its domain.
type Subst struct {
	mapping map[string]air.Type
	eqEnv   air.EqEnv
	// PendingEqs carries equality constraints that are not acted on
	// here. Unify never appends to it (an associated type with no
	// reduction fails unification instead), so it is empty unless a
	// caller fills it.
	// TODO: thread these through associated-type reduction, or prove
	// they are always vacuous by this phase.
	PendingEqs []air.EqConstraint
}

// Empty returns a Strict Substitution with no bindings.
func Empty(eqEnv air.EqEnv) *Subst {
	return &Subst{mapping: map[string]air.Type{}, eqEnv: eqEnv}
}

// Extend returns a new substitution with one additional binding. The
// receiver is left unmodified.
func (s *Subst) Extend(name string, t air.Type) *Subst {
	next := make(map[string]air.Type, len(s.mapping)+1)
	for k, v := range s.mapping {
		next[k] = v
	}
	next[name] = t
	return &Subst{mapping: next, eqEnv: s.eqEnv, PendingEqs: s.PendingEqs}
}

// Unbind returns a new substitution with name's binding removed, used
// when a scope body temporarily rebinds a region variable.
func (s *Subst) Unbind(name string) *Subst {
	next := make(map[string]air.Type, len(s.mapping))
	for k, v := range s.mapping {
		if k != name {
			next[k] = v
		}
	}
	return &Subst{mapping: next, eqEnv: s.eqEnv, PendingEqs: s.PendingEqs}
}

// Raw exposes the underlying non-defaulting mapping, needed only for
// TypeMatch unification.
func (s *Subst) Raw() map[string]air.Type {
	return s.mapping
}

// ComposeCase merges a case-substitution discovered by unifying one
// TypeMatch rule's type against the scrutinee's non-strict type into
// the current substitution. Bindings from extra take precedence since
// they refine variables the outer substitution left open; s is left
// unmodified.
func (s *Subst) ComposeCase(extra *Subst) *Subst {
	merged := make(map[string]air.Type, len(s.mapping)+len(extra.mapping))
	for k, v := range s.mapping {
		merged[k] = v
	}
	for k, v := range extra.mapping {
		merged[k] = v
	}
	pending := append(append([]air.EqConstraint{}, s.PendingEqs...), extra.PendingEqs...)
	return &Subst{mapping: merged, eqEnv: s.eqEnv, PendingEqs: pending}
}

// ApplyRaw substitutes bound variables but leaves unbound variables
// untouched instead of defaulting them: the non-strict form used by
// TypeMatch rigidity marking and rule unification.
func (s *Subst) ApplyRaw(t air.Type) air.Type {
	switch tt := t.(type) {
	case *air.TVar:
		if r, ok := s.mapping[tt.Name]; ok {
			return r
		}
		return tt
	case *air.TConst:
		return tt
	case *air.TApp:
		return &air.TApp{Fun: s.ApplyRaw(tt.Fun), Arg: s.ApplyRaw(tt.Arg)}
	case *air.TAlias:
		args := make([]air.Type, len(tt.Args))
		for i, a := range tt.Args {
			args[i] = s.ApplyRaw(a)
		}
		return &air.TAlias{Sym: tt.Sym, Args: args, Expansion: s.ApplyRaw(tt.Expansion)}
	case *air.TAssoc:
		return &air.TAssoc{Assoc: tt.Assoc, Arg: s.ApplyRaw(tt.Arg), K: tt.K}
	case *air.EffComplement:
		return &air.EffComplement{X: s.ApplyRaw(tt.X)}
	case *air.EffUnion:
		return &air.EffUnion{A: s.ApplyRaw(tt.A), B: s.ApplyRaw(tt.B)}
	case *air.EffIntersection:
		return &air.EffIntersection{A: s.ApplyRaw(tt.A), B: s.ApplyRaw(tt.B)}
	case *air.CaseComplement:
		return &air.CaseComplement{Enum: tt.Enum, X: s.ApplyRaw(tt.X)}
	case *air.CaseUnion:
		return &air.CaseUnion{Enum: tt.Enum, A: s.ApplyRaw(tt.A), B: s.ApplyRaw(tt.B)}
	case *air.CaseIntersection:
		return &air.CaseIntersection{Enum: tt.Enum, A: s.ApplyRaw(tt.A), B: s.ApplyRaw(tt.B)}
	case *air.CaseTagSet:
		return tt
	default:
		panic(fmt.Sprintf("monotypes: ApplyRaw: unhandled type %T", t))
	}
}

// Apply performs the strict (defaulting) substitution: substitute
// bound variables, default unbound ones by kind, replace named effect
// constants with the universal effect, fold Boolean/case-set algebra,
// and reduce associated types through the equality environment
// (panicking if a needed reduction is missing; internal/mono wraps
// the panic into an ICE).
func (s *Subst) Apply(t air.Type) air.Type {
	switch tt := t.(type) {
	case *air.TVar:
		if r, ok := s.mapping[tt.Name]; ok {
			return s.Apply(r)
		}
		return air.Default(tt.K)

	case *air.TConst:
		if air.IsNamedEffectConst(tt) {
			return air.TImpure
		}
		return tt

	case *air.TApp:
		return &air.TApp{Fun: s.Apply(tt.Fun), Arg: s.Apply(tt.Arg)}

	case *air.TAlias:
		args := make([]air.Type, len(tt.Args))
		for i, a := range tt.Args {
			args[i] = s.Apply(a)
		}
		return &air.TAlias{Sym: tt.Sym, Args: args, Expansion: s.Apply(tt.Expansion)}

	case *air.TAssoc:
		arg := s.Apply(tt.Arg)
		reduced, ok := s.eqEnv.Lookup(tt.Assoc, CanonicalKey(arg))
		if !ok {
			panic(fmt.Sprintf("monotypes: associated type %s[%s] has no reduction in eqEnv", tt.Assoc, arg))
		}
		return s.Apply(reduced)

	case *air.EffComplement:
		return mkEffComplement(s.Apply(tt.X))
	case *air.EffUnion:
		return mkEffUnion(s.Apply(tt.A), s.Apply(tt.B))
	case *air.EffIntersection:
		return mkEffIntersection(s.Apply(tt.A), s.Apply(tt.B))
	case *air.CaseComplement:
		return mkCaseComplement(tt.Enum, s.Apply(tt.X))
	case *air.CaseUnion:
		return mkCaseUnion(tt.Enum, s.Apply(tt.A), s.Apply(tt.B))
	case *air.CaseIntersection:
		return mkCaseIntersection(tt.Enum, s.Apply(tt.A), s.Apply(tt.B))
	case *air.CaseTagSet:
		return tt

	default:
		panic(fmt.Sprintf("monotypes: Apply: unhandled type %T", t))
	}
}
