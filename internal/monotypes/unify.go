package monotypes

import (
	"fmt"

	"github.com/ailang-tools/monomorph/internal/air"
)

// UnifyError reports a structural mismatch between a declared type and
// a concrete type that a caller expected to unify. Whether this is an
// expected outcome (C5 probing candidate instances) or an ICE (C3
// called post type-check, where unification must succeed) is a
// decision left to the caller — this adapter only reports the failure.
type UnifyError struct {
	Declared air.Type
	Concrete air.Type
	Reason   string
}

func (e *UnifyError) Error() string {
	return fmt.Sprintf("cannot unify %s with %s: %s", e.Declared, e.Concrete, e.Reason)
}

// Unify produces a strict substitution that, when applied to
// declared, yields concrete. rigid names a set of type variables (on
// either side) that may not be bound to an arbitrary type; TypeMatch
// uses this to keep a scrutinee's already-resolved variables from
// being silently reinstantiated by a rule's pattern type. eqEnv is
// consulted to reduce associated-type applications encountered along
// the way.
func Unify(declared, concrete air.Type, rigid map[string]bool, eqEnv air.EqEnv) (*Subst, error) {
	s := Empty(eqEnv)
	if err := unify1(declared, concrete, rigid, s); err != nil {
		return nil, err
	}
	return s, nil
}

// unify1 walks declared/concrete in lockstep, recording bindings into s
// as it goes and consulting s for variables already bound earlier in
// the same walk (so repeated occurrences of a variable are checked for
// consistency, not merely overwritten).
func unify1(declared, concrete air.Type, rigid map[string]bool, s *Subst) error {
	declared = resolveOnce(declared, s)
	concrete = resolveOnce(concrete, s)

	if dv, ok := declared.(*air.TVar); ok && !rigid[dv.Name] {
		return bindVar(dv, concrete, rigid, s)
	}
	if cv, ok := concrete.(*air.TVar); ok && !rigid[cv.Name] {
		return bindVar(cv, declared, rigid, s)
	}

	if da, ok := declared.(*air.TAssoc); ok {
		reduced, ok := s.eqEnv.Lookup(da.Assoc, CanonicalKey(s.Apply(da.Arg)))
		if !ok {
			return &UnifyError{declared, concrete, fmt.Sprintf("associated type %s has no reduction", da.Assoc)}
		}
		return unify1(reduced, concrete, rigid, s)
	}
	if ca, ok := concrete.(*air.TAssoc); ok {
		reduced, ok := s.eqEnv.Lookup(ca.Assoc, CanonicalKey(s.Apply(ca.Arg)))
		if !ok {
			return &UnifyError{declared, concrete, fmt.Sprintf("associated type %s has no reduction", ca.Assoc)}
		}
		return unify1(declared, reduced, rigid, s)
	}

	switch d := declared.(type) {
	case *air.TConst:
		c, ok := concrete.(*air.TConst)
		if !ok || c.Name != d.Name {
			return &UnifyError{declared, concrete, "constant mismatch"}
		}
		return nil

	case *air.TApp:
		c, ok := concrete.(*air.TApp)
		if !ok {
			return &UnifyError{declared, concrete, "expected type application"}
		}
		if err := unify1(d.Fun, c.Fun, rigid, s); err != nil {
			return err
		}
		return unify1(d.Arg, c.Arg, rigid, s)

	case *air.TAlias:
		return unify1(d.Expansion, dealias(concrete), rigid, s)

	case *air.CaseTagSet:
		c, ok := concrete.(*air.CaseTagSet)
		if !ok || c.Enum != d.Enum || !sameStringSet(c.Tags, d.Tags) {
			return &UnifyError{declared, concrete, "case-set mismatch"}
		}
		return nil

	case *air.EffComplement:
		c, ok := concrete.(*air.EffComplement)
		if !ok {
			return &UnifyError{declared, concrete, "expected effect complement"}
		}
		return unify1(d.X, c.X, rigid, s)

	case *air.EffUnion:
		c, ok := concrete.(*air.EffUnion)
		if !ok {
			return &UnifyError{declared, concrete, "expected effect union"}
		}
		if err := unify1(d.A, c.A, rigid, s); err != nil {
			return err
		}
		return unify1(d.B, c.B, rigid, s)

	case *air.EffIntersection:
		c, ok := concrete.(*air.EffIntersection)
		if !ok {
			return &UnifyError{declared, concrete, "expected effect intersection"}
		}
		if err := unify1(d.A, c.A, rigid, s); err != nil {
			return err
		}
		return unify1(d.B, c.B, rigid, s)

	case *air.CaseComplement:
		c, ok := concrete.(*air.CaseComplement)
		if !ok || c.Enum != d.Enum {
			return &UnifyError{declared, concrete, "expected case complement"}
		}
		return unify1(d.X, c.X, rigid, s)

	case *air.CaseUnion:
		c, ok := concrete.(*air.CaseUnion)
		if !ok || c.Enum != d.Enum {
			return &UnifyError{declared, concrete, "expected case union"}
		}
		if err := unify1(d.A, c.A, rigid, s); err != nil {
			return err
		}
		return unify1(d.B, c.B, rigid, s)

	case *air.CaseIntersection:
		c, ok := concrete.(*air.CaseIntersection)
		if !ok || c.Enum != d.Enum {
			return &UnifyError{declared, concrete, "expected case intersection"}
		}
		if err := unify1(d.A, c.A, rigid, s); err != nil {
			return err
		}
		return unify1(d.B, c.B, rigid, s)

	default:
		return &UnifyError{declared, concrete, fmt.Sprintf("unhandled type %T", declared)}
	}
}

// resolveOnce follows a single existing binding for a variable so that
// repeated occurrences of the same variable see earlier bindings made
// during this unification walk, without performing a full defaulting
// substitution (which would erase still-unresolved variables we need
// to unify against).
func resolveOnce(t air.Type, s *Subst) air.Type {
	v, ok := t.(*air.TVar)
	if !ok {
		return t
	}
	if bound, ok := s.mapping[v.Name]; ok {
		return resolveOnce(bound, s)
	}
	return t
}

func bindVar(v *air.TVar, t air.Type, rigid map[string]bool, s *Subst) error {
	if ov, ok := t.(*air.TVar); ok && ov.Name == v.Name {
		return nil
	}
	if occurs(v.Name, t, s) {
		return &UnifyError{v, t, "occurs check failed"}
	}
	s.mapping[v.Name] = t
	return nil
}

func occurs(name string, t air.Type, s *Subst) bool {
	switch tt := t.(type) {
	case *air.TVar:
		if tt.Name == name {
			return true
		}
		if bound, ok := s.mapping[tt.Name]; ok {
			return occurs(name, bound, s)
		}
		return false
	case *air.TApp:
		return occurs(name, tt.Fun, s) || occurs(name, tt.Arg, s)
	case *air.TAlias:
		return occurs(name, tt.Expansion, s)
	case *air.TAssoc:
		return occurs(name, tt.Arg, s)
	case *air.EffComplement:
		return occurs(name, tt.X, s)
	case *air.EffUnion:
		return occurs(name, tt.A, s) || occurs(name, tt.B, s)
	case *air.EffIntersection:
		return occurs(name, tt.A, s) || occurs(name, tt.B, s)
	case *air.CaseComplement:
		return occurs(name, tt.X, s)
	case *air.CaseUnion:
		return occurs(name, tt.A, s) || occurs(name, tt.B, s)
	case *air.CaseIntersection:
		return occurs(name, tt.A, s) || occurs(name, tt.B, s)
	default:
		return false
	}
}

func dealias(t air.Type) air.Type {
	if a, ok := t.(*air.TAlias); ok {
		return a.Expansion
	}
	return t
}

func sameStringSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	set := map[string]bool{}
	for _, x := range a {
		set[x] = true
	}
	for _, x := range b {
		if !set[x] {
			return false
		}
	}
	return true
}
