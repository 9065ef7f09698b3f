package monotypes

import (
	"testing"

	"github.com/ailang-tools/monomorph/internal/air"
)

func TestSubstApplyDefaultsUnboundVariable(t *testing.T) {
	s := Empty(air.EqEnv{})
	v := &air.TVar{Name: "a", K: air.Value}
	if got := s.Apply(v); got != air.TUnit {
		t.Errorf("Apply(unbound value var) = %s, want Unit", got)
	}
}

func TestSubstApplyUsesBinding(t *testing.T) {
	intT := &air.TConst{Name: "Int", K: air.Value}
	s := Empty(air.EqEnv{}).Extend("a", intT)
	v := &air.TVar{Name: "a", K: air.Value}
	if got := s.Apply(v); got != intT {
		t.Errorf("Apply(bound var) = %s, want Int", got)
	}
}

func TestSubstApplyRawLeavesUnboundVariable(t *testing.T) {
	s := Empty(air.EqEnv{})
	v := &air.TVar{Name: "a", K: air.Value}
	got := s.ApplyRaw(v)
	if got != v {
		t.Errorf("ApplyRaw(unbound var) = %v, want the variable unchanged", got)
	}
}

func TestSubstUnbindRemovesBinding(t *testing.T) {
	intT := &air.TConst{Name: "Int", K: air.Value}
	s := Empty(air.EqEnv{}).Extend("a", intT)
	unbound := s.Unbind("a")
	v := &air.TVar{Name: "a", K: air.Value}
	if got := unbound.Apply(v); got != air.TUnit {
		t.Errorf("Apply(a) after Unbind = %s, want Unit (default)", got)
	}
	// original substitution is untouched
	if got := s.Apply(v); got != intT {
		t.Errorf("original Apply(a) = %s, want Int", got)
	}
}

func TestSubstApplyFoldsCaseSetAlgebra(t *testing.T) {
	tagsA := &air.CaseTagSet{Enum: "Color", Tags: []string{"Red"}}
	tagsB := &air.CaseTagSet{Enum: "Color", Tags: []string{"Red", "Blue"}}
	s := Empty(air.EqEnv{})

	got := s.Apply(&air.CaseIntersection{Enum: "Color", A: tagsA, B: tagsB})
	tagSet, ok := got.(*air.CaseTagSet)
	if !ok || len(tagSet.Tags) != 1 || tagSet.Tags[0] != "Red" {
		t.Errorf("Apply(intersection) = %v, want {Red}", got)
	}
}

func TestSubstApplyReducesAssociatedType(t *testing.T) {
	intT := &air.TConst{Name: "Int", K: air.Value}
	listT := &air.TConst{Name: "List", K: air.Value}
	eqEnv := air.EqEnv{{Assoc: "Elem", ArgNF: "List"}: intT}
	s := Empty(eqEnv)

	got := s.Apply(&air.TAssoc{Assoc: "Elem", Arg: listT, K: air.Value})
	if got != intT {
		t.Errorf("Apply(Elem[List]) = %s, want Int", got)
	}
}
