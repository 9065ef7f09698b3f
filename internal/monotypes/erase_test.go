package monotypes

import (
	"testing"

	"github.com/ailang-tools/monomorph/internal/air"
)

func TestEraseDefaultsUnconstrainedVars(t *testing.T) {
	tests := []struct {
		name string
		v    *air.TVar
		want string
	}{
		{"value var", &air.TVar{Name: "a", K: air.Value}, "Unit"},
		{"effect var", &air.TVar{Name: "e", K: air.Effect}, "Pure"},
		{"record row var", &air.TVar{Name: "r", K: air.RecordRow}, "{}"},
		{"case-set var", &air.TVar{Name: "c", K: air.KCaseSet{Enum: "Color"}}, "∅"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Erase(tt.v, air.EqEnv{})
			if got.String() != tt.want {
				t.Errorf("Erase(%v) = %s, want %s", tt.v, got, tt.want)
			}
		})
	}
}

func TestEraseNamedEffectBecomesImpure(t *testing.T) {
	ioEff := &air.TConst{Name: "IO", K: air.Effect}
	got := Erase(ioEff, air.EqEnv{})
	if got != air.TImpure {
		t.Errorf("Erase(IO) = %s, want Impure", got)
	}
}

func TestEraseAssociatedTypeReduces(t *testing.T) {
	intT := &air.TConst{Name: "Int", K: air.Value}
	eqEnv := air.EqEnv{
		{Assoc: "Elem", ArgNF: "List"}: intT,
	}
	listT := &air.TConst{Name: "List", K: air.Value}
	assoc := &air.TAssoc{Assoc: "Elem", Arg: listT, K: air.Value}

	got := Erase(assoc, eqEnv)
	if got != intT {
		t.Errorf("Erase(Elem[List]) = %s, want Int", got)
	}
}

func TestEraseAssociatedTypeMissingReductionPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for unreducible associated type")
		}
	}()
	listT := &air.TConst{Name: "List", K: air.Value}
	assoc := &air.TAssoc{Assoc: "Elem", Arg: listT, K: air.Value}
	Erase(assoc, air.EqEnv{})
}

func TestEraseFoldsEffectAlgebra(t *testing.T) {
	// ¬Pure erases to Impure, and Pure | IO erases to Impure via the
	// named-effect substitution running before the union is folded.
	ioEff := &air.TConst{Name: "IO", K: air.Effect}
	union := &air.EffUnion{A: air.TPure, B: ioEff}
	if got := Erase(union, air.EqEnv{}); got != air.TImpure {
		t.Errorf("Erase(Pure | IO) = %s, want Impure", got)
	}

	complement := &air.EffComplement{X: air.TPure}
	if got := Erase(complement, air.EqEnv{}); got != air.TImpure {
		t.Errorf("Erase(!Pure) = %s, want Impure", got)
	}
}

func TestEraseCaseSetUnion(t *testing.T) {
	a := &air.CaseTagSet{Enum: "Color", Tags: []string{"Red", "Green"}}
	b := &air.CaseTagSet{Enum: "Color", Tags: []string{"Green", "Blue"}}
	got := Erase(&air.CaseUnion{Enum: "Color", A: a, B: b}, air.EqEnv{})

	tagSet, ok := got.(*air.CaseTagSet)
	if !ok {
		t.Fatalf("expected *air.CaseTagSet, got %T", got)
	}
	want := []string{"Blue", "Green", "Red"}
	if len(tagSet.Tags) != len(want) {
		t.Fatalf("got tags %v, want %v", tagSet.Tags, want)
	}
	for i, tag := range want {
		if tagSet.Tags[i] != tag {
			t.Errorf("got tags %v, want %v", tagSet.Tags, want)
		}
	}
}
