package mono

import (
	"errors"
	"testing"

	"github.com/ailang-tools/monomorph/internal/air"
	"github.com/ailang-tools/monomorph/internal/ast"
	aerrors "github.com/ailang-tools/monomorph/internal/errors"
)

func showTraitRoot(instances ...*air.Instance) *air.Root {
	root := air.NewRoot()
	root.Traits["Show"] = instances
	return root
}

func TestResolveSingleInstanceMatch(t *testing.T) {
	intT := &air.TConst{Name: "Int", K: air.Value}
	boolT := &air.TConst{Name: "Bool", K: air.Value}
	stringT := &air.TConst{Name: "String", K: air.Value}

	intShow := &air.Def{
		Sym: "Show[Int].show",
		Spec: &air.Spec{
			Scheme: air.Scheme{Base: funcType(intT, stringT)},
			Pos:    ast.Pos{File: "show.ail", Line: 4},
		},
		Body: &air.Const{Kind: air.StringConst, Value: "<int>"},
	}
	boolShow := &air.Def{
		Sym: "Show[Bool].show",
		Spec: &air.Spec{
			Scheme: air.Scheme{Base: funcType(boolT, stringT)},
			Pos:    ast.Pos{File: "show.ail", Line: 9},
		},
		Body: &air.Const{Kind: air.StringConst, Value: "<bool>"},
	}

	root := showTraitRoot(
		&air.Instance{Trait: "Show", Type: intT, Defs: map[string]*air.Def{"show": intShow}},
		&air.Instance{Trait: "Show", Type: boolT, Defs: map[string]*air.Def{"show": boolShow}},
	)
	sig := &air.Sig{
		Sym:   "Show.show",
		Trait: "Show",
		Name:  "show",
		Spec:  &air.Spec{Scheme: air.Scheme{Base: funcType(intT, stringT)}},
	}

	spec, body, _, err := NewResolver(root).Resolve(sig, funcType(intT, stringT))
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if spec != intShow.Spec {
		t.Errorf("Resolve picked spec %v, want the Int instance's", spec)
	}
	if body != intShow.Body {
		t.Errorf("Resolve picked body %v, want the Int instance's", body)
	}
}

func TestResolveDefaultBodySubstitutesTypeParameter(t *testing.T) {
	boolT := &air.TConst{Name: "Bool", K: air.Value}
	stringT := &air.TConst{Name: "String", K: air.Value}
	a := &air.TVar{Name: "a", K: air.Value}

	sig := &air.Sig{
		Sym:   "Greet.greet",
		Trait: "Greet",
		Name:  "greet",
		Spec: &air.Spec{
			TParams: []*air.TVar{a},
			Scheme:  air.Scheme{TVars: []*air.TVar{a}, Base: funcType(a, stringT)},
		},
		Default: &air.Const{Kind: air.StringConst, Value: "hi"},
	}

	root := air.NewRoot()
	spec, body, s, err := NewResolver(root).Resolve(sig, funcType(boolT, stringT))
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if spec != sig.Spec {
		t.Errorf("default resolution should reuse the signature's spec")
	}
	if body != sig.Default {
		t.Errorf("Resolve = %v, want the default body", body)
	}
	if got := s.Apply(a); got != boolT {
		t.Errorf("default substitution maps a to %s, want Bool", got)
	}
}

func TestResolveNoInstanceNoDefaultIsICE(t *testing.T) {
	intT := &air.TConst{Name: "Int", K: air.Value}
	stringT := &air.TConst{Name: "String", K: air.Value}

	sig := &air.Sig{
		Sym:   "Show.show",
		Trait: "Show",
		Name:  "show",
		Spec:  &air.Spec{Scheme: air.Scheme{Base: funcType(intT, stringT)}},
	}

	_, _, _, err := NewResolver(air.NewRoot()).Resolve(sig, funcType(intT, stringT))
	var ice *ICE
	if !errors.As(err, &ice) {
		t.Fatalf("Resolve = %v, want an *ICE", err)
	}
	if ice.Code != aerrors.MONO005 {
		t.Errorf("ICE code = %s, want %s", ice.Code, aerrors.MONO005)
	}
}

func TestResolveAmbiguousInstancesIsICE(t *testing.T) {
	intT := &air.TConst{Name: "Int", K: air.Value}
	stringT := &air.TConst{Name: "String", K: air.Value}

	mk := func(sym string) *air.Def {
		return &air.Def{
			Sym:  sym,
			Spec: &air.Spec{Scheme: air.Scheme{Base: funcType(intT, stringT)}},
			Body: &air.Const{Kind: air.StringConst, Value: sym},
		}
	}
	root := showTraitRoot(
		&air.Instance{Trait: "Show", Type: intT, Defs: map[string]*air.Def{"show": mk("a")}},
		&air.Instance{Trait: "Show", Type: intT, Defs: map[string]*air.Def{"show": mk("b")}},
	)
	sig := &air.Sig{
		Sym:   "Show.show",
		Trait: "Show",
		Name:  "show",
		Spec:  &air.Spec{Scheme: air.Scheme{Base: funcType(intT, stringT)}},
	}

	_, _, _, err := NewResolver(root).Resolve(sig, funcType(intT, stringT))
	var ice *ICE
	if !errors.As(err, &ice) {
		t.Fatalf("Resolve = %v, want an *ICE", err)
	}
	if ice.Code != aerrors.MONO006 {
		t.Errorf("ICE code = %s, want %s", ice.Code, aerrors.MONO006)
	}
}
