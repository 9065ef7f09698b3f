package main

import (
	"github.com/ailang-tools/monomorph/internal/air"
	"github.com/ailang-tools/monomorph/internal/ast"
)

// exampleRoot is one embedded hand-written root the harness can run
// the driver over, for exercising the pass without a compiler front
// end.
type exampleRoot struct {
	name        string
	description string
	build       func() *air.Root
}

var examples = []exampleRoot{
	{
		name:        "identity",
		description: "a polymorphic identity function specialized at one call site",
		build:       buildIdentityExample,
	},
	{
		name:        "show-trait",
		description: "a two-instance trait resolved at a concrete type via the trait resolver",
		build:       buildShowTraitExample,
	},
}

func funcType(from, to air.Type) air.Type {
	arrow := &air.TConst{Name: "->", K: air.Value}
	return &air.TApp{Fun: &air.TApp{Fun: arrow, Arg: from}, Arg: to}
}

// buildIdentityExample mirrors internal/mono's own driver test fixture:
// a parametric id plus a non-parametric main that demands it at Int.
func buildIdentityExample() *air.Root {
	intT := &air.TConst{Name: "Int", K: air.Value}
	tv := &air.TVar{Name: "a", K: air.Value}

	idDef := &air.Def{
		Sym: "id",
		Spec: &air.Spec{
			TParams: []*air.TVar{tv},
			Params:  []air.Param{{Sym: "x", Type: tv}},
			Scheme:  air.Scheme{TVars: []*air.TVar{tv}, Base: funcType(tv, tv)},
			Pos:     ast.Pos{File: "id.ail"},
		},
		Body: &air.Lambda{
			Param: air.Param{Sym: "x", Type: tv},
			Body:  &air.Var{Sym: "x"},
		},
	}

	mainDef := &air.Def{
		Sym: "main",
		Spec: &air.Spec{
			Scheme: air.Scheme{Base: intT},
			Pos:    ast.Pos{File: "main.ail"},
		},
		Body: &air.Apply{
			Fn:   &air.DefRef{Sym: "id", Type: funcType(intT, intT)},
			Args: []air.Expr{&air.Const{Kind: air.IntConst, Value: 42}},
		},
	}

	root := air.NewRoot()
	root.Defs["id"] = idDef
	root.Defs["main"] = mainDef
	return root
}

// buildShowTraitExample builds a "Show" trait with Int and Bool
// instances plus a non-parametric main that calls the trait method at
// Int, exercising trait resolution end to end.
func buildShowTraitExample() *air.Root {
	intT := &air.TConst{Name: "Int", K: air.Value}
	boolT := &air.TConst{Name: "Bool", K: air.Value}
	stringT := &air.TConst{Name: "String", K: air.Value}

	showSig := &air.Sig{
		Sym:   "Show.show",
		Trait: "Show",
		Name:  "show",
		Spec: &air.Spec{
			Scheme: air.Scheme{Base: funcType(intT, stringT)},
			Pos:    ast.Pos{File: "show.ail"},
		},
	}

	intInstance := &air.Instance{
		Trait: "Show",
		Type:  intT,
		Defs: map[string]*air.Def{
			"show": {
				Sym: "Show[Int].show",
				Spec: &air.Spec{
					Scheme: air.Scheme{Base: funcType(intT, stringT)},
					Pos:    ast.Pos{File: "show.ail"},
				},
				Body: &air.Lambda{
					Param: air.Param{Sym: "n", Type: intT},
					Body:  &air.Const{Kind: air.StringConst, Value: "<int>"},
				},
			},
		},
	}

	boolInstance := &air.Instance{
		Trait: "Show",
		Type:  boolT,
		Defs: map[string]*air.Def{
			"show": {
				Sym: "Show[Bool].show",
				Spec: &air.Spec{
					Scheme: air.Scheme{Base: funcType(boolT, stringT)},
					Pos:    ast.Pos{File: "show.ail"},
				},
				Body: &air.Lambda{
					Param: air.Param{Sym: "b", Type: boolT},
					Body:  &air.Const{Kind: air.StringConst, Value: "<bool>"},
				},
			},
		},
	}

	mainDef := &air.Def{
		Sym: "main",
		Spec: &air.Spec{
			Scheme: air.Scheme{Base: stringT},
			Pos:    ast.Pos{File: "main.ail"},
		},
		Body: &air.Apply{
			Fn:   &air.SigRef{Sym: "Show.show", Type: funcType(intT, stringT)},
			Args: []air.Expr{&air.Const{Kind: air.IntConst, Value: 7}},
		},
	}

	root := air.NewRoot()
	root.Defs["main"] = mainDef
	root.Sigs["Show.show"] = showSig
	root.Traits["Show"] = []*air.Instance{intInstance, boolInstance}
	return root
}

func findExample(name string) (exampleRoot, bool) {
	for _, ex := range examples {
		if ex.name == name {
			return ex, true
		}
	}
	return exampleRoot{}, false
}
