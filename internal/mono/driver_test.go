package mono

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/ailang-tools/monomorph/internal/air"
	"github.com/ailang-tools/monomorph/internal/ast"
)

var arrow = &air.TConst{Name: "->", K: air.Value}

func funcType(from, to air.Type) air.Type {
	return &air.TApp{Fun: &air.TApp{Fun: arrow, Arg: from}, Arg: to}
}

// buildIdentityRoot builds a minimal two-def program: a polymorphic
// identity function and a non-parametric entry point that demands it
// at Int — the driver's seed set plus one wave of demand-driven
// specialization.
func buildIdentityRoot() *air.Root {
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

func symPrefix(sym string) string {
	if i := strings.LastIndex(sym, "$"); i >= 0 {
		return sym[:i]
	}
	return sym
}

func TestDriverRunProducesMonomorphicDefs(t *testing.T) {
	root := buildIdentityRoot()
	out, err := NewDriver(root).Run()
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	var prefixes []string
	for sym, def := range out.Defs {
		prefixes = append(prefixes, symPrefix(sym))
		if len(def.Spec.TParams) != 0 {
			t.Errorf("def %s retained type parameters: %v", sym, def.Spec.TParams)
		}
	}

	want := []string{"id", "main"}
	if diff := cmp.Diff(want, prefixes, cmpopts.SortSlices(func(a, b string) bool { return a < b })); diff != "" {
		t.Errorf("specialized def source prefixes differ (-want +got):\n%s", diff)
	}

	if len(out.Sigs) != 0 {
		t.Errorf("expected no signatures to survive, got %d", len(out.Sigs))
	}
	if len(out.Traits) != 0 {
		t.Errorf("expected no trait tables to survive, got %d", len(out.Traits))
	}
}

func TestDriverIsIdempotentOnAlreadyMonomorphicInput(t *testing.T) {
	root := buildIdentityRoot()
	first, err := NewDriver(root).Run()
	if err != nil {
		t.Fatalf("first Run() error: %v", err)
	}

	second, err := NewDriver(first).Run()
	if err != nil {
		t.Fatalf("second Run() error: %v", err)
	}

	if len(first.Defs) != len(second.Defs) {
		t.Errorf("re-running on monomorphic output changed the def count: %d vs %d", len(first.Defs), len(second.Defs))
	}
}
