package air

import (
	"fmt"
	"sort"
	"strings"
)

// Type is the sum of variable, constant, (curried) application,
// alias, and associated-type application. The Boolean-effect and
// case-set connectives in algebra.go complete the sum.
type Type interface {
	String() string
	Kind() Kind
}

// TVar is a type variable tagged with its kind.
type TVar struct {
	Name string
	K    Kind
}

func (t *TVar) String() string { return t.Name }
func (t *TVar) Kind() Kind { return t.K }

// TConst is a type constructor (Int, List, Pure, a named effect, the
// universal effect, the Boolean/case-set operator constructors, ...).
type TConst struct {
	Name string
	K    Kind
}

func (t *TConst) String() string { return t.Name }
func (t *TConst) Kind() Kind { return t.K }

// TApp is curried type application: (t1 t2).
type TApp struct {
	Fun Type
	Arg Type
}

func (t *TApp) String() string {
	return fmt.Sprintf("(%s %s)", t.Fun, t.Arg)
}

// Kind of an application is the result kind of its function position's
// arrow; since this IR doesn't reify arrow kinds explicitly, every
// constructor that can appear in function position of a TApp carries
// the *result* kind in its own Kind() (the constructor's kind is the
// kind it yields once fully applied, by convention of this codebase).
func (t *TApp) Kind() Kind { return t.Fun.Kind() }

// TAlias is a reference to a type alias together with its arguments
// and the already-expanded form (kept so the eraser and substitution
// don't need the alias table threaded through every call).
type TAlias struct {
	Sym       string
	Args      []Type
	Expansion Type
}

func (t *TAlias) String() string {
	if len(t.Args) == 0 {
		return t.Sym
	}
	parts := make([]string, len(t.Args))
	for i, a := range t.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s[%s]", t.Sym, strings.Join(parts, ", "))
}
func (t *TAlias) Kind() Kind { return t.Expansion.Kind() }

// TAssoc is an associated-type application: Assoc[Arg], reduced
// through the equality environment.
type TAssoc struct {
	Assoc string
	Arg   Type
	K     Kind
}

func (t *TAssoc) String() string { return fmt.Sprintf("%s[%s]", t.Assoc, t.Arg) }
func (t *TAssoc) Kind() Kind { return t.K }

// Well-known constants.
var (
	TUnit = &TConst{Name: "Unit", K: Value}
	TPure = &TConst{Name: "Pure", K: Effect}
	// TImpure is the universal effect constant substituted for any
	// concrete named effect during erasure and bound to a region
	// variable for the duration of a scope body.
	TImpure = &TConst{Name: "Impure", K: Effect}
)

// EmptyRow returns the empty record-row or schema-row, per flavor.
func EmptyRow(flavor RowFlavor) Type {
	name := "{}"
	if flavor == SchemaFlavor {
		name = "<>"
	}
	return &TConst{Name: name, K: KRow{Flavor: flavor}}
}

// EmptyCaseSet returns the empty case-set over the given enum.
func EmptyCaseSet(enum string) Type {
	return &CaseTagSet{Enum: enum}
}

// IsNamedEffectConst reports whether t is a concrete named-effect
// constant (as opposed to Pure or the universal Impure constant).
func IsNamedEffectConst(t Type) bool {
	c, ok := t.(*TConst)
	if !ok {
		return false
	}
	if _, isEffect := c.K.(KEffect); !isEffect {
		return false
	}
	return c.Name != TPure.Name && c.Name != TImpure.Name
}

// FreeVars collects t's free variables into out, used by TypeMatch's
// rigidity marking.
func FreeVars(t Type, out map[string]Kind) {
	switch tt := t.(type) {
	case *TVar:
		out[tt.Name] = tt.K
	case *TConst:
		// no variables
	case *TApp:
		FreeVars(tt.Fun, out)
		FreeVars(tt.Arg, out)
	case *TAlias:
		for _, a := range tt.Args {
			FreeVars(a, out)
		}
		FreeVars(tt.Expansion, out)
	case *TAssoc:
		FreeVars(tt.Arg, out)
	case *EffComplement:
		FreeVars(tt.X, out)
	case *EffUnion:
		FreeVars(tt.A, out)
		FreeVars(tt.B, out)
	case *EffIntersection:
		FreeVars(tt.A, out)
		FreeVars(tt.B, out)
	case *CaseComplement:
		FreeVars(tt.X, out)
	case *CaseUnion:
		FreeVars(tt.A, out)
		FreeVars(tt.B, out)
	case *CaseIntersection:
		FreeVars(tt.A, out)
		FreeVars(tt.B, out)
	case *CaseTagSet:
		// ground, no variables
	}
}

// SortedVarNames returns the free variable names of t in sorted
// order, for callers that need a stable ordering over what is
// otherwise an unordered set.
func SortedVarNames(t Type) []string {
	vs := map[string]Kind{}
	FreeVars(t, vs)
	names := make([]string, 0, len(vs))
	for n := range vs {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
