package air

import "github.com/ailang-tools/monomorph/internal/ast"

// Constraint is a trait constraint on a type variable: Trait[Type].
type Constraint struct {
	Trait string
	Type  Type
}

// EqConstraint is an associated-type equality constraint discovered
// during unification but not acted on by this pass. Recorded so a
// later phase has somewhere to look.
type EqConstraint struct {
	Assoc string
	Arg   Type
	Rhs   Type
}

// Scheme is a declared polymorphic scheme: ∀tvars. constraints ⇒ base.
type Scheme struct {
	TVars       []*TVar
	Constraints []Constraint
	Base        Type
}

// Param is a formal parameter: a local symbol with a declared type.
type Param struct {
	Sym  string
	Type Type
}

// Spec is the declaration header shared by Def and Sig.
type Spec struct {
	Doc           string
	Annotations   []string
	Modifiers     []string
	TParams       []*TVar
	Params        []Param
	Scheme        Scheme
	RetType       Type
	EffType       Type
	Constraints   []Constraint
	EqConstraints []EqConstraint
	Pos           ast.Pos
}

// Def is a top-level definition: a symbol, its header, and its body.
type Def struct {
	Sym  string
	Spec *Spec
	Body Expr
}

// Sig is a trait signature: a method header belonging to a trait,
// with an optional default body.
type Sig struct {
	Sym     string
	Trait   string // the owning trait's symbol
	Name    string // the unqualified method name
	Spec    *Spec
	Default Expr // nil if the trait declares no default body
}

// Instance is one trait instance: the type it implements the trait
// for, and its member definitions (keyed by unqualified method name).
type Instance struct {
	Trait string
	Type  Type
	Defs  map[string]*Def
	Pos   ast.Pos
}

// TypeAlias is a type-level alias definition.
type TypeAlias struct {
	Sym       string
	Params    []string
	Expansion Type
}

// EqKey indexes the equality/associated-type environment by the
// associated-type symbol and the canonical string form of its argument.
type EqKey struct {
	Assoc string
	ArgNF string
}

// EqEnv is the read-only associated-type reduction environment
// supplied by the upstream type inferencer.
type EqEnv map[EqKey]Type

// Lookup reduces one step through the equality environment.
func (e EqEnv) Lookup(assoc string, argNF string) (Type, bool) {
	t, ok := e[EqKey{Assoc: assoc, ArgNF: argNF}]
	return t, ok
}

// Root is the whole-program IR this pass consumes and produces.
type Root struct {
	Defs    map[string]*Def
	Sigs    map[string]*Sig
	Traits  map[string][]*Instance // trait symbol -> its instances
	Aliases map[string]*TypeAlias
	EqEnv   EqEnv
}

// NewRoot returns an empty root with initialized maps.
func NewRoot() *Root {
	return &Root{
		Defs:    make(map[string]*Def),
		Sigs:    make(map[string]*Sig),
		Traits:  make(map[string][]*Instance),
		Aliases: make(map[string]*TypeAlias),
		EqEnv:   make(EqEnv),
	}
}
