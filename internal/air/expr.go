package air

import (
	"fmt"

	"github.com/ailang-tools/monomorph/internal/ast"
)

// Node is embedded by every Expr: a stable id plus the specialized
// and original source spans. Fresh copies keep their own node identity
// but must still point back at the surface position for downstream
// diagnostics.
type Node struct {
	NodeID   uint64
	CoreSpan ast.Pos
	OrigSpan ast.Pos
}

func (n Node) Span() ast.Pos { return n.CoreSpan }
func (n Node) OriginalSpan() ast.Pos { return n.OrigSpan }

// Expr is the base interface for every expression node.
type Expr interface {
	Span() ast.Pos
	OriginalSpan() ast.Pos
	String() string
	exprNode()
}

// Var is a reference to a local binder.
type Var struct {
	Node
	Sym string
}

func (e *Var) exprNode() {}
func (e *Var) String() string { return e.Sym }

// DefRef references a top-level definition at a concrete type.
type DefRef struct {
	Node
	Sym  string
	Type Type
}

func (e *DefRef) exprNode() {}
func (e *DefRef) String() string { return fmt.Sprintf("%s@%s", e.Sym, e.Type) }

// SigRef references a trait signature pending resolution. Every
// SigRef must be gone from the output, rewritten to the DefRef of a
// concrete specialization.
type SigRef struct {
	Node
	Sym  string
	Type Type
}

func (e *SigRef) exprNode() {}
func (e *SigRef) String() string { return fmt.Sprintf("sig(%s)@%s", e.Sym, e.Type) }

// ConstKind enumerates literal kinds.
type ConstKind int

const (
	IntConst ConstKind = iota
	FloatConst
	StringConst
	CharConst
	BoolConst
	UnitConst
)

// Const is a literal constant.
type Const struct {
	Node
	Kind  ConstKind
	Value interface{}
}

func (e *Const) exprNode() {}
func (e *Const) String() string { return fmt.Sprintf("%v", e.Value) }

// Lambda is a one-argument function abstraction.
type Lambda struct {
	Node
	Param Param
	Body  Expr
}

func (e *Lambda) exprNode() {}
func (e *Lambda) String() string { return fmt.Sprintf("λ%s. %s", e.Param.Sym, e.Body) }

// Apply is general function application.
type Apply struct {
	Node
	Fn   Expr
	Args []Expr
}

func (e *Apply) exprNode() {}
func (e *Apply) String() string { return fmt.Sprintf("%s(%v)", e.Fn, e.Args) }

// ApplyAtomic is application of a built-in/intrinsic operator.
type ApplyAtomic struct {
	Node
	Op   string
	Args []Expr
}

func (e *ApplyAtomic) exprNode() {}
func (e *ApplyAtomic) String() string { return fmt.Sprintf("%s!(%v)", e.Op, e.Args) }

// Do invokes an algebraic effect operation.
type Do struct {
	Node
	Effect string
	Op     string
	Args   []Expr
}

func (e *Do) exprNode() {}
func (e *Do) String() string { return fmt.Sprintf("do %s.%s(%v)", e.Effect, e.Op, e.Args) }

// Let is a non-recursive binding.
type Let struct {
	Node
	Sym   string
	Value Expr
	Body  Expr
}

func (e *Let) exprNode() {}
func (e *Let) String() string { return fmt.Sprintf("let %s = %s in %s", e.Sym, e.Value, e.Body) }

// RecBinding is one binding within a LetRec.
type RecBinding struct {
	Sym   string
	Value Expr
}

// LetRec is a mutually-recursive binding group.
type LetRec struct {
	Node
	Bindings []RecBinding
	Body     Expr
}

func (e *LetRec) exprNode() {}
func (e *LetRec) String() string { return fmt.Sprintf("let rec %v in %s", e.Bindings, e.Body) }

// Scope introduces a region variable scoping allocation-like effects.
type Scope struct {
	Node
	Sym    string
	Region string // the region effect variable name
	Body   Expr
}

func (e *Scope) exprNode() {}
func (e *Scope) String() string { return fmt.Sprintf("region %s { %s }", e.Region, e.Body) }

// IfThenElse is a conditional.
type IfThenElse struct {
	Node
	Cond Expr
	Then Expr
	Else Expr
}

func (e *IfThenElse) exprNode() {}
func (e *IfThenElse) String() string { return fmt.Sprintf("if %s then %s else %s", e.Cond, e.Then, e.Else) }

// Stm is a statement sequence: evaluate First for effect, then Second.
type Stm struct {
	Node
	First  Expr
	Second Expr
}

func (e *Stm) exprNode() {}
func (e *Stm) String() string { return fmt.Sprintf("%s; %s", e.First, e.Second) }

// Discard evaluates Value and discards its result.
type Discard struct {
	Node
	Value Expr
}

func (e *Discard) exprNode() {}
func (e *Discard) String() string { return fmt.Sprintf("discard %s", e.Value) }

// MatchRule is one arm of a Match.
type MatchRule struct {
	Pattern Pattern
	Guard   Expr // nil if unguarded
	Body    Expr
}

// Match is ordinary structural pattern matching.
type Match struct {
	Node
	Scrutinee Expr
	Rules     []MatchRule
}

func (e *Match) exprNode() {}
func (e *Match) String() string { return fmt.Sprintf("match %s { %v }", e.Scrutinee, e.Rules) }

// TypeMatchRule is one arm of a TypeMatch: bind Sym if Scrutinee's
// type unifies with Type.
type TypeMatchRule struct {
	Sym  string
	Type Type
	Body Expr
}

// TypeMatch is a runtime type test with let-binding. ScrutineeType is
// the type-checker-assigned type of Scrutinee, carried
// separately because the dispatch needs its *non-strict* (non-
// defaulting) form to mark free variables rigid before probing each
// rule in turn.
type TypeMatch struct {
	Node
	Scrutinee     Expr
	ScrutineeType Type
	Rules         []TypeMatchRule
	ResultType    Type
}

func (e *TypeMatch) exprNode() {}
func (e *TypeMatch) String() string {
	return fmt.Sprintf("typematch %s { %v }", e.Scrutinee, e.Rules)
}

// VectorLit is a vector literal.
type VectorLit struct {
	Node
	Elems []Expr
}

func (e *VectorLit) exprNode() {}
func (e *VectorLit) String() string { return fmt.Sprintf("#[%v]", e.Elems) }

// VectorLoad indexes into a vector.
type VectorLoad struct {
	Node
	Vec   Expr
	Index Expr
}

func (e *VectorLoad) exprNode() {}
func (e *VectorLoad) String() string { return fmt.Sprintf("%s[%s]", e.Vec, e.Index) }

// VectorLength returns a vector's length.
type VectorLength struct {
	Node
	Vec Expr
}

func (e *VectorLength) exprNode() {}
func (e *VectorLength) String() string { return fmt.Sprintf("len(%s)", e.Vec) }

// Ascribe attaches a (load-bearing) type annotation.
type Ascribe struct {
	Node
	Value Expr
	Type  Type
}

func (e *Ascribe) exprNode() {}
func (e *Ascribe) String() string { return fmt.Sprintf("(%s : %s)", e.Value, e.Type) }

// Cast carries a source-declared type/effect annotation that is
// dropped during specialization.
type Cast struct {
	Node
	Value   Expr
	SrcType Type
	SrcEff  Type
}

func (e *Cast) exprNode() {}
func (e *Cast) String() string { return fmt.Sprintf("cast(%s)", e.Value) }

// CatchRule is one arm of a TryCatch (Java-style exception handling).
type CatchRule struct {
	Sym     string
	ExnType Type
	Body    Expr
}

// TryCatch is Java-style exception handling.
type TryCatch struct {
	Node
	Body    Expr
	Catches []CatchRule
}

func (e *TryCatch) exprNode() {}
func (e *TryCatch) String() string { return fmt.Sprintf("try %s catch %v", e.Body, e.Catches) }

// HandlerRule is one operation clause of a TryWith handler. The last
// parameter, by convention, is the continuation.
type HandlerRule struct {
	Op     string
	Params []Param
	Body   Expr
}

// TryWith is an algebraic-effect handler installation.
type TryWith struct {
	Node
	Body   Expr
	Effect string
	Rules  []HandlerRule
}

func (e *TryWith) exprNode() {}
func (e *TryWith) String() string { return fmt.Sprintf("try %s with %s %v", e.Body, e.Effect, e.Rules) }

// ObjectMethod is one method of a NewObject literal.
type ObjectMethod struct {
	Name   string
	Params []Param
	Body   Expr
}

// NewObject is an object literal with methods.
type NewObject struct {
	Node
	ClassName string
	Methods   []ObjectMethod
}

func (e *NewObject) exprNode() {}
func (e *NewObject) String() string { return fmt.Sprintf("new %s {%v}", e.ClassName, e.Methods) }
