package mono

import (
	"github.com/ailang-tools/monomorph/internal/air"
	aerrors "github.com/ailang-tools/monomorph/internal/errors"
	"github.com/ailang-tools/monomorph/internal/monotypes"
)

// Specializer rewrites an expression under a type substitution and a
// local-binder rename environment, freshening every binder it passes
// through and demanding further specializations from the Registry as
// it encounters definition and signature references.
type Specializer struct {
	root     *air.Root
	registry *Registry
	fresh    *Freshener
}

// NewSpecializer builds a Specializer over root, sharing registry and
// fresh with every other Specializer the Driver creates for the same
// run, so fresh symbols stay disjoint and the memo stays coherent
// across parallel waves. Trait resolution happens when the Driver
// dequeues a signature's work item; by the time a body reaches the
// Specializer, any SigRef inside it is just another reference to
// request.
func NewSpecializer(root *air.Root, registry *Registry, fresh *Freshener) *Specializer {
	return &Specializer{root: root, registry: registry, fresh: fresh}
}

// Expr specializes e under subst (the type substitution demanded for
// this instantiation) and names (the local-binder rename map
// accumulated so far), returning the rewritten, fully monomorphic
// expression.
func (sp *Specializer) Expr(e air.Expr, subst *monotypes.Subst, names renameEnv) (result air.Expr, err error) {
	defer recoverToICE(aerrors.MONO001, e.Span(), &err)

	switch ee := e.(type) {
	case *air.Var:
		fresh, ok := names[ee.Sym]
		if !ok {
			return nil, newICE(aerrors.MONO003, ee.Span(), "unbound variable during specialization", opStr(ee.Sym))
		}
		return &air.Var{Node: ee.Node, Sym: fresh}, nil

	case *air.DefRef:
		erased := monotypes.Erase(subst.Apply(ee.Type), sp.root.EqEnv)
		freshSym := sp.registry.Request(ee.Sym, erased)
		return &air.DefRef{Node: ee.Node, Sym: freshSym, Type: erased}, nil

	case *air.SigRef:
		if _, ok := sp.root.Sigs[ee.Sym]; !ok {
			return nil, newICE(aerrors.MONO003, ee.Span(), "signature not found", opStr(ee.Sym))
		}
		erased := monotypes.Erase(subst.Apply(ee.Type), sp.root.EqEnv)
		freshSym := sp.registry.Request(ee.Sym, erased)
		return &air.DefRef{Node: ee.Node, Sym: freshSym, Type: erased}, nil

	case *air.Const:
		cp := *ee
		return &cp, nil

	case *air.Lambda:
		freshSym := sp.fresh.Fresh(ee.Param.Sym)
		param := air.Param{Sym: freshSym, Type: subst.Apply(ee.Param.Type)}
		body, err := sp.Expr(ee.Body, subst, names.extend(ee.Param.Sym, freshSym))
		if err != nil {
			return nil, err
		}
		return &air.Lambda{Node: ee.Node, Param: param, Body: body}, nil

	case *air.Apply:
		fn, err := sp.Expr(ee.Fn, subst, names)
		if err != nil {
			return nil, err
		}
		args, err := sp.exprs(ee.Args, subst, names)
		if err != nil {
			return nil, err
		}
		return &air.Apply{Node: ee.Node, Fn: fn, Args: args}, nil

	case *air.ApplyAtomic:
		args, err := sp.exprs(ee.Args, subst, names)
		if err != nil {
			return nil, err
		}
		return &air.ApplyAtomic{Node: ee.Node, Op: ee.Op, Args: args}, nil

	case *air.Do:
		args, err := sp.exprs(ee.Args, subst, names)
		if err != nil {
			return nil, err
		}
		return &air.Do{Node: ee.Node, Effect: ee.Effect, Op: ee.Op, Args: args}, nil

	case *air.Let:
		value, err := sp.Expr(ee.Value, subst, names)
		if err != nil {
			return nil, err
		}
		freshSym := sp.fresh.Fresh(ee.Sym)
		body, err := sp.Expr(ee.Body, subst, names.extend(ee.Sym, freshSym))
		if err != nil {
			return nil, err
		}
		return &air.Let{Node: ee.Node, Sym: freshSym, Value: value, Body: body}, nil

	case *air.LetRec:
		innerNames := names
		freshSyms := make([]string, len(ee.Bindings))
		for i, b := range ee.Bindings {
			freshSyms[i] = sp.fresh.Fresh(b.Sym)
			innerNames = innerNames.extend(b.Sym, freshSyms[i])
		}
		bindings := make([]air.RecBinding, len(ee.Bindings))
		for i, b := range ee.Bindings {
			v, err := sp.Expr(b.Value, subst, innerNames)
			if err != nil {
				return nil, err
			}
			bindings[i] = air.RecBinding{Sym: freshSyms[i], Value: v}
		}
		body, err := sp.Expr(ee.Body, subst, innerNames)
		if err != nil {
			return nil, err
		}
		return &air.LetRec{Node: ee.Node, Bindings: bindings, Body: body}, nil

	case *air.Scope:
		freshSym := sp.fresh.Fresh(ee.Sym)
		freshRegion := sp.fresh.Fresh(ee.Region)
		// The region variable is rebound to the universal effect for the
		// duration of the body: anything allocated in this region erases
		// as impure, never as a still-open effect variable. The outer
		// substitution stays in force for the surrounding types.
		bodySubst := subst.Unbind(ee.Region).Extend(ee.Region, air.TImpure)
		body, err := sp.Expr(ee.Body, bodySubst, names.extend(ee.Sym, freshSym))
		if err != nil {
			return nil, err
		}
		return &air.Scope{Node: ee.Node, Sym: freshSym, Region: freshRegion, Body: body}, nil

	case *air.IfThenElse:
		cond, err := sp.Expr(ee.Cond, subst, names)
		if err != nil {
			return nil, err
		}
		then, err := sp.Expr(ee.Then, subst, names)
		if err != nil {
			return nil, err
		}
		els, err := sp.Expr(ee.Else, subst, names)
		if err != nil {
			return nil, err
		}
		return &air.IfThenElse{Node: ee.Node, Cond: cond, Then: then, Else: els}, nil

	case *air.Stm:
		first, err := sp.Expr(ee.First, subst, names)
		if err != nil {
			return nil, err
		}
		second, err := sp.Expr(ee.Second, subst, names)
		if err != nil {
			return nil, err
		}
		return &air.Stm{Node: ee.Node, First: first, Second: second}, nil

	case *air.Discard:
		value, err := sp.Expr(ee.Value, subst, names)
		if err != nil {
			return nil, err
		}
		return &air.Discard{Node: ee.Node, Value: value}, nil

	case *air.Match:
		scrutinee, err := sp.Expr(ee.Scrutinee, subst, names)
		if err != nil {
			return nil, err
		}
		rules := make([]air.MatchRule, len(ee.Rules))
		for i, r := range ee.Rules {
			pat, innerNames := freshenPattern(r.Pattern, sp.fresh, names)
			var guard air.Expr
			if r.Guard != nil {
				guard, err = sp.Expr(r.Guard, subst, innerNames)
				if err != nil {
					return nil, err
				}
			}
			body, err := sp.Expr(r.Body, subst, innerNames)
			if err != nil {
				return nil, err
			}
			rules[i] = air.MatchRule{Pattern: pat, Guard: guard, Body: body}
		}
		return &air.Match{Node: ee.Node, Scrutinee: scrutinee, Rules: rules}, nil

	case *air.TypeMatch:
		scrutinee, err := sp.Expr(ee.Scrutinee, subst, names)
		if err != nil {
			return nil, err
		}
		// The scrutinee's own free variables are marked rigid so a rule
		// cannot match by over-generalizing a variable the scrutinee has
		// already pinned down: an empty list of a fresh variable must
		// not unify with a list of some concrete element type.
		nonStrictScrutTy := subst.ApplyRaw(ee.ScrutineeType)
		rigid := map[string]bool{}
		for _, name := range air.SortedVarNames(nonStrictScrutTy) {
			rigid[name] = true
		}

		for _, r := range ee.Rules {
			ruleTy := subst.ApplyRaw(r.Type)
			caseSubst, uerr := monotypes.Unify(nonStrictScrutTy, ruleTy, rigid, sp.root.EqEnv)
			if uerr != nil {
				continue
			}
			composed := subst.ComposeCase(caseSubst)
			freshSym := sp.fresh.Fresh(r.Sym)
			body, err := sp.Expr(r.Body, composed, names.extend(r.Sym, freshSym))
			if err != nil {
				return nil, err
			}
			// Rewrite the matched rule as an equivalent let-binding:
			// the runtime type test is fully resolved at
			// specialization time, so nothing is left to dispatch on.
			return &air.Let{Node: ee.Node, Sym: freshSym, Value: scrutinee, Body: body}, nil
		}

		return nil, newICE(aerrors.MONO001, ee.Span(), "no typematch rule matched scrutinee type", opType(nonStrictScrutTy))

	case *air.VectorLit:
		elems, err := sp.exprs(ee.Elems, subst, names)
		if err != nil {
			return nil, err
		}
		return &air.VectorLit{Node: ee.Node, Elems: elems}, nil

	case *air.VectorLoad:
		vec, err := sp.Expr(ee.Vec, subst, names)
		if err != nil {
			return nil, err
		}
		idx, err := sp.Expr(ee.Index, subst, names)
		if err != nil {
			return nil, err
		}
		return &air.VectorLoad{Node: ee.Node, Vec: vec, Index: idx}, nil

	case *air.VectorLength:
		vec, err := sp.Expr(ee.Vec, subst, names)
		if err != nil {
			return nil, err
		}
		return &air.VectorLength{Node: ee.Node, Vec: vec}, nil

	case *air.Ascribe:
		value, err := sp.Expr(ee.Value, subst, names)
		if err != nil {
			return nil, err
		}
		return &air.Ascribe{Node: ee.Node, Value: value, Type: subst.Apply(ee.Type)}, nil

	case *air.Cast:
		// Casts exist to carry a source-declared annotation past type
		// checking; once specialized there is nothing left for them to
		// do, so the cast itself is dropped.
		return sp.Expr(ee.Value, subst, names)

	case *air.TryCatch:
		body, err := sp.Expr(ee.Body, subst, names)
		if err != nil {
			return nil, err
		}
		catches := make([]air.CatchRule, len(ee.Catches))
		for i, c := range ee.Catches {
			freshSym := sp.fresh.Fresh(c.Sym)
			cbody, err := sp.Expr(c.Body, subst, names.extend(c.Sym, freshSym))
			if err != nil {
				return nil, err
			}
			catches[i] = air.CatchRule{Sym: freshSym, ExnType: subst.Apply(c.ExnType), Body: cbody}
		}
		return &air.TryCatch{Node: ee.Node, Body: body, Catches: catches}, nil

	case *air.TryWith:
		body, err := sp.Expr(ee.Body, subst, names)
		if err != nil {
			return nil, err
		}
		rules := make([]air.HandlerRule, len(ee.Rules))
		for i, hr := range ee.Rules {
			params, innerNames := sp.freshenParams(hr.Params, subst, names)
			hbody, err := sp.Expr(hr.Body, subst, innerNames)
			if err != nil {
				return nil, err
			}
			rules[i] = air.HandlerRule{Op: hr.Op, Params: params, Body: hbody}
		}
		return &air.TryWith{Node: ee.Node, Body: body, Effect: ee.Effect, Rules: rules}, nil

	case *air.NewObject:
		methods := make([]air.ObjectMethod, len(ee.Methods))
		for i, m := range ee.Methods {
			params, innerNames := sp.freshenParams(m.Params, subst, names)
			mbody, err := sp.Expr(m.Body, subst, innerNames)
			if err != nil {
				return nil, err
			}
			methods[i] = air.ObjectMethod{Name: m.Name, Params: params, Body: mbody}
		}
		return &air.NewObject{Node: ee.Node, ClassName: ee.ClassName, Methods: methods}, nil

	default:
		return nil, newICE(aerrors.MONO001, e.Span(), "unhandled expression node during specialization")
	}
}

func (sp *Specializer) exprs(es []air.Expr, subst *monotypes.Subst, names renameEnv) ([]air.Expr, error) {
	out := make([]air.Expr, len(es))
	for i, e := range es {
		r, err := sp.Expr(e, subst, names)
		if err != nil {
			return nil, err
		}
		out[i] = r
	}
	return out, nil
}

func (sp *Specializer) freshenParams(params []air.Param, subst *monotypes.Subst, names renameEnv) ([]air.Param, renameEnv) {
	out := make([]air.Param, len(params))
	cur := names
	for i, p := range params {
		freshSym := sp.fresh.Fresh(p.Sym)
		out[i] = air.Param{Sym: freshSym, Type: subst.Apply(p.Type)}
		cur = cur.extend(p.Sym, freshSym)
	}
	return out, cur
}

// freshenPattern rewrites p with every bound local replaced by a fresh
// name, returning the rewritten pattern and the rename environment
// extended with those bindings.
func freshenPattern(p air.Pattern, fresh *Freshener, names renameEnv) (air.Pattern, renameEnv) {
	switch pp := p.(type) {
	case *air.PWildcard:
		return pp, names
	case *air.PVar:
		freshSym := fresh.Fresh(pp.Sym)
		return &air.PVar{Sym: freshSym}, names.extend(pp.Sym, freshSym)
	case *air.PConst:
		return pp, names
	case *air.PTag:
		args := make([]air.Pattern, len(pp.Args))
		cur := names
		for i, a := range pp.Args {
			args[i], cur = freshenPattern(a, fresh, cur)
		}
		return &air.PTag{Tag: pp.Tag, Args: args}, cur
	case *air.PTuple:
		elems := make([]air.Pattern, len(pp.Elems))
		cur := names
		for i, el := range pp.Elems {
			elems[i], cur = freshenPattern(el, fresh, cur)
		}
		return &air.PTuple{Elems: elems}, cur
	case *air.PRecord:
		labels := make([]air.LabelPattern, len(pp.Labels))
		cur := names
		for i, l := range pp.Labels {
			var np air.Pattern
			np, cur = freshenPattern(l.Pattern, fresh, cur)
			labels[i] = air.LabelPattern{Label: l.Label, Pattern: np}
		}
		return &air.PRecord{Labels: labels}, cur
	case *air.PEmptyRecord:
		return pp, names
	default:
		return pp, names
	}
}
