package mono

import (
	"sync"

	"github.com/ailang-tools/monomorph/internal/air"
	"github.com/ailang-tools/monomorph/internal/ast"
	aerrors "github.com/ailang-tools/monomorph/internal/errors"
	"github.com/ailang-tools/monomorph/internal/monotypes"
)

// Driver is the pass entry point: it seeds the registry with every
// non-parametric definition, then drains the pending queue to a
// fixpoint, specializing each wave's requests concurrently.
type Driver struct {
	root     *air.Root
	registry *Registry
	resolver *Resolver
	fresh    *Freshener
}

// NewDriver returns a Driver over root.
func NewDriver(root *air.Root) *Driver {
	return &Driver{
		root:     root,
		registry: NewRegistry(),
		resolver: NewResolver(root),
		fresh:    NewFreshener(),
	}
}

// Run executes the pass to completion, returning a new Root whose Defs
// are entirely monomorphic (empty TParams, concrete Scheme.Base) and
// whose Sigs/Traits tables are empty, every signature reference in the
// input having been resolved to a concrete definition along the way.
func (d *Driver) Run() (*air.Root, error) {
	d.seed()

	for {
		items := d.registry.Drain()
		if len(items) == 0 {
			break
		}
		if err := d.processWave(items); err != nil {
			return nil, err
		}
	}

	out := &air.Root{
		Defs:    d.registry.Results(),
		Sigs:    make(map[string]*air.Sig),
		Traits:  make(map[string][]*air.Instance),
		Aliases: d.root.Aliases,
		EqEnv:   d.root.EqEnv,
	}
	return out, nil
}

// seed requests a specialization for every definition whose declared
// scheme takes no type parameters. These are the program's entry
// points, reachable without any caller ever having demanded a concrete
// type for them; references inside their bodies prime the queue.
func (d *Driver) seed() {
	for _, def := range d.root.Defs {
		if len(def.Spec.TParams) == 0 {
			erased := monotypes.Erase(def.Spec.Scheme.Base, d.root.EqEnv)
			d.registry.Request(def.Sym, erased)
		}
	}
}

// processWave specializes every item queued in one round concurrently,
// keeping the first error encountered across the wave.
func (d *Driver) processWave(items []workItem) error {
	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	for _, item := range items {
		item := item
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := d.processOne(item); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	return firstErr
}

func (d *Driver) processOne(item workItem) error {
	sp := NewSpecializer(d.root, d.registry, d.fresh)

	if def, ok := d.root.Defs[item.SourceSym]; ok {
		s, uerr := monotypes.Unify(def.Spec.Scheme.Base, item.Erased, nil, d.root.EqEnv)
		if uerr != nil {
			return newICE(aerrors.MONO001, def.Spec.Pos, uerr.Error(), opStr(item.SourceSym), opType(item.Erased))
		}
		return d.specializeBody(sp, item, def.Spec, def.Body, s)
	}

	if sig, ok := d.root.Sigs[item.SourceSym]; ok {
		spec, body, instSubst, rerr := d.resolver.Resolve(sig, item.Erased)
		if rerr != nil {
			return rerr
		}
		return d.specializeBody(sp, item, spec, body, instSubst)
	}

	return newICE(aerrors.MONO003, ast.Pos{}, "work item names neither a def nor a signature", opStr(item.SourceSym))
}

// specializeBody freshens the formal parameters, rewrites the body in
// the extended rename environment, and stores the completed definition
// under the work item's fresh symbol.
func (d *Driver) specializeBody(sp *Specializer, item workItem, spec *air.Spec, body air.Expr, s *monotypes.Subst) error {
	params, env := sp.freshenParams(spec.Params, s, renameEnv{})
	sbody, err := sp.Expr(body, s, env)
	if err != nil {
		return err
	}
	out := monomorphicSpec(spec, s, item.Erased, params)
	d.registry.StoreResult(item.FreshSym, &air.Def{Sym: item.FreshSym, Spec: out, Body: sbody})
	return nil
}

// monomorphicSpec rebuilds original's header with every type run
// through s and all polymorphism stripped: empty TParams, a concrete
// Scheme.Base. The trait-constraint list is carried through with its
// types substituted; it is semantically vacuous after specialization
// but downstream diagnostics still read it.
func monomorphicSpec(original *air.Spec, s *monotypes.Subst, finalType air.Type, params []air.Param) *air.Spec {
	var constraints []air.Constraint
	for _, c := range original.Constraints {
		constraints = append(constraints, air.Constraint{Trait: c.Trait, Type: s.Apply(c.Type)})
	}
	return &air.Spec{
		Doc:         original.Doc,
		Annotations: original.Annotations,
		Modifiers:   original.Modifiers,
		TParams:     nil,
		Params:      params,
		Scheme:      air.Scheme{TVars: nil, Constraints: nil, Base: finalType},
		RetType:     applyOpt(s, original.RetType),
		EffType:     applyOpt(s, original.EffType),
		Constraints: constraints,
		Pos:         original.Pos,
	}
}

// applyOpt substitutes through t, tolerating headers that declare no
// return or effect type.
func applyOpt(s *monotypes.Subst, t air.Type) air.Type {
	if t == nil {
		return nil
	}
	return s.Apply(t)
}
