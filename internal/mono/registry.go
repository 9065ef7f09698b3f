package mono

import (
	"fmt"
	"sync"

	"github.com/ailang-tools/monomorph/internal/air"
	aerrors "github.com/ailang-tools/monomorph/internal/errors"
	"github.com/ailang-tools/monomorph/internal/mononame"
	"github.com/ailang-tools/monomorph/internal/monotypes"
)

// memoKey identifies one specialization request: the source symbol
// plus the canonical string form of the erased type it was demanded
// at, so structurally equal types collide regardless of how they were
// built.
type memoKey struct {
	sourceSym string
	typeKey   string
}

// workItem is one queued specialization request: the fresh symbol
// already minted for it, the source definition or trait signature it
// specializes, and the erased type it was demanded at. The Driver
// recomputes the substitution from SourceSym's declared scheme (or,
// for a trait signature, from the Trait Resolver's matched instance)
// when it dequeues the item, rather than carrying one here — a
// signature's resolution is type-dependent and cheap to redo, and
// doing it at dequeue time keeps the Registry itself free of any
// dependency on Root or the Resolver.
type workItem struct {
	FreshSym  string
	SourceSym string
	Erased    air.Type
}

// Registry is the shared state of one monomorphization run: a
// thread-safe memo from (source symbol, erased type) to the fresh
// symbol already minted for it, a pending-work queue of
// not-yet-specialized requests, and a result store of completed
// specializations.
type Registry struct {
	mu      sync.Mutex
	memo    map[memoKey]string
	results map[string]*air.Def
	pending []workItem
	next    uint64
}

// NewRegistry returns an empty Specialization Registry.
func NewRegistry() *Registry {
	return &Registry{
		memo:    make(map[memoKey]string),
		results: make(map[string]*air.Def),
	}
}

// Request returns the fresh symbol for specializing sourceSym at
// erasedType, minting one and enqueuing the work if this is the first
// time this (symbol, type) pair has been requested. The check and the
// mint happen under one lock, so two goroutines racing to request the
// same specialization never mint two fresh symbols for it.
func (r *Registry) Request(sourceSym string, erasedType air.Type) string {
	sourceSym = mononame.Normalize(sourceSym)
	key := memoKey{sourceSym: sourceSym, typeKey: monotypes.CanonicalKey(erasedType)}

	r.mu.Lock()
	defer r.mu.Unlock()

	if fresh, ok := r.memo[key]; ok {
		return fresh
	}

	r.next++
	fresh := fmt.Sprintf("%s$%d", sourceSym, r.next)
	r.memo[key] = fresh
	r.pending = append(r.pending, workItem{
		FreshSym:  fresh,
		SourceSym: sourceSym,
		Erased:    erasedType,
	})
	return fresh
}

// Drain removes and returns every work item queued since the last
// call, for the Driver to process as one parallel wave. Returns nil
// once the queue is empty, the Driver's fixpoint signal.
func (r *Registry) Drain() []workItem {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := r.pending
	r.pending = nil
	return items
}

// StoreResult records the specialized definition for freshSym. Storing
// a result twice for the same symbol is a registry invariant
// violation, not a recoverable specialization failure — Request only
// ever mints a given fresh symbol once, so two stores for the same
// symbol means two goroutines specialized the same request
// concurrently, a genuine programmer bug in the Driver's wave
// scheduling. That panics past this package's API, unlike the ICE
// conditions in resolver.go/specializer.go which are expected runtime
// outcomes of a malformed (but type-checked) program.
func (r *Registry) StoreResult(freshSym string, def *air.Def) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.results[freshSym]; exists {
		info, _ := aerrors.GetErrorInfo(aerrors.MONO007)
		panic(fmt.Sprintf("%s: %s: duplicate result store for %s", aerrors.MONO007, info.Description, freshSym))
	}
	r.results[freshSym] = def
}

// Results returns every completed specialization, keyed by fresh
// symbol, once the Driver has reached a fixpoint.
func (r *Registry) Results() map[string]*air.Def {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]*air.Def, len(r.results))
	for k, v := range r.results {
		out[k] = v
	}
	return out
}
