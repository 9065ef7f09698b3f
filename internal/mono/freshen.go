package mono

import (
	"fmt"
	"sync/atomic"

	"github.com/ailang-tools/monomorph/internal/mononame"
)

// Freshener mints local symbols guaranteed distinct across the whole
// run. A single Freshener is shared by every parallel wave of the
// Driver so that two defs specialized concurrently never mint
// colliding names; the counter is a plain atomic uint64.
type Freshener struct {
	counter uint64
}

// NewFreshener returns a Freshener starting from zero.
func NewFreshener() *Freshener {
	return &Freshener{}
}

// Fresh mints a new name derived from base, guaranteed distinct from
// every other name this Freshener has minted. base is NFC-normalized
// first so that two source identifiers differing only in Unicode
// normalization form never mint names that merely look identical.
func (f *Freshener) Fresh(base string) string {
	n := atomic.AddUint64(&f.counter, 1)
	return fmt.Sprintf("%s~%d", mononame.Normalize(base), n)
}

// renameEnv maps a def's original local binder names to the fresh
// names minted for one particular specialization of that def. Passed
// alongside the type substitution through every recursive call of the
// Expression Specializer; extending it is how Lambda/Let/LetRec/Scope/
// Match/handler binders freshen their scope.
type renameEnv map[string]string

// extend returns a new renameEnv with name bound to its fresh form,
// leaving the receiver untouched.
func (e renameEnv) extend(name, fresh string) renameEnv {
	next := make(renameEnv, len(e)+1)
	for k, v := range e {
		next[k] = v
	}
	next[name] = fresh
	return next
}
