package mono

import (
	"sync"
	"testing"

	"github.com/ailang-tools/monomorph/internal/air"
)

func TestRegistryRequestIsIdempotent(t *testing.T) {
	r := NewRegistry()
	intT := &air.TConst{Name: "Int", K: air.Value}

	first := r.Request("id", intT)
	second := r.Request("id", intT)
	if first != second {
		t.Errorf("Request(id, Int) minted two different symbols: %s, %s", first, second)
	}

	items := r.Drain()
	if len(items) != 1 {
		t.Fatalf("expected exactly one pending item, got %d", len(items))
	}
	if items[0].FreshSym != first {
		t.Errorf("pending item fresh symbol = %s, want %s", items[0].FreshSym, first)
	}
}

func TestRegistryRequestDistinctForDistinctTypes(t *testing.T) {
	r := NewRegistry()
	intT := &air.TConst{Name: "Int", K: air.Value}
	boolT := &air.TConst{Name: "Bool", K: air.Value}

	a := r.Request("id", intT)
	b := r.Request("id", boolT)
	if a == b {
		t.Errorf("Request(id, Int) and Request(id, Bool) minted the same symbol %s", a)
	}
}

// TestRegistryConcurrentRequestsAreCoherent: many goroutines racing
// to request the same (symbol, type) pair must all observe the same
// fresh symbol and the registry must only queue one work item for it.
func TestRegistryConcurrentRequestsAreCoherent(t *testing.T) {
	r := NewRegistry()
	intT := &air.TConst{Name: "Int", K: air.Value}

	const n = 64
	results := make([]string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = r.Request("id", intT)
		}()
	}
	wg.Wait()

	for i := 1; i < n; i++ {
		if results[i] != results[0] {
			t.Fatalf("goroutine %d saw symbol %s, want %s", i, results[i], results[0])
		}
	}
	if items := r.Drain(); len(items) != 1 {
		t.Fatalf("expected one queued item after concurrent requests, got %d", len(items))
	}
}

func TestRegistryStoreResultTwicePanics(t *testing.T) {
	r := NewRegistry()
	def := &air.Def{Sym: "x", Spec: &air.Spec{}, Body: &air.Const{Kind: air.UnitConst, Value: nil}}
	r.StoreResult("x", def)

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on duplicate StoreResult")
		}
	}()
	r.StoreResult("x", def)
}
