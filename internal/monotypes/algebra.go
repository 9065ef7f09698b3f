package monotypes

import (
	"sort"

	"github.com/ailang-tools/monomorph/internal/air"
)

// Smart constructors for the Boolean-effect and case-set connectives,
// normalizing the identity/absorption laws. Applied by substitution
// and by erasure, after recursion into the operands, so operands here
// are already normalized.

func typeEqual(a, b air.Type) bool {
	return CanonicalKey(a) == CanonicalKey(b)
}

func mkEffComplement(x air.Type) air.Type {
	switch {
	case typeEqual(x, air.TPure):
		return air.TImpure
	case typeEqual(x, air.TImpure):
		return air.TPure
	}
	if c, ok := x.(*air.EffComplement); ok {
		return c.X // ¬¬x = x
	}
	return &air.EffComplement{X: x}
}

func mkEffUnion(a, b air.Type) air.Type {
	switch {
	case typeEqual(a, air.TPure):
		return b
	case typeEqual(b, air.TPure):
		return a
	case typeEqual(a, air.TImpure), typeEqual(b, air.TImpure):
		return air.TImpure
	case typeEqual(a, b):
		return a
	}
	return &air.EffUnion{A: a, B: b}
}

func mkEffIntersection(a, b air.Type) air.Type {
	switch {
	case typeEqual(a, air.TImpure):
		return b
	case typeEqual(b, air.TImpure):
		return a
	case typeEqual(a, air.TPure), typeEqual(b, air.TPure):
		return air.TPure
	case typeEqual(a, b):
		return a
	}
	return &air.EffIntersection{A: a, B: b}
}

func isEmptyCaseSet(enum string, t air.Type) bool {
	cs, ok := t.(*air.CaseTagSet)
	return ok && cs.Enum == enum && len(cs.Tags) == 0
}

func mkCaseComplement(enum string, x air.Type) air.Type {
	if c, ok := x.(*air.CaseComplement); ok && c.Enum == enum {
		return c.X // double complement
	}
	return &air.CaseComplement{Enum: enum, X: x}
}

func mkCaseUnion(enum string, a, b air.Type) air.Type {
	switch {
	case isEmptyCaseSet(enum, a):
		return b
	case isEmptyCaseSet(enum, b):
		return a
	case typeEqual(a, b):
		return a
	}
	if sa, ok := a.(*air.CaseTagSet); ok {
		if sb, ok := b.(*air.CaseTagSet); ok && sa.Enum == enum && sb.Enum == enum {
			return &air.CaseTagSet{Enum: enum, Tags: sortedUnion(sa.Tags, sb.Tags)}
		}
	}
	return &air.CaseUnion{Enum: enum, A: a, B: b}
}

func mkCaseIntersection(enum string, a, b air.Type) air.Type {
	switch {
	case isEmptyCaseSet(enum, a):
		return a
	case isEmptyCaseSet(enum, b):
		return b
	case typeEqual(a, b):
		return a
	}
	if sa, ok := a.(*air.CaseTagSet); ok {
		if sb, ok := b.(*air.CaseTagSet); ok && sa.Enum == enum && sb.Enum == enum {
			return &air.CaseTagSet{Enum: enum, Tags: sortedIntersect(sa.Tags, sb.Tags)}
		}
	}
	return &air.CaseIntersection{Enum: enum, A: a, B: b}
}

func sortedUnion(a, b []string) []string {
	set := map[string]bool{}
	for _, t := range a {
		set[t] = true
	}
	for _, t := range b {
		set[t] = true
	}
	out := make([]string, 0, len(set))
	for t := range set {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

func sortedIntersect(a, b []string) []string {
	bs := map[string]bool{}
	for _, t := range b {
		bs[t] = true
	}
	var out []string
	for _, t := range a {
		if bs[t] {
			out = append(out, t)
		}
	}
	sort.Strings(out)
	return out
}
