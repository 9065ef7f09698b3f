// Package mononame normalizes source-level identifiers before they are
// used as keys or combined into fresh names, so that two
// visually-identical but differently-encoded identifiers (e.g. an
// accented letter written as one precomposed codepoint vs. a base
// letter plus a combining mark) are never treated as distinct symbols.
package mononame

import (
	"golang.org/x/text/unicode/norm"
)

// Normalize applies Unicode NFC normalization to a source identifier.
// IsNormalString is cheap and avoids allocation when sym is already
// normalized, which is the common case for ASCII identifiers.
func Normalize(sym string) string {
	if norm.NFC.IsNormalString(sym) {
		return sym
	}
	return norm.NFC.String(sym)
}
