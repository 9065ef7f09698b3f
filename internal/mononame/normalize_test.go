package mononame

import (
	"testing"

	"golang.org/x/text/unicode/norm"
)

func TestNormalizeNFD(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "already_nfc",
			input:    "caf\u00e9", // U+00E9, already NFC
			expected: "caf\u00e9",
		},
		{
			name:     "nfd_to_nfc",
			input:    "cafe\u0301", // e + combining acute accent (NFD)
			expected: "caf\u00e9",
		},
		{
			name:     "ascii_unchanged",
			input:    "counter",
			expected: "counter",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.input)
			if got != tt.expected {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.expected)
			}
			if !norm.NFC.IsNormalString(got) {
				t.Errorf("Normalize(%q) result %q is not NFC", tt.input, got)
			}
		})
	}
}

func TestNormalizeCollidesVisuallyIdenticalSymbols(t *testing.T) {
	precomposed := "caf\u00e9"
	decomposed := "cafe\u0301"
	if precomposed == decomposed {
		t.Fatal("test fixture broken: inputs must differ at the byte level")
	}
	if Normalize(precomposed) != Normalize(decomposed) {
		t.Errorf("Normalize did not collide visually identical symbols: %q vs %q", Normalize(precomposed), Normalize(decomposed))
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"id", "caf\u00e9", "cafe\u0301"}
	for _, in := range inputs {
		first := Normalize(in)
		second := Normalize(first)
		if first != second {
			t.Errorf("Normalize(%q) not idempotent: %q then %q", in, first, second)
		}
	}
}
