// Package digits holds the stateless helpers shared by the document handlers:
// cleaning free-form input down to decimal digits and the injected random
// source used to synthesize sample documents.
package digits

import (
	"math/rand/v2"
	"strings"
)

// Source is the random source consumed by the Generate functions.
// *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	Int64N(n int64) int64
}

// NewSource returns a deterministic source for the given seed.
// The returned generator is not safe for concurrent use.
func NewSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewRandomSource returns a randomly seeded source.
func NewRandomSource() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// Clean drops every character that is not an ASCII decimal digit.
func Clean(input string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, input)
}

// AllSame reports whether s is non-empty and made of a single repeated byte.
func AllSame(s string) bool {
	if s == "" {
		return false
	}
	for i := 1; i < len(s); i++ {
		if s[i] != s[0] {
			return false
		}
	}
	return true
}

// Values converts a cleaned digit string into its numeric digits.
func Values(s string) []int {
	out := make([]int, len(s))
	for i := 0; i < len(s); i++ {
		out[i] = int(s[i] - '0')
	}
	return out
}

// Verifier folds a weighted sum into a check digit: ((10*sum) mod 11) mod 10.
func Verifier(sum int) int {
	return ((10 * sum) % 11) % 10
}

// Mod11 is the generator-side form of the check digit: 0 when sum mod 11 is
// below 2, otherwise 11 - (sum mod 11). It agrees with Verifier for every sum.
func Mod11(sum int) int {
	r := sum % 11
	if r < 2 {
		return 0
	}
	return 11 - r
}
