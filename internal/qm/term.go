package qm

import (
	"slices"
	"strings"
)

const (
	bitZero  = '0'
	bitOne   = '1'
	wildcard = '-'
)

// Term is a product term: a bit pattern with optional wildcard positions
// and the set of input minterms it covers.
type Term struct {
	Pattern string
	// Covered is kept sorted and free of duplicates.
	Covered []int
}

// NewTerm creates the singleton term for minterm m.
func NewTerm(m, numVars int) Term {
	return Term{
		Pattern: Encode(m, numVars),
		Covered: []int{m},
	}
}

// Encode converts a minterm to its fixed-width binary pattern, most
// significant bit first. The caller is responsible for range checks.
func Encode(m, numVars int) string {
	var b strings.Builder
	b.Grow(numVars)
	for i := numVars - 1; i >= 0; i-- {
		if m&(1<<i) != 0 {
			b.WriteByte(bitOne)
		} else {
			b.WriteByte(bitZero)
		}
	}
	return b.String()
}

// Equal reports whether both the pattern and the covered set match.
func (t Term) Equal(other Term) bool {
	return t.Pattern == other.Pattern && slices.Equal(t.Covered, other.Covered)
}

// Covers reports whether m is in the covered set.
func (t Term) Covers(m int) bool {
	_, found := slices.BinarySearch(t.Covered, m)
	return found
}

// Size returns the number of minterms covered.
func (t Term) Size() int {
	return len(t.Covered)
}

func (t Term) combine(other Term) Term {
	pattern := []byte(t.Pattern)
	for i := range pattern {
		if pattern[i] != other.Pattern[i] {
			pattern[i] = wildcard
		}
	}
	return Term{
		Pattern: string(pattern),
		Covered: union(t.Covered, other.Covered),
	}
}

// hammingDistance counts differing characters; '-' against a digit is a
// mismatch like any other.
func hammingDistance(a, b string) int {
	dist := 0
	for i := 0; i < len(a); i++ {
		if a[i] != b[i] {
			dist++
		}
	}
	return dist
}

// union merges two sorted sets.
func union(a, b []int) []int {
	out := make([]int, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			out = append(out, a[i])
			i++
		case a[i] > b[j]:
			out = append(out, b[j])
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	out = append(out, a[i:]...)
	return append(out, b[j:]...)
}

func containsTerm(terms []Term, t Term) bool {
	return indexOfTerm(terms, t) >= 0
}

func indexOfTerm(terms []Term, t Term) int {
	return slices.IndexFunc(terms, t.Equal)
}

func appendUnique(terms []Term, t Term) []Term {
	if containsTerm(terms, t) {
		return terms
	}
	return append(terms, t)
}
