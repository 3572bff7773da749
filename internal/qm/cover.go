package qm

import (
	"slices"
)

// Cover completes the essentials into a cover of every minterm. Primes are
// picked greedily by how many still-uncovered minterms they cover; ties go
// to the candidate scanned first. The result lists the essentials' patterns
// followed by the greedy picks in selection order.
func Cover(primes, essentials []Term, minterms []int) ([]string, error) {
	result := make([]string, 0, len(essentials))
	covered := make(map[int]bool)
	for _, e := range essentials {
		result = append(result, e.Pattern)
		for _, m := range e.Covered {
			covered[m] = true
		}
	}

	remaining := newMintermSet(minterms, covered)
	if remaining.empty() {
		return result, nil
	}

	// Equal primes are not collapsed here; each selection removes one instance.
	candidates := make([]Term, 0, len(primes))
	for _, p := range primes {
		if remaining.countCovered(p) > 0 {
			candidates = append(candidates, p)
		}
	}

	for !remaining.empty() {
		best, bestCount := -1, 0
		for i, c := range candidates {
			if n := remaining.countCovered(c); n > bestCount {
				best, bestCount = i, n
			}
		}
		if bestCount == 0 {
			return nil, &CoverageError{Remaining: remaining.sorted()}
		}

		chosen := candidates[best]
		result = append(result, chosen.Pattern)
		remaining.removeAll(chosen.Covered)
		candidates = slices.Delete(candidates, best, best+1)
	}

	return result, nil
}

// mintermSet tracks the minterms still waiting for a cover.
type mintermSet map[int]struct{}

func newMintermSet(minterms []int, exclude map[int]bool) mintermSet {
	s := make(mintermSet)
	for _, m := range minterms {
		if !exclude[m] {
			s[m] = struct{}{}
		}
	}
	return s
}

func (s mintermSet) empty() bool {
	return len(s) == 0
}

func (s mintermSet) countCovered(t Term) int {
	n := 0
	for _, m := range t.Covered {
		if _, ok := s[m]; ok {
			n++
		}
	}
	return n
}

func (s mintermSet) removeAll(ms []int) {
	for _, m := range ms {
		delete(s, m)
	}
}

func (s mintermSet) sorted() []int {
	out := make([]int, 0, len(s))
	for m := range s {
		out = append(out, m)
	}
	slices.Sort(out)
	return out
}
