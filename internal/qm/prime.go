package qm

// round is the outcome of one tabulation pass over a generation of terms.
type round struct {
	// next holds the de-duplicated products of every successful combination.
	next []Term
	// unused holds the terms that combined with nothing, in scan order.
	unused []Term
}

func (r round) combined() bool {
	return len(r.next) > 0
}

// PrimeImplicants runs the tabulation method to a fixed point and returns
// every prime implicant of the function, de-duplicated, in the order they
// were frozen.
func PrimeImplicants(numVars int, minterms []int) []Term {
	current := make([]Term, 0, len(minterms))
	for _, m := range minterms {
		current = append(current, NewTerm(m, numVars))
	}

	var primes []Term
	for {
		r := combineRound(current)
		for _, t := range r.unused {
			primes = appendUnique(primes, t)
		}
		if !r.combined() {
			break
		}
		current = r.next
	}
	return primes
}

// combineRound compares every unordered pair of terms once. It does not
// mutate its input.
func combineRound(terms []Term) round {
	var r round
	used := make([]bool, len(terms))

	for i := 0; i < len(terms); i++ {
		for j := i + 1; j < len(terms); j++ {
			if hammingDistance(terms[i].Pattern, terms[j].Pattern) != 1 {
				continue
			}
			r.next = appendUnique(r.next, terms[i].combine(terms[j]))
			used[i] = true
			used[j] = true
		}
	}

	for i, t := range terms {
		if !used[i] {
			r.unused = append(r.unused, t)
		}
	}
	return r
}
