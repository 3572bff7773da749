package qm

// Analysis holds the intermediate tables of a minimization alongside the
// final cover.
type Analysis struct {
	Vars       int
	Primes     []Term
	Essentials []Term
	Patterns   []string
}

// Minimize reduces the function given by its minterms to a list of
// patterns over {0,1,-}, essentials first. Minterms must already be in
// range for numVars.
func Minimize(numVars int, minterms []int) ([]string, error) {
	a, err := Analyze(numVars, minterms)
	if err != nil {
		return nil, err
	}
	return a.Patterns, nil
}

// Analyze is Minimize keeping the prime and essential implicant tables.
func Analyze(numVars int, minterms []int) (Analysis, error) {
	primes := PrimeImplicants(numVars, minterms)
	essentials := EssentialPrimeImplicants(primes, minterms)

	patterns, err := Cover(primes, essentials, minterms)
	if err != nil {
		return Analysis{}, err
	}

	return Analysis{
		Vars:       numVars,
		Primes:     primes,
		Essentials: essentials,
		Patterns:   patterns,
	}, nil
}

// IsEssential reports whether t is one of the analysis' essentials.
func (a Analysis) IsEssential(t Term) bool {
	return containsTerm(a.Essentials, t)
}
