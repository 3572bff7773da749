package qm

// EssentialPrimeImplicants returns the primes that are the only cover of at
// least one minterm. Minterms are visited in input order and each essential
// is reported once, at its first occurrence.
func EssentialPrimeImplicants(primes []Term, minterms []int) []Term {
	var essentials []Term
	for _, m := range minterms {
		count := 0
		var sole Term
		for _, p := range primes {
			if p.Covers(m) {
				count++
				sole = p
			}
		}
		if count == 1 {
			essentials = appendUnique(essentials, sole)
		}
	}
	return essentials
}
