// Package verify checks a sum-of-products cover against the function it
// was derived from.
//
// A cover is a list of patterns over {0,1,-}. The verifier evaluates the
// cover on every input of the function and compares it with minterm
// membership, so the check is exhaustive and limited to small variable
// counts (see DefaultMaxVars).
//
// Results:
//   - Equivalent: the cover is true exactly on the minterms
//   - NotEquivalent: a pattern is malformed, or some input disagrees
//     (reported with a counterexample)
//   - Unknown: the function has too many variables to enumerate
package verify
