// Package qm implements Quine-McCluskey minimization of single-output
// Boolean functions.
//
// A function is given by its minterms. Minimization runs in four stages:
//   - each minterm is encoded as a fixed-width bit pattern
//   - terms differing in exactly one position are merged round by round
//     until nothing merges; terms left over in a round are prime implicants
//   - a prime that is the only cover of some minterm is essential
//   - minterms the essentials miss are covered greedily, always taking the
//     prime that covers the most of what is left
//
// The greedy cover is a heuristic. It does not search for a globally
// minimal sum of products (Petrick's method), and don't-care terms are not
// supported.
package qm
