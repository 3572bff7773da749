package verify

import (
	"fmt"
	"slices"
)

// DefaultMaxVars bounds truth-table enumeration.
const DefaultMaxVars = 20

// VerificationResult represents the result of checking a cover.
type VerificationResult int

const (
	_ VerificationResult = iota
	// Equivalent indicates the cover evaluates true exactly on the minterms.
	Equivalent
	// NotEquivalent indicates at least one input disagrees.
	NotEquivalent
	// Unknown indicates the check was not performed.
	Unknown
)

func (r VerificationResult) String() string {
	switch r {
	case Equivalent:
		return "Equivalent"
	case NotEquivalent:
		return "NotEquivalent"
	case Unknown:
		return "Unknown"
	default:
		return "?"
	}
}

// ReasonCode provides a reason for the verification result.
type ReasonCode int

const (
	ReasonNone ReasonCode = iota
	ReasonSameTruthTable
	ReasonMissingMinterm
	ReasonExtraMinterm
	ReasonMalformedPattern
	ReasonTooManyVars
)

func (r ReasonCode) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonSameTruthTable:
		return "same output for all inputs"
	case ReasonMissingMinterm:
		return "minterm not covered"
	case ReasonExtraMinterm:
		return "cover includes a non-minterm"
	case ReasonMalformedPattern:
		return "malformed pattern"
	case ReasonTooManyVars:
		return "too many variables to enumerate"
	default:
		return "unknown"
	}
}

// Counterexample is an input on which the cover and the function disagree.
type Counterexample struct {
	Input    int
	Expected bool
}

// Report provides detailed information about a verification.
type Report struct {
	Result         VerificationResult
	Reason         ReasonCode
	Detail         string
	Counterexample *Counterexample
}

// Verifier checks covers against their truth tables.
type Verifier struct {
	MaxVars int
}

// New creates a verifier with DefaultMaxVars.
func New() *Verifier {
	return &Verifier{MaxVars: DefaultMaxVars}
}

// CheckCover enumerates every input of a numVars-variable function and
// compares the sum of products given by patterns with minterm membership.
func (v *Verifier) CheckCover(numVars int, minterms []int, patterns []string) Report {
	for _, p := range patterns {
		if err := ValidatePattern(p, numVars); err != nil {
			return Report{
				Result: NotEquivalent,
				Reason: ReasonMalformedPattern,
				Detail: err.Error(),
			}
		}
	}

	if numVars > v.maxVars() {
		return Report{
			Result: Unknown,
			Reason: ReasonTooManyVars,
			Detail: fmt.Sprintf("%d variables exceeds the limit of %d", numVars, v.maxVars()),
		}
	}

	expected := make(map[int]bool, len(minterms))
	for _, m := range minterms {
		expected[m] = true
	}

	for input := 0; input < 1<<numVars; input++ {
		want := expected[input]
		if got := Evaluate(patterns, input); got != want {
			reason := ReasonMissingMinterm
			if got {
				reason = ReasonExtraMinterm
			}
			return Report{
				Result:         NotEquivalent,
				Reason:         reason,
				Detail:         fmt.Sprintf("input %d: expected %t, cover gives %t", input, want, got),
				Counterexample: &Counterexample{Input: input, Expected: want},
			}
		}
	}

	return Report{
		Result: Equivalent,
		Reason: ReasonSameTruthTable,
	}
}

func (v *Verifier) maxVars() int {
	if v.MaxVars <= 0 {
		return DefaultMaxVars
	}
	return v.MaxVars
}

// Evaluate reports whether any pattern matches input.
func Evaluate(patterns []string, input int) bool {
	return slices.ContainsFunc(patterns, func(p string) bool {
		return Matches(p, input)
	})
}

// Matches reports whether input, read as a len(pattern)-bit number with the
// most significant bit first, agrees with every non-wildcard position.
func Matches(pattern string, input int) bool {
	n := len(pattern)
	for i := 0; i < n; i++ {
		bit := input&(1<<(n-1-i)) != 0
		switch pattern[i] {
		case '1':
			if !bit {
				return false
			}
		case '0':
			if bit {
				return false
			}
		}
	}
	return true
}

// ValidatePattern checks length and alphabet of a pattern.
func ValidatePattern(pattern string, numVars int) error {
	if len(pattern) != numVars {
		return fmt.Errorf("pattern %q has length %d, want %d", pattern, len(pattern), numVars)
	}
	for i := 0; i < len(pattern); i++ {
		switch pattern[i] {
		case '0', '1', '-':
		default:
			return fmt.Errorf("pattern %q has invalid symbol %q at %d", pattern, pattern[i], i)
		}
	}
	return nil
}
