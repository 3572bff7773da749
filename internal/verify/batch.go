package verify

import "fmt"

// CoverContext describes one cover to verify.
type CoverContext struct {
	Name     string
	Vars     int
	Minterms []int
	Patterns []string
}

// CoverResult holds the result of verifying a single cover.
type CoverResult struct {
	Context CoverContext
	Report  Report
}

// BatchVerificationReport summarizes the results of batch verification.
type BatchVerificationReport struct {
	Total         int
	Equivalent    int
	NotEquivalent int
	Unknown       int
	Results       []CoverResult
}

// BatchVerify verifies multiple covers and returns a summary.
func (v *Verifier) BatchVerify(covers []CoverContext) BatchVerificationReport {
	report := BatchVerificationReport{
		Total:   len(covers),
		Results: make([]CoverResult, len(covers)),
	}

	for i, c := range covers {
		r := v.CheckCover(c.Vars, c.Minterms, c.Patterns)
		report.Results[i] = CoverResult{Context: c, Report: r}

		switch r.Result {
		case Equivalent:
			report.Equivalent++
		case NotEquivalent:
			report.NotEquivalent++
		case Unknown:
			report.Unknown++
		}
	}

	return report
}

// Summary returns a human-readable summary of the batch verification.
func (r BatchVerificationReport) Summary() string {
	return fmt.Sprintf(
		"Verified %d covers: %d equivalent, %d not equivalent, %d unknown",
		r.Total, r.Equivalent, r.NotEquivalent, r.Unknown,
	)
}

// Failures returns only the covers that were proven wrong.
func (r BatchVerificationReport) Failures() []CoverResult {
	failed := make([]CoverResult, 0)
	for _, res := range r.Results {
		if res.Report.Result == NotEquivalent {
			failed = append(failed, res)
		}
	}
	return failed
}
