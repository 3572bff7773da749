package formatter

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/fatih/color"

	"github.com/gnolang/qmc/internal/config"
	"github.com/gnolang/qmc/internal/qm"
	tt "github.com/gnolang/qmc/internal/types"
)

var (
	errorStyle      = color.New(color.FgRed, color.Bold)
	nameStyle       = color.New(color.FgYellow, color.Bold)
	fileStyle       = color.New(color.FgCyan, color.Bold)
	lineStyle       = color.New(color.FgHiBlue, color.Bold)
	patternStyle    = color.New(color.FgWhite, color.Bold)
	expressionStyle = color.New(color.FgGreen, color.Bold)
	noteStyle       = color.New(color.FgHiYellow)
)

const solutionTemplate = `{{header .Name .Vars .Source}}
{{summary .Count}}
{{range .Rows}}{{row .Pattern .Term $.Width}}
{{end}}{{expression .Expression}}
{{verification .Verification}}`

const primeTableTemplate = `{{header .Name .Vars .Source}}
{{primeSummary .Count}}
{{range .Rows}}{{primeRow .Pattern .Term .Minterms .Essential $.Width}}
{{end}}`

/***** Solution Builder *****/

type row struct {
	Pattern   string
	Term      string
	Minterms  []int
	Essential bool
}

type reportData struct {
	Name         string
	Vars         int
	Source       string
	Count        int
	Width        int
	Rows         []row
	Expression   string
	Verification string
}

var funcMap = template.FuncMap{
	"header":       header,
	"summary":      summary,
	"primeSummary": primeSummary,
	"row":          solutionRow,
	"primeRow":     primeRow,
	"expression":   expression,
	"verification": verification,
}

var (
	solutionTmpl   = template.Must(template.New("solution").Funcs(funcMap).Parse(solutionTemplate))
	primeTableTmpl = template.Must(template.New("primes").Funcs(funcMap).Parse(primeTableTemplate))
)

// GenerateFormattedSolution renders a solution as a human-readable report:
// the term count, every pattern next to its product term, and the whole
// sum of products.
func GenerateFormattedSolution(sol tt.Solution, labels []string, notation config.Notation) string {
	labels = ResolveLabels(sol.Function.Vars, sol.Function.Labels, labels)

	data := reportData{
		Name:         sol.Function.Name,
		Vars:         sol.Function.Vars,
		Source:       sol.Function.Source,
		Count:        len(sol.Patterns),
		Width:        sol.Function.Vars,
		Expression:   Expression(sol.Patterns, labels, notation),
		Verification: sol.Verification,
	}
	for _, p := range sol.Patterns {
		data.Rows = append(data.Rows, row{Pattern: p, Term: Term(p, labels, notation)})
	}

	return execute(solutionTmpl, data)
}

// GenerateFormattedSolutions concatenates the reports of several solutions.
func GenerateFormattedSolutions(solutions []tt.Solution, labels []string, notation config.Notation) string {
	var builder strings.Builder
	for _, sol := range solutions {
		builder.WriteString(GenerateFormattedSolution(sol, labels, notation))
		builder.WriteString("\n")
	}
	return builder.String()
}

// GeneratePrimeTable renders the prime implicant chart of an analysis.
// Essential implicants are marked with '*'.
func GeneratePrimeTable(fn tt.Function, analysis qm.Analysis, labels []string, notation config.Notation) string {
	labels = ResolveLabels(analysis.Vars, fn.Labels, labels)

	data := reportData{
		Name:   fn.Name,
		Vars:   analysis.Vars,
		Source: fn.Source,
		Count:  len(analysis.Primes),
		Width:  analysis.Vars,
	}
	for _, p := range Implicants(analysis) {
		data.Rows = append(data.Rows, row{
			Pattern:   p.Pattern,
			Term:      Term(p.Pattern, labels, notation),
			Minterms:  p.Minterms,
			Essential: p.Essential,
		})
	}

	return execute(primeTableTmpl, data)
}

// Implicants converts the prime table of an analysis for reporting.
func Implicants(analysis qm.Analysis) []tt.Implicant {
	out := make([]tt.Implicant, 0, len(analysis.Primes))
	for _, p := range analysis.Primes {
		out = append(out, tt.Implicant{
			Pattern:   p.Pattern,
			Minterms:  p.Covered,
			Essential: analysis.IsEssential(p),
		})
	}
	return out
}

func execute(tmpl *template.Template, data reportData) string {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Sprintf("Error formatting solution: %v", err)
	}
	return buf.String()
}

// utils functions used in the text templates

func header(name string, vars int, source string) string {
	endString := nameStyle.Sprint(name)
	endString += lineStyle.Sprintf(" (%d variables)", vars)
	if source != "" {
		endString += lineStyle.Sprint(" --> ") + fileStyle.Sprint(source)
	}
	return endString
}

func summary(count int) string {
	return fmt.Sprintf("Minimized Boolean function consists of %d terms:", count)
}

func primeSummary(count int) string {
	return fmt.Sprintf("Prime implicants (%d, * = essential):", count)
}

func solutionRow(pattern, term string, width int) string {
	return lineStyle.Sprint("  | ") + patternStyle.Sprintf("%-*s", width, pattern) + "  " + term
}

func primeRow(pattern, term string, minterms []int, essential bool, width int) string {
	mark := " "
	if essential {
		mark = "*"
	}
	return lineStyle.Sprint("  | ") + noteStyle.Sprint(mark) + " " +
		patternStyle.Sprintf("%-*s", width, pattern) + "  " +
		fmt.Sprintf("%-*s", width*2, term) + "  " + formatMinterms(minterms)
}

func expression(expr string) string {
	return lineStyle.Sprint("  = ") + expressionStyle.Sprint(expr)
}

func verification(v string) string {
	switch v {
	case "":
		return ""
	case "Equivalent":
		return noteStyle.Sprint("Note: ") + "verified against the truth table\n"
	case "NotEquivalent":
		return errorStyle.Sprint("error: ") + "cover does not match the truth table\n"
	default:
		return noteStyle.Sprint("Note: ") + "verification skipped (" + strings.ToLower(v) + ")\n"
	}
}

func formatMinterms(ms []int) string {
	parts := make([]string, len(ms))
	for i, m := range ms {
		parts[i] = fmt.Sprintf("%d", m)
	}
	return "m(" + strings.Join(parts, ",") + ")"
}
