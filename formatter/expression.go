package formatter

import (
	"fmt"
	"strings"

	"github.com/gnolang/qmc/internal/config"
)

const (
	sumSeparator     = " + "
	productSeparator = "*"
	constTrue        = "1"
	constFalse       = "0"
)

// ResolveLabels returns one variable name per position. Names come from
// the first non-empty list in order of preference; positions the list does
// not reach fall back to A, B, ... Z, x26, x27, ...
func ResolveLabels(numVars int, preferred ...[]string) []string {
	var source []string
	for _, p := range preferred {
		if len(p) > 0 {
			source = p
			break
		}
	}

	labels := make([]string, numVars)
	for i := range labels {
		if i < len(source) && source[i] != "" {
			labels[i] = source[i]
			continue
		}
		labels[i] = defaultLabel(i)
	}
	return labels
}

func defaultLabel(i int) string {
	if i < 26 {
		return string(rune('A' + i))
	}
	return fmt.Sprintf("x%d", i)
}

// Term renders a single pattern as a product of literals. A pattern made
// only of wildcards is the constant 1.
// Literals are juxtaposed while every label is a single character and
// joined with '*' otherwise.
func Term(pattern string, labels []string, notation config.Notation) string {
	var literals []string
	sep := ""
	for i := 0; i < len(pattern); i++ {
		var lit string
		switch pattern[i] {
		case '1':
			lit = labels[i]
		case '0':
			lit = complement(labels[i], notation)
		default:
			continue
		}
		if len(labels[i]) > 1 {
			sep = productSeparator
		}
		literals = append(literals, lit)
	}
	if len(literals) == 0 {
		return constTrue
	}
	return strings.Join(literals, sep)
}

// Expression renders a sum of products. An empty cover is the constant 0.
func Expression(patterns []string, labels []string, notation config.Notation) string {
	if len(patterns) == 0 {
		return constFalse
	}
	terms := make([]string, len(patterns))
	for i, p := range patterns {
		terms[i] = Term(p, labels, notation)
	}
	return strings.Join(terms, sumSeparator)
}

func complement(label string, notation config.Notation) string {
	switch notation {
	case config.NotationBang:
		return "!" + label
	case config.NotationTilde:
		return "~" + label
	default:
		return label + "'"
	}
}
