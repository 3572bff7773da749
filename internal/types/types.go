package types

// Function is a single-output Boolean function given by its minterms.
type Function struct {
	Name     string   `yaml:"name" json:"name"`
	Vars     int      `yaml:"vars" json:"vars"`
	Minterms []int    `yaml:"minterms" json:"minterms"`
	Labels   []string `yaml:"labels,omitempty" json:"labels,omitempty"`
	// Source is the definition file the function was read from, if any.
	Source string `yaml:"-" json:"source,omitempty"`
}

// Solution is the minimized form of a Function.
type Solution struct {
	Function Function `json:"function"`
	// Patterns are product terms over {0,1,-}, essentials first.
	Patterns []string `json:"patterns"`
	// Verification is the truth-table check outcome, empty when skipped.
	Verification string `json:"verification,omitempty"`
	Cached       bool   `json:"cached,omitempty"`
}

// Implicant is a prime implicant as presented in reports.
type Implicant struct {
	Pattern   string `json:"pattern"`
	Minterms  []int  `json:"minterms"`
	Essential bool   `json:"essential"`
}
