package loader

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	tt "github.com/gnolang/qmc/internal/types"
)

var (
	ErrInvalidVars  = errors.New("invalid number of variables")
	ErrOutOfRange   = errors.New("minterm out of range")
	ErrInvalidInput = errors.New("invalid input")
)

var definitionSuffixes = []string{".qm.yaml", ".qm.yml"}

// IsDefinitionFile reports whether path names a function definition file.
func IsDefinitionFile(path string) bool {
	for _, suffix := range definitionSuffixes {
		if strings.HasSuffix(path, suffix) {
			return true
		}
	}
	return false
}

// ValidateVars checks that numVars lies in [1, maxVars].
func ValidateVars(numVars, maxVars int) error {
	if numVars < 1 || numVars > maxVars {
		return fmt.Errorf("%w: %d (allowed 1 to %d)", ErrInvalidVars, numVars, maxVars)
	}
	return nil
}

// maxDomainVars is the widest function whose minterms fit in an int.
const maxDomainVars = 62

// Validate checks every minterm against [0, 2^numVars-1] and reports all
// offenders at once. numVars itself must lie in [1, 62].
func Validate(numVars int, minterms []int) error {
	if err := ValidateVars(numVars, maxDomainVars); err != nil {
		return err
	}
	maxMinterm := (1 << numVars) - 1
	var err error
	for _, m := range minterms {
		if m < 0 || m > maxMinterm {
			err = multierr.Append(err, &RangeError{Minterm: m, Vars: numVars})
		}
	}
	return err
}

// RangeError reports a minterm outside the domain of the function.
type RangeError struct {
	Minterm int
	Vars    int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("Minterm %d is out of range for %d variables.", e.Minterm, e.Vars)
}

func (e *RangeError) Unwrap() error {
	return ErrOutOfRange
}

// ParseMinterms parses integers separated by whitespace and/or commas.
func ParseMinterms(args []string) ([]int, error) {
	var minterms []int
	for _, arg := range args {
		fields := strings.FieldsFunc(arg, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t' || r == '\n'
		})
		for _, f := range fields {
			m, err := strconv.Atoi(f)
			if err != nil {
				return nil, fmt.Errorf("%w: minterm %q is not an integer", ErrInvalidInput, f)
			}
			minterms = append(minterms, m)
		}
	}
	return minterms, nil
}

// ReadText reads the interactive format: the variable count as the first
// token, then the rest of that line, or the next line when the count ends
// its line, as space-separated minterms. prompt, when non-nil, receives the
// two questions before each read.
func ReadText(r io.Reader, prompt io.Writer) (tt.Function, error) {
	var fn tt.Function
	scanner := bufio.NewScanner(r)

	ask(prompt, "Enter the number of variables: ")
	var line string
	for line == "" {
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return fn, err
			}
			return fn, fmt.Errorf("%w: missing number of variables", ErrInvalidInput)
		}
		line = strings.TrimLeft(strings.TrimSuffix(scanner.Text(), "\r"), " \t")
	}

	// the single separator after the count is consumed
	token, rest, sameLine := line, "", false
	if i := strings.IndexAny(line, " \t"); i >= 0 {
		token, rest, sameLine = line[:i], line[i+1:], true
	}
	vars, err := strconv.Atoi(token)
	if err != nil {
		return fn, fmt.Errorf("%w: number of variables %q", ErrInvalidInput, token)
	}
	fn.Vars = vars

	ask(prompt, "Enter the minterms separated by spaces: ")
	if !sameLine {
		if !scanner.Scan() {
			return fn, scanner.Err()
		}
		rest = strings.TrimSuffix(scanner.Text(), "\r")
	}

	// reading stops at the first non-integer
	for _, f := range strings.Fields(rest) {
		m, err := strconv.Atoi(f)
		if err != nil {
			break
		}
		fn.Minterms = append(fn.Minterms, m)
	}
	return fn, scanner.Err()
}

func ask(w io.Writer, question string) {
	if w != nil {
		fmt.Fprint(w, question)
	}
}

// definitionFile is the on-disk layout of a function definition file.
type definitionFile struct {
	Functions []tt.Function `yaml:"functions"`
}

// LoadFile reads all functions of a definition file.
func LoadFile(path string) ([]tt.Function, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	fns, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("error decoding %s: %w", path, err)
	}

	base := filepath.Base(path)
	for i := range fns {
		fns[i].Source = path
		if fns[i].Name == "" {
			fns[i].Name = fmt.Sprintf("%s#%d", base, i)
		}
	}
	return fns, nil
}

// Decode parses the YAML definition format.
func Decode(r io.Reader) ([]tt.Function, error) {
	var def definitionFile
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&def); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}
	return def.Functions, nil
}
