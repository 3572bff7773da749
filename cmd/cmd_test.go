package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gnolang/qmc/internal"
	"github.com/gnolang/qmc/internal/config"
	"github.com/gnolang/qmc/internal/loader"
	tt "github.com/gnolang/qmc/internal/types"
	"github.com/gnolang/qmc/internal/verify"
	"github.com/gnolang/qmc/solve"
)

func init() {
	color.NoColor = true
	solve.ProgressOutput = io.Discard
}

const definitionExample = `functions:
  - name: textbook
    vars: 4
    minterms: [0, 1, 2, 5, 6, 7, 8, 9, 10, 14]
  - name: cyclic
    vars: 3
    minterms: [0, 1, 2, 5, 6, 7]
`

func newTestEngine(t *testing.T) *internal.Engine {
	t.Helper()
	engine, err := internal.NewEngine(config.Default(), zap.NewNop())
	require.NoError(t, err)
	return engine
}

func TestRunMinimize(t *testing.T) {
	t.Parallel()
	engine := newTestEngine(t)

	var out bytes.Buffer
	opts := minimizeOptions{vars: 4, varsChanged: true}
	err := runMinimize(nil, &out, engine, opts, []string{"0", "1", "2", "5", "6", "7", "8", "9", "10", "14"})
	require.NoError(t, err)

	output := out.String()
	assert.Contains(t, output, "Minimized Boolean function consists of 3 terms:")
	assert.Contains(t, output, "  | -00-  B'C'\n")
	assert.Contains(t, output, "  = B'C' + CD' + A'BD\n")
	assert.NotContains(t, output, "Prime implicants")
}

func TestRunMinimizeInteractive(t *testing.T) {
	t.Parallel()
	engine := newTestEngine(t)

	var out bytes.Buffer
	err := runMinimize(strings.NewReader("3\n5\n"), &out, engine, minimizeOptions{}, nil)
	require.NoError(t, err)

	output := out.String()
	assert.True(t, strings.HasPrefix(output, "Enter the number of variables: Enter the minterms separated by spaces: "))
	assert.Contains(t, output, "Minimized Boolean function consists of 1 terms:")
	assert.Contains(t, output, "  | 101  AB'C\n")
}

func TestRunMinimizeOutOfRange(t *testing.T) {
	t.Parallel()
	engine := newTestEngine(t)

	var out bytes.Buffer
	opts := minimizeOptions{vars: 2, varsChanged: true}
	err := runMinimize(nil, &out, engine, opts, []string{"0", "4", "5"})
	require.Error(t, err)
	assert.ErrorIs(t, err, loader.ErrOutOfRange)
	assert.Empty(t, out.String())

	var stderr bytes.Buffer
	printErrors(&stderr, err)
	assert.Equal(t,
		"Error: Minterm 4 is out of range for 2 variables.\n"+
			"Error: Minterm 5 is out of range for 2 variables.\n",
		stderr.String())
}

func TestRunMinimizeErrors(t *testing.T) {
	t.Parallel()
	engine := newTestEngine(t)

	tests := []struct {
		name string
		opts minimizeOptions
		args []string
		want error
	}{
		{"minterms without vars", minimizeOptions{}, []string{"1"}, errMissingVars},
		{"zero vars", minimizeOptions{vars: 0, varsChanged: true}, nil, loader.ErrInvalidVars},
		{"too many vars", minimizeOptions{vars: 17, varsChanged: true}, nil, loader.ErrInvalidVars},
		{"not a number", minimizeOptions{vars: 2, varsChanged: true}, []string{"x"}, loader.ErrInvalidInput},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := runMinimize(nil, io.Discard, engine, tc.opts, tc.args)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestRunMinimizeJSON(t *testing.T) {
	t.Parallel()
	engine := newTestEngine(t)

	var out bytes.Buffer
	opts := minimizeOptions{vars: 3, varsChanged: true, json: true, primes: true}
	require.NoError(t, runMinimize(nil, &out, engine, opts, []string{"0,1,2", "5", "6,7"}))

	var report minimizeReport
	require.NoError(t, json.Unmarshal(out.Bytes(), &report))
	assert.Equal(t, []string{"00-", "-10", "1-1"}, report.Patterns)
	assert.Equal(t, "Equivalent", report.Verification)
	assert.Len(t, report.Primes, 6)
	for _, p := range report.Primes {
		assert.False(t, p.Essential, p.Pattern)
	}
}

func TestRunMinimizePrimes(t *testing.T) {
	t.Parallel()
	engine := newTestEngine(t)

	var out bytes.Buffer
	opts := minimizeOptions{vars: 4, varsChanged: true, primes: true, labels: []string{"w", "x", "y", "z"}}
	require.NoError(t, runMinimize(nil, &out, engine, opts, []string{"0", "1", "2", "5", "6", "7", "8", "9", "10", "14"}))

	output := out.String()
	assert.Contains(t, output, "Prime implicants (6, * = essential):")
	assert.Contains(t, output, "  | * -00-  x'y'      m(0,1,8,9)\n")
	assert.Contains(t, output, "  = x'y' + yz' + w'xz\n")
}

func TestRunMinimizePrimesFeedsCache(t *testing.T) {
	t.Parallel()
	cfg := config.Default()
	cfg.Cache.Enabled = true
	cfg.Cache.Dir = filepath.Join(t.TempDir(), "cache")
	engine, err := internal.NewEngine(cfg, zap.NewNop())
	require.NoError(t, err)

	args := []string{"0", "1", "2", "5", "6", "7"}

	var first bytes.Buffer
	require.NoError(t, runMinimize(nil, &first, engine, minimizeOptions{vars: 3, varsChanged: true, json: true, primes: true}, args))
	var analyzed minimizeReport
	require.NoError(t, json.Unmarshal(first.Bytes(), &analyzed))
	assert.False(t, analyzed.Cached)
	assert.Len(t, analyzed.Primes, 6)

	var second bytes.Buffer
	require.NoError(t, runMinimize(nil, &second, engine, minimizeOptions{vars: 3, varsChanged: true, json: true}, args))
	var plain minimizeReport
	require.NoError(t, json.Unmarshal(second.Bytes(), &plain))
	assert.True(t, plain.Cached)
	assert.Equal(t, analyzed.Patterns, plain.Patterns)
	assert.Empty(t, plain.Primes)
}

func TestRunDefinitions(t *testing.T) {
	t.Parallel()
	engine := newTestEngine(t)

	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "funcs.qm.yaml")
	require.NoError(t, os.WriteFile(path, []byte(definitionExample), 0o644))

	t.Run("text", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, runDefinitions(context.Background(), &out, engine, engine.Config(), []string{tempDir}, false, ""))

		output := out.String()
		assert.Contains(t, output, "textbook (4 variables) --> "+path)
		assert.Contains(t, output, "cyclic (3 variables) --> "+path)
		assert.Less(t, strings.Index(output, "textbook"), strings.Index(output, "cyclic"))
		assert.Contains(t, output, "Verified 2 covers: 2 equivalent, 0 not equivalent, 0 unknown\n")
	})

	t.Run("json file", func(t *testing.T) {
		jsonPath := filepath.Join(tempDir, "out.json")
		require.NoError(t, runDefinitions(context.Background(), io.Discard, engine, engine.Config(), []string{path}, true, jsonPath))

		d, err := os.ReadFile(jsonPath)
		require.NoError(t, err)
		var solutions []tt.Solution
		require.NoError(t, json.Unmarshal(d, &solutions))
		require.Len(t, solutions, 2)
		assert.Equal(t, []string{"-00-", "--10", "01-1"}, solutions[0].Patterns)
		assert.Equal(t, path, solutions[0].Function.Source)
	})

	t.Run("missing path", func(t *testing.T) {
		err := runDefinitions(context.Background(), io.Discard, engine, engine.Config(), []string{filepath.Join(tempDir, "nope")}, false, "")
		assert.Error(t, err)
	})
}

func TestPrintSolutionsEmptyJSON(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer
	require.NoError(t, printSolutions(&out, nil, config.Default(), true, ""))
	assert.Equal(t, "[]\n", out.String())
}

func TestRunVerify(t *testing.T) {
	t.Parallel()
	minterms := []string{"0", "1", "2", "5", "6", "7", "8", "9", "10", "14"}

	var out bytes.Buffer
	report, err := runVerify(&out, 4, 16, minterms, []string{"-00-", "--10", "01-1"})
	require.NoError(t, err)
	assert.Equal(t, verify.Equivalent, report.Result)
	assert.Equal(t, "Equivalent\n", out.String())

	out.Reset()
	report, err = runVerify(&out, 4, 16, minterms, []string{"-00-", "--10"})
	require.NoError(t, err)
	assert.Equal(t, verify.NotEquivalent, report.Result)
	assert.Equal(t, verify.ReasonMissingMinterm, report.Reason)
	assert.Contains(t, out.String(), "reason: minterm not covered\n")

	out.Reset()
	report, err = runVerify(&out, 2, 16, []string{"1"}, []string{"0x"})
	require.NoError(t, err)
	assert.Equal(t, verify.ReasonMalformedPattern, report.Reason)

	_, err = runVerify(io.Discard, 2, 16, []string{"9"}, nil)
	assert.ErrorIs(t, err, loader.ErrOutOfRange)
}

func TestRunVerifyInvalidVars(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		vars int
	}{
		{"negative vars", -1},
		{"zero vars", 0},
		{"above max-vars", 17},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			var out bytes.Buffer
			_, err := runVerify(&out, tc.vars, 16, []string{"0"}, nil)
			assert.ErrorIs(t, err, loader.ErrInvalidVars)
			assert.Empty(t, out.String())
		})
	}
}

func TestInitConfigurationFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), ".qmc.yaml")

	got, err := initConfigurationFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, got)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	def := config.Default()
	assert.Equal(t, def.Name, cfg.Name)
	assert.Equal(t, def.Notation, cfg.Notation)
	assert.Equal(t, def.MaxVars, cfg.MaxVars)
	assert.Equal(t, def.Verify, cfg.Verify)
	assert.Equal(t, def.Cache, cfg.Cache)
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestRunWatch(t *testing.T) {
	t.Parallel()
	engine := newTestEngine(t)
	dir := t.TempDir()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	go func() {
		time.Sleep(200 * time.Millisecond)
		_ = os.WriteFile(filepath.Join(dir, "funcs.qm.yaml"), []byte(definitionExample), 0o644)
	}()

	var out syncBuffer
	go func() {
		for ctx.Err() == nil {
			if strings.Contains(out.String(), "cyclic (3 variables)") {
				cancel()
				return
			}
			time.Sleep(20 * time.Millisecond)
		}
	}()

	require.NoError(t, runWatch(ctx, &out, engine, []string{dir}))
	assert.Contains(t, out.String(), "textbook (4 variables)")
	assert.Contains(t, out.String(), "cyclic (3 variables)")
}
