package internal

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gnolang/qmc/internal/config"
	"github.com/gnolang/qmc/internal/loader"
	tt "github.com/gnolang/qmc/internal/types"
)

const definitionExample = `functions:
  - name: textbook
    vars: 4
    minterms: [0, 1, 2, 5, 6, 7, 8, 9, 10, 14]
  - name: one
    vars: 3
    minterms: [5]
`

func newTestEngine(t *testing.T, mutate func(*config.Config)) *Engine {
	t.Helper()
	cfg := config.Default()
	if mutate != nil {
		mutate(&cfg)
	}
	engine, err := NewEngine(cfg, zap.NewNop())
	require.NoError(t, err)
	return engine
}

func TestEngineSolve(t *testing.T) {
	t.Parallel()
	engine := newTestEngine(t, nil)

	sol, err := engine.Solve(tt.Function{Name: "f", Vars: 4, Minterms: []int{0, 1, 2, 5, 6, 7, 8, 9, 10, 14}})
	require.NoError(t, err)

	assert.Equal(t, []string{"-00-", "--10", "01-1"}, sol.Patterns)
	assert.Equal(t, "Equivalent", sol.Verification)
	assert.False(t, sol.Cached)
	assert.Equal(t, "f", sol.Function.Name)
}

func TestEngineSolveWithoutVerify(t *testing.T) {
	t.Parallel()
	engine := newTestEngine(t, func(c *config.Config) { c.Verify = false })

	sol, err := engine.Solve(tt.Function{Name: "f", Vars: 2, Minterms: []int{0, 1, 2, 3}})
	require.NoError(t, err)
	assert.Equal(t, []string{"--"}, sol.Patterns)
	assert.Empty(t, sol.Verification)
}

func TestEngineSolveValidation(t *testing.T) {
	t.Parallel()
	engine := newTestEngine(t, func(c *config.Config) { c.MaxVars = 4 })

	_, err := engine.Solve(tt.Function{Name: "big", Vars: 5, Minterms: []int{0}})
	assert.ErrorIs(t, err, loader.ErrInvalidVars)

	_, err = engine.Solve(tt.Function{Name: "range", Vars: 2, Minterms: []int{0, 4}})
	assert.ErrorIs(t, err, loader.ErrOutOfRange)
	assert.Contains(t, err.Error(), "Minterm 4 is out of range for 2 variables.")
}

func TestEngineSolveCached(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	engine := newTestEngine(t, func(c *config.Config) {
		c.Cache.Enabled = true
		c.Cache.Dir = filepath.Join(dir, "cache")
	})

	fn := tt.Function{Name: "f", Vars: 3, Minterms: []int{0, 1, 2, 5, 6, 7}}
	first, err := engine.Solve(fn)
	require.NoError(t, err)
	assert.False(t, first.Cached)

	second, err := engine.Solve(fn)
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Patterns, second.Patterns)

	empty, err := engine.Solve(tt.Function{Name: "zero", Vars: 2})
	require.NoError(t, err)
	again, err := engine.Solve(tt.Function{Name: "zero", Vars: 2})
	require.NoError(t, err)
	assert.True(t, again.Cached)
	assert.Equal(t, empty.Patterns, again.Patterns)
	assert.NotNil(t, again.Patterns)
}

func TestEngineSolveAnalyzed(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	engine := newTestEngine(t, func(c *config.Config) {
		c.Cache.Enabled = true
		c.Cache.Dir = filepath.Join(dir, "cache")
	})

	fn := tt.Function{Name: "cyclic", Vars: 3, Minterms: []int{0, 1, 2, 5, 6, 7}}
	sol, analysis, err := engine.SolveAnalyzed(fn)
	require.NoError(t, err)
	assert.Len(t, analysis.Primes, 6)
	assert.Empty(t, analysis.Essentials)
	assert.Equal(t, analysis.Patterns, sol.Patterns)
	assert.Equal(t, "Equivalent", sol.Verification)
	assert.False(t, sol.Cached)

	// the tables always come from a fresh run
	again, analysis, err := engine.SolveAnalyzed(fn)
	require.NoError(t, err)
	assert.False(t, again.Cached)
	assert.Len(t, analysis.Primes, 6)

	// but the result it stored serves plain lookups
	cached, err := engine.Solve(fn)
	require.NoError(t, err)
	assert.True(t, cached.Cached)
	assert.Equal(t, sol.Patterns, cached.Patterns)

	_, _, err = engine.SolveAnalyzed(tt.Function{Vars: 3, Minterms: []int{9}})
	assert.ErrorIs(t, err, loader.ErrOutOfRange)
}

func TestEngineRun(t *testing.T) {
	t.Parallel()
	engine := newTestEngine(t, nil)

	path := filepath.Join(t.TempDir(), "funcs.qm.yaml")
	require.NoError(t, os.WriteFile(path, []byte(definitionExample), 0o644))

	solutions, err := engine.Run(path)
	require.NoError(t, err)
	require.Len(t, solutions, 2)
	assert.Equal(t, "textbook", solutions[0].Function.Name)
	assert.Equal(t, path, solutions[0].Function.Source)
	assert.Equal(t, []string{"101"}, solutions[1].Patterns)
}

func TestEngineRunInvalidFunction(t *testing.T) {
	t.Parallel()
	engine := newTestEngine(t, nil)

	path := filepath.Join(t.TempDir(), "bad.qm.yaml")
	require.NoError(t, os.WriteFile(path, []byte("functions:\n  - vars: 1\n    minterms: [2]\n"), 0o644))

	_, err := engine.Run(path)
	assert.ErrorIs(t, err, loader.ErrOutOfRange)
}

func TestNewEngineInvalidConfig(t *testing.T) {
	t.Parallel()
	cfg := config.Default()
	cfg.Notation = "roman"

	_, err := NewEngine(cfg, nil)
	assert.Error(t, err)
}

func TestHandleFileEvent(t *testing.T) {
	t.Parallel()
	engine := newTestEngine(t, nil)

	dir := t.TempDir()
	path := filepath.Join(dir, "funcs.qm.yaml")
	require.NoError(t, os.WriteFile(path, []byte(definitionExample), 0o644))

	var reported []tt.Solution
	var reportedFile string
	engine.SetReporter(func(filename string, solutions []tt.Solution) {
		reportedFile = filename
		reported = solutions
	})

	// ignored: wrong op and wrong suffix
	engine.handleFileEvent(fsnotify.Event{Name: path, Op: fsnotify.Remove})
	engine.handleFileEvent(fsnotify.Event{Name: filepath.Join(dir, "notes.txt"), Op: fsnotify.Write})
	assert.Nil(t, reported)

	engine.handleFileEvent(fsnotify.Event{Name: path, Op: fsnotify.Write})
	assert.Equal(t, path, reportedFile)
	assert.Len(t, reported, 2)
}

func TestStartStopWatching(t *testing.T) {
	t.Parallel()
	engine := newTestEngine(t, nil)
	dir := t.TempDir()

	done := make(chan []tt.Solution, 1)
	engine.SetReporter(func(_ string, solutions []tt.Solution) {
		select {
		case done <- solutions:
		default:
		}
	})

	require.NoError(t, engine.StartWatching([]string{dir}))
	assert.Error(t, engine.StartWatching([]string{dir}))

	path := filepath.Join(dir, "funcs.qm.yaml")
	require.NoError(t, os.WriteFile(path, []byte(definitionExample), 0o644))

	select {
	case solutions := <-done:
		assert.Len(t, solutions, 2)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not report the written file")
	}

	assert.NoError(t, engine.StopWatching())
	assert.NoError(t, engine.StopWatching())
}
