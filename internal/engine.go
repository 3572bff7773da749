package internal

import (
	"fmt"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/gnolang/qmc/internal/config"
	"github.com/gnolang/qmc/internal/loader"
	"github.com/gnolang/qmc/internal/qm"
	tt "github.com/gnolang/qmc/internal/types"
	"github.com/gnolang/qmc/internal/verify"
)

// Engine validates functions, minimizes them and checks the results.
type Engine struct {
	config   config.Config
	logger   *zap.Logger
	verifier *verify.Verifier
	cache    *Cache

	// watch state, see watch.go
	watchMu    sync.Mutex
	watcher    *fsnotify.Watcher
	isWatching bool
	report     ReportFunc
}

// NewEngine creates a new minimization engine. A nil logger discards logs.
func NewEngine(cfg config.Config, logger *zap.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	engine := &Engine{
		config:   cfg,
		logger:   logger,
		verifier: &verify.Verifier{MaxVars: verify.DefaultMaxVars},
	}

	if cfg.Cache.Enabled {
		cache, err := NewCache(cfg.Cache.Dir, cfg.Cache.MaxAge)
		if err != nil {
			return nil, err
		}
		engine.cache = cache
	}

	engine.report = engine.logSolutions
	return engine, nil
}

// Config returns the configuration the engine was built with.
func (e *Engine) Config() config.Config {
	return e.config
}

// Solve minimizes a single function.
func (e *Engine) Solve(fn tt.Function) (tt.Solution, error) {
	sol, _, err := e.solve(fn, false)
	return sol, err
}

// SolveAnalyzed is Solve keeping the prime implicant tables. The tables are
// only produced by a fresh minimization, so the cache is written but never
// read.
func (e *Engine) SolveAnalyzed(fn tt.Function) (tt.Solution, qm.Analysis, error) {
	return e.solve(fn, true)
}

func (e *Engine) solve(fn tt.Function, analyze bool) (tt.Solution, qm.Analysis, error) {
	var analysis qm.Analysis
	if err := loader.ValidateVars(fn.Vars, e.config.MaxVars); err != nil {
		return tt.Solution{}, analysis, fmt.Errorf("%s: %w", fn.Name, err)
	}
	if err := loader.Validate(fn.Vars, fn.Minterms); err != nil {
		return tt.Solution{}, analysis, fmt.Errorf("%s: %w", fn.Name, err)
	}

	sol := tt.Solution{Function: fn}

	if !analyze {
		sol.Patterns, sol.Cached = e.lookup(fn)
	}

	if !sol.Cached {
		a, err := qm.Analyze(fn.Vars, fn.Minterms)
		if err != nil {
			return tt.Solution{}, analysis, fmt.Errorf("%s: %w", fn.Name, err)
		}
		analysis = a
		sol.Patterns = a.Patterns
	}

	if e.config.Verify {
		report := e.verifier.CheckCover(fn.Vars, fn.Minterms, sol.Patterns)
		sol.Verification = report.Result.String()
		if report.Result == verify.NotEquivalent {
			return tt.Solution{}, analysis, fmt.Errorf("%s: cover failed verification: %s", fn.Name, report.Detail)
		}
	}

	if !sol.Cached {
		e.store(fn, sol.Patterns)
	}

	e.logger.Debug("minimized function",
		zap.String("name", fn.Name),
		zap.Int("vars", fn.Vars),
		zap.Int("minterms", len(fn.Minterms)),
		zap.Int("terms", len(sol.Patterns)),
		zap.Bool("cached", sol.Cached),
	)
	return sol, analysis, nil
}

// Run loads a definition file and solves every function in it.
func (e *Engine) Run(filename string) ([]tt.Solution, error) {
	fns, err := loader.LoadFile(filename)
	if err != nil {
		return nil, err
	}

	solutions := make([]tt.Solution, 0, len(fns))
	for _, fn := range fns {
		sol, err := e.Solve(fn)
		if err != nil {
			return nil, fmt.Errorf("error solving %s: %w", filename, err)
		}
		solutions = append(solutions, sol)
	}
	return solutions, nil
}

func (e *Engine) lookup(fn tt.Function) ([]string, bool) {
	if e.cache == nil {
		return nil, false
	}
	patterns, ok := e.cache.Get(fn.Vars, fn.Minterms)
	if ok && patterns == nil {
		patterns = []string{}
	}
	return patterns, ok
}

func (e *Engine) store(fn tt.Function, patterns []string) {
	if e.cache == nil {
		return
	}
	if err := e.cache.Set(fn.Vars, fn.Minterms, patterns); err != nil {
		e.logger.Warn("failed to update cache", zap.String("name", fn.Name), zap.Error(err))
	}
}
