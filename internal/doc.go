// Package internal provides the minimization engine behind the qmc command.
//
// Key components:
//
// Engine: validates functions against the configuration, minimizes them with
// package qm and checks every result against its truth table (package verify)
// when verification is enabled.
//
// Cache: an on-disk gob cache keyed by the variable count and the ordered
// minterm list. Expired entries are dropped on lookup.
//
// Watcher: re-runs definition files (*.qm.yaml) whenever they are written,
// reporting the new solutions through a ReportFunc.
//
// Usage:
//
//	engine, err := internal.NewEngine(config.Default(), logger)
//	if err != nil {
//	    // handle error
//	}
//
//	sol, err := engine.Solve(types.Function{Name: "f", Vars: 3, Minterms: []int{5}})
//	if err != nil {
//	    // handle error
//	}
//	fmt.Println(sol.Patterns) // [101]
//
// This package is intended for internal use within qmc and should not be
// imported by external packages.
package internal
