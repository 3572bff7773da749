package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/gnolang/qmc/formatter"
	"github.com/gnolang/qmc/internal"
	"github.com/gnolang/qmc/internal/loader"
	tt "github.com/gnolang/qmc/internal/types"
	"github.com/gnolang/qmc/solve"
)

// minimize command flags, shared with the root command
var (
	numVars        int
	labels         []string
	minimizeJson   bool
	showPrimes     bool
	errMissingVars = errors.New("please provide the number of variables with -n")
)

var minimizeCmd = &cobra.Command{
	Use:   "minimize [minterms...]",
	Short: "Minimize a Boolean function given by its minterms",
	Long: `Minimizes the sum of products of the given minterms.
Without -n and without minterms the function is read interactively.
Example) qmc minimize -n 4 0 1 2 5 6 7 8 9 10 14`,
	Run: func(cmd *cobra.Command, args []string) {
		engine, err := solve.New(cfgFile, logger)
		exitOnError("Failed to initialize minimization engine", err)

		opts := minimizeOptions{
			vars:        numVars,
			varsChanged: cmd.Flags().Changed("vars"),
			labels:      labels,
			json:        minimizeJson,
			primes:      showPrimes,
		}
		err = runMinimize(cmd.InOrStdin(), cmd.OutOrStdout(), engine, opts, args)
		if err != nil {
			printErrors(cmd.ErrOrStderr(), err)
			os.Exit(1)
		}
	},
}

func bindMinimizeFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&numVars, "vars", "n", 0, "Number of variables")
	cmd.Flags().StringSliceVar(&labels, "labels", nil, "Comma-separated variable names, most significant first")
	cmd.Flags().BoolVar(&minimizeJson, "json", false, "Output the solution in JSON format")
	cmd.Flags().BoolVar(&showPrimes, "primes", false, "Also print the prime implicant chart")
}

func init() {
	bindMinimizeFlags(minimizeCmd)
}

type minimizeOptions struct {
	vars        int
	varsChanged bool
	labels      []string
	json        bool
	primes      bool
}

type minimizeReport struct {
	tt.Solution
	Primes []tt.Implicant `json:"primes,omitempty"`
}

func runMinimize(in io.Reader, out io.Writer, engine *internal.Engine, opts minimizeOptions, args []string) error {
	fn, err := readFunction(in, out, opts, args)
	if err != nil {
		return err
	}
	fn.Name = "f"
	fn.Labels = opts.labels

	cfg := engine.Config()
	if err := loader.ValidateVars(fn.Vars, cfg.MaxVars); err != nil {
		return err
	}
	if err := loader.Validate(fn.Vars, fn.Minterms); err != nil {
		return err
	}

	var (
		report     minimizeReport
		primeTable string
	)
	if opts.primes {
		sol, analysis, err := engine.SolveAnalyzed(fn)
		if err != nil {
			return err
		}
		report = minimizeReport{Solution: sol, Primes: formatter.Implicants(analysis)}
		primeTable = formatter.GeneratePrimeTable(fn, analysis, cfg.Labels, cfg.Notation)
	} else {
		sol, err := solve.ProcessFunction(engine, fn)
		if err != nil {
			return err
		}
		report = minimizeReport{Solution: sol}
	}

	if opts.json {
		d, err := json.Marshal(report)
		if err != nil {
			return fmt.Errorf("error marshalling solution to JSON: %w", err)
		}
		fmt.Fprintln(out, string(d))
		return nil
	}

	if primeTable != "" {
		fmt.Fprintln(out, primeTable)
	}
	fmt.Fprint(out, formatter.GenerateFormattedSolution(report.Solution, cfg.Labels, cfg.Notation))
	return nil
}

func readFunction(in io.Reader, out io.Writer, opts minimizeOptions, args []string) (tt.Function, error) {
	if !opts.varsChanged {
		if len(args) > 0 {
			return tt.Function{}, errMissingVars
		}
		return loader.ReadText(in, out)
	}

	minterms, err := loader.ParseMinterms(args)
	if err != nil {
		return tt.Function{}, err
	}
	return tt.Function{Vars: opts.vars, Minterms: minterms}, nil
}

// printErrors writes one "Error: " line per aggregated error.
func printErrors(w io.Writer, err error) {
	for _, e := range multierr.Errors(err) {
		fmt.Fprintf(w, "Error: %v\n", e)
	}
}
