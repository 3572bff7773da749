package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/gnolang/qmc/formatter"
	"github.com/gnolang/qmc/internal/config"
	tt "github.com/gnolang/qmc/internal/types"
	"github.com/gnolang/qmc/internal/verify"
	"github.com/gnolang/qmc/solve"
)

var (
	runJsonOutput bool
	outPath       string
)

var runCmd = &cobra.Command{
	Use:   "run [paths...]",
	Short: "Minimize every function of the given definition files",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Fprintln(cmd.ErrOrStderr(), "error: Please provide file or directory paths")
			os.Exit(1)
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		engine, err := solve.New(cfgFile, logger)
		exitOnError("Failed to initialize minimization engine", err)

		err = runDefinitions(ctx, cmd.OutOrStdout(), engine, engine.Config(), args, runJsonOutput, outPath)
		exitOnError("Error processing files", err)
	},
}

func init() {
	runCmd.Flags().BoolVar(&runJsonOutput, "json", false, "Output solutions in JSON format")
	runCmd.Flags().StringVarP(&outPath, "output", "o", "", "Output path (when using JSON)")
}

func runDefinitions(
	ctx context.Context,
	out io.Writer,
	engine solve.Engine,
	cfg config.Config,
	paths []string,
	isJson bool,
	jsonOutput string,
) error {
	solutions, err := solve.ProcessFiles(ctx, logger, engine, paths, solve.ProcessFile)
	if err != nil {
		return err
	}
	if err := printSolutions(out, solutions, cfg, isJson, jsonOutput); err != nil {
		return err
	}
	if !cfg.Verify {
		return nil
	}

	report := verify.New().BatchVerify(coverContexts(solutions))
	logger.Info(report.Summary())
	if !isJson {
		fmt.Fprintln(out, report.Summary())
	}
	if failed := report.Failures(); len(failed) > 0 {
		return fmt.Errorf("%s: %s", failed[0].Context.Name, failed[0].Report.Detail)
	}
	return nil
}

func coverContexts(solutions []tt.Solution) []verify.CoverContext {
	covers := make([]verify.CoverContext, 0, len(solutions))
	for _, sol := range solutions {
		covers = append(covers, verify.CoverContext{
			Name:     sol.Function.Name,
			Vars:     sol.Function.Vars,
			Minterms: sol.Function.Minterms,
			Patterns: sol.Patterns,
		})
	}
	return covers
}

func printSolutions(out io.Writer, solutions []tt.Solution, cfg config.Config, isJson bool, jsonOutput string) error {
	if !isJson {
		fmt.Fprint(out, formatter.GenerateFormattedSolutions(solutions, cfg.Labels, cfg.Notation))
		return nil
	}

	if solutions == nil {
		solutions = []tt.Solution{}
	}
	d, err := json.Marshal(solutions)
	if err != nil {
		return fmt.Errorf("error marshalling solutions to JSON: %w", err)
	}
	if jsonOutput == "" {
		fmt.Fprintln(out, string(d))
		return nil
	}

	f, err := os.Create(jsonOutput)
	if err != nil {
		return fmt.Errorf("error creating JSON output file: %w", err)
	}
	defer f.Close()
	if _, err := f.Write(d); err != nil {
		return fmt.Errorf("error writing JSON output file: %w", err)
	}
	return nil
}
