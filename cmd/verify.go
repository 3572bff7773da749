package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/gnolang/qmc/internal/config"
	"github.com/gnolang/qmc/internal/loader"
	"github.com/gnolang/qmc/internal/verify"
)

var (
	verifyVars int
	cover      []string
)

var verifyCmd = &cobra.Command{
	Use:   "verify [minterms...]",
	Short: "Check a sum of products against the truth table of the minterms",
	Long: `Checks whether the given cover evaluates true on exactly the given minterms.
Example) qmc verify -n 4 --cover -00-,--10,01-1 0 1 2 5 6 7 8 9 10 14`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load(cfgFile)
		exitOnError("Failed to load configuration", err)

		report, err := runVerify(cmd.OutOrStdout(), verifyVars, cfg.MaxVars, args, cover)
		if err != nil {
			printErrors(cmd.ErrOrStderr(), err)
			os.Exit(1)
		}
		if report.Result != verify.Equivalent {
			os.Exit(1)
		}
	},
}

func init() {
	verifyCmd.Flags().IntVarP(&verifyVars, "vars", "n", 0, "Number of variables")
	verifyCmd.Flags().StringSliceVar(&cover, "cover", nil, "Comma-separated patterns over {0,1,-}")
	_ = verifyCmd.MarkFlagRequired("vars")
}

func runVerify(out io.Writer, vars, maxVars int, args, patterns []string) (verify.Report, error) {
	if err := loader.ValidateVars(vars, maxVars); err != nil {
		return verify.Report{}, err
	}
	minterms, err := loader.ParseMinterms(args)
	if err != nil {
		return verify.Report{}, err
	}
	if err := loader.Validate(vars, minterms); err != nil {
		return verify.Report{}, err
	}

	report := verify.New().CheckCover(vars, minterms, patterns)
	fmt.Fprintln(out, report.Result)
	if report.Result != verify.Equivalent {
		fmt.Fprintf(out, "reason: %s\n", report.Reason)
		if report.Detail != "" {
			fmt.Fprintf(out, "detail: %s\n", report.Detail)
		}
	}
	return report, nil
}
