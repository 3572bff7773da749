package cmd

import (
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnolang/qmc/internal/config"
)

const defaultTimeout = 5 * time.Minute

var (
	cfgFile string
	timeout time.Duration
	verbose bool

	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:              "qmc [minterms...]",
	Short:            "qmc - a Quine-McCluskey Boolean function minimizer",
	TraverseChildren: true, // Prioritize subcommands
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := newLogger(verbose)
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	Run: func(cmd *cobra.Command, args []string) {
		// displays help when only 'qmc' is entered
		if len(args) == 0 && !cmd.Flags().Changed("vars") {
			_ = cmd.Help()
			return
		}
		// Format: qmc [m1 m2 ...] -n N => behaves like the minimize subcommand
		minimizeCmd.Run(cmd, args)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func exitOnError(msg string, err error) {
	if err == nil {
		return
	}
	logger.Error(msg, zap.Error(err))
	os.Exit(1)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultPath, "Path to the configuration file")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", defaultTimeout, "Set a timeout for the command")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable development logging")
	bindMinimizeFlags(rootCmd)

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(minimizeCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(watchCmd)
}
