package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnolang/qmc/formatter"
	"github.com/gnolang/qmc/internal"
	tt "github.com/gnolang/qmc/internal/types"
	"github.com/gnolang/qmc/solve"
)

var watchCmd = &cobra.Command{
	Use:   "watch [dirs...]",
	Short: "Re-minimize definition files whenever they are written",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			args = []string{"."}
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
		defer stop()

		engine, err := solve.New(cfgFile, logger)
		exitOnError("Failed to initialize minimization engine", err)

		exitOnError("Error watching directories", runWatch(ctx, cmd.OutOrStdout(), engine, args))
	},
}

// runWatch prints the solutions of every rewritten definition file until
// ctx is done.
func runWatch(ctx context.Context, out io.Writer, engine *internal.Engine, dirs []string) error {
	cfg := engine.Config()
	engine.SetReporter(func(filename string, solutions []tt.Solution) {
		logger.Info("definition file changed", zap.String("file", filename))
		fmt.Fprint(out, formatter.GenerateFormattedSolutions(solutions, cfg.Labels, cfg.Notation))
	})

	if err := engine.StartWatching(dirs); err != nil {
		return err
	}
	logger.Info("watching for changes", zap.Strings("dirs", dirs))

	<-ctx.Done()
	return engine.StopWatching()
}
