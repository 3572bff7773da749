package solve

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"github.com/gnolang/qmc/internal"
	"github.com/gnolang/qmc/internal/config"
	"github.com/gnolang/qmc/internal/loader"
	tt "github.com/gnolang/qmc/internal/types"
)

type Engine interface {
	Run(filePath string) ([]tt.Solution, error)
	Solve(fn tt.Function) (tt.Solution, error)
}

// ProgressOutput receives the progress bar of directory runs.
var ProgressOutput io.Writer = os.Stderr

// New builds an engine from the configuration file at configurationPath.
func New(configurationPath string, logger *zap.Logger) (*internal.Engine, error) {
	cfg, err := config.Load(configurationPath)
	if err != nil {
		return nil, err
	}

	return internal.NewEngine(cfg, logger)
}

func ProcessFiles(
	ctx context.Context,
	logger *zap.Logger,
	engine Engine,
	paths []string,
	processor func(Engine, string) ([]tt.Solution, error),
) ([]tt.Solution, error) {
	var allSolutions []tt.Solution
	for _, path := range paths {
		solutions, err := ProcessPath(ctx, logger, engine, path, processor)
		if err != nil {
			if logger != nil {
				logger.Error("Error processing path", zap.String("path", path), zap.Error(err))
			}
			return nil, err
		}
		allSolutions = append(allSolutions, solutions...)
	}

	return allSolutions, nil
}

type fileResult struct {
	index     int
	solutions []tt.Solution
	err       error
}

// ProcessPath processes a single definition file, or every definition file
// below a directory. Directory entries run concurrently; results keep the
// walk order. A failing file fails the whole path, reporting the first
// failure in walk order.
func ProcessPath(
	ctx context.Context,
	logger *zap.Logger,
	engine Engine,
	path string,
	processor func(Engine, string) ([]tt.Solution, error),
) ([]tt.Solution, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing %s: %w", path, err)
	}

	if !info.IsDir() {
		if !loader.IsDefinitionFile(path) {
			return nil, nil
		}
		return processor(engine, path)
	}

	var files []string
	err = filepath.Walk(path, func(filePath string, fileInfo os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !fileInfo.IsDir() && loader.IsDefinitionFile(filePath) {
			files = append(files, filePath)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking directory %s: %w", path, err)
	}

	// channel for results
	resultChan := make(chan fileResult, len(files))

	// limit the number of workers
	maxWorkers := runtime.NumCPU()
	sem := make(chan struct{}, maxWorkers)

	bar := progressbar.NewOptions(len(files),
		progressbar.OptionSetWriter(ProgressOutput),
		progressbar.OptionSetDescription(path),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))

	// for each file, run a goroutine
	for i, filePath := range files {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case sem <- struct{}{}:
			go func(i int, fp string) {
				defer func() { <-sem }()

				solutions, err := processor(engine, fp)
				if err != nil && logger != nil {
					logger.Error("Error processing file", zap.String("file", fp), zap.Error(err))
				}
				resultChan <- fileResult{index: i, solutions: solutions, err: err}
				_ = bar.Add(1)
			}(i, filePath)
		}
	}

	// collect all results
	results := make([]fileResult, len(files))
	for range files {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case res := <-resultChan:
			results[res.index] = res
		}
	}
	_ = bar.Finish()
	fmt.Fprintln(ProgressOutput)

	var solutions []tt.Solution
	for i, res := range results {
		if res.err != nil {
			return nil, fmt.Errorf("error processing %s: %w", files[i], res.err)
		}
		solutions = append(solutions, res.solutions...)
	}
	return solutions, nil
}

func ProcessFile(engine Engine, filePath string) ([]tt.Solution, error) {
	return engine.Run(filePath)
}

func ProcessFunction(engine Engine, fn tt.Function) (tt.Solution, error) {
	return engine.Solve(fn)
}
