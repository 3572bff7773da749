package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/gnolang/qmc/internal/loader"
	tt "github.com/gnolang/qmc/internal/types"
)

// debounce groups bursts of writes to the same file into one run.
const debounce = 100 * time.Millisecond

// ReportFunc receives the solutions of a re-run definition file.
type ReportFunc func(filename string, solutions []tt.Solution)

// SetReporter replaces the default zap reporter used by the watcher.
func (e *Engine) SetReporter(report ReportFunc) {
	e.watchMu.Lock()
	defer e.watchMu.Unlock()
	e.report = report
}

func (e *Engine) StartWatching(dirs []string) error {
	e.watchMu.Lock()
	defer e.watchMu.Unlock()

	if e.isWatching {
		return fmt.Errorf("already watching")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("error creating watcher: %w", err)
	}

	for _, dir := range dirs {
		err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				return watcher.Add(path)
			}
			return nil
		})
		if err != nil {
			watcher.Close()
			return fmt.Errorf("error adding directory to watcher: %w", err)
		}
	}

	e.watcher = watcher
	e.isWatching = true
	go e.watchLoop(watcher)
	return nil
}

func (e *Engine) StopWatching() error {
	e.watchMu.Lock()
	defer e.watchMu.Unlock()

	if !e.isWatching {
		e.logger.Info("not watching")
		return nil
	}

	e.isWatching = false
	return e.watcher.Close()
}

func (e *Engine) watchLoop(watcher *fsnotify.Watcher) {
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			e.handleFileEvent(event)
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			e.logger.Error("watcher error", zap.Error(err))
		}
	}
}

func (e *Engine) handleFileEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Write) || !loader.IsDefinitionFile(event.Name) {
		return
	}

	time.Sleep(debounce)
	solutions, err := e.Run(event.Name)
	if err != nil {
		e.logger.Error("error re-running definition file", zap.String("file", event.Name), zap.Error(err))
		return
	}

	e.watchMu.Lock()
	report := e.report
	e.watchMu.Unlock()
	report(event.Name, solutions)
}

func (e *Engine) logSolutions(filename string, solutions []tt.Solution) {
	if len(solutions) == 0 {
		e.logger.Info("no functions found", zap.String("file", filename))
		return
	}

	e.logger.Info("minimized definition file", zap.String("file", filename), zap.Int("functions", len(solutions)))
	for _, sol := range solutions {
		e.logger.Info("solution",
			zap.String("name", sol.Function.Name),
			zap.Strings("patterns", sol.Patterns),
		)
	}
}
