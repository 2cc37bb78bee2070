package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"macroessentials/internal/driver"
	"macroessentials/internal/source"
	"macroessentials/internal/ui"
)

type analyzeOutcome struct {
	fs      *source.FileSet
	results []*driver.FileResult
	err     error
}

// runWithUI runs analyze in the background and renders its events until the
// event channel is closed. The UI draws on stderr so stdout stays clean.
func runWithUI(ctx context.Context, title string, files []string, analyze func(driver.EventSink) (*source.FileSet, []*driver.FileResult, error)) (*source.FileSet, []*driver.FileResult, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan analyzeOutcome, 1)

	go func() {
		fs, results, err := analyze(func(ev driver.Event) {
			select {
			case events <- ev:
			case <-ctx.Done():
			}
		})
		outcomeCh <- analyzeOutcome{fs: fs, results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr), tea.WithContext(ctx))
	_, uiErr := program.Run()
	if uiErr != nil {
		// дочитываем события, чтобы воркеры не заблокировались
		go func() {
			for range events {
			}
		}()
	}
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.fs, outcome.results, uiErr
	}
	return outcome.fs, outcome.results, outcome.err
}
