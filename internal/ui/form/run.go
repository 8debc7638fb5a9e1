package form

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"cloze/internal/simulate"
	"cloze/internal/trial"
)

// ErrAborted indicates the participant left the form before finishing.
var ErrAborted = errors.New("form: aborted before finishing")

// RunOptions configures a terminal form program.
type RunOptions struct {
	Options
	Input  io.Reader
	Output io.Writer
}

// Run shows tr as a terminal form until it finishes, is aborted or ctx is done.
func Run(ctx context.Context, tr *trial.Trial, opts RunOptions) (trial.Outcome, error) {
	if ctx == nil {
		return trial.Outcome{}, errors.New("form: context is nil")
	}
	output := opts.Output
	if output == nil {
		output = os.Stdout
	}
	programOpts := []tea.ProgramOption{tea.WithContext(ctx), tea.WithOutput(output)}
	if opts.Input != nil {
		programOpts = append(programOpts, tea.WithInput(opts.Input))
	}
	program := tea.NewProgram(NewModel(tr, opts.Options), programOpts...)
	final, err := program.Run()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return trial.Outcome{}, ctxErr
		}
		return trial.Outcome{}, fmt.Errorf("form: %w", err)
	}
	model, ok := final.(Model)
	if !ok {
		return trial.Outcome{}, fmt.Errorf("form: unexpected model %T", final)
	}
	if model.Err() != nil {
		return model.Outcome(), model.Err()
	}
	if model.Aborted() {
		return model.Outcome(), ErrAborted
	}
	return model.Outcome(), nil
}

// Player returns a simulation player that replays the timeline inside the form.
func Player(opts RunOptions) simulate.Player {
	return func(ctx context.Context, tr *trial.Trial, timeline simulate.Timeline) (trial.Outcome, error) {
		replayOpts := opts
		replayOpts.Replay = timeline.Events
		if replayOpts.Input == nil {
			// Keep the keyboard out of a replay.
			replayOpts.Input = emptyReader{}
		}
		return Run(ctx, tr, replayOpts)
	}
}

type emptyReader struct{}

func (emptyReader) Read([]byte) (int, error) { return 0, io.EOF }
