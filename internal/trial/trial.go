package trial

import (
	"fmt"
	"slices"

	"go.uber.org/zap"

	"cloze/internal/cloze"
)

// Field is the state of one rendered text input.
type Field struct {
	// ID is the 0-based position of the blank the input replaces.
	ID    int
	Value string
	// Flagged marks an input whose last submitted answer failed the correctness gate.
	Flagged bool
}

// Outcome describes a single submit attempt.
type Outcome struct {
	Attempt  int
	Finished bool
	// Response is the normalized response vector of this attempt.
	Response []string
	// Incorrect lists fields that failed the correctness gate.
	Incorrect []int
	// Empty lists fields that failed the completeness gate.
	Empty []int
}

// Passed reports whether the attempt cleared every enabled gate.
func (outcome Outcome) Passed() bool {
	return len(outcome.Incorrect) == 0 && len(outcome.Empty) == 0
}

// Trial collects answers for one cloze template and decides when it may finish.
// A Trial is not safe for concurrent use.
type Trial struct {
	cfg      Config
	tmpl     cloze.Template
	fields   []Field
	finisher Finisher
	logger   *zap.Logger

	attempts int
	mistakes int
	finished bool
	result   Result
}

// New parses the configured template and prepares one input per blank.
func New(cfg Config, opts Options) (*Trial, error) {
	if opts.Finisher == nil {
		return nil, ErrNoFinisher
	}
	if cfg.ButtonText == "" {
		cfg.ButtonText = DefaultButtonText
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	tmpl := cloze.Parse(cfg.Text, cfg.CaseSensitive)
	fields := make([]Field, tmpl.Blanks())
	for i := range fields {
		fields[i].ID = i
	}
	return &Trial{
		cfg:      cfg,
		tmpl:     tmpl,
		fields:   fields,
		finisher: opts.Finisher,
		logger:   logger.With(zap.Int("blanks", tmpl.Blanks())),
	}, nil
}

// Template returns the parsed template.
func (t *Trial) Template() cloze.Template {
	return t.tmpl
}

// Config returns the trial configuration.
func (t *Trial) Config() Config {
	return t.cfg
}

// Segments returns the parsed segments in display order.
func (t *Trial) Segments() []cloze.Segment {
	return slices.Clone(t.tmpl.Segments)
}

// Fields returns a copy of the input states in blank order.
func (t *Trial) Fields() []Field {
	return slices.Clone(t.fields)
}

// Button returns the submit control label.
func (t *Trial) Button() string {
	return t.cfg.ButtonText
}

// Focus returns the field focused when the form is first shown, or -1.
func (t *Trial) Focus() int {
	if !t.cfg.Autofocus || len(t.fields) == 0 {
		return -1
	}
	return 0
}

// Attempts returns the number of submits so far.
func (t *Trial) Attempts() int {
	return t.attempts
}

// Mistakes returns the number of submits that failed a gate.
func (t *Trial) Mistakes() int {
	return t.mistakes
}

// Finished reports whether a submit passed and the result was delivered.
func (t *Trial) Finished() bool {
	return t.finished
}

// Result returns the delivered result once the trial finished.
func (t *Trial) Result() (Result, bool) {
	if !t.finished {
		return Result{}, false
	}
	return Result{Response: slices.Clone(t.result.Response)}, true
}

// SetValue replaces the current value of a field.
func (t *Trial) SetValue(id int, value string) error {
	if t.finished {
		return ErrFinished
	}
	if id < 0 || id >= len(t.fields) {
		return fmt.Errorf("%w: %d", ErrUnknownField, id)
	}
	t.fields[id].Value = value
	return nil
}

// Submit reads every field, applies the enabled gates and either finishes the
// trial or calls the mistake callback and leaves the trial open.
func (t *Trial) Submit() (Outcome, error) {
	if t.finished {
		return Outcome{}, ErrFinished
	}
	t.attempts++
	outcome := Outcome{
		Attempt:  t.attempts,
		Response: make([]string, len(t.fields)),
	}
	for i := range t.fields {
		answer := t.tmpl.Normalize(t.fields[i].Value)
		outcome.Response[i] = answer
		if t.cfg.CheckAnswers {
			correct := t.tmpl.Accepts(i, answer)
			t.fields[i].Flagged = !correct
			if !correct {
				outcome.Incorrect = append(outcome.Incorrect, i)
			}
		}
		if !t.cfg.AllowBlanks && answer == "" {
			outcome.Empty = append(outcome.Empty, i)
		}
	}

	if !outcome.Passed() {
		t.mistakes++
		t.logger.Debug("submit rejected",
			zap.Int("attempt", outcome.Attempt),
			zap.Ints("incorrect", outcome.Incorrect),
			zap.Ints("empty", outcome.Empty))
		if t.cfg.Mistake != nil {
			t.cfg.Mistake()
		}
		return outcome, nil
	}

	result := Result{Response: slices.Clone(outcome.Response)}
	if err := t.finisher.Finish(result); err != nil {
		return outcome, fmt.Errorf("finish trial: %w", err)
	}
	t.finished = true
	t.result = result
	outcome.Finished = true
	t.logger.Info("trial finished",
		zap.Int("attempts", t.attempts),
		zap.Int("mistakes", t.mistakes))
	return outcome, nil
}
