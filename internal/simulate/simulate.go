package simulate

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"cloze/internal/cloze"
	"cloze/internal/trial"
)

// ErrNoRand indicates services without a random source.
var ErrNoRand = errors.New("simulate: random source is required")

// ErrNoWords indicates the word source returned no filler word.
var ErrNoWords = errors.New("simulate: word source returned no words")

// Services holds the host services the responder draws on.
type Services struct {
	Rand     Rand
	Words    WordSource
	Latency  LatencySampler
	Finisher trial.Finisher
	Logger   *zap.Logger
}

// NewServices builds seeded default services delivering to finisher.
func NewServices(seed uint64, finisher trial.Finisher) Services {
	rng := NewRand(seed)
	return Services{
		Rand:     rng,
		Words:    NewWordList(rng, nil),
		Latency:  DefaultLatency(rng),
		Finisher: finisher,
	}
}

// withDefaults fills unset word and latency services from Rand.
func (svc Services) withDefaults() (Services, error) {
	if svc.Rand == nil {
		return svc, ErrNoRand
	}
	if svc.Finisher == nil {
		return svc, trial.ErrNoFinisher
	}
	if svc.Words == nil {
		svc.Words = NewWordList(svc.Rand, nil)
	}
	if svc.Latency == nil {
		svc.Latency = DefaultLatency(svc.Rand)
	}
	if svc.Logger == nil {
		svc.Logger = zap.NewNop()
	}
	return svc, nil
}

// Report describes one simulated trial.
type Report struct {
	Mode     string
	Answers  []string
	Finished bool
	// Result is set when the trial finished.
	Result trial.Result
	// Timeline and Outcome are set in interactive mode.
	Timeline Timeline
	Outcome  trial.Outcome
}

// Answers synthesizes one answer per blank: a random filler word for open
// blanks, otherwise a uniformly chosen accepted alternative.
func Answers(tmpl cloze.Template, rng Rand, words WordSource) ([]string, error) {
	answers := make([]string, tmpl.Blanks())
	for i, solutions := range tmpl.Solutions {
		if tmpl.IsOpen(i) {
			drawn := words.Words(1)
			if len(drawn) == 0 || drawn[0] == "" {
				return nil, ErrNoWords
			}
			answers[i] = drawn[0]
			continue
		}
		answers[i] = solutions[rng.IntN(len(solutions))]
	}
	return answers, nil
}

// Simulate produces a response for cfg without a live participant.
func Simulate(ctx context.Context, mode Mode, cfg trial.Config, svc Services) (Report, error) {
	svc, err := svc.withDefaults()
	if err != nil {
		return Report{}, err
	}
	switch typed := mode.(type) {
	case Headless:
		return simulateHeadless(cfg, svc)
	case Interactive:
		return simulateInteractive(ctx, typed, cfg, svc)
	default:
		return Report{}, fmt.Errorf("%w %T", ErrUnknownMode, mode)
	}
}

// simulateHeadless hands generated answers to the finisher without gates.
func simulateHeadless(cfg trial.Config, svc Services) (Report, error) {
	tmpl := cloze.Parse(cfg.Text, cfg.CaseSensitive)
	answers, err := Answers(tmpl, svc.Rand, svc.Words)
	if err != nil {
		return Report{}, err
	}
	result := trial.Result{Response: answers}
	if err := svc.Finisher.Finish(result); err != nil {
		return Report{}, fmt.Errorf("finish trial: %w", err)
	}
	svc.Logger.Debug("headless simulation finished", zap.Strings("response", answers))
	return Report{
		Mode:     Headless{}.Name(),
		Answers:  answers,
		Finished: true,
		Result:   result,
	}, nil
}

// simulateInteractive renders the trial and plays a timeline against it.
func simulateInteractive(ctx context.Context, mode Interactive, cfg trial.Config, svc Services) (Report, error) {
	tr, err := trial.New(cfg, trial.Options{Finisher: svc.Finisher, Logger: svc.Logger})
	if err != nil {
		return Report{}, err
	}
	answers, err := Answers(tr.Template(), svc.Rand, svc.Words)
	if err != nil {
		return Report{}, err
	}
	timeline := Schedule(answers, svc.Latency)
	var outcome trial.Outcome
	if mode.Player != nil {
		outcome, err = mode.Player(ctx, tr, timeline)
	} else {
		outcome, err = timeline.Play(ctx, tr, mode.Wait)
	}
	if err != nil {
		return Report{}, err
	}
	report := Report{
		Mode:     mode.Name(),
		Answers:  answers,
		Finished: tr.Finished(),
		Timeline: timeline,
		Outcome:  outcome,
	}
	if result, ok := tr.Result(); ok {
		report.Result = result
	}
	svc.Logger.Debug("interactive simulation played",
		zap.Int("events", len(timeline.Events)),
		zap.Duration("duration", timeline.Duration()),
		zap.Bool("finished", report.Finished))
	return report, nil
}
