package simulate

import (
	"context"
	"fmt"
	"time"

	"cloze/internal/trial"
)

// EventKind identifies a scheduled simulation step.
type EventKind int

const (
	// EventFill sets a field value.
	EventFill EventKind = iota
	// EventSubmit activates the submit control.
	EventSubmit
)

// String returns a short label for the event kind.
func (kind EventKind) String() string {
	if kind == EventSubmit {
		return "submit"
	}
	return "fill"
}

// Event is one step of an interactive simulation, At is the offset from the start.
type Event struct {
	At    time.Duration
	Kind  EventKind
	Field int
	Value string
}

// Driver is the surface a timeline acts on. *trial.Trial implements it.
type Driver interface {
	SetValue(field int, value string) error
	Submit() (trial.Outcome, error)
}

// WaitFunc blocks for d or until ctx is done.
type WaitFunc func(ctx context.Context, d time.Duration) error

// RealTime waits on the wall clock.
func RealTime(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Timeline is an ordered list of fills followed by one submit.
type Timeline struct {
	Events []Event
}

// Schedule places one fill per answer at increasing sampled offsets and the
// submit after the last fill.
func Schedule(answers []string, latency LatencySampler) Timeline {
	events := make([]Event, 0, len(answers)+1)
	offset := latency.Sample()
	for i, answer := range answers {
		events = append(events, Event{At: millis(offset), Kind: EventFill, Field: i, Value: answer})
		offset += latency.Sample()
	}
	events = append(events, Event{At: millis(offset), Kind: EventSubmit, Field: -1})
	return Timeline{Events: events}
}

// Duration returns the offset of the last event.
func (tl Timeline) Duration() time.Duration {
	if len(tl.Events) == 0 {
		return 0
	}
	return tl.Events[len(tl.Events)-1].At
}

// Play applies the events to driver in order and returns the submit outcome.
func (tl Timeline) Play(ctx context.Context, driver Driver, wait WaitFunc) (trial.Outcome, error) {
	var (
		previous time.Duration
		outcome  trial.Outcome
	)
	for _, event := range tl.Events {
		if wait != nil {
			if err := wait(ctx, event.At-previous); err != nil {
				return outcome, err
			}
		} else if err := ctx.Err(); err != nil {
			return outcome, err
		}
		previous = event.At
		switch event.Kind {
		case EventFill:
			if err := driver.SetValue(event.Field, event.Value); err != nil {
				return outcome, fmt.Errorf("fill field %d: %w", event.Field, err)
			}
		case EventSubmit:
			result, err := driver.Submit()
			if err != nil {
				return result, fmt.Errorf("submit: %w", err)
			}
			outcome = result
		}
	}
	return outcome, nil
}
