package simulate

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cloze/internal/trial"
)

// ErrUnknownMode indicates a simulation mode name that is not recognized.
var ErrUnknownMode = errors.New("simulate: unknown mode")

// Mode selects how simulated answers reach the host.
// The variants are Headless and Interactive.
type Mode interface {
	Name() string
	isMode()
}

// Headless delivers generated answers straight to the finisher without
// rendering the form or applying any gate.
type Headless struct{}

// Name returns "headless".
func (Headless) Name() string { return "headless" }

func (Headless) isMode() {}

// Interactive renders the form and drives its fields and submit control
// along a timeline of sampled delays.
type Interactive struct {
	// Wait paces the timeline; nil plays it in virtual time.
	Wait WaitFunc
	// Player, when set, replaces Timeline.Play, e.g. to replay inside a
	// terminal form.
	Player Player
}

// Player applies a timeline to a rendered trial.
type Player func(ctx context.Context, tr *trial.Trial, timeline Timeline) (trial.Outcome, error)

// Name returns "interactive".
func (Interactive) Name() string { return "interactive" }

func (Interactive) isMode() {}

// ParseMode maps a mode name to its variant. The names data-only and
// visual are accepted as aliases.
func ParseMode(name string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "headless", "data-only":
		return Headless{}, nil
	case "interactive", "visual":
		return Interactive{}, nil
	default:
		return nil, fmt.Errorf("%w %q (expected headless|interactive)", ErrUnknownMode, name)
	}
}
