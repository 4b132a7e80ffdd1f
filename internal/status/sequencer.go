// Package status drives the cosmetic loading indicator shown while a reply
// is pending. Phase timing is fixed and unrelated to backend latency.
package status

import (
	"context"
	"strings"
	"time"

	"seeker/internal/models"
)

// Phase is one timed step of the indicator.
type Phase struct {
	Status models.LoadingStatus
	Hold   time.Duration
}

var Thinking = models.LoadingStatus{State: models.StatusThinking, Step: "Analyzing your request"}

// SequencePhases run after a sequence-bearing reply arrives.
var SequencePhases = []Phase{
	{Status: models.LoadingStatus{State: models.StatusGenerating, Step: "Identifying key milestones"}, Hold: time.Second},
	{Status: models.LoadingStatus{State: models.StatusGenerating, Step: "Planning sequence steps"}, Hold: time.Second},
	{Status: models.LoadingStatus{State: models.StatusGenerating, Step: "Creating detailed instructions"}, Hold: time.Second},
	{Status: models.LoadingStatus{State: models.StatusProcessing, Step: "Finalizing sequence"}, Hold: 800 * time.Millisecond},
}

// Clock waits for a phase to elapse.
type Clock interface {
	Sleep(ctx context.Context, d time.Duration) error
}

type realClock struct{}

func (realClock) Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// RealClock sleeps on wall-clock timers.
func RealClock() Clock { return realClock{} }

// Sequencer publishes each status change through set.
type Sequencer struct {
	clock  Clock
	phases []Phase
	set    func(models.LoadingStatus)
}

func NewSequencer(clock Clock, set func(models.LoadingStatus)) *Sequencer {
	if clock == nil {
		clock = RealClock()
	}
	return &Sequencer{clock: clock, phases: SequencePhases, set: set}
}

// Think enters the thinking phase. Called once the user message is shown.
func (s *Sequencer) Think() {
	s.set(Thinking)
}

// Play walks the generating and processing phases, holding each for its
// duration. It does not reset to none; the caller does that once it has
// applied the reply, so the data lands only after the animation.
func (s *Sequencer) Play(ctx context.Context) error {
	for _, p := range s.phases {
		s.set(p.Status)
		if err := s.clock.Sleep(ctx, p.Hold); err != nil {
			return err
		}
	}
	return nil
}

// Describe maps a status to the line shown next to the spinner.
func Describe(st models.LoadingStatus) string {
	if st.Step == "" {
		return "Processing your request"
	}
	switch {
	case strings.Contains(st.Step, "searching"):
		return "🔍 Searching for relevant profiles and information..."
	case strings.Contains(st.Step, "analyzing"):
		return "📊 Analyzing the search results and crafting a response..."
	case strings.Contains(st.Step, "generating"):
		return "✨ Generating personalized content based on the findings..."
	}
	return st.Step
}

// Emoji returns the glyph shown for a phase.
func Emoji(state models.StatusState) string {
	switch state {
	case models.StatusThinking:
		return "🤔"
	case models.StatusGenerating:
		return "✍️"
	case models.StatusProcessing:
		return "⚙️"
	}
	return "🧠"
}
