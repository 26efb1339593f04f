package navigation

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ruralplus/companion-api/geo"
	"github.com/ruralplus/companion-api/schema"
)

var log = logrus.WithField("prefix", "navigation")

// DefaultAdvanceThreshold is how close to a step's end the observer must be
// before the next step becomes current.
const DefaultAdvanceThreshold = 30.0

var ErrNoSteps = fmt.Errorf("route has no steps")

var htmlTags = regexp.MustCompile(`<[^>]*>`)

// Progress is the turn-by-turn state derived from the latest position.
type Progress struct {
	StepIndex         int       `json:"step_index"`
	TotalSteps        int       `json:"total_steps"`
	Instruction       string    `json:"instruction"`
	Maneuver          string    `json:"maneuver,omitempty"`
	NextInstruction   string    `json:"next_instruction,omitempty"`
	NextManeuver      string    `json:"next_maneuver,omitempty"`
	DistanceToStepEnd float64   `json:"distance_to_step_end"`
	RemainingDistance float64   `json:"remaining_distance"`
	RemainingSeconds  float64   `json:"remaining_seconds"`
	Arrival           time.Time `json:"arrival"`
	Arrived           bool      `json:"arrived"`
}

// Tracker walks a route's steps as the observer moves. Advancement is
// strictly forward: a missed turn is never corrected, only surfaced through
// growing distances until the caller requests a new route.
type Tracker struct {
	mu sync.Mutex

	id        string
	steps     []schema.RouteStep
	current   int
	threshold float64
	now       func() time.Time
}

type TrackerOption func(*Tracker)

func WithAdvanceThreshold(meters float64) TrackerOption {
	return func(t *Tracker) { t.threshold = meters }
}

func WithTrackerClock(now func() time.Time) TrackerOption {
	return func(t *Tracker) { t.now = now }
}

// NewTracker starts a navigation session over the route's flattened steps.
func NewTracker(route schema.Route, opts ...TrackerOption) (*Tracker, error) {
	steps := route.Steps()
	if len(steps) == 0 {
		return nil, ErrNoSteps
	}

	t := &Tracker{
		id:        uuid.New().String(),
		steps:     steps,
		threshold: DefaultAdvanceThreshold,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}

	log.WithFields(logrus.Fields{
		"session": t.id,
		"steps":   len(steps),
	}).Info("navigation session started")

	return t, nil
}

// ID returns the session identifier.
func (t *Tracker) ID() string {
	return t.id
}

// Update advances the tracker with a new observer position and returns the
// recomputed progress.
func (t *Tracker) Update(loc schema.Location) Progress {
	t.mu.Lock()
	defer t.mu.Unlock()

	step := t.steps[t.current]
	distanceToEnd := geo.Distance(loc, step.EndLocation.Location())

	if distanceToEnd < t.threshold && t.current < len(t.steps)-1 {
		t.current++
		step = t.steps[t.current]
		distanceToEnd = geo.Distance(loc, step.EndLocation.Location())
	}

	remainingDistance := distanceToEnd
	remainingSeconds := step.Duration.Value
	for i := t.current + 1; i < len(t.steps); i++ {
		remainingDistance += t.steps[i].Distance.Value
		remainingSeconds += t.steps[i].Duration.Value
	}

	progress := Progress{
		StepIndex:         t.current,
		TotalSteps:        len(t.steps),
		Instruction:       CleanInstruction(step.HTMLInstructions),
		Maneuver:          step.Maneuver,
		DistanceToStepEnd: distanceToEnd,
		RemainingDistance: remainingDistance,
		RemainingSeconds:  remainingSeconds,
		Arrival:           t.now().Add(time.Duration(remainingSeconds * float64(time.Second))),
		Arrived:           t.current == len(t.steps)-1 && distanceToEnd < t.threshold,
	}
	if t.current < len(t.steps)-1 {
		next := t.steps[t.current+1]
		progress.NextInstruction = CleanInstruction(next.HTMLInstructions)
		progress.NextManeuver = next.Maneuver
	}

	return progress
}

// CurrentStep returns the step the tracker currently points at.
func (t *Tracker) CurrentStep() schema.RouteStep {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.steps[t.current]
}

// CleanInstruction strips the Directions HTML markup from an instruction.
func CleanInstruction(html string) string {
	s := htmlTags.ReplaceAllString(html, "")
	s = strings.ReplaceAll(s, "&nbsp;", " ")
	s = strings.ReplaceAll(s, "&amp;", "&")
	return strings.TrimSpace(s)
}
