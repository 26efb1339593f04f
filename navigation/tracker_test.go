package navigation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ruralplus/companion-api/schema"
)

func testRoute() schema.Route {
	// two ~1.1km steps east along the equator
	return schema.Route{
		Legs: []schema.RouteLeg{{
			Steps: []schema.RouteStep{
				{
					EndLocation:      schema.LatLng{Lat: 0, Lng: 0.01},
					Distance:         schema.TextValue{Text: "1,1 km", Value: 1113},
					Duration:         schema.TextValue{Text: "1 min", Value: 60},
					HTMLInstructions: "Siga para <b>leste</b>",
					Maneuver:         "straight",
				},
				{
					EndLocation:      schema.LatLng{Lat: 0, Lng: 0.02},
					Distance:         schema.TextValue{Text: "1,1 km", Value: 1113},
					Duration:         schema.TextValue{Text: "1 min", Value: 60},
					HTMLInstructions: "Vire à <b>direita</b>&nbsp;na SP-300",
					Maneuver:         "turn-right",
				},
			},
		}},
	}
}

func TestNewTrackerRejectsEmptyRoute(t *testing.T) {
	_, err := NewTracker(schema.Route{})
	assert.Equal(t, ErrNoSteps, err)
}

func TestTrackerProgress(t *testing.T) {
	now := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	tracker, err := NewTracker(testRoute(), WithTrackerClock(func() time.Time { return now }))
	assert.NoError(t, err)

	p := tracker.Update(schema.Location{Latitude: 0, Longitude: 0})
	assert.Equal(t, 0, p.StepIndex)
	assert.Equal(t, "Siga para leste", p.Instruction)
	assert.Equal(t, "Vire à direita na SP-300", p.NextInstruction)
	assert.InDelta(t, 1113, p.DistanceToStepEnd, 10)
	assert.InDelta(t, 2226, p.RemainingDistance, 20)
	assert.InDelta(t, 120, p.RemainingSeconds, 0.1)
	assert.Equal(t, now.Add(2*time.Minute), p.Arrival)
	assert.False(t, p.Arrived)
}

func TestTrackerAdvancesNearStepEnd(t *testing.T) {
	tracker, err := NewTracker(testRoute())
	assert.NoError(t, err)

	// ~11m before the end of the first step
	p := tracker.Update(schema.Location{Latitude: 0, Longitude: 0.0099})
	assert.Equal(t, 1, p.StepIndex)
	assert.Equal(t, "Vire à direita na SP-300", p.Instruction)
	assert.Equal(t, "", p.NextInstruction)
	assert.InDelta(t, 60, p.RemainingSeconds, 0.1)
	assert.False(t, p.Arrived)
}

func TestTrackerForwardOnly(t *testing.T) {
	tracker, err := NewTracker(testRoute())
	assert.NoError(t, err)

	p := tracker.Update(schema.Location{Latitude: 0, Longitude: 0.0099})
	assert.Equal(t, 1, p.StepIndex)

	// driving backwards does not rewind the step
	p = tracker.Update(schema.Location{Latitude: 0, Longitude: 0})
	assert.Equal(t, 1, p.StepIndex)
	assert.InDelta(t, 2226, p.DistanceToStepEnd, 20)
}

func TestTrackerArrival(t *testing.T) {
	tracker, err := NewTracker(testRoute())
	assert.NoError(t, err)

	tracker.Update(schema.Location{Latitude: 0, Longitude: 0.0099})
	p := tracker.Update(schema.Location{Latitude: 0, Longitude: 0.0199})
	assert.Equal(t, 1, p.StepIndex, "no step beyond the last")
	assert.True(t, p.Arrived)
}

func TestCleanInstruction(t *testing.T) {
	assert.Equal(t,
		"Vire à esquerda na SP-300 & siga em frente",
		CleanInstruction(`Vire à <b>esquerda</b> na&nbsp;<div style="font-size:0.9em">SP-300</div> &amp; siga em frente`),
	)
}
