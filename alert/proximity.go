package alert

import (
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ruralplus/companion-api/geo"
	"github.com/ruralplus/companion-api/schema"
)

var log = logrus.WithField("prefix", "alert")

const (
	// DefaultRadius is how close an occurrence must be to raise an alert.
	DefaultRadius = 500.0

	// DefaultSessionDisplacement is how far the observer must move before
	// already-shown occurrences become eligible to alert again.
	DefaultSessionDisplacement = 1000.0

	// DefaultDismissAfter is how long an alert stays active before it is
	// dropped automatically.
	DefaultDismissAfter = 10 * time.Second
)

// ProximityAlert is one occurrence annotated with its distance from the
// observer. Shown reflects whether the occurrence had already been surfaced
// when the evaluation ran.
type ProximityAlert struct {
	Occurrence schema.Occurrence `json:"occurrence"`
	Distance   float64           `json:"distance"`
	Shown      bool              `json:"shown"`

	// dedup identity, derived from the batch index when the server
	// assigned no id
	key string
}

// Key exposes the dedup identity of the underlying occurrence.
func (a ProximityAlert) Key() string {
	return a.key
}

// Engine keeps the in-memory occurrence set and the observer's position and
// derives proximity alerts from them. Both inputs re-run the evaluation when
// they change. Alerts are deduplicated per locality session: an occurrence
// alerts at most once until the observer moves beyond the session
// displacement, at which point the shown set is cleared in full.
type Engine struct {
	mu sync.Mutex

	radius       float64
	displacement float64
	dismissAfter time.Duration
	now          func() time.Time

	occurrences []schema.Occurrence
	location    *schema.Location

	nearby       []ProximityAlert
	shown        map[string]struct{}
	lastLocation *schema.Location

	active   *ProximityAlert
	activeAt time.Time
}

type EngineOption func(*Engine)

func WithRadius(meters float64) EngineOption {
	return func(e *Engine) { e.radius = meters }
}

func WithSessionDisplacement(meters float64) EngineOption {
	return func(e *Engine) { e.displacement = meters }
}

func WithDismissAfter(d time.Duration) EngineOption {
	return func(e *Engine) { e.dismissAfter = d }
}

// WithClock overrides the time source. Used by tests.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) { e.now = now }
}

func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		radius:       DefaultRadius,
		displacement: DefaultSessionDisplacement,
		dismissAfter: DefaultDismissAfter,
		now:          time.Now,
		shown:        map[string]struct{}{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SetOccurrences replaces the occurrence set and re-evaluates against the
// last known observer position.
func (e *Engine) SetOccurrences(occurrences []schema.Occurrence) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.occurrences = occurrences
	e.evaluate()
}

// UpdateLocation records a new observer position and re-evaluates.
func (e *Engine) UpdateLocation(loc schema.Location) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.location = &loc
	e.evaluate()
}

// evaluate recomputes the nearby list and the active alert. Callers must
// hold e.mu.
func (e *Engine) evaluate() {
	if e.location == nil || len(e.occurrences) == 0 {
		e.nearby = nil
		e.active = nil
		return
	}

	observer := *e.location

	nearby := make([]ProximityAlert, 0, len(e.occurrences))
	for i, occ := range e.occurrences {
		distance := geo.Distance(observer, occ.Coordinate)
		if distance > e.radius {
			continue
		}
		key := occ.Key(i)
		_, shown := e.shown[key]
		nearby = append(nearby, ProximityAlert{
			Occurrence: occ,
			Distance:   distance,
			Shown:      shown,
			key:        key,
		})
	}
	sort.Slice(nearby, func(i, j int) bool {
		return nearby[i].Distance < nearby[j].Distance
	})
	e.nearby = nearby

	// surface the closest occurrence that has not alerted this session
	for i := range nearby {
		if nearby[i].Shown {
			continue
		}
		e.shown[nearby[i].key] = struct{}{}

		active := nearby[i]
		active.Shown = true
		e.active = &active
		e.activeAt = e.now()

		log.WithFields(logrus.Fields{
			"type":     active.Occurrence.Type,
			"distance": active.Distance,
		}).Debug("new proximity alert")
		break
	}

	// a jump beyond the session displacement starts a fresh locality
	// session: every occurrence may alert again
	if e.lastLocation != nil && geo.Distance(*e.lastLocation, observer) > e.displacement {
		e.shown = map[string]struct{}{}
	}
	e.lastLocation = &observer
}

// Nearby returns the latest radius-filtered, distance-sorted list.
func (e *Engine) Nearby() []ProximityAlert {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]ProximityAlert, len(e.nearby))
	copy(out, e.nearby)
	return out
}

// ActiveAlert returns the alert currently exposed to the user, or nil. An
// alert expires on its own once the dismiss window has passed.
func (e *Engine) ActiveAlert() *ProximityAlert {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.active == nil {
		return nil
	}
	if e.now().Sub(e.activeAt) >= e.dismissAfter {
		e.active = nil
		return nil
	}

	active := *e.active
	return &active
}

// Dismiss drops the active alert immediately.
func (e *Engine) Dismiss() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.active = nil
}

// Reset clears the shown set, allowing every occurrence to alert again.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.shown = map[string]struct{}{}
}
