package alert

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/mmcloughlin/geohash"

	"github.com/ruralplus/companion-api/schema"
)

const (
	// DefaultWeatherThrottle is how long a location's weather alert stays
	// suppressed after it has been shown.
	DefaultWeatherThrottle = 30 * time.Minute

	// weatherKeyPrecision buckets throttle keys to roughly 1 km cells.
	weatherKeyPrecision = 6

	heavyRainMMPerHour = 7.6
	dangerWindSpeed    = 20.0 // m/s, ~72 km/h
	warningWindSpeed   = 10.0 // m/s, ~36 km/h
)

// WeatherSource fetches current conditions for a coordinate.
type WeatherSource interface {
	Weather(ctx context.Context, lat, lng float64) (*schema.Weather, error)
}

// WeatherAlert is a classified weather reading for the observer's area.
type WeatherAlert struct {
	Weather  *schema.Weather        `json:"weather"`
	Severity schema.WeatherSeverity `json:"severity"`
	Message  string                 `json:"message,omitempty"`
}

// WeatherMonitor fetches and classifies weather for the observer's position,
// throttling repeated alerts for the same area within a time window.
type WeatherMonitor struct {
	mu sync.Mutex

	source   WeatherSource
	throttle time.Duration
	now      func() time.Time

	shown map[string]time.Time
}

type WeatherOption func(*WeatherMonitor)

func WithWeatherThrottle(d time.Duration) WeatherOption {
	return func(m *WeatherMonitor) { m.throttle = d }
}

func WithWeatherClock(now func() time.Time) WeatherOption {
	return func(m *WeatherMonitor) { m.now = now }
}

func NewWeatherMonitor(source WeatherSource, opts ...WeatherOption) *WeatherMonitor {
	m := &WeatherMonitor{
		source:   source,
		throttle: DefaultWeatherThrottle,
		now:      time.Now,
		shown:    map[string]time.Time{},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Check fetches the weather for a coordinate and returns a classified alert.
// When the same area alerted within the throttle window the returned alert
// is nil, unless force is set. A returned alert marks the area as shown.
func (m *WeatherMonitor) Check(ctx context.Context, lat, lng float64, force bool) (*WeatherAlert, error) {
	key := geohash.EncodeWithPrecision(lat, lng, weatherKeyPrecision)

	m.mu.Lock()
	if !force {
		if shownAt, ok := m.shown[key]; ok && m.now().Sub(shownAt) < m.throttle {
			m.mu.Unlock()
			log.WithField("area", key).Debug("weather alert throttled")
			return nil, nil
		}
	}
	m.mu.Unlock()

	weather, err := m.source.Weather(ctx, lat, lng)
	if err != nil {
		return nil, err
	}

	severity := WeatherSeverity(weather)
	result := &WeatherAlert{
		Weather:  weather,
		Severity: severity,
		Message:  WeatherMessage(weather, severity),
	}

	m.mu.Lock()
	m.shown[key] = m.now()
	m.mu.Unlock()

	return result, nil
}

// ResetThrottle clears all shown areas.
func (m *WeatherMonitor) ResetThrottle() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.shown = map[string]time.Time{}
}

// WeatherSeverity classifies current conditions into alert levels using the
// main condition group, rainfall rate and wind speed.
func WeatherSeverity(w *schema.Weather) schema.WeatherSeverity {
	var condition string
	if len(w.Conditions) > 0 {
		condition = strings.ToLower(w.Conditions[0].Main)
	}

	rain := 0.0
	if w.Rain != nil {
		rain = w.Rain.OneHour
	}

	switch {
	case condition == "thunderstorm" || condition == "tornado" || condition == "squall":
		return schema.WeatherDanger
	case rain > heavyRainMMPerHour:
		return schema.WeatherDanger
	case w.Wind.Speed > dangerWindSpeed:
		return schema.WeatherDanger
	case condition == "rain" || condition == "snow":
		return schema.WeatherWarning
	case rain > 0:
		return schema.WeatherWarning
	case w.Wind.Speed > warningWindSpeed:
		return schema.WeatherWarning
	default:
		return schema.WeatherSafe
	}
}

// WeatherMessage builds the user-facing alert text. Descriptions already
// arrive in Portuguese from the backend (lang=pt_br).
func WeatherMessage(w *schema.Weather, severity schema.WeatherSeverity) string {
	var description string
	if len(w.Conditions) > 0 {
		description = w.Conditions[0].Description
	}

	switch severity {
	case schema.WeatherDanger:
		return fmt.Sprintf("PERIGO: %s. Evite viajar neste momento!", description)
	case schema.WeatherWarning:
		return fmt.Sprintf("ATENÇÃO: %s. Dirija com cuidado.", description)
	default:
		return ""
	}
}
