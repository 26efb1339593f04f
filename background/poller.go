package background

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ruralplus/companion-api/schema"
)

var log = logrus.WithField("prefix", "background")

// DefaultPollInterval is how often the occurrence list is refreshed while
// the companion is running.
const DefaultPollInterval = 30 * time.Second

// OccurrenceSource lists the road occurrences the poller feeds downstream.
type OccurrenceSource interface {
	ListOccurrences(ctx context.Context) ([]schema.Occurrence, error)
}

// OccurrenceSink receives each successfully fetched occurrence batch.
type OccurrenceSink interface {
	SetOccurrences(occurrences []schema.Occurrence)
}

// OccurrencePoller periodically pulls the occurrence list from the backend
// and pushes it into the proximity engine. Fetch errors are logged and the
// previous batch stays in effect until the next tick.
type OccurrencePoller struct {
	source   OccurrenceSource
	sink     OccurrenceSink
	interval time.Duration
}

type PollerOption func(*OccurrencePoller)

func WithPollInterval(d time.Duration) PollerOption {
	return func(p *OccurrencePoller) { p.interval = d }
}

func NewOccurrencePoller(source OccurrenceSource, sink OccurrenceSink, opts ...PollerOption) *OccurrencePoller {
	p := &OccurrencePoller{
		source:   source,
		sink:     sink,
		interval: DefaultPollInterval,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run polls immediately and then on every tick until the context is
// cancelled.
func (p *OccurrencePoller) Run(ctx context.Context) {
	p.poll(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("occurrence poller stopped")
			return
		case <-ticker.C:
			p.poll(ctx)
		}
	}
}

func (p *OccurrencePoller) poll(ctx context.Context) {
	occurrences, err := p.source.ListOccurrences(ctx)
	if err != nil {
		log.WithError(err).Warn("occurrence fetch failed")
		return
	}

	p.sink.SetOccurrences(occurrences)
	log.WithField("total", len(occurrences)).Debug("occurrences refreshed")
}
