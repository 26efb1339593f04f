package background

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ruralplus/companion-api/schema"
)

type stubSource struct {
	mu     sync.Mutex
	calls  int
	failAt map[int]bool
}

func (s *stubSource) ListOccurrences(ctx context.Context) ([]schema.Occurrence, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls++
	if s.failAt[s.calls] {
		return nil, fmt.Errorf("conexão recusada")
	}
	return []schema.Occurrence{
		{ID: fmt.Sprintf("occ-%d", s.calls), Type: "buraco", Severity: schema.SeverityModerate},
	}, nil
}

func (s *stubSource) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type stubSink struct {
	mu      sync.Mutex
	batches [][]schema.Occurrence
}

func (s *stubSink) SetOccurrences(occurrences []schema.Occurrence) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.batches = append(s.batches, occurrences)
}

func (s *stubSink) received() [][]schema.Occurrence {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([][]schema.Occurrence(nil), s.batches...)
}

func TestPollerImmediateFetch(t *testing.T) {
	source := &stubSource{}
	sink := &stubSink{}
	p := NewOccurrencePoller(source, sink, WithPollInterval(time.Hour))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		p.Run(ctx)
	}()

	assert.Eventually(t, func() bool {
		return len(sink.received()) == 1
	}, time.Second, 10*time.Millisecond, "first fetch happens before the first tick")

	cancel()
	<-done
}

func TestPollerPeriodicRefresh(t *testing.T) {
	source := &stubSource{}
	sink := &stubSink{}
	p := NewOccurrencePoller(source, sink, WithPollInterval(20*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		p.Run(ctx)
	}()

	assert.Eventually(t, func() bool {
		return len(sink.received()) >= 3
	}, time.Second, 10*time.Millisecond)

	cancel()
	<-done

	batches := sink.received()
	assert.Equal(t, "occ-1", batches[0][0].ID)
	assert.NotEqual(t, batches[0][0].ID, batches[1][0].ID, "each tick delivers the fresh batch")
}

func TestPollerSkipsFailedFetch(t *testing.T) {
	source := &stubSource{failAt: map[int]bool{1: true}}
	sink := &stubSink{}
	p := NewOccurrencePoller(source, sink, WithPollInterval(20*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		p.Run(ctx)
	}()

	assert.Eventually(t, func() bool {
		return len(sink.received()) >= 1
	}, time.Second, 10*time.Millisecond)

	cancel()
	<-done

	assert.GreaterOrEqual(t, source.callCount(), 2)
	batches := sink.received()
	assert.Equal(t, "occ-2", batches[0][0].ID, "failed first fetch pushes nothing")
}
