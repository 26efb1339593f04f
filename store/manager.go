package store

import (
	"context"
	"strings"
	"time"

	"github.com/ruralplus/companion-api/schema"
)

const (
	// DefaultMinSyncInterval skips non-forced syncs when the cache is
	// fresher than this.
	DefaultMinSyncInterval = time.Hour

	// shortQueryLimit caps results for empty or too-short queries.
	shortQueryLimit = 10

	minQueryLength = 2
)

// Manager is the offline-first Plus Code cache. Search always reads from the
// local store; the backend is only consulted through full resyncs.
type Manager struct {
	store   Store
	backend Backend
	probe   Probe

	minInterval time.Duration
	now         func() time.Time

	syncMu chan struct{} // 1-slot token; held while a sync runs
}

type ManagerOption func(*Manager)

func WithMinSyncInterval(d time.Duration) ManagerOption {
	return func(m *Manager) { m.minInterval = d }
}

func WithManagerClock(now func() time.Time) ManagerOption {
	return func(m *Manager) { m.now = now }
}

func NewManager(store Store, backend Backend, probe Probe, opts ...ManagerOption) *Manager {
	m := &Manager{
		store:       store,
		backend:     backend,
		probe:       probe,
		minInterval: DefaultMinSyncInterval,
		now:         time.Now,
		syncMu:      make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Initialize primes the cache at startup. Online with an empty cache blocks
// on a full resync; online with a warm cache resyncs in the background;
// offline serves whatever is cached.
func (m *Manager) Initialize(ctx context.Context) error {
	if !m.probe.Online(ctx) {
		log.Info("offline - serving cached plus codes")
		return nil
	}

	cached, err := m.store.Load(ctx)
	if err != nil {
		return err
	}

	if len(cached) == 0 {
		_, err := m.Sync(ctx, true)
		return err
	}

	go func() {
		if _, err := m.Sync(context.Background(), false); err != nil {
			log.WithError(err).Warn("background resync failed")
		}
	}()
	return nil
}

// Sync replaces the whole cache from the backend. It reports false without
// error when skipped: another sync in progress, offline, or a recent enough
// cache without force.
func (m *Manager) Sync(ctx context.Context, force bool) (bool, error) {
	select {
	case m.syncMu <- struct{}{}:
	default:
		log.Debug("sync already in progress")
		return false, nil
	}
	defer func() { <-m.syncMu }()

	if !m.probe.Online(ctx) {
		log.Debug("offline - sync skipped")
		return false, nil
	}

	if !force {
		lastSync, err := m.store.LastSync(ctx)
		if err != nil {
			return false, err
		}
		if !lastSync.IsZero() && m.now().Sub(lastSync) < m.minInterval {
			log.Debug("recent sync - skipped")
			return false, nil
		}
	}

	codes, err := m.backend.ListPlusCodes(ctx)
	if err != nil {
		log.WithError(err).Error("plus code sync failed")
		return false, err
	}

	if err := m.store.Save(ctx, codes, m.now()); err != nil {
		return false, err
	}

	log.WithField("total", len(codes)).Info("plus codes synced")
	return true, nil
}

// Search filters the cached records by a case-insensitive substring match on
// surname or code. Online, it opportunistically resyncs first; the search
// itself never queries the backend. Empty or short queries return the first
// entries only.
func (m *Manager) Search(ctx context.Context, query string) ([]schema.PlusCode, error) {
	if m.probe.Online(ctx) {
		if _, err := m.Sync(ctx, false); err != nil {
			log.WithError(err).Warn("opportunistic sync failed, searching cache")
		}
	}

	cached, err := m.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	query = strings.TrimSpace(query)
	if len(query) < minQueryLength {
		if len(cached) > shortQueryLimit {
			cached = cached[:shortQueryLimit]
		}
		return cached, nil
	}

	needle := strings.ToLower(query)
	matches := make([]schema.PlusCode, 0)
	for _, code := range cached {
		if strings.Contains(strings.ToLower(code.Surname), needle) ||
			strings.Contains(strings.ToLower(code.Code), needle) {
			matches = append(matches, code)
		}
	}
	return matches, nil
}

// Status reports the cache state for the settings screen.
func (m *Manager) Status(ctx context.Context) (schema.SyncStatus, error) {
	status := schema.SyncStatus{
		IsOnline: m.probe.Online(ctx),
	}

	lastSync, err := m.store.LastSync(ctx)
	if err != nil {
		return status, err
	}
	if !lastSync.IsZero() {
		status.LastSync = lastSync.UTC().Format(time.RFC3339)
	}

	cached, err := m.store.Load(ctx)
	if err != nil {
		return status, err
	}
	status.TotalCached = len(cached)
	return status, nil
}

// ClearCache drops all cached records and the last-sync marker.
func (m *Manager) ClearCache(ctx context.Context) error {
	return m.store.Clear(ctx)
}
