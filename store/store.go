package store

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ruralplus/companion-api/schema"
)

var log = logrus.WithField("prefix", "store")

// Store persists the offline Plus Code cache. Entries are only ever replaced
// wholesale; there is no per-entry eviction.
type Store interface {
	Save(ctx context.Context, codes []schema.PlusCode, syncedAt time.Time) error
	Load(ctx context.Context) ([]schema.PlusCode, error)
	LastSync(ctx context.Context) (time.Time, error)
	Clear(ctx context.Context) error
}

// Backend provides the full Plus Code record set for a resync.
type Backend interface {
	ListPlusCodes(ctx context.Context) ([]schema.PlusCode, error)
}

// Probe reports backend reachability.
type Probe interface {
	Online(ctx context.Context) bool
}
