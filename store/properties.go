package store

import (
	"sync"

	"github.com/ruralplus/companion-api/schema"
)

// DraftProperty is a property pin the user placed but has not registered.
type DraftProperty struct {
	ID       string          `json:"id"`
	Name     string          `json:"name,omitempty"`
	Location schema.Location `json:"location"`
	Address  string          `json:"address,omitempty"`
}

// PropertyStore is an observable list of draft properties shared between
// screens. It is constructed once at startup and passed to its consumers;
// subscribers receive the full list on registration and after every change.
type PropertyStore struct {
	mu      sync.Mutex
	items   []DraftProperty
	subs    map[int]func([]DraftProperty)
	nextSub int
}

func NewPropertyStore() *PropertyStore {
	return &PropertyStore{subs: map[int]func([]DraftProperty){}}
}

// All returns a copy of the current drafts, newest first.
func (s *PropertyStore) All() []DraftProperty {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.snapshot()
}

// Add prepends a draft and notifies subscribers.
func (s *PropertyStore) Add(p DraftProperty) {
	s.mu.Lock()
	s.items = append([]DraftProperty{p}, s.items...)
	snapshot := s.snapshot()
	subs := s.subscribers()
	s.mu.Unlock()

	for _, notify := range subs {
		notify(snapshot)
	}
}

// Remove deletes a draft by id and notifies subscribers.
func (s *PropertyStore) Remove(id string) {
	s.mu.Lock()
	kept := s.items[:0]
	for _, item := range s.items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	s.items = kept
	snapshot := s.snapshot()
	subs := s.subscribers()
	s.mu.Unlock()

	for _, notify := range subs {
		notify(snapshot)
	}
}

// Subscribe registers a listener and immediately delivers the current list.
// The returned function removes the subscription.
func (s *PropertyStore) Subscribe(fn func([]DraftProperty)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	snapshot := s.snapshot()
	s.mu.Unlock()

	fn(snapshot)

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// snapshot and subscribers require s.mu held.
func (s *PropertyStore) snapshot() []DraftProperty {
	return append([]DraftProperty(nil), s.items...)
}

func (s *PropertyStore) subscribers() []func([]DraftProperty) {
	out := make([]func([]DraftProperty), 0, len(s.subs))
	for _, fn := range s.subs {
		out = append(out, fn)
	}
	return out
}
