// FILE: prospects/service.go

package prospects

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/illmade-knight/hot-prospects/pkg/observe"
	"github.com/rs/zerolog"
)

// EventKind describes what changed in the collection.
type EventKind string

const (
	EventLoaded  EventKind = "LOADED"
	EventAdded   EventKind = "ADDED"
	EventToggled EventKind = "TOGGLED"
)

// Event is delivered to subscribers after every change to the collection.
// Prospect is the zero value for EventLoaded.
type Event struct {
	Kind     EventKind
	Prospect Prospect
}

// Service owns the prospect collection. It keeps the collection in memory,
// derives the list views, and writes the whole collection to its Store after
// every mutation.
type Service struct {
	mu        sync.RWMutex
	store     Store
	people    []Prospect
	index     map[uuid.UUID]int
	observers observe.Registry[Event]
	logger    zerolog.Logger
}

// NewService creates an empty Service. Call Load to populate it.
func NewService(store Store, logger zerolog.Logger) *Service {
	return &Service{
		store:  store,
		index:  make(map[uuid.UUID]int),
		logger: logger.With().Str("component", "prospects").Logger(),
	}
}

// Load replaces the in-memory collection with what the Store holds.
// When nothing is saved or the saved data cannot be read the collection is
// left empty and the error is returned; callers may treat it as informational.
func (s *Service) Load(ctx context.Context) error {
	people, err := s.store.Load(ctx)
	if err != nil {
		people = nil
		if errors.Is(err, ErrNoData) {
			s.logger.Info().Msg("No saved prospects, starting empty")
		} else {
			s.logger.Warn().Err(err).Msg("Unable to load saved prospects, starting empty")
		}
	}

	s.mu.Lock()
	s.people = people
	s.reindex()
	count := len(s.people)
	s.mu.Unlock()

	s.observers.Notify(Event{Kind: EventLoaded})
	if err != nil {
		return fmt.Errorf("failed to load prospects: %w", err)
	}
	s.logger.Info().Int("count", count).Msg("Loaded prospects")
	return nil
}

// Add appends p to the end of the collection and saves. The prospect stays in
// memory even if saving fails; the save error is logged and returned.
// Text fields are normalized the same way NewProspect does.
func (s *Service) Add(ctx context.Context, p Prospect) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p = p.normalized()

	s.mu.Lock()
	if _, exists := s.index[p.ID]; exists {
		s.mu.Unlock()
		return fmt.Errorf("cannot add %s: %w", p.ID, ErrDuplicateID)
	}
	s.people = append(s.people, p)
	s.index[p.ID] = len(s.people) - 1
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.observers.Notify(Event{Kind: EventAdded, Prospect: p})
	return s.save(ctx, snapshot)
}

// Toggle flips the contacted flag of the prospect with the given ID and saves.
// Subscribers are notified before the save, so they see the change even when
// persistence fails.
func (s *Service) Toggle(ctx context.Context, id uuid.UUID) (Prospect, error) {
	s.mu.Lock()
	i, ok := s.index[id]
	if !ok {
		s.mu.Unlock()
		return Prospect{}, fmt.Errorf("cannot toggle %s: %w", id, ErrNotFound)
	}
	s.people[i].IsContacted = !s.people[i].IsContacted
	p := s.people[i]
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.observers.Notify(Event{Kind: EventToggled, Prospect: p})
	return p, s.save(ctx, snapshot)
}

// Get returns a copy of the prospect with the given ID.
func (s *Service) Get(id uuid.UUID) (Prospect, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.index[id]
	if !ok {
		return Prospect{}, fmt.Errorf("prospect %s: %w", id, ErrNotFound)
	}
	return s.people[i], nil
}

// FindEqual returns the stored prospects equal to p by name and email.
func (s *Service) FindEqual(p Prospect) []Prospect {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var matches []Prospect
	for _, existing := range s.people {
		if existing.Equal(p) {
			matches = append(matches, existing)
		}
	}
	return matches
}

// Len reports the size of the collection.
func (s *Service) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.people)
}

// Prospects returns a copy of the collection in insertion order.
func (s *Service) Prospects() []Prospect {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Filtered returns the prospects matching f in insertion order.
func (s *Service) Filtered(f Filter) []Prospect {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return FilterProspects(s.people, f)
}

// Sorted returns the whole collection sorted by order.
func (s *Service) Sorted(order SortOrder) []Prospect {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return SortProspects(s.people, order)
}

// View is what a list renders: the filtered subset, sorted.
func (s *Service) View(f Filter, order SortOrder) []Prospect {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return SortProspects(FilterProspects(s.people, f), order)
}

// Subscribe registers fn for change events. The returned func unsubscribes.
func (s *Service) Subscribe(fn func(Event)) func() {
	return s.observers.Subscribe(fn)
}

// GetStore returns the persistence backend.
func (s *Service) GetStore() Store {
	return s.store
}

func (s *Service) save(ctx context.Context, snapshot []Prospect) error {
	if err := s.store.Save(ctx, snapshot); err != nil {
		s.logger.Error().Err(err).Int("count", len(snapshot)).Msg("Unable to save prospects")
		return fmt.Errorf("failed to save prospects: %w", err)
	}
	s.logger.Debug().Int("count", len(snapshot)).Msg("Prospects saved")
	return nil
}

func (s *Service) snapshotLocked() []Prospect {
	return append([]Prospect(nil), s.people...)
}

// reindex rebuilds the ID index. If saved data contains a repeated ID the
// first occurrence wins.
func (s *Service) reindex() {
	s.index = make(map[uuid.UUID]int, len(s.people))
	for i, p := range s.people {
		if _, dup := s.index[p.ID]; dup {
			s.logger.Warn().Stringer("prospect_id", p.ID).Msg("Duplicate prospect ID in saved data")
			continue
		}
		s.index[p.ID] = i
	}
}
