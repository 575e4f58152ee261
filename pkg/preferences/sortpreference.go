// Package preferences holds process-wide display settings.
package preferences

import (
	"sync"

	"github.com/illmade-knight/hot-prospects/pkg/observe"
	"github.com/illmade-knight/hot-prospects/pkg/prospects"
)

// SortPreference selects the ordering used by every list view. It is not
// persisted and starts at prospects.SortByName.
type SortPreference struct {
	mu        sync.RWMutex
	mode      prospects.SortOrder
	observers observe.Registry[prospects.SortOrder]
}

// NewSortPreference returns a preference set to sort by name.
func NewSortPreference() *SortPreference {
	return &SortPreference{mode: prospects.SortByName}
}

// Current returns the active sort order.
func (p *SortPreference) Current() prospects.SortOrder {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.mode
}

// SetMode changes the active order and notifies subscribers synchronously.
// Subscribers are notified even if the mode did not change.
func (p *SortPreference) SetMode(mode prospects.SortOrder) {
	p.mu.Lock()
	p.mode = mode
	p.mu.Unlock()

	p.observers.Notify(mode)
}

// Subscribe registers fn for mode changes. The returned func unsubscribes.
func (p *SortPreference) Subscribe(fn func(prospects.SortOrder)) func() {
	return p.observers.Subscribe(fn)
}
