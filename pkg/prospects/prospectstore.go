// FILE: prospects/store.go

package prospects

import (
	"context"
	"errors"
)

var (
	// ErrNoData is returned by a Store when nothing has been persisted yet.
	ErrNoData = errors.New("no saved prospects")
	// ErrNotFound is returned when an ID does not match any prospect.
	ErrNotFound = errors.New("prospect not found")
	// ErrDuplicateID is returned when adding a prospect whose ID is already stored.
	ErrDuplicateID = errors.New("prospect ID already exists")
)

// Store is the interface for persisting the prospect collection.
// Save always overwrites the full collection; Load returns it in saved order.
type Store interface {
	Load(ctx context.Context) ([]Prospect, error)
	Save(ctx context.Context, people []Prospect) error
}
