// Package jsonfile persists the prospect collection as a single JSON document
// in an application-private directory.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/illmade-knight/hot-prospects/internal/fsutil"
	"github.com/illmade-knight/hot-prospects/pkg/prospects"
	"github.com/rs/zerolog"
)

// DefaultFileName is the name of the saved collection inside the data directory.
const DefaultFileName = "SavedData"

const (
	dirPerm  = 0o700
	filePerm = 0o600
)

// Sealer encrypts the file contents at rest. crypto.Sealer satisfies it.
type Sealer interface {
	Seal(data, aad []byte) ([]byte, error)
	Open(sealed, aad []byte) ([]byte, error)
}

// ProspectsStore is a concrete implementation of the prospects.Store
// interface backed by one JSON file, optionally sealed.
type ProspectsStore struct {
	path   string
	sealer Sealer
	logger zerolog.Logger
}

// Option configures a ProspectsStore.
type Option func(*ProspectsStore)

// WithSealer encrypts the file with s.
func WithSealer(s Sealer) Option {
	return func(st *ProspectsStore) { st.sealer = s }
}

// WithLogger attaches a logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(st *ProspectsStore) { st.logger = logger.With().Str("store", "jsonfile").Logger() }
}

// NewProspectsStore creates a store writing to path.
func NewProspectsStore(path string, opts ...Option) *ProspectsStore {
	s := &ProspectsStore{path: path, logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the file the store reads and writes.
func (s *ProspectsStore) Path() string {
	return s.path
}

// Load reads the saved collection. A missing file yields prospects.ErrNoData.
func (s *ProspectsStore) Load(ctx context.Context) ([]prospects.Prospect, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, prospects.ErrNoData
		}
		return nil, fmt.Errorf("failed to read %s: %w", s.path, err)
	}
	if s.sealer != nil {
		data, err = s.sealer.Open(data, s.aad())
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", s.path, err)
		}
	}

	var people []prospects.Prospect
	if err := json.Unmarshal(data, &people); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", s.path, err)
	}
	return people, nil
}

// Save atomically replaces the file with the given collection: it writes a
// temporary file in the same directory, syncs it and renames it into place.
func (s *ProspectsStore) Save(ctx context.Context, people []prospects.Prospect) error {
	if people == nil {
		people = []prospects.Prospect{}
	}
	data, err := json.Marshal(people)
	if err != nil {
		return fmt.Errorf("failed to encode prospects: %w", err)
	}
	if s.sealer != nil {
		data, err = s.sealer.Seal(data, s.aad())
		if err != nil {
			return fmt.Errorf("failed to seal prospects: %w", err)
		}
	}
	if err := fsutil.WriteFileAtomic(s.path, data, dirPerm, filePerm); err != nil {
		return err
	}
	s.logger.Debug().Str("path", s.path).Int("count", len(people)).Msg("Data saved")
	return nil
}

func (s *ProspectsStore) aad() []byte {
	return []byte(filepath.Base(s.path))
}
