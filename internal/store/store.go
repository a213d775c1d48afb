// Package store holds the in-memory collections of projects, entries and
// inspirations, the mutations that change them, and the derived views read
// by every surface. It is the single choke point where the data invariants
// are enforced: dense project slots, one entry per (date, project) cell,
// non-empty persisted content.
//
// The store is single-writer and unlocked. Callers that introduce
// concurrent access (the HTTP server) must serialize around it.
package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/existflow/gleam/internal/blob"
	"github.com/existflow/gleam/internal/logger"
	"github.com/existflow/gleam/internal/model"
	"github.com/google/uuid"
)

// Store owns the three collections and their persistence sink.
//
// Ordering: projects are kept in slot order, entries in insertion order,
// inspirations newest-first.
type Store struct {
	blob blob.Store

	// Now and NewID are injectable for tests.
	Now   func() time.Time
	NewID func() string

	projects     []model.Project
	entries      []model.Entry
	inspirations []model.Inspiration
}

// Open loads the collections out of b. An empty store is seeded with the
// starter projects.
func Open(b blob.Store) (*Store, error) {
	s := &Store{
		blob:  b,
		Now:   time.Now,
		NewID: func() string { return uuid.New().String() },
	}

	seeded, err := loadJSON(b, blob.KeyProjects, &s.projects)
	if err != nil {
		return nil, err
	}
	if !seeded {
		s.projects = model.StarterProjects()
		s.persist(blob.KeyProjects)
	}
	if _, err := loadJSON(b, blob.KeyEntries, &s.entries); err != nil {
		return nil, err
	}
	if _, err := loadJSON(b, blob.KeyInspirations, &s.inspirations); err != nil {
		return nil, err
	}

	logger.Debug("store opened",
		logger.F("projects", len(s.projects)),
		logger.F("entries", len(s.entries)),
		logger.F("inspirations", len(s.inspirations)))
	return s, nil
}

func loadJSON(b blob.Store, key string, dst interface{}) (bool, error) {
	raw, ok, err := b.Get(key)
	if err != nil {
		return false, fmt.Errorf("failed to load %s: %w", key, err)
	}
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return false, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return true, nil
}

// persist writes one collection to the sink. Failures are logged and
// swallowed: persistence is fire-and-forget and never blocks a mutation
// that already succeeded in memory.
func (s *Store) persist(key string) {
	var v interface{}
	switch key {
	case blob.KeyProjects:
		v = s.projects
	case blob.KeyEntries:
		v = s.entries
	case blob.KeyInspirations:
		v = s.inspirations
	}

	data, err := json.Marshal(v)
	if err != nil {
		logger.Error("failed to encode collection", logger.F("key", key), logger.F("error", err))
		return
	}
	if err := s.blob.Set(key, string(data)); err != nil {
		logger.Warn("failed to persist collection", logger.F("key", key), logger.F("error", err))
	}
}

// Projects returns all projects in slot order.
func (s *Store) Projects() []model.Project {
	out := make([]model.Project, len(s.projects))
	copy(out, s.projects)
	return out
}

// Entries returns all entries in insertion order.
func (s *Store) Entries() []model.Entry {
	out := make([]model.Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Inspirations returns all inspirations, newest first.
func (s *Store) Inspirations() []model.Inspiration {
	out := make([]model.Inspiration, len(s.inspirations))
	copy(out, s.inspirations)
	return out
}

// Replace swaps in all three collections verbatim and persists them. It is
// the restore half of the backup protocol: no merge, no deduplication, no
// re-validation of what the snapshot carries.
func (s *Store) Replace(projects []model.Project, entries []model.Entry, inspirations []model.Inspiration) {
	s.projects = append([]model.Project{}, projects...)
	s.entries = append([]model.Entry{}, entries...)
	s.inspirations = append([]model.Inspiration{}, inspirations...)

	s.persist(blob.KeyProjects)
	s.persist(blob.KeyEntries)
	s.persist(blob.KeyInspirations)

	logger.Info("store replaced from snapshot",
		logger.F("projects", len(s.projects)),
		logger.F("entries", len(s.entries)),
		logger.F("inspirations", len(s.inspirations)))
}
