// Package backup implements the versioned snapshot format used for
// export/import. Export is a pure serialization of the three collections;
// import is a confirmation-gated full overwrite that validates only the
// snapshot's shape, never the records inside it.
package backup

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/existflow/gleam/internal/model"
	"github.com/existflow/gleam/internal/store"
)

// Version is the snapshot format version tag.
const Version = "1"

// ErrInvalidSnapshot is returned when the data is not a snapshot carrying
// all three collections. Import performs zero mutation in that case.
var ErrInvalidSnapshot = errors.New("invalid backup file")

// Snapshot is the exported representation of the full store.
type Snapshot struct {
	Projects     []model.Project     `json:"projects"`
	Entries      []model.Entry       `json:"entries"`
	Inspirations []model.Inspiration `json:"inspirations"`
	ExportedAt   string              `json:"exportedAt"`
	Version      string              `json:"version"`
}

// Export captures the store's collections verbatim.
func Export(s *store.Store, now time.Time) Snapshot {
	return Snapshot{
		Projects:     s.Projects(),
		Entries:      s.Entries(),
		Inspirations: s.Inspirations(),
		ExportedAt:   now.UTC().Format(time.RFC3339),
		Version:      Version,
	}
}

// Encode renders a snapshot as indented JSON.
func Encode(snap Snapshot) ([]byte, error) {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return data, nil
}

// Decode parses and validates snapshot bytes. The three collection keys
// must be present as JSON arrays; everything else is taken on trust.
func Decode(data []byte) (Snapshot, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}

	var snap Snapshot
	for key, dst := range map[string]interface{}{
		"projects":     &snap.Projects,
		"entries":      &snap.Entries,
		"inspirations": &snap.Inspirations,
	} {
		msg, ok := raw[key]
		if !ok {
			return Snapshot{}, fmt.Errorf("%w: missing %s", ErrInvalidSnapshot, key)
		}
		// null and other non-sequence values unmarshal fine into a slice,
		// so the array check has to look at the raw bytes.
		if !isArray(msg) {
			return Snapshot{}, fmt.Errorf("%w: %s is not a list", ErrInvalidSnapshot, key)
		}
		if err := json.Unmarshal(msg, dst); err != nil {
			return Snapshot{}, fmt.Errorf("%w: bad %s: %v", ErrInvalidSnapshot, key, err)
		}
	}

	if msg, ok := raw["exportedAt"]; ok {
		if err := json.Unmarshal(msg, &snap.ExportedAt); err != nil {
			return Snapshot{}, fmt.Errorf("%w: bad exportedAt: %v", ErrInvalidSnapshot, err)
		}
	}
	if msg, ok := raw["version"]; ok {
		if err := json.Unmarshal(msg, &snap.Version); err != nil {
			return Snapshot{}, fmt.Errorf("%w: bad version: %v", ErrInvalidSnapshot, err)
		}
	}
	return snap, nil
}

// isArray reports whether a raw JSON value is an array.
func isArray(msg json.RawMessage) bool {
	for _, b := range msg {
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		}
		return b == '['
	}
	return false
}

// Import replaces the store's collections with the snapshot's contents.
// The caller is responsible for user confirmation: this is a destructive
// full overwrite.
func Import(s *store.Store, data []byte) error {
	snap, err := Decode(data)
	if err != nil {
		return err
	}
	s.Replace(snap.Projects, snap.Entries, snap.Inspirations)
	return nil
}

// DefaultFilename returns the suggested backup file name for a day.
func DefaultFilename(now time.Time) string {
	return fmt.Sprintf("gleam_backup_%s.json", now.Format("2006-01-02"))
}
