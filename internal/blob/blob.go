// Package blob provides the opaque key/value store the entity store
// persists into. Values are serialized collections; the store never
// interprets them.
package blob

// Collection keys used by the entity store.
const (
	KeyProjects     = "projects"
	KeyEntries      = "entries"
	KeyInspirations = "inspirations"
)

// Store is a durable string key/value store.
type Store interface {
	// Get returns the value for key, or ok=false if the key is absent.
	Get(key string) (value string, ok bool, err error)
	// Set writes the value for key, overwriting any previous value.
	Set(key, value string) error
	// Close releases any underlying resources.
	Close() error
}
