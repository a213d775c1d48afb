package blob

// Memory is an in-memory Store used by tests and ephemeral sessions.
type Memory struct {
	values map[string]string

	// FailSet, when set, is returned from every Set call. Tests use it to
	// exercise the fire-and-forget persistence path.
	FailSet error
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

func (m *Memory) Get(key string) (string, bool, error) {
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *Memory) Set(key, value string) error {
	if m.FailSet != nil {
		return m.FailSet
	}
	m.values[key] = value
	return nil
}

func (m *Memory) Close() error { return nil }
