package palette

// Store persists the ticker→color mapping across sessions.
type Store interface {
	Load() (map[string]string, error)
	Save(colors map[string]string) error
	Close() error
}

// MemoryStore keeps assignments for the current process only. It is the
// fallback when the sqlite store cannot be opened, and the substitute used in
// tests.
type MemoryStore struct {
	colors map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{colors: make(map[string]string)}
}

func (m *MemoryStore) Load() (map[string]string, error) {
	out := make(map[string]string, len(m.colors))
	for k, v := range m.colors {
		out[k] = v
	}
	return out, nil
}

func (m *MemoryStore) Save(colors map[string]string) error {
	m.colors = make(map[string]string, len(colors))
	for k, v := range colors {
		m.colors[k] = v
	}
	return nil
}

func (m *MemoryStore) Close() error { return nil }
