package store

// Store is the host editor's settings surface as seen by the resolver.
// Implementations are read-only: the resolver never writes through it.
type Store interface {
	Get(key string) (any, bool)
	Has(key string) bool
}

// MapStore is a Store backed by a plain map. Hosts that already hold
// settings in memory can hand them over directly; tests use it for
// fixtures.
type MapStore map[string]any

func (m MapStore) Get(key string) (any, bool) {
	v, ok := m[key]
	return v, ok
}

func (m MapStore) Has(key string) bool {
	_, ok := m[key]
	return ok
}
