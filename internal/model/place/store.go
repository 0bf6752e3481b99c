package place

// Store exposes place retrieval for suggestion matching and HTTP handlers.
type Store interface {
	List() []Place
	FindByID(id int) (Place, bool)
}

// MemoryStore implements Store with an in-memory slice, suitable for MVP.
type MemoryStore struct {
	items []Place
}

// NewMemoryStore returns a MemoryStore preloaded with the supplied places.
func NewMemoryStore(items []Place) *MemoryStore {
	return &MemoryStore{items: append([]Place(nil), items...)}
}

// List returns the catalog in seeded order.
func (s *MemoryStore) List() []Place {
	return append([]Place(nil), s.items...)
}

// FindByID looks up a place by identifier.
func (s *MemoryStore) FindByID(id int) (Place, bool) {
	for _, item := range s.items {
		if item.ID == id {
			return item, true
		}
	}
	return Place{}, false
}
