package neighborhoods

import (
	"context"
	"sync"
)

// MemoryNeighborhoodRepository keeps neighborhoods in process memory.
type MemoryNeighborhoodRepository struct {
	mu      sync.RWMutex
	byKey   map[string]*Neighborhood
	ordered []string
}

func NewMemoryNeighborhoodRepository() *MemoryNeighborhoodRepository {
	return &MemoryNeighborhoodRepository{
		byKey: map[string]*Neighborhood{},
	}
}

func (m *MemoryNeighborhoodRepository) Create(_ context.Context, record *Neighborhood) (*Neighborhood, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byKey[record.Key]; !ok {
		m.ordered = append(m.ordered, record.Key)
	}
	m.byKey[record.Key] = cloneNeighborhood(record)
	return cloneNeighborhood(record), nil
}

func (m *MemoryNeighborhoodRepository) GetByKey(_ context.Context, key string) (*Neighborhood, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.byKey[key]
	if !ok {
		return nil, &NotFoundError{Resource: "neighborhood", Key: key}
	}
	return cloneNeighborhood(record), nil
}

func (m *MemoryNeighborhoodRepository) List(_ context.Context) ([]*Neighborhood, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Neighborhood, 0, len(m.ordered))
	for _, key := range m.ordered {
		out = append(out, cloneNeighborhood(m.byKey[key]))
	}
	return out, nil
}

func cloneNeighborhood(record *Neighborhood) *Neighborhood {
	if record == nil {
		return nil
	}
	clone := *record
	return &clone
}
