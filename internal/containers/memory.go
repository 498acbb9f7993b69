package containers

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryContainerRepository is an in-memory implementation for scaffolding and tests.
type MemoryContainerRepository struct {
	mu         sync.RWMutex
	containers map[uuid.UUID]*Container
	codeIndex  map[string]uuid.UUID
	order      []uuid.UUID
}

// NewMemoryContainerRepository creates an empty in-memory container repository.
func NewMemoryContainerRepository() *MemoryContainerRepository {
	return &MemoryContainerRepository{
		containers: make(map[uuid.UUID]*Container),
		codeIndex:  make(map[string]uuid.UUID),
	}
}

// Create inserts the supplied container.
func (m *MemoryContainerRepository) Create(_ context.Context, record *Container) (*Container, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := cloneContainer(record)
	if _, exists := m.containers[copied.ID]; !exists {
		m.order = append(m.order, copied.ID)
	}
	m.containers[copied.ID] = copied
	m.codeIndex[copied.Code] = copied.ID
	return cloneContainer(copied), nil
}

// GetByID retrieves a container by identifier.
func (m *MemoryContainerRepository) GetByID(_ context.Context, id uuid.UUID) (*Container, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.containers[id]
	if !ok {
		return nil, &NotFoundError{Resource: "container", Key: id.String()}
	}
	return cloneContainer(rec), nil
}

// GetByCode retrieves a container by its code, returning NotFoundError when absent.
func (m *MemoryContainerRepository) GetByCode(_ context.Context, code string) (*Container, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.codeIndex[code]
	if !ok {
		return nil, &NotFoundError{Resource: "container", Key: code}
	}
	return cloneContainer(m.containers[id]), nil
}

// List returns every container in insertion order.
func (m *MemoryContainerRepository) List(_ context.Context) ([]*Container, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Container, 0, len(m.order))
	for _, id := range m.order {
		if rec, ok := m.containers[id]; ok {
			out = append(out, cloneContainer(rec))
		}
	}
	return out, nil
}

// Update replaces a stored container.
func (m *MemoryContainerRepository) Update(_ context.Context, record *Container) (*Container, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.containers[record.ID]
	if !ok {
		return nil, &NotFoundError{Resource: "container", Key: record.ID.String()}
	}
	if existing.Code != record.Code {
		delete(m.codeIndex, existing.Code)
		m.codeIndex[record.Code] = record.ID
	}
	copied := cloneContainer(record)
	m.containers[copied.ID] = copied
	return cloneContainer(copied), nil
}

func cloneContainer(src *Container) *Container {
	if src == nil {
		return nil
	}
	copied := *src
	if src.LastEmptiedAt != nil {
		t := *src.LastEmptiedAt
		copied.LastEmptiedAt = &t
	}
	if src.DeletedAt != nil {
		t := *src.DeletedAt
		copied.DeletedAt = &t
	}
	return &copied
}
