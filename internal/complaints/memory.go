package complaints

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryComplaintRepository is an in-memory implementation for scaffolding and tests.
type MemoryComplaintRepository struct {
	mu         sync.RWMutex
	complaints map[uuid.UUID]*Complaint
	order      []uuid.UUID
}

// NewMemoryComplaintRepository creates an empty in-memory complaint repository.
func NewMemoryComplaintRepository() *MemoryComplaintRepository {
	return &MemoryComplaintRepository{
		complaints: make(map[uuid.UUID]*Complaint),
	}
}

// Create inserts the supplied complaint.
func (m *MemoryComplaintRepository) Create(_ context.Context, record *Complaint) (*Complaint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := cloneComplaint(record)
	if _, exists := m.complaints[copied.ID]; !exists {
		m.order = append(m.order, copied.ID)
	}
	m.complaints[copied.ID] = copied
	return cloneComplaint(copied), nil
}

// GetByID retrieves a complaint by identifier.
func (m *MemoryComplaintRepository) GetByID(_ context.Context, id uuid.UUID) (*Complaint, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.complaints[id]
	if !ok {
		return nil, &NotFoundError{Resource: "complaint", Key: id.String()}
	}
	return cloneComplaint(rec), nil
}

// List returns every complaint in insertion order.
func (m *MemoryComplaintRepository) List(_ context.Context) ([]*Complaint, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Complaint, 0, len(m.order))
	for _, id := range m.order {
		if rec, ok := m.complaints[id]; ok {
			out = append(out, cloneComplaint(rec))
		}
	}
	return out, nil
}

// Update replaces a stored complaint.
func (m *MemoryComplaintRepository) Update(_ context.Context, record *Complaint) (*Complaint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.complaints[record.ID]; !ok {
		return nil, &NotFoundError{Resource: "complaint", Key: record.ID.String()}
	}
	copied := cloneComplaint(record)
	m.complaints[copied.ID] = copied
	return cloneComplaint(copied), nil
}

func cloneComplaint(src *Complaint) *Complaint {
	if src == nil {
		return nil
	}
	copied := *src
	if src.ContainerCode != nil {
		code := *src.ContainerCode
		copied.ContainerCode = &code
	}
	if src.ResolvedAt != nil {
		t := *src.ResolvedAt
		copied.ResolvedAt = &t
	}
	return &copied
}
