package collections

import (
	"context"
	"sync"
)

// MemoryCollectionRecordRepository keeps collection records in process memory.
// Useful for tests and demo deployments without a database.
type MemoryCollectionRecordRepository struct {
	mu      sync.RWMutex
	byKey   map[string]*CollectionRecord
	ordered []string
}

func NewMemoryCollectionRecordRepository() *MemoryCollectionRecordRepository {
	return &MemoryCollectionRecordRepository{
		byKey: map[string]*CollectionRecord{},
	}
}

func (m *MemoryCollectionRecordRepository) Upsert(_ context.Context, record *CollectionRecord) (*CollectionRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byKey[record.RecordKey]; !ok {
		m.ordered = append(m.ordered, record.RecordKey)
	}
	m.byKey[record.RecordKey] = cloneCollectionRecord(record)
	return cloneCollectionRecord(record), nil
}

func (m *MemoryCollectionRecordRepository) GetByKey(_ context.Context, key string) (*CollectionRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.byKey[key]
	if !ok {
		return nil, &NotFoundError{Resource: "collection record", Key: key}
	}
	return cloneCollectionRecord(record), nil
}

func (m *MemoryCollectionRecordRepository) List(_ context.Context) ([]*CollectionRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*CollectionRecord, 0, len(m.ordered))
	for _, key := range m.ordered {
		out = append(out, cloneCollectionRecord(m.byKey[key]))
	}
	return out, nil
}

func cloneCollectionRecord(record *CollectionRecord) *CollectionRecord {
	if record == nil {
		return nil
	}
	clone := *record
	return &clone
}
