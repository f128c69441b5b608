package databases

import (
	"context"
	"sort"
	"time"

	"github.com/bluelinehq/police-records-api/models"
)

const obCollection = "obEntries"

// OBEntryDatabase contains the methods to use with the occurrence book database
type OBEntryDatabase interface {
	CreateOBEntry(ctx context.Context, e models.OBEntry) (models.OBEntry, error)
	GetOBEntry(ctx context.Context, id int) (models.OBEntry, error)
	UpdateOBEntry(ctx context.Context, id int, patch map[string]interface{}) (models.OBEntry, error)
	DeleteOBEntry(ctx context.Context, id int) error
	ListOBEntries(ctx context.Context) ([]models.OBEntry, error)
}

func (s *MemoryStore) CreateOBEntry(_ context.Context, e models.OBEntry) (models.OBEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e.ID = s.nextOBID
	s.nextOBID++
	now := time.Now()
	e.OBNumber = obNumber(now.Year(), e.ID)
	if e.DateTime.IsZero() {
		e.DateTime = now
	}
	if e.Status == "" {
		e.Status = "open"
	}
	e.CreatedAt = now
	e.UpdatedAt = now
	s.obEntries[e.ID] = e
	return e, nil
}

func (s *MemoryStore) GetOBEntry(_ context.Context, id int) (models.OBEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.obEntries[id]
	if !ok {
		return models.OBEntry{}, ErrNotFound
	}
	return e, nil
}

func (s *MemoryStore) UpdateOBEntry(_ context.Context, id int, patch map[string]interface{}) (models.OBEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.obEntries[id]
	if !ok {
		return models.OBEntry{}, ErrNotFound
	}
	if err := applyPatch(&e, patch, "id", "obNumber", "createdAt", "updatedAt"); err != nil {
		return models.OBEntry{}, err
	}
	e.UpdatedAt = bump(e.UpdatedAt)
	s.obEntries[id] = e
	return e, nil
}

func (s *MemoryStore) DeleteOBEntry(_ context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.obEntries[id]; !ok {
		return ErrNotFound
	}
	delete(s.obEntries, id)
	return nil
}

func (s *MemoryStore) ListOBEntries(_ context.Context) ([]models.OBEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.OBEntry, 0, len(s.obEntries))
	for _, e := range s.obEntries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Mongo implementation

func (m *MongoStore) CreateOBEntry(ctx context.Context, e models.OBEntry) (models.OBEntry, error) {
	id, err := m.nextID(ctx, obCollection)
	if err != nil {
		return models.OBEntry{}, err
	}
	e.ID = id
	now := time.Now()
	e.OBNumber = obNumber(now.Year(), e.ID)
	if e.DateTime.IsZero() {
		e.DateTime = now
	}
	if e.Status == "" {
		e.Status = "open"
	}
	e.CreatedAt = now
	e.UpdatedAt = now
	if _, err := m.db.Collection(obCollection).InsertOne(ctx, e); err != nil {
		return models.OBEntry{}, err
	}
	return e, nil
}

func (m *MongoStore) GetOBEntry(ctx context.Context, id int) (models.OBEntry, error) {
	var e models.OBEntry
	err := m.findByID(ctx, obCollection, id, &e)
	return e, err
}

func (m *MongoStore) UpdateOBEntry(ctx context.Context, id int, patch map[string]interface{}) (models.OBEntry, error) {
	var e models.OBEntry
	if err := m.findByID(ctx, obCollection, id, &e); err != nil {
		return models.OBEntry{}, err
	}
	if err := applyPatch(&e, patch, "id", "obNumber", "createdAt", "updatedAt"); err != nil {
		return models.OBEntry{}, err
	}
	e.UpdatedAt = bump(e.UpdatedAt)
	if err := m.replace(ctx, obCollection, id, e); err != nil {
		return models.OBEntry{}, err
	}
	return e, nil
}

func (m *MongoStore) DeleteOBEntry(ctx context.Context, id int) error {
	return m.remove(ctx, obCollection, id)
}

func (m *MongoStore) ListOBEntries(ctx context.Context) ([]models.OBEntry, error) {
	out := []models.OBEntry{}
	err := m.listAll(ctx, obCollection, &out)
	return out, err
}
