package databases

import (
	"context"
	"sort"
	"time"

	"github.com/bluelinehq/police-records-api/models"
)

const evidenceCollection = "evidence"

// EvidenceDatabase contains the methods to use with the evidence database
type EvidenceDatabase interface {
	CreateEvidence(ctx context.Context, e models.Evidence) (models.Evidence, error)
	GetEvidence(ctx context.Context, id int) (models.Evidence, error)
	UpdateEvidence(ctx context.Context, id int, patch map[string]interface{}) (models.Evidence, error)
	DeleteEvidence(ctx context.Context, id int) error
	ListEvidence(ctx context.Context) ([]models.Evidence, error)
}

func (s *MemoryStore) CreateEvidence(_ context.Context, e models.Evidence) (models.Evidence, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e.ID = s.nextEvidenceID
	s.nextEvidenceID++
	now := time.Now()
	e.EvidenceNumber = evidenceNumber(now.Year(), e.ID)
	if e.Status == "" {
		e.Status = "collected"
	}
	e.CreatedAt = now
	e.UpdatedAt = now
	s.evidence[e.ID] = e
	return e, nil
}

func (s *MemoryStore) GetEvidence(_ context.Context, id int) (models.Evidence, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.evidence[id]
	if !ok {
		return models.Evidence{}, ErrNotFound
	}
	return e, nil
}

func (s *MemoryStore) UpdateEvidence(_ context.Context, id int, patch map[string]interface{}) (models.Evidence, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.evidence[id]
	if !ok {
		return models.Evidence{}, ErrNotFound
	}
	if err := applyPatch(&e, patch, "id", "evidenceNumber", "createdAt", "updatedAt"); err != nil {
		return models.Evidence{}, err
	}
	e.UpdatedAt = bump(e.UpdatedAt)
	s.evidence[id] = e
	return e, nil
}

func (s *MemoryStore) DeleteEvidence(_ context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.evidence[id]; !ok {
		return ErrNotFound
	}
	delete(s.evidence, id)
	return nil
}

func (s *MemoryStore) ListEvidence(_ context.Context) ([]models.Evidence, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Evidence, 0, len(s.evidence))
	for _, e := range s.evidence {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Mongo implementation

func (m *MongoStore) CreateEvidence(ctx context.Context, e models.Evidence) (models.Evidence, error) {
	id, err := m.nextID(ctx, evidenceCollection)
	if err != nil {
		return models.Evidence{}, err
	}
	e.ID = id
	now := time.Now()
	e.EvidenceNumber = evidenceNumber(now.Year(), e.ID)
	if e.Status == "" {
		e.Status = "collected"
	}
	e.CreatedAt = now
	e.UpdatedAt = now
	if _, err := m.db.Collection(evidenceCollection).InsertOne(ctx, e); err != nil {
		return models.Evidence{}, err
	}
	return e, nil
}

func (m *MongoStore) GetEvidence(ctx context.Context, id int) (models.Evidence, error) {
	var e models.Evidence
	err := m.findByID(ctx, evidenceCollection, id, &e)
	return e, err
}

func (m *MongoStore) UpdateEvidence(ctx context.Context, id int, patch map[string]interface{}) (models.Evidence, error) {
	var e models.Evidence
	if err := m.findByID(ctx, evidenceCollection, id, &e); err != nil {
		return models.Evidence{}, err
	}
	if err := applyPatch(&e, patch, "id", "evidenceNumber", "createdAt", "updatedAt"); err != nil {
		return models.Evidence{}, err
	}
	e.UpdatedAt = bump(e.UpdatedAt)
	if err := m.replace(ctx, evidenceCollection, id, e); err != nil {
		return models.Evidence{}, err
	}
	return e, nil
}

func (m *MongoStore) DeleteEvidence(ctx context.Context, id int) error {
	return m.remove(ctx, evidenceCollection, id)
}

func (m *MongoStore) ListEvidence(ctx context.Context) ([]models.Evidence, error) {
	out := []models.Evidence{}
	err := m.listAll(ctx, evidenceCollection, &out)
	return out, err
}
