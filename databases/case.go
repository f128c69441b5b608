package databases

import (
	"context"
	"sort"
	"time"

	"github.com/bluelinehq/police-records-api/models"
)

const caseCollection = "cases"

// CaseDatabase contains the methods to use with the case database
type CaseDatabase interface {
	CreateCase(ctx context.Context, c models.Case) (models.Case, error)
	GetCase(ctx context.Context, id int) (models.Case, error)
	UpdateCase(ctx context.Context, id int, patch map[string]interface{}) (models.Case, error)
	DeleteCase(ctx context.Context, id int) error
	ListCases(ctx context.Context) ([]models.Case, error)
}

func (s *MemoryStore) CreateCase(_ context.Context, c models.Case) (models.Case, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c.ID = s.nextCaseID
	s.nextCaseID++
	now := time.Now()
	c.CaseNumber = caseNumber(now.Year(), c.ID)
	if c.Status == "" {
		c.Status = "Open"
	}
	if c.Priority == "" {
		c.Priority = "Medium"
	}
	c.CreatedAt = now
	c.UpdatedAt = now
	s.cases[c.ID] = c
	return c, nil
}

func (s *MemoryStore) GetCase(_ context.Context, id int) (models.Case, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.cases[id]
	if !ok {
		return models.Case{}, ErrNotFound
	}
	return c, nil
}

func (s *MemoryStore) UpdateCase(_ context.Context, id int, patch map[string]interface{}) (models.Case, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.cases[id]
	if !ok {
		return models.Case{}, ErrNotFound
	}
	if err := applyPatch(&c, patch, "id", "caseNumber", "createdById", "createdAt", "updatedAt"); err != nil {
		return models.Case{}, err
	}
	c.UpdatedAt = bump(c.UpdatedAt)
	s.cases[id] = c
	return c, nil
}

func (s *MemoryStore) DeleteCase(_ context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.cases[id]; !ok {
		return ErrNotFound
	}
	delete(s.cases, id)
	return nil
}

func (s *MemoryStore) ListCases(_ context.Context) ([]models.Case, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Case, 0, len(s.cases))
	for _, c := range s.cases {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Mongo implementation

func (m *MongoStore) CreateCase(ctx context.Context, c models.Case) (models.Case, error) {
	id, err := m.nextID(ctx, caseCollection)
	if err != nil {
		return models.Case{}, err
	}
	c.ID = id
	now := time.Now()
	c.CaseNumber = caseNumber(now.Year(), c.ID)
	if c.Status == "" {
		c.Status = "Open"
	}
	if c.Priority == "" {
		c.Priority = "Medium"
	}
	c.CreatedAt = now
	c.UpdatedAt = now
	if _, err := m.db.Collection(caseCollection).InsertOne(ctx, c); err != nil {
		return models.Case{}, err
	}
	return c, nil
}

func (m *MongoStore) GetCase(ctx context.Context, id int) (models.Case, error) {
	var c models.Case
	err := m.findByID(ctx, caseCollection, id, &c)
	return c, err
}

func (m *MongoStore) UpdateCase(ctx context.Context, id int, patch map[string]interface{}) (models.Case, error) {
	var c models.Case
	if err := m.findByID(ctx, caseCollection, id, &c); err != nil {
		return models.Case{}, err
	}
	if err := applyPatch(&c, patch, "id", "caseNumber", "createdById", "createdAt", "updatedAt"); err != nil {
		return models.Case{}, err
	}
	c.UpdatedAt = bump(c.UpdatedAt)
	if err := m.replace(ctx, caseCollection, id, c); err != nil {
		return models.Case{}, err
	}
	return c, nil
}

func (m *MongoStore) DeleteCase(ctx context.Context, id int) error {
	return m.remove(ctx, caseCollection, id)
}

func (m *MongoStore) ListCases(ctx context.Context) ([]models.Case, error) {
	out := []models.Case{}
	err := m.listAll(ctx, caseCollection, &out)
	return out, err
}
