package databases

import (
	"context"
	"sort"
	"time"

	"github.com/bluelinehq/police-records-api/models"
)

const geofileCollection = "geofiles"

// GeofileDatabase contains the methods to use with the geofile database
type GeofileDatabase interface {
	CreateGeofile(ctx context.Context, g models.Geofile) (models.Geofile, error)
	GetGeofile(ctx context.Context, id int) (models.Geofile, error)
	UpdateGeofile(ctx context.Context, id int, patch map[string]interface{}) (models.Geofile, error)
	DeleteGeofile(ctx context.Context, id int) error
	ListGeofiles(ctx context.Context) ([]models.Geofile, error)
}

func (s *MemoryStore) CreateGeofile(_ context.Context, g models.Geofile) (models.Geofile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g.ID = s.nextGeofileID
	s.nextGeofileID++
	now := time.Now()
	g.CreatedAt = now
	g.UpdatedAt = now
	s.geofiles[g.ID] = g
	return g, nil
}

func (s *MemoryStore) GetGeofile(_ context.Context, id int) (models.Geofile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.geofiles[id]
	if !ok {
		return models.Geofile{}, ErrNotFound
	}
	return g, nil
}

func (s *MemoryStore) UpdateGeofile(_ context.Context, id int, patch map[string]interface{}) (models.Geofile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.geofiles[id]
	if !ok {
		return models.Geofile{}, ErrNotFound
	}
	if err := applyPatch(&g, patch, "id", "uploadedBy", "createdAt", "updatedAt"); err != nil {
		return models.Geofile{}, err
	}
	g.UpdatedAt = bump(g.UpdatedAt)
	s.geofiles[id] = g
	return g, nil
}

func (s *MemoryStore) DeleteGeofile(_ context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.geofiles[id]; !ok {
		return ErrNotFound
	}
	delete(s.geofiles, id)
	return nil
}

func (s *MemoryStore) ListGeofiles(_ context.Context) ([]models.Geofile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Geofile, 0, len(s.geofiles))
	for _, g := range s.geofiles {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Mongo implementation

func (m *MongoStore) CreateGeofile(ctx context.Context, g models.Geofile) (models.Geofile, error) {
	id, err := m.nextID(ctx, geofileCollection)
	if err != nil {
		return models.Geofile{}, err
	}
	g.ID = id
	now := time.Now()
	g.CreatedAt = now
	g.UpdatedAt = now
	if _, err := m.db.Collection(geofileCollection).InsertOne(ctx, g); err != nil {
		return models.Geofile{}, err
	}
	return g, nil
}

func (m *MongoStore) GetGeofile(ctx context.Context, id int) (models.Geofile, error) {
	var g models.Geofile
	err := m.findByID(ctx, geofileCollection, id, &g)
	return g, err
}

func (m *MongoStore) UpdateGeofile(ctx context.Context, id int, patch map[string]interface{}) (models.Geofile, error) {
	var g models.Geofile
	if err := m.findByID(ctx, geofileCollection, id, &g); err != nil {
		return models.Geofile{}, err
	}
	if err := applyPatch(&g, patch, "id", "uploadedBy", "createdAt", "updatedAt"); err != nil {
		return models.Geofile{}, err
	}
	g.UpdatedAt = bump(g.UpdatedAt)
	if err := m.replace(ctx, geofileCollection, id, g); err != nil {
		return models.Geofile{}, err
	}
	return g, nil
}

func (m *MongoStore) DeleteGeofile(ctx context.Context, id int) error {
	return m.remove(ctx, geofileCollection, id)
}

func (m *MongoStore) ListGeofiles(ctx context.Context) ([]models.Geofile, error) {
	out := []models.Geofile{}
	err := m.listAll(ctx, geofileCollection, &out)
	return out, err
}
