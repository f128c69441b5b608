package databases

import (
	"context"
	"sort"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/bluelinehq/police-records-api/models"
)

const plateCollection = "licensePlates"

// LicensePlateDatabase contains the methods to use with the license plate database
type LicensePlateDatabase interface {
	CreateLicensePlate(ctx context.Context, p models.LicensePlate) (models.LicensePlate, error)
	GetLicensePlate(ctx context.Context, id int) (models.LicensePlate, error)
	GetLicensePlateByNumber(ctx context.Context, plateNumber string) (models.LicensePlate, error)
	UpdateLicensePlate(ctx context.Context, id int, patch map[string]interface{}) (models.LicensePlate, error)
	DeleteLicensePlate(ctx context.Context, id int) error
	ListLicensePlates(ctx context.Context) ([]models.LicensePlate, error)
}

func (s *MemoryStore) CreateLicensePlate(_ context.Context, p models.LicensePlate) (models.LicensePlate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.plates {
		if strings.EqualFold(existing.PlateNumber, p.PlateNumber) {
			return models.LicensePlate{}, ErrDuplicate
		}
	}

	p.ID = s.nextPlateID
	s.nextPlateID++
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	s.plates[p.ID] = p
	return p, nil
}

func (s *MemoryStore) GetLicensePlate(_ context.Context, id int) (models.LicensePlate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.plates[id]
	if !ok {
		return models.LicensePlate{}, ErrNotFound
	}
	return p, nil
}

// GetLicensePlateByNumber matches case-insensitively, like the mongo store's
// "i" regex, so field lookups work however the officer typed the plate.
func (s *MemoryStore) GetLicensePlateByNumber(_ context.Context, plateNumber string) (models.LicensePlate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.plates {
		if strings.EqualFold(p.PlateNumber, plateNumber) {
			return p, nil
		}
	}
	return models.LicensePlate{}, ErrNotFound
}

func (s *MemoryStore) UpdateLicensePlate(_ context.Context, id int, patch map[string]interface{}) (models.LicensePlate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.plates[id]
	if !ok {
		return models.LicensePlate{}, ErrNotFound
	}
	if err := applyPatch(&p, patch, "id", "addedById", "createdAt", "updatedAt"); err != nil {
		return models.LicensePlate{}, err
	}
	p.UpdatedAt = bump(p.UpdatedAt)
	s.plates[id] = p
	return p, nil
}

func (s *MemoryStore) DeleteLicensePlate(_ context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.plates[id]; !ok {
		return ErrNotFound
	}
	delete(s.plates, id)
	return nil
}

func (s *MemoryStore) ListLicensePlates(_ context.Context) ([]models.LicensePlate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.LicensePlate, 0, len(s.plates))
	for _, p := range s.plates {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Mongo implementation

func plateNumberFilter(plateNumber string) bson.M {
	return bson.M{"plateNumber": primitive.Regex{
		Pattern: "^" + regexQuote(plateNumber) + "$",
		Options: "i",
	}}
}

// regexQuote escapes plate input before it is embedded in a Mongo regex.
func regexQuote(s string) string {
	var b strings.Builder
	for _, r := range s {
		if strings.ContainsRune(`\.+*?()|[]{}^$`, r) {
			b.WriteRune('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (m *MongoStore) CreateLicensePlate(ctx context.Context, p models.LicensePlate) (models.LicensePlate, error) {
	taken, err := m.exists(ctx, plateCollection, plateNumberFilter(p.PlateNumber))
	if err != nil {
		return models.LicensePlate{}, err
	}
	if taken {
		return models.LicensePlate{}, ErrDuplicate
	}

	id, err := m.nextID(ctx, plateCollection)
	if err != nil {
		return models.LicensePlate{}, err
	}
	p.ID = id
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	if _, err := m.db.Collection(plateCollection).InsertOne(ctx, p); err != nil {
		return models.LicensePlate{}, err
	}
	return p, nil
}

func (m *MongoStore) GetLicensePlate(ctx context.Context, id int) (models.LicensePlate, error) {
	var p models.LicensePlate
	err := m.findByID(ctx, plateCollection, id, &p)
	return p, err
}

func (m *MongoStore) GetLicensePlateByNumber(ctx context.Context, plateNumber string) (models.LicensePlate, error) {
	var p models.LicensePlate
	err := m.findOne(ctx, plateCollection, plateNumberFilter(plateNumber), &p)
	return p, err
}

func (m *MongoStore) UpdateLicensePlate(ctx context.Context, id int, patch map[string]interface{}) (models.LicensePlate, error) {
	var p models.LicensePlate
	if err := m.findByID(ctx, plateCollection, id, &p); err != nil {
		return models.LicensePlate{}, err
	}
	if err := applyPatch(&p, patch, "id", "addedById", "createdAt", "updatedAt"); err != nil {
		return models.LicensePlate{}, err
	}
	p.UpdatedAt = bump(p.UpdatedAt)
	if err := m.replace(ctx, plateCollection, id, p); err != nil {
		return models.LicensePlate{}, err
	}
	return p, nil
}

func (m *MongoStore) DeleteLicensePlate(ctx context.Context, id int) error {
	return m.remove(ctx, plateCollection, id)
}

func (m *MongoStore) ListLicensePlates(ctx context.Context) ([]models.LicensePlate, error) {
	out := []models.LicensePlate{}
	err := m.listAll(ctx, plateCollection, &out)
	return out, err
}
