package databases

import (
	"context"
	"errors"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bluelinehq/police-records-api/models"
)

const vehicleCollection = "policeVehicles"

// PoliceVehicleDatabase contains the methods to use with the fleet database
type PoliceVehicleDatabase interface {
	CreatePoliceVehicle(ctx context.Context, v models.PoliceVehicle) (models.PoliceVehicle, error)
	GetPoliceVehicle(ctx context.Context, id int) (models.PoliceVehicle, error)
	UpdatePoliceVehicle(ctx context.Context, id int, patch map[string]interface{}) (models.PoliceVehicle, error)
	UpdateVehicleLocation(ctx context.Context, id int, location string) (models.PoliceVehicle, error)
	UpdateVehicleStatus(ctx context.Context, id int, status string) (models.PoliceVehicle, error)
	DeletePoliceVehicle(ctx context.Context, id int) error
	ListPoliceVehicles(ctx context.Context) ([]models.PoliceVehicle, error)
}

func (s *MemoryStore) CreatePoliceVehicle(_ context.Context, v models.PoliceVehicle) (models.PoliceVehicle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.vehicles {
		if existing.VehicleID == v.VehicleID {
			return models.PoliceVehicle{}, ErrDuplicate
		}
	}

	v.ID = s.nextVehicleID
	s.nextVehicleID++
	if v.Status == "" {
		v.Status = "available"
	}
	now := time.Now()
	v.LastUpdate = now
	v.CreatedAt = now
	v.UpdatedAt = now
	s.vehicles[v.ID] = v
	return v, nil
}

func (s *MemoryStore) GetPoliceVehicle(_ context.Context, id int) (models.PoliceVehicle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.vehicles[id]
	if !ok {
		return models.PoliceVehicle{}, ErrNotFound
	}
	return v, nil
}

func (s *MemoryStore) UpdatePoliceVehicle(_ context.Context, id int, patch map[string]interface{}) (models.PoliceVehicle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.vehicles[id]
	if !ok {
		return models.PoliceVehicle{}, ErrNotFound
	}
	if err := applyPatch(&v, patch, "id", "createdAt", "updatedAt", "lastUpdate"); err != nil {
		return models.PoliceVehicle{}, err
	}
	v.UpdatedAt = bump(v.UpdatedAt)
	v.LastUpdate = v.UpdatedAt
	s.vehicles[id] = v
	return v, nil
}

func (s *MemoryStore) UpdateVehicleLocation(_ context.Context, id int, location string) (models.PoliceVehicle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.vehicles[id]
	if !ok {
		return models.PoliceVehicle{}, ErrNotFound
	}
	v.CurrentLocation = location
	v.UpdatedAt = bump(v.UpdatedAt)
	v.LastUpdate = v.UpdatedAt
	s.vehicles[id] = v
	return v, nil
}

func (s *MemoryStore) UpdateVehicleStatus(_ context.Context, id int, status string) (models.PoliceVehicle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.vehicles[id]
	if !ok {
		return models.PoliceVehicle{}, ErrNotFound
	}
	v.Status = status
	v.UpdatedAt = bump(v.UpdatedAt)
	v.LastUpdate = v.UpdatedAt
	s.vehicles[id] = v
	return v, nil
}

func (s *MemoryStore) DeletePoliceVehicle(_ context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.vehicles[id]; !ok {
		return ErrNotFound
	}
	delete(s.vehicles, id)
	return nil
}

func (s *MemoryStore) ListPoliceVehicles(_ context.Context) ([]models.PoliceVehicle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.PoliceVehicle, 0, len(s.vehicles))
	for _, v := range s.vehicles {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Mongo implementation

func (m *MongoStore) CreatePoliceVehicle(ctx context.Context, v models.PoliceVehicle) (models.PoliceVehicle, error) {
	taken, err := m.exists(ctx, vehicleCollection, bson.M{"vehicleId": v.VehicleID})
	if err != nil {
		return models.PoliceVehicle{}, err
	}
	if taken {
		return models.PoliceVehicle{}, ErrDuplicate
	}

	id, err := m.nextID(ctx, vehicleCollection)
	if err != nil {
		return models.PoliceVehicle{}, err
	}
	v.ID = id
	if v.Status == "" {
		v.Status = "available"
	}
	now := time.Now()
	v.LastUpdate = now
	v.CreatedAt = now
	v.UpdatedAt = now
	if _, err := m.db.Collection(vehicleCollection).InsertOne(ctx, v); err != nil {
		return models.PoliceVehicle{}, err
	}
	return v, nil
}

func (m *MongoStore) GetPoliceVehicle(ctx context.Context, id int) (models.PoliceVehicle, error) {
	var v models.PoliceVehicle
	err := m.findByID(ctx, vehicleCollection, id, &v)
	return v, err
}

func (m *MongoStore) UpdatePoliceVehicle(ctx context.Context, id int, patch map[string]interface{}) (models.PoliceVehicle, error) {
	var v models.PoliceVehicle
	if err := m.findByID(ctx, vehicleCollection, id, &v); err != nil {
		return models.PoliceVehicle{}, err
	}
	if err := applyPatch(&v, patch, "id", "createdAt", "updatedAt", "lastUpdate"); err != nil {
		return models.PoliceVehicle{}, err
	}
	v.UpdatedAt = bump(v.UpdatedAt)
	v.LastUpdate = v.UpdatedAt
	if err := m.replace(ctx, vehicleCollection, id, v); err != nil {
		return models.PoliceVehicle{}, err
	}
	return v, nil
}

func (m *MongoStore) setVehicleField(ctx context.Context, id int, field, value string) (models.PoliceVehicle, error) {
	now := time.Now()
	res := m.db.Collection(vehicleCollection).FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{field: value, "lastUpdate": now, "updatedAt": now}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	var v models.PoliceVehicle
	if err := res.Decode(&v); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.PoliceVehicle{}, ErrNotFound
		}
		return models.PoliceVehicle{}, err
	}
	return v, nil
}

func (m *MongoStore) UpdateVehicleLocation(ctx context.Context, id int, location string) (models.PoliceVehicle, error) {
	return m.setVehicleField(ctx, id, "currentLocation", location)
}

func (m *MongoStore) UpdateVehicleStatus(ctx context.Context, id int, status string) (models.PoliceVehicle, error) {
	return m.setVehicleField(ctx, id, "status", status)
}

func (m *MongoStore) DeletePoliceVehicle(ctx context.Context, id int) error {
	return m.remove(ctx, vehicleCollection, id)
}

func (m *MongoStore) ListPoliceVehicles(ctx context.Context) ([]models.PoliceVehicle, error) {
	out := []models.PoliceVehicle{}
	err := m.listAll(ctx, vehicleCollection, &out)
	return out, err
}
