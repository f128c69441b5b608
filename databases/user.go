package databases

import (
	"context"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/bluelinehq/police-records-api/models"
)

const userCollection = "users"

// UserDatabase contains the methods to use with the user database
type UserDatabase interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	GetUser(ctx context.Context, id int) (models.User, error)
	GetUserByUsername(ctx context.Context, username string) (models.User, error)
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
	UpdateUser(ctx context.Context, id int, patch map[string]interface{}) (models.User, error)
	UpdateUserPassword(ctx context.Context, id int, hash string) error
	SetLastLogin(ctx context.Context, id int) error
	DeleteUser(ctx context.Context, id int) error
	ListUsers(ctx context.Context) ([]models.User, error)
}

func (s *MemoryStore) CreateUser(_ context.Context, user models.User) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == user.Username || u.Email == user.Email {
			return models.User{}, ErrDuplicate
		}
	}

	user.ID = s.nextUserID
	s.nextUserID++
	if user.Role == "" {
		user.Role = "user"
	}
	user.IsActive = true
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	s.users[user.ID] = user
	return user, nil
}

func (s *MemoryStore) GetUser(_ context.Context, id int) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return models.User{}, ErrNotFound
	}
	return u, nil
}

func (s *MemoryStore) GetUserByUsername(_ context.Context, username string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return models.User{}, ErrNotFound
}

func (s *MemoryStore) GetUserByEmail(_ context.Context, email string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, ErrNotFound
}

func (s *MemoryStore) UpdateUser(_ context.Context, id int, patch map[string]interface{}) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return models.User{}, ErrNotFound
	}
	if err := applyPatch(&u, patch, "id", "createdAt", "updatedAt"); err != nil {
		return models.User{}, err
	}
	u.UpdatedAt = bump(u.UpdatedAt)
	s.users[id] = u
	return u, nil
}

func (s *MemoryStore) UpdateUserPassword(_ context.Context, id int, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return ErrNotFound
	}
	u.Password = hash
	u.UpdatedAt = bump(u.UpdatedAt)
	s.users[id] = u
	return nil
}

func (s *MemoryStore) SetLastLogin(_ context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return ErrNotFound
	}
	now := time.Now()
	u.LastLoginAt = &now
	s.users[id] = u
	return nil
}

func (s *MemoryStore) DeleteUser(_ context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return ErrNotFound
	}
	delete(s.users, id)
	return nil
}

func (s *MemoryStore) ListUsers(_ context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Mongo implementation

func (m *MongoStore) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	taken, err := m.exists(ctx, userCollection, bson.M{"$or": []bson.M{
		{"username": user.Username},
		{"email": user.Email},
	}})
	if err != nil {
		return models.User{}, err
	}
	if taken {
		return models.User{}, ErrDuplicate
	}

	id, err := m.nextID(ctx, userCollection)
	if err != nil {
		return models.User{}, err
	}
	user.ID = id
	if user.Role == "" {
		user.Role = "user"
	}
	user.IsActive = true
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	if _, err := m.db.Collection(userCollection).InsertOne(ctx, user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (m *MongoStore) GetUser(ctx context.Context, id int) (models.User, error) {
	var u models.User
	err := m.findByID(ctx, userCollection, id, &u)
	return u, err
}

func (m *MongoStore) GetUserByUsername(ctx context.Context, username string) (models.User, error) {
	var u models.User
	err := m.findOne(ctx, userCollection, bson.M{"username": username}, &u)
	return u, err
}

func (m *MongoStore) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	var u models.User
	err := m.findOne(ctx, userCollection, bson.M{"email": email}, &u)
	return u, err
}

func (m *MongoStore) UpdateUser(ctx context.Context, id int, patch map[string]interface{}) (models.User, error) {
	var u models.User
	if err := m.findByID(ctx, userCollection, id, &u); err != nil {
		return models.User{}, err
	}
	if err := applyPatch(&u, patch, "id", "createdAt", "updatedAt"); err != nil {
		return models.User{}, err
	}
	u.UpdatedAt = bump(u.UpdatedAt)
	if err := m.replace(ctx, userCollection, id, u); err != nil {
		return models.User{}, err
	}
	return u, nil
}

func (m *MongoStore) UpdateUserPassword(ctx context.Context, id int, hash string) error {
	res, err := m.db.Collection(userCollection).UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"password": hash, "updatedAt": time.Now()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *MongoStore) SetLastLogin(ctx context.Context, id int) error {
	res, err := m.db.Collection(userCollection).UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"lastLoginAt": time.Now()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *MongoStore) DeleteUser(ctx context.Context, id int) error {
	return m.remove(ctx, userCollection, id)
}

func (m *MongoStore) ListUsers(ctx context.Context) ([]models.User, error) {
	out := []models.User{}
	err := m.listAll(ctx, userCollection, &out)
	return out, err
}
