package databases

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/bluelinehq/police-records-api/models"
)

const resetTokenCollection = "resetTokens"

// ResetTokenDatabase contains the methods to use with the password reset
// token database. Tokens are keyed by jti and single use.
type ResetTokenDatabase interface {
	CreateResetToken(ctx context.Context, t models.PasswordResetToken) error
	GetResetToken(ctx context.Context, token string) (models.PasswordResetToken, error)
	DeleteResetToken(ctx context.Context, token string) error
	DeleteExpiredResetTokens(ctx context.Context) (int, error)
}

func (s *MemoryStore) CreateResetToken(_ context.Context, t models.PasswordResetToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t.CreatedAt = time.Now()
	s.resetTokens[t.Token] = t
	return nil
}

// GetResetToken drops the record on the floor when it has already expired,
// so a lookup never hands back a stale grant.
func (s *MemoryStore) GetResetToken(_ context.Context, token string) (models.PasswordResetToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.resetTokens[token]
	if !ok {
		return models.PasswordResetToken{}, ErrNotFound
	}
	if time.Now().After(t.ExpiresAt) {
		delete(s.resetTokens, token)
		return models.PasswordResetToken{}, ErrNotFound
	}
	return t, nil
}

func (s *MemoryStore) DeleteResetToken(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.resetTokens[token]; !ok {
		return ErrNotFound
	}
	delete(s.resetTokens, token)
	return nil
}

func (s *MemoryStore) DeleteExpiredResetTokens(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	removed := 0
	for k, t := range s.resetTokens {
		if now.After(t.ExpiresAt) {
			delete(s.resetTokens, k)
			removed++
		}
	}
	return removed, nil
}

// Mongo implementation

func (m *MongoStore) CreateResetToken(ctx context.Context, t models.PasswordResetToken) error {
	t.CreatedAt = time.Now()
	_, err := m.db.Collection(resetTokenCollection).InsertOne(ctx, t)
	return err
}

func (m *MongoStore) GetResetToken(ctx context.Context, token string) (models.PasswordResetToken, error) {
	var t models.PasswordResetToken
	if err := m.findByID(ctx, resetTokenCollection, token, &t); err != nil {
		return models.PasswordResetToken{}, err
	}
	if time.Now().After(t.ExpiresAt) {
		_ = m.remove(ctx, resetTokenCollection, token)
		return models.PasswordResetToken{}, ErrNotFound
	}
	return t, nil
}

func (m *MongoStore) DeleteResetToken(ctx context.Context, token string) error {
	return m.remove(ctx, resetTokenCollection, token)
}

func (m *MongoStore) DeleteExpiredResetTokens(ctx context.Context) (int, error) {
	res, err := m.db.Collection(resetTokenCollection).DeleteMany(ctx,
		bson.M{"expiresAt": bson.M{"$lt": time.Now()}},
	)
	if err != nil {
		return 0, err
	}
	return int(res.DeletedCount), nil
}
