package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bluelinehq/police-records-api/databases"
	"github.com/bluelinehq/police-records-api/models"
)

func TestPurgeExpiredTokens(t *testing.T) {
	store, _ := databases.NewMemoryBackedStore()
	s := NewScheduler(store.ResetTokens, store.Vehicles)

	require.NoError(t, store.ResetTokens.CreateResetToken(context.TODO(), models.PasswordResetToken{
		Token:     "stale",
		UserID:    1,
		ExpiresAt: time.Now().Add(-time.Hour),
	}))
	require.NoError(t, store.ResetTokens.CreateResetToken(context.TODO(), models.PasswordResetToken{
		Token:     "fresh",
		UserID:    2,
		ExpiresAt: time.Now().Add(time.Hour),
	}))

	s.purgeExpiredTokens()

	_, err := store.ResetTokens.GetResetToken(context.TODO(), "stale")
	assert.ErrorIs(t, err, databases.ErrNotFound)

	_, err = store.ResetTokens.GetResetToken(context.TODO(), "fresh")
	assert.NoError(t, err)
}

func TestCheckStaleVehiclesDoesNotMutate(t *testing.T) {
	store, memory := databases.NewMemoryBackedStore()
	require.NoError(t, memory.Seed())
	s := NewScheduler(store.ResetTokens, store.Vehicles)

	before, err := store.Vehicles.ListPoliceVehicles(context.TODO())
	require.NoError(t, err)

	// the job only warns; statuses stay untouched
	s.checkStaleVehicles()

	after, err := store.Vehicles.ListPoliceVehicles(context.TODO())
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestSchedulerStartStop(t *testing.T) {
	store, _ := databases.NewMemoryBackedStore()
	s := NewScheduler(store.ResetTokens, store.Vehicles)

	s.Start()
	s.Stop()
}
