package scheduler

import (
	"context"
	"encoding/json"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/bluelinehq/police-records-api/databases"
	"github.com/bluelinehq/police-records-api/logging"
)

// staleAfter is how long an active vehicle may go without a position update
// before the fleet job flags it.
const staleAfter = 30 * time.Minute

// Scheduler handles periodic background jobs for the records system
type Scheduler struct {
	cron     *cron.Cron
	log      *zap.SugaredLogger
	Tokens   databases.ResetTokenDatabase
	Vehicles databases.PoliceVehicleDatabase
}

// NewScheduler creates a new scheduler instance
func NewScheduler(tokens databases.ResetTokenDatabase, vehicles databases.PoliceVehicleDatabase) *Scheduler {
	return &Scheduler{
		cron:     cron.New(cron.WithLocation(time.UTC)),
		log:      logging.New("scheduler"),
		Tokens:   tokens,
		Vehicles: vehicles,
	}
}

// Start begins the scheduler with all registered jobs
func (s *Scheduler) Start() {
	_, err := s.cron.AddFunc("@hourly", s.purgeExpiredTokens)
	if err != nil {
		s.log.Errorw("failed to register token purge job", "error", err)
	}

	_, err = s.cron.AddFunc("*/5 * * * *", s.checkStaleVehicles)
	if err != nil {
		s.log.Errorw("failed to register stale vehicle job", "error", err)
	}

	s.cron.Start()
	s.log.Info("Background scheduler started")
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info("Background scheduler stopped")
}

// purgeExpiredTokens drops password reset grants past their expiry.
func (s *Scheduler) purgeExpiredTokens() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	removed, err := s.Tokens.DeleteExpiredResetTokens(ctx)
	if err != nil {
		s.log.Errorw("failed to purge expired reset tokens", "error", err)
		return
	}
	if removed > 0 {
		s.log.Infow("purged expired reset tokens", "count", removed)
	}
}

// checkStaleVehicles flags active vehicles that have gone quiet. The job
// only warns; dispatchers decide whether to change the status.
func (s *Scheduler) checkStaleVehicles() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	vehicles, err := s.Vehicles.ListPoliceVehicles(ctx)
	if err != nil {
		s.log.Errorw("failed to list vehicles for staleness check", "error", err)
		return
	}

	cutoff := time.Now().Add(-staleAfter)
	for _, v := range vehicles {
		if v.Status != "on_patrol" && v.Status != "responding" {
			continue
		}
		if v.LastUpdate.After(cutoff) {
			continue
		}
		var loc []float64
		_ = json.Unmarshal([]byte(v.CurrentLocation), &loc)
		s.log.Warnw("vehicle position is stale",
			"vehicleId", v.VehicleID,
			"status", v.Status,
			"lastUpdate", v.LastUpdate,
			"lastKnownLocation", loc,
		)
	}
}
