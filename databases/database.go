package databases

import (
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned for lookups, updates and deletes against an id that
// is not present. Handlers translate it into a 404.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned when a create would violate a unique field
// (username, email, plate number, vehicle id). Handlers translate it into a
// 409.
var ErrDuplicate = errors.New("duplicate record")

// Store bundles the per-entity databases behind one value so the app can
// swap the in-memory implementation for the Mongo-backed one without the
// handlers noticing.
type Store struct {
	Users       UserDatabase
	Cases       CaseDatabase
	OBEntries   OBEntryDatabase
	Plates      LicensePlateDatabase
	Evidence    EvidenceDatabase
	Geofiles    GeofileDatabase
	Reports     ReportDatabase
	Vehicles    PoliceVehicleDatabase
	ResetTokens ResetTokenDatabase
}

// Record numbers are derived from the id once at creation and never
// recomputed, so renumbering can't happen even if records are deleted.
func caseNumber(year, id int) string {
	return fmt.Sprintf("CASE-%d-%03d", year, id)
}

func obNumber(year, id int) string {
	return fmt.Sprintf("OB/%d/%04d", year, id)
}

func evidenceNumber(year, id int) string {
	return fmt.Sprintf("EV-%d-%04d", year, id)
}

func reportNumber(year, id int) string {
	return fmt.Sprintf("RPT-%d-%04d", year, id)
}

// bump returns the wall clock, nudged forward when the clock has not moved
// since prev so that updatedAt strictly increases across updates.
func bump(prev time.Time) time.Time {
	now := time.Now()
	if !now.After(prev) {
		now = prev.Add(time.Nanosecond)
	}
	return now
}
