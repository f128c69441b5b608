package databases

import (
	"encoding/json"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/bluelinehq/police-records-api/models"
)

// MemoryStore keeps every entity in a process-local map guarded by a single
// RWMutex. All state is lost on restart; this is the default backing store
// when no DB_URI is configured.
type MemoryStore struct {
	mu sync.RWMutex

	users       map[int]models.User
	cases       map[int]models.Case
	obEntries   map[int]models.OBEntry
	plates      map[int]models.LicensePlate
	evidence    map[int]models.Evidence
	geofiles    map[int]models.Geofile
	reports     map[int]models.Report
	vehicles    map[int]models.PoliceVehicle
	resetTokens map[string]models.PasswordResetToken

	nextUserID     int
	nextCaseID     int
	nextOBID       int
	nextPlateID    int
	nextEvidenceID int
	nextGeofileID  int
	nextReportID   int
	nextVehicleID  int
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:          make(map[int]models.User),
		cases:          make(map[int]models.Case),
		obEntries:      make(map[int]models.OBEntry),
		plates:         make(map[int]models.LicensePlate),
		evidence:       make(map[int]models.Evidence),
		geofiles:       make(map[int]models.Geofile),
		reports:        make(map[int]models.Report),
		vehicles:       make(map[int]models.PoliceVehicle),
		resetTokens:    make(map[string]models.PasswordResetToken),
		nextUserID:     1,
		nextCaseID:     1,
		nextOBID:       1,
		nextPlateID:    1,
		nextEvidenceID: 1,
		nextGeofileID:  1,
		nextReportID:   1,
		nextVehicleID:  1,
	}
}

// NewMemoryBackedStore wires a fresh MemoryStore into a Store bundle.
func NewMemoryBackedStore() (*Store, *MemoryStore) {
	m := NewMemoryStore()
	return &Store{
		Users:       m,
		Cases:       m,
		OBEntries:   m,
		Plates:      m,
		Evidence:    m,
		Geofiles:    m,
		Reports:     m,
		Vehicles:    m,
		ResetTokens: m,
	}, m
}

// applyPatch shallow-merges patch onto rec (a struct pointer), keyed by the
// struct's JSON field names, mirroring a client-side object spread. Keys
// listed in protected are dropped from the patch.
func applyPatch(rec interface{}, patch map[string]interface{}, protected ...string) error {
	base, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	merged := map[string]interface{}{}
	if err := json.Unmarshal(base, &merged); err != nil {
		return err
	}
	for k, v := range patch {
		skip := false
		for _, p := range protected {
			if k == p {
				skip = true
				break
			}
		}
		if !skip {
			merged[k] = v
		}
	}
	b, err := json.Marshal(merged)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, rec)
}

// Seed loads the default admin account plus a handful of sample cases and
// patrol vehicles so a fresh deployment is immediately usable.
func (s *MemoryStore) Seed() error {
	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	admin := models.User{
		ID:          s.nextUserID,
		Username:    "admin",
		Email:       "admin@police.gov",
		Password:    string(hash),
		FirstName:   "System",
		LastName:    "Administrator",
		Role:        "admin",
		BadgeNumber: "ADMIN001",
		Department:  "IT",
		Position:    "System Administrator",
		Phone:       "+1-555-0000",
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.nextUserID++
	s.users[admin.ID] = admin

	year := now.Year()
	sampleCases := []models.Case{
		{
			Title:           "Burglary at Main Street Store",
			Description:     "Break-in occurred at electronics store on Main Street. Several items reported missing including laptops and phones.",
			Type:            "Burglary",
			Priority:        "High",
			Status:          "In Progress",
			IncidentDate:    "2025-01-20T10:30:00Z",
			Location:        "Main Street Electronics Store, Downtown",
			AssignedOfficer: "Officer Johnson",
		},
		{
			Title:           "Traffic Accident Investigation",
			Description:     "Multi-vehicle accident at highway intersection. Minor injuries reported.",
			Type:            "Traffic",
			Priority:        "Medium",
			Status:          "Open",
			IncidentDate:    "2025-01-21T15:45:00Z",
			Location:        "Highway 101 & Oak Avenue Intersection",
			AssignedOfficer: "Officer Davis",
		},
		{
			Title:           "Missing Person Report",
			Description:     "Adult male reported missing by family. Last seen at work on Friday evening.",
			Type:            "Other",
			Priority:        "Critical",
			Status:          "Open",
			IncidentDate:    "2025-01-19T18:00:00Z",
			Location:        "Last seen at Downtown Office Building",
			AssignedOfficer: "Detective Smith",
		},
	}
	for _, c := range sampleCases {
		c.ID = s.nextCaseID
		s.nextCaseID++
		c.CaseNumber = caseNumber(year, c.ID)
		c.CreatedByID = admin.ID
		c.CreatedAt = now
		c.UpdatedAt = now
		s.cases[c.ID] = c
	}

	adminID := admin.ID
	sampleVehicles := []models.PoliceVehicle{
		{
			VehicleID:         "PATROL-001",
			LicensePlate:      "POL-001",
			VehicleType:       "patrol",
			Make:              "Ford",
			Model:             "Explorer",
			Year:              2023,
			CurrentLocation:   `[-122.4194,37.7749]`,
			AssignedArea:      `[[-122.45,37.7849],[-122.4,37.7849],[-122.4,37.7649],[-122.45,37.7649],[-122.45,37.7849]]`,
			Status:            "on_patrol",
			AssignedOfficerID: &adminID,
		},
		{
			VehicleID:       "PATROL-002",
			LicensePlate:    "POL-002",
			VehicleType:     "motorcycle",
			Make:            "Harley-Davidson",
			Model:           "Police Special",
			Year:            2022,
			CurrentLocation: `[-122.3894,37.7594]`,
			AssignedArea:    `[[-122.42,37.77],[-122.37,37.77],[-122.37,37.75],[-122.42,37.75],[-122.42,37.77]]`,
			Status:          "available",
		},
		{
			VehicleID:         "K9-001",
			LicensePlate:      "POL-K9-001",
			VehicleType:       "k9",
			Make:              "Chevrolet",
			Model:             "Tahoe",
			Year:              2023,
			CurrentLocation:   `[-122.4094,37.7849]`,
			AssignedArea:      `[[-122.43,37.79],[-122.39,37.79],[-122.39,37.77],[-122.43,37.77],[-122.43,37.79]]`,
			Status:            "responding",
			AssignedOfficerID: &adminID,
		},
		{
			VehicleID:       "SPECIAL-001",
			LicensePlate:    "POL-SWAT-001",
			VehicleType:     "special",
			Make:            "Ford",
			Model:           "F-550",
			Year:            2021,
			CurrentLocation: `[-122.4394,37.7949]`,
			AssignedArea:    `[[-122.46,37.8],[-122.41,37.8],[-122.41,37.78],[-122.46,37.78],[-122.46,37.8]]`,
			Status:          "out_of_service",
		},
	}
	for _, v := range sampleVehicles {
		v.ID = s.nextVehicleID
		s.nextVehicleID++
		v.LastUpdate = now
		v.CreatedAt = now
		v.UpdatedAt = now
		s.vehicles[v.ID] = v
	}

	return nil
}
