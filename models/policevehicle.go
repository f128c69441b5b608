package models

import "time"

// VehicleStatuses is the fixed set of values accepted by the status mutator.
var VehicleStatuses = []string{"available", "on_patrol", "responding", "out_of_service"}

// PoliceVehicle is a fleet vehicle with a live position and an assigned
// patrol area. CurrentLocation is a JSON-encoded [lng, lat] pair and
// AssignedArea a JSON-encoded polygon of such pairs.
type PoliceVehicle struct {
	ID                int       `json:"id" bson:"_id"`
	VehicleID         string    `json:"vehicleId" bson:"vehicleId"`
	LicensePlate      string    `json:"licensePlate" bson:"licensePlate"`
	VehicleType       string    `json:"vehicleType" bson:"vehicleType"` // patrol, motorcycle, ambulance, k9, special
	Make              string    `json:"make" bson:"make"`
	Model             string    `json:"model" bson:"model"`
	Year              int       `json:"year" bson:"year"`
	CurrentLocation   string    `json:"currentLocation" bson:"currentLocation"`
	AssignedArea      string    `json:"assignedArea" bson:"assignedArea"`
	Status            string    `json:"status" bson:"status"`
	AssignedOfficerID *int      `json:"assignedOfficerId" bson:"assignedOfficerId"`
	LastUpdate        time.Time `json:"lastUpdate" bson:"lastUpdate"`
	CreatedAt         time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt" bson:"updatedAt"`
}

// ValidVehicleStatus reports whether s is one of the allowed vehicle statuses.
func ValidVehicleStatus(s string) bool {
	for _, v := range VehicleStatuses {
		if s == v {
			return true
		}
	}
	return false
}
