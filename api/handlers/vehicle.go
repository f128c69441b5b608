package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/bluelinehq/police-records-api/api"
	"github.com/bluelinehq/police-records-api/config"
	"github.com/bluelinehq/police-records-api/databases"
	"github.com/bluelinehq/police-records-api/mapview"
	"github.com/bluelinehq/police-records-api/models"
)

// Vehicle exported for testing purposes
type Vehicle struct {
	DB  databases.PoliceVehicleDatabase
	Hub *TrackingHub
}

// VehiclesHandler returns the fleet as a bare array
func (v Vehicle) VehiclesHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	vehicles, err := v.DB.ListPoliceVehicles(ctx)
	if err != nil {
		config.ErrorStatus("Failed to fetch police vehicles", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(vehicles)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.Write(b)
}

// VehicleByIDHandler returns a single vehicle
func (v Vehicle) VehicleByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		config.ErrorStatus("Police vehicle not found", http.StatusNotFound, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	vehicle, err := v.DB.GetPoliceVehicle(ctx, id)
	if err != nil {
		config.ErrorStatus("Police vehicle not found", http.StatusNotFound, w, err)
		return
	}

	b, err := json.Marshal(vehicle)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.Write(b)
}

// CreateVehicleHandler adds a vehicle to the fleet
func (v Vehicle) CreateVehicleHandler(w http.ResponseWriter, r *http.Request) {
	var vehicle models.PoliceVehicle
	if err := json.NewDecoder(r.Body).Decode(&vehicle); err != nil || vehicle.VehicleID == "" || vehicle.VehicleType == "" {
		config.ErrorStatus("Invalid police vehicle data", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	created, err := v.DB.CreatePoliceVehicle(ctx, vehicle)
	if err != nil {
		if errors.Is(err, databases.ErrDuplicate) {
			config.ErrorStatus("Police vehicle already exists", http.StatusConflict, w, err)
			return
		}
		config.ErrorStatus("Invalid police vehicle data", http.StatusBadRequest, w, err)
		return
	}

	b, err := json.Marshal(created)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	w.Write(b)
}

// UpdateVehicleHandler merges a patch into a vehicle
func (v Vehicle) UpdateVehicleHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		config.ErrorStatus("Failed to update police vehicle", http.StatusBadRequest, w, err)
		return
	}

	var patch map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		config.ErrorStatus("Failed to update police vehicle", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	updated, err := v.DB.UpdatePoliceVehicle(ctx, id, patch)
	if err != nil {
		config.ErrorStatus("Failed to update police vehicle", http.StatusBadRequest, w, err)
		return
	}
	v.Hub.BroadcastVehicle("vehicle_updated", updated)

	b, err := json.Marshal(updated)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.Write(b)
}

// UpdateVehicleLocationHandler moves a vehicle to a new [lng, lat] position
func (v Vehicle) UpdateVehicleLocationHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		config.ErrorStatus("Failed to update vehicle location", http.StatusBadRequest, w, err)
		return
	}

	var patch models.VehicleLocationPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil || len(patch.Location) != 2 {
		config.ErrorStatus("Invalid location format. Expected [longitude, latitude]", http.StatusBadRequest, w, err)
		return
	}
	loc, err := json.Marshal(patch.Location)
	if err != nil {
		config.ErrorStatus("Invalid location format. Expected [longitude, latitude]", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	updated, err := v.DB.UpdateVehicleLocation(ctx, id, string(loc))
	if err != nil {
		config.ErrorStatus("Failed to update vehicle location", http.StatusBadRequest, w, err)
		return
	}
	v.Hub.BroadcastVehicle("vehicle_location", updated)

	b, err := json.Marshal(updated)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.Write(b)
}

// UpdateVehicleStatusHandler sets the vehicle status from the allowed set
func (v Vehicle) UpdateVehicleStatusHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		config.ErrorStatus("Failed to update vehicle status", http.StatusBadRequest, w, err)
		return
	}

	var patch models.VehicleStatusPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil || !models.ValidVehicleStatus(patch.Status) {
		config.ErrorStatus("Invalid status. Must be one of: available, on_patrol, responding, out_of_service", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	updated, err := v.DB.UpdateVehicleStatus(ctx, id, patch.Status)
	if err != nil {
		config.ErrorStatus("Failed to update vehicle status", http.StatusBadRequest, w, err)
		return
	}
	v.Hub.BroadcastVehicle("vehicle_status", updated)

	b, err := json.Marshal(updated)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.Write(b)
}

// DeleteVehicleHandler removes a vehicle from the fleet
func (v Vehicle) DeleteVehicleHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		config.ErrorStatus("Failed to delete police vehicle", http.StatusInternalServerError, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	if err := v.DB.DeletePoliceVehicle(ctx, id); err != nil {
		config.ErrorStatus("Failed to delete police vehicle", http.StatusInternalServerError, w, err)
		return
	}

	b, _ := json.Marshal(models.MessageResponse{Message: "Police vehicle deleted successfully"})
	w.Write(b)
}

// FleetMapHandler renders the fleet positions as an SVG map
func (v Vehicle) FleetMapHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	vehicles, err := v.DB.ListPoliceVehicles(ctx)
	if err != nil {
		config.ErrorStatus("Failed to fetch police vehicles", http.StatusInternalServerError, w, err)
		return
	}

	showAreas := r.URL.Query().Get("patrolAreas") == "true"
	svg := mapview.Render(vehicles, showAreas)

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Write([]byte(svg))
}
