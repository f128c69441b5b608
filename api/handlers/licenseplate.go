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
	"github.com/bluelinehq/police-records-api/models"
)

// LicensePlate exported for testing purposes
type LicensePlate struct {
	DB databases.LicensePlateDatabase
}

// LicensePlatesHandler returns all registered plates
func (l LicensePlate) LicensePlatesHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	licensePlates, err := l.DB.ListLicensePlates(ctx)
	if err != nil {
		config.ErrorStatus("Failed to fetch license plates", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(map[string][]models.LicensePlate{"licensePlates": licensePlates})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.Write(b)
}

// SearchLicensePlateHandler looks up a plate by its number
func (l LicensePlate) SearchLicensePlateHandler(w http.ResponseWriter, r *http.Request) {
	plateNumber := mux.Vars(r)["plateNumber"]

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	plate, err := l.DB.GetLicensePlateByNumber(ctx, plateNumber)
	if err != nil {
		config.ErrorStatus("License plate not found", http.StatusNotFound, w, err)
		return
	}

	b, err := json.Marshal(map[string]models.LicensePlate{"licensePlate": plate})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.Write(b)
}

// CreateLicensePlateHandler registers a plate, stamped with the session user
func (l LicensePlate) CreateLicensePlateHandler(w http.ResponseWriter, r *http.Request) {
	var plate models.LicensePlate
	if err := json.NewDecoder(r.Body).Decode(&plate); err != nil || plate.PlateNumber == "" || plate.OwnerName == "" {
		config.ErrorStatus("Invalid input", http.StatusBadRequest, w, err)
		return
	}
	addedBy := api.SessionUserID(r.Context())
	plate.AddedByID = &addedBy

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	created, err := l.DB.CreateLicensePlate(ctx, plate)
	if err != nil {
		if errors.Is(err, databases.ErrDuplicate) {
			config.ErrorStatus("License plate already exists", http.StatusConflict, w, err)
			return
		}
		config.ErrorStatus("Invalid input", http.StatusBadRequest, w, err)
		return
	}

	b, err := json.Marshal(map[string]models.LicensePlate{"licensePlate": created})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	w.Write(b)
}

// UpdateLicensePlateHandler merges a patch into a plate record
func (l LicensePlate) UpdateLicensePlateHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		config.ErrorStatus("License plate not found", http.StatusNotFound, w, err)
		return
	}

	var patch map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		config.ErrorStatus("Invalid input", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	updated, err := l.DB.UpdateLicensePlate(ctx, id, patch)
	if err != nil {
		config.ErrorStatus("License plate not found", http.StatusNotFound, w, err)
		return
	}

	b, err := json.Marshal(map[string]models.LicensePlate{"licensePlate": updated})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.Write(b)
}

// DeleteLicensePlateHandler removes a plate record
func (l LicensePlate) DeleteLicensePlateHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		config.ErrorStatus("License plate not found", http.StatusNotFound, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	if err := l.DB.DeleteLicensePlate(ctx, id); err != nil {
		config.ErrorStatus("License plate not found", http.StatusNotFound, w, err)
		return
	}

	b, _ := json.Marshal(models.MessageResponse{Message: "License plate deleted successfully"})
	w.Write(b)
}
