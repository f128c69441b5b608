package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/bluelinehq/police-records-api/api"
	"github.com/bluelinehq/police-records-api/config"
	"github.com/bluelinehq/police-records-api/databases"
	"github.com/bluelinehq/police-records-api/models"
)

// OBEntry exported for testing purposes
type OBEntry struct {
	DB databases.OBEntryDatabase
}

// OBEntriesHandler returns the occurrence book
func (o OBEntry) OBEntriesHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	obEntries, err := o.DB.ListOBEntries(ctx)
	if err != nil {
		config.ErrorStatus("Failed to fetch OB entries", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(map[string][]models.OBEntry{"obEntries": obEntries})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.Write(b)
}

// CreateOBEntryHandler logs a new occurrence, recorded by the session user
func (o OBEntry) CreateOBEntryHandler(w http.ResponseWriter, r *http.Request) {
	var entry models.OBEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil || entry.Type == "" || entry.Description == "" {
		config.ErrorStatus("Invalid input", http.StatusBadRequest, w, err)
		return
	}
	officerID := api.SessionUserID(r.Context())
	entry.RecordingOfficerID = &officerID

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	created, err := o.DB.CreateOBEntry(ctx, entry)
	if err != nil {
		config.ErrorStatus("Invalid input", http.StatusBadRequest, w, err)
		return
	}

	b, err := json.Marshal(map[string]models.OBEntry{"obEntry": created})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	w.Write(b)
}

// UpdateOBEntryHandler merges a patch into an OB entry
func (o OBEntry) UpdateOBEntryHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		config.ErrorStatus("OB Entry not found", http.StatusNotFound, w, err)
		return
	}

	var patch map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		config.ErrorStatus("Invalid input", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	updated, err := o.DB.UpdateOBEntry(ctx, id, patch)
	if err != nil {
		config.ErrorStatus("OB Entry not found", http.StatusNotFound, w, err)
		return
	}

	b, err := json.Marshal(map[string]models.OBEntry{"obEntry": updated})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.Write(b)
}

// DeleteOBEntryHandler removes an OB entry
func (o OBEntry) DeleteOBEntryHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		config.ErrorStatus("OB Entry not found", http.StatusNotFound, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	if err := o.DB.DeleteOBEntry(ctx, id); err != nil {
		config.ErrorStatus("OB Entry not found", http.StatusNotFound, w, err)
		return
	}

	b, _ := json.Marshal(models.MessageResponse{Message: "OB Entry deleted successfully"})
	w.Write(b)
}
