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

// Evidence exported for testing purposes
type Evidence struct {
	DB databases.EvidenceDatabase
}

// EvidenceListHandler returns the evidence log
func (e Evidence) EvidenceListHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	items, err := e.DB.ListEvidence(ctx)
	if err != nil {
		config.ErrorStatus("Failed to fetch evidence", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(map[string][]models.Evidence{"evidence": items})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.Write(b)
}

// EvidenceByIDHandler returns a single evidence item
func (e Evidence) EvidenceByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		config.ErrorStatus("Evidence not found", http.StatusNotFound, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	item, err := e.DB.GetEvidence(ctx, id)
	if err != nil {
		config.ErrorStatus("Evidence not found", http.StatusNotFound, w, err)
		return
	}

	b, err := json.Marshal(item)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.Write(b)
}

// CreateEvidenceHandler logs an evidence item, collected by the session user
func (e Evidence) CreateEvidenceHandler(w http.ResponseWriter, r *http.Request) {
	var item models.Evidence
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil || item.Type == "" || item.Description == "" {
		config.ErrorStatus("Invalid evidence data", http.StatusBadRequest, w, err)
		return
	}
	if item.CollectedBy == nil {
		collectedBy := api.SessionUserID(r.Context())
		item.CollectedBy = &collectedBy
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	created, err := e.DB.CreateEvidence(ctx, item)
	if err != nil {
		config.ErrorStatus("Invalid evidence data", http.StatusBadRequest, w, err)
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

// UpdateEvidenceHandler merges a patch into an evidence item
func (e Evidence) UpdateEvidenceHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		config.ErrorStatus("Failed to update evidence", http.StatusBadRequest, w, err)
		return
	}

	var patch map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		config.ErrorStatus("Failed to update evidence", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	updated, err := e.DB.UpdateEvidence(ctx, id, patch)
	if err != nil {
		config.ErrorStatus("Failed to update evidence", http.StatusBadRequest, w, err)
		return
	}

	b, err := json.Marshal(updated)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.Write(b)
}

// DeleteEvidenceHandler removes an evidence item
func (e Evidence) DeleteEvidenceHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		config.ErrorStatus("Failed to delete evidence", http.StatusInternalServerError, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	if err := e.DB.DeleteEvidence(ctx, id); err != nil {
		config.ErrorStatus("Failed to delete evidence", http.StatusInternalServerError, w, err)
		return
	}

	b, _ := json.Marshal(models.MessageResponse{Message: "Evidence deleted successfully"})
	w.Write(b)
}
