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

// Geofile exported for testing purposes
type Geofile struct {
	DB databases.GeofileDatabase
}

// GeofilesHandler returns all geographic files
func (g Geofile) GeofilesHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	geofiles, err := g.DB.ListGeofiles(ctx)
	if err != nil {
		config.ErrorStatus("Failed to fetch geofiles", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(map[string][]models.Geofile{"geofiles": geofiles})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.Write(b)
}

// GeofileByIDHandler returns a single geofile
func (g Geofile) GeofileByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		config.ErrorStatus("Geofile not found", http.StatusNotFound, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	geofile, err := g.DB.GetGeofile(ctx, id)
	if err != nil {
		config.ErrorStatus("Geofile not found", http.StatusNotFound, w, err)
		return
	}

	b, err := json.Marshal(geofile)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.Write(b)
}

// CreateGeofileHandler stores a geofile record, uploaded by the session user
func (g Geofile) CreateGeofileHandler(w http.ResponseWriter, r *http.Request) {
	var geofile models.Geofile
	if err := json.NewDecoder(r.Body).Decode(&geofile); err != nil || geofile.Filename == "" {
		config.ErrorStatus("Invalid geofile data", http.StatusBadRequest, w, err)
		return
	}
	if geofile.UploadedBy == nil {
		uploadedBy := api.SessionUserID(r.Context())
		geofile.UploadedBy = &uploadedBy
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	created, err := g.DB.CreateGeofile(ctx, geofile)
	if err != nil {
		config.ErrorStatus("Invalid geofile data", http.StatusBadRequest, w, err)
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

// UpdateGeofileHandler merges a patch into a geofile record
func (g Geofile) UpdateGeofileHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		config.ErrorStatus("Failed to update geofile", http.StatusBadRequest, w, err)
		return
	}

	var patch map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		config.ErrorStatus("Failed to update geofile", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	updated, err := g.DB.UpdateGeofile(ctx, id, patch)
	if err != nil {
		config.ErrorStatus("Failed to update geofile", http.StatusBadRequest, w, err)
		return
	}

	b, err := json.Marshal(updated)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.Write(b)
}

// DeleteGeofileHandler removes a geofile record
func (g Geofile) DeleteGeofileHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		config.ErrorStatus("Failed to delete geofile", http.StatusInternalServerError, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	if err := g.DB.DeleteGeofile(ctx, id); err != nil {
		config.ErrorStatus("Failed to delete geofile", http.StatusInternalServerError, w, err)
		return
	}

	b, _ := json.Marshal(models.MessageResponse{Message: "Geofile deleted successfully"})
	w.Write(b)
}
