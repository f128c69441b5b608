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

// Case exported for testing purposes
type Case struct {
	DB databases.CaseDatabase
}

// CasesHandler returns all cases
func (c Case) CasesHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	cases, err := c.DB.ListCases(ctx)
	if err != nil {
		config.ErrorStatus("Failed to fetch cases", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(map[string][]models.Case{"cases": cases})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.Write(b)
}

// CreateCaseHandler opens a new case stamped with the session user
func (c Case) CreateCaseHandler(w http.ResponseWriter, r *http.Request) {
	var newCase models.Case
	if err := json.NewDecoder(r.Body).Decode(&newCase); err != nil || newCase.Title == "" {
		config.ErrorStatus("Invalid input", http.StatusBadRequest, w, err)
		return
	}
	newCase.CreatedByID = api.SessionUserID(r.Context())

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	created, err := c.DB.CreateCase(ctx, newCase)
	if err != nil {
		config.ErrorStatus("Invalid input", http.StatusBadRequest, w, err)
		return
	}

	b, err := json.Marshal(map[string]models.Case{"case": created})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	w.Write(b)
}

// UpdateCaseHandler merges a patch into a case
func (c Case) UpdateCaseHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		config.ErrorStatus("Case not found", http.StatusNotFound, w, err)
		return
	}

	var patch map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		config.ErrorStatus("Invalid input", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	updated, err := c.DB.UpdateCase(ctx, id, patch)
	if err != nil {
		config.ErrorStatus("Case not found", http.StatusNotFound, w, err)
		return
	}

	b, err := json.Marshal(map[string]models.Case{"case": updated})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.Write(b)
}

// DeleteCaseHandler removes a case
func (c Case) DeleteCaseHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		config.ErrorStatus("Case not found", http.StatusNotFound, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	if err := c.DB.DeleteCase(ctx, id); err != nil {
		config.ErrorStatus("Case not found", http.StatusNotFound, w, err)
		return
	}

	b, _ := json.Marshal(models.MessageResponse{Message: "Case deleted successfully"})
	w.Write(b)
}
