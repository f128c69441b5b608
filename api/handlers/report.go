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

// Report exported for testing purposes
type Report struct {
	DB databases.ReportDatabase
}

// ReportsHandler returns all reports
func (rp Report) ReportsHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	reports, err := rp.DB.ListReports(ctx)
	if err != nil {
		config.ErrorStatus("Failed to fetch reports", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(map[string][]models.Report{"reports": reports})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.Write(b)
}

// ReportByIDHandler returns a single report
func (rp Report) ReportByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		config.ErrorStatus("Report not found", http.StatusNotFound, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	report, err := rp.DB.GetReport(ctx, id)
	if err != nil {
		config.ErrorStatus("Report not found", http.StatusNotFound, w, err)
		return
	}

	b, err := json.Marshal(report)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.Write(b)
}

// CreateReportHandler files a report, requested by the session user
func (rp Report) CreateReportHandler(w http.ResponseWriter, r *http.Request) {
	var report models.Report
	if err := json.NewDecoder(r.Body).Decode(&report); err != nil || report.Type == "" || report.Title == "" {
		config.ErrorStatus("Invalid report data", http.StatusBadRequest, w, err)
		return
	}
	requestedBy := api.SessionUserID(r.Context())
	report.RequestedBy = &requestedBy

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	created, err := rp.DB.CreateReport(ctx, report)
	if err != nil {
		config.ErrorStatus("Invalid report data", http.StatusBadRequest, w, err)
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

// UpdateReportHandler merges a patch into a report
func (rp Report) UpdateReportHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		config.ErrorStatus("Failed to update report", http.StatusBadRequest, w, err)
		return
	}

	var patch map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		config.ErrorStatus("Failed to update report", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	updated, err := rp.DB.UpdateReport(ctx, id, patch)
	if err != nil {
		config.ErrorStatus("Failed to update report", http.StatusBadRequest, w, err)
		return
	}

	b, err := json.Marshal(updated)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.Write(b)
}

// DeleteReportHandler removes a report
func (rp Report) DeleteReportHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		config.ErrorStatus("Failed to delete report", http.StatusInternalServerError, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	if err := rp.DB.DeleteReport(ctx, id); err != nil {
		config.ErrorStatus("Failed to delete report", http.StatusInternalServerError, w, err)
		return
	}

	b, _ := json.Marshal(models.MessageResponse{Message: "Report deleted successfully"})
	w.Write(b)
}
