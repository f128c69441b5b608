package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bluelinehq/police-records-api/api"
	"github.com/bluelinehq/police-records-api/api/handlers"
	"github.com/bluelinehq/police-records-api/databases"
	"github.com/bluelinehq/police-records-api/models"
)

// recordsRouter mounts the occurrence book, evidence, geofile and report
// handlers together, the way the full route table does.
func recordsRouter(t *testing.T) (*mux.Router, *databases.Store, models.User) {
	t.Helper()
	guardianOnce.Do(api.SetupGoGuardian)

	store, memory := databases.NewMemoryBackedStore()
	require.NoError(t, memory.Seed())

	o := handlers.OBEntry{DB: store.OBEntries}
	e := handlers.Evidence{DB: store.Evidence}
	g := handlers.Geofile{DB: store.Geofiles}
	rp := handlers.Report{DB: store.Reports}

	r := mux.NewRouter()
	s := r.PathPrefix("/api").Subrouter()
	s.Use(mux.MiddlewareFunc(api.Middleware))
	s.HandleFunc("/ob-entries", o.OBEntriesHandler).Methods("GET")
	s.HandleFunc("/ob-entries", o.CreateOBEntryHandler).Methods("POST")
	s.HandleFunc("/ob-entries/{id}", o.UpdateOBEntryHandler).Methods("PUT")
	s.HandleFunc("/ob-entries/{id}", o.DeleteOBEntryHandler).Methods("DELETE")
	s.HandleFunc("/evidence", e.EvidenceListHandler).Methods("GET")
	s.HandleFunc("/evidence", e.CreateEvidenceHandler).Methods("POST")
	s.HandleFunc("/evidence/{id}", e.EvidenceByIDHandler).Methods("GET")
	s.HandleFunc("/evidence/{id}", e.UpdateEvidenceHandler).Methods("PUT")
	s.HandleFunc("/evidence/{id}", e.DeleteEvidenceHandler).Methods("DELETE")
	s.HandleFunc("/geofiles", g.GeofilesHandler).Methods("GET")
	s.HandleFunc("/geofiles", g.CreateGeofileHandler).Methods("POST")
	s.HandleFunc("/geofiles/{id}", g.GeofileByIDHandler).Methods("GET")
	s.HandleFunc("/reports", rp.ReportsHandler).Methods("GET")
	s.HandleFunc("/reports", rp.CreateReportHandler).Methods("POST")
	s.HandleFunc("/reports/{id}", rp.ReportByIDHandler).Methods("GET")

	admin, err := store.Users.GetUserByUsername(context.TODO(), "admin")
	require.NoError(t, err)
	return r, store, admin
}

func TestOBEntry_CreateAssignsNumberAndOfficer(t *testing.T) {
	r, _, admin := recordsRouter(t)

	req := sessionRequest("POST", "/api/ob-entries", map[string]string{
		"type":        "complaint",
		"description": "Noise complaint from Oak Avenue",
		"reportedBy":  "Mary Jones",
	}, admin)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)

	var resp map[string]models.OBEntry
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	entry := resp["obEntry"]
	assert.True(t, strings.HasPrefix(entry.OBNumber, "OB/"))
	assert.Equal(t, "open", entry.Status)
	require.NotNil(t, entry.RecordingOfficerID)
	assert.Equal(t, admin.ID, *entry.RecordingOfficerID)
}

func TestOBEntry_CreateMissingType(t *testing.T) {
	r, _, admin := recordsRouter(t)

	req := sessionRequest("POST", "/api/ob-entries", map[string]string{
		"description": "no type given",
	}, admin)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"message":"Invalid input"}`, rr.Body.String())
}

func TestOBEntry_UpdateNotFound(t *testing.T) {
	r, _, admin := recordsRouter(t)

	req := sessionRequest("PUT", "/api/ob-entries/42", map[string]string{
		"status": "closed",
	}, admin)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"message":"OB Entry not found"}`, rr.Body.String())
}

func TestEvidence_CreateReturnsBareObject(t *testing.T) {
	r, _, admin := recordsRouter(t)

	req := sessionRequest("POST", "/api/evidence", map[string]string{
		"type":        "physical",
		"description": "Recovered laptop",
	}, admin)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)

	// evidence items come back without an envelope
	var created models.Evidence
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	assert.True(t, strings.HasPrefix(created.EvidenceNumber, "EV-"))
	assert.Equal(t, "collected", created.Status)
	require.NotNil(t, created.CollectedBy)
	assert.Equal(t, admin.ID, *created.CollectedBy)
}

func TestEvidence_ListEnveloped(t *testing.T) {
	r, store, admin := recordsRouter(t)

	_, err := store.Evidence.CreateEvidence(context.TODO(), models.Evidence{
		Type:        "digital",
		Description: "USB drive",
	})
	require.NoError(t, err)

	req := sessionRequest("GET", "/api/evidence", nil, admin)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp map[string][]models.Evidence
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Len(t, resp["evidence"], 1)
}

func TestEvidence_KeepsCallerCollectedBy(t *testing.T) {
	r, _, admin := recordsRouter(t)

	req := sessionRequest("POST", "/api/evidence", map[string]interface{}{
		"type":        "photo",
		"description": "Scene photo",
		"collectedBy": 7,
	}, admin)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)

	var created models.Evidence
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	require.NotNil(t, created.CollectedBy)
	assert.Equal(t, 7, *created.CollectedBy)
}

func TestGeofile_CreateAndFetch(t *testing.T) {
	r, _, admin := recordsRouter(t)

	req := sessionRequest("POST", "/api/geofiles", map[string]string{
		"filename":    "crime-scene.kml",
		"fileType":    "kml",
		"coordinates": `[-122.42,37.77]`,
		"address":     "Oak Avenue 12",
	}, admin)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)

	var created models.Geofile
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	require.NotNil(t, created.UploadedBy)
	assert.Equal(t, admin.ID, *created.UploadedBy)

	req = sessionRequest("GET", "/api/geofiles/1", nil, admin)
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var fetched models.Geofile
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &fetched))
	assert.Equal(t, "crime-scene.kml", fetched.Filename)
}

func TestGeofile_CreateMissingFilename(t *testing.T) {
	r, _, admin := recordsRouter(t)

	req := sessionRequest("POST", "/api/geofiles", map[string]string{
		"fileType": "kml",
	}, admin)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"message":"Invalid geofile data"}`, rr.Body.String())
}

func TestReport_CreateDefaults(t *testing.T) {
	r, _, admin := recordsRouter(t)

	req := sessionRequest("POST", "/api/reports", map[string]string{
		"type":  "incident",
		"title": "Weekly incident summary",
	}, admin)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)

	var created models.Report
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	assert.True(t, strings.HasPrefix(created.ReportNumber, "RPT-"))
	assert.Equal(t, "pending", created.Status)
	assert.Equal(t, "medium", created.Priority)
	require.NotNil(t, created.RequestedBy)
	assert.Equal(t, admin.ID, *created.RequestedBy)
}

func TestReport_ListEnveloped(t *testing.T) {
	r, store, admin := recordsRouter(t)

	_, err := store.Reports.CreateReport(context.TODO(), models.Report{
		Type:  "case_summary",
		Title: "Case 1 summary",
	})
	require.NoError(t, err)

	req := sessionRequest("GET", "/api/reports", nil, admin)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp map[string][]models.Report
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Len(t, resp["reports"], 1)
}
