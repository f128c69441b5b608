package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bluelinehq/police-records-api/api"
	"github.com/bluelinehq/police-records-api/api/handlers"
	"github.com/bluelinehq/police-records-api/databases"
	"github.com/bluelinehq/police-records-api/models"
)

func plateRouter(t *testing.T) (*mux.Router, *databases.Store, models.User) {
	t.Helper()
	guardianOnce.Do(api.SetupGoGuardian)

	store, memory := databases.NewMemoryBackedStore()
	require.NoError(t, memory.Seed())

	l := handlers.LicensePlate{DB: store.Plates}
	r := mux.NewRouter()
	s := r.PathPrefix("/api").Subrouter()
	s.Use(mux.MiddlewareFunc(api.Middleware))
	s.HandleFunc("/license-plates", l.LicensePlatesHandler).Methods("GET")
	s.HandleFunc("/license-plates", l.CreateLicensePlateHandler).Methods("POST")
	s.HandleFunc("/license-plates/search/{plateNumber}", l.SearchLicensePlateHandler).Methods("GET")
	s.HandleFunc("/license-plates/{id}", l.UpdateLicensePlateHandler).Methods("PUT")
	s.HandleFunc("/license-plates/{id}", l.DeleteLicensePlateHandler).Methods("DELETE")

	admin, err := store.Users.GetUserByUsername(context.TODO(), "admin")
	require.NoError(t, err)
	return r, store, admin
}

func TestLicensePlate_CreateStampsAddedBy(t *testing.T) {
	r, _, admin := plateRouter(t)

	req := sessionRequest("POST", "/api/license-plates", map[string]string{
		"plateNumber": "ABC123",
		"ownerName":   "John Doe",
		"idNumber":    "ID-99812",
	}, admin)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)

	var resp map[string]models.LicensePlate
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	created := resp["licensePlate"]
	require.NotNil(t, created.AddedByID)
	assert.Equal(t, admin.ID, *created.AddedByID)
}

func TestLicensePlate_CreateDuplicate(t *testing.T) {
	r, store, admin := plateRouter(t)

	_, err := store.Plates.CreateLicensePlate(context.TODO(), models.LicensePlate{PlateNumber: "ABC123"})
	require.NoError(t, err)

	req := sessionRequest("POST", "/api/license-plates", map[string]string{
		"plateNumber": "ABC123",
		"ownerName":   "Jane Doe",
	}, admin)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.JSONEq(t, `{"message":"License plate already exists"}`, rr.Body.String())
}

func TestLicensePlate_SearchCaseInsensitive(t *testing.T) {
	r, store, admin := plateRouter(t)

	_, err := store.Plates.CreateLicensePlate(context.TODO(), models.LicensePlate{
		PlateNumber: "ABC123",
		OwnerName:   "John Doe",
	})
	require.NoError(t, err)

	req := sessionRequest("GET", "/api/license-plates/search/abc123", nil, admin)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp map[string]models.LicensePlate
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "John Doe", resp["licensePlate"].OwnerName)
}

func TestLicensePlate_SearchNotFound(t *testing.T) {
	r, _, admin := plateRouter(t)

	req := sessionRequest("GET", "/api/license-plates/search/ZZZ999", nil, admin)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"message":"License plate not found"}`, rr.Body.String())
}
