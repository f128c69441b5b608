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
	"golang.org/x/crypto/bcrypt"

	"github.com/bluelinehq/police-records-api/api"
	"github.com/bluelinehq/police-records-api/api/handlers"
	"github.com/bluelinehq/police-records-api/databases"
	"github.com/bluelinehq/police-records-api/models"
)

func userRouter(t *testing.T) (*mux.Router, *databases.Store, models.User) {
	t.Helper()
	guardianOnce.Do(api.SetupGoGuardian)

	store, memory := databases.NewMemoryBackedStore()
	require.NoError(t, memory.Seed())

	u := handlers.User{DB: store.Users}
	r := mux.NewRouter()
	s := r.PathPrefix("/api").Subrouter()
	s.Use(mux.MiddlewareFunc(api.Middleware))

	admin := s.NewRoute().Subrouter()
	admin.Use(mux.MiddlewareFunc(api.AdminOnly))
	admin.HandleFunc("/users", u.UsersHandler).Methods("GET")
	admin.HandleFunc("/users/{id}", u.DeleteUserHandler).Methods("DELETE")
	admin.HandleFunc("/officers", u.OfficersHandler).Methods("GET")
	admin.HandleFunc("/officers", u.CreateOfficerHandler).Methods("POST")
	admin.HandleFunc("/officers/{id}", u.UpdateOfficerHandler).Methods("PUT")
	admin.HandleFunc("/officers/{id}", u.DeleteOfficerHandler).Methods("DELETE")

	adminUser, err := store.Users.GetUserByUsername(context.TODO(), "admin")
	require.NoError(t, err)
	return r, store, adminUser
}

func TestUser_UsersHandlerEnveloped(t *testing.T) {
	r, _, admin := userRouter(t)

	req := sessionRequest("GET", "/api/users", nil, admin)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp map[string][]models.User
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Len(t, resp["users"], 1)
	assert.NotContains(t, rr.Body.String(), "$2a$")
}

func TestUser_NonAdminForbidden(t *testing.T) {
	r, store, _ := userRouter(t)

	officer, err := store.Users.CreateUser(context.TODO(), models.User{
		Username: "officer1",
		Email:    "officer1@police.gov",
	})
	require.NoError(t, err)

	req := sessionRequest("GET", "/api/users", nil, officer)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.JSONEq(t, `{"message":"Admin access required"}`, rr.Body.String())
}

func TestUser_DeleteOwnAccountRejected(t *testing.T) {
	r, _, admin := userRouter(t)

	req := sessionRequest("DELETE", "/api/users/1", nil, admin)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"message":"Cannot delete your own account"}`, rr.Body.String())
}

func TestUser_DeleteUser(t *testing.T) {
	r, store, admin := userRouter(t)

	officer, err := store.Users.CreateUser(context.TODO(), models.User{
		Username: "officer1",
		Email:    "officer1@police.gov",
	})
	require.NoError(t, err)

	req := sessionRequest("DELETE", "/api/users/2", nil, admin)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"message":"User deleted successfully"}`, rr.Body.String())

	_, err = store.Users.GetUser(context.TODO(), officer.ID)
	assert.ErrorIs(t, err, databases.ErrNotFound)
}

func TestUser_DeleteUserNotFound(t *testing.T) {
	r, _, admin := userRouter(t)

	req := sessionRequest("DELETE", "/api/users/999", nil, admin)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"message":"User not found"}`, rr.Body.String())
}

func TestUser_CreateOfficerDefaults(t *testing.T) {
	r, store, admin := userRouter(t)

	req := sessionRequest("POST", "/api/officers", map[string]string{
		"firstName":   "John",
		"lastName":    "Smith",
		"badgeNumber": "PD-4521",
		"email":       "jsmith@police.gov",
	}, admin)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)

	var created models.User
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	// the badge number doubles as the username when none is given
	assert.Equal(t, "PD-4521", created.Username)
	assert.Equal(t, "user", created.Role)

	stored, err := store.Users.GetUser(context.TODO(), created.ID)
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("changeme123")))
}

func TestUser_UpdateOfficerCannotSetPassword(t *testing.T) {
	r, store, admin := userRouter(t)

	officer, err := store.Users.CreateUser(context.TODO(), models.User{
		Username: "officer1",
		Email:    "officer1@police.gov",
		Password: "original-hash",
	})
	require.NoError(t, err)

	req := sessionRequest("PUT", "/api/officers/2", map[string]string{
		"firstName": "Renamed",
		"password":  "plaintext-injection",
	}, admin)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	stored, err := store.Users.GetUser(context.TODO(), officer.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", stored.FirstName)
	assert.Equal(t, "original-hash", stored.Password)
}

func TestUser_DeleteOfficer(t *testing.T) {
	r, store, admin := userRouter(t)

	_, err := store.Users.CreateUser(context.TODO(), models.User{
		Username: "officer1",
		Email:    "officer1@police.gov",
	})
	require.NoError(t, err)

	req := sessionRequest("DELETE", "/api/officers/2", nil, admin)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"message":"Officer deleted successfully"}`, rr.Body.String())
}
