package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/crypto/bcrypt"

	"github.com/bluelinehq/police-records-api/api"
	"github.com/bluelinehq/police-records-api/config"
	"github.com/bluelinehq/police-records-api/databases"
	"github.com/bluelinehq/police-records-api/models"
)

// officerDefaultPassword is the initial credential for accounts created
// through the officers endpoint; holders are expected to change it.
const officerDefaultPassword = "changeme123"

// User exported for testing purposes
type User struct {
	DB databases.UserDatabase
}

// UsersHandler returns every account, admin only
func (u User) UsersHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	users, err := u.DB.ListUsers(ctx)
	if err != nil {
		config.ErrorStatus("failed to get users", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(map[string][]models.User{"users": users})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.Write(b)
}

// DeleteUserHandler removes an account, admin only. Admins cannot delete
// themselves.
func (u User) DeleteUserHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		config.ErrorStatus("Invalid input", http.StatusBadRequest, w, err)
		return
	}
	if id == api.SessionUserID(r.Context()) {
		config.ErrorStatus("Cannot delete your own account", http.StatusBadRequest, w, errors.New("self delete"))
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	if err := u.DB.DeleteUser(ctx, id); err != nil {
		config.ErrorStatus("User not found", http.StatusNotFound, w, err)
		return
	}

	b, _ := json.Marshal(models.MessageResponse{Message: "User deleted successfully"})
	w.Write(b)
}

// OfficersHandler returns every account as a bare array
func (u User) OfficersHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	officers, err := u.DB.ListUsers(ctx)
	if err != nil {
		config.ErrorStatus("Failed to fetch officers", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(officers)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.Write(b)
}

// CreateOfficerHandler creates a regular account for an officer. The
// username falls back to the badge number and the password starts at a
// well-known default.
func (u User) CreateOfficerHandler(w http.ResponseWriter, r *http.Request) {
	var officer models.User
	if err := json.NewDecoder(r.Body).Decode(&officer); err != nil {
		config.ErrorStatus("Failed to create officer", http.StatusInternalServerError, w, err)
		return
	}

	if officer.Username == "" {
		officer.Username = officer.BadgeNumber
	}
	if officer.Username == "" {
		officer.Username = fmt.Sprintf("officer_%d", time.Now().UnixMilli())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(officerDefaultPassword), bcrypt.DefaultCost)
	if err != nil {
		config.ErrorStatus("Failed to create officer", http.StatusInternalServerError, w, err)
		return
	}
	officer.Password = string(hash)
	officer.Role = "user"

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	created, err := u.DB.CreateUser(ctx, officer)
	if err != nil {
		config.ErrorStatus("Failed to create officer", http.StatusInternalServerError, w, err)
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

// UpdateOfficerHandler patches an officer account
func (u User) UpdateOfficerHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		config.ErrorStatus("Failed to update officer", http.StatusInternalServerError, w, err)
		return
	}

	var patch map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		config.ErrorStatus("Failed to update officer", http.StatusInternalServerError, w, err)
		return
	}
	// Raw password writes bypass hashing, so the key is dropped here.
	delete(patch, "password")

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	updated, err := u.DB.UpdateUser(ctx, id, patch)
	if err != nil {
		config.ErrorStatus("Failed to update officer", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(updated)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.Write(b)
}

// DeleteOfficerHandler removes an officer account
func (u User) DeleteOfficerHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		config.ErrorStatus("Failed to delete officer", http.StatusInternalServerError, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	if err := u.DB.DeleteUser(ctx, id); err != nil {
		config.ErrorStatus("Failed to delete officer", http.StatusInternalServerError, w, err)
		return
	}

	b, _ := json.Marshal(models.MessageResponse{Message: "Officer deleted successfully"})
	w.Write(b)
}
