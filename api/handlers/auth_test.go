package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bluelinehq/police-records-api/api"
	"github.com/bluelinehq/police-records-api/api/handlers"
	"github.com/bluelinehq/police-records-api/config"
	"github.com/bluelinehq/police-records-api/databases"
	"github.com/bluelinehq/police-records-api/mailer"
	"github.com/bluelinehq/police-records-api/models"
)

var guardianOnce sync.Once

// newAuth builds an Auth handler over a seeded in-memory store. No sendgrid
// key is set, so forgot-password runs in demo mode and echoes the token.
func newAuth(t *testing.T) (handlers.Auth, *databases.Store) {
	t.Helper()
	guardianOnce.Do(api.SetupGoGuardian)

	store, memory := databases.NewMemoryBackedStore()
	require.NoError(t, memory.Seed())

	conf := config.Config{SessionSecret: "test-secret"}
	return handlers.Auth{
		DB:     store.Users,
		Tokens: store.ResetTokens,
		Config: conf,
		Mail:   mailer.New(conf),
	}, store
}

func postJSON(path string, body interface{}) *http.Request {
	b, _ := json.Marshal(body)
	req := httptest.NewRequest("POST", path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func sessionRequest(method, path string, body interface{}, user models.User) *http.Request {
	var req *http.Request
	if body != nil {
		b, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(b))
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	token := api.NewSession(user, req)
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestAuth_LoginSuccess(t *testing.T) {
	a, _ := newAuth(t)

	req := postJSON("/api/auth/login", map[string]string{
		"username": "admin",
		"password": "admin123",
	})
	rr := httptest.NewRecorder()
	a.LoginHandler(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp map[string]models.User
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "admin", resp["user"].Username)
	assert.Equal(t, "admin", resp["user"].Role)

	// the bcrypt hash must never leave the server
	assert.NotContains(t, rr.Body.String(), "password")
	assert.NotContains(t, rr.Body.String(), "$2a$")

	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, api.SessionCookie, cookies[0].Name)
	assert.NotEmpty(t, cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
}

func TestAuth_LoginWrongPassword(t *testing.T) {
	a, _ := newAuth(t)

	req := postJSON("/api/auth/login", map[string]string{
		"username": "admin",
		"password": "wrong",
	})
	rr := httptest.NewRecorder()
	a.LoginHandler(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.JSONEq(t, `{"message":"Invalid credentials"}`, rr.Body.String())
}

func TestAuth_LoginUnknownUsername(t *testing.T) {
	a, _ := newAuth(t)

	req := postJSON("/api/auth/login", map[string]string{
		"username": "nobody",
		"password": "whatever",
	})
	rr := httptest.NewRecorder()
	a.LoginHandler(rr, req)

	// same response as a bad password, so usernames cannot be probed
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.JSONEq(t, `{"message":"Invalid credentials"}`, rr.Body.String())
}

func TestAuth_LoginMissingFields(t *testing.T) {
	a, _ := newAuth(t)

	req := postJSON("/api/auth/login", map[string]string{"username": "admin"})
	rr := httptest.NewRecorder()
	a.LoginHandler(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"message":"Invalid input"}`, rr.Body.String())
}

func TestAuth_LoginDeactivatedAccount(t *testing.T) {
	a, store := newAuth(t)

	admin, err := store.Users.GetUserByUsername(context.TODO(), "admin")
	require.NoError(t, err)
	_, err = store.Users.UpdateUser(context.TODO(), admin.ID, map[string]interface{}{"isActive": false})
	require.NoError(t, err)

	req := postJSON("/api/auth/login", map[string]string{
		"username": "admin",
		"password": "admin123",
	})
	rr := httptest.NewRecorder()
	a.LoginHandler(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.JSONEq(t, `{"message":"Account is deactivated"}`, rr.Body.String())
}

func TestAuth_LogoutClearsCookie(t *testing.T) {
	a, _ := newAuth(t)

	req := httptest.NewRequest("POST", "/api/auth/logout", nil)
	rr := httptest.NewRecorder()
	a.LogoutHandler(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"message":"Logged out successfully"}`, rr.Body.String())

	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, api.SessionCookie, cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
}

func TestAuth_MeHandler(t *testing.T) {
	a, store := newAuth(t)

	admin, err := store.Users.GetUserByUsername(context.TODO(), "admin")
	require.NoError(t, err)

	req := sessionRequest("GET", "/api/auth/me", nil, admin)
	rr := httptest.NewRecorder()
	handler := api.Middleware(http.HandlerFunc(a.MeHandler))
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp map[string]models.User
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, admin.ID, resp["user"].ID)
}

func TestAuth_MeHandlerNoSession(t *testing.T) {
	a, _ := newAuth(t)

	req := httptest.NewRequest("GET", "/api/auth/me", nil)
	rr := httptest.NewRecorder()
	handler := api.Middleware(http.HandlerFunc(a.MeHandler))
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.JSONEq(t, `{"message":"Authentication required"}`, rr.Body.String())
}

func TestAuth_RegisterSuccess(t *testing.T) {
	a, store := newAuth(t)

	req := postJSON("/api/auth/register", map[string]string{
		"username":        "jdoe",
		"email":           "jdoe@police.gov",
		"password":        "secret123",
		"confirmPassword": "secret123",
		"firstName":       "Jane",
		"lastName":        "Doe",
	})
	rr := httptest.NewRecorder()
	a.RegisterHandler(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)

	var resp map[string]models.User
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "user", resp["user"].Role)

	stored, err := store.Users.GetUserByUsername(context.TODO(), "jdoe")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", stored.Password)
	assert.Contains(t, stored.Password, "$2a$")
}

func TestAuth_RegisterDuplicateUsername(t *testing.T) {
	a, _ := newAuth(t)

	req := postJSON("/api/auth/register", map[string]string{
		"username":        "admin",
		"email":           "new@police.gov",
		"password":        "secret123",
		"confirmPassword": "secret123",
	})
	rr := httptest.NewRecorder()
	a.RegisterHandler(rr, req)

	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.JSONEq(t, `{"message":"Username already exists"}`, rr.Body.String())
}

func TestAuth_RegisterDuplicateEmail(t *testing.T) {
	a, _ := newAuth(t)

	req := postJSON("/api/auth/register", map[string]string{
		"username":        "newuser",
		"email":           "admin@police.gov",
		"password":        "secret123",
		"confirmPassword": "secret123",
	})
	rr := httptest.NewRecorder()
	a.RegisterHandler(rr, req)

	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.JSONEq(t, `{"message":"Email already exists"}`, rr.Body.String())
}

func TestAuth_RegisterPasswordMismatch(t *testing.T) {
	a, _ := newAuth(t)

	req := postJSON("/api/auth/register", map[string]string{
		"username":        "jdoe",
		"email":           "jdoe@police.gov",
		"password":        "secret123",
		"confirmPassword": "different",
	})
	rr := httptest.NewRecorder()
	a.RegisterHandler(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"message":"Invalid input"}`, rr.Body.String())
}

func TestAuth_ForgotPasswordUnknownUsername(t *testing.T) {
	a, _ := newAuth(t)

	req := postJSON("/api/auth/forgot-password", map[string]string{"username": "nobody"})
	rr := httptest.NewRecorder()
	a.ForgotPasswordHandler(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"message":"If the username exists, a reset token has been generated"}`, rr.Body.String())
}

func TestAuth_ForgotThenResetPassword(t *testing.T) {
	a, _ := newAuth(t)

	req := postJSON("/api/auth/forgot-password", map[string]string{"username": "admin"})
	rr := httptest.NewRecorder()
	a.ForgotPasswordHandler(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var forgot map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &forgot))
	assert.Equal(t, "Password reset token generated", forgot["message"])
	require.NotEmpty(t, forgot["token"])

	req = postJSON("/api/auth/reset-password", map[string]string{
		"token":    forgot["token"],
		"password": "newpass456",
	})
	rr = httptest.NewRecorder()
	a.ResetPasswordHandler(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"message":"Password updated successfully"}`, rr.Body.String())

	// the old password no longer works
	req = postJSON("/api/auth/login", map[string]string{
		"username": "admin",
		"password": "admin123",
	})
	rr = httptest.NewRecorder()
	a.LoginHandler(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	// the new one does
	req = postJSON("/api/auth/login", map[string]string{
		"username": "admin",
		"password": "newpass456",
	})
	rr = httptest.NewRecorder()
	a.LoginHandler(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestAuth_ResetTokenSingleUse(t *testing.T) {
	a, _ := newAuth(t)

	req := postJSON("/api/auth/forgot-password", map[string]string{"username": "admin"})
	rr := httptest.NewRecorder()
	a.ForgotPasswordHandler(rr, req)

	var forgot map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &forgot))

	reset := func() *httptest.ResponseRecorder {
		req := postJSON("/api/auth/reset-password", map[string]string{
			"token":    forgot["token"],
			"password": "newpass456",
		})
		rr := httptest.NewRecorder()
		a.ResetPasswordHandler(rr, req)
		return rr
	}

	assert.Equal(t, http.StatusOK, reset().Code)

	second := reset()
	assert.Equal(t, http.StatusBadRequest, second.Code)
	assert.JSONEq(t, `{"message":"Invalid or expired token"}`, second.Body.String())
}

func TestAuth_ResetPasswordGarbageToken(t *testing.T) {
	a, _ := newAuth(t)

	req := postJSON("/api/auth/reset-password", map[string]string{
		"token":    "not-a-jwt",
		"password": "newpass456",
	})
	rr := httptest.NewRecorder()
	a.ResetPasswordHandler(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"message":"Invalid or expired token"}`, rr.Body.String())
}

func TestAuth_UpdateProfile(t *testing.T) {
	a, store := newAuth(t)

	admin, err := store.Users.GetUserByUsername(context.TODO(), "admin")
	require.NoError(t, err)

	req := sessionRequest("PUT", "/api/profile", map[string]string{
		"firstName": "Updated",
		"phone":     "+1-555-1234",
	}, admin)
	rr := httptest.NewRecorder()
	handler := api.Middleware(http.HandlerFunc(a.UpdateProfileHandler))
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp map[string]models.User
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "Updated", resp["user"].FirstName)
	assert.Equal(t, "+1-555-1234", resp["user"].Phone)
	// untouched fields survive a partial update
	assert.Equal(t, admin.LastName, resp["user"].LastName)
}
