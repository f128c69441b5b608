package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

var a App

func executeRequest(req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	a.Router.ServeHTTP(rr, req)
	return rr
}

func checkResponseCode(t *testing.T, expected, actual int) {
	if expected != actual {
		t.Errorf("Expected response code %d. Got %d\n", expected, actual)
	}
}

func setupApp(t *testing.T) {
	if a.Router != nil {
		return
	}
	if err := a.Initialize(context.Background()); err != nil {
		t.Fatalf("failed to initialize app: %v", err)
	}
}

func TestUnknownRoute(t *testing.T) {
	setupApp(t)
	req, _ := http.NewRequest("GET", "/asdf", nil)
	response := executeRequest(req)

	checkResponseCode(t, http.StatusNotFound, response.Code)
}

func TestHealthCheckRoute(t *testing.T) {
	setupApp(t)
	req, _ := http.NewRequest("GET", "/health", nil)
	response := executeRequest(req)

	checkResponseCode(t, http.StatusOK, response.Code)

	if !strings.Contains(response.Body.String(), "alive") {
		t.Errorf("Expected 'alive' in the reponse. Got '%s'", response.Body.String())
	}
}

func TestApp_CasesUnauthorized(t *testing.T) {
	setupApp(t)
	req, _ := http.NewRequest("GET", "/api/cases", nil)
	response := executeRequest(req)

	checkResponseCode(t, http.StatusUnauthorized, response.Code)
}

func TestApp_CasesInvalidToken(t *testing.T) {
	setupApp(t)
	req, _ := http.NewRequest("GET", "/api/cases", nil)
	req.Header.Add("Authorization", "Bearer asdfasdf")
	response := executeRequest(req)

	checkResponseCode(t, http.StatusUnauthorized, response.Code)
}

func TestApp_LoginRouteWired(t *testing.T) {
	setupApp(t)
	req, _ := http.NewRequest("POST", "/api/auth/login", strings.NewReader(`{"username":"admin","password":"admin123"}`))
	req.Header.Set("Content-Type", "application/json")
	response := executeRequest(req)

	checkResponseCode(t, http.StatusOK, response.Code)

	if !strings.Contains(response.Body.String(), `"username":"admin"`) {
		t.Errorf("Expected the admin user in the response. Got '%s'", response.Body.String())
	}
}

func TestApp_MetricsSummaryForbiddenWithoutAdmin(t *testing.T) {
	setupApp(t)
	req, _ := http.NewRequest("GET", "/api/metrics/summary", nil)
	response := executeRequest(req)

	checkResponseCode(t, http.StatusUnauthorized, response.Code)
}
