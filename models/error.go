package models

// ErrorResponse is the JSON body written for every non-2xx response. Clients
// surface the message verbatim in form error banners.
type ErrorResponse struct {
	Message string `json:"message"`
}

// MessageResponse wraps the confirmation message returned by delete and
// logout style endpoints.
type MessageResponse struct {
	Message string `json:"message"`
}

// HealthCheckResponse returns the health check response struct
type HealthCheckResponse struct {
	Alive bool `json:"alive"`
}
