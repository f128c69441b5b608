// Package docs Police Records Management API.
//
// Documentation of the Police Records Management API.
//
//     Schemes: https
//     BasePath: /
//     Version: 1.0.0
//     Host: https://records.police.gov
//
//     Consumes:
//     - application/json
//
//     Produces:
//     - application/json
//
//     Security:
//     - session
//
//    SecurityDefinitions:
//    session:
//      type: apiKey
//      name: session_token
//      in: cookie
//
// swagger:meta
package docs

import (
	"github.com/bluelinehq/police-records-api/models"
)

// swagger:route GET /health health healthEndpointID
// Lists the healthchex of the web service api.
// responses:
//   200: healthResponse

// Shows the current health of the api. true means it is alive, false means it is not.
// swagger:response healthResponse
type healthResponseWrapper struct {
	// in:body
	Body models.HealthCheckResponse
}

// swagger:route POST /api/auth/login auth loginID
// Authenticates a user and mints a session cookie.
// responses:
//   200: userResponse

// The authenticated account. The password hash is never included.
// swagger:response userResponse
type userResponseWrapper struct {
	// in:body
	Body struct {
		User models.User `json:"user"`
	}
}

// swagger:route GET /api/cases cases listCasesID
// Lists every case on file.
// responses:
//   200: casesResponse

// All cases, newest ids last.
// swagger:response casesResponse
type casesResponseWrapper struct {
	// in:body
	Body struct {
		Cases []models.Case `json:"cases"`
	}
}

// swagger:route GET /api/ob-entries occurrenceBook listOBEntriesID
// Lists the occurrence book.
// responses:
//   200: obEntriesResponse

// All occurrence book entries.
// swagger:response obEntriesResponse
type obEntriesResponseWrapper struct {
	// in:body
	Body struct {
		OBEntries []models.OBEntry `json:"obEntries"`
	}
}

// swagger:route GET /api/license-plates/search/{plateNumber} licensePlates searchPlateID
// Looks up a plate by its number, case-insensitively.
// responses:
//   200: licensePlateResponse

// The matching plate record.
// swagger:response licensePlateResponse
type licensePlateResponseWrapper struct {
	// in:body
	Body struct {
		LicensePlate models.LicensePlate `json:"licensePlate"`
	}
}

// swagger:route GET /api/police-vehicles fleet listVehiclesID
// Lists the vehicle fleet with live positions.
// responses:
//   200: vehiclesResponse

// The fleet as a bare array.
// swagger:response vehiclesResponse
type vehiclesResponseWrapper struct {
	// in:body
	Body []models.PoliceVehicle
}

// Error message shown verbatim in client error banners.
// swagger:response errorResponse
type errorResponseWrapper struct {
	// in:body
	Body models.ErrorResponse
}
