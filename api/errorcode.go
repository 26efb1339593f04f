package api

import (
	"github.com/ruralplus/companion-api/external/backend"
	"github.com/ruralplus/companion-api/geo"
)

var (
	errorMessageMap = map[int64]string{
		999:  "internal server error",
		1000: "not authenticated",

		1010: "invalid parameters",
		1011: "cannot parse request",

		1200: "no active navigation session",
		1201: backend.ErrNoRoute.Error(),

		1300: geo.ErrEmptyGeometry.Error(),

		1400: "backend unreachable",
	}

	errorInternalServer   = errorJSON(999)
	errorNotAuthenticated = errorJSON(1000)

	errorInvalidParameters  = errorJSON(1010)
	errorCannotParseRequest = errorJSON(1011)

	errorNoNavigationSession = errorJSON(1200)
	errorNoRoute             = errorJSON(1201)

	errorEmptyGeometry = errorJSON(1300)

	errorBackendUnreachable = errorJSON(1400)
)

type ErrorResponse struct {
	Code    int64  `json:"code"`
	Message string `json:"message"`
}

// errorJSON converts an error code to a standardized error object
func errorJSON(code int64) ErrorResponse {
	var message string
	if msg, ok := errorMessageMap[code]; ok {
		message = msg
	} else {
		message = "unknown"
	}

	return ErrorResponse{
		Code:    code,
		Message: message,
	}
}

// backendErrorJSON carries a backend rejection through with its original
// message so the UI can show it verbatim.
func backendErrorJSON(err *backend.APIError) ErrorResponse {
	return ErrorResponse{
		Code:    1401,
		Message: err.Message,
	}
}
