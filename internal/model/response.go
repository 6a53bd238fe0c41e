package model

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/bhel/hrm/internal/apperr"
)

// APIResponse is the standard JSON response wrapper
type APIResponse struct {
	Data  any       `json:"data,omitempty"`
	Error *APIError `json:"error,omitempty"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	ErrorID string `json:"error_id,omitempty"`
}

// JSON writes a JSON response with the given status code
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(APIResponse{Data: data})
}

// WriteError writes a JSON error response, mapping the error taxonomy to
// HTTP status codes. Everything that reaches here has already been through
// the exception-handling pipeline, so messages are user-safe: business
// messages as written, data-access messages from the catalog, and for
// anything else only the correlation id template.
func WriteError(w http.ResponseWriter, err error) {
	status, apiErr := classify(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(APIResponse{Error: &apiErr})
}

func classify(err error) (int, APIError) {
	var business *apperr.BusinessError
	if errors.As(err, &business) {
		return businessStatus(business.Kind), APIError{
			Code:    business.Code.String(),
			Message: business.Message,
		}
	}

	var dataAccess *apperr.DataAccessError
	if errors.As(err, &dataAccess) {
		return dataAccessStatus(dataAccess.Kind), APIError{
			Code:    dataAccess.Code.String(),
			Message: dataAccess.Code.DefaultMessage(),
		}
	}

	var boundary *apperr.BoundaryError
	if errors.As(err, &boundary) {
		return http.StatusInternalServerError, APIError{
			Code:    apperr.CodeSystemError.String(),
			Message: boundary.Error(),
			ErrorID: boundary.ErrorID,
		}
	}

	// Never expose internal error details on unclassified failures.
	return http.StatusInternalServerError, APIError{
		Code:    apperr.CodeSystemError.String(),
		Message: "internal server error",
	}
}

func businessStatus(kind apperr.BusinessKind) int {
	switch kind {
	case apperr.AuthenticationFailure:
		return http.StatusUnauthorized
	case apperr.DuplicateUser:
		return http.StatusConflict
	case apperr.ResourceNotFound:
		return http.StatusNotFound
	case apperr.InvalidInput:
		return http.StatusBadRequest
	case apperr.EnrollmentFailure, apperr.LeaveRuleViolation:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func dataAccessStatus(kind apperr.DataAccessKind) int {
	switch kind {
	case apperr.IntegrityViolation:
		return http.StatusConflict
	case apperr.LockContention:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
