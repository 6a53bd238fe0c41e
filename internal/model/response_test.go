package model

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bhel/hrm/internal/apperr"
)

func TestWriteErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "authentication failure",
			err:        apperr.NewAuthenticationFailure("jdoe"),
			wantStatus: http.StatusUnauthorized,
			wantCode:   "AUTH_INVALID_CREDENTIALS",
		},
		{
			name:       "duplicate user",
			err:        apperr.NewDuplicateUser("jdoe"),
			wantStatus: http.StatusConflict,
			wantCode:   "USER_ALREADY_EXISTS",
		},
		{
			name:       "not found",
			err:        apperr.NewResourceNotFound("Employee", "42"),
			wantStatus: http.StatusNotFound,
			wantCode:   "EMPLOYEE_NOT_FOUND",
		},
		{
			name:       "invalid input",
			err:        apperr.NewInvalidInput("first name is required"),
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_FAILED",
		},
		{
			name:       "leave rule violation",
			err:        apperr.NewLeaveRuleViolation("overlapping leave"),
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   "LEAVE_RULE_VIOLATED",
		},
		{
			name:       "enrollment failure",
			err:        apperr.NewEnrollmentFailure("course is full"),
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   "ENROLLMENT_REJECTED",
		},
		{
			name:       "integrity violation",
			err:        &apperr.DataAccessError{Kind: apperr.IntegrityViolation, Code: apperr.CodeEmployeeDuplicateID},
			wantStatus: http.StatusConflict,
			wantCode:   "EMPLOYEE_DUPLICATE_ID",
		},
		{
			name:       "lock contention",
			err:        &apperr.DataAccessError{Kind: apperr.LockContention, Code: apperr.CodeDBDeadlock},
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   "DB_DEADLOCK",
		},
		{
			name:       "unclassified",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "SYSTEM_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteError(rec, tt.err)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}

			var resp APIResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decoding body: %v", err)
			}
			if resp.Error == nil {
				t.Fatal("response has no error body")
			}
			if resp.Error.Code != tt.wantCode {
				t.Errorf("code = %s, want %s", resp.Error.Code, tt.wantCode)
			}
		})
	}
}

func TestWriteErrorNeverLeaksInternalDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, errors.New("dial tcp 10.0.0.5:3306: connection refused"))

	if strings.Contains(rec.Body.String(), "10.0.0.5") {
		t.Errorf("response leaks internal details: %s", rec.Body.String())
	}
}

func TestWriteErrorBoundaryErrorCarriesCorrelationID(t *testing.T) {
	rec := httptest.NewRecorder()
	boundary := &apperr.BoundaryError{ErrorID: "abc-123", Cause: errors.New("secret")}
	WriteError(rec, boundary)

	body := rec.Body.String()
	if !strings.Contains(body, "abc-123") {
		t.Error("response does not carry the correlation id")
	}
	if strings.Contains(body, "secret") {
		t.Error("response leaks the wrapped cause")
	}
}
