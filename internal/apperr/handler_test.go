package apperr

import (
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
)

func newTestHandler() *Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewHandler(NewTranslator(), NewMessageProvider(), logger)
}

func TestHandleBusinessErrorPassesThroughUnchanged(t *testing.T) {
	h := newTestHandler()
	business := NewDuplicateUser("jdoe")

	got := h.Handle(business, NewContext("user.registration"))
	if got != business {
		t.Fatalf("Handle returned %v, want the identical business error", got)
	}
}

func TestHandleTranslatesVendorFailure(t *testing.T) {
	h := newTestHandler()
	cause := vendorErr(MySQLDuplicateEntry)

	got := h.Handle(cause, NewContext("employee.create"))

	var dataAccess *DataAccessError
	if !errors.As(got, &dataAccess) {
		t.Fatalf("Handle returned %T, want *DataAccessError", got)
	}
	if dataAccess.Code != CodeEmployeeDuplicateID {
		t.Errorf("code = %s, want %s", dataAccess.Code, CodeEmployeeDuplicateID)
	}
	if !errors.Is(got, cause) {
		t.Error("vendor failure not retained as cause")
	}
}

func TestHandleDataAccessErrorPassesThrough(t *testing.T) {
	h := newTestHandler()
	translated := &DataAccessError{Kind: LockContention, Code: CodeDBDeadlock, Message: "deadlock"}

	got := h.Handle(translated, NewContext("leave.apply"))
	if got != translated {
		t.Fatalf("Handle returned %v, want the identical data-access error", got)
	}
}

func TestHandleUnexpectedErrorHidesOriginalMessage(t *testing.T) {
	h := newTestHandler()
	ectx := NewContext("employee.update")
	secret := errors.New("password=hunter2 leaked from stack")

	got := h.Handle(secret, ectx)

	var boundary *BoundaryError
	if !errors.As(got, &boundary) {
		t.Fatalf("Handle returned %T, want *BoundaryError", got)
	}
	if strings.Contains(got.Error(), secret.Error()) {
		t.Error("boundary error leaks the original message")
	}
	if !strings.Contains(got.Error(), ectx.ErrorID) {
		t.Error("boundary error does not carry the correlation id")
	}
	if !errors.Is(got, secret) {
		t.Error("original failure not retained as cause for server-side logs")
	}
}

func TestHandleNilErrorYieldsBoundaryError(t *testing.T) {
	h := newTestHandler()

	got := h.Handle(nil, NewContext("employee.get"))

	var boundary *BoundaryError
	if !errors.As(got, &boundary) {
		t.Fatalf("Handle(nil) returned %T, want *BoundaryError", got)
	}
}

func TestCreateErrorResponse(t *testing.T) {
	h := newTestHandler()

	tests := []struct {
		name     string
		err      error
		wantCode Code
	}{
		{"business error uses its code", NewDuplicateUser("jdoe"), CodeUserAlreadyExists},
		{"validation failure uses its code", NewInvalidInput("bad dates"), CodeValidationFailed},
		{"enrollment failure uses its code", NewEnrollmentFailure("course is full"), CodeEnrollmentRejected},
		{"leave rule violation uses its code", NewLeaveRuleViolation("overlap"), CodeLeaveRuleViolated},
		{"data access error uses its code", &DataAccessError{Code: CodeDBDeadlock}, CodeDBDeadlock},
		{"unknown error falls back to system error", errors.New("boom"), CodeSystemError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ectx := NewContext("employee.create")
			resp := h.CreateErrorResponse(tt.err, ectx)
			if resp.Code != tt.wantCode {
				t.Errorf("code = %s, want %s", resp.Code, tt.wantCode)
			}
			if resp.ErrorID != ectx.ErrorID {
				t.Errorf("error id = %s, want %s", resp.ErrorID, ectx.ErrorID)
			}
			if resp.Message != tt.wantCode.DefaultMessage() {
				t.Errorf("message = %q, want catalog default", resp.Message)
			}
			if strings.Contains(resp.Message, "boom") {
				t.Error("response leaks the raw error message")
			}
		})
	}
}

func TestCreateErrorResponseUsesProviderOverride(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	messages := NewMessageProvider()
	messages.Register(CodeUserAlreadyExists, "That username is taken, pick another")
	h := NewHandler(NewTranslator(), messages, logger)

	resp := h.CreateErrorResponse(NewDuplicateUser("jdoe"), NewContext("user.registration"))
	if resp.Message != "That username is taken, pick another" {
		t.Errorf("message = %q, want the registered override", resp.Message)
	}
}

func TestIsRetryable(t *testing.T) {
	h := newTestHandler()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"deadlock", &DataAccessError{Code: CodeDBDeadlock}, true},
		{"connection failed", &DataAccessError{Code: CodeDBConnectionFailed}, true},
		{"lock timeout", &DataAccessError{Code: CodeDBLockTimeout}, true},
		{"explicitly transient", &DataAccessError{Code: CodeDBQueryError, Transient: true}, true},
		{"duplicate user", NewDuplicateUser("jdoe"), false},
		{"employee not found", NewResourceNotFound("Employee", "42"), false},
		{"invalid input", NewInvalidInput("bad dates"), false},
		{"integrity violation", &DataAccessError{Code: CodeDBDuplicateEntry}, false},
		{"plain error", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := h.IsRetryable(tt.err); got != tt.want {
				t.Errorf("IsRetryable = %v, want %v", got, tt.want)
			}
		})
	}
}
