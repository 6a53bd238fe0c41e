package apperr

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/go-sql-driver/mysql"
)

type fakeVendorError struct {
	code int
	msg  string
}

func (e *fakeVendorError) Error() string   { return e.msg }
func (e *fakeVendorError) VendorCode() int { return e.code }

func vendorErr(code int) error {
	return &fakeVendorError{code: code, msg: fmt.Sprintf("vendor failure %d", code)}
}

func TestTranslateGeneralTable(t *testing.T) {
	tests := []struct {
		name       string
		vendorCode int
		wantCode   Code
		wantKind   DataAccessKind
	}{
		{"access denied", MySQLAccessDenied, CodeAuthInvalidCredentials, ResourceFailure},
		{"server gone", MySQLServerGone, CodeDBConnectionFailed, ResourceFailure},
		{"duplicate entry", MySQLDuplicateEntry, CodeDBDuplicateEntry, IntegrityViolation},
		{"row is referenced", MySQLRowIsReferenced, CodeDBForeignKeyViolation, IntegrityViolation},
		{"no referenced row", MySQLNoReferencedRow, CodeDBForeignKeyViolation, IntegrityViolation},
		{"column cannot be null", MySQLColumnCannotBeNull, CodeDBColumnIsNull, IntegrityViolation},
		{"no default for field", MySQLNoDefaultForField, CodeDBColumnIsNull, IntegrityViolation},
		{"syntax error", MySQLSyntaxError, CodeDBQueryError, GrammarError},
		{"deadlock", MySQLDeadlock, CodeDBDeadlock, LockContention},
		{"lock wait timeout", MySQLLockWaitTimeout, CodeDBLockTimeout, LockContention},
	}

	tr := NewTranslator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cause := vendorErr(tt.vendorCode)
			got := tr.Translate(cause, NewContext("benefit.list"))
			if got.Code != tt.wantCode {
				t.Errorf("code = %s, want %s", got.Code, tt.wantCode)
			}
			if got.Kind != tt.wantKind {
				t.Errorf("kind = %s, want %s", got.Kind, tt.wantKind)
			}
			if !errors.Is(got, cause) {
				t.Error("vendor failure not retained as cause")
			}
		})
	}
}

func TestTranslateContextOverrides(t *testing.T) {
	tests := []struct {
		name       string
		operation  string
		vendorCode int
		wantCode   Code
		wantKind   DataAccessKind
	}{
		{"registration duplicate", "user.registration", MySQLDuplicateEntry, CodeUserAlreadyExists, IntegrityViolation},
		{"employee create duplicate", "employee.create", MySQLDuplicateEntry, CodeEmployeeDuplicateID, IntegrityViolation},
		{"employee delete referenced", "employee.delete", MySQLRowIsReferenced, CodeEmployeeHasDependencies, IntegrityViolation},
		{"fragment containment", "hr.employee.create.batch", MySQLDuplicateEntry, CodeEmployeeDuplicateID, IntegrityViolation},
		{"case insensitive", "Employee.Create", MySQLDuplicateEntry, CodeEmployeeDuplicateID, IntegrityViolation},
	}

	tr := NewTranslator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tr.Translate(vendorErr(tt.vendorCode), NewContext(tt.operation))
			if got.Code != tt.wantCode {
				t.Errorf("code = %s, want %s", got.Code, tt.wantCode)
			}
			if got.Kind != tt.wantKind {
				t.Errorf("kind = %s, want %s", got.Kind, tt.wantKind)
			}
			if got.Message != tt.wantCode.DefaultMessage() {
				t.Errorf("message = %q, want catalog default %q", got.Message, tt.wantCode.DefaultMessage())
			}
		})
	}
}

func TestTranslateContextMatchIsCodeGated(t *testing.T) {
	tr := NewTranslator()

	// Operation matches the employee.delete fragment but the code is a
	// deadlock, so the general table must win.
	got := tr.Translate(vendorErr(MySQLDeadlock), NewContext("employee.delete"))
	if got.Code != CodeDBDeadlock {
		t.Errorf("code = %s, want %s", got.Code, CodeDBDeadlock)
	}
	if got.Kind != LockContention {
		t.Errorf("kind = %s, want %s", got.Kind, LockContention)
	}
}

func TestTranslateUnknownCodeFallsBack(t *testing.T) {
	tr := NewTranslator()

	got := tr.Translate(vendorErr(9999), NewContext("leave.apply"))
	if got.Code != CodeSystemError {
		t.Errorf("code = %s, want %s", got.Code, CodeSystemError)
	}
	if got.Kind != UnclassifiedFailure {
		t.Errorf("kind = %s, want %s", got.Kind, UnclassifiedFailure)
	}
	if want := "during leave.apply"; !strings.Contains(got.Message, want) {
		t.Errorf("message %q does not mention the operation", got.Message)
	}
}

func TestTranslateLongestFragmentWins(t *testing.T) {
	tr := NewTranslator()
	tr.AddContextMapping("delete", MySQLRowIsReferenced, CodeDBForeignKeyViolation, IntegrityViolation)

	// Both "delete" and "employee.delete" match; the longer fragment must
	// be chosen regardless of registration order.
	got := tr.Translate(vendorErr(MySQLRowIsReferenced), NewContext("hr.employee.delete"))
	if got.Code != CodeEmployeeHasDependencies {
		t.Errorf("code = %s, want %s", got.Code, CodeEmployeeHasDependencies)
	}
}

func TestTranslateMySQLDriverError(t *testing.T) {
	tr := NewTranslator()
	cause := &mysql.MySQLError{Number: MySQLDuplicateEntry, Message: "Duplicate entry 'jdoe' for key 'users.username'"}

	got := tr.Translate(cause, NewContext("user.registration"))
	if got.Code != CodeUserAlreadyExists {
		t.Errorf("code = %s, want %s", got.Code, CodeUserAlreadyExists)
	}
	if !errors.Is(got, cause) {
		t.Error("driver error not retained as cause")
	}
}

func TestGeneralMessageMentionsOperation(t *testing.T) {
	tr := NewTranslator()

	got := tr.Translate(vendorErr(MySQLDuplicateEntry), NewContext("course.create"))
	if !strings.Contains(got.Message, "during course.create") {
		t.Errorf("message %q does not mention the operation", got.Message)
	}
}
