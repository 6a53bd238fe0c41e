package apperr

// Code identifies an error kind in the process-wide catalog. Codes are
// stable identifiers: clients and log pipelines key on them, so existing
// values must never change meaning.
type Code string

const (
	CodeAuthInvalidCredentials  Code = "AUTH_INVALID_CREDENTIALS"
	CodeDBConnectionFailed      Code = "DB_CONNECTION_FAILED"
	CodeDBDuplicateEntry        Code = "DB_DUPLICATE_ENTRY"
	CodeDBForeignKeyViolation   Code = "DB_FOREIGN_KEY_VIOLATION"
	CodeDBColumnIsNull          Code = "DB_COLUMN_IS_NULL"
	CodeDBQueryError            Code = "DB_QUERY_ERROR"
	CodeDBDeadlock              Code = "DB_DEADLOCK"
	CodeDBLockTimeout           Code = "DB_LOCK_TIMEOUT"
	CodeUserAlreadyExists       Code = "USER_ALREADY_EXISTS"
	CodeEmployeeDuplicateID     Code = "EMPLOYEE_DUPLICATE_ID"
	CodeEmployeeHasDependencies Code = "EMPLOYEE_HAS_DEPENDENCIES"
	CodeEmployeeNotFound        Code = "EMPLOYEE_NOT_FOUND"
	CodeValidationFailed        Code = "VALIDATION_FAILED"
	CodeEnrollmentRejected      Code = "ENROLLMENT_REJECTED"
	CodeLeaveRuleViolated       Code = "LEAVE_RULE_VIOLATED"
	CodeSystemError             Code = "SYSTEM_ERROR"
)

// defaultMessages is the catalog of user-safe messages, one per code.
var defaultMessages = map[Code]string{
	CodeAuthInvalidCredentials:  "Invalid database credentials",
	CodeDBConnectionFailed:      "Could not connect to the database",
	CodeDBDuplicateEntry:        "A record with this value already exists",
	CodeDBForeignKeyViolation:   "The record is referenced by other data",
	CodeDBColumnIsNull:          "A required field was left empty",
	CodeDBQueryError:            "The database query could not be processed",
	CodeDBDeadlock:              "The operation was interrupted by a concurrent update",
	CodeDBLockTimeout:           "The operation timed out waiting for a database lock",
	CodeUserAlreadyExists:       "A user with this username already exists",
	CodeEmployeeDuplicateID:     "An employee with this IC/passport number already exists",
	CodeEmployeeHasDependencies: "The employee cannot be removed while dependent records exist",
	CodeEmployeeNotFound:        "The requested employee was not found",
	CodeValidationFailed:        "The request failed validation",
	CodeEnrollmentRejected:      "The enrollment could not be completed",
	CodeLeaveRuleViolated:       "The leave application violates a leave rule",
	CodeSystemError:             "An unexpected system error occurred",
}

func (c Code) String() string {
	return string(c)
}

// DefaultMessage returns the catalog message for the code. Unknown codes
// fall back to the SYSTEM_ERROR message.
func (c Code) DefaultMessage() string {
	if msg, ok := defaultMessages[c]; ok {
		return msg
	}
	return defaultMessages[CodeSystemError]
}

// Codes returns every catalog code. Used by validation and tests.
func Codes() []Code {
	codes := make([]Code, 0, len(defaultMessages))
	for c := range defaultMessages {
		codes = append(codes, c)
	}
	return codes
}
