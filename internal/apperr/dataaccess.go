package apperr

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// DataAccessKind enumerates the closed set of storage-layer failure
// classifications produced by the translator.
type DataAccessKind int

const (
	// UnclassifiedFailure is the fallback for vendor codes absent from
	// every mapping table.
	UnclassifiedFailure DataAccessKind = iota
	ResourceFailure
	IntegrityViolation
	GrammarError
	LockContention
)

func (k DataAccessKind) String() string {
	switch k {
	case ResourceFailure:
		return "resource_failure"
	case IntegrityViolation:
		return "integrity_violation"
	case GrammarError:
		return "grammar_error"
	case LockContention:
		return "lock_contention"
	default:
		return "unclassified_failure"
	}
}

// DataAccessError is an unexpected storage-layer failure, constructed at the
// moment of failure detection and never reused. The original vendor failure
// stays reachable through Unwrap for diagnostics.
type DataAccessError struct {
	Kind    DataAccessKind
	Code    Code
	Message string
	Cause   error

	// Transient marks failures known to be safe to retry regardless of
	// their resolved code.
	Transient bool
}

func (e *DataAccessError) Error() string {
	return e.Message
}

func (e *DataAccessError) Unwrap() error {
	return e.Cause
}

// VendorError is the raw failure signal from the backing store: a numeric
// vendor-specific code plus a message. *mysql.MySQLError satisfies it via
// the adapter in VendorCode; tests may provide their own implementations.
type VendorError interface {
	error
	VendorCode() int
}

// VendorCode extracts the vendor numeric code from an error chain. It
// recognizes the MySQL driver's error type and anything implementing
// VendorError.
func VendorCode(err error) (int, bool) {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return int(myErr.Number), true
	}
	var vendor VendorError
	if errors.As(err, &vendor) {
		return vendor.VendorCode(), true
	}
	return 0, false
}

// vendorState returns the five-character SQL state when the MySQL driver
// supplies one. Logged alongside the numeric code.
func vendorState(err error) string {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return string(myErr.SQLState[:])
	}
	return ""
}
