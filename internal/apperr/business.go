package apperr

import "fmt"

// BusinessKind enumerates the closed set of expected, caller-correctable
// failure conditions raised by service logic.
type BusinessKind int

const (
	AuthenticationFailure BusinessKind = iota
	DuplicateUser
	ResourceNotFound
	InvalidInput
	EnrollmentFailure
	LeaveRuleViolation
)

func (k BusinessKind) String() string {
	switch k {
	case AuthenticationFailure:
		return "authentication_failure"
	case DuplicateUser:
		return "duplicate_user"
	case ResourceNotFound:
		return "resource_not_found"
	case InvalidInput:
		return "invalid_input"
	case EnrollmentFailure:
		return "enrollment_failure"
	case LeaveRuleViolation:
		return "leave_rule_violation"
	default:
		return "unknown"
	}
}

// BusinessError is an expected domain-rule violation. It crosses the service
// boundary unchanged: never translated, never wrapped.
type BusinessError struct {
	Kind    BusinessKind
	Code    Code
	Message string

	// Set for ResourceNotFound only.
	ResourceType string
	ResourceID   string
}

func (e *BusinessError) Error() string {
	return e.Message
}

// NewAuthenticationFailure reports a failed login attempt.
func NewAuthenticationFailure(username string) *BusinessError {
	return &BusinessError{
		Kind:    AuthenticationFailure,
		Code:    CodeAuthInvalidCredentials,
		Message: fmt.Sprintf("authentication failed for user '%s'", username),
	}
}

// NewDuplicateUser reports that a username is already taken.
func NewDuplicateUser(username string) *BusinessError {
	return &BusinessError{
		Kind:    DuplicateUser,
		Code:    CodeUserAlreadyExists,
		Message: fmt.Sprintf("user '%s' already exists", username),
	}
}

// NewResourceNotFound reports a missing entity lookup.
func NewResourceNotFound(resourceType, resourceID string) *BusinessError {
	return &BusinessError{
		Kind:         ResourceNotFound,
		Code:         CodeEmployeeNotFound,
		Message:      fmt.Sprintf("%s with ID '%s' was not found", resourceType, resourceID),
		ResourceType: resourceType,
		ResourceID:   resourceID,
	}
}

// NewInvalidInput reports a request that fails validation.
func NewInvalidInput(message string) *BusinessError {
	return &BusinessError{
		Kind:    InvalidInput,
		Code:    CodeValidationFailed,
		Message: message,
	}
}

// NewEnrollmentFailure reports a training enrollment rule violation.
func NewEnrollmentFailure(message string) *BusinessError {
	return &BusinessError{
		Kind:    EnrollmentFailure,
		Code:    CodeEnrollmentRejected,
		Message: message,
	}
}

// NewLeaveRuleViolation reports a leave-application rule violation.
func NewLeaveRuleViolation(message string) *BusinessError {
	return &BusinessError{
		Kind:    LeaveRuleViolation,
		Code:    CodeLeaveRuleViolated,
		Message: message,
	}
}
