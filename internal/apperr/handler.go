package apperr

import (
	"errors"
	"fmt"
	"log/slog"
)

// BoundaryError is what an unexpected failure becomes before crossing the
// service boundary: a fixed template embedding only the correlation id. The
// original failure stays attached as the cause for server-side logs.
type BoundaryError struct {
	ErrorID string
	Cause   error
}

func (e *BoundaryError) Error() string {
	return fmt.Sprintf("a critical server error occurred [error id: %s], please contact support", e.ErrorID)
}

func (e *BoundaryError) Unwrap() error {
	return e.Cause
}

// Handler is the single pipeline every service operation funnels failures
// through. It classifies the failure, translates vendor errors, logs with
// the correlation id, and decides what crosses the service boundary.
type Handler struct {
	translator *Translator
	messages   *MessageProvider
	logger     *slog.Logger
}

func NewHandler(translator *Translator, messages *MessageProvider, logger *slog.Logger) *Handler {
	return &Handler{
		translator: translator,
		messages:   messages,
		logger:     logger,
	}
}

// Handle classifies err and returns the error that may cross the service
// boundary:
//   - business errors pass through unchanged,
//   - already-translated data-access errors pass through unchanged,
//   - raw vendor failures are translated into typed data-access errors,
//   - anything else is wrapped behind a BoundaryError carrying only the
//     correlation id.
//
// A nil err is itself a programming error and yields a BoundaryError.
func (h *Handler) Handle(err error, ectx *ErrorContext) error {
	if err == nil {
		h.logger.Error("nil error passed to handler", "error_id", ectx.ErrorID, "operation", ectx.Operation)
		return &BoundaryError{ErrorID: ectx.ErrorID}
	}

	h.logger.Debug("handling failure", "error_id", ectx.ErrorID, "operation", ectx.Operation)

	var business *BusinessError
	if errors.As(err, &business) {
		h.logBusiness(business, ectx)
		return business
	}

	var dataAccess *DataAccessError
	if errors.As(err, &dataAccess) {
		h.logger.Warn("data access error",
			"error_id", ectx.ErrorID,
			"code", dataAccess.Code.String(),
			"kind", dataAccess.Kind.String(),
			"operation", ectx.Operation,
		)
		return dataAccess
	}

	if _, ok := VendorCode(err); ok {
		return h.translateVendor(err, ectx)
	}

	return h.wrapUnexpected(err, ectx)
}

// HandleOp is Handle with a context constructed from the operation name.
func (h *Handler) HandleOp(err error, operation string) error {
	return h.Handle(err, NewContext(operation))
}

// HandleActor is Handle with a context carrying the acting user.
func (h *Handler) HandleActor(err error, operation, actorID string) error {
	return h.Handle(err, NewActorContext(operation, actorID))
}

func (h *Handler) logBusiness(e *BusinessError, ectx *ErrorContext) {
	h.logger.Warn("business rule violation",
		"error_id", ectx.ErrorID,
		"code", e.Code.String(),
		"kind", e.Kind.String(),
		"operation", ectx.Operation,
		"message", e.Message,
	)

	if fields := ectx.Fields(); len(fields) > 0 {
		attrs := make([]any, 0, 2*len(fields)+2)
		attrs = append(attrs, "error_id", ectx.ErrorID)
		for _, f := range fields {
			attrs = append(attrs, f.Key, f.Value)
		}
		h.logger.Debug("additional error context", attrs...)
	}
}

func (h *Handler) translateVendor(err error, ectx *ErrorContext) error {
	code, _ := VendorCode(err)
	h.logger.Warn("vendor failure",
		"error_id", ectx.ErrorID,
		"vendor_code", code,
		"vendor_state", vendorState(err),
		"operation", ectx.Operation,
		"message", err.Error(),
	)

	translated := h.translator.Translate(err, ectx)

	h.logger.Debug("vendor failure translated",
		"error_id", ectx.ErrorID,
		"code", translated.Code.String(),
		"message", translated.Message,
	)

	return translated
}

func (h *Handler) wrapUnexpected(err error, ectx *ErrorContext) error {
	h.logger.Error("unrecoverable error",
		"error_id", ectx.ErrorID,
		"operation", ectx.Operation,
		"type", fmt.Sprintf("%T", err),
		"error", err,
	)

	return &BoundaryError{ErrorID: ectx.ErrorID, Cause: err}
}

// CreateErrorResponse builds the user-safe response for a failure. The
// message always comes from the provider, keyed by the resolved code;
// unrecognized failures resolve to SYSTEM_ERROR.
func (h *Handler) CreateErrorResponse(err error, ectx *ErrorContext) Response {
	code := CodeSystemError

	var business *BusinessError
	var dataAccess *DataAccessError
	switch {
	case errors.As(err, &business):
		code = business.Code
	case errors.As(err, &dataAccess):
		code = dataAccess.Code
	}

	return Response{
		ErrorID:   ectx.ErrorID,
		Code:      code,
		Message:   h.messages.Message(code),
		Timestamp: ectx.Timestamp,
	}
}

// retryableCodes are the conditions worth retrying: transient storage
// contention and lost connections. Business errors are caller-fixable and
// never retryable.
var retryableCodes = map[Code]bool{
	CodeDBDeadlock:         true,
	CodeDBConnectionFailed: true,
	CodeDBLockTimeout:      true,
}

// IsRetryable reports whether a failure is worth retrying.
func (h *Handler) IsRetryable(err error) bool {
	var dataAccess *DataAccessError
	if errors.As(err, &dataAccess) {
		if dataAccess.Transient {
			return true
		}
		return retryableCodes[dataAccess.Code]
	}

	var business *BusinessError
	if errors.As(err, &business) {
		return retryableCodes[business.Code]
	}

	return false
}
