package apperr

import "time"

// Response is the only error information ever shown to an end user or sent
// across the remote boundary: a correlation id, a catalog code, and the
// catalog-resolved message. Never the raw vendor text or a stack trace.
type Response struct {
	ErrorID   string    `json:"error_id"`
	Code      Code      `json:"code"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}
