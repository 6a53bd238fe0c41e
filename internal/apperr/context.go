package apperr

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Field is one diagnostic key/value attached to an ErrorContext. Fields keep
// their insertion order when logged.
type Field struct {
	Key   string
	Value string
}

// ErrorContext describes the circumstances of one failed operation: what was
// being attempted, a correlation id unique to this call, when it happened,
// and optionally who triggered it. Values are never mutated after
// construction; the With* methods return copies.
type ErrorContext struct {
	Operation string
	ErrorID   string
	Timestamp time.Time
	ActorID   string
	fields    []Field
}

// NewContext creates an ErrorContext for the named operation with a fresh
// correlation id.
func NewContext(operation string) *ErrorContext {
	return &ErrorContext{
		Operation: operation,
		ErrorID:   uuid.NewString(),
		Timestamp: time.Now(),
	}
}

// NewActorContext creates an ErrorContext carrying the acting user.
func NewActorContext(operation, actorID string) *ErrorContext {
	ectx := NewContext(operation)
	ectx.ActorID = actorID
	return ectx
}

// With returns a copy of the context with one extra diagnostic field.
func (c *ErrorContext) With(key, value string) *ErrorContext {
	clone := *c
	clone.fields = make([]Field, len(c.fields), len(c.fields)+1)
	copy(clone.fields, c.fields)
	clone.fields = append(clone.fields, Field{Key: key, Value: value})
	return &clone
}

// Fields returns the diagnostic fields in insertion order.
func (c *ErrorContext) Fields() []Field {
	out := make([]Field, len(c.fields))
	copy(out, c.fields)
	return out
}

func (c *ErrorContext) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "operation=%s error_id=%s", c.Operation, c.ErrorID)
	if c.ActorID != "" {
		fmt.Fprintf(&b, " actor=%s", c.ActorID)
	}
	for _, f := range c.fields {
		fmt.Fprintf(&b, " %s=%s", f.Key, f.Value)
	}
	return b.String()
}
