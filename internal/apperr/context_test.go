package apperr

import "testing"

func TestCatalogMessagesAreUniqueAndNonEmpty(t *testing.T) {
	seen := make(map[Code]bool)
	for _, code := range Codes() {
		if seen[code] {
			t.Errorf("duplicate code %s", code)
		}
		seen[code] = true
		if code.DefaultMessage() == "" {
			t.Errorf("code %s has an empty default message", code)
		}
	}
	if len(seen) != 16 {
		t.Errorf("catalog has %d codes, want 16", len(seen))
	}
}

func TestNewContextGeneratesUniqueIDs(t *testing.T) {
	a := NewContext("employee.get")
	b := NewContext("employee.get")
	if a.ErrorID == "" || a.ErrorID == b.ErrorID {
		t.Errorf("error ids not unique: %q vs %q", a.ErrorID, b.ErrorID)
	}
	if a.Timestamp.IsZero() {
		t.Error("timestamp not set")
	}
}

func TestContextWithDoesNotMutateOriginal(t *testing.T) {
	base := NewActorContext("leave.apply", "jdoe")
	derived := base.With("employee_id", "7").With("leave_type", "annual")

	if len(base.Fields()) != 0 {
		t.Errorf("original context mutated, has %d fields", len(base.Fields()))
	}

	fields := derived.Fields()
	if len(fields) != 2 {
		t.Fatalf("derived context has %d fields, want 2", len(fields))
	}
	if fields[0].Key != "employee_id" || fields[1].Key != "leave_type" {
		t.Errorf("fields out of insertion order: %v", fields)
	}
	if derived.ActorID != "jdoe" {
		t.Errorf("actor id = %q, want jdoe", derived.ActorID)
	}
}
