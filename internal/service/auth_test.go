package service

import (
	"errors"
	"testing"
	"time"

	"github.com/bhel/hrm/internal/apperr"
	"github.com/bhel/hrm/internal/repository"
)

func TestValidateRegisterInput(t *testing.T) {
	valid := RegisterInput{
		Username:   "jsmith",
		Password:   "correct-horse",
		FirstName:  "John",
		LastName:   "Smith",
		ICPassport: "A1234567",
	}

	if err := validateRegisterInput(valid); err != nil {
		t.Fatalf("valid input rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*RegisterInput)
	}{
		{"missing username", func(in *RegisterInput) { in.Username = "" }},
		{"short username", func(in *RegisterInput) { in.Username = "ab" }},
		{"short password", func(in *RegisterInput) { in.Password = "short" }},
		{"missing first name", func(in *RegisterInput) { in.FirstName = "" }},
		{"missing last name", func(in *RegisterInput) { in.LastName = "" }},
		{"missing ic/passport", func(in *RegisterInput) { in.ICPassport = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)

			err := validateRegisterInput(in)
			if err == nil {
				t.Fatal("expected validation error")
			}

			var business *apperr.BusinessError
			if !errors.As(err, &business) {
				t.Fatalf("expected business error, got %T", err)
			}
			if business.Kind != apperr.InvalidInput {
				t.Fatalf("expected InvalidInput, got %v", business.Kind)
			}
		})
	}
}

func TestHashTokenIsStableAndOpaque(t *testing.T) {
	a := hashToken("session-token")
	b := hashToken("session-token")
	c := hashToken("other-token")

	if a != b {
		t.Fatal("same token must hash identically")
	}
	if a == c {
		t.Fatal("different tokens must hash differently")
	}
	if len(a) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(a))
	}
	if a == "session-token" {
		t.Fatal("hash must not echo the token")
	}
}

func TestRedisSessionKeyNamespacing(t *testing.T) {
	key := redisSessionKey("abc123")
	if key != "session:abc123" {
		t.Fatalf("unexpected key %q", key)
	}
}

func TestSessionCacheEntryRoundTrip(t *testing.T) {
	row := repository.SessionRow{
		TokenHash: "deadbeef",
		UserID:    7,
		Username:  "jsmith",
		RoleID:    2,
		ExpiresAt: time.Now().Add(time.Hour).Truncate(time.Second),
	}

	data, err := encodeSessionRow(row)
	if err != nil {
		t.Fatalf("encoding session row: %v", err)
	}

	got, err := decodeSessionRow(data)
	if err != nil {
		t.Fatalf("decoding session row: %v", err)
	}
	if got.TokenHash != row.TokenHash || got.UserID != row.UserID ||
		got.Username != row.Username || got.RoleID != row.RoleID ||
		!got.ExpiresAt.Equal(row.ExpiresAt) {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, row)
	}
}

func TestDecodeSessionRowRejectsGarbage(t *testing.T) {
	if _, err := decodeSessionRow([]byte("not json")); err == nil {
		t.Fatal("expected decode error for a corrupt cache entry")
	}
}

func TestSessionCacheTTLBounds(t *testing.T) {
	max := 24 * time.Hour

	// A session expiring before the configured TTL caps the entry lifetime.
	short := sessionCacheTTL(time.Now().Add(time.Minute), max)
	if short > time.Minute || short <= 0 {
		t.Fatalf("ttl = %v, want (0, 1m]", short)
	}

	// A long-lived session never outlives the configured TTL.
	long := sessionCacheTTL(time.Now().Add(48*time.Hour), max)
	if long != max {
		t.Fatalf("ttl = %v, want %v", long, max)
	}

	// An expired session yields no cacheable lifetime.
	if expired := sessionCacheTTL(time.Now().Add(-time.Minute), max); expired > 0 {
		t.Fatalf("ttl = %v for an expired session, want <= 0", expired)
	}
}
