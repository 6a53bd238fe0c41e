package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/bhel/hrm/internal/apperr"
	"github.com/bhel/hrm/internal/model"
	"github.com/bhel/hrm/internal/service"
)

const (
	userIDKey   contextKey = "user_id"
	usernameKey contextKey = "username"
	roleIDKey   contextKey = "role_id"
)

// Authenticate extracts the session token from the cookie and validates it.
// If valid, it injects user info into the request context.
// It does NOT reject unauthenticated requests - use RequireAuth for that.
func Authenticate(authService *service.AuthService, cookieName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(cookieName)
			if err != nil {
				// No cookie = anonymous request, continue without user context
				next.ServeHTTP(w, r)
				return
			}

			session, err := authService.ValidateSession(r.Context(), cookie.Value)
			if err != nil {
				// Invalid session = treat as anonymous
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			ctx = context.WithValue(ctx, userIDKey, session.UserID)
			ctx = context.WithValue(ctx, usernameKey, session.Username)
			ctx = context.WithValue(ctx, roleIDKey, session.RoleID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth rejects unauthenticated requests with 401.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetUserID(r.Context()) == nil {
			model.WriteError(w, apperr.NewAuthenticationFailure("anonymous"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireHRStaff rejects requests from non-HR users with 403.
func RequireHRStaff(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetRoleID(r.Context()) != model.RoleHRStaff {
			writeStatus(w, http.StatusForbidden, "FORBIDDEN", "HR staff access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeStatus(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(model.APIResponse{Error: &model.APIError{Code: code, Message: message}})
}

// GetUserID returns the authenticated user's ID from context, or nil if not authenticated.
func GetUserID(ctx context.Context) *int {
	v, ok := ctx.Value(userIDKey).(int)
	if !ok {
		return nil
	}
	return &v
}

// GetUsername returns the authenticated user's username from context.
func GetUsername(ctx context.Context) string {
	v, _ := ctx.Value(usernameKey).(string)
	return v
}

// GetRoleID returns the authenticated user's role id from context, or 0.
func GetRoleID(ctx context.Context) int {
	v, _ := ctx.Value(roleIDKey).(int)
	return v
}
