package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/bhel/hrm/internal/apperr"
	"github.com/bhel/hrm/internal/config"
	"github.com/bhel/hrm/internal/model"
	"github.com/bhel/hrm/internal/server/middleware"
	"github.com/bhel/hrm/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
	authCfg     *config.AuthConfig
}

func NewAuthHandler(authService *service.AuthService, authCfg *config.AuthConfig) *AuthHandler {
	return &AuthHandler{authService: authService, authCfg: authCfg}
}

type registerRequest struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	ICPassport string `json:"ic_passport"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	TOTPCode string `json:"totp_code"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		model.WriteError(w, apperr.NewInvalidInput("invalid request body"))
		return
	}

	user, err := h.authService.Register(r.Context(), service.RegisterInput{
		Username:   req.Username,
		Password:   req.Password,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		ICPassport: req.ICPassport,
	})
	if err != nil {
		model.WriteError(w, err)
		return
	}

	model.JSON(w, http.StatusCreated, user)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		model.WriteError(w, apperr.NewInvalidInput("invalid request body"))
		return
	}

	user, session, err := h.authService.Login(r.Context(), service.LoginInput{
		Username: req.Username,
		Password: req.Password,
		TOTPCode: req.TOTPCode,
	})
	if err != nil {
		model.WriteError(w, err)
		return
	}

	h.setSessionCookie(w, session)
	model.JSON(w, http.StatusOK, user)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(h.authCfg.CookieName)
	if err != nil {
		model.JSON(w, http.StatusOK, map[string]string{"message": "logged out"})
		return
	}

	if err := h.authService.Logout(r.Context(), cookie.Value); err != nil {
		model.WriteError(w, err)
		return
	}

	h.clearSessionCookie(w)
	model.JSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == nil {
		model.WriteError(w, apperr.NewAuthenticationFailure("anonymous"))
		return
	}

	user, err := h.authService.GetCurrentUser(r.Context(), *userID)
	if err != nil {
		model.WriteError(w, err)
		return
	}

	model.JSON(w, http.StatusOK, user)
}

type totpCodeRequest struct {
	Code string `json:"code"`
}

func (h *AuthHandler) SetupTOTP(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == nil {
		model.WriteError(w, apperr.NewAuthenticationFailure("anonymous"))
		return
	}

	result, err := h.authService.SetupTOTP(r.Context(), *userID)
	if err != nil {
		model.WriteError(w, err)
		return
	}

	model.JSON(w, http.StatusOK, result)
}

func (h *AuthHandler) EnableTOTP(w http.ResponseWriter, r *http.Request) {
	h.totpToggle(w, r, h.authService.EnableTOTP, "TOTP enabled")
}

func (h *AuthHandler) DisableTOTP(w http.ResponseWriter, r *http.Request) {
	h.totpToggle(w, r, h.authService.DisableTOTP, "TOTP disabled")
}

func (h *AuthHandler) totpToggle(
	w http.ResponseWriter,
	r *http.Request,
	fn func(context.Context, int, string) error,
	message string,
) {
	userID := middleware.GetUserID(r.Context())
	if userID == nil {
		model.WriteError(w, apperr.NewAuthenticationFailure("anonymous"))
		return
	}

	var req totpCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		model.WriteError(w, apperr.NewInvalidInput("invalid request body"))
		return
	}

	if err := fn(r.Context(), *userID, req.Code); err != nil {
		model.WriteError(w, err)
		return
	}

	model.JSON(w, http.StatusOK, map[string]string{"message": message})
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, session service.SessionInfo) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.authCfg.CookieName,
		Value:    session.Token,
		Path:     "/",
		Domain:   h.authCfg.CookieDomain,
		Expires:  session.ExpiresAt,
		MaxAge:   int(time.Until(session.ExpiresAt).Seconds()),
		Secure:   h.authCfg.CookieSecure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.authCfg.CookieName,
		Value:    "",
		Path:     "/",
		Domain:   h.authCfg.CookieDomain,
		MaxAge:   -1,
		Secure:   h.authCfg.CookieSecure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
