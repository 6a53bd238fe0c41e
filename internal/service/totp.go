package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bhel/hrm/internal/apperr"
	"github.com/pquerna/otp/totp"
)

type SetupTOTPResult struct {
	Secret       string `json:"secret"`
	ProvisionURI string `json:"provision_uri"`
}

// SetupTOTP generates a new TOTP secret and stores it without enabling it.
// The user must confirm with a valid code via EnableTOTP before it takes
// effect at login.
func (s *AuthService) SetupTOTP(ctx context.Context, userID int) (SetupTOTPResult, error) {
	user, err := s.queries.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return SetupTOTPResult{}, s.errs.HandleOp(
				apperr.NewResourceNotFound("user", fmt.Sprint(userID)), "totp.setup")
		}
		return SetupTOTPResult{}, s.errs.HandleOp(err, "totp.setup")
	}

	if user.TOTPEnabled {
		return SetupTOTPResult{}, s.errs.HandleOp(
			apperr.NewInvalidInput("TOTP is already enabled"), "totp.setup")
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      "BHEL HRM",
		AccountName: user.Username,
	})
	if err != nil {
		return SetupTOTPResult{}, s.errs.HandleOp(fmt.Errorf("generating TOTP key: %w", err), "totp.setup")
	}

	secret := key.Secret()
	if err := s.queries.SetUserTOTPSecret(ctx, userID, &secret); err != nil {
		return SetupTOTPResult{}, s.errs.HandleOp(err, "totp.setup")
	}

	s.logger.Info("TOTP setup initiated", "user_id", userID)
	return SetupTOTPResult{Secret: secret, ProvisionURI: key.URL()}, nil
}

// EnableTOTP verifies the code against the stored secret and switches TOTP on.
func (s *AuthService) EnableTOTP(ctx context.Context, userID int, code string) error {
	user, err := s.queries.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return s.errs.HandleOp(
				apperr.NewResourceNotFound("user", fmt.Sprint(userID)), "totp.enable")
		}
		return s.errs.HandleOp(err, "totp.enable")
	}

	if user.TOTPEnabled {
		return s.errs.HandleOp(apperr.NewInvalidInput("TOTP is already enabled"), "totp.enable")
	}
	if user.TOTPSecret == nil {
		return s.errs.HandleOp(apperr.NewInvalidInput("TOTP has not been set up yet"), "totp.enable")
	}
	if !totp.Validate(code, *user.TOTPSecret) {
		return s.errs.HandleOp(apperr.NewAuthenticationFailure(user.Username), "totp.enable")
	}

	if err := s.queries.SetUserTOTPEnabled(ctx, userID, true); err != nil {
		return s.errs.HandleOp(err, "totp.enable")
	}

	s.logger.Info("TOTP enabled", "user_id", userID)
	return nil
}

// DisableTOTP verifies the code and clears the secret.
func (s *AuthService) DisableTOTP(ctx context.Context, userID int, code string) error {
	user, err := s.queries.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return s.errs.HandleOp(
				apperr.NewResourceNotFound("user", fmt.Sprint(userID)), "totp.disable")
		}
		return s.errs.HandleOp(err, "totp.disable")
	}

	if !user.TOTPEnabled || user.TOTPSecret == nil {
		return s.errs.HandleOp(apperr.NewInvalidInput("TOTP is not enabled"), "totp.disable")
	}
	if !totp.Validate(code, *user.TOTPSecret) {
		return s.errs.HandleOp(apperr.NewAuthenticationFailure(user.Username), "totp.disable")
	}

	if err := s.queries.SetUserTOTPSecret(ctx, userID, nil); err != nil {
		return s.errs.HandleOp(err, "totp.disable")
	}
	if err := s.queries.SetUserTOTPEnabled(ctx, userID, false); err != nil {
		return s.errs.HandleOp(err, "totp.disable")
	}

	s.logger.Info("TOTP disabled", "user_id", userID)
	return nil
}
