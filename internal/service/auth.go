package service

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bhel/hrm/internal/apperr"
	"github.com/bhel/hrm/internal/config"
	"github.com/bhel/hrm/internal/database"
	"github.com/bhel/hrm/internal/model"
	"github.com/bhel/hrm/internal/repository"
	"github.com/google/uuid"
	"github.com/pquerna/otp/totp"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	queries *repository.Queries
	db      *database.Manager
	rdb     *redis.Client
	cfg     *config.AuthConfig
	errs    *apperr.Handler
	logger  *slog.Logger
}

func NewAuthService(
	queries *repository.Queries,
	db *database.Manager,
	rdb *redis.Client,
	cfg *config.AuthConfig,
	errs *apperr.Handler,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		queries: queries,
		db:      db,
		rdb:     rdb,
		cfg:     cfg,
		errs:    errs,
		logger:  logger,
	}
}

type RegisterInput struct {
	Username   string
	Password   string
	FirstName  string
	LastName   string
	ICPassport string
	RoleID     int
}

type LoginInput struct {
	Username string
	Password string
	TOTPCode string
}

type SessionInfo struct {
	Token     string
	ExpiresAt time.Time
}

type UserResponse struct {
	ID          int    `json:"id"`
	Username    string `json:"username"`
	RoleID      int    `json:"role_id"`
	TOTPEnabled bool   `json:"totp_enabled"`
}

func userToResponse(u model.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		RoleID:      u.RoleID,
		TOTPEnabled: u.TOTPEnabled,
	}
}

// Register creates a user account and its employee record in a single unit
// of work.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (UserResponse, error) {
	ectx := apperr.NewContext("user.registration").With("username", input.Username)

	if err := validateRegisterInput(input); err != nil {
		return UserResponse{}, s.errs.Handle(err, ectx)
	}

	txCtx, err := s.db.Begin(ctx)
	if err != nil {
		return UserResponse{}, s.errs.Handle(err, ectx)
	}
	defer s.db.Rollback(txCtx)

	// Check for existing username before hitting the unique index, so the
	// caller gets a business failure rather than a translated vendor one.
	_, err = s.queries.GetUserByUsername(txCtx, input.Username)
	if err == nil {
		return UserResponse{}, s.errs.Handle(apperr.NewDuplicateUser(input.Username), ectx)
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return UserResponse{}, s.errs.Handle(err, ectx)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.cfg.BcryptCost)
	if err != nil {
		return UserResponse{}, s.errs.Handle(fmt.Errorf("hashing password: %w", err), ectx)
	}

	roleID := input.RoleID
	if roleID == 0 {
		roleID = model.RoleEmployee
	}

	userID, err := s.queries.CreateUser(txCtx, input.Username, string(hash), roleID)
	if err != nil {
		return UserResponse{}, s.errs.Handle(err, ectx)
	}

	if _, err := s.queries.CreateEmployee(txCtx, model.Employee{
		UserID:     userID,
		FirstName:  input.FirstName,
		LastName:   input.LastName,
		ICPassport: input.ICPassport,
	}); err != nil {
		return UserResponse{}, s.errs.Handle(err, ectx)
	}

	if err := s.db.Commit(txCtx); err != nil {
		return UserResponse{}, s.errs.Handle(err, ectx)
	}

	s.logger.Info("user registered", "user_id", userID, "username", input.Username)
	return UserResponse{ID: userID, Username: input.Username, RoleID: roleID}, nil
}

// Login authenticates a user and opens a session. Accounts with TOTP enabled
// must supply a valid code alongside their credentials.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (UserResponse, SessionInfo, error) {
	ectx := apperr.NewContext("user.login").With("username", input.Username)

	if input.Username == "" || input.Password == "" {
		return UserResponse{}, SessionInfo{}, s.errs.Handle(
			apperr.NewInvalidInput("username and password are required"), ectx)
	}

	user, err := s.queries.GetUserByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return UserResponse{}, SessionInfo{}, s.errs.Handle(
				apperr.NewAuthenticationFailure(input.Username), ectx)
		}
		return UserResponse{}, SessionInfo{}, s.errs.Handle(err, ectx)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return UserResponse{}, SessionInfo{}, s.errs.Handle(
			apperr.NewAuthenticationFailure(input.Username), ectx)
	}

	if user.TOTPEnabled {
		if user.TOTPSecret == nil || !totp.Validate(input.TOTPCode, *user.TOTPSecret) {
			return UserResponse{}, SessionInfo{}, s.errs.Handle(
				apperr.NewAuthenticationFailure(input.Username), ectx)
		}
	}

	session, err := s.createSession(ctx, user.ID)
	if err != nil {
		return UserResponse{}, SessionInfo{}, s.errs.Handle(err, ectx)
	}

	s.logger.Info("user logged in", "user_id", user.ID, "username", user.Username)
	return userToResponse(user), session, nil
}

// Logout invalidates the session in both the store and the cache.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	tokenHash := hashToken(token)

	if err := s.queries.DeleteSession(ctx, tokenHash); err != nil {
		return s.errs.HandleOp(err, "user.logout")
	}
	s.rdb.Del(ctx, redisSessionKey(tokenHash))
	return nil
}

// ValidateSession resolves a session token to its user row, consulting the
// cache before the store. The store stays the source of truth: a cache miss
// or an unusable entry falls through to MySQL, and a fresh row is cached on
// the way back.
func (s *AuthService) ValidateSession(ctx context.Context, token string) (repository.SessionRow, error) {
	tokenHash := hashToken(token)
	key := redisSessionKey(tokenHash)

	if data, err := s.rdb.Get(ctx, key).Bytes(); err == nil {
		if row, err := decodeSessionRow(data); err == nil && time.Now().Before(row.ExpiresAt) {
			return row, nil
		}
		// Stale or undecodable entry; drop it and consult the store.
		s.rdb.Del(ctx, key)
	}

	row, err := s.queries.GetSessionByTokenHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.rdb.Del(ctx, key)
			return repository.SessionRow{}, apperr.NewAuthenticationFailure("session")
		}
		return repository.SessionRow{}, s.errs.HandleOp(err, "session.validate")
	}

	s.cacheSessionRow(ctx, row)
	return row, nil
}

func (s *AuthService) cacheSessionRow(ctx context.Context, row repository.SessionRow) {
	ttl := sessionCacheTTL(row.ExpiresAt, s.cfg.SessionTTL)
	if ttl <= 0 {
		return
	}
	data, err := encodeSessionRow(row)
	if err != nil {
		s.logger.Warn("encoding session cache entry", "error", err)
		return
	}
	if err := s.rdb.Set(ctx, redisSessionKey(row.TokenHash), data, ttl).Err(); err != nil {
		s.logger.Warn("writing session cache entry", "error", err)
	}
}

// GetCurrentUser fetches the authenticated user's account.
func (s *AuthService) GetCurrentUser(ctx context.Context, userID int) (UserResponse, error) {
	user, err := s.queries.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return UserResponse{}, s.errs.HandleOp(
				apperr.NewResourceNotFound("user", fmt.Sprint(userID)), "user.get")
		}
		return UserResponse{}, s.errs.HandleOp(err, "user.get")
	}
	return userToResponse(user), nil
}

func (s *AuthService) createSession(ctx context.Context, userID int) (SessionInfo, error) {
	token := uuid.NewString()
	tokenHash := hashToken(token)
	expiresAt := time.Now().Add(s.cfg.SessionTTL)

	if err := s.queries.CreateSession(ctx, model.Session{
		TokenHash: tokenHash,
		UserID:    userID,
		ExpiresAt: expiresAt,
	}); err != nil {
		return SessionInfo{}, fmt.Errorf("storing session: %w", err)
	}

	// The cache fills on the first validation, once the joined user row is
	// available.
	return SessionInfo{Token: token, ExpiresAt: expiresAt}, nil
}

func validateRegisterInput(input RegisterInput) error {
	if input.Username == "" {
		return apperr.NewInvalidInput("username is required")
	}
	if len(input.Username) < 3 || len(input.Username) > 50 {
		return apperr.NewInvalidInput("username must be 3-50 characters")
	}
	if len(input.Password) < 8 {
		return apperr.NewInvalidInput("password must be at least 8 characters")
	}
	if input.FirstName == "" || input.LastName == "" {
		return apperr.NewInvalidInput("first and last name are required")
	}
	if input.ICPassport == "" {
		return apperr.NewInvalidInput("IC/passport number is required")
	}
	return nil
}

func hashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return hex.EncodeToString(h[:])
}

func redisSessionKey(tokenHash string) string {
	return "session:" + tokenHash
}

func encodeSessionRow(row repository.SessionRow) ([]byte, error) {
	return json.Marshal(row)
}

func decodeSessionRow(data []byte) (repository.SessionRow, error) {
	var row repository.SessionRow
	err := json.Unmarshal(data, &row)
	return row, err
}

// sessionCacheTTL bounds a cache entry's lifetime by both the session's
// remaining validity and the configured session TTL.
func sessionCacheTTL(expiresAt time.Time, max time.Duration) time.Duration {
	ttl := time.Until(expiresAt)
	if ttl > max {
		ttl = max
	}
	return ttl
}
