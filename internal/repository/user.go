package repository

import (
	"context"
	"time"

	"github.com/bhel/hrm/internal/model"
)

const getUserByUsername = `
SELECT id, username, password_hash, role_id, totp_secret, totp_enabled
FROM users WHERE username = ?`

func (q *Queries) GetUserByUsername(ctx context.Context, username string) (model.User, error) {
	conn, err := q.db.Connection(ctx)
	if err != nil {
		return model.User{}, err
	}
	defer q.db.Release(conn)

	var u model.User
	err = conn.QueryRowContext(ctx, getUserByUsername, username).
		Scan(&u.ID, &u.Username, &u.PasswordHash, &u.RoleID, &u.TOTPSecret, &u.TOTPEnabled)
	return u, err
}

const getUserByID = `
SELECT id, username, password_hash, role_id, totp_secret, totp_enabled
FROM users WHERE id = ?`

func (q *Queries) GetUserByID(ctx context.Context, id int) (model.User, error) {
	conn, err := q.db.Connection(ctx)
	if err != nil {
		return model.User{}, err
	}
	defer q.db.Release(conn)

	var u model.User
	err = conn.QueryRowContext(ctx, getUserByID, id).
		Scan(&u.ID, &u.Username, &u.PasswordHash, &u.RoleID, &u.TOTPSecret, &u.TOTPEnabled)
	return u, err
}

const createUser = `
INSERT INTO users (username, password_hash, role_id) VALUES (?, ?, ?)`

func (q *Queries) CreateUser(ctx context.Context, username, passwordHash string, roleID int) (int, error) {
	conn, err := q.db.Connection(ctx)
	if err != nil {
		return 0, err
	}
	defer q.db.Release(conn)

	res, err := conn.ExecContext(ctx, createUser, username, passwordHash, roleID)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	return int(id), err
}

const setUserTOTPSecret = `
UPDATE users SET totp_secret = ?, totp_enabled = FALSE WHERE id = ?`

// SetUserTOTPSecret stores a new secret (not yet enabled) or clears it when
// secret is nil.
func (q *Queries) SetUserTOTPSecret(ctx context.Context, id int, secret *string) error {
	conn, err := q.db.Connection(ctx)
	if err != nil {
		return err
	}
	defer q.db.Release(conn)

	_, err = conn.ExecContext(ctx, setUserTOTPSecret, secret, id)
	return err
}

const setUserTOTPEnabled = `
UPDATE users SET totp_enabled = ? WHERE id = ?`

func (q *Queries) SetUserTOTPEnabled(ctx context.Context, id int, enabled bool) error {
	conn, err := q.db.Connection(ctx)
	if err != nil {
		return err
	}
	defer q.db.Release(conn)

	_, err = conn.ExecContext(ctx, setUserTOTPEnabled, enabled, id)
	return err
}

const createSession = `
INSERT INTO sessions (token_hash, user_id, expires_at) VALUES (?, ?, ?)`

func (q *Queries) CreateSession(ctx context.Context, s model.Session) error {
	conn, err := q.db.Connection(ctx)
	if err != nil {
		return err
	}
	defer q.db.Release(conn)

	_, err = conn.ExecContext(ctx, createSession, s.TokenHash, s.UserID, s.ExpiresAt)
	return err
}

// SessionRow joins a session with its user for validation in one round trip.
type SessionRow struct {
	TokenHash string
	UserID    int
	Username  string
	RoleID    int
	ExpiresAt time.Time
}

const getSessionByTokenHash = `
SELECT s.token_hash, s.user_id, u.username, u.role_id, s.expires_at
FROM sessions s
JOIN users u ON u.id = s.user_id
WHERE s.token_hash = ? AND s.expires_at > NOW()`

func (q *Queries) GetSessionByTokenHash(ctx context.Context, tokenHash string) (SessionRow, error) {
	conn, err := q.db.Connection(ctx)
	if err != nil {
		return SessionRow{}, err
	}
	defer q.db.Release(conn)

	var row SessionRow
	err = conn.QueryRowContext(ctx, getSessionByTokenHash, tokenHash).
		Scan(&row.TokenHash, &row.UserID, &row.Username, &row.RoleID, &row.ExpiresAt)
	return row, err
}

const deleteSession = `DELETE FROM sessions WHERE token_hash = ?`

func (q *Queries) DeleteSession(ctx context.Context, tokenHash string) error {
	conn, err := q.db.Connection(ctx)
	if err != nil {
		return err
	}
	defer q.db.Release(conn)

	_, err = conn.ExecContext(ctx, deleteSession, tokenHash)
	return err
}

const deleteExpiredSessions = `DELETE FROM sessions WHERE expires_at <= NOW()`

func (q *Queries) DeleteExpiredSessions(ctx context.Context) (int64, error) {
	conn, err := q.db.Connection(ctx)
	if err != nil {
		return 0, err
	}
	defer q.db.Release(conn)

	res, err := conn.ExecContext(ctx, deleteExpiredSessions)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
