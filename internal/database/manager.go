package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
)

// ErrTxAlreadyActive is returned by Begin when the supplied context already
// carries a live unit of work. This is a programming error at the call site,
// not a recoverable condition.
var ErrTxAlreadyActive = errors.New("transaction already active in this context")

// Querier is the query surface repositories run against. *sql.Tx and
// *sql.Conn both satisfy it.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Conn is a borrowed query handle. Inside a unit of work it aliases the
// transaction and owns nothing; outside one it owns a dedicated connection
// that Release must close.
type Conn struct {
	Querier
	owned *sql.Conn
}

// unitOfWork is the per-call transactional state. It travels inside a
// context.Context and is only ever touched by the call chain that owns that
// context, so no locking is needed.
type unitOfWork struct {
	conn *sql.Conn
	tx   *sql.Tx
	done bool
}

type txKey struct{}

// Manager owns the lifecycle of transactional units of work against the
// MySQL store. A unit of work is carried in the request context from Begin
// to Commit or Rollback; service code borrows its connection only through
// Connection.
type Manager struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewManager wraps an opened database handle and bootstraps the schema.
// Bootstrap failure is a degraded start: it is logged and the server keeps
// running, matching the behavior operators rely on when the database comes
// up after the application.
func NewManager(db *sql.DB, logger *slog.Logger) *Manager {
	m := &Manager{db: db, logger: logger}
	if err := m.initSchema(context.Background()); err != nil {
		logger.Error("FATAL: database schema initialization failed", "error", err)
	} else {
		logger.Info("database schema initialized")
	}
	return m
}

func activeUnit(ctx context.Context) *unitOfWork {
	uow, _ := ctx.Value(txKey{}).(*unitOfWork)
	if uow != nil && !uow.done {
		return uow
	}
	return nil
}

// Begin starts a unit of work and returns a derived context carrying it.
// Calling Begin on a context that already carries a live unit of work fails
// with ErrTxAlreadyActive.
func (m *Manager) Begin(ctx context.Context) (context.Context, error) {
	if activeUnit(ctx) != nil {
		return ctx, ErrTxAlreadyActive
	}

	conn, err := m.db.Conn(ctx)
	if err != nil {
		return ctx, fmt.Errorf("acquiring transaction connection: %w", err)
	}

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		conn.Close()
		return ctx, fmt.Errorf("beginning transaction: %w", err)
	}

	m.logger.Debug("transaction started")
	return context.WithValue(ctx, txKey{}, &unitOfWork{conn: conn, tx: tx}), nil
}

// Commit commits the context's unit of work. It is a no-op when none is
// active. The dedicated connection is released whether or not the commit
// succeeds.
func (m *Manager) Commit(ctx context.Context) error {
	uow := activeUnit(ctx)
	if uow == nil {
		return nil
	}
	defer m.releaseUnit(uow)

	if err := uow.tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	m.logger.Debug("transaction committed")
	return nil
}

// Rollback rolls back the context's unit of work. It is a no-op when none is
// active, and a rollback failure is logged rather than propagated: the
// caller is already on an error path. The dedicated connection is released
// unconditionally, so a deferred Rollback after Commit is safe and free.
func (m *Manager) Rollback(ctx context.Context) {
	uow := activeUnit(ctx)
	if uow == nil {
		return
	}
	defer m.releaseUnit(uow)

	if err := uow.tx.Rollback(); err != nil {
		m.logger.Error("transaction rollback failed", "error", err)
		return
	}
	m.logger.Warn("transaction rolled back")
}

func (m *Manager) releaseUnit(uow *unitOfWork) {
	uow.done = true
	if err := uow.conn.Close(); err != nil {
		m.logger.Error("closing transaction connection", "error", err)
	}
}

// InTransaction reports whether the context carries a live unit of work.
func (m *Manager) InTransaction(ctx context.Context) bool {
	return activeUnit(ctx) != nil
}

// Connection returns the active unit of work's query handle when one is
// carried by the context, otherwise a dedicated single-use connection that
// the caller must hand back through Release.
func (m *Manager) Connection(ctx context.Context) (*Conn, error) {
	if uow := activeUnit(ctx); uow != nil {
		return &Conn{Querier: uow.tx}, nil
	}

	conn, err := m.db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquiring connection: %w", err)
	}
	return &Conn{Querier: conn, owned: conn}, nil
}

// Release closes conn only when it is not part of an active unit of work;
// transactional connections are closed by Commit or Rollback, never here.
func (m *Manager) Release(conn *Conn) {
	if conn == nil || conn.owned == nil {
		return
	}
	if err := conn.owned.Close(); err != nil {
		m.logger.Error("closing connection", "error", err)
	}
}

// DB exposes the underlying pool for health checks.
func (m *Manager) DB() *sql.DB {
	return m.db
}
