package database

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
)

// A minimal database/sql driver so manager lifecycle tests run without a
// MySQL server. Every statement succeeds; transaction verbs are counted.

type fakeState struct {
	mu        sync.Mutex
	begins    int
	commits   int
	rollbacks int
	commitErr error
}

func (s *fakeState) counts() (begins, commits, rollbacks int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.begins, s.commits, s.rollbacks
}

var currentState *fakeState

type fakeDriver struct{}

func (fakeDriver) Open(string) (driver.Conn, error) {
	return &fakeConn{st: currentState}, nil
}

type fakeConn struct{ st *fakeState }

func (c *fakeConn) Prepare(string) (driver.Stmt, error) { return &fakeStmt{}, nil }
func (c *fakeConn) Close() error                        { return nil }

func (c *fakeConn) Begin() (driver.Tx, error) {
	c.st.mu.Lock()
	c.st.begins++
	c.st.mu.Unlock()
	return &fakeTx{st: c.st}, nil
}

func (c *fakeConn) ExecContext(context.Context, string, []driver.NamedValue) (driver.Result, error) {
	return driver.RowsAffected(1), nil
}

func (c *fakeConn) QueryContext(context.Context, string, []driver.NamedValue) (driver.Rows, error) {
	return &fakeRows{}, nil
}

type fakeTx struct{ st *fakeState }

func (t *fakeTx) Commit() error {
	t.st.mu.Lock()
	defer t.st.mu.Unlock()
	if t.st.commitErr != nil {
		return t.st.commitErr
	}
	t.st.commits++
	return nil
}

func (t *fakeTx) Rollback() error {
	t.st.mu.Lock()
	defer t.st.mu.Unlock()
	t.st.rollbacks++
	return nil
}

type fakeStmt struct{}

func (fakeStmt) Close() error  { return nil }
func (fakeStmt) NumInput() int { return -1 }
func (fakeStmt) Exec([]driver.Value) (driver.Result, error) {
	return driver.RowsAffected(1), nil
}
func (fakeStmt) Query([]driver.Value) (driver.Rows, error) { return &fakeRows{}, nil }

type fakeRows struct{}

func (fakeRows) Columns() []string         { return nil }
func (fakeRows) Close() error              { return nil }
func (fakeRows) Next([]driver.Value) error { return io.EOF }

func init() {
	sql.Register("hrmtest", fakeDriver{})
}

func newTestManager(t *testing.T) (*Manager, *fakeState) {
	t.Helper()
	st := &fakeState{}
	currentState = st

	db, err := sql.Open("hrmtest", "")
	if err != nil {
		t.Fatalf("opening fake database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewManager(db, logger), st
}

func TestBeginTwiceFails(t *testing.T) {
	m, _ := newTestManager(t)

	txCtx, err := m.Begin(context.Background())
	if err != nil {
		t.Fatalf("first Begin: %v", err)
	}
	defer m.Rollback(txCtx)

	if _, err := m.Begin(txCtx); !errors.Is(err, ErrTxAlreadyActive) {
		t.Fatalf("second Begin = %v, want ErrTxAlreadyActive", err)
	}
}

func TestCommitReleasesUnitOfWork(t *testing.T) {
	m, st := newTestManager(t)

	txCtx, err := m.Begin(context.Background())
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if !m.InTransaction(txCtx) {
		t.Fatal("InTransaction = false inside a unit of work")
	}

	if err := m.Commit(txCtx); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	if m.InTransaction(txCtx) {
		t.Error("InTransaction = true after commit")
	}
	if _, commits, _ := st.counts(); commits != 1 {
		t.Errorf("commits = %d, want 1", commits)
	}

	// A new connection after commit must be an independent, non-transactional one.
	conn, err := m.Connection(txCtx)
	if err != nil {
		t.Fatalf("Connection after commit: %v", err)
	}
	if conn.owned == nil {
		t.Error("Connection after commit still returns the transactional handle")
	}
	m.Release(conn)
}

func TestRollbackReleasesUnitOfWork(t *testing.T) {
	m, st := newTestManager(t)

	txCtx, err := m.Begin(context.Background())
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}

	m.Rollback(txCtx)

	if m.InTransaction(txCtx) {
		t.Error("InTransaction = true after rollback")
	}
	if _, _, rollbacks := st.counts(); rollbacks != 1 {
		t.Errorf("rollbacks = %d, want 1", rollbacks)
	}
}

func TestCommitAndRollbackAreNoopsWithoutTransaction(t *testing.T) {
	m, st := newTestManager(t)
	ctx := context.Background()

	if err := m.Commit(ctx); err != nil {
		t.Errorf("Commit without transaction = %v, want nil", err)
	}
	m.Rollback(ctx)

	if _, commits, rollbacks := st.counts(); commits != 0 || rollbacks != 0 {
		t.Errorf("commits=%d rollbacks=%d, want 0 0", commits, rollbacks)
	}
}

func TestDeferredRollbackAfterCommitIsFree(t *testing.T) {
	m, st := newTestManager(t)

	txCtx, err := m.Begin(context.Background())
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	defer m.Rollback(txCtx)

	if err := m.Commit(txCtx); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	m.Rollback(txCtx) // same as the defer above

	if _, commits, rollbacks := st.counts(); commits != 1 || rollbacks != 0 {
		t.Errorf("commits=%d rollbacks=%d, want 1 0", commits, rollbacks)
	}
}

func TestCommitFailureStillReleases(t *testing.T) {
	m, st := newTestManager(t)

	txCtx, err := m.Begin(context.Background())
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}

	st.mu.Lock()
	st.commitErr = errors.New("server has gone away")
	st.mu.Unlock()

	if err := m.Commit(txCtx); err == nil {
		t.Fatal("Commit = nil, want error")
	}
	if m.InTransaction(txCtx) {
		t.Error("unit of work still active after failed commit")
	}
}

func TestConnectionInsideTransactionBorrowsIt(t *testing.T) {
	m, _ := newTestManager(t)

	txCtx, err := m.Begin(context.Background())
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	defer m.Rollback(txCtx)

	conn, err := m.Connection(txCtx)
	if err != nil {
		t.Fatalf("Connection: %v", err)
	}
	if conn.owned != nil {
		t.Error("Connection inside a transaction returned an independent connection")
	}

	// Release must not close a borrowed transactional handle.
	m.Release(conn)
	if !m.InTransaction(txCtx) {
		t.Error("Release closed the transactional connection")
	}
}

func TestBeginIsIsolatedPerContext(t *testing.T) {
	m, st := newTestManager(t)

	ctxA, err := m.Begin(context.Background())
	if err != nil {
		t.Fatalf("Begin A: %v", err)
	}
	ctxB, err := m.Begin(context.Background())
	if err != nil {
		t.Fatalf("Begin B: %v", err)
	}

	m.Rollback(ctxA)
	if !m.InTransaction(ctxB) {
		t.Error("rolling back one unit of work affected another")
	}
	if err := m.Commit(ctxB); err != nil {
		t.Fatalf("Commit B: %v", err)
	}

	if begins, commits, rollbacks := st.counts(); begins != 2 || commits != 1 || rollbacks != 1 {
		t.Errorf("begins=%d commits=%d rollbacks=%d, want 2 1 1", begins, commits, rollbacks)
	}
}
