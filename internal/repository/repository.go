package repository

import "github.com/bhel/hrm/internal/database"

// Queries bundles all data access. Every method borrows its connection from
// the transaction manager, so calls made inside a unit of work share its
// connection and calls made outside get an independent one.
type Queries struct {
	db *database.Manager
}

func New(db *database.Manager) *Queries {
	return &Queries{db: db}
}
