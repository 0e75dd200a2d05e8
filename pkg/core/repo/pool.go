// Package repo declares the storage interfaces which the use cases
// layer depends on, keeping it independent of the concrete database
// adapter. The Pool, Conn, and Tx interfaces model the connection
// life cycle while the per-entity interfaces (Workdays, Ledger,
// Vehicles, Schema) list the domain queries.
package repo

import "context"

// ConnHandler runs a unit of work over the connection which is passed
// to it.
type ConnHandler func(context.Context, Conn) error

// Pool is a database connection pool with an explicitly constructed
// lifecycle: created at startup, passed to the use cases, and closed
// at shutdown. Use cases borrow connections through Conn instead of
// holding any global handle.
type Pool interface {
	Conn(ctx context.Context, handler ConnHandler) error

	// Close closes all connections of this connection pool and returns
	// any occurred error.
	Close() error
}
