package repo

import "context"

// TxHandler runs a unit of work within the transaction which is
// passed to it. A non-nil error causes the caller to roll back.
type TxHandler func(context.Context, Tx) error

// Conn is a single database connection, obtained from a Pool. It can
// run statements with auto-committed transactions directly or start
// an explicit transaction with Tx.
type Conn interface {
	Queryer
	Tx(ctx context.Context, handler TxHandler) error

	// IsConn method prevents a non-Conn object (such as a Tx) to
	// mistakenly implement the Conn interface.
	IsConn()
}
