package repo

import "context"

// Queryer runs raw SQL statements over a connection or transaction.
// The repository adapters mostly use their framework-specific access
// path instead; this interface covers schema initialization and the
// few statements which are simpler to express directly.
type Queryer interface {
	Exec(ctx context.Context, sql string, args ...any) (count int64, err error)
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
}

// Rows is the result set of a Queryer.Query call. It must be closed
// before the owning Queryer may run another statement.
type Rows interface {
	Close()
	Err() error
	Next() bool
	Scan(dest ...any) error
	Values() ([]any, error)
}
