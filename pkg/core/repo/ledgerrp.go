package repo

import (
	"context"

	"github.com/drivermind/dmweb/pkg/core/model"
	"github.com/google/uuid"
)

type LedgerConnQueryer interface {
	LedgerQueryer
}

type LedgerTxQueryer interface {
	LedgerQueryer
}

// LedgerQueryer lists the earning and expense operations. Child rows
// are keyed by their parent work day; deletions are additionally
// scoped to the owning user since the child tables carry no user
// column of their own.
type LedgerQueryer interface {
	AddEarning(ctx context.Context, e model.Earning) (*model.Earning, error)
	AddExpense(ctx context.Context, x model.Expense) (*model.Expense, error)

	ListEarnings(ctx context.Context, dayID uuid.UUID) ([]model.Earning, error)
	ListExpenses(ctx context.Context, dayID uuid.UUID) ([]model.Expense, error)

	// EarningsOf and ExpensesOf bulk-fetch the children of a set of
	// days in one query each, so compiling a history report does not
	// degrade into per-day queries.
	EarningsOf(ctx context.Context, dayIDs []uuid.UUID) ([]model.Earning, error)
	ExpensesOf(ctx context.Context, dayIDs []uuid.UUID) ([]model.Expense, error)

	DeleteEarning(ctx context.Context, userID, earningID uuid.UUID) error
	DeleteExpense(ctx context.Context, userID, expenseID uuid.UUID) error

	// DeleteByDay removes all child earnings and expenses of a day,
	// used by the day deletion cascade.
	DeleteByDay(ctx context.Context, dayID uuid.UUID) error
}

type Ledger interface {
	Conn(Conn) LedgerConnQueryer
	Tx(Tx) LedgerTxQueryer
}
