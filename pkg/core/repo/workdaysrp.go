package repo

import (
	"context"
	"errors"
	"time"

	"github.com/drivermind/dmweb/pkg/core/model"
	"github.com/google/uuid"
)

// ErrDuplicateDay is reported by Workdays.Create when a work day row
// already exists for the same (user, date) pair. The storage layer's
// unique index is the only enforcement point of that invariant; this
// error is how its violation surfaces to the use cases layer, which
// then resolves it by adoption, resumption, or conflict.
var ErrDuplicateDay = errors.New("a work day already exists for this date")

type WorkdaysConnQueryer interface {
	WorkdaysQueryer
}

type WorkdaysTxQueryer interface {
	WorkdaysQueryer
}

// WorkdaysQueryer lists the work day operations. All reads and
// mutations are scoped to the owning user, mirroring the row-level
// policies the hosted deployment relies on.
type WorkdaysQueryer interface {
	// Create inserts day as a new row, returning the stored row.
	// ErrDuplicateDay is returned when a row for the same user and
	// date exists already.
	Create(ctx context.Context, day model.WorkDay) (*model.WorkDay, error)

	// Get returns the day with the given id, owned by userID.
	Get(ctx context.Context, userID, dayID uuid.UUID) (*model.WorkDay, error)

	// FindByDate returns the user's day for the given calendar date
	// regardless of its status, or nil if no such day exists.
	FindByDate(ctx context.Context, userID uuid.UUID, date time.Time) (*model.WorkDay, error)

	// FindOpen returns the user's open day for the given calendar
	// date, or nil if no day is open.
	FindOpen(ctx context.Context, userID uuid.UUID, date time.Time) (*model.WorkDay, error)

	// Adopt binds vehicleID to an existing day, resets its starting
	// odometer, and forces it open.
	Adopt(ctx context.Context, dayID, vehicleID uuid.UUID, kmStart float64) (*model.WorkDay, error)

	// Close sets the day's status to closed and records the ending
	// odometer reading.
	Close(ctx context.Context, userID, dayID uuid.UUID, kmEnd float64) (*model.WorkDay, error)

	// Reopen sets the day's status back to open and clears the ending
	// odometer reading.
	Reopen(ctx context.Context, userID, dayID uuid.UUID) (*model.WorkDay, error)

	// ListClosed returns the user's closed days ordered by date
	// descending.
	ListClosed(ctx context.Context, userID uuid.UUID) ([]model.WorkDay, error)

	// Delete removes the day row. Child earnings and expenses must be
	// deleted beforehand (see Ledger.DeleteByDay); the dayuc use case
	// runs the whole cascade in one transaction.
	Delete(ctx context.Context, userID, dayID uuid.UUID) error
}

type Workdays interface {
	Conn(Conn) WorkdaysConnQueryer
	Tx(Tx) WorkdaysTxQueryer
}
