// Copyright (c) 2025-2026 DriverMind Ltda.
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package dayuc contains the work day UseCase which governs the daily
// work session lifecycle:
//  1. Starting a day, resolving the one-day-per-date invariant,
//  2. Ending and reopening a day,
//  3. Deleting a day together with its child records,
//  4. Loading today's board.
package dayuc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/drivermind/dmweb/pkg/core/cerr"
	"github.com/drivermind/dmweb/pkg/core/model"
	"github.com/drivermind/dmweb/pkg/core/repo"
	"github.com/google/uuid"
)

// UseCase represents the work day use case. It holds a database
// connection pool and the work day and ledger repository instances
// (to be guided with the DB pool).
type UseCase struct {
	pool     repo.Pool
	daysrp   repo.Workdays
	ledgerrp repo.Ledger

	now func() time.Time
}

// New instantiates a work day use case.
// Required parameters are passed individually, so caller has to
// provision them and whenever they change, caller will notice and fix
// them due to a compilation error.
// Optional parameters are passed as a series of functional options
// in order to facilitate their validation and flexibility.
func New(
	p repo.Pool, d repo.Workdays, l repo.Ledger, opts ...Option,
) (*UseCase, error) {
	uc := &UseCase{pool: p, daysrp: d, ledgerrp: l}
	for _, opt := range opts {
		if err := opt(uc); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	// now, deal with defaults
	if uc.now == nil {
		uc.now = time.Now
	}
	return uc, nil
}

// Today returns the current local calendar date with a zero
// time-of-day, as stored in the work day rows.
func (days *UseCase) Today() time.Time {
	y, m, d := days.now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// StartDay use case opens a work day for today with the given vehicle
// and starting odometer reading. It inserts a fresh open row and, if
// the storage layer reports that a row for (user, today) exists
// already, resolves the conflict against that row:
//   - the existing day has no vehicle bound: it is adopted, binding
//     vehicleID, resetting the starting odometer, and forcing it open
//     (a day can be created without a vehicle by another code path
//     and claimed later);
//   - the existing day is bound to the same vehicle: an idempotent
//     resume, the stored state is returned without field changes;
//   - the existing day is bound to a different vehicle: a conflict,
//     reported with the bound vehicle so the driver can switch to it
//     or delete the conflicting day. No automatic merge or override
//     is performed.
//
// Any other storage failure is returned as-is after wrapping; the
// operation is never retried automatically.
func (days *UseCase) StartDay(
	ctx context.Context, userID, vehicleID uuid.UUID, kmStart float64,
) (start *model.DayStart, err error) {
	if kmStart < 0 {
		return nil, cerr.BadRequest(fmt.Errorf(
			"starting odometer must be non-negative, got %v", kmStart,
		))
	}
	today := days.Today()
	err = days.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		q := days.daysrp.Conn(c)
		day, err := q.Create(ctx, model.WorkDay{
			UserID:    userID,
			VehicleID: &vehicleID,
			Date:      today,
			KmStart:   kmStart,
			Status:    model.DayOpen,
		})
		switch {
		case err == nil:
			start = &model.DayStart{Outcome: model.StartCreated, Day: *day}
			return nil
		case errors.Is(err, repo.ErrDuplicateDay):
			return days.resolveStart(
				ctx, q, userID, vehicleID, today, kmStart, &start,
			)
		default:
			return fmt.Errorf("creating work day: %w", err)
		}
	})
	if err != nil {
		start = nil
	}
	return
}

// resolveStart handles a StartDay attempt which hit the unique
// (user, date) index: it reloads the existing row and adopts,
// resumes, or rejects.
func (days *UseCase) resolveStart(
	ctx context.Context, q repo.WorkdaysConnQueryer,
	userID, vehicleID uuid.UUID, today time.Time, kmStart float64,
	start **model.DayStart,
) error {
	existing, err := q.FindByDate(ctx, userID, today)
	if err != nil {
		return fmt.Errorf("loading conflicting work day: %w", err)
	}
	if existing == nil {
		// The row was deleted between the failed insert and this
		// lookup. Report it as a storage conflict instead of looping.
		return fmt.Errorf(
			"work day insert rejected as duplicate, but no row found",
		)
	}
	switch {
	case existing.VehicleID == nil:
		day, err := q.Adopt(ctx, existing.ID, vehicleID, kmStart)
		if err != nil {
			return fmt.Errorf("adopting work day: %w", err)
		}
		*start = &model.DayStart{Outcome: model.StartAdopted, Day: *day}
	case *existing.VehicleID == vehicleID:
		*start = &model.DayStart{
			Outcome: model.StartResumed, Day: *existing,
		}
	default:
		return cerr.Conflict(&model.DayConflictError{
			BoundVehicleID: *existing.VehicleID,
		})
	}
	return nil
}

// EndDay use case closes the day, recording the ending odometer
// reading. The day must currently be open. The ending reading is not
// validated against the starting one; the computed mileage may come
// out non-positive and is displayed as-is.
func (days *UseCase) EndDay(
	ctx context.Context, userID, dayID uuid.UUID, kmEnd float64,
) (day *model.WorkDay, err error) {
	err = days.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		q := days.daysrp.Conn(c)
		current, err := q.Get(ctx, userID, dayID)
		if err != nil {
			return err
		}
		if !current.Open() {
			return cerr.Conflict(model.ErrDayNotOpen)
		}
		day, err = q.Close(ctx, userID, dayID, kmEnd)
		return err
	})
	if err != nil {
		day = nil
	}
	return
}

// ReopenDay use case puts a day back into the open state, clearing
// its ending odometer reading. There is no restriction on how many
// times a day may be reopened and no audit trail of prior
// close/reopen cycles is kept.
func (days *UseCase) ReopenDay(
	ctx context.Context, userID, dayID uuid.UUID,
) (day *model.WorkDay, err error) {
	err = days.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		q := days.daysrp.Conn(c)
		day, err = q.Reopen(ctx, userID, dayID)
		return err
	})
	if err != nil {
		day = nil
	}
	return
}

// DeleteDay use case removes a day and all of its child earnings and
// expenses in a single transaction, so a failure midway never leaves
// orphaned child rows behind.
func (days *UseCase) DeleteDay(
	ctx context.Context, userID, dayID uuid.UUID,
) error {
	return days.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			dq := days.daysrp.Tx(tx)
			if _, err := dq.Get(ctx, userID, dayID); err != nil {
				return err
			}
			lq := days.ledgerrp.Tx(tx)
			if err := lq.DeleteByDay(ctx, dayID); err != nil {
				return fmt.Errorf("deleting child records: %w", err)
			}
			if err := dq.Delete(ctx, userID, dayID); err != nil {
				return fmt.Errorf("deleting work day: %w", err)
			}
			return nil
		})
	})
}

// Board use case loads today's day (open or closed) together with its
// child records and the derived totals. ErrNoActiveDay is reported
// when no day exists for today, so the client can offer to start one.
func (days *UseCase) Board(
	ctx context.Context, userID uuid.UUID,
) (board *model.DaySummary, err error) {
	today := days.Today()
	err = days.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		dq := days.daysrp.Conn(c)
		day, err := dq.FindByDate(ctx, userID, today)
		if err != nil {
			return err
		}
		if day == nil {
			return cerr.NotFound(model.ErrNoActiveDay)
		}
		lq := days.ledgerrp.Conn(c)
		earnings, err := lq.ListEarnings(ctx, day.ID)
		if err != nil {
			return fmt.Errorf("listing earnings: %w", err)
		}
		expenses, err := lq.ListExpenses(ctx, day.ID)
		if err != nil {
			return fmt.Errorf("listing expenses: %w", err)
		}
		s := model.Summarize(*day, earnings, expenses)
		board = &s
		return nil
	})
	if err != nil {
		board = nil
	}
	return
}
