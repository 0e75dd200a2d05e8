// Copyright (c) 2025-2026 DriverMind Ltda.
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package ledgeruc contains the ledger UseCase which records earnings
// and expenses against today's open work day. The lookup keys on
// (user, date, status=open) and not on any vehicle, so a transaction
// can be logged from any screen without re-selecting the vehicle.
package ledgeruc

import (
	"context"
	"fmt"
	"time"

	"github.com/drivermind/dmweb/pkg/core/cerr"
	"github.com/drivermind/dmweb/pkg/core/model"
	"github.com/drivermind/dmweb/pkg/core/repo"
	"github.com/google/uuid"
)

// UseCase represents the ledger use case. It holds a database
// connection pool and the work day and ledger repository instances
// (to be guided with the DB pool).
type UseCase struct {
	pool     repo.Pool
	daysrp   repo.Workdays
	ledgerrp repo.Ledger

	now func() time.Time
}

// New instantiates a ledger use case.
func New(
	p repo.Pool, d repo.Workdays, l repo.Ledger, opts ...Option,
) (*UseCase, error) {
	uc := &UseCase{pool: p, daysrp: d, ledgerrp: l}
	for _, opt := range opts {
		if err := opt(uc); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	if uc.now == nil {
		uc.now = time.Now
	}
	return uc, nil
}

func (ledger *UseCase) today() time.Time {
	y, m, d := ledger.now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// openDay resolves today's open day for the user. ErrNoActiveDay is
// reported (as a conflict) when no day is open, so the client can
// direct the driver to start a day first.
//
// The day lookup and the child insert which follows it are two
// independent statements on purpose: a day status change racing in
// from another device between them is accepted, matching the
// single-driver usage pattern this service is built for.
func (ledger *UseCase) openDay(
	ctx context.Context, c repo.Conn, userID uuid.UUID,
) (*model.WorkDay, error) {
	day, err := ledger.daysrp.Conn(c).FindOpen(
		ctx, userID, ledger.today(),
	)
	if err != nil {
		return nil, fmt.Errorf("looking up open work day: %w", err)
	}
	if day == nil {
		return nil, cerr.Conflict(model.ErrNoActiveDay)
	}
	return day, nil
}

// AddEarning use case appends one income record to today's open day.
// The parent day's own fields are never updated; totals are always
// recomputed from the full child set.
func (ledger *UseCase) AddEarning(
	ctx context.Context, userID uuid.UUID,
	amount model.Money, platform model.Platform, currency model.Currency,
) (earning *model.Earning, err error) {
	if amount <= 0 {
		return nil, cerr.BadRequest(fmt.Errorf(
			"earning amount must be positive, got %s", amount,
		))
	}
	if err := platform.Validate(); err != nil {
		return nil, cerr.BadRequest(err)
	}
	if err := currency.Validate(); err != nil {
		return nil, cerr.BadRequest(err)
	}
	err = ledger.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		day, err := ledger.openDay(ctx, c, userID)
		if err != nil {
			return err
		}
		earning, err = ledger.ledgerrp.Conn(c).AddEarning(
			ctx, model.Earning{
				WorkDayID: day.ID,
				Platform:  platform,
				Amount:    amount,
				Currency:  currency,
			},
		)
		return err
	})
	if err != nil {
		earning = nil
	}
	return
}

// AddExpense use case appends one cost record to today's open day,
// with an optional free-text note.
func (ledger *UseCase) AddExpense(
	ctx context.Context, userID uuid.UUID,
	amount model.Money, category model.ExpenseCategory,
	currency model.Currency, note string,
) (expense *model.Expense, err error) {
	if amount <= 0 {
		return nil, cerr.BadRequest(fmt.Errorf(
			"expense amount must be positive, got %s", amount,
		))
	}
	if err := category.Validate(); err != nil {
		return nil, cerr.BadRequest(err)
	}
	if err := currency.Validate(); err != nil {
		return nil, cerr.BadRequest(err)
	}
	err = ledger.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		day, err := ledger.openDay(ctx, c, userID)
		if err != nil {
			return err
		}
		expense, err = ledger.ledgerrp.Conn(c).AddExpense(
			ctx, model.Expense{
				WorkDayID: day.ID,
				Category:  category,
				Amount:    amount,
				Currency:  currency,
				Note:      note,
			},
		)
		return err
	})
	if err != nil {
		expense = nil
	}
	return
}

// DeleteEarning use case removes one income record. The deletion is
// scoped to the user's own days; removing a record of another user is
// reported as not found.
func (ledger *UseCase) DeleteEarning(
	ctx context.Context, userID, earningID uuid.UUID,
) error {
	return ledger.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return ledger.ledgerrp.Conn(c).DeleteEarning(
			ctx, userID, earningID,
		)
	})
}

// DeleteExpense use case removes one cost record, scoped like
// DeleteEarning.
func (ledger *UseCase) DeleteExpense(
	ctx context.Context, userID, expenseID uuid.UUID,
) error {
	return ledger.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return ledger.ledgerrp.Conn(c).DeleteExpense(
			ctx, userID, expenseID,
		)
	})
}
