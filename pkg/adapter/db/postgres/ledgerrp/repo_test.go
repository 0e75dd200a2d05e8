// Copyright (c) 2025-2026 DriverMind Ltda.
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package ledgerrp_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/bitcomplete/sqltestutil"
	"github.com/drivermind/dmweb/internal/test/dbcontainer"
	"github.com/drivermind/dmweb/pkg/adapter/db/postgres"
	"github.com/drivermind/dmweb/pkg/adapter/db/postgres/ledgerrp"
	"github.com/drivermind/dmweb/pkg/adapter/db/postgres/schemarp"
	"github.com/drivermind/dmweb/pkg/adapter/db/postgres/workdaysrp"
	"github.com/drivermind/dmweb/pkg/core/cerr"
	"github.com/drivermind/dmweb/pkg/core/model"
	"github.com/drivermind/dmweb/pkg/core/repo"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type LedgerRepoTestSuite struct {
	suite.Suite

	Ctx    context.Context
	Pg     *sqltestutil.PostgresContainer
	Pool   *postgres.Pool
	Days   repo.Workdays
	Ledger repo.Ledger
}

func TestLedgerRepoTestSuite(t *testing.T) {
	ctx := context.Background()
	pg, pool, dfrs, ok := dbcontainer.New(ctx, 60*time.Second, t)
	for _, f := range dfrs {
		defer f()
	}
	if !ok {
		return // errors are already logged
	}
	suite.Run(t, &LedgerRepoTestSuite{
		Ctx:    ctx,
		Pg:     pg,
		Pool:   pool,
		Days:   workdaysrp.New(),
		Ledger: ledgerrp.New(),
	})
}

func (lrts *LedgerRepoTestSuite) SetupSuite() {
	err := lrts.Pool.Conn(
		lrts.Ctx, func(ctx context.Context, c repo.Conn) error {
			return schemarp.CreateTables(ctx, c.(*postgres.Conn))
		},
	)
	lrts.Require().NoError(err, "failed to create schema contents")
}

// newDay inserts a parent work day for the given user, since earnings
// and expenses may not exist without one.
func (lrts *LedgerRepoTestSuite) newDay(
	ctx context.Context, c repo.Conn, uid uuid.UUID, d time.Time,
) *model.WorkDay {
	day, err := lrts.Days.Conn(c).Create(ctx, model.WorkDay{
		UserID:  uid,
		Date:    d,
		KmStart: 100,
		Status:  model.DayOpen,
	})
	lrts.Require().NoError(err, "cannot create parent work day")
	return day
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (lrts *LedgerRepoTestSuite) TestAddAndList() {
	uid := uuid.New()
	err := lrts.Pool.Conn(
		lrts.Ctx, func(ctx context.Context, c repo.Conn) error {
			day := lrts.newDay(ctx, c, uid, date(2026, time.April, 1))
			q := lrts.Ledger.Conn(c)

			e1, err := q.AddEarning(ctx, model.Earning{
				WorkDayID: day.ID,
				Platform:  model.PlatformUber,
				Amount:    12050,
				Currency:  model.BRL,
			})
			lrts.Require().NoError(err, "cannot add earning")
			lrts.NotEqual(uuid.Nil, e1.ID)
			e2, err := q.AddEarning(ctx, model.Earning{
				WorkDayID: day.ID,
				Platform:  model.PlatformNinetyNine,
				Amount:    8000,
				Currency:  model.BRL,
			})
			lrts.Require().NoError(err, "cannot add earning")

			x, err := q.AddExpense(ctx, model.Expense{
				WorkDayID: day.ID,
				Category:  model.ExpenseFuel,
				Amount:    6000,
				Currency:  model.BRL,
				Note:      "gas station on the way home",
			})
			lrts.Require().NoError(err, "cannot add expense")

			earnings, err := q.ListEarnings(ctx, day.ID)
			lrts.Require().NoError(err, "cannot list earnings")
			lrts.Require().Len(earnings, 2)
			lrts.Equal(e1.ID, earnings[0].ID)
			lrts.Equal(e2.ID, earnings[1].ID)
			lrts.Equal(model.Money(12050), earnings[0].Amount)

			expenses, err := q.ListExpenses(ctx, day.ID)
			lrts.Require().NoError(err, "cannot list expenses")
			lrts.Require().Len(expenses, 1)
			lrts.Equal(x.ID, expenses[0].ID)
			lrts.Equal(
				"gas station on the way home", expenses[0].Note,
			)
			return nil
		},
	)
	lrts.NoError(err)
}

func (lrts *LedgerRepoTestSuite) TestBulkFetchByDays() {
	uid := uuid.New()
	err := lrts.Pool.Conn(
		lrts.Ctx, func(ctx context.Context, c repo.Conn) error {
			d1 := lrts.newDay(ctx, c, uid, date(2026, time.April, 2))
			d2 := lrts.newDay(ctx, c, uid, date(2026, time.April, 3))
			q := lrts.Ledger.Conn(c)

			for _, dayID := range []uuid.UUID{d1.ID, d2.ID} {
				_, err := q.AddEarning(ctx, model.Earning{
					WorkDayID: dayID,
					Platform:  model.PlatformPrivate,
					Amount:    5000,
					Currency:  model.BRL,
				})
				lrts.Require().NoError(err, "cannot add earning")
			}
			_, err := q.AddExpense(ctx, model.Expense{
				WorkDayID: d2.ID,
				Category:  model.ExpenseFood,
				Amount:    2500,
				Currency:  model.BRL,
			})
			lrts.Require().NoError(err, "cannot add expense")

			earnings, err := q.EarningsOf(
				ctx, []uuid.UUID{d1.ID, d2.ID},
			)
			lrts.Require().NoError(err, "cannot bulk-fetch earnings")
			lrts.Len(earnings, 2)

			expenses, err := q.ExpensesOf(
				ctx, []uuid.UUID{d1.ID, d2.ID},
			)
			lrts.Require().NoError(err, "cannot bulk-fetch expenses")
			lrts.Require().Len(expenses, 1)
			lrts.Equal(d2.ID, expenses[0].WorkDayID)
			return nil
		},
	)
	lrts.NoError(err)
}

func (lrts *LedgerRepoTestSuite) TestDeleteIsUserScoped() {
	uid := uuid.New()
	err := lrts.Pool.Conn(
		lrts.Ctx, func(ctx context.Context, c repo.Conn) error {
			day := lrts.newDay(ctx, c, uid, date(2026, time.April, 4))
			q := lrts.Ledger.Conn(c)

			e, err := q.AddEarning(ctx, model.Earning{
				WorkDayID: day.ID,
				Platform:  model.PlatformInDrive,
				Amount:    7000,
				Currency:  model.BRL,
			})
			lrts.Require().NoError(err, "cannot add earning")
			x, err := q.AddExpense(ctx, model.Expense{
				WorkDayID: day.ID,
				Category:  model.ExpenseOther,
				Amount:    1500,
				Currency:  model.BRL,
			})
			lrts.Require().NoError(err, "cannot add expense")

			// another user must not reach records through a day
			// they do not own
			lrts.assertNotFound(
				q.DeleteEarning(ctx, uuid.New(), e.ID),
			)
			lrts.assertNotFound(
				q.DeleteExpense(ctx, uuid.New(), x.ID),
			)

			lrts.NoError(q.DeleteEarning(ctx, uid, e.ID))
			lrts.NoError(q.DeleteExpense(ctx, uid, x.ID))
			lrts.assertNotFound(q.DeleteEarning(ctx, uid, e.ID))

			earnings, err := q.ListEarnings(ctx, day.ID)
			lrts.Require().NoError(err)
			lrts.Empty(earnings)
			return nil
		},
	)
	lrts.NoError(err)
}

func (lrts *LedgerRepoTestSuite) TestCascadeWithDayDeletion() {
	uid := uuid.New()
	var dayID uuid.UUID
	err := lrts.Pool.Conn(
		lrts.Ctx, func(ctx context.Context, c repo.Conn) error {
			day := lrts.newDay(ctx, c, uid, date(2026, time.April, 5))
			dayID = day.ID
			q := lrts.Ledger.Conn(c)
			_, err := q.AddEarning(ctx, model.Earning{
				WorkDayID: dayID,
				Platform:  model.PlatformUber,
				Amount:    9000,
				Currency:  model.BRL,
			})
			lrts.Require().NoError(err, "cannot add earning")
			_, err = q.AddExpense(ctx, model.Expense{
				WorkDayID: dayID,
				Category:  model.ExpenseFuel,
				Amount:    4000,
				Currency:  model.BRL,
			})
			lrts.Require().NoError(err, "cannot add expense")

			// the cascade runs in one transaction, so a failing day
			// deletion never leaves orphaned children behind
			return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
				if err := lrts.Ledger.Tx(tx).DeleteByDay(
					ctx, dayID,
				); err != nil {
					return err
				}
				return lrts.Days.Tx(tx).Delete(ctx, uid, dayID)
			})
		},
	)
	lrts.Require().NoError(err, "cascade deletion failed")

	err = lrts.Pool.Conn(
		lrts.Ctx, func(ctx context.Context, c repo.Conn) error {
			q := lrts.Ledger.Conn(c)
			earnings, err := q.ListEarnings(ctx, dayID)
			lrts.Require().NoError(err)
			lrts.Empty(earnings)
			expenses, err := q.ListExpenses(ctx, dayID)
			lrts.Require().NoError(err)
			lrts.Empty(expenses)

			_, err = lrts.Days.Conn(c).Get(ctx, uid, dayID)
			lrts.assertNotFound(err)
			return nil
		},
	)
	lrts.NoError(err)
}

func (lrts *LedgerRepoTestSuite) assertNotFound(err error) {
	var ce *cerr.Error
	lrts.Require().ErrorAs(err, &ce)
	lrts.Equal(http.StatusNotFound, ce.HTTPStatusCode)
}
