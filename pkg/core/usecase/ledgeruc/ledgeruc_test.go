// Copyright (c) 2025-2026 DriverMind Ltda.
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package ledgeruc_test

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
	"github.com/drivermind/dmweb/pkg/core/usecase/dayuc"
	"github.com/drivermind/dmweb/pkg/core/usecase/ledgeruc"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type LedgerUseCaseTestSuite struct {
	suite.Suite

	Ctx  context.Context
	Pg   *sqltestutil.PostgresContainer
	Pool *postgres.Pool
	UC   *ledgeruc.UseCase
	Days *dayuc.UseCase
}

func TestLedgerUseCaseTestSuite(t *testing.T) {
	ctx := context.Background()
	pg, pool, dfrs, ok := dbcontainer.New(ctx, 60*time.Second, t)
	for _, f := range dfrs {
		defer f()
	}
	if !ok {
		return // errors are already logged
	}
	suite.Run(t, &LedgerUseCaseTestSuite{
		Ctx:  ctx,
		Pg:   pg,
		Pool: pool,
	})
}

func (luts *LedgerUseCaseTestSuite) SetupSuite() {
	err := luts.Pool.Conn(
		luts.Ctx, func(ctx context.Context, c repo.Conn) error {
			return schemarp.CreateTables(ctx, c.(*postgres.Conn))
		},
	)
	luts.Require().NoError(err, "failed to create schema contents")

	// Both use cases share one pinned clock, so the day started by a
	// test case is the same "today" the ledger records against.
	clock := func() time.Time {
		return time.Date(2026, time.May, 6, 15, 0, 0, 0, time.UTC)
	}
	daysrp, lrp := workdaysrp.New(), ledgerrp.New()
	luts.UC, err = ledgeruc.New(
		luts.Pool, daysrp, lrp, ledgeruc.WithClock(clock),
	)
	luts.Require().NoError(err, "cannot instantiate ledger use case")
	luts.Days, err = dayuc.New(
		luts.Pool, daysrp, lrp, dayuc.WithClock(clock),
	)
	luts.Require().NoError(err, "cannot instantiate day use case")
}

// assertNoActiveDay verifies that err reports the absence of an open
// work day as a conflict.
func (luts *LedgerUseCaseTestSuite) assertNoActiveDay(err error) {
	luts.Require().Error(err)
	luts.ErrorIs(err, model.ErrNoActiveDay)
	var ce *cerr.Error
	luts.Require().ErrorAs(err, &ce)
	luts.Equal(http.StatusConflict, ce.HTTPStatusCode)
}

func (luts *LedgerUseCaseTestSuite) TestRecordsAgainstOpenDay() {
	uid := uuid.New()
	start, err := luts.Days.StartDay(luts.Ctx, uid, uuid.New(), 100)
	luts.Require().NoError(err, "cannot start work day")

	earning, err := luts.UC.AddEarning(
		luts.Ctx, uid, 12050, model.PlatformUber, model.BRL,
	)
	luts.Require().NoError(err, "cannot add earning")
	luts.Equal(start.Day.ID, earning.WorkDayID)

	expense, err := luts.UC.AddExpense(
		luts.Ctx, uid, 3025, model.ExpenseFuel, model.BRL, "gas 40l",
	)
	luts.Require().NoError(err, "cannot add expense")
	luts.Equal(start.Day.ID, expense.WorkDayID)
}

func (luts *LedgerUseCaseTestSuite) TestRejectsWithoutAnyDay() {
	uid := uuid.New()
	_, err := luts.UC.AddEarning(
		luts.Ctx, uid, 12050, model.PlatformUber, model.BRL,
	)
	luts.assertNoActiveDay(err)

	_, err = luts.UC.AddExpense(
		luts.Ctx, uid, 3025, model.ExpenseFuel, model.BRL, "",
	)
	luts.assertNoActiveDay(err)
}

func (luts *LedgerUseCaseTestSuite) TestRejectsAfterDayClosed() {
	uid := uuid.New()
	start, err := luts.Days.StartDay(luts.Ctx, uid, uuid.New(), 100)
	luts.Require().NoError(err, "cannot start work day")
	_, err = luts.Days.EndDay(luts.Ctx, uid, start.Day.ID, 180)
	luts.Require().NoError(err, "cannot end work day")

	_, err = luts.UC.AddEarning(
		luts.Ctx, uid, 500, model.PlatformNinetyNine, model.BRL,
	)
	luts.assertNoActiveDay(err)

	_, err = luts.UC.AddExpense(
		luts.Ctx, uid, 500, model.ExpenseFood, model.BRL, "lunch",
	)
	luts.assertNoActiveDay(err)
}

func (luts *LedgerUseCaseTestSuite) TestRejectsNonPositiveAmounts() {
	uid := uuid.New()
	for _, amount := range []model.Money{0, -100} {
		_, err := luts.UC.AddEarning(
			luts.Ctx, uid, amount, model.PlatformUber, model.BRL,
		)
		var ce *cerr.Error
		luts.Require().ErrorAs(err, &ce)
		luts.Equal(http.StatusBadRequest, ce.HTTPStatusCode)
	}
}
