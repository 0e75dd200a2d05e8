// Copyright (c) 2025-2026 DriverMind Ltda.
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package dayuc_test

import (
	"context"
	"errors"
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
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type DayUseCaseTestSuite struct {
	suite.Suite

	Ctx  context.Context
	Pg   *sqltestutil.PostgresContainer
	Pool *postgres.Pool
	Days repo.Workdays
	UC   *dayuc.UseCase
}

func TestDayUseCaseTestSuite(t *testing.T) {
	ctx := context.Background()
	pg, pool, dfrs, ok := dbcontainer.New(ctx, 60*time.Second, t)
	for _, f := range dfrs {
		defer f()
	}
	if !ok {
		return // errors are already logged
	}
	suite.Run(t, &DayUseCaseTestSuite{
		Ctx:  ctx,
		Pg:   pg,
		Pool: pool,
		Days: workdaysrp.New(),
	})
}

func (duts *DayUseCaseTestSuite) SetupSuite() {
	err := duts.Pool.Conn(
		duts.Ctx, func(ctx context.Context, c repo.Conn) error {
			return schemarp.CreateTables(ctx, c.(*postgres.Conn))
		},
	)
	duts.Require().NoError(err, "failed to create schema contents")

	// The clock is pinned so that the "today" resolution is stable
	// even if the suite runs across a midnight boundary.
	duts.UC, err = dayuc.New(
		duts.Pool, duts.Days, ledgerrp.New(),
		dayuc.WithClock(func() time.Time {
			return time.Date(2026, time.May, 6, 15, 0, 0, 0, time.UTC)
		}),
	)
	duts.Require().NoError(err, "cannot instantiate day use case")
}

func (duts *DayUseCaseTestSuite) TestStartCreatesThenResumes() {
	uid, vid := uuid.New(), uuid.New()
	start, err := duts.UC.StartDay(duts.Ctx, uid, vid, 100)
	duts.Require().NoError(err, "cannot start work day")
	duts.Equal(model.StartCreated, start.Outcome)
	duts.Equal(model.DayOpen, start.Day.Status)
	duts.Equal(
		"2026-05-06", start.Day.Date.Format(time.DateOnly),
	)
	dayID := start.Day.ID

	again, err := duts.UC.StartDay(duts.Ctx, uid, vid, 700)
	duts.Require().NoError(err, "cannot resume work day")
	duts.Equal(model.StartResumed, again.Outcome)
	duts.Equal(dayID, again.Day.ID)
	duts.Equal(100.0, again.Day.KmStart, "resume must not touch fields")
}

func (duts *DayUseCaseTestSuite) TestStartAdoptsVehiclelessDay() {
	uid, vid := uuid.New(), uuid.New()
	var orphanID uuid.UUID
	err := duts.Pool.Conn(
		duts.Ctx, func(ctx context.Context, c repo.Conn) error {
			day, err := duts.Days.Conn(c).Create(ctx, model.WorkDay{
				UserID:  uid,
				Date:    duts.UC.Today(),
				KmStart: 10,
				Status:  model.DayOpen,
			})
			if err != nil {
				return err
			}
			orphanID = day.ID
			return nil
		},
	)
	duts.Require().NoError(err, "cannot seed vehicle-less day")

	start, err := duts.UC.StartDay(duts.Ctx, uid, vid, 42.5)
	duts.Require().NoError(err, "cannot adopt work day")
	duts.Equal(model.StartAdopted, start.Outcome)
	duts.Equal(orphanID, start.Day.ID)
	duts.Require().NotNil(start.Day.VehicleID)
	duts.Equal(vid, *start.Day.VehicleID)
	duts.Equal(42.5, start.Day.KmStart)
	duts.Equal(model.DayOpen, start.Day.Status)
}

func (duts *DayUseCaseTestSuite) TestStartConflictsOnOtherVehicle() {
	uid, bound, other := uuid.New(), uuid.New(), uuid.New()
	_, err := duts.UC.StartDay(duts.Ctx, uid, bound, 100)
	duts.Require().NoError(err, "cannot start work day")

	start, err := duts.UC.StartDay(duts.Ctx, uid, other, 100)
	duts.Require().Error(err, "second vehicle must be rejected")
	duts.Nil(start)
	var ce *cerr.Error
	duts.Require().ErrorAs(err, &ce)
	duts.Equal(http.StatusConflict, ce.HTTPStatusCode)
	var dce *model.DayConflictError
	duts.Require().ErrorAs(err, &dce)
	duts.Equal(bound, dce.BoundVehicleID)
}

func (duts *DayUseCaseTestSuite) TestStartRejectsNegativeOdometer() {
	_, err := duts.UC.StartDay(duts.Ctx, uuid.New(), uuid.New(), -1)
	var ce *cerr.Error
	duts.Require().ErrorAs(err, &ce)
	duts.Equal(http.StatusBadRequest, ce.HTTPStatusCode)
}

func (duts *DayUseCaseTestSuite) TestEndRequiresOpenDay() {
	uid, vid := uuid.New(), uuid.New()
	start, err := duts.UC.StartDay(duts.Ctx, uid, vid, 100)
	duts.Require().NoError(err, "cannot start work day")
	day, err := duts.UC.EndDay(duts.Ctx, uid, start.Day.ID, 180)
	duts.Require().NoError(err, "cannot end work day")
	duts.Equal(model.DayClosed, day.Status)

	_, err = duts.UC.EndDay(duts.Ctx, uid, start.Day.ID, 200)
	duts.Require().Error(err, "closed day must not be closed again")
	duts.True(errors.Is(err, model.ErrDayNotOpen))
	var ce *cerr.Error
	duts.Require().ErrorAs(err, &ce)
	duts.Equal(http.StatusConflict, ce.HTTPStatusCode)
}
