// Copyright (c) 2025-2026 DriverMind Ltda.
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package vehiclesrp_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/bitcomplete/sqltestutil"
	"github.com/drivermind/dmweb/internal/test/dbcontainer"
	"github.com/drivermind/dmweb/pkg/adapter/db/postgres"
	"github.com/drivermind/dmweb/pkg/adapter/db/postgres/schemarp"
	"github.com/drivermind/dmweb/pkg/adapter/db/postgres/vehiclesrp"
	"github.com/drivermind/dmweb/pkg/core/cerr"
	"github.com/drivermind/dmweb/pkg/core/model"
	"github.com/drivermind/dmweb/pkg/core/repo"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type VehiclesRepoTestSuite struct {
	suite.Suite

	Ctx      context.Context
	Pg       *sqltestutil.PostgresContainer
	Pool     *postgres.Pool
	Vehicles repo.Vehicles
}

func TestVehiclesRepoTestSuite(t *testing.T) {
	ctx := context.Background()
	pg, pool, dfrs, ok := dbcontainer.New(ctx, 60*time.Second, t)
	for _, f := range dfrs {
		defer f()
	}
	if !ok {
		return // errors are already logged
	}
	suite.Run(t, &VehiclesRepoTestSuite{
		Ctx:      ctx,
		Pg:       pg,
		Pool:     pool,
		Vehicles: vehiclesrp.New(),
	})
}

func (vrts *VehiclesRepoTestSuite) SetupSuite() {
	err := vrts.Pool.Conn(
		vrts.Ctx, func(ctx context.Context, c repo.Conn) error {
			return schemarp.CreateTables(ctx, c.(*postgres.Conn))
		},
	)
	vrts.Require().NoError(err, "failed to create schema contents")
}

func (vrts *VehiclesRepoTestSuite) conn(
	f func(ctx context.Context, q repo.VehiclesConnQueryer) error,
) error {
	return vrts.Pool.Conn(
		vrts.Ctx, func(ctx context.Context, c repo.Conn) error {
			return f(ctx, vrts.Vehicles.Conn(c))
		},
	)
}

func (vrts *VehiclesRepoTestSuite) TestCreateGetList() {
	uid := uuid.New()
	err := vrts.conn(func(
		ctx context.Context, q repo.VehiclesConnQueryer,
	) error {
		v1, err := q.Create(ctx, model.Vehicle{
			UserID:     uid,
			Name:       "Onix",
			Model:      "Chevrolet Onix 1.0",
			Plate:      "BRA2E19",
			Propulsion: model.PropulsionCombustion,
		})
		vrts.Require().NoError(err, "cannot create vehicle")
		vrts.NotEqual(uuid.Nil, v1.ID)
		vrts.True(v1.Active, "vehicles must start active")

		v2, err := q.Create(ctx, model.Vehicle{
			UserID:     uid,
			Name:       "CG 160",
			Propulsion: model.PropulsionMotorcycle,
		})
		vrts.Require().NoError(err, "cannot create vehicle")

		got, err := q.Get(ctx, uid, v1.ID)
		vrts.Require().NoError(err, "cannot fetch vehicle back")
		vrts.Equal("Onix", got.Name)
		vrts.Equal("BRA2E19", got.Plate)
		vrts.Equal(model.PropulsionCombustion, got.Propulsion)

		_, err = q.Get(ctx, uuid.New(), v1.ID)
		vrts.assertNotFound(err)

		vs, err := q.List(ctx, uid)
		vrts.Require().NoError(err, "cannot list vehicles")
		vrts.Require().Len(vs, 2)
		vrts.Equal(v1.ID, vs[0].ID)
		vrts.Equal(v2.ID, vs[1].ID)
		return nil
	})
	vrts.NoError(err)
}

func (vrts *VehiclesRepoTestSuite) TestSetActive() {
	uid := uuid.New()
	err := vrts.conn(func(
		ctx context.Context, q repo.VehiclesConnQueryer,
	) error {
		v, err := q.Create(ctx, model.Vehicle{
			UserID:     uid,
			Name:       "HB20",
			Propulsion: model.PropulsionCombustion,
		})
		vrts.Require().NoError(err, "cannot create vehicle")

		got, err := q.SetActive(ctx, uid, v.ID, false)
		vrts.Require().NoError(err, "cannot deactivate vehicle")
		vrts.False(got.Active)

		got, err = q.SetActive(ctx, uid, v.ID, true)
		vrts.Require().NoError(err, "cannot reactivate vehicle")
		vrts.True(got.Active)

		_, err = q.SetActive(ctx, uuid.New(), v.ID, false)
		vrts.assertNotFound(err)
		return nil
	})
	vrts.NoError(err)
}

func (vrts *VehiclesRepoTestSuite) TestMaintenanceLog() {
	uid := uuid.New()
	err := vrts.conn(func(
		ctx context.Context, q repo.VehiclesConnQueryer,
	) error {
		v, err := q.Create(ctx, model.Vehicle{
			UserID:     uid,
			Name:       "Kwid E-Tech",
			Propulsion: model.PropulsionElectric,
		})
		vrts.Require().NoError(err, "cannot create vehicle")

		older, err := q.AddMaintenance(ctx, model.Maintenance{
			VehicleID: v.ID,
			Type:      model.MaintenanceTires,
			Cost:      120000,
			Odometer:  41000,
			Date: time.Date(
				2026, time.January, 12, 0, 0, 0, 0, time.UTC,
			),
		})
		vrts.Require().NoError(err, "cannot add maintenance")
		newer, err := q.AddMaintenance(ctx, model.Maintenance{
			VehicleID: v.ID,
			Type:      model.MaintenanceReview,
			Cost:      35000,
			Odometer:  45000,
			Date: time.Date(
				2026, time.March, 2, 0, 0, 0, 0, time.UTC,
			),
			Note: "annual review",
		})
		vrts.Require().NoError(err, "cannot add maintenance")

		ms, err := q.ListMaintenance(ctx, v.ID)
		vrts.Require().NoError(err, "cannot list maintenances")
		vrts.Require().Len(ms, 2)
		vrts.Equal(newer.ID, ms[0].ID, "newest record comes first")
		vrts.Equal(older.ID, ms[1].ID)
		vrts.Equal(model.Money(35000), ms[0].Cost)
		vrts.Equal("annual review", ms[0].Note)
		return nil
	})
	vrts.NoError(err)
}

func (vrts *VehiclesRepoTestSuite) TestDeleteWithMaintenances() {
	uid := uuid.New()
	err := vrts.conn(func(
		ctx context.Context, q repo.VehiclesConnQueryer,
	) error {
		v, err := q.Create(ctx, model.Vehicle{
			UserID:     uid,
			Name:       "Argo",
			Propulsion: model.PropulsionCombustion,
		})
		vrts.Require().NoError(err, "cannot create vehicle")
		_, err = q.AddMaintenance(ctx, model.Maintenance{
			VehicleID: v.ID,
			Type:      model.MaintenanceOil,
			Cost:      18000,
			Odometer:  30000,
			Date: time.Date(
				2026, time.February, 20, 0, 0, 0, 0, time.UTC,
			),
		})
		vrts.Require().NoError(err, "cannot add maintenance")

		vrts.assertNotFound(q.Delete(ctx, uuid.New(), v.ID))

		err = q.Delete(ctx, uid, v.ID)
		vrts.Require().NoError(err, "cannot delete own vehicle")

		_, err = q.Get(ctx, uid, v.ID)
		vrts.assertNotFound(err)

		ms, err := q.ListMaintenance(ctx, v.ID)
		vrts.Require().NoError(err)
		vrts.Empty(ms, "maintenances must go away with the vehicle")
		return nil
	})
	vrts.NoError(err)
}

func (vrts *VehiclesRepoTestSuite) assertNotFound(err error) {
	var ce *cerr.Error
	vrts.Require().ErrorAs(err, &ce)
	vrts.Equal(http.StatusNotFound, ce.HTTPStatusCode)
}
