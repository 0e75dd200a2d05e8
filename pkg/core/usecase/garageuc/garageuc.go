// Copyright (c) 2025-2026 DriverMind Ltda.
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package garageuc contains the garage UseCase which manages a
// driver's vehicles and their maintenance records.
package garageuc

import (
	"context"
	"fmt"

	"github.com/drivermind/dmweb/pkg/core/cerr"
	"github.com/drivermind/dmweb/pkg/core/model"
	"github.com/drivermind/dmweb/pkg/core/repo"
	"github.com/google/uuid"
)

// UseCase represents the garage use case. It holds a database
// connection pool and the vehicles repository instance (to be guided
// with the DB pool).
type UseCase struct {
	pool       repo.Pool
	vehiclesrp repo.Vehicles
}

// New instantiates a garage use case.
func New(p repo.Pool, v repo.Vehicles) *UseCase {
	return &UseCase{pool: p, vehiclesrp: v}
}

// AddVehicle use case registers a new vehicle for the user. The name
// must be non-empty; model and plate are optional display fields.
func (garage *UseCase) AddVehicle(
	ctx context.Context, userID uuid.UUID,
	name, vmodel, plate string, propulsion model.Propulsion,
) (vehicle *model.Vehicle, err error) {
	if name == "" {
		return nil, cerr.BadRequest(
			fmt.Errorf("vehicle name must be non-empty"),
		)
	}
	if err := propulsion.Validate(); err != nil {
		return nil, cerr.BadRequest(err)
	}
	err = garage.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		vehicle, err = garage.vehiclesrp.Conn(c).Create(
			ctx, model.Vehicle{
				UserID:     userID,
				Name:       name,
				Model:      vmodel,
				Plate:      plate,
				Propulsion: propulsion,
				Active:     true,
			},
		)
		return err
	})
	if err != nil {
		vehicle = nil
	}
	return
}

// Vehicles use case lists the user's registered vehicles.
func (garage *UseCase) Vehicles(
	ctx context.Context, userID uuid.UUID,
) (vehicles []model.Vehicle, err error) {
	err = garage.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		vehicles, err = garage.vehiclesrp.Conn(c).List(ctx, userID)
		return err
	})
	if err != nil {
		vehicles = nil
	}
	return
}

// SetActive use case flips the active flag of a vehicle, so inactive
// vehicles stay out of the day-start picker without losing their
// history.
func (garage *UseCase) SetActive(
	ctx context.Context, userID, vehicleID uuid.UUID, active bool,
) (vehicle *model.Vehicle, err error) {
	err = garage.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		vehicle, err = garage.vehiclesrp.Conn(c).SetActive(
			ctx, userID, vehicleID, active,
		)
		return err
	})
	if err != nil {
		vehicle = nil
	}
	return
}

// RemoveVehicle use case deletes a vehicle and its maintenance
// records. Work days which referenced the vehicle are left untouched;
// they only referenced it, never owned it.
func (garage *UseCase) RemoveVehicle(
	ctx context.Context, userID, vehicleID uuid.UUID,
) error {
	return garage.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return garage.vehiclesrp.Conn(c).Delete(ctx, userID, vehicleID)
	})
}

// LogMaintenance use case appends one service record to a vehicle
// owned by the user.
func (garage *UseCase) LogMaintenance(
	ctx context.Context, userID uuid.UUID, m model.Maintenance,
) (logged *model.Maintenance, err error) {
	if err := m.Type.Validate(); err != nil {
		return nil, cerr.BadRequest(err)
	}
	if m.Cost < 0 {
		return nil, cerr.BadRequest(fmt.Errorf(
			"maintenance cost must be non-negative, got %s", m.Cost,
		))
	}
	err = garage.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		q := garage.vehiclesrp.Conn(c)
		if _, err := q.Get(ctx, userID, m.VehicleID); err != nil {
			return err
		}
		logged, err = q.AddMaintenance(ctx, m)
		return err
	})
	if err != nil {
		logged = nil
	}
	return
}

// MaintenanceHistory use case lists the service records of a vehicle
// owned by the user.
func (garage *UseCase) MaintenanceHistory(
	ctx context.Context, userID, vehicleID uuid.UUID,
) (records []model.Maintenance, err error) {
	err = garage.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		q := garage.vehiclesrp.Conn(c)
		if _, err := q.Get(ctx, userID, vehicleID); err != nil {
			return err
		}
		records, err = q.ListMaintenance(ctx, vehicleID)
		return err
	})
	if err != nil {
		records = nil
	}
	return
}
