// Copyright (c) 2025-2026 DriverMind Ltda.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package vehiclesrp provides the garage repository, persisting
// vehicles and their maintenance records.
package vehiclesrp

import (
	"context"

	"github.com/drivermind/dmweb/pkg/adapter/db/postgres"
	"github.com/drivermind/dmweb/pkg/core/model"
	"github.com/drivermind/dmweb/pkg/core/repo"
	"github.com/google/uuid"
)

// Repo implements the repo.Vehicles interface.
type Repo struct {
}

// New creates a Vehicles repository instance.
func New() *Repo {
	return &Repo{}
}

// Conn takes a generic Conn interface and returns a
// VehiclesConnQueryer in order to run the garage queries in that
// connection.
func (vehicles *Repo) Conn(c repo.Conn) repo.VehiclesConnQueryer {
	cc := c.(*postgres.Conn)
	return connQueryer{conn: cc}
}

// Tx takes a generic Tx interface and returns a VehiclesTxQueryer in
// order to run the garage queries in that transaction.
func (vehicles *Repo) Tx(tx repo.Tx) repo.VehiclesTxQueryer {
	tt := tx.(*postgres.Tx)
	return txQueryer{tx: tt}
}

type connQueryer struct {
	conn *postgres.Conn
}

func (cq connQueryer) Create(
	ctx context.Context, v model.Vehicle,
) (*model.Vehicle, error) {
	return Create(ctx, cq.conn, v)
}

func (cq connQueryer) Get(
	ctx context.Context, userID, vehicleID uuid.UUID,
) (*model.Vehicle, error) {
	return Get(ctx, cq.conn, userID, vehicleID)
}

func (cq connQueryer) List(
	ctx context.Context, userID uuid.UUID,
) ([]model.Vehicle, error) {
	return List(ctx, cq.conn, userID)
}

func (cq connQueryer) SetActive(
	ctx context.Context, userID, vehicleID uuid.UUID, active bool,
) (*model.Vehicle, error) {
	return SetActive(ctx, cq.conn, userID, vehicleID, active)
}

func (cq connQueryer) Delete(
	ctx context.Context, userID, vehicleID uuid.UUID,
) error {
	return Delete(ctx, cq.conn, userID, vehicleID)
}

func (cq connQueryer) AddMaintenance(
	ctx context.Context, m model.Maintenance,
) (*model.Maintenance, error) {
	return AddMaintenance(ctx, cq.conn, m)
}

func (cq connQueryer) ListMaintenance(
	ctx context.Context, vehicleID uuid.UUID,
) ([]model.Maintenance, error) {
	return ListMaintenance(ctx, cq.conn, vehicleID)
}

type txQueryer struct {
	tx *postgres.Tx
}

func (tq txQueryer) Create(
	ctx context.Context, v model.Vehicle,
) (*model.Vehicle, error) {
	return Create(ctx, tq.tx, v)
}

func (tq txQueryer) Get(
	ctx context.Context, userID, vehicleID uuid.UUID,
) (*model.Vehicle, error) {
	return Get(ctx, tq.tx, userID, vehicleID)
}

func (tq txQueryer) List(
	ctx context.Context, userID uuid.UUID,
) ([]model.Vehicle, error) {
	return List(ctx, tq.tx, userID)
}

func (tq txQueryer) SetActive(
	ctx context.Context, userID, vehicleID uuid.UUID, active bool,
) (*model.Vehicle, error) {
	return SetActive(ctx, tq.tx, userID, vehicleID, active)
}

func (tq txQueryer) Delete(
	ctx context.Context, userID, vehicleID uuid.UUID,
) error {
	return Delete(ctx, tq.tx, userID, vehicleID)
}

func (tq txQueryer) AddMaintenance(
	ctx context.Context, m model.Maintenance,
) (*model.Maintenance, error) {
	return AddMaintenance(ctx, tq.tx, m)
}

func (tq txQueryer) ListMaintenance(
	ctx context.Context, vehicleID uuid.UUID,
) ([]model.Maintenance, error) {
	return ListMaintenance(ctx, tq.tx, vehicleID)
}
