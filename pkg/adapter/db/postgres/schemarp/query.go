// Copyright (c) 2025-2026 DriverMind Ltda.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package schemarp

import (
	"context"
	"fmt"

	"github.com/drivermind/dmweb/pkg/adapter/db/postgres"
	"github.com/drivermind/dmweb/pkg/core/repo"
	"github.com/drivermind/dmweb/pkg/core/scram"
)

// ddl contains the statements which create all tables and indexes.
// Statements are idempotent, so `dmweb db init` may be re-run against
// a partially provisioned database. The unique index on work_days
// (user_id, date) anchors the one-day-per-date rule; violating inserts
// surface as repo.ErrDuplicateDay in the work days repository.
var ddl = []string{
	`CREATE TABLE IF NOT EXISTS work_days (
	id uuid PRIMARY KEY,
	user_id uuid NOT NULL,
	vehicle_id uuid,
	date date NOT NULL,
	km_start double precision NOT NULL,
	km_end double precision,
	status text NOT NULL,
	created_at timestamptz NOT NULL DEFAULT now(),
	UNIQUE (user_id, date)
)`,
	`CREATE TABLE IF NOT EXISTS earnings (
	id uuid PRIMARY KEY,
	work_day_id uuid NOT NULL REFERENCES work_days (id),
	platform text NOT NULL,
	amount bigint NOT NULL,
	currency text NOT NULL,
	created_at timestamptz NOT NULL DEFAULT now()
)`,
	`CREATE TABLE IF NOT EXISTS expenses (
	id uuid PRIMARY KEY,
	work_day_id uuid NOT NULL REFERENCES work_days (id),
	category text NOT NULL,
	amount bigint NOT NULL,
	currency text NOT NULL,
	note text NOT NULL DEFAULT '',
	created_at timestamptz NOT NULL DEFAULT now()
)`,
	`CREATE TABLE IF NOT EXISTS vehicles (
	id uuid PRIMARY KEY,
	user_id uuid NOT NULL,
	name text NOT NULL,
	model text NOT NULL DEFAULT '',
	plate text NOT NULL DEFAULT '',
	propulsion text NOT NULL,
	active boolean NOT NULL DEFAULT true,
	created_at timestamptz NOT NULL DEFAULT now()
)`,
	`CREATE TABLE IF NOT EXISTS maintenances (
	id uuid PRIMARY KEY,
	vehicle_id uuid NOT NULL REFERENCES vehicles (id),
	type text NOT NULL,
	cost bigint NOT NULL,
	odometer double precision NOT NULL,
	date date NOT NULL,
	note text NOT NULL DEFAULT '',
	created_at timestamptz NOT NULL DEFAULT now()
)`,
	`CREATE INDEX IF NOT EXISTS earnings_work_day_idx
	ON earnings (work_day_id)`,
	`CREATE INDEX IF NOT EXISTS expenses_work_day_idx
	ON expenses (work_day_id)`,
	`CREATE INDEX IF NOT EXISTS work_days_open_idx
	ON work_days (user_id) WHERE status = 'open'`,
	`CREATE INDEX IF NOT EXISTS maintenances_vehicle_idx
	ON maintenances (vehicle_id)`,
}

// tables lists the relations which the service role needs to reach.
var tables = []string{
	"work_days", "earnings", "expenses", "vehicles", "maintenances",
}

// CreateTables creates all tables and indexes if they do not exist.
func CreateTables[Q postgres.Queryer](ctx context.Context, q Q) error {
	for _, stmt := range ddl {
		if _, err := q.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("executing ddl: %w", err)
		}
	}
	return nil
}

// CreateRoleIfNotExists creates the `role` role if it does not
// exist right now. Although the login option is enabled for the
// created role, no specific password will be set for it.
// The ChangePasswords method may be used for setting a password if
// desired. Otherwise, that user may not login effectively (but
// using the trust or local identity methods).
//
// The role names come from the repo.Role constants, so they can be
// embedded in the statement without quoting concerns.
func CreateRoleIfNotExists[Q postgres.Queryer](
	ctx context.Context, q Q, role repo.Role,
) error {
	rows, err := q.Query(
		ctx, "SELECT 1 FROM pg_roles WHERE rolname=$1", string(role),
	)
	if err != nil {
		return fmt.Errorf("querying pg_roles: %w", err)
	}
	exists := rows.Next()
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("reading pg_roles: %w", err)
	}
	if exists {
		return nil
	}
	_, err = q.Exec(ctx, fmt.Sprintf("CREATE ROLE %s LOGIN", role))
	if err != nil {
		return fmt.Errorf("creating role: %w", err)
	}
	return nil
}

// GrantPrivileges grants the data manipulation privileges which the
// service role needs on all tables to the `role` role. Schema
// management itself stays with the admin role.
func GrantPrivileges[Q postgres.Queryer](
	ctx context.Context, q Q, role repo.Role,
) error {
	for _, table := range tables {
		_, err := q.Exec(ctx, fmt.Sprintf(
			"GRANT SELECT, INSERT, UPDATE, DELETE ON %s TO %s",
			table, role,
		))
		if err != nil {
			return fmt.Errorf("granting on %s: %w", table, err)
		}
	}
	return nil
}

// ChangePasswords updates the passwords of the given roles in the
// current transaction. The roles and passwords slices must have the
// same number of entries, so they can be used in pair.
// The `hasher` will be used for hashing of the `passwords` before
// sending them to the DBMS (so they may not leak in plaintext).
// This SCRAM hasher format must conform with the DBMS expected format.
func ChangePasswords(
	ctx context.Context,
	tx *postgres.Tx,
	hasher scram.Hasher,
	roles []repo.Role,
	passwords []string,
) error {
	if len(roles) != len(passwords) {
		return fmt.Errorf(
			"roles (%d) and passwords (%d) mismatch",
			len(roles), len(passwords),
		)
	}
	for i, role := range roles {
		hash, err := hasher.Hash(passwords[i], "", 15000)
		if err != nil {
			return fmt.Errorf("hashing password: %w", err)
		}
		_, err = tx.Exec(ctx, fmt.Sprintf(
			"ALTER ROLE %s PASSWORD '%s'", role, hash,
		))
		if err != nil {
			return fmt.Errorf("altering role %s: %w", role, err)
		}
	}
	return nil
}
