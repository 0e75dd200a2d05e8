// Copyright (c) 2025-2026 DriverMind Ltda.
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import "context"

// Schema interface presents expectations from a repository which
// allows database tables and roles management. It backs the `dmweb db
// init` command which prepares a fresh database: table creation, the
// unprivileged service role, and its password.
type Schema interface {
	// Conn takes a Conn interface instance, unwraps it as required,
	// and returns a SchemaConnQueryer interface which (with access to
	// the implementation-dependent connection object) can create
	// tables or manage database roles.
	Conn(Conn) SchemaConnQueryer

	// Tx takes a Tx interface instance, unwraps it as required, and
	// returns a SchemaTxQueryer interface which additionally can
	// change role passwords within the ongoing transaction.
	Tx(Tx) SchemaTxQueryer
}

// SchemaConnQueryer interface lists the schema operations which may
// be taken having an open connection with auto-committed transactions.
type SchemaConnQueryer interface {
	SchemaQueryer
}

// SchemaTxQueryer interface lists the schema operations which may be
// taken having an ongoing transaction. Password changes must run in a
// transaction so a partially provisioned role is never committed.
type SchemaTxQueryer interface {
	SchemaQueryer

	// ChangePasswords updates the passwords of the given roles in the
	// current transaction. The roles and passwords slices must have
	// the same number of entries, so they can be used in pair.
	// Passwords are hashed before being embedded in the ALTER ROLE
	// statement, so the plaintext never reaches the DBMS logs.
	ChangePasswords(
		ctx context.Context, roles []Role, passwords []string,
	) error
}

// SchemaQueryer interface lists common schema operations which may be
// taken with either a connection or an open transaction at hand.
type SchemaQueryer interface {
	// CreateTables creates all DriverMind tables and indexes if they
	// do not exist, including the unique (user_id, date) index on
	// work_days which anchors the one-day-per-date invariant.
	CreateTables(ctx context.Context) error

	// CreateRoleIfNotExists creates the `role` role if it does not
	// exist right now. Although the login option is enabled for the
	// created role, no specific password will be set for it; the
	// ChangePasswords method may be used for setting one.
	CreateRoleIfNotExists(ctx context.Context, role Role) error

	// GrantPrivileges grants the privileges which the service role
	// needs on the DriverMind tables to the `role` role.
	GrantPrivileges(ctx context.Context, role Role) error
}
