// Copyright (c) 2025-2026 DriverMind Ltda.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package schemarp provides a reification of the repo.Schema
// interface, backing the `dmweb db init` command: it creates the
// tables, provisions the unprivileged service role, and sets role
// passwords via locally computed SCRAM hashes.
package schemarp

import (
	"context"

	"github.com/drivermind/dmweb/pkg/adapter/db/postgres"
	"github.com/drivermind/dmweb/pkg/core/repo"
	"github.com/drivermind/dmweb/pkg/core/scram"
)

// Repo represents a schema management repository.
type Repo struct {
	hasher scram.Hasher
}

// New instantiates a schema management Repo struct. The hasher is
// used by ChangePasswords in order to hash role passwords locally,
// before sending them to the DBMS.
func New(hasher scram.Hasher) *Repo {
	return &Repo{hasher: hasher}
}

type connQueryer struct {
	conn *postgres.Conn
}

// Conn unwraps the given repo.Conn instance, expecting to find an
// instance of *postgres.Conn as created by this adapter layer.
// Otherwise, it will panic. Unwrapped connection will be wrapped and
// returned as an instance of repo.SchemaConnQueryer interface, so
// it can be used in the use cases layer without requiring to type
// assert again and again.
func (schema *Repo) Conn(c repo.Conn) repo.SchemaConnQueryer {
	cc := c.(*postgres.Conn)
	return connQueryer{conn: cc}
}

func (cq connQueryer) CreateTables(ctx context.Context) error {
	return CreateTables(ctx, cq.conn)
}

func (cq connQueryer) CreateRoleIfNotExists(
	ctx context.Context, role repo.Role,
) error {
	return CreateRoleIfNotExists(ctx, cq.conn, role)
}

func (cq connQueryer) GrantPrivileges(
	ctx context.Context, role repo.Role,
) error {
	return GrantPrivileges(ctx, cq.conn, role)
}

type txQueryer struct {
	tx     *postgres.Tx
	hasher scram.Hasher
}

// Tx unwraps the given repo.Tx instance, expecting to find an instance
// of *postgres.Tx as created by this adapter layer. Otherwise, it will
// panic. Unwrapped transaction will be wrapped and returned as an
// instance of repo.SchemaTxQueryer interface.
//
// ChangePasswords mandates a transaction. When creating roles for the
// first time, it is desired to change/set their passwords before
// making them visible by committing the transaction, so a partially
// provisioned role is never observed by other sessions.
func (schema *Repo) Tx(tx repo.Tx) repo.SchemaTxQueryer {
	tt := tx.(*postgres.Tx)
	return txQueryer{tx: tt, hasher: schema.hasher}
}

func (tq txQueryer) CreateTables(ctx context.Context) error {
	return CreateTables(ctx, tq.tx)
}

func (tq txQueryer) CreateRoleIfNotExists(
	ctx context.Context, role repo.Role,
) error {
	return CreateRoleIfNotExists(ctx, tq.tx, role)
}

func (tq txQueryer) GrantPrivileges(
	ctx context.Context, role repo.Role,
) error {
	return GrantPrivileges(ctx, tq.tx, role)
}

func (tq txQueryer) ChangePasswords(
	ctx context.Context, roles []repo.Role, passwords []string,
) error {
	return ChangePasswords(ctx, tq.tx, tq.hasher, roles, passwords)
}
