// Copyright (c) 2025-2026 DriverMind Ltda.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package setupuc provides the database provisioning use case, backing
// the `dmweb db init` command.
package setupuc

import (
	"context"
	"fmt"

	"github.com/drivermind/dmweb/pkg/core/repo"
)

// UseCase represents the database provisioning use case. It prepares a
// fresh (or partially provisioned) database for serving: all tables
// and indexes, the unprivileged service role, its table privileges,
// and its password.
type UseCase struct {
	pool     repo.Pool   // admin connections pool
	schemarp repo.Schema // schema management repo
}

// New instantiates a provisioning use case. The `p` pool must be
// connected with the admin role since role and table management
// require its privileges.
func New(p repo.Pool, s repo.Schema) *UseCase {
	return &UseCase{pool: p, schemarp: s}
}

// Provision creates all tables (if missing), creates the service role
// (if missing), grants it the data manipulation privileges, and sets
// its password. Everything runs in one transaction, so an abrupt
// failure never leaves a half-provisioned role visible; re-running
// after a failure is safe since each step is idempotent.
func (setup *UseCase) Provision(
	ctx context.Context, servicePass string,
) error {
	if servicePass == "" {
		return fmt.Errorf("service role password must be non-empty")
	}
	return setup.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			q := setup.schemarp.Tx(tx)
			if err := q.CreateTables(ctx); err != nil {
				return fmt.Errorf("creating tables: %w", err)
			}
			err := q.CreateRoleIfNotExists(ctx, repo.NormalRole)
			if err != nil {
				return fmt.Errorf("creating service role: %w", err)
			}
			if err := q.GrantPrivileges(ctx, repo.NormalRole); err != nil {
				return fmt.Errorf("granting privileges: %w", err)
			}
			err = q.ChangePasswords(
				ctx,
				[]repo.Role{repo.NormalRole},
				[]string{servicePass},
			)
			if err != nil {
				return fmt.Errorf("setting role password: %w", err)
			}
			return nil
		})
	})
}
