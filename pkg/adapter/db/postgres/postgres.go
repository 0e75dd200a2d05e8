// Copyright (c) 2025-2026 DriverMind Ltda.
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package postgres provides the PostgreSQL adaptation of the
// repo.Pool, repo.Conn, and repo.Tx interfaces on top of the GORM
// framework, plus the error inspection helpers which the repository
// packages share.
package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation is the SQLSTATE reported by PostgreSQL when an
// insert or update breaks a unique constraint. The work days
// repository depends on it to detect a second start for the same
// (user, date).
const uniqueViolation = "23505"

// IsUniqueViolation reports whether err is a PostgreSQL unique
// constraint violation, unwrapped through any error chain.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) &&
		pgErr.SQLState() == uniqueViolation
}
