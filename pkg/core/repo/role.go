// Copyright (c) 2025-2026 DriverMind Ltda.
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

// Role is a string specifying a database connection role. Each role
// has a set of granted privileges which indicates which operations
// may be performed after using it for connecting to a database.
type Role string

// These constants specify the expected database roles. The AdminRole
// must exist beforehand (i.e., must be created manually) and must be
// privileged enough to create other roles and tables; it is only used
// by the `dmweb db init` command. All normal service operations
// connect as the NormalRole, which cannot touch anything beyond the
// DriverMind tables.
const (
	AdminRole  Role = "admin"
	NormalRole Role = "dmweb"
)
