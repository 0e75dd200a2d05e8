// Copyright (c) 2025-2026 DriverMind Ltda.
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

// Tx represents a database transaction. It is unsafe to be used
// concurrently. All statements which run in a single transaction
// observe the ACID properties; a READ-COMMITTED transaction is
// expected from a PostgreSQL DBMS server by default. The day deletion
// cascade relies on this: either all child rows and the day row go
// away together, or none of them do.
type Tx interface {
	Queryer

	// IsTx method prevents a non-Tx object (such as a Conn) to
	// mistakenly implement the Tx interface.
	IsTx()
}
