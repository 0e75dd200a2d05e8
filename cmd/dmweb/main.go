// Copyright (c) 2025-2026 DriverMind Ltda.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package main

import "github.com/drivermind/dmweb/cmd/dmweb/command"

func main() {
	command.Execute()
}
