// Copyright (c) 2025-2026 DriverMind Ltda.
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package dayuc

import (
	"errors"
	"time"
)

// Option is a functional option for the work day use case.
type Option func(uc *UseCase) error

// WithClock option configures a work day UseCase instance to resolve
// "today" through the given clock instead of time.Now. Test cases use
// it to pin the calendar date; the serve command does not pass it.
// This option may be passed to the New() function.
func WithClock(now func() time.Time) Option {
	return func(uc *UseCase) error {
		if now == nil {
			return errors.New("clock must be non-nil")
		}
		if uc.now != nil {
			return errors.New("clock is already configured")
		}
		uc.now = now
		return nil
	}
}
