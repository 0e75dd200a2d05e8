// Copyright (c) 2025-2026 DriverMind Ltda.
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package model defines the inner most layer of the Clean Architecture
// containing the business-level models, also called entities or domain.
// This layer may not depend on outter layers, while all other layers
// may depend on it.
// By the way, it is acceptable to annotate structs in this package with
// multiple frameworks dependent tags (e.g., as required by ORM
// libraries) since adding more tags does not complicate definition of
// a struct, but can prevent unnecessary structs duplication.
package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DayStatus specifies the lifecycle state of a WorkDay. A day is open
// while the driver is on the road and closed after the ending odometer
// reading has been recorded. A closed day may be reopened, which
// clears the ending odometer again.
type DayStatus string

// Valid values for the DayStatus enum.
const (
	DayOpen   DayStatus = "open"
	DayClosed DayStatus = "closed"
)

// ErrUnknownDayStatus indicates that a given string may not be parsed
// as a valid/known work day status.
var ErrUnknownDayStatus = errors.New("unknown work day status")

// Validate returns nil if the DayStatus value is valid.
func (s DayStatus) Validate() error {
	switch s {
	case DayOpen, DayClosed:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDayStatus, string(s))
	}
}

// WorkDay bounds one driver's earning and expense activity for a
// single local calendar date, together with the odometer readings at
// the start and end of the shift.
//
// At most one WorkDay may exist per (user, date). That invariant is
// enforced by a unique index at the storage layer, not in application
// memory, so a racing second insert is reported by the DBMS and then
// resolved (see the dayuc.StartDay use case).
type WorkDay struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	VehicleID *uuid.UUID // nil until the day is adopted by a vehicle
	Date      time.Time  // local calendar date; time-of-day is zero
	KmStart   float64
	KmEnd     *float64 // nil while the day is open
	Status    DayStatus
	CreatedAt time.Time
}

// Open reports whether the day is still accepting transactions.
func (d *WorkDay) Open() bool {
	return d.Status == DayOpen
}

// KmDriven returns the mileage driven during the day, if the ending
// odometer has been recorded, and zero otherwise. The difference is
// returned as-is; an ending reading below the starting one yields a
// negative mileage since neither reading is cross-validated.
func (d *WorkDay) KmDriven() float64 {
	if d.KmEnd == nil {
		return 0
	}
	return *d.KmEnd - d.KmStart
}

// MonthKey returns the calendar month group key for this day, used by
// the history report to bucket days, e.g. "January 2026".
func (d *WorkDay) MonthKey() string {
	return d.Date.Format("January 2006")
}

// StartOutcome tags the result of a StartDay attempt. Starting a day
// is not a plain insert: when a row for (user, today) already exists,
// the attempt is resolved against it and the caller needs to know
// which resolution took place.
type StartOutcome int

// Valid values for the StartOutcome enum.
const (
	StartOutcomeInvalid StartOutcome = iota // zero value is invalid

	StartCreated // a fresh open day was inserted
	StartAdopted // an existing vehicle-less day was claimed
	StartResumed // the same vehicle had already opened today
)

// String converts the StartOutcome enum to a string, helping to
// serialize it for transmission to web clients. Invalid outcome
// values cause a panic.
func (o StartOutcome) String() string {
	switch o {
	case StartCreated:
		return "created"
	case StartAdopted:
		return "adopted"
	case StartResumed:
		return "resumed"
	default:
		panic(fmt.Sprintf("invalid start outcome: %d", int(o)))
	}
}

// DayStart is the result of a successful StartDay use case: the
// resolved open day together with how it was resolved.
type DayStart struct {
	Outcome StartOutcome
	Day     WorkDay
}

// DayConflictError indicates that today's work day is already bound
// to a different vehicle. No automatic merge or override is performed
// because that would silently overwrite the other vehicle's odometer
// baseline; the driver must switch to the bound vehicle or delete the
// conflicting day first.
type DayConflictError struct {
	BoundVehicleID uuid.UUID // the vehicle holding today's day
}

// Error implements the error interface.
func (e *DayConflictError) Error() string {
	return fmt.Sprintf(
		"today is already opened with vehicle %s", e.BoundVehicleID,
	)
}

// ErrNoActiveDay indicates that a transaction was attempted while no
// work day is open for today. The caller is expected to direct the
// driver to start a day first.
var ErrNoActiveDay = errors.New("no open work day for today")

// ErrDayNotOpen indicates that a day-closing mutation was attempted
// on a day which is not open.
var ErrDayNotOpen = errors.New("work day is not open")
