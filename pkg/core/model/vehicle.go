// Copyright (c) 2025-2026 DriverMind Ltda.
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Propulsion enumerates how a vehicle is powered. It only affects
// presentation and reporting; no use case branches on it.
type Propulsion string

// Valid values for the Propulsion enum.
const (
	PropulsionCombustion Propulsion = "combustion"
	PropulsionElectric   Propulsion = "electric"
	PropulsionMotorcycle Propulsion = "motorcycle"
)

// ErrUnknownPropulsion indicates that a given string may not be
// parsed as a valid/known propulsion type.
var ErrUnknownPropulsion = errors.New("unknown propulsion type")

// Validate returns nil if the Propulsion value is valid.
func (p Propulsion) Validate() error {
	switch p {
	case PropulsionCombustion, PropulsionElectric,
		PropulsionMotorcycle:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownPropulsion, string(p))
	}
}

// ParsePropulsion parses the given string as a Propulsion, helping to
// deserialize it when reading a REST API request.
func ParsePropulsion(s string) (Propulsion, error) {
	p := Propulsion(s)
	if err := p.Validate(); err != nil {
		return "", err
	}
	return p, nil
}

// Vehicle is a driver's registered vehicle. Work days reference a
// vehicle but never own it; deleting a vehicle does not touch the
// days that were driven with it.
type Vehicle struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	Name       string
	Model      string
	Plate      string
	Propulsion Propulsion
	Active     bool
	CreatedAt  time.Time
}

// MaintenanceType enumerates the kinds of service a Maintenance
// record may document.
type MaintenanceType string

// Valid values for the MaintenanceType enum.
const (
	MaintenanceOil    MaintenanceType = "oil"
	MaintenanceReview MaintenanceType = "review"
	MaintenanceTires  MaintenanceType = "tires"
	MaintenanceMisc   MaintenanceType = "other"
)

// ErrUnknownMaintenanceType indicates that a given string may not be
// parsed as a valid/known maintenance type.
var ErrUnknownMaintenanceType = errors.New("unknown maintenance type")

// Validate returns nil if the MaintenanceType value is valid.
func (t MaintenanceType) Validate() error {
	switch t {
	case MaintenanceOil, MaintenanceReview, MaintenanceTires,
		MaintenanceMisc:
		return nil
	default:
		return fmt.Errorf(
			"%w: %q", ErrUnknownMaintenanceType, string(t),
		)
	}
}

// ParseMaintenanceType parses the given string as a MaintenanceType,
// helping to deserialize it when reading a REST API request.
func ParseMaintenanceType(s string) (MaintenanceType, error) {
	t := MaintenanceType(s)
	if err := t.Validate(); err != nil {
		return "", err
	}
	return t, nil
}

// Maintenance documents one service performed on a vehicle. It is
// owned by the vehicle and independent of any work day.
type Maintenance struct {
	ID        uuid.UUID
	VehicleID uuid.UUID
	Type      MaintenanceType
	Cost      Money
	Odometer  float64 // odometer reading at service time
	Date      time.Time
	Note      string // optional free text
	CreatedAt time.Time
}
