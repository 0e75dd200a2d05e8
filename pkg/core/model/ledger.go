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

// Platform enumerates the ride-hailing services an Earning may be
// attributed to. The private value covers rides arranged outside any
// platform ("por fora").
type Platform string

// Valid values for the Platform enum.
const (
	PlatformUber       Platform = "uber"
	PlatformNinetyNine Platform = "99"
	PlatformInDrive    Platform = "indrive"
	PlatformPrivate    Platform = "private"
)

// ErrUnknownPlatform indicates that a given string may not be parsed
// as a valid/known earning platform.
var ErrUnknownPlatform = errors.New("unknown platform")

// Validate returns nil if the Platform value is valid.
func (p Platform) Validate() error {
	switch p {
	case PlatformUber, PlatformNinetyNine, PlatformInDrive,
		PlatformPrivate:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownPlatform, string(p))
	}
}

// ParsePlatform parses the given string as a Platform, helping to
// deserialize it when reading a REST API request.
func ParsePlatform(s string) (Platform, error) {
	p := Platform(s)
	if err := p.Validate(); err != nil {
		return "", err
	}
	return p, nil
}

// ExpenseCategory enumerates the classification labels an Expense may
// carry.
type ExpenseCategory string

// Valid values for the ExpenseCategory enum.
const (
	ExpenseFuel        ExpenseCategory = "fuel"
	ExpenseFood        ExpenseCategory = "food"
	ExpenseMaintenance ExpenseCategory = "maintenance"
	ExpenseOther       ExpenseCategory = "other"
)

// ErrUnknownExpenseCategory indicates that a given string may not be
// parsed as a valid/known expense category.
var ErrUnknownExpenseCategory = errors.New("unknown expense category")

// Validate returns nil if the ExpenseCategory value is valid.
func (c ExpenseCategory) Validate() error {
	switch c {
	case ExpenseFuel, ExpenseFood, ExpenseMaintenance, ExpenseOther:
		return nil
	default:
		return fmt.Errorf(
			"%w: %q", ErrUnknownExpenseCategory, string(c),
		)
	}
}

// ParseExpenseCategory parses the given string as an ExpenseCategory,
// helping to deserialize it when reading a REST API request.
func ParseExpenseCategory(s string) (ExpenseCategory, error) {
	c := ExpenseCategory(s)
	if err := c.Validate(); err != nil {
		return "", err
	}
	return c, nil
}

// Earning is one income record attached to a WorkDay. Earnings are
// owned exclusively by their day: they are never mutated after
// creation and are cascaded away when the day is deleted.
type Earning struct {
	ID        uuid.UUID
	WorkDayID uuid.UUID
	Platform  Platform
	Amount    Money
	Currency  Currency
	CreatedAt time.Time
}

// Expense is one cost record attached to a WorkDay, with the same
// ownership and lifecycle rules as Earning.
type Expense struct {
	ID        uuid.UUID
	WorkDayID uuid.UUID
	Category  ExpenseCategory
	Amount    Money
	Currency  Currency
	Note      string // optional free text
	CreatedAt time.Time
}
