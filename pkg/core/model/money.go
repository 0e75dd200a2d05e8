// Copyright (c) 2025-2026 DriverMind Ltda.
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Money is a monetary amount in integer cents. Amounts are kept as
// integers so that sums over a day or a month are exact, independent
// of how many records are added or in which order.
type Money int64

// Float returns the amount in currency units (cents / 100). It is
// meant for rate computations such as cost per kilometer, where a
// fractional result is expected.
func (m Money) Float() float64 {
	return float64(m) / 100
}

// String renders the amount with two decimal places and no currency
// symbol, e.g. "150.00" or "-12.30".
func (m Money) String() string {
	sign := ""
	v := int64(m)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// ErrInvalidAmount indicates that a string may not be parsed as a
// non-negative monetary amount.
var ErrInvalidAmount = errors.New("invalid monetary amount")

// ParseAmount converts a decimal string to Money cents.
// Both dot (12.34) and comma (12,34) decimal separators are accepted
// since drivers enter amounts with either, depending on the device
// locale. Digits beyond the second decimal place are rounded half-up.
// Negative or empty inputs are rejected with ErrInvalidAmount.
func ParseAmount(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, ErrInvalidAmount
	}
	intPart, fracPart, _ := strings.Cut(s, ".")
	if strings.Contains(fracPart, ".") {
		return 0, ErrInvalidAmount
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart + fracPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	units, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidAmount, err)
	}
	if units > (math.MaxInt64-100)/100 {
		return 0, fmt.Errorf("%w: amount out of range", ErrInvalidAmount)
	}
	cents := units * 100
	switch n := len(fracPart); {
	case n == 0:
	case n == 1:
		d, _ := strconv.ParseInt(fracPart, 10, 64)
		cents += d * 10
	default:
		d, err := strconv.ParseInt(fracPart[:2], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrInvalidAmount, err)
		}
		cents += d
		if n > 2 && fracPart[2] >= '5' {
			cents++ // round half-up on the third decimal digit
		}
	}
	return Money(cents), nil
}

// Currency enumerates the currencies an Earning or Expense may be
// recorded in. Amounts in different currencies are never converted or
// mixed; aggregation keeps one sum per currency.
type Currency string

// Valid values for the Currency enum.
const (
	BRL Currency = "BRL"
	USD Currency = "USD"
)

// ErrUnknownCurrency indicates that a given string may not be parsed
// as a supported currency code.
var ErrUnknownCurrency = errors.New("unknown currency")

// Validate returns nil if the Currency value is valid.
func (c Currency) Validate() error {
	switch c {
	case BRL, USD:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCurrency, string(c))
	}
}

// ParseCurrency parses the given string as a Currency code, helping
// to deserialize it when reading a REST API request.
func ParseCurrency(s string) (Currency, error) {
	c := Currency(strings.ToUpper(s))
	if err := c.Validate(); err != nil {
		return "", err
	}
	return c, nil
}
