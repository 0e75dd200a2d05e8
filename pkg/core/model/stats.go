// Copyright (c) 2025-2026 DriverMind Ltda.
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

// Totals keeps one running sum per currency. Amounts in different
// currencies are never converted, so any aggregate over earnings or
// expenses is a set of independent per-currency sums.
type Totals map[Currency]Money

// Get returns the sum for the cur currency, or zero if no amount of
// that currency has been added.
func (t Totals) Get(cur Currency) Money {
	return t[cur]
}

// Add accumulates amount into the cur currency sum.
func (t Totals) Add(cur Currency, amount Money) {
	t[cur] += amount
}

// Merge adds all of the o sums into t.
func (t Totals) Merge(o Totals) {
	for cur, amount := range o {
		t[cur] += amount
	}
}

// SumEarnings sums the given earnings per currency.
func SumEarnings(earnings []Earning) Totals {
	t := Totals{}
	for i := range earnings {
		t.Add(earnings[i].Currency, earnings[i].Amount)
	}
	return t
}

// SumExpenses sums the given expenses per currency.
func SumExpenses(expenses []Expense) Totals {
	t := Totals{}
	for i := range expenses {
		t.Add(expenses[i].Currency, expenses[i].Amount)
	}
	return t
}

// Profit returns income minus cost, per currency. Currencies which
// appear in either operand appear in the result.
func Profit(income, cost Totals) Totals {
	p := Totals{}
	for cur, amount := range income {
		p[cur] = amount
	}
	for cur, amount := range cost {
		p[cur] -= amount
	}
	return p
}
