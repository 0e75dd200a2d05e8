// Copyright (c) 2025-2026 DriverMind Ltda.
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

// DaySummary is one closed work day with its raw child records and
// the financial figures derived from them. The raw lists are kept
// because the history view offers a drill-down per day.
type DaySummary struct {
	Day      WorkDay
	Earnings []Earning
	Expenses []Expense

	Income Totals
	Cost   Totals
	Profit Totals
}

// Summarize derives the financial figures of one day from its child
// records. Totals are always recomputed from the full child set; no
// running total is cached anywhere.
func Summarize(day WorkDay, earnings []Earning, expenses []Expense) DaySummary {
	income := SumEarnings(earnings)
	cost := SumExpenses(expenses)
	return DaySummary{
		Day:      day,
		Earnings: earnings,
		Expenses: expenses,
		Income:   income,
		Cost:     cost,
		Profit:   Profit(income, cost),
	}
}

// MonthGroup aggregates the closed days of one calendar month for the
// history report. Days keep the order they were fetched in, which is
// date-descending.
type MonthGroup struct {
	Label string // month group key, e.g. "January 2026"
	Days  []DaySummary

	Profit Totals
	Cost   Totals
	Km     float64
}

// CostPerKm returns the month's cost per driven kilometer in the cur
// currency, or zero when no mileage was recorded.
func (g *MonthGroup) CostPerKm(cur Currency) float64 {
	if g.Km <= 0 {
		return 0
	}
	return g.Cost.Get(cur).Float() / g.Km
}
