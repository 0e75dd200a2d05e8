// Copyright (c) 2025-2026 DriverMind Ltda.
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package historyuc contains the history UseCase which compiles the
// month-grouped report of a driver's closed work days.
package historyuc

import (
	"context"
	"fmt"

	"github.com/drivermind/dmweb/pkg/core/model"
	"github.com/drivermind/dmweb/pkg/core/repo"
	"github.com/google/uuid"
)

// UseCase represents the history use case. It holds a database
// connection pool and the work day and ledger repository instances
// (to be guided with the DB pool).
type UseCase struct {
	pool     repo.Pool
	daysrp   repo.Workdays
	ledgerrp repo.Ledger
}

// New instantiates a history use case.
func New(p repo.Pool, d repo.Workdays, l repo.Ledger) *UseCase {
	return &UseCase{pool: p, daysrp: d, ledgerrp: l}
}

// Monthly use case fetches all of the user's closed days ordered by
// date descending, bulk-fetches their child records in one query per
// table (instead of one pair of queries per day), and compiles the
// month groups.
func (history *UseCase) Monthly(
	ctx context.Context, userID uuid.UUID,
) (groups []model.MonthGroup, err error) {
	err = history.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		days, err := history.daysrp.Conn(c).ListClosed(ctx, userID)
		if err != nil {
			return fmt.Errorf("listing closed days: %w", err)
		}
		if len(days) == 0 {
			groups = nil
			return nil
		}
		ids := make([]uuid.UUID, len(days))
		for i := range days {
			ids[i] = days[i].ID
		}
		lq := history.ledgerrp.Conn(c)
		earnings, err := lq.EarningsOf(ctx, ids)
		if err != nil {
			return fmt.Errorf("bulk fetching earnings: %w", err)
		}
		expenses, err := lq.ExpensesOf(ctx, ids)
		if err != nil {
			return fmt.Errorf("bulk fetching expenses: %w", err)
		}
		groups = Compile(days, earnings, expenses)
		return nil
	})
	if err != nil {
		groups = nil
	}
	return
}

// Compile groups the given closed days by calendar month and derives
// the per-day and per-month financial figures. Days keep their given
// order, both across groups (a group appears when its first day does)
// and within each group, so a date-descending input yields a
// date-descending report. Every day lands in exactly one group.
//
// Compile is pure so its grouping and aggregation arithmetic can be
// exercised without a database.
func Compile(
	days []model.WorkDay,
	earnings []model.Earning,
	expenses []model.Expense,
) []model.MonthGroup {
	earningsByDay := make(map[uuid.UUID][]model.Earning)
	for _, e := range earnings {
		earningsByDay[e.WorkDayID] = append(earningsByDay[e.WorkDayID], e)
	}
	expensesByDay := make(map[uuid.UUID][]model.Expense)
	for _, x := range expenses {
		expensesByDay[x.WorkDayID] = append(expensesByDay[x.WorkDayID], x)
	}

	var groups []model.MonthGroup
	index := make(map[string]int) // month key to groups offset
	for _, day := range days {
		s := model.Summarize(
			day, earningsByDay[day.ID], expensesByDay[day.ID],
		)
		key := day.MonthKey()
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, model.MonthGroup{
				Label:  key,
				Profit: model.Totals{},
				Cost:   model.Totals{},
			})
		}
		g := &groups[i]
		g.Days = append(g.Days, s)
		g.Profit.Merge(s.Profit)
		g.Cost.Merge(s.Cost)
		g.Km += day.KmDriven()
	}
	return groups
}
