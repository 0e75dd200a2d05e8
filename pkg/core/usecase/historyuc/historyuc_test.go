// Copyright (c) 2025-2026 DriverMind Ltda.
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package historyuc_test

import (
	"testing"
	"time"

	"github.com/drivermind/dmweb/pkg/core/model"
	"github.com/drivermind/dmweb/pkg/core/usecase/historyuc"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func closedDay(date string, kmStart, kmEnd float64) model.WorkDay {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	return model.WorkDay{
		ID:      uuid.New(),
		Date:    d,
		KmStart: kmStart,
		KmEnd:   &kmEnd,
		Status:  model.DayClosed,
	}
}

func TestCompileGroupsByMonthPreservingOrder(t *testing.T) {
	mar2 := closedDay("2026-03-20", 0, 120)
	mar1 := closedDay("2026-03-05", 100, 180)
	feb := closedDay("2026-02-28", 0, 50)

	days := []model.WorkDay{mar2, mar1, feb} // date-descending
	earnings := []model.Earning{
		{WorkDayID: mar2.ID, Amount: 20000, Currency: model.BRL},
		{WorkDayID: mar1.ID, Amount: 10000, Currency: model.BRL},
		{WorkDayID: feb.ID, Amount: 5000, Currency: model.BRL},
	}
	expenses := []model.Expense{
		{WorkDayID: mar1.ID, Amount: 4000, Currency: model.BRL},
		{WorkDayID: feb.ID, Amount: 1000, Currency: model.USD},
	}

	groups := historyuc.Compile(days, earnings, expenses)
	require.Len(t, groups, 2)

	mar := groups[0]
	assert.Equal(t, "March 2026", mar.Label)
	require.Len(t, mar.Days, 2)
	assert.Equal(t, mar2.ID, mar.Days[0].Day.ID)
	assert.Equal(t, mar1.ID, mar.Days[1].Day.ID)
	assert.Equal(t, model.Money(26000), mar.Profit.Get(model.BRL))
	assert.Equal(t, model.Money(4000), mar.Cost.Get(model.BRL))
	assert.Equal(t, 200.0, mar.Km)

	fb := groups[1]
	assert.Equal(t, "February 2026", fb.Label)
	assert.Equal(t, model.Money(5000), fb.Profit.Get(model.BRL))
	// USD cost stays in its own sum and never nets against BRL
	assert.Equal(t, model.Money(-1000), fb.Profit.Get(model.USD))
	assert.Equal(t, 50.0, fb.Km)
}

func TestCompileEmptyDays(t *testing.T) {
	assert.Nil(t, historyuc.Compile(nil, nil, nil))
}

func TestCompileDayWithoutRecords(t *testing.T) {
	d := closedDay("2026-01-02", 10, 20)
	groups := historyuc.Compile([]model.WorkDay{d}, nil, nil)
	require.Len(t, groups, 1)
	assert.Equal(t, model.Money(0), groups[0].Profit.Get(model.BRL))
	assert.Equal(t, 10.0, groups[0].Km)
	assert.Empty(t, groups[0].Days[0].Earnings)
}
