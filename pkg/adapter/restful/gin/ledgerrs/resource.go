// Copyright (c) 2025-2026 DriverMind Ltda.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package ledgerrs realizes the ledger resource, allowing the earning
// and expense REST APIs to be accepted and delegated to the ledger
// use cases respectively. Records always land on today's open day;
// clients never name a day identifier when recording.
package ledgerrs

import (
	"net/http"

	"github.com/drivermind/dmweb/pkg/adapter/restful/gin/authn"
	"github.com/drivermind/dmweb/pkg/adapter/restful/gin/serdser"
	"github.com/drivermind/dmweb/pkg/core/usecase/ledgeruc"
	"github.com/gin-gonic/gin"
)

type resource struct {
	ledger *ledgeruc.UseCase
}

// Register instantiates a resource adapting the ledger use case
// instance with the relevant REST APIs including:
//  1. POST request to /api/dmweb/v1/earnings
//     in order to record an income on today's open day,
//  2. POST request to /api/dmweb/v1/expenses
//     in order to record a cost on today's open day,
//  3. DELETE requests to /api/dmweb/v1/earnings/:rid and
//     /api/dmweb/v1/expenses/:rid
//     in order to remove one record each.
func Register(r *gin.RouterGroup, ledger *ledgeruc.UseCase) {
	rs := &resource{ledger: ledger}
	r.POST("earnings", rs.AddEarning)
	r.POST("expenses", rs.AddExpense)
	r.DELETE("earnings/:rid", rs.DeleteEarning)
	r.DELETE("expenses/:rid", rs.DeleteExpense)
}

func (rs *resource) AddEarning(c *gin.Context) {
	req := rs.DserAddEarningReq(c)
	if req == nil {
		return
	}
	user := authn.User(c)
	earning, err := rs.ledger.AddEarning(
		c, user.ID, req.Amount, req.Platform, req.Currency,
	)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, earning)
}

func (rs *resource) AddExpense(c *gin.Context) {
	req := rs.DserAddExpenseReq(c)
	if req == nil {
		return
	}
	user := authn.User(c)
	expense, err := rs.ledger.AddExpense(
		c, user.ID, req.Amount, req.Category, req.Currency, req.Note,
	)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, expense)
}

func (rs *resource) DeleteEarning(c *gin.Context) {
	req := rs.DserRecordIDReq(c)
	if req == nil {
		return
	}
	user := authn.User(c)
	if err := rs.ledger.DeleteEarning(c, user.ID, req.RecordID); err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (rs *resource) DeleteExpense(c *gin.Context) {
	req := rs.DserRecordIDReq(c)
	if req == nil {
		return
	}
	user := authn.User(c)
	if err := rs.ledger.DeleteExpense(c, user.ID, req.RecordID); err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
