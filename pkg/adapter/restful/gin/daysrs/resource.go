// Copyright (c) 2025-2026 DriverMind Ltda.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package daysrs realizes the work days resource, allowing the day
// lifecycle REST APIs to be accepted and delegated to the work day
// use cases respectively.
package daysrs

import (
	"net/http"

	"github.com/drivermind/dmweb/pkg/adapter/restful/gin/authn"
	"github.com/drivermind/dmweb/pkg/adapter/restful/gin/serdser"
	"github.com/drivermind/dmweb/pkg/core/model"
	"github.com/drivermind/dmweb/pkg/core/usecase/dayuc"
	"github.com/gin-gonic/gin"
)

type resource struct {
	days *dayuc.UseCase
}

// Register instantiates a resource adapting the work day use case
// instance with the relevant REST APIs including:
//  1. POST request to /api/dmweb/v1/days
//     in order to start (or adopt/resume) today's work day,
//  2. GET request to /api/dmweb/v1/days/today
//     in order to obtain today's day board with its records,
//  3. PATCH request to /api/dmweb/v1/days/:did
//     in order to end or reopen a day, and
//  4. DELETE request to /api/dmweb/v1/days/:did
//     in order to delete a day with its child records.
func Register(r *gin.RouterGroup, days *dayuc.UseCase) {
	rs := &resource{days: days}
	r.POST("days", rs.StartDay)
	r.GET("days/today", rs.Board)
	r.PATCH("days/:did", rs.UpdateDay)
	r.DELETE("days/:did", rs.DeleteDay)
}

func (rs *resource) StartDay(c *gin.Context) {
	req := rs.DserStartDayReq(c)
	if req == nil {
		return
	}
	user := authn.User(c)
	start, err := rs.days.StartDay(
		c, user.ID, req.VehicleID, req.KmStart,
	)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	status := http.StatusOK
	if start.Outcome == model.StartCreated {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{
		"outcome": start.Outcome.String(),
		"day":     start.Day,
	})
}

func (rs *resource) Board(c *gin.Context) {
	user := authn.User(c)
	board, err := rs.days.Board(c, user.ID)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	// Goals are configured in the home currency, so progress is
	// measured against the BRL profit only.
	progress := model.GoalProgress(
		board.Profit.Get(model.BRL), user.Profile.DailyGoal,
	)
	c.JSON(http.StatusOK, gin.H{
		"board":         board,
		"goal_progress": progress,
	})
}

func (rs *resource) UpdateDay(c *gin.Context) {
	req := rs.DserUpdateDayReq(c)
	if req == nil {
		return
	}
	user := authn.User(c)
	var day *model.WorkDay
	var err error
	switch req.Op {
	case "end":
		day, err = rs.days.EndDay(c, user.ID, req.DayID, req.KmEnd)
	case "reopen":
		day, err = rs.days.ReopenDay(c, user.ID, req.DayID)
	default:
		panic("unexpected op:" + req.Op)
	}
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, day)
}

func (rs *resource) DeleteDay(c *gin.Context) {
	req := rs.DserDayIDReq(c)
	if req == nil {
		return
	}
	user := authn.User(c)
	if err := rs.days.DeleteDay(c, user.ID, req.DayID); err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
