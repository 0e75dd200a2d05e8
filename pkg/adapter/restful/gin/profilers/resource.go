// Copyright (c) 2025-2026 DriverMind Ltda.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package profilers realizes the profile resource, exposing the
// driver's profile metadata as cached on the identity record.
package profilers

import (
	"net/http"

	"github.com/drivermind/dmweb/pkg/adapter/restful/gin/authn"
	"github.com/drivermind/dmweb/pkg/adapter/restful/gin/serdser"
	"github.com/drivermind/dmweb/pkg/core/model"
	"github.com/drivermind/dmweb/pkg/core/usecase/profileuc"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type resource struct {
	profile *profileuc.UseCase
}

// Register instantiates a resource adapting the profile use case
// instance with the relevant REST APIs including:
//  1. GET request to /api/dmweb/v1/profile
//     in order to obtain the authenticated user with its profile, and
//  2. PUT request to /api/dmweb/v1/profile
//     in order to replace the profile preferences.
func Register(r *gin.RouterGroup, profile *profileuc.UseCase) {
	rs := &resource{profile: profile}
	r.GET("profile", rs.GetProfile)
	r.PUT("profile", rs.UpdateProfile)
}

func (rs *resource) GetProfile(c *gin.Context) {
	user := authn.User(c)
	c.JSON(http.StatusOK, gin.H{
		"id":      user.ID,
		"email":   user.Email,
		"profile": user.Profile,
	})
}

type rawUpdateProfileReq struct {
	DisplayName string `json:"display_name" binding:"omitempty,max=100"`
	DailyGoal   string `json:"daily_goal" binding:"omitempty"`
	MonthlyGoal string `json:"monthly_goal" binding:"omitempty"`
}

func (rs *resource) UpdateProfile(c *gin.Context) {
	req := &rawUpdateProfileReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return
	}
	p := model.Profile{DisplayName: req.DisplayName}
	var errs map[string][]string
	var err error
	if req.DailyGoal != "" {
		p.DailyGoal, err = model.ParseAmount(req.DailyGoal)
		serdser.Assert(
			&errs, err == nil, "daily_goal", "Not a money amount.",
		)
	}
	if req.MonthlyGoal != "" {
		p.MonthlyGoal, err = model.ParseAmount(req.MonthlyGoal)
		serdser.Assert(
			&errs, err == nil, "monthly_goal", "Not a money amount.",
		)
	}
	if errs != nil {
		c.JSON(http.StatusBadRequest, errs)
		return
	}
	user := authn.User(c)
	if err := rs.profile.UpdateProfile(c, user, p); err != nil {
		serdser.SerErr(c, err)
		return
	}
	p.Subscribed = user.Profile.Subscribed
	c.JSON(http.StatusOK, gin.H{
		"id":      user.ID,
		"email":   user.Email,
		"profile": p,
	})
}
