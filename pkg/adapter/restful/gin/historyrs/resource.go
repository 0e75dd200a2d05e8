// Copyright (c) 2025-2026 DriverMind Ltda.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package historyrs realizes the history resource, exposing the
// compiled month groups of the user's closed work days.
package historyrs

import (
	"net/http"

	"github.com/drivermind/dmweb/pkg/adapter/restful/gin/authn"
	"github.com/drivermind/dmweb/pkg/adapter/restful/gin/serdser"
	"github.com/drivermind/dmweb/pkg/core/model"
	"github.com/drivermind/dmweb/pkg/core/usecase/historyuc"
	"github.com/gin-gonic/gin"
)

type resource struct {
	history *historyuc.UseCase
}

// Register instantiates a resource adapting the history use case
// instance with the relevant REST APIs including:
//  1. GET request to /api/dmweb/v1/history
//     in order to obtain the user's closed days grouped by month,
//     newest first, with per-month profit, cost, and mileage totals.
func Register(r *gin.RouterGroup, history *historyuc.UseCase) {
	rs := &resource{history: history}
	r.GET("history", rs.Monthly)
}

func (rs *resource) Monthly(c *gin.Context) {
	user := authn.User(c)
	groups, err := rs.history.Monthly(c, user.ID)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	months := make([]gin.H, 0, len(groups))
	for _, g := range groups {
		costPerKm := make(map[model.Currency]float64, len(g.Cost))
		for cur := range g.Cost {
			costPerKm[cur] = g.CostPerKm(cur)
		}
		months = append(months, gin.H{
			"label":       g.Label,
			"days":        g.Days,
			"profit":      g.Profit,
			"cost":        g.Cost,
			"km":          g.Km,
			"cost_per_km": costPerKm,
		})
	}
	c.JSON(http.StatusOK, gin.H{"months": months})
}
