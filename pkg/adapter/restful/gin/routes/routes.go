// Copyright (c) 2025-2026 DriverMind Ltda.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package routes contains all resource packages and facilitates
// instantiation and registration of all repo, use case, and resource
// packages based on the user provided configuration settings.
package routes

import (
	"fmt"

	"github.com/drivermind/dmweb/pkg/adapter/config"
	"github.com/drivermind/dmweb/pkg/adapter/db/postgres/ledgerrp"
	"github.com/drivermind/dmweb/pkg/adapter/db/postgres/vehiclesrp"
	"github.com/drivermind/dmweb/pkg/adapter/db/postgres/workdaysrp"
	"github.com/drivermind/dmweb/pkg/adapter/restful/gin/authn"
	"github.com/drivermind/dmweb/pkg/adapter/restful/gin/billingrs"
	"github.com/drivermind/dmweb/pkg/adapter/restful/gin/daysrs"
	"github.com/drivermind/dmweb/pkg/adapter/restful/gin/garagers"
	"github.com/drivermind/dmweb/pkg/adapter/restful/gin/historyrs"
	"github.com/drivermind/dmweb/pkg/adapter/restful/gin/ledgerrs"
	"github.com/drivermind/dmweb/pkg/adapter/restful/gin/profilers"
	"github.com/drivermind/dmweb/pkg/core/repo"
	"github.com/gin-gonic/gin"
)

// Register instantiates relevant repositories and use cases based on
// the c configuration settings. The p connections pool is passed to
// the use case instances, so they may acquire/release connections
// and transactions on demand. These connections/transactions will be
// passed to the repositories later in order to run relevant queries on
// them and accomplish those use cases. Each use case package is named
// like dayuc and each repository package is named like workdaysrp.
// Register instantiates a series of "resource" structs, from packages
// which are named like daysrs, in order to adapt the use cases
// interfaces with the REST APIs. These resources are registered as
// request handlers using the e gin-gonic engine instance.
// All routes live under the authenticated group except the billing
// webhook, which is called by the payment provider and verified by
// its signature header instead of a bearer token.
func Register(e *gin.Engine, p repo.Pool, c *config.Config) error {
	daysRepo := workdaysrp.New()
	ledgerRepo := ledgerrp.New()
	vehiclesRepo := vehiclesrp.New()

	dayUseCase, err := c.NewDayUseCase(p, daysRepo, ledgerRepo)
	if err != nil {
		return fmt.Errorf("creating day use case: %w", err)
	}
	ledgerUseCase, err := c.NewLedgerUseCase(p, daysRepo, ledgerRepo)
	if err != nil {
		return fmt.Errorf("creating ledger use case: %w", err)
	}
	historyUseCase := c.NewHistoryUseCase(p, daysRepo, ledgerRepo)
	garageUseCase := c.NewGarageUseCase(p, vehiclesRepo)
	profileUseCase := c.NewProfileUseCase()

	open := e.Group("/api/dmweb/v1")
	r := e.Group("/api/dmweb/v1")
	r.Use(authn.Middleware(c.NewIdentityClient()))

	daysrs.Register(r, dayUseCase)
	ledgerrs.Register(r, ledgerUseCase)
	historyrs.Register(r, historyUseCase)
	garagers.Register(r, garageUseCase)
	profilers.Register(r, profileUseCase)
	billingrs.Register(
		r, open, profileUseCase, c.Billing.WebhookSecret(),
	)
	return nil
}
