// Copyright (c) 2025-2026 DriverMind Ltda.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package billingrs realizes the billing resource. The checkout API
// is authenticated like every other route; the webhook API is called
// by the payment provider instead of a driver, so it is registered
// outside the authenticated group and verified by its signature
// header instead.
package billingrs

import (
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/drivermind/dmweb/pkg/adapter/payment"
	"github.com/drivermind/dmweb/pkg/adapter/restful/gin/authn"
	"github.com/drivermind/dmweb/pkg/adapter/restful/gin/serdser"
	"github.com/drivermind/dmweb/pkg/core/log"
	"github.com/drivermind/dmweb/pkg/core/usecase/profileuc"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
)

// maxEventBytes bounds the webhook request body.
const maxEventBytes = 64 * 1024

type resource struct {
	profile       *profileuc.UseCase
	webhookSecret string
	now           func() time.Time
}

// Register instantiates a resource adapting the profile use case
// instance with the relevant REST APIs including:
//  1. POST request to /api/dmweb/v1/billing/checkout
//     in order to create a hosted checkout session, and
//  2. POST request to /api/dmweb/v1/billing/webhook
//     in order to receive payment provider event notifications.
//
// The `r` group must require authentication and the `w` group must
// not; the webhook request is authenticated by its signature header.
func Register(
	r, w *gin.RouterGroup,
	profile *profileuc.UseCase, webhookSecret string,
) {
	rs := &resource{
		profile:       profile,
		webhookSecret: webhookSecret,
		now:           time.Now,
	}
	r.POST("billing/checkout", rs.Checkout)
	w.POST("billing/webhook", rs.Webhook)
}

type rawCheckoutReq struct {
	PriceID string `json:"price_id" binding:"omitempty,max=100"`
}

func (rs *resource) Checkout(c *gin.Context) {
	req := &rawCheckoutReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return
	}
	user := authn.User(c)
	url, err := rs.profile.Checkout(c, user, req.PriceID)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

// Webhook verifies and processes one payment provider event. Only
// events reporting a paid subscription are acted upon; other event
// types are acknowledged and dropped, so the provider does not retry
// them.
func (rs *resource) Webhook(c *gin.Context) {
	payload, err := io.ReadAll(
		io.LimitReader(c.Request.Body, maxEventBytes),
	)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"detail": "unreadable payload",
		})
		return
	}
	event, err := payment.ParseEvent(
		payload, c.GetHeader("Webhook-Signature"),
		rs.webhookSecret, payment.DefaultTolerance, rs.now(),
	)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"detail": "invalid signature",
		})
		return
	}
	if !payment.Activates(event.Type) {
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}
	userID, err := uuid.Parse(event.Data.Object.Metadata["user_id"])
	if err != nil {
		log.Warn(
			c, "webhook event without user metadata",
			slog.String("event", event.ID),
			log.Err("cause", err),
		)
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}
	if err := rs.profile.ActivateSubscription(c, userID); err != nil {
		serdser.SerErr(c, err)
		return
	}
	log.Info(
		c, "subscription activated by webhook",
		slog.String("event", event.ID),
		log.UUID("user", userID),
	)
	c.JSON(http.StatusOK, gin.H{"received": true})
}
