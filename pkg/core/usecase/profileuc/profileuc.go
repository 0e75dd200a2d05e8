// Copyright (c) 2025-2026 DriverMind Ltda.
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package profileuc contains the profile UseCase which manages the
// driver preferences stored on the identity record (display name and
// profit goals) and the subscription flow: creating a checkout
// session on the payment provider and reacting to its webhook by
// activating the subscription flag.
package profileuc

import (
	"context"
	"fmt"

	"github.com/drivermind/dmweb/pkg/core/cerr"
	"github.com/drivermind/dmweb/pkg/core/model"
	"github.com/google/uuid"
)

// UseCase represents the profile use case. Unlike the other use
// cases, it holds no database pool: profile data lives as metadata on
// the identity record and payments are delegated to the hosted
// gateway.
type UseCase struct {
	idp IdentityProvider
	gw  PaymentGateway

	defaultPriceID string
	successURL     string
	cancelURL      string
}

// New instantiates a profile use case. The price identifier and
// redirect URLs come from the configuration and are used when a
// checkout request does not name a price explicitly.
func New(
	idp IdentityProvider, gw PaymentGateway,
	defaultPriceID, successURL, cancelURL string,
) *UseCase {
	return &UseCase{
		idp:            idp,
		gw:             gw,
		defaultPriceID: defaultPriceID,
		successURL:     successURL,
		cancelURL:      cancelURL,
	}
}

// UpdateProfile use case replaces the user's profile metadata. Goal
// amounts must be non-negative; a zero goal means the goal is unset.
// The subscription flag is not writable through this path; it keeps
// whatever value the identity record already carries.
func (profile *UseCase) UpdateProfile(
	ctx context.Context, user model.User, p model.Profile,
) error {
	if p.DailyGoal < 0 || p.MonthlyGoal < 0 {
		return cerr.BadRequest(
			fmt.Errorf("profit goals must be non-negative"),
		)
	}
	p.Subscribed = user.Profile.Subscribed
	if err := profile.idp.UpdateProfile(ctx, user.ID, p); err != nil {
		return fmt.Errorf("updating profile metadata: %w", err)
	}
	return nil
}

// Checkout use case creates a hosted checkout session for the user
// and returns the redirect URL. An empty priceID selects the
// configured default subscription price.
func (profile *UseCase) Checkout(
	ctx context.Context, user model.User, priceID string,
) (string, error) {
	if priceID == "" {
		priceID = profile.defaultPriceID
	}
	url, err := profile.gw.CreateCheckoutSession(ctx, CheckoutParams{
		PriceID:    priceID,
		UserID:     user.ID,
		Email:      user.Email,
		SuccessURL: profile.successURL,
		CancelURL:  profile.cancelURL,
	})
	if err != nil {
		return "", fmt.Errorf("creating checkout session: %w", err)
	}
	return url, nil
}

// ActivateSubscription use case flips the subscription flag on the
// user's identity record. It is triggered by the payment provider's
// webhook after a completed checkout or a successful invoice payment.
func (profile *UseCase) ActivateSubscription(
	ctx context.Context, userID uuid.UUID,
) error {
	if err := profile.idp.ActivateSubscription(ctx, userID); err != nil {
		return fmt.Errorf("activating subscription: %w", err)
	}
	return nil
}
