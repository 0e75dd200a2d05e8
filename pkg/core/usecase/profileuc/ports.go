// Copyright (c) 2025-2026 DriverMind Ltda.
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package profileuc

import (
	"context"

	"github.com/drivermind/dmweb/pkg/core/model"
	"github.com/google/uuid"
)

// IdentityProvider represents the hosted identity service which owns
// user records and their metadata. Sign-up, sign-in, and token
// issuance happen entirely on that service; this core only resolves
// bearer tokens and reads/writes the profile metadata cached on the
// identity record.
type IdentityProvider interface {
	// UserFromToken resolves the bearer token to its user, including
	// the profile metadata stored on the identity record. Unknown or
	// expired tokens are reported as authentication errors.
	UserFromToken(ctx context.Context, token string) (*model.User, error)

	// UpdateProfile replaces the profile metadata of the given user.
	UpdateProfile(ctx context.Context, userID uuid.UUID, p model.Profile) error

	// ActivateSubscription flips the subscription flag in the user's
	// metadata. This is the core's only reaction to a successful
	// payment.
	ActivateSubscription(ctx context.Context, userID uuid.UUID) error
}

// CheckoutParams carries everything the payment provider needs to
// create a hosted checkout session.
type CheckoutParams struct {
	PriceID    string
	UserID     uuid.UUID // round-tripped via session metadata
	Email      string
	SuccessURL string
	CancelURL  string
}

// PaymentGateway represents the hosted payment provider. No payment
// state machine exists locally; the provider runs the checkout and
// notifies the service through a webhook.
type PaymentGateway interface {
	// CreateCheckoutSession creates a hosted checkout session and
	// returns the URL the client should redirect the driver to.
	CreateCheckoutSession(ctx context.Context, p CheckoutParams) (string, error)
}
