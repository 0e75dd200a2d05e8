// Copyright (c) 2025-2026 DriverMind Ltda.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package payment provides the HTTP client for the hosted payment
// provider, implementing the profileuc.PaymentGateway interface, plus
// the signature verification for the provider's webhook events. No
// payment state machine exists locally; the provider runs the hosted
// checkout page and notifies the service through the webhook.
package payment

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/drivermind/dmweb/pkg/core/usecase/profileuc"
	"github.com/goccy/go-json"
)

// Client creates checkout sessions on the payment provider's API.
type Client struct {
	baseURL   string
	secretKey string
	hc        *http.Client
}

// New creates a Client authenticating with the given API secret key.
func New(baseURL, secretKey string) *Client {
	return &Client{
		baseURL:   baseURL,
		secretKey: secretKey,
		hc:        &http.Client{Timeout: 10 * time.Second},
	}
}

// CreateCheckoutSession creates a hosted checkout session for a
// subscription on the provider and returns the URL which the client
// should redirect the driver to. The user id rides along as session
// metadata, so the webhook event can be attributed back to the user
// without any local session bookkeeping.
func (c *Client) CreateCheckoutSession(
	ctx context.Context, p profileuc.CheckoutParams,
) (string, error) {
	form := url.Values{}
	form.Set("mode", "subscription")
	form.Set("line_items[0][price]", p.PriceID)
	form.Set("line_items[0][quantity]", "1")
	form.Set("customer_email", p.Email)
	form.Set("success_url", p.SuccessURL)
	form.Set("cancel_url", p.CancelURL)
	form.Set("metadata[user_id]", p.UserID.String())
	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.baseURL+"/v1/checkout/sessions",
		strings.NewReader(form.Encode()),
	)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set(
		"Content-Type", "application/x-www-form-urlencoded",
	)
	resp, err := c.hc.Do(req)
	if err != nil {
		return "", fmt.Errorf("payment provider: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf(
			"payment provider: unexpected status %d", resp.StatusCode,
		)
	}
	var session struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return "", fmt.Errorf("decoding session: %w", err)
	}
	if session.URL == "" {
		return "", fmt.Errorf("payment provider: empty session url")
	}
	return session.URL, nil
}
