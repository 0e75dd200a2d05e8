// Copyright (c) 2025-2026 DriverMind Ltda.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package identity provides the HTTP client for the hosted identity
// service, implementing the profileuc.IdentityProvider interface.
// Sign-up, sign-in, and token issuance happen on that service; this
// client only resolves bearer tokens and reads/writes the profile
// metadata which is cached on the identity record.
package identity

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/drivermind/dmweb/pkg/core/cerr"
	"github.com/drivermind/dmweb/pkg/core/model"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// Client talks to a GoTrue-compatible identity service. Token
// resolution authenticates with the caller's own bearer token, while
// metadata updates authenticate with the server-side service key.
type Client struct {
	baseURL    string
	serviceKey string
	hc         *http.Client
}

// New creates a Client for the identity service reachable at baseURL.
// The serviceKey authorizes the admin endpoints which update user
// metadata; it must never be exposed to clients.
func New(baseURL, serviceKey string) *Client {
	return &Client{
		baseURL:    baseURL,
		serviceKey: serviceKey,
		hc:         &http.Client{Timeout: 10 * time.Second},
	}
}

// metadata mirrors the profile fields as stored in the identity
// record's user_metadata object. Goal amounts are kept in cents.
type metadata struct {
	DisplayName        string `json:"display_name"`
	DailyGoal          int64  `json:"daily_goal"`
	MonthlyGoal        int64  `json:"monthly_goal"`
	SubscriptionStatus string `json:"subscription_status"`
}

type userRecord struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Metadata metadata  `json:"user_metadata"`
}

func (u *userRecord) Model() *model.User {
	return &model.User{
		ID:    u.ID,
		Email: u.Email,
		Profile: model.Profile{
			DisplayName: u.Metadata.DisplayName,
			DailyGoal:   model.Money(u.Metadata.DailyGoal),
			MonthlyGoal: model.Money(u.Metadata.MonthlyGoal),
			Subscribed:  u.Metadata.SubscriptionStatus == "active",
		},
	}
}

// UserFromToken resolves the bearer token to its user. Unknown or
// expired tokens come back from the identity service as 401 or 403
// responses and are reported as authentication errors.
func (c *Client) UserFromToken(
	ctx context.Context, token string,
) (*model.User, error) {
	req, err := http.NewRequestWithContext(
		ctx, http.MethodGet, c.baseURL+"/user", nil,
	)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("identity service: %w", err)
	}
	defer resp.Body.Close()
	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, cerr.Authentication(
			fmt.Errorf("token rejected: status %d", resp.StatusCode),
		)
	default:
		return nil, fmt.Errorf(
			"identity service: unexpected status %d", resp.StatusCode,
		)
	}
	var u userRecord
	if err := json.NewDecoder(resp.Body).Decode(&u); err != nil {
		return nil, fmt.Errorf("decoding user record: %w", err)
	}
	return u.Model(), nil
}

// UpdateProfile replaces the profile metadata of the given user using
// the admin endpoint.
func (c *Client) UpdateProfile(
	ctx context.Context, userID uuid.UUID, p model.Profile,
) error {
	status := "none"
	if p.Subscribed {
		status = "active"
	}
	return c.patchMetadata(ctx, userID, map[string]any{
		"display_name":        p.DisplayName,
		"daily_goal":          int64(p.DailyGoal),
		"monthly_goal":        int64(p.MonthlyGoal),
		"subscription_status": status,
	})
}

// ActivateSubscription flips the subscription flag in the user's
// metadata. The identity service merges metadata keys on update, so
// the other profile fields are left untouched.
func (c *Client) ActivateSubscription(
	ctx context.Context, userID uuid.UUID,
) error {
	return c.patchMetadata(ctx, userID, map[string]any{
		"subscription_status": "active",
	})
}

func (c *Client) patchMetadata(
	ctx context.Context, userID uuid.UUID, meta map[string]any,
) error {
	body, err := json.Marshal(map[string]any{
		"user_metadata": meta,
	})
	if err != nil {
		return fmt.Errorf("encoding metadata: %w", err)
	}
	req, err := http.NewRequestWithContext(
		ctx, http.MethodPut,
		fmt.Sprintf("%s/admin/users/%s", c.baseURL, userID),
		bytes.NewReader(body),
	)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("identity service: %w", err)
	}
	defer resp.Body.Close()
	switch resp.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusNotFound:
		return cerr.NotFound(
			fmt.Errorf("no user with id %s", userID),
		)
	default:
		return fmt.Errorf(
			"identity service: unexpected status %d", resp.StatusCode,
		)
	}
}
