// Copyright (c) 2025-2026 DriverMind Ltda.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// Event types which report a paid subscription and must activate it.
const (
	CheckoutCompleted       = "checkout.session.completed"
	InvoicePaymentSucceeded = "invoice.payment_succeeded"
)

// Activates reports whether the event type marks a paid subscription.
func Activates(eventType string) bool {
	return eventType == CheckoutCompleted ||
		eventType == InvoicePaymentSucceeded
}

// DefaultTolerance bounds the age of an accepted webhook event. Events
// whose signed timestamp is older are rejected to blunt replays.
const DefaultTolerance = 5 * time.Minute

// Event is a webhook notification from the payment provider.
type Event struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object struct {
			ID       string            `json:"id"`
			Metadata map[string]string `json:"metadata"`
		} `json:"object"`
	} `json:"data"`
}

// ErrInvalidSignature indicates that the webhook signature header is
// missing, malformed, stale, or does not match the payload.
var ErrInvalidSignature = errors.New("invalid webhook signature")

// ParseEvent verifies the signature header of a webhook request body
// and unmarshals the event. The header carries a unix timestamp and
// one or more HMAC-SHA256 signatures in the form
//
//	t=1712345678,v1=5257a869e7...
//
// where each v1 value is the hex HMAC of "{t}.{body}" under the
// endpoint secret. The event is accepted if any v1 signature matches
// and the timestamp is within tolerance of now.
func ParseEvent(
	payload []byte, header, secret string,
	tolerance time.Duration, now time.Time,
) (*Event, error) {
	ts, sigs, err := splitHeader(header)
	if err != nil {
		return nil, err
	}
	age := now.Sub(time.Unix(ts, 0))
	if age > tolerance || age < -tolerance {
		return nil, fmt.Errorf(
			"%w: timestamp out of tolerance", ErrInvalidSignature,
		)
	}
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.", ts)
	mac.Write(payload)
	expected := mac.Sum(nil)
	matched := false
	for _, sig := range sigs {
		given, err := hex.DecodeString(sig)
		if err != nil {
			continue
		}
		if hmac.Equal(given, expected) {
			matched = true
		}
	}
	if !matched {
		return nil, fmt.Errorf(
			"%w: no matching signature", ErrInvalidSignature,
		)
	}
	var e Event
	if err := json.Unmarshal(payload, &e); err != nil {
		return nil, fmt.Errorf("decoding event: %w", err)
	}
	return &e, nil
}

func splitHeader(header string) (ts int64, sigs []string, err error) {
	ts = -1
	for _, part := range strings.Split(header, ",") {
		k, v, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found {
			continue
		}
		switch k {
		case "t":
			ts, err = strconv.ParseInt(v, 10, 64)
			if err != nil {
				return 0, nil, fmt.Errorf(
					"%w: bad timestamp", ErrInvalidSignature,
				)
			}
		case "v1":
			sigs = append(sigs, v)
		}
	}
	if ts < 0 || len(sigs) == 0 {
		return 0, nil, fmt.Errorf(
			"%w: missing elements", ErrInvalidSignature,
		)
	}
	return ts, sigs, nil
}
