// Copyright (c) 2025-2026 DriverMind Ltda.
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import "github.com/google/uuid"

// Profile holds the per-driver preferences which are stored as opaque
// metadata on the identity record, not in the relational store. Goal
// amounts of zero mean that no goal has been configured.
type Profile struct {
	DisplayName string `json:"display_name"`
	DailyGoal   Money  `json:"daily_goal"`
	MonthlyGoal Money  `json:"monthly_goal"`
	Subscribed  bool   `json:"subscribed"`
}

// User is the authenticated driver as reported by the identity
// provider, together with the profile metadata cached on its record.
type User struct {
	ID      uuid.UUID
	Email   string
	Profile Profile
}

// GoalProgress returns the ratio of profit to goal, clamped to the
// [0, 1] range: a negative profit shows zero progress and anything at
// or beyond the goal caps at one. A zero (unset) goal reports zero
// progress since there is nothing to measure against.
func GoalProgress(profit, goal Money) float64 {
	if goal <= 0 || profit <= 0 {
		return 0
	}
	if profit >= goal {
		return 1
	}
	return float64(profit) / float64(goal)
}
