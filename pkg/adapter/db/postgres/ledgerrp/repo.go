// Copyright (c) 2025-2026 DriverMind Ltda.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package ledgerrp provides the earnings and expenses repository,
// persisting ledger rows beneath their owning work day.
package ledgerrp

import (
	"context"

	"github.com/drivermind/dmweb/pkg/adapter/db/postgres"
	"github.com/drivermind/dmweb/pkg/core/model"
	"github.com/drivermind/dmweb/pkg/core/repo"
	"github.com/google/uuid"
)

// Repo implements the repo.Ledger interface. Child rows are keyed by
// their work day alone, so user scoping for deletions goes through a
// subquery on the work_days table.
type Repo struct {
}

// New creates a Ledger repository instance.
func New() *Repo {
	return &Repo{}
}

// Conn takes a generic Conn interface and returns a LedgerConnQueryer
// in order to execute the ledger queries in that connection.
func (ledger *Repo) Conn(c repo.Conn) repo.LedgerConnQueryer {
	cc := c.(*postgres.Conn)
	return connQueryer{conn: cc}
}

// Tx takes a generic Tx interface and returns a LedgerTxQueryer in
// order to execute the ledger queries in that transaction.
func (ledger *Repo) Tx(tx repo.Tx) repo.LedgerTxQueryer {
	tt := tx.(*postgres.Tx)
	return txQueryer{tx: tt}
}

type connQueryer struct {
	conn *postgres.Conn
}

func (cq connQueryer) AddEarning(
	ctx context.Context, e model.Earning,
) (*model.Earning, error) {
	return AddEarning(ctx, cq.conn, e)
}

func (cq connQueryer) AddExpense(
	ctx context.Context, x model.Expense,
) (*model.Expense, error) {
	return AddExpense(ctx, cq.conn, x)
}

func (cq connQueryer) ListEarnings(
	ctx context.Context, dayID uuid.UUID,
) ([]model.Earning, error) {
	return ListEarnings(ctx, cq.conn, dayID)
}

func (cq connQueryer) ListExpenses(
	ctx context.Context, dayID uuid.UUID,
) ([]model.Expense, error) {
	return ListExpenses(ctx, cq.conn, dayID)
}

func (cq connQueryer) EarningsOf(
	ctx context.Context, dayIDs []uuid.UUID,
) ([]model.Earning, error) {
	return EarningsOf(ctx, cq.conn, dayIDs)
}

func (cq connQueryer) ExpensesOf(
	ctx context.Context, dayIDs []uuid.UUID,
) ([]model.Expense, error) {
	return ExpensesOf(ctx, cq.conn, dayIDs)
}

func (cq connQueryer) DeleteEarning(
	ctx context.Context, userID, earningID uuid.UUID,
) error {
	return DeleteEarning(ctx, cq.conn, userID, earningID)
}

func (cq connQueryer) DeleteExpense(
	ctx context.Context, userID, expenseID uuid.UUID,
) error {
	return DeleteExpense(ctx, cq.conn, userID, expenseID)
}

func (cq connQueryer) DeleteByDay(
	ctx context.Context, dayID uuid.UUID,
) error {
	return DeleteByDay(ctx, cq.conn, dayID)
}

type txQueryer struct {
	tx *postgres.Tx
}

func (tq txQueryer) AddEarning(
	ctx context.Context, e model.Earning,
) (*model.Earning, error) {
	return AddEarning(ctx, tq.tx, e)
}

func (tq txQueryer) AddExpense(
	ctx context.Context, x model.Expense,
) (*model.Expense, error) {
	return AddExpense(ctx, tq.tx, x)
}

func (tq txQueryer) ListEarnings(
	ctx context.Context, dayID uuid.UUID,
) ([]model.Earning, error) {
	return ListEarnings(ctx, tq.tx, dayID)
}

func (tq txQueryer) ListExpenses(
	ctx context.Context, dayID uuid.UUID,
) ([]model.Expense, error) {
	return ListExpenses(ctx, tq.tx, dayID)
}

func (tq txQueryer) EarningsOf(
	ctx context.Context, dayIDs []uuid.UUID,
) ([]model.Earning, error) {
	return EarningsOf(ctx, tq.tx, dayIDs)
}

func (tq txQueryer) ExpensesOf(
	ctx context.Context, dayIDs []uuid.UUID,
) ([]model.Expense, error) {
	return ExpensesOf(ctx, tq.tx, dayIDs)
}

func (tq txQueryer) DeleteEarning(
	ctx context.Context, userID, earningID uuid.UUID,
) error {
	return DeleteEarning(ctx, tq.tx, userID, earningID)
}

func (tq txQueryer) DeleteExpense(
	ctx context.Context, userID, expenseID uuid.UUID,
) error {
	return DeleteExpense(ctx, tq.tx, userID, expenseID)
}

func (tq txQueryer) DeleteByDay(
	ctx context.Context, dayID uuid.UUID,
) error {
	return DeleteByDay(ctx, tq.tx, dayID)
}
