// Package workdaysrp provides a reification of the repo.Workdays
// interface over the work_days table. The unique (user_id, date)
// index of that table is the sole enforcement point of the
// one-day-per-date invariant; its violation is translated to
// repo.ErrDuplicateDay here, so no provider-specific error code
// escapes this package.
package workdaysrp

import (
	"context"
	"time"

	"github.com/drivermind/dmweb/pkg/adapter/db/postgres"
	"github.com/drivermind/dmweb/pkg/core/model"
	"github.com/drivermind/dmweb/pkg/core/repo"
	"github.com/google/uuid"
)

type Repo struct {
}

func New() *Repo {
	return &Repo{}
}

type connQueryer struct {
	*postgres.Conn
}

func (days *Repo) Conn(c repo.Conn) repo.WorkdaysConnQueryer {
	cc := c.(*postgres.Conn)
	return connQueryer{Conn: cc}
}

func (cq connQueryer) Create(ctx context.Context, day model.WorkDay) (*model.WorkDay, error) {
	return Create(ctx, cq.Conn, day)
}

func (cq connQueryer) Get(ctx context.Context, userID, dayID uuid.UUID) (*model.WorkDay, error) {
	return Get(ctx, cq.Conn, userID, dayID)
}

func (cq connQueryer) FindByDate(ctx context.Context, userID uuid.UUID, date time.Time) (*model.WorkDay, error) {
	return FindByDate(ctx, cq.Conn, userID, date)
}

func (cq connQueryer) FindOpen(ctx context.Context, userID uuid.UUID, date time.Time) (*model.WorkDay, error) {
	return FindOpen(ctx, cq.Conn, userID, date)
}

func (cq connQueryer) Adopt(ctx context.Context, dayID, vehicleID uuid.UUID, kmStart float64) (*model.WorkDay, error) {
	return Adopt(ctx, cq.Conn, dayID, vehicleID, kmStart)
}

func (cq connQueryer) Close(ctx context.Context, userID, dayID uuid.UUID, kmEnd float64) (*model.WorkDay, error) {
	return Close(ctx, cq.Conn, userID, dayID, kmEnd)
}

func (cq connQueryer) Reopen(ctx context.Context, userID, dayID uuid.UUID) (*model.WorkDay, error) {
	return Reopen(ctx, cq.Conn, userID, dayID)
}

func (cq connQueryer) ListClosed(ctx context.Context, userID uuid.UUID) ([]model.WorkDay, error) {
	return ListClosed(ctx, cq.Conn, userID)
}

func (cq connQueryer) Delete(ctx context.Context, userID, dayID uuid.UUID) error {
	return Delete(ctx, cq.Conn, userID, dayID)
}

type txQueryer struct {
	*postgres.Tx
}

func (days *Repo) Tx(tx repo.Tx) repo.WorkdaysTxQueryer {
	tt := tx.(*postgres.Tx)
	return txQueryer{Tx: tt}
}

func (tq txQueryer) Create(ctx context.Context, day model.WorkDay) (*model.WorkDay, error) {
	return Create(ctx, tq.Tx, day)
}

func (tq txQueryer) Get(ctx context.Context, userID, dayID uuid.UUID) (*model.WorkDay, error) {
	return Get(ctx, tq.Tx, userID, dayID)
}

func (tq txQueryer) FindByDate(ctx context.Context, userID uuid.UUID, date time.Time) (*model.WorkDay, error) {
	return FindByDate(ctx, tq.Tx, userID, date)
}

func (tq txQueryer) FindOpen(ctx context.Context, userID uuid.UUID, date time.Time) (*model.WorkDay, error) {
	return FindOpen(ctx, tq.Tx, userID, date)
}

func (tq txQueryer) Adopt(ctx context.Context, dayID, vehicleID uuid.UUID, kmStart float64) (*model.WorkDay, error) {
	return Adopt(ctx, tq.Tx, dayID, vehicleID, kmStart)
}

func (tq txQueryer) Close(ctx context.Context, userID, dayID uuid.UUID, kmEnd float64) (*model.WorkDay, error) {
	return Close(ctx, tq.Tx, userID, dayID, kmEnd)
}

func (tq txQueryer) Reopen(ctx context.Context, userID, dayID uuid.UUID) (*model.WorkDay, error) {
	return Reopen(ctx, tq.Tx, userID, dayID)
}

func (tq txQueryer) ListClosed(ctx context.Context, userID uuid.UUID) ([]model.WorkDay, error) {
	return ListClosed(ctx, tq.Tx, userID)
}

func (tq txQueryer) Delete(ctx context.Context, userID, dayID uuid.UUID) error {
	return Delete(ctx, tq.Tx, userID, dayID)
}
