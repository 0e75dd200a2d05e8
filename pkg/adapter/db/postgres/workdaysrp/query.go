package workdaysrp

import (
	"context"
	"fmt"
	"time"

	"github.com/drivermind/dmweb/pkg/adapter/db/postgres"
	"github.com/drivermind/dmweb/pkg/core/cerr"
	"github.com/drivermind/dmweb/pkg/core/model"
	"github.com/drivermind/dmweb/pkg/core/repo"
	"github.com/google/uuid"
	"gorm.io/gorm/clause"
)

type gWorkDay struct {
	ID        uuid.UUID  `gorm:"primaryKey;type:uuid"`
	UserID    uuid.UUID  `gorm:"type:uuid"`
	VehicleID *uuid.UUID `gorm:"type:uuid"`
	Date      time.Time  `gorm:"type:date"`
	KmStart   float64
	KmEnd     *float64
	Status    string
	CreatedAt time.Time
}

func (gd *gWorkDay) TableName() string {
	return "work_days"
}

func (gd *gWorkDay) Model() *model.WorkDay {
	return &model.WorkDay{
		ID:        gd.ID,
		UserID:    gd.UserID,
		VehicleID: gd.VehicleID,
		Date:      gd.Date,
		KmStart:   gd.KmStart,
		KmEnd:     gd.KmEnd,
		Status:    model.DayStatus(gd.Status),
		CreatedAt: gd.CreatedAt,
	}
}

func Create[Q postgres.Queryer](
	ctx context.Context, q Q, day model.WorkDay,
) (*model.WorkDay, error) {
	gd := gWorkDay{
		ID:        uuid.New(),
		UserID:    day.UserID,
		VehicleID: day.VehicleID,
		Date:      day.Date,
		KmStart:   day.KmStart,
		KmEnd:     day.KmEnd,
		Status:    string(day.Status),
	}
	gdb := q.GORM(ctx)
	if err := gdb.Create(&gd).Error; err != nil {
		if postgres.IsUniqueViolation(err) {
			return nil, repo.ErrDuplicateDay
		}
		return nil, fmt.Errorf("insert: %w", err)
	}
	return gd.Model(), nil
}

func Get[Q postgres.Queryer](
	ctx context.Context, q Q, userID, dayID uuid.UUID,
) (*model.WorkDay, error) {
	gdb := q.GORM(ctx)
	var gd []gWorkDay
	gdb.Where("id=? AND user_id=?", dayID, userID).Limit(1).Find(&gd)
	if err := gdb.Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	if len(gd) == 0 {
		return nil, cerr.NotFound(
			fmt.Errorf("no work day with id %s", dayID),
		)
	}
	return gd[0].Model(), nil
}

func findOne[Q postgres.Queryer](
	ctx context.Context, q Q, conds map[string]any,
) (*model.WorkDay, error) {
	gdb := q.GORM(ctx)
	var gd []gWorkDay
	gdb.Where(conds).Limit(1).Find(&gd)
	if err := gdb.Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	if len(gd) == 0 {
		return nil, nil
	}
	return gd[0].Model(), nil
}

func FindByDate[Q postgres.Queryer](
	ctx context.Context, q Q, userID uuid.UUID, date time.Time,
) (*model.WorkDay, error) {
	return findOne(ctx, q, map[string]any{
		"user_id": userID,
		"date":    date,
	})
}

func FindOpen[Q postgres.Queryer](
	ctx context.Context, q Q, userID uuid.UUID, date time.Time,
) (*model.WorkDay, error) {
	return findOne(ctx, q, map[string]any{
		"user_id": userID,
		"date":    date,
		"status":  string(model.DayOpen),
	})
}

func Adopt[Q postgres.Queryer](
	ctx context.Context, q Q, dayID, vehicleID uuid.UUID, kmStart float64,
) (*model.WorkDay, error) {
	gdb := q.GORM(ctx)
	var gd []gWorkDay
	gdb.Model(&gd).Clauses(clause.Returning{}).Select(
		"vehicle_id", "km_start", "status",
	).Where(
		"id=?", dayID,
	).Updates(gWorkDay{
		VehicleID: &vehicleID,
		KmStart:   kmStart,
		Status:    string(model.DayOpen),
	})
	if err := gdb.Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	if n := len(gd); n != 1 {
		return nil, cerr.NotFound(
			fmt.Errorf("expected one row, but got %d", n),
		)
	}
	return gd[0].Model(), nil
}

func Close[Q postgres.Queryer](
	ctx context.Context, q Q, userID, dayID uuid.UUID, kmEnd float64,
) (*model.WorkDay, error) {
	gdb := q.GORM(ctx)
	var gd []gWorkDay
	gdb.Model(&gd).Clauses(clause.Returning{}).Select(
		"status", "km_end",
	).Where(
		"id=? AND user_id=?", dayID, userID,
	).Updates(gWorkDay{
		Status: string(model.DayClosed),
		KmEnd:  &kmEnd,
	})
	if err := gdb.Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	if n := len(gd); n != 1 {
		return nil, cerr.NotFound(
			fmt.Errorf("expected one row, but got %d", n),
		)
	}
	return gd[0].Model(), nil
}

func Reopen[Q postgres.Queryer](
	ctx context.Context, q Q, userID, dayID uuid.UUID,
) (*model.WorkDay, error) {
	gdb := q.GORM(ctx)
	var gd []gWorkDay
	// Select forces km_end into the statement, so the nil pointer
	// clears the column instead of being skipped as a zero value.
	gdb.Model(&gd).Clauses(clause.Returning{}).Select(
		"status", "km_end",
	).Where(
		"id=? AND user_id=?", dayID, userID,
	).Updates(gWorkDay{
		Status: string(model.DayOpen),
		KmEnd:  nil,
	})
	if err := gdb.Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	if n := len(gd); n != 1 {
		return nil, cerr.NotFound(
			fmt.Errorf("expected one row, but got %d", n),
		)
	}
	return gd[0].Model(), nil
}

func ListClosed[Q postgres.Queryer](
	ctx context.Context, q Q, userID uuid.UUID,
) ([]model.WorkDay, error) {
	gdb := q.GORM(ctx)
	var gd []gWorkDay
	gdb.Where(
		"user_id=? AND status=?", userID, string(model.DayClosed),
	).Order("date DESC").Find(&gd)
	if err := gdb.Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	days := make([]model.WorkDay, len(gd))
	for i := range gd {
		days[i] = *gd[i].Model()
	}
	return days, nil
}

func Delete[Q postgres.Queryer](
	ctx context.Context, q Q, userID, dayID uuid.UUID,
) error {
	gdb := q.GORM(ctx)
	res := gdb.Where(
		"id=? AND user_id=?", dayID, userID,
	).Delete(&gWorkDay{})
	if err := res.Error; err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	if res.RowsAffected == 0 {
		return cerr.NotFound(
			fmt.Errorf("no work day with id %s", dayID),
		)
	}
	return nil
}
