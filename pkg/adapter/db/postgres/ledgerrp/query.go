package ledgerrp

import (
	"context"
	"fmt"
	"time"

	"github.com/drivermind/dmweb/pkg/adapter/db/postgres"
	"github.com/drivermind/dmweb/pkg/core/cerr"
	"github.com/drivermind/dmweb/pkg/core/model"
	"github.com/google/uuid"
)

type gEarning struct {
	ID        uuid.UUID `gorm:"primaryKey;type:uuid"`
	WorkDayID uuid.UUID `gorm:"type:uuid"`
	Platform  string
	Amount    int64 // cents
	Currency  string
	CreatedAt time.Time
}

func (ge *gEarning) TableName() string {
	return "earnings"
}

func (ge *gEarning) Model() *model.Earning {
	return &model.Earning{
		ID:        ge.ID,
		WorkDayID: ge.WorkDayID,
		Platform:  model.Platform(ge.Platform),
		Amount:    model.Money(ge.Amount),
		Currency:  model.Currency(ge.Currency),
		CreatedAt: ge.CreatedAt,
	}
}

type gExpense struct {
	ID        uuid.UUID `gorm:"primaryKey;type:uuid"`
	WorkDayID uuid.UUID `gorm:"type:uuid"`
	Category  string
	Amount    int64 // cents
	Currency  string
	Note      string
	CreatedAt time.Time
}

func (gx *gExpense) TableName() string {
	return "expenses"
}

func (gx *gExpense) Model() *model.Expense {
	return &model.Expense{
		ID:        gx.ID,
		WorkDayID: gx.WorkDayID,
		Category:  model.ExpenseCategory(gx.Category),
		Amount:    model.Money(gx.Amount),
		Currency:  model.Currency(gx.Currency),
		Note:      gx.Note,
		CreatedAt: gx.CreatedAt,
	}
}

// ownedByUser is the subquery which scopes a child row deletion to
// the requesting user, since child tables carry no user column.
const ownedByUser = "work_day_id IN (SELECT id FROM work_days WHERE user_id=?)"

func AddEarning[Q postgres.Queryer](
	ctx context.Context, q Q, e model.Earning,
) (*model.Earning, error) {
	ge := gEarning{
		ID:        uuid.New(),
		WorkDayID: e.WorkDayID,
		Platform:  string(e.Platform),
		Amount:    int64(e.Amount),
		Currency:  string(e.Currency),
	}
	gdb := q.GORM(ctx)
	if err := gdb.Create(&ge).Error; err != nil {
		return nil, fmt.Errorf("insert: %w", err)
	}
	return ge.Model(), nil
}

func AddExpense[Q postgres.Queryer](
	ctx context.Context, q Q, x model.Expense,
) (*model.Expense, error) {
	gx := gExpense{
		ID:        uuid.New(),
		WorkDayID: x.WorkDayID,
		Category:  string(x.Category),
		Amount:    int64(x.Amount),
		Currency:  string(x.Currency),
		Note:      x.Note,
	}
	gdb := q.GORM(ctx)
	if err := gdb.Create(&gx).Error; err != nil {
		return nil, fmt.Errorf("insert: %w", err)
	}
	return gx.Model(), nil
}

func ListEarnings[Q postgres.Queryer](
	ctx context.Context, q Q, dayID uuid.UUID,
) ([]model.Earning, error) {
	return EarningsOf(ctx, q, []uuid.UUID{dayID})
}

func ListExpenses[Q postgres.Queryer](
	ctx context.Context, q Q, dayID uuid.UUID,
) ([]model.Expense, error) {
	return ExpensesOf(ctx, q, []uuid.UUID{dayID})
}

func EarningsOf[Q postgres.Queryer](
	ctx context.Context, q Q, dayIDs []uuid.UUID,
) ([]model.Earning, error) {
	gdb := q.GORM(ctx)
	var ge []gEarning
	gdb.Where("work_day_id IN ?", dayIDs).Order("created_at").Find(&ge)
	if err := gdb.Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	earnings := make([]model.Earning, len(ge))
	for i := range ge {
		earnings[i] = *ge[i].Model()
	}
	return earnings, nil
}

func ExpensesOf[Q postgres.Queryer](
	ctx context.Context, q Q, dayIDs []uuid.UUID,
) ([]model.Expense, error) {
	gdb := q.GORM(ctx)
	var gx []gExpense
	gdb.Where("work_day_id IN ?", dayIDs).Order("created_at").Find(&gx)
	if err := gdb.Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	expenses := make([]model.Expense, len(gx))
	for i := range gx {
		expenses[i] = *gx[i].Model()
	}
	return expenses, nil
}

func DeleteEarning[Q postgres.Queryer](
	ctx context.Context, q Q, userID, earningID uuid.UUID,
) error {
	gdb := q.GORM(ctx)
	res := gdb.Where(
		"id=? AND "+ownedByUser, earningID, userID,
	).Delete(&gEarning{})
	if err := res.Error; err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	if res.RowsAffected == 0 {
		return cerr.NotFound(
			fmt.Errorf("no earning with id %s", earningID),
		)
	}
	return nil
}

func DeleteExpense[Q postgres.Queryer](
	ctx context.Context, q Q, userID, expenseID uuid.UUID,
) error {
	gdb := q.GORM(ctx)
	res := gdb.Where(
		"id=? AND "+ownedByUser, expenseID, userID,
	).Delete(&gExpense{})
	if err := res.Error; err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	if res.RowsAffected == 0 {
		return cerr.NotFound(
			fmt.Errorf("no expense with id %s", expenseID),
		)
	}
	return nil
}

func DeleteByDay[Q postgres.Queryer](
	ctx context.Context, q Q, dayID uuid.UUID,
) error {
	gdb := q.GORM(ctx)
	if err := gdb.Where(
		"work_day_id=?", dayID,
	).Delete(&gEarning{}).Error; err != nil {
		return fmt.Errorf("delete earnings: %w", err)
	}
	if err := gdb.Where(
		"work_day_id=?", dayID,
	).Delete(&gExpense{}).Error; err != nil {
		return fmt.Errorf("delete expenses: %w", err)
	}
	return nil
}
