package vehiclesrp

import (
	"context"
	"fmt"
	"time"

	"github.com/drivermind/dmweb/pkg/adapter/db/postgres"
	"github.com/drivermind/dmweb/pkg/core/cerr"
	"github.com/drivermind/dmweb/pkg/core/model"
	"github.com/google/uuid"
	"gorm.io/gorm/clause"
)

type gVehicle struct {
	ID         uuid.UUID `gorm:"primaryKey;type:uuid"`
	UserID     uuid.UUID `gorm:"type:uuid"`
	Name       string
	CarModel   string `gorm:"column:model"`
	Plate      string
	Propulsion string
	Active     bool
	CreatedAt  time.Time
}

func (gv *gVehicle) TableName() string {
	return "vehicles"
}

func (gv *gVehicle) Model() *model.Vehicle {
	return &model.Vehicle{
		ID:         gv.ID,
		UserID:     gv.UserID,
		Name:       gv.Name,
		Model:      gv.CarModel,
		Plate:      gv.Plate,
		Propulsion: model.Propulsion(gv.Propulsion),
		Active:     gv.Active,
		CreatedAt:  gv.CreatedAt,
	}
}

type gMaintenance struct {
	ID        uuid.UUID `gorm:"primaryKey;type:uuid"`
	VehicleID uuid.UUID `gorm:"type:uuid"`
	Type      string
	Cost      int64 // cents
	Odometer  float64
	Date      time.Time
	Note      string
	CreatedAt time.Time
}

func (gm *gMaintenance) TableName() string {
	return "maintenances"
}

func (gm *gMaintenance) Model() *model.Maintenance {
	return &model.Maintenance{
		ID:        gm.ID,
		VehicleID: gm.VehicleID,
		Type:      model.MaintenanceType(gm.Type),
		Cost:      model.Money(gm.Cost),
		Odometer:  gm.Odometer,
		Date:      gm.Date,
		Note:      gm.Note,
		CreatedAt: gm.CreatedAt,
	}
}

func Create[Q postgres.Queryer](
	ctx context.Context, q Q, v model.Vehicle,
) (*model.Vehicle, error) {
	gv := gVehicle{
		ID:         uuid.New(),
		UserID:     v.UserID,
		Name:       v.Name,
		CarModel:   v.Model,
		Plate:      v.Plate,
		Propulsion: string(v.Propulsion),
		Active:     true,
	}
	gdb := q.GORM(ctx)
	if err := gdb.Create(&gv).Error; err != nil {
		return nil, fmt.Errorf("insert: %w", err)
	}
	return gv.Model(), nil
}

func Get[Q postgres.Queryer](
	ctx context.Context, q Q, userID, vehicleID uuid.UUID,
) (*model.Vehicle, error) {
	gdb := q.GORM(ctx)
	var gv []gVehicle
	gdb.Where("id=? AND user_id=?", vehicleID, userID).Find(&gv)
	if err := gdb.Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	if len(gv) != 1 {
		return nil, cerr.NotFound(
			fmt.Errorf("no vehicle with id %s", vehicleID),
		)
	}
	return gv[0].Model(), nil
}

func List[Q postgres.Queryer](
	ctx context.Context, q Q, userID uuid.UUID,
) ([]model.Vehicle, error) {
	gdb := q.GORM(ctx)
	var gv []gVehicle
	gdb.Where("user_id=?", userID).Order("created_at").Find(&gv)
	if err := gdb.Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	vehicles := make([]model.Vehicle, len(gv))
	for i := range gv {
		vehicles[i] = *gv[i].Model()
	}
	return vehicles, nil
}

func SetActive[Q postgres.Queryer](
	ctx context.Context, q Q, userID, vehicleID uuid.UUID, active bool,
) (*model.Vehicle, error) {
	gv := gVehicle{Active: active}
	gdb := q.GORM(ctx)
	res := gdb.Model(&gv).
		Clauses(clause.Returning{}).
		Where("id=? AND user_id=?", vehicleID, userID).
		Select("active").
		Updates(&gv)
	if err := res.Error; err != nil {
		return nil, fmt.Errorf("update: %w", err)
	}
	if res.RowsAffected == 0 {
		return nil, cerr.NotFound(
			fmt.Errorf("no vehicle with id %s", vehicleID),
		)
	}
	return gv.Model(), nil
}

func Delete[Q postgres.Queryer](
	ctx context.Context, q Q, userID, vehicleID uuid.UUID,
) error {
	gdb := q.GORM(ctx)
	if err := gdb.Where(
		"vehicle_id=?", vehicleID,
	).Delete(&gMaintenance{}).Error; err != nil {
		return fmt.Errorf("delete maintenances: %w", err)
	}
	res := gdb.Where(
		"id=? AND user_id=?", vehicleID, userID,
	).Delete(&gVehicle{})
	if err := res.Error; err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	if res.RowsAffected == 0 {
		return cerr.NotFound(
			fmt.Errorf("no vehicle with id %s", vehicleID),
		)
	}
	return nil
}

func AddMaintenance[Q postgres.Queryer](
	ctx context.Context, q Q, m model.Maintenance,
) (*model.Maintenance, error) {
	gm := gMaintenance{
		ID:        uuid.New(),
		VehicleID: m.VehicleID,
		Type:      string(m.Type),
		Cost:      int64(m.Cost),
		Odometer:  m.Odometer,
		Date:      m.Date,
		Note:      m.Note,
	}
	gdb := q.GORM(ctx)
	if err := gdb.Create(&gm).Error; err != nil {
		return nil, fmt.Errorf("insert: %w", err)
	}
	return gm.Model(), nil
}

func ListMaintenance[Q postgres.Queryer](
	ctx context.Context, q Q, vehicleID uuid.UUID,
) ([]model.Maintenance, error) {
	gdb := q.GORM(ctx)
	var gm []gMaintenance
	gdb.Where("vehicle_id=?", vehicleID).
		Order("date DESC").Find(&gm)
	if err := gdb.Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	records := make([]model.Maintenance, len(gm))
	for i := range gm {
		records[i] = *gm[i].Model()
	}
	return records, nil
}
