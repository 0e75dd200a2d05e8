package repo

import (
	"context"

	"github.com/drivermind/dmweb/pkg/core/model"
	"github.com/google/uuid"
)

type VehiclesConnQueryer interface {
	VehiclesQueryer
}

type VehiclesTxQueryer interface {
	VehiclesQueryer
}

// VehiclesQueryer lists the garage operations: vehicle rows and their
// maintenance records. All operations are scoped to the owning user.
type VehiclesQueryer interface {
	Create(ctx context.Context, v model.Vehicle) (*model.Vehicle, error)
	Get(ctx context.Context, userID, vehicleID uuid.UUID) (*model.Vehicle, error)
	List(ctx context.Context, userID uuid.UUID) ([]model.Vehicle, error)
	SetActive(ctx context.Context, userID, vehicleID uuid.UUID, active bool) (*model.Vehicle, error)
	Delete(ctx context.Context, userID, vehicleID uuid.UUID) error

	AddMaintenance(ctx context.Context, m model.Maintenance) (*model.Maintenance, error)
	ListMaintenance(ctx context.Context, vehicleID uuid.UUID) ([]model.Maintenance, error)
}

type Vehicles interface {
	Conn(Conn) VehiclesConnQueryer
	Tx(Tx) VehiclesTxQueryer
}
