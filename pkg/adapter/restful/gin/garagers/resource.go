// Copyright (c) 2025-2026 DriverMind Ltda.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package garagers realizes the garage resource, allowing the vehicle
// and maintenance REST APIs to be accepted and delegated to the
// garage use cases respectively.
package garagers

import (
	"net/http"

	"github.com/drivermind/dmweb/pkg/adapter/restful/gin/authn"
	"github.com/drivermind/dmweb/pkg/adapter/restful/gin/serdser"
	"github.com/drivermind/dmweb/pkg/core/model"
	"github.com/drivermind/dmweb/pkg/core/usecase/garageuc"
	"github.com/gin-gonic/gin"
)

type resource struct {
	garage *garageuc.UseCase
}

// Register instantiates a resource adapting the garage use case
// instance with the relevant REST APIs including:
//  1. POST request to /api/dmweb/v1/vehicles
//     in order to register a vehicle,
//  2. GET request to /api/dmweb/v1/vehicles
//     in order to list the user's vehicles,
//  3. PATCH request to /api/dmweb/v1/vehicles/:vid
//     in order to activate or deactivate a vehicle,
//  4. DELETE request to /api/dmweb/v1/vehicles/:vid
//     in order to remove a vehicle with its maintenance records,
//  5. POST request to /api/dmweb/v1/vehicles/:vid/maintenance
//     in order to log a service record, and
//  6. GET request to /api/dmweb/v1/vehicles/:vid/maintenance
//     in order to list a vehicle's service records.
func Register(r *gin.RouterGroup, garage *garageuc.UseCase) {
	rs := &resource{garage: garage}
	r.POST("vehicles", rs.AddVehicle)
	r.GET("vehicles", rs.Vehicles)
	r.PATCH("vehicles/:vid", rs.UpdateVehicle)
	r.DELETE("vehicles/:vid", rs.RemoveVehicle)
	r.POST("vehicles/:vid/maintenance", rs.LogMaintenance)
	r.GET("vehicles/:vid/maintenance", rs.MaintenanceHistory)
}

func (rs *resource) AddVehicle(c *gin.Context) {
	req := rs.DserAddVehicleReq(c)
	if req == nil {
		return
	}
	user := authn.User(c)
	vehicle, err := rs.garage.AddVehicle(
		c, user.ID, req.Name, req.Model, req.Plate, req.Propulsion,
	)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, vehicle)
}

func (rs *resource) Vehicles(c *gin.Context) {
	user := authn.User(c)
	vehicles, err := rs.garage.Vehicles(c, user.ID)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"vehicles": vehicles})
}

func (rs *resource) UpdateVehicle(c *gin.Context) {
	req := rs.DserUpdateVehicleReq(c)
	if req == nil {
		return
	}
	user := authn.User(c)
	vehicle, err := rs.garage.SetActive(
		c, user.ID, req.VehicleID, req.Active,
	)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, vehicle)
}

func (rs *resource) RemoveVehicle(c *gin.Context) {
	req := rs.DserVehicleIDReq(c)
	if req == nil {
		return
	}
	user := authn.User(c)
	err := rs.garage.RemoveVehicle(c, user.ID, req.VehicleID)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (rs *resource) LogMaintenance(c *gin.Context) {
	req := rs.DserLogMaintenanceReq(c)
	if req == nil {
		return
	}
	user := authn.User(c)
	logged, err := rs.garage.LogMaintenance(c, user.ID, model.Maintenance{
		VehicleID: req.VehicleID,
		Type:      req.Type,
		Cost:      req.Cost,
		Odometer:  req.Odometer,
		Date:      req.Date,
		Note:      req.Note,
	})
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, logged)
}

func (rs *resource) MaintenanceHistory(c *gin.Context) {
	req := rs.DserVehicleIDReq(c)
	if req == nil {
		return
	}
	user := authn.User(c)
	records, err := rs.garage.MaintenanceHistory(
		c, user.ID, req.VehicleID,
	)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"maintenance": records})
}
