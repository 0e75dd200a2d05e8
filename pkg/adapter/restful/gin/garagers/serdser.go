package garagers

import (
	"net/http"
	"time"

	"github.com/drivermind/dmweb/pkg/adapter/restful/gin/serdser"
	"github.com/drivermind/dmweb/pkg/core/model"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
)

type rawAddVehicleReq struct {
	Name       string `json:"name" binding:"required,max=100"`
	Model      string `json:"model" binding:"omitempty,max=100"`
	Plate      string `json:"plate" binding:"omitempty,max=20"`
	Propulsion string `json:"propulsion" binding:"required"`
}

type addVehicleReq struct {
	Name       string
	Model      string
	Plate      string
	Propulsion model.Propulsion
}

func (rs *resource) DserAddVehicleReq(c *gin.Context) *addVehicleReq {
	req := &rawAddVehicleReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return nil
	}
	p, err := model.ParsePropulsion(req.Propulsion)
	if err != nil {
		var errs map[string][]string
		serdser.AddErr(&errs, "propulsion", "Unknown propulsion.")
		c.JSON(http.StatusBadRequest, errs)
		return nil
	}
	return &addVehicleReq{
		Name:       req.Name,
		Model:      req.Model,
		Plate:      req.Plate,
		Propulsion: p,
	}
}

type rawUpdateVehicleReq struct {
	Active *bool `json:"active" binding:"required"`
}

type updateVehicleReq struct {
	VehicleID uuid.UUID
	Active    bool
}

func (rs *resource) DserUpdateVehicleReq(
	c *gin.Context,
) *updateVehicleReq {
	id := rs.DserVehicleIDReq(c)
	if id == nil {
		return nil
	}
	req := &rawUpdateVehicleReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return nil
	}
	return &updateVehicleReq{
		VehicleID: id.VehicleID,
		Active:    *req.Active,
	}
}

type rawLogMaintenanceReq struct {
	Type     string  `json:"type" binding:"required"`
	Cost     string  `json:"cost" binding:"required"`
	Odometer float64 `json:"odometer" binding:"gte=0"`
	Date     string  `json:"date" binding:"required,datetime=2006-01-02"`
	Note     string  `json:"note" binding:"omitempty,max=500"`
}

type logMaintenanceReq struct {
	VehicleID uuid.UUID
	Type      model.MaintenanceType
	Cost      model.Money
	Odometer  float64
	Date      time.Time
	Note      string
}

func (rs *resource) DserLogMaintenanceReq(
	c *gin.Context,
) *logMaintenanceReq {
	id := rs.DserVehicleIDReq(c)
	if id == nil {
		return nil
	}
	req := &rawLogMaintenanceReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return nil
	}
	val := &logMaintenanceReq{
		VehicleID: id.VehicleID,
		Odometer:  req.Odometer,
		Note:      req.Note,
	}
	var errs map[string][]string
	var err error
	val.Type, err = model.ParseMaintenanceType(req.Type)
	serdser.Assert(&errs, err == nil, "type", "Unknown type.")
	val.Cost, err = model.ParseAmount(req.Cost)
	serdser.Assert(&errs, err == nil, "cost", "Not a money amount.")
	val.Date, err = time.Parse("2006-01-02", req.Date)
	serdser.Assert(&errs, err == nil, "date", "Not a date.")
	if errs != nil {
		c.JSON(http.StatusBadRequest, errs)
		return nil
	}
	return val
}

type vehicleIDReq struct {
	VehicleID uuid.UUID
}

func (rs *resource) DserVehicleIDReq(c *gin.Context) *vehicleIDReq {
	vid, err := uuid.Parse(c.Param("vid"))
	if err != nil {
		var errs map[string][]string
		serdser.AddErr(&errs, "vid", "Path param vid is not UUID.")
		c.JSON(http.StatusBadRequest, errs)
		return nil
	}
	return &vehicleIDReq{VehicleID: vid}
}
