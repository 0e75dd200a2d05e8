package daysrs

import (
	"net/http"

	"github.com/drivermind/dmweb/pkg/adapter/restful/gin/serdser"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
)

type rawStartDayReq struct {
	VehicleID string  `json:"vehicle_id" binding:"required,uuid"`
	KmStart   float64 `json:"km_start" binding:"gte=0"`
}

type startDayReq struct {
	VehicleID uuid.UUID
	KmStart   float64
}

func (rs *resource) DserStartDayReq(c *gin.Context) *startDayReq {
	req := &rawStartDayReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return nil
	}
	vid, err := uuid.Parse(req.VehicleID)
	if err != nil {
		var errs map[string][]string
		serdser.AddErr(&errs, "vehicle_id", "Field is not UUID.")
		c.JSON(http.StatusBadRequest, errs)
		return nil
	}
	return &startDayReq{VehicleID: vid, KmStart: req.KmStart}
}

type rawUpdateDayReq struct {
	Op    string   `json:"op" binding:"required,oneof=end reopen"`
	KmEnd *float64 `json:"km_end" binding:"omitempty,gte=0"`
}

type updateDayReq struct {
	DayID uuid.UUID
	Op    string
	KmEnd float64
}

func (rs *resource) DserUpdateDayReq(c *gin.Context) *updateDayReq {
	id := rs.DserDayIDReq(c)
	if id == nil {
		return nil
	}
	req := &rawUpdateDayReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return nil
	}
	var errs map[string][]string
	switch req.Op {
	case "end":
		serdser.Assert(
			&errs, req.KmEnd != nil,
			"km_end", "The op=end requires km_end.",
		)
	case "reopen":
		serdser.Assert(
			&errs, req.KmEnd == nil,
			"km_end", "The op=reopen does not need km_end.",
		)
	default:
		panic("unknown op")
	}
	if errs != nil {
		c.JSON(http.StatusBadRequest, errs)
		return nil
	}
	val := &updateDayReq{DayID: id.DayID, Op: req.Op}
	if req.KmEnd != nil {
		val.KmEnd = *req.KmEnd
	}
	return val
}

type dayIDReq struct {
	DayID uuid.UUID
}

func (rs *resource) DserDayIDReq(c *gin.Context) *dayIDReq {
	did, err := uuid.Parse(c.Param("did"))
	if err != nil {
		var errs map[string][]string
		serdser.AddErr(&errs, "did", "Path param did is not UUID.")
		c.JSON(http.StatusBadRequest, errs)
		return nil
	}
	return &dayIDReq{DayID: did}
}
