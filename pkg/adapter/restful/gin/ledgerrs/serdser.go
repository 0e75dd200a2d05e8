package ledgerrs

import (
	"net/http"

	"github.com/drivermind/dmweb/pkg/adapter/restful/gin/serdser"
	"github.com/drivermind/dmweb/pkg/core/model"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
)

// Amounts arrive as strings, so clients can pass both the comma and
// the dot decimal notations ("12,50" and "12.50") without floating
// point rounding on the wire.
type rawAddEarningReq struct {
	Amount   string `json:"amount" binding:"required"`
	Platform string `json:"platform" binding:"required"`
	Currency string `json:"currency" binding:"required"`
}

type addEarningReq struct {
	Amount   model.Money
	Platform model.Platform
	Currency model.Currency
}

func (rs *resource) DserAddEarningReq(c *gin.Context) *addEarningReq {
	req := &rawAddEarningReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return nil
	}
	val := &addEarningReq{}
	var errs map[string][]string
	var err error
	val.Amount, err = model.ParseAmount(req.Amount)
	serdser.Assert(&errs, err == nil, "amount", "Not a money amount.")
	val.Platform, err = model.ParsePlatform(req.Platform)
	serdser.Assert(&errs, err == nil, "platform", "Unknown platform.")
	val.Currency, err = model.ParseCurrency(req.Currency)
	serdser.Assert(&errs, err == nil, "currency", "Unknown currency.")
	if errs != nil {
		c.JSON(http.StatusBadRequest, errs)
		return nil
	}
	return val
}

type rawAddExpenseReq struct {
	Amount   string `json:"amount" binding:"required"`
	Category string `json:"category" binding:"required"`
	Currency string `json:"currency" binding:"required"`
	Note     string `json:"note" binding:"omitempty,max=500"`
}

type addExpenseReq struct {
	Amount   model.Money
	Category model.ExpenseCategory
	Currency model.Currency
	Note     string
}

func (rs *resource) DserAddExpenseReq(c *gin.Context) *addExpenseReq {
	req := &rawAddExpenseReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return nil
	}
	val := &addExpenseReq{Note: req.Note}
	var errs map[string][]string
	var err error
	val.Amount, err = model.ParseAmount(req.Amount)
	serdser.Assert(&errs, err == nil, "amount", "Not a money amount.")
	val.Category, err = model.ParseExpenseCategory(req.Category)
	serdser.Assert(&errs, err == nil, "category", "Unknown category.")
	val.Currency, err = model.ParseCurrency(req.Currency)
	serdser.Assert(&errs, err == nil, "currency", "Unknown currency.")
	if errs != nil {
		c.JSON(http.StatusBadRequest, errs)
		return nil
	}
	return val
}

type recordIDReq struct {
	RecordID uuid.UUID
}

func (rs *resource) DserRecordIDReq(c *gin.Context) *recordIDReq {
	rid, err := uuid.Parse(c.Param("rid"))
	if err != nil {
		var errs map[string][]string
		serdser.AddErr(&errs, "rid", "Path param rid is not UUID.")
		c.JSON(http.StatusBadRequest, errs)
		return nil
	}
	return &recordIDReq{RecordID: rid}
}
