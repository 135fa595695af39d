package api

import (
	"strconv"

	"fintrack/database"
	"fintrack/middleware"
	"fintrack/service"
	"fintrack/stats"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// BudgetHandler budget CRUD
type BudgetHandler struct{}

// NewBudgetHandler creates a budget handler
func NewBudgetHandler() *BudgetHandler {
	return &BudgetHandler{}
}

// BudgetRequest create/update payload
type BudgetRequest struct {
	CategoryID uint            `json:"category_id" binding:"required" example:"10"`
	Amount     decimal.Decimal `json:"amount" swaggertype:"string" example:"300"`
	Period     string          `json:"period" binding:"required,oneof=monthly yearly" example:"monthly"`
	IsActive   *bool           `json:"is_active" example:"true"`
}

func (r BudgetRequest) input() service.BudgetInput {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return service.BudgetInput{
		CategoryID: r.CategoryID,
		Amount:     r.Amount,
		Period:     stats.BudgetPeriod(r.Period),
		IsActive:   active,
	}
}

func budgetID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		BadRequest(c, "invalid id")
		return 0, false
	}
	return uint(id), true
}

// List returns the user's budgets
// @Summary List budgets
// @Tags budgets
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]stats.Budget}
// @Router /api/v1/budgets [get]
func (h *BudgetHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	snap, err := service.NewLedger(database.DB).Snapshot(userID)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "load budgets failed"))
		return
	}
	Success(c, snap.Budgets)
}

// Create stores a budget
// @Summary Create budget
// @Description At most one active budget per category and period.
// @Tags budgets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body BudgetRequest true "budget"
// @Success 200 {object} Response{data=stats.Budget}
// @Failure 400 {object} Response
// @Router /api/v1/budgets [post]
func (h *BudgetHandler) Create(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req BudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid parameters: "+err.Error())
		return
	}
	b, err := service.NewLedger(database.DB).CreateBudget(userID, req.input())
	if err != nil {
		respondError(c, err, "create budget failed")
		return
	}
	SuccessWithMessage(c, "created", b)
}

// Update replaces a budget
// @Summary Update budget
// @Tags budgets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "budget id"
// @Param request body BudgetRequest true "budget"
// @Success 200 {object} Response{data=stats.Budget}
// @Failure 400 {object} Response
// @Failure 404 {object} Response
// @Router /api/v1/budgets/{id} [put]
func (h *BudgetHandler) Update(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, ok := budgetID(c)
	if !ok {
		return
	}

	var req BudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid parameters: "+err.Error())
		return
	}
	b, err := service.NewLedger(database.DB).UpdateBudget(userID, id, req.input())
	if err != nil {
		respondError(c, err, "update budget failed")
		return
	}
	SuccessWithMessage(c, "updated", b)
}

// Delete removes a budget
// @Summary Delete budget
// @Tags budgets
// @Produce json
// @Security BearerAuth
// @Param id path int true "budget id"
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Router /api/v1/budgets/{id} [delete]
func (h *BudgetHandler) Delete(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, ok := budgetID(c)
	if !ok {
		return
	}

	if err := service.NewLedger(database.DB).DeleteBudget(userID, id); err != nil {
		respondError(c, err, "delete budget failed")
		return
	}
	SuccessWithMessage(c, "deleted", nil)
}
