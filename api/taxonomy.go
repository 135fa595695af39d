package api

import (
	"strconv"

	"fintrack/database"
	"fintrack/service"

	"github.com/gin-gonic/gin"
)

// TaxonomyHandler serves the fixed transaction types and their categories
type TaxonomyHandler struct{}

// NewTaxonomyHandler creates a taxonomy handler
func NewTaxonomyHandler() *TaxonomyHandler {
	return &TaxonomyHandler{}
}

// Types lists transaction types
// @Summary Transaction types
// @Tags taxonomy
// @Produce json
// @Success 200 {object} Response{data=[]models.TransactionType}
// @Router /api/v1/types [get]
func (h *TaxonomyHandler) Types(c *gin.Context) {
	types, err := service.NewLedger(database.DB).Types()
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "list types failed"))
		return
	}
	Success(c, types)
}

// Categories lists categories, optionally for one type
// @Summary Categories
// @Tags taxonomy
// @Produce json
// @Param type_id query int false "restrict to one type"
// @Success 200 {object} Response{data=[]models.Category}
// @Failure 400 {object} Response
// @Router /api/v1/categories [get]
func (h *TaxonomyHandler) Categories(c *gin.Context) {
	var typeID uint64
	if raw := c.Query("type_id"); raw != "" {
		var err error
		if typeID, err = strconv.ParseUint(raw, 10, 64); err != nil {
			BadRequest(c, "invalid type_id")
			return
		}
	}
	cats, err := service.NewLedger(database.DB).Categories(uint(typeID))
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "list categories failed"))
		return
	}
	Success(c, cats)
}
