package api

import (
	"errors"
	"net/http"

	"fintrack/service"
	"fintrack/stats"

	"github.com/gin-gonic/gin"
)

// Response common response envelope
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// PageResponse paginated list
type PageResponse struct {
	Total    int64       `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
	List     interface{} `json:"list"`
}

// Success 200 response
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    200,
		Message: "success",
		Data:    data,
	})
}

// SuccessWithMessage 200 response with a custom message
func SuccessWithMessage(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    200,
		Message: message,
		Data:    data,
	})
}

// Error error response
func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
	})
}

// BadRequest 400
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// Unauthorized 401
func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, message)
}

// InternalError 500
func InternalError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, message)
}

// NotFound 404
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

var validationErrors = []error{
	service.ErrInvalidCategory,
	service.ErrTypeMismatch,
	service.ErrNegativeAmount,
	service.ErrDuplicateBudget,
	stats.ErrNonPositiveBudget,
	stats.ErrUnknownBudgetPeriod,
	stats.ErrMissingCategory,
	stats.ErrUnknownPeriod,
	stats.ErrUnknownChartType,
}

// respondError maps ledger and engine errors onto the envelope
func respondError(c *gin.Context, err error, fallback string) {
	if errors.Is(err, service.ErrNotFound) {
		NotFound(c, err.Error())
		return
	}
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			BadRequest(c, err.Error())
			return
		}
	}
	InternalError(c, SafeErrorMessage(err, fallback))
}
