package api

import (
	"strconv"
	"time"

	"fintrack/config"
	"fintrack/database"
	"fintrack/middleware"
	"fintrack/service"
	"fintrack/stats"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// TransactionHandler add, list and remove transactions
type TransactionHandler struct {
	cfg *config.Config
	now func() time.Time
	// alert runs after a successful create; nil disables alerts
	alert func(ledger *service.Ledger, userID uint, entry stats.Entry)
}

// NewTransactionHandler creates a transaction handler. Budget alerts are sent
// in the background when alerts are enabled.
func NewTransactionHandler(cfg *config.Config) *TransactionHandler {
	h := &TransactionHandler{cfg: cfg, now: time.Now}
	if cfg.Alerts.Enabled {
		email := service.NewEmailService(&cfg.Email, cfg.Stats)
		h.alert = func(ledger *service.Ledger, userID uint, entry stats.Entry) {
			go service.NewBudgetAlerter(ledger, email, logrus.StandardLogger()).AfterCreate(userID, entry)
		}
	}
	return h
}

// CreateTransactionRequest new transaction payload. Amount is a non-negative
// magnitude; the type decides whether it counts as income or expense.
type CreateTransactionRequest struct {
	Amount        decimal.Decimal `json:"amount" swaggertype:"string" example:"12.40"`
	TypeID        uint            `json:"type_id" example:"3"`
	CategoryID    uint            `json:"category_id" binding:"required" example:"10"`
	Date          string          `json:"date" binding:"required" example:"2024-03-05"`
	Description   string          `json:"description" binding:"max=255" example:"Marché"`
	PaymentMethod string          `json:"payment_method" binding:"max=50" example:"carte"`
}

// TransactionView an entry plus its signed display amount
type TransactionView struct {
	stats.Entry
	SignedAmount decimal.Decimal `json:"signed_amount" swaggertype:"string"`
}

func viewOf(e stats.Entry) TransactionView {
	return TransactionView{Entry: e, SignedAmount: stats.Display(e.Amount, e.TypeName).Amount}
}

// Create stores a transaction
// @Summary Add transaction
// @Tags transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateTransactionRequest true "transaction"
// @Success 200 {object} Response{data=TransactionView}
// @Failure 400 {object} Response
// @Failure 401 {object} Response
// @Router /api/v1/transactions [post]
func (h *TransactionHandler) Create(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid parameters: "+err.Error())
		return
	}
	date, err := time.ParseInLocation(dateLayout, req.Date, time.Local)
	if err != nil {
		BadRequest(c, "date must look like "+dateLayout)
		return
	}

	ledger := service.NewLedger(database.DB)
	entry, err := ledger.CreateTransaction(userID, service.NewTransaction{
		Amount:        req.Amount,
		TypeID:        req.TypeID,
		CategoryID:    req.CategoryID,
		Date:          date,
		Description:   req.Description,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		respondError(c, err, "create transaction failed")
		return
	}

	if h.alert != nil {
		h.alert(ledger, userID, entry)
	}
	SuccessWithMessage(c, "created", viewOf(entry))
}

// List returns the user's transactions matching the selection, newest first
// @Summary List transactions
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Param period query string false "month, quarter, year or custom"
// @Param start query string false "custom start (2024-01-01)"
// @Param end query string false "custom end (2024-12-31)"
// @Param category query string false "exact category name"
// @Param search query string false "free-text search"
// @Param page query int false "page, from 1"
// @Param page_size query int false "page size, default 20"
// @Success 200 {object} Response{data=PageResponse{list=[]TransactionView}}
// @Failure 400 {object} Response
// @Router /api/v1/transactions [get]
func (h *TransactionHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	sel, err := parseSelection(c, h.cfg.Stats.DefaultPeriod, h.now())
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	snap, err := service.NewLedger(database.DB).Snapshot(userID)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "load transactions failed"))
		return
	}
	filtered := sel.Apply(snap.Entries)

	from := (page - 1) * pageSize
	if from > len(filtered) {
		from = len(filtered)
	}
	to := from + pageSize
	if to > len(filtered) {
		to = len(filtered)
	}
	views := make([]TransactionView, 0, to-from)
	for _, e := range filtered[from:to] {
		views = append(views, viewOf(e))
	}

	Success(c, PageResponse{
		Total:    int64(len(filtered)),
		Page:     page,
		PageSize: pageSize,
		List:     views,
	})
}

// Delete removes a transaction
// @Summary Delete transaction
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Param id path string true "transaction id"
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Router /api/v1/transactions/{id} [delete]
func (h *TransactionHandler) Delete(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	if err := service.NewLedger(database.DB).DeleteTransaction(userID, c.Param("id")); err != nil {
		respondError(c, err, "delete transaction failed")
		return
	}
	SuccessWithMessage(c, "deleted", nil)
}
