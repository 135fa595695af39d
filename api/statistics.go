package api

import (
	"time"

	"fintrack/config"
	"fintrack/database"
	"fintrack/middleware"
	"fintrack/service"
	"fintrack/stats"

	"github.com/gin-gonic/gin"
)

// StatisticsHandler dashboard views over the user's transactions
type StatisticsHandler struct {
	cfg *config.Config
	now func() time.Time
}

// NewStatisticsHandler creates a statistics handler
func NewStatisticsHandler(cfg *config.Config) *StatisticsHandler {
	return &StatisticsHandler{cfg: cfg, now: time.Now}
}

// dashboard loads the user's records and builds every view for the
// selection in the query string. It writes the error response itself.
func (h *StatisticsHandler) dashboard(c *gin.Context) (stats.Dashboard, bool) {
	return buildDashboard(c, h.cfg, h.now())
}

func buildDashboard(c *gin.Context, cfg *config.Config, now time.Time) (stats.Dashboard, bool) {
	userID := middleware.GetCurrentUserID(c)

	sel, err := parseSelection(c, cfg.Stats.DefaultPeriod, now)
	if err != nil {
		BadRequest(c, err.Error())
		return stats.Dashboard{}, false
	}
	snap, err := service.NewLedger(database.DB).Snapshot(userID)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "load transactions failed"))
		return stats.Dashboard{}, false
	}
	d, err := stats.NewAggregator(cfg.Stats.Palette).Build(sel, snap.Entries, snap.Budgets)
	if err != nil {
		respondError(c, err, "build statistics failed")
		return stats.Dashboard{}, false
	}
	return d, true
}

// Dashboard returns every view for the selection
// @Summary Dashboard
// @Description Filtered entries, summary, category and type aggregates, monthly buckets and budget utilization.
// @Tags statistics
// @Produce json
// @Security BearerAuth
// @Param period query string false "month, quarter, year or custom"
// @Param start query string false "custom start (2024-01-01)"
// @Param end query string false "custom end (2024-12-31)"
// @Param category query string false "exact category name"
// @Param search query string false "free-text search"
// @Param chart_type query string false "pie, bar, line or area"
// @Success 200 {object} Response{data=stats.Dashboard}
// @Failure 400 {object} Response
// @Router /api/v1/statistics/dashboard [get]
func (h *StatisticsHandler) Dashboard(c *gin.Context) {
	d, ok := h.dashboard(c)
	if !ok {
		return
	}
	Success(c, d)
}

// Categories returns the category breakdown
// @Summary Category breakdown
// @Tags statistics
// @Produce json
// @Security BearerAuth
// @Param period query string false "month, quarter, year or custom"
// @Param start query string false "custom start"
// @Param end query string false "custom end"
// @Param category query string false "exact category name"
// @Param search query string false "free-text search"
// @Success 200 {object} Response{data=[]stats.CategoryAggregate}
// @Router /api/v1/statistics/categories [get]
func (h *StatisticsHandler) Categories(c *gin.Context) {
	d, ok := h.dashboard(c)
	if !ok {
		return
	}
	Success(c, gin.H{
		"chart_type": d.Selection.ChartType,
		"categories": d.Categories,
	})
}

// Months returns the monthly income/expense series
// @Summary Monthly trend
// @Tags statistics
// @Produce json
// @Security BearerAuth
// @Param period query string false "month, quarter, year or custom"
// @Param start query string false "custom start"
// @Param end query string false "custom end"
// @Success 200 {object} Response{data=[]stats.TimeBucket}
// @Router /api/v1/statistics/months [get]
func (h *StatisticsHandler) Months(c *gin.Context) {
	d, ok := h.dashboard(c)
	if !ok {
		return
	}
	Success(c, gin.H{
		"chart_type": d.Selection.ChartType,
		"months":     d.Months,
	})
}

// Budgets returns utilization for every active budget
// @Summary Budget utilization
// @Tags statistics
// @Produce json
// @Security BearerAuth
// @Param period query string false "month, quarter, year or custom"
// @Param start query string false "custom start"
// @Param end query string false "custom end"
// @Success 200 {object} Response{data=[]stats.BudgetStatus}
// @Router /api/v1/statistics/budgets [get]
func (h *StatisticsHandler) Budgets(c *gin.Context) {
	d, ok := h.dashboard(c)
	if !ok {
		return
	}
	Success(c, d.Budgets)
}
