package api

import (
	"fmt"
	"time"

	"fintrack/stats"

	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

// parseSelection reads period, start, end, category, search and chart_type
// from the query string. An absent period falls back to defaultPeriod.
func parseSelection(c *gin.Context, defaultPeriod string, now time.Time) (stats.Selection, error) {
	raw := c.DefaultQuery("period", defaultPeriod)
	period, err := stats.ParsePeriod(raw)
	if err != nil {
		return stats.Selection{}, err
	}
	chart, err := stats.ParseChartType(c.Query("chart_type"))
	if err != nil {
		return stats.Selection{}, err
	}
	start, err := parseDate(c.Query("start"))
	if err != nil {
		return stats.Selection{}, fmt.Errorf("start: %w", err)
	}
	end, err := parseDate(c.Query("end"))
	if err != nil {
		return stats.Selection{}, fmt.Errorf("end: %w", err)
	}
	return stats.Selection{
		Period:      period,
		Now:         now,
		CustomStart: start,
		CustomEnd:   end,
		Category:    c.Query("category"),
		Search:      c.Query("search"),
		ChartType:   chart,
	}, nil
}

func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(dateLayout, s, time.Local)
	if err != nil {
		return nil, fmt.Errorf("date must look like %s", dateLayout)
	}
	return &t, nil
}
