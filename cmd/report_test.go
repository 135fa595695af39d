package cmd

import (
	"bytes"
	"testing"
	"time"

	"fintrack/config"
	"fintrack/stats"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
)

func TestReportSelection(t *testing.T) {
	cfg = &config.Config{Stats: config.StatsConfig{DefaultPeriod: "year"}}
	defer func() { cfg = nil }()
	now := time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)

	reportFlags.period, reportFlags.start, reportFlags.end = "", "", ""
	sel, err := reportSelection(now)
	require.NoError(t, err)
	assert.Equal(t, stats.PeriodYear, sel.Period)
	assert.Nil(t, sel.CustomStart)

	reportFlags.period, reportFlags.start, reportFlags.end = "custom", "2024-01-01", "2024-01-31"
	defer func() { reportFlags.period, reportFlags.start, reportFlags.end = "", "", "" }()
	sel, err = reportSelection(now)
	require.NoError(t, err)
	require.NotNil(t, sel.CustomStart)
	require.NotNil(t, sel.CustomEnd)
	assert.Equal(t, 31, sel.CustomEnd.Day())

	reportFlags.period = "week"
	_, err = reportSelection(now)
	assert.ErrorIs(t, err, stats.ErrUnknownPeriod)

	reportFlags.period, reportFlags.start = "custom", "01/02/2024"
	_, err = reportSelection(now)
	assert.Error(t, err)
}

func TestRenderReport(t *testing.T) {
	entries := []stats.Entry{
		{ID: "a", Amount: decimal.NewFromInt(2000), TypeName: stats.TypeRevenue, CategoryName: "Salaire", Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "b", Amount: decimal.NewFromInt(130), TypeName: stats.TypeVariableExpense, CategoryID: 10, CategoryName: "Alimentation", Date: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)},
	}
	budgets := []stats.Budget{{ID: 1, CategoryID: 10, CategoryName: "Alimentation", Amount: decimal.NewFromInt(100), Period: stats.BudgetMonthly, IsActive: true}}
	d, err := stats.Build(stats.Selection{Period: stats.PeriodMonth, Now: time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)}, entries, budgets)
	require.NoError(t, err)

	var buf bytes.Buffer
	RenderReport(&buf, d, language.English, currency.EUR)
	out := buf.String()

	assert.Contains(t, out, "fintrack dashboard")
	assert.Contains(t, out, "Alimentation")
	assert.Contains(t, out, "2024-03")
	assert.Contains(t, out, "130.0% over")
}
