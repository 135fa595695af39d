package api

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"fintrack/config"
	"fintrack/stats"

	"github.com/gin-gonic/gin"
	"github.com/gocarina/gocsv"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

// ExportHandler downloads of the filtered transactions
type ExportHandler struct {
	cfg *config.Config
	now func() time.Time
}

// NewExportHandler creates an export handler
func NewExportHandler(cfg *config.Config) *ExportHandler {
	return &ExportHandler{cfg: cfg, now: time.Now}
}

// csvRow one exported transaction
type csvRow struct {
	ID            string `csv:"id"`
	Date          string `csv:"date"`
	Type          string `csv:"type"`
	Category      string `csv:"category"`
	Amount        string `csv:"amount"`
	SignedAmount  string `csv:"signed_amount"`
	Description   string `csv:"description"`
	PaymentMethod string `csv:"payment_method"`
}

func toCSVRows(entries []stats.Entry) []*csvRow {
	rows := make([]*csvRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, &csvRow{
			ID:            e.ID,
			Date:          e.Date.Format(dateLayout),
			Type:          e.TypeName,
			Category:      e.CategoryName,
			Amount:        e.Amount.StringFixed(2),
			SignedAmount:  stats.Display(e.Amount, e.TypeName).Amount.StringFixed(2),
			Description:   e.Description,
			PaymentMethod: e.PaymentMethod,
		})
	}
	return rows
}

func exportName(d stats.Dashboard, ext string) string {
	return fmt.Sprintf("transactions_%s_%s.%s", d.Selection.Period, d.Selection.Now.Format(dateLayout), ext)
}

// ExportCSV downloads the filtered transactions as CSV
// @Summary Export CSV
// @Tags export
// @Produce text/csv
// @Security BearerAuth
// @Param period query string false "month, quarter, year or custom"
// @Param start query string false "custom start (2024-01-01)"
// @Param end query string false "custom end (2024-12-31)"
// @Param category query string false "exact category name"
// @Param search query string false "free-text search"
// @Success 200 {file} file "CSV file"
// @Failure 400 {object} Response
// @Router /api/v1/export/csv [get]
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	d, ok := buildDashboard(c, h.cfg, h.now())
	if !ok {
		return
	}

	buf := new(bytes.Buffer)
	// BOM so spreadsheet apps pick up UTF-8
	buf.WriteString("\xEF\xBB\xBF")
	w := csv.NewWriter(buf)
	if err := gocsv.MarshalCSV(toCSVRows(d.Entries), gocsv.NewSafeCSVWriter(w)); err != nil {
		logrus.WithError(err).Error("Export.CSV.Error")
		InternalError(c, "generate CSV failed")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", exportName(d, "csv")))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// ExportJSON returns the filtered transactions with their summary
// @Summary Export JSON
// @Tags export
// @Produce json
// @Security BearerAuth
// @Param period query string false "month, quarter, year or custom"
// @Param start query string false "custom start"
// @Param end query string false "custom end"
// @Param category query string false "exact category name"
// @Param search query string false "free-text search"
// @Success 200 {object} Response
// @Failure 400 {object} Response
// @Router /api/v1/export/json [get]
func (h *ExportHandler) ExportJSON(c *gin.Context) {
	d, ok := buildDashboard(c, h.cfg, h.now())
	if !ok {
		return
	}
	views := make([]TransactionView, 0, len(d.Entries))
	for _, e := range d.Entries {
		views = append(views, viewOf(e))
	}
	Success(c, gin.H{
		"selection":    d.Selection,
		"range":        d.Range,
		"summary":      d.Summary,
		"transactions": views,
	})
}

var cellBorder = []excelize.Border{
	{Type: "left", Color: "000000", Style: 1},
	{Type: "top", Color: "000000", Style: 1},
	{Type: "bottom", Color: "000000", Style: 1},
	{Type: "right", Color: "000000", Style: 1},
}

type sheetStyles struct {
	header, data, summary int
}

func newSheetStyles(f *excelize.File) sheetStyles {
	var s sheetStyles
	s.header, _ = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4F81BD"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    cellBorder,
	})
	s.data, _ = f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    cellBorder,
	})
	s.summary, _ = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"FFC000"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    cellBorder,
	})
	return s
}

// writeSheet fills sheet with a styled header row and data rows
func writeSheet(f *excelize.File, sheet string, styles sheetStyles, headers []string, rows [][]interface{}) error {
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		f.SetCellValue(sheet, cell, header)
		f.SetCellStyle(sheet, cell, cell, styles.header)
	}
	lastCol, _ := excelize.ColumnNumberToName(len(headers))
	f.SetColWidth(sheet, "A", lastCol, 18)
	for r, values := range rows {
		row := r + 2
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return err
			}
			f.SetCellValue(sheet, cell, v)
		}
		f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("%s%d", lastCol, row), styles.data)
	}
	return nil
}

// Workbook renders a dashboard as a three-sheet Excel file
func Workbook(d stats.Dashboard) (*excelize.File, error) {
	f := excelize.NewFile()
	styles := newSheetStyles(f)

	const txSheet = "Transactions"
	f.SetSheetName("Sheet1", txSheet)
	txRows := make([][]interface{}, 0, len(d.Entries))
	for _, e := range d.Entries {
		txRows = append(txRows, []interface{}{
			e.Date.Format(dateLayout),
			e.TypeName,
			e.CategoryName,
			stats.Display(e.Amount, e.TypeName).Amount.InexactFloat64(),
			e.Description,
			e.PaymentMethod,
		})
	}
	if err := writeSheet(f, txSheet, styles, []string{"Date", "Type", "Category", "Amount", "Description", "Payment method"}, txRows); err != nil {
		return nil, err
	}
	summaryRow := len(txRows) + 2
	f.SetCellValue(txSheet, fmt.Sprintf("A%d", summaryRow), "Net")
	f.MergeCell(txSheet, fmt.Sprintf("A%d", summaryRow), fmt.Sprintf("C%d", summaryRow))
	f.SetCellValue(txSheet, fmt.Sprintf("D%d", summaryRow), d.Summary.Net.InexactFloat64())
	f.SetCellStyle(txSheet, fmt.Sprintf("A%d", summaryRow), fmt.Sprintf("F%d", summaryRow), styles.summary)

	const catSheet = "Categories"
	if _, err := f.NewSheet(catSheet); err != nil {
		return nil, err
	}
	catRows := make([][]interface{}, 0, len(d.Categories))
	for _, a := range d.Categories {
		catRows = append(catRows, []interface{}{a.CategoryName, a.Total.InexactFloat64(), a.Count, fmt.Sprintf("%.1f%%", a.Percentage)})
	}
	if err := writeSheet(f, catSheet, styles, []string{"Category", "Total", "Count", "Share"}, catRows); err != nil {
		return nil, err
	}

	const budgetSheet = "Budgets"
	if _, err := f.NewSheet(budgetSheet); err != nil {
		return nil, err
	}
	budgetRows := make([][]interface{}, 0, len(d.Budgets))
	for _, b := range d.Budgets {
		budgetRows = append(budgetRows, []interface{}{
			b.Budget.CategoryName,
			string(b.Budget.Period),
			b.Budget.Amount.InexactFloat64(),
			b.Spent.InexactFloat64(),
			b.Remaining.InexactFloat64(),
			fmt.Sprintf("%.1f%%", b.UtilizationPercent),
			string(b.Tier),
		})
	}
	if err := writeSheet(f, budgetSheet, styles, []string{"Category", "Period", "Budget", "Spent", "Remaining", "Used", "Status"}, budgetRows); err != nil {
		return nil, err
	}

	return f, nil
}

// ExportExcel downloads the dashboard as an Excel workbook
// @Summary Export Excel
// @Description Sheets: Transactions, Categories, Budgets.
// @Tags export
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param period query string false "month, quarter, year or custom"
// @Param start query string false "custom start"
// @Param end query string false "custom end"
// @Param category query string false "exact category name"
// @Param search query string false "free-text search"
// @Success 200 {file} file "xlsx file"
// @Failure 400 {object} Response
// @Router /api/v1/export/excel [get]
func (h *ExportHandler) ExportExcel(c *gin.Context) {
	d, ok := buildDashboard(c, h.cfg, h.now())
	if !ok {
		return
	}
	f, err := Workbook(d)
	if err != nil {
		logrus.WithError(err).Error("Export.Excel.Error")
		InternalError(c, "generate Excel failed")
		return
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		InternalError(c, "generate Excel failed")
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", exportName(d, "xlsx")))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
