package api

import (
	"bytes"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"fintrack/config"
	"fintrack/service"
	"fintrack/stats"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var fixedNow = time.Date(2024, 3, 20, 12, 0, 0, 0, time.Local)

func asUser(id uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", id)
		c.Next()
	}
}

func day(s string) time.Time {
	t, _ := time.ParseInLocation(dateLayout, s, time.Local)
	return t
}

func expectSnapshot(mock sqlmock.Sqlmock, userID uint) {
	mock.ExpectQuery("SELECT .* FROM `transaction_types`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "sort"}).
			AddRow(1, stats.TypeRevenue, 10).
			AddRow(2, stats.TypeFixedExpense, 20).
			AddRow(3, stats.TypeVariableExpense, 30))
	mock.ExpectQuery("SELECT .* FROM `categories`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "type_id", "name"}).
			AddRow(1, 1, "Salaire").
			AddRow(5, 2, "Loyer").
			AddRow(10, 3, "Alimentation"))
	mock.ExpectQuery("SELECT .* FROM `transactions`").
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "amount", "type_id", "category_id", "date", "description", "payment_method", "created_at", "deleted_at"}).
			AddRow("t1", userID, "130.00", 3, 10, day("2024-03-05"), "Marché bio", "carte", time.Now(), nil).
			AddRow("t2", userID, "2000.00", 1, 1, day("2024-03-01"), "Mars", "virement", time.Now(), nil).
			AddRow("t3", userID, "700.00", 2, 5, day("2024-02-03"), "", "virement", time.Now(), nil))
	mock.ExpectQuery("SELECT .* FROM `budgets`").
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "category_id", "amount", "period", "is_active", "created_at", "updated_at", "deleted_at"}).
			AddRow(1, userID, 10, "100.00", "monthly", true, time.Now(), time.Now(), nil))
}

func get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", path, nil))
	return w
}

func TestStatisticsHandler_Dashboard(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()
	cfg := testConfig()
	defer func() { config.GlobalConfig = nil }()

	h := NewStatisticsHandler(cfg)
	h.now = func() time.Time { return fixedNow }
	router := gin.New()
	router.GET("/dashboard", asUser(7), h.Dashboard)

	expectSnapshot(mock, 7)
	w := get(router, "/dashboard?chart_type=bar")

	require.Equal(t, 200, w.Code)
	data := decode(t, w)["data"].(map[string]interface{})
	sel := data["selection"].(map[string]interface{})
	assert.Equal(t, "month", sel["period"])
	assert.Equal(t, "bar", sel["chart_type"])

	entries := data["entries"].([]interface{})
	assert.Len(t, entries, 2)
	summary := data["summary"].(map[string]interface{})
	assert.Equal(t, "2000", summary["income"])
	assert.Equal(t, "130", summary["expense"])
	assert.Equal(t, "1870", summary["net"])

	budgets := data["budgets"].([]interface{})
	require.Len(t, budgets, 1)
	assert.Equal(t, "over", budgets[0].(map[string]interface{})["tier"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStatisticsHandler_CustomRangeAndCategory(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()
	cfg := testConfig()
	defer func() { config.GlobalConfig = nil }()

	h := NewStatisticsHandler(cfg)
	h.now = func() time.Time { return fixedNow }
	router := gin.New()
	router.GET("/categories", asUser(7), h.Categories)

	expectSnapshot(mock, 7)
	w := get(router, "/categories?period=custom&start=2024-02-01&end=2024-03-31&category=Loyer")

	require.Equal(t, 200, w.Code)
	data := decode(t, w)["data"].(map[string]interface{})
	cats := data["categories"].([]interface{})
	require.Len(t, cats, 1)
	first := cats[0].(map[string]interface{})
	assert.Equal(t, "Loyer", first["category_name"])
	assert.Equal(t, float64(100), first["percentage"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStatisticsHandler_BadSelection(t *testing.T) {
	_, cleanup := setupMockDB(t)
	defer cleanup()
	cfg := testConfig()
	defer func() { config.GlobalConfig = nil }()

	h := NewStatisticsHandler(cfg)
	router := gin.New()
	router.GET("/months", asUser(7), h.Months)

	for _, q := range []string{"?period=week", "?chart_type=radar", "?period=custom&start=03/01/2024"} {
		assert.Equal(t, 400, get(router, "/months"+q).Code, q)
	}
}

func TestTransactionHandler_Create(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()
	cfg := testConfig()
	defer func() { config.GlobalConfig = nil }()

	h := NewTransactionHandler(cfg)
	var alerted []stats.Entry
	h.alert = func(_ *service.Ledger, userID uint, entry stats.Entry) {
		assert.Equal(t, uint(7), userID)
		alerted = append(alerted, entry)
	}
	router := gin.New()
	router.POST("/transactions", asUser(7), h.Create)

	mock.ExpectQuery("SELECT .* FROM `categories`").
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "type_id", "name"}).AddRow(10, 3, "Alimentation"))
	mock.ExpectQuery("SELECT .* FROM `transaction_types`").
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(3, stats.TypeVariableExpense))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `transactions`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	w := postJSON(router, "/transactions", `{"amount":"12.40","category_id":10,"date":"2024-03-19","description":"Marché"}`)

	require.Equal(t, 200, w.Code)
	data := decode(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "Alimentation", data["category_name"])
	assert.Equal(t, "-12.4", data["signed_amount"])
	require.Len(t, alerted, 1)
	assert.Equal(t, "Alimentation", alerted[0].CategoryName)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionHandler_Create_Rejections(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()
	cfg := testConfig()
	defer func() { config.GlobalConfig = nil }()

	router := gin.New()
	router.POST("/transactions", asUser(7), NewTransactionHandler(cfg).Create)

	assert.Equal(t, 400, postJSON(router, "/transactions", `{"amount":"5","category_id":10,"date":"19/03/2024"}`).Code)
	assert.Equal(t, 400, postJSON(router, "/transactions", `{"amount":"5","date":"2024-03-19"}`).Code)

	w := postJSON(router, "/transactions", `{"amount":"-5","category_id":10,"date":"2024-03-19"}`)
	assert.Equal(t, 400, w.Code)
	assert.Equal(t, service.ErrNegativeAmount.Error(), decode(t, w)["message"])

	mock.ExpectQuery("SELECT .* FROM `categories`").
		WithArgs(99).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	w = postJSON(router, "/transactions", `{"amount":"5","category_id":99,"date":"2024-03-19"}`)
	assert.Equal(t, 400, w.Code)
	assert.Equal(t, service.ErrInvalidCategory.Error(), decode(t, w)["message"])

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionHandler_List(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()
	cfg := testConfig()
	defer func() { config.GlobalConfig = nil }()

	h := NewTransactionHandler(cfg)
	h.now = func() time.Time { return fixedNow }
	router := gin.New()
	router.GET("/transactions", asUser(7), h.List)

	expectSnapshot(mock, 7)
	w := get(router, "/transactions?period=year&search=VIREMENT&page_size=1")

	require.Equal(t, 200, w.Code)
	data := decode(t, w)["data"].(map[string]interface{})
	assert.Equal(t, float64(2), data["total"])
	list := data["list"].([]interface{})
	require.Len(t, list, 1)
	assert.Equal(t, "t2", list[0].(map[string]interface{})["id"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionHandler_Delete_NotFound(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()
	cfg := testConfig()
	defer func() { config.GlobalConfig = nil }()

	router := gin.New()
	router.DELETE("/transactions/:id", asUser(7), NewTransactionHandler(cfg).Delete)

	mock.ExpectQuery("SELECT .* FROM `transactions`").
		WithArgs("missing", 7).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("DELETE", "/transactions/missing", nil))
	assert.Equal(t, 404, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBudgetHandler(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()
	testConfig()
	defer func() { config.GlobalConfig = nil }()

	h := NewBudgetHandler()
	router := gin.New()
	router.POST("/budgets", asUser(7), h.Create)
	router.PUT("/budgets/:id", asUser(7), h.Update)

	// binding rejects unknown periods before the ledger sees them
	assert.Equal(t, 400, postJSON(router, "/budgets", `{"category_id":10,"amount":"50","period":"weekly"}`).Code)

	w := postJSON(router, "/budgets", `{"category_id":10,"amount":"0","period":"monthly"}`)
	assert.Equal(t, 400, w.Code)
	assert.Contains(t, decode(t, w)["message"], stats.ErrNonPositiveBudget.Error())

	mock.ExpectQuery("SELECT .* FROM `categories`").
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "type_id", "name"}).AddRow(10, 3, "Alimentation"))
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `budgets`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	w = postJSON(router, "/budgets", `{"category_id":10,"amount":"50","period":"monthly"}`)
	assert.Equal(t, 400, w.Code)
	assert.Equal(t, service.ErrDuplicateBudget.Error(), decode(t, w)["message"])

	req := httptest.NewRequest("PUT", "/budgets/abc", bytes.NewBufferString(`{}`))
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, 400, w.Code)

	mock.ExpectQuery("SELECT .* FROM `budgets`").
		WithArgs(9, 7).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	req = httptest.NewRequest("PUT", "/budgets/9", bytes.NewBufferString(`{"category_id":10,"amount":"50","period":"yearly"}`))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, 404, w.Code)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExportHandler_CSV(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()
	cfg := testConfig()
	defer func() { config.GlobalConfig = nil }()

	h := NewExportHandler(cfg)
	h.now = func() time.Time { return fixedNow }
	router := gin.New()
	router.GET("/csv", asUser(7), h.ExportCSV)

	expectSnapshot(mock, 7)
	w := get(router, "/csv?period=year")

	require.Equal(t, 200, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "transactions_year_2024-03-20.csv")
	lines := strings.Split(strings.TrimSpace(strings.TrimPrefix(w.Body.String(), "\xEF\xBB\xBF")), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "id,date,type,category,amount,signed_amount,description,payment_method", lines[0])
	assert.Equal(t, "t1,2024-03-05,depense_variable,Alimentation,130.00,-130.00,Marché bio,carte", lines[1])
	assert.Equal(t, "t2,2024-03-01,revenu,Salaire,2000.00,2000.00,Mars,virement", lines[2])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExportHandler_Excel(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()
	cfg := testConfig()
	defer func() { config.GlobalConfig = nil }()

	h := NewExportHandler(cfg)
	h.now = func() time.Time { return fixedNow }
	router := gin.New()
	router.GET("/excel", asUser(7), h.ExportExcel)

	expectSnapshot(mock, 7)
	w := get(router, "/excel")
	require.Equal(t, 200, w.Code)

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"Transactions", "Categories", "Budgets"}, f.GetSheetList())

	category, err := f.GetCellValue("Transactions", "C2")
	require.NoError(t, err)
	assert.Equal(t, "Alimentation", category)
	tier, err := f.GetCellValue("Budgets", "G2")
	require.NoError(t, err)
	assert.Equal(t, "over", tier)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTaxonomyHandler(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	h := NewTaxonomyHandler()
	router := gin.New()
	router.GET("/types", h.Types)
	router.GET("/categories", h.Categories)

	mock.ExpectQuery("SELECT .* FROM `transaction_types`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "sort"}).AddRow(1, stats.TypeRevenue, 10))
	w := get(router, "/types")
	require.Equal(t, 200, w.Code)
	assert.Len(t, decode(t, w)["data"].([]interface{}), 1)

	mock.ExpectQuery("SELECT .* FROM `categories` WHERE type_id = ?").
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"id", "type_id", "name"}).AddRow(10, 3, "Alimentation"))
	w = get(router, "/categories?type_id=3")
	require.Equal(t, 200, w.Code)
	cats := decode(t, w)["data"].([]interface{})
	assert.Equal(t, "Alimentation", cats[0].(map[string]interface{})["name"])

	assert.Equal(t, 400, get(router, "/categories?type_id=x").Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExportHandler_JSON(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()
	cfg := testConfig()
	defer func() { config.GlobalConfig = nil }()

	h := NewExportHandler(cfg)
	h.now = func() time.Time { return fixedNow }
	router := gin.New()
	router.GET("/json", asUser(7), h.ExportJSON)

	expectSnapshot(mock, 7)
	w := get(router, "/json?search=bio")

	require.Equal(t, 200, w.Code)
	data := decode(t, w)["data"].(map[string]interface{})
	txs := data["transactions"].([]interface{})
	require.Len(t, txs, 1)
	assert.Equal(t, "-130", txs[0].(map[string]interface{})["signed_amount"])
	assert.Equal(t, float64(1), data["summary"].(map[string]interface{})["count"])
	require.NoError(t, mock.ExpectationsWereMet())
}
