package service

import (
	"errors"
	"testing"
	"time"

	"fintrack/stats"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)
	return db, mock
}

func expectTaxonomy(mock sqlmock.Sqlmock) {
	mock.ExpectQuery("SELECT .* FROM `transaction_types`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "icon", "color", "sort"}).
			AddRow(1, stats.TypeRevenue, "wallet", "#10b981", 10).
			AddRow(3, stats.TypeVariableExpense, "cart", "#f59e0b", 30))
	mock.ExpectQuery("SELECT .* FROM `categories`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "type_id", "name", "icon", "color", "sort"}).
			AddRow(1, 1, "Salaire", "briefcase", "#10b981", 10).
			AddRow(10, 3, "Alimentation", "cart", "#ef4444", 10))
}

func transactionRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "user_id", "amount", "type_id", "category_id", "date", "description", "payment_method", "created_at", "deleted_at"})
}

func budgetRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "user_id", "category_id", "amount", "period", "is_active", "created_at", "updated_at", "deleted_at"})
}

func TestLedger_Snapshot(t *testing.T) {
	db, mock := setupMockDB(t)

	expectTaxonomy(mock)
	mock.ExpectQuery("SELECT .* FROM `transactions`").
		WithArgs(1).
		WillReturnRows(transactionRows().
			AddRow("t1", 1, "50.00", 3, 10, day("2024-03-05"), "Courses", "carte", time.Now(), nil).
			AddRow("t2", 1, "2000.00", 1, 1, day("2024-03-01"), "", "virement", time.Now(), nil))
	mock.ExpectQuery("SELECT .* FROM `budgets`").
		WithArgs(1).
		WillReturnRows(budgetRows().
			AddRow(4, 1, 10, "300.00", "monthly", true, time.Now(), time.Now(), nil))

	snap, err := NewLedger(db).Snapshot(1)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	require.Len(t, snap.Entries, 2)
	assert.Equal(t, "t1", snap.Entries[0].ID)
	assert.Equal(t, stats.TypeVariableExpense, snap.Entries[0].TypeName)
	assert.Equal(t, "Alimentation", snap.Entries[0].CategoryName)
	assert.True(t, decimal.NewFromInt(50).Equal(snap.Entries[0].Amount))
	assert.Equal(t, "Salaire", snap.Entries[1].CategoryName)

	require.Len(t, snap.Budgets, 1)
	assert.Equal(t, "Alimentation", snap.Budgets[0].CategoryName)
	assert.Equal(t, stats.BudgetMonthly, snap.Budgets[0].Period)
	assert.True(t, snap.Budgets[0].IsActive)
}

func TestLedger_CreateTransaction(t *testing.T) {
	db, mock := setupMockDB(t)

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

	entry, err := NewLedger(db).CreateTransaction(1, NewTransaction{
		Amount:      decimal.RequireFromString("12.40"),
		CategoryID:  10,
		Date:        time.Date(2024, 3, 5, 18, 30, 0, 0, time.UTC),
		Description: "  Marché ",
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, uint(3), entry.TypeID)
	assert.Equal(t, stats.TypeVariableExpense, entry.TypeName)
	assert.Equal(t, "Alimentation", entry.CategoryName)
	assert.Equal(t, "Marché", entry.Description)
	assert.Equal(t, 0, entry.Date.Hour())
}

func TestLedger_CreateTransaction_Rejections(t *testing.T) {
	db, mock := setupMockDB(t)
	ledger := NewLedger(db)

	_, err := ledger.CreateTransaction(1, NewTransaction{Amount: decimal.NewFromInt(-1), CategoryID: 10})
	assert.True(t, errors.Is(err, ErrNegativeAmount))

	mock.ExpectQuery("SELECT .* FROM `categories`").
		WithArgs(99).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	_, err = ledger.CreateTransaction(1, NewTransaction{Amount: decimal.NewFromInt(1), CategoryID: 99})
	assert.True(t, errors.Is(err, ErrInvalidCategory))

	mock.ExpectQuery("SELECT .* FROM `categories`").
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "type_id", "name"}).AddRow(10, 3, "Alimentation"))
	_, err = ledger.CreateTransaction(1, NewTransaction{Amount: decimal.NewFromInt(1), CategoryID: 10, TypeID: 1})
	assert.True(t, errors.Is(err, ErrTypeMismatch))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLedger_DeleteTransaction(t *testing.T) {
	db, mock := setupMockDB(t)
	ledger := NewLedger(db)

	mock.ExpectQuery("SELECT .* FROM `transactions`").
		WithArgs("t1", 1).
		WillReturnRows(transactionRows().
			AddRow("t1", 1, "50.00", 3, 10, day("2024-03-05"), "", "", time.Now(), nil))
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `transactions` SET `deleted_at`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	require.NoError(t, ledger.DeleteTransaction(1, "t1"))

	mock.ExpectQuery("SELECT .* FROM `transactions`").
		WithArgs("nope", 1).
		WillReturnRows(transactionRows())
	assert.True(t, errors.Is(ledger.DeleteTransaction(1, "nope"), ErrNotFound))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLedger_CreateBudget(t *testing.T) {
	db, mock := setupMockDB(t)
	ledger := NewLedger(db)

	mock.ExpectQuery("SELECT .* FROM `categories`").
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "type_id", "name"}).AddRow(10, 3, "Alimentation"))
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `budgets`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `budgets`").
		WillReturnResult(sqlmock.NewResult(5, 1))
	mock.ExpectCommit()

	b, err := ledger.CreateBudget(1, BudgetInput{CategoryID: 10, Amount: decimal.NewFromInt(250), Period: stats.BudgetMonthly, IsActive: true})
	require.NoError(t, err)
	assert.Equal(t, uint(5), b.ID)
	assert.Equal(t, "Alimentation", b.CategoryName)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLedger_CreateBudget_Rejections(t *testing.T) {
	db, mock := setupMockDB(t)
	ledger := NewLedger(db)

	// validated before touching the database
	_, err := ledger.CreateBudget(1, BudgetInput{CategoryID: 10, Amount: decimal.Zero, Period: stats.BudgetMonthly, IsActive: true})
	assert.True(t, errors.Is(err, stats.ErrNonPositiveBudget))
	_, err = ledger.CreateBudget(1, BudgetInput{CategoryID: 10, Amount: decimal.NewFromInt(5), Period: "weekly", IsActive: true})
	assert.True(t, errors.Is(err, stats.ErrUnknownBudgetPeriod))

	mock.ExpectQuery("SELECT .* FROM `categories`").
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "type_id", "name"}).AddRow(10, 3, "Alimentation"))
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `budgets`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	_, err = ledger.CreateBudget(1, BudgetInput{CategoryID: 10, Amount: decimal.NewFromInt(5), Period: stats.BudgetMonthly, IsActive: true})
	assert.True(t, errors.Is(err, ErrDuplicateBudget))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLedger_UpdateBudget_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectQuery("SELECT .* FROM `budgets`").
		WithArgs(9, 1).
		WillReturnRows(budgetRows())

	_, err := NewLedger(db).UpdateBudget(1, 9, BudgetInput{CategoryID: 10, Amount: decimal.NewFromInt(5), Period: stats.BudgetMonthly})
	assert.True(t, errors.Is(err, ErrNotFound))
	require.NoError(t, mock.ExpectationsWereMet())
}
