package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fintrack/models"
	"fintrack/stats"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrNotFound        = errors.New("record not found")
	ErrInvalidCategory = errors.New("unknown category")
	ErrTypeMismatch    = errors.New("category does not belong to the given type")
	ErrNegativeAmount  = errors.New("amount must not be negative")
	ErrDuplicateBudget = errors.New("an active budget already exists for this category and period")
)

// Ledger is the data-store boundary: it reads a user's records and hands
// them to the stats engine in their canonical in-memory shape.
type Ledger struct {
	db *gorm.DB
}

// NewLedger creates a Ledger over db
func NewLedger(db *gorm.DB) *Ledger {
	return &Ledger{db: db}
}

// Taxonomy lookups by id
type Taxonomy struct {
	Types      map[uint]models.TransactionType
	Categories map[uint]models.Category
}

// Snapshot everything the statistics views need for one user
type Snapshot struct {
	Entries []stats.Entry
	Budgets []stats.Budget
}

// NewTransaction input for CreateTransaction
type NewTransaction struct {
	Amount        decimal.Decimal
	TypeID        uint
	CategoryID    uint
	Date          time.Time
	Description   string
	PaymentMethod string
}

// BudgetInput input for CreateBudget and UpdateBudget
type BudgetInput struct {
	CategoryID uint
	Amount     decimal.Decimal
	Period     stats.BudgetPeriod
	IsActive   bool
}

// Types lists the fixed type taxonomy
func (l *Ledger) Types() ([]models.TransactionType, error) {
	var list []models.TransactionType
	if err := l.db.Order("sort ASC, id ASC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list types: %w", err)
	}
	return list, nil
}

// Categories lists categories, optionally restricted to one type
func (l *Ledger) Categories(typeID uint) ([]models.Category, error) {
	q := l.db.Model(&models.Category{})
	if typeID != 0 {
		q = q.Where("type_id = ?", typeID)
	}
	var list []models.Category
	if err := q.Order("sort ASC, id ASC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return list, nil
}

// Taxonomy loads all types and categories keyed by id
func (l *Ledger) Taxonomy() (Taxonomy, error) {
	types, err := l.Types()
	if err != nil {
		return Taxonomy{}, err
	}
	cats, err := l.Categories(0)
	if err != nil {
		return Taxonomy{}, err
	}
	tax := Taxonomy{
		Types:      make(map[uint]models.TransactionType, len(types)),
		Categories: make(map[uint]models.Category, len(cats)),
	}
	for _, t := range types {
		tax.Types[t.ID] = t
	}
	for _, c := range cats {
		tax.Categories[c.ID] = c
	}
	return tax, nil
}

// ToEntry normalizes a stored transaction
func (tax Taxonomy) ToEntry(t models.Transaction) stats.Entry {
	return stats.Entry{
		ID:            t.ID,
		Amount:        t.Amount,
		TypeID:        t.TypeID,
		TypeName:      tax.Types[t.TypeID].Name,
		CategoryID:    t.CategoryID,
		CategoryName:  tax.Categories[t.CategoryID].Name,
		Date:          t.Date,
		Description:   t.Description,
		PaymentMethod: t.PaymentMethod,
	}
}

// ToBudget normalizes a stored budget
func (tax Taxonomy) ToBudget(b models.Budget) stats.Budget {
	return stats.Budget{
		ID:           b.ID,
		CategoryID:   b.CategoryID,
		CategoryName: tax.Categories[b.CategoryID].Name,
		Amount:       b.Amount,
		Period:       stats.BudgetPeriod(b.Period),
		IsActive:     b.IsActive,
	}
}

// Snapshot loads the user's transactions (newest first) and budgets
func (l *Ledger) Snapshot(userID uint) (Snapshot, error) {
	tax, err := l.Taxonomy()
	if err != nil {
		return Snapshot{}, err
	}

	var txs []models.Transaction
	if err := l.db.Where("user_id = ?", userID).Order("date DESC, created_at DESC").Find(&txs).Error; err != nil {
		return Snapshot{}, fmt.Errorf("list transactions: %w", err)
	}
	var budgets []models.Budget
	if err := l.db.Where("user_id = ?", userID).Order("id ASC").Find(&budgets).Error; err != nil {
		return Snapshot{}, fmt.Errorf("list budgets: %w", err)
	}

	snap := Snapshot{
		Entries: make([]stats.Entry, 0, len(txs)),
		Budgets: make([]stats.Budget, 0, len(budgets)),
	}
	for _, t := range txs {
		snap.Entries = append(snap.Entries, tax.ToEntry(t))
	}
	for _, b := range budgets {
		snap.Budgets = append(snap.Budgets, tax.ToBudget(b))
	}
	return snap, nil
}

func (l *Ledger) category(id uint) (models.Category, error) {
	var cat models.Category
	if err := l.db.Where("id = ?", id).First(&cat).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return cat, ErrInvalidCategory
		}
		return cat, fmt.Errorf("find category: %w", err)
	}
	return cat, nil
}

// CreateTransaction stores a new transaction. The type defaults to the
// category's type; a mismatching type is rejected.
func (l *Ledger) CreateTransaction(userID uint, in NewTransaction) (stats.Entry, error) {
	if in.Amount.IsNegative() {
		return stats.Entry{}, ErrNegativeAmount
	}
	cat, err := l.category(in.CategoryID)
	if err != nil {
		return stats.Entry{}, err
	}
	if in.TypeID == 0 {
		in.TypeID = cat.TypeID
	}
	if in.TypeID != cat.TypeID {
		return stats.Entry{}, ErrTypeMismatch
	}
	var typ models.TransactionType
	if err := l.db.Where("id = ?", in.TypeID).First(&typ).Error; err != nil {
		return stats.Entry{}, fmt.Errorf("find type: %w", err)
	}

	tx := models.Transaction{
		UserID:        userID,
		Amount:        in.Amount,
		TypeID:        in.TypeID,
		CategoryID:    in.CategoryID,
		Date:          time.Date(in.Date.Year(), in.Date.Month(), in.Date.Day(), 0, 0, 0, 0, in.Date.Location()),
		Description:   strings.TrimSpace(in.Description),
		PaymentMethod: strings.TrimSpace(in.PaymentMethod),
	}
	if err := l.db.Create(&tx).Error; err != nil {
		return stats.Entry{}, fmt.Errorf("create transaction: %w", err)
	}

	tax := Taxonomy{
		Types:      map[uint]models.TransactionType{typ.ID: typ},
		Categories: map[uint]models.Category{cat.ID: cat},
	}
	return tax.ToEntry(tx), nil
}

// DeleteTransaction removes one of the user's transactions
func (l *Ledger) DeleteTransaction(userID uint, id string) error {
	var tx models.Transaction
	if err := l.db.Where("id = ? AND user_id = ?", id, userID).First(&tx).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("find transaction: %w", err)
	}
	if err := l.db.Delete(&tx).Error; err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	return nil
}

func (l *Ledger) checkBudget(userID, excludeID uint, in BudgetInput) (models.Category, error) {
	if err := stats.ValidateBudget(stats.Budget{CategoryID: in.CategoryID, Amount: in.Amount, Period: in.Period}); err != nil {
		return models.Category{}, err
	}
	cat, err := l.category(in.CategoryID)
	if err != nil {
		return cat, err
	}
	if !in.IsActive {
		return cat, nil
	}
	var n int64
	q := l.db.Model(&models.Budget{}).
		Where("user_id = ? AND category_id = ? AND period = ? AND is_active = ?", userID, in.CategoryID, string(in.Period), true)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&n).Error; err != nil {
		return cat, fmt.Errorf("count budgets: %w", err)
	}
	if n > 0 {
		return cat, ErrDuplicateBudget
	}
	return cat, nil
}

// CreateBudget validates and stores a budget
func (l *Ledger) CreateBudget(userID uint, in BudgetInput) (stats.Budget, error) {
	cat, err := l.checkBudget(userID, 0, in)
	if err != nil {
		return stats.Budget{}, err
	}
	b := models.Budget{
		UserID:     userID,
		CategoryID: in.CategoryID,
		Amount:     in.Amount,
		Period:     string(in.Period),
		IsActive:   in.IsActive,
	}
	if err := l.db.Create(&b).Error; err != nil {
		return stats.Budget{}, fmt.Errorf("create budget: %w", err)
	}
	tax := Taxonomy{Categories: map[uint]models.Category{cat.ID: cat}}
	return tax.ToBudget(b), nil
}

func (l *Ledger) findBudget(userID, id uint) (models.Budget, error) {
	var b models.Budget
	if err := l.db.Where("id = ? AND user_id = ?", id, userID).First(&b).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return b, ErrNotFound
		}
		return b, fmt.Errorf("find budget: %w", err)
	}
	return b, nil
}

// UpdateBudget replaces a budget's category, amount, period and active flag
func (l *Ledger) UpdateBudget(userID, id uint, in BudgetInput) (stats.Budget, error) {
	b, err := l.findBudget(userID, id)
	if err != nil {
		return stats.Budget{}, err
	}
	cat, err := l.checkBudget(userID, id, in)
	if err != nil {
		return stats.Budget{}, err
	}
	updates := map[string]interface{}{
		"category_id": in.CategoryID,
		"amount":      in.Amount,
		"period":      string(in.Period),
		"is_active":   in.IsActive,
	}
	if err := l.db.Model(&b).Updates(updates).Error; err != nil {
		return stats.Budget{}, fmt.Errorf("update budget: %w", err)
	}
	b.CategoryID = in.CategoryID
	b.Amount = in.Amount
	b.Period = string(in.Period)
	b.IsActive = in.IsActive
	tax := Taxonomy{Categories: map[uint]models.Category{cat.ID: cat}}
	return tax.ToBudget(b), nil
}

// DeleteBudget removes one of the user's budgets
func (l *Ledger) DeleteBudget(userID, id uint) error {
	b, err := l.findBudget(userID, id)
	if err != nil {
		return err
	}
	if err := l.db.Delete(&b).Error; err != nil {
		return fmt.Errorf("delete budget: %w", err)
	}
	return nil
}

// User looks up an account by id
func (l *Ledger) User(id uint) (models.User, error) {
	var u models.User
	if err := l.db.Where("id = ?", id).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return u, ErrNotFound
		}
		return u, fmt.Errorf("find user: %w", err)
	}
	return u, nil
}
