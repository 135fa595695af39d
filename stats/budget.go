package stats

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// BudgetPeriod is the window a budget allowance covers.
type BudgetPeriod string

const (
	BudgetMonthly BudgetPeriod = "monthly"
	BudgetYearly  BudgetPeriod = "yearly"
)

// Tier is the status bucket derived from utilization.
type Tier string

const (
	TierUnder Tier = "under"
	TierAt    Tier = "at"
	TierOver  Tier = "over"
)

// tierTolerance absorbs accumulated rounding around the 100% mark.
const tierTolerance = 0.1

var hundred = decimal.NewFromInt(100)

var (
	ErrNonPositiveBudget   = errors.New("budget amount must be greater than zero")
	ErrUnknownBudgetPeriod = errors.New("budget period must be monthly or yearly")
	ErrMissingCategory     = errors.New("budget must reference a category")
)

// Budget is a spending allowance for one category.
type Budget struct {
	ID           uint            `json:"id"`
	CategoryID   uint            `json:"category_id"`
	CategoryName string          `json:"category_name"`
	Amount       decimal.Decimal `json:"amount"`
	Period       BudgetPeriod    `json:"period"`
	IsActive     bool            `json:"is_active"`
}

// BudgetStatus is a budget joined with what was spent against it.
type BudgetStatus struct {
	Budget             Budget          `json:"budget"`
	Spent              decimal.Decimal `json:"spent"`
	Remaining          decimal.Decimal `json:"remaining"`
	UtilizationPercent float64         `json:"utilization_percent"`
	Tier               Tier            `json:"tier"`
}

// ValidateBudget checks a budget before it is created or edited.
func ValidateBudget(b Budget) error {
	if b.CategoryID == 0 {
		return ErrMissingCategory
	}
	if !b.Amount.IsPositive() {
		return fmt.Errorf("%w: got %s", ErrNonPositiveBudget, b.Amount)
	}
	switch b.Period {
	case BudgetMonthly, BudgetYearly:
	default:
		return fmt.Errorf("%w: got %q", ErrUnknownBudgetPeriod, b.Period)
	}
	return nil
}

// ClassifyTier maps a utilization percentage to its tier. Values within
// tierTolerance of 100 count as exactly at the limit.
func ClassifyTier(utilizationPercent float64) Tier {
	diff := utilizationPercent - 100
	if diff < 0 {
		diff = -diff
	}
	switch {
	case diff < tierTolerance:
		return TierAt
	case utilizationPercent > 100:
		return TierOver
	default:
		return TierUnder
	}
}

// ComputeUtilization returns one status per active budget, in input order.
// Spending is the sum of expense magnitudes in filtered whose category matches
// the budget. Inactive budgets are skipped. A non-positive amount on an
// active budget is a caller bug and yields ErrNonPositiveBudget.
func ComputeUtilization(budgets []Budget, filtered []Entry) ([]BudgetStatus, error) {
	spent := make(map[uint]decimal.Decimal)
	for _, e := range filtered {
		if !e.IsExpense() {
			continue
		}
		spent[e.CategoryID] = spent[e.CategoryID].Add(e.Amount.Abs())
	}

	out := make([]BudgetStatus, 0, len(budgets))
	for _, b := range budgets {
		if !b.IsActive {
			continue
		}
		if !b.Amount.IsPositive() {
			return nil, fmt.Errorf("budget %d: %w", b.ID, ErrNonPositiveBudget)
		}
		s := spent[b.CategoryID]
		pct := s.Div(b.Amount).Mul(hundred).InexactFloat64()
		out = append(out, BudgetStatus{
			Budget:             b,
			Spent:              s,
			Remaining:          b.Amount.Sub(s),
			UtilizationPercent: pct,
			Tier:               ClassifyTier(pct),
		})
	}
	return out, nil
}
