// Package stats turns in-memory transaction and budget collections into
// period-filtered sets, chart aggregates and budget utilization.
//
// Every function here is pure: inputs are never mutated and calling a function
// twice with the same arguments returns structurally identical output, so
// callers may memoize freely.
package stats

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Type names of the fixed taxonomy.
const (
	TypeRevenue         = "revenu"
	TypeFixedExpense    = "depense_fixe"
	TypeVariableExpense = "depense_variable"
	TypeSavings         = "epargne"
	TypeInvestment      = "investissement"
	TypeDebt            = "dette"
	TypeDebtRepayment   = "remboursement_dette"
)

// expensePrefix covers both fixed and variable expenses.
const expensePrefix = "depense"

var expenseTypes = map[string]struct{}{
	TypeDebt:          {},
	TypeDebtRepayment: {},
	TypeSavings:       {},
	TypeInvestment:    {},
}

// TypeNames returns the fixed taxonomy in display order.
func TypeNames() []string {
	return []string{
		TypeRevenue,
		TypeFixedExpense,
		TypeVariableExpense,
		TypeSavings,
		TypeInvestment,
		TypeDebt,
		TypeDebtRepayment,
	}
}

// Classification is the outcome of sign classification.
type Classification struct {
	IsExpense  bool `json:"is_expense"`
	Recognized bool `json:"recognized"`
}

// Signed is an amount carrying its display sign.
type Signed struct {
	Amount    decimal.Decimal `json:"signed_amount"`
	IsExpense bool            `json:"is_expense"`
}

func normalizeTypeName(typeName string) string {
	return strings.ToLower(strings.TrimSpace(typeName))
}

func recognize(name string) (isExpense, ok bool) {
	if name == "" {
		return false, false
	}
	if strings.HasPrefix(name, expensePrefix) {
		return true, true
	}
	if _, found := expenseTypes[name]; found {
		return true, true
	}
	if name == TypeRevenue {
		return false, true
	}
	return false, false
}

// Classify decides whether a type name denotes an expense. amount is only
// consulted when the name is empty or unknown: a negative amount then marks a
// legacy expense record. Recognized names always win over the amount.
func Classify(typeName string, amount *decimal.Decimal) Classification {
	isExpense, ok := recognize(normalizeTypeName(typeName))
	if ok {
		return Classification{IsExpense: isExpense, Recognized: true}
	}
	if amount != nil && amount.IsNegative() {
		return Classification{IsExpense: true}
	}
	return Classification{}
}

// IsExpense reports whether typeName is an expense-classified type.
func IsExpense(typeName string) bool {
	return Classify(typeName, nil).IsExpense
}

// IsIncome reports whether typeName is income-classified.
func IsIncome(typeName string) bool {
	return !IsExpense(typeName)
}

// Display returns amount with the sign implied by typeName.
func Display(amount decimal.Decimal, typeName string) Signed {
	c := Classify(typeName, &amount)
	abs := amount.Abs()
	if c.IsExpense {
		return Signed{Amount: abs.Neg(), IsExpense: true}
	}
	return Signed{Amount: abs}
}

// FormatCurrency renders amount as a locale-aware currency string. It carries
// no business logic; use Display for the sign.
func FormatCurrency(amount decimal.Decimal, lang language.Tag, unit currency.Unit) string {
	p := message.NewPrinter(lang)
	return p.Sprint(currency.Symbol(unit.Amount(amount.InexactFloat64())))
}

// ParseCurrency resolves an ISO 4217 code, falling back to EUR.
func ParseCurrency(code string) currency.Unit {
	unit, err := currency.ParseISO(strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return currency.EUR
	}
	return unit
}
