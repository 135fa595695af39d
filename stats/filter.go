package stats

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Entry is the canonical in-memory transaction. Amount is a non-negative
// magnitude; income versus expense comes from TypeName.
type Entry struct {
	ID            string          `json:"id"`
	Amount        decimal.Decimal `json:"amount"`
	TypeID        uint            `json:"type_id"`
	TypeName      string          `json:"type_name"`
	CategoryID    uint            `json:"category_id"`
	CategoryName  string          `json:"category_name"`
	Date          time.Time       `json:"date"`
	Description   string          `json:"description"`
	PaymentMethod string          `json:"payment_method"`
}

// IsExpense reports whether the entry counts as spending.
func (e Entry) IsExpense() bool {
	return Classify(e.TypeName, &e.Amount).IsExpense
}

// Filter applies, in order, the period range, an exact category-name match and
// a case-insensitive free-text search over description, category name,
// payment method and type name. A nil range, empty category or empty search
// skips that step. Input order is preserved.
func Filter(entries []Entry, rng *Range, category, search string) []Entry {
	query := strings.ToLower(strings.TrimSpace(search))
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if rng != nil && !rng.Contains(e.Date) {
			continue
		}
		if category != "" && e.CategoryName != category {
			continue
		}
		if query != "" && !matches(e, query) {
			continue
		}
		out = append(out, e)
	}
	return out
}

func matches(e Entry, query string) bool {
	for _, field := range []string{e.Description, e.CategoryName, e.PaymentMethod, e.TypeName} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}
