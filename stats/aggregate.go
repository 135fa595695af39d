package stats

import (
	"sort"

	"github.com/shopspring/decimal"
)

// DefaultPalette is cycled through to color chart segments.
var DefaultPalette = []string{
	"#ef4444", "#3b82f6", "#a855f7", "#ec4899",
	"#10b981", "#f59e0b", "#14b8a6", "#64748b",
}

const monthKeyLayout = "2006-01"

// CategoryAggregate is one slice of the "where did the money go" chart.
type CategoryAggregate struct {
	CategoryName string          `json:"category_name"`
	Total        decimal.Decimal `json:"total"`
	Count        int             `json:"count"`
	Percentage   float64         `json:"percentage"`
	ColorIndex   int             `json:"color_index"`
	Color        string          `json:"color"`
}

// TypeAggregate groups totals by transaction type.
type TypeAggregate struct {
	TypeName  string          `json:"type_name"`
	IsExpense bool            `json:"is_expense"`
	Total     decimal.Decimal `json:"total"`
	Count     int             `json:"count"`
}

// TimeBucket holds one month of the trend series.
type TimeBucket struct {
	MonthKey string          `json:"month_key"`
	Income   decimal.Decimal `json:"income"`
	Expense  decimal.Decimal `json:"expense"`
	Net      decimal.Decimal `json:"net"`
}

// Summary totals a filtered set.
type Summary struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Net     decimal.Decimal `json:"net"`
	Count   int             `json:"count"`
}

// Aggregator produces chart views with a configurable palette.
type Aggregator struct {
	Palette []string
}

// NewAggregator returns an Aggregator, using DefaultPalette when palette is empty.
func NewAggregator(palette []string) Aggregator {
	if len(palette) == 0 {
		palette = DefaultPalette
	}
	return Aggregator{Palette: palette}
}

// AggregateByCategory uses DefaultPalette.
func AggregateByCategory(filtered []Entry) []CategoryAggregate {
	return NewAggregator(nil).ByCategory(filtered)
}

// ByCategory sums expense magnitudes per category name, largest first. Ties
// keep first-seen order. Colors cycle through the palette by first-seen order,
// not by sorted position.
func (a Aggregator) ByCategory(filtered []Entry) []CategoryAggregate {
	palette := a.Palette
	if len(palette) == 0 {
		palette = DefaultPalette
	}

	index := make(map[string]int)
	out := make([]CategoryAggregate, 0)
	grand := decimal.Zero
	for _, e := range filtered {
		if !e.IsExpense() {
			continue
		}
		i, ok := index[e.CategoryName]
		if !ok {
			i = len(out)
			index[e.CategoryName] = i
			out = append(out, CategoryAggregate{
				CategoryName: e.CategoryName,
				ColorIndex:   i,
				Color:        palette[i%len(palette)],
			})
		}
		abs := e.Amount.Abs()
		out[i].Total = out[i].Total.Add(abs)
		out[i].Count++
		grand = grand.Add(abs)
	}

	if grand.IsPositive() {
		for i := range out {
			out[i].Percentage = out[i].Total.Div(grand).Mul(hundred).InexactFloat64()
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Total.GreaterThan(out[j].Total)
	})
	return out
}

// AggregateByType groups every entry by type name, income included, largest first.
func AggregateByType(filtered []Entry) []TypeAggregate {
	index := make(map[string]int)
	out := make([]TypeAggregate, 0)
	for _, e := range filtered {
		i, ok := index[e.TypeName]
		if !ok {
			i = len(out)
			index[e.TypeName] = i
			out = append(out, TypeAggregate{TypeName: e.TypeName, IsExpense: e.IsExpense()})
		}
		out[i].Total = out[i].Total.Add(e.Amount.Abs())
		out[i].Count++
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Total.GreaterThan(out[j].Total)
	})
	return out
}

// AggregateByMonth buckets entries by "YYYY-MM". Months without entries are
// absent; buckets are sorted ascending.
func AggregateByMonth(filtered []Entry) []TimeBucket {
	buckets := make(map[string]*TimeBucket)
	for _, e := range filtered {
		key := e.Date.Format(monthKeyLayout)
		b, ok := buckets[key]
		if !ok {
			b = &TimeBucket{MonthKey: key}
			buckets[key] = b
		}
		if e.IsExpense() {
			b.Expense = b.Expense.Add(e.Amount.Abs())
		} else {
			b.Income = b.Income.Add(e.Amount)
		}
	}

	out := make([]TimeBucket, 0, len(buckets))
	for _, b := range buckets {
		b.Net = b.Income.Sub(b.Expense)
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].MonthKey < out[j].MonthKey
	})
	return out
}

// Summarize totals income and expense over the set.
func Summarize(filtered []Entry) Summary {
	var s Summary
	for _, e := range filtered {
		if e.IsExpense() {
			s.Expense = s.Expense.Add(e.Amount.Abs())
		} else {
			s.Income = s.Income.Add(e.Amount)
		}
		s.Count++
	}
	s.Net = s.Income.Sub(s.Expense)
	return s
}
