package stats

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ChartType is the chart the caller intends to draw. It is validated and
// echoed back; the views computed do not depend on it.
type ChartType string

const (
	ChartPie  ChartType = "pie"
	ChartBar  ChartType = "bar"
	ChartLine ChartType = "line"
	ChartArea ChartType = "area"
)

var ErrUnknownChartType = errors.New("unknown chart type")

// ParseChartType validates a chart selector; empty means pie.
func ParseChartType(s string) (ChartType, error) {
	switch c := ChartType(strings.ToLower(strings.TrimSpace(s))); c {
	case "":
		return ChartPie, nil
	case ChartPie, ChartBar, ChartLine, ChartArea:
		return c, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownChartType, s)
	}
}

// Selection carries everything the caller has chosen on screen. It is passed
// explicitly to Build rather than read from shared state.
type Selection struct {
	Period      Period     `json:"period"`
	Now         time.Time  `json:"now"`
	CustomStart *time.Time `json:"custom_start,omitempty"`
	CustomEnd   *time.Time `json:"custom_end,omitempty"`
	Category    string     `json:"category,omitempty"`
	Search      string     `json:"search,omitempty"`
	ChartType   ChartType  `json:"chart_type"`
}

// Range resolves the selection's period.
func (s Selection) Range() *Range {
	return Resolve(s.Period, s.Now, s.CustomStart, s.CustomEnd)
}

// Apply filters entries by the selection.
func (s Selection) Apply(entries []Entry) []Entry {
	return Filter(entries, s.Range(), s.Category, s.Search)
}

// Dashboard bundles every view-ready structure for one selection.
type Dashboard struct {
	Selection  Selection           `json:"selection"`
	Range      *Range              `json:"range,omitempty"`
	Entries    []Entry             `json:"entries"`
	Summary    Summary             `json:"summary"`
	Categories []CategoryAggregate `json:"categories"`
	Types      []TypeAggregate     `json:"types"`
	Months     []TimeBucket        `json:"months"`
	Budgets    []BudgetStatus      `json:"budgets"`
}

// Build runs resolve, filter and every aggregation for sel.
func (a Aggregator) Build(sel Selection, entries []Entry, budgets []Budget) (Dashboard, error) {
	rng := sel.Range()
	filtered := Filter(entries, rng, sel.Category, sel.Search)
	statuses, err := ComputeUtilization(budgets, filtered)
	if err != nil {
		return Dashboard{}, err
	}
	return Dashboard{
		Selection:  sel,
		Range:      rng,
		Entries:    filtered,
		Summary:    Summarize(filtered),
		Categories: a.ByCategory(filtered),
		Types:      AggregateByType(filtered),
		Months:     AggregateByMonth(filtered),
		Budgets:    statuses,
	}, nil
}

// Build uses DefaultPalette.
func Build(sel Selection, entries []Entry, budgets []Budget) (Dashboard, error) {
	return NewAggregator(nil).Build(sel, entries, budgets)
}
