package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"fintrack/database"
	"fintrack/service"
	"fintrack/stats"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
)

var reportFlags struct {
	user     uint
	period   string
	start    string
	end      string
	category string
	search   string
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print a user's dashboard in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		if reportFlags.user == 0 {
			return fmt.Errorf("--user is required")
		}
		sel, err := reportSelection(time.Now())
		if err != nil {
			return err
		}
		if err := database.Init(cfg, Log); err != nil {
			return err
		}
		snap, err := service.NewLedger(database.DB).Snapshot(reportFlags.user)
		if err != nil {
			return err
		}
		d, err := stats.NewAggregator(cfg.Stats.Palette).Build(sel, snap.Entries, snap.Budgets)
		if err != nil {
			return err
		}
		lang, err := language.Parse(cfg.Stats.Locale)
		if err != nil {
			lang = language.French
		}
		RenderReport(cmd.OutOrStdout(), d, lang, stats.ParseCurrency(cfg.Stats.Currency))
		return nil
	},
}

func init() {
	f := reportCmd.Flags()
	f.UintVarP(&reportFlags.user, "user", "u", 0, "user id")
	f.StringVar(&reportFlags.period, "period", "", "month, quarter, year or custom (default from config)")
	f.StringVar(&reportFlags.start, "start", "", "custom start, 2006-01-02")
	f.StringVar(&reportFlags.end, "end", "", "custom end, 2006-01-02")
	f.StringVar(&reportFlags.category, "category", "", "exact category name")
	f.StringVar(&reportFlags.search, "search", "", "free-text search")
}

func reportSelection(now time.Time) (stats.Selection, error) {
	raw := reportFlags.period
	if raw == "" {
		raw = cfg.Stats.DefaultPeriod
	}
	period, err := stats.ParsePeriod(raw)
	if err != nil {
		return stats.Selection{}, err
	}
	sel := stats.Selection{Period: period, Now: now, Category: reportFlags.category, Search: reportFlags.search, ChartType: stats.ChartPie}
	for _, p := range []struct {
		raw string
		dst **time.Time
	}{{reportFlags.start, &sel.CustomStart}, {reportFlags.end, &sel.CustomEnd}} {
		if p.raw == "" {
			continue
		}
		t, err := time.ParseInLocation("2006-01-02", p.raw, time.Local)
		if err != nil {
			return stats.Selection{}, fmt.Errorf("invalid date %q: %w", p.raw, err)
		}
		*p.dst = &t
	}
	return sel, nil
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("4"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	incomeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	expenseStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))

	tierStyles = map[stats.Tier]lipgloss.Style{
		stats.TierUnder: lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		stats.TierAt:    lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		stats.TierOver:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1")),
	}
)

// RenderReport writes the dashboard as styled text
func RenderReport(w io.Writer, d stats.Dashboard, lang language.Tag, unit currency.Unit) {
	money := func(v stats.Signed) string {
		s := stats.FormatCurrency(v.Amount, lang, unit)
		if v.IsExpense {
			return expenseStyle.Render(s)
		}
		return incomeStyle.Render(s)
	}

	scope := string(d.Selection.Period)
	if d.Range != nil {
		scope += " from " + d.Range.Start.Format("2006-01-02")
		if d.Range.End != nil {
			scope += " to " + d.Range.End.Format("2006-01-02")
		}
	}
	fmt.Fprintln(w, titleStyle.Render("fintrack dashboard")+" "+mutedStyle.Render(scope))
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%s %s   %s %s   %s %s   %s\n",
		headerStyle.Render("Income"), money(stats.Signed{Amount: d.Summary.Income}),
		headerStyle.Render("Expenses"), money(stats.Signed{Amount: d.Summary.Expense.Neg(), IsExpense: true}),
		headerStyle.Render("Net"), money(stats.Signed{Amount: d.Summary.Net, IsExpense: d.Summary.Net.IsNegative()}),
		mutedStyle.Render(fmt.Sprintf("(%d transactions)", d.Summary.Count)))
	fmt.Fprintln(w)

	if len(d.Categories) > 0 {
		fmt.Fprintln(w, headerStyle.Render("Spending by category"))
		for _, c := range d.Categories {
			bar := strings.Repeat("█", int(c.Percentage/5))
			fmt.Fprintf(w, "  %-24s %14s %6.1f%% %s\n", c.CategoryName, stats.FormatCurrency(c.Total, lang, unit), c.Percentage,
				lipgloss.NewStyle().Foreground(lipgloss.Color(c.Color)).Render(bar))
		}
		fmt.Fprintln(w)
	}

	if len(d.Months) > 0 {
		fmt.Fprintln(w, headerStyle.Render("By month"))
		for _, m := range d.Months {
			fmt.Fprintf(w, "  %s  in %s  out %s  net %s\n", m.MonthKey,
				money(stats.Signed{Amount: m.Income}),
				money(stats.Signed{Amount: m.Expense.Neg(), IsExpense: true}),
				money(stats.Signed{Amount: m.Net, IsExpense: m.Net.IsNegative()}))
		}
		fmt.Fprintln(w)
	}

	if len(d.Budgets) > 0 {
		fmt.Fprintln(w, headerStyle.Render("Budgets"))
		for _, b := range d.Budgets {
			fmt.Fprintf(w, "  %-24s %s / %s  %s\n", b.Budget.CategoryName,
				stats.FormatCurrency(b.Spent, lang, unit),
				stats.FormatCurrency(b.Budget.Amount, lang, unit),
				tierStyles[b.Tier].Render(fmt.Sprintf("%.1f%% %s", b.UtilizationPercent, b.Tier)))
		}
	}
}
