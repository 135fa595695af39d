package service

import (
	"time"

	"fintrack/stats"

	"github.com/sirupsen/logrus"
)

// Notifier delivers over-budget alerts
type Notifier interface {
	SendBudgetAlert(toEmail, username string, status stats.BudgetStatus) error
}

// BudgetAlerter recomputes the budgets touched by a new transaction and
// notifies the owner of every budget the transaction pushed over its limit.
type BudgetAlerter struct {
	ledger   *Ledger
	notifier Notifier
	log      *logrus.Logger
	now      func() time.Time
}

// NewBudgetAlerter creates an alerter
func NewBudgetAlerter(ledger *Ledger, notifier Notifier, log *logrus.Logger) *BudgetAlerter {
	return &BudgetAlerter{ledger: ledger, notifier: notifier, log: log, now: time.Now}
}

// Crossed returns the budgets on entry's category that are over their limit
// within their current window with entry counted, but were not without it.
func Crossed(budgets []stats.Budget, entries []stats.Entry, entry stats.Entry, now time.Time) ([]stats.BudgetStatus, error) {
	if !entry.IsExpense() {
		return []stats.BudgetStatus{}, nil
	}
	var relevant []stats.Budget
	for _, b := range budgets {
		if b.IsActive && b.CategoryID == entry.CategoryID {
			relevant = append(relevant, b)
		}
	}

	without := make([]stats.Entry, 0, len(entries))
	for _, e := range entries {
		if e.ID != entry.ID {
			without = append(without, e)
		}
	}
	with := append(without[:len(without):len(without)], entry)

	out := make([]stats.BudgetStatus, 0)
	for _, b := range relevant {
		window := stats.BudgetWindow(b.Period, now)
		if !window.Contains(entry.Date) {
			continue
		}
		after, err := stats.ComputeUtilization([]stats.Budget{b}, stats.Filter(with, window, "", ""))
		if err != nil {
			return nil, err
		}
		before, err := stats.ComputeUtilization([]stats.Budget{b}, stats.Filter(without, window, "", ""))
		if err != nil {
			return nil, err
		}
		if after[0].Tier == stats.TierOver && before[0].Tier != stats.TierOver {
			out = append(out, after[0])
		}
	}
	return out, nil
}

// AfterCreate checks userID's budgets after entry was stored and sends an
// alert for each one that went over. Failures are logged, not returned, so a
// mail outage never fails the write that triggered it.
func (a *BudgetAlerter) AfterCreate(userID uint, entry stats.Entry) []stats.BudgetStatus {
	log := a.log.WithFields(logrus.Fields{"user_id": userID, "transaction_id": entry.ID})

	snap, err := a.ledger.Snapshot(userID)
	if err != nil {
		log.WithError(err).Error("Alert.Snapshot.Error")
		return nil
	}
	crossed, err := Crossed(snap.Budgets, snap.Entries, entry, a.now())
	if err != nil {
		log.WithError(err).Error("Alert.Compute.Error")
		return nil
	}
	if len(crossed) == 0 {
		return crossed
	}

	user, err := a.ledger.User(userID)
	if err != nil {
		log.WithError(err).Error("Alert.User.Error")
		return crossed
	}
	if user.Email == "" {
		log.Info("Alert.NoEmail")
		return crossed
	}
	for _, status := range crossed {
		if err := a.notifier.SendBudgetAlert(user.Email, user.Username, status); err != nil {
			log.WithError(err).WithField("budget_id", status.Budget.ID).Warn("Alert.Send.Error")
			continue
		}
		log.WithField("budget_id", status.Budget.ID).Info("Alert.Sent")
	}
	return crossed
}
