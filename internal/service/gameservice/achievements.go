package gameservice

import (
	"sort"
	"time"

	"github.com/mcavalcanti/billquest/internal/domain"
)

// CheckAchievements runs the full predicate catalog against an account
// snapshot and unlocks whatever holds. Every predicate is pure and safe to
// re-run: already-unlocked achievements are no-ops, and records with
// malformed or missing dates are skipped, never fatal.
func (e *Engine) CheckAchievements(accounts []domain.Account, now time.Time) {
	paid := make([]domain.Account, 0, len(accounts))
	for _, acc := range accounts {
		if acc.Status == domain.StatusPaid {
			paid = append(paid, acc)
		}
	}

	if len(paid) >= 1 {
		e.Unlock(domain.AchievementFirstBlood)
	}
	if len(accounts) >= 10 {
		e.Unlock(domain.AchievementAccountManager)
	}
	if anyEarlyPayment(paid) {
		e.Unlock(domain.AchievementEarlyBird)
	}

	streak := onTimeStreak(paid)
	if streak >= 3 {
		e.Unlock(domain.AchievementOnTimeStreak3)
	}
	if streak >= 10 {
		e.Unlock(domain.AchievementOnTimeStreak10)
	}

	if monthlyPerfect(accounts, now) {
		e.Unlock(domain.AchievementSaver)
	}
}

func anyEarlyPayment(paid []domain.Account) bool {
	for _, acc := range paid {
		payDate, err := acc.DataPagamento.Time()
		if err != nil {
			continue
		}
		due, err := acc.Vencimento.Time()
		if err != nil {
			continue
		}
		if domain.DaysBetween(payDate, due) >= domain.EarlyPaymentDays {
			return true
		}
	}
	return false
}

// onTimeStreak counts consecutive on-time payments walking back from the
// most recent one, stopping at the first late payment.
func onTimeStreak(paid []domain.Account) int {
	type datedPayment struct {
		payDate time.Time
		due     time.Time
	}
	payments := make([]datedPayment, 0, len(paid))
	for _, acc := range paid {
		payDate, err := acc.DataPagamento.Time()
		if err != nil {
			continue
		}
		due, err := acc.Vencimento.Time()
		if err != nil {
			continue
		}
		payments = append(payments, datedPayment{payDate: payDate, due: due})
	}

	sort.Slice(payments, func(i, j int) bool {
		return payments[i].payDate.After(payments[j].payDate)
	})

	streak := 0
	for _, p := range payments {
		if p.payDate.After(p.due) {
			break
		}
		streak++
	}
	return streak
}

// monthlyPerfect holds when the accounts due in the current calendar month
// form a non-empty set and every one of them is paid. Other months never
// count, even when overdue.
func monthlyPerfect(accounts []domain.Account, now time.Time) bool {
	dueThisMonth := 0
	for _, acc := range accounts {
		due, err := acc.Vencimento.Time()
		if err != nil {
			continue
		}
		if due.Year() != now.Year() || due.Month() != now.Month() {
			continue
		}
		dueThisMonth++
		if acc.Status != domain.StatusPaid {
			return false
		}
	}
	return dueThisMonth > 0
}
