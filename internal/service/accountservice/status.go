package accountservice

import (
	"time"

	"github.com/mcavalcanti/billquest/internal/domain"
)

// StatusInfo is the display label and color derived for an account.
type StatusInfo struct {
	Label string
	Color string
}

var (
	statusPaga          = StatusInfo{Label: "Paga", Color: "#10b981"}
	statusAtrasada      = StatusInfo{Label: "Atrasada", Color: "#ef4444"}
	statusAPagar        = StatusInfo{Label: "A pagar", Color: "#3b82f6"}
	statusSemVencimento = StatusInfo{Label: "Sem vencimento", Color: "#6b7280"}
)

// StatusOf derives the display status of an account at a given moment. It is
// a pure read: a pending account past its due date reads as overdue, but the
// stored status field is never upgraded here.
func StatusOf(acc domain.Account, today time.Time) StatusInfo {
	switch acc.Status {
	case domain.StatusPaid:
		return statusPaga
	case domain.StatusOverdue:
		return statusAtrasada
	case domain.StatusPending:
		if acc.Vencimento.IsZero() {
			return statusSemVencimento
		}
		due, err := acc.Vencimento.Time()
		if err != nil {
			return statusSemVencimento
		}
		if domain.DaysBetween(today, due) < 0 {
			return statusAtrasada
		}
		return statusAPagar
	default:
		return statusSemVencimento
	}
}
