package domain

import (
	"errors"
	"fmt"
	"strconv"
)

// Status of an account, encoded as a bare integer by the upstream collection.
type Status int

const (
	// StatusPending conta a pagar, ainda dentro do prazo.
	StatusPending Status = 0
	// StatusOverdue conta com vencimento ultrapassado.
	StatusOverdue Status = 1
	// StatusPaid conta quitada; nunca volta a pendente.
	StatusPaid Status = 2
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "PENDING"
	case StatusOverdue:
		return "OVERDUE"
	case StatusPaid:
		return "PAID"
	default:
		return "UNKNOWN"
	}
}

// ExpenseKind classifies the account for display only.
type ExpenseKind string

const (
	ExpenseFixed      ExpenseKind = "fixed"
	ExpenseVariable   ExpenseKind = "variable"
	ExpenseOccasional ExpenseKind = "occasional"
)

// PaymentMethod distinguishes a single payment from an installment plan.
type PaymentMethod string

const (
	PaymentSingle      PaymentMethod = "single"
	PaymentInstallment PaymentMethod = "installment"
)

type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Installment is one slice of an installment plan. All slices share the
// account's creation and due dates; per-installment scheduling is not
// supported.
type Installment struct {
	Amount  float64 `json:"valor"`
	Date    Date    `json:"data"`
	DueDate Date    `json:"vencimento"`
}

type Account struct {
	ID             string                 `json:"id,omitempty"`
	Email          string                 `json:"email"`
	Nome           string                 `json:"nome"`
	ValorTotal     float64                `json:"valorTotal"`
	Data           Date                   `json:"data"`
	Vencimento     Date                   `json:"vencimento"`
	TipoGasto      ExpenseKind            `json:"tipoGasto"`
	FormaPagamento PaymentMethod          `json:"formaPagamento"`
	QtdParcela     int                    `json:"qtdParcela"`
	Parcelas       map[string]Installment `json:"parcelas,omitempty"`
	Localidade     string                 `json:"localidade,omitempty"`
	Coordenadas    *Coordinates           `json:"coordenadas,omitempty"`
	Status         Status                 `json:"status"`
	DataPagamento  Date                   `json:"dataPagamento,omitempty"`
}

// AccountPatch is the partial update sent when an account is paid.
type AccountPatch struct {
	Status        *Status `json:"status,omitempty"`
	DataPagamento *Date   `json:"dataPagamento,omitempty"`
}

var (
	ErrNameRequired       = errors.New("account name is required")
	ErrInvalidTotal       = errors.New("total amount must be greater than zero")
	ErrInvalidInstallment = errors.New("installment count must be at least 1")
)

func (a *Account) Validate() error {
	if a.Nome == "" {
		return ErrNameRequired
	}
	if a.ValorTotal <= 0 {
		return ErrInvalidTotal
	}
	if a.QtdParcela < 1 {
		return ErrInvalidInstallment
	}
	if !a.Vencimento.IsZero() {
		if _, err := a.Vencimento.Time(); err != nil {
			return fmt.Errorf("invalid due date: %w", err)
		}
	}
	return nil
}

// SplitInstallments evenly splits total over n installments, each carrying
// the account's creation and due dates. Keys are "1".."n".
func SplitInstallments(total float64, n int, date, due Date) map[string]Installment {
	if n < 1 {
		n = 1
	}
	parcelas := make(map[string]Installment, n)
	share := total / float64(n)
	for i := 1; i <= n; i++ {
		parcelas[strconv.Itoa(i)] = Installment{
			Amount:  share,
			Date:    date,
			DueDate: due,
		}
	}
	return parcelas
}

type User struct {
	ID       string `json:"id,omitempty"`
	Email    string `json:"email"`
	Password string `json:"senha"`
	Nome     string `json:"nome,omitempty"`
}
