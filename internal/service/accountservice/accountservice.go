package accountservice

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/mcavalcanti/billquest/internal/domain"
	"go.uber.org/zap"
)

// API is the accounts collection of the remote service.
type API interface {
	ListAccounts(ctx context.Context) ([]domain.Account, error)
	CreateAccount(ctx context.Context, acc domain.Account) (*domain.Account, error)
	ReplaceAccount(ctx context.Context, id string, acc domain.Account) (*domain.Account, error)
	PatchAccount(ctx context.Context, id string, patch domain.AccountPatch) (*domain.Account, error)
	DeleteAccount(ctx context.Context, id string) error
}

var (
	ErrAccountNotFound = errors.New("account not found")
	ErrNoDueDate       = errors.New("account has no due date")
)

// Service owns the in-memory account list for the signed-in user. It is the
// sole mutator of that list; the remote collection is the system of record.
type Service struct {
	api API
	now func() time.Time

	mu       sync.Mutex
	email    string
	accounts []domain.Account
	loading  bool
	lastErr  error
}

func New(api API) *Service {
	return &Service{
		api: api,
		now: time.Now,
	}
}

// Fetch loads the remote collection and keeps only the records owned by
// email. An empty email clears the list without touching the network; that
// is a logged-out session, not an error.
func (s *Service) Fetch(ctx context.Context, email string) ([]domain.Account, error) {
	if email == "" {
		s.Clear()
		return nil, nil
	}

	s.mu.Lock()
	s.email = email
	s.loading = true
	s.mu.Unlock()

	defer s.setLoading(false)

	all, err := s.api.ListAccounts(ctx)
	if err != nil {
		zap.L().Error("failed to fetch accounts", zap.Error(err))
		s.mu.Lock()
		s.accounts = nil
		s.lastErr = err
		s.mu.Unlock()
		return nil, err
	}

	owned := make([]domain.Account, 0)
	for _, acc := range all {
		if acc.Email == email {
			owned = append(owned, acc)
		}
	}

	s.mu.Lock()
	s.accounts = owned
	s.lastErr = nil
	s.mu.Unlock()

	return s.Accounts(), nil
}

// Add stamps the account with the session email, derives its initial status
// and installment split, and appends the server-returned record.
func (s *Service) Add(ctx context.Context, acc domain.Account) (*domain.Account, error) {
	if err := acc.Validate(); err != nil {
		zap.L().Error("invalid account", zap.Error(err))
		return nil, err
	}

	s.mu.Lock()
	acc.Email = s.email
	s.mu.Unlock()

	today := s.now()
	if acc.Data.IsZero() {
		acc.Data = domain.DateOf(today)
	}
	acc.Status = initialStatus(acc.Vencimento, today)
	acc.Parcelas = domain.SplitInstallments(acc.ValorTotal, acc.QtdParcela, acc.Data, acc.Vencimento)

	created, err := s.api.CreateAccount(ctx, acc)
	if err != nil {
		zap.L().Error("failed to create account", zap.Error(err))
		return nil, err
	}

	s.mu.Lock()
	s.accounts = append(s.accounts, *created)
	s.mu.Unlock()

	zap.L().Info("account created", zap.String("id", created.ID), zap.String("nome", created.Nome))
	return created, nil
}

// PaymentResult carries the post-payment record plus how many whole days
// before the due date the payment landed (negative when already late).
type PaymentResult struct {
	Account   domain.Account
	DaysEarly int
}

// MarkPaid transitions the account to paid, stamping today as the payment
// date locally and remotely. Paid is terminal; the transition never reverts.
func (s *Service) MarkPaid(ctx context.Context, accountID string) (*PaymentResult, error) {
	s.mu.Lock()
	idx := -1
	for i, acc := range s.accounts {
		if acc.ID == accountID {
			idx = i
			break
		}
	}
	if idx == -1 {
		s.mu.Unlock()
		zap.L().Error("cannot pay unknown account", zap.String("id", accountID))
		return nil, ErrAccountNotFound
	}
	acc := s.accounts[idx]
	s.mu.Unlock()

	if acc.Vencimento.IsZero() {
		return nil, ErrNoDueDate
	}
	due, err := acc.Vencimento.Time()
	if err != nil {
		zap.L().Error("cannot pay account with malformed due date", zap.String("id", accountID), zap.Error(err))
		return nil, ErrNoDueDate
	}

	today := s.now()
	daysEarly := domain.DaysBetween(today, due)
	paid := domain.StatusPaid
	paymentDate := domain.DateOf(today)

	if _, err := s.api.PatchAccount(ctx, accountID, domain.AccountPatch{
		Status:        &paid,
		DataPagamento: &paymentDate,
	}); err != nil {
		zap.L().Error("failed to mark account as paid", zap.String("id", accountID), zap.Error(err))
		return nil, err
	}

	// Re-locate by id: the list may have been refreshed during the round-trip.
	s.mu.Lock()
	var updated domain.Account
	for i := range s.accounts {
		if s.accounts[i].ID == accountID {
			s.accounts[i].Status = domain.StatusPaid
			s.accounts[i].DataPagamento = paymentDate
			updated = s.accounts[i]
			break
		}
	}
	s.mu.Unlock()

	zap.L().Info("account paid", zap.String("id", accountID), zap.Int("daysEarly", daysEarly))
	return &PaymentResult{Account: updated, DaysEarly: daysEarly}, nil
}

// Update replaces the record remotely and swaps the local copy for the
// server response. The installment split is recomputed from the new totals.
func (s *Service) Update(ctx context.Context, accountID string, acc domain.Account) (*domain.Account, error) {
	if err := acc.Validate(); err != nil {
		zap.L().Error("invalid account update", zap.Error(err))
		return nil, err
	}

	acc.ID = accountID
	acc.Parcelas = domain.SplitInstallments(acc.ValorTotal, acc.QtdParcela, acc.Data, acc.Vencimento)

	updated, err := s.api.ReplaceAccount(ctx, accountID, acc)
	if err != nil {
		zap.L().Error("failed to update account", zap.String("id", accountID), zap.Error(err))
		return nil, err
	}

	s.mu.Lock()
	for i := range s.accounts {
		if s.accounts[i].ID == accountID {
			s.accounts[i] = *updated
			break
		}
	}
	s.mu.Unlock()

	return updated, nil
}

func (s *Service) Delete(ctx context.Context, accountID string) error {
	if err := s.api.DeleteAccount(ctx, accountID); err != nil {
		zap.L().Error("failed to delete account", zap.String("id", accountID), zap.Error(err))
		return err
	}

	s.mu.Lock()
	for i := range s.accounts {
		if s.accounts[i].ID == accountID {
			s.accounts = append(s.accounts[:i], s.accounts[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	zap.L().Info("account deleted", zap.String("id", accountID))
	return nil
}

// Clear drops the session state. Used on logout; no network effect.
func (s *Service) Clear() {
	s.mu.Lock()
	s.email = ""
	s.accounts = nil
	s.lastErr = nil
	s.mu.Unlock()
}

// Accounts returns a copy of the current list.
func (s *Service) Accounts() []domain.Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Account, len(s.accounts))
	copy(out, s.accounts)
	return out
}

func (s *Service) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *Service) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func (s *Service) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

func initialStatus(due domain.Date, today time.Time) domain.Status {
	if due.IsZero() {
		return domain.StatusPending
	}
	dueTime, err := due.Time()
	if err != nil {
		return domain.StatusPending
	}
	if domain.DaysBetween(today, dueTime) < 0 {
		return domain.StatusOverdue
	}
	return domain.StatusPending
}
