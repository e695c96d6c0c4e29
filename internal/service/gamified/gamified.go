// Package gamified composes the account store and the game engine behind one
// API: every successful mutation feeds the gamification side effects from the
// post-mutation data, and reads come back annotated with derived status.
package gamified

import (
	"context"
	"time"

	"github.com/mcavalcanti/billquest/internal/domain"
	"github.com/mcavalcanti/billquest/internal/service/accountservice"
)

type Store interface {
	Add(ctx context.Context, acc domain.Account) (*domain.Account, error)
	MarkPaid(ctx context.Context, accountID string) (*accountservice.PaymentResult, error)
	Delete(ctx context.Context, accountID string) error
	Accounts() []domain.Account
}

type Game interface {
	AddXP(amount int)
	Unlock(id domain.AchievementID)
	CheckAchievements(accounts []domain.Account, now time.Time)
}

// Service holds no state of its own; the enriched view is re-derived on
// every read.
type Service struct {
	store Store
	game  Game
	now   func() time.Time
}

func New(store Store, game Game) *Service {
	return &Service{
		store: store,
		game:  game,
		now:   time.Now,
	}
}

// AddAccount creates the account, then awards the add XP and re-runs the
// achievement catalog over the fresh list. The store result passes through
// unchanged.
func (s *Service) AddAccount(ctx context.Context, acc domain.Account) (*domain.Account, error) {
	created, err := s.store.Add(ctx, acc)
	if err != nil {
		return nil, err
	}

	s.game.AddXP(domain.XPAddAccount)
	s.game.CheckAchievements(s.store.Accounts(), s.now())

	return created, nil
}

// MarkAccountAsPaid pays the account and awards timing XP from the
// post-mutation result: five or more days early earns the early-payment
// bonus, on-time the regular award, late nothing. The full predicate pass
// still runs for late payments, so a late first payment can unlock its
// achievement without earning XP.
func (s *Service) MarkAccountAsPaid(ctx context.Context, accountID string) (*accountservice.PaymentResult, error) {
	result, err := s.store.MarkPaid(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if result.DaysEarly >= domain.EarlyPaymentDays {
		s.game.AddXP(domain.XPPayEarly)
		s.game.Unlock(domain.AchievementEarlyBird)
	} else if result.DaysEarly >= 0 {
		s.game.AddXP(domain.XPPayOnTime)
	}

	s.game.CheckAchievements(s.store.Accounts(), s.now())

	return result, nil
}

// DeleteAccount removes the account; a successful delete always costs XP.
func (s *Service) DeleteAccount(ctx context.Context, accountID string) error {
	if err := s.store.Delete(ctx, accountID); err != nil {
		return err
	}

	s.game.AddXP(domain.XPDeleteAccount)
	return nil
}

// EnrichedAccount is an account annotated with its derived display status.
type EnrichedAccount struct {
	domain.Account
	StatusInfo accountservice.StatusInfo
}

func (s *Service) Accounts() []EnrichedAccount {
	accounts := s.store.Accounts()
	now := s.now()
	enriched := make([]EnrichedAccount, 0, len(accounts))
	for _, acc := range accounts {
		enriched = append(enriched, EnrichedAccount{
			Account:    acc,
			StatusInfo: accountservice.StatusOf(acc, now),
		})
	}
	return enriched
}
