package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mcavalcanti/billquest/internal/api"
	"github.com/mcavalcanti/billquest/internal/config"
	"github.com/mcavalcanti/billquest/internal/service"
	"github.com/mcavalcanti/billquest/internal/session"
	"github.com/mcavalcanti/billquest/pkg/clients"
	"github.com/mcavalcanti/billquest/pkg/logger"
)

// Application wires the config, logger, API client, and services, and owns
// the session lifecycle: login populates both stores, logout resets them.
type Application struct {
	cfg *config.Config
	srv *service.Services
}

func New() (*Application, error) {
	cfg := config.New()

	if err := logger.InitLogger(cfg); err != nil {
		return nil, fmt.Errorf("can't init logger: %w", err)
	}

	client := api.New(cfg, clients.NewHTTPClient(cfg.HTTPTimeout))
	store := session.NewStore(cfg.SessionFile)

	return &Application{
		cfg: cfg,
		srv: service.New(cfg, client, store),
	}, nil
}

func (a *Application) Services() *service.Services {
	return a.srv
}

func (a *Application) Config() *config.Config {
	return a.cfg
}

// Login authenticates against the users collection, then loads the account
// list and the game profile in parallel and runs an achievement pass over
// the fresh snapshot.
func (a *Application) Login(ctx context.Context, email, password string) error {
	user, err := a.srv.Auth.Login(ctx, email, password)
	if err != nil {
		return err
	}
	return a.openSession(ctx, user.Email)
}

// Resume restores the session persisted on device, if any. Returns the
// active email, empty when logged out.
func (a *Application) Resume(ctx context.Context) (string, error) {
	email, err := a.srv.Auth.Current()
	if err != nil {
		return "", err
	}
	if email == "" {
		return "", nil
	}
	if err := a.openSession(ctx, email); err != nil {
		return "", err
	}
	return email, nil
}

func (a *Application) openSession(ctx context.Context, email string) error {
	var g errgroup.Group
	g.Go(func() error {
		_, err := a.srv.Accounts.Fetch(ctx, email)
		return err
	})
	g.Go(func() error {
		return a.srv.Game.Load(ctx, email)
	})
	if err := g.Wait(); err != nil {
		return err
	}

	a.srv.Game.CheckAchievements(a.srv.Accounts.Accounts(), time.Now())
	zap.L().Info("session opened", zap.String("email", email))
	return nil
}

// Logout flushes any pending profile write, then resets the engine and
// clears the account list and the persisted session. The flush happens
// before the reset so the debounce timer can never write a blank profile
// over remote state.
func (a *Application) Logout(ctx context.Context) error {
	if err := a.srv.Game.SaveNow(ctx); err != nil {
		zap.L().Error("failed to flush game profile on logout", zap.Error(err))
	}
	a.srv.Game.Reset()
	a.srv.Accounts.Clear()
	return a.srv.Auth.Logout()
}

// Close flushes pending state before the process exits.
func (a *Application) Close(ctx context.Context) error {
	return a.srv.Game.SaveNow(ctx)
}
