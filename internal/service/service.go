package service

import (
	"github.com/mcavalcanti/billquest/internal/api"
	"github.com/mcavalcanti/billquest/internal/config"
	"github.com/mcavalcanti/billquest/internal/service/accountservice"
	"github.com/mcavalcanti/billquest/internal/service/authservice"
	"github.com/mcavalcanti/billquest/internal/service/gameservice"
	"github.com/mcavalcanti/billquest/internal/service/gamified"
)

type Services struct {
	Auth     *authservice.Service
	Accounts *accountservice.Service
	Game     *gameservice.Engine
	Gamified *gamified.Service
}

func New(cfg *config.Config, client *api.Client, session authservice.SessionStore, opts ...gameservice.Option) *Services {
	accounts := accountservice.New(client)
	game := gameservice.New(client, append([]gameservice.Option{gameservice.WithDebounce(cfg.SaveDebounce)}, opts...)...)
	auth := authservice.New(client, session)

	return &Services{
		Auth:     auth,
		Accounts: accounts,
		Game:     game,
		Gamified: gamified.New(accounts, game),
	}
}
