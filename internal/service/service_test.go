package service

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcavalcanti/billquest/internal/api"
	"github.com/mcavalcanti/billquest/internal/config"
	"github.com/mcavalcanti/billquest/internal/domain"
	"github.com/mcavalcanti/billquest/internal/mockapi"
	"github.com/mcavalcanti/billquest/internal/session"
	"github.com/mcavalcanti/billquest/pkg/clients"
)

func newServices(t *testing.T) (*Services, *api.Client) {
	ts := httptest.NewServer(mockapi.NewServer().Router())
	t.Cleanup(ts.Close)

	cfg := &config.Config{
		AccountsAddress: ts.URL,
		GameAddress:     ts.URL,
		SessionFile:     filepath.Join(t.TempDir(), "session"),
		HTTPTimeout:     5 * time.Second,
		// Long enough that only the explicit flush writes the profile.
		SaveDebounce: time.Minute,
	}
	client := api.New(cfg, clients.NewHTTPClient(cfg.HTTPTimeout))
	return New(cfg, client, session.NewStore(cfg.SessionFile)), client
}

func TestFullSessionFlow(t *testing.T) {
	srv, client := newServices(t)
	ctx := context.Background()

	_, err := srv.Auth.Register(ctx, domain.User{Email: "a@x.com", Password: "segredo"})
	require.NoError(t, err)

	user, err := srv.Auth.Login(ctx, "a@x.com", "segredo")
	require.NoError(t, err)
	require.NoError(t, srv.Game.Load(ctx, user.Email))

	_, err = srv.Accounts.Fetch(ctx, user.Email)
	require.NoError(t, err)
	require.Empty(t, srv.Accounts.Accounts())

	created, err := srv.Gamified.AddAccount(ctx, domain.Account{
		Nome:       "Internet",
		ValorTotal: 99.9,
		Vencimento: domain.DateOf(time.Now().AddDate(0, 0, 10)),
		QtdParcela: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", created.Email)
	assert.Equal(t, domain.XPAddAccount, srv.Game.Profile().XP)

	result, err := srv.Gamified.MarkAccountAsPaid(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, result.DaysEarly)

	profile := srv.Game.Profile()
	assert.Equal(t, domain.XPAddAccount+domain.XPPayEarly, profile.XP)
	assert.True(t, profile.Unlocked(domain.AchievementEarlyBird))
	assert.True(t, profile.Unlocked(domain.AchievementFirstBlood))

	// The flushed write lands in the achievements collection.
	require.NoError(t, srv.Game.SaveNow(ctx))
	profiles, err := client.ListProfiles(ctx)
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Equal(t, "a@x.com", profiles[0].Email)
	assert.Equal(t, profile.XP, profiles[0].XP)
}

func TestPerUserIsolationEndToEnd(t *testing.T) {
	srv, _ := newServices(t)
	ctx := context.Background()

	for _, u := range []string{"a@x.com", "b@x.com"} {
		_, err := srv.Accounts.Fetch(ctx, u)
		require.NoError(t, err)
		_, err = srv.Accounts.Add(ctx, domain.Account{
			Nome:       "Conta de " + u,
			ValorTotal: 50,
			Vencimento: domain.DateOf(time.Now().AddDate(0, 1, 0)),
			QtdParcela: 1,
		})
		require.NoError(t, err)
	}

	accounts, err := srv.Accounts.Fetch(ctx, "a@x.com")
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, "a@x.com", accounts[0].Email)
}
