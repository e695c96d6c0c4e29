// Package api talks to the remote resource collections backing the app:
// accounts and users on the main service, game profiles on the gamification
// service. Each collection is a plain REST resource; non-2xx responses are
// converted to errors here so callers never inspect status codes.
package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mcavalcanti/billquest/internal/config"
	"github.com/mcavalcanti/billquest/internal/domain"
	"github.com/mcavalcanti/billquest/pkg/clients"
)

type HTTPDoer interface {
	DoJSON(ctx context.Context, method, url string, body, out any) (int, error)
}

type Client struct {
	http        HTTPDoer
	accountsURL string
	gameURL     string
}

func New(cfg *config.Config, httpClient *clients.HTTPClient) *Client {
	return &Client{
		http:        httpClient,
		accountsURL: cfg.AccountsAddress,
		gameURL:     cfg.GameAddress,
	}
}

func checkStatus(status int, what string) error {
	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		return fmt.Errorf("%s: unexpected status code %d", what, status)
	}
	return nil
}

func (c *Client) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	var accounts []domain.Account
	status, err := c.http.DoJSON(ctx, http.MethodGet, c.accountsURL+"/accounts", nil, &accounts)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	if err := checkStatus(status, "list accounts"); err != nil {
		return nil, err
	}
	return accounts, nil
}

func (c *Client) CreateAccount(ctx context.Context, acc domain.Account) (*domain.Account, error) {
	var created domain.Account
	status, err := c.http.DoJSON(ctx, http.MethodPost, c.accountsURL+"/accounts", acc, &created)
	if err != nil {
		return nil, fmt.Errorf("create account: %w", err)
	}
	if err := checkStatus(status, "create account"); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) ReplaceAccount(ctx context.Context, id string, acc domain.Account) (*domain.Account, error) {
	var updated domain.Account
	status, err := c.http.DoJSON(ctx, http.MethodPut, c.accountsURL+"/accounts/"+id, acc, &updated)
	if err != nil {
		return nil, fmt.Errorf("replace account %s: %w", id, err)
	}
	if err := checkStatus(status, "replace account"); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) PatchAccount(ctx context.Context, id string, patch domain.AccountPatch) (*domain.Account, error) {
	var updated domain.Account
	status, err := c.http.DoJSON(ctx, http.MethodPatch, c.accountsURL+"/accounts/"+id, patch, &updated)
	if err != nil {
		return nil, fmt.Errorf("patch account %s: %w", id, err)
	}
	if err := checkStatus(status, "patch account"); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteAccount(ctx context.Context, id string) error {
	status, err := c.http.DoJSON(ctx, http.MethodDelete, c.accountsURL+"/accounts/"+id, nil, nil)
	if err != nil {
		return fmt.Errorf("delete account %s: %w", id, err)
	}
	return checkStatus(status, "delete account")
}

func (c *Client) ListUsers(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	status, err := c.http.DoJSON(ctx, http.MethodGet, c.accountsURL+"/users", nil, &users)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	if err := checkStatus(status, "list users"); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) CreateUser(ctx context.Context, user domain.User) (*domain.User, error) {
	var created domain.User
	status, err := c.http.DoJSON(ctx, http.MethodPost, c.accountsURL+"/users", user, &created)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	if err := checkStatus(status, "create user"); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) ListProfiles(ctx context.Context) ([]domain.GameProfile, error) {
	var profiles []domain.GameProfile
	status, err := c.http.DoJSON(ctx, http.MethodGet, c.gameURL+"/achievements", nil, &profiles)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	if err := checkStatus(status, "list profiles"); err != nil {
		return nil, err
	}
	return profiles, nil
}

func (c *Client) CreateProfile(ctx context.Context, profile domain.GameProfile) (*domain.GameProfile, error) {
	var created domain.GameProfile
	status, err := c.http.DoJSON(ctx, http.MethodPost, c.gameURL+"/achievements", profile, &created)
	if err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}
	if err := checkStatus(status, "create profile"); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) ReplaceProfile(ctx context.Context, id string, profile domain.GameProfile) (*domain.GameProfile, error) {
	var updated domain.GameProfile
	status, err := c.http.DoJSON(ctx, http.MethodPut, c.gameURL+"/achievements/"+id, profile, &updated)
	if err != nil {
		return nil, fmt.Errorf("replace profile %s: %w", id, err)
	}
	if err := checkStatus(status, "replace profile"); err != nil {
		return nil, err
	}
	return &updated, nil
}
