package xtrack

import (
	"context"
	"fmt"
	"strconv"
)

// GetMyAccounts calls GET /accounts/me and returns the accounts owned by the
// authenticated user.
func (c *Client) GetMyAccounts(ctx context.Context) ([]Account, error) {
	var accounts []Account
	if _, err := c.get(ctx, "/accounts/me", nil, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

// GetAllAccounts calls GET /accounts. Admin only; each account carries its
// owning user.
func (c *Client) GetAllAccounts(ctx context.Context) ([]Account, error) {
	var accounts []Account
	if _, err := c.get(ctx, "/accounts", nil, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

// GetAccount calls GET /accounts/{id}.
func (c *Client) GetAccount(ctx context.Context, id int64) (*Account, error) {
	var account Account
	if _, err := c.get(ctx, "/accounts/"+strconv.FormatInt(id, 10), nil, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

type createAccountRequest struct {
	Name   string `json:"name"`
	UserID int64  `json:"user_id"`
}

// CreateAccount calls POST /accounts and returns the created account.
func (c *Client) CreateAccount(ctx context.Context, name string, userID int64) (*Account, error) {
	var account Account
	if err := c.post(ctx, "/accounts", createAccountRequest{Name: name, UserID: userID}, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

type updateAccountRequest struct {
	Name string `json:"name"`
}

// UpdateAccount calls PUT /accounts/{id} to rename an account.
func (c *Client) UpdateAccount(ctx context.Context, id int64, name string) (*Account, error) {
	var account Account
	if err := c.put(ctx, "/accounts/"+strconv.FormatInt(id, 10), updateAccountRequest{Name: name}, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

// DeleteAccount calls DELETE /accounts/{id}. Irreversible.
func (c *Client) DeleteAccount(ctx context.Context, id int64) error {
	return c.delete(ctx, "/accounts/"+strconv.FormatInt(id, 10))
}

// RegenerateToken calls POST /accounts/{id}/regenerate-token and returns the
// account with its replacement API token. Identity and id are preserved.
func (c *Client) RegenerateToken(ctx context.Context, id int64) (*Account, error) {
	var account Account
	path := fmt.Sprintf("/accounts/%d/regenerate-token", id)
	if err := c.post(ctx, path, nil, &account); err != nil {
		return nil, err
	}
	return &account, nil
}
