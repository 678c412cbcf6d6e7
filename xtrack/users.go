package xtrack

import (
	"context"
	"strconv"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login calls POST /auth/login. It works on an unauthenticated client; the
// returned token should be used to construct the authenticated one.
func (c *Client) Login(ctx context.Context, username, password string) (*AuthResponse, error) {
	var auth AuthResponse
	if err := c.post(ctx, "/auth/login", loginRequest{Username: username, Password: password}, &auth); err != nil {
		return nil, err
	}
	return &auth, nil
}

// GetUsers calls GET /users. Admin only.
func (c *Client) GetUsers(ctx context.Context) ([]User, error) {
	var users []User
	if _, err := c.get(ctx, "/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// UserParams are the mutable fields for user create/update calls. Empty
// fields are omitted so updates can be partial.
type UserParams struct {
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`
	Role     string `json:"role,omitempty"`
}

// CreateUser calls POST /users. Admin only.
func (c *Client) CreateUser(ctx context.Context, params UserParams) (*User, error) {
	var user User
	if err := c.post(ctx, "/users", params, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser calls PUT /users/{id}. Admin only.
func (c *Client) UpdateUser(ctx context.Context, id int64, params UserParams) (*User, error) {
	var user User
	if err := c.put(ctx, "/users/"+strconv.FormatInt(id, 10), params, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser calls DELETE /users/{id}. Admin only.
func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	return c.delete(ctx, "/users/"+strconv.FormatInt(id, 10))
}
