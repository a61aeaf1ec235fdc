package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/hhsksonu/kpcli/internal/client/models"
)

// TokenPair is the credential pair issued by /auth/login/.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// RegisterRequest is the body of /auth/register/.
type RegisterRequest struct {
	Username        string      `json:"username"`
	Email           string      `json:"email"`
	FirstName       string      `json:"first_name"`
	LastName        string      `json:"last_name"`
	Password        string      `json:"password"`
	PasswordConfirm string      `json:"password_confirm"`
	Role            models.Role `json:"role"`
}

// RegisterResponse carries tokens plus the created user, so no separate
// profile fetch is needed after registration.
type RegisterResponse struct {
	Access  string      `json:"access"`
	Refresh string      `json:"refresh"`
	User    models.User `json:"user"`
}

// Login exchanges credentials for a token pair.
func (c *Client) Login(ctx context.Context, username, password string) (*TokenPair, error) {
	cl, err := jsonCall(http.MethodPost, "/auth/login/", map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return nil, err
	}
	var pair TokenPair
	if err := c.do(ctx, cl, &pair); err != nil {
		return nil, err
	}
	return &pair, nil
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	cl, err := jsonCall(http.MethodPost, "/auth/register/", req)
	if err != nil {
		return nil, err
	}
	var resp RegisterResponse
	if err := c.do(ctx, cl, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Profile fetches the full profile of the authenticated user.
func (c *Client) Profile(ctx context.Context) (*models.User, error) {
	cl, err := jsonCall(http.MethodGet, "/auth/profile/", nil)
	if err != nil {
		return nil, err
	}
	var u models.User
	if err := c.do(ctx, cl, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdateProfile applies a partial profile update and returns the
// authoritative user object from the server.
func (c *Client) UpdateProfile(ctx context.Context, patch models.UserPatch) (*models.User, error) {
	cl, err := jsonCall(http.MethodPut, "/auth/profile/", patch)
	if err != nil {
		return nil, err
	}
	var u models.User
	if err := c.do(ctx, cl, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// ChangePassword rotates the account password.
func (c *Client) ChangePassword(ctx context.Context, oldPassword, newPassword, newPasswordConfirm string) error {
	cl, err := jsonCall(http.MethodPost, "/auth/change-password/", map[string]string{
		"old_password":         oldPassword,
		"new_password":         newPassword,
		"new_password_confirm": newPasswordConfirm,
	})
	if err != nil {
		return err
	}
	return c.do(ctx, cl, nil)
}

// ListUsers returns a page of users. Admin only.
func (c *Client) ListUsers(ctx context.Context, page int) (*models.Page[models.User], error) {
	cl, err := jsonCall(http.MethodGet, "/auth/users/", nil)
	if err != nil {
		return nil, err
	}
	if page > 1 {
		cl.query = url.Values{"page": []string{strconv.Itoa(page)}}
	}
	var result models.Page[models.User]
	if err := c.do(ctx, cl, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
