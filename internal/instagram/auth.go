package instagram

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/SynchronoMedia/english-skills-101/internal/transfer"
)

// Login performs a credential login, registering this client's device.
// The password travels in the plain-text envelope the mobile app uses over
// TLS; it is never stored.
func (c *Client) Login(ctx context.Context) error {
	c.authorization = ""

	params := map[string]any{
		"username":            c.username,
		"enc_password":        fmt.Sprintf("#PWD_INSTAGRAM:0:%d:%s", time.Now().Unix(), c.password),
		"device_id":           c.device.AndroidID,
		"phone_id":            c.device.PhoneID,
		"guid":                c.device.GUID,
		"adid":                c.device.AdvertisingID,
		"login_attempt_count": "0",
	}

	var resp transfer.InstagramLoginResponse
	if err := c.postSigned(ctx, "accounts/login/", params, &resp); err != nil {
		var authErr *AuthError
		if errors.As(err, &authErr) {
			return authErr
		}
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			return &AuthError{Reason: "login rejected", Err: apiErr}
		}
		return &AuthError{Reason: "login request failed", Err: err}
	}

	if c.authorization == "" {
		return &AuthError{Reason: "login response carried no authorization token"}
	}
	c.userID = resp.LoggedInUser.Pk
	return nil
}

// Relogin validates a restored session with a lightweight current-user
// fetch instead of a credential login. A failure means the session is no
// longer usable.
func (c *Client) Relogin(ctx context.Context) error {
	if c.authorization == "" {
		return &AuthError{Reason: "no session to resume"}
	}

	query := url.Values{}
	query.Set("edit", "true")

	var resp transfer.InstagramUserResponse
	if err := c.get(ctx, "accounts/current_user/", query, &resp); err != nil {
		var authErr *AuthError
		if errors.As(err, &authErr) {
			return authErr
		}
		return &AuthError{Reason: "session validation failed", Err: err}
	}

	if resp.User.Pk != 0 {
		c.userID = resp.User.Pk
	}
	return nil
}
