package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	apperrors "github.com/louisbranch/assetdeck/internal/platform/errors"
)

// LoginResult is the auth endpoint response.
type LoginResult struct {
	Token   string `json:"token"`
	Message string `json:"message,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for a bearer token. Rejected credentials come
// back as AUTH_INVALID_CREDENTIALS rather than a session expiry, since no
// session exists yet.
func (c *Client) Login(ctx context.Context, email, password string) (LoginResult, error) {
	payload, err := json.Marshal(loginRequest{Email: email, Password: password})
	if err != nil {
		return LoginResult{}, apperrors.Wrap(apperrors.CodeUnknown, "encode login request", err)
	}

	var out LoginResult
	if err := c.do(ctx, http.MethodPost, authLoginPath, bytes.NewReader(payload), "application/json", &out); err != nil {
		if apperrors.CodeOf(err) == apperrors.CodeAuthSessionExpired {
			return LoginResult{}, apperrors.Wrap(apperrors.CodeAuthInvalidCredentials, apperrors.MessageOf(err), err)
		}
		return LoginResult{}, err
	}
	return out, nil
}
