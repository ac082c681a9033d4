package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// AuthError is a credential rejection from the identity provider. Its message
// is forwarded verbatim to the caller in the 401 response body.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("authentication failed: %s", e.Message)
}

// SignInWithPassword authenticates an email/password pair against GoTrue.
// On success it returns the email the provider holds for the user, which may
// be empty; callers fall back to the submitted email in that case.
//
// A 4xx from the provider becomes *AuthError; transport failures and 5xx
// responses are ordinary errors.
func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (string, error) {
	query := url.Values{"grant_type": {"password"}}
	body := map[string]string{
		"email":    email,
		"password": password,
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/auth/v1/token", query, body)
	if err != nil {
		return "", err
	}

	respBody, status, err := c.do(req)
	if err != nil {
		return "", err
	}

	if status >= 400 && status < 500 {
		return "", &AuthError{Message: authErrorMessage(respBody)}
	}
	if status != http.StatusOK {
		return "", fmt.Errorf("auth provider returned %d: %s", status, string(respBody))
	}

	var result struct {
		User struct {
			Email string `json:"email"`
		} `json:"user"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("failed to parse auth response: %w", err)
	}

	return result.User.Email, nil
}

// authErrorMessage extracts the provider's human-readable rejection message.
// GoTrue has used error_description, msg, and error across versions.
func authErrorMessage(body []byte) string {
	var payload struct {
		ErrorDescription string `json:"error_description"`
		Msg              string `json:"msg"`
		ErrorField       string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		for _, msg := range []string{payload.ErrorDescription, payload.Msg, payload.ErrorField} {
			if msg != "" {
				return msg
			}
		}
	}
	return "Invalid login credentials"
}
