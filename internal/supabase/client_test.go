package supabase

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, "test-service-key", 5*time.Second)
}

func TestSignInWithPassword_Success(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/v1/token", r.URL.Path)
		assert.Equal(t, "password", r.URL.Query().Get("grant_type"))
		assert.Equal(t, "test-service-key", r.Header.Get("apikey"))

		body, _ := io.ReadAll(r.Body)
		var creds map[string]string
		require.NoError(t, json.Unmarshal(body, &creds))
		assert.Equal(t, "test@gmail.com", creds["email"])
		assert.Equal(t, "test11", creds["password"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"jwt","user":{"email":"test@gmail.com"}}`))
	})

	email, err := client.SignInWithPassword(context.Background(), "test@gmail.com", "test11")
	require.NoError(t, err)
	assert.Equal(t, "test@gmail.com", email)
}

func TestSignInWithPassword_InvalidCredentials(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error_description":"Invalid login credentials"}`))
	})

	_, err := client.SignInWithPassword(context.Background(), "test@gmail.com", "wrong")
	require.Error(t, err)

	var authErr *AuthError
	require.True(t, errors.As(err, &authErr), "expected *AuthError, got %T", err)
	assert.Equal(t, "Invalid login credentials", authErr.Message)
}

func TestSignInWithPassword_MsgField(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"code":400,"error_code":"invalid_credentials","msg":"Email not confirmed"}`))
	})

	_, err := client.SignInWithPassword(context.Background(), "test@gmail.com", "test11")

	var authErr *AuthError
	require.True(t, errors.As(err, &authErr))
	assert.Equal(t, "Email not confirmed", authErr.Message)
}

func TestSignInWithPassword_ServerErrorIsNotAuthError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.SignInWithPassword(context.Background(), "test@gmail.com", "test11")
	require.Error(t, err)

	var authErr *AuthError
	assert.False(t, errors.As(err, &authErr), "5xx must not map to AuthError")
}

func TestGetValue_ReturnsColumn(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/v1/user_info", r.URL.Path)
		assert.Equal(t, "set_value_2", r.URL.Query().Get("select"))
		assert.Equal(t, "eq.test@gmail.com", r.URL.Query().Get("email"))
		assert.Equal(t, acceptSingleObject, r.Header.Get("Accept"))

		w.Write([]byte(`{"set_value_2":"hello"}`))
	})

	value, err := client.GetValue(context.Background(), "test@gmail.com", "set_value_2")
	require.NoError(t, err)
	assert.Equal(t, "hello", value)
}

func TestGetValue_NullReadsAsEmpty(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"set_value":null}`))
	})

	value, err := client.GetValue(context.Background(), "test@gmail.com", "set_value")
	require.NoError(t, err)
	assert.Equal(t, "", value)
}

func TestGetValue_NoRowIsError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		// PostgREST single-object mode errors when zero rows match.
		w.WriteHeader(http.StatusNotAcceptable)
		w.Write([]byte(`{"code":"PGRST116","message":"JSON object requested, multiple (or no) rows returned"}`))
	})

	_, err := client.GetValue(context.Background(), "missing@gmail.com", "set_value")
	assert.Error(t, err)
}

func TestSetValues_Patch(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "eq.test@gmail.com", r.URL.Query().Get("email"))
		assert.Equal(t, "return=minimal", r.Header.Get("Prefer"))

		body, _ := io.ReadAll(r.Body)
		var fields map[string]any
		require.NoError(t, json.Unmarshal(body, &fields))
		assert.Equal(t, "X", fields["set_value"])

		w.WriteHeader(http.StatusNoContent)
	})

	err := client.SetValues(context.Background(), "test@gmail.com", map[string]any{"set_value": "X"})
	assert.NoError(t, err)
}

func TestSetValues_StorageFailure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message":"permission denied"}`))
	})

	err := client.SetValues(context.Background(), "test@gmail.com", map[string]any{"set_value": "X"})
	assert.Error(t, err)
}

func TestGetProduct_CoercesPeriod(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantToken  *string
		wantPeriod int
	}{
		{"true period", `{"product_token":"abc","product_period":true}`, strPtr("abc"), 1},
		{"false period", `{"product_token":"abc","product_period":false}`, strPtr("abc"), 0},
		{"null token and period", `{"product_token":null,"product_period":null}`, nil, 0},
		{"numeric period", `{"product_token":"abc","product_period":30}`, strPtr("abc"), 1},
		{"zero period", `{"product_token":"abc","product_period":0}`, strPtr("abc"), 0},
		{"string period", `{"product_token":"abc","product_period":"2026-12-31"}`, strPtr("abc"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "product_token,product_period", r.URL.Query().Get("select"))
				w.Write([]byte(tt.body))
			})

			info, err := client.GetProduct(context.Background(), "test@gmail.com")
			require.NoError(t, err)
			assert.Equal(t, tt.wantToken, info.Token)
			assert.Equal(t, tt.wantPeriod, info.Period)
		})
	}
}

func TestUpdateProductToken_ReturnsRepresentation(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "return=representation", r.Header.Get("Prefer"))
		assert.Equal(t, acceptSingleObject, r.Header.Get("Accept"))

		body, _ := io.ReadAll(r.Body)
		var fields map[string]any
		require.NoError(t, json.Unmarshal(body, &fields))
		assert.Equal(t, "newtoken", fields["product_token"])

		w.Write([]byte(`{"product_token":"newtoken","product_period":true}`))
	})

	info, err := client.UpdateProductToken(context.Background(), "test@gmail.com", "newtoken")
	require.NoError(t, err)
	require.NotNil(t, info.Token)
	assert.Equal(t, "newtoken", *info.Token)
	assert.Equal(t, 1, info.Period)
}

func TestGetVersion(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/v1/program_version", r.URL.Path)
		assert.Equal(t, "version", r.URL.Query().Get("select"))
		w.Write([]byte(`{"version":"1.2.0"}`))
	})

	version, err := client.GetVersion(context.Background())
	require.NoError(t, err)
	require.NotNil(t, version)
	assert.Equal(t, "1.2.0", *version)
}

func TestGetVersion_Null(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"version":null}`))
	})

	version, err := client.GetVersion(context.Background())
	require.NoError(t, err)
	assert.Nil(t, version)
}

func strPtr(s string) *string { return &s }
