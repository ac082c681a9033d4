package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/bobmcallan/linweb-api/internal/models"
)

// Authenticator validates an email/password pair against the identity
// provider and returns the email the provider holds for the user.
type Authenticator interface {
	SignInWithPassword(ctx context.Context, email, password string) (string, error)
}

// ProfileStore reads and updates the user_info row keyed by email.
type ProfileStore interface {
	GetValue(ctx context.Context, email, column string) (string, error)
	SetValues(ctx context.Context, email string, fields map[string]any) error
	GetProduct(ctx context.Context, email string) (*models.ProductInfo, error)
	UpdateProductToken(ctx context.Context, email, token string) (*models.ProductInfo, error)
}

// VersionStore reads the program version row.
type VersionStore interface {
	GetVersion(ctx context.Context) (*string, error)
}

// RequireMethod validates that the HTTP request uses one of the given methods.
// Returns true on a match, false otherwise (and writes the error response).
// HEAD is accepted wherever GET is.
func RequireMethod(w http.ResponseWriter, r *http.Request, methods ...string) bool {
	for _, method := range methods {
		if r.Method == method || (method == http.MethodGet && r.Method == http.MethodHead) {
			return true
		}
	}
	http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	return false
}

// WriteJSON writes a JSON response with the specified status code and data.
func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(data)
}

// WriteError writes the standard error envelope.
func WriteError(w http.ResponseWriter, statusCode int, message string) error {
	return WriteJSON(w, statusCode, map[string]any{
		"success": false,
		"error":   message,
	})
}
