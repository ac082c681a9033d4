package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/bobmcallan/linweb-api/internal/common"
	"github.com/bobmcallan/linweb-api/internal/supabase"
)

// writeAuthError maps a sign-in failure to a response: provider rejections
// become a 401 carrying the provider's message verbatim, anything else (the
// provider being unreachable, a 5xx) becomes a generic 500.
func writeAuthError(w http.ResponseWriter, logger *common.Logger, err error) {
	var authErr *supabase.AuthError
	if errors.As(err, &authErr) {
		WriteError(w, http.StatusUnauthorized, authErr.Message)
		return
	}

	if logger != nil {
		logger.Error().Str("error", err.Error()).Msg("auth provider request failed")
	}
	WriteError(w, http.StatusInternalServerError, msgServerError)
}

// rowKeyEmail picks the email the row filter uses: the provider-echoed email
// when present, the submitted one otherwise. Never an unauthenticated input.
func rowKeyEmail(authenticated, submitted string) string {
	if authenticated != "" {
		return authenticated
	}
	return submitted
}

// nowISO renders the current time the way the stored timestamps and response
// fields have always been formatted (UTC, millisecond precision).
func nowISO() string {
	return time.Now().UTC().Format("2006-01-02T15:04:05.000Z")
}
