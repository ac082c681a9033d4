package handlers

import (
	"net/http"
	"strings"

	"github.com/bobmcallan/linweb-api/internal/common"
	"github.com/bobmcallan/linweb-api/internal/request"
)

// ValueHandler serves the generic get-value/set-value endpoints: one
// allow-listed column of the caller's profile row, read or written after a
// per-request password sign-in.
type ValueHandler struct {
	logger *common.Logger
	auth   Authenticator
	store  ProfileStore
}

// NewValueHandler creates a new value handler.
func NewValueHandler(logger *common.Logger, auth Authenticator, store ProfileStore) *ValueHandler {
	return &ValueHandler{logger: logger, auth: auth, store: store}
}

// HandleGet handles GET/POST /api/get-value.
// Flow: credentials -> column gate -> authenticate -> read column.
func (h *ValueHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodPost) {
		return
	}

	params, err := request.Parse(r)
	if err != nil {
		if h.logger != nil {
			h.logger.Error().Str("error", err.Error()).Msg("get-value parse error")
		}
		WriteError(w, http.StatusInternalServerError, msgServerError)
		return
	}

	if !params.HasCredentials() {
		WriteError(w, http.StatusBadRequest, msgCredentialsRequired)
		return
	}

	column := request.NormalizeColumn(params.Column)
	if !request.IsAllowedColumn(column) {
		WriteError(w, http.StatusBadRequest, msgColumnNotAllowed)
		return
	}

	authEmail, err := h.auth.SignInWithPassword(r.Context(), params.Email, params.Password)
	if err != nil {
		writeAuthError(w, h.logger, err)
		return
	}
	email := rowKeyEmail(authEmail, params.Email)

	value, err := h.store.GetValue(r.Context(), email, column)
	if err != nil {
		if h.logger != nil {
			h.logger.Error().Str("error", err.Error()).Str("column", column).Msg("get-value fetch error")
		}
		WriteError(w, http.StatusInternalServerError, msgColumnFetchFailed(column))
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"column":  column,
		"value":   value,
	})
}

// HandleSet handles GET/POST /api/set-value.
// Flow: credentials -> text present -> column gate -> authenticate -> write.
// An empty text is a legitimate value; an absent field is not.
func (h *ValueHandler) HandleSet(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodPost) {
		return
	}

	params, err := request.Parse(r)
	if err != nil {
		if h.logger != nil {
			h.logger.Error().Str("error", err.Error()).Msg("set-value parse error")
		}
		WriteError(w, http.StatusInternalServerError, msgServerError)
		return
	}

	if !params.HasCredentials() {
		WriteError(w, http.StatusBadRequest, msgCredentialsRequired)
		return
	}
	if params.Text == nil {
		WriteError(w, http.StatusBadRequest, msgTextRequired)
		return
	}

	column := request.NormalizeColumn(params.Column)
	if !request.IsAllowedColumn(column) {
		WriteError(w, http.StatusBadRequest, msgColumnNotAllowed)
		return
	}

	value := strings.TrimSpace(*params.Text)

	authEmail, err := h.auth.SignInWithPassword(r.Context(), params.Email, params.Password)
	if err != nil {
		writeAuthError(w, h.logger, err)
		return
	}
	email := rowKeyEmail(authEmail, params.Email)

	updatedAt := nowISO()
	if err := h.store.SetValues(r.Context(), email, map[string]any{column: value}); err != nil {
		if h.logger != nil {
			h.logger.Error().Str("error", err.Error()).Str("column", column).Msg("set-value update error")
		}
		WriteError(w, http.StatusInternalServerError, msgColumnSaveFailed(column))
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"message":    msgColumnSaved(column),
		"column":     column,
		"updated_at": updatedAt,
	})
}
