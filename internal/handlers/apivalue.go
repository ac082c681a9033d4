package handlers

import (
	"net/http"

	"github.com/bobmcallan/linweb-api/internal/common"
	"github.com/bobmcallan/linweb-api/internal/models"
	"github.com/bobmcallan/linweb-api/internal/request"
)

// APIValueHandler serves /api/user-api-value: writes api_value together with
// an api_at write timestamp. The target columns are fixed, so no column gate
// applies here.
type APIValueHandler struct {
	logger *common.Logger
	auth   Authenticator
	store  ProfileStore
}

// NewAPIValueHandler creates a new api-value handler.
func NewAPIValueHandler(logger *common.Logger, auth Authenticator, store ProfileStore) *APIValueHandler {
	return &APIValueHandler{logger: logger, auth: auth, store: store}
}

// ServeHTTP handles GET/POST /api/user-api-value.
func (h *APIValueHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodPost) {
		return
	}

	params, err := request.Parse(r)
	if err != nil {
		if h.logger != nil {
			h.logger.Error().Str("error", err.Error()).Msg("user-api-value parse error")
		}
		WriteError(w, http.StatusInternalServerError, msgServerError)
		return
	}

	if !params.HasCredentials() {
		WriteError(w, http.StatusBadRequest, msgCredentialsRequired)
		return
	}
	// Unlike set-value, an empty (or whitespace-only) api_value is rejected.
	if params.APIValue == "" {
		WriteError(w, http.StatusBadRequest, msgAPIValueRequired)
		return
	}

	authEmail, err := h.auth.SignInWithPassword(r.Context(), params.Email, params.Password)
	if err != nil {
		writeAuthError(w, h.logger, err)
		return
	}
	email := rowKeyEmail(authEmail, params.Email)

	apiAt := nowISO()
	fields := map[string]any{
		models.ColumnAPIValue: params.APIValue,
		models.ColumnAPIAt:    apiAt,
	}
	if err := h.store.SetValues(r.Context(), email, fields); err != nil {
		if h.logger != nil {
			h.logger.Error().Str("error", err.Error()).Msg("user-api-value update error")
		}
		WriteError(w, http.StatusInternalServerError, msgAPIValueSaveFailed)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": msgAPIValueSaved,
		"api_at":  apiAt,
	})
}
