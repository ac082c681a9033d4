package handlers

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"

	"github.com/bobmcallan/linweb-api/internal/common"
	"github.com/bobmcallan/linweb-api/internal/models"
	"github.com/bobmcallan/linweb-api/internal/request"
)

// actionUpdateToken regenerates the product token before returning it.
const actionUpdateToken = "update_token"

// UserInfoHandler serves /api/user-info and /api/user-info-check: the
// subscription slice of the profile row (product_token, product_period).
// These endpoints never accepted the id/pw credential aliases.
type UserInfoHandler struct {
	logger *common.Logger
	auth   Authenticator
	store  ProfileStore
}

// NewUserInfoHandler creates a new user-info handler.
func NewUserInfoHandler(logger *common.Logger, auth Authenticator, store ProfileStore) *UserInfoHandler {
	return &UserInfoHandler{logger: logger, auth: auth, store: store}
}

// HandleInfo handles GET/POST /api/user-info.
// With action=update_token the product token is regenerated and persisted
// before being returned.
func (h *UserInfoHandler) HandleInfo(w http.ResponseWriter, r *http.Request) {
	params, ok := h.authenticate(w, r)
	if !ok {
		return
	}

	if params.action == actionUpdateToken {
		h.updateToken(w, r, params.email)
		return
	}

	info, err := h.store.GetProduct(r.Context(), params.email)
	if err != nil {
		if h.logger != nil {
			h.logger.Error().Str("error", err.Error()).Msg("user-info fetch error")
		}
		WriteError(w, http.StatusInternalServerError, msgUserInfoFetchFailed)
		return
	}

	writeProductInfo(w, info)
}

// HandleCheck handles GET/POST /api/user-info-check, the read-only variant.
func (h *UserInfoHandler) HandleCheck(w http.ResponseWriter, r *http.Request) {
	params, ok := h.authenticate(w, r)
	if !ok {
		return
	}

	info, err := h.store.GetProduct(r.Context(), params.email)
	if err != nil {
		if h.logger != nil {
			h.logger.Error().Str("error", err.Error()).Msg("user-info-check fetch error")
		}
		WriteError(w, http.StatusInternalServerError, msgUserInfoFetchFailed)
		return
	}

	writeProductInfo(w, info)
}

type authedParams struct {
	email  string
	action string
}

// authenticate runs the shared front half of both endpoints: method check,
// strict normalization, credential presence, provider sign-in. Returns
// ok=false when a response has already been written.
func (h *UserInfoHandler) authenticate(w http.ResponseWriter, r *http.Request) (authedParams, bool) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodPost) {
		return authedParams{}, false
	}

	params, err := request.ParseStrict(r)
	if err != nil {
		if h.logger != nil {
			h.logger.Error().Str("error", err.Error()).Msg("user-info parse error")
		}
		WriteError(w, http.StatusInternalServerError, msgServerError)
		return authedParams{}, false
	}

	if !params.HasCredentials() {
		WriteError(w, http.StatusBadRequest, msgEmailPasswordRequired)
		return authedParams{}, false
	}

	authEmail, err := h.auth.SignInWithPassword(r.Context(), params.Email, params.Password)
	if err != nil {
		writeAuthError(w, h.logger, err)
		return authedParams{}, false
	}

	return authedParams{
		email:  rowKeyEmail(authEmail, params.Email),
		action: params.Action,
	}, true
}

func (h *UserInfoHandler) updateToken(w http.ResponseWriter, r *http.Request, email string) {
	token, err := generateProductToken()
	if err != nil {
		if h.logger != nil {
			h.logger.Error().Str("error", err.Error()).Msg("token generation failed")
		}
		WriteError(w, http.StatusInternalServerError, msgServerError)
		return
	}

	info, err := h.store.UpdateProductToken(r.Context(), email, token)
	if err != nil {
		if h.logger != nil {
			h.logger.Error().Str("error", err.Error()).Msg("update product_token error")
		}
		WriteError(w, http.StatusInternalServerError, msgTokenUpdateFailed)
		return
	}

	// The store echoes the persisted row; fall back to the token just
	// written if the representation came back without one.
	if info.Token == nil {
		info = &models.ProductInfo{Token: &token, Period: info.Period}
	}

	writeProductInfo(w, info)
}

func writeProductInfo(w http.ResponseWriter, info *models.ProductInfo) {
	WriteJSON(w, http.StatusOK, map[string]any{
		"success":        true,
		"product_token":  info.Token,
		"product_period": info.Period,
	})
}

// generateProductToken creates the credential-like opaque token handed to the
// client program: 32 bytes from a CSPRNG, hex-encoded.
func generateProductToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
