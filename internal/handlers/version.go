package handlers

import (
	"net/http"

	"github.com/bobmcallan/linweb-api/internal/common"
)

// VersionHandler serves /api/version-check: the program_version row, no
// authentication.
type VersionHandler struct {
	logger *common.Logger
	store  VersionStore
}

// NewVersionHandler creates a new version handler.
func NewVersionHandler(logger *common.Logger, store VersionStore) *VersionHandler {
	return &VersionHandler{logger: logger, store: store}
}

// ServeHTTP handles GET/POST /api/version-check.
func (h *VersionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodPost) {
		return
	}

	version, err := h.store.GetVersion(r.Context())
	if err != nil {
		if h.logger != nil {
			h.logger.Error().Str("error", err.Error()).Msg("version-check fetch error")
		}
		WriteError(w, http.StatusInternalServerError, msgVersionFetchFailed)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"version": version,
	})
}
