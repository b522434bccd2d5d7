package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/posbridge/moto-gateway/internal/application"
	"github.com/posbridge/moto-gateway/internal/domain"
	"github.com/posbridge/moto-gateway/internal/interfaces/rest"
)

func (h *Handlers) getConfig(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settings.Get(r.Context())
	if err != nil {
		rest.WriteError(w, h.logger, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, settings)
}

func (h *Handlers) updateConfig(w http.ResponseWriter, r *http.Request) {
	var patch domain.SettingsPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		rest.WriteError(w, h.logger, application.NewValidationError("invalid request body"))
		return
	}

	settings, err := h.settings.Update(r.Context(), patch)
	if err != nil {
		rest.WriteError(w, h.logger, err)
		return
	}

	rest.WriteJSON(w, http.StatusOK, rest.ConfigResponse{
		Success: true,
		Config:  settings,
	})
}
