package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/posbridge/moto-gateway/internal/application"
	"github.com/posbridge/moto-gateway/internal/domain"
	"github.com/posbridge/moto-gateway/internal/interfaces/rest"
)

func (h *Handlers) submitTransaction(w http.ResponseWriter, r *http.Request) {
	var sub domain.Submission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		rest.WriteError(w, h.logger, application.NewValidationError("invalid request body"))
		return
	}

	tx, err := h.submit.Submit(r.Context(), sub)
	if err != nil {
		rest.WriteError(w, h.logger, err)
		return
	}

	rest.WriteJSON(w, http.StatusOK, rest.SubmitResponse{
		Success:     tx.Status == domain.StatusApproved,
		Transaction: tx.Summarize(),
	})
}

func (h *Handlers) listTransactions(w http.ResponseWriter, r *http.Request) {
	records, err := h.query.ListTransactions(r.Context())
	if err != nil {
		rest.WriteError(w, h.logger, err)
		return
	}
	if records == nil {
		records = []domain.Transaction{}
	}
	rest.WriteJSON(w, http.StatusOK, records)
}

func (h *Handlers) getTransaction(w http.ResponseWriter, r *http.Request) {
	tx, err := h.query.FindTransaction(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		rest.WriteError(w, h.logger, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, tx)
}
