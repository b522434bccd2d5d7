// Package rest holds the HTTP response envelopes and the error mapping
// shared by all handlers.
package rest

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/posbridge/moto-gateway/internal/application"
	"github.com/posbridge/moto-gateway/internal/domain"
)

// SubmitResponse answers a MOTO submission. Success mirrors the terminal
// status: only "approved" counts.
type SubmitResponse struct {
	Success     bool           `json:"success"`
	Transaction domain.Summary `json:"transaction"`
}

type ConfigResponse struct {
	Success bool            `json:"success"`
	Config  domain.Settings `json:"config"`
}

type DeviceResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Device  domain.Device `json:"device"`
}

// RelayResponse wraps whatever the peer answered, verbatim.
type RelayResponse struct {
	Success  bool            `json:"success"`
	Response json.RawMessage `json:"response"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// WriteError maps application errors to HTTP responses. Internal causes
// are logged here and never leaked to the client.
func WriteError(w http.ResponseWriter, logger *slog.Logger, err error) {
	status := application.ToHTTPStatus(err)
	if status >= http.StatusInternalServerError {
		logger.Error("request failed",
			"code", application.ToErrorCode(err),
			"error", err,
		)
	}

	WriteJSON(w, status, ErrorResponse{
		Success: false,
		Error:   application.ClientMessage(err),
	})
}
