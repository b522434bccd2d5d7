// Package handlers wires the gateway's HTTP surface onto the services.
package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/posbridge/moto-gateway/internal/application/services"
)

type Handlers struct {
	submit   *services.SubmitService
	query    *services.QueryService
	devices  *services.DeviceService
	settings *services.SettingsService
	logger   *slog.Logger
}

func NewHandlers(
	submit *services.SubmitService,
	query *services.QueryService,
	devices *services.DeviceService,
	settings *services.SettingsService,
	logger *slog.Logger,
) *Handlers {
	return &Handlers{
		submit:   submit,
		query:    query,
		devices:  devices,
		settings: settings,
		logger:   logger,
	}
}

func (h *Handlers) Routes(r chi.Router) {
	r.Get("/", h.root)
	r.Get("/api/test", h.apiTest)

	r.Get("/api/config", h.getConfig)
	r.Put("/api/config", h.updateConfig)

	r.Post("/api/transaction/moto", h.submitTransaction)
	r.Get("/api/transactions", h.listTransactions)
	r.Get("/api/transactions/{id}", h.getTransaction)

	r.Post("/api/devices/register", h.registerDevice)
	r.Post("/api/devices/connect", h.acceptConnection)
	r.Get("/api/devices", h.listDevices)
	r.Post("/api/devices/{deviceID}/transaction", h.relayTransaction)
}

func (h *Handlers) root(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("MOTO gateway running"))
}

func (h *Handlers) apiTest(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"message":"API running"}`))
}
