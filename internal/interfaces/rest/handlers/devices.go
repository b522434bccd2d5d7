package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/posbridge/moto-gateway/internal/application"
	"github.com/posbridge/moto-gateway/internal/domain"
	"github.com/posbridge/moto-gateway/internal/interfaces/rest"
)

type registerDeviceRequest struct {
	DeviceURL  string `json:"deviceUrl"`
	DeviceName string `json:"deviceName"`
	DeviceID   string `json:"deviceId"`
}

func (h *Handlers) registerDevice(w http.ResponseWriter, r *http.Request) {
	var req registerDeviceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rest.WriteError(w, h.logger, application.NewValidationError("invalid request body"))
		return
	}

	result, err := h.devices.Register(r.Context(), req.DeviceURL, req.DeviceName, req.DeviceID)
	if err != nil {
		rest.WriteError(w, h.logger, err)
		return
	}

	message := "device connected"
	if result.AlreadyRegistered {
		message = "device already registered"
	}
	rest.WriteJSON(w, http.StatusOK, rest.DeviceResponse{
		Success: true,
		Message: message,
		Device:  result.Device,
	})
}

type connectDeviceRequest struct {
	DeviceID   string `json:"deviceId"`
	DeviceName string `json:"deviceName"`
	DeviceURL  string `json:"deviceUrl"`
}

func (h *Handlers) acceptConnection(w http.ResponseWriter, r *http.Request) {
	var req connectDeviceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rest.WriteError(w, h.logger, application.NewValidationError("invalid request body"))
		return
	}

	device, err := h.devices.AcceptConnection(r.Context(), req.DeviceID, req.DeviceName, req.DeviceURL)
	if err != nil {
		rest.WriteError(w, h.logger, err)
		return
	}

	rest.WriteJSON(w, http.StatusOK, rest.DeviceResponse{
		Success: true,
		Message: "connection accepted",
		Device:  *device,
	})
}

func (h *Handlers) listDevices(w http.ResponseWriter, r *http.Request) {
	devices, err := h.devices.List(r.Context())
	if err != nil {
		rest.WriteError(w, h.logger, err)
		return
	}
	if devices == nil {
		devices = []domain.Device{}
	}
	rest.WriteJSON(w, http.StatusOK, devices)
}

// relayTransaction forwards the raw body untouched: validation is the
// receiving peer's job, and its verdict comes back verbatim.
func (h *Handlers) relayTransaction(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		rest.WriteError(w, h.logger, application.NewValidationError("invalid request body"))
		return
	}

	resp, err := h.devices.Relay(r.Context(), chi.URLParam(r, "deviceID"), body)
	if err != nil {
		rest.WriteError(w, h.logger, err)
		return
	}

	rest.WriteJSON(w, http.StatusOK, rest.RelayResponse{
		Success:  true,
		Response: resp,
	})
}
