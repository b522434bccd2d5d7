package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/posbridge/moto-gateway/internal/application"
	"github.com/posbridge/moto-gateway/internal/domain"
)

// DeviceService handles both roles of the peer directory: registering with
// another gateway (initiator) and accepting an incoming registration
// (receiver), plus relaying submissions to a known peer.
type DeviceService struct {
	devices  application.DeviceStore
	settings application.SettingsStore
	peers    application.PeerClient
	baseURL  string
	logger   *slog.Logger
}

func NewDeviceService(
	devices application.DeviceStore,
	settings application.SettingsStore,
	peers application.PeerClient,
	baseURL string,
	logger *slog.Logger,
) *DeviceService {
	return &DeviceService{
		devices:  devices,
		settings: settings,
		peers:    peers,
		baseURL:  baseURL,
		logger:   logger,
	}
}

// RegisterResult distinguishes a fresh registration from the idempotent
// short-circuit on an already known deviceUrl.
type RegisterResult struct {
	Device            domain.Device
	AlreadyRegistered bool
}

// Register connects this gateway to a peer. Registering a deviceUrl that is
// already in the directory returns the existing entry without a second
// handshake. A failed handshake persists nothing.
func (s *DeviceService) Register(ctx context.Context, deviceURL, deviceName, deviceID string) (*RegisterResult, error) {
	if deviceURL == "" {
		return nil, application.NewValidationError("device url is required")
	}

	existing, err := s.devices.FindByURL(ctx, deviceURL)
	if err == nil {
		return &RegisterResult{Device: *existing, AlreadyRegistered: true}, nil
	}
	if !errors.Is(err, domain.ErrDeviceNotFound) {
		return nil, application.NewInternalError(err)
	}

	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, application.NewInternalError(err)
	}

	hello := application.PeerHello{
		DeviceID:   settings.DeviceID,
		DeviceName: settings.DeviceName,
		DeviceURL:  s.baseURL,
	}
	if err := s.peers.Connect(ctx, deviceURL, hello); err != nil {
		s.logger.Error("device handshake failed", "device_url", deviceURL, "error", err)
		return nil, application.NewUpstreamError(fmt.Sprintf("connection failed: %v", err), err)
	}

	if deviceID == "" {
		deviceID = uuid.New().String()
	}
	device := domain.NewDevice(deviceID, deviceURL, deviceName)
	if err := s.devices.Put(ctx, device); err != nil {
		return nil, application.NewInternalError(err)
	}

	s.logger.Info("device registered", "device_id", device.ID, "device_url", device.DeviceURL)
	return &RegisterResult{Device: device}, nil
}

// AcceptConnection is the receiver side of registration. It trusts the
// asserted identity and upserts by device id, overwriting any previous
// entry for that peer. There is no handshake secret to verify.
func (s *DeviceService) AcceptConnection(ctx context.Context, deviceID, deviceName, deviceURL string) (*domain.Device, error) {
	device := domain.NewDevice(deviceID, deviceURL, deviceName)
	if err := s.devices.Put(ctx, device); err != nil {
		return nil, application.NewInternalError(err)
	}

	s.logger.Info("device connection accepted", "device_id", device.ID, "device_url", device.DeviceURL)
	return &device, nil
}

func (s *DeviceService) List(ctx context.Context) ([]domain.Device, error) {
	devices, err := s.devices.List(ctx)
	if err != nil {
		return nil, application.NewInternalError(err)
	}
	return devices, nil
}

// Relay forwards a raw submission body to the peer identified by deviceID
// and returns the peer's raw response. Persistence happens on the peer:
// this side records nothing.
func (s *DeviceService) Relay(ctx context.Context, deviceID string, submission []byte) (json.RawMessage, error) {
	device, err := s.devices.FindByID(ctx, deviceID)
	if err != nil {
		if errors.Is(err, domain.ErrDeviceNotFound) {
			return nil, application.NewNotFoundError("device not found")
		}
		return nil, application.NewInternalError(err)
	}

	resp, err := s.peers.Relay(ctx, device.DeviceURL, submission)
	if err != nil {
		s.logger.Error("relay to peer failed", "device_id", deviceID, "device_url", device.DeviceURL, "error", err)
		return nil, application.NewUpstreamError(fmt.Sprintf("relay failed: %v", err), err)
	}
	return resp, nil
}
