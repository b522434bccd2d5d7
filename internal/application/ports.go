package application

import (
	"context"
	"encoding/json"

	"github.com/posbridge/moto-gateway/internal/domain"
)

// TransactionStore is the port for transaction persistence. Records are
// append-only: nothing in the gateway updates or deletes one after Append.
type TransactionStore interface {
	Append(ctx context.Context, tx domain.Transaction) error
	// List returns records in insertion order.
	List(ctx context.Context) ([]domain.Transaction, error)
	// FindByID returns domain.ErrTransactionNotFound for unknown ids.
	FindByID(ctx context.Context, id string) (*domain.Transaction, error)
}

// DeviceStore is the port for the peer-device directory.
type DeviceStore interface {
	// Put inserts or overwrites the entry with the same id.
	Put(ctx context.Context, device domain.Device) error
	List(ctx context.Context) ([]domain.Device, error)
	// FindByID returns domain.ErrDeviceNotFound for unknown ids.
	FindByID(ctx context.Context, id string) (*domain.Device, error)
	// FindByURL returns domain.ErrDeviceNotFound when no entry has the URL.
	FindByURL(ctx context.Context, deviceURL string) (*domain.Device, error)
}

// SettingsStore is the port for the singleton gateway configuration.
type SettingsStore interface {
	Get(ctx context.Context) (domain.Settings, error)
	// Update merges the patch and returns the resulting settings.
	Update(ctx context.Context, patch domain.SettingsPatch) (domain.Settings, error)
}

// ProcessorEndpoint locates the external payment processor for one call.
// It is resolved from Settings per submission, not fixed at construction,
// because the operator can repoint the gateway at any time.
type ProcessorEndpoint struct {
	BaseURL string
	APIKey  string
}

// DeviceIdentity is the gateway's own identity, attached to outbound
// processor calls.
type DeviceIdentity struct {
	DeviceID   string
	DeviceName string
}

// ProcessorResult is the processor's verdict plus its raw reply body.
type ProcessorResult struct {
	Success bool
	Raw     json.RawMessage
}

// ProcessorClient is the port for the external payment-processing API.
// A transport failure, timeout, or non-2xx reply comes back as an error;
// the caller converts it into a terminal status, never a retry.
type ProcessorClient interface {
	Process(ctx context.Context, endpoint ProcessorEndpoint, tx domain.Transaction, identity DeviceIdentity) (*ProcessorResult, error)
}

// PeerHello announces this gateway to a peer during registration.
type PeerHello struct {
	DeviceID   string `json:"deviceId"`
	DeviceName string `json:"deviceName"`
	DeviceURL  string `json:"deviceUrl"`
}

// PeerClient is the port for talking to peer point-of-sale devices.
type PeerClient interface {
	// Connect announces this gateway to the peer's connect endpoint.
	Connect(ctx context.Context, baseURL string, hello PeerHello) error
	// Relay forwards a raw submission body to the peer's MOTO endpoint and
	// returns the peer's raw response.
	Relay(ctx context.Context, baseURL string, submission []byte) (json.RawMessage, error)
}
