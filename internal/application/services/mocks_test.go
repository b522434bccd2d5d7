package services_test

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/posbridge/moto-gateway/internal/application"
	"github.com/posbridge/moto-gateway/internal/domain"
)

// Mock collaborators for the service tests. Every method delegates to an
// overridable Fn field when set, with a working in-memory default.

type mockTransactionStore struct {
	mu      sync.Mutex
	records []domain.Transaction

	AppendFn func(ctx context.Context, tx domain.Transaction) error
}

func newMockTransactionStore() *mockTransactionStore {
	return &mockTransactionStore{}
}

func (m *mockTransactionStore) Append(ctx context.Context, tx domain.Transaction) error {
	if m.AppendFn != nil {
		return m.AppendFn(ctx, tx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, tx)
	return nil
}

func (m *mockTransactionStore) List(context.Context) ([]domain.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Transaction, len(m.records))
	copy(out, m.records)
	return out, nil
}

func (m *mockTransactionStore) FindByID(_ context.Context, id string) (*domain.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.records {
		if m.records[i].ID == id {
			return &m.records[i], nil
		}
	}
	return nil, domain.ErrTransactionNotFound
}

type mockDeviceStore struct {
	mu      sync.Mutex
	devices []domain.Device

	PutFn func(ctx context.Context, device domain.Device) error
}

func newMockDeviceStore() *mockDeviceStore {
	return &mockDeviceStore{}
}

func (m *mockDeviceStore) Put(ctx context.Context, device domain.Device) error {
	if m.PutFn != nil {
		return m.PutFn(ctx, device)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.devices {
		if m.devices[i].ID == device.ID {
			m.devices[i] = device
			return nil
		}
	}
	m.devices = append(m.devices, device)
	return nil
}

func (m *mockDeviceStore) List(context.Context) ([]domain.Device, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Device, len(m.devices))
	copy(out, m.devices)
	return out, nil
}

func (m *mockDeviceStore) FindByID(_ context.Context, id string) (*domain.Device, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.devices {
		if m.devices[i].ID == id {
			return &m.devices[i], nil
		}
	}
	return nil, domain.ErrDeviceNotFound
}

func (m *mockDeviceStore) FindByURL(_ context.Context, deviceURL string) (*domain.Device, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.devices {
		if m.devices[i].DeviceURL == deviceURL {
			return &m.devices[i], nil
		}
	}
	return nil, domain.ErrDeviceNotFound
}

type mockSettingsStore struct {
	mu       sync.Mutex
	settings domain.Settings

	GetFn func(ctx context.Context) (domain.Settings, error)
}

func newMockSettingsStore(settings domain.Settings) *mockSettingsStore {
	return &mockSettingsStore{settings: settings}
}

func (m *mockSettingsStore) Get(ctx context.Context) (domain.Settings, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.settings, nil
}

func (m *mockSettingsStore) Update(_ context.Context, patch domain.SettingsPatch) (domain.Settings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings = patch.Apply(m.settings)
	return m.settings, nil
}

type mockProcessorClient struct {
	ProcessFn func(ctx context.Context, endpoint application.ProcessorEndpoint, tx domain.Transaction, identity application.DeviceIdentity) (*application.ProcessorResult, error)

	mu    sync.Mutex
	calls int
}

func (m *mockProcessorClient) Process(ctx context.Context, endpoint application.ProcessorEndpoint, tx domain.Transaction, identity application.DeviceIdentity) (*application.ProcessorResult, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.ProcessFn != nil {
		return m.ProcessFn(ctx, endpoint, tx, identity)
	}
	return &application.ProcessorResult{Success: true, Raw: json.RawMessage(`{"success":true}`)}, nil
}

func (m *mockProcessorClient) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

type mockPeerClient struct {
	ConnectFn func(ctx context.Context, baseURL string, hello application.PeerHello) error
	RelayFn   func(ctx context.Context, baseURL string, submission []byte) (json.RawMessage, error)

	mu       sync.Mutex
	connects []application.PeerHello
}

func (m *mockPeerClient) Connect(ctx context.Context, baseURL string, hello application.PeerHello) error {
	m.mu.Lock()
	m.connects = append(m.connects, hello)
	m.mu.Unlock()
	if m.ConnectFn != nil {
		return m.ConnectFn(ctx, baseURL, hello)
	}
	return nil
}

func (m *mockPeerClient) Relay(ctx context.Context, baseURL string, submission []byte) (json.RawMessage, error) {
	if m.RelayFn != nil {
		return m.RelayFn(ctx, baseURL, submission)
	}
	return json.RawMessage(`{"success":true}`), nil
}
