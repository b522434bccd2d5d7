package jsonfile

import (
	"context"
	"path/filepath"

	"github.com/posbridge/moto-gateway/internal/domain"
)

const devicesFile = "devices.json"

type DeviceStore struct {
	records *collection[domain.Device]
}

func NewDeviceStore(dataDir string) (*DeviceStore, error) {
	records, err := newCollection[domain.Device](filepath.Join(dataDir, devicesFile))
	if err != nil {
		return nil, err
	}
	return &DeviceStore{records: records}, nil
}

// Put inserts the device, replacing any existing entry with the same id.
func (s *DeviceStore) Put(_ context.Context, device domain.Device) error {
	return s.records.Update(func(items []domain.Device) ([]domain.Device, error) {
		for i := range items {
			if items[i].ID == device.ID {
				items[i] = device
				return items, nil
			}
		}
		return append(items, device), nil
	})
}

func (s *DeviceStore) List(_ context.Context) ([]domain.Device, error) {
	return s.records.Load()
}

func (s *DeviceStore) FindByID(_ context.Context, id string) (*domain.Device, error) {
	items, err := s.records.Load()
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == id {
			return &items[i], nil
		}
	}
	return nil, domain.ErrDeviceNotFound
}

func (s *DeviceStore) FindByURL(_ context.Context, deviceURL string) (*domain.Device, error) {
	items, err := s.records.Load()
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].DeviceURL == deviceURL {
			return &items[i], nil
		}
	}
	return nil, domain.ErrDeviceNotFound
}
