package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"github.com/posbridge/moto-gateway/internal/domain"
)

const settingsFile = "config.json"

// SettingsStore holds the singleton configuration record. On first run it
// writes defaults with a freshly generated deviceId; the id stays stable
// from then on.
type SettingsStore struct {
	path string
	mu   sync.Mutex
}

func NewSettingsStore(dataDir string) (*SettingsStore, error) {
	s := &SettingsStore{path: filepath.Join(dataDir, settingsFile)}

	if _, err := os.Stat(s.path); errors.Is(err, fs.ErrNotExist) {
		defaults := domain.Settings{
			DeviceID:   uuid.New().String(),
			DeviceName: domain.DefaultSettingsDeviceName,
		}
		if err := writeFileAtomic(s.path, defaults); err != nil {
			return nil, fmt.Errorf("initializing %s: %w", settingsFile, err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("opening %s: %w", settingsFile, err)
	}

	return s, nil
}

func (s *SettingsStore) Get(_ context.Context) (domain.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readLocked()
}

func (s *SettingsStore) Update(_ context.Context, patch domain.SettingsPatch) (domain.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings, err := s.readLocked()
	if err != nil {
		return domain.Settings{}, err
	}

	settings = patch.Apply(settings)
	if err := writeFileAtomic(s.path, settings); err != nil {
		return domain.Settings{}, err
	}
	return settings, nil
}

func (s *SettingsStore) readLocked() (domain.Settings, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return domain.Settings{}, fmt.Errorf("reading %s: %w", settingsFile, err)
	}

	var settings domain.Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return domain.Settings{}, fmt.Errorf("decoding %s: %w", settingsFile, err)
	}
	return settings, nil
}
