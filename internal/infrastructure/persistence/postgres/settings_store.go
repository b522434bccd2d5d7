package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/google/uuid"

	"github.com/posbridge/moto-gateway/internal/domain"
)

type SettingsStore struct {
	pool *pgxpool.Pool
}

// NewSettingsStore seeds the singleton row with defaults when absent.
// The generated deviceId survives restarts because the seed insert is a
// no-op once the row exists.
func NewSettingsStore(ctx context.Context, pool *pgxpool.Pool) (*SettingsStore, error) {
	defaults := domain.Settings{
		DeviceID:   uuid.New().String(),
		DeviceName: domain.DefaultSettingsDeviceName,
	}
	doc, err := json.Marshal(defaults)
	if err != nil {
		return nil, fmt.Errorf("encoding default settings: %w", err)
	}

	_, err = pool.Exec(ctx,
		`INSERT INTO moto_settings (id, doc) VALUES (1, $1)
		 ON CONFLICT (id) DO NOTHING`,
		doc,
	)
	if err != nil {
		return nil, fmt.Errorf("seeding settings: %w", err)
	}

	return &SettingsStore{pool: pool}, nil
}

func (s *SettingsStore) Get(ctx context.Context) (domain.Settings, error) {
	var doc []byte
	err := s.pool.QueryRow(ctx, `SELECT doc FROM moto_settings WHERE id = 1`).Scan(&doc)
	if err != nil {
		return domain.Settings{}, fmt.Errorf("reading settings: %w", err)
	}

	var settings domain.Settings
	if err := json.Unmarshal(doc, &settings); err != nil {
		return domain.Settings{}, fmt.Errorf("decoding settings: %w", err)
	}
	return settings, nil
}

// Update merges the patch inside a transaction so concurrent updates
// serialize on the row lock.
func (s *SettingsStore) Update(ctx context.Context, patch domain.SettingsPatch) (domain.Settings, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return domain.Settings{}, fmt.Errorf("beginning settings update: %w", err)
	}
	defer tx.Rollback(ctx)

	var doc []byte
	err = tx.QueryRow(ctx, `SELECT doc FROM moto_settings WHERE id = 1 FOR UPDATE`).Scan(&doc)
	if err != nil {
		return domain.Settings{}, fmt.Errorf("reading settings: %w", err)
	}

	var settings domain.Settings
	if err := json.Unmarshal(doc, &settings); err != nil {
		return domain.Settings{}, fmt.Errorf("decoding settings: %w", err)
	}

	settings = patch.Apply(settings)
	updated, err := json.Marshal(settings)
	if err != nil {
		return domain.Settings{}, fmt.Errorf("encoding settings: %w", err)
	}

	if _, err := tx.Exec(ctx, `UPDATE moto_settings SET doc = $1 WHERE id = 1`, updated); err != nil {
		return domain.Settings{}, fmt.Errorf("writing settings: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return domain.Settings{}, fmt.Errorf("committing settings update: %w", err)
	}
	return settings, nil
}
