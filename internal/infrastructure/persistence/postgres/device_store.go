package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/posbridge/moto-gateway/internal/domain"
)

type DeviceStore struct {
	pool *pgxpool.Pool
}

func NewDeviceStore(pool *pgxpool.Pool) *DeviceStore {
	return &DeviceStore{pool: pool}
}

func (s *DeviceStore) Put(ctx context.Context, device domain.Device) error {
	doc, err := json.Marshal(device)
	if err != nil {
		return fmt.Errorf("encoding device: %w", err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO moto_devices (id, doc) VALUES ($1, $2)
		 ON CONFLICT (id) DO UPDATE SET doc = EXCLUDED.doc`,
		device.ID, doc,
	)
	if err != nil {
		return fmt.Errorf("upserting device: %w", err)
	}
	return nil
}

func (s *DeviceStore) List(ctx context.Context) ([]domain.Device, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT doc FROM moto_devices ORDER BY doc->>'connectedAt'`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing devices: %w", err)
	}
	defer rows.Close()

	var devices []domain.Device
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scanning device: %w", err)
		}
		var device domain.Device
		if err := json.Unmarshal(doc, &device); err != nil {
			return nil, fmt.Errorf("decoding device: %w", err)
		}
		devices = append(devices, device)
	}
	return devices, rows.Err()
}

func (s *DeviceStore) FindByID(ctx context.Context, id string) (*domain.Device, error) {
	return s.findOne(ctx, `SELECT doc FROM moto_devices WHERE id = $1`, id)
}

func (s *DeviceStore) FindByURL(ctx context.Context, deviceURL string) (*domain.Device, error) {
	return s.findOne(ctx, `SELECT doc FROM moto_devices WHERE doc->>'deviceUrl' = $1`, deviceURL)
}

func (s *DeviceStore) findOne(ctx context.Context, query string, arg any) (*domain.Device, error) {
	var doc []byte
	err := s.pool.QueryRow(ctx, query, arg).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrDeviceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("finding device: %w", err)
	}

	var device domain.Device
	if err := json.Unmarshal(doc, &device); err != nil {
		return nil, fmt.Errorf("decoding device: %w", err)
	}
	return &device, nil
}
