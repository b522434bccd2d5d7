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

type TransactionStore struct {
	pool *pgxpool.Pool
}

func NewTransactionStore(pool *pgxpool.Pool) *TransactionStore {
	return &TransactionStore{pool: pool}
}

func (s *TransactionStore) Append(ctx context.Context, tx domain.Transaction) error {
	doc, err := json.Marshal(tx)
	if err != nil {
		return fmt.Errorf("encoding transaction: %w", err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO moto_transactions (id, doc) VALUES ($1, $2)`,
		tx.ID, doc,
	)
	if err != nil {
		return fmt.Errorf("inserting transaction: %w", err)
	}
	return nil
}

func (s *TransactionStore) List(ctx context.Context) ([]domain.Transaction, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT doc FROM moto_transactions ORDER BY seq`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	var records []domain.Transaction
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}
		var tx domain.Transaction
		if err := json.Unmarshal(doc, &tx); err != nil {
			return nil, fmt.Errorf("decoding transaction: %w", err)
		}
		records = append(records, tx)
	}
	return records, rows.Err()
}

func (s *TransactionStore) FindByID(ctx context.Context, id string) (*domain.Transaction, error) {
	var doc []byte
	err := s.pool.QueryRow(ctx,
		`SELECT doc FROM moto_transactions WHERE id = $1`,
		id,
	).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrTransactionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("finding transaction: %w", err)
	}

	var tx domain.Transaction
	if err := json.Unmarshal(doc, &tx); err != nil {
		return nil, fmt.Errorf("decoding transaction: %w", err)
	}
	return &tx, nil
}
