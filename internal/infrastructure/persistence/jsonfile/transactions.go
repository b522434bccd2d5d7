package jsonfile

import (
	"context"
	"path/filepath"

	"github.com/posbridge/moto-gateway/internal/domain"
)

const transactionsFile = "transactions.json"

type TransactionStore struct {
	records *collection[domain.Transaction]
}

func NewTransactionStore(dataDir string) (*TransactionStore, error) {
	records, err := newCollection[domain.Transaction](filepath.Join(dataDir, transactionsFile))
	if err != nil {
		return nil, err
	}
	return &TransactionStore{records: records}, nil
}

func (s *TransactionStore) Append(_ context.Context, tx domain.Transaction) error {
	return s.records.Update(func(items []domain.Transaction) ([]domain.Transaction, error) {
		return append(items, tx), nil
	})
}

// List returns records in insertion order.
func (s *TransactionStore) List(_ context.Context) ([]domain.Transaction, error) {
	return s.records.Load()
}

func (s *TransactionStore) FindByID(_ context.Context, id string) (*domain.Transaction, error) {
	items, err := s.records.Load()
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == id {
			return &items[i], nil
		}
	}
	return nil, domain.ErrTransactionNotFound
}
