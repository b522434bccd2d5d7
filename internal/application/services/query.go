package services

import (
	"context"
	"errors"

	"github.com/posbridge/moto-gateway/internal/application"
	"github.com/posbridge/moto-gateway/internal/domain"
)

type QueryService struct {
	transactions application.TransactionStore
}

func NewQueryService(transactions application.TransactionStore) *QueryService {
	return &QueryService{transactions: transactions}
}

// ListTransactions returns the history most-recent-first.
func (s *QueryService) ListTransactions(ctx context.Context) ([]domain.Transaction, error) {
	records, err := s.transactions.List(ctx)
	if err != nil {
		return nil, application.NewInternalError(err)
	}

	reversed := make([]domain.Transaction, len(records))
	for i, tx := range records {
		reversed[len(records)-1-i] = tx
	}
	return reversed, nil
}

func (s *QueryService) FindTransaction(ctx context.Context, id string) (*domain.Transaction, error) {
	tx, err := s.transactions.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrTransactionNotFound) {
			return nil, application.NewNotFoundError("transaction not found")
		}
		return nil, application.NewInternalError(err)
	}
	return tx, nil
}
