package services

import (
	"context"
	"log/slog"

	"github.com/posbridge/moto-gateway/internal/application"
	"github.com/posbridge/moto-gateway/internal/domain"
)

// SubmitService runs the full submission pipeline: validation, masking,
// dispatch, status resolution, persistence. It holds no state of its own;
// settings are re-read on every call so operator changes apply immediately.
type SubmitService struct {
	transactions application.TransactionStore
	settings     application.SettingsStore
	processor    application.ProcessorClient
	logger       *slog.Logger
}

func NewSubmitService(
	transactions application.TransactionStore,
	settings application.SettingsStore,
	processor application.ProcessorClient,
	logger *slog.Logger,
) *SubmitService {
	return &SubmitService{
		transactions: transactions,
		settings:     settings,
		processor:    processor,
		logger:       logger,
	}
}

// Submit validates a raw submission, resolves its terminal status, and
// appends the record. Validation failures create no record. Processor
// failures are terminal outcomes, not request failures: the record is
// still written with status "error".
func (s *SubmitService) Submit(ctx context.Context, sub domain.Submission) (*domain.Transaction, error) {
	if verr := sub.Validate(); verr != nil {
		return nil, application.NewValidationError(verr.Message)
	}

	tx := domain.NewTransaction(sub)

	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, application.NewInternalError(err)
	}

	s.dispatch(ctx, &tx, settings)

	if err := s.transactions.Append(ctx, tx); err != nil {
		return nil, application.NewInternalError(err)
	}

	s.logger.Info("transaction recorded",
		"transaction_id", tx.ID,
		"status", tx.Status,
		"amount", tx.Amount,
		"currency", tx.Currency,
		"local", tx.LocalProcessing,
	)

	return &tx, nil
}

// dispatchRoute is the outcome of the once-per-submission routing decision.
type dispatchRoute struct {
	external bool
	endpoint application.ProcessorEndpoint
}

func resolveRoute(settings domain.Settings) dispatchRoute {
	if settings.APIURL == "" {
		return dispatchRoute{}
	}
	return dispatchRoute{
		external: true,
		endpoint: application.ProcessorEndpoint{
			BaseURL: settings.APIURL,
			APIKey:  settings.APIKey,
		},
	}
}

// dispatch resolves the draft's terminal status. With no processor
// configured the transaction is approved locally. With one configured,
// the processor's verdict decides approved/declined; any transport or
// protocol failure becomes status "error" with the cause attached.
func (s *SubmitService) dispatch(ctx context.Context, tx *domain.Transaction, settings domain.Settings) {
	route := resolveRoute(settings)

	if !route.external {
		tx.Status = domain.StatusApproved
		tx.LocalProcessing = true
		return
	}

	identity := application.DeviceIdentity{
		DeviceID:   settings.DeviceID,
		DeviceName: settings.DeviceName,
	}

	result, err := s.processor.Process(ctx, route.endpoint, *tx, identity)
	if err != nil {
		s.logger.Error("external processor call failed",
			"transaction_id", tx.ID,
			"api_url", route.endpoint.BaseURL,
			"error", err,
		)
		tx.Status = domain.StatusError
		tx.Error = err.Error()
		return
	}

	if result.Success {
		tx.Status = domain.StatusApproved
	} else {
		tx.Status = domain.StatusDeclined
	}
	tx.ExternalResponse = result.Raw
}
