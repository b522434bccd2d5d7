// Package domain encodes MOTO transaction records and the rules for
// accepting them.
package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// TransactionStatus represents the terminal outcome of a submission.
// A record is given its status exactly once, before it is persisted.
type TransactionStatus string

const (
	StatusPending  TransactionStatus = "pending"
	StatusApproved TransactionStatus = "approved"
	StatusDeclined TransactionStatus = "declined"
	StatusError    TransactionStatus = "error"
)

const (
	// TransactionTypeMOTO is the only transaction type this gateway records.
	TransactionTypeMOTO = "MOTO"
	// ProtocolVersion labels the transaction format. It is an internal
	// convention, not an external standard.
	ProtocolVersion = "101.1"

	// DefaultCurrency applies when a submission carries no currency.
	DefaultCurrency = "EUR"
)

// Transaction is the persisted record of a MOTO submission. Card data is
// masked before the record is built; the plaintext PAN and CVV never reach
// the store. JSON field names are the wire contract shared with the
// frontend and with peer devices.
type Transaction struct {
	ID           string            `json:"id"`
	Type         string            `json:"type"`
	Protocol     string            `json:"protocol"`
	Timestamp    time.Time         `json:"timestamp"`
	CardNumber   string            `json:"cardNumber"`
	ExpiryDate   string            `json:"expiryDate"`
	CVV          string            `json:"cvv"`
	CardHolder   string            `json:"cardHolder"`
	Amount       float64           `json:"amount"`
	Currency     string            `json:"currency"`
	ApprovalCode string            `json:"approvalCode"`
	Status       TransactionStatus `json:"status"`

	// LocalProcessing marks records approved without an external processor.
	LocalProcessing bool `json:"localProcessing,omitempty"`
	// ExternalResponse carries the processor's raw reply, when one was made.
	ExternalResponse json.RawMessage `json:"externalResponse,omitempty"`
	// Error carries the transport failure description for status "error".
	Error string `json:"error,omitempty"`
}

// NewTransaction builds a pending draft record from a validated submission.
// Sensitive fields are masked here, so every later stage only ever sees the
// masked copy.
func NewTransaction(sub Submission) Transaction {
	currency := sub.Currency
	if currency == "" {
		currency = DefaultCurrency
	}

	return Transaction{
		ID:           uuid.New().String(),
		Type:         TransactionTypeMOTO,
		Protocol:     ProtocolVersion,
		Timestamp:    time.Now().UTC(),
		CardNumber:   MaskCardNumber(sub.CardNumber),
		ExpiryDate:   sub.ExpiryDate,
		CVV:          MaskCVV(),
		CardHolder:   sub.CardHolder,
		Amount:       float64(sub.Amount),
		Currency:     currency,
		ApprovalCode: sub.ApprovalCode,
		Status:       StatusPending,
	}
}

// Summary is the client-facing projection returned after a submission.
// It never exposes card data or internal error detail.
type Summary struct {
	ID           string            `json:"id"`
	Status       TransactionStatus `json:"status"`
	Amount       float64           `json:"amount"`
	Currency     string            `json:"currency"`
	ApprovalCode string            `json:"approvalCode"`
	Timestamp    time.Time         `json:"timestamp"`
}

// Summarize projects a record into its client-safe summary.
func (t Transaction) Summarize() Summary {
	return Summary{
		ID:           t.ID,
		Status:       t.Status,
		Amount:       t.Amount,
		Currency:     t.Currency,
		ApprovalCode: t.ApprovalCode,
		Timestamp:    t.Timestamp,
	}
}
