package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/posbridge/moto-gateway/internal/domain"
)

func validSubmission() domain.Submission {
	return domain.Submission{
		CardNumber:   "1234567890123456",
		ExpiryDate:   "12/25",
		CVV:          "123",
		CardHolder:   "MAX MUSTERMANN",
		Amount:       10.50,
		ApprovalCode: "123456",
		Currency:     "EUR",
	}
}

func TestSubmissionValidate(t *testing.T) {
	t.Run("accepts a valid submission", func(t *testing.T) {
		assert.Nil(t, validSubmission().Validate())
	})

	t.Run("accepts 4-digit cvv and 4-char approval code", func(t *testing.T) {
		sub := validSubmission()
		sub.CVV = "1234"
		sub.ApprovalCode = "1234"
		assert.Nil(t, sub.Validate())
	})

	tests := []struct {
		name    string
		mutate  func(*domain.Submission)
		field   string
		message string
	}{
		{
			name:    "short card number",
			mutate:  func(s *domain.Submission) { s.CardNumber = "123" },
			field:   "cardNumber",
			message: "card number must be 16 digits",
		},
		{
			name:    "missing card number",
			mutate:  func(s *domain.Submission) { s.CardNumber = "" },
			field:   "cardNumber",
			message: "card number must be 16 digits",
		},
		{
			name:    "expiry without slash",
			mutate:  func(s *domain.Submission) { s.ExpiryDate = "1225" },
			field:   "expiryDate",
			message: "expiry date must be in MM/YY format",
		},
		{
			name:    "missing expiry",
			mutate:  func(s *domain.Submission) { s.ExpiryDate = "" },
			field:   "expiryDate",
			message: "expiry date must be in MM/YY format",
		},
		{
			name:   "cvv too short",
			mutate: func(s *domain.Submission) { s.CVV = "12" },
			field:  "cvv",
		},
		{
			name:   "cvv too long",
			mutate: func(s *domain.Submission) { s.CVV = "12345" },
			field:  "cvv",
		},
		{
			name:    "empty card holder",
			mutate:  func(s *domain.Submission) { s.CardHolder = "" },
			field:   "cardHolder",
			message: "card holder is required",
		},
		{
			name:   "zero amount",
			mutate: func(s *domain.Submission) { s.Amount = 0 },
			field:  "amount",
		},
		{
			name:   "negative amount",
			mutate: func(s *domain.Submission) { s.Amount = -5 },
			field:  "amount",
		},
		{
			name:   "approval code of 5 chars",
			mutate: func(s *domain.Submission) { s.ApprovalCode = "12345" },
			field:  "approvalCode",
		},
		{
			name:   "missing approval code",
			mutate: func(s *domain.Submission) { s.ApprovalCode = "" },
			field:  "approvalCode",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := validSubmission()
			tt.mutate(&sub)

			verr := sub.Validate()
			require.NotNil(t, verr)
			assert.Equal(t, tt.field, verr.Field)
			if tt.message != "" {
				assert.Equal(t, tt.message, verr.Message)
			}
		})
	}

	t.Run("stops at the first failing rule", func(t *testing.T) {
		sub := domain.Submission{}
		verr := sub.Validate()
		require.NotNil(t, verr)
		assert.Equal(t, "cardNumber", verr.Field)
	})
}

func TestAmountUnmarshal(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
	}{
		{"json number", `{"amount": 10.5}`, 10.5},
		{"numeric string", `{"amount": "10.5"}`, 10.5},
		{"integer string", `{"amount": "42"}`, 42},
		{"unparsable string coerces to zero", `{"amount": "abc"}`, 0},
		{"null coerces to zero", `{"amount": null}`, 0},
		{"absent stays zero", `{}`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var sub domain.Submission
			require.NoError(t, json.Unmarshal([]byte(tt.input), &sub))
			assert.Equal(t, tt.want, float64(sub.Amount))
		})
	}
}
