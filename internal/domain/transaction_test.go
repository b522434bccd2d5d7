package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/posbridge/moto-gateway/internal/domain"
)

func TestMaskCardNumber(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"full pan", "1234567890123456", "************3456"},
		{"spaced pan keeps only trailing four", "1234 5678 9012 3456", "***************3456"},
		{"four chars pass through", "1234", "1234"},
		{"short input passes through", "12", "12"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.MaskCardNumber(tt.input))
		})
	}
}

func TestNewTransaction(t *testing.T) {
	t.Run("builds a masked pending draft", func(t *testing.T) {
		sub := validSubmission()
		tx := domain.NewTransaction(sub)

		assert.NotEmpty(t, tx.ID)
		assert.Equal(t, domain.TransactionTypeMOTO, tx.Type)
		assert.Equal(t, domain.ProtocolVersion, tx.Protocol)
		assert.Equal(t, domain.StatusPending, tx.Status)
		assert.NotZero(t, tx.Timestamp)

		assert.Equal(t, "************3456", tx.CardNumber)
		assert.Equal(t, "***", tx.CVV)
		assert.Equal(t, "12/25", tx.ExpiryDate)
		assert.Equal(t, "MAX MUSTERMANN", tx.CardHolder)
		assert.Equal(t, 10.50, tx.Amount)
		assert.Equal(t, "EUR", tx.Currency)
		assert.Equal(t, "123456", tx.ApprovalCode)
	})

	t.Run("defaults currency to EUR", func(t *testing.T) {
		sub := validSubmission()
		sub.Currency = ""
		tx := domain.NewTransaction(sub)
		assert.Equal(t, "EUR", tx.Currency)
	})

	t.Run("generates distinct ids", func(t *testing.T) {
		a := domain.NewTransaction(validSubmission())
		b := domain.NewTransaction(validSubmission())
		require.NotEqual(t, a.ID, b.ID)
	})
}

func TestSummarize(t *testing.T) {
	tx := domain.NewTransaction(validSubmission())
	tx.Status = domain.StatusApproved

	summary := tx.Summarize()
	assert.Equal(t, tx.ID, summary.ID)
	assert.Equal(t, domain.StatusApproved, summary.Status)
	assert.Equal(t, tx.Amount, summary.Amount)
	assert.Equal(t, tx.Currency, summary.Currency)
	assert.Equal(t, tx.ApprovalCode, summary.ApprovalCode)
	assert.Equal(t, tx.Timestamp, summary.Timestamp)
}

func TestSettingsPatchApply(t *testing.T) {
	settings := domain.Settings{
		APIURL:     "http://old.example",
		APIKey:     "old-key",
		DeviceID:   "dev-1",
		DeviceName: "POS Device 1",
	}

	t.Run("absent fields stay untouched", func(t *testing.T) {
		updated := domain.SettingsPatch{}.Apply(settings)
		assert.Equal(t, settings, updated)
	})

	t.Run("set fields overwrite, including empty strings", func(t *testing.T) {
		empty := ""
		name := "Kasse 2"
		updated := domain.SettingsPatch{APIURL: &empty, DeviceName: &name}.Apply(settings)

		assert.Equal(t, "", updated.APIURL)
		assert.Equal(t, "old-key", updated.APIKey)
		assert.Equal(t, "dev-1", updated.DeviceID)
		assert.Equal(t, "Kasse 2", updated.DeviceName)
	})
}
