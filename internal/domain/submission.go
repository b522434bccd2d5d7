package domain

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
)

var expiryPattern = regexp.MustCompile(`^\d{2}/\d{2}$`)

// Amount accepts either a JSON number or a numeric string, the way POS
// frontends tend to send it. Unparsable input coerces to zero and fails
// the ">0" validation rule instead of aborting the decode.
type Amount float64

func (a *Amount) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*a = 0
		return nil
	}
	if len(s) >= 2 && s[0] == '"' {
		unquoted, err := strconv.Unquote(s)
		if err != nil {
			*a = 0
			return nil
		}
		s = strings.TrimSpace(unquoted)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*a = 0
		return nil
	}
	*a = Amount(v)
	return nil
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(float64(a))
}

// Submission is a raw MOTO transaction request as received from a client
// or a peer device. It is untrusted until Validate passes.
type Submission struct {
	CardNumber   string `json:"cardNumber"`
	ExpiryDate   string `json:"expiryDate"`
	CVV          string `json:"cvv"`
	CardHolder   string `json:"cardHolder"`
	Amount       Amount `json:"amount"`
	ApprovalCode string `json:"approvalCode"`
	Currency     string `json:"currency"`
}

// Validate checks the submission field by field, stopping at the first
// failure. The order and the one-message-per-rule shape are part of the
// client contract: the frontend surfaces the message verbatim.
func (s Submission) Validate() *ValidationError {
	if len(s.CardNumber) != 16 {
		return NewValidationError("cardNumber", "card number must be 16 digits")
	}
	if !expiryPattern.MatchString(s.ExpiryDate) {
		return NewValidationError("expiryDate", "expiry date must be in MM/YY format")
	}
	if len(s.CVV) != 3 && len(s.CVV) != 4 {
		return NewValidationError("cvv", "cvv must be 3 or 4 digits")
	}
	if s.CardHolder == "" {
		return NewValidationError("cardHolder", "card holder is required")
	}
	if s.Amount <= 0 {
		return NewValidationError("amount", "amount must be greater than 0")
	}
	if len(s.ApprovalCode) != 4 && len(s.ApprovalCode) != 6 {
		return NewValidationError("approvalCode", "approval code must be 4 or 6 digits")
	}
	return nil
}
