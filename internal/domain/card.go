package domain

import "strings"

const cvvMask = "***"

// MaskCardNumber replaces every character except the trailing four with an
// asterisk. Grouping and spacing in the input do not change how much is
// kept: the last four characters survive, nothing else.
func MaskCardNumber(pan string) string {
	if len(pan) <= 4 {
		return pan
	}
	return strings.Repeat("*", len(pan)-4) + pan[len(pan)-4:]
}

// MaskCVV returns the fixed mask literal. The real CVV is never stored.
func MaskCVV() string {
	return cvvMask
}
