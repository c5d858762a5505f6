package format_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"onebill/internal/format"
)

func TestAmountInWords(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "Zero"},
		{"0.001", "Zero"},
		{"1", "One Rupees Only"},
		{"1.50", "One Rupees and Fifty Paise Only"},
		{"0.75", "Zero Rupees and Seventy Five Paise Only"},
		{"19", "Nineteen Rupees Only"},
		{"20", "Twenty Rupees Only"},
		{"101", "One Hundred and One Rupees Only"},
		{"2183", "Two Thousand One Hundred and Eighty Three Rupees Only"},
		{"100000", "One Lakh Rupees Only"},
		{"1234567.89", "Twelve Lakh Thirty Four Thousand Five Hundred and Sixty Seven Rupees and Eighty Nine Paise Only"},
		{"10000000", "One Crore Rupees Only"},
		{"1000000000", "One Hundred Crore Rupees Only"},
		{"99.999", "One Hundred Rupees Only"},
		{"-5.05", "Minus Five Rupees and Five Paise Only"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, format.AmountInWords(decimal.RequireFromString(tt.in)))
		})
	}
}
